package extractor

import (
	"encoding/json"
	"os"
	"path/filepath"

	"github.com/pkg/errors"

	"github.com/ecopia-map/pnts_tiler/internal/converters"
	"github.com/ecopia-map/pnts_tiler/internal/tiler"
)

const EptMetadataFileName = "ept.json"

// Point file extension for each ept.json dataType the tiler can read
var eptDataTypeExtensions = map[string]string{
	"laszip": ".laz",
}

type EptSrs struct {
	Authority  string `json:"authority"`
	Horizontal string `json:"horizontal"`
	Vertical   string `json:"vertical"`
	Wkt        string `json:"wkt"`
}

// Subset of the Entwine ept.json document used by the tiler
type EptMetadata struct {
	Bounds        []float64 `json:"bounds"`
	DataType      string    `json:"dataType"`
	HierarchyType string    `json:"hierarchyType"`
	Points        int       `json:"points"`
	Span          int       `json:"span"`
	Version       string    `json:"version"`
	Srs           EptSrs    `json:"srs"`
}

// Returns true if dir holds an ept.json metadata document
func IsEptFolder(dir string) bool {
	info, err := os.Stat(filepath.Join(dir, EptMetadataFileName))
	return err == nil && info.Mode().IsRegular()
}

func ReadEptMetadata(dir string) (*EptMetadata, error) {
	metadataPath := filepath.Join(dir, EptMetadataFileName)
	content, err := os.ReadFile(metadataPath)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, &tiler.MissingInputError{Path: metadataPath, Reason: "ept metadata not found"}
		}
		return nil, errors.Wrapf(err, "reading %s", metadataPath)
	}

	var metadata EptMetadata
	if err := json.Unmarshal(content, &metadata); err != nil {
		return nil, errors.Wrapf(err, "parsing %s", metadataPath)
	}
	return &metadata, nil
}

// EPSG code of the horizontal reference system
func (m *EptMetadata) Srid() (int, error) {
	horizontal := m.Srs.Horizontal
	if horizontal == "" {
		return 0, &tiler.UnsupportedProjectionError{Reason: "ept.json has no srs.horizontal"}
	}
	if m.Srs.Authority != "" && m.Srs.Authority != "EPSG" {
		return 0, &tiler.UnsupportedProjectionError{Srs: m.Srs.Authority + ":" + horizontal, Reason: "only EPSG codes are supported"}
	}
	srid, err := converters.ParseSrid(horizontal)
	if err != nil {
		return 0, &tiler.UnsupportedProjectionError{Srs: horizontal, Reason: err.Error()}
	}
	return srid, nil
}
