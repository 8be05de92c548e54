package tileset

import (
	"github.com/golang/glog"

	"github.com/ecopia-map/pnts_tiler/internal/io"
	"github.com/ecopia-map/pnts_tiler/internal/tiler"
	"github.com/ecopia-map/pnts_tiler/tools"
)

// Outcome of checking a previous run's output
type ValidationReport struct {
	Valid             bool   `json:"valid"`
	ExpectedLeafCount int    `json:"expectedLeafCount"`
	ActualFileCount   int    `json:"actualFileCount"`
	Reason            string `json:"reason,omitempty"`
}

// Returns nil for a valid report, an *InvalidTilesetStateError otherwise
func (r ValidationReport) Err(dir string) error {
	if r.Valid {
		return nil
	}
	return &tiler.InvalidTilesetStateError{Dir: dir, Reason: r.Reason}
}

// Decides whether the tileset found in dir can be reused. The check compares the number of tiles the
// descriptor references with the number of tile files present; it does not look at tile contents.
func ValidateExisting(dir string) ValidationReport {
	store := tools.NewOutputStore(dir)
	report := ValidationReport{}

	if !store.Exists(TilesetFileName) {
		report.Reason = TilesetFileName + " not found"
		return report
	}
	existing, err := Load(store)
	if err != nil {
		report.Reason = err.Error()
		return report
	}

	report.ExpectedLeafCount = len(existing.ContentURIs())
	report.ActualFileCount, err = store.CountFiles(io.TileExtension)
	if err != nil {
		report.Reason = err.Error()
		return report
	}

	switch {
	case report.ExpectedLeafCount == 0:
		report.Reason = "tileset references no tiles"
	case report.ExpectedLeafCount > report.ActualFileCount:
		report.Reason = "tileset references more tiles than found on disk"
	default:
		report.Valid = true
	}
	glog.Infof("existing tileset in %s: valid %v, %d tiles expected, %d found", dir, report.Valid, report.ExpectedLeafCount, report.ActualFileCount)
	return report
}
