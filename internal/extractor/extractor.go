package extractor

import (
	"path/filepath"
	"strconv"
	"strings"

	"github.com/golang/geo/r3"
	"github.com/golang/glog"
	"github.com/pkg/errors"

	"github.com/ecopia-map/pnts_tiler/internal/converters"
	"github.com/ecopia-map/pnts_tiler/internal/data"
	"github.com/ecopia-map/pnts_tiler/internal/tiler"
	"github.com/ecopia-map/pnts_tiler/tools"
)

// Decodes the source files of a run into a single PointSet expressed in the earth-centered frame
type PointCloudExtractor struct {
	fileFinder          tools.FileFinder
	coordinateConverter converters.CoordinateConverter
	elevationCorrector  converters.ElevationCorrector
	decoders            map[string]Decoder
}

func NewPointCloudExtractor(fileFinder tools.FileFinder, coordinateConverter converters.CoordinateConverter, elevationCorrector converters.ElevationCorrector) *PointCloudExtractor {
	e := &PointCloudExtractor{
		fileFinder:          fileFinder,
		coordinateConverter: coordinateConverter,
		elevationCorrector:  elevationCorrector,
		decoders:            make(map[string]Decoder),
	}
	e.RegisterDecoder(".las", NewLasDecoder())
	return e
}

// Associates a decoder to a file extension, replacing any previous one
func (e *PointCloudExtractor) RegisterDecoder(extension string, decoder Decoder) {
	e.decoders[strings.ToLower(extension)] = decoder
}

// Determines the EPSG code of the input points. An explicit srid in the options wins over the
// EPT metadata, which is not consulted at all when reprojection is skipped.
func (e *PointCloudExtractor) ResolveSrid(opts *tiler.TilerOptions) (int, error) {
	if opts.Srid > 0 {
		return opts.Srid, nil
	}
	if opts.SkipReprojection {
		return 0, nil
	}
	if IsEptFolder(opts.Input) {
		metadata, err := ReadEptMetadata(opts.Input)
		if err != nil {
			return 0, err
		}
		return metadata.Srid()
	}
	return 0, &tiler.UnsupportedProjectionError{Reason: "no srid given and no ept.json found in " + opts.Input}
}

// Fails when the EPT folder declares a point encoding no registered decoder can read
func (e *PointCloudExtractor) checkEptDataType(input string) error {
	if !IsEptFolder(input) {
		return nil
	}
	metadata, err := ReadEptMetadata(input)
	if err != nil {
		// reported by ResolveSrid when the srs is actually needed
		glog.Warningf("ignoring ept dataType: %v", err)
		return nil
	}
	if metadata.DataType == "" {
		return nil
	}
	extension, ok := eptDataTypeExtensions[metadata.DataType]
	if !ok {
		return &tiler.MissingInputError{Path: input, Reason: "unsupported ept dataType " + strconv.Quote(metadata.DataType)}
	}
	if _, ok := e.decoders[extension]; !ok {
		return &tiler.MissingInputError{
			Path:   input,
			Reason: "ept dataType " + strconv.Quote(metadata.DataType) + " needs a " + extension + " decoder and none is registered",
		}
	}
	return nil
}

// Reads every source file and returns the aggregated point set. Files that fail to decode are
// logged and skipped; the extraction fails only when no file yields points.
func (e *PointCloudExtractor) Extract(opts *tiler.TilerOptions) (*data.PointSet, error) {
	if err := e.checkEptDataType(opts.Input); err != nil {
		return nil, err
	}
	srid, err := e.ResolveSrid(opts)
	if err != nil {
		return nil, err
	}
	glog.Infof("input srid: %d", srid)

	files, err := e.fileFinder.GetSourceFilesToProcess(opts)
	if err != nil {
		return nil, err
	}

	var (
		positions []r3.Vector
		rawColors [][3]uint16
		colored   []bool
		skipped   int
	)
	for i, filePath := range files {
		tools.LogOutput("> reading file", i+1, "/", len(files), filepath.Base(filePath))

		batch, err := e.decodeFile(filePath)
		if err != nil {
			glog.Warningf("skipping file: %v", err)
			skipped++
			continue
		}

		converted, err := e.convertPositions(batch.Positions, srid)
		if err != nil {
			var projErr *tiler.UnsupportedProjectionError
			if errors.As(err, &projErr) {
				return nil, projErr
			}
			glog.Warningf("skipping file: %v", &tiler.CorruptSourceFileError{Path: filePath, Err: err})
			skipped++
			continue
		}

		positions = append(positions, converted...)
		for j := range converted {
			if batch.HasColors() {
				rawColors = append(rawColors, batch.Colors[j])
				colored = append(colored, true)
			} else {
				rawColors = append(rawColors, [3]uint16{})
				colored = append(colored, false)
			}
		}
		glog.Infof("read %d points from %s", len(converted), filePath)
	}

	if len(positions) == 0 {
		return nil, errors.Errorf("no points could be read from %d source files (%d skipped)", len(files), skipped)
	}

	colors := normalizeBatchColors(rawColors, colored)
	glog.Infof("extracted %d points from %d files, %d files skipped", len(positions), len(files)-skipped, skipped)

	return data.NewPointSet(positions, colors)
}

func (e *PointCloudExtractor) decodeFile(filePath string) (*RawPointBatch, error) {
	decoder, ok := e.decoders[strings.ToLower(filepath.Ext(filePath))]
	if !ok {
		return nil, &tiler.CorruptSourceFileError{Path: filePath, Err: errors.New("no decoder available for this file type")}
	}
	batch, err := decoder.Decode(filePath)
	if err != nil {
		return nil, &tiler.CorruptSourceFileError{Path: filePath, Err: err}
	}
	if len(batch.Positions) == 0 {
		return nil, &tiler.CorruptSourceFileError{Path: filePath, Err: errors.New("file holds no points")}
	}
	if batch.HasColors() && len(batch.Colors) != len(batch.Positions) {
		return nil, &tiler.CorruptSourceFileError{Path: filePath, Err: errors.New("color and position counts differ")}
	}
	return batch, nil
}

func (e *PointCloudExtractor) convertPositions(positions []r3.Vector, srid int) ([]r3.Vector, error) {
	converted := make([]r3.Vector, len(positions))
	for i, p := range positions {
		p.Z = e.elevationCorrector.CorrectElevation(p.X, p.Y, p.Z)
		out, err := e.coordinateConverter.ConvertToWGS84Cartesian(p, srid)
		if err != nil {
			return nil, err
		}
		converted[i] = out
	}
	return converted, nil
}

// Color depth is detected over every colored point of the batch so that all tiles share one scaling
func normalizeBatchColors(raw [][3]uint16, colored []bool) []data.Color {
	sampled := make([][3]uint16, 0, len(raw))
	for i, c := range raw {
		if colored[i] {
			sampled = append(sampled, c)
		}
	}
	depth := data.DetectColorDepth(sampled)
	glog.Infof("detected %d bit colors", depth)

	colors := data.NormalizeColors(raw, depth)
	for i := range colors {
		if !colored[i] {
			colors[i] = data.White
		}
	}
	return colors
}
