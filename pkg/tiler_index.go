package pkg

import (
	"github.com/golang/glog"
	"github.com/pkg/errors"

	"github.com/ecopia-map/pnts_tiler/internal/extractor"
	"github.com/ecopia-map/pnts_tiler/internal/io"
	"github.com/ecopia-map/pnts_tiler/internal/octree"
	"github.com/ecopia-map/pnts_tiler/internal/tiler"
	"github.com/ecopia-map/pnts_tiler/internal/tileset"
	"github.com/ecopia-map/pnts_tiler/pkg/algorithm_manager"
	"github.com/ecopia-map/pnts_tiler/tools"
)

type TilerIndex struct {
	fileFinder       tools.FileFinder
	algorithmManager algorithm_manager.AlgorithmManager
	decoders         map[string]extractor.Decoder
}

// Outcome of an index run
type IndexResult struct {
	// true when a valid tileset was found in the output folder and reused as is
	Resumed      bool
	Validation   tileset.ValidationReport
	TileCount    int
	BytesWritten int
	Stats        octree.BuildStats
	Root         octree.Node
	Tileset      *tileset.Tileset
}

func NewTiler(fileFinder tools.FileFinder, algorithmManager algorithm_manager.AlgorithmManager) *TilerIndex {
	return &TilerIndex{
		fileFinder:       fileFinder,
		algorithmManager: algorithmManager,
		decoders:         make(map[string]extractor.Decoder),
	}
}

// Adds or replaces the decoder used for source files with the given extension
func (tilerIndex *TilerIndex) RegisterDecoder(extension string, decoder extractor.Decoder) {
	tilerIndex.decoders[extension] = decoder
}

// Starts the tiling process
func (tilerIndex *TilerIndex) RunTiler(opts *tiler.TilerOptions) error {
	_, err := tilerIndex.Run(opts)
	return err
}

// Builds the tileset, or reuses the one already present in the output folder when it passes
// validation and a rebuild was not forced
func (tilerIndex *TilerIndex) Run(opts *tiler.TilerOptions) (*IndexResult, error) {
	defer tilerIndex.algorithmManager.GetCoordinateConverterAlgorithm().Cleanup()

	if err := opts.Validate(); err != nil {
		return nil, errors.Wrap(err, "invalid options")
	}
	store := tools.NewOutputStore(opts.Output)
	counter := &octree.TileCounter{}

	if !opts.ForceRebuild {
		report := tileset.ValidateExisting(opts.Output)
		if report.Valid {
			counter.Restore(report.ActualFileCount)
			tools.LogOutput("> valid tileset found in", opts.Output, "with", report.ActualFileCount, "tiles, nothing to do")
			return &IndexResult{Resumed: true, Validation: report, TileCount: counter.Count()}, nil
		}
		glog.Infof("regenerating tileset: %v", report.Err(opts.Output))
	}

	tools.LogOutput("> reading points...")
	pointExtractor := extractor.NewPointCloudExtractor(
		tilerIndex.fileFinder,
		tilerIndex.algorithmManager.GetCoordinateConverterAlgorithm(),
		tilerIndex.algorithmManager.GetElevationCorrectionAlgorithm(),
	)
	for extension, decoder := range tilerIndex.decoders {
		pointExtractor.RegisterDecoder(extension, decoder)
	}
	points, err := pointExtractor.Extract(opts)
	if err != nil {
		return nil, errors.Wrap(err, "extracting points")
	}

	tools.LogOutput("> clearing output folder", opts.Output)
	if err := store.Clear(); err != nil {
		return nil, err
	}

	tools.LogOutput("> building tiles for", points.Len(), "points...")
	producer := io.NewStandardProducer(io.NewStandardConsumer(store), opts.Builder.RecenterLeaves)
	root, stats, err := tilerIndex.algorithmManager.GetTreeAlgorithm().BuildWithCounter(points, producer, counter)
	if err != nil {
		return nil, errors.Wrap(err, "building octree")
	}

	tools.LogOutput("> writing", tileset.TilesetFileName)
	descriptor := tileset.Assemble(root, opts.GlobalErrorFactor)
	if err := tileset.Write(store, descriptor); err != nil {
		return nil, err
	}

	if err := tiler.SaveOptionsFile(opts, store.Path(tiler.OptionsFileName)); err != nil {
		glog.Warningf("could not record options: %v", err)
	}

	glog.Infof("wrote %d tiles, %d bytes, to %s", counter.Count(), producer.BytesWritten(), opts.Output)
	return &IndexResult{
		TileCount:    counter.Count(),
		BytesWritten: producer.BytesWritten(),
		Stats:        stats,
		Root:         root,
		Tileset:      descriptor,
	}, nil
}
