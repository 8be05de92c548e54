package std_algorithm_manager

import (
	"github.com/ecopia-map/pnts_tiler/internal/converters"
	"github.com/ecopia-map/pnts_tiler/internal/converters/elevation/offset_elevation_corrector"
	"github.com/ecopia-map/pnts_tiler/internal/converters/proj4_coordinate_converter"
	"github.com/ecopia-map/pnts_tiler/internal/octree"
	"github.com/ecopia-map/pnts_tiler/internal/tiler"
	"github.com/ecopia-map/pnts_tiler/pkg/algorithm_manager"
)

type StandardAlgorithmManager struct {
	options             *tiler.TilerOptions
	coordinateConverter converters.CoordinateConverter
	elevationCorrector  converters.ElevationCorrector
}

func NewAlgorithmManager(opts *tiler.TilerOptions) algorithm_manager.AlgorithmManager {
	var coordinateConverter converters.CoordinateConverter
	if opts.SkipReprojection {
		coordinateConverter = converters.NewIdentityConverter()
	} else {
		coordinateConverter = proj4_coordinate_converter.NewProj4CoordinateConverter()
	}

	return &StandardAlgorithmManager{
		options:             opts,
		coordinateConverter: coordinateConverter,
		elevationCorrector:  offset_elevation_corrector.NewOffsetElevationCorrector(opts.ZOffset),
	}
}

func (am *StandardAlgorithmManager) GetElevationCorrectionAlgorithm() converters.ElevationCorrector {
	return am.elevationCorrector
}

func (am *StandardAlgorithmManager) GetTreeAlgorithm() *octree.OctreeTileBuilder {
	return octree.NewOctreeTileBuilder(am.options.Builder)
}

func (am *StandardAlgorithmManager) GetCoordinateConverterAlgorithm() converters.CoordinateConverter {
	return am.coordinateConverter
}
