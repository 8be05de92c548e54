package algorithm_manager

import (
	"github.com/ecopia-map/pnts_tiler/internal/converters"
	"github.com/ecopia-map/pnts_tiler/internal/octree"
)

type AlgorithmManager interface {
	GetElevationCorrectionAlgorithm() converters.ElevationCorrector
	GetTreeAlgorithm() *octree.OctreeTileBuilder
	GetCoordinateConverterAlgorithm() converters.CoordinateConverter
}
