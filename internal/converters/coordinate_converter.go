package converters

import (
	"github.com/golang/geo/r3"
)

// EPSG code of the Earth-Centered, Earth-Fixed cartesian frame tiles are written in
const WGS84CartesianSrid = 4978

type CoordinateConverter interface {
	ConvertCoordinateSrid(sourceSrid int, targetSrid int, coord r3.Vector) (r3.Vector, error)
	ConvertToWGS84Cartesian(coord r3.Vector, sourceSrid int) (r3.Vector, error)
	Cleanup()
}

type ElevationCorrector interface {
	CorrectElevation(x, y, z float64) float64
}
