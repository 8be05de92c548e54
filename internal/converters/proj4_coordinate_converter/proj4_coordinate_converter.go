package proj4_coordinate_converter

import (
	"math"
	"strconv"
	"sync"

	"github.com/golang/geo/r3"
	"github.com/pkg/errors"
	proj "github.com/xeonx/proj4"

	"github.com/ecopia-map/pnts_tiler/internal/converters"
	"github.com/ecopia-map/pnts_tiler/internal/tiler"
)

const toRadians = math.Pi / 180
const toDeg = 180 / math.Pi

// Converter backed by the proj.4 library. Projections are initialized lazily and cached until Cleanup.
type proj4CoordinateConverter struct {
	projections map[int]*proj.Proj
	sync.Mutex
}

func NewProj4CoordinateConverter() converters.CoordinateConverter {
	return &proj4CoordinateConverter{
		projections: make(map[int]*proj.Proj),
	}
}

// Converts the given coordinate from the given source srid to the given target srid.
// Angular coordinates are expected and returned in degrees.
func (cc *proj4CoordinateConverter) ConvertCoordinateSrid(sourceSrid int, targetSrid int, coord r3.Vector) (r3.Vector, error) {
	if sourceSrid == targetSrid {
		return coord, nil
	}

	cc.Lock()
	defer cc.Unlock()

	src, err := cc.getProjection(sourceSrid)
	if err != nil {
		return coord, err
	}
	dst, err := cc.getProjection(targetSrid)
	if err != nil {
		return coord, err
	}

	x, y, z := []float64{coord.X}, []float64{coord.Y}, []float64{coord.Z}
	if src.IsLatLong() {
		x[0] *= toRadians
		y[0] *= toRadians
	}

	if err := proj.TransformRaw(src, dst, x, y, z); err != nil {
		return coord, errors.Wrapf(err, "transforming %v from EPSG:%d to EPSG:%d", coord, sourceSrid, targetSrid)
	}

	if dst.IsLatLong() {
		x[0] *= toDeg
		y[0] *= toDeg
	}

	return r3.Vector{X: x[0], Y: y[0], Z: z[0]}, nil
}

// Converts the given coordinate to the Earth-Centered, Earth-Fixed frame
func (cc *proj4CoordinateConverter) ConvertToWGS84Cartesian(coord r3.Vector, sourceSrid int) (r3.Vector, error) {
	return cc.ConvertCoordinateSrid(sourceSrid, converters.WGS84CartesianSrid, coord)
}

// Releases all the projections initialized so far
func (cc *proj4CoordinateConverter) Cleanup() {
	cc.Lock()
	defer cc.Unlock()

	for srid, projection := range cc.projections {
		projection.Close()
		delete(cc.projections, srid)
	}
}

// Returns the cached projection for the srid, initializing it on first use. Must be called with the lock held.
func (cc *proj4CoordinateConverter) getProjection(srid int) (*proj.Proj, error) {
	if projection, ok := cc.projections[srid]; ok {
		return projection, nil
	}

	definition, ok := converters.ProjDefinition(srid)
	if !ok {
		return nil, &tiler.UnsupportedProjectionError{
			Srs:    "EPSG:" + strconv.Itoa(srid),
			Reason: "no proj4 definition known for this code",
		}
	}

	projection, err := proj.InitPlus(definition)
	if err != nil {
		return nil, &tiler.UnsupportedProjectionError{
			Srs:    "EPSG:" + strconv.Itoa(srid),
			Reason: err.Error(),
		}
	}
	cc.projections[srid] = projection

	return projection, nil
}
