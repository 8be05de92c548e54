package proj4_coordinate_converter

import (
	"testing"

	"github.com/golang/geo/r3"
	"go.viam.com/test"

	"github.com/ecopia-map/pnts_tiler/internal/tiler"
)

func TestConvertToWGS84Cartesian(t *testing.T) {
	cc := NewProj4CoordinateConverter()
	defer cc.Cleanup()

	// lon 0, lat 0 on the ellipsoid lies on the x axis at the equatorial radius
	out, err := cc.ConvertToWGS84Cartesian(r3.Vector{X: 0, Y: 0, Z: 0}, 4326)
	test.That(t, err, test.ShouldBeNil)
	test.That(t, out.X, test.ShouldAlmostEqual, 6378137.0, 1e-3)
	test.That(t, out.Y, test.ShouldAlmostEqual, 0.0, 1e-3)
	test.That(t, out.Z, test.ShouldAlmostEqual, 0.0, 1e-3)

	// lon 90 moves the point onto the y axis
	out, err = cc.ConvertToWGS84Cartesian(r3.Vector{X: 90, Y: 0, Z: 100}, 4326)
	test.That(t, err, test.ShouldBeNil)
	test.That(t, out.X, test.ShouldAlmostEqual, 0.0, 1e-3)
	test.That(t, out.Y, test.ShouldAlmostEqual, 6378237.0, 1e-3)
}

func TestConvertSameSrid(t *testing.T) {
	cc := NewProj4CoordinateConverter()
	defer cc.Cleanup()

	v := r3.Vector{X: 333000, Y: 7395000, Z: 760}
	out, err := cc.ConvertCoordinateSrid(31983, 31983, v)
	test.That(t, err, test.ShouldBeNil)
	test.That(t, out, test.ShouldResemble, v)
}

func TestConvertUnknownSrid(t *testing.T) {
	cc := NewProj4CoordinateConverter()
	defer cc.Cleanup()

	_, err := cc.ConvertToWGS84Cartesian(r3.Vector{}, 1234)
	test.That(t, err, test.ShouldNotBeNil)
	_, ok := err.(*tiler.UnsupportedProjectionError)
	test.That(t, ok, test.ShouldBeTrue)
}
