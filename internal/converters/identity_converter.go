package converters

import "github.com/golang/geo/r3"

// Converter that leaves coordinates untouched, for inputs already expressed in the target frame
type IdentityConverter struct{}

func NewIdentityConverter() CoordinateConverter {
	return &IdentityConverter{}
}

func (c *IdentityConverter) ConvertCoordinateSrid(sourceSrid int, targetSrid int, coord r3.Vector) (r3.Vector, error) {
	return coord, nil
}

func (c *IdentityConverter) ConvertToWGS84Cartesian(coord r3.Vector, sourceSrid int) (r3.Vector, error) {
	return coord, nil
}

func (c *IdentityConverter) Cleanup() {}
