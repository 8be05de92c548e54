package geometry

import (
	"math"

	"github.com/golang/geo/r3"
)

// Axis aligned bounding box. Min <= Max componentwise.
type BoundingBox struct {
	Min r3.Vector
	Max r3.Vector
}

func NewBoundingBox(xMin, xMax, yMin, yMax, zMin, zMax float64) *BoundingBox {
	return &BoundingBox{
		Min: r3.Vector{X: xMin, Y: yMin, Z: zMin},
		Max: r3.Vector{X: xMax, Y: yMax, Z: zMax},
	}
}

// Returns an empty box that any point will expand
func NewEmptyBoundingBox() *BoundingBox {
	return &BoundingBox{
		Min: r3.Vector{X: math.MaxFloat64, Y: math.MaxFloat64, Z: math.MaxFloat64},
		Max: r3.Vector{X: -math.MaxFloat64, Y: -math.MaxFloat64, Z: -math.MaxFloat64},
	}
}

func (b *BoundingBox) IsEmpty() bool {
	return b.Min.X > b.Max.X || b.Min.Y > b.Max.Y || b.Min.Z > b.Max.Z
}

// Grows the box to contain p
func (b *BoundingBox) Extend(p r3.Vector) {
	b.Min.X = math.Min(b.Min.X, p.X)
	b.Min.Y = math.Min(b.Min.Y, p.Y)
	b.Min.Z = math.Min(b.Min.Z, p.Z)
	b.Max.X = math.Max(b.Max.X, p.X)
	b.Max.Y = math.Max(b.Max.Y, p.Y)
	b.Max.Z = math.Max(b.Max.Z, p.Z)
}

func (b *BoundingBox) Center() r3.Vector {
	return b.Min.Add(b.Max).Mul(0.5)
}

func (b *BoundingBox) Size() r3.Vector {
	return b.Max.Sub(b.Min)
}

// Length of the min-max diagonal
func (b *BoundingBox) Diagonal() float64 {
	return b.Size().Norm()
}

func (b *BoundingBox) HalfAxes() r3.Vector {
	return b.Size().Mul(0.5)
}

func (b *BoundingBox) Contains(p r3.Vector) bool {
	return p.X >= b.Min.X && p.X <= b.Max.X &&
		p.Y >= b.Min.Y && p.Y <= b.Max.Y &&
		p.Z >= b.Min.Z && p.Z <= b.Max.Z
}

// Returns the index of the octant of p relative to the box center. Each axis is split half-open:
// [min, center) is the lower half and [center, max] the upper one, so a point on a center plane
// always lands in the upper octant and a point on the far face is never lost.
func (b *BoundingBox) OctantIndex(p r3.Vector) uint8 {
	center := b.Center()
	var result uint8 = 0
	if p.X >= center.X {
		result += 1
	}
	if p.Y >= center.Y {
		result += 2
	}
	if p.Z >= center.Z {
		result += 4
	}
	return result
}

// Returns the sub box for the given octant index, using the same bit layout as OctantIndex
func (b *BoundingBox) Octant(octant uint8) *BoundingBox {
	center := b.Center()
	child := &BoundingBox{Min: b.Min, Max: center}
	if octant&1 != 0 {
		child.Min.X, child.Max.X = center.X, b.Max.X
	}
	if octant&2 != 0 {
		child.Min.Y, child.Max.Y = center.Y, b.Max.Y
	}
	if octant&4 != 0 {
		child.Min.Z, child.Max.Z = center.Z, b.Max.Z
	}
	return child
}

// Returns the 3D Tiles oriented box representation: center followed by the x, y and z half axis vectors
func (b *BoundingBox) AsOrientedBox() [12]float64 {
	c := b.Center()
	h := b.HalfAxes()
	return [12]float64{
		c.X, c.Y, c.Z,
		h.X, 0, 0,
		0, h.Y, 0,
		0, 0, h.Z,
	}
}
