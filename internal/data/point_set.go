package data

import (
	"github.com/golang/geo/r3"
	"github.com/pkg/errors"

	"github.com/ecopia-map/pnts_tiler/internal/geometry"
)

// RGB color with 8 bit channels
type Color [3]uint8

var White = Color{255, 255, 255}

// Point cloud held as parallel sequences: index i of every slice refers to the same point.
// A PointSet is never modified once built; nodes work on Views of it.
type PointSet struct {
	positions []r3.Vector
	colors    []Color
}

// Builds a PointSet from parallel slices. colors may be nil, in which case every point is white.
func NewPointSet(positions []r3.Vector, colors []Color) (*PointSet, error) {
	if colors == nil {
		colors = make([]Color, len(positions))
		for i := range colors {
			colors[i] = White
		}
	}
	if len(colors) != len(positions) {
		return nil, errors.Errorf("positions and colors length differ: %d != %d", len(positions), len(colors))
	}
	return &PointSet{positions: positions, colors: colors}, nil
}

func (ps *PointSet) Len() int {
	return len(ps.positions)
}

func (ps *PointSet) Position(i int) r3.Vector {
	return ps.positions[i]
}

func (ps *PointSet) Color(i int) Color {
	return ps.colors[i]
}

// Returns a view over every point of the set
func (ps *PointSet) All() View {
	indices := make([]int, len(ps.positions))
	for i := range indices {
		indices[i] = i
	}
	return View{set: ps, indices: indices}
}

// Read-only subset of a PointSet, identified by point indices
type View struct {
	set     *PointSet
	indices []int
}

func NewView(set *PointSet, indices []int) View {
	return View{set: set, indices: indices}
}

func (v View) Len() int {
	return len(v.indices)
}

func (v View) Position(i int) r3.Vector {
	return v.set.positions[v.indices[i]]
}

func (v View) Color(i int) Color {
	return v.set.colors[v.indices[i]]
}

// Underlying point set
func (v View) Set() *PointSet {
	return v.set
}

func (v View) Indices() []int {
	return v.indices
}

// Tight bounding box of the points in the view
func (v View) BoundingBox() *geometry.BoundingBox {
	box := geometry.NewEmptyBoundingBox()
	for _, idx := range v.indices {
		box.Extend(v.set.positions[idx])
	}
	return box
}

// Mean position of the points in the view
func (v View) Centroid() r3.Vector {
	var sum r3.Vector
	if len(v.indices) == 0 {
		return sum
	}
	for _, idx := range v.indices {
		sum = sum.Add(v.set.positions[idx])
	}
	return sum.Mul(1 / float64(len(v.indices)))
}
