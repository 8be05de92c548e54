package data

import (
	"testing"

	"github.com/golang/geo/r3"
	"go.viam.com/test"
)

func TestNewPointSetDefaultsToWhite(t *testing.T) {
	ps, err := NewPointSet([]r3.Vector{{X: 1}, {Y: 2}}, nil)
	test.That(t, err, test.ShouldBeNil)
	test.That(t, ps.Len(), test.ShouldEqual, 2)
	test.That(t, ps.Color(0), test.ShouldResemble, White)
	test.That(t, ps.Color(1), test.ShouldResemble, White)
}

func TestNewPointSetLengthMismatch(t *testing.T) {
	_, err := NewPointSet([]r3.Vector{{X: 1}, {Y: 2}}, []Color{White})
	test.That(t, err, test.ShouldNotBeNil)
}

func TestViewBoundsAndCentroid(t *testing.T) {
	ps, err := NewPointSet(
		[]r3.Vector{{X: 0, Y: 0, Z: 0}, {X: 10, Y: 2, Z: 4}, {X: 100, Y: 100, Z: 100}},
		[]Color{{1, 2, 3}, {4, 5, 6}, {7, 8, 9}},
	)
	test.That(t, err, test.ShouldBeNil)

	v := NewView(ps, []int{0, 1})
	test.That(t, v.Len(), test.ShouldEqual, 2)
	test.That(t, v.Color(1), test.ShouldResemble, Color{4, 5, 6})

	box := v.BoundingBox()
	test.That(t, box.Min, test.ShouldResemble, r3.Vector{})
	test.That(t, box.Max, test.ShouldResemble, r3.Vector{X: 10, Y: 2, Z: 4})
	test.That(t, v.Centroid(), test.ShouldResemble, r3.Vector{X: 5, Y: 1, Z: 2})

	all := ps.All()
	test.That(t, all.Len(), test.ShouldEqual, 3)
	test.That(t, all.Position(2), test.ShouldResemble, r3.Vector{X: 100, Y: 100, Z: 100})
}
