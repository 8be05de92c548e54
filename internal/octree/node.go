package octree

import (
	"github.com/ecopia-map/pnts_tiler/internal/geometry"
)

// Node of the built tree, either a *Leaf or an *Internal
type Node interface {
	BoundingBox() *geometry.BoundingBox
	GeometricError() float64
	Depth() int
	IsLeaf() bool
	// Number of points held by the leaves of the subtree
	NumberOfPoints() int
}

// Node whose points were written to a tile file. The point subset itself is released once written.
type Leaf struct {
	TileID     int
	ContentURI string
	NumPoints  int
	Bounds     *geometry.BoundingBox
	Error      float64
	Level      int
}

func (l *Leaf) BoundingBox() *geometry.BoundingBox { return l.Bounds }
func (l *Leaf) GeometricError() float64            { return l.Error }
func (l *Leaf) Depth() int                         { return l.Level }
func (l *Leaf) IsLeaf() bool                       { return true }
func (l *Leaf) NumberOfPoints() int                { return l.NumPoints }

// Node without content. Children are ordered by octant index.
type Internal struct {
	Children  []Node
	NumPoints int
	Bounds    *geometry.BoundingBox
	Error     float64
	Level     int
}

func (n *Internal) BoundingBox() *geometry.BoundingBox { return n.Bounds }
func (n *Internal) GeometricError() float64            { return n.Error }
func (n *Internal) Depth() int                         { return n.Level }
func (n *Internal) IsLeaf() bool                       { return false }
func (n *Internal) NumberOfPoints() int                { return n.NumPoints }

// Visits the tree depth first, parents before children. Stops at the first error returned by fn.
func Walk(node Node, fn func(node Node, parent Node) error) error {
	return walk(node, nil, fn)
}

func walk(node Node, parent Node, fn func(node Node, parent Node) error) error {
	if err := fn(node, parent); err != nil {
		return err
	}
	if internal, ok := node.(*Internal); ok {
		for _, child := range internal.Children {
			if err := walk(child, node, fn); err != nil {
				return err
			}
		}
	}
	return nil
}

// Returns the leaves of the tree in depth first order
func Leaves(root Node) []*Leaf {
	var leaves []*Leaf
	_ = Walk(root, func(node Node, _ Node) error {
		if leaf, ok := node.(*Leaf); ok {
			leaves = append(leaves, leaf)
		}
		return nil
	})
	return leaves
}
