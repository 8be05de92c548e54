package octree

import (
	"github.com/golang/geo/r3"
	"github.com/golang/glog"
	"github.com/pkg/errors"

	"github.com/ecopia-map/pnts_tiler/internal/data"
	"github.com/ecopia-map/pnts_tiler/internal/geometry"
	"github.com/ecopia-map/pnts_tiler/internal/tiler"
)

// Receives the points of every leaf as soon as the leaf is created
type TileSink interface {
	WriteTile(tileID int, points data.View) (contentURI string, err error)
}

// Hands out 1-based tile identifiers. One counter per build run.
type TileCounter struct {
	last int
}

func (c *TileCounter) Next() int {
	c.last++
	return c.last
}

// Number of identifiers handed out so far
func (c *TileCounter) Count() int {
	return c.last
}

// Resets the counter so that the next identifier is n+1, used when an existing tileset is reused
func (c *TileCounter) Restore(n int) {
	c.last = n
}

type BuildStats struct {
	Leaves          int
	Internals       int
	MaxDepth        int
	LeafPoints      int
	AbsorbedOctants int
	DroppedPoints   int
}

// Mutable state of a single top-level build: options, tile counter and tile sink.
// A BuildContext must not be shared between builds.
type BuildContext struct {
	opts    tiler.BuilderOptions
	sink    TileSink
	counter *TileCounter
	stats   BuildStats
}

func NewBuildContext(opts tiler.BuilderOptions, sink TileSink, counter *TileCounter) *BuildContext {
	if counter == nil {
		counter = &TileCounter{}
	}
	return &BuildContext{
		opts:    opts,
		sink:    sink,
		counter: counter,
	}
}

func (ctx *BuildContext) Counter() *TileCounter {
	return ctx.counter
}

type OctreeTileBuilder struct {
	opts tiler.BuilderOptions
}

func NewOctreeTileBuilder(opts tiler.BuilderOptions) *OctreeTileBuilder {
	return &OctreeTileBuilder{opts: opts}
}

// Partitions the whole point set into a tree of tiles, writing every leaf to sink
func (b *OctreeTileBuilder) Build(points *data.PointSet, sink TileSink) (Node, BuildStats, error) {
	return b.BuildWithCounter(points, sink, &TileCounter{})
}

// Same as Build, with tile identifiers allocated from counter. The counter belongs to a single
// run and must not be shared by concurrent builds.
func (b *OctreeTileBuilder) BuildWithCounter(points *data.PointSet, sink TileSink, counter *TileCounter) (Node, BuildStats, error) {
	if err := b.opts.Validate(); err != nil {
		return nil, BuildStats{}, errors.Wrap(err, "invalid builder options")
	}
	if !b.opts.AbsorbMode.IsLossless() {
		glog.Warningf("absorb mode %s discards the points of sparse octants", b.opts.AbsorbMode)
	}
	ctx := NewBuildContext(b.opts, sink, counter)
	root, err := ctx.BuildNode(points.All(), 0)
	if err != nil {
		return nil, ctx.stats, err
	}
	glog.Infof("octree built: %d leaves, %d internal nodes, max depth %d, %d points in leaves, %d points dropped",
		ctx.stats.Leaves, ctx.stats.Internals, ctx.stats.MaxDepth, ctx.stats.LeafPoints, ctx.stats.DroppedPoints)
	return root, ctx.stats, nil
}

// Builds the subtree for the given points at the given depth
func (ctx *BuildContext) BuildNode(view data.View, depth int) (Node, error) {
	bounds := view.BoundingBox()
	if view.Len() == 0 {
		return nil, &tiler.InvariantViolationError{
			Depth:     depth,
			BoundsMin: bounds.Min,
			BoundsMax: bounds.Max,
			Reason:    "builder called with an empty point subset",
		}
	}

	geometricError := ComputeGeometricError(bounds.Diagonal(), depth, ctx.opts.DecayMode, ctx.opts.GeometricErrorFloor)

	if view.Len() <= ctx.opts.MaxPointsPerTile ||
		depth >= ctx.opts.MaxLevels ||
		geometricError <= ctx.opts.GeometricErrorFloor {
		return ctx.newLeaf(view, bounds, geometricError, depth)
	}

	octants := splitOctants(view, bounds)
	nonEmpty := 0
	for _, o := range octants {
		if len(o) > 0 {
			nonEmpty++
		}
	}
	if nonEmpty < 2 {
		glog.V(2).Infof("depth %d: %d points in a single octant, creating leaf", depth, view.Len())
		return ctx.newLeaf(view, bounds, geometricError, depth)
	}

	octants, forceLeaf := ctx.absorb(octants, view, bounds, depth)
	if forceLeaf {
		return ctx.newLeaf(view, bounds, geometricError, depth)
	}

	node := &Internal{
		Bounds: bounds,
		Error:  geometricError,
		Level:  depth,
	}
	for _, indices := range octants {
		if len(indices) == 0 {
			continue
		}
		child, err := ctx.BuildNode(data.NewView(view.Set(), indices), depth+1)
		if err != nil {
			return nil, err
		}
		node.Children = append(node.Children, child)
		node.NumPoints += child.NumberOfPoints()
	}

	ctx.stats.Internals++
	glog.V(2).Infof("depth %d: internal node with %d children, %d points, error %.3f", depth, len(node.Children), node.NumPoints, geometricError)
	return node, nil
}

func (ctx *BuildContext) newLeaf(view data.View, bounds *geometry.BoundingBox, geometricError float64, depth int) (*Leaf, error) {
	tileID := ctx.counter.Next()
	uri, err := ctx.sink.WriteTile(tileID, view)
	if err != nil {
		return nil, errors.Wrapf(err, "writing tile %d at depth %d", tileID, depth)
	}

	ctx.stats.Leaves++
	ctx.stats.LeafPoints += view.Len()
	if depth > ctx.stats.MaxDepth {
		ctx.stats.MaxDepth = depth
	}
	glog.V(2).Infof("depth %d: leaf %s with %d points, error %.3f", depth, uri, view.Len(), geometricError)

	return &Leaf{
		TileID:     tileID,
		ContentURI: uri,
		NumPoints:  view.Len(),
		Bounds:     bounds,
		Error:      geometricError,
		Level:      depth,
	}, nil
}

// Groups the point indices of view by octant of bounds
func splitOctants(view data.View, bounds *geometry.BoundingBox) [8][]int {
	var octants [8][]int
	for i, idx := range view.Indices() {
		o := bounds.OctantIndex(view.Position(i))
		octants[o] = append(octants[o], idx)
	}
	return octants
}

// Applies the absorption policy to octants holding fewer points than the threshold for depth.
// Returns the octants to recurse into, or forceLeaf when the node must become a leaf.
func (ctx *BuildContext) absorb(octants [8][]int, view data.View, bounds *geometry.BoundingBox, depth int) ([8][]int, bool) {
	threshold := ctx.opts.MinOctantPointsAt(depth)

	var retained, absorbed []uint8
	for i, indices := range octants {
		switch {
		case len(indices) == 0:
		case len(indices) >= threshold:
			retained = append(retained, uint8(i))
		default:
			absorbed = append(absorbed, uint8(i))
		}
	}
	if len(absorbed) == 0 {
		return octants, false
	}
	if len(retained) < 2 {
		glog.V(2).Infof("depth %d: absorption would leave %d octants, recursing into all of them", depth, len(retained))
		return octants, false
	}

	ctx.stats.AbsorbedOctants += len(absorbed)

	switch ctx.opts.AbsorbMode {
	case tiler.AbsorbLeaf:
		return octants, true
	case tiler.AbsorbDrop:
		dropped := 0
		for _, o := range absorbed {
			dropped += len(octants[o])
			octants[o] = nil
		}
		ctx.stats.DroppedPoints += dropped
		glog.Warningf("depth %d: dropped %d points of %d sparse octants (threshold %d)", depth, dropped, len(absorbed), threshold)
		return octants, false
	default:
		for _, o := range absorbed {
			target := nearestOctant(centroid(view.Set(), octants[o]), retained, bounds)
			octants[target] = append(octants[target], octants[o]...)
			octants[o] = nil
		}
		return octants, false
	}
}

// Retained octant whose box center is the closest to p, lowest index on ties
func nearestOctant(p r3.Vector, retained []uint8, bounds *geometry.BoundingBox) uint8 {
	best := retained[0]
	bestDistance := bounds.Octant(best).Center().Sub(p).Norm2()
	for _, o := range retained[1:] {
		d := bounds.Octant(o).Center().Sub(p).Norm2()
		if d < bestDistance {
			best, bestDistance = o, d
		}
	}
	return best
}

func centroid(set *data.PointSet, indices []int) r3.Vector {
	return data.NewView(set, indices).Centroid()
}
