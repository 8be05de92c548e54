package io

import (
	"github.com/ecopia-map/pnts_tiler/internal/octree"
)

// Turns the leaves handed over by the octree builder into WorkUnits for a Consumer
type Producer interface {
	octree.TileSink
	BytesWritten() int
}
