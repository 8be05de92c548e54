package io

import (
	"github.com/ecopia-map/pnts_tiler/internal/data"
)

// Contains the minimal data needed to produce a single tile file
type WorkUnit struct {
	TileID   int
	Points   data.View
	Recenter bool
}

// Name of the tile file, relative to the output folder
func (w *WorkUnit) ContentURI() string {
	return TileFileName(w.TileID)
}
