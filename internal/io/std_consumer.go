package io

import (
	"github.com/golang/glog"

	"github.com/ecopia-map/pnts_tiler/tools"
)

type Consumer interface {
	Consume(workUnit *WorkUnit) (byteLength int, err error)
}

// Writes the tile files of WorkUnits into an output store
type StandardConsumer struct {
	store *tools.OutputStore
}

func NewStandardConsumer(store *tools.OutputStore) *StandardConsumer {
	return &StandardConsumer{
		store: store,
	}
}

// Takes a workunit and writes the corresponding tile file
func (c *StandardConsumer) Consume(workUnit *WorkUnit) (int, error) {
	byteLength, err := WriteLeaf(workUnit.Points, workUnit.Recenter, c.store.Path(workUnit.ContentURI()))
	if err != nil {
		return 0, err
	}
	glog.V(3).Infof("wrote %s: %d points, %d bytes", workUnit.ContentURI(), workUnit.Points.Len(), byteLength)
	return byteLength, nil
}

// Reads back a tile file of the store
func (c *StandardConsumer) Load(contentURI string) (*PntsTile, error) {
	return ReadPnts(c.store.Path(contentURI))
}
