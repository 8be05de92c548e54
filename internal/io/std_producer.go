package io

import (
	"github.com/ecopia-map/pnts_tiler/internal/data"
)

// Synchronous producer: every leaf is consumed before the builder moves on
type StandardProducer struct {
	consumer     Consumer
	recenter     bool
	bytesWritten int
}

func NewStandardProducer(consumer Consumer, recenter bool) *StandardProducer {
	return &StandardProducer{
		consumer: consumer,
		recenter: recenter,
	}
}

func (p *StandardProducer) WriteTile(tileID int, points data.View) (string, error) {
	workUnit := &WorkUnit{
		TileID:   tileID,
		Points:   points,
		Recenter: p.recenter,
	}
	byteLength, err := p.consumer.Consume(workUnit)
	if err != nil {
		return "", err
	}
	p.bytesWritten += byteLength
	return workUnit.ContentURI(), nil
}

// Total size of the tiles written so far
func (p *StandardProducer) BytesWritten() int {
	return p.bytesWritten
}
