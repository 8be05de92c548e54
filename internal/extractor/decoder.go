package extractor

import (
	"github.com/edaniels/lidario"
	"github.com/golang/geo/r3"
	"github.com/pkg/errors"
	"go.uber.org/multierr"
)

// Points of one source file, positions still in the source reference system
type RawPointBatch struct {
	Positions []r3.Vector
	Colors    [][3]uint16 // nil when the file carries no color
}

func (b *RawPointBatch) HasColors() bool {
	return b.Colors != nil
}

type Decoder interface {
	Decode(path string) (*RawPointBatch, error)
}

// LAS point formats carrying RGB channels
var lasFormatsWithRgb = map[byte]bool{
	2:  true,
	3:  true,
	5:  true,
	7:  true,
	8:  true,
	10: true,
}

type LasDecoder struct{}

func NewLasDecoder() Decoder {
	return &LasDecoder{}
}

func (d *LasDecoder) Decode(path string) (batch *RawPointBatch, err error) {
	lf, err := lidario.NewLasFile(path, "r")
	if err != nil {
		return nil, errors.Wrap(err, "opening las file")
	}
	defer func() {
		err = multierr.Combine(err, lf.Close())
	}()

	numPoints := lf.Header.NumberPoints
	batch = &RawPointBatch{
		Positions: make([]r3.Vector, 0, numPoints),
	}
	withColor := lasFormatsWithRgb[lf.Header.PointFormatID]
	if withColor {
		batch.Colors = make([][3]uint16, 0, numPoints)
	}

	for i := 0; i < numPoints; i++ {
		p, err := lf.LasPoint(i)
		if err != nil {
			return nil, errors.Wrapf(err, "reading point %d", i)
		}
		pd := p.PointData()
		batch.Positions = append(batch.Positions, r3.Vector{X: pd.X, Y: pd.Y, Z: pd.Z})

		if withColor {
			var c [3]uint16
			if rgb := p.RgbData(); rgb != nil {
				c = [3]uint16{rgb.Red, rgb.Green, rgb.Blue}
			}
			batch.Colors = append(batch.Colors, c)
		}
	}

	return batch, nil
}
