package pkg

import (
	"github.com/ecopia-map/pnts_tiler/internal/tiler"
)

type ITiler interface {
	RunTiler(opts *tiler.TilerOptions) error
}
