package io

import (
	"os"

	"github.com/pkg/errors"

	"github.com/ecopia-map/pnts_tiler/internal/data"
	"github.com/ecopia-map/pnts_tiler/tools"
)

// Writes the points of one leaf as a pnts tile at path. The file is replaced atomically: on error
// no file, partial or not, is left at path.
func WriteLeaf(points data.View, recenter bool, path string) (int, error) {
	content, err := EncodePnts(points, recenter)
	if err != nil {
		return 0, errors.Wrapf(err, "encoding tile %s", path)
	}
	if err := tools.WriteFileAtomic(path, content, 0644); err != nil {
		return 0, errors.Wrapf(err, "writing tile %s", path)
	}
	return len(content), nil
}

func ReadPnts(path string) (*PntsTile, error) {
	content, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.Wrapf(err, "reading tile %s", path)
	}
	tile, err := DecodePnts(content)
	if err != nil {
		return nil, errors.Wrapf(err, "decoding tile %s", path)
	}
	return tile, nil
}
