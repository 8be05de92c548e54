package tileset

import (
	"encoding/json"

	"github.com/pkg/errors"

	"github.com/ecopia-map/pnts_tiler/tools"
)

var requiredKeys = []string{"asset", "geometricError", "root"}

func Serialize(tileset *Tileset) ([]byte, error) {
	content, err := json.MarshalIndent(tileset, "", "\t")
	if err != nil {
		return nil, errors.Wrap(err, "encoding tileset")
	}
	return content, nil
}

// Parses a tileset descriptor, failing when any required top level key is missing
func Parse(content []byte) (*Tileset, error) {
	var keys map[string]json.RawMessage
	if err := json.Unmarshal(content, &keys); err != nil {
		return nil, errors.Wrap(err, "decoding tileset")
	}
	for _, key := range requiredKeys {
		if _, ok := keys[key]; !ok {
			return nil, errors.Errorf("missing key %q", key)
		}
	}

	var tileset Tileset
	if err := json.Unmarshal(content, &tileset); err != nil {
		return nil, errors.Wrap(err, "decoding tileset")
	}
	return &tileset, nil
}

// Writes tileset.json into the store
func Write(store *tools.OutputStore, tileset *Tileset) error {
	content, err := Serialize(tileset)
	if err != nil {
		return err
	}
	if err := store.WriteFile(TilesetFileName, content); err != nil {
		return errors.Wrapf(err, "writing %s", store.Path(TilesetFileName))
	}
	return nil
}

func Load(store *tools.OutputStore) (*Tileset, error) {
	content, err := store.ReadFile(TilesetFileName)
	if err != nil {
		return nil, errors.Wrapf(err, "reading %s", store.Path(TilesetFileName))
	}
	return Parse(content)
}
