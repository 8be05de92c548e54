package tileset

import (
	"github.com/shopspring/decimal"

	"github.com/ecopia-map/pnts_tiler/internal/geometry"
	"github.com/ecopia-map/pnts_tiler/internal/octree"
)

const (
	TilesetFileName = "tileset.json"
	AssetVersion    = "1.0"

	RefineReplace = "REPLACE"
	RefineAdd     = "ADD"

	// decimals kept for bounding volumes and geometric errors
	floatDecimals = 6
)

type Asset struct {
	Version string `json:"version"`
}

type BoundingVolume struct {
	Box []float64 `json:"box"`
}

type Content struct {
	Uri string `json:"uri"`
}

type Tile struct {
	BoundingVolume BoundingVolume `json:"boundingVolume"`
	GeometricError float64        `json:"geometricError"`
	Refine         string         `json:"refine"`
	Content        *Content       `json:"content,omitempty"`
	Children       []Tile         `json:"children,omitempty"`
}

type Tileset struct {
	Asset          Asset   `json:"asset"`
	GeometricError float64 `json:"geometricError"`
	Root           Tile    `json:"root"`
}

// Builds the descriptor of a built tree. The tileset geometric error is the root bounding box
// diagonal times globalErrorFactor.
func Assemble(root octree.Node, globalErrorFactor float64) *Tileset {
	return &Tileset{
		Asset:          Asset{Version: AssetVersion},
		GeometricError: round(root.BoundingBox().Diagonal() * globalErrorFactor),
		Root:           assembleTile(root),
	}
}

func assembleTile(node octree.Node) Tile {
	tile := Tile{
		BoundingVolume: boundingVolume(node.BoundingBox()),
		GeometricError: round(node.GeometricError()),
	}
	switch n := node.(type) {
	case *octree.Leaf:
		tile.Refine = RefineReplace
		tile.Content = &Content{Uri: n.ContentURI}
	case *octree.Internal:
		tile.Refine = RefineAdd
		tile.Children = make([]Tile, 0, len(n.Children))
		for _, child := range n.Children {
			tile.Children = append(tile.Children, assembleTile(child))
		}
	}
	return tile
}

func boundingVolume(box *geometry.BoundingBox) BoundingVolume {
	oriented := box.AsOrientedBox()
	values := make([]float64, len(oriented))
	for i, v := range oriented {
		values[i] = round(v)
	}
	return BoundingVolume{Box: values}
}

func round(v float64) float64 {
	rounded, _ := decimal.NewFromFloat(v).Round(floatDecimals).Float64()
	return rounded
}

// Content URIs of every tile of the descriptor, depth first
func (t *Tileset) ContentURIs() []string {
	var uris []string
	var visit func(tile *Tile)
	visit = func(tile *Tile) {
		if tile.Content != nil && tile.Content.Uri != "" {
			uris = append(uris, tile.Content.Uri)
		}
		for i := range tile.Children {
			visit(&tile.Children[i])
		}
	}
	visit(&t.Root)
	return uris
}
