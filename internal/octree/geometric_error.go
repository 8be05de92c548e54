package octree

import (
	"math"

	"github.com/ecopia-map/pnts_tiler/internal/tiler"
)

// Geometric error of a node with the given bounding box diagonal at the given depth, never below floor
func ComputeGeometricError(diagonal float64, depth int, mode tiler.DecayMode, floor float64) float64 {
	var value float64
	switch mode {
	case tiler.DecayTwoPhase:
		if depth <= 2 {
			value = 1.5 * diagonal * math.Pow(2, -0.3*float64(depth))
		} else {
			value = 0.8 * diagonal * math.Pow(2, -0.5*float64(depth))
		}
	default:
		value = diagonal / math.Pow(2, float64(depth))
	}
	return math.Max(value, floor)
}
