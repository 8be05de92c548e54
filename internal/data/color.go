package data

import "math"

// Channel depth of a batch of raw color samples
type ColorDepth int

const (
	EightBit   ColorDepth = 8
	SixteenBit ColorDepth = 16
)

// Detects the channel depth from the highest value observed over all three channels:
// anything above 255 means the batch is 16 bit.
func DetectColorDepth(raw [][3]uint16) ColorDepth {
	var maxValue uint16
	for _, c := range raw {
		for _, v := range c {
			if v > maxValue {
				maxValue = v
			}
		}
	}
	if maxValue > 255 {
		return SixteenBit
	}
	return EightBit
}

// Converts raw samples to 8 bit colors. The depth must be detected once for the whole extraction
// batch so that sibling tiles share the same scaling.
func NormalizeColors(raw [][3]uint16, depth ColorDepth) []Color {
	colors := make([]Color, len(raw))
	for i, c := range raw {
		for ch := 0; ch < 3; ch++ {
			colors[i][ch] = normalizeChannel(c[ch], depth)
		}
	}
	return colors
}

func normalizeChannel(v uint16, depth ColorDepth) uint8 {
	if depth == SixteenBit {
		return uint8(math.Round(float64(v) / 65535 * 255))
	}
	return uint8(v)
}
