package offset_elevation_corrector

import (
	"testing"

	"go.viam.com/test"
)

func TestCorrectElevation(t *testing.T) {
	c := NewOffsetElevationCorrector(-12.5)
	test.That(t, c.CorrectElevation(300000, 7400000, 800), test.ShouldEqual, 787.5)
	test.That(t, NewOffsetElevationCorrector(0).CorrectElevation(1, 2, 3), test.ShouldEqual, 3.0)
}
