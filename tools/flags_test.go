package tools

import (
	"testing"

	"go.viam.com/test"

	"github.com/ecopia-map/pnts_tiler/internal/tiler"
)

func TestApplyOnlyExplicitFlags(t *testing.T) {
	flags := ParseFlagsForCommandIndex([]string{"-i", "/data/ept", "-output", "/tmp/out", "-decay", "uniform-halving", "-m", "10000"})

	opts := tiler.DefaultOptions()
	opts.Builder.MaxLevels = 9 // as if read from a config file
	flags.ApplyTo(opts)

	test.That(t, opts.Input, test.ShouldEqual, "/data/ept")
	test.That(t, opts.Output, test.ShouldEqual, "/tmp/out")
	test.That(t, opts.Builder.DecayMode, test.ShouldEqual, tiler.DecayUniformHalving)
	test.That(t, opts.Builder.MaxPointsPerTile, test.ShouldEqual, 10000)
	test.That(t, opts.Builder.MaxLevels, test.ShouldEqual, 9)
	test.That(t, opts.Builder.AbsorbMode, test.ShouldEqual, tiler.AbsorbMerge)
	test.That(t, opts.Builder.RecenterLeaves, test.ShouldBeTrue)
}

func TestApplyBooleanFlags(t *testing.T) {
	flags := ParseFlagsForCommandIndex([]string{"-recenter=false", "-f"})

	opts := tiler.DefaultOptions()
	flags.ApplyTo(opts)

	test.That(t, opts.Builder.RecenterLeaves, test.ShouldBeFalse)
	test.That(t, opts.ForceRebuild, test.ShouldBeTrue)
}
