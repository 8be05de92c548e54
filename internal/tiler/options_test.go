package tiler

import (
	"os"
	"path/filepath"
	"testing"

	"go.viam.com/test"
)

func TestDefaultOptions(t *testing.T) {
	opts := DefaultOptions()
	test.That(t, opts.Builder.MaxPointsPerTile, test.ShouldEqual, 30000)
	test.That(t, opts.Builder.MaxLevels, test.ShouldEqual, 6)
	test.That(t, opts.Builder.DecayMode, test.ShouldEqual, DecayTwoPhase)
	test.That(t, opts.Builder.AbsorbMode, test.ShouldEqual, AbsorbMerge)
	test.That(t, opts.Builder.RecenterLeaves, test.ShouldBeTrue)
	test.That(t, opts.GlobalErrorFactor, test.ShouldEqual, 0.6)
}

func TestParseModes(t *testing.T) {
	test.That(t, ParseDecayMode(" uniform-halving"), test.ShouldEqual, DecayUniformHalving)
	test.That(t, ParseDecayMode("Two-Phase"), test.ShouldEqual, DecayTwoPhase)
	test.That(t, ParseDecayMode("linear"), test.ShouldEqual, DecayMode(""))

	test.That(t, ParseAbsorbMode("drop"), test.ShouldEqual, AbsorbDrop)
	test.That(t, ParseAbsorbMode("LEAF"), test.ShouldEqual, AbsorbLeaf)
	test.That(t, ParseAbsorbMode("keep"), test.ShouldEqual, AbsorbMode(""))

	test.That(t, AbsorbMerge.IsLossless(), test.ShouldBeTrue)
	test.That(t, AbsorbDrop.IsLossless(), test.ShouldBeFalse)
}

func TestMinOctantPointsAt(t *testing.T) {
	b := BuilderOptions{MaxPointsPerTile: 10000, MinOctantPoints: 200}
	test.That(t, b.MinOctantPointsAt(0), test.ShouldEqual, 1250)
	test.That(t, b.MinOctantPointsAt(1), test.ShouldEqual, 1000)
	test.That(t, b.MinOctantPointsAt(100), test.ShouldEqual, 200)
}

func TestValidate(t *testing.T) {
	opts := DefaultOptions()
	test.That(t, opts.Validate(), test.ShouldNotBeNil)

	opts.Output = "out"
	test.That(t, opts.Validate(), test.ShouldBeNil)

	bad := opts.Copy()
	bad.Builder.MaxPointsPerTile = 0
	test.That(t, bad.Validate(), test.ShouldNotBeNil)

	bad = opts.Copy()
	bad.Builder.DecayMode = "linear"
	test.That(t, bad.Validate(), test.ShouldNotBeNil)

	bad = opts.Copy()
	bad.Builder.MaxLevels = -1
	test.That(t, bad.Validate(), test.ShouldNotBeNil)

	bad = opts.Copy()
	bad.GlobalErrorFactor = 0
	test.That(t, bad.Validate(), test.ShouldNotBeNil)

	// Copy does not share state with the original
	test.That(t, opts.Builder.MaxPointsPerTile, test.ShouldEqual, 30000)
}

func TestLoadOptionsFileMergesOverCurrentValues(t *testing.T) {
	path := filepath.Join(t.TempDir(), "tiler.yaml")
	content := "output: /data/tiles\nbuilder:\n  max_points_per_tile: 5000\n  decay_mode: uniform-halving\n  absorb_mode: drop\n"
	test.That(t, os.WriteFile(path, []byte(content), 0o644), test.ShouldBeNil)

	opts := DefaultOptions()
	test.That(t, LoadOptionsFile(opts, path), test.ShouldBeNil)
	test.That(t, opts.Output, test.ShouldEqual, "/data/tiles")
	test.That(t, opts.Builder.MaxPointsPerTile, test.ShouldEqual, 5000)
	test.That(t, opts.Builder.DecayMode, test.ShouldEqual, DecayUniformHalving)
	test.That(t, opts.Builder.AbsorbMode, test.ShouldEqual, AbsorbDrop)
	test.That(t, opts.Builder.MaxLevels, test.ShouldEqual, 6)
	test.That(t, opts.GlobalErrorFactor, test.ShouldEqual, 0.6)
}

func TestSaveOptionsFileRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), OptionsFileName)
	opts := DefaultOptions()
	opts.Output = "out"
	opts.Srid = 31983
	test.That(t, SaveOptionsFile(opts, path), test.ShouldBeNil)

	loaded := &TilerOptions{}
	test.That(t, LoadOptionsFile(loaded, path), test.ShouldBeNil)
	test.That(t, loaded, test.ShouldResemble, opts)
}

func TestLoadOptionsFileMissing(t *testing.T) {
	err := LoadOptionsFile(DefaultOptions(), filepath.Join(t.TempDir(), "nope.yaml"))
	test.That(t, err, test.ShouldNotBeNil)
}
