package tiler

import (
	"strings"

	"github.com/pkg/errors"
)

type DecayMode string
type AbsorbMode string

const (
	// Geometric error halves at every level: diagonal / 2^depth.
	DecayUniformHalving DecayMode = "UNIFORM-HALVING"

	// Shallow levels (depth <= 2) decay slowly off a 1.5x diagonal base, deeper levels decay faster
	// off a 0.8x diagonal base. Limits fragmentation near the root while keeping detail at the bottom.
	DecayTwoPhase DecayMode = "TWO-PHASE"
)

const (
	// Points of an absorbed octant join the nearest retained sibling octant. Lossless.
	AbsorbMerge AbsorbMode = "MERGE"

	// An absorbed octant turns the current node into a leaf holding all its points. Lossless.
	AbsorbLeaf AbsorbMode = "LEAF"

	// Points of an absorbed octant are discarded. Meant for pathological outlier clusters only.
	AbsorbDrop AbsorbMode = "DROP"
)

func (m DecayMode) String() string {
	return strings.ToLower(string(m))
}

func (m AbsorbMode) String() string {
	return strings.ToLower(string(m))
}

func (m AbsorbMode) IsLossless() bool {
	return m != AbsorbDrop
}

func ParseDecayMode(value string) DecayMode {
	normalizedValue := strings.Trim(strings.ToUpper(value), " ")
	switch normalizedValue {
	case string(DecayUniformHalving):
		return DecayUniformHalving
	case string(DecayTwoPhase):
		return DecayTwoPhase
	}
	return ""
}

func ParseAbsorbMode(value string) AbsorbMode {
	normalizedValue := strings.Trim(strings.ToUpper(value), " ")
	switch normalizedValue {
	case string(AbsorbMerge):
		return AbsorbMerge
	case string(AbsorbLeaf):
		return AbsorbLeaf
	case string(AbsorbDrop):
		return AbsorbDrop
	}
	return ""
}

// Contains the options needed for the tiling algorithm
type TilerOptions struct {
	Input            string  `yaml:"input"`             // EPT directory, LAS file or folder of LAS files
	Output           string  `yaml:"output"`            // Output tileset folder
	Srid             int     `yaml:"srid"`              // EPSG code of input points, 0 to read it from ept.json
	ZOffset          float64 `yaml:"zoffset"`           // Z Offset in meters to apply to points before reprojection
	ForceRebuild     bool    `yaml:"force"`             // Skip resume validation and always regenerate
	SkipReprojection bool    `yaml:"skip_reprojection"` // Input already in the target cartesian frame

	Builder BuilderOptions `yaml:"builder"`

	GlobalErrorFactor float64 `yaml:"global_error_factor"` // tileset.geometricError = root diagonal * factor
}

// Options of the octree tile builder
type BuilderOptions struct {
	MaxPointsPerTile    int        `yaml:"max_points_per_tile"`
	MaxLevels           int        `yaml:"max_levels"`
	GeometricErrorFloor float64    `yaml:"geometric_error_floor"`
	MinOctantPoints     int        `yaml:"min_octant_points"` // fixed floor of the dynamic absorption threshold
	DecayMode           DecayMode  `yaml:"decay_mode"`
	AbsorbMode          AbsorbMode `yaml:"absorb_mode"`
	RecenterLeaves      bool       `yaml:"recenter_leaves"`
}

func DefaultBuilderOptions() BuilderOptions {
	return BuilderOptions{
		MaxPointsPerTile:    30000,
		MaxLevels:           6,
		GeometricErrorFloor: 1.0,
		MinOctantPoints:     200,
		DecayMode:           DecayTwoPhase,
		AbsorbMode:          AbsorbMerge,
		RecenterLeaves:      true,
	}
}

func DefaultOptions() *TilerOptions {
	return &TilerOptions{
		Builder:           DefaultBuilderOptions(),
		GlobalErrorFactor: 0.6,
	}
}

// Minimum number of points an octant needs to be recursed into at the given depth.
// Deeper levels tolerate smaller fragments.
func (b BuilderOptions) MinOctantPointsAt(depth int) int {
	dynamic := b.MaxPointsPerTile / (8 + depth*2)
	if b.MinOctantPoints > dynamic {
		return b.MinOctantPoints
	}
	return dynamic
}

func (b BuilderOptions) Validate() error {
	if b.MaxPointsPerTile <= 0 {
		return errors.Errorf("max points per tile must be positive, got %d", b.MaxPointsPerTile)
	}
	if b.MaxLevels < 0 {
		return errors.Errorf("max levels cannot be negative, got %d", b.MaxLevels)
	}
	if b.GeometricErrorFloor <= 0 {
		return errors.Errorf("geometric error floor must be positive, got %f", b.GeometricErrorFloor)
	}
	if b.MinOctantPoints < 0 {
		return errors.Errorf("min octant points cannot be negative, got %d", b.MinOctantPoints)
	}
	if ParseDecayMode(string(b.DecayMode)) == "" {
		return errors.Errorf("decay mode should be either uniform-halving or two-phase, got %q", b.DecayMode)
	}
	if ParseAbsorbMode(string(b.AbsorbMode)) == "" {
		return errors.Errorf("absorb mode should be one of merge, leaf or drop, got %q", b.AbsorbMode)
	}
	return nil
}

func (opt *TilerOptions) Validate() error {
	if opt.Output == "" {
		return errors.New("output folder not specified")
	}
	if opt.GlobalErrorFactor <= 0 {
		return errors.Errorf("global error factor must be positive, got %f", opt.GlobalErrorFactor)
	}
	return opt.Builder.Validate()
}

// Brings enum values read from flags or yaml to their canonical form
func (opt *TilerOptions) Normalize() {
	if m := ParseDecayMode(string(opt.Builder.DecayMode)); m != "" {
		opt.Builder.DecayMode = m
	}
	if m := ParseAbsorbMode(string(opt.Builder.AbsorbMode)); m != "" {
		opt.Builder.AbsorbMode = m
	}
}

func (opt *TilerOptions) Copy() *TilerOptions {
	newOpt := *opt
	return &newOpt
}
