package tools

import (
	"flag"
	"io"

	"github.com/golang/glog"

	"github.com/ecopia-map/pnts_tiler/internal/tiler"
)

const (
	CommandIndex  = "index"
	CommandVerify = "verify"
)

type FlagsGlobal struct {
	Help    *bool `json:"help"`
	Version *bool `json:"version"`
}

type TilerFlags struct {
	Input             *string  `json:"input"`
	Output            *string  `json:"output"`
	Config            *string  `json:"config"`
	Srid              *int     `json:"srid"`
	ZOffset           *float64 `json:"zoffset"`
	MaxNumPoints      *int     `json:"points_max_num"`
	MaxLevels         *int     `json:"levels_max"`
	MinOctantPoints   *int     `json:"octant_min_points"`
	ErrorFloor        *float64 `json:"error_floor"`
	GlobalErrorFactor *float64 `json:"global_error_factor"`
	DecayMode         *string  `json:"decay"`
	AbsorbMode        *string  `json:"absorb"`
	Recenter          *bool    `json:"recenter"`
	SkipReprojection  *bool    `json:"skip_reprojection"`
	Force             *bool    `json:"force"`
}

type FlagsForCommandIndex struct {
	TilerFlags
	Silent       *bool
	LogTimestamp *bool
	Help         *bool

	// canonical names of the flags explicitly given on the command line
	set map[string]bool
}

type FlagsForCommandVerify struct {
	Output *string
}

func ParseFlagsGlobal() FlagsGlobal {
	help := defineBoolFlag("help", "h", false, "Displays this help.")
	// -v belongs to glog verbosity
	version := defineBoolFlag("version", "", false, "Displays the version of pnts_tiler.")

	flag.Parse()

	return FlagsGlobal{
		Help:    help,
		Version: version,
	}
}

func ParseFlagsForCommandIndex(args []string) FlagsForCommandIndex {
	glog.Infoln("index args", FmtJSONString(args))

	flagCommand := flag.NewFlagSet("command-index", flag.ExitOnError)
	shorthands := make(map[string]string)
	flags := defineFlagsForCommandIndex(flagCommand, shorthands)

	flagCommand.Parse(args)

	flagCommand.Visit(func(f *flag.Flag) {
		if name, ok := shorthands[f.Name]; ok {
			flags.set[name] = true
		} else {
			flags.set[f.Name] = true
		}
	})

	return flags
}

// Writes the usage of the index command flags to w
func PrintFlagsForCommandIndex(w io.Writer) {
	flagCommand := flag.NewFlagSet("command-index", flag.ContinueOnError)
	defineFlagsForCommandIndex(flagCommand, make(map[string]string))
	flagCommand.SetOutput(w)
	flagCommand.PrintDefaults()
}

func defineFlagsForCommandIndex(flagCommand *flag.FlagSet, shorthands map[string]string) FlagsForCommandIndex {
	defaults := tiler.DefaultOptions()

	input := defineStringFlagCommand(flagCommand, shorthands, "input", "i", "", "Specifies the input EPT folder, las file or folder of las files.")
	output := defineStringFlagCommand(flagCommand, shorthands, "output", "o", "", "Specifies the output folder where to write the tileset data.")
	config := defineStringFlagCommand(flagCommand, shorthands, "config", "c", "", "Optional yaml file with tiler options. Flags given explicitly override it.")
	srid := defineIntFlagCommand(flagCommand, shorthands, "srid", "e", 0, "EPSG srid code of input points. 0 reads it from ept.json.")
	zOffset := defineFloat64FlagCommand(flagCommand, shorthands, "zoffset", "z", 0, "Vertical offset to apply to points, in meters.")
	maxNumPoints := defineIntFlagCommand(flagCommand, shorthands, "points-max-num", "m", defaults.Builder.MaxPointsPerTile, "Maximum number of points per tile.")
	maxLevels := defineIntFlagCommand(flagCommand, shorthands, "levels-max", "l", defaults.Builder.MaxLevels, "Maximum depth of the octree.")
	minOctantPoints := defineIntFlagCommand(flagCommand, shorthands, "octant-min-points", "n", defaults.Builder.MinOctantPoints, "Fixed floor of the minimum number of points an octant needs to become a tile of its own.")
	errorFloor := defineFloat64FlagCommand(flagCommand, shorthands, "error-floor", "", defaults.Builder.GeometricErrorFloor, "Lowest geometric error assigned to a node.")
	globalErrorFactor := defineFloat64FlagCommand(flagCommand, shorthands, "global-error-factor", "", defaults.GlobalErrorFactor, "Tileset geometric error as a fraction of the root bounding box diagonal.")
	decayMode := defineStringFlagCommand(flagCommand, shorthands, "decay", "d", defaults.Builder.DecayMode.String(), "Geometric error decay, can be 'uniform-halving' or 'two-phase'.")
	absorbMode := defineStringFlagCommand(flagCommand, shorthands, "absorb", "a", defaults.Builder.AbsorbMode.String(), "What happens to points of octants too small to be tiles: 'merge' into a sibling, force a 'leaf', or 'drop' them.")
	recenter := defineBoolFlagCommand(flagCommand, shorthands, "recenter", "r", defaults.Builder.RecenterLeaves, "Stores tile positions relative to the tile centroid (RTC_CENTER).")
	skipReprojection := defineBoolFlagCommand(flagCommand, shorthands, "skip-reprojection", "", false, "Input coordinates are already earth-centered cartesian.")
	force := defineBoolFlagCommand(flagCommand, shorthands, "force", "f", false, "Regenerates the tileset even if a valid one exists in the output folder.")

	silent := defineBoolFlagCommand(flagCommand, shorthands, "silent", "s", false, "Use to suppress all the non-error messages.")
	logTimestamp := defineBoolFlagCommand(flagCommand, shorthands, "timestamp", "t", false, "Adds timestamp to log messages.")
	help := defineBoolFlagCommand(flagCommand, shorthands, "help", "h", false, "Displays this help.")

	return FlagsForCommandIndex{
		TilerFlags: TilerFlags{
			Input:             input,
			Output:            output,
			Config:            config,
			Srid:              srid,
			ZOffset:           zOffset,
			MaxNumPoints:      maxNumPoints,
			MaxLevels:         maxLevels,
			MinOctantPoints:   minOctantPoints,
			ErrorFloor:        errorFloor,
			GlobalErrorFactor: globalErrorFactor,
			DecayMode:         decayMode,
			AbsorbMode:        absorbMode,
			Recenter:          recenter,
			SkipReprojection:  skipReprojection,
			Force:             force,
		},
		Silent:       silent,
		LogTimestamp: logTimestamp,
		Help:         help,
		set:          make(map[string]bool),
	}
}

// Copies the flags explicitly given on the command line into opts
func (f FlagsForCommandIndex) ApplyTo(opts *tiler.TilerOptions) {
	if f.set["input"] {
		opts.Input = *f.Input
	}
	if f.set["output"] {
		opts.Output = *f.Output
	}
	if f.set["srid"] {
		opts.Srid = *f.Srid
	}
	if f.set["zoffset"] {
		opts.ZOffset = *f.ZOffset
	}
	if f.set["points-max-num"] {
		opts.Builder.MaxPointsPerTile = *f.MaxNumPoints
	}
	if f.set["levels-max"] {
		opts.Builder.MaxLevels = *f.MaxLevels
	}
	if f.set["octant-min-points"] {
		opts.Builder.MinOctantPoints = *f.MinOctantPoints
	}
	if f.set["error-floor"] {
		opts.Builder.GeometricErrorFloor = *f.ErrorFloor
	}
	if f.set["global-error-factor"] {
		opts.GlobalErrorFactor = *f.GlobalErrorFactor
	}
	if f.set["decay"] {
		opts.Builder.DecayMode = tiler.ParseDecayMode(*f.DecayMode)
	}
	if f.set["absorb"] {
		opts.Builder.AbsorbMode = tiler.ParseAbsorbMode(*f.AbsorbMode)
	}
	if f.set["recenter"] {
		opts.Builder.RecenterLeaves = *f.Recenter
	}
	if f.set["skip-reprojection"] {
		opts.SkipReprojection = *f.SkipReprojection
	}
	if f.set["force"] {
		opts.ForceRebuild = *f.Force
	}
}

func ParseFlagsForCommandVerify(args []string) FlagsForCommandVerify {
	glog.Infoln("verify args", FmtJSONString(args))

	flagCommand := flag.NewFlagSet("command-verify", flag.ExitOnError)
	shorthands := make(map[string]string)

	output := defineStringFlagCommand(flagCommand, shorthands, "output", "o", "", "Specifies the tileset folder to verify.")

	flagCommand.Parse(args)

	return FlagsForCommandVerify{
		Output: output,
	}
}

func defineBoolFlag(name string, shortHand string, defaultValue bool, usage string) *bool {
	var output bool
	flag.BoolVar(&output, name, defaultValue, usage)
	if shortHand != name && shortHand != "" {
		flag.BoolVar(&output, shortHand, defaultValue, usage+" (shorthand for "+name+")")
	}
	return &output
}

func defineStringFlagCommand(flagCommand *flag.FlagSet, shorthands map[string]string, name string, shortHand string, defaultValue string, usage string) *string {
	var output string
	flagCommand.StringVar(&output, name, defaultValue, usage)
	if shortHand != name && shortHand != "" {
		flagCommand.StringVar(&output, shortHand, defaultValue, usage+" (shorthand for "+name+")")
		shorthands[shortHand] = name
	}

	return &output
}

func defineIntFlagCommand(flagCommand *flag.FlagSet, shorthands map[string]string, name string, shortHand string, defaultValue int, usage string) *int {
	var output int
	flagCommand.IntVar(&output, name, defaultValue, usage)
	if shortHand != name && shortHand != "" {
		flagCommand.IntVar(&output, shortHand, defaultValue, usage+" (shorthand for "+name+")")
		shorthands[shortHand] = name
	}

	return &output
}

func defineFloat64FlagCommand(flagCommand *flag.FlagSet, shorthands map[string]string, name string, shortHand string, defaultValue float64, usage string) *float64 {
	var output float64
	flagCommand.Float64Var(&output, name, defaultValue, usage)
	if shortHand != name && shortHand != "" {
		flagCommand.Float64Var(&output, shortHand, defaultValue, usage+" (shorthand for "+name+")")
		shorthands[shortHand] = name
	}
	return &output
}

func defineBoolFlagCommand(flagCommand *flag.FlagSet, shorthands map[string]string, name string, shortHand string, defaultValue bool, usage string) *bool {
	var output bool
	flagCommand.BoolVar(&output, name, defaultValue, usage)
	if shortHand != name && shortHand != "" {
		flagCommand.BoolVar(&output, shortHand, defaultValue, usage+" (shorthand for "+name+")")
		shorthands[shortHand] = name
	}
	return &output
}
