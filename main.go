/*
 * This file is part of the Go Cesium Point Cloud Tiler distribution (https://github.com/mfbonfigli/gocesiumtiler).
 * Copyright (c) 2019 Massimo Federico Bonfigli - m.federico.bonfigli@gmail.com
 *
 * This program is free software; you can redistribute it and/or modify it
 * under the terms of the GNU Lesser General Public License Version 3 as
 * published by the Free Software Foundation;
 *
 * This program is distributed in the hope that it will be useful,
 * but WITHOUT ANY WARRANTY; without even the implied warranty of
 * MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the GNU
 * Lesser General Public License for more details.
 *
 * You should have received a copy of the GNU Lesser General Public License
 * along with this program. If not, see <http://www.gnu.org/licenses/>.
 *
 * This software also uses third party components. You can find information
 * on their credits and licensing in the file LICENSE-3RD-PARTIES.md that
 * you should have received togheter with the source code.
 */


package main

import (
	"flag"
	"fmt"
	"os"
	"time"

	"github.com/golang/glog"

	"github.com/ecopia-map/pnts_tiler/internal/tiler"
	"github.com/ecopia-map/pnts_tiler/pkg"
	"github.com/ecopia-map/pnts_tiler/pkg/algorithm_manager/std_algorithm_manager"
	"github.com/ecopia-map/pnts_tiler/tools"
)

const VERSION = "2.0.0"

const logo = `
             _          _   _ _
 _ __  _ __ | |_ ___   | |_(_) | ___ _ __
| '_ \| '_ \| __/ __|  | __| | |/ _ \ '__|
| |_) | | | | |_\__ \  | |_| | |  __/ |
| .__/|_| |_|\__|___/___\__|_|_|\___|_|
|_|  A 3D Tiles point cloud generator written in golang
`

func main() {
	defer glog.Flush()

	flagsGlobal := tools.ParseFlagsGlobal()
	glog.Infoln(tools.FmtJSONString(flagsGlobal))

	if *flagsGlobal.Help {
		showHelp()
		return
	}
	if *flagsGlobal.Version {
		printVersion()
		return
	}

	args := flag.Args()
	if len(args) == 0 {
		glog.Fatal("Please specify a subcommand [index|verify].")
	}
	cmd, args := args[0], args[1:]

	switch cmd {
	case tools.CommandIndex:
		mainCommandIndex(args)
	case tools.CommandVerify:
		mainCommandVerify(args)
	default:
		glog.Fatalf("Unrecognized command [%q]. Command must be one of [index|verify]", cmd)
	}
}

func mainCommandIndex(args []string) {
	// Retrieve command line args
	flags := tools.ParseFlagsForCommandIndex(args)

	// Prints the command line flag description
	if *flags.Help {
		showHelp()
		return
	}

	// set logging and timestamp logging
	if *flags.Silent {
		tools.DisableLogger()
	} else {
		printLogo()
	}
	if !*flags.LogTimestamp {
		tools.DisableLoggerTimestamp()
	}

	// defaults, then the config file, then the flags given explicitly
	opts := tiler.DefaultOptions()
	if *flags.Config != "" {
		if err := tiler.LoadOptionsFile(opts, *flags.Config); err != nil {
			glog.Fatal(err)
		}
	}
	flags.ApplyTo(opts)
	opts.Normalize()

	// Validate TilerOptions
	if msg, res := validateOptionsForCommandIndex(opts); !res {
		glog.Fatal("Error parsing input parameters: " + msg)
	}
	glog.Infoln("options", tools.FmtJSONString(opts))

	// Starts the tiler
	defer timeTrack(time.Now(), "tiler")
	var tilerIndex pkg.ITiler = pkg.NewTiler(tools.NewStandardFileFinder(), std_algorithm_manager.NewAlgorithmManager(opts))
	if err := tilerIndex.RunTiler(opts); err != nil {
		glog.Fatal("Error while tiling: ", err)
	}
	tools.LogOutput("Conversion Completed")
}

// Validates the input options provided to the command line tool checking
// that the input exists and the knobs are in range
func validateOptionsForCommandIndex(opts *tiler.TilerOptions) (string, bool) {
	if opts.Input == "" {
		return "Input file/folder not specified", false
	}
	if _, err := os.Stat(opts.Input); os.IsNotExist(err) {
		return "Input file/folder not found", false
	}
	if err := opts.Validate(); err != nil {
		return err.Error(), false
	}
	return "", true
}

func mainCommandVerify(args []string) {
	flags := tools.ParseFlagsForCommandVerify(args)
	tools.DisableLoggerTimestamp()

	if *flags.Output == "" {
		glog.Fatal("Error parsing input parameters: output folder not specified")
	}

	var tilerVerify pkg.ITiler = pkg.NewTilerVerify()
	if err := tilerVerify.RunTiler(&tiler.TilerOptions{Output: *flags.Output}); err != nil {
		glog.Flush()
		fmt.Println(err)
		os.Exit(1)
	}
}

func timeTrack(start time.Time, name string) {
	elapsed := time.Since(start)
	tools.LogOutput(fmt.Sprintf("%s took %s", name, elapsed))
}

func printLogo() {
	fmt.Println(logo)
}

func showHelp() {
	printLogo()
	fmt.Println("***")
	fmt.Println("pnts_tiler converts LAS and EPT point clouds into a 3D Tiles tileset of pnts tiles")
	printVersion()
	fmt.Println("***")
	fmt.Println("")
	fmt.Println("Usage: pnts_tiler [global flags] index|verify [command flags]")
	fmt.Println("Global flags: ")
	flag.CommandLine.SetOutput(os.Stdout)
	flag.PrintDefaults()
	fmt.Println("")
	fmt.Println("index flags: ")
	tools.PrintFlagsForCommandIndex(os.Stdout)
}

func printVersion() {
	fmt.Println("v." + VERSION)
}
