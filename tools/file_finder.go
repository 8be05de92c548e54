package tools

import (
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/pkg/errors"

	"github.com/ecopia-map/pnts_tiler/internal/tiler"
)

var sourceExtensions = map[string]bool{
	".las": true,
	".laz": true,
}

type FileFinder interface {
	GetSourceFilesToProcess(opts *tiler.TilerOptions) ([]string, error)
}

type StandardFileFinder struct{}

func NewStandardFileFinder() FileFinder {
	return &StandardFileFinder{}
}

// Returns the point files to read. If the input is a file it is returned as is, otherwise the input
// folder (an EPT directory or a plain folder) is walked recursively. Paths are sorted so that
// extraction order, and with it the built tree, does not depend on the file system.
func (f *StandardFileFinder) GetSourceFilesToProcess(opts *tiler.TilerOptions) ([]string, error) {
	info, err := os.Stat(opts.Input)
	if err != nil {
		return nil, &tiler.MissingInputError{Path: opts.Input, Reason: "input file/folder not found"}
	}
	if !info.IsDir() {
		return []string{opts.Input}, nil
	}

	var files = make([]string, 0)
	err = filepath.Walk(
		opts.Input,
		func(path string, info os.FileInfo, err error) error {
			if err != nil {
				return err
			}
			if !info.IsDir() && sourceExtensions[strings.ToLower(filepath.Ext(info.Name()))] {
				files = append(files, path)
			}
			return nil
		},
	)
	if err != nil {
		return nil, errors.Wrapf(err, "walking input folder %s", opts.Input)
	}

	if len(files) == 0 {
		return nil, &tiler.MissingInputError{Path: opts.Input, Reason: "no .las/.laz files found"}
	}

	sort.Strings(files)
	return files, nil
}
