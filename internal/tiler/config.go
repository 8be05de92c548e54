package tiler

import (
	"os"

	"github.com/pkg/errors"
	"gopkg.in/yaml.v3"
)

// Name of the file recording the options next to a generated tileset
const OptionsFileName = "tiler.yaml"

// LoadOptionsFile merges the yaml file at path over opts. Keys missing from the file keep their current value.
func LoadOptionsFile(opts *TilerOptions, path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return errors.Wrapf(err, "reading config file %s", path)
	}
	if err := yaml.Unmarshal(data, opts); err != nil {
		return errors.Wrapf(err, "parsing config file %s", path)
	}
	opts.Normalize()
	return nil
}

// SaveOptionsFile writes opts as yaml, used to record the settings a tileset was built with.
func SaveOptionsFile(opts *TilerOptions, path string) error {
	data, err := yaml.Marshal(opts)
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0644)
}
