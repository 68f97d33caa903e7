package main

import (
	"fmt"

	"github.com/BurntSushi/toml"
)

// fileConfig mirrors the command line flags. A value from the file is used
// only when the corresponding flag was not set on the command line.
type fileConfig struct {
	In      string `toml:"in"`
	Out     string `toml:"out"`
	Width   int    `toml:"width"`
	Height  int    `toml:"height"`
	Perc    bool   `toml:"perc"`
	Square  bool   `toml:"square"`
	Scale   bool   `toml:"scale"`
	Conc    int    `toml:"conc"`
	Verbose bool   `toml:"verbose"`

	meta toml.MetaData
}

func loadConfig(path string) (*fileConfig, error) {
	var cfg fileConfig

	md, err := toml.DecodeFile(path, &cfg)
	if err != nil {
		return nil, fmt.Errorf("unable to read the config file: %w", err)
	}
	if undecoded := md.Undecoded(); len(undecoded) > 0 {
		return nil, fmt.Errorf("unknown config keys in %s: %v", path, undecoded)
	}
	cfg.meta = md

	return &cfg, nil
}

// apply copies the values defined in the file into opts, skipping the flags reported as changed.
func (c *fileConfig) apply(opts *options, changed func(flag string) bool) {
	use := func(key string) bool {
		return c.meta.IsDefined(key) && !changed(key)
	}
	if use("in") {
		opts.source = c.In
	}
	if use("out") {
		opts.destination = c.Out
	}
	if use("width") {
		opts.newWidth = c.Width
	}
	if use("height") {
		opts.newHeight = c.Height
	}
	if use("perc") {
		opts.percentage = c.Perc
	}
	if use("square") {
		opts.square = c.Square
	}
	if use("scale") {
		opts.scale = c.Scale
	}
	if use("conc") {
		opts.workers = c.Conc
	}
	if use("verbose") {
		opts.verbose = c.Verbose
	}
}
