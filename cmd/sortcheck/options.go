package main

import (
	"github.com/BurntSushi/toml"
	"github.com/cockroachdb/errors"
	"github.com/spf13/pflag"

	"github.com/lanrat/arraysort"
)

// options controls a sortcheck session. They are read from an optional TOML
// file and then overridden by any flag given on the command line.
type options struct {
	Iterations int      `toml:"iterations"`
	Workers    int      `toml:"workers"`
	MaxLength  int      `toml:"max_length"`
	Seed       int64    `toml:"seed"`
	Shapes     []string `toml:"shapes"`
	Verbose    bool     `toml:"verbose"`

	Engine engineOptions `toml:"engine"`
}

// engineOptions mirror arraysort.Config. Zero values keep the engine defaults.
type engineOptions struct {
	MinMerge         int `toml:"min_merge"`
	MinGallop        int `toml:"min_gallop"`
	InitialTmpLength int `toml:"initial_tmp_length"`
}

func defaultOptions() options {
	return options{
		Iterations: 1000,
		Workers:    4,
		MaxLength:  2000,
		Seed:       1,
		Shapes:     shapeNames(),
	}
}

func (o *options) config() *arraysort.Config {
	return &arraysort.Config{
		MinMerge:         o.Engine.MinMerge,
		MinGallop:        o.Engine.MinGallop,
		InitialTmpLength: o.Engine.InitialTmpLength,
	}
}

func (o *options) validate() error {
	if o.Iterations < 0 {
		return errors.Newf("iterations must not be negative, got %d", o.Iterations)
	}
	if o.Workers < 1 {
		return errors.Newf("workers must be positive, got %d", o.Workers)
	}
	if o.MaxLength < 0 {
		return errors.Newf("max length must not be negative, got %d", o.MaxLength)
	}
	if len(o.Shapes) == 0 {
		return errors.New("no shapes selected")
	}
	for _, s := range o.Shapes {
		if _, ok := shapes[s]; !ok {
			return errors.Newf("unknown shape %q", s)
		}
	}
	return nil
}

// flagValues holds the values bound to the command line flags.
type flagValues struct {
	configPath string
	opts       options
}

func (f *flagValues) register(fs *pflag.FlagSet) {
	d := defaultOptions()
	fs.StringVarP(&f.configPath, "config", "c", "", "TOML file with sortcheck options")
	fs.IntVarP(&f.opts.Iterations, "iterations", "n", d.Iterations, "number of inputs to check")
	fs.IntVarP(&f.opts.Workers, "workers", "w", d.Workers, "number of inputs checked concurrently")
	fs.IntVar(&f.opts.MaxLength, "max-len", d.MaxLength, "largest input length")
	fs.Int64Var(&f.opts.Seed, "seed", d.Seed, "random seed")
	fs.StringSliceVar(&f.opts.Shapes, "shapes", d.Shapes, "input shapes to generate")
	fs.BoolVarP(&f.opts.Verbose, "verbose", "v", false, "log every check at debug level")
	fs.IntVar(&f.opts.Engine.MinMerge, "min-merge", 0, "engine MinMerge, 0 for the default")
	fs.IntVar(&f.opts.Engine.MinGallop, "min-gallop", 0, "engine MinGallop, 0 for the default")
}

// load reads the config file, if any, and applies the flags that were set
// explicitly on top of it.
func (f *flagValues) load(fs *pflag.FlagSet) (options, error) {
	opts := defaultOptions()
	if f.configPath != "" {
		if _, err := toml.DecodeFile(f.configPath, &opts); err != nil {
			return options{}, errors.Wrapf(err, "reading %s", f.configPath)
		}
	}
	fs.Visit(func(fl *pflag.Flag) {
		switch fl.Name {
		case "iterations":
			opts.Iterations = f.opts.Iterations
		case "workers":
			opts.Workers = f.opts.Workers
		case "max-len":
			opts.MaxLength = f.opts.MaxLength
		case "seed":
			opts.Seed = f.opts.Seed
		case "shapes":
			opts.Shapes = f.opts.Shapes
		case "verbose":
			opts.Verbose = f.opts.Verbose
		case "min-merge":
			opts.Engine.MinMerge = f.opts.Engine.MinMerge
		case "min-gallop":
			opts.Engine.MinGallop = f.opts.Engine.MinGallop
		}
	})
	if err := opts.validate(); err != nil {
		return options{}, err
	}
	return opts, nil
}
