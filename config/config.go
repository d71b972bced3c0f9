// Package config holds the settings shared by the letter commands
package config

import "flag"
import "fmt"
import "os"
import "strconv"

import "github.com/pkg/errors"
import "gopkg.in/yaml.v3"

import "github.com/neurlang/fidel/datasets"
import "github.com/neurlang/fidel/datasets/letters"
import "github.com/neurlang/fidel/kernel"
import "github.com/neurlang/fidel/svm"

// DefaultLimit is the number of records read from each corpus by default
const DefaultLimit = 500

// Window selects records (Skip, Skip+Limit] of a corpus file
type Window struct {
	Path  string `yaml:"path"`
	Skip  int    `yaml:"skip"`
	Limit int    `yaml:"limit"`
}

// Config configures training, evaluation and drawing
type Config struct {
	Train Window `yaml:"train"`
	Test  Window `yaml:"test"`

	// Threads bounds the worker goroutines, 0 selects the logical core count
	Threads int `yaml:"threads"`

	// Method is "voting" or "elimination"
	Method string `yaml:"method"`

	// Kernel is "polynomial", "linear" or "gaussian"
	Kernel string `yaml:"kernel"`

	// Sigma is the width of the gaussian kernel
	Sigma float64 `yaml:"sigma"`

	// Seed shuffles the training set before learning, 0 keeps file order
	Seed int64 `yaml:"seed"`

	// Downsample trains on 8x8 block counts instead of the full grid
	Downsample bool `yaml:"downsample"`

	PenWidth float32 `yaml:"pen_width"`
}

// Default returns the stock settings
func Default() Config {
	return Config{
		Train:    Window{Path: letters.TrainSet, Limit: DefaultLimit},
		Test:     Window{Path: letters.TestSet, Limit: DefaultLimit},
		Method:   svm.Voting.String(),
		Kernel:   "polynomial",
		Sigma:    4,
		PenWidth: 16,
	}
}

// Load reads a YAML file over the defaults. Keys absent from the file keep
// their default value.
func Load(path string) (Config, error) {
	var c = Default()
	if err := c.merge(path); err != nil {
		return c, err
	}
	return c, c.Validate()
}

func (c *Config) merge(path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return errors.Wrap(err, "config: read")
	}
	return errors.Wrapf(yaml.Unmarshal(data, c), "config: parse %s", path)
}

// Parse registers the settings as flags of fs and parses args. A file named
// by -config is applied first, flags given explicitly override it.
func Parse(fs *flag.FlagSet, args []string) (Config, error) {
	var c = Default()
	var path string
	fs.StringVar(&path, "config", "", "YAML settings file")
	fs.StringVar(&c.Train.Path, "train", c.Train.Path, "training corpus")
	fs.IntVar(&c.Train.Skip, "train-skip", c.Train.Skip, "training records to skip")
	fs.IntVar(&c.Train.Limit, "train-limit", c.Train.Limit, "training records to read, -1 for all")
	fs.StringVar(&c.Test.Path, "test", c.Test.Path, "test corpus")
	fs.IntVar(&c.Test.Skip, "test-skip", c.Test.Skip, "test records to skip")
	fs.IntVar(&c.Test.Limit, "test-limit", c.Test.Limit, "test records to read, -1 for all")
	fs.IntVar(&c.Threads, "threads", c.Threads, "worker goroutines, 0 for one per logical core")
	fs.StringVar(&c.Method, "method", c.Method, "multiclass method: voting or elimination")
	fs.StringVar(&c.Kernel, "kernel", c.Kernel, "pairwise kernel: polynomial, linear or gaussian")
	fs.Float64Var(&c.Sigma, "sigma", c.Sigma, "gaussian kernel width")
	fs.Int64Var(&c.Seed, "seed", c.Seed, "shuffle the training set with this seed, 0 to keep file order")
	fs.BoolVar(&c.Downsample, "downsample", c.Downsample, "train on 8x8 block counts")
	fs.Func("pen", "pen width in canvas pixels", func(s string) error {
		w, err := strconv.ParseFloat(s, 32)
		if err != nil {
			return err
		}
		c.PenWidth = float32(w)
		return nil
	})
	if err := fs.Parse(args); err != nil {
		return c, err
	}
	if path != "" {
		if err := c.merge(path); err != nil {
			return c, err
		}
		if err := fs.Parse(args); err != nil {
			return c, err
		}
	}
	return c, c.Validate()
}

// Load locates and parses the window of its corpus
func (w Window) Load() (datasets.Dataset, error) {
	path, err := letters.Locate(w.Path)
	if err != nil {
		return nil, err
	}
	return letters.Load(path, w.Skip, w.Limit)
}

// ErrInvalid is returned for settings out of range
var ErrInvalid = errors.New("config: invalid setting")

// Validate checks the settings
func (c *Config) Validate() error {
	if _, err := c.ParseMethod(); err != nil {
		return fmt.Errorf("%w: %w", ErrInvalid, err)
	}
	if _, err := c.ParseKernel(); err != nil {
		return fmt.Errorf("%w: %w", ErrInvalid, err)
	}
	for _, w := range []Window{c.Train, c.Test} {
		if w.Skip < 0 {
			return errors.Wrapf(ErrInvalid, "negative skip %d for %s", w.Skip, w.Path)
		}
	}
	if c.PenWidth <= 0 {
		return errors.Wrapf(ErrInvalid, "pen width %v", c.PenWidth)
	}
	if c.Threads < 0 {
		return errors.Wrapf(ErrInvalid, "negative threads %d", c.Threads)
	}
	return nil
}

// ParseKernel returns the configured pairwise kernel
func (c *Config) ParseKernel() (kernel.Kernel, error) {
	return kernel.Parse(c.Kernel, c.Sigma)
}

// ParseMethod returns the configured multiclass method
func (c *Config) ParseMethod() (svm.Method, error) {
	return svm.ParseMethod(c.Method)
}
