// Package config reads the run configuration from a YAML file.
package config

import (
	"os"

	"github.com/pkg/errors"
	"gopkg.in/yaml.v3"

	"github.com/tspmtz/tspmtz/internal/mtz"
)

// Defaults used when a field is absent.
const (
	DefaultInput     = "TSP_Data.txt"
	DefaultModelFile = "TSP_MTZ.lp"
	DefaultDelimiter = ","
	DefaultLogLevel  = "info"
)

// Config is one run's settings.
type Config struct {
	Input     string `yaml:"input"`
	Delimiter string `yaml:"delimiter"`
	ModelFile string `yaml:"model_file"`

	MIPRelGap    float64 `yaml:"mip_rel_gap"`
	MIPAbsGap    float64 `yaml:"mip_abs_gap"`
	Presolve     string  `yaml:"presolve"`
	TimeLimit    float64 `yaml:"time_limit"`
	Threads      int     `yaml:"threads"`
	SolverOutput bool    `yaml:"solver_output"`

	// Arcs is "upper" or "directed"; see mtz.Kind.
	Arcs string `yaml:"arcs"`

	LogLevel string `yaml:"log_level"`
}

// Default returns the configuration of a run without a config file.
func Default() *Config {
	return &Config{
		Input:     DefaultInput,
		Delimiter: DefaultDelimiter,
		ModelFile: DefaultModelFile,
		MIPRelGap: mtz.DefaultMIPRelGap,
		Arcs:      mtz.Upper.String(),
		LogLevel:  DefaultLogLevel,
	}
}

// Load reads path over the defaults and validates the result.
func Load(path string) (*Config, error) {
	cfg := Default()
	file, err := os.Open(path)
	if err != nil {
		return nil, errors.Wrap(err, "config")
	}
	defer file.Close()

	d := yaml.NewDecoder(file)
	d.KnownFields(true)
	if err := d.Decode(cfg); err != nil {
		return nil, errors.Wrapf(err, "config: decode %s", path)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate rejects settings the solver or loader cannot use.
func (c *Config) Validate() error {
	if c.Input == "" {
		return errors.New("config: input is empty")
	}
	if len([]rune(c.Delimiter)) != 1 {
		return errors.Errorf("config: delimiter %q must be one character", c.Delimiter)
	}
	if c.MIPRelGap < 0 {
		return errors.Errorf("config: mip_rel_gap %g is negative", c.MIPRelGap)
	}
	if c.MIPAbsGap < 0 {
		return errors.Errorf("config: mip_abs_gap %g is negative", c.MIPAbsGap)
	}
	switch c.Presolve {
	case "", "off", "choose", "on":
	default:
		return errors.Errorf("config: presolve %q is not off, choose or on", c.Presolve)
	}
	if c.TimeLimit < 0 {
		return errors.Errorf("config: time_limit %g is negative", c.TimeLimit)
	}
	if c.Threads < 0 {
		return errors.Errorf("config: threads %d is negative", c.Threads)
	}
	if _, err := mtz.ParseKind(c.Arcs); err != nil {
		return errors.Wrap(err, "config")
	}
	return nil
}

// Kind returns the arc set kind. Call after Validate.
func (c *Config) Kind() mtz.Kind {
	k, _ := mtz.ParseKind(c.Arcs)
	return k
}

// DelimiterRune returns the field delimiter. Call after Validate.
func (c *Config) DelimiterRune() rune {
	return []rune(c.Delimiter)[0]
}

// SolveOptions maps the solver settings.
func (c *Config) SolveOptions() mtz.Options {
	return mtz.Options{
		MIPRelGap: c.MIPRelGap,
		MIPAbsGap: c.MIPAbsGap,
		Presolve:  c.Presolve,
		TimeLimit: c.TimeLimit,
		Threads:   c.Threads,
		Output:    c.SolverOutput,
		ModelFile: c.ModelFile,
	}
}
