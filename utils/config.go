// Copyright 2025 Sonic Labs
// This file is part of Aida Testing Infrastructure for Sonic
//
// Aida is free software: you can redistribute it and/or modify
// it under the terms of the GNU Lesser General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
//
// Aida is distributed in the hope that it will be useful,
// but WITHOUT ANY WARRANTY; without even the implied warranty of
// MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE. See the
// GNU Lesser General Public License for more details.
//
// You should have received a copy of the GNU Lesser General Public License
// along with Aida. If not, see <http://www.gnu.org/licenses/>.

package utils

import (
	"github.com/0xsoniclabs/occupancy/logger"
	"github.com/cockroachdb/errors"
	"github.com/urfave/cli/v2"
)

// Config summarizes the command line parameters of an occupancy command.
type Config struct {
	AppName     string
	CommandName string

	Algorithm  string    // log-probability algorithm
	Chart      string    // html chart output
	Confidence float64   // confidence level of validation
	Count      int       // number of draws
	LogLevel   string    // level of the logging
	Output     string    // table output file
	Pattern    string    // occupancy pattern
	Population []int     // n of binomial coefficients
	RandomSeed int64     // seed of the random number generator
	ReportDb   string    // sqlite3 file for validation trials
	Resample   int       // resamples per validation trial
	Samples    int       // number of sampled patterns
	Seeded     bool      // true if the random seed was given
	Selection  []int     // k of binomial coefficients
	Trials     int       // number of validation trials
	Weights    []float64 // relative bin likelihoods
}

// NewConfig creates and validates the configuration of a command.
func NewConfig(ctx *cli.Context) (*Config, error) {
	cfg := createConfigFromFlags(ctx)
	if err := cfg.check(); err != nil {
		return nil, errors.Wrapf(err, "invalid configuration of %v", cfg.CommandName)
	}
	return cfg, nil
}

// createConfigFromFlags returns a Config instance with user specified values or the default ones.
func createConfigFromFlags(ctx *cli.Context) *Config {
	cfg := &Config{
		AppName:     ctx.App.HelpName,
		CommandName: ctx.Command.Name,

		Algorithm:  getFlagValue(ctx, &AlgorithmFlag).(string),
		Chart:      getFlagValue(ctx, &ChartFlag).(string),
		Confidence: getFlagValue(ctx, &ConfidenceFlag).(float64),
		Count:      getFlagValue(ctx, &CountFlag).(int),
		LogLevel:   getFlagValue(ctx, &logger.LogLevelFlag).(string),
		Output:     getFlagValue(ctx, &OutputFlag).(string),
		Pattern:    getFlagValue(ctx, &PatternFlag).(string),
		Population: getFlagValue(ctx, &PopulationFlag).([]int),
		RandomSeed: getFlagValue(ctx, &RandomSeedFlag).(int64),
		ReportDb:   getFlagValue(ctx, &ReportDbFlag).(string),
		Resample:   getFlagValue(ctx, &ResampleFlag).(int),
		Samples:    getFlagValue(ctx, &SamplesFlag).(int),
		Seeded:     ctx.IsSet(RandomSeedFlag.Name),
		Selection:  getFlagValue(ctx, &SelectionFlag).([]int),
		Trials:     getFlagValue(ctx, &TrialsFlag).(int),
		Weights:    getFlagValue(ctx, &WeightsFlag).([]float64),
	}
	return cfg
}

// check validates ranges of the configuration values.
func (cfg *Config) check() error {
	if cfg.Count < 0 {
		return errors.Newf("number of draws (%d) must be non-negative", cfg.Count)
	}
	if cfg.Samples < 0 {
		return errors.Newf("number of samples (%d) must be non-negative", cfg.Samples)
	}
	if cfg.Trials < 1 || cfg.Resample < 1 {
		return errors.Newf("trials (%d) and resamples (%d) must be positive", cfg.Trials, cfg.Resample)
	}
	if !(cfg.Confidence > 0 && cfg.Confidence < 1) {
		return errors.Newf("confidence (%v) must be in the interval (0,1)", cfg.Confidence)
	}
	if len(cfg.Population) != len(cfg.Selection) {
		return errors.Newf("number of population sizes (%d) mismatches number of selection sizes (%d)", len(cfg.Population), len(cfg.Selection))
	}
	return nil
}

// isCommandFlag returns true if the flag is defined by the current command.
func isCommandFlag(ctx *cli.Context, name string) bool {
	if ctx.Command == nil {
		return false
	}
	for _, f := range ctx.Command.Flags {
		for _, n := range f.Names() {
			if n == name {
				return true
			}
		}
	}
	return false
}

// getFlagValue returns the value specified by the user if the flag is present in the cli context,
// otherwise it returns the default value of the flag.
func getFlagValue(ctx *cli.Context, flag cli.Flag) any {
	name := flag.Names()[0]
	present := isCommandFlag(ctx, name)
	switch f := flag.(type) {
	case *cli.StringFlag:
		if present {
			return ctx.String(name)
		}
		return f.Value
	case *cli.IntFlag:
		if present {
			return ctx.Int(name)
		}
		return f.Value
	case *cli.Int64Flag:
		if present {
			return ctx.Int64(name)
		}
		return f.Value
	case *cli.Float64Flag:
		if present {
			return ctx.Float64(name)
		}
		return f.Value
	case *cli.Float64SliceFlag:
		if present {
			return ctx.Float64Slice(name)
		}
		if f.Value != nil {
			return f.Value.Value()
		}
		return []float64(nil)
	case *cli.IntSliceFlag:
		if present {
			return ctx.IntSlice(name)
		}
		if f.Value != nil {
			return f.Value.Value()
		}
		return []int(nil)
	}
	panic("unsupported flag type")
}
