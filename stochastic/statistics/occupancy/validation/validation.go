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

// Package validation checks computed occupancy probabilities against
// empirical frequencies. A trial samples a pattern, resamples the process
// many times, and counts how often the pattern reappears; the deviation
// from the computed probability is judged with a two-sided z-test.
package validation

import (
	"math"
	"time"

	"github.com/0xsoniclabs/occupancy/stochastic/statistics/logmath"
	"github.com/0xsoniclabs/occupancy/stochastic/statistics/occupancy"
	"github.com/cockroachdb/errors"
	"github.com/op/go-logging"
	"gonum.org/v1/gonum/stat/distuv"
)

// Config parameterizes a validation run.
type Config struct {
	Count      int     // number of draws per pattern
	Trials     int     // number of sampled patterns to check
	Resample   int     // number of resamples per trial
	Confidence float64 // confidence level of the z-test, e.g., 0.95
}

// Trial is the outcome of checking a single sampled pattern.
type Trial struct {
	Pattern   occupancy.Pattern
	Computed  float64 // probability computed by the model
	Empirical float64 // observed frequency among the resamples
	Z         float64 // standardized deviation
	Exceeded  bool    // |Z| is above the critical value
}

// Result summarizes a validation run.
type Result struct {
	Trials   []Trial
	Critical float64 // critical value of |Z|
	Exceeded int     // number of trials outside the confidence bound
}

// Passed reports whether at most the given fraction of trials exceeded the
// confidence bound.
func (r *Result) Passed(fraction float64) bool {
	return float64(r.Exceeded) <= fraction*float64(len(r.Trials))
}

func (cfg Config) check() error {
	if cfg.Count < 0 {
		return errors.Wrapf(logmath.ErrInvalidArgument, "negative number of draws (%d)", cfg.Count)
	}
	if cfg.Trials < 1 || cfg.Resample < 1 {
		return errors.Wrapf(logmath.ErrInvalidArgument, "trials (%d) and resamples (%d) must be positive", cfg.Trials, cfg.Resample)
	}
	if !(cfg.Confidence > 0 && cfg.Confidence < 1) {
		return errors.Wrapf(logmath.ErrOutOfRange, "confidence (%v) must be in (0,1)", cfg.Confidence)
	}
	return nil
}

// Run performs the validation trials. All randomness is drawn from rng,
// which is created per call if nil. Progress is reported to log if given.
func Run(m *occupancy.Model, cfg Config, rng occupancy.RandomSource, log *logging.Logger) (*Result, error) {
	if err := cfg.check(); err != nil {
		return nil, errors.Wrap(err, "validation")
	}
	if rng == nil {
		rng = occupancy.NewSource(uint64(time.Now().UnixNano()))
	}
	critical := distuv.UnitNormal.Quantile(1 - (1-cfg.Confidence)/2)
	result := &Result{
		Trials:   make([]Trial, 0, cfg.Trials),
		Critical: critical,
	}
	for i := range cfg.Trials {
		trial, err := runTrial(m, cfg, rng)
		if err != nil {
			return nil, errors.Wrapf(err, "trial %d", i)
		}
		trial.Exceeded = math.Abs(trial.Z) > critical
		if trial.Exceeded {
			result.Exceeded++
		}
		result.Trials = append(result.Trials, trial)
		if log != nil {
			log.Debugf("%v: calc %.5f, sample %.5f (%+.3f)", trial.Pattern, trial.Computed, trial.Empirical, trial.Z)
		}
	}
	if log != nil {
		log.Infof("%d of %d trials were outside the %.0f%% confidence bound", result.Exceeded, cfg.Trials, 100*cfg.Confidence)
	}
	return result, nil
}

func runTrial(m *occupancy.Model, cfg Config, rng occupancy.RandomSource) (Trial, error) {
	pattern, err := m.Sample(cfg.Count, rng)
	if err != nil {
		return Trial{}, err
	}
	logP, err := m.LogProbability(pattern, cfg.Count)
	if err != nil {
		return Trial{}, err
	}
	computed := math.Exp(logP)

	equal := 0
	for range cfg.Resample {
		other, err := m.Sample(cfg.Count, rng)
		if err != nil {
			return Trial{}, err
		}
		if other.Equal(pattern) {
			equal++
		}
	}
	empirical := float64(equal) / float64(cfg.Resample)
	return Trial{
		Pattern:   pattern,
		Computed:  computed,
		Empirical: empirical,
		Z:         zScore(computed, empirical, cfg.Resample),
	}, nil
}

// zScore standardizes the deviation of an observed frequency from the
// probability p of a binomial with n trials.
func zScore(p, observed float64, n int) float64 {
	stddev := math.Sqrt(p * (1 - p) / float64(n))
	if stddev == 0 {
		if observed == p {
			return 0
		}
		if observed < p {
			return math.Inf(-1)
		}
		return math.Inf(1)
	}
	return (observed - p) / stddev
}
