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

package commands

import (
	"fmt"
	"math"

	"github.com/0xsoniclabs/occupancy/logger"
	"github.com/0xsoniclabs/occupancy/stochastic/statistics/logmath"
	"github.com/0xsoniclabs/occupancy/stochastic/statistics/occupancy"
	"github.com/0xsoniclabs/occupancy/utils"
	"github.com/cockroachdb/errors"
	"github.com/urfave/cli/v2"
)

// maxEnumeratedBins limits the number of bins for which all patterns are listed.
const maxEnumeratedBins = 16

// ProbabilityCommand computes the probability of occupancy patterns.
var ProbabilityCommand = cli.Command{
	Action:    probabilityAction,
	Name:      "probability",
	Usage:     "compute the probability of occupancy patterns",
	ArgsUsage: "",
	Flags: []cli.Flag{
		&logger.LogLevelFlag,
		&utils.WeightsFlag,
		&utils.PatternFlag,
		&utils.CountFlag,
		&utils.AlgorithmFlag,
		&utils.OutputFlag,
	},
	Description: `
The probability command computes the probability that --count draws from the
bins weighted by --weights occupy exactly the bins of --pattern. Without a
pattern all patterns are listed. The algorithm "both" runs the dynamic program
and the recursion side by side.`,
}

func probabilityAction(ctx *cli.Context) error {
	cfg, err := utils.NewConfig(ctx)
	if err != nil {
		return err
	}
	log := logger.NewLogger(cfg.LogLevel, "Probability")

	m, err := occupancy.New(cfg.Weights)
	if err != nil {
		return err
	}
	algorithms, err := parseAlgorithms(cfg.Algorithm)
	if err != nil {
		return err
	}
	patterns, err := selectPatterns(cfg.Pattern, m.Len())
	if err != nil {
		return err
	}

	header := []any{"pattern", "set"}
	for _, alg := range algorithms {
		header = append(header, "log P ("+alg.String()+")")
	}
	header = append(header, "P")
	t := utils.NewTable(header...)

	var total []float64
	for _, pattern := range patterns {
		row := []any{pattern.String(), pattern.Count()}
		var logP float64
		for i, alg := range algorithms {
			lp, err := m.LogProbabilityWith(alg, pattern, cfg.Count)
			if err != nil {
				return errors.Wrapf(err, "pattern %v", pattern)
			}
			if i == 0 {
				logP = lp
			} else if diff := math.Abs(math.Exp(lp) - math.Exp(logP)); diff > 1e-9 {
				log.Warningf("%v: %v and %v differ by %.3e", pattern, algorithms[0], alg, diff)
			}
			row = append(row, fmt.Sprintf("%.6f", lp))
		}
		row = append(row, fmt.Sprintf("%.6g", math.Exp(logP)))
		t.AppendRow(row)
		total = append(total, logP)
	}
	if len(patterns) > 1 {
		logTotal, err := logmath.LogSumExp(total)
		if err != nil {
			return err
		}
		t.AppendFooter([]any{"total", "", fmt.Sprintf("%.6g", math.Exp(logTotal))})
	}
	log.Infof("computed %d pattern(s) of %d bins for %d draws", len(patterns), m.Len(), cfg.Count)
	return printResult(ctx, cfg, t.Render)
}

// parseAlgorithms resolves the algorithm flag; "both" selects all algorithms.
func parseAlgorithms(name string) ([]occupancy.Algorithm, error) {
	if name == "both" {
		return []occupancy.Algorithm{occupancy.DynamicProgram, occupancy.Recursive}, nil
	}
	alg, err := occupancy.ParseAlgorithm(name)
	if err != nil {
		return nil, err
	}
	return []occupancy.Algorithm{alg}, nil
}

// selectPatterns parses the given pattern, or enumerates all patterns of n
// bins if it is empty.
func selectPatterns(pattern string, n int) ([]occupancy.Pattern, error) {
	if pattern != "" {
		p, err := occupancy.ParsePattern(pattern)
		if err != nil {
			return nil, err
		}
		if len(p) != n {
			return nil, errors.Wrapf(logmath.ErrInvalidArgument, "pattern %v has %d bins, expected %d", pattern, len(p), n)
		}
		return []occupancy.Pattern{p}, nil
	}
	if n > maxEnumeratedBins {
		return nil, errors.Wrapf(logmath.ErrInvalidArgument, "too many bins (%d) to list all patterns; at most %d are supported", n, maxEnumeratedBins)
	}
	return occupancy.Enumerate(n), nil
}
