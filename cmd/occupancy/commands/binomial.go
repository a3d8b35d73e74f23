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
	"github.com/0xsoniclabs/occupancy/utils"
	"github.com/urfave/cli/v2"
)

// BinomialCommand compares exact and approximate log-binomial coefficients.
var BinomialCommand = cli.Command{
	Action:    binomialAction,
	Name:      "binomial",
	Usage:     "compare exact and approximate log-binomial coefficients",
	ArgsUsage: "",
	Flags: []cli.Flag{
		&logger.LogLevelFlag,
		&utils.PopulationFlag,
		&utils.SelectionFlag,
		&utils.OutputFlag,
	},
	Description: `
The binomial command prints log(n choose k) computed from cached log-factorials
next to its entropy approximation for each pair of --n and --k. Without pairs a
default set of coefficients is shown.`,
}

// defaultCoefficients are shown if no coefficients are given.
var defaultCoefficients = [][2]int{{100, 10}, {1000, 100}, {1000, 300}, {10000, 3000}}

func binomialAction(ctx *cli.Context) error {
	cfg, err := utils.NewConfig(ctx)
	if err != nil {
		return err
	}
	log := logger.NewLogger(cfg.LogLevel, "Binomial")

	pairs := defaultCoefficients
	if len(cfg.Population) > 0 {
		pairs = make([][2]int, len(cfg.Population))
		for i := range cfg.Population {
			pairs[i] = [2]int{cfg.Population[i], cfg.Selection[i]}
		}
	}

	cache := logmath.NewCache()
	t := utils.NewTable("n", "k", "exact", "approx", "rel. error")
	for _, pair := range pairs {
		n, k := pair[0], pair[1]
		exact, err := cache.LogBinomial(n, k)
		if err != nil {
			return err
		}
		approx := logmath.ApproxLogBinomial(n, k)
		t.AppendRow([]any{
			utils.FormatCount(n),
			utils.FormatCount(k),
			fmt.Sprintf("%.6f", exact),
			fmt.Sprintf("%.6f", approx),
			relativeError(exact, approx),
		})
	}
	log.Debugf("log-factorial cache holds %d entries", cache.Len())
	return printResult(ctx, cfg, t.Render)
}

// relativeError formats the deviation of the approximation; it is undefined
// if the exact value is zero or infinite.
func relativeError(exact, approx float64) string {
	if exact == 0 || math.IsInf(exact, 0) {
		return "-"
	}
	return fmt.Sprintf("%.3e", (approx-exact)/exact)
}
