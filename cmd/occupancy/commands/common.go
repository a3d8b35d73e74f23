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

// Package commands implements the commands of the occupancy cli.
package commands

import (
	"strconv"
	"strings"

	"github.com/0xsoniclabs/occupancy/stochastic/statistics/occupancy"
	"github.com/0xsoniclabs/occupancy/utils"
	"github.com/urfave/cli/v2"
)

// printResult prints the rendered result to the console and, if configured,
// appends it to the output file.
func printResult(ctx *cli.Context, cfg *utils.Config, f func() string) error {
	printers := utils.NewPrinters().
		AddPrinterToWriter(ctx.App.Writer, f).
		AddPrinterToFile(cfg.Output, f)
	defer printers.Close()
	return printers.Print()
}

// newRandomSource returns a reproducible source if a seed was given, and nil
// otherwise so that the callee picks a fresh one.
func newRandomSource(cfg *utils.Config) occupancy.RandomSource {
	if !cfg.Seeded {
		return nil
	}
	return occupancy.NewSource(uint64(cfg.RandomSeed))
}

// formatWeights renders weights as a comma separated list.
func formatWeights(weights []float64) string {
	s := make([]string, len(weights))
	for i, w := range weights {
		s[i] = strconv.FormatFloat(w, 'g', -1, 64)
	}
	return strings.Join(s, ",")
}
