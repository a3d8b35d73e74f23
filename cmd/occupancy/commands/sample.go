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
	"time"

	"github.com/0xsoniclabs/occupancy/logger"
	"github.com/0xsoniclabs/occupancy/stochastic/statistics/occupancy"
	"github.com/0xsoniclabs/occupancy/utils"
	"github.com/urfave/cli/v2"
)

// SampleCommand draws random occupancy patterns.
var SampleCommand = cli.Command{
	Action:    sampleAction,
	Name:      "sample",
	Usage:     "sample random occupancy patterns",
	ArgsUsage: "",
	Flags: []cli.Flag{
		&logger.LogLevelFlag,
		&utils.WeightsFlag,
		&utils.CountFlag,
		&utils.SamplesFlag,
		&utils.RandomSeedFlag,
		&utils.OutputFlag,
	},
	Description: `
The sample command simulates --count draws from the bins weighted by --weights
and prints the occupied bins together with the probability of the pattern. The
process is repeated --samples times.`,
}

func sampleAction(ctx *cli.Context) error {
	cfg, err := utils.NewConfig(ctx)
	if err != nil {
		return err
	}
	log := logger.NewLogger(cfg.LogLevel, "Sample")

	m, err := occupancy.New(cfg.Weights)
	if err != nil {
		return err
	}
	rng := newRandomSource(cfg)
	if rng == nil {
		seed := uint64(time.Now().UnixNano())
		log.Noticef("Using random seed %d", seed)
		rng = occupancy.NewSource(seed)
	}

	t := utils.NewTable("#", "pattern", "set", "log P")
	for i := range cfg.Samples {
		pattern, err := m.Sample(cfg.Count, rng)
		if err != nil {
			return err
		}
		logP, err := m.LogProbability(pattern, cfg.Count)
		if err != nil {
			return err
		}
		t.AppendRow([]any{i, pattern.String(), pattern.Count(), fmt.Sprintf("%.6f", logP)})
	}
	log.Infof("sampled %s pattern(s) of %d draws", utils.FormatCount(cfg.Samples), cfg.Count)
	return printResult(ctx, cfg, t.Render)
}
