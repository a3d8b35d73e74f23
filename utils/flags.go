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

import "github.com/urfave/cli/v2"

var (
	WeightsFlag = cli.Float64SliceFlag{
		Name:  "weights",
		Usage: "relative likelihoods of the bins, e.g., 1,1,2,4",
	}
	PatternFlag = cli.StringFlag{
		Name:  "pattern",
		Usage: "occupancy pattern with one '0' or '1' per bin; all patterns if empty",
	}
	CountFlag = cli.IntFlag{
		Name:  "count",
		Usage: "number of independent draws",
		Value: 10,
	}
	AlgorithmFlag = cli.StringFlag{
		Name:  "algorithm",
		Usage: "log-probability algorithm (\"dp\", \"recursive\", \"both\")",
		Value: "dp",
	}
	SamplesFlag = cli.IntFlag{
		Name:  "samples",
		Usage: "number of occupancy patterns to sample",
		Value: 10,
	}
	TrialsFlag = cli.IntFlag{
		Name:  "trials",
		Usage: "number of sampled patterns to validate",
		Value: 100,
	}
	ResampleFlag = cli.IntFlag{
		Name:  "resample",
		Usage: "number of resamples per validation trial",
		Value: 100000,
	}
	ConfidenceFlag = cli.Float64Flag{
		Name:  "confidence",
		Usage: "confidence level of the z-test",
		Value: 0.95,
	}
	RandomSeedFlag = cli.Int64Flag{
		Name:  "random-seed",
		Usage: "seed of the random number generator; a fresh seed is used if not set",
	}
	PopulationFlag = cli.IntSliceFlag{
		Name:  "n",
		Usage: "population sizes of binomial coefficients",
	}
	SelectionFlag = cli.IntSliceFlag{
		Name:  "k",
		Usage: "selection sizes of binomial coefficients, one per population size",
	}
	ReportDbFlag = cli.StringFlag{
		Name:  "report-db",
		Usage: "sqlite3 file collecting validation trials",
	}
	ChartFlag = cli.StringFlag{
		Name:  "chart",
		Usage: "html file rendering computed and sampled probabilities",
	}
	OutputFlag = cli.StringFlag{
		Name:  "output",
		Usage: "file the result table is appended to",
	}
)
