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
	"os"
	"time"

	"github.com/0xsoniclabs/occupancy/logger"
	"github.com/0xsoniclabs/occupancy/report"
	"github.com/0xsoniclabs/occupancy/report/chart"
	"github.com/0xsoniclabs/occupancy/stochastic/statistics/occupancy"
	"github.com/0xsoniclabs/occupancy/stochastic/statistics/occupancy/validation"
	"github.com/0xsoniclabs/occupancy/utils"
	"github.com/cockroachdb/errors"
	"github.com/urfave/cli/v2"
)

// ValidateCommand checks computed probabilities against sampled frequencies.
var ValidateCommand = cli.Command{
	Action:    validateAction,
	Name:      "validate",
	Usage:     "compare computed probabilities with sampled frequencies",
	ArgsUsage: "",
	Flags: []cli.Flag{
		&logger.LogLevelFlag,
		&utils.WeightsFlag,
		&utils.CountFlag,
		&utils.TrialsFlag,
		&utils.ResampleFlag,
		&utils.ConfidenceFlag,
		&utils.RandomSeedFlag,
		&utils.ReportDbFlag,
		&utils.ChartFlag,
		&utils.OutputFlag,
	},
	Description: `
The validate command samples --trials patterns and resamples the process
--resample times for each of them. The frequency of each pattern is compared
with its computed probability using a two-sided z-test at the given
--confidence. Trials can be stored in an sqlite3 database and rendered as an
html chart.`,
}

func validateAction(ctx *cli.Context) error {
	cfg, err := utils.NewConfig(ctx)
	if err != nil {
		return err
	}
	log := logger.NewLogger(cfg.LogLevel, "Validate")

	m, err := occupancy.New(cfg.Weights)
	if err != nil {
		return err
	}

	log.Noticef("Validate %s trials with %s resamples each", utils.FormatCount(cfg.Trials), utils.FormatCount(cfg.Resample))
	start := time.Now()
	result, err := validation.Run(m, validation.Config{
		Count:      cfg.Count,
		Trials:     cfg.Trials,
		Resample:   cfg.Resample,
		Confidence: cfg.Confidence,
	}, newRandomSource(cfg), log)
	if err != nil {
		return err
	}
	hours, minutes, seconds := logger.ParseTime(time.Since(start))
	log.Infof("Elapsed time: %vh %vm %vs", hours, minutes, seconds)

	records := toRecords(result)
	if cfg.ReportDb != "" {
		records, err = storeRecords(cfg, records)
		if err != nil {
			return err
		}
		log.Noticef("Stored %d trials in %v", len(records), cfg.ReportDb)
	}
	if cfg.Chart != "" {
		if err := renderChart(cfg.Chart, records); err != nil {
			return err
		}
		log.Noticef("Rendered chart %v", cfg.Chart)
	}

	t := utils.NewTable("#", "pattern", "computed", "empirical", "z", "exceeded")
	for _, r := range records {
		t.AppendRow([]any{r.Trial, r.Pattern, fmt.Sprintf("%.5f", r.Computed), fmt.Sprintf("%.5f", r.Empirical), fmt.Sprintf("%+.3f", r.Z), r.Exceeded})
	}
	t.AppendFooter([]any{"", "", "", "", fmt.Sprintf("|z| > %.3f", result.Critical), fmt.Sprintf("%d/%d", result.Exceeded, len(result.Trials))})
	return printResult(ctx, cfg, t.Render)
}

// toRecords converts validation trials into report records.
func toRecords(result *validation.Result) []report.Record {
	records := make([]report.Record, len(result.Trials))
	for i, trial := range result.Trials {
		records[i] = report.Record{
			Trial:     i,
			Pattern:   trial.Pattern.String(),
			Computed:  trial.Computed,
			Empirical: trial.Empirical,
			Z:         trial.Z,
			Exceeded:  trial.Exceeded,
		}
	}
	return records
}

// storeRecords writes the trials as a new run into the report database and
// returns them as stored.
func storeRecords(cfg *utils.Config, records []report.Record) (_ []report.Record, err error) {
	db, err := report.NewReportDB(cfg.ReportDb, report.Run{
		Weights:    formatWeights(cfg.Weights),
		Count:      cfg.Count,
		Resample:   cfg.Resample,
		Confidence: cfg.Confidence,
	})
	if err != nil {
		return nil, err
	}
	defer func() {
		err = errors.CombineErrors(err, db.Close())
	}()
	for _, r := range records {
		if err := db.Add(r); err != nil {
			return nil, err
		}
	}
	return db.Records()
}

// renderChart writes an html chart of the trials into a file.
func renderChart(filename string, records []report.Record) (err error) {
	file, err := os.Create(filename)
	if err != nil {
		return errors.Wrapf(err, "cannot create chart file %v", filename)
	}
	defer func() {
		err = errors.CombineErrors(err, file.Close())
	}()
	return chart.Render(file, "Occupancy validation", records)
}
