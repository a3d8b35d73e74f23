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

// Package report stores validation trials in an sqlite3 database.
package report

import (
	"github.com/cockroachdb/errors"
	"github.com/jmoiron/sqlx"
	// Your main or test packages require this import so the sql package is properly initialized.
	_ "github.com/mattn/go-sqlite3"
)

const (
	// bufferSize of the in-memory buffer for storing trial records
	bufferSize = 1000

	// SQL statement for creating report tables
	createSQL = `
PRAGMA journal_mode = MEMORY;
CREATE TABLE IF NOT EXISTS run (
	id INTEGER PRIMARY KEY AUTOINCREMENT,
	createTimestamp DATETIME DEFAULT CURRENT_TIMESTAMP,
	weights TEXT,
	count INTEGER,
	resample INTEGER,
	confidence FLOAT
);
CREATE TABLE IF NOT EXISTS trial (
	run INTEGER,
	trial INTEGER,
	pattern TEXT,
	computed FLOAT,
	empirical FLOAT,
	z FLOAT,
	exceeded BOOLEAN
);
`

	// SQL statement for inserting a validation run
	insertRunSQL = `
INSERT INTO run (
	weights, count, resample, confidence
) VALUES (
	?, ?, ?, ?
)
`

	// SQL statement for inserting a trial of a validation run
	insertTrialSQL = `
INSERT INTO trial (
	run, trial, pattern, computed, empirical, z, exceeded
) VALUES (
	?, ?, ?, ?, ?, ?, ?
)
`

	// SQL statement for reading the trials of a run
	selectTrialsSQL = `
SELECT run, trial, pattern, computed, empirical, z, exceeded FROM trial WHERE run = ? ORDER BY trial
`
)

// Run describes the parameters of a validation run.
type Run struct {
	Weights    string
	Count      int
	Resample   int
	Confidence float64
}

// Record is a single validation trial.
type Record struct {
	Run       int64   `db:"run"`
	Trial     int     `db:"trial"`
	Pattern   string  `db:"pattern"`
	Computed  float64 `db:"computed"`
	Empirical float64 `db:"empirical"`
	Z         float64 `db:"z"`
	Exceeded  bool    `db:"exceeded"`
}

//go:generate mockgen -source reportdb.go -destination reportdb_mock.go -package report
type ReportDB interface {
	// RunID returns the identifier of the run the records belong to.
	RunID() int64
	Add(record Record) error
	Flush() error
	Records() ([]Record, error)
	Close() error
}

// reportDB buffers trial records of a single run and writes them in batches.
type reportDB struct {
	sql       *sqlx.DB   // Sqlite3 database
	trialStmt *sqlx.Stmt // Prepared insert statement for a trial
	run       int64      // identifier of the current run
	buffer    []Record   // record buffer
}

// NewReportDB opens or creates the report database and registers a new run.
func NewReportDB(dbFile string, run Run) (ReportDB, error) {
	sqlDB, err := sqlx.Open("sqlite3", dbFile)
	if err != nil {
		return nil, errors.Wrapf(err, "failed to open database %v", dbFile)
	}
	db, err := newReportDB(sqlDB, run)
	if err != nil {
		_ = sqlDB.Close()
		return nil, err
	}
	return db, nil
}

func newReportDB(sqlDB *sqlx.DB, run Run) (*reportDB, error) {
	// create report schema if not exists
	if _, err := sqlDB.Exec(createSQL); err != nil {
		return nil, errors.Wrap(err, "failed to create report schema")
	}
	res, err := sqlDB.Exec(insertRunSQL, run.Weights, run.Count, run.Resample, run.Confidence)
	if err != nil {
		return nil, errors.Wrap(err, "failed to insert run")
	}
	id, err := res.LastInsertId()
	if err != nil {
		return nil, errors.Wrap(err, "failed to retrieve run identifier")
	}
	// prepare INSERT statement for subsequent use
	trialStmt, err := sqlDB.Preparex(insertTrialSQL)
	if err != nil {
		return nil, errors.Wrap(err, "failed to prepare a SQL statement for trials")
	}
	return &reportDB{
		sql:       sqlDB,
		trialStmt: trialStmt,
		run:       id,
		buffer:    make([]Record, 0, bufferSize),
	}, nil
}

func (db *reportDB) RunID() int64 {
	return db.run
}

// Add a trial record; the record is assigned to the current run.
func (db *reportDB) Add(record Record) error {
	record.Run = db.run
	db.buffer = append(db.buffer, record)
	if len(db.buffer) == cap(db.buffer) {
		if err := db.Flush(); err != nil {
			return errors.Wrap(err, "unable to flush trial records")
		}
	}
	return nil
}

// Flush writes the buffered records in a single transaction.
func (db *reportDB) Flush() error {
	if len(db.buffer) == 0 {
		return nil
	}
	tx, err := db.sql.Beginx()
	if err != nil {
		return err
	}
	stmt := tx.Stmtx(db.trialStmt)
	for _, r := range db.buffer {
		if _, err := stmt.Exec(r.Run, r.Trial, r.Pattern, r.Computed, r.Empirical, r.Z, r.Exceeded); err != nil {
			return errors.CombineErrors(err, tx.Rollback())
		}
	}
	db.buffer = db.buffer[:0]
	return tx.Commit()
}

// Records reads the stored trials of the current run in trial order.
func (db *reportDB) Records() ([]Record, error) {
	if err := db.Flush(); err != nil {
		return nil, err
	}
	var records []Record
	if err := db.sql.Select(&records, selectTrialsSQL, db.run); err != nil {
		return nil, errors.Wrapf(err, "failed to read trials of run %d", db.run)
	}
	return records, nil
}

// Close flushes the buffer and closes the database.
func (db *reportDB) Close() error {
	err := db.Flush()
	err = errors.CombineErrors(err, db.trialStmt.Close())
	return errors.CombineErrors(err, db.sql.Close())
}
