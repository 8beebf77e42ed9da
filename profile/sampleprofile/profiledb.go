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

// Package sampleprofile records the tables and sample statistics of
// poisson-tool runs in a SQLite database.
package sampleprofile

import (
	"github.com/cockroachdb/errors"
	"github.com/jmoiron/sqlx"
	// Your main or test packages require this import so the sql package is properly initialized.
	_ "github.com/mattn/go-sqlite3"
)

const (
	// bufferSize of the in-memory buffer for storing profile records
	bufferSize = 100

	// SQL statement for inserting a profile record
	insertSQL = `
INSERT INTO sampleProfile (
	lambda, engine, method, domain, tableSize, tableOffset, samples, mean, variance, buildNanos, sampleNanos
) VALUES (
	:lambda, :engine, :method, :domain, :tableSize, :tableOffset, :samples, :mean, :variance, :buildNanos, :sampleNanos
)
`
	// SQL statement for reading all profile records
	selectSQL = `
SELECT lambda, engine, method, domain, tableSize, tableOffset, samples, mean, variance, buildNanos, sampleNanos
FROM sampleProfile ORDER BY id
`
	// SQL statement for creating the profiling table
	createSQL = `
PRAGMA journal_mode = MEMORY;
CREATE TABLE IF NOT EXISTS sampleProfile (
	id INTEGER PRIMARY KEY AUTOINCREMENT,
	createTimestamp DATETIME DEFAULT CURRENT_TIMESTAMP,
	lambda FLOAT,
	engine TEXT,
	method TEXT,
	domain TEXT,
	tableSize INTEGER,
	tableOffset INTEGER,
	samples INTEGER,
	mean FLOAT,
	variance FLOAT,
	buildNanos INTEGER,
	sampleNanos INTEGER
);
`
)

// Record is the profile of one run.
type Record struct {
	Lambda      float64 `db:"lambda"`
	Engine      string  `db:"engine"`
	Method      string  `db:"method"`
	Domain      string  `db:"domain"`
	TableSize   int     `db:"tableSize"`
	TableOffset int     `db:"tableOffset"`
	Samples     int     `db:"samples"`
	Mean        float64 `db:"mean"`
	Variance    float64 `db:"variance"`
	BuildNanos  int64   `db:"buildNanos"`
	SampleNanos int64   `db:"sampleNanos"`
}

type ProfileDB interface {
	Add(record Record) error
	Flush() error
	Records() ([]Record, error)
	Close() error
}

// profileDB is a profiling database of sampling runs.
type profileDB struct {
	sql    *sqlx.DB // Sqlite3 database
	buffer []Record // record buffer
}

// NewProfileDB opens or creates a profiling database.
func NewProfileDB(dbFile string) (ProfileDB, error) {
	sqlDB, err := sqlx.Open("sqlite3", dbFile)
	if err != nil {
		return nil, errors.Wrapf(err, "failed to open database %v", dbFile)
	}
	// create profile schema if not exists
	if _, err = sqlDB.Exec(createSQL); err != nil {
		return nil, errors.Join(errors.Wrap(err, "failed to create profile schema"), sqlDB.Close())
	}
	return &profileDB{
		sql:    sqlDB,
		buffer: make([]Record, 0, bufferSize),
	}, nil
}

// Close flushes buffers of profiling database and closes the profiling database.
func (db *profileDB) Close() error {
	return errors.Join(db.Flush(), db.sql.Close())
}

// Add a profile record to the profiling database.
func (db *profileDB) Add(record Record) error {
	db.buffer = append(db.buffer, record)
	if len(db.buffer) >= bufferSize {
		if err := db.Flush(); err != nil {
			return errors.Wrap(err, "unable to flush profile records")
		}
	}
	return nil
}

// Flush the profiling records in the database.
func (db *profileDB) Flush() error {
	if len(db.buffer) == 0 {
		return nil
	}
	tx, err := db.sql.Beginx()
	if err != nil {
		return err
	}
	for _, record := range db.buffer {
		if _, err := tx.NamedExec(insertSQL, record); err != nil {
			return errors.Join(err, tx.Rollback())
		}
	}
	db.buffer = db.buffer[:0]
	return tx.Commit()
}

// Records returns all flushed records in insertion order.
func (db *profileDB) Records() ([]Record, error) {
	var records []Record
	if err := db.sql.Select(&records, selectSQL); err != nil {
		return nil, errors.Wrap(err, "failed to read profile records")
	}
	return records, nil
}
