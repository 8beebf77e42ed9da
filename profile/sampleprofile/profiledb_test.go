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

package sampleprofile

import (
	"database/sql"
	"path/filepath"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/cockroachdb/errors"
	"github.com/jmoiron/sqlx"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testRecord(lambda float64) Record {
	return Record{
		Lambda:      lambda,
		Engine:      "mrg32k3a",
		Method:      "alias",
		Domain:      "device",
		TableSize:   42,
		TableOffset: 1,
		Samples:     1000,
		Mean:        lambda,
		Variance:    lambda,
		BuildNanos:  1234,
		SampleNanos: 5678,
	}
}

func TestProfileDB_RecordsSurviveReopen(t *testing.T) {
	dbFile := filepath.Join(t.TempDir(), "profile.db")
	db, err := NewProfileDB(dbFile)
	require.NoError(t, err)
	require.NoError(t, db.Add(testRecord(10)))
	require.NoError(t, db.Add(testRecord(20)))
	require.NoError(t, db.Close())

	db, err = NewProfileDB(dbFile)
	require.NoError(t, err)
	records, err := db.Records()
	require.NoError(t, err)
	assert.Equal(t, []Record{testRecord(10), testRecord(20)}, records)
	require.NoError(t, db.Close())
}

func TestProfileDB_AddFlushesFullBuffer(t *testing.T) {
	db, err := NewProfileDB(filepath.Join(t.TempDir(), "profile.db"))
	require.NoError(t, err)
	defer func() { assert.NoError(t, db.Close()) }()

	for i := range bufferSize {
		require.NoError(t, db.Add(testRecord(float64(i+1))))
	}
	records, err := db.Records()
	require.NoError(t, err)
	assert.Len(t, records, bufferSize)
	assert.Empty(t, db.(*profileDB).buffer)
}

func TestProfileDB_EmptyFlushDoesNothing(t *testing.T) {
	db, _, err := sqlmock.New()
	require.NoError(t, err)
	defer func(db *sql.DB) {
		_ = db.Close()
	}(db)

	pDB := &profileDB{sql: sqlx.NewDb(db, "sqlite3")}
	assert.NoError(t, pDB.Flush())
}

func TestProfileDB_FlushErrors(t *testing.T) {
	mockErr := errors.New("mock error")
	tests := []struct {
		name  string
		setup func(sqlmock.Sqlmock)
	}{
		{
			name: "BeginError",
			setup: func(mockDb sqlmock.Sqlmock) {
				mockDb.ExpectBegin().WillReturnError(mockErr)
			},
		},
		{
			name: "ExecError",
			setup: func(mockDb sqlmock.Sqlmock) {
				mockDb.ExpectBegin()
				mockDb.ExpectExec("INSERT INTO sampleProfile").WillReturnError(mockErr)
				mockDb.ExpectRollback()
			},
		},
		{
			name: "CommitError",
			setup: func(mockDb sqlmock.Sqlmock) {
				mockDb.ExpectBegin()
				mockDb.ExpectExec("INSERT INTO sampleProfile").WillReturnResult(sqlmock.NewResult(1, 1))
				mockDb.ExpectCommit().WillReturnError(mockErr)
			},
		},
	}
	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			db, mockDb, err := sqlmock.New()
			require.NoError(t, err)
			defer func(db *sql.DB) {
				_ = db.Close()
			}(db)
			test.setup(mockDb)

			pDB := &profileDB{
				sql:    sqlx.NewDb(db, "sqlite3"),
				buffer: []Record{testRecord(3)},
			}
			assert.ErrorIs(t, pDB.Flush(), mockErr)
			assert.NoError(t, mockDb.ExpectationsWereMet())
		})
	}
}

func TestProfileDB_RecordsQueryError(t *testing.T) {
	db, mockDb, err := sqlmock.New()
	require.NoError(t, err)
	defer func(db *sql.DB) {
		_ = db.Close()
	}(db)
	mockErr := errors.New("mock error")
	mockDb.ExpectQuery("SELECT lambda").WillReturnError(mockErr)

	pDB := &profileDB{sql: sqlx.NewDb(db, "sqlite3")}
	_, err = pDB.Records()
	assert.ErrorIs(t, err, mockErr)
}

func TestProfileDB_NewProfileDBFailsOnDirectory(t *testing.T) {
	_, err := NewProfileDB(t.TempDir())
	assert.Error(t, err)
}
