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

// Package tablestore persists Poisson probability tables in a LevelDB
// database so that repeated runs skip the table construction.
package tablestore

import (
	"encoding/binary"
	"math"

	"github.com/0xsoniclabs/poissonrng/distribution/poisson"
	"github.com/cockroachdb/errors"
	"github.com/sigurn/crc8"
	"github.com/syndtr/goleveldb/leveldb"
	"github.com/syndtr/goleveldb/leveldb/util"
)

const (
	// TablePrefix prefixes the keys of stored tables.
	TablePrefix = "pt"
	// ParamsKey holds the parameters all stored tables were built with.
	ParamsKey = "pp"
)

var crcTable = crc8.MakeTable(crc8.CRC8)

// EncodeTableKey returns the key of the table of lambda. For positive
// means the byte order of keys follows the numeric order.
func EncodeTableKey(lambda float64) []byte {
	key := make([]byte, 0, len(TablePrefix)+8)
	key = append(key, TablePrefix...)
	return binary.BigEndian.AppendUint64(key, math.Float64bits(lambda))
}

// DecodeTableKey returns the mean encoded in a table key.
func DecodeTableKey(key []byte) (float64, error) {
	if len(key) != len(TablePrefix)+8 || string(key[:len(TablePrefix)]) != TablePrefix {
		return 0, errors.Newf("invalid table key %x", key)
	}
	return math.Float64frombits(binary.BigEndian.Uint64(key[len(TablePrefix):])), nil
}

// EncodeTable serializes the offset followed by the probabilities and a
// CRC-8 checksum of both.
func EncodeTable(table poisson.Table) []byte {
	data := make([]byte, 0, 8*(1+table.Size())+1)
	data = binary.BigEndian.AppendUint64(data, uint64(int64(table.Offset)))
	for _, p := range table.Probabilities {
		data = binary.BigEndian.AppendUint64(data, math.Float64bits(p))
	}
	return append(data, crc8.Checksum(data, crcTable))
}

// DecodeTable parses a serialized table.
func DecodeTable(data []byte) (poisson.Table, error) {
	if len(data) < 17 || (len(data)-1)%8 != 0 {
		return poisson.Table{}, errors.Newf("invalid table encoding of %d bytes", len(data))
	}
	body, sum := data[:len(data)-1], data[len(data)-1]
	if crc8.Checksum(body, crcTable) != sum {
		return poisson.Table{}, errors.New("table checksum mismatch")
	}
	data = body
	table := poisson.Table{
		Offset:        int(int64(binary.BigEndian.Uint64(data))),
		Probabilities: make([]float64, len(data)/8-1),
	}
	for i := range table.Probabilities {
		table.Probabilities[i] = math.Float64frombits(binary.BigEndian.Uint64(data[8*(i+1):]))
	}
	return table, nil
}

func encodeParams(params poisson.Params) []byte {
	data := make([]byte, 0, 32)
	data = binary.BigEndian.AppendUint64(data, math.Float64bits(params.Threshold))
	data = binary.BigEndian.AppendUint64(data, math.Float64bits(params.CapacityMultiplier))
	data = binary.BigEndian.AppendUint64(data, math.Float64bits(params.CapacityBase))
	return binary.BigEndian.AppendUint64(data, uint64(params.MaxCapacity))
}

// Store serves tables from the database and builds and persists the
// missing ones. It implements poisson.TableCache.
type Store struct {
	db     *leveldb.DB
	params poisson.Params
}

// Open opens or creates the store at path.
func Open(path string, params poisson.Params) (*Store, error) {
	db, err := leveldb.OpenFile(path, nil)
	if err != nil {
		return nil, errors.Wrapf(err, "cannot open table store %v", path)
	}
	s, err := New(db, params)
	if err != nil {
		return nil, errors.Join(err, db.Close())
	}
	return s, nil
}

// New creates a store on an open database. A database holding tables of
// other parameters is rejected.
func New(db *leveldb.DB, params poisson.Params) (*Store, error) {
	if err := params.Check(); err != nil {
		return nil, err
	}
	want := encodeParams(params)
	got, err := db.Get([]byte(ParamsKey), nil)
	switch {
	case errors.Is(err, leveldb.ErrNotFound):
		if err := db.Put([]byte(ParamsKey), want, nil); err != nil {
			return nil, errors.Wrap(err, "cannot store table parameters")
		}
	case err != nil:
		return nil, errors.Wrap(err, "cannot read table parameters")
	case string(got) != string(want):
		return nil, errors.New("table store was built with different parameters")
	}
	return &Store{db: db, params: params}, nil
}

// Get returns the stored table of lambda, building and storing it when
// missing.
func (s *Store) Get(lambda float64) (poisson.Table, error) {
	table, found, err := s.Load(lambda)
	if err != nil || found {
		return table, err
	}
	table, err = s.params.Build(lambda)
	if err != nil {
		return poisson.Table{}, err
	}
	if err := s.Put(lambda, table); err != nil {
		return poisson.Table{}, err
	}
	return table, nil
}

// Load returns the stored table of lambda and whether it exists.
func (s *Store) Load(lambda float64) (poisson.Table, bool, error) {
	data, err := s.db.Get(EncodeTableKey(lambda), nil)
	if errors.Is(err, leveldb.ErrNotFound) {
		return poisson.Table{}, false, nil
	}
	if err != nil {
		return poisson.Table{}, false, errors.Wrapf(err, "cannot load table of lambda %v", lambda)
	}
	table, err := DecodeTable(data)
	if err != nil {
		return poisson.Table{}, false, errors.Wrapf(err, "corrupted table of lambda %v", lambda)
	}
	return table, true, nil
}

// Put stores the table of lambda.
func (s *Store) Put(lambda float64, table poisson.Table) error {
	if err := s.db.Put(EncodeTableKey(lambda), EncodeTable(table), nil); err != nil {
		return errors.Wrapf(err, "cannot store table of lambda %v", lambda)
	}
	return nil
}

// Lambdas returns the means of all stored tables in ascending order.
func (s *Store) Lambdas() ([]float64, error) {
	iter := s.db.NewIterator(util.BytesPrefix([]byte(TablePrefix)), nil)
	defer iter.Release()

	var lambdas []float64
	for iter.Next() {
		lambda, err := DecodeTableKey(iter.Key())
		if err != nil {
			return nil, err
		}
		lambdas = append(lambdas, lambda)
	}
	return lambdas, iter.Error()
}

// Close closes the database.
func (s *Store) Close() error {
	return s.db.Close()
}
