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

// Package samplefile stores generated variates as a gzip-compressed
// stream of little-endian uint32 values preceded by a small header.
package samplefile

import (
	"bufio"
	"encoding/binary"
	"io"
	"math"
	"os"

	"github.com/0xsoniclabs/poissonrng/engine"
	"github.com/cockroachdb/errors"
	"github.com/klauspost/compress/gzip"
)

// magic identifies a sample file.
var magic = [4]byte{'P', 'S', 'M', 'P'}

const headerSize = 4 + 8 + 1 + 8

// Header describes the run that produced the samples of a file.
type Header struct {
	Lambda float64
	Engine engine.Family
	Seed   uint64
}

func (h Header) encode() []byte {
	data := make([]byte, 0, headerSize)
	data = append(data, magic[:]...)
	data = binary.LittleEndian.AppendUint64(data, math.Float64bits(h.Lambda))
	data = append(data, byte(h.Engine))
	data = binary.LittleEndian.AppendUint64(data, h.Seed)
	return data
}

func decodeHeader(data []byte) (Header, error) {
	if len(data) != headerSize || [4]byte(data[:4]) != magic {
		return Header{}, errors.New("not a sample file")
	}
	return Header{
		Lambda: math.Float64frombits(binary.LittleEndian.Uint64(data[4:12])),
		Engine: engine.Family(data[12]),
		Seed:   binary.LittleEndian.Uint64(data[13:]),
	}, nil
}

//go:generate mockgen -source writer.go -destination writer_mock.go -package samplefile

type FileWriter interface {
	// WriteHeader writes the header; it must precede all samples.
	WriteHeader(header Header) error
	// WriteSamples appends samples to the file.
	WriteSamples(samples []uint32) error
	Close() error
}

// WriteBuffer is a wrapper around necessary interfaces for writing data to a file for mocking purposes.
type WriteBuffer interface {
	io.Writer
	Flush() error
}

type fileWriter struct {
	buffer WriteBuffer
	closer io.Closer
	file   io.Closer
}

// NewFileWriter creates a new sample file. Existing files are never
// overwritten.
func NewFileWriter(filename string) (FileWriter, error) {
	_, err := os.Stat(filename)
	if err == nil {
		return nil, errors.Newf("file %s already exists", filename)
	}

	file, err := os.Create(filename)
	if err != nil {
		return nil, errors.Wrapf(err, "cannot create sample file %s", filename)
	}

	gzipWriter := gzip.NewWriter(file)
	return &fileWriter{
		buffer: bufio.NewWriter(gzipWriter),
		closer: gzipWriter,
		file:   file,
	}, nil
}

func (f *fileWriter) WriteHeader(header Header) error {
	if _, err := f.buffer.Write(header.encode()); err != nil {
		return errors.Wrap(err, "error writing header to buffer")
	}
	return nil
}

func (f *fileWriter) WriteSamples(samples []uint32) error {
	data := make([]byte, 0, 4*len(samples))
	for _, s := range samples {
		data = binary.LittleEndian.AppendUint32(data, s)
	}
	if _, err := f.buffer.Write(data); err != nil {
		return errors.Wrap(err, "error writing samples to buffer")
	}
	return nil
}

func (f *fileWriter) Close() error {
	// flush the buffer, then finish the gzip stream and the file
	err := errors.Join(f.buffer.Flush(), f.closer.Close())
	if f.file != nil {
		err = errors.Join(err, f.file.Close())
	}
	return err
}
