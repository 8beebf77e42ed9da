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

package samplefile

import (
	"bufio"
	"encoding/binary"
	"io"
	"os"

	"github.com/cockroachdb/errors"
	"github.com/klauspost/compress/gzip"
)

type FileReader interface {
	// Header returns the header of the file.
	Header() Header
	// ReadSample returns the next sample or io.EOF at the end of the file.
	ReadSample() (uint32, error)
	// ReadAll returns all remaining samples.
	ReadAll() ([]uint32, error)
	Close() error
}

type fileReader struct {
	header Header
	reader io.Reader
	closer io.Closer
	file   io.Closer
}

// NewFileReader opens a sample file and reads its header.
func NewFileReader(filename string) (FileReader, error) {
	stat, err := os.Stat(filename)
	if err != nil {
		return nil, errors.Wrapf(err, "could not stat file: %s, does it exist?", filename)
	}
	if stat.IsDir() {
		return nil, errors.New("given path to sample file is a directory")
	}
	if stat.Size() == 0 {
		return nil, errors.New("given sample file is empty")
	}
	file, err := os.Open(filename)
	if err != nil {
		return nil, errors.Wrapf(err, "could not open sample file: %s", filename)
	}
	gzipReader, err := gzip.NewReader(file)
	if err != nil {
		return nil, errors.Join(errors.Wrapf(err, "could not create gzip reader for sample file: %s", filename), file.Close())
	}
	f := &fileReader{
		reader: bufio.NewReader(gzipReader),
		closer: gzipReader,
		file:   file,
	}
	data := make([]byte, headerSize)
	if _, err := io.ReadFull(f.reader, data); err != nil {
		return nil, errors.Join(errors.Wrap(err, "cannot read header"), f.Close())
	}
	if f.header, err = decodeHeader(data); err != nil {
		return nil, errors.Join(err, f.Close())
	}
	return f, nil
}

func (f *fileReader) Header() Header {
	return f.header
}

func (f *fileReader) ReadSample() (uint32, error) {
	var data [4]byte
	if _, err := io.ReadFull(f.reader, data[:]); err != nil {
		if errors.Is(err, io.ErrUnexpectedEOF) {
			return 0, errors.Wrap(err, "truncated sample")
		}
		return 0, err
	}
	return binary.LittleEndian.Uint32(data[:]), nil
}

func (f *fileReader) ReadAll() ([]uint32, error) {
	var samples []uint32
	for {
		s, err := f.ReadSample()
		if err == io.EOF {
			return samples, nil
		}
		if err != nil {
			return nil, err
		}
		samples = append(samples, s)
	}
}

func (f *fileReader) Close() error {
	return errors.Join(f.closer.Close(), f.file.Close())
}
