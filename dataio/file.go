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

// Package dataio reads and writes the text data files describing
// N-dimensional distributions. Files ending in .gz are gzip compressed.
package dataio

import (
	"bufio"
	"io"
	"os"
	"strings"

	"github.com/0xsoniclabs/crow/errkind"
	"github.com/cockroachdb/errors"
	"github.com/klauspost/compress/gzip"
)

const gzipSuffix = ".gz"

// open returns a buffered reader of the file, transparently decompressing
// gzip files.
func open(filename string) (*bufio.Reader, io.Closer, error) {
	stat, err := os.Stat(filename)
	if err != nil {
		return nil, nil, errkind.Configf("could not stat data file %s, does it exist? %v", filename, err)
	}
	if stat.IsDir() {
		return nil, nil, errkind.Configf("given path to data file %s is a directory", filename)
	}
	file, err := os.Open(filename)
	if err != nil {
		return nil, nil, errors.Wrapf(err, "could not open data file %s", filename)
	}
	if !strings.HasSuffix(filename, gzipSuffix) {
		return bufio.NewReader(file), file, nil
	}
	gzipReader, err := gzip.NewReader(file)
	if err != nil {
		file.Close()
		return nil, nil, errors.Wrapf(err, "could not create gzip reader for data file %s", filename)
	}
	return bufio.NewReader(gzipReader), closers{gzipReader, file}, nil
}

// create opens a new file for writing, compressing it if its name ends in
// .gz. Existing files are not overwritten.
func create(filename string) (*bufio.Writer, io.Closer, error) {
	if _, err := os.Stat(filename); err == nil {
		return nil, nil, errkind.Configf("file %s already exists", filename)
	}
	file, err := os.Create(filename)
	if err != nil {
		return nil, nil, errors.Wrapf(err, "could not create data file %s", filename)
	}
	if !strings.HasSuffix(filename, gzipSuffix) {
		return bufio.NewWriter(file), file, nil
	}
	gzipWriter := gzip.NewWriter(file)
	return bufio.NewWriter(gzipWriter), closers{gzipWriter, file}, nil
}

// closers closes its members in order and reports the first error.
type closers []io.Closer

func (c closers) Close() error {
	var first error
	for _, closer := range c {
		if err := closer.Close(); err != nil && first == nil {
			first = err
		}
	}
	return first
}
