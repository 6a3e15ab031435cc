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

package dataio

import (
	"bufio"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/0xsoniclabs/crow/errkind"
	"github.com/0xsoniclabs/crow/lattice"
	"github.com/cockroachdb/errors"
)

// Text format: numbers separated by white space, one record per line.
// Empty lines and everything after '#' are ignored.
//
// Ordered files hold a rectilinear grid: a line with the number of axes N,
// N lines with the node coordinates of each axis, then the grid values in
// row-major order with the last axis varying fastest.
//
// Scattered files hold one sample per line: N coordinates and the value.
//
// Vector files hold a flat list of numbers, e.g. a row-major covariance.

// Ordered is a rectilinear grid of values.
type Ordered struct {
	Axes   [][]float64
	Values []float64
}

// Scattered is a set of samples at arbitrary points.
type Scattered struct {
	Points [][]float64
	Values []float64
}

// records returns the numbers of every non-empty line.
func records(r *bufio.Reader, filename string) ([][]float64, error) {
	var result [][]float64
	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 64*1024), 64*1024*1024)
	line := 0
	for scanner.Scan() {
		line++
		text := scanner.Text()
		if i := strings.IndexByte(text, '#'); i >= 0 {
			text = text[:i]
		}
		fields := strings.Fields(text)
		if len(fields) == 0 {
			continue
		}
		record := make([]float64, len(fields))
		for i, field := range fields {
			v, err := strconv.ParseFloat(field, 64)
			if err != nil {
				return nil, errkind.Configf("%s:%d: invalid number %q", filename, line, field)
			}
			record[i] = v
		}
		result = append(result, record)
	}
	if err := scanner.Err(); err != nil {
		return nil, errors.Wrapf(err, "could not read data file %s", filename)
	}
	return result, nil
}

func readRecords(filename string) (rec [][]float64, err error) {
	r, closer, err := open(filename)
	if err != nil {
		return nil, err
	}
	defer func() {
		err = errors.CombineErrors(err, closer.Close())
	}()
	return records(r, filename)
}

// ReadOrdered reads a rectilinear grid.
func ReadOrdered(filename string) (*Ordered, error) {
	rec, err := readRecords(filename)
	if err != nil {
		return nil, err
	}
	if len(rec) == 0 || len(rec[0]) != 1 {
		return nil, errkind.Configf("%s: first line must hold the number of axes", filename)
	}
	dim := int(rec[0][0])
	if float64(dim) != rec[0][0] || dim < 1 || len(rec) < dim+1 {
		return nil, errkind.Configf("%s: invalid number of axes %v", filename, rec[0][0])
	}
	o := &Ordered{Axes: rec[1 : dim+1]}
	shape := make([]int, dim)
	for i, axis := range o.Axes {
		shape[i] = len(axis)
	}
	size, err := lattice.Size(shape, 0)
	if err != nil {
		return nil, err
	}
	o.Values = make([]float64, 0, size)
	for _, r := range rec[dim+1:] {
		o.Values = append(o.Values, r...)
	}
	if len(o.Values) != size {
		return nil, errkind.Configf("%s: grid of shape %v needs %d values, got %d", filename, shape, size, len(o.Values))
	}
	return o, nil
}

// ReadScattered reads scattered samples.
func ReadScattered(filename string) (*Scattered, error) {
	rec, err := readRecords(filename)
	if err != nil {
		return nil, err
	}
	if len(rec) == 0 {
		return nil, errkind.Configf("%s: no samples", filename)
	}
	width := len(rec[0])
	if width < 2 {
		return nil, errkind.Configf("%s: samples need at least one coordinate and a value", filename)
	}
	s := &Scattered{Points: make([][]float64, len(rec)), Values: make([]float64, len(rec))}
	for i, r := range rec {
		if len(r) != width {
			return nil, errkind.Configf("%s: sample %d has %d columns, expected %d", filename, i, len(r), width)
		}
		s.Points[i] = r[:width-1]
		s.Values[i] = r[width-1]
	}
	return s, nil
}

// ReadVector reads a flat list of numbers.
func ReadVector(filename string) ([]float64, error) {
	rec, err := readRecords(filename)
	if err != nil {
		return nil, err
	}
	var values []float64
	for _, r := range rec {
		values = append(values, r...)
	}
	if len(values) == 0 {
		return nil, errkind.Configf("%s: no values", filename)
	}
	return values, nil
}

func writeRecord(w io.Writer, values []float64) error {
	fields := make([]string, len(values))
	for i, v := range values {
		fields[i] = strconv.FormatFloat(v, 'g', -1, 64)
	}
	_, err := fmt.Fprintln(w, strings.Join(fields, " "))
	return err
}

func writeRecords(filename string, rec [][]float64) (err error) {
	w, closer, err := create(filename)
	if err != nil {
		return err
	}
	defer func() {
		err = errors.CombineErrors(err, closer.Close())
	}()
	for _, r := range rec {
		if err := writeRecord(w, r); err != nil {
			return errors.Wrapf(err, "could not write data file %s", filename)
		}
	}
	return w.Flush()
}

// WriteOrdered writes a rectilinear grid, one value per line.
func WriteOrdered(filename string, o *Ordered) error {
	rec := [][]float64{{float64(len(o.Axes))}}
	rec = append(rec, o.Axes...)
	for _, v := range o.Values {
		rec = append(rec, []float64{v})
	}
	return writeRecords(filename, rec)
}

// WriteScattered writes scattered samples.
func WriteScattered(filename string, s *Scattered) error {
	rec := make([][]float64, len(s.Points))
	for i, p := range s.Points {
		rec[i] = append(append([]float64(nil), p...), s.Values[i])
	}
	return writeRecords(filename, rec)
}

// WriteVector writes a flat list of numbers on one line.
func WriteVector(filename string, values []float64) error {
	return writeRecords(filename, [][]float64{values})
}
