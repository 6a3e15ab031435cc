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

// Package lattice enumerates the points of rectilinear N-D index grids
// stored row-major with the last axis varying fastest.
package lattice

import "github.com/0xsoniclabs/crow/errkind"

// Size returns the number of points of a grid with the given shape, or an
// error if it exceeds limit. A limit of zero disables the check.
func Size(shape []int, limit int) (int, error) {
	size := 1
	for axis, n := range shape {
		if n < 1 {
			return 0, errkind.Configf("axis %d has no points", axis)
		}
		if limit > 0 && size > limit/n {
			return 0, errkind.Configf("grid of shape %v exceeds the limit of %d points", shape, limit)
		}
		size *= n
	}
	return size, nil
}

// Flatten converts a multi-index into a row-major offset.
func Flatten(index, shape []int) int {
	offset := 0
	for axis, i := range index {
		offset = offset*shape[axis] + i
	}
	return offset
}

// Unflatten converts a row-major offset into a multi-index written to index.
func Unflatten(offset int, shape, index []int) {
	for axis := len(shape) - 1; axis >= 0; axis-- {
		index[axis] = offset % shape[axis]
		offset /= shape[axis]
	}
}

// ForEach calls fn for every multi-index of the grid in row-major order.
// The slice passed to fn is reused between calls.
func ForEach(shape []int, fn func(index []int) error) error {
	for _, n := range shape {
		if n < 1 {
			return nil
		}
	}
	index := make([]int, len(shape))
	for {
		if err := fn(index); err != nil {
			return err
		}
		axis := len(shape) - 1
		for ; axis >= 0; axis-- {
			index[axis]++
			if index[axis] < shape[axis] {
				break
			}
			index[axis] = 0
		}
		if axis < 0 {
			return nil
		}
	}
}

// Uniform returns a shape with n points along each of dim axes.
func Uniform(dim, n int) []int {
	shape := make([]int, dim)
	for i := range shape {
		shape[i] = n
	}
	return shape
}
