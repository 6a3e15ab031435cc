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

package interp

import (
	"github.com/0xsoniclabs/crow/errkind"
	"gonum.org/v1/gonum/spatial/kdtree"
)

// node is a sample point carrying its value. It implements
// kdtree.Comparable so that sample sets can be searched by position.
type node struct {
	coord []float64
	value float64
}

func (n node) Compare(c kdtree.Comparable, d kdtree.Dim) float64 {
	return n.coord[d] - c.(node).coord[d]
}

func (n node) Dims() int { return len(n.coord) }

// Distance returns the squared Euclidean distance.
func (n node) Distance(c kdtree.Comparable) float64 {
	q := c.(node)
	sum := 0.0
	for i, x := range n.coord {
		d := x - q.coord[i]
		sum += d * d
	}
	return sum
}

// nodes is a list of sample points satisfying kdtree.Interface.
type nodes []node

func (p nodes) Index(i int) kdtree.Comparable         { return p[i] }
func (p nodes) Len() int                              { return len(p) }
func (p nodes) Slice(start, end int) kdtree.Interface { return p[start:end] }
func (p nodes) Pivot(d kdtree.Dim) int {
	plane := nodePlane{nodes: p, Dim: d}
	return kdtree.Partition(plane, kdtree.MedianOfRandoms(plane, 100))
}

// nodePlane sorts nodes along one dimension for pivoting.
type nodePlane struct {
	nodes
	kdtree.Dim
}

func (p nodePlane) Less(i, j int) bool { return p.nodes[i].coord[p.Dim] < p.nodes[j].coord[p.Dim] }
func (p nodePlane) Swap(i, j int)      { p.nodes[i], p.nodes[j] = p.nodes[j], p.nodes[i] }
func (p nodePlane) Slice(start, end int) kdtree.SortSlicer {
	p.nodes = p.nodes[start:end]
	return p
}

// Nearest looks up the sample closest to a query point.
type Nearest struct {
	tree *kdtree.Tree
	dim  int
}

// NewNearest indexes the given samples. The slices are not copied.
func NewNearest(points [][]float64, values []float64) (*Nearest, error) {
	if len(points) == 0 || len(points) != len(values) {
		return nil, errkind.Configf("nearest-neighbor index needs matching non-empty points and values, got %d and %d", len(points), len(values))
	}
	dim := len(points[0])
	list := make(nodes, len(points))
	for i, p := range points {
		if len(p) != dim {
			return nil, errkind.Configf("sample %d has dimension %d, expected %d", i, len(p), dim)
		}
		list[i] = node{coord: p, value: values[i]}
	}
	return &Nearest{tree: kdtree.New(list, false), dim: dim}, nil
}

// Value returns the value of the sample closest to x in Euclidean distance.
func (n *Nearest) Value(x []float64) (float64, error) {
	if len(x) != n.dim {
		return 0, errkind.Configf("query has dimension %d, expected %d", len(x), n.dim)
	}
	found, _ := n.tree.Nearest(node{coord: x})
	return found.(node).value, nil
}
