package carver

import (
	"fmt"
	"math"

	"github.com/esimov/carver/utils"
)

// Seam is a connected path of pixels crossing the image. A vertical seam holds
// the column index for every row, a horizontal seam the row index for every column.
type Seam []int

// Valid checks that the seam has the given length, that all of its entries
// are within [0, bound) and that consecutive entries are at most one pixel apart.
func (s Seam) Valid(length, bound int) error {
	if s == nil {
		return ErrNilSeam
	}
	if len(s) != length {
		return fmt.Errorf("%w: got %d, want %d", ErrSeamLength, len(s), length)
	}
	for i, v := range s {
		if v < 0 || v >= bound {
			return fmt.Errorf("%w: seam[%d] = %d, want [0, %d)", ErrOutOfRange, i, v, bound)
		}
		if i > 0 && utils.Abs(v-s[i-1]) > 1 {
			return fmt.Errorf("%w: seam[%d] = %d follows %d", ErrSeamBroken, i, v, s[i-1])
		}
	}
	return nil
}

// offsets are the column steps from a pixel to its neighbours on the next row.
// Their order decides which of two equally good paths is kept.
var offsets = [3]int{-1, 0, 1}

// FindVerticalSeam returns the lowest energy top to bottom seam,
// one column index for each row.
func (c *Carver) FindVerticalSeam() Seam {
	c.orient(false)
	return c.findSeam()
}

// FindHorizontalSeam returns the lowest energy left to right seam,
// one row index for each column.
func (c *Carver) FindHorizontalSeam() Seam {
	// Once transposed, the stored columns are the image rows.
	c.orient(true)
	return c.findSeam()
}

// findSeam computes the shortest path from the top to the bottom of the stored energy map.
//
// The pixels form a layered DAG: each pixel has an edge to its (up to three)
// neighbours on the next row, and every pixel of the last row has an edge
// to a virtual sink. Vertices are numbered row-major (x + y*width), with the
// sink numbered width*height. This numbering is already a topological order,
// so the edges are relaxed by walking the vertices in increasing order.
//
// The cost of a path is the sum of the energies of its pixels. Among equal
// cost paths the one with fewer diagonal steps wins, then the first relaxed.
func (c *Carver) findSeam() Seam {
	rows, cols := c.energy.Dims()
	sink := rows * cols

	distTo := make([]float64, sink+1)
	edgeTo := make([]int, sink+1)
	bends := make([]int, sink+1)
	for v := range distTo {
		distTo[v] = math.Inf(1)
		edgeTo[v] = -1
	}
	copy(distTo, c.energy.RawRowView(0))

	relax := func(u, v, bend int, weight float64) {
		dist, b := distTo[u]+weight, bends[u]+bend
		if dist < distTo[v] || (dist == distTo[v] && b < bends[v]) {
			distTo[v], bends[v], edgeTo[v] = dist, b, u
		}
	}

	for u := 0; u < sink; u++ {
		x, y := u%cols, u/cols
		if y == rows-1 {
			relax(u, sink, 0, 0)
			continue
		}
		next := c.energy.RawRowView(y + 1)
		for _, dx := range offsets {
			nx := x + dx
			if nx < 0 || nx >= cols {
				continue
			}
			relax(u, nx+(y+1)*cols, utils.Abs(dx), next[nx])
		}
	}

	// Walk back from the sink up to the first row.
	seam := make(Seam, rows)
	for v := edgeTo[sink]; v >= 0; v = edgeTo[v] {
		seam[v/cols] = v % cols
	}
	return seam
}
