package coo

import "sort"

// CSR is a compressed sparse row view of a matrix. RowPtr has Rows+1
// entries; row r spans ColIdx[RowPtr[r]:RowPtr[r+1]], columns sorted
// ascending within each row.
type CSR struct {
	Rows int
	Cols int

	RowPtr []int
	ColIdx []int
	Values []float64
}

// NNZ returns the number of stored non-zero entries.
func (c *CSR) NNZ() int {
	return len(c.Values)
}

// ToCSR converts the matrix to compressed sparse row layout. The receiver
// is not modified. SpMV kernels downstream want CSR rather than raw
// coordinates.
func (m *Matrix) ToCSR() *CSR {
	nnz := m.NNZ()
	out := &CSR{
		Rows:   m.Rows,
		Cols:   m.Cols,
		RowPtr: make([]int, m.Rows+1),
		ColIdx: make([]int, nnz),
		Values: make([]float64, nnz),
	}

	for _, r := range m.RowIdx {
		out.RowPtr[r+1]++
	}
	for r := 0; r < m.Rows; r++ {
		out.RowPtr[r+1] += out.RowPtr[r]
	}

	next := make([]int, m.Rows)
	copy(next, out.RowPtr[:m.Rows])
	for i := 0; i < nnz; i++ {
		r := m.RowIdx[i]
		out.ColIdx[next[r]] = m.ColIdx[i]
		out.Values[next[r]] = m.Values[i]
		next[r]++
	}

	// Coordinates arrive in sampling order; sort each row by column.
	for r := 0; r < m.Rows; r++ {
		lo, hi := out.RowPtr[r], out.RowPtr[r+1]
		seg := rowSegment{cols: out.ColIdx[lo:hi], vals: out.Values[lo:hi]}
		sort.Sort(seg)
	}
	return out
}

type rowSegment struct {
	cols []int
	vals []float64
}

func (s rowSegment) Len() int           { return len(s.cols) }
func (s rowSegment) Less(i, j int) bool { return s.cols[i] < s.cols[j] }
func (s rowSegment) Swap(i, j int) {
	s.cols[i], s.cols[j] = s.cols[j], s.cols[i]
	s.vals[i], s.vals[j] = s.vals[j], s.vals[i]
}
