package coo

import "testing"

func TestToCSR(t *testing.T) {
	// 3x4 matrix with entries deliberately out of row-major order.
	m := &Matrix{
		Rows:   3,
		Cols:   4,
		RowIdx: []int{2, 0, 2, 0, 1},
		ColIdx: []int{3, 1, 0, 0, 2},
		Values: []float64{5, 2, 4, 1, 3},
	}

	csr := m.ToCSR()

	wantRowPtr := []int{0, 2, 3, 5}
	wantColIdx := []int{0, 1, 2, 0, 3}
	wantValues := []float64{1, 2, 3, 4, 5}

	if csr.NNZ() != m.NNZ() {
		t.Fatalf("nnz = %d, want %d", csr.NNZ(), m.NNZ())
	}
	for i, want := range wantRowPtr {
		if csr.RowPtr[i] != want {
			t.Errorf("RowPtr[%d] = %d, want %d", i, csr.RowPtr[i], want)
		}
	}
	for i := range wantColIdx {
		if csr.ColIdx[i] != wantColIdx[i] {
			t.Errorf("ColIdx[%d] = %d, want %d", i, csr.ColIdx[i], wantColIdx[i])
		}
		if csr.Values[i] != wantValues[i] {
			t.Errorf("Values[%d] = %v, want %v", i, csr.Values[i], wantValues[i])
		}
	}
}

func TestToCSREmptyRows(t *testing.T) {
	m := &Matrix{
		Rows:   4,
		Cols:   2,
		RowIdx: []int{3},
		ColIdx: []int{1},
		Values: []float64{9},
	}

	csr := m.ToCSR()
	want := []int{0, 0, 0, 0, 1}
	for i := range want {
		if csr.RowPtr[i] != want[i] {
			t.Errorf("RowPtr[%d] = %d, want %d", i, csr.RowPtr[i], want[i])
		}
	}
}

func TestToCSRGeneratedRoundsSorted(t *testing.T) {
	m, err := Generate(25, 25, 0.3, WithSeed(11))
	if err != nil {
		t.Fatalf("Generate failed: %v", err)
	}
	csr := m.ToCSR()
	for r := 0; r < csr.Rows; r++ {
		for i := csr.RowPtr[r] + 1; i < csr.RowPtr[r+1]; i++ {
			if csr.ColIdx[i-1] >= csr.ColIdx[i] {
				t.Fatalf("row %d columns not strictly ascending: %d >= %d",
					r, csr.ColIdx[i-1], csr.ColIdx[i])
			}
		}
	}
}
