// Package coo generates random sparse matrices in coordinate (COO) layout.
//
// A generated matrix holds only its non-zero entries as parallel index/value
// slices. Coordinates are sampled uniformly over the grid without
// replacement, so no two entries ever share a coordinate pair.
package coo

import (
	"fmt"
	"math"
	"math/rand"
	"time"
)

// Matrix is a sparse matrix in coordinate format. Entries are stored as
// parallel slices; indices are 0-based. The entry order is the acceptance
// order of the sampler and carries no row- or column-major guarantee.
type Matrix struct {
	Rows int
	Cols int

	RowIdx []int
	ColIdx []int
	Values []float64
}

// NNZ returns the number of stored non-zero entries.
func (m *Matrix) NNZ() int {
	return len(m.Values)
}

// Density returns the realized density, i.e. NNZ / (Rows * Cols).
func (m *Matrix) Density() float64 {
	return float64(m.NNZ()) / (float64(m.Rows) * float64(m.Cols))
}

type genConfig struct {
	seed   int64
	seeded bool
	values ValueFunc
}

// Option adjusts how Generate samples a matrix.
type Option func(*genConfig)

// WithSeed fixes the random source. Two Generate calls with identical
// parameters and the same seed produce identical matrices, entry order
// included.
func WithSeed(seed int64) Option {
	return func(c *genConfig) {
		c.seed = seed
		c.seeded = true
	}
}

// WithValues sets the distribution non-zero values are drawn from.
// The default is Uniform.
func WithValues(fn ValueFunc) Option {
	return func(c *genConfig) {
		c.values = fn
	}
}

// Generate samples a rows x cols sparse matrix with round(rows*cols*density)
// non-zero entries at distinct coordinates. Duplicate draws are rejected and
// resampled. When the target count reaches the grid size the full grid is
// emitted instead, so density 1.0 fills every cell exactly once.
//
// Dimensions must be positive and density must lie in [0, 1]; anything else
// is rejected, never clamped.
func Generate(rows, cols int, density float64, opts ...Option) (*Matrix, error) {
	if rows <= 0 || cols <= 0 {
		return nil, fmt.Errorf("generate %dx%d: %w", rows, cols, ErrInvalidDimensions)
	}
	if math.IsNaN(density) || density < 0 || density > 1 {
		return nil, fmt.Errorf("generate %dx%d density=%v: %w", rows, cols, density, ErrInvalidDensity)
	}

	cfg := genConfig{values: Uniform}
	for _, opt := range opts {
		opt(&cfg)
	}
	if !cfg.seeded {
		cfg.seed = time.Now().UnixNano()
	}
	rng := rand.New(rand.NewSource(cfg.seed))

	total := rows * cols
	k := int(math.Round(float64(rows) * float64(cols) * density))
	if k > total {
		k = total
	}

	m := &Matrix{
		Rows:   rows,
		Cols:   cols,
		RowIdx: make([]int, 0, k),
		ColIdx: make([]int, 0, k),
		Values: make([]float64, 0, k),
	}

	if k == total {
		// Grid exhausted: every coordinate is filled, no sampling needed.
		for r := 0; r < rows; r++ {
			for c := 0; c < cols; c++ {
				m.RowIdx = append(m.RowIdx, r)
				m.ColIdx = append(m.ColIdx, c)
				m.Values = append(m.Values, cfg.values(rng))
			}
		}
		return m, nil
	}

	seen := make(map[uint64]struct{}, k)
	for len(m.Values) < k {
		r := rng.Intn(rows)
		c := rng.Intn(cols)
		key := uint64(r)*uint64(cols) + uint64(c)
		if _, dup := seen[key]; dup {
			continue
		}
		seen[key] = struct{}{}
		m.RowIdx = append(m.RowIdx, r)
		m.ColIdx = append(m.ColIdx, c)
		m.Values = append(m.Values, cfg.values(rng))
	}
	return m, nil
}
