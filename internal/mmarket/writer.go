// Package mmarket reads and writes the Matrix Market coordinate format,
// the plain-text interchange format the benchmark harness loads matrices
// from. Only the "matrix coordinate real general" flavor is produced;
// reading additionally accepts integer fields.
package mmarket

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/sparselab/mmgen/internal/coo"
)

// Banner is the header line identifying a coordinate real general file.
const Banner = "%%MatrixMarket matrix coordinate real general"

// entryFormat keeps 19 significant digits so a float64 survives a
// write/parse round trip.
const entryFormat = "%d %d %.18e\n"

type writeConfig struct {
	comment string
}

// WriteOption adjusts the emitted file.
type WriteOption func(*writeConfig)

// WithComment emits the given text as %-prefixed comment lines after the
// banner. Empty means no comment lines at all.
func WithComment(text string) WriteOption {
	return func(c *writeConfig) {
		c.comment = text
	}
}

// Write serializes m in Matrix Market coordinate format. Indices are
// written 1-based. Entries keep the order they have in m; the writer never
// sorts or deduplicates, distinct coordinates are the generator's contract.
func Write(m *coo.Matrix, w io.Writer, opts ...WriteOption) error {
	var cfg writeConfig
	for _, opt := range opts {
		opt(&cfg)
	}

	bw := bufio.NewWriter(w)
	if _, err := fmt.Fprintln(bw, Banner); err != nil {
		return fmt.Errorf("mmarket: write banner: %w", err)
	}
	if cfg.comment != "" {
		for _, line := range strings.Split(cfg.comment, "\n") {
			if _, err := fmt.Fprintf(bw, "%% %s\n", line); err != nil {
				return fmt.Errorf("mmarket: write comment: %w", err)
			}
		}
	}
	if _, err := fmt.Fprintf(bw, "%d %d %d\n", m.Rows, m.Cols, m.NNZ()); err != nil {
		return fmt.Errorf("mmarket: write size line: %w", err)
	}
	for i := range m.Values {
		if _, err := fmt.Fprintf(bw, entryFormat, m.RowIdx[i]+1, m.ColIdx[i]+1, m.Values[i]); err != nil {
			return fmt.Errorf("mmarket: write entry %d: %w", i, err)
		}
	}
	if err := bw.Flush(); err != nil {
		return fmt.Errorf("mmarket: flush: %w", err)
	}
	return nil
}

// WriteFile creates or truncates path and writes m to it. On failure the
// file is left in an unspecified state; callers regenerate rather than
// resume.
func WriteFile(m *coo.Matrix, path string, opts ...WriteOption) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("mmarket: create %s: %w", path, err)
	}
	if err := Write(m, f, opts...); err != nil {
		_ = f.Close()
		return err
	}
	if err := f.Close(); err != nil {
		return fmt.Errorf("mmarket: close %s: %w", path, err)
	}
	return nil
}
