// Package batch parses CSV batch specifications and drives the
// generate-then-write pipeline over the resulting requests.
package batch

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/apache/arrow-go/v18/arrow"
	"github.com/apache/arrow-go/v18/arrow/array"
	"github.com/apache/arrow-go/v18/arrow/csv"
	"github.com/apache/arrow-go/v18/arrow/memory"

	"github.com/sparselab/mmgen/internal/config"
)

// ErrMissingColumn is returned when the spec header lacks a required field.
var ErrMissingColumn = errors.New("batch: spec is missing a required column")

// ParseSpec reads a CSV batch specification with header
// row,col,density[,filename] and returns one Request per record. The
// filename column is optional, per record and as a whole; missing names are
// derived later by the runner. Requests are not validated here so that a
// bad record surfaces as that record's failure, not a parse error.
func ParseSpec(r io.Reader) ([]config.Request, error) {
	raw, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("batch: read spec: %w", err)
	}
	// The inferring reader derives its schema from the first data row and
	// cannot be iterated when there is none; an empty spec is simply an
	// empty batch.
	if !hasDataRows(raw) {
		return nil, nil
	}

	rdr := csv.NewInferringReader(bytes.NewReader(raw),
		csv.WithAllocator(memory.DefaultAllocator),
		csv.WithHeader(true),
		csv.WithChunk(-1),
		csv.WithNullReader(true, ""),
		csv.WithColumnTypes(map[string]arrow.DataType{
			"row":     arrow.PrimitiveTypes.Int64,
			"col":     arrow.PrimitiveTypes.Int64,
			"density": arrow.PrimitiveTypes.Float64,
		}),
	)
	defer rdr.Release()

	var reqs []config.Request
	for rdr.Next() {
		rec := rdr.Record()

		rows, err := int64Column(rec, "row")
		if err != nil {
			return nil, err
		}
		cols, err := int64Column(rec, "col")
		if err != nil {
			return nil, err
		}
		density, err := float64Column(rec, "density")
		if err != nil {
			return nil, err
		}
		names := stringColumn(rec, "filename")

		for i := 0; i < int(rec.NumRows()); i++ {
			req := config.Request{
				Rows:    int(rows.Value(i)),
				Cols:    int(cols.Value(i)),
				Density: density.Value(i),
			}
			if names != nil && !names.IsNull(i) {
				req.Filename = names.Value(i)
			}
			reqs = append(reqs, req)
		}
	}
	if err := rdr.Err(); err != nil && !errors.Is(err, io.EOF) {
		return nil, fmt.Errorf("batch: parse spec: %w", err)
	}
	return reqs, nil
}

// ParseSpecFile opens path and parses it with ParseSpec.
func ParseSpecFile(path string) ([]config.Request, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("batch: open spec %s: %w", path, err)
	}
	defer func() {
		_ = f.Close()
	}()
	reqs, err := ParseSpec(f)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return reqs, nil
}

// hasDataRows reports whether anything non-blank follows the header line.
func hasDataRows(raw []byte) bool {
	parts := bytes.SplitN(raw, []byte("\n"), 2)
	if len(parts) < 2 {
		return false
	}
	return len(bytes.TrimSpace(parts[1])) > 0
}

func int64Column(rec arrow.Record, name string) (*array.Int64, error) {
	idx := rec.Schema().FieldIndices(name)
	if len(idx) == 0 {
		return nil, fmt.Errorf("%w: %s", ErrMissingColumn, name)
	}
	col, ok := rec.Column(idx[0]).(*array.Int64)
	if !ok {
		return nil, fmt.Errorf("batch: column %s is not integer", name)
	}
	return col, nil
}

func float64Column(rec arrow.Record, name string) (*array.Float64, error) {
	idx := rec.Schema().FieldIndices(name)
	if len(idx) == 0 {
		return nil, fmt.Errorf("%w: %s", ErrMissingColumn, name)
	}
	col, ok := rec.Column(idx[0]).(*array.Float64)
	if !ok {
		return nil, fmt.Errorf("batch: column %s is not real", name)
	}
	return col, nil
}

// stringColumn returns nil when the column is absent or not string-typed;
// the filename field is optional.
func stringColumn(rec arrow.Record, name string) *array.String {
	idx := rec.Schema().FieldIndices(name)
	if len(idx) == 0 {
		return nil
	}
	col, _ := rec.Column(idx[0]).(*array.String)
	return col
}
