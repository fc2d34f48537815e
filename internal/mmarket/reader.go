package mmarket

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/sparselab/mmgen/internal/coo"
)

var (
	// ErrBadBanner is returned when the first line is not a MatrixMarket header.
	ErrBadBanner = errors.New("mmarket: malformed MatrixMarket banner")

	// ErrUnsupportedFormat is returned for valid banners this reader does not
	// handle (dense arrays, complex or pattern fields, symmetric storage).
	ErrUnsupportedFormat = errors.New("mmarket: unsupported MatrixMarket variant")

	// ErrBadFormat is returned for structural errors in the file body.
	ErrBadFormat = errors.New("mmarket: malformed file body")
)

// Read parses a Matrix Market coordinate file into a COO matrix, converting
// the 1-based file indices to 0-based. Comment lines are skipped. The entry
// order of the file is preserved.
func Read(r io.Reader) (*coo.Matrix, error) {
	sc := bufio.NewScanner(r)
	sc.Buffer(make([]byte, 0, 64*1024), 1024*1024)

	if !sc.Scan() {
		if err := sc.Err(); err != nil {
			return nil, fmt.Errorf("mmarket: read banner: %w", err)
		}
		return nil, fmt.Errorf("empty file: %w", ErrBadBanner)
	}
	if err := checkBanner(sc.Text()); err != nil {
		return nil, err
	}

	rows, cols, nnz, err := readSizeLine(sc)
	if err != nil {
		return nil, err
	}

	m := &coo.Matrix{
		Rows:   rows,
		Cols:   cols,
		RowIdx: make([]int, 0, nnz),
		ColIdx: make([]int, 0, nnz),
		Values: make([]float64, 0, nnz),
	}
	for len(m.Values) < nnz && sc.Scan() {
		line := strings.TrimSpace(sc.Text())
		if line == "" {
			continue
		}
		r, c, v, err := parseEntry(line)
		if err != nil {
			return nil, err
		}
		if r < 1 || r > rows || c < 1 || c > cols {
			return nil, fmt.Errorf("entry (%d, %d) outside %dx%d: %w", r, c, rows, cols, ErrBadFormat)
		}
		m.RowIdx = append(m.RowIdx, r-1)
		m.ColIdx = append(m.ColIdx, c-1)
		m.Values = append(m.Values, v)
	}
	if err := sc.Err(); err != nil {
		return nil, fmt.Errorf("mmarket: read entries: %w", err)
	}
	if len(m.Values) < nnz {
		return nil, fmt.Errorf("size line promises %d entries, file has %d: %w", nnz, len(m.Values), ErrBadFormat)
	}
	// The size line fixes the entry count; anything non-blank past it is
	// a malformed file, not data to ignore.
	for sc.Scan() {
		if strings.TrimSpace(sc.Text()) != "" {
			return nil, fmt.Errorf("trailing content after %d entries: %w", nnz, ErrBadFormat)
		}
	}
	if err := sc.Err(); err != nil {
		return nil, fmt.Errorf("mmarket: read trailer: %w", err)
	}
	return m, nil
}

// ReadFile opens path and parses it with Read.
func ReadFile(path string) (*coo.Matrix, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("mmarket: open %s: %w", path, err)
	}
	defer func() {
		_ = f.Close()
	}()
	m, err := Read(f)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return m, nil
}

func checkBanner(line string) error {
	fields := strings.Fields(strings.ToLower(line))
	if len(fields) != 5 || fields[0] != "%%matrixmarket" {
		return fmt.Errorf("%q: %w", line, ErrBadBanner)
	}
	object, format, field, symmetry := fields[1], fields[2], fields[3], fields[4]
	if object != "matrix" {
		return fmt.Errorf("object %q: %w", object, ErrUnsupportedFormat)
	}
	if format != "coordinate" {
		return fmt.Errorf("format %q: %w", format, ErrUnsupportedFormat)
	}
	if field != "real" && field != "double" && field != "integer" {
		return fmt.Errorf("field %q: %w", field, ErrUnsupportedFormat)
	}
	if symmetry != "general" {
		return fmt.Errorf("symmetry %q: %w", symmetry, ErrUnsupportedFormat)
	}
	return nil
}

func readSizeLine(sc *bufio.Scanner) (rows, cols, nnz int, err error) {
	for sc.Scan() {
		line := strings.TrimSpace(sc.Text())
		if line == "" || strings.HasPrefix(line, "%") {
			continue
		}
		fields := strings.Fields(line)
		if len(fields) != 3 {
			return 0, 0, 0, fmt.Errorf("size line %q: %w", line, ErrBadFormat)
		}
		rows, err = strconv.Atoi(fields[0])
		if err == nil {
			cols, err = strconv.Atoi(fields[1])
		}
		if err == nil {
			nnz, err = strconv.Atoi(fields[2])
		}
		if err != nil {
			return 0, 0, 0, fmt.Errorf("size line %q: %w", line, ErrBadFormat)
		}
		if rows <= 0 || cols <= 0 || nnz < 0 {
			return 0, 0, 0, fmt.Errorf("size line %q: %w", line, ErrBadFormat)
		}
		return rows, cols, nnz, nil
	}
	if err := sc.Err(); err != nil {
		return 0, 0, 0, fmt.Errorf("mmarket: read size line: %w", err)
	}
	return 0, 0, 0, fmt.Errorf("missing size line: %w", ErrBadFormat)
}

func parseEntry(line string) (r, c int, v float64, err error) {
	fields := strings.Fields(line)
	if len(fields) != 3 {
		return 0, 0, 0, fmt.Errorf("entry %q: %w", line, ErrBadFormat)
	}
	r, err = strconv.Atoi(fields[0])
	if err == nil {
		c, err = strconv.Atoi(fields[1])
	}
	if err == nil {
		v, err = strconv.ParseFloat(fields[2], 64)
	}
	if err != nil {
		return 0, 0, 0, fmt.Errorf("entry %q: %w", line, ErrBadFormat)
	}
	return r, c, v, nil
}
