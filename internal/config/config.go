package config

import (
	"fmt"
	"math"
)

const (
	// DefaultDensity is offered by the interactive front-end.
	DefaultDensity = 0.1

	// MinDensity / MaxDensity bound the interactive clamp range.
	MinDensity = 0.01
	MaxDensity = 1.0

	// DefaultRows / DefaultCols are the interactive prompt defaults.
	DefaultRows = 1000000
	DefaultCols = 1000000
)

// Request describes one matrix to generate: dimensions, target density and
// the output file name. Requests come from the CSV batch spec or the
// interactive prompt; both feed the same generator.
type Request struct {
	Rows     int
	Cols     int
	Density  float64
	Filename string
}

// Validate rejects requests the generator would refuse: non-positive
// dimensions or a density outside [0, 1].
func (r *Request) Validate() error {
	if r.Rows <= 0 {
		return fmt.Errorf("invalid rows: %d (must be positive)", r.Rows)
	}
	if r.Cols <= 0 {
		return fmt.Errorf("invalid cols: %d (must be positive)", r.Cols)
	}
	if math.IsNaN(r.Density) || r.Density < 0 || r.Density > 1 {
		return fmt.Errorf("invalid density: %v (must be in [0, 1])", r.Density)
	}
	return nil
}

// Clamp forces the density into [MinDensity, MaxDensity]. The interactive
// front-end clamps before handing the request over; the generator itself
// never does.
func (r *Request) Clamp() {
	if r.Density < MinDensity {
		r.Density = MinDensity
	}
	if r.Density > MaxDensity {
		r.Density = MaxDensity
	}
}

// DeriveFilename fills in the conventional output name when none was given
// and returns it. The pattern is what the benchmark harness globs for.
func (r *Request) DeriveFilename() string {
	if r.Filename == "" {
		r.Filename = fmt.Sprintf("mm_matrix_%dx%d_density%.2f.mtx", r.Rows, r.Cols, r.Density)
	}
	return r.Filename
}

// String renders the request for error reports, with enough context to
// re-run just this request.
func (r *Request) String() string {
	return fmt.Sprintf("%dx%d density=%g file=%s", r.Rows, r.Cols, r.Density, r.DeriveFilename())
}
