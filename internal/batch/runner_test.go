package batch

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/sparselab/mmgen/internal/config"
	"github.com/sparselab/mmgen/internal/mmarket"
)

func TestRunOne(t *testing.T) {
	dir := t.TempDir()
	r := &Runner{OutDir: dir, Seed: 42}

	res := r.RunOne(config.Request{Rows: 10, Cols: 10, Density: 0.5})
	if res.Err != nil {
		t.Fatalf("RunOne failed: %v", res.Err)
	}
	if res.NNZ != 50 {
		t.Errorf("nnz = %d, want 50", res.NNZ)
	}
	if filepath.Base(res.Path) != "mm_matrix_10x10_density0.50.mtx" {
		t.Errorf("path = %q", res.Path)
	}

	m, err := mmarket.ReadFile(res.Path)
	if err != nil {
		t.Fatalf("ReadFile failed: %v", err)
	}
	if m.Rows != 10 || m.Cols != 10 || m.NNZ() != 50 {
		t.Errorf("file holds %dx%d nnz=%d", m.Rows, m.Cols, m.NNZ())
	}
}

func TestRunOneCustomFilename(t *testing.T) {
	dir := t.TempDir()
	r := &Runner{OutDir: dir}

	res := r.RunOne(config.Request{Rows: 4, Cols: 4, Density: 0.5, Filename: "custom.mtx"})
	if res.Err != nil {
		t.Fatalf("RunOne failed: %v", res.Err)
	}
	if _, err := os.Stat(filepath.Join(dir, "custom.mtx")); err != nil {
		t.Errorf("expected custom.mtx to exist: %v", err)
	}
}

func TestRunContinuesPastFailures(t *testing.T) {
	dir := t.TempDir()
	r := &Runner{OutDir: dir, Seed: 7}

	reqs := []config.Request{
		{Rows: 5, Cols: 5, Density: 0.2},
		{Rows: 0, Cols: 5, Density: 0.2}, // invalid dimensions
		{Rows: 5, Cols: 5, Density: 3.0}, // invalid density
		{Rows: 6, Cols: 6, Density: 0.5},
	}

	results := r.Run(reqs)
	if len(results) != 4 {
		t.Fatalf("expected 4 results, got %d", len(results))
	}
	if results[0].Err != nil || results[3].Err != nil {
		t.Errorf("valid requests failed: %v, %v", results[0].Err, results[3].Err)
	}
	if results[1].Err == nil || results[2].Err == nil {
		t.Error("invalid requests did not fail")
	}
	if got := CountFailures(results); got != 2 {
		t.Errorf("CountFailures = %d, want 2", got)
	}

	// The surviving outputs exist despite the failures in between.
	for _, i := range []int{0, 3} {
		if _, err := os.Stat(results[i].Path); err != nil {
			t.Errorf("result %d output missing: %v", i, err)
		}
	}
}

func TestRunSeededReproducible(t *testing.T) {
	reqs := []config.Request{
		{Rows: 12, Cols: 12, Density: 0.4, Filename: "a.mtx"},
		{Rows: 12, Cols: 12, Density: 0.4, Filename: "b.mtx"},
	}

	dirA, dirB := t.TempDir(), t.TempDir()
	ra := &Runner{OutDir: dirA, Seed: 99}
	rb := &Runner{OutDir: dirB, Seed: 99}
	resA := ra.Run(reqs)
	resB := rb.Run(reqs)

	for i := range resA {
		a, err := os.ReadFile(resA[i].Path)
		if err != nil {
			t.Fatalf("read %s: %v", resA[i].Path, err)
		}
		b, err := os.ReadFile(resB[i].Path)
		if err != nil {
			t.Fatalf("read %s: %v", resB[i].Path, err)
		}
		if string(a) != string(b) {
			t.Errorf("request %d output differs between identical seeded runs", i)
		}
	}

	// Same dimensions, different request index: matrices must differ.
	a, _ := os.ReadFile(resA[0].Path)
	b, _ := os.ReadFile(resA[1].Path)
	if string(a) == string(b) {
		t.Error("distinct requests produced identical matrices under base seed")
	}
}

func TestRunOneUnwritableDestination(t *testing.T) {
	r := &Runner{OutDir: "/no/such/dir"}
	res := r.RunOne(config.Request{Rows: 3, Cols: 3, Density: 0.5})
	if res.Err == nil {
		t.Fatal("expected write error")
	}
}
