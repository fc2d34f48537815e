// Package prompt implements the interactive front-end: a small
// ask-generate-ask-again loop over stdin/stdout. It is plain line-oriented
// I/O so it can be driven by a script or a test just as well as a terminal.
package prompt

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/sparselab/mmgen/internal/config"
)

// Prompter reads answers from r and writes questions to w.
type Prompter struct {
	in  *bufio.Reader
	out io.Writer
}

// New returns a Prompter over the given streams.
func New(r io.Reader, w io.Writer) *Prompter {
	return &Prompter{in: bufio.NewReader(r), out: w}
}

// AskFloat asks for a real number; an empty answer selects def. It re-asks
// on unparsable input.
func (p *Prompter) AskFloat(label string, def float64) (float64, error) {
	for {
		line, err := p.ask(fmt.Sprintf("%s [%g]: ", label, def))
		if err != nil {
			return 0, err
		}
		if line == "" {
			return def, nil
		}
		v, err := strconv.ParseFloat(line, 64)
		if err == nil {
			return v, nil
		}
		fmt.Fprintf(p.out, "not a number: %q\n", line)
	}
}

// AskInt asks for an integer; an empty answer selects def.
func (p *Prompter) AskInt(label string, def int) (int, error) {
	for {
		line, err := p.ask(fmt.Sprintf("%s [%d]: ", label, def))
		if err != nil {
			return 0, err
		}
		if line == "" {
			return def, nil
		}
		v, err := strconv.Atoi(line)
		if err == nil {
			return v, nil
		}
		fmt.Fprintf(p.out, "not an integer: %q\n", line)
	}
}

// AskConfirm asks a yes/no question; an empty answer selects def.
func (p *Prompter) AskConfirm(label string, def bool) (bool, error) {
	hint := "y/N"
	if def {
		hint = "Y/n"
	}
	for {
		line, err := p.ask(fmt.Sprintf("%s [%s]: ", label, hint))
		if err != nil {
			return false, err
		}
		switch strings.ToLower(line) {
		case "":
			return def, nil
		case "y", "yes":
			return true, nil
		case "n", "no":
			return false, nil
		}
		fmt.Fprintf(p.out, "please answer y or n\n")
	}
}

// Loop repeatedly asks for density, rows and cols, hands the resulting
// request to run, and stops when the operator declines to continue. The
// density answer is clamped into [0.01, 1.0] before the request is built.
// A run failure is the runner's to report; the loop keeps going. Loop
// returns nil when the input stream ends.
func (p *Prompter) Loop(run func(config.Request) error) error {
	for {
		density, err := p.AskFloat("Enter the density of the sparse matrix (0.01 <= density <= 1)", config.DefaultDensity)
		if err != nil {
			return eofOK(err)
		}
		rows, err := p.AskInt("Enter the number of rows", config.DefaultRows)
		if err != nil {
			return eofOK(err)
		}
		cols, err := p.AskInt("Enter the number of columns", config.DefaultCols)
		if err != nil {
			return eofOK(err)
		}

		req := config.Request{Rows: rows, Cols: cols, Density: density}
		req.Clamp()
		req.DeriveFilename()

		if err := run(req); err != nil {
			fmt.Fprintf(p.out, "generation failed: %v\n", err)
		}

		again, err := p.AskConfirm("Do you want to generate another matrix?", false)
		if err != nil {
			return eofOK(err)
		}
		if !again {
			return nil
		}
	}
}

func (p *Prompter) ask(question string) (string, error) {
	if _, err := fmt.Fprint(p.out, question); err != nil {
		return "", err
	}
	line, err := p.in.ReadString('\n')
	if err != nil && (line == "" || err != io.EOF) {
		return "", err
	}
	return strings.TrimSpace(line), nil
}

// eofOK treats end of input as a normal way to leave the loop.
func eofOK(err error) error {
	if errors.Is(err, io.EOF) {
		return nil
	}
	return err
}
