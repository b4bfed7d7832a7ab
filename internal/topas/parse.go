package topas

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"strings"

	"github.com/vk/topasparse/internal/ctxlog"
)

// DuplicatePolicy controls what happens when two str blocks inside one
// measurement declare the same phase name.
type DuplicatePolicy int

const (
	// PolicyOverwrite keeps the later block, matching the report
	// writer's own last-wins behavior.
	PolicyOverwrite DuplicatePolicy = iota
	// PolicyReject fails the parse with a DuplicatedParameterError.
	PolicyReject
)

// Options tunes the parse. The zero value is ready to use.
type Options struct {
	// RequiredParams is the set of parameters every str block must
	// contain; nil means DefaultRequiredParams.
	RequiredParams []string
	// DuplicatePhases selects the collision behavior for same-named
	// phases within one measurement.
	DuplicatePhases DuplicatePolicy
}

func (o *Options) withDefaults() Options {
	var opts Options
	if o != nil {
		opts = *o
	}
	if opts.RequiredParams == nil {
		opts.RequiredParams = DefaultRequiredParams
	}
	return opts
}

// Parse reads one refinement report and returns its measurements in
// source order. Lines outside any measurement block are inert; a line
// starting with `xdd` opens a measurement whose block is consumed
// recursively. The first malformed construct aborts the parse.
func Parse(ctx context.Context, r io.Reader, opts *Options) ([]*Measurement, error) {
	logger := ctxlog.FromContext(ctx)
	o := opts.withDefaults()

	lines, err := readLines(r)
	if err != nil {
		return nil, fmt.Errorf("failed to read report: %w", err)
	}

	cur := NewCursor(lines)
	var measurements []*Measurement
	for {
		line, ok := cur.Pop()
		if !ok {
			break
		}
		if !strings.HasPrefix(line, "xdd") {
			continue
		}
		m, err := parseMeasurement(ctx, line, cur, o)
		if err != nil {
			return nil, err
		}
		measurements = append(measurements, m)
	}

	logger.Debug("Parsed report.", "measurements", len(measurements))
	return measurements, nil
}

// readLines drains the reader into the backing slice for the cursor.
// The whole input is read up front; the cursor then owns the only
// position into it.
func readLines(r io.Reader) ([]string, error) {
	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)

	var lines []string
	for scanner.Scan() {
		lines = append(lines, scanner.Text())
	}
	return lines, scanner.Err()
}
