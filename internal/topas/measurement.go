package topas

import (
	"context"
	"strconv"
	"strings"

	"github.com/vk/topasparse/internal/ctxlog"
)

// Measurement is one diffraction experiment: the spectrum file the fit
// ran against, the temperature encoded in that filename, the global
// fit-quality parameters and the refined phases keyed by phase name.
type Measurement struct {
	SourceFile  string
	Temperature float64
	Params      map[string]Value

	structures map[string]*Structure
	order      []string
}

// Structures returns the refined phases in source order.
func (m *Measurement) Structures() []*Structure {
	out := make([]*Structure, 0, len(m.order))
	for _, name := range m.order {
		out = append(out, m.structures[name])
	}
	return out
}

// Structure looks up a refined phase by name.
func (m *Measurement) Structure(name string) (*Structure, bool) {
	s, ok := m.structures[name]
	return s, ok
}

// parseDeclaration extracts the spectrum file path from an xdd line and
// derives the measurement temperature from the filename suffix. A
// suffix like _0024-0_C.xy yields 24.0; all-zero digits yield 0.0.
func parseDeclaration(decl string) (string, float64, error) {
	m := xddRegex.FindStringSubmatch(decl)
	if m == nil {
		return "", 0, newParseError("could not parse .xy filename from declaration", decl)
	}
	sourceFile := m[1]

	tm := temperatureRegex.FindStringSubmatch(sourceFile)
	if tm == nil {
		return "", 0, newParseError(
			"could not parse temperature, expected filename to end like '_0024-0_C.xy'", sourceFile)
	}

	digits := strings.TrimLeft(tm[1], "0")
	if digits == "" {
		return sourceFile, 0.0, nil
	}
	temperature, err := strconv.ParseFloat(digits, 64)
	if err != nil {
		return "", 0, newParseError("could not parse temperature digits", sourceFile)
	}
	return sourceFile, temperature, nil
}

// parseMeasurement parses one measurement: the xdd declaration line
// (already popped by the driver) followed by every one-tab line at the
// front of the cursor. A `str` line opens a structure block; an `r_exp`
// line carries alternating name/value fit-quality pairs; any other
// measurement-level line is skipped for forward compatibility.
func parseMeasurement(ctx context.Context, decl string, cur *Cursor, opts Options) (*Measurement, error) {
	logger := ctxlog.FromContext(ctx)

	sourceFile, temperature, err := parseDeclaration(decl)
	if err != nil {
		return nil, err
	}

	m := &Measurement{
		SourceFile:  sourceFile,
		Temperature: temperature,
		Params:      make(map[string]Value),
		structures:  make(map[string]*Structure),
	}

	for {
		raw, ok := cur.Peek()
		if !ok || !strings.HasPrefix(raw, "\t") {
			break
		}
		cur.Pop()

		switch {
		case strings.HasPrefix(raw, "\tstr"):
			s, err := parseStructure(ctx, cur, opts.RequiredParams)
			if err != nil {
				return nil, err
			}
			if _, exists := m.structures[s.PhaseName]; exists {
				if opts.DuplicatePhases == PolicyReject {
					return nil, &DuplicatedParameterError{Name: s.PhaseName}
				}
				logger.Warn("Duplicate phase name, keeping the later block.",
					"file", sourceFile, "phase", s.PhaseName)
			} else {
				m.order = append(m.order, s.PhaseName)
			}
			m.structures[s.PhaseName] = s

		case strings.HasPrefix(raw, "\tr_exp"):
			fields := strings.Fields(strings.TrimSpace(raw))
			if len(fields)%2 != 0 {
				return nil, newParseError("fit-quality line has a name without a value", raw)
			}
			for i := 0; i < len(fields); i += 2 {
				v, err := ParseValue(fields[i+1])
				if err != nil {
					return nil, err
				}
				m.Params[fields[i]] = v
			}
		}
	}

	logger.Debug("Parsed measurement.",
		"file", sourceFile, "temperature", temperature, "structures", len(m.structures))
	return m, nil
}
