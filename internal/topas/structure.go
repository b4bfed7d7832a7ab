package topas

import (
	"context"
	"fmt"
	"math"
	"strings"

	"github.com/vk/topasparse/internal/ctxlog"
)

// numericalParams are the parameter names that may appear as plain
// `<name> <value>` lines inside a str block.
var numericalParams = map[string]struct{}{
	"r_bragg":   {},
	"phase_MAC": {},
	"scale":     {},
	"a":         {},
	"b":         {},
	"c":         {},
	"al":        {},
	"be":        {},
	"ga":        {},
}

// crystalSystems maps each lattice symmetry class to its independent
// cell parameters. Equality-linked parameters share one template entry,
// so a Cubic shorthand assigns a, b and c from a single decoded value.
var crystalSystems = map[string][]string{
	"Triclinic":    {"a", "b", "c", "al", "be", "ga"},
	"Monoclinic":   {"a", "b", "c", "be"},
	"Orthorhombic": {"a", "b", "c"},
	"Tetragonal":   {"a=b", "c"},
	"Hexagonal":    {"a=b", "c"},
	"Trigonal":     {"a=b", "c"},
	"Cubic":        {"a=b=c"},
}

// DefaultRequiredParams is the set of parameters every str block must
// have produced by the time it ends, in the order missing ones are
// reported.
var DefaultRequiredParams = []string{"r_bragg", "molar_mass", "cell_volume", "mass_fraction"}

// Structure is one refined phase within a measurement: its name, the
// crystal system when the report declares one, the refined parameters
// and the atomic sites in source order. A Structure is mutated only
// while its own block is being consumed and is immutable afterwards.
type Structure struct {
	PhaseName     string
	CrystalSystem string
	Atoms         []*Atom

	params map[string]Value
}

// Get looks up a refined parameter by name.
func (s *Structure) Get(name string) (Value, bool) {
	v, ok := s.params[name]
	return v, ok
}

// Record returns a flat row of the selected parameters for tabular
// export. Absent parameters become NaN. Parameters flagged in hasError
// get a companion "<name>_err" column.
func (s *Structure) Record(params []string, hasError map[string]bool) map[string]float64 {
	row := make(map[string]float64, len(params))
	for _, p := range params {
		v, ok := s.params[p]
		if ok {
			row[p] = v.Val
		} else {
			row[p] = math.NaN()
		}
		if hasError[p] {
			if ok {
				row[p+"_err"] = v.Err
			} else {
				row[p+"_err"] = math.NaN()
			}
		}
	}
	return row
}

// setParam enforces the unique-assignment rule: a str block may set
// each parameter exactly once.
func (s *Structure) setParam(name string, v Value) error {
	if _, ok := s.params[name]; ok {
		return &DuplicatedParameterError{Name: name}
	}
	s.params[name] = v
	return nil
}

// applyCrystalSystem decodes the comma-separated value list of a
// crystal-system shorthand and assigns every equality-linked cell
// parameter of the system's template.
func (s *Structure) applyCrystalSystem(system, valuesStr string) error {
	template, ok := crystalSystems[system]
	if !ok {
		return newParseError("unknown crystal system", system)
	}
	if s.CrystalSystem != "" {
		return &DuplicatedParameterError{Name: "crystal_system"}
	}
	s.CrystalSystem = system

	parts := strings.Split(valuesStr, ",")
	if len(parts) != len(template) {
		return newParseError(
			fmt.Sprintf("crystal system %s expects %d values, got %d", system, len(template), len(parts)),
			valuesStr)
	}

	for i, token := range parts {
		v, err := ParseValue(strings.TrimSpace(token))
		if err != nil {
			return err
		}
		for _, p := range strings.Split(template[i], "=") {
			if err := s.setParam(p, v); err != nil {
				return err
			}
		}
	}
	return nil
}

// parseStructure consumes every two-tab line from the front of the
// cursor and returns the completed phase. Line shapes are tried in a
// fixed priority order and the first match wins; lines matching no
// shape are skipped. When the block ends the phase name and every
// required parameter must be present.
func parseStructure(ctx context.Context, cur *Cursor, required []string) (*Structure, error) {
	logger := ctxlog.FromContext(ctx)
	s := &Structure{params: make(map[string]Value)}

	for {
		raw, ok := cur.Peek()
		if !ok || !strings.HasPrefix(raw, "\t\t") {
			break
		}
		cur.Pop()
		line := strings.TrimSpace(raw)

		if m := phaseNameRegex.FindStringSubmatch(line); m != nil {
			s.PhaseName = m[1]
			continue
		}

		if m := mvwRegex.FindStringSubmatch(line); m != nil {
			for i, name := range []string{"molar_mass", "cell_volume", "mass_fraction"} {
				v, err := ParseValue(strings.TrimSpace(m[i+1]))
				if err != nil {
					return nil, err
				}
				if err := s.setParam(name, v); err != nil {
					return nil, err
				}
			}
			continue
		}

		if m := parenParamRegex.FindStringSubmatch(line); m != nil {
			if _, known := crystalSystems[m[1]]; known {
				if err := s.applyCrystalSystem(m[1], m[2]); err != nil {
					return nil, err
				}
			}
			// Other parenthesized directives are inert.
			continue
		}

		if strings.HasPrefix(line, "site") {
			atom, err := ParseAtom(line)
			if err != nil {
				return nil, err
			}
			s.Atoms = append(s.Atoms, atom)
			continue
		}

		name, rest := splitParamLine(line)
		if name == "" {
			continue
		}
		if _, known := numericalParams[name]; known {
			if rest == "" {
				return nil, newParseError("found parameter without value", line)
			}
			v, err := ParseValue(rest)
			if err != nil {
				return nil, err
			}
			if err := s.setParam(name, v); err != nil {
				return nil, err
			}
		}
	}

	if s.PhaseName == "" {
		return nil, &MissingInformationError{Field: "phase_name"}
	}
	for _, p := range required {
		if _, ok := s.params[p]; !ok {
			return nil, &MissingInformationError{Field: p}
		}
	}

	logger.Debug("Parsed structure block.", "phase", s.PhaseName, "atoms", len(s.Atoms))
	return s, nil
}

// splitParamLine splits a generic parameter line into its leading name
// and the remainder of the line.
func splitParamLine(line string) (name, rest string) {
	i := strings.IndexAny(line, " \t")
	if i < 0 {
		return line, ""
	}
	return line[:i], strings.TrimSpace(line[i+1:])
}
