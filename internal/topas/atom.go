package topas

import "strconv"

// Atom is one crystallographic site of a refined phase: fractional
// coordinates, occupancy and the Beq thermal-displacement parameter.
// An Atom is built atomically from one `site` line and never mutated
// afterwards.
type Atom struct {
	Name         string
	Multiplicity int

	X, Y, Z Value

	OccLabel string
	Occ      Value

	BeqLabel string
	Beq      Value
}

// ParseAtom decodes one `site` line, e.g.
//
//	site Al1 num_posns 12 x 0 y 0 z @ 0.35218`_0.00045 occ Al+3 1 beq @ 0.45`_0.09
//
// The field order is fixed; a line that does not match the shape, or
// whose numeric sub-fields fail to decode, yields a *ParseError
// carrying the offending line.
func ParseAtom(line string) (*Atom, error) {
	m := siteRegex.FindStringSubmatch(line)
	if m == nil {
		return nil, newParseError("could not parse atom line", line)
	}

	mult, err := strconv.Atoi(m[2])
	if err != nil {
		return nil, newParseError("could not parse site multiplicity", line)
	}

	a := &Atom{
		Name:         m[1],
		Multiplicity: mult,
		OccLabel:     m[6],
		BeqLabel:     m[8],
	}

	for _, f := range []struct {
		dst   *Value
		token string
	}{
		{&a.X, m[3]},
		{&a.Y, m[4]},
		{&a.Z, m[5]},
		{&a.Occ, m[7]},
		{&a.Beq, m[9]},
	} {
		v, err := ParseValue(f.token)
		if err != nil {
			return nil, err
		}
		*f.dst = v
	}

	return a, nil
}

// Record returns a flat row view of the site for tabular export. Known
// uncertainty-carrying fields get a companion "<name>_err" column.
func (a *Atom) Record() map[string]any {
	return map[string]any{
		"name":         a.Name,
		"multiplicity": a.Multiplicity,

		"x":        a.X.Val,
		"x_err":    a.X.Err,
		"x_fitted": a.X.Fitted,

		"y":        a.Y.Val,
		"y_err":    a.Y.Err,
		"y_fitted": a.Y.Fitted,

		"z":        a.Z.Val,
		"z_err":    a.Z.Err,
		"z_fitted": a.Z.Fitted,

		"occ_label": a.OccLabel,
		"occ":       a.Occ.Val,

		"beq_label": a.BeqLabel,
		"beq":       a.Beq.Val,
		"beq_err":   a.Beq.Err,
	}
}
