package topas

import (
	"strconv"
	"strings"
)

// Value is one decoded scalar from the report: the refined (or fixed)
// number, its standard error when the report carries one, whether the
// fitting engine refined it, and any trailing constraint annotation
// (limits, shared-parameter syntax) captured verbatim.
type Value struct {
	Val        float64
	Err        float64
	Fitted     bool
	Constraint string
}

// ParseValue decodes one scalar token. Two grammars are tried in order:
//
//	@  4.02901455e-007`_6.025e-008_LIMIT_MIN_1e-015
//
// a fitted/fixed scalar — optional `@ ` fitted marker, signed decimal,
// optional backtick-underscore error, optional trailing constraint
// text — and
//
//	=1/3; :  0.33333
//
// an exact fraction whose trailing decimal is only a human-readable
// check (kept as Constraint, never used for the computed value).
//
// A token matching neither grammar yields a *ParseError.
func ParseValue(token string) (Value, error) {
	token = strings.TrimSpace(token)

	if m := scalarRegex.FindStringSubmatch(token); m != nil {
		val, err := strconv.ParseFloat(m[2], 64)
		if err != nil {
			return Value{}, newParseError("could not parse value", token)
		}
		v := Value{Val: val, Fitted: m[1] != "", Constraint: m[4]}
		if m[3] != "" {
			v.Err, err = strconv.ParseFloat(m[3], 64)
			if err != nil {
				return Value{}, newParseError("could not parse value error", token)
			}
		}
		return v, nil
	}

	if m := fractionRegex.FindStringSubmatch(token); m != nil {
		num, err := strconv.ParseFloat(m[1], 64)
		if err != nil {
			return Value{}, newParseError("could not parse fraction numerator", token)
		}
		den, err := strconv.ParseFloat(m[2], 64)
		if err != nil {
			return Value{}, newParseError("could not parse fraction denominator", token)
		}
		return Value{Val: num / den, Constraint: m[3]}, nil
	}

	return Value{}, newParseError("could not parse value", token)
}
