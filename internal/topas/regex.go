package topas

import "regexp"

// numericPattern matches one signed decimal literal with an optional
// exponent, e.g. 4.02901455e-007.
const numericPattern = `[+-]?(?:[0-9]*\.)?[0-9]+(?:e[+-]\d+)?`

var (
	// Fitted/fixed scalar: optional `@ ` marker, value, optional
	// backtick-underscore error, optional trailing constraint text.
	scalarRegex = regexp.MustCompile(
		`^(@\s+)?(` + numericPattern + ")(?:`_(" + numericPattern + `))?(?:[\s_](.*))?$`)

	// Fraction with a redundant decimal check, e.g. "=1/3; :  0.33333".
	fractionRegex = regexp.MustCompile(`^=(\d+)/([1-9]\d*);\s*:\s*((?:[0-9]*\.)?[0-9]+)$`)

	// Atomic site record. Field order is fixed by the report writer.
	siteRegex = regexp.MustCompile(
		`^site\s+(\S+)\s+` +
			`num_posns\s+(\d+)\s+` +
			`x\s+(.+)\s+` +
			`y\s+(.+)\s+` +
			`z\s+(.+)\s+` +
			`occ\s+([\w+\-]+)\s+(.+)\s+` +
			`beq\s+(?:([\w+\-=]+)(?:; :)?\s+)?(.+)$`)

	phaseNameRegex = regexp.MustCompile(`^phase_name "(.*)"$`)

	// Molar mass, cell volume and mass fraction in one triple, e.g.
	// MVW( 842.082, 166.671`_0.069, 12.468`_0.290)
	mvwRegex = regexp.MustCompile(`^MVW\((.*),(.*),(.*)\)$`)

	// Parameter with a parenthesized value list, e.g.
	// Hexagonal(@  6.810339`_0.001012,@  4.149473`_0.001189)
	parenParamRegex = regexp.MustCompile(`^([a-zA-Z]+)\((.*)\)$`)

	xddRegex = regexp.MustCompile(`^xdd "(.+)"`)

	// Temperature encoded in the spectrum filename, e.g. _0024-0_C.xy.
	temperatureRegex = regexp.MustCompile(`_(\d+)-0_C\.xy$`)
)
