// Package export flattens the parsed object model into delimited
// tables: one row per refined phase in the structures table, one row
// per atomic site in the atoms table.
package export

import (
	"encoding/csv"
	"fmt"
	"io"
	"strconv"

	"github.com/vk/topasparse/internal/topas"
)

// paramHasError flags the structure parameters whose reported value
// carries a refinement uncertainty; these get a companion "<name>_err"
// column in the structures table.
var paramHasError = map[string]bool{
	"r_bragg":       false,
	"a":             true,
	"b":             true,
	"c":             true,
	"al":            true,
	"be":            true,
	"ga":            true,
	"molar_mass":    true,
	"cell_volume":   true,
	"mass_fraction": true,
}

// atomColumns is the fixed column order of the atoms table, matching
// the keys of topas.Atom.Record.
var atomColumns = []string{
	"name", "multiplicity",
	"x", "x_err", "x_fitted",
	"y", "y_err", "y_fitted",
	"z", "z_err", "z_fitted",
	"occ_label", "occ",
	"beq_label", "beq", "beq_err",
}

// WriteStructures writes one CSV row per (measurement, phase). Selected
// parameters that a phase did not refine are written as NaN. Renames
// substitute the header cell for a column, leaving derived _err headers
// untouched.
func WriteStructures(w io.Writer, measurements []*topas.Measurement, params []string, renames map[string]string) error {
	cw := csv.NewWriter(w)

	header := []string{"file_name", "temperature", "phase_name"}
	columns := []string{}
	for _, p := range params {
		columns = append(columns, p)
		if paramHasError[p] {
			columns = append(columns, p+"_err")
		}
	}
	for _, c := range columns {
		if renamed, ok := renames[c]; ok {
			header = append(header, renamed)
		} else {
			header = append(header, c)
		}
	}
	if err := cw.Write(header); err != nil {
		return err
	}

	for _, m := range measurements {
		for _, s := range m.Structures() {
			record := s.Record(params, paramHasError)
			row := []string{m.SourceFile, formatFloat(m.Temperature), s.PhaseName}
			for _, c := range columns {
				row = append(row, formatFloat(record[c]))
			}
			if err := cw.Write(row); err != nil {
				return err
			}
		}
	}

	cw.Flush()
	return cw.Error()
}

// WriteAtoms writes one CSV row per atomic site across all
// measurements and phases.
func WriteAtoms(w io.Writer, measurements []*topas.Measurement) error {
	cw := csv.NewWriter(w)

	header := append([]string{"file_name", "temperature", "phase_name"}, atomColumns...)
	if err := cw.Write(header); err != nil {
		return err
	}

	for _, m := range measurements {
		for _, s := range m.Structures() {
			for _, a := range s.Atoms {
				record := a.Record()
				row := []string{m.SourceFile, formatFloat(m.Temperature), s.PhaseName}
				for _, c := range atomColumns {
					row = append(row, formatCell(record[c]))
				}
				if err := cw.Write(row); err != nil {
					return err
				}
			}
		}
	}

	cw.Flush()
	return cw.Error()
}

func formatFloat(v float64) string {
	return strconv.FormatFloat(v, 'g', -1, 64)
}

func formatCell(v any) string {
	switch c := v.(type) {
	case string:
		return c
	case int:
		return strconv.Itoa(c)
	case bool:
		return strconv.FormatBool(c)
	case float64:
		return formatFloat(c)
	default:
		return fmt.Sprint(c)
	}
}
