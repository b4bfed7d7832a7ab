// Package topas parses the textual .out report written by a
// Rietveld-refinement run into a three-level object model:
// Measurement → Structure → Atom.
//
// The grammar is indentation-sensitive. A measurement starts at column
// zero with an `xdd "<file>"` declaration; lines belonging to the
// measurement are indented with one tab, and lines belonging to one of
// its refined phases (a `str` block) with two tabs. A single mutable
// line cursor is handed down through the recursive descent, so each
// level consumes exactly the lines of its own block and leaves the
// cursor at the next sibling.
//
// Every fitted quantity in the report is written in a small numeric
// grammar (fitted marker, value, backtick-underscore error, trailing
// constraint text, or an exact-fraction form); ParseValue decodes it
// into a Value.
//
// Malformed input is never repaired. Each entry point fails fast with a
// typed error (ParseError, MissingInformationError,
// DuplicatedParameterError) carrying enough context to locate the fault
// in the source file.
package topas
