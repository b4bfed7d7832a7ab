package topas

import "fmt"

// ParseError reports a line or token that matches no recognized grammar
// at a point where one was expected. Text carries the offending raw
// input so the caller can locate the fault without re-scanning the file.
type ParseError struct {
	Reason string
	Text   string
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("%s: %q", e.Reason, e.Text)
}

func newParseError(reason, text string) *ParseError {
	return &ParseError{Reason: reason, Text: text}
}

// MissingInformationError reports a required field that was never set
// by the time its enclosing block ended.
type MissingInformationError struct {
	Field string
}

func (e *MissingInformationError) Error() string {
	return fmt.Sprintf("%q is missing", e.Field)
}

// DuplicatedParameterError reports a structure parameter that was
// assigned a second time within one block.
type DuplicatedParameterError struct {
	Name string
}

func (e *DuplicatedParameterError) Error() string {
	return fmt.Sprintf("parameter %q was already set", e.Name)
}
