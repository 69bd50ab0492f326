package parse

import (
	"errors"
	"fmt"
	"strings"
)

var (
	ErrEmptyInput   = errors.New("empty input")
	ErrUnrecognized = errors.New("unrecognized characters")
	ErrNoDerivation = errors.New("input does not derive from the start symbol")
	ErrInputTooLong = errors.New("input too long")
)

// Diagnostic reports one input character that no unit rule matches.
type Diagnostic struct {
	Char       rune
	Offset     int // character index
	ByteOffset int // byte index in the original string
}

func (d Diagnostic) String() string {
	return fmt.Sprintf("%d: unexpected %q", d.Offset, d.Char)
}

// Error is returned when a parse fails. Err is one of the Err* sentinels;
// Diagnostics is non-empty only for ErrUnrecognized.
type Error struct {
	Err         error
	Diagnostics []Diagnostic
}

func (e *Error) Error() string {
	if len(e.Diagnostics) == 0 {
		return "parse: " + e.Err.Error()
	}
	parts := make([]string, len(e.Diagnostics))
	for i, d := range e.Diagnostics {
		parts[i] = d.String()
	}
	return fmt.Sprintf("parse: %s: %s", e.Err, strings.Join(parts, ", "))
}

func (e *Error) Unwrap() error {
	return e.Err
}

// Diagnostics extracts the lexical diagnostics from an error returned by
// Parse. It returns nil for any other error.
func Diagnostics(err error) []Diagnostic {
	var perr *Error
	if errors.As(err, &perr) {
		return perr.Diagnostics
	}
	return nil
}
