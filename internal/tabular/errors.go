package tabular

import (
	"fmt"
	"strings"
)

// DecodeError reports that a file could not be decoded as text by any of
// the attempted encodings. Err holds the failure from the last attempt.
type DecodeError struct {
	File     string
	Encoding string
	Err      error
}

func (e *DecodeError) Error() string {
	return fmt.Sprintf("decode %s as %s: %v", e.File, e.Encoding, e.Err)
}

func (e *DecodeError) Unwrap() error { return e.Err }

// SchemaError reports that a file parsed cleanly but is missing required
// columns. The message enumerates both the missing columns and the columns
// actually found so the operator can spot header typos directly.
type SchemaError struct {
	File    string
	Missing []string
	Found   []string
}

func (e *SchemaError) Error() string {
	return fmt.Sprintf("missing columns [%s] in file %s; columns found: [%s]",
		strings.Join(e.Missing, ", "), e.File, strings.Join(e.Found, ", "))
}
