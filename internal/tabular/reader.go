// Package tabular reads delimited text files of unknown provenance into
// ordered named-column tables.
//
// Municipal datasets arrive as spreadsheet exports with no agreed format:
// the same file may be UTF-8 with a BOM from one tool, ISO 8859-1 from an
// older Norwegian system, comma- or semicolon-separated depending on the
// exporting locale. The reader tries a fixed priority list of encodings,
// sniffs the delimiter, and validates a required-column contract, so
// callers never pre-know the format.
package tabular

import (
	"bytes"
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"unicode/utf8"

	"golang.org/x/text/encoding/charmap"
)

var utf8BOM = []byte{0xEF, 0xBB, 0xBF}

// encodingAttempt is one step in the decode fallback chain.
type encodingAttempt struct {
	name   string
	decode func([]byte) (string, error)
}

// Priority order mirrors how the files occur in the wild: BOM-tagged UTF-8
// from modern spreadsheet tools first, plain UTF-8, then Latin-1 as the
// legacy catch-all (every byte sequence is valid Latin-1, so it always
// decodes and acts as the terminal fallback).
var encodings = []encodingAttempt{
	{name: "utf-8-sig", decode: decodeUTF8SIG},
	{name: "utf-8", decode: decodeUTF8},
	{name: "latin-1", decode: decodeLatin1},
}

// ReadFile parses a delimited text file, trying each encoding in priority
// order with automatic delimiter detection. When required is non-empty,
// an attempt whose parsed header lacks any required column counts as a
// failed attempt and the next encoding is tried. The first attempt that
// both decodes and satisfies the column contract wins; if all fail, the
// last error (a *DecodeError or *SchemaError) is returned.
func ReadFile(path string, required []string) (Table, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Table{}, fmt.Errorf("read %s: %w", filepath.Base(path), err)
	}

	base := filepath.Base(path)
	var lastErr error

	for _, enc := range encodings {
		text, err := enc.decode(data)
		if err != nil {
			lastErr = &DecodeError{File: base, Encoding: enc.name, Err: err}
			continue
		}

		tbl, err := parse(text)
		if err != nil {
			lastErr = fmt.Errorf("parse %s (%s): %w", base, enc.name, err)
			continue
		}

		if missing := missingColumns(tbl.Columns, required); len(missing) > 0 {
			lastErr = &SchemaError{File: base, Missing: missing, Found: tbl.Columns}
			continue
		}

		return tbl, nil
	}

	return Table{}, lastErr
}

// parse sniffs the delimiter and reads the decoded text into a Table.
// Reads are lenient: variable field counts are allowed and data rows are
// padded or truncated to the header width, so a trailing ragged line does
// not fail the whole file.
func parse(text string) (Table, error) {
	delim := sniffDelimiter(text)

	r := csv.NewReader(strings.NewReader(text))
	r.Comma = delim
	r.LazyQuotes = true
	r.TrimLeadingSpace = true
	r.FieldsPerRecord = -1

	header, err := r.Read()
	if err == io.EOF {
		return Table{}, nil
	}
	if err != nil {
		return Table{}, err
	}

	for i := range header {
		header[i] = strings.TrimSpace(header[i])
	}

	tbl := Table{Columns: header}
	for {
		rec, err := r.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return Table{}, err
		}
		tbl.Rows = append(tbl.Rows, fitToWidth(rec, len(header)))
	}
	return tbl, nil
}

// sniffDelimiter picks the candidate separator occurring most often in the
// first non-empty line, counting only occurrences outside double quotes.
// Ties break in candidate order; a line with no candidate at all is a
// single-column file and defaults to comma.
func sniffDelimiter(text string) rune {
	line := text
	if i := strings.IndexAny(text, "\r\n"); i >= 0 {
		line = text[:i]
	}

	candidates := []rune{',', ';', '\t'}
	best := candidates[0]
	bestCount := 0
	for _, c := range candidates {
		if n := countUnquoted(line, c); n > bestCount {
			best, bestCount = c, n
		}
	}
	return best
}

func countUnquoted(line string, sep rune) int {
	n := 0
	inQuotes := false
	for _, r := range line {
		switch {
		case r == '"':
			inQuotes = !inQuotes
		case r == sep && !inQuotes:
			n++
		}
	}
	return n
}

// fitToWidth pads or truncates a record to exactly n fields so downstream
// consumers can rely on stable column indexes.
func fitToWidth(rec []string, n int) []string {
	if len(rec) == n {
		return rec
	}
	out := make([]string, n)
	copy(out, rec)
	return out
}

func missingColumns(found, required []string) []string {
	var missing []string
	for _, want := range required {
		present := false
		for _, have := range found {
			if have == want {
				present = true
				break
			}
		}
		if !present {
			missing = append(missing, want)
		}
	}
	return missing
}

// decodeUTF8SIG accepts UTF-8 with or without a leading byte-order mark,
// stripping the mark when present.
func decodeUTF8SIG(data []byte) (string, error) {
	data = bytes.TrimPrefix(data, utf8BOM)
	return decodeUTF8(data)
}

func decodeUTF8(data []byte) (string, error) {
	if !utf8.Valid(data) {
		return "", fmt.Errorf("invalid UTF-8 byte sequence")
	}
	return string(data), nil
}

func decodeLatin1(data []byte) (string, error) {
	out, err := charmap.ISO8859_1.NewDecoder().Bytes(data)
	if err != nil {
		return "", err
	}
	return string(out), nil
}
