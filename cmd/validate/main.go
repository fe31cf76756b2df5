// Command validate performs data integrity checks on the dashboard source
// files: column schemas, value coercion, join consistency between the two
// datasets, and coordinate sanity.
//
// Usage:
//
//	go run ./cmd/validate \
//	  -support data/piggdekk_support.csv \
//	  -contacts data/municipality_contacts.csv
package main

import (
	"flag"
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/couchcryptid/piggdekk-dashboard/internal/dataset"
	"github.com/couchcryptid/piggdekk-dashboard/internal/domain"
	"github.com/couchcryptid/piggdekk-dashboard/internal/tabular"
)

// Mainland Norway bounding box. A coordinate outside it is almost
// certainly a typo or a swapped lat/lon pair.
const (
	minLat = 57.0
	maxLat = 72.0
	minLon = 4.0
	maxLon = 32.0
)

// phase tracks pass/fail for a validation phase.
type phase struct {
	name   string
	errors []string
}

func (p *phase) errorf(format string, args ...any) {
	p.errors = append(p.errors, fmt.Sprintf(format, args...))
}

func (p *phase) passed() bool { return len(p.errors) == 0 }

func main() {
	support := flag.String("support", "data/piggdekk_support.csv", "path to the support dataset")
	contacts := flag.String("contacts", "data/municipality_contacts.csv", "path to the contacts dataset")
	flag.Parse()

	if code := run(*support, *contacts); code != 0 {
		os.Exit(code)
	}
}

func run(supportPath, contactsPath string) int {
	fmt.Println("=== Municipality Data Integrity Validation ===")
	fmt.Println()

	support, err := dataset.LoadSupport(supportPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "FATAL: load support dataset: %v\n", err)
		return 1
	}
	contacts, err := dataset.LoadContacts(contactsPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "FATAL: load contacts dataset: %v\n", err)
		return 1
	}

	phases := []*phase{
		validateValues(support),
		validateJoin(support, contacts),
		validateCoordinates(support),
	}

	fmt.Println()
	allPassed := true
	for _, p := range phases {
		status := "\033[32mPASS\033[0m"
		if !p.passed() {
			status = fmt.Sprintf("\033[31mFAIL (%d errors)\033[0m", len(p.errors))
			allPassed = false
		}
		fmt.Printf("  %-42s %s\n", p.name, status)
	}

	fmt.Println()
	fmt.Printf("Rows: %d support, %d contacts\n", support.Len(), contacts.Len())

	for _, p := range phases {
		if p.passed() {
			continue
		}
		fmt.Printf("\n--- %s ---\n", p.name)
		for i, e := range p.errors {
			fmt.Printf("  [%d] %s\n", i+1, e)
		}
	}

	if allPassed {
		fmt.Println("\nAll validations passed.")
		return 0
	}
	fmt.Println("\nValidation FAILED.")
	return 1
}

// ── Phase 1: Value Coercion ──
// Every has_support cell must be a recognized boolean and every numeric
// cell either blank or a number. Unlike the service, which fails the whole
// load on the first bad row, the validator reports all of them.

func validateValues(support tabular.Table) *phase {
	p := &phase{name: "Phase 1: Value Coercion"}

	numericCols := []string{"payment_per_tire", "max_tires", "max_total_nok", "lat", "lon"}

	for i := 0; i < support.Len(); i++ {
		line := i + 2
		name := support.Cell(i, domain.JoinKey)

		if strings.TrimSpace(name) == "" {
			p.errorf("line %d: empty municipality name", line)
		}
		if _, err := domain.ParseSupportFlag(support.Cell(i, "has_support")); err != nil {
			p.errorf("line %d (%s): has_support: %v", line, name, err)
		}
		for _, col := range numericCols {
			cell := strings.TrimSpace(support.Cell(i, col))
			if cell == "" || isBlankMarker(cell) {
				continue
			}
			if _, err := strconv.ParseFloat(normalizeDecimal(cell), 64); err != nil {
				p.errorf("line %d (%s): %s: value %q is not numeric", line, name, col, cell)
			}
		}
	}
	return p
}

func isBlankMarker(s string) bool {
	switch strings.ToLower(s) {
	case "-", "na", "n/a", "nan", "null":
		return true
	}
	return false
}

func normalizeDecimal(s string) string {
	if strings.Count(s, ",") == 1 && !strings.Contains(s, ".") {
		return strings.Replace(s, ",", ".", 1)
	}
	return s
}

// ── Phase 2: Join Integrity ──
// The merge is keyed on exact municipality names. Duplicates fan rows out,
// and a casing or whitespace mismatch between the files silently drops the
// contact details, so both are flagged here.

func validateJoin(support, contacts tabular.Table) *phase {
	p := &phase{name: "Phase 2: Join Integrity"}

	checkDuplicates(p, support, "support")
	checkDuplicates(p, contacts, "contacts")

	supportKeys := make(map[string]bool, support.Len())
	supportFolded := make(map[string]string, support.Len())
	for i := 0; i < support.Len(); i++ {
		name := support.Cell(i, domain.JoinKey)
		supportKeys[name] = true
		supportFolded[foldKey(name)] = name
	}

	for i := 0; i < contacts.Len(); i++ {
		name := contacts.Cell(i, domain.JoinKey)
		if supportKeys[name] {
			continue
		}
		if match, ok := supportFolded[foldKey(name)]; ok {
			p.errorf("contacts line %d: %q does not match any support row exactly, but %q differs only in casing or whitespace", i+2, name, match)
			continue
		}
		p.errorf("contacts line %d: %q has no support row; its contact details are unreachable", i+2, name)
	}
	return p
}

func checkDuplicates(p *phase, tbl tabular.Table, label string) {
	seen := map[string]int{}
	for i := 0; i < tbl.Len(); i++ {
		name := tbl.Cell(i, domain.JoinKey)
		if first, ok := seen[name]; ok {
			p.errorf("%s line %d: duplicate municipality %q (first seen on line %d)", label, i+2, name, first)
			continue
		}
		seen[name] = i + 2
	}
}

func foldKey(s string) string {
	return strings.ToLower(strings.Join(strings.Fields(s), " "))
}

// ── Phase 3: Coordinate Sanity ──

func validateCoordinates(support tabular.Table) *phase {
	p := &phase{name: "Phase 3: Coordinate Sanity"}

	for i := 0; i < support.Len(); i++ {
		line := i + 2
		name := support.Cell(i, domain.JoinKey)

		lat, latOK := parseCoord(support.Cell(i, "lat"))
		lon, lonOK := parseCoord(support.Cell(i, "lon"))

		if latOK != lonOK {
			p.errorf("line %d (%s): only one of lat/lon is set; the row cannot be plotted", line, name)
			continue
		}
		if !latOK {
			continue
		}
		if lat < minLat || lat > maxLat {
			p.errorf("line %d (%s): lat %g outside Norway (%g..%g)", line, name, lat, minLat, maxLat)
		}
		if lon < minLon || lon > maxLon {
			p.errorf("line %d (%s): lon %g outside Norway (%g..%g)", line, name, lon, minLon, maxLon)
		}
	}
	return p
}

func parseCoord(s string) (float64, bool) {
	s = strings.TrimSpace(s)
	if s == "" || isBlankMarker(s) {
		return 0, false
	}
	v, err := strconv.ParseFloat(normalizeDecimal(s), 64)
	if err != nil {
		return 0, false
	}
	return v, true
}
