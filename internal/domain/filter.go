package domain

import "fmt"

// SupportFilter selects rows by support status.
type SupportFilter int

const (
	// SupportAll passes every row.
	SupportAll SupportFilter = iota
	// SupportWith passes only municipalities with a support scheme.
	SupportWith
	// SupportWithout passes only municipalities without one.
	SupportWithout
)

// ParseSupportFilter maps a query value to a SupportFilter. The empty
// string means no filter.
func ParseSupportFilter(s string) (SupportFilter, error) {
	switch s {
	case "", "all":
		return SupportAll, nil
	case "with":
		return SupportWith, nil
	case "without":
		return SupportWithout, nil
	}
	return SupportAll, fmt.Errorf("unknown support filter %q (expected all, with or without)", s)
}

// Filter is a set of predicates applied to the merged dataset with AND
// semantics. The zero value is the identity filter.
type Filter struct {
	// County restricts rows to an exact county match; empty means no
	// county restriction.
	County string
	// Support restricts rows by support status.
	Support SupportFilter
}

// Apply returns the rows satisfying every active predicate, in input
// order. The source slice is never mutated; the result is a fresh slice.
func (f Filter) Apply(records []MergedRecord) []MergedRecord {
	out := make([]MergedRecord, 0, len(records))
	for _, r := range records {
		if f.County != "" && r.County != f.County {
			continue
		}
		switch f.Support {
		case SupportWith:
			if !r.HasSupport {
				continue
			}
		case SupportWithout:
			if r.HasSupport {
				continue
			}
		}
		out = append(out, r)
	}
	return out
}
