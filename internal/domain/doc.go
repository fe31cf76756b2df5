// Package domain models Norwegian municipal piggdekk (studded winter tire)
// subsidy schemes.
//
// # Data Source
//
// The support dataset is compiled by hand from municipal web pages: one row
// per municipality, describing whether it compensates residents for
// switching from studded to stud-free winter tires and under which terms.
// The contacts dataset maps municipalities to their citizen-service desks.
// Both arrive as spreadsheet exports; see the tabular package for how their
// inconsistent encodings and delimiters are tolerated.
//
// # Column Conventions
//
// Support dataset:
//
//	municipality      join key; exact, case-sensitive spelling is load-bearing
//	county            grouping dimension for the county filter
//	has_support       strict boolean; accepted spellings include the
//	                  Norwegian ja/nei (see [ParseSupportFlag])
//	payment_per_tire  NOK compensation per tire, blank when not published
//	max_tires         per-car cap on compensated tires
//	max_total_nok     per-car cap on total compensation
//	period_start/end  application window, kept verbatim as published
//	lat/lon           WGS-84 marker position, blank when not geocoded
//	info_url          official municipal page for the scheme
//
// Blank numeric cells decode to nil pointers, never to zero: a missing
// payment is unknown, not free.
//
// # Merge Semantics
//
// Support is the driving table. Contacts left-join onto it by municipality
// name; a municipality with several contact rows fans out, one without any
// keeps empty contact fields, and contact rows for unknown municipalities
// are dropped. Deduplicating contacts is the data maintainer's job, not
// this package's.
package domain
