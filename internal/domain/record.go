package domain

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/couchcryptid/piggdekk-dashboard/internal/tabular"
)

// JoinKey is the column both datasets are joined on.
const JoinKey = "municipality"

// ContactSuffix disambiguates contact columns that collide with support
// columns in the merged table.
const ContactSuffix = "_contact"

// SupportColumns is the required-column contract for the support dataset.
var SupportColumns = []string{
	"municipality",
	"county",
	"has_support",
	"payment_per_tire",
	"max_tires",
	"max_total_nok",
	"period_start",
	"period_end",
	"lat",
	"lon",
	"info_url",
}

// ContactColumns is the required-column contract for the contacts dataset.
var ContactColumns = []string{"municipality", "service_name", "phone", "website"}

// SupportRecord describes one municipality's subsidy scheme. Numeric fields
// are pointers: nil means the source file left the value blank.
type SupportRecord struct {
	Municipality   string   `json:"municipality"`
	County         string   `json:"county"`
	HasSupport     bool     `json:"has_support"`
	PaymentPerTire *float64 `json:"payment_per_tire"`
	MaxTires       *float64 `json:"max_tires"`
	MaxTotalNOK    *float64 `json:"max_total_nok"`
	PeriodStart    string   `json:"period_start,omitempty"`
	PeriodEnd      string   `json:"period_end,omitempty"`
	Lat            *float64 `json:"lat"`
	Lon            *float64 `json:"lon"`
	InfoURL        string   `json:"info_url,omitempty"`
}

// ContactRecord holds a municipality's citizen-service contact details.
type ContactRecord struct {
	Municipality string `json:"municipality"`
	ServiceName  string `json:"service_name"`
	Phone        string `json:"phone"`
	Website      string `json:"website"`
}

// MergedRecord is a support record left-joined with its contact details.
// Contact fields are empty when no contact row matched.
type MergedRecord struct {
	SupportRecord
	ServiceName string `json:"service_name,omitempty"`
	Phone       string `json:"phone,omitempty"`
	Website     string `json:"website,omitempty"`
}

// ParseSupportFlag interprets a has_support cell as a strict boolean.
// Accepted forms (case-insensitive): true/false, 1/0, yes/no, ja/nei —
// the Norwegian pair occurs in files maintained directly by municipal
// staff. Anything else is a defect in the source data and fails the load
// rather than being silently coerced.
func ParseSupportFlag(s string) (bool, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "true", "1", "yes", "ja":
		return true, nil
	case "false", "0", "no", "nei":
		return false, nil
	}
	return false, fmt.Errorf("value %q is not a recognized boolean (expected true/false, 1/0, yes/no or ja/nei)", s)
}

// parseOptionalFloat parses a numeric cell, treating the common blank
// markers as absent. A decimal comma is accepted when unambiguous, since
// semicolon-delimited exports from Norwegian locales write 150,50.
func parseOptionalFloat(s string) (*float64, error) {
	s = strings.TrimSpace(s)
	switch strings.ToLower(s) {
	case "", "-", "na", "n/a", "nan", "null":
		return nil, nil
	}
	if strings.Count(s, ",") == 1 && !strings.Contains(s, ".") {
		s = strings.Replace(s, ",", ".", 1)
	}
	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return nil, fmt.Errorf("value %q is not numeric", s)
	}
	return &v, nil
}

// MergedRecords decodes a merged support+contacts table into typed records.
// This is where the has_support contract is enforced: a row whose flag
// cannot be coerced fails the whole decode, with the row and municipality
// named in the error.
func MergedRecords(tbl tabular.Table) ([]MergedRecord, error) {
	records := make([]MergedRecord, 0, tbl.Len())
	for i := 0; i < tbl.Len(); i++ {
		rec, err := decodeMergedRow(tbl, i)
		if err != nil {
			return nil, fmt.Errorf("row %d (%s): %w", i+2, tbl.Cell(i, JoinKey), err)
		}
		records = append(records, rec)
	}
	return records, nil
}

func decodeMergedRow(tbl tabular.Table, i int) (MergedRecord, error) {
	hasSupport, err := ParseSupportFlag(tbl.Cell(i, "has_support"))
	if err != nil {
		return MergedRecord{}, fmt.Errorf("has_support: %w", err)
	}

	rec := MergedRecord{
		SupportRecord: SupportRecord{
			Municipality: strings.TrimSpace(tbl.Cell(i, JoinKey)),
			County:       strings.TrimSpace(tbl.Cell(i, "county")),
			HasSupport:   hasSupport,
			PeriodStart:  strings.TrimSpace(tbl.Cell(i, "period_start")),
			PeriodEnd:    strings.TrimSpace(tbl.Cell(i, "period_end")),
			InfoURL:      strings.TrimSpace(tbl.Cell(i, "info_url")),
		},
		ServiceName: strings.TrimSpace(contactCell(tbl, i, "service_name")),
		Phone:       strings.TrimSpace(contactCell(tbl, i, "phone")),
		Website:     strings.TrimSpace(contactCell(tbl, i, "website")),
	}

	numeric := []struct {
		col  string
		dest **float64
	}{
		{"payment_per_tire", &rec.PaymentPerTire},
		{"max_tires", &rec.MaxTires},
		{"max_total_nok", &rec.MaxTotalNOK},
		{"lat", &rec.Lat},
		{"lon", &rec.Lon},
	}
	for _, n := range numeric {
		v, err := parseOptionalFloat(tbl.Cell(i, n.col))
		if err != nil {
			return MergedRecord{}, fmt.Errorf("%s: %w", n.col, err)
		}
		*n.dest = v
	}

	return rec, nil
}

// contactCell reads a contact-origin column, falling back to its suffixed
// name when the join had to rename it.
func contactCell(tbl tabular.Table, i int, col string) string {
	if tbl.HasColumn(col) {
		return tbl.Cell(i, col)
	}
	return tbl.Cell(i, col+ContactSuffix)
}
