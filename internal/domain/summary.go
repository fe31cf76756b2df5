package domain

import "sort"

// Summary holds the dashboard KPI scalars for a (possibly filtered) view.
type Summary struct {
	// Municipalities is the number of rows in the view.
	Municipalities int `json:"municipalities"`
	// WithSupport is the number of rows with an active support scheme.
	WithSupport int `json:"with_support"`
	// MaxPaymentPerTire is the highest payment among supported rows that
	// define one. Nil is the "no data" sentinel: no supported row in the
	// view carries a payment value.
	MaxPaymentPerTire *float64 `json:"max_payment_per_tire"`
}

// Summarize computes the KPI scalars over the given view.
func Summarize(records []MergedRecord) Summary {
	s := Summary{Municipalities: len(records)}
	for _, r := range records {
		if !r.HasSupport {
			continue
		}
		s.WithSupport++
		if r.PaymentPerTire == nil {
			continue
		}
		if s.MaxPaymentPerTire == nil || *r.PaymentPerTire > *s.MaxPaymentPerTire {
			v := *r.PaymentPerTire
			s.MaxPaymentPerTire = &v
		}
	}
	return s
}

// Counties returns the sorted distinct non-empty county names across the
// full dataset, for populating the county filter.
func Counties(records []MergedRecord) []string {
	seen := make(map[string]bool)
	var counties []string
	for _, r := range records {
		if r.County == "" || seen[r.County] {
			continue
		}
		seen[r.County] = true
		counties = append(counties, r.County)
	}
	sort.Strings(counties)
	return counties
}

// MapPoint is a plottable municipality marker.
type MapPoint struct {
	Municipality string  `json:"municipality"`
	Lat          float64 `json:"lat"`
	Lon          float64 `json:"lon"`
}

// MapPoints returns markers for the supported municipalities in the view
// that carry both coordinates.
func MapPoints(records []MergedRecord) []MapPoint {
	var points []MapPoint
	for _, r := range records {
		if !r.HasSupport || r.Lat == nil || r.Lon == nil {
			continue
		}
		points = append(points, MapPoint{
			Municipality: r.Municipality,
			Lat:          *r.Lat,
			Lon:          *r.Lon,
		})
	}
	return points
}
