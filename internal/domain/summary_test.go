package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func fptr(v float64) *float64 { return &v }

func supportedRec(municipality string, payment *float64) MergedRecord {
	return MergedRecord{SupportRecord: SupportRecord{
		Municipality:   municipality,
		HasSupport:     true,
		PaymentPerTire: payment,
	}}
}

func TestSummarize_MaxPayment(t *testing.T) {
	records := []MergedRecord{
		supportedRec("Oslo", fptr(100)),
		supportedRec("Bergen", nil),
		supportedRec("Trondheim", fptr(250)),
	}

	s := Summarize(records)

	assert.Equal(t, 3, s.Municipalities)
	assert.Equal(t, 3, s.WithSupport)
	require.NotNil(t, s.MaxPaymentPerTire)
	assert.Equal(t, 250.0, *s.MaxPaymentPerTire)
}

func TestSummarize_AllPaymentsAbsent(t *testing.T) {
	records := []MergedRecord{
		supportedRec("Oslo", nil),
		supportedRec("Bergen", nil),
	}

	s := Summarize(records)

	assert.Equal(t, 2, s.WithSupport)
	assert.Nil(t, s.MaxPaymentPerTire, "no data must yield the nil sentinel, not zero")
}

func TestSummarize_UnsupportedPaymentsIgnored(t *testing.T) {
	records := []MergedRecord{
		supportedRec("Oslo", fptr(100)),
		{SupportRecord: SupportRecord{Municipality: "Bergen", HasSupport: false, PaymentPerTire: fptr(999)}},
	}

	s := Summarize(records)

	assert.Equal(t, 2, s.Municipalities)
	assert.Equal(t, 1, s.WithSupport)
	require.NotNil(t, s.MaxPaymentPerTire)
	assert.Equal(t, 100.0, *s.MaxPaymentPerTire, "payments on unsupported rows are not KPIs")
}

func TestSummarize_Empty(t *testing.T) {
	s := Summarize(nil)

	assert.Equal(t, 0, s.Municipalities)
	assert.Equal(t, 0, s.WithSupport)
	assert.Nil(t, s.MaxPaymentPerTire)
}

func TestCounties(t *testing.T) {
	records := []MergedRecord{
		rec("Oslo", "Oslo", true),
		rec("Bergen", "Vestland", false),
		rec("Voss", "Vestland", false),
		rec("Unknown", "", false),
		rec("Alta", "Finnmark", true),
	}

	assert.Equal(t, []string{"Finnmark", "Oslo", "Vestland"}, Counties(records))
}

func TestMapPoints(t *testing.T) {
	records := []MergedRecord{
		{SupportRecord: SupportRecord{Municipality: "Oslo", HasSupport: true, Lat: fptr(59.91), Lon: fptr(10.75)}},
		{SupportRecord: SupportRecord{Municipality: "Bergen", HasSupport: true, Lat: fptr(60.39)}}, // missing lon
		{SupportRecord: SupportRecord{Municipality: "Utsira", HasSupport: false, Lat: fptr(59.31), Lon: fptr(4.88)}},
	}

	points := MapPoints(records)

	require.Len(t, points, 1)
	assert.Equal(t, MapPoint{Municipality: "Oslo", Lat: 59.91, Lon: 10.75}, points[0])
}
