package kommuneinfo

import (
	"context"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/couchcryptid/piggdekk-dashboard/internal/observability"
)

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func newTestClient(baseURL string) *Client {
	return NewClient(baseURL, 5*time.Second, testLogger(), observability.NewMetricsForTesting())
}

func TestClient_Municipalities(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodGet, r.Method)
		assert.Equal(t, "application/json", r.Header.Get("Accept"))
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`[
			{"kommunenummer":"0301","kommunenavnNorsk":"Oslo"},
			{"kommunenummer":"4601","kommunenavnNorsk":"Bergen"}
		]`))
	}))
	defer server.Close()

	municipalities, err := newTestClient(server.URL).Municipalities(context.Background())
	require.NoError(t, err)
	require.Len(t, municipalities, 2)
	assert.Equal(t, "0301", municipalities[0].Number)
	assert.Equal(t, "Oslo", municipalities[0].Name)
	assert.Equal(t, "Bergen", municipalities[1].Name)
}

func TestClient_Municipalities_APIError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "rate limited", http.StatusTooManyRequests)
	}))
	defer server.Close()

	_, err := newTestClient(server.URL).Municipalities(context.Background())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "status 429")
}

func TestClient_Municipalities_MalformedBody(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"not":"a list"}`))
	}))
	defer server.Close()

	_, err := newTestClient(server.URL).Municipalities(context.Background())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "decode registry response")
}

func TestClient_Municipalities_EmptyRegistry(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`[]`))
	}))
	defer server.Close()

	municipalities, err := newTestClient(server.URL).Municipalities(context.Background())
	require.NoError(t, err)
	assert.Empty(t, municipalities)
}

type failingSource struct{}

func (failingSource) Municipalities(context.Context) ([]Municipality, error) {
	return nil, assert.AnError
}

func TestMunicipalitiesOrEmpty_SwallowsFailures(t *testing.T) {
	got := MunicipalitiesOrEmpty(context.Background(), failingSource{}, testLogger())
	assert.Empty(t, got, "a registry failure never reaches the caller")
}

func TestMunicipalitiesOrEmpty_NilSource(t *testing.T) {
	got := MunicipalitiesOrEmpty(context.Background(), nil, testLogger())
	assert.Empty(t, got)
}
