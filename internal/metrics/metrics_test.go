package metrics

import (
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func scrape(t *testing.T, m *Metrics) string {
	t.Helper()
	server := httptest.NewServer(m.Handler())
	defer server.Close()

	resp, err := http.Get(server.URL)
	require.NoError(t, err)
	defer resp.Body.Close()
	require.Equal(t, http.StatusOK, resp.StatusCode)

	body, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	return string(body)
}

func TestMetrics_Record(t *testing.T) {
	m := New()

	m.ObserveRPC("/moneymate.v1.SessionService/GetSession", "ok", 0.01)
	m.ObserveRPC("/moneymate.v1.SessionService/GetSession", "ok", 0.02)
	m.ObserveRPC("/moneymate.v1.SessionService/GetSession", "not_found", 0.01)
	m.ObserveExtraction("canned", "ok")

	body := scrape(t, m)
	assert.Contains(t, body, `moneymate_rpc_requests_total{code="ok",procedure="/moneymate.v1.SessionService/GetSession"} 2`)
	assert.Contains(t, body, `moneymate_rpc_requests_total{code="not_found",procedure="/moneymate.v1.SessionService/GetSession"} 1`)
	assert.Contains(t, body, `moneymate_rpc_duration_seconds_count{procedure="/moneymate.v1.SessionService/GetSession"} 3`)
	assert.Contains(t, body, `moneymate_receipt_extractions_total{backend="canned",result="ok"} 1`)
	assert.Contains(t, body, "go_goroutines")
}

func TestMetrics_BreakerState(t *testing.T) {
	tests := []struct {
		state string
		want  string
	}{
		{"closed", "moneymate_extraction_breaker_state 0"},
		{"half-open", "moneymate_extraction_breaker_state 1"},
		{"open", "moneymate_extraction_breaker_state 2"},
	}

	m := New()
	for _, tt := range tests {
		t.Run(tt.state, func(t *testing.T) {
			m.SetBreakerState(tt.state)
			assert.Contains(t, scrape(t, m), tt.want)
		})
	}
}

func TestMetrics_NilIsNoop(t *testing.T) {
	var m *Metrics
	assert.NotPanics(t, func() {
		m.ObserveRPC("p", "ok", 1)
		m.ObserveExtraction("canned", "ok")
		m.SetBreakerState("open")
	})
}
