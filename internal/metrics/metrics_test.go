package metrics

import (
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
)

func TestMetricsHandler(t *testing.T) {
	m := New()
	m.SetDevicesDiscovered(3)
	m.IncClaims("cam", true)
	m.IncClaims("cam", false)
	m.IncClaims("cam", false)

	refreshed := false
	h := m.Handler(func() {
		refreshed = true
		m.SetPoolRemaining(map[string]int{"cam": 1, "thermal": 0})
	})

	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/metrics", nil))

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	if !refreshed {
		t.Error("updateGauges was not called")
	}

	body, _ := io.ReadAll(rec.Body)
	out := string(body)
	for _, want := range []string{
		"camscout_devices_discovered 3",
		`camscout_pool_remaining{type="cam"} 1`,
		`camscout_pool_remaining{type="thermal"} 0`,
		`camscout_claims_total{outcome="claimed",type="cam"} 1`,
		`camscout_claims_total{outcome="exhausted",type="cam"} 2`,
	} {
		if !strings.Contains(out, want) {
			t.Errorf("metrics output missing %q", want)
		}
	}
}
