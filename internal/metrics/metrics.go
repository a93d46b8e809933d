// Package metrics はカメラ検出と払い出しのPrometheusメトリクスを提供する
package metrics

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// 払い出し結果のラベル値
const (
	OutcomeClaimed   = "claimed"
	OutcomeExhausted = "exhausted"
)

// Metrics はカウンタとゲージを保持する
type Metrics struct {
	registry          *prometheus.Registry
	devicesDiscovered prometheus.Gauge
	poolRemaining     *prometheus.GaugeVec
	claimsTotal       *prometheus.CounterVec
}

// New はメトリクスを作成して専用レジストリに登録する
func New() *Metrics {
	registry := prometheus.NewRegistry()

	devicesDiscovered := prometheus.NewGauge(prometheus.GaugeOpts{
		Name: "camscout_devices_discovered",
		Help: "Number of capture devices found at startup",
	})
	poolRemaining := prometheus.NewGaugeVec(prometheus.GaugeOpts{
		Name: "camscout_pool_remaining",
		Help: "Number of unclaimed cameras per type",
	}, []string{"type"})
	claimsTotal := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "camscout_claims_total",
		Help: "Total number of claim requests by type and outcome",
	}, []string{"type", "outcome"})

	registry.MustRegister(devicesDiscovered, poolRemaining, claimsTotal)

	return &Metrics{
		registry:          registry,
		devicesDiscovered: devicesDiscovered,
		poolRemaining:     poolRemaining,
		claimsTotal:       claimsTotal,
	}
}

// SetDevicesDiscovered は検出台数を設定する
func (m *Metrics) SetDevicesDiscovered(n int) {
	m.devicesDiscovered.Set(float64(n))
}

// SetPoolRemaining はタイプごとの残数を設定する
func (m *Metrics) SetPoolRemaining(counts map[string]int) {
	for label, n := range counts {
		m.poolRemaining.WithLabelValues(label).Set(float64(n))
	}
}

// IncClaims は払い出し要求を記録する
func (m *Metrics) IncClaims(label string, claimed bool) {
	outcome := OutcomeExhausted
	if claimed {
		outcome = OutcomeClaimed
	}
	m.claimsTotal.WithLabelValues(label, outcome).Inc()
}

// Handler はメトリクスを返す http.Handler
// updateGauges はスクレイプ前にゲージを更新するために呼ばれる
func (m *Metrics) Handler(updateGauges func()) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if updateGauges != nil {
			updateGauges()
		}
		promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{}).ServeHTTP(w, r)
	})
}
