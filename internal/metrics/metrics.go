package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
)

var (
	RequestsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "exemptions_requests_total",
			Help: "Exemptions request counter by operation and outcome",
		},
		[]string{"op", "outcome"}, // upsert|get|delete , ok|bad_request|conflict|not_found|unavailable|error
	)
)

func MustRegister(r prometheus.Registerer) {
	r.MustRegister(
		RequestsTotal,
	)
}
