// Package metrics exposes Prometheus counters for the RPC /metrics endpoint.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
)

var (
	LookupsCount = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "namesweep_lookups_count",
			Help: "Total registry lookups by kind (balance, names, id)",
		},
		[]string{"kind"},
	)
	LookupErrorsCount = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "namesweep_lookup_errors_count",
			Help: "Total failed registry lookups by kind",
		},
		[]string{"kind"},
	)
	TransfersSentCount = prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "namesweep_transfers_sent_count",
			Help: "Total transfers broadcast successfully",
		},
	)
	BroadcastErrorsCount = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "namesweep_broadcast_errors_count",
			Help: "Total failed broadcasts by rejection category",
		},
		[]string{"category"},
	)
)

func init() {
	prometheus.MustRegister(LookupsCount)
	prometheus.MustRegister(LookupErrorsCount)
	prometheus.MustRegister(TransfersSentCount)
	prometheus.MustRegister(BroadcastErrorsCount)
}
