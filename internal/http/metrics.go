package http

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var requestsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
	Name: "spesa_http_requests_total",
	Help: "HTTP requests served, by method, route and status code.",
}, []string{"method", "route", "status"})

var requestDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
	Name:    "spesa_http_request_duration_seconds",
	Help:    "HTTP request latency, by method and route.",
	Buckets: prometheus.DefBuckets,
}, []string{"method", "route"})

var expensesCreated = promauto.NewCounter(prometheus.CounterOpts{
	Name: "spesa_expenses_created_total",
	Help: "Expenses recorded in the ledger.",
})

var expensesRemoved = promauto.NewCounter(prometheus.CounterOpts{
	Name: "spesa_expenses_removed_total",
	Help: "Expenses removed from the ledger.",
})

var checkouts = promauto.NewCounter(prometheus.CounterOpts{
	Name: "spesa_cart_checkouts_total",
	Help: "Successful cart checkouts.",
})

var statsCacheHits = promauto.NewCounter(prometheus.CounterOpts{
	Name: "spesa_stats_cache_hits_total",
	Help: "Statistics responses served from the cache.",
})

var statsCacheMisses = promauto.NewCounter(prometheus.CounterOpts{
	Name: "spesa_stats_cache_misses_total",
	Help: "Statistics responses computed from the ledger.",
})
