package metrics

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

var (
	Interactions = prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: "rolemenu",
		Name:      "interactions_total",
		Help:      "Count of handled interactions by kind, operation and HTTP status",
	}, []string{"kind", "operation", "status_code"})

	InteractionDuration = prometheus.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: "rolemenu",
		Name:      "interaction_duration_seconds",
		Help:      "Duration of interaction requests",
	}, []string{"status_code"})

	DiscordRequests = prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: "rolemenu",
		Name:      "discord_requests_total",
		Help:      "Count of Discord REST calls by method and outcome",
	}, []string{"method", "status"})
)

// NewHandler serves the service metrics alongside the Go runtime and process collectors.
func NewHandler() http.Handler {
	registry := prometheus.NewRegistry()

	registry.MustRegister(collectors.NewGoCollector())
	registry.MustRegister(collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))
	registry.MustRegister(Interactions, InteractionDuration, DiscordRequests)

	return promhttp.HandlerFor(registry, promhttp.HandlerOpts{})
}
