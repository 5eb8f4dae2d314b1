package metrics

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

var (
	HTTPRequests = prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "chirp_http_requests_total",
		Help: "Total HTTP requests",
	}, []string{"method", "route", "status"})
	CacheHits = prometheus.NewCounter(prometheus.CounterOpts{
		Name: "chirp_cache_hits_total",
		Help: "Total cache-aside hits",
	})
	CacheMisses = prometheus.NewCounter(prometheus.CounterOpts{
		Name: "chirp_cache_misses_total",
		Help: "Total cache-aside misses (including degraded reads)",
	})
	SocketConnections = prometheus.NewGauge(prometheus.GaugeOpts{
		Name: "chirp_socket_connections",
		Help: "Currently registered socket connections",
	})
	SocketEvents = prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "chirp_socket_events_total",
		Help: "Total socket events emitted",
	}, []string{"event"})
)

func init() {
	prometheus.MustRegister(HTTPRequests, CacheHits, CacheMisses, SocketConnections, SocketEvents)
}

// Handler returns the /metrics endpoint handler.
func Handler() http.Handler {
	return promhttp.Handler()
}
