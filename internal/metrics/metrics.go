package metrics

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

var (
	DomainsEnqueued = prometheus.NewCounter(prometheus.CounterOpts{
		Namespace: "domainpilot",
		Name:      "domains_enqueued_total",
		Help:      "Domains accepted into the provisioning queue.",
	})
	DomainsSucceeded = prometheus.NewCounter(prometheus.CounterOpts{
		Namespace: "domainpilot",
		Name:      "domains_succeeded_total",
		Help:      "Domains that reached Success status.",
	})
	DomainsFailed = prometheus.NewCounter(prometheus.CounterOpts{
		Namespace: "domainpilot",
		Name:      "domains_failed_total",
		Help:      "Domains that reached Error status.",
	})
	StepsFailed = prometheus.NewCounter(prometheus.CounterOpts{
		Namespace: "domainpilot",
		Name:      "steps_failed_total",
		Help:      "Individual provisioning steps that failed.",
	})
	StepRetries = prometheus.NewCounter(prometheus.CounterOpts{
		Namespace: "domainpilot",
		Name:      "step_retries_total",
		Help:      "Per-step retries requested through the API.",
	})
)

// Init registers collectors; call once from main.
func Init() {
	prometheus.MustRegister(DomainsEnqueued, DomainsSucceeded, DomainsFailed, StepsFailed, StepRetries)
}

// Serve starts a /metrics server on the given addr. Blocking; run in a goroutine.
func Serve(addr string) error {
	mux := http.NewServeMux()
	mux.Handle("/metrics", promhttp.Handler())
	return http.ListenAndServe(addr, mux)
}
