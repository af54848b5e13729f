// Package metrics holds the marketplace business counters. HTTP request
// metrics come from the echoprometheus middleware.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const namespace = "marketplace"

const (
	LoginSuccess = "success"
	LoginFailure = "failure"
)

type Metrics struct {
	AccountsRegistered prometheus.Counter
	Logins             *prometheus.CounterVec
	ProductsCreated    prometheus.Counter
	PermissionDenied   *prometheus.CounterVec
}

// New registers the counters with reg. Tests pass a fresh registry so
// repeated construction does not collide.
func New(reg prometheus.Registerer) *Metrics {
	f := promauto.With(reg)
	return &Metrics{
		AccountsRegistered: f.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "accounts_registered_total",
			Help:      "Total number of accounts created through registration.",
		}),
		// result: "success" or "failure"
		Logins: f.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "logins_total",
			Help:      "Total number of login attempts.",
		}, []string{"result"}),
		ProductsCreated: f.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "products_created_total",
			Help:      "Total number of products created.",
		}),
		// endpoint: handler name that refused the request
		PermissionDenied: f.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "permission_denied_total",
			Help:      "Total number of requests rejected by a permission check.",
		}, []string{"endpoint"}),
	}
}

// The methods below are safe on a nil *Metrics.

func (m *Metrics) AccountRegistered() {
	if m == nil {
		return
	}
	m.AccountsRegistered.Inc()
}

func (m *Metrics) Login(result string) {
	if m == nil {
		return
	}
	m.Logins.WithLabelValues(result).Inc()
}

func (m *Metrics) ProductCreated() {
	if m == nil {
		return
	}
	m.ProductsCreated.Inc()
}

func (m *Metrics) Denied(endpoint string) {
	if m == nil {
		return
	}
	m.PermissionDenied.WithLabelValues(endpoint).Inc()
}
