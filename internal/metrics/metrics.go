// Package metrics exposes Prometheus collectors for the checkout server.
package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics holds all Prometheus metrics for the checkout server.
type Metrics struct {
	CheckoutsTotal     *prometheus.CounterVec
	CheckoutDuration   *prometheus.HistogramVec
	CartItemsTotal     prometheus.Counter
	DiscountCentsTotal prometheus.Counter
	DiscountsTotal     prometheus.Counter
	RateLimitHitsTotal *prometheus.CounterVec
}

// New creates and registers all Prometheus metrics.
func New(registry prometheus.Registerer) *Metrics {
	if registry == nil {
		registry = prometheus.DefaultRegisterer
	}

	factory := promauto.With(registry)

	return &Metrics{
		CheckoutsTotal: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "pills_checkouts_total",
				Help: "Total number of checkout session requests by outcome",
			},
			[]string{"outcome"},
		),
		CheckoutDuration: factory.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "pills_checkout_duration_seconds",
				Help:    "Time spent building a checkout session, including Stripe calls",
				Buckets: prometheus.DefBuckets,
			},
			[]string{"outcome"},
		),
		CartItemsTotal: factory.NewCounter(
			prometheus.CounterOpts{
				Name: "pills_cart_items_total",
				Help: "Total number of cart line items received",
			},
		),
		DiscountCentsTotal: factory.NewCounter(
			prometheus.CounterOpts{
				Name: "pills_discount_cents_total",
				Help: "Total promotional discount granted, in cents",
			},
		),
		DiscountsTotal: factory.NewCounter(
			prometheus.CounterOpts{
				Name: "pills_discounts_total",
				Help: "Total number of sessions that carried a computed discount",
			},
		),
		RateLimitHitsTotal: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "pills_rate_limit_hits_total",
				Help: "Total number of requests rejected by rate limiting",
			},
			[]string{"scope"},
		),
	}
}

// ObserveCheckout records one checkout attempt with its outcome and duration.
func (m *Metrics) ObserveCheckout(outcome string, d time.Duration) {
	if m == nil {
		return
	}
	m.CheckoutsTotal.WithLabelValues(outcome).Inc()
	m.CheckoutDuration.WithLabelValues(outcome).Observe(d.Seconds())
}

// ObserveCartItems records the size of a validated cart.
func (m *Metrics) ObserveCartItems(n int) {
	if m == nil || n <= 0 {
		return
	}
	m.CartItemsTotal.Add(float64(n))
}

// ObserveDiscount records a computed promotional discount.
func (m *Metrics) ObserveDiscount(amountCents int64) {
	if m == nil {
		return
	}
	m.DiscountsTotal.Inc()
	m.DiscountCentsTotal.Add(float64(amountCents))
}

// ObserveRateLimitHit records a rejected request for the given limiter scope.
func (m *Metrics) ObserveRateLimitHit(scope string) {
	if m == nil {
		return
	}
	m.RateLimitHitsTotal.WithLabelValues(scope).Inc()
}
