// Package metrics prometheus hisoblagichlari. Har bir Recorder o'z registry siga ega.
package metrics

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Submission natijalari
const (
	OutcomeAdded     = "added"
	OutcomeInvalid   = "invalid"
	OutcomeRetried   = "retried"
	OutcomeFault     = "fault"
	OutcomeDelivered = "delivered"
)

// Recorder storefront metrikalari. nil Recorder hech narsa qilmaydi.
type Recorder struct {
	registry    *prometheus.Registry
	submissions *prometheus.CounterVec
	contacts    *prometheus.CounterVec
	menuViews   *prometheus.CounterVec
	catalogSize prometheus.Gauge
	aiLatency   prometheus.Histogram
}

// NewRecorder yangi registry bilan Recorder yaratish
func NewRecorder() *Recorder {
	r := &Recorder{
		registry: prometheus.NewRegistry(),
		submissions: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "storefront_submissions_total",
				Help: "Menu item submissions by outcome",
			},
			[]string{"outcome"},
		),
		contacts: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "storefront_contact_messages_total",
				Help: "Contact form messages by outcome",
			},
			[]string{"outcome"},
		),
		menuViews: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "storefront_menu_views_total",
				Help: "Menu list renders by surface and category",
			},
			[]string{"surface", "category"},
		),
		catalogSize: prometheus.NewGauge(prometheus.GaugeOpts{
			Name: "storefront_catalog_items",
			Help: "Number of items in the session catalog",
		}),
		aiLatency: prometheus.NewHistogram(prometheus.HistogramOpts{
			Name:    "storefront_barista_answer_seconds",
			Help:    "Barista assistant answer latency",
			Buckets: prometheus.ExponentialBuckets(0.25, 2, 8),
		}),
	}

	r.registry.MustRegister(r.submissions, r.contacts, r.menuViews, r.catalogSize, r.aiLatency)
	return r
}

// Submission qo'shish natijasini sanash
func (r *Recorder) Submission(outcome string) {
	if r == nil {
		return
	}
	r.submissions.WithLabelValues(outcome).Inc()
}

// Contact aloqa xabari natijasini sanash
func (r *Recorder) Contact(outcome string) {
	if r == nil {
		return
	}
	r.contacts.WithLabelValues(outcome).Inc()
}

// MenuView ro'yxat ko'rsatilganini sanash
func (r *Recorder) MenuView(surface, category string) {
	if r == nil {
		return
	}
	if category == "" {
		category = "all"
	}
	r.menuViews.WithLabelValues(surface, category).Inc()
}

// CatalogSize katalog hajmi
func (r *Recorder) CatalogSize(n int) {
	if r == nil {
		return
	}
	r.catalogSize.Set(float64(n))
}

// BaristaLatency AI javob vaqti (sekund)
func (r *Recorder) BaristaLatency(seconds float64) {
	if r == nil {
		return
	}
	r.aiLatency.Observe(seconds)
}

// Gatherer testlar va /metrics uchun
func (r *Recorder) Gatherer() prometheus.Gatherer {
	if r == nil {
		return prometheus.NewRegistry()
	}
	return r.registry
}

// Handler /metrics endpoint
func (r *Recorder) Handler() http.Handler {
	return promhttp.HandlerFor(r.Gatherer(), promhttp.HandlerOpts{})
}
