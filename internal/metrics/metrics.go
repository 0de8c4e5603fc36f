// Package metrics exposes Prometheus collectors for the preferences server.
package metrics

import (
	"fmt"
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/kozaktomas/photo-prefs/internal/faceprogress"
)

// Collectors groups the collectors of the server. A nil *Collectors is valid
// and records nothing.
type Collectors struct {
	preferencesReads      prometheus.Counter
	preferencesUpdates    prometheus.Counter
	preferencesResets     prometheus.Counter
	validationFailures    *prometheus.CounterVec
	faceProgressProcessed prometheus.Gauge
	faceProgressTotal     prometheus.Gauge
	faceProgressActive    prometheus.Gauge
	faceProgressUpdates   prometheus.Counter
}

// New registers the collectors against reg, the default registerer when nil.
func New(reg prometheus.Registerer) (*Collectors, error) {
	if reg == nil {
		reg = prometheus.DefaultRegisterer
	}
	c := &Collectors{
		preferencesReads: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "preferences_reads_total",
			Help: "Total number of resolved preference reads.",
		}),
		preferencesUpdates: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "preferences_updates_total",
			Help: "Total number of accepted preference updates.",
		}),
		preferencesResets: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "preferences_resets_total",
			Help: "Total number of users reset to the default preferences.",
		}),
		validationFailures: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "preferences_validation_failures_total",
			Help: "Rejected preference fields partitioned by field and constraint.",
		}, []string{"field", "constraint"}),
		faceProgressProcessed: prometheus.NewGauge(prometheus.GaugeOpts{
			Name: "faces_video_progress_processed",
			Help: "Frames processed by the active video face detection job.",
		}),
		faceProgressTotal: prometheus.NewGauge(prometheus.GaugeOpts{
			Name: "faces_video_progress_total",
			Help: "Frames to process in the active video face detection job.",
		}),
		faceProgressActive: prometheus.NewGauge(prometheus.GaugeOpts{
			Name: "faces_video_progress_active",
			Help: "1 while a video face detection job is running.",
		}),
		faceProgressUpdates: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "faces_video_progress_updates_total",
			Help: "Total number of face progress changes observed.",
		}),
	}
	for _, collector := range []prometheus.Collector{
		c.preferencesReads,
		c.preferencesUpdates,
		c.preferencesResets,
		c.validationFailures,
		c.faceProgressProcessed,
		c.faceProgressTotal,
		c.faceProgressActive,
		c.faceProgressUpdates,
	} {
		if err := reg.Register(collector); err != nil {
			return nil, fmt.Errorf("register collector: %w", err)
		}
	}
	return c, nil
}

// PreferencesRead counts a resolved preferences read.
func (c *Collectors) PreferencesRead() {
	if c == nil {
		return
	}
	c.preferencesReads.Inc()
}

// PreferencesUpdated counts an accepted preferences update.
func (c *Collectors) PreferencesUpdated() {
	if c == nil {
		return
	}
	c.preferencesUpdates.Inc()
}

// PreferencesReset counts a user reset to the defaults.
func (c *Collectors) PreferencesReset() {
	if c == nil {
		return
	}
	c.preferencesResets.Inc()
}

// ValidationFailed counts a rejected field.
func (c *Collectors) ValidationFailed(field, constraint string) {
	if c == nil {
		return
	}
	c.validationFailures.WithLabelValues(field, constraint).Inc()
}

// ObserveFaceProgress mirrors a face progress value into the gauges. It has
// the signature of a faceprogress.Store subscriber.
func (c *Collectors) ObserveFaceProgress(p *faceprogress.Progress) {
	if c == nil {
		return
	}
	c.faceProgressUpdates.Inc()
	if p == nil {
		c.faceProgressActive.Set(0)
		c.faceProgressProcessed.Set(0)
		c.faceProgressTotal.Set(0)
		return
	}
	c.faceProgressActive.Set(1)
	c.faceProgressProcessed.Set(float64(p.Processed))
	c.faceProgressTotal.Set(float64(p.Total))
}

// Handler returns the exposition handler for g, the default gatherer when nil.
func Handler(g prometheus.Gatherer) http.Handler {
	if g == nil {
		g = prometheus.DefaultGatherer
	}
	return promhttp.HandlerFor(g, promhttp.HandlerOpts{})
}
