package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

// Metrics holds the collectors for episode rendering
type Metrics struct {
	Registry *prometheus.Registry

	episodes      *prometheus.CounterVec
	stageDuration *prometheus.HistogramVec
	captionCues   prometheus.Counter
	narration     prometheus.Histogram
}

// New registers the collectors on a fresh registry
func New() *Metrics {
	reg := prometheus.NewRegistry()
	m := &Metrics{
		Registry: reg,
		episodes: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: "leet2video",
				Name:      "episodes_total",
				Help:      "Episodes processed, by result.",
			},
			[]string{"status"},
		),
		stageDuration: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Namespace: "leet2video",
				Name:      "stage_duration_seconds",
				Help:      "Time spent in each pipeline stage.",
				Buckets:   prometheus.DefBuckets,
			},
			[]string{"stage"},
		),
		captionCues: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "leet2video",
			Name:      "caption_cues_total",
			Help:      "Caption cues written.",
		}),
		narration: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: "leet2video",
			Name:      "narration_seconds",
			Help:      "Estimated narration length per episode.",
			Buckets:   []float64{30, 60, 120, 240, 480, 600},
		}),
	}
	reg.MustRegister(m.episodes, m.stageDuration, m.captionCues, m.narration)
	return m
}

func (m *Metrics) EpisodeDone(err error) {
	if m == nil {
		return
	}
	status := "ok"
	if err != nil {
		status = "error"
	}
	m.episodes.WithLabelValues(status).Inc()
}

// ObserveStage records the time since start for a stage
func (m *Metrics) ObserveStage(stage string, start time.Time) {
	if m == nil {
		return
	}
	m.stageDuration.WithLabelValues(stage).Observe(time.Since(start).Seconds())
}

func (m *Metrics) AddCues(n int) {
	if m == nil {
		return
	}
	m.captionCues.Add(float64(n))
}

func (m *Metrics) ObserveNarration(seconds float64) {
	if m == nil {
		return
	}
	m.narration.Observe(seconds)
}

// WriteFile dumps the registry in the node_exporter textfile format
func (m *Metrics) WriteFile(path string) error {
	if m == nil || path == "" {
		return nil
	}
	return prometheus.WriteToTextfile(path, m.Registry)
}
