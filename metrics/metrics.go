// Package metrics 배치 실행 결과를 프로메테우스 textfile 형식으로 내보낸다.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
)

type Metrics struct {
	registry *prometheus.Registry

	ScanOutcomes     *prometheus.CounterVec
	Users            prometheus.Gauge
	Problems         prometheus.Gauge
	DocumentsWritten *prometheus.CounterVec
	Completions      *prometheus.CounterVec
	LastRun          prometheus.Gauge
}

func New() *Metrics {
	m := &Metrics{
		registry: prometheus.NewRegistry(),

		ScanOutcomes: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "study_scan_outcomes_total",
				Help: "Number of scanned problem folders by outcome",
			},
			[]string{"status"},
		),
		Users: prometheus.NewGauge(prometheus.GaugeOpts{
			Name: "study_users",
			Help: "Number of users found in the last run",
		}),
		Problems: prometheus.NewGauge(prometheus.GaugeOpts{
			Name: "study_problems",
			Help: "Number of solved problems found in the last run",
		}),
		DocumentsWritten: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "study_documents_written_total",
				Help: "Number of markdown documents rewritten",
			},
			[]string{"kind"},
		),
		Completions: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "study_readme_completions_total",
				Help: "Number of problem READMEs processed by the completer",
			},
			[]string{"result"},
		),
		LastRun: prometheus.NewGauge(prometheus.GaugeOpts{
			Name: "study_last_run_timestamp_seconds",
			Help: "Unix time of the last finished run",
		}),
	}

	m.registry.MustRegister(m.ScanOutcomes, m.Users, m.Problems, m.DocumentsWritten, m.Completions, m.LastRun)

	return m
}

// WriteTextfile path 가 비어있으면 아무것도 하지 않는다.
func (m *Metrics) WriteTextfile(path string) error {
	if path == "" {
		return nil
	}
	m.LastRun.SetToCurrentTime()
	return prometheus.WriteToTextfile(path, m.registry)
}
