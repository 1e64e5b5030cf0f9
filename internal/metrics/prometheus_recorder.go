package metrics

import (
	"time"

	prom "github.com/prometheus/client_golang/prometheus"
)

// PrometheusRecorder implements Recorder using Prometheus metrics.
type PrometheusRecorder struct {
	stageDuration    *prom.HistogramVec
	stageResults     *prom.CounterVec
	pipelineDuration *prom.HistogramVec
	pipelineOutcome  *prom.CounterVec
}

// NewPrometheusRecorder constructs the metrics and registers them with reg.
func NewPrometheusRecorder(reg *prom.Registry) *PrometheusRecorder {
	if reg == nil {
		reg = prom.NewRegistry()
	}
	pr := &PrometheusRecorder{
		stageDuration: prom.NewHistogramVec(prom.HistogramOpts{
			Namespace: "msph",
			Name:      "stage_duration_seconds",
			Help:      "Duration of individual pipeline stages",
			Buckets:   []float64{0.1, 0.5, 1, 5, 15, 30, 60, 120, 300, 600},
		}, []string{"pipeline", "stage"}),
		stageResults: prom.NewCounterVec(prom.CounterOpts{
			Namespace: "msph",
			Name:      "stage_results_total",
			Help:      "Stage result counts by outcome",
		}, []string{"pipeline", "stage", "result"}),
		pipelineDuration: prom.NewHistogramVec(prom.HistogramOpts{
			Namespace: "msph",
			Name:      "pipeline_duration_seconds",
			Help:      "Total pipeline duration",
			Buckets:   []float64{1, 5, 15, 30, 60, 120, 300, 600, 1200},
		}, []string{"pipeline"}),
		pipelineOutcome: prom.NewCounterVec(prom.CounterOpts{
			Namespace: "msph",
			Name:      "pipeline_outcomes_total",
			Help:      "Pipeline outcomes by final status",
		}, []string{"pipeline", "outcome"}),
	}
	reg.MustRegister(pr.stageDuration, pr.stageResults, pr.pipelineDuration, pr.pipelineOutcome)
	return pr
}

func (p *PrometheusRecorder) ObserveStageDuration(pipeline, stage string, d time.Duration) {
	if p == nil {
		return
	}
	p.stageDuration.WithLabelValues(pipeline, stage).Observe(d.Seconds())
}

func (p *PrometheusRecorder) IncStageResult(pipeline, stage string, result ResultLabel) {
	if p == nil {
		return
	}
	p.stageResults.WithLabelValues(pipeline, stage, string(result)).Inc()
}

func (p *PrometheusRecorder) ObservePipelineDuration(pipeline string, d time.Duration) {
	if p == nil {
		return
	}
	p.pipelineDuration.WithLabelValues(pipeline).Observe(d.Seconds())
}

func (p *PrometheusRecorder) IncPipelineOutcome(pipeline string, outcome string) {
	if p == nil {
		return
	}
	p.pipelineOutcome.WithLabelValues(pipeline, outcome).Inc()
}
