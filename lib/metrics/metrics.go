package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
)

const (
	subsystem = "recruitment"

	stageTransitionsTotal     = "stage_transitions_total"
	transitionRejectionsTotal = "transition_rejections_total"
	bulkInterviewsTotal       = "bulk_interviews_total"
	concurrencyConflictsTotal = "concurrency_conflicts_total"

	pipelineLabel = "pipeline"
	stageLabel    = "stage"
	reasonLabel   = "reason"
	outcomeLabel  = "outcome"

	BulkOutcomeCreated = "created"
	BulkOutcomeFailed  = "failed"
)

var stageTransitionsTotalMetric = prometheus.NewCounterVec(
	prometheus.CounterOpts{
		Subsystem: subsystem,
		Name:      stageTransitionsTotal,
		Help:      "number of applied stage transitions by destination pipeline and stage",
	},
	[]string{pipelineLabel, stageLabel},
)

var transitionRejectionsTotalMetric = prometheus.NewCounterVec(
	prometheus.CounterOpts{
		Subsystem: subsystem,
		Name:      transitionRejectionsTotal,
		Help:      "number of rejected transitions and blocked interviews by reason",
	},
	[]string{reasonLabel},
)

var bulkInterviewsTotalMetric = prometheus.NewCounterVec(
	prometheus.CounterOpts{
		Subsystem: subsystem,
		Name:      bulkInterviewsTotal,
		Help:      "number of per-candidate outcomes of bulk interview scheduling",
	},
	[]string{outcomeLabel},
)

var concurrencyConflictsTotalMetric = prometheus.NewCounter(
	prometheus.CounterOpts{
		Subsystem: subsystem,
		Name:      concurrencyConflictsTotal,
		Help:      "number of detected concurrent modifications of a job applicant",
	},
)

func IncreaseStageTransitionsMetric(pipeline, stage string) {
	labels := prometheus.Labels{
		pipelineLabel: pipeline,
		stageLabel:    stage,
	}
	stageTransitionsTotalMetric.With(labels).Inc()
}

func IncreaseTransitionRejectionsMetric(reason string) {
	if reason == "" {
		return
	}
	transitionRejectionsTotalMetric.With(prometheus.Labels{reasonLabel: reason}).Inc()
}

func IncreaseBulkInterviewsMetric(outcome string, count int) {
	bulkInterviewsTotalMetric.With(prometheus.Labels{outcomeLabel: outcome}).Add(float64(count))
}

func IncreaseConcurrencyConflictsMetric() {
	concurrencyConflictsTotalMetric.Inc()
}

func init() {
	registerMetrics()
}

func registerMetrics() {
	prometheus.MustRegister(stageTransitionsTotalMetric)
	prometheus.MustRegister(transitionRejectionsTotalMetric)
	prometheus.MustRegister(bulkInterviewsTotalMetric)
	prometheus.MustRegister(concurrencyConflictsTotalMetric)
}
