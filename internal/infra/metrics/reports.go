package metrics

import "github.com/prometheus/client_golang/prometheus"

func init() { register(reportRunsTotal, reportNotificationsQueued) }

var reportRunsTotal = prometheus.NewCounterVec(
	prometheus.CounterOpts{
		Name: "report_runs_total",
		Help: "Monthly report runs by outcome (completed/skipped/failed).",
	},
	[]string{"outcome"},
)

var reportNotificationsQueued = prometheus.NewCounter(
	prometheus.CounterOpts{
		Name: "report_notifications_queued_total",
		Help: "Summary notifications handed to the dispatcher by report runs.",
	},
)

func IncReportRun(outcome string) {
	reportRunsTotal.WithLabelValues(norm(outcome)).Inc()
}

func AddReportNotificationsQueued(n int) {
	reportNotificationsQueued.Add(float64(n))
}
