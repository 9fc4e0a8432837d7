package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	MeetingsCreated = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "meetscheduler",
		Subsystem: "service",
		Name:      "meetings_created_total",
	}, []string{"kind"})
	MeetingsRejected = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "meetscheduler",
		Subsystem: "service",
		Name:      "meetings_rejected_total",
	}, []string{"reason"})
	GatewayErrCount = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "meetscheduler",
		Subsystem: "calendar",
		Name:      "gateway_err_count",
	}, []string{"method"})
	GatewayDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: "meetscheduler",
		Subsystem: "calendar",
		Name:      "gateway_duration",
	}, []string{"method"})
)
