package service

import (
	"github.com/prometheus/client_golang/prometheus"
)

var (
	TaskOperations = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "task_operations_total",
			Help: "Task write operations by kind and outcome",
		},
		[]string{"operation", "outcome"},
	)
)

func init() {
	prometheus.MustRegister(TaskOperations)
}
