package network

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"

	apperrors "friend-network/backend/pkg/errors"
)

var (
	// operationsTotal counts store operations.
	// Labels: operation (list, friends_of_friends, add_friend, remove_friend, seed),
	// result (ok or an error type)
	operationsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "friend_network",
		Subsystem: "store",
		Name:      "operations_total",
		Help:      "Total friend network operations by result",
	}, []string{"operation", "result"})

	// peopleTotal tracks how many people the network holds.
	peopleTotal = promauto.NewGauge(prometheus.GaugeOpts{
		Namespace: "friend_network",
		Subsystem: "store",
		Name:      "people",
		Help:      "Number of people in the friend network",
	})
)

func recordOperation(operation string, err error) {
	result := "ok"
	if err != nil {
		result = string(apperrors.TypeOf(err))
	}
	operationsTotal.WithLabelValues(operation, result).Inc()
}
