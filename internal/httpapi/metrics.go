package httpapi

import (
	"strconv"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	draftSaves = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "intake",
		Name:      "draft_saves_total",
		Help:      "Draft persistence attempts by flow and outcome.",
	}, []string{"flow", "outcome"})

	validationRefusals = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "intake",
		Name:      "validation_refusals_total",
		Help:      "Advance attempts refused by the step validation gate.",
	}, []string{"flow", "step"})
)

func observeSave(flow string, err error) {
	outcome := "ok"
	if err != nil {
		outcome = "error"
	}
	draftSaves.WithLabelValues(flow, outcome).Inc()
}

func observeRefusal(flow string, step int) {
	validationRefusals.WithLabelValues(flow, strconv.Itoa(step)).Inc()
}
