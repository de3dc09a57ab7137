package httpserver

import (
	"errors"
	"strconv"

	"github.com/prometheus/client_golang/prometheus"

	"github.com/robalobadob/waffle-cheatsheet/internal/waffle"
)

type metrics struct {
	sheets  *prometheus.CounterVec
	toggles *prometheus.CounterVec
}

func newMetrics(reg prometheus.Registerer) *metrics {
	m := &metrics{
		sheets: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "waffle_cheatsheets_total",
			Help: "Cheatsheet builds by source and outcome.",
		}, []string{"source", "outcome"}),
		toggles: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "waffle_overlay_toggles_total",
			Help: "Overlay toggles by resulting visibility.",
		}, []string{"visible"}),
	}
	reg.MustRegister(m.sheets, m.toggles)
	return m
}

// sheet records one build attempt.
func (m *metrics) sheet(source string, err error) {
	outcome := "ok"
	switch {
	case err == nil:
	case errors.Is(err, waffle.ErrIncomplete):
		outcome = "incomplete"
	case errors.Is(err, waffle.ErrMalformed):
		outcome = "malformed"
	default:
		outcome = "error"
	}
	m.sheets.WithLabelValues(source, outcome).Inc()
}

func (m *metrics) toggle(visible bool) {
	m.toggles.WithLabelValues(strconv.FormatBool(visible)).Inc()
}
