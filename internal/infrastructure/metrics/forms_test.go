package metrics

import (
	"strings"
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"depo/internal/domain/form"
)

func TestForms_Counters(t *testing.T) {
	reg := prometheus.NewRegistry()
	m := NewForms(reg, func() int { return 3 })

	m.Opened("unit", form.ModeAdd)
	m.Opened("unit", form.ModeAdd)
	m.Opened("warehouse", form.ModeEdit)
	m.Submitted("unit", OutcomeOK)
	m.Submitted("unit", OutcomeFailed)
	m.Cancelled("location")
	m.Expired("unit")

	assert.Equal(t, 2.0, testutil.ToFloat64(m.opened.WithLabelValues("unit", "add")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.opened.WithLabelValues("warehouse", "edit")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.submitted.WithLabelValues("unit", "failed")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.cancelled.WithLabelValues("location")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.expired.WithLabelValues("unit")))

	err := testutil.GatherAndCompare(reg, strings.NewReader(`
# HELP depo_forms_sessions_open Dialog sessions currently registered.
# TYPE depo_forms_sessions_open gauge
depo_forms_sessions_open 3
`), "depo_forms_sessions_open")
	require.NoError(t, err)
}

func TestForms_NilIsNoop(t *testing.T) {
	var m *Forms
	assert.NotPanics(t, func() {
		m.Opened("unit", form.ModeAdd)
		m.Submitted("unit", OutcomeOK)
		m.Cancelled("unit")
		m.Expired("unit")
	})
}
