package metrics

import (
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
)

func TestMetrics_Counters(t *testing.T) {
	m := New(prometheus.NewRegistry())

	m.AuthSucceeded("login")
	m.AuthSucceeded("login")
	m.AuthFailed("token")
	m.TokenGenerated("signup")
	m.DeveloperMutated("created")
	m.ObserveRequest("GET", 200, 5*time.Millisecond)

	assert.Equal(t, 2.0, testutil.ToFloat64(m.authSuccesses.WithLabelValues("login")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.authFailures.WithLabelValues("token")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.tokenGenerations.WithLabelValues("signup")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.developerMutations.WithLabelValues("created")))
}

func TestMetrics_NilSafe(t *testing.T) {
	var m *Metrics
	assert.NotPanics(t, func() {
		m.AuthSucceeded("login")
		m.AuthFailed("login")
		m.TokenGenerated("login")
		m.DeveloperMutated("deleted")
		m.ObserveRequest("GET", 500, time.Second)
	})
}
