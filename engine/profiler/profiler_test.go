package profiler

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTickReportsAfterInterval(t *testing.T) {
	p := NewProfiler()
	p.updateInterval = time.Millisecond

	// The first tick lands inside the interval and stays quiet.
	assert.False(t, p.Tick())

	time.Sleep(2 * time.Millisecond)
	require.True(t, p.Tick())

	// Counters reset after a report.
	assert.False(t, p.Tick())
}
