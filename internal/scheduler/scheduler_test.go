package scheduler

import (
	"context"
	"sync/atomic"
	"testing"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type countingRunner struct {
	scans atomic.Int64
}

func (r *countingRunner) Scan(ctx context.Context) error {
	r.scans.Add(1)
	return nil
}

func testLogger() *logrus.Logger {
	log := logrus.New()
	log.SetLevel(logrus.PanicLevel)
	return log
}

func TestSchedulerLifecycle(t *testing.T) {
	s := NewScheduler(&countingRunner{}, time.UTC, testLogger())

	require.NoError(t, s.ScheduleScan("@every 1h"))
	assert.False(t, s.IsRunning())

	require.NoError(t, s.Start())
	assert.True(t, s.IsRunning())

	next := s.NextRun()
	assert.False(t, next.IsZero())
	assert.True(t, next.After(time.Now()))

	require.NoError(t, s.Stop())
	assert.False(t, s.IsRunning())
}

func TestSchedulerRejectsInvalidCron(t *testing.T) {
	s := NewScheduler(&countingRunner{}, time.UTC, testLogger())
	assert.Error(t, s.ScheduleScan("every hour or so"))
}

func TestSchedulerStartWithoutJobs(t *testing.T) {
	s := NewScheduler(&countingRunner{}, time.UTC, testLogger())
	assert.Error(t, s.Start())
}

func TestSchedulerCannotScheduleWhileRunning(t *testing.T) {
	s := NewScheduler(&countingRunner{}, time.UTC, testLogger())
	require.NoError(t, s.ScheduleScan("@every 1h"))
	require.NoError(t, s.Start())
	defer s.Stop()

	assert.Error(t, s.ScheduleScan("@every 30m"))
}

func TestSchedulerDoubleStart(t *testing.T) {
	s := NewScheduler(&countingRunner{}, time.UTC, testLogger())
	require.NoError(t, s.ScheduleScan("@every 1h"))
	require.NoError(t, s.Start())
	defer s.Stop()

	assert.Error(t, s.Start())
}

func TestSchedulerStopIdempotent(t *testing.T) {
	s := NewScheduler(&countingRunner{}, time.UTC, testLogger())
	assert.NoError(t, s.Stop())
}
