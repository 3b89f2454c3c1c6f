package scheduler

import (
	"errors"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type countingPurger struct {
	calls atomic.Int32
	err   error
}

func (p *countingPurger) PurgeExpired() (int64, error) {
	p.calls.Add(1)
	return 3, p.err
}

func TestResetCleanupScheduler_RunOnce(t *testing.T) {
	p := &countingPurger{}
	s := NewResetCleanupScheduler("@hourly", p)

	s.runOnce()
	p.err = errors.New("db down")
	s.runOnce()

	assert.Equal(t, int32(2), p.calls.Load())
}

func TestResetCleanupScheduler_StartStop(t *testing.T) {
	s := NewResetCleanupScheduler("@every 1h", &countingPurger{})
	require.NoError(t, s.Start())
	assert.Len(t, s.cron.Entries(), 1)
	s.Stop()
}

func TestResetCleanupScheduler_BadSchedule(t *testing.T) {
	s := NewResetCleanupScheduler("every tuesday", &countingPurger{})
	assert.Error(t, s.Start())
}
