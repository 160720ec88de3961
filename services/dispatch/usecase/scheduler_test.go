package usecase

import (
	"context"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"campusdrop/internal/pkg/models"
	"campusdrop/services/dispatch"
)

type countingDispatchUC struct {
	dispatch.DispatchUC
	sweeps int64
}

func (c *countingDispatchUC) ExpireDueRequests(_ context.Context) (models.ExpiryScanResult, error) {
	atomic.AddInt64(&c.sweeps, 1)
	return models.ExpiryScanResult{}, nil
}

func TestExpiryScheduler(t *testing.T) {
	counter := &countingDispatchUC{}
	scheduler := NewExpiryScheduler(counter, models.SchedulerConfig{WakeInterval: 10 * time.Millisecond})

	scheduler.Start(context.Background())
	time.Sleep(55 * time.Millisecond)
	scheduler.Stop()

	swept := atomic.LoadInt64(&counter.sweeps)
	assert.GreaterOrEqual(t, swept, int64(2))

	// No sweeps after Stop
	time.Sleep(30 * time.Millisecond)
	assert.Equal(t, swept, atomic.LoadInt64(&counter.sweeps))
}

func TestExpirySchedulerStopsOnContextCancel(t *testing.T) {
	counter := &countingDispatchUC{}
	scheduler := NewExpiryScheduler(counter, models.SchedulerConfig{WakeInterval: 10 * time.Millisecond})

	ctx, cancel := context.WithCancel(context.Background())
	scheduler.Start(ctx)
	cancel()

	// Stop returns promptly because the loop already exited
	done := make(chan struct{})
	go func() {
		scheduler.Stop()
		close(done)
	}()

	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("scheduler did not stop after context cancellation")
	}
}
