package usecase

import (
	"context"
	"sync"
	"time"

	"campusdrop/internal/pkg/logger"
	"campusdrop/internal/pkg/models"
	"campusdrop/services/dispatch"
)

// ExpiryScheduler periodically sweeps overdue requests. Sweeps run inline in
// the ticker loop, so a slow sweep simply delays the next one; ticks that
// fire during a sweep are dropped by the ticker, never queued.
type ExpiryScheduler struct {
	dispatchUC   dispatch.DispatchUC
	wakeInterval time.Duration

	cancel context.CancelFunc
	wg     sync.WaitGroup
}

// NewExpiryScheduler creates a new expiry scheduler
func NewExpiryScheduler(dispatchUC dispatch.DispatchUC, cfg models.SchedulerConfig) *ExpiryScheduler {
	return &ExpiryScheduler{
		dispatchUC:   dispatchUC,
		wakeInterval: cfg.WakeInterval,
	}
}

// Start launches the scheduler loop. The first sweep runs after one full
// interval.
func (s *ExpiryScheduler) Start(ctx context.Context) {
	ctx, s.cancel = context.WithCancel(ctx)

	s.wg.Add(1)
	go func() {
		defer s.wg.Done()

		ticker := time.NewTicker(s.wakeInterval)
		defer ticker.Stop()

		logger.Info("Expiry scheduler started",
			logger.Duration("wake_interval", s.wakeInterval))

		for {
			select {
			case <-ctx.Done():
				logger.Info("Expiry scheduler stopped")
				return
			case <-ticker.C:
				if _, err := s.dispatchUC.ExpireDueRequests(ctx); err != nil {
					logger.Error("Expiration sweep failed", logger.Err(err))
				}
			}
		}
	}()
}

// Stop halts the scheduler and waits for an in-flight sweep to finish.
func (s *ExpiryScheduler) Stop() {
	if s.cancel != nil {
		s.cancel()
	}
	s.wg.Wait()
}
