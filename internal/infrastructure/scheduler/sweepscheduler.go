// Package scheduler runs the periodic maintenance jobs.
package scheduler

import (
	"context"
	"fmt"
	"time"

	"github.com/robfig/cron/v3"

	saleUsecases "github.com/jubbslineu/tokensale/internal/application/sale/usecases"
	"github.com/jubbslineu/tokensale/internal/shared/logger"
)

// SweepScheduler periodically cancels expired payment requests so their
// reserved tokens flow back into the open supply. The same sweep also runs
// inline before each new reservation; the schedule just bounds how long a
// lapsed reservation can linger when no one is buying.
type SweepScheduler struct {
	sweepUC  *saleUsecases.CancelExpiredRequestsUseCase
	cron     *cron.Cron
	interval time.Duration
	logger   logger.Interface
}

func NewSweepScheduler(
	sweepUC *saleUsecases.CancelExpiredRequestsUseCase,
	interval time.Duration,
	logger logger.Interface,
) *SweepScheduler {
	return &SweepScheduler{
		sweepUC:  sweepUC,
		cron:     cron.New(),
		interval: interval,
		logger:   logger,
	}
}

// Start registers the sweep job and starts the scheduler. The first sweep
// runs immediately to clear anything that expired while the server was down.
func (s *SweepScheduler) Start() error {
	if _, err := s.cron.AddFunc(fmt.Sprintf("@every %s", s.interval), s.sweep); err != nil {
		return fmt.Errorf("failed to schedule sweep job: %w", err)
	}

	go s.sweep()
	s.cron.Start()

	s.logger.Infow("sweep scheduler started", "interval", s.interval)
	return nil
}

// Stop stops the scheduler and waits for a running sweep to finish.
func (s *SweepScheduler) Stop() {
	ctx := s.cron.Stop()
	<-ctx.Done()
	s.logger.Infow("sweep scheduler stopped")
}

func (s *SweepScheduler) sweep() {
	ctx, cancel := context.WithTimeout(context.Background(), time.Minute)
	defer cancel()

	if _, err := s.sweepUC.Execute(ctx, saleUsecases.CancelExpiredRequestsCommand{}); err != nil {
		s.logger.Errorw("sweep failed", "error", err)
	}
}
