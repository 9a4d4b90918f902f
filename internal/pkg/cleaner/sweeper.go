package cleaner

import (
	"context"
	"time"

	"go.uber.org/zap"
)

// Sweeper calls fn once at start and then every interval until ctx ends.
type Sweeper struct {
	interval time.Duration
	fn       func(ctx context.Context) error
	log      *zap.Logger
}

func NewSweeper(interval time.Duration, fn func(ctx context.Context) error, log *zap.Logger) *Sweeper {
	return &Sweeper{interval: interval, fn: fn, log: log}
}

func (s *Sweeper) Run(ctx context.Context) error {
	if s.interval <= 0 {
		s.log.Info("cleanup sweeper disabled")
		<-ctx.Done()
		return nil
	}

	ticker := time.NewTicker(s.interval)
	defer ticker.Stop()

	s.tick(ctx)
	for {
		select {
		case <-ctx.Done():
			return nil
		case <-ticker.C:
			s.tick(ctx)
		}
	}
}

func (s *Sweeper) tick(ctx context.Context) {
	if err := s.fn(ctx); err != nil && ctx.Err() == nil {
		s.log.Error("cleanup sweep failed", zap.Error(err))
	}
}
