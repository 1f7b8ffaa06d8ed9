package services

import (
	"context"
	"time"

	"github.com/dmitrijs2005/petcare/internal/logging"
	"github.com/prometheus/client_golang/prometheus"
)

// ExpiredTokenSweeper is implemented by UserService.
type ExpiredTokenSweeper interface {
	SweepExpiredTokens(ctx context.Context, now time.Time) (int64, error)
}

// TokenSweeper periodically deletes expired refresh tokens.
type TokenSweeper struct {
	target   ExpiredTokenSweeper
	interval time.Duration
	logger   logging.Logger
	swept    prometheus.Counter
	now      func() time.Time
}

// DefaultSweepInterval is used when the configured interval is not positive.
const DefaultSweepInterval = 12 * time.Hour

// NewTokenSweeper builds a sweeper; swept may be nil.
func NewTokenSweeper(target ExpiredTokenSweeper, interval time.Duration, logger logging.Logger, swept prometheus.Counter) *TokenSweeper {
	logger = logger.With("module", "sweeper")
	if interval <= 0 {
		logger.Warn(context.Background(), "invalid sweep interval, using default",
			"interval", interval, "default", DefaultSweepInterval)
		interval = DefaultSweepInterval
	}
	return &TokenSweeper{
		target:   target,
		interval: interval,
		logger:   logger,
		swept:    swept,
		now:      time.Now,
	}
}

// SweepOnce runs a single pass and returns the number of removed tokens.
func (s *TokenSweeper) SweepOnce(ctx context.Context) (int64, error) {
	n, err := s.target.SweepExpiredTokens(ctx, s.now())
	if err != nil {
		s.logger.Error(ctx, "refresh token sweep failed", "error", err)
		return 0, err
	}
	if s.swept != nil {
		s.swept.Add(float64(n))
	}
	s.logger.Info(ctx, "refresh token sweep done", "removed", n)
	return n, nil
}

// Run sweeps every interval until ctx is cancelled. Failed passes are
// logged and retried on the next tick.
func (s *TokenSweeper) Run(ctx context.Context) {
	ticker := time.NewTicker(s.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			_, _ = s.SweepOnce(ctx)
		}
	}
}
