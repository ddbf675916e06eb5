package service

import (
	"context"
	"log/slog"
	"time"

	"github.com/tracehealth/trace/internal/auth/otp"
	"github.com/tracehealth/trace/internal/auth/store"
)

// HousekeepingService periodically deletes pending signups and password
// reset requests whose OTP can no longer be confirmed.
type HousekeepingService struct {
	Store    store.Store
	Logger   *slog.Logger
	Interval time.Duration

	// TTL is the age after which a pending record is swept. Never shorter
	// than otp.Validity.
	TTL time.Duration

	Now func() time.Time

	// Internal channels for lifecycle management
	stopCh chan struct{}
	doneCh chan struct{}
}

// SweepResult counts the records removed by one pass.
type SweepResult struct {
	PendingSignups int64
	PasswordResets int64
}

// NewHousekeepingService creates a new housekeeping service.
// If interval is 0 or negative, defaults to 1 hour.
func NewHousekeepingService(store store.Store, logger *slog.Logger, interval, ttl time.Duration) *HousekeepingService {
	if interval <= 0 {
		interval = 1 * time.Hour
	}
	if ttl < otp.Validity {
		ttl = otp.Validity
	}

	return &HousekeepingService{
		Store:    store,
		Logger:   logger,
		Interval: interval,
		TTL:      ttl,
		stopCh:   make(chan struct{}),
		doneCh:   make(chan struct{}),
	}
}

// Start begins the background worker that periodically runs Sweep.
// Call Stop() to shut the worker down.
func (s *HousekeepingService) Start() {
	go s.run()
	s.Logger.Info("housekeeping service started",
		slog.Duration("interval", s.Interval),
		slog.Duration("ttl", s.TTL),
	)
}

// Stop gracefully shuts down the background worker.
// Blocks until the worker has finished any in-progress sweep.
func (s *HousekeepingService) Stop() {
	close(s.stopCh)
	<-s.doneCh
	s.Logger.Info("housekeeping service stopped")
}

func (s *HousekeepingService) run() {
	defer close(s.doneCh)

	ticker := time.NewTicker(s.Interval)
	defer ticker.Stop()

	// Sweep immediately on startup
	s.Sweep(context.Background())

	for {
		select {
		case <-ticker.C:
			s.Sweep(context.Background())
		case <-s.stopCh:
			return
		}
	}
}

// Sweep deletes records older than TTL. Each kind is swept independently;
// a failure in one doesn't stop the other.
func (s *HousekeepingService) Sweep(ctx context.Context) SweepResult {
	ttl := s.TTL
	if ttl < otp.Validity {
		ttl = otp.Validity
	}
	cutoff := now(s.Now).Add(-ttl)

	var res SweepResult
	var err error

	res.PendingSignups, err = s.Store.PendingSignups().DeleteIssuedBefore(ctx, cutoff)
	if err != nil {
		s.Logger.Error("failed to sweep pending signups", slog.Any("error", err))
	}

	res.PasswordResets, err = s.Store.PasswordResets().DeleteIssuedBefore(ctx, cutoff)
	if err != nil {
		s.Logger.Error("failed to sweep password resets", slog.Any("error", err))
	}

	s.Logger.Info("housekeeping sweep completed",
		slog.Int64("pending_signups", res.PendingSignups),
		slog.Int64("password_resets", res.PasswordResets),
	)
	return res
}
