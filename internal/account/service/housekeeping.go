package service

import (
	"context"
	"log/slog"
	"time"
)

// HousekeepingService periodically removes expired OTP challenges from the
// store and stale registration flows from memory.
type HousekeepingService struct {
	Registration *RegistrationService
	Logger       *slog.Logger
	Interval     time.Duration

	// Internal channels for lifecycle management
	stopCh chan struct{}
	doneCh chan struct{}
}

// NewHousekeepingService creates a new housekeeping service with the given
// interval. If interval is 0 or negative, defaults to 5 minutes.
func NewHousekeepingService(registration *RegistrationService, logger *slog.Logger, interval time.Duration) *HousekeepingService {
	if interval <= 0 {
		interval = 5 * time.Minute
	}

	return &HousekeepingService{
		Registration: registration,
		Logger:       logger,
		Interval:     interval,
		stopCh:       make(chan struct{}),
		doneCh:       make(chan struct{}),
	}
}

// Start begins the background worker. Non-blocking; call Stop to shut down.
func (s *HousekeepingService) Start() {
	go s.run()
	s.Logger.Info("housekeeping service started", "interval", s.Interval)
}

// Stop gracefully shuts down the background worker. Blocks until the worker
// has finished any in-progress sweep.
func (s *HousekeepingService) Stop() {
	close(s.stopCh)
	<-s.doneCh
	s.Logger.Info("housekeeping service stopped")
}

func (s *HousekeepingService) run() {
	defer close(s.doneCh)

	ticker := time.NewTicker(s.Interval)
	defer ticker.Stop()

	// Run a sweep immediately on startup
	s.sweep()

	for {
		select {
		case <-ticker.C:
			s.sweep()
		case <-s.stopCh:
			return
		}
	}
}

// sweep performs the actual cleanup. The two steps are independent; a failure
// in one does not stop the other.
func (s *HousekeepingService) sweep() {
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	now := time.Now()

	expired, err := s.Registration.Store.OTPCodes().DeleteExpired(ctx, now)
	if err != nil {
		s.Logger.Error("failed to delete expired otp challenges", "error", err)
	} else if expired > 0 {
		s.Logger.Info("deleted expired otp challenges", "count", expired)
	}

	if stale := s.Registration.ExpireStaleFlows(now); stale > 0 {
		s.Logger.Info("expired stale registration flows", "count", stale)
	}
}
