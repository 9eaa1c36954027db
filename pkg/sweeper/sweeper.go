package sweeper

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/wattmarket/ev-marketplace/pkg/models"
	"github.com/wattmarket/ev-marketplace/pkg/notifications"
	"github.com/wattmarket/ev-marketplace/pkg/storage"
)

// Default deadlines applied when the environment does not override them.
const (
	DefaultResponseDeadline = 72 * time.Hour
	DefaultSigningDeadline  = 120 * time.Hour
)

// Sweeper expires stale purchase requests: PENDING past the response
// deadline and CONTRACT_SENT past the signing deadline. It is the only
// component that mutates state without an external actor, and it is safe to
// run concurrently with itself and with user actions: every expiry is a
// status-guarded write, so exactly one mutation wins per row.
type Sweeper struct {
	Store            storage.RequestStore
	Notifier         notifications.Dispatcher
	ResponseDeadline time.Duration
	SigningDeadline  time.Duration
	Interval         time.Duration
}

// New creates a Sweeper with the given deadlines.
func New(store storage.RequestStore, notifier notifications.Dispatcher, responseDeadline, signingDeadline time.Duration) *Sweeper {
	return &Sweeper{
		Store:            store,
		Notifier:         notifier,
		ResponseDeadline: responseDeadline,
		SigningDeadline:  signingDeadline,
	}
}

// Run executes sweeps on a fixed interval until the context is cancelled.
func (s *Sweeper) Run(ctx context.Context) {
	ticker := time.NewTicker(s.Interval)
	defer ticker.Stop()

	for {
		if _, err := s.SweepOnce(ctx); err != nil {
			slog.Error("sweep failed", "error", err)
		}
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
		}
	}
}

// SweepOnce runs a single sweep over both deadline classes and returns the
// number of requests expired.
func (s *Sweeper) SweepOnce(ctx context.Context) (int, error) {
	expired, err := s.sweepStatus(ctx, models.RequestPending, s.ResponseDeadline)
	if err != nil {
		return expired, err
	}

	n, err := s.sweepStatus(ctx, models.RequestContractSent, s.SigningDeadline)
	expired += n
	return expired, err
}

func (s *Sweeper) sweepStatus(ctx context.Context, status models.RequestStatus, deadline time.Duration) (int, error) {
	cutoff := time.Now().Add(-deadline)

	candidates, err := s.Store.ListExpiryCandidates(ctx, status, cutoff)
	if err != nil {
		return 0, fmt.Errorf("failed to list expiry candidates for %s: %w", status, err)
	}

	expired := 0
	for i := range candidates {
		req := &candidates[i]
		if err := s.Store.MarkExpired(ctx, req, status); err != nil {
			if errors.Is(err, storage.ErrStateConflict) {
				// A user action won the race since the query; nothing to do.
				slog.Debug("request moved before expiry, skipping", "requestId", req.Id)
				continue
			}
			slog.Error("failed to expire request", "requestId", req.Id, "error", err)
			continue
		}
		expired++

		for _, party := range req.PartyIds() {
			if err := s.Notifier.Dispatch(ctx, notifications.Notification{
				AccountId: party,
				Type:      notifications.EventRequestExpired,
				RequestId: req.Id,
				ListingId: req.ListingId,
			}); err != nil {
				slog.Error("failed to dispatch expiry notification", "requestId", req.Id, "error", err)
			}
		}
	}

	return expired, nil
}
