// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package workers

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/MKhiriev/go-clinic-client/internal/logger"
	"github.com/MKhiriev/go-clinic-client/internal/session"
	"github.com/MKhiriev/go-clinic-client/models"
)

// DefaultProfileRefreshInterval is used when no positive interval is given.
const DefaultProfileRefreshInterval = 5 * time.Minute

// ProfileRefreshJob periodically re-reads the signed-in user's profile. A
// revoked token comes back as 401 and ends the session through the usual
// invalidation path, so the job also notices server-side logouts.
type ProfileRefreshJob struct {
	refresher ProfileRefresher
	interval  time.Duration
	logger    *logger.Logger

	mu     sync.Mutex
	cancel context.CancelFunc
	wg     sync.WaitGroup
}

// NewProfileRefreshJob creates a job that calls refresher.RefreshProfile on a
// ticker. The job is idle until Start or Run is called. A zero interval
// disables Run.
func NewProfileRefreshJob(refresher ProfileRefresher, interval time.Duration, logger *logger.Logger) *ProfileRefreshJob {
	return &ProfileRefreshJob{refresher: refresher, interval: interval, logger: logger}
}

// Run implements Worker with the interval given at construction.
func (j *ProfileRefreshJob) Run(ctx context.Context) {
	if j.interval <= 0 {
		j.logger.Info().Str("func", "ProfileRefreshJob.Run").Msg("profile refresh disabled")
		return
	}
	j.Start(ctx, j.interval)
}

// Start stops any previously running job, then launches a background
// goroutine that refreshes the profile every interval while the session is
// authenticated. If interval is zero or negative it defaults to
// DefaultProfileRefreshInterval. The goroutine exits when ctx is cancelled or
// Stop is called.
func (j *ProfileRefreshJob) Start(ctx context.Context, interval time.Duration) {
	if interval <= 0 {
		interval = DefaultProfileRefreshInterval
	}

	j.Stop()

	j.mu.Lock()
	jobCtx, cancel := context.WithCancel(ctx)
	j.cancel = cancel
	j.wg.Add(1)
	j.mu.Unlock()

	go func() {
		defer j.wg.Done()
		t := time.NewTicker(interval)
		defer t.Stop()

		for {
			select {
			case <-jobCtx.Done():
				return
			case <-t.C:
				j.tick(jobCtx)
			}
		}
	}()
}

// Stop cancels the background goroutine's context and blocks until it has
// fully exited. Safe to call when the job is not running.
func (j *ProfileRefreshJob) Stop() {
	j.mu.Lock()
	cancel := j.cancel
	j.cancel = nil
	j.mu.Unlock()

	if cancel != nil {
		cancel()
	}
	j.wg.Wait()
}

func (j *ProfileRefreshJob) tick(ctx context.Context) {
	if j.refresher.State() != models.StateAuthenticated {
		return
	}

	_, err := j.refresher.RefreshProfile(ctx)
	switch {
	case err == nil:
		j.logger.Debug().Str("func", "ProfileRefreshJob.tick").Msg("profile refreshed")
	case errors.Is(err, session.ErrSessionChanged), errors.Is(err, context.Canceled):
	default:
		j.logger.Warn().Err(err).Str("func", "ProfileRefreshJob.tick").Msg("profile refresh failed")
	}
}
