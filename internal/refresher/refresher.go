package refresher

import (
	"context"
	"errors"
	"sync"
	"time"

	"gogive-web/internal/backend"
	"gogive-web/internal/observability"
	"gogive-web/internal/viewmodel"
)

// SnapshotFetcher is the slice of the backend client the refresher needs.
type SnapshotFetcher interface {
	GetDashboard(ctx context.Context, token string) (viewmodel.DashboardSnapshot, error)
}

// Refresher keeps a session's store fresh with a full-snapshot fetch on a
// repeating timer, independent of real-time delivery. It is the defense
// against missed or out-of-order push events.
//
// Overlapping fetches are not deduplicated: Replace is unconditional, so a
// slow response landing after a newer one still wins. That
// last-completed-wins window is an accepted property, self-healed by the
// next tick.
type Refresher struct {
	fetcher  SnapshotFetcher
	store    *viewmodel.Store
	token    string
	interval time.Duration
	logger   *observability.Logger

	// onSessionExpired fires once when a fetch comes back 401. The store
	// is left untouched; the owner tears the session down and the browser
	// is routed back to login.
	onSessionExpired func()

	mu          sync.Mutex
	cancel      context.CancelFunc
	stopped     bool
	expiredOnce sync.Once
}

// New creates a refresher for one session.
func New(fetcher SnapshotFetcher, store *viewmodel.Store, token string, interval time.Duration,
	onSessionExpired func(), logger *observability.Logger) *Refresher {
	return &Refresher{
		fetcher:          fetcher,
		store:            store,
		token:            token,
		interval:         interval,
		onSessionExpired: onSessionExpired,
		logger:           logger,
	}
}

// Start fetches once immediately, then on every tick until Stop. Each fetch
// runs in its own goroutine so a stalled response never delays the next tick.
func (r *Refresher) Start() {
	r.mu.Lock()
	if r.cancel != nil || r.stopped {
		r.mu.Unlock()
		return
	}
	ctx, cancel := context.WithCancel(context.Background())
	r.cancel = cancel
	r.mu.Unlock()

	go func() {
		r.RefreshNow(ctx)

		ticker := time.NewTicker(r.interval)
		defer ticker.Stop()
		for {
			select {
			case <-ctx.Done():
				return
			case <-ticker.C:
				go r.RefreshNow(ctx)
			}
		}
	}()
}

// Stop cancels the timer. In-flight fetches are not aborted, but their
// completions are dropped by the still-mounted guard.
func (r *Refresher) Stop() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.stopped = true
	if r.cancel != nil {
		r.cancel()
		r.cancel = nil
	}
}

// RefreshNow performs one full-snapshot fetch and applies it. Also called
// directly after a successful form submission.
func (r *Refresher) RefreshNow(ctx context.Context) {
	snapshot, err := r.fetcher.GetDashboard(ctx, r.token)
	if err != nil {
		if errors.Is(err, backend.ErrSessionExpired) {
			r.expiredOnce.Do(func() {
				r.logger.Info(ctx, "dashboard fetch unauthorized, ending session")
				if r.onSessionExpired != nil {
					r.onSessionExpired()
				}
			})
			r.Stop()
			return
		}
		// Transient failure: keep showing the last good snapshot.
		r.logger.DebugWithError(ctx, "dashboard refresh failed", err)
		return
	}

	r.mu.Lock()
	stopped := r.stopped
	r.mu.Unlock()
	if stopped {
		return
	}

	r.store.Replace(snapshot)
}
