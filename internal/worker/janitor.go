package worker

import (
	"context"
	"log"
	"sync"
	"time"

	"yatube/internal/repository"
)

const (
	// DefaultSweepInterval is how often the janitor runs.
	DefaultSweepInterval = time.Hour

	// DefaultRetention keeps expired refresh tokens around briefly so a
	// late rotation attempt still resolves to "expired" rather than
	// "unknown token".
	DefaultRetention = 24 * time.Hour
)

// Janitor periodically deletes refresh tokens that expired longer than the
// retention window ago. Without it the refresh_tokens table grows without
// bound, one row per login.
type Janitor struct {
	tokens    repository.RefreshTokenRepository
	interval  time.Duration
	retention time.Duration

	wg     sync.WaitGroup
	cancel context.CancelFunc
}

// JanitorConfig holds configuration for the janitor.
type JanitorConfig struct {
	SweepInterval time.Duration
	Retention     time.Duration
}

// DefaultJanitorConfig returns sensible defaults.
func DefaultJanitorConfig() JanitorConfig {
	return JanitorConfig{
		SweepInterval: DefaultSweepInterval,
		Retention:     DefaultRetention,
	}
}

// NewJanitor creates a janitor over the refresh token store.
func NewJanitor(tokens repository.RefreshTokenRepository, cfg JanitorConfig) *Janitor {
	if cfg.SweepInterval <= 0 {
		cfg.SweepInterval = DefaultSweepInterval
	}
	if cfg.Retention <= 0 {
		cfg.Retention = DefaultRetention
	}
	return &Janitor{
		tokens:    tokens,
		interval:  cfg.SweepInterval,
		retention: cfg.Retention,
	}
}

// Start begins the sweep loop in a background goroutine.
// Call Stop() to gracefully shut down.
func (j *Janitor) Start(ctx context.Context) {
	ctx, j.cancel = context.WithCancel(ctx)

	log.Printf("[Janitor] Starting: interval=%s retention=%s", j.interval, j.retention)

	j.wg.Add(1)
	go j.run(ctx)
}

// Stop gracefully shuts down the janitor. Blocks until the loop exits.
func (j *Janitor) Stop() {
	if j.cancel == nil {
		return
	}
	log.Printf("[Janitor] Stopping...")
	j.cancel()
	j.wg.Wait()
	log.Printf("[Janitor] Stopped")
}

func (j *Janitor) run(ctx context.Context) {
	defer j.wg.Done()

	// One sweep at startup so restarts don't postpone cleanup a full interval.
	j.sweep(ctx)

	ticker := time.NewTicker(j.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			j.sweep(ctx)
		}
	}
}

func (j *Janitor) sweep(ctx context.Context) {
	deleted, err := j.tokens.DeleteExpired(ctx, j.retention)
	if err != nil {
		log.Printf("[Janitor] Sweep failed: %v", err)
		return
	}
	if deleted > 0 {
		log.Printf("[Janitor] Deleted %d expired refresh tokens", deleted)
	}
}
