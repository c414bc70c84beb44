package refresh

import (
	"context"
	"math"
	"math/rand"
	"time"

	"github.com/ekzyis/haraka-tld/internal"
	"github.com/ekzyis/haraka-tld/tld"
)

// Source produces a freshly built table snapshot. The production Source is
// *Service; tests substitute their own.
type Source interface {
	FetchSnapshot(ctx context.Context) (*tld.Snapshot, error)
}

// Config tunes the background update loop.
type Config struct {
	Interval       time.Duration // base update interval
	InitialBackoff time.Duration // first retry delay after a failure
	MaxBackoff     time.Duration // retry delay ceiling
}

// Service composes the Downloader and Loader into a Source: pull the
// configured rule files from upstream, then rebuild the snapshot from the
// data directory. With a nil Downloader it reloads from disk only, which is
// also how the HTTP reload endpoint and tests drive it synchronously.
type Service struct {
	downloader *Downloader
	loader     *Loader
}

func NewService(downloader *Downloader, loader *Loader) *Service {
	return &Service{
		downloader: downloader,
		loader:     loader,
	}
}

func (s *Service) FetchSnapshot(ctx context.Context) (*tld.Snapshot, error) {
	if s.downloader != nil {
		if _, err := s.downloader.Refresh(ctx); err != nil {
			return nil, err
		}
	}

	return s.loader.Load()
}

// Start runs background table updates until the context stops. Failed
// updates are logged and retried with exponential backoff; the registry
// keeps serving the previous snapshot throughout.
func Start(ctx context.Context, cfg Config, src Source, registry *tld.Registry, logger internal.Logger) error {
	if cfg.Interval <= 0 {
		return nil // config should already be validated
	}
	if cfg.InitialBackoff <= 0 {
		cfg.InitialBackoff = time.Minute
	}
	if cfg.MaxBackoff <= 0 {
		cfg.MaxBackoff = 6 * time.Hour
	}

	ticker := time.NewTicker(cfg.Interval)
	defer ticker.Stop()

	var consecutiveFailures int

	for {
		select {
		case <-ctx.Done():
			logger.Infof("refresh: updater stopped: %v", ctx.Err())
			return ctx.Err()

		case <-ticker.C:
			if err := updateOnce(ctx, src, registry); err != nil {
				consecutiveFailures++
				backoff := calcBackoff(cfg.InitialBackoff, cfg.MaxBackoff, consecutiveFailures)

				logger.Errorf("refresh: update failed (attempt #%d), serving previous tables, backoff=%s: %v",
					consecutiveFailures, backoff, err)

				timer := time.NewTimer(backoff)
				select {
				case <-ctx.Done():
					timer.Stop()
					return ctx.Err()
				case <-timer.C:
				}
				continue
			}

			if consecutiveFailures > 0 {
				logger.Infof("refresh: update recovered after %d failures", consecutiveFailures)
			}
			consecutiveFailures = 0
		}
	}
}

func calcBackoff(initial, max time.Duration, failures int) time.Duration {
	pow := math.Pow(2, float64(failures-1))
	backoff := time.Duration(float64(initial) * pow)
	if backoff > max {
		backoff = max
	}

	// Add jitter to avoid synchronized retries.
	jitterFrac := 0.2
	jitter := time.Duration(rand.Float64()*2*jitterFrac*float64(backoff)) -
		time.Duration(jitterFrac*float64(backoff))

	return backoff + jitter
}

// updateOnce builds a new snapshot and swaps it into the registry. The swap
// only happens on success, so a failure can never publish partial tables.
func updateOnce(ctx context.Context, src Source, registry *tld.Registry) error {
	ctx, cancel := context.WithTimeout(ctx, 2*time.Minute)
	defer cancel()

	snap, err := src.FetchSnapshot(ctx)
	if err != nil {
		return err
	}

	registry.Reload(snap)
	return nil
}
