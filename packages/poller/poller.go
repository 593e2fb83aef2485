package poller

import (
	"context"
	"log/slog"
	"time"

	"github.com/l3montree-dev/honeypot-dashboard/packages/metrics"
)

const (
	AdminInterval     = 5 * time.Second
	DashboardInterval = 30 * time.Second
)

// Poller re-runs fetch on a fixed interval and emits every result.
type Poller[T any] struct {
	name     string
	interval time.Duration
	fetch    func(ctx context.Context) T
}

func New[T any](name string, interval time.Duration, fetch func(ctx context.Context) T) *Poller[T] {
	return &Poller[T]{
		name:     name,
		interval: interval,
		fetch:    fetch,
	}
}

// Run fetches once right away and then on every tick until ctx is done.
// Fetches never overlap: ticks arriving during a slow fetch are dropped.
// The returned channel is closed when the poller stops.
func (p *Poller[T]) Run(ctx context.Context) <-chan T {
	output := make(chan T)
	go func() {
		defer close(output)
		ticker := time.NewTicker(p.interval)
		defer ticker.Stop()

		slog.Info("starting poller", "view", p.name, "interval", p.interval)
		for {
			start := time.Now()
			res := p.fetch(ctx)
			metrics.ObservePoll(p.name, time.Since(start))

			select {
			case output <- res:
			case <-ctx.Done():
				slog.Info("poller stopped", "view", p.name)
				return
			}

			select {
			case <-ticker.C:
			case <-ctx.Done():
				slog.Info("poller stopped", "view", p.name)
				return
			}
		}
	}()
	return output
}
