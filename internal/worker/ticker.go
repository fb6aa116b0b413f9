package worker

import (
	"context"
	"time"

	"github.com/rs/zerolog"
)

// RunTicker sweeps every interval until ctx is done. It replaces the
// asynq scheduler when Redis is not configured.
func RunTicker(ctx context.Context, interval time.Duration, sweeper Sweeper, log zerolog.Logger) {
	log = log.With().Str("component", "sweeper").Logger()
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			_ = sweep(ctx, sweeper, log)
		}
	}
}
