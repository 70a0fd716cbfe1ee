package midi

import (
	"context"
	"time"
)

// Poll calls step every interval from the calling goroutine until ctx is done
// or step fails. It returns nil when ctx ends the loop.
func Poll(ctx context.Context, interval time.Duration, step func() error) error {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		if err := step(); err != nil {
			return err
		}
		select {
		case <-ctx.Done():
			return nil
		case <-ticker.C:
			if ctx.Err() != nil {
				return nil
			}
		}
	}
}
