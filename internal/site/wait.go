package site

import (
	"context"
	"fmt"
	"time"
)

const (
	DefaultPollStep    = 5 * time.Second
	DefaultPollTimeout = 10 * time.Minute
)

// WaitDeployed polls host every step until the site is deployed, the
// timeout elapses or ctx is done. Zero durations select the defaults.
func WaitDeployed(ctx context.Context, host Host, id string, step, timeout time.Duration) (Info, error) {
	if step <= 0 {
		step = DefaultPollStep
	}
	if timeout <= 0 {
		timeout = DefaultPollTimeout
	}

	ctx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	ticker := time.NewTicker(step)
	defer ticker.Stop()

	logger := getLogger(ctx)
	start := time.Now()
	for {
		info, err := host.GetSite(ctx, id)
		if err != nil {
			return info, err
		}
		if info.Status == StatusDeployed {
			logger.InfoContext(ctx, "site ready", "site_id", id, "domain", info.Domain, "waited", time.Since(start))
			return info, nil
		}
		logger.InfoContext(ctx, "waiting for site deployment", "site_id", id, "status", info.Status)

		select {
		case <-ctx.Done():
			return info, fmt.Errorf("site %s not deployed: %w", id, ctx.Err())
		case <-ticker.C:
		}
	}
}
