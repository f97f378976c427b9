package remote

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/go-resty/resty/v2"

	"github.com/mkravets/sayright/internal/logger"
)

// connectionManager probes the remote endpoint's health route and remembers
// the result. The enable check is idempotent: once the endpoint has been
// reached, later calls return without a network round-trip.
type connectionManager struct {
	client *resty.Client
	logger *logger.Logger

	mu      sync.Mutex
	enabled bool
	offline bool
}

// NewConnection constructs a [Connection] probing baseURL.
func NewConnection(baseURL string, timeout time.Duration, log *logger.Logger) Connection {
	if timeout <= 0 {
		timeout = 5 * time.Second
	}

	cli := resty.New().
		SetBaseURL(baseURL).
		SetTimeout(timeout)

	return &connectionManager{client: cli, logger: log}
}

func (c *connectionManager) EnsureNetworkEnabled(ctx context.Context) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.enabled {
		return nil
	}

	resp, err := c.client.R().SetContext(ctx).Get("/api/health")
	if err != nil || resp.IsError() {
		c.offline = true
		if err == nil {
			err = fmt.Errorf("health check status %d", resp.StatusCode())
		}
		c.logger.Warn().Err(err).Msg("remote endpoint unreachable, treating as offline")
		return NewError(CodeOffline, "remote.EnsureNetworkEnabled", err)
	}

	c.enabled = true
	c.offline = false
	c.logger.Debug().Msg("remote network transport enabled")
	return nil
}

func (c *connectionManager) Offline() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.offline
}
