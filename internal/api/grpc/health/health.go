// Package health reports database-backed readiness over the gRPC health protocol.
package health

import (
	"context"
	"time"

	"google.golang.org/grpc/health"
	healthpb "google.golang.org/grpc/health/grpc_health_v1"

	"github.com/dtroode/tokenauth/internal/logger"
)

// ServiceName is the health service name for the auth API.
const ServiceName = "tokenauth"

const (
	DefaultInterval = 10 * time.Second
	pingTimeout     = 2 * time.Second
)

// Pinger checks that a dependency is reachable.
type Pinger interface {
	Ping(ctx context.Context) error
}

// Checker keeps a grpc health server in sync with the database.
type Checker struct {
	server   *health.Server
	pinger   Pinger
	interval time.Duration
	logger   *logger.Logger
}

// NewChecker creates a Checker. Status is NOT_SERVING until the first
// successful ping.
func NewChecker(pinger Pinger, interval time.Duration, logger *logger.Logger) *Checker {
	if interval <= 0 {
		interval = DefaultInterval
	}
	c := &Checker{
		server:   health.NewServer(),
		pinger:   pinger,
		interval: interval,
		logger:   logger,
	}
	c.setStatus(healthpb.HealthCheckResponse_NOT_SERVING)
	return c
}

// Server returns the health service to register on a grpc.Server.
func (c *Checker) Server() healthpb.HealthServer {
	return c.server
}

// Check pings once and updates the served status.
func (c *Checker) Check(ctx context.Context) {
	ctx, cancel := context.WithTimeout(ctx, pingTimeout)
	defer cancel()

	if err := c.pinger.Ping(ctx); err != nil {
		c.logger.Warn("Health checker: database ping failed",
			"error", err.Error())
		c.setStatus(healthpb.HealthCheckResponse_NOT_SERVING)
		return
	}
	c.setStatus(healthpb.HealthCheckResponse_SERVING)
}

// Run checks every interval until ctx is done, then marks the service as
// shutting down.
func (c *Checker) Run(ctx context.Context) {
	ticker := time.NewTicker(c.interval)
	defer ticker.Stop()

	c.Check(ctx)
	for {
		select {
		case <-ctx.Done():
			c.server.Shutdown()
			return
		case <-ticker.C:
			c.Check(ctx)
		}
	}
}

func (c *Checker) setStatus(status healthpb.HealthCheckResponse_ServingStatus) {
	c.server.SetServingStatus("", status)
	c.server.SetServingStatus(ServiceName, status)
}
