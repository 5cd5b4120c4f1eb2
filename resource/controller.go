// Package resource bounds the memory and IO footprint of an ingestion
// run.
//
// A record's whole buffer is materialized before decoding starts, so
// peak memory scales with the in-flight record buffers. The controller
// lets callers cap that with a weighted semaphore, and optionally
// throttle source reads with a rate limiter. A nil *Controller is
// valid and enforces nothing.
//
// Record sizes are not known until a buffer has been fetched, so both
// limits are charged after the read: a worker may overshoot the memory
// budget by its own (not yet accounted) buffer, and the rate limiter
// paces the aggregate read rate rather than each individual read. The
// overshoot is bounded by the worker count times the largest single
// record.
package resource

import (
	"context"
	"sync/atomic"

	"golang.org/x/sync/semaphore"
	"golang.org/x/time/rate"
)

// Config holds resource limits. Zero values disable the corresponding
// limit.
type Config struct {
	// MemoryLimitBytes caps the total bytes of record buffers held by
	// in-flight decodes.
	MemoryLimitBytes int64

	// IOLimitBytesPerSec throttles source byte reads.
	IOLimitBytesPerSec int64
}

// Controller enforces the configured limits.
type Controller struct {
	memSem    *semaphore.Weighted // nil if unlimited
	memUsed   atomic.Int64
	ioLimiter *rate.Limiter // nil if unlimited
}

// NewController creates a controller for the given limits.
func NewController(cfg Config) *Controller {
	c := &Controller{}
	if cfg.MemoryLimitBytes > 0 {
		c.memSem = semaphore.NewWeighted(cfg.MemoryLimitBytes)
	}
	if cfg.IOLimitBytesPerSec > 0 {
		c.ioLimiter = rate.NewLimiter(rate.Limit(cfg.IOLimitBytesPerSec), int(cfg.IOLimitBytesPerSec))
	}
	return c
}

// AcquireMemory reserves bytes of buffer budget, blocking until the
// budget allows it or ctx is canceled.
func (c *Controller) AcquireMemory(ctx context.Context, bytes int64) error {
	if c == nil || bytes <= 0 {
		return nil
	}
	if c.memSem != nil {
		if err := c.memSem.Acquire(ctx, bytes); err != nil {
			return err
		}
	}
	c.memUsed.Add(bytes)
	return nil
}

// ReleaseMemory returns previously reserved budget.
func (c *Controller) ReleaseMemory(bytes int64) {
	if c == nil || bytes <= 0 {
		return
	}
	if c.memSem != nil {
		c.memSem.Release(bytes)
	}
	c.memUsed.Add(-bytes)
}

// MemoryUsage returns the bytes currently reserved.
func (c *Controller) MemoryUsage() int64 {
	if c == nil {
		return 0
	}
	return c.memUsed.Load()
}

// AcquireIO waits until the IO limit allows reading the given number
// of bytes.
func (c *Controller) AcquireIO(ctx context.Context, bytes int) error {
	if c == nil || c.ioLimiter == nil || bytes <= 0 {
		return nil
	}
	return c.ioLimiter.WaitN(ctx, bytes)
}
