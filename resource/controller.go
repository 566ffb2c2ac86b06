package resource

import (
	"context"
	"sync/atomic"

	"golang.org/x/sync/semaphore"
	"golang.org/x/time/rate"
)

// Config holds resource limits for tile payloads and store traffic.
type Config struct {
	// MemoryLimitBytes is the hard limit for resident tile payload bytes.
	// If 0, no hard limit is enforced (only tracking).
	MemoryLimitBytes int64

	// MaxStoreWorkers is the maximum number of concurrent tile store
	// requests. If 0, defaults to 1.
	MaxStoreWorkers int64

	// IOLimitBytesPerSec is the maximum IO throughput for tile store
	// uploads and downloads. If 0, unlimited.
	IOLimitBytesPerSec int64
}

// Controller tracks the byte budget shared by tile caches and the tile
// store. Caches consult it before admitting a payload and release their
// reservation when the payload is evicted.
type Controller struct {
	cfg Config

	// Memory
	memSem  *semaphore.Weighted // nil if unlimited
	memUsed atomic.Int64

	// Store concurrency
	storeSem *semaphore.Weighted

	// IO
	ioLimiter *rate.Limiter
}

// NewController creates a new resource controller.
func NewController(cfg Config) *Controller {
	if cfg.MaxStoreWorkers <= 0 {
		cfg.MaxStoreWorkers = 1
	}

	c := &Controller{
		cfg:      cfg,
		storeSem: semaphore.NewWeighted(cfg.MaxStoreWorkers),
	}

	if cfg.MemoryLimitBytes > 0 {
		c.memSem = semaphore.NewWeighted(cfg.MemoryLimitBytes)
	}

	if cfg.IOLimitBytesPerSec > 0 {
		c.ioLimiter = rate.NewLimiter(rate.Limit(cfg.IOLimitBytesPerSec), int(cfg.IOLimitBytesPerSec))
	}

	return c
}

// AcquireMemory attempts to reserve payload bytes. If a hard limit is
// configured and usage would exceed it, this blocks until memory is
// available or ctx is canceled.
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

// TryAcquireMemory attempts to reserve payload bytes without blocking.
// Returns true if acquired, false if the limit would be exceeded.
func (c *Controller) TryAcquireMemory(bytes int64) bool {
	if c == nil || bytes <= 0 {
		return true
	}

	if c.memSem != nil {
		if !c.memSem.TryAcquire(bytes) {
			return false
		}
	}

	c.memUsed.Add(bytes)
	return true
}

// ReleaseMemory releases reserved payload bytes.
func (c *Controller) ReleaseMemory(bytes int64) {
	if c == nil || bytes <= 0 {
		return
	}

	if c.memSem != nil {
		c.memSem.Release(bytes)
	}
	c.memUsed.Add(-bytes)
}

// MemoryUsage returns the currently reserved payload bytes.
func (c *Controller) MemoryUsage() int64 {
	if c == nil {
		return 0
	}
	return c.memUsed.Load()
}

// AcquireStore reserves a tile store request slot, blocking while all slots
// are busy.
func (c *Controller) AcquireStore(ctx context.Context) error {
	if c == nil {
		return nil
	}
	return c.storeSem.Acquire(ctx, 1)
}

// TryAcquireStore reserves a tile store request slot without blocking.
func (c *Controller) TryAcquireStore() bool {
	if c == nil {
		return true
	}
	return c.storeSem.TryAcquire(1)
}

// ReleaseStore releases a tile store request slot.
func (c *Controller) ReleaseStore() {
	if c == nil {
		return
	}
	c.storeSem.Release(1)
}

// AcquireIO waits until the IO limit allows the specified number of bytes.
func (c *Controller) AcquireIO(ctx context.Context, bytes int) error {
	if c == nil || c.ioLimiter == nil {
		return nil
	}
	return c.ioLimiter.WaitN(ctx, bytes)
}
