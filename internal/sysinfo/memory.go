// Package sysinfo inspects the host before large buffers are allocated.
package sysinfo

import (
	"fmt"

	"github.com/shirou/gopsutil/v3/mem"
	"go.uber.org/zap"
)

// ElementBytes is the width of one holder element.
const ElementBytes = 4

// Memory is a snapshot of host memory in bytes.
type Memory struct {
	Total     uint64
	Available uint64
}

// Checker compares planned allocations with the memory the host reports.
type Checker struct {
	probe  func() (*mem.VirtualMemoryStat, error)
	logger *zap.Logger
}

// NewChecker returns a Checker backed by gopsutil.
func NewChecker(logger *zap.Logger) *Checker {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Checker{probe: mem.VirtualMemory, logger: logger}
}

// Bytes converts an element count to bytes.
func Bytes(elements int) uint64 {
	if elements <= 0 {
		return 0
	}
	return uint64(elements) * ElementBytes
}

// Snapshot reads current host memory.
func (c *Checker) Snapshot() (Memory, error) {
	vm, err := c.probe()
	if err != nil {
		return Memory{}, fmt.Errorf("sysinfo: read memory: %w", err)
	}
	return Memory{Total: vm.Total, Available: vm.Available}, nil
}

// Enough reports whether need bytes fit in available memory and logs a
// warning when they do not. It never blocks a run; allocation failure stays
// fatal.
func (c *Checker) Enough(need uint64) (bool, error) {
	m, err := c.Snapshot()
	if err != nil {
		return false, err
	}
	ok := need <= m.Available
	if !ok {
		c.logger.Warn("estimated peak exceeds available memory",
			zap.Uint64("need_bytes", need),
			zap.Uint64("available_bytes", m.Available),
			zap.Uint64("total_bytes", m.Total),
		)
	} else {
		c.logger.Debug("memory preflight passed",
			zap.Uint64("need_bytes", need),
			zap.Uint64("available_bytes", m.Available),
		)
	}
	return ok, nil
}
