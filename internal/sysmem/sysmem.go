// Package sysmem takes best-effort host memory snapshots for the health report.
package sysmem

import (
	"context"
	"fmt"
)

// Info is a memory snapshot in MiB.
type Info struct {
	UsedMB      int
	AvailableMB int
}

// Result is the outcome of a snapshot. Exactly one of Info and Err is set.
type Result struct {
	Info *Info
	Err  error
}

// Map returns the wire form: an empty map on failure.
func (r Result) Map() map[string]int {
	if r.Info == nil {
		return map[string]int{}
	}
	return map[string]int{
		"ram_used_mb":      r.Info.UsedMB,
		"ram_available_mb": r.Info.AvailableMB,
	}
}

// Probe produces memory snapshots.
type Probe interface {
	Snapshot(ctx context.Context) Result
}

// Source names accepted by New.
const (
	SourceFree   = "free"
	SourceProcfs = "procfs"
)

// New returns the probe for the named source. An empty source selects "free".
func New(source string) (Probe, error) {
	switch source {
	case "", SourceFree:
		return NewFreeProbe(), nil
	case SourceProcfs:
		return NewProcProbe(""), nil
	default:
		return nil, fmt.Errorf("unknown memory source: %q", source)
	}
}
