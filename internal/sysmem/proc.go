package sysmem

import (
	"context"
	"errors"
	"fmt"

	"github.com/prometheus/procfs"
)

// ProcProbe reads /proc/meminfo directly. Useful on hosts without procps.
type ProcProbe struct {
	mountPoint string
}

// NewProcProbe returns a probe rooted at mountPoint; empty means /proc.
func NewProcProbe(mountPoint string) *ProcProbe {
	if mountPoint == "" {
		mountPoint = procfs.DefaultMountPoint
	}
	return &ProcProbe{mountPoint: mountPoint}
}

// Snapshot reports used = MemTotal - MemAvailable.
func (p *ProcProbe) Snapshot(_ context.Context) Result {
	fs, err := procfs.NewFS(p.mountPoint)
	if err != nil {
		return Result{Err: fmt.Errorf("procfs: %w", err)}
	}
	mi, err := fs.Meminfo()
	if err != nil {
		return Result{Err: fmt.Errorf("procfs meminfo: %w", err)}
	}
	if mi.MemTotal == nil || mi.MemAvailable == nil {
		return Result{Err: errors.New("procfs meminfo: missing MemTotal or MemAvailable")}
	}
	// meminfo values are in KiB
	total := int(*mi.MemTotal / 1024)
	avail := int(*mi.MemAvailable / 1024)
	return Result{Info: &Info{UsedMB: total - avail, AvailableMB: avail}}
}
