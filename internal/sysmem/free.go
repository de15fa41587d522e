package sysmem

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"os/exec"
	"strconv"
	"strings"
	"time"
)

const freeTimeout = 2 * time.Second

// FreeProbe reads memory usage from the output of `free -m`.
type FreeProbe struct {
	run func(ctx context.Context) ([]byte, error)
}

// NewFreeProbe returns a probe that invokes the free(1) utility.
func NewFreeProbe() *FreeProbe {
	return &FreeProbe{run: func(ctx context.Context) ([]byte, error) {
		return exec.CommandContext(ctx, "free", "-m").Output()
	}}
}

// Snapshot runs free and parses its Mem row.
func (p *FreeProbe) Snapshot(ctx context.Context) Result {
	ctx, cancel := context.WithTimeout(ctx, freeTimeout)
	defer cancel()
	out, err := p.run(ctx)
	if err != nil {
		return Result{Err: fmt.Errorf("run free: %w", err)}
	}
	info, err := parseFree(string(out))
	if err != nil {
		return Result{Err: err}
	}
	return Result{Info: &info}
}

// parseFree extracts used (column 3) and available (column 7) from the
// second line of `free -m` output.
func parseFree(out string) (Info, error) {
	sc := bufio.NewScanner(strings.NewReader(strings.TrimSpace(out)))
	var lines []string
	for sc.Scan() {
		lines = append(lines, sc.Text())
	}
	if len(lines) < 2 {
		return Info{}, errors.New("free: unexpected output")
	}
	fields := strings.Fields(lines[1])
	if len(fields) < 7 {
		return Info{}, fmt.Errorf("free: short mem row: %q", lines[1])
	}
	used, err := strconv.Atoi(fields[2])
	if err != nil {
		return Info{}, fmt.Errorf("free: used: %w", err)
	}
	avail, err := strconv.Atoi(fields[6])
	if err != nil {
		return Info{}, fmt.Errorf("free: available: %w", err)
	}
	return Info{UsedMB: used, AvailableMB: avail}, nil
}
