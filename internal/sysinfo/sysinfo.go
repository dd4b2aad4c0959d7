// Package sysinfo collects host metrics and drive mountpoints for the
// dashboard's gauges and its drive selector.
package sysinfo

import (
	"context"
	"fmt"
	"os"

	"github.com/shirou/gopsutil/v4/cpu"
	"github.com/shirou/gopsutil/v4/disk"
	"github.com/shirou/gopsutil/v4/mem"
)

// Stats is a point-in-time snapshot of host resource usage.
type Stats struct {
	CPUPercent  float64 `json:"cpu_percent"`
	RAMTotal    uint64  `json:"ram_total"`
	RAMUsed     uint64  `json:"ram_used"`
	RAMPercent  float64 `json:"ram_percent"`
	DiskTotal   uint64  `json:"disk_total"`
	DiskUsed    uint64  `json:"disk_used"`
	DiskFree    uint64  `json:"disk_free"`
	DiskPercent float64 `json:"disk_percent"`
}

// Drive is one mounted filesystem available for browsing.
type Drive struct {
	Mountpoint string  `json:"mountpoint"`
	Total      uint64  `json:"total"`
	Used       uint64  `json:"used"`
	Free       uint64  `json:"free"`
	Percent    float64 `json:"percent"`
}

// Collect gathers CPU, memory, and root-disk usage.
func Collect(ctx context.Context) (*Stats, error) {
	percents, err := cpu.PercentWithContext(ctx, 0, false)
	if err != nil {
		return nil, fmt.Errorf("failed to read cpu usage: %w", err)
	}
	var cpuPercent float64
	if len(percents) > 0 {
		cpuPercent = percents[0]
	}

	vm, err := mem.VirtualMemoryWithContext(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to read memory usage: %w", err)
	}

	stats := &Stats{
		CPUPercent: cpuPercent,
		RAMTotal:   vm.Total,
		RAMUsed:    vm.Used,
		RAMPercent: vm.UsedPercent,
	}

	if usage, err := disk.UsageWithContext(ctx, rootPath()); err == nil {
		stats.DiskTotal = usage.Total
		stats.DiskUsed = usage.Used
		stats.DiskFree = usage.Free
		stats.DiskPercent = usage.UsedPercent
	}

	return stats, nil
}

// Drives lists mounted filesystems, falling back to the user's home
// directory when enumeration fails or yields nothing.
func Drives(ctx context.Context) []Drive {
	partitions, err := disk.PartitionsWithContext(ctx, false)
	if err != nil || len(partitions) == 0 {
		return fallbackDrives()
	}

	drives := make([]Drive, 0, len(partitions))
	for _, p := range partitions {
		if _, err := os.Stat(p.Mountpoint); err != nil {
			continue
		}
		d := Drive{Mountpoint: p.Mountpoint}
		if usage, err := disk.UsageWithContext(ctx, p.Mountpoint); err == nil {
			d.Total = usage.Total
			d.Used = usage.Used
			d.Free = usage.Free
			d.Percent = usage.UsedPercent
		}
		drives = append(drives, d)
	}
	if len(drives) == 0 {
		return fallbackDrives()
	}
	return drives
}

func fallbackDrives() []Drive {
	home, err := os.UserHomeDir()
	if err != nil {
		return nil
	}
	return []Drive{{Mountpoint: home}}
}

func rootPath() string {
	if os.PathSeparator == '\\' {
		return `C:\`
	}
	return "/"
}
