package downdetect

import (
	"fmt"

	"github.com/shirou/gopsutil/v4/disk"
	"github.com/shirou/gopsutil/v4/mem"
)

type HealthCheck struct {
	Name  string
	Check func() error
}

type DowndetectService struct {
	checks   []HealthCheck
	diskPath string
}

func NewDowndetectService(checks []HealthCheck, diskPath string) *DowndetectService {
	return &DowndetectService{
		checks:   checks,
		diskPath: diskPath,
	}
}

// IsAvailable runs the checks in order and stops at the first failure.
func (s *DowndetectService) IsAvailable() error {
	for _, check := range s.checks {
		if err := runCheck(check); err != nil {
			return fmt.Errorf("%s check failed: %w", check.Name, err)
		}
	}

	return nil
}

func (s *DowndetectService) GetHostStats() (*HostStatsDTO, error) {
	memory, err := mem.VirtualMemory()
	if err != nil {
		return nil, fmt.Errorf("failed to read memory stats: %w", err)
	}

	usage, err := disk.Usage(s.diskPath)
	if err != nil {
		return nil, fmt.Errorf("failed to read disk usage of %s: %w", s.diskPath, err)
	}

	return &HostStatsDTO{
		MemoryUsedPercent: memory.UsedPercent,
		DiskUsedPercent:   usage.UsedPercent,
		DiskFreeBytes:     usage.Free,
	}, nil
}

func runCheck(check HealthCheck) (err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("check panicked: %v", r)
		}
	}()

	return check.Check()
}
