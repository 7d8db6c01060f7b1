package system

import (
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/shirou/gopsutil/v3/mem"
	"github.com/shirou/gopsutil/v3/process"
)

// Stats is a snapshot of host and process resources taken after a run
type Stats struct {
	Build       string
	Episodes    int
	Failed      int
	Elapsed     time.Duration
	ProcessRSS  uint64
	HostUsedPct float64
	HostTotal   uint64
}

// CollectStats fills the resource fields. Missing host data leaves them zero.
func CollectStats(build string, episodes, failed int, elapsed time.Duration) Stats {
	s := Stats{Build: build, Episodes: episodes, Failed: failed, Elapsed: elapsed}

	if vm, err := mem.VirtualMemory(); err == nil {
		s.HostTotal = vm.Total
		s.HostUsedPct = vm.UsedPercent
	}
	if p, err := process.NewProcess(int32(os.Getpid())); err == nil {
		if info, err := p.MemoryInfo(); err == nil {
			s.ProcessRSS = info.RSS
		}
	}
	return s
}

// Report renders the stats in the performance report layout
func (s Stats) Report() string {
	var sb strings.Builder
	sb.WriteString("--- [PERFORMANCE REPORT] ---\n")
	fmt.Fprintf(&sb, "Build: %s\n", s.Build)
	fmt.Fprintf(&sb, "Episodes: %d (failed: %d)\n", s.Episodes, s.Failed)
	fmt.Fprintf(&sb, "Total Time: %.2fs\n", s.Elapsed.Seconds())
	if s.Episodes > 0 && s.Elapsed > 0 {
		fmt.Fprintf(&sb, "Per Episode: %.2fs\n", s.Elapsed.Seconds()/float64(s.Episodes))
	}
	fmt.Fprintf(&sb, "Process RSS: %.1f MiB\n", float64(s.ProcessRSS)/(1<<20))
	fmt.Fprintf(&sb, "Host Memory: %.1f%% of %.1f GiB\n", s.HostUsedPct, float64(s.HostTotal)/(1<<30))
	sb.WriteString("----------------------------\n")
	return sb.String()
}
