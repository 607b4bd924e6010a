// Package resources reports Go runtime statistics for the development backend.
// The snapshot is served by the health endpoint so a long tapping session can
// be checked for goroutine or heap growth.
package resources

import (
	"runtime"
	"time"

	"github.com/concave-dev/sakaton/internal/logging"
)

// Stats is a point-in-time view of the process.
type Stats struct {
	Timestamp time.Time `json:"timestamp"`
	CPUCores  int       `json:"cpuCores"`

	GoRoutines int     `json:"goRoutines"` // Active goroutines
	GoMemAlloc uint64  `json:"goMemAlloc"` // Bytes of allocated heap objects
	GoMemSys   uint64  `json:"goMemSys"`   // Bytes obtained from the OS
	GoGCCycles uint32  `json:"goGcCycles"` // Completed GC cycles
	GoGCPause  float64 `json:"goGcPause"`  // Most recent GC pause in milliseconds

	Uptime time.Duration `json:"uptime"`
}

// Gather collects a Stats snapshot for a process started at startTime.
func Gather(startTime time.Time) *Stats {
	var memStats runtime.MemStats
	runtime.ReadMemStats(&memStats)

	stats := &Stats{
		Timestamp:  time.Now(),
		CPUCores:   runtime.NumCPU(),
		GoRoutines: runtime.NumGoroutine(),
		GoMemAlloc: memStats.Alloc,
		GoMemSys:   memStats.Sys,
		GoGCCycles: memStats.NumGC,
		Uptime:     time.Since(startTime),
	}
	if memStats.NumGC > 0 {
		stats.GoGCPause = float64(memStats.PauseNs[(memStats.NumGC+255)%256]) / float64(time.Millisecond)
	}

	logging.Debug("Gathered runtime stats: goroutines=%d heap=%dKB gc=%d",
		stats.GoRoutines, stats.GoMemAlloc/1024, stats.GoGCCycles)
	return stats
}
