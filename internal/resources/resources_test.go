package resources

import (
	"runtime"
	"testing"
	"time"
)

func TestGather(t *testing.T) {
	start := time.Now().Add(-time.Minute)
	runtime.GC()

	stats := Gather(start)

	if stats.CPUCores != runtime.NumCPU() {
		t.Errorf("CPUCores = %d, want %d", stats.CPUCores, runtime.NumCPU())
	}
	if stats.GoRoutines < 1 {
		t.Errorf("GoRoutines = %d, want at least 1", stats.GoRoutines)
	}
	if stats.GoMemSys == 0 || stats.GoMemAlloc == 0 {
		t.Errorf("memory stats not populated: %+v", stats)
	}
	if stats.GoGCCycles == 0 {
		t.Error("GoGCCycles = 0 after runtime.GC()")
	}
	if stats.Uptime < time.Minute {
		t.Errorf("Uptime = %v, want at least 1m", stats.Uptime)
	}
	if stats.Timestamp.IsZero() {
		t.Error("Timestamp not set")
	}
}
