package perf

import (
	"runtime"
	"time"

	log "github.com/sirupsen/logrus"
)

// Stats is a snapshot of wall-clock time and allocator state at a point in
// time, used to report the delta against a later point.
type Stats struct {
	startTime time.Time
	startMem  uint64
	startGc   uint32
}

// New takes a snapshot of the current time and memory allocation state.
func New() *Stats {
	var m runtime.MemStats
	startTime := time.Now()
	runtime.ReadMemStats(&m)
	return &Stats{startTime, m.TotalAlloc, m.NumGC}
}

// Log logs the difference between now and the state when s was created.
func (s *Stats) Log(prefix string) {
	var m runtime.MemStats
	runtime.ReadMemStats(&m)
	allocGb := float64(m.TotalAlloc-s.startMem) / 1024 / 1024 / 1024
	gcs := m.NumGC - s.startGc
	exectime := time.Since(s.startTime).Seconds()

	log.Debugf("%s took %0.2fs using %0.2f Gb (%v GC events) [%0.2f Gb live]",
		prefix, exectime, allocGb, gcs, float64(m.Alloc)/1024/1024/1024)
}

// Elapsed returns the wall-clock seconds since s was created, the value
// printed on the CLI's "Completed in <s> seconds (CPU)" line.
func (s *Stats) Elapsed() float64 {
	return time.Since(s.startTime).Seconds()
}
