package profiler

import (
	"log/slog"
	"runtime"
	"time"
)

// Stats is one report of update-loop throughput and memory.
type Stats struct {
	UpdatesPerSecond float64
	Changed          int
	HeapMB           float64
	AllocRateMB      float64
	GCCount          uint32
	MaxPauseUs       uint64
	SysMB            float64
}

// Profiler counts scene updates and reports throughput and memory statistics at a
// fixed interval.
type Profiler struct {
	name           string
	updateCount    int
	changedCount   int
	lastTime       time.Time
	updateInterval time.Duration
	now            func() time.Time
	readMem        func(*runtime.MemStats)
	memStats       runtime.MemStats
	lastGCCount    uint32
	lastTotalAlloc uint64
	last           Stats
}

// NewProfiler creates a Profiler. The interval defaults to 1 second.
//
// Parameters:
//   - options: functional options to configure the profiler
//
// Returns:
//   - *Profiler: the newly created profiler
func NewProfiler(options ...ProfilerBuilderOption) *Profiler {
	p := &Profiler{
		name:           "scene",
		updateInterval: time.Second,
		now:            time.Now,
		readMem:        runtime.ReadMemStats,
	}
	for _, option := range options {
		option(p)
	}
	p.lastTime = p.now()
	return p
}

// Tick records one scene update. When the interval has elapsed the statistics are
// computed, logged at Info and returned.
//
// Parameters:
//   - changed: whether the update changed the scene
//
// Returns:
//   - Stats: the report, valid only when the bool is true
//   - bool: true if a report was produced by this tick
func (p *Profiler) Tick(changed bool) (Stats, bool) {
	p.updateCount++
	if changed {
		p.changedCount++
	}
	current := p.now()
	elapsed := current.Sub(p.lastTime)
	if elapsed < p.updateInterval {
		return Stats{}, false
	}

	p.readMem(&p.memStats)
	stats := Stats{
		UpdatesPerSecond: float64(p.updateCount) / elapsed.Seconds(),
		Changed:          p.changedCount,
		HeapMB:           float64(p.memStats.Alloc) / 1024 / 1024,
		AllocRateMB:      float64(p.memStats.TotalAlloc-p.lastTotalAlloc) / 1024 / 1024 / elapsed.Seconds(),
		GCCount:          p.memStats.NumGC,
		MaxPauseUs:       maxPauseSince(&p.memStats, p.lastGCCount),
		SysMB:            float64(p.memStats.Sys) / 1024 / 1024,
	}

	slog.Info("profiler.Tick",
		"name", p.name,
		"ups", stats.UpdatesPerSecond,
		"changed", stats.Changed,
		"heapMB", stats.HeapMB,
		"allocRateMB", stats.AllocRateMB,
		"gc", stats.GCCount,
		"maxPauseUs", stats.MaxPauseUs,
		"sysMB", stats.SysMB,
	)

	p.updateCount = 0
	p.changedCount = 0
	p.lastTime = current
	p.lastGCCount = p.memStats.NumGC
	p.lastTotalAlloc = p.memStats.TotalAlloc
	p.last = stats
	return stats, true
}

// Last returns the most recent report.
func (p *Profiler) Last() Stats {
	return p.last
}

// maxPauseSince returns the longest GC pause in microseconds after GC number since.
// PauseNs is a circular buffer of the last 256 pauses.
func maxPauseSince(m *runtime.MemStats, since uint32) uint64 {
	count := m.NumGC
	if count == 0 {
		return 0
	}
	start := since
	if count-start > 256 {
		start = count - 256
	}
	var longest uint64
	for i := start; i < count; i++ {
		longest = max(longest, m.PauseNs[i%256]/1000)
	}
	return longest
}
