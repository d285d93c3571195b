package profiler

import (
	"log"
	"runtime"
	"time"
)

// Stats is one reporting interval's worth of frame and memory statistics.
type Stats struct {
	FPS          float64
	FrameTimeMs  float64 // mean frame time over the interval
	WorstFrameMs float64 // slowest single frame over the interval
	HeapMB       float64
	AllocRateMB  float64
	GCCount      uint32
	LastPauseUs  uint64
	MaxPauseUs   uint64
	SysMB        float64
}

// Profiler tracks frame rate and memory statistics for performance monitoring.
// Outputs stats to the log at a configurable interval and optionally hands them to a listener.
type Profiler struct {
	frameCount     int
	lastTime       time.Time
	lastFrame      time.Time
	worstFrame     time.Duration
	updateInterval time.Duration
	memStats       runtime.MemStats
	lastGCCount    uint32
	lastTotalAlloc uint64
	onStats        func(Stats)
	quiet          bool
	now            func() time.Time
}

// ProfilerOption configures a Profiler.
type ProfilerOption func(*Profiler)

// WithInterval sets how often statistics are reported.
//
// Parameters:
//   - d: the reporting interval
//
// Returns:
//   - ProfilerOption: option function to apply
func WithInterval(d time.Duration) ProfilerOption {
	return func(p *Profiler) {
		if d > 0 {
			p.updateInterval = d
		}
	}
}

// WithStatsCallback registers a listener that receives every report.
//
// Parameters:
//   - fn: the listener
//
// Returns:
//   - ProfilerOption: option function to apply
func WithStatsCallback(fn func(Stats)) ProfilerOption {
	return func(p *Profiler) {
		p.onStats = fn
	}
}

// WithQuiet suppresses the log line; the stats callback still fires.
//
// Parameters:
//   - quiet: true to disable logging
//
// Returns:
//   - ProfilerOption: option function to apply
func WithQuiet(quiet bool) ProfilerOption {
	return func(p *Profiler) {
		p.quiet = quiet
	}
}

// NewProfiler creates a new Profiler with default settings.
// Update interval defaults to 1 second.
//
// Parameters:
//   - options: functional options to configure the profiler
//
// Returns:
//   - *Profiler: the newly created profiler instance
func NewProfiler(options ...ProfilerOption) *Profiler {
	p := &Profiler{
		updateInterval: time.Second,
		memStats:       runtime.MemStats{},
		now:            time.Now,
	}
	for _, opt := range options {
		opt(p)
	}
	p.lastTime = p.now()
	p.lastFrame = p.lastTime
	return p
}

// Tick should be called once per frame to track frame timing.
// Reports statistics when the update interval has elapsed.
// Statistics include: FPS, frame times, heap usage, allocation rate, GC count/pause times, total memory.
//
// Returns:
//   - bool: true if stats were reported this tick, false otherwise
func (p *Profiler) Tick() bool {
	p.frameCount++
	currentTime := p.now()
	if ft := currentTime.Sub(p.lastFrame); ft > p.worstFrame {
		p.worstFrame = ft
	}
	p.lastFrame = currentTime

	elapsed := currentTime.Sub(p.lastTime)
	if elapsed < p.updateInterval {
		return false
	}

	stats := Stats{
		FPS:          float64(p.frameCount) / elapsed.Seconds(),
		FrameTimeMs:  float64(elapsed.Milliseconds()) / float64(p.frameCount),
		WorstFrameMs: float64(p.worstFrame.Microseconds()) / 1000,
	}

	runtime.ReadMemStats(&p.memStats)
	// Alloc: Bytes of allocated heap objects (live memory)
	// TotalAlloc: Cumulative bytes allocated for heap objects (tracks churn)
	// Sys: Total bytes of memory obtained from the OS
	stats.HeapMB = float64(p.memStats.Alloc) / 1024 / 1024
	stats.SysMB = float64(p.memStats.Sys) / 1024 / 1024
	allocDelta := p.memStats.TotalAlloc - p.lastTotalAlloc
	stats.AllocRateMB = float64(allocDelta) / 1024 / 1024 / elapsed.Seconds()

	gcCount := p.memStats.NumGC
	stats.GCCount = gcCount
	if gcCount > 0 {
		// PauseNs is a circular buffer of last 256 GC pauses
		stats.LastPauseUs = p.memStats.PauseNs[(gcCount-1)%256] / 1000

		startIdx := p.lastGCCount
		if gcCount-startIdx > 256 {
			startIdx = gcCount - 256
		}
		for i := startIdx; i < gcCount; i++ {
			if pause := p.memStats.PauseNs[i%256] / 1000; pause > stats.MaxPauseUs {
				stats.MaxPauseUs = pause
			}
		}
	}

	if !p.quiet {
		log.Printf("[Profiler] FPS: %.2f | Frame: %.2f ms (worst %.2f ms) | Heap: %.2f MB | Alloc Rate: %.2f MB/s | GC: %d (last: %d µs, max: %d µs) | Sys: %.2f MB",
			stats.FPS, stats.FrameTimeMs, stats.WorstFrameMs, stats.HeapMB, stats.AllocRateMB, gcCount, stats.LastPauseUs, stats.MaxPauseUs, stats.SysMB)
	}
	if p.onStats != nil {
		p.onStats(stats)
	}

	p.frameCount = 0
	p.worstFrame = 0
	p.lastTime = currentTime
	p.lastGCCount = gcCount
	p.lastTotalAlloc = p.memStats.TotalAlloc
	return true
}
