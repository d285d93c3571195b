package profiler

import (
	"testing"
	"time"
)

func TestTickReportsAfterInterval(t *testing.T) {
	clock := time.Unix(0, 0)
	var got []Stats
	p := NewProfiler(WithQuiet(true), WithStatsCallback(func(s Stats) { got = append(got, s) }))
	p.now = func() time.Time { return clock }
	p.lastTime = clock
	p.lastFrame = clock

	for i := 0; i < 59; i++ {
		clock = clock.Add(16 * time.Millisecond)
		if p.Tick() {
			t.Fatalf("reported early at frame %d", i)
		}
	}
	clock = clock.Add(56 * time.Millisecond)
	if !p.Tick() {
		t.Fatal("no report after one second")
	}

	if len(got) != 1 {
		t.Fatalf("callbacks = %d, want 1", len(got))
	}
	if got[0].FPS < 59.9 || got[0].FPS > 60.1 {
		t.Fatalf("FPS = %v, want 60", got[0].FPS)
	}
	if got[0].WorstFrameMs != 56 {
		t.Fatalf("WorstFrameMs = %v, want 56", got[0].WorstFrameMs)
	}
}
