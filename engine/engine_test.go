package engine

import (
	"bytes"
	"log"
	"os"
	"strings"
	"testing"
	"time"
)

// fakeHost runs the update callback until closed or a frame budget is spent.
type fakeHost struct {
	update   func()
	budget   int
	closed   bool
	requests int
}

func (h *fakeHost) SetUpdateCallback(cb func()) { h.update = cb }
func (h *fakeHost) RequestClose() { h.requests++; h.closed = true }
func (h *fakeHost) Close() error { h.closed = true; return nil }
func (h *fakeHost) ProcessMessages() {
	for i := 0; i < h.budget && !h.closed; i++ {
		h.update()
	}
}

func TestFrameRunsTickBeforeRender(t *testing.T) {
	host := &fakeHost{budget: 3}
	var order []string
	e := NewEngine(
		WithHost(host),
		WithTickCallback(func(float32) { order = append(order, "tick") }),
		WithRenderCallback(func(float32) { order = append(order, "render") }),
	)

	if err := e.Run(); err != nil {
		t.Fatalf("Run() error = %v", err)
	}
	if e.Frames() != 3 {
		t.Fatalf("Frames() = %d, want 3", e.Frames())
	}
	want := []string{"tick", "render", "tick", "render", "tick", "render"}
	for i := range want {
		if order[i] != want[i] {
			t.Fatalf("order = %v", order)
		}
	}
}

func TestDeltaIsClamped(t *testing.T) {
	host := &fakeHost{budget: 2}
	clock := time.Unix(100, 0)
	var deltas []float32

	e := NewEngine(WithHost(host), WithMaxDelta(0.1), WithTickCallback(func(dt float32) {
		deltas = append(deltas, dt)
		clock = clock.Add(2 * time.Second)
	})).(*engine)
	e.now = func() time.Time { return clock }

	_ = e.Run()
	if len(deltas) != 2 || deltas[0] != 0 || deltas[1] != 0.1 {
		t.Fatalf("deltas = %v, want [0 0.1]", deltas)
	}
}

func TestPanicQuits(t *testing.T) {
	var buf bytes.Buffer
	log.SetOutput(&buf)
	defer log.SetOutput(os.Stderr)
	host := &fakeHost{budget: 5}
	e := NewEngine(WithHost(host), WithRenderCallback(func(float32) { panic("boom") }))

	_ = e.Run()
	if !strings.Contains(buf.String(), "[engine] frame recovered from panic: boom") {
		t.Fatalf("log = %q, want tagged panic line", buf.String())
	}
	if host.requests != 1 {
		t.Fatalf("RequestClose calls = %d, want 1", host.requests)
	}
	e.Quit()
	if host.requests != 1 {
		t.Fatal("Quit is not idempotent")
	}
}

func TestFrameLimitSleeps(t *testing.T) {
	host := &fakeHost{budget: 1}
	var slept time.Duration
	e := NewEngine(WithHost(host), WithRenderFrameLimit(50)).(*engine)
	clock := time.Unix(0, 0)
	e.now = func() time.Time { return clock }
	e.sleep = func(d time.Duration) { slept += d }

	_ = e.Run()
	if slept != 20*time.Millisecond {
		t.Fatalf("slept %v, want 20ms", slept)
	}
}
