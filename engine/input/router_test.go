package input

import "testing"

type recorder struct {
	events []string
	wheel  []float32
}

func (r *recorder) OnPointerDown(x, y float32) { r.events = append(r.events, "down") }
func (r *recorder) OnPointerMove(x, y float32) { r.events = append(r.events, "move") }
func (r *recorder) OnPointerUp(x, y float32)   { r.events = append(r.events, "up") }
func (r *recorder) OnWheel(deltaY float32)     { r.wheel = append(r.wheel, deltaY) }

type regionInterceptor struct{ maxX float32 }

func (i regionInterceptor) InterceptPointerDown(x, y float32) bool { return x < i.maxX }

type sizeRecorder struct{ w, h int }

func (s *sizeRecorder) OnResize(w, h int) { s.w, s.h = w, h }

func TestRouterScrollNotchesBecomePixelDeltas(t *testing.T) {
	rec := &recorder{}
	r := NewRouter(rec)

	r.OnScrollNotches(-1)
	r.OnScrollNotches(2)

	if len(rec.wheel) != 2 || rec.wheel[0] != 100 || rec.wheel[1] != -200 {
		t.Fatalf("expected [100 -200], got %v", rec.wheel)
	}
}

func TestRouterInterceptorConsumesPressAndRelease(t *testing.T) {
	rec := &recorder{}
	r := NewRouter(rec, WithInterceptor(regionInterceptor{maxX: 50}))

	r.OnPointerDown(10, 10)
	r.OnPointerUp(10, 10)
	if len(rec.events) != 0 {
		t.Fatalf("expected intercepted press to be swallowed, got %v", rec.events)
	}

	r.OnPointerDown(100, 10)
	r.OnPointerMove(120, 10)
	r.OnPointerUp(120, 10)
	want := []string{"down", "move", "up"}
	if len(rec.events) != len(want) {
		t.Fatalf("expected %v, got %v", want, rec.events)
	}
	for i := range want {
		if rec.events[i] != want[i] {
			t.Fatalf("expected %v, got %v", want, rec.events)
		}
	}
}

func TestRouterTouchMapsToPointer(t *testing.T) {
	rec := &recorder{}
	r := NewRouter(rec)

	r.TouchMove(5, 5)
	r.TouchStart(10, 10)
	r.TouchMove(20, 10)
	r.TouchEnd(20, 10)
	r.TouchMove(30, 10)

	want := []string{"down", "move", "up"}
	if len(rec.events) != len(want) {
		t.Fatalf("expected %v, got %v", want, rec.events)
	}
}

func TestRouterResizeFanOut(t *testing.T) {
	a, b := &sizeRecorder{}, &sizeRecorder{}
	r := NewRouter(&recorder{}, WithResizeListener(a))
	r.AddResizeListener(b)

	r.OnResize(800, 600)
	if a.w != 800 || b.h != 600 {
		t.Fatalf("expected both listeners resized, got %+v %+v", a, b)
	}
}
