package camera

import (
	"sync"

	"github.com/Carmen-Shannon/oxy-museum/engine/input"
	"github.com/go-gl/mathgl/mgl32"
)

const (
	// DefaultRotateSensitivity is the yaw change in radians per pixel of horizontal drag.
	DefaultRotateSensitivity float32 = 0.005
	// DefaultScrollSpeed is the distance in world units moved per pixel of wheel delta.
	DefaultScrollSpeed float32 = 0.5 * 0.01
)

type navigationControllerImpl struct {
	mu *sync.Mutex

	current mgl32.Vec3
	target  mgl32.Vec3
	yaw     float32

	dragging  bool
	previousX float32

	bounds            Bounds
	rotateSensitivity float32
	scrollSpeed       float32
	easing            Easing
}

var _ NavigationController = &navigationControllerImpl{}
var _ input.Handler = &navigationControllerImpl{}

func (nc *navigationControllerImpl) Position() mgl32.Vec3 {
	nc.mu.Lock()
	defer nc.mu.Unlock()
	return nc.current
}

func (nc *navigationControllerImpl) Forward() mgl32.Vec3 {
	nc.mu.Lock()
	defer nc.mu.Unlock()
	return forwardFor(nc.yaw)
}

func (nc *navigationControllerImpl) Target() mgl32.Vec3 {
	nc.mu.Lock()
	defer nc.mu.Unlock()
	return nc.target
}

func (nc *navigationControllerImpl) Yaw() float32 {
	nc.mu.Lock()
	defer nc.mu.Unlock()
	return nc.yaw
}

func (nc *navigationControllerImpl) Dragging() bool {
	nc.mu.Lock()
	defer nc.mu.Unlock()
	return nc.dragging
}

func (nc *navigationControllerImpl) Bounds() Bounds {
	nc.mu.Lock()
	defer nc.mu.Unlock()
	return nc.bounds
}

func (nc *navigationControllerImpl) SetBounds(b Bounds) {
	nc.mu.Lock()
	defer nc.mu.Unlock()
	nc.bounds = b
	nc.target = b.Clamp(nc.target)
}

func (nc *navigationControllerImpl) OnPointerDown(x, _ float32) {
	nc.mu.Lock()
	defer nc.mu.Unlock()
	nc.dragging = true
	nc.previousX = x
}

func (nc *navigationControllerImpl) OnPointerMove(x, _ float32) {
	nc.mu.Lock()
	defer nc.mu.Unlock()
	if !nc.dragging {
		return
	}
	dx := x - nc.previousX
	nc.previousX = x
	nc.yaw -= dx * nc.rotateSensitivity
}

func (nc *navigationControllerImpl) OnPointerUp(_, _ float32) {
	nc.mu.Lock()
	defer nc.mu.Unlock()
	nc.dragging = false
}

func (nc *navigationControllerImpl) OnWheel(deltaY float32) {
	nc.mu.Lock()
	defer nc.mu.Unlock()

	direction := forwardFor(nc.yaw)
	direction[1] = 0
	nc.target = nc.bounds.Clamp(nc.target.Add(direction.Mul(deltaY * nc.scrollSpeed)))
}

func (nc *navigationControllerImpl) Tick(dt float32) {
	nc.mu.Lock()
	defer nc.mu.Unlock()

	f := nc.easing.Factor(dt)
	nc.current = nc.current.Add(nc.target.Sub(nc.current).Mul(f))
}

// forwardFor rotates -Z about the Y axis by yaw.
func forwardFor(yaw float32) mgl32.Vec3 {
	return mgl32.Rotate3DY(yaw).Mul3x1(mgl32.Vec3{0, 0, -1})
}
