// Package hall builds the static museum shell: floor, ceiling, walls and lights.
package hall

import (
	"fmt"

	"github.com/Carmen-Shannon/oxy-museum/common"
	"github.com/Carmen-Shannon/oxy-museum/engine/camera"
	"github.com/Carmen-Shannon/oxy-museum/engine/game_object"
	"github.com/Carmen-Shannon/oxy-museum/engine/light"
	"github.com/Carmen-Shannon/oxy-museum/engine/model"
	"github.com/Carmen-Shannon/oxy-museum/engine/scene"
	"github.com/Carmen-Shannon/oxy-museum/museum/config"
	"github.com/chewxy/math32"
	"github.com/go-gl/mathgl/mgl32"
)

// Mesh keys for the shell geometry. Both side walls share one mesh.
const (
	FloorMesh    = "hall/floor"
	CeilingMesh  = "hall/ceiling"
	SideWallMesh = "hall/side-wall"
	BackWallMesh = "hall/back-wall"
)

// GroupName names the parent object every shell surface hangs from.
const GroupName = "museum"

// DefaultGroupOffset is the Z offset of the shell group.
const DefaultGroupOffset float32 = -40

// Spotlight parameters shared by every exhibit.
const (
	SpotIntensity float32 = 1.5
	SpotRange     float32 = 20
	SpotAngle     float32 = math32.Pi / 6
	SpotPenumbra  float32 = 0.5
	SpotDecay     float32 = 0.5
)

var (
	floorMaterial   = model.Material{Color: common.HexColor(0x8B0000), Roughness: 0.8, Metalness: 0.2}
	ceilingMaterial = model.Material{Color: common.HexColor(0xFFFFFF), Roughness: 0.4, Metalness: 0.1}
	wallMaterial    = model.Material{Color: common.HexColor(0x333333), Roughness: 0.7, Metalness: 0.1}
)

type builder struct {
	cam         camera.Camera
	spacing     float32
	groupOffset float32
}

// Meshes returns the shell meshes for a hall of the given size, keyed by mesh key.
//
// Parameters:
//   - room: the hall size
//
// Returns:
//   - map[string]*model.Mesh: the floor, ceiling, side wall and back wall meshes
func Meshes(room config.RoomBounds) map[string]*model.Mesh {
	return map[string]*model.Mesh{
		FloorMesh:    model.Plane(FloorMesh, room.Width, room.Length),
		CeilingMesh:  model.Plane(CeilingMesh, room.Width, room.Length),
		SideWallMesh: model.Plane(SideWallMesh, room.Length, room.Height),
		BackWallMesh: model.Plane(BackWallMesh, room.Width, room.Height),
	}
}

// Build creates the scene holding the hall shell and its lights. The shell is built in
// group space around the origin and translated by the group offset; spotlights are placed
// in world space over each exhibit's anchor.
//
// Parameters:
//   - room: the hall size
//   - descriptors: the exhibits, one spotlight each
//   - options: functional options for the camera, spacing and group offset
//
// Returns:
//   - scene.Scene: the populated scene
//   - error: an error if the room is degenerate or there are more exhibits than light slots
func Build(room config.RoomBounds, descriptors []config.Descriptor, options ...BuildOption) (scene.Scene, error) {
	if room.Length <= 0 || room.Width <= 0 || room.Height <= 0 {
		return nil, fmt.Errorf("invalid room %+v", room)
	}
	// One slot goes to the directional light.
	if len(descriptors)+1 > light.MaxGPULights {
		return nil, fmt.Errorf("%d exhibits exceed the %d spotlight limit", len(descriptors), light.MaxGPULights-1)
	}

	b := &builder{
		spacing:     8,
		groupOffset: DefaultGroupOffset,
	}
	for _, opt := range options {
		opt(b)
	}
	if b.cam == nil {
		b.cam = camera.NewCamera()
	}

	s := scene.NewScene("museum", b.cam,
		scene.WithBackground(mgl32.Vec3{0, 0, 0}),
		scene.WithAmbient(common.HexColor(0x404040), 0.5),
	)

	group := game_object.NewGameObject(
		game_object.WithName(GroupName),
		game_object.WithPosition(mgl32.Vec3{0, 0, b.groupOffset}),
	)
	s.Add(group)

	halfPi := math32.Pi / 2
	shell := []struct {
		name     string
		mesh     string
		material model.Material
		position mgl32.Vec3
		rotation mgl32.Vec3
	}{
		{"floor", FloorMesh, floorMaterial, mgl32.Vec3{0, 0, 0}, mgl32.Vec3{-halfPi, 0, 0}},
		{"ceiling", CeilingMesh, ceilingMaterial, mgl32.Vec3{0, room.Height, 0}, mgl32.Vec3{halfPi, 0, 0}},
		{"left-wall", SideWallMesh, wallMaterial, mgl32.Vec3{-room.Width / 2, room.Height / 2, 0}, mgl32.Vec3{0, halfPi, 0}},
		{"right-wall", SideWallMesh, wallMaterial, mgl32.Vec3{room.Width / 2, room.Height / 2, 0}, mgl32.Vec3{0, -halfPi, 0}},
		{"back-wall", BackWallMesh, wallMaterial, mgl32.Vec3{0, room.Height / 2, -room.Length / 2}, mgl32.Vec3{}},
	}
	for _, part := range shell {
		s.Add(game_object.NewGameObject(
			game_object.WithName(part.name),
			game_object.WithParent(group),
			game_object.WithMesh(part.mesh),
			game_object.WithMaterial(part.material),
			game_object.WithPosition(part.position),
			game_object.WithRotation(part.rotation),
		))
	}

	s.AddLight(light.NewLight(light.LightTypeDirectional,
		light.WithColor(mgl32.Vec3{1, 1, 1}),
		light.WithIntensity(0.8),
		light.WithPosition(mgl32.Vec3{0, 10, 5}),
		light.WithTarget(mgl32.Vec3{0, 0, 0}),
	))
	for _, d := range descriptors {
		s.AddLight(Spotlight(d.Anchor(b.spacing), room.Height))
	}
	return s, nil
}

// Spotlight creates the light hanging one unit below the ceiling over an exhibit anchor.
//
// Parameters:
//   - anchor: the exhibit's world position
//   - ceiling: the ceiling height
//
// Returns:
//   - light.Light: the spotlight aimed at the anchor
func Spotlight(anchor mgl32.Vec3, ceiling float32) light.Light {
	return light.NewLight(light.LightTypeSpot,
		light.WithColor(mgl32.Vec3{1, 1, 1}),
		light.WithIntensity(SpotIntensity),
		light.WithRange(SpotRange),
		light.WithDecay(SpotDecay),
		light.WithSpotCone(SpotAngle, SpotPenumbra),
		light.WithPosition(mgl32.Vec3{anchor[0], ceiling - 1, anchor[2]}),
		light.WithTarget(anchor),
	)
}
