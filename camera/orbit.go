package camera

import "math"

const (
	minPitch = 5.0
	maxPitch = 89.0
)

// Orbit is a camera circling a target point on the terrain. Angles are in
// degrees; y is up.
type Orbit struct {
	TargetX, TargetY, TargetZ float32

	Yaw, Pitch float32

	// Distance is the orbit radius at zoom 1.
	Distance float32
	Zoom     float32

	MinZoom, MaxZoom float32

	WorldW, WorldH float32

	home pose
}

// pose holds the angles restored by Reset.
type pose struct {
	yaw, pitch float32
}

// NewOrbit aims at the middle of a worldW x worldH terrain at targetY.
// distanceFactor scales the world diagonal into the orbit radius.
func NewOrbit(worldW, worldH, targetY, distanceFactor, pitch, yaw float32) *Orbit {
	diag := float32(math.Hypot(float64(worldW), float64(worldH)))
	o := &Orbit{
		Distance: diag * distanceFactor,
		MinZoom:  1.0,
		MaxZoom:  8.0,
		WorldW:   worldW,
		WorldH:   worldH,
		TargetY:  targetY,
		home:     pose{yaw: yaw, pitch: pitch},
	}
	o.Reset()
	return o
}

// Position returns the eye position in world coordinates.
func (o *Orbit) Position() (x, y, z float32) {
	r := float64(o.Distance / o.Zoom)
	yaw := float64(o.Yaw) * math.Pi / 180
	pitch := float64(o.Pitch) * math.Pi / 180
	h := r * math.Cos(pitch)
	return o.TargetX + float32(h*math.Sin(yaw)),
		o.TargetY + float32(r*math.Sin(pitch)),
		o.TargetZ + float32(h*math.Cos(yaw))
}

// Rotate adds to yaw and pitch. Yaw wraps into [0,360); pitch is clamped
// so the eye stays above the terrain and never flips over the pole.
func (o *Orbit) Rotate(dYaw, dPitch float32) {
	yaw := math.Mod(float64(o.Yaw+dYaw), 360)
	if yaw < 0 {
		yaw += 360
	}
	o.Yaw = float32(yaw)
	o.Pitch = clamp(o.Pitch+dPitch, minPitch, maxPitch)
}

// Pan slides the target across the ground. right and forward are in world
// units relative to the current view direction. The target stays over the
// terrain.
func (o *Orbit) Pan(right, forward float32) {
	yaw := float64(o.Yaw) * math.Pi / 180
	sin, cos := float32(math.Sin(yaw)), float32(math.Cos(yaw))
	// Forward points from the eye toward the target.
	o.TargetX += right*cos - forward*sin
	o.TargetZ += -right*sin - forward*cos
	o.TargetX = clamp(o.TargetX, 0, o.WorldW)
	o.TargetZ = clamp(o.TargetZ, 0, o.WorldH)
}

// SetZoom sets the zoom level, clamped to min/max.
func (o *Orbit) SetZoom(zoom float32) {
	o.Zoom = clamp(zoom, o.MinZoom, o.MaxZoom)
}

// ZoomBy multiplies the current zoom by the given factor.
func (o *Orbit) ZoomBy(factor float32) {
	o.SetZoom(o.Zoom * factor)
}

// Reset restores the initial angles, zoom and centered target.
func (o *Orbit) Reset() {
	o.TargetX = o.WorldW / 2
	o.TargetZ = o.WorldH / 2
	o.Yaw = o.home.yaw
	o.Pitch = clamp(o.home.pitch, minPitch, maxPitch)
	o.Zoom = 1.0
}
