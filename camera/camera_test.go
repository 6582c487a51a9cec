package camera

import (
	"math"
	"testing"
)

func near(a, b float32) bool {
	return math.Abs(float64(a-b)) <= 0.01
}

func TestNewCentersWorld(t *testing.T) {
	cam := New(1280, 720, 640, 360)

	if cam.Zoom != 1.0 {
		t.Errorf("expected zoom 1.0, got %f", cam.Zoom)
	}
	// World center should map to screen center
	sx, sy := cam.WorldToScreen(320, 180)
	if !near(sx, 640) || !near(sy, 360) {
		t.Errorf("expected screen center (640, 360), got (%f, %f)", sx, sy)
	}
}

func TestScreenToWorldRoundtrip(t *testing.T) {
	cam := New(1280, 720, 640, 360)
	cam.SetZoom(2.5)
	cam.Pan(-37, 12)

	testCases := []struct{ sx, sy float32 }{
		{640, 360},  // center
		{100, 100},  // top-left
		{1200, 600}, // near bottom-right
	}

	for _, tc := range testCases {
		wx, wy := cam.ScreenToWorld(tc.sx, tc.sy)
		sx, sy := cam.WorldToScreen(wx, wy)
		if !near(sx, tc.sx) || !near(sy, tc.sy) {
			t.Errorf("roundtrip failed: (%f,%f) -> (%f,%f) -> (%f,%f)",
				tc.sx, tc.sy, wx, wy, sx, sy)
		}
	}
}

func TestZoomClamp(t *testing.T) {
	cam := New(1280, 720, 640, 360)

	cam.SetZoom(0.1) // Below the 1.0 floor
	if cam.Zoom != 1.0 {
		t.Errorf("expected zoom clamped to 1.0, got %f", cam.Zoom)
	}

	cam.SetZoom(100) // Above max
	if cam.Zoom != cam.MaxZoom {
		t.Errorf("expected zoom clamped to %f, got %f", cam.MaxZoom, cam.Zoom)
	}
}

func TestZoomKeepsCenterFixed(t *testing.T) {
	cam := New(1280, 720, 640, 360)
	cam.Pan(50, -20)
	before, beforeY := cam.ScreenToWorld(640, 360)

	cam.ZoomBy(3)

	after, afterY := cam.ScreenToWorld(640, 360)
	if !near(before, after) || !near(beforeY, afterY) {
		t.Errorf("center moved from (%f,%f) to (%f,%f)", before, beforeY, after, afterY)
	}
}

func TestIsVisible(t *testing.T) {
	cam := New(1280, 720, 640, 360)
	cam.SetZoom(4)

	// At zoom 4 the viewport spans world (160,90)-(480,270).
	if !cam.IsVisible(320, 180, 1) {
		t.Error("center should be visible")
	}
	if cam.IsVisible(10, 10, 1) {
		t.Error("far corner should not be visible")
	}
	if !cam.IsVisible(150, 180, 20) {
		t.Error("edge point with large radius should be visible")
	}
}

func TestReset(t *testing.T) {
	cam := New(1280, 720, 640, 360)
	cam.Pan(500, 500)
	cam.SetZoom(2.5)

	cam.Reset()

	if cam.Zoom != 1.0 {
		t.Errorf("expected zoom 1.0, got %f", cam.Zoom)
	}
	if cam.PanX != 320 || cam.PanY != 180 {
		t.Errorf("expected pan (320, 180), got (%f, %f)", cam.PanX, cam.PanY)
	}
}

func TestOrbitPosition(t *testing.T) {
	o := NewOrbit(30, 40, 0, 1, 0, 0)

	// Pitch is clamped to the minimum; yaw 0 puts the eye on +z.
	if o.Pitch != minPitch {
		t.Fatalf("expected pitch %v, got %v", minPitch, o.Pitch)
	}
	if !near(o.Distance, 50) {
		t.Fatalf("expected distance 50 (world diagonal), got %f", o.Distance)
	}

	x, y, z := o.Position()
	dx, dy, dz := x-o.TargetX, y-o.TargetY, z-o.TargetZ
	r := float32(math.Sqrt(float64(dx*dx + dy*dy + dz*dz)))
	if !near(r, 50) {
		t.Errorf("eye distance = %f, want 50", r)
	}
	if !near(dx, 0) || dz <= 0 || dy <= 0 {
		t.Errorf("eye offset = (%f,%f,%f), want on +z above target", dx, dy, dz)
	}

	o.SetZoom(2)
	x, y, z = o.Position()
	dx, dy, dz = x-o.TargetX, y-o.TargetY, z-o.TargetZ
	r = float32(math.Sqrt(float64(dx*dx + dy*dy + dz*dz)))
	if !near(r, 25) {
		t.Errorf("eye distance at zoom 2 = %f, want 25", r)
	}
}

func TestOrbitRotate(t *testing.T) {
	o := NewOrbit(10, 10, 0, 1, 45, 350)

	o.Rotate(20, 100)
	if !near(o.Yaw, 10) {
		t.Errorf("yaw should wrap to 10, got %f", o.Yaw)
	}
	if o.Pitch != maxPitch {
		t.Errorf("pitch should clamp to %v, got %f", maxPitch, o.Pitch)
	}

	o.Rotate(-30, -200)
	if !near(o.Yaw, 340) {
		t.Errorf("yaw should wrap to 340, got %f", o.Yaw)
	}
	if o.Pitch != minPitch {
		t.Errorf("pitch should clamp to %v, got %f", minPitch, o.Pitch)
	}
}

func TestOrbitPan(t *testing.T) {
	o := NewOrbit(100, 100, 0, 1, 45, 0)

	// Yaw 0 looks toward -z, so forward decreases z and right increases x.
	o.Pan(10, 5)
	if !near(o.TargetX, 60) || !near(o.TargetZ, 45) {
		t.Errorf("target = (%f,%f), want (60,45)", o.TargetX, o.TargetZ)
	}

	// The target never leaves the terrain.
	o.Pan(1000, -1000)
	if o.TargetX != 100 || o.TargetZ != 100 {
		t.Errorf("target = (%f,%f), want clamped to (100,100)", o.TargetX, o.TargetZ)
	}

	o.ZoomBy(0.5)
	if o.Zoom != 1.0 {
		t.Errorf("zoom should not drop below 1.0, got %f", o.Zoom)
	}

	o.Reset()
	if o.TargetX != 50 || o.TargetZ != 50 || o.Yaw != 0 || o.Pitch != 45 {
		t.Errorf("reset pose = %+v", o)
	}
}
