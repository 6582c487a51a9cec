// Package camera provides the viewer cameras: a 2D pan/zoom view for the
// flat variant and an orbit camera around the terrain.
package camera

// Camera maps a bounded 2D world onto the screen with a zoom factor and a
// pan offset in screen pixels: screen = world*Zoom + Pan.
type Camera struct {
	PanX, PanY float32

	// Zoom level (1.0 = one pixel per world unit)
	Zoom float32

	// Viewport dimensions (screen size)
	ViewportW, ViewportH float32

	// World dimensions
	WorldW, WorldH float32

	// Zoom constraints
	MinZoom, MaxZoom float32
}

// New creates a camera with the world centered at 1:1 zoom.
func New(viewportW, viewportH, worldW, worldH float32) *Camera {
	c := &Camera{
		Zoom:      1.0,
		ViewportW: viewportW,
		ViewportH: viewportH,
		WorldW:    worldW,
		WorldH:    worldH,
		MinZoom:   1.0,
		MaxZoom:   16.0,
	}
	c.Center()
	return c
}

// WorldToScreen converts world coordinates to screen coordinates.
func (c *Camera) WorldToScreen(wx, wy float32) (sx, sy float32) {
	return wx*c.Zoom + c.PanX, wy*c.Zoom + c.PanY
}

// ScreenToWorld converts screen coordinates to world coordinates.
func (c *Camera) ScreenToWorld(sx, sy float32) (wx, wy float32) {
	return (sx - c.PanX) / c.Zoom, (sy - c.PanY) / c.Zoom
}

// IsVisible returns true if a circle at (wx, wy) with the given world radius
// could be visible on screen.
func (c *Camera) IsVisible(wx, wy, radius float32) bool {
	sx, sy := c.WorldToScreen(wx, wy)
	r := radius * c.Zoom
	return sx+r >= 0 && sx-r <= c.ViewportW && sy+r >= 0 && sy-r <= c.ViewportH
}

// Resize updates viewport dimensions and keeps the world centered.
func (c *Camera) Resize(viewportW, viewportH float32) {
	if viewportW == c.ViewportW && viewportH == c.ViewportH {
		return
	}
	c.ViewportW = viewportW
	c.ViewportH = viewportH
	c.Center()
}

// Pan moves the view by the given delta in screen pixels.
func (c *Camera) Pan(dx, dy float32) {
	c.PanX += dx
	c.PanY += dy
}

// SetZoom sets the zoom level, clamped to min/max, keeping the world
// point under the viewport center fixed.
func (c *Camera) SetZoom(zoom float32) {
	cx, cy := c.ScreenToWorld(c.ViewportW/2, c.ViewportH/2)
	c.Zoom = clamp(zoom, c.MinZoom, c.MaxZoom)
	c.PanX = c.ViewportW/2 - cx*c.Zoom
	c.PanY = c.ViewportH/2 - cy*c.Zoom
}

// ZoomBy multiplies the current zoom by the given factor.
func (c *Camera) ZoomBy(factor float32) {
	c.SetZoom(c.Zoom * factor)
}

// Center pans so the world is centered in the viewport at the current zoom.
func (c *Camera) Center() {
	c.PanX = (c.ViewportW - c.WorldW*c.Zoom) / 2
	c.PanY = (c.ViewportH - c.WorldH*c.Zoom) / 2
}

// Reset returns the camera to 1:1 zoom with the world centered.
func (c *Camera) Reset() {
	c.Zoom = 1.0
	c.Center()
}

// clamp restricts a value to a range.
func clamp(x, lo, hi float32) float32 {
	if x < lo {
		return lo
	}
	if x > hi {
		return hi
	}
	return x
}
