// Package camera maps arena coordinates to the window and back.
package camera

import "math"

// Camera controls the viewport into the arena. The arena is fitted to the
// viewport at zoom 1; Zoom magnifies around the camera center.
type Camera struct {
	// Center of the view in arena coordinates.
	X, Y float32

	Zoom float32

	ViewportW, ViewportH float32
	WorldW, WorldH       float32

	// Wrap makes deltas take the short way around a toroidal arena.
	Wrap bool

	MinZoom, MaxZoom float32
	fit              float32 // pixels per arena unit at zoom 1
}

// New creates a camera centered on the arena and fitted to the viewport.
func New(viewportW, viewportH, worldW, worldH float32, wrap bool) *Camera {
	c := &Camera{
		Zoom:    1,
		WorldW:  worldW,
		WorldH:  worldH,
		Wrap:    wrap,
		MinZoom: 1,
		MaxZoom: 6,
	}
	c.Resize(viewportW, viewportH)
	c.Reset()
	return c
}

// Scale returns screen pixels per arena unit.
func (c *Camera) Scale() float32 { return c.fit * c.Zoom }

// WorldToScreen converts arena coordinates to screen coordinates.
func (c *Camera) WorldToScreen(wx, wy float32) (sx, sy float32) {
	dx, dy := c.delta(wx, wy)
	s := c.Scale()
	return c.ViewportW/2 + dx*s, c.ViewportH/2 + dy*s
}

// ScreenToWorld converts screen coordinates to arena coordinates.
func (c *Camera) ScreenToWorld(sx, sy float32) (wx, wy float32) {
	s := c.Scale()
	wx = c.X + (sx-c.ViewportW/2)/s
	wy = c.Y + (sy-c.ViewportH/2)/s
	if c.Wrap {
		wx, wy = mod(wx, c.WorldW), mod(wy, c.WorldH)
	}
	return wx, wy
}

// IsVisible reports whether a circle could be on screen.
func (c *Camera) IsVisible(wx, wy, radius float32) bool {
	dx, dy := c.delta(wx, wy)
	s := c.Scale()
	halfW := c.ViewportW/(2*s) + radius
	halfH := c.ViewportH/(2*s) + radius
	return absf(dx) <= halfW && absf(dy) <= halfH
}

// Resize updates the viewport and refits the arena.
func (c *Camera) Resize(viewportW, viewportH float32) {
	c.ViewportW = viewportW
	c.ViewportH = viewportH
	c.fit = 1
	if c.WorldW > 0 && c.WorldH > 0 {
		c.fit = min(viewportW/c.WorldW, viewportH/c.WorldH)
	}
}

// Pan moves the view by a screen-pixel delta.
func (c *Camera) Pan(dx, dy float32) {
	s := c.Scale()
	c.X += dx / s
	c.Y += dy / s
	if c.Wrap {
		c.X, c.Y = mod(c.X, c.WorldW), mod(c.Y, c.WorldH)
		return
	}
	c.X = clamp(c.X, 0, c.WorldW)
	c.Y = clamp(c.Y, 0, c.WorldH)
}

// SetZoom sets the zoom level, clamped to min/max.
func (c *Camera) SetZoom(zoom float32) {
	c.Zoom = clamp(zoom, c.MinZoom, c.MaxZoom)
}

// ZoomBy multiplies the current zoom by the given factor.
func (c *Camera) ZoomBy(factor float32) {
	c.SetZoom(c.Zoom * factor)
}

// Reset returns the camera to the fitted, centered view.
func (c *Camera) Reset() {
	c.X = c.WorldW / 2
	c.Y = c.WorldH / 2
	c.Zoom = 1
}

func (c *Camera) delta(wx, wy float32) (dx, dy float32) {
	if c.Wrap {
		return toroidalDelta(wx, c.X, c.WorldW), toroidalDelta(wy, c.Y, c.WorldH)
	}
	return wx - c.X, wy - c.Y
}

// toroidalDelta computes the shortest signed distance from 'from' to 'to'
// in a toroidal space of the given size.
func toroidalDelta(to, from, size float32) float32 {
	d := to - from
	if d > size/2 {
		d -= size
	} else if d < -size/2 {
		d += size
	}
	return d
}

func mod(x, m float32) float32 {
	if m <= 0 {
		return 0
	}
	r := float32(math.Mod(float64(x), float64(m)))
	if r < 0 {
		r += m
	}
	return r
}

func absf(x float32) float32 {
	if x < 0 {
		return -x
	}
	return x
}

func clamp(x, lo, hi float32) float32 {
	return max(lo, min(x, hi))
}
