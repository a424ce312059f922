package camera

import (
	"math"
	"testing"
)

func near(a, b float32) bool { return math.Abs(float64(a-b)) < 0.01 }

func TestNewFitsArena(t *testing.T) {
	// Arena 800x600 in a 1600x1400 window: width limits, 2 px per unit.
	cam := New(1600, 1400, 800, 600, false)

	if cam.X != 400 || cam.Y != 300 {
		t.Errorf("center = (%v, %v), want (400, 300)", cam.X, cam.Y)
	}
	if !near(cam.Scale(), 2) {
		t.Errorf("scale = %v, want 2", cam.Scale())
	}
	sx, sy := cam.WorldToScreen(0, 0)
	if !near(sx, 0) || !near(sy, 100) {
		t.Errorf("origin -> (%v, %v), want (0, 100)", sx, sy)
	}
}

func TestScreenToWorldRoundtrip(t *testing.T) {
	for _, wrap := range []bool{false, true} {
		cam := New(1280, 720, 800, 600, wrap)
		cam.SetZoom(1.5)

		for _, tc := range []struct{ sx, sy float32 }{{640, 360}, {700, 300}, {500, 400}} {
			wx, wy := cam.ScreenToWorld(tc.sx, tc.sy)
			sx, sy := cam.WorldToScreen(wx, wy)
			if !near(sx, tc.sx) || !near(sy, tc.sy) {
				t.Errorf("wrap=%v: (%v,%v) -> (%v,%v) -> (%v,%v)", wrap, tc.sx, tc.sy, wx, wy, sx, sy)
			}
		}
	}
}

func TestWrapTakesShortWay(t *testing.T) {
	cam := New(800, 600, 800, 600, true)
	cam.X = 50

	sx, _ := cam.WorldToScreen(780, 300)
	if sx >= 400 {
		t.Errorf("x = %v, want left of center", sx)
	}

	clamped := New(800, 600, 800, 600, false)
	clamped.X = 50
	sx, _ = clamped.WorldToScreen(780, 300)
	if sx <= 400 {
		t.Errorf("clamped x = %v, want right of center", sx)
	}
}

func TestPanStaysInArena(t *testing.T) {
	cam := New(800, 600, 800, 600, false)
	cam.Pan(-5000, 5000)
	if cam.X != 0 || cam.Y != 600 {
		t.Errorf("center = (%v, %v), want (0, 600)", cam.X, cam.Y)
	}

	wrapped := New(800, 600, 800, 600, true)
	wrapped.Pan(500, 0)
	if !near(wrapped.X, 100) {
		t.Errorf("wrapped x = %v, want 100", wrapped.X)
	}
}

func TestZoomClamped(t *testing.T) {
	cam := New(800, 600, 800, 600, false)
	cam.ZoomBy(100)
	if cam.Zoom != cam.MaxZoom {
		t.Errorf("zoom = %v, want max %v", cam.Zoom, cam.MaxZoom)
	}
	cam.ZoomBy(0.001)
	if cam.Zoom != cam.MinZoom {
		t.Errorf("zoom = %v, want min %v", cam.Zoom, cam.MinZoom)
	}
	cam.Reset()
	if cam.Zoom != 1 {
		t.Errorf("zoom after reset = %v", cam.Zoom)
	}
}

func TestIsVisible(t *testing.T) {
	cam := New(800, 600, 800, 600, false)
	cam.SetZoom(2)

	if !cam.IsVisible(400, 300, 0) {
		t.Error("center should be visible")
	}
	if cam.IsVisible(0, 0, 10) {
		t.Error("corner should be off screen at 2x")
	}
}
