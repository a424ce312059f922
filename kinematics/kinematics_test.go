package kinematics

import (
	"math"
	"testing"

	"gonum.org/v1/gonum/spatial/r2"
)

const eps = 1e-9

func vecNear(a, b r2.Vec, tol float64) bool {
	return math.Abs(a.X-b.X) <= tol && math.Abs(a.Y-b.Y) <= tol
}

func TestForwardAndRight(t *testing.T) {
	tests := []struct {
		heading float64
		forward r2.Vec
		right   r2.Vec
	}{
		{0, r2.Vec{X: 0, Y: -1}, r2.Vec{X: 1, Y: 0}},
		{90, r2.Vec{X: 1, Y: 0}, r2.Vec{X: 0, Y: 1}},
		{180, r2.Vec{X: 0, Y: 1}, r2.Vec{X: -1, Y: 0}},
		{270, r2.Vec{X: -1, Y: 0}, r2.Vec{X: 0, Y: -1}},
	}
	for _, tt := range tests {
		if got := Forward(tt.heading); !vecNear(got, tt.forward, 1e-12) {
			t.Errorf("Forward(%v) = %v, want %v", tt.heading, got, tt.forward)
		}
		if got := Right(tt.heading); !vecNear(got, tt.right, 1e-12) {
			t.Errorf("Right(%v) = %v, want %v", tt.heading, got, tt.right)
		}
	}
}

func TestNormalizeHeading(t *testing.T) {
	tests := []struct{ in, want float64 }{
		{0, 0},
		{360, 0},
		{-90, 270},
		{725, 5},
		{-1e-15, 0},
		{math.NaN(), 0},
	}
	for _, tt := range tests {
		got := NormalizeHeading(tt.in)
		if math.Abs(got-tt.want) > 1e-9 || got < 0 || got >= 360 {
			t.Errorf("NormalizeHeading(%v) = %v, want %v", tt.in, got, tt.want)
		}
	}
}

func TestAngleDiffShortest(t *testing.T) {
	tests := []struct{ from, to, want float64 }{
		{0, 90, 90},
		{90, 0, -90},
		{350, 10, 20},
		{10, 350, -20},
		{0, 180, -180},
	}
	for _, tt := range tests {
		if got := AngleDiff(tt.from, tt.to); math.Abs(got-tt.want) > eps {
			t.Errorf("AngleDiff(%v, %v) = %v, want %v", tt.from, tt.to, got, tt.want)
		}
	}
}

func TestBearingTo(t *testing.T) {
	origin := r2.Vec{X: 100, Y: 100}
	if got := BearingTo(origin, r2.Vec{X: 100, Y: 0}); math.Abs(got) > eps {
		t.Errorf("bearing up = %v, want 0", got)
	}
	if got := BearingTo(origin, r2.Vec{X: 200, Y: 100}); math.Abs(got-90) > eps {
		t.Errorf("bearing right = %v, want 90", got)
	}
}

func TestStepTurnsThenMoves(t *testing.T) {
	in := NewIntegrator(1000, 1000, 10, BoundaryWrap)
	p := NewPose(500, 500, 0)

	got := in.Step(p, Motion{Speed: 10, AngularRate: 90}, 1)
	if math.Abs(got.Heading-90) > eps {
		t.Fatalf("heading = %v, want 90", got.Heading)
	}
	if !vecNear(got.Position, r2.Vec{X: 510, Y: 500}, 1e-9) {
		t.Errorf("position = %v, want (510, 500)", got.Position)
	}
}

func TestStepDeltaTimeScales(t *testing.T) {
	in := NewIntegrator(1000, 1000, 10, BoundaryWrap)
	p := NewPose(500, 500, 90)

	got := in.Step(p, Motion{Speed: 60, AngularRate: 0}, 0.5)
	if !vecNear(got.Position, r2.Vec{X: 530, Y: 500}, 1e-9) {
		t.Errorf("position = %v, want (530, 500)", got.Position)
	}
}

func TestStepIgnoresNonFiniteMotion(t *testing.T) {
	in := NewIntegrator(800, 600, 10, BoundaryClamp)
	p := NewPose(400, 300, 45)

	got := in.Step(p, Motion{Speed: math.NaN(), AngularRate: math.Inf(1)}, 1)
	if got != p {
		t.Errorf("non-finite motion moved pose: %+v -> %+v", p, got)
	}
}

func TestWrapBoundaryProperty(t *testing.T) {
	const w, h = 800.0, 600.0
	in := NewIntegrator(w, h, 20, BoundaryWrap)

	speeds := []float64{0, 1, 37.5, 799.9, 800, 5000, -2500}
	headings := []float64{0, 33, 90, 180, 211, 270, 359}
	for _, s := range speeds {
		for _, hd := range headings {
			p := NewPose(790, 5, hd)
			got := in.Step(p, Motion{Speed: s}, 1)
			if got.Position.X < 0 || got.Position.X >= w || got.Position.Y < 0 || got.Position.Y >= h {
				t.Fatalf("speed %v heading %v: position %v outside arena", s, hd, got.Position)
			}
			raw := r2.Add(p.Position, r2.Scale(s, Forward(got.Heading)))
			if !congruent(raw.X, got.Position.X, w) || !congruent(raw.Y, got.Position.Y, h) {
				t.Errorf("speed %v heading %v: %v not congruent to %v", s, hd, got.Position, raw)
			}
		}
	}
}

func congruent(a, b, m float64) bool {
	d := math.Mod(a-b, m)
	if d < 0 {
		d += m
	}
	return d < 1e-6 || m-d < 1e-6
}

func TestClampBoundaryProperty(t *testing.T) {
	const w, h, r = 800.0, 600.0, 50.0
	in := NewIntegrator(w, h, r, BoundaryClamp)

	for _, s := range []float64{1e6, -1e6, 1e12} {
		for hd := 0.0; hd < 360; hd += 15 {
			got := in.Step(NewPose(400, 300, hd), Motion{Speed: s}, 1)
			if got.Position.X < r || got.Position.X > w-r || got.Position.Y < r || got.Position.Y > h-r {
				t.Fatalf("speed %v heading %v: %v escaped clamp bounds", s, hd, got.Position)
			}
		}
	}
}

func TestParseBoundary(t *testing.T) {
	if b, err := ParseBoundary("clamp"); err != nil || b != BoundaryClamp {
		t.Errorf("ParseBoundary(clamp) = %v, %v", b, err)
	}
	if b, err := ParseBoundary("wrap"); err != nil || b != BoundaryWrap {
		t.Errorf("ParseBoundary(wrap) = %v, %v", b, err)
	}
	if _, err := ParseBoundary("bounce"); err == nil {
		t.Error("ParseBoundary(bounce) should fail")
	}
}

func TestUniformJitterDeterministic(t *testing.T) {
	a := NewUniformJitter(5, 7)
	b := NewUniformJitter(5, 7)
	for i := 0; i < 100; i++ {
		va, vb := a.Sample(), b.Sample()
		if va != vb {
			t.Fatalf("sample %d differs: %v vs %v", i, va, vb)
		}
		if va < -5 || va > 5 || va != math.Trunc(va) {
			t.Fatalf("sample %d = %v, want integer in [-5, 5]", i, va)
		}
	}
}

func TestSimplexJitterBounded(t *testing.T) {
	j := NewSimplexJitter(3, 0.1, 42, 1)
	for i := 0; i < 200; i++ {
		if v := j.Sample(); math.Abs(v) > 3 {
			t.Fatalf("sample %d = %v exceeds amplitude", i, v)
		}
	}
}

func TestStepAppliesJitter(t *testing.T) {
	in := NewIntegrator(800, 600, 10, BoundaryWrap)
	in.Jitter = fixedJitter(3)

	got := in.Step(NewPose(400, 300, 359), Motion{}, 1)
	if math.Abs(got.Heading-2) > eps {
		t.Errorf("heading = %v, want 2", got.Heading)
	}
}

type fixedJitter float64

func (f fixedJitter) Sample() float64 { return float64(f) }

func TestReflectHeadingHeadOn(t *testing.T) {
	// Moving right into a body on the right: normal points back left.
	got := ReflectHeading(90, r2.Vec{X: -1, Y: 0})
	if math.Abs(got-270) > 1e-9 {
		t.Errorf("ReflectHeading = %v, want 270", got)
	}
	// Tangential motion is unchanged.
	got = ReflectHeading(0, r2.Vec{X: 1, Y: 0})
	if math.Abs(AngleDiff(got, 0)) > 1e-9 {
		t.Errorf("tangential ReflectHeading = %v, want 0", got)
	}
}

func TestResolveCollisions(t *testing.T) {
	a := NewPose(100, 100, 90)
	b := NewPose(130, 100, 270)
	c := NewPose(500, 500, 0)
	bodies := []Body{{Pose: &a, Radius: 20}, {Pose: &b, Radius: 20}, {Pose: &c, Radius: 20}}

	if n := len(ResolveCollisions(bodies)); n != 1 {
		t.Fatalf("collisions = %d, want 1", n)
	}
	if math.Abs(a.Heading-270) > 1e-9 || math.Abs(b.Heading-90) > 1e-9 {
		t.Errorf("headings after bounce = %v, %v; want 270, 90", a.Heading, b.Heading)
	}
	if c.Heading != 0 {
		t.Errorf("non-colliding body heading changed to %v", c.Heading)
	}
	if a.Position.X != 100 || b.Position.X != 130 {
		t.Error("collision resolution must not move bodies")
	}
}
