package vignette

import (
	"math"
	"testing"
)

func TestCatmullRomPassesThroughControlPoints(t *testing.T) {
	pts := []Vec3{{0, 0, 0}, {1, 2, 0}, {3, 1, 1}, {4, -1, 2}}
	for _, kind := range []CurveKind{CurveCentripetal, CurveChordal, CurveUniform} {
		open := NewCatmullRom(pts, false, kind)
		for i, p := range pts {
			got := open.Point(float64(i) / float64(len(pts)-1))
			if !approxVec(got, p, 1e-9) {
				t.Errorf("open kind %d: point %d = %v, want %v", kind, i, got, p)
			}
		}
		closed := NewCatmullRom(pts, true, kind)
		for i, p := range pts {
			got := closed.Point(float64(i) / float64(len(pts)))
			if !approxVec(got, p, 1e-9) {
				t.Errorf("closed kind %d: point %d = %v, want %v", kind, i, got, p)
			}
		}
	}
}

func TestCatmullRomClosedLoops(t *testing.T) {
	c := ShipOrbitPath()
	start, end := c.Point(0), c.Point(1)
	if !approxVec(start, end, 1e-9) {
		t.Errorf("closed curve does not loop: %v vs %v", start, end)
	}
	if !approxVec(c.PointAt(0), c.PointAt(1), 1e-6) {
		t.Errorf("arc-length ends differ: %v vs %v", c.PointAt(0), c.PointAt(1))
	}
	if c.Length() <= 0 {
		t.Errorf("length = %v", c.Length())
	}
}

func TestCatmullRomDegenerate(t *testing.T) {
	if p := NewCatmullRom(nil, true, CurveChordal).Point(0.5); p != (Vec3{}) {
		t.Errorf("empty curve point = %v", p)
	}
	one := NewCatmullRom([]Vec3{{1, 2, 3}}, false, CurveChordal)
	if p := one.PointAt(0.7); p != (Vec3{1, 2, 3}) {
		t.Errorf("single-point curve = %v", p)
	}
	// repeated points must not produce NaN
	rep := NewCatmullRom([]Vec3{{0, 0, 0}, {0, 0, 0}, {1, 0, 0}}, false, CurveCentripetal)
	for i := 0; i <= 10; i++ {
		p := rep.Point(float64(i) / 10)
		if math.IsNaN(p[0]) || math.IsNaN(p[1]) || math.IsNaN(p[2]) {
			t.Fatalf("NaN at t=%v", float64(i)/10)
		}
	}
}

func TestCatmullRomArcLengthSpacing(t *testing.T) {
	// a straight line with uneven control spacing
	c := NewCatmullRom([]Vec3{{0, 0, 0}, {1, 0, 0}, {10, 0, 0}}, false, CurveChordal)
	mid := c.PointAt(0.5)
	if !approx(mid.X(), c.Length()/2, 0.1) {
		t.Errorf("PointAt(0.5).X = %v, want about %v", mid.X(), c.Length()/2)
	}
}

func TestCurvedMotionParameter(t *testing.T) {
	tests := []struct {
		speed float64
		ticks int
	}{
		{1, 0},
		{1, 1},
		{1, 5000},
		{2, 1234},
		{2, 3001},
	}
	for _, tt := range tests {
		m := NewCurvedMotion(ShipOrbitPath(), Vec3{}, MotionOptions{Speed: tt.speed})
		for i := 0; i < tt.ticks; i++ {
			m.Tick()
		}
		want := math.Mod(float64(tt.ticks)*curvedMotionStep*tt.speed, 1)
		if got := m.Parameter(); !approx(got, want, 1e-9) {
			t.Errorf("speed %v after %d ticks: parameter = %v, want %v", tt.speed, tt.ticks, got, want)
		}
	}
}

func TestCurvedMotionOffsetAndMapPoint(t *testing.T) {
	curve := ShipOrbitPath()
	base := Vec3{10, 0, 0}
	m := NewCurvedMotion(curve, base, MotionOptions{
		Speed:    2,
		MapPoint: func(v Vec3) Vec3 { return v.Mul(0.5) },
	})
	if m.Rate() != 2*curvedMotionStep {
		t.Errorf("rate = %v", m.Rate())
	}
	for i := 0; i < 100; i++ {
		m.Tick()
	}
	// the last Tick sampled the parameter before its own advance
	want := curve.PointAt(99 * m.Rate()).Mul(0.5)
	if !approxVec(m.Offset(), want, 1e-9) {
		t.Errorf("offset = %v, want %v", m.Offset(), want)
	}
	if !approxVec(m.Position(), base.Add(want), 1e-9) {
		t.Errorf("position = %v, want %v", m.Position(), base.Add(want))
	}

	m.SetBase(Vec3{})
	if !approxVec(m.Position(), want, 1e-9) {
		t.Errorf("position after SetBase = %v", m.Position())
	}
}

func TestCurvedMotionSetParameter(t *testing.T) {
	m := NewCurvedMotion(ShipOrbitPath(), Vec3{}, MotionOptions{})
	m.SetParameter(0.9999)
	m.Tick()
	if got := m.Parameter(); !approx(got, math.Mod(0.9999+curvedMotionStep, 1), 1e-12) {
		t.Errorf("parameter = %v", got)
	}
	m.SetParameter(-0.25)
	if got := m.Parameter(); !approx(got, 0.75, 1e-12) {
		t.Errorf("negative parameter wrapped to %v, want 0.75", got)
	}
}
