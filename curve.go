package vignette

import (
	"math"
	"sort"
)

// CurveKind selects the Catmull-Rom knot parameterization.
type CurveKind uint8

const (
	CurveCentripetal CurveKind = iota // alpha 0.5, no cusps or self-intersections
	CurveChordal                      // alpha 1, follows the control polygon closely
	CurveUniform                      // alpha 0, classic Catmull-Rom
)

// curveDivisions is the resolution of the arc-length table.
const curveDivisions = 200

// CatmullRom is a Catmull-Rom spline through a set of control points.
type CatmullRom struct {
	points  []Vec3
	closed  bool
	kind    CurveKind
	lengths []float64 // cumulative arc length at curveDivisions+1 samples
}

// NewCatmullRom builds a spline through points. A closed spline joins the
// last point back to the first.
func NewCatmullRom(points []Vec3, closed bool, kind CurveKind) *CatmullRom {
	c := &CatmullRom{
		points: append([]Vec3(nil), points...),
		closed: closed,
		kind:   kind,
	}
	c.lengths = c.arcLengths(curveDivisions)
	return c
}

// Length returns the approximate arc length of the curve.
func (c *CatmullRom) Length() float64 {
	return c.lengths[len(c.lengths)-1]
}

// Point samples the curve at parameter t in [0, 1]. Parameter spacing
// follows the control points, not distance.
func (c *CatmullRom) Point(t float64) Vec3 {
	n := len(c.points)
	switch n {
	case 0:
		return Vec3{}
	case 1:
		return c.points[0]
	}

	segments := n - 1
	if c.closed {
		segments = n
	}
	p := float64(segments) * t
	i := int(math.Floor(p))
	w := p - float64(i)

	if c.closed {
		i = ((i % n) + n) % n
	} else if i >= n-1 {
		i, w = n-2, 1
	} else if i < 0 {
		i, w = 0, 0
	}

	var p0, p3 Vec3
	if c.closed || i > 0 {
		p0 = c.points[(i-1+n)%n]
	} else {
		// extrapolate before the first point
		p0 = c.points[0].Mul(2).Sub(c.points[1])
	}
	p1 := c.points[i%n]
	p2 := c.points[(i+1)%n]
	if c.closed || i+2 < n {
		p3 = c.points[(i+2)%n]
	} else {
		// extrapolate past the last point
		p3 = c.points[n-1].Mul(2).Sub(c.points[n-2])
	}

	var out Vec3
	if c.kind == CurveUniform {
		for k := 0; k < 3; k++ {
			out[k] = cubicEval(uniformCoeffs(p0[k], p1[k], p2[k], p3[k]), w)
		}
		return out
	}

	exp := 0.25 // centripetal: (d^2)^0.25
	if c.kind == CurveChordal {
		exp = 0.5
	}
	dt0 := math.Pow(distSqr(p0, p1), exp)
	dt1 := math.Pow(distSqr(p1, p2), exp)
	dt2 := math.Pow(distSqr(p2, p3), exp)
	// safety for repeated points
	if dt1 < 1e-4 {
		dt1 = 1
	}
	if dt0 < 1e-4 {
		dt0 = dt1
	}
	if dt2 < 1e-4 {
		dt2 = dt1
	}
	for k := 0; k < 3; k++ {
		out[k] = cubicEval(nonuniformCoeffs(p0[k], p1[k], p2[k], p3[k], dt0, dt1, dt2), w)
	}
	return out
}

// PointAt samples the curve at fraction u of its arc length, so equal
// steps in u cover equal distances.
func (c *CatmullRom) PointAt(u float64) Vec3 {
	return c.Point(c.uToT(u))
}

// uToT maps an arc-length fraction to the curve parameter.
func (c *CatmullRom) uToT(u float64) float64 {
	arc := c.lengths
	last := len(arc) - 1
	total := arc[last]
	if total == 0 {
		return u
	}
	target := u * total

	// largest i with arc[i] <= target
	i := sort.Search(len(arc), func(i int) bool { return arc[i] > target }) - 1
	if i < 0 {
		return 0
	}
	if i >= last {
		return 1
	}
	if arc[i] == target {
		return float64(i) / float64(last)
	}
	segLen := arc[i+1] - arc[i]
	frac := (target - arc[i]) / segLen
	return (float64(i) + frac) / float64(last)
}

func (c *CatmullRom) arcLengths(divisions int) []float64 {
	lengths := make([]float64, divisions+1)
	prev := c.Point(0)
	sum := 0.0
	for d := 1; d <= divisions; d++ {
		cur := c.Point(float64(d) / float64(divisions))
		sum += cur.Sub(prev).Len()
		lengths[d] = sum
		prev = cur
	}
	return lengths
}

func distSqr(a, b Vec3) float64 {
	return a.Sub(b).LenSqr()
}

// cubic coefficients c0 + c1*w + c2*w^2 + c3*w^3 for a Hermite segment.
func hermite(x0, x1, t0, t1 float64) [4]float64 {
	return [4]float64{
		x0,
		t0,
		-3*x0 + 3*x1 - 2*t0 - t1,
		2*x0 - 2*x1 + t0 + t1,
	}
}

func uniformCoeffs(x0, x1, x2, x3 float64) [4]float64 {
	return hermite(x1, x2, 0.5*(x2-x0), 0.5*(x3-x1))
}

func nonuniformCoeffs(x0, x1, x2, x3, dt0, dt1, dt2 float64) [4]float64 {
	t1 := (x1-x0)/dt0 - (x2-x0)/(dt0+dt1) + (x2-x1)/dt1
	t2 := (x2-x1)/dt1 - (x3-x1)/(dt1+dt2) + (x3-x2)/dt2
	return hermite(x1, x2, t1*dt1, t2*dt1)
}

func cubicEval(c [4]float64, w float64) float64 {
	return c[0] + w*(c[1]+w*(c[2]+w*c[3]))
}

// ShipOrbitPath returns the closed figure-eight a ship idles along.
func ShipOrbitPath() *CatmullRom {
	return NewCatmullRom([]Vec3{
		{0, 0, 0},
		{0.5, 0.5, 0},
		{1, 0, 0},
		{0.5, -0.5, 0},
		{-0.5, 0.5, 0},
		{-1, 0, 0},
		{-0.5, -0.5, 0},
	}, true, CurveChordal)
}

// --- Curved motion ---

// curvedMotionStep is the path advance per tick at Speed 1.
const curvedMotionStep = 0.0005

// MotionOptions tunes a CurvedMotion.
type MotionOptions struct {
	// Speed multiplies the base advance rate. Zero means 1.
	Speed float64
	// MapPoint, when set, transforms each sampled curve point before it is
	// added to the base position.
	MapPoint func(Vec3) Vec3
}

// CurvedMotion moves an offset around a closed curve forever, one fixed
// step per tick. The path parameter wraps modulo 1.
type CurvedMotion struct {
	curve    *CatmullRom
	base     Vec3
	rate     float64
	mapPoint func(Vec3) Vec3

	origin float64 // parameter at the last reset
	ticks  uint64

	offset   Vec3
	position Vec3
}

// NewCurvedMotion creates a motion anchored at base.
func NewCurvedMotion(curve *CatmullRom, base Vec3, opts MotionOptions) *CurvedMotion {
	speed := opts.Speed
	if speed == 0 {
		speed = 1
	}
	return &CurvedMotion{
		curve:    curve,
		base:     base,
		rate:     curvedMotionStep * speed,
		mapPoint: opts.MapPoint,
		position: base,
	}
}

// Tick samples the curve at the current parameter, updates Offset and
// Position, then advances the parameter.
func (m *CurvedMotion) Tick() {
	p := m.curve.PointAt(m.Parameter())
	if m.mapPoint != nil {
		p = m.mapPoint(p)
	}
	m.offset = p
	m.position = m.base.Add(p)
	m.ticks++
}

// Parameter returns the current path parameter in [0, 1). It is computed
// from the tick count so it does not drift.
func (m *CurvedMotion) Parameter() float64 {
	p := math.Mod(m.origin+float64(m.ticks)*m.rate, 1)
	if p < 0 {
		p++
	}
	return p
}

// SetParameter moves the motion to parameter p (wrapped into [0, 1)).
func (m *CurvedMotion) SetParameter(p float64) {
	m.origin = p
	m.ticks = 0
}

// Rate returns the parameter advance per tick.
func (m *CurvedMotion) Rate() float64 { return m.rate }

// SetBase moves the anchor the offset is added to.
func (m *CurvedMotion) SetBase(v Vec3) {
	m.base = v
	m.position = v.Add(m.offset)
}

// Offset returns the last sampled (and mapped) curve point.
func (m *CurvedMotion) Offset() Vec3 { return m.offset }

// Position returns base plus the last offset.
func (m *CurvedMotion) Position() Vec3 { return m.position }
