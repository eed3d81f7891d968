package vignette

import (
	"math"
	"math/rand/v2"
	"testing"
	"time"
)

const tol = 1e-6

func approx(a, b, eps float64) bool {
	return math.Abs(a-b) <= eps
}

func approxVec(a, b Vec3, eps float64) bool {
	return approx(a[0], b[0], eps) && approx(a[1], b[1], eps) && approx(a[2], b[2], eps)
}

func approxColor(a, b Color, eps float64) bool {
	return approx(a.R, b.R, eps) && approx(a.G, b.G, eps) && approx(a.B, b.B, eps)
}

// manualClock collects scheduled callbacks so tests fire them explicitly.
type manualClock struct {
	pending []func()
	delays  []time.Duration
}

func (m *manualClock) after(d time.Duration, f func()) {
	m.pending = append(m.pending, f)
	m.delays = append(m.delays, d)
}

func (m *manualClock) fire(t *testing.T) {
	t.Helper()
	if len(m.pending) == 0 {
		t.Fatal("no pending timer to fire")
	}
	f := m.pending[0]
	m.pending = m.pending[1:]
	f()
}

const testDT = 1.0 / 60

func testRand() *rand.Rand {
	return rand.New(rand.NewPCG(1, 2))
}

// newTestDirector builds a director with a fixed seed, a manual damage
// clock, and logging discarded.
func newTestDirector(t *testing.T, cfg Config) (*Director, *manualClock) {
	t.Helper()
	clock := &manualClock{}
	d, err := NewDirector(cfg,
		WithRand(testRand()),
		WithStoreOptions(WithAfterFunc(clock.after)),
		WithLogOutput(nil),
	)
	if err != nil {
		t.Fatalf("NewDirector: %v", err)
	}
	return d, clock
}

// tickUntil ticks d until cond holds, failing after limit ticks.
func tickUntil(t *testing.T, d *Director, limit int, cond func(Frame) bool) Frame {
	t.Helper()
	for i := 0; i < limit; i++ {
		f := d.Tick(testDT)
		if cond(f) {
			return f
		}
	}
	t.Fatalf("condition not met after %d ticks (scene=%s stage=%s)", limit, d.Frame().Scene, d.Frame().Stage)
	return Frame{}
}
