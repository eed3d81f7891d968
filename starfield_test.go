package vignette

import "testing"

func TestStarFieldInitialLayers(t *testing.T) {
	f := NewStarField(100, 300, testRand())
	if len(f.Fast()) != 100 || len(f.Slow()) != 300 {
		t.Fatalf("layers = %d/%d, want 100/300", len(f.Fast()), len(f.Slow()))
	}
	for _, s := range f.Fast() {
		if s.X() < -200 || s.X() > 200 || s.Y() < -200 || s.Y() > 200 || s.Z() < 200 || s.Z() > 1200 {
			t.Fatalf("fast star out of range: %v", s)
		}
	}
	for _, s := range f.Slow() {
		if s.X() < -1500 || s.X() > 1500 || s.Y() < -1500 || s.Y() > 1500 || s.Z() < 1000 || s.Z() > 2000 {
			t.Fatalf("slow star out of range: %v", s)
		}
	}
}

func TestStarFieldMovesAndCulls(t *testing.T) {
	f := NewStarField(0, 0, testRand())
	f.fast = append(f.fast, Vec3{1, 1, -5}, Vec3{2, 2, 0}, Vec3{3, 3, 100})
	f.slow = append(f.slow, Vec3{4, 4, -6}, Vec3{5, 5, 30})

	f.Tick(9)
	fast, slow := f.Fast(), f.Slow()
	if len(fast) != 2 || fast[0] != (Vec3{2, 2, -9}) || fast[1] != (Vec3{3, 3, 91}) {
		t.Errorf("fast = %v", fast)
	}
	if len(slow) != 1 || slow[0] != (Vec3{5, 5, 27}) {
		t.Errorf("slow = %v", slow)
	}
	if f.Speed() != 9 {
		t.Errorf("speed = %v", f.Speed())
	}
}

func TestStarFieldRefillsToCapacity(t *testing.T) {
	f := NewStarField(50, 50, testRand())
	for i := 0; i < 500; i++ {
		f.Tick(10)
		if len(f.Fast()) > 50 || len(f.Slow()) > 50 {
			t.Fatalf("tick %d: layers exceed capacity: %d/%d", i, len(f.Fast()), len(f.Slow()))
		}
		if n := len(f.Lights()); n > starLights || n > len(f.Fast()) {
			t.Fatalf("tick %d: %d lights for %d stars", i, n, len(f.Fast()))
		}
	}
	if len(f.Fast()) == 0 {
		t.Error("fast layer drained")
	}
}

func TestBackdropRadius(t *testing.T) {
	pts := backdrop(200, 8000, testRand())
	if len(pts) != 200 {
		t.Fatalf("len = %d", len(pts))
	}
	for _, p := range pts {
		// jitter adds at most 1000 on x and y and 500 on z
		if l := p.Len(); l < 8000-1600 || l > 8000+1600 {
			t.Fatalf("point %v at distance %v", p, l)
		}
	}
}
