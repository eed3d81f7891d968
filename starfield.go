package vignette

import (
	"math"
	"math/rand/v2"
)

// starCullZ is the depth at which a streaming star has passed the camera.
const starCullZ = -5

// starLights is how many fast stars are sampled as point lights each tick.
const starLights = 5

// StarField streams two layers of points toward the camera along -Z. Fast
// stars sit close to the corridor; slow stars fill the far background and
// move at a third of the speed.
type StarField struct {
	fast, slow       []Vec3
	fastCap, slowCap int
	lights           []Vec3
	speed            float64
	rng              *rand.Rand
}

// NewStarField creates a field pre-filled to capacity. A nil rng uses a
// randomly seeded source.
func NewStarField(fast, slow int, rng *rand.Rand) *StarField {
	if rng == nil {
		rng = rand.New(rand.NewPCG(rand.Uint64(), rand.Uint64()))
	}
	f := &StarField{
		fast:    make([]Vec3, 0, fast),
		slow:    make([]Vec3, 0, slow),
		fastCap: fast,
		slowCap: slow,
		lights:  make([]Vec3, 0, starLights),
		rng:     rng,
	}
	f.fast = f.fill(f.fast, fast, true)
	f.slow = f.fill(f.slow, slow, false)
	return f
}

// Tick moves every star by speed (slow stars by speed/3), drops the ones
// behind the camera, and sometimes tops both layers back up.
func (f *StarField) Tick(speed float64) {
	f.speed = speed
	f.fast = advance(f.fast, speed)
	f.slow = advance(f.slow, speed/3)

	if f.rng.Float64() > 0.5 {
		f.fast = f.fill(f.fast, f.fastCap-len(f.fast), true)
		f.slow = f.fill(f.slow, f.slowCap-len(f.slow), false)
	}

	f.lights = f.lights[:0]
	if n := len(f.fast); n > 0 {
		for range min(starLights, n) {
			f.lights = append(f.lights, f.fast[f.rng.IntN(n)])
		}
	}
}

// advance culls and moves stars in place.
func advance(stars []Vec3, speed float64) []Vec3 {
	kept := stars[:0]
	for _, s := range stars {
		if s.Z() <= starCullZ {
			continue
		}
		s[2] -= speed
		kept = append(kept, s)
	}
	return kept
}

func (f *StarField) fill(stars []Vec3, n int, fast bool) []Vec3 {
	for range n {
		stars = append(stars, f.spawn(fast))
	}
	return stars
}

func (f *StarField) spawn(fast bool) Vec3 {
	if fast {
		return Vec3{f.between(-200, 200), f.between(-200, 200), f.between(200, 1200)}
	}
	return Vec3{f.between(-1500, 1500), f.between(-1500, 1500), f.between(1000, 2000)}
}

func (f *StarField) between(lo, hi float64) float64 {
	return lo + f.rng.Float64()*(hi-lo)
}

// Fast returns the near layer. The slice is reused by the next Tick.
func (f *StarField) Fast() []Vec3 { return f.fast }

// Slow returns the far layer. The slice is reused by the next Tick.
func (f *StarField) Slow() []Vec3 { return f.slow }

// Lights returns the fast stars sampled as point lights on the last Tick.
func (f *StarField) Lights() []Vec3 { return f.lights }

// Speed returns the speed passed to the last Tick.
func (f *StarField) Speed() float64 { return f.speed }

// backdrop scatters n static points around a sphere of the given radius,
// with a positive random jitter on each axis.
func backdrop(n int, radius float64, rng *rand.Rand) []Vec3 {
	pts := make([]Vec3, n)
	for i := range pts {
		theta := 2 * math.Pi * rng.Float64()
		phi := math.Acos(2*rng.Float64() - 1)
		pts[i] = Vec3{
			radius*math.Cos(theta)*math.Sin(phi) + rng.Float64()*1000,
			radius*math.Sin(theta)*math.Sin(phi) + rng.Float64()*1000,
			radius*math.Cos(phi) + rng.Float64()*500,
		}
	}
	return pts
}
