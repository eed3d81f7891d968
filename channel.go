package vignette

// DefaultDelta is the per-tick timer step used when a channel does not set one.
const DefaultDelta = 0.005

// timerEpsilon absorbs float accumulation so that, for example, ten steps of
// 0.1 finish on the tenth tick rather than the eleventh.
const timerEpsilon = 1e-9

// ChannelConfig declares one channel's trajectory and behavior.
type ChannelConfig[T any] struct {
	// Start and End bound a single-segment trajectory.
	Start, End T
	// Frames, when set, replaces Start/End with a waypoint sequence of
	// len(Frames)-1 segments.
	Frames []T
	// Delta is the timer step per tick. Zero means DefaultDelta; a negative
	// step is invalid.
	Delta float64
	// Deltas, when set, gives a step per segment and overrides Delta.
	Deltas []float64
	Ease   EaseKind
	// OnUpdate is called every tick with the new value and timer.
	OnUpdate func(value T, timer float64)
	// OnEnd is called once when the last segment completes.
	OnEnd func(value T)
}

// Channel is one independently progressing interpolation trajectory. A
// channel is idle until Start, advances one step per Tick while running,
// and finishes when its last segment's timer reaches 1.
type Channel[T any] struct {
	key  string
	kind ValueKind[T]

	start, end T
	frames     []T
	delta      float64
	deltas     []float64
	ease       EaseFunc
	onUpdate   func(T, float64)
	onEnd      func(T)

	value    T
	timer    float64
	frame    int
	running  bool
	finished bool
}

// NewChannel creates an idle channel whose value starts at the first point
// of its trajectory.
func NewChannel[T any](key string, kind ValueKind[T], cfg ChannelConfig[T]) *Channel[T] {
	c := &Channel[T]{
		key:      key,
		kind:     kind,
		start:    cfg.Start,
		end:      cfg.End,
		frames:   cfg.Frames,
		delta:    cfg.Delta,
		deltas:   cfg.Deltas,
		ease:     cfg.Ease.Func(),
		onUpdate: cfg.OnUpdate,
		onEnd:    cfg.OnEnd,
	}
	if c.delta == 0 {
		c.delta = DefaultDelta
	}
	c.value = c.origin()
	return c
}

// Key returns the channel name.
func (c *Channel[T]) Key() string { return c.key }

// Value returns the most recently computed value.
func (c *Channel[T]) Value() T { return c.value }

// Timer returns the progress through the active segment.
func (c *Channel[T]) Timer() float64 { return c.timer }

// Frame returns the index of the active segment.
func (c *Channel[T]) Frame() int { return c.frame }

// Running reports whether the channel advances on Tick.
func (c *Channel[T]) Running() bool { return c.running }

// Finished reports whether the last segment has completed since the most
// recent Start.
func (c *Channel[T]) Finished() bool { return c.finished }

// Start resumes advancement. It may be called at any time: a finished
// channel clears its finished flag and resumes from its current timer and
// segment. Call Reset first to replay the trajectory from the beginning.
func (c *Channel[T]) Start() {
	c.running = true
	c.finished = false
}

// Stop halts advancement without discarding the timer or value.
func (c *Channel[T]) Stop() {
	c.running = false
}

// Reset rewinds the channel to the beginning of its trajectory and makes it
// idle. Callbacks are not invoked.
func (c *Channel[T]) Reset() {
	c.running = false
	c.finished = false
	c.timer = 0
	c.frame = 0
	c.value = c.origin()
}

// SetStart replaces the start of a single-segment trajectory.
func (c *Channel[T]) SetStart(v T) { c.start = v }

// SetEnd replaces the end of a single-segment trajectory.
func (c *Channel[T]) SetEnd(v T) { c.end = v }

// SetFrames replaces the waypoint sequence.
func (c *Channel[T]) SetFrames(frames []T) { c.frames = frames }

// NextValue returns the waypoint the active segment is heading to. The
// boolean is false for single-segment channels or a segment beyond the data.
func (c *Channel[T]) NextValue() (T, bool) {
	if c.frames == nil || c.frame+1 >= len(c.frames) {
		var zero T
		return zero, false
	}
	return c.frames[c.frame+1], true
}

// Tick advances a running channel by one step.
func (c *Channel[T]) Tick() {
	if !c.running {
		return
	}

	from, to, ok := c.segment()
	step, okStep := c.step()

	c.timer += step
	if c.timer >= 1-timerEpsilon {
		c.timer = 1
	}

	if ok && okStep {
		c.value = c.kind.Interpolate(from, to, min(c.timer, 1), c.ease)
	} else {
		c.value = c.kind.Invalid
	}
	if c.onUpdate != nil {
		c.onUpdate(c.value, c.timer)
	}

	if c.timer < 1 {
		return
	}
	if c.frames != nil && c.frame < len(c.frames)-2 {
		c.frame++
		c.timer = 0
		return
	}
	c.running = false
	c.finished = true
	if c.onEnd != nil {
		c.onEnd(c.value)
	}
}

// segment returns the endpoints of the active segment.
func (c *Channel[T]) segment() (from, to T, ok bool) {
	if c.frames == nil {
		return c.start, c.end, true
	}
	if c.frame+1 >= len(c.frames) {
		return from, to, false
	}
	return c.frames[c.frame], c.frames[c.frame+1], true
}

// step returns the timer increment for the active segment. A negative
// delta, or a per-segment delta list that is too short, leaves the channel
// stalled at its timer and reporting the invalid value.
func (c *Channel[T]) step() (float64, bool) {
	if c.deltas == nil {
		if c.delta <= 0 {
			return 0, false
		}
		return c.delta, true
	}
	if c.frame >= len(c.deltas) || c.deltas[c.frame] <= 0 {
		return 0, false
	}
	return c.deltas[c.frame], true
}

func (c *Channel[T]) origin() T {
	if c.frames != nil {
		if len(c.frames) == 0 {
			return c.kind.Invalid
		}
		return c.frames[0]
	}
	return c.start
}
