package vignette

import (
	"sync"
	"time"
)

// DefaultFlashDuration is how long the hurt flag stays raised after Damage.
const DefaultFlashDuration = 250 * time.Millisecond

// Fade is the full-screen overlay drawn over the scene.
type Fade struct {
	Color   string  `json:"color"`
	Opacity float64 `json:"opacity"`
}

// FadeUpdate is a partial Fade. Nil fields are left unchanged.
type FadeUpdate struct {
	Color   *string
	Opacity *float64
}

// FadeOpacity returns an update that changes only the opacity.
func FadeOpacity(v float64) FadeUpdate { return FadeUpdate{Opacity: &v} }

// FadeColor returns an update that changes only the color.
func FadeColor(c string) FadeUpdate { return FadeUpdate{Color: &c} }

// State is an immutable snapshot of the scene store.
type State struct {
	Hurt          bool            `json:"hurt"`
	Fade          Fade            `json:"fade"`
	Scene         SceneDescriptor `json:"scene"`
	NextScene     SceneDescriptor `json:"nextScene"`
	PreviousScene SceneDescriptor `json:"previousScene"`
	// SceneSeq increases each time Scene is replaced.
	SceneSeq uint64 `json:"sceneSeq"`
}

// ChangePending reports whether a scene change has been requested and not
// yet confirmed.
func (s State) ChangePending() bool { return s.NextScene.Pending() }

// InitialState is the state a store starts with: warp scene, transparent
// white fade.
func InitialState() State {
	return State{
		Fade:  Fade{Color: "#fff", Opacity: 0},
		Scene: SceneDescriptor{Type: SceneWarp},
	}
}

// --- Reducers ---
//
// Each reducer takes a snapshot and returns the next one. Scene descriptors
// are assigned wholesale; the fade is merged field by field.

func reduceRequest(s State, next SceneDescriptor) State {
	s.NextScene = next
	return s
}

func reduceConfirm(s State) State {
	if !s.NextScene.Pending() {
		return s
	}
	s.PreviousScene = s.Scene
	s.Scene = s.NextScene
	s.NextScene = SceneDescriptor{}
	s.SceneSeq++
	return s
}

func reduceChange(s State, scene SceneDescriptor) State {
	s.Scene = scene
	s.SceneSeq++
	return s
}

func reduceFade(s State, u FadeUpdate) State {
	if u.Color != nil {
		s.Fade.Color = *u.Color
	}
	if u.Opacity != nil {
		s.Fade.Opacity = *u.Opacity
	}
	return s
}

func reduceHurt(s State, hurt bool) State {
	s.Hurt = hurt
	return s
}

// --- Store ---

// AfterFunc schedules f to run once after d. The default wraps
// time.AfterFunc.
type AfterFunc func(d time.Duration, f func())

// StoreOption configures a Store.
type StoreOption func(*Store)

// WithFlashDuration overrides DefaultFlashDuration.
func WithFlashDuration(d time.Duration) StoreOption {
	return func(s *Store) { s.flash = d }
}

// WithAfterFunc replaces the real-time scheduler used by Damage.
func WithAfterFunc(fn AfterFunc) StoreOption {
	return func(s *Store) { s.after = fn }
}

// WithInitialState replaces InitialState.
func WithInitialState(st State) StoreOption {
	return func(s *Store) { s.state = st }
}

// Store is the single holder of scene, fade, and hurt state. All writes go
// through its actions; readers take snapshots with State.
//
// Actions are safe to call from any goroutine. The damage reset fires on a
// timer goroutine; everything else is expected to run on the tick.
type Store struct {
	mu          sync.Mutex
	state       State
	flash       time.Duration
	after       AfterFunc
	pendingHurt int

	subs registry[func(prev, next State)]
}

// NewStore creates a store holding InitialState.
func NewStore(opts ...StoreOption) *Store {
	s := &Store{
		state: InitialState(),
		flash: DefaultFlashDuration,
		after: func(d time.Duration, f func()) { time.AfterFunc(d, f) },
	}
	for _, o := range opts {
		o(s)
	}
	return s
}

// State returns a snapshot of the current state.
func (s *Store) State() State {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state
}

// Subscribe registers fn to be called after every mutation with the states
// before and after it. Subscribers run synchronously on the mutating
// goroutine, outside the store lock.
func (s *Store) Subscribe(fn func(prev, next State)) CallbackHandle {
	s.mu.Lock()
	id := s.subs.add(0, fn)
	s.mu.Unlock()
	return CallbackHandle{id: id, remove: func(id uint32) {
		s.mu.Lock()
		s.subs.remove(id)
		s.mu.Unlock()
	}}
}

// update applies reduce under the lock and notifies subscribers.
func (s *Store) update(reduce func(State) State) (prev, next State) {
	s.mu.Lock()
	prev = s.state
	s.state = reduce(prev)
	next = s.state
	var fns []func(prev, next State)
	if s.subs.len() > 0 {
		fns = s.subs.snapshot(nil)
	}
	s.mu.Unlock()

	for _, fn := range fns {
		fn(prev, next)
	}
	return prev, next
}

// RequestSceneChange records a pending scene. The current scene is left
// untouched; the active scene's choreography decides when to confirm.
func (s *Store) RequestSceneChange(t SceneType, ctx SceneContext) {
	s.update(func(st State) State {
		return reduceRequest(st, SceneDescriptor{Type: t, Context: ctx})
	})
}

// ConfirmSceneChange promotes the pending scene to current and records the
// old one as previous. With nothing pending it changes nothing and returns
// false.
func (s *Store) ConfirmSceneChange() bool {
	prev, next := s.update(reduceConfirm)
	return prev.SceneSeq != next.SceneSeq
}

// ChangeScene replaces the current scene immediately, bypassing the
// request/confirm protocol.
func (s *Store) ChangeScene(t SceneType, ctx SceneContext) {
	s.update(func(st State) State {
		return reduceChange(st, SceneDescriptor{Type: t, Context: ctx})
	})
}

// SetFade merges the given fields into the fade overlay.
func (s *Store) SetFade(u FadeUpdate) {
	s.update(func(st State) State { return reduceFade(st, u) })
}

// Damage raises the hurt flag and schedules its reset after the flash
// duration of wall-clock time. Every call schedules its own reset; the flag
// drops only once the last outstanding reset has fired.
func (s *Store) Damage() {
	var flash time.Duration
	s.update(func(st State) State {
		s.pendingHurt++
		flash = s.flash
		return reduceHurt(st, true)
	})
	s.after(flash, s.clearHurt)
}

// SetFlashDuration changes the flash length for later Damage calls.
func (s *Store) SetFlashDuration(d time.Duration) {
	s.mu.Lock()
	s.flash = d
	s.mu.Unlock()
}

func (s *Store) clearHurt() {
	s.update(func(st State) State {
		if s.pendingHurt > 0 {
			s.pendingHurt--
		}
		if s.pendingHurt > 0 {
			return st
		}
		return reduceHurt(st, false)
	})
}
