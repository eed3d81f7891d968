package vignette

import (
	"fmt"
	"io"
	"math/rand/v2"
	"os"
	"sync"
)

// Frame hook priorities. Hooks run in ascending order after the scene has
// ticked.
const (
	PriorityScene   = 0
	PriorityEffects = 2
)

// DirectorOption configures a Director.
type DirectorOption func(*Director)

// WithLogOutput redirects debug logging. The default is os.Stderr.
func WithLogOutput(w io.Writer) DirectorOption {
	return func(d *Director) { d.logOut = w }
}

// WithRand sets the random source used for star placement.
func WithRand(r *rand.Rand) DirectorOption {
	return func(d *Director) { d.rng = r }
}

// WithStoreOptions passes options through to the Director's Store.
func WithStoreOptions(opts ...StoreOption) DirectorOption {
	return func(d *Director) { d.storeOpts = append(d.storeOpts, opts...) }
}

// Director is the composition root. It owns the scene store, the keyboard,
// and the mounted Scene, and produces one Frame per Tick.
//
// A Director is not safe for concurrent use; drive it from a single loop.
type Director struct {
	cfg       Config
	store     *Store
	keys      *Keyboard
	rng       *rand.Rand
	storeOpts []StoreOption

	scene   Scene
	seq     uint64
	mounted bool

	frame   Frame
	tick    uint64
	elapsed float64

	hooks   registry[func(*Frame)]
	hookBuf []func(*Frame)
	globals []CallbackHandle

	injectQueue []string
	testRunner  *TestRunner

	// SnapshotDir is where Snapshot writes frame files.
	SnapshotDir   string
	snapshotQueue []string

	sink EventSink

	// logMu guards debug and logOut. Store subscribers, and so logging,
	// also run on the damage timer goroutine.
	logMu  sync.Mutex
	debug  bool
	logOut io.Writer
}

// NewDirector validates cfg and creates a Director whose store starts on
// cfg.InitialScene with a transparent white fade.
func NewDirector(cfg Config, opts ...DirectorOption) (*Director, error) {
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("new director: %w", err)
	}
	d := &Director{
		cfg:         cfg,
		keys:        NewKeyboard(),
		logOut:      os.Stderr,
		SnapshotDir: "snapshots",
	}
	for _, o := range opts {
		o(d)
	}
	if d.rng == nil {
		d.rng = rand.New(rand.NewPCG(rand.Uint64(), rand.Uint64()))
	}

	initial := InitialState()
	initial.Scene = SceneDescriptor{Type: cfg.InitialScene}
	if cfg.InitialScene == SceneBattle {
		initial.Scene.Context = cfg.BattlePreset
	}
	storeOpts := append([]StoreOption{
		WithInitialState(initial),
		WithFlashDuration(cfg.Damage.FlashDuration),
	}, d.storeOpts...)
	d.store = NewStore(storeOpts...)
	d.store.Subscribe(d.observe)
	d.bindGlobalKeys()
	return d, nil
}

// Store returns the scene store.
func (d *Director) Store() *Store { return d.store }

// Keyboard returns the keyboard scenes and hosts subscribe to.
func (d *Director) Keyboard() *Keyboard { return d.keys }

// Config returns the active configuration.
func (d *Director) Config() Config { return d.cfg }

// Scene returns the mounted scene, or nil before the first Tick.
func (d *Director) Scene() Scene { return d.scene }

// Frame returns the most recently built frame.
func (d *Director) Frame() Frame { return d.frame }

// KeyDown delivers a key-down event from the host.
func (d *Director) KeyDown(key string) {
	d.keys.Dispatch(KeyEvent{Key: key})
}

// SetEventSink attaches an external consumer of frames and scene changes.
// Pass nil to detach.
func (d *Director) SetEventSink(sink EventSink) {
	d.sink = sink
}

// OnFrame registers fn to run after every Tick with the new frame. Hooks
// run in ascending priority; equal priorities run in registration order.
func (d *Director) OnFrame(priority int, fn func(*Frame)) CallbackHandle {
	id := d.hooks.add(priority, fn)
	return CallbackHandle{id: id, remove: d.hooks.remove}
}

// ApplyConfig swaps in a new configuration. Key bindings, including those
// of the mounted scene, and the flash duration change at once; scene tuning
// applies from the next mount.
func (d *Director) ApplyConfig(cfg Config) error {
	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("apply config: %w", err)
	}
	d.cfg = cfg
	d.store.SetFlashDuration(cfg.Damage.FlashDuration)
	d.bindGlobalKeys()
	if r, ok := d.scene.(keyRebinder); ok {
		r.rebindKeys(cfg.Keys)
	}
	d.logf("config applied")
	return nil
}

func (d *Director) bindGlobalKeys() {
	for _, h := range d.globals {
		h.Remove()
	}
	d.globals = append(d.globals[:0],
		d.keys.OnKey(d.cfg.Keys.Warp, func() {
			d.store.RequestSceneChange(SceneWarp, SceneContext{})
		}),
		d.keys.OnKey(d.cfg.Keys.Battle, func() {
			d.store.RequestSceneChange(SceneBattle, d.cfg.BattlePreset)
		}),
	)
}

// Tick advances the whole vignette by one frame of dt seconds and returns
// the resulting frame.
func (d *Director) Tick(dt float64) Frame {
	if d.testRunner != nil {
		d.testRunner.step(d)
	}
	d.processInjectedKey()

	st := d.store.State()
	if !d.mounted || st.SceneSeq != d.seq {
		d.mount(st)
	}
	if d.scene != nil {
		d.scene.Tick(dt, st)
	}
	d.tick++
	d.elapsed += dt

	d.buildFrame()
	d.hookBuf = d.hooks.snapshot(d.hookBuf)
	for _, fn := range d.hookBuf {
		fn(&d.frame)
	}
	if d.sink != nil {
		d.sink.EmitFrame(d.frame)
	}
	d.flushSnapshots()
	return d.frame
}

// mount replaces the active scene with one built from st.Scene.
func (d *Director) mount(st State) {
	if d.scene != nil {
		d.scene.Exit()
	}
	env := &sceneEnv{
		store: d.store,
		keys:  d.keys,
		cfg:   d.cfg,
		rng:   d.rng,
		logf:  d.logf,
	}
	d.scene = newScene(env, st.Scene)
	d.seq = st.SceneSeq
	d.mounted = true
	d.logf("mount %s (seq %d)", st.Scene.Type, st.SceneSeq)
	if d.scene != nil {
		d.scene.Enter(st)
	}
}

func (d *Director) buildFrame() {
	st := d.store.State()
	f := Frame{
		Tick:    d.tick,
		Elapsed: d.elapsed,
		Scene:   st.Scene.Type,
		Pending: st.NextScene.Type,
		Fade:    st.Fade,
		Hurt:    st.Hurt,
	}
	if d.scene != nil {
		f.Stage = d.scene.Stage()
		d.scene.Output(&f)
	}
	d.frame = f
}

// observe forwards scene replacements to the sink and logs store
// transitions in debug mode.
func (d *Director) observe(prev, next State) {
	if next.SceneSeq != prev.SceneSeq {
		d.logf("scene %s -> %s", prev.Scene.Type, next.Scene.Type)
		if d.sink != nil {
			d.sink.EmitSceneChange(SceneChangeEvent{From: prev.Scene, To: next.Scene, Seq: next.SceneSeq})
		}
	}
	if next.NextScene.Type != prev.NextScene.Type && next.NextScene.Pending() {
		d.logf("request %s", next.NextScene.Type)
	}
	if next.Hurt != prev.Hurt {
		d.logf("hurt %t", next.Hurt)
	}
}
