package vignette

import (
	"math/rand/v2"

	"github.com/go-gl/mathgl/mgl64"
)

// Scene is one mounted piece of choreography. The Director creates a fresh
// Scene each time the store's current scene is replaced, calls Enter once,
// Tick every frame, and Exit when the scene is replaced.
type Scene interface {
	// Type returns the scene kind this instance renders.
	Type() SceneType
	// Stage names the current choreography stage, for logs and frames.
	Stage() string
	// Enter is called once with the state the scene was mounted from.
	Enter(st State)
	// Tick advances the scene's channels and evaluates its stage gate.
	Tick(dt float64, st State)
	// Exit releases key bindings and other subscriptions.
	Exit()
	// Output writes the scene's contribution to f.
	Output(f *Frame)
}

// Pose is a position plus orientation.
type Pose struct {
	Position    Vec3 `json:"position"`
	Orientation Quat `json:"orientation"`
}

// ShipOutput is the player ship's render state.
type ShipOutput struct {
	Position Vec3 `json:"position"`
	// Offset is the idle orbit displacement, added to Position by renderers.
	Offset      Vec3 `json:"offset"`
	LookTarget  Vec3 `json:"lookTarget"`
	Orientation Quat `json:"orientation"`
	EngineOn    bool `json:"engineOn"`
}

// StarOutput is the scene's light-emitting star.
type StarOutput struct {
	Visible   bool    `json:"visible"`
	Position  Vec3    `json:"position"`
	Color     Color   `json:"color"`
	Light     Color   `json:"light"`
	Intensity float64 `json:"intensity"`
	Radius    float64 `json:"radius"`
	Rotation  float64 `json:"rotation"`
}

// CorridorOutput is the warp corridor or jump aperture.
type CorridorOutput struct {
	Visible     bool    `json:"visible"`
	Position    Vec3    `json:"position"`
	Orientation Quat    `json:"orientation"`
	Color       Color   `json:"color"`
	Distance    float64 `json:"distance"`
	Aperture    float64 `json:"aperture"`
	ScaleX      float64 `json:"scaleX"`
	ScaleY      float64 `json:"scaleY"`
}

// StarFieldOutput holds point layers. Slices alias scene buffers and are
// only valid until the next Tick.
type StarFieldOutput struct {
	Speed    float64 `json:"speed"`
	Fast     []Vec3  `json:"fast,omitempty"`
	Slow     []Vec3  `json:"slow,omitempty"`
	Lights   []Vec3  `json:"lights,omitempty"`
	Backdrop []Vec3  `json:"backdrop,omitempty"`
}

// StationOutput is the battle station.
type StationOutput struct {
	Visible  bool    `json:"visible"`
	Position Vec3    `json:"position"`
	Rotation float64 `json:"rotation"`
	// Bob is the vertical displacement of the idle bob.
	Bob      float64 `json:"bob"`
	Shielded bool    `json:"shielded"`
}

// Frame is everything a renderer needs for one tick.
type Frame struct {
	Tick    uint64    `json:"tick"`
	Elapsed float64   `json:"elapsed"`
	Scene   SceneType `json:"scene"`
	Stage   string    `json:"stage"`
	Pending SceneType `json:"pending"`

	Camera    Pose            `json:"camera"`
	Ship      ShipOutput      `json:"ship"`
	Star      StarOutput      `json:"star"`
	Corridor  CorridorOutput  `json:"corridor"`
	StarField StarFieldOutput `json:"starField"`
	Station   StationOutput   `json:"station"`
	Ambient   Color           `json:"ambient"`

	Fade Fade `json:"fade"`
	Hurt bool `json:"hurt"`
}

// Clone returns a copy of f whose star slices do not alias scene buffers.
func (f Frame) Clone() Frame {
	f.StarField.Fast = cloneVecs(f.StarField.Fast)
	f.StarField.Slow = cloneVecs(f.StarField.Slow)
	f.StarField.Lights = cloneVecs(f.StarField.Lights)
	f.StarField.Backdrop = cloneVecs(f.StarField.Backdrop)
	return f
}

func cloneVecs(v []Vec3) []Vec3 {
	if v == nil {
		return nil
	}
	return append([]Vec3(nil), v...)
}

// SceneChangeEvent records one replacement of the current scene.
type SceneChangeEvent struct {
	From SceneDescriptor
	To   SceneDescriptor
	Seq  uint64
}

// EventSink is the interface for optional ECS integration. When set on a
// Director, every frame and scene change is forwarded to it.
type EventSink interface {
	EmitFrame(f Frame)
	EmitSceneChange(ev SceneChangeEvent)
}

// keyRebinder is implemented by scenes that bind keys of their own, so a
// new KeyConfig reaches them without a remount.
type keyRebinder interface {
	rebindKeys(keys KeyConfig)
}

// sceneEnv is what a scene may touch outside itself.
type sceneEnv struct {
	store *Store
	keys  *Keyboard
	cfg   Config
	rng   *rand.Rand
	logf  func(format string, args ...any)
}

// newScene builds the scene for a descriptor. Unknown types yield nil.
func newScene(env *sceneEnv, desc SceneDescriptor) Scene {
	switch desc.Type {
	case SceneWarp:
		return newWarpScene(env, desc)
	case SceneBattle:
		return newBattleScene(env, desc)
	}
	return nil
}

// fadeInChannel declares the 1→0 overlay fade every scene plays on entry.
func fadeInChannel(set *ChannelSet, env *sceneEnv) *Channel[float64] {
	return Add(set, "fadeIn", Number, ChannelConfig[float64]{
		Start: 1,
		End:   0,
		Delta: env.cfg.Animation.FadeDelta,
		OnUpdate: func(v float64, _ float64) {
			env.store.SetFade(FadeOpacity(v))
		},
	})
}

// yaw returns a rotation of angle radians about +Y.
func yaw(angle float64) Quat {
	return mgl64.QuatRotate(angle, Up)
}
