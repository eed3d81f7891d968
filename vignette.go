package vignette

import (
	"github.com/go-gl/mathgl/mgl64"
	"github.com/lucasb-eyer/go-colorful"
)

// Vec3 is the 3D vector used for positions, directions, and offsets.
type Vec3 = mgl64.Vec3

// Quat is a rotation quaternion.
type Quat = mgl64.Quat

// Color is an sRGB color with components in [0, 1].
type Color = colorful.Color

// Up is the world up axis.
var Up = Vec3{0, 1, 0}

// ColorWhite is the neutral star and fade color.
var ColorWhite = Color{R: 1, G: 1, B: 1}

// SceneType names a scene. The zero value means no scene.
type SceneType string

const (
	SceneNone   SceneType = ""       // nothing pending / nothing recorded
	SceneWarp   SceneType = "warp"   // warp-travel corridor
	SceneBattle SceneType = "battle" // station encounter
)

// Valid reports whether t is a known scene or none.
func (t SceneType) Valid() bool {
	switch t {
	case SceneNone, SceneWarp, SceneBattle:
		return true
	}
	return false
}

func (t SceneType) String() string {
	if t == SceneNone {
		return "none"
	}
	return string(t)
}

// StarSpec describes the star a battle scene is lit by.
type StarSpec struct {
	Color     string  `yaml:"color" json:"color"`
	Direction Vec3    `yaml:"direction" json:"direction"`
	Distance  float64 `yaml:"distance" json:"distance"`
	Size      float64 `yaml:"size" json:"size"`
}

// StationSpec describes the battle station.
type StationSpec struct {
	Shielded bool `yaml:"shielded" json:"shielded"`
}

// SceneContext is the parameter bag a scene is constructed from. Nil fields
// mean the parameter was not supplied.
type SceneContext struct {
	Star    *StarSpec    `yaml:"star,omitempty" json:"star,omitempty"`
	Station *StationSpec `yaml:"station,omitempty" json:"station,omitempty"`
}

// SceneDescriptor identifies a scene and the context it is built from.
// Descriptors are replaced wholesale, never edited in place.
type SceneDescriptor struct {
	Type    SceneType    `json:"type"`
	Context SceneContext `json:"context"`
}

// Pending reports whether the descriptor names a scene.
func (d SceneDescriptor) Pending() bool {
	return d.Type != SceneNone
}

// forward returns the unit direction from a toward b. Coincident points
// yield the zero vector.
func forward(a, b Vec3) Vec3 {
	d := b.Sub(a)
	if d.Len() == 0 {
		return Vec3{}
	}
	return d.Normalize()
}

// lookAt returns the orientation that turns an object at eye so its -Z axis
// faces center, keeping +Y as close to up as possible.
func lookAt(eye, center, up Vec3) Quat {
	f := forward(eye, center)
	if f.Len() == 0 {
		return mgl64.QuatIdent()
	}
	r := f.Cross(up)
	if r.Len() < 1e-9 {
		// looking straight along up
		r = f.Cross(Vec3{0, 0, 1})
	}
	r = r.Normalize()
	u := r.Cross(f)
	return mgl64.Mat4ToQuat(mgl64.Mat3FromCols(r, u, f.Mul(-1)).Mat4()).Normalize()
}
