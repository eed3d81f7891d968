package vignette

import (
	"fmt"
	"math"
	"strings"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/lucasb-eyer/go-colorful"
	"github.com/tanema/gween/ease"
	"gopkg.in/yaml.v3"
)

// EaseFunc maps normalized progress t in [0, 1] to eased progress.
// Every EaseFunc returned by this package satisfies f(0) == 0 and f(1) == 1.
type EaseFunc func(t float64) float64

// EaseKind selects one of the polynomial easing curves.
type EaseKind uint8

const (
	Linear         EaseKind = iota // no acceleration
	EaseInQuad                     // accelerating from zero velocity
	EaseOutQuad                    // decelerating to zero velocity
	EaseInOutQuad                  // acceleration until halfway, then deceleration
	EaseInCubic                    // accelerating from zero velocity
	EaseOutCubic                   // decelerating to zero velocity
	EaseInOutCubic                 // acceleration until halfway, then deceleration
	EaseInQuart                    // accelerating from zero velocity
	EaseOutQuart                   // decelerating to zero velocity
	EaseInOutQuart                 // acceleration until halfway, then deceleration
	EaseInQuint                    // accelerating from zero velocity
	EaseOutQuint                   // decelerating to zero velocity
	EaseInOutQuint                 // acceleration until halfway, then deceleration
	easeKindCount
)

var easeNames = [easeKindCount]string{
	"linear",
	"easeInQuad", "easeOutQuad", "easeInOutQuad",
	"easeInCubic", "easeOutCubic", "easeInOutCubic",
	"easeInQuart", "easeOutQuart", "easeInOutQuart",
	"easeInQuint", "easeOutQuint", "easeInOutQuint",
}

var easeTweens = [easeKindCount]ease.TweenFunc{
	ease.Linear,
	ease.InQuad, ease.OutQuad, ease.InOutQuad,
	ease.InCubic, ease.OutCubic, ease.InOutCubic,
	ease.InQuart, ease.OutQuart, ease.InOutQuart,
	ease.InQuint, ease.OutQuint, ease.InOutQuint,
}

// easeFuncs are Penner's polynomial curves at unit begin, change, and
// duration, evaluated in float64.
var easeFuncs = [easeKindCount]EaseFunc{
	linear,
	inQuad, outQuad, inOutQuad,
	inCubic, outCubic, inOutCubic,
	inQuart, outQuart, inOutQuart,
	inQuint, outQuint, inOutQuint,
}

func linear(t float64) float64 { return t }

func inQuad(t float64) float64 { return t * t }
func outQuad(t float64) float64 { return -t * (t - 2) }
func inOutQuad(t float64) float64 {
	t *= 2
	if t < 1 {
		return 0.5 * t * t
	}
	t--
	return -0.5 * (t*(t-2) - 1)
}

func inCubic(t float64) float64 { return t * t * t }
func outCubic(t float64) float64 {
	t--
	return t*t*t + 1
}
func inOutCubic(t float64) float64 {
	t *= 2
	if t < 1 {
		return 0.5 * t * t * t
	}
	t -= 2
	return 0.5 * (t*t*t + 2)
}

func inQuart(t float64) float64 { return t * t * t * t }
func outQuart(t float64) float64 {
	t--
	return -(t*t*t*t - 1)
}
func inOutQuart(t float64) float64 {
	t *= 2
	if t < 1 {
		return 0.5 * t * t * t * t
	}
	t -= 2
	return -0.5 * (t*t*t*t - 2)
}

func inQuint(t float64) float64 { return t * t * t * t * t }
func outQuint(t float64) float64 {
	t--
	return t*t*t*t*t + 1
}
func inOutQuint(t float64) float64 {
	t *= 2
	if t < 1 {
		return 0.5 * t * t * t * t * t
	}
	t -= 2
	return 0.5 * (t*t*t*t*t + 2)
}

// Tween returns the gween function for k, for hosts that drive their own
// gween.Tween alongside channels. gween evaluates in float32. Unknown kinds
// return ease.Linear.
func (k EaseKind) Tween() ease.TweenFunc {
	if k >= easeKindCount {
		return ease.Linear
	}
	return easeTweens[k]
}

// Func returns the easing curve for k. Unknown kinds fall back to Linear.
func (k EaseKind) Func() EaseFunc {
	if k >= easeKindCount {
		return linear
	}
	return easeFuncs[k]
}

func (k EaseKind) String() string {
	if k >= easeKindCount {
		return fmt.Sprintf("EaseKind(%d)", uint8(k))
	}
	return easeNames[k]
}

// EaseKinds returns every defined kind in declaration order.
func EaseKinds() []EaseKind {
	kinds := make([]EaseKind, 0, easeKindCount)
	for k := Linear; k < easeKindCount; k++ {
		kinds = append(kinds, k)
	}
	return kinds
}

// ParseEase resolves a curve name such as "easeOutCubic". Matching is
// case-insensitive and the "ease" prefix is optional ("outCubic").
func ParseEase(name string) (EaseKind, error) {
	want := strings.ToLower(strings.TrimSpace(name))
	for k, n := range easeNames {
		n = strings.ToLower(n)
		if want == n || "ease"+want == n {
			return EaseKind(k), nil
		}
	}
	return Linear, fmt.Errorf("unknown easing %q", name)
}

// MarshalText implements encoding.TextMarshaler.
func (k EaseKind) MarshalText() ([]byte, error) {
	return []byte(k.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (k *EaseKind) UnmarshalText(text []byte) error {
	v, err := ParseEase(string(text))
	if err != nil {
		return err
	}
	*k = v
	return nil
}

// UnmarshalYAML implements yaml.Unmarshaler.
func (k *EaseKind) UnmarshalYAML(node *yaml.Node) error {
	var name string
	if err := node.Decode(&name); err != nil {
		return err
	}
	return k.UnmarshalText([]byte(name))
}

// InterpolateNumber blends a toward b by f(t).
func InterpolateNumber(a, b, t float64, f EaseFunc) float64 {
	return a + (b-a)*f(t)
}

// InterpolateVector3 blends a toward b component-wise by f(t).
func InterpolateVector3(a, b Vec3, t float64, f EaseFunc) Vec3 {
	e := f(t)
	return Vec3{
		a[0] + (b[0]-a[0])*e,
		a[1] + (b[1]-a[1])*e,
		a[2] + (b[2]-a[2])*e,
	}
}

// InterpolateQuaternion rotates a toward b along the shortest arc by f(t).
func InterpolateQuaternion(a, b Quat, t float64, f EaseFunc) Quat {
	return mgl64.QuatSlerp(a, b, f(t))
}

// InterpolateColor mixes a toward b in linear RGB, which keeps the midpoint
// from darkening the way a raw sRGB channel blend does.
func InterpolateColor(a, b Color, t float64, f EaseFunc) Color {
	return a.BlendLinearRgb(b, f(t))
}

// ParseColor parses a "#rgb" or "#rrggbb" hex string.
func ParseColor(hex string) (Color, error) {
	c, err := colorful.Hex(hex)
	if err != nil {
		return Color{}, fmt.Errorf("parse color: %w", err)
	}
	return c, nil
}

// Brighten raises the CIE-Lab lightness of c by 18 points per unit of
// amount and clamps the result back into sRGB.
func Brighten(c Color, amount float64) Color {
	l, a, b := c.Lab()
	return colorful.Lab(l+0.18*amount, a, b).Clamped()
}

// ValueKind bundles the interpolator for a channel value type together with
// the value reported when a trajectory is misconfigured.
type ValueKind[T any] struct {
	Name        string
	Interpolate func(a, b T, t float64, f EaseFunc) T
	Invalid     T
}

var nan = math.NaN()

// Built-in value kinds.
var (
	Number = ValueKind[float64]{
		Name:        "number",
		Interpolate: InterpolateNumber,
		Invalid:     nan,
	}
	Vector = ValueKind[Vec3]{
		Name:        "vector",
		Interpolate: InterpolateVector3,
		Invalid:     Vec3{nan, nan, nan},
	}
	Quaternion = ValueKind[Quat]{
		Name:        "quaternion",
		Interpolate: InterpolateQuaternion,
		Invalid:     Quat{W: nan, V: Vec3{nan, nan, nan}},
	}
	ColorKind = ValueKind[Color]{
		Name:        "color",
		Interpolate: InterpolateColor,
		Invalid:     Color{R: nan, G: nan, B: nan},
	}
)
