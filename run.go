package vignette

import (
	"fmt"
	"image/color"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
	"github.com/hajimehoshi/ebiten/v2/vector"
)

// statsInterval is how often the stats overlay text is refreshed, in seconds.
const statsInterval = 0.5

// hurtTint is the overlay drawn while the hurt flag is raised.
var hurtTint = color.NRGBA{R: 255, G: 32, B: 32, A: 48}

// RunConfig configures the window created by [Run].
type RunConfig struct {
	Title         string
	Width, Height int
	// ShowStats overlays FPS, TPS, scene, and stage in the top-left corner.
	ShowStats bool
	// Update, if set, runs at the start of every tick before the Director.
	// Returning an error stops the game.
	Update func() error
	// Draw renders the frame. The fade and hurt overlays are drawn on top.
	Draw func(screen *ebiten.Image, f *Frame)
}

// Run opens a window and drives d at the game's tick rate until the window
// is closed. Typed characters are delivered to d as key-down events.
func Run(d *Director, cfg RunConfig) error {
	if cfg.Width <= 0 {
		cfg.Width = 640
	}
	if cfg.Height <= 0 {
		cfg.Height = 480
	}
	ebiten.SetWindowTitle(cfg.Title)
	ebiten.SetWindowSize(cfg.Width, cfg.Height)
	return ebiten.RunGame(&game{d: d, cfg: cfg})
}

// game adapts a Director to ebiten.Game.
type game struct {
	d     *Director
	cfg   RunConfig
	chars []rune

	stats    string
	statsAge float64
}

func (g *game) Update() error {
	if g.cfg.Update != nil {
		if err := g.cfg.Update(); err != nil {
			return err
		}
	}
	g.chars = ebiten.AppendInputChars(g.chars[:0])
	for _, r := range g.chars {
		if key := keyFromRune(r); key != "" {
			g.d.KeyDown(key)
		}
	}

	dt := 1.0 / float64(ebiten.TPS())
	f := g.d.Tick(dt)

	g.statsAge += dt
	if g.cfg.ShowStats && (g.stats == "" || g.statsAge >= statsInterval) {
		g.statsAge = 0
		g.stats = fmt.Sprintf("FPS: %.1f\nTPS: %.1f\nscene: %s\nstage: %s",
			ebiten.ActualFPS(), ebiten.ActualTPS(), f.Scene, f.Stage)
	}
	return nil
}

func (g *game) Draw(screen *ebiten.Image) {
	f := g.d.Frame()
	if g.cfg.Draw != nil {
		g.cfg.Draw(screen, &f)
	}
	w, h := float32(g.cfg.Width), float32(g.cfg.Height)
	if f.Hurt {
		vector.DrawFilledRect(screen, 0, 0, w, h, hurtTint, false)
	}
	if c, ok := fadeColor(f.Fade); ok {
		vector.DrawFilledRect(screen, 0, 0, w, h, c, false)
	}
	if g.cfg.ShowStats {
		ebitenutil.DebugPrint(screen, g.stats)
	}
}

func (g *game) Layout(_, _ int) (int, int) {
	return g.cfg.Width, g.cfg.Height
}

// fadeColor converts the fade overlay to a drawable color. A transparent or
// unparsable fade reports false.
func fadeColor(f Fade) (color.NRGBA, bool) {
	if f.Opacity <= 0 {
		return color.NRGBA{}, false
	}
	c, err := ParseColor(f.Color)
	if err != nil {
		return color.NRGBA{}, false
	}
	r, g, b := c.Clamped().RGB255()
	a := min(f.Opacity, 1)
	return color.NRGBA{R: r, G: g, B: b, A: uint8(a*255 + 0.5)}, true
}
