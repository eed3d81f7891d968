package vignette

import "math"

// WarpStage is a step of the warp-travel choreography.
type WarpStage uint8

const (
	WarpEntering      WarpStage = iota // fading in from the previous scene
	WarpIdle                           // cruising, waiting for a request
	WarpTransitioning                  // star, speed, and corridor channels running
	WarpDone                           // change confirmed, waiting to be unmounted
)

var warpStageNames = [...]string{"entering", "idle", "transitioning", "done"}

func (s WarpStage) String() string {
	if int(s) < len(warpStageNames) {
		return warpStageNames[s]
	}
	return "unknown"
}

// WarpScene is the corridor-travel scene: the ship idles in a star stream
// until a change is requested, then the stream speeds up, the corridor end
// rushes in tinted toward the destination star, and the scene hands off.
type WarpScene struct {
	env   *sceneEnv
	cfg   WarpConfig
	stage WarpStage

	channels *ChannelSet
	star     *Channel[Color]
	jump     *Channel[float64]
	speedUp  *Channel[float64]
	fadeIn   *Channel[float64]

	field   *StarField
	orbit   *CurvedMotion
	camera  Pose
	ambient Color
	elapsed float64
}

func newWarpScene(env *sceneEnv, _ SceneDescriptor) *WarpScene {
	cfg := env.cfg.Warp
	s := &WarpScene{
		env:      env,
		cfg:      cfg,
		channels: NewChannelSet(),
	}
	delta := env.cfg.Animation.DefaultDelta
	s.star = Add(s.channels, "star", ColorKind, ChannelConfig[Color]{
		Start: ColorWhite,
		End:   ColorWhite,
		Delta: delta,
		Ease:  cfg.StarEase,
	})
	s.jump = Add(s.channels, "jump", Number, ChannelConfig[float64]{
		Start: cfg.CorridorStart,
		End:   cfg.CorridorEnd,
		Delta: delta,
		Ease:  cfg.CorridorEase,
	})
	s.speedUp = Add(s.channels, "speedUp", Number, ChannelConfig[float64]{
		Start: cfg.Speed,
		End:   cfg.Speed * cfg.SpeedMultiplier,
		Delta: delta,
		Ease:  cfg.SpeedEase,
	})
	s.fadeIn = fadeInChannel(s.channels, env)

	if c, err := ParseColor(cfg.Lighting); err == nil {
		s.ambient = c
	} else {
		env.logf("warp: lighting: %v", err)
	}

	s.field = NewStarField(cfg.FastStars, cfg.SlowStars, env.rng)
	scale := cfg.OrbitScale
	s.orbit = NewCurvedMotion(ShipOrbitPath(), cfg.ShipPosition, MotionOptions{
		Speed:    cfg.OrbitSpeed,
		MapPoint: func(v Vec3) Vec3 { return v.Mul(scale) },
	})
	return s
}

func (s *WarpScene) Type() SceneType { return SceneWarp }

func (s *WarpScene) Stage() string { return s.stage.String() }

// WarpStage returns the typed stage.
func (s *WarpScene) WarpStage() WarpStage { return s.stage }

// Channels exposes the scene's channel set.
func (s *WarpScene) Channels() *ChannelSet { return s.channels }

// Enter places the camera behind the ship facing down the corridor and, when
// arriving from another scene, fades the overlay out.
func (s *WarpScene) Enter(st State) {
	s.camera = Pose{Position: s.cfg.CameraPosition, Orientation: yaw(math.Pi)}
	if st.PreviousScene.Pending() {
		s.fadeIn.Start()
		s.setStage(WarpEntering)
		return
	}
	s.setStage(WarpIdle)
}

func (s *WarpScene) Tick(dt float64, st State) {
	s.elapsed += dt
	s.channels.Tick()
	s.field.Tick(s.speedUp.Value())
	s.orbit.Tick()

	switch s.stage {
	case WarpEntering:
		if st.ChangePending() {
			s.beginTransition(st)
		} else if s.fadeIn.Finished() {
			s.setStage(WarpIdle)
		}
	case WarpIdle:
		if st.ChangePending() {
			s.beginTransition(st)
		}
	case WarpTransitioning:
		if s.star.Finished() && s.speedUp.Finished() && s.jump.Finished() {
			s.env.store.SetFade(FadeOpacity(1))
			s.env.store.ConfirmSceneChange()
			s.setStage(WarpDone)
		}
	}
}

// beginTransition tints the corridor toward the destination star and starts
// the jump.
func (s *WarpScene) beginTransition(st State) {
	target := ColorWhite
	if spec := st.NextScene.Context.Star; spec != nil {
		c, err := ParseColor(spec.Color)
		if err != nil {
			s.env.logf("warp: next star color: %v", err)
		} else {
			target = Brighten(c, s.cfg.StarBrighten)
		}
	}
	s.star.SetEnd(target)
	s.star.Start()
	s.speedUp.Start()
	s.jump.Start()
	s.setStage(WarpTransitioning)
}

func (s *WarpScene) setStage(stage WarpStage) {
	s.env.logf("warp: stage %s", stage)
	s.stage = stage
}

func (s *WarpScene) Exit() {
	s.channels.StopAll()
}

func (s *WarpScene) Output(f *Frame) {
	f.Camera = s.camera
	f.Ship = ShipOutput{
		Position:    s.cfg.ShipPosition,
		Offset:      s.orbit.Offset(),
		Orientation: Quat{W: 1},
		EngineOn:    !s.jump.Finished(),
	}
	f.Ship.LookTarget = f.Ship.Position.Add(Vec3{0, 0, 1})

	color := s.star.Value()
	distance := s.jump.Value()
	f.Corridor = CorridorOutput{
		Visible:     true,
		Position:    Vec3{0, 0, distance},
		Orientation: yaw(math.Pi),
		Color:       color,
		Distance:    distance,
		Aperture:    1,
		ScaleX:      2 + math.Sin(s.elapsed*5)/5,
		ScaleY:      2 + math.Cos(s.elapsed*2)/5,
	}
	f.StarField = StarFieldOutput{
		Speed:  s.field.Speed(),
		Fast:   s.field.Fast(),
		Slow:   s.field.Slow(),
		Lights: s.field.Lights(),
	}
	f.Star = StarOutput{}
	f.Station = StationOutput{}
	f.Ambient = s.ambient
}
