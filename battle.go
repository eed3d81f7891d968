package vignette

import "math"

// BattleStage is a step of the battle choreography. Stages only move
// forward, one per tick.
type BattleStage uint8

const (
	BattleArriving        BattleStage = iota // jumping in toward the station
	BattleHeld                               // holding position, damage enabled
	BattleRotatingOut                        // turning toward the jump point
	BattleOpeningCorridor                    // aperture opening ahead of the ship
	BattleJumpingOut                         // accelerating into the aperture
	BattleDone                               // change confirmed
)

var battleStageNames = [...]string{
	"arriving", "held", "rotatingOut", "openingCorridor", "jumpingOut", "done",
}

func (s BattleStage) String() string {
	if int(s) < len(battleStageNames) {
		return battleStageNames[s]
	}
	return "unknown"
}

// BattleScene is the station encounter. The ship jumps in, holds while the
// player can take hits, and on a scene request turns toward the star, opens
// a corridor aperture, and jumps out through it.
type BattleScene struct {
	env   *sceneEnv
	cfg   BattleConfig
	stage BattleStage

	star    StarSpec
	station StationSpec

	starColor Color
	starLight Color
	preJump   Vec3
	jumpPoint Vec3

	channels  *ChannelSet
	jumpIn    *Channel[Vec3]
	fadeIn    *Channel[float64]
	orientOut *Channel[Vec3]
	aperture  *Channel[float64]
	jumpOut   *Channel[Vec3]

	orbit    *CurvedMotion
	backdrop []Vec3
	damage   CallbackHandle

	elapsed         float64
	starRotation    float64
	stationRotation float64
	stationBob      float64
}

func newBattleScene(env *sceneEnv, desc SceneDescriptor) *BattleScene {
	cfg := env.cfg.Battle
	s := &BattleScene{
		env:      env,
		cfg:      cfg,
		channels: NewChannelSet(),
	}

	s.star = battleStar(env, desc.Context.Star)
	if desc.Context.Station != nil {
		s.station = *desc.Context.Station
	}
	c, err := ParseColor(s.star.Color)
	if err != nil {
		env.logf("battle: star color: %v", err)
		c = ColorWhite
	}
	s.starColor = c
	s.starLight = Brighten(c, env.cfg.Warp.StarBrighten)

	// exit heading points from the arrival spot toward the star
	heading := forward(cfg.EndPosition, s.star.Direction.Mul(10))
	s.preJump = cfg.EndPosition.Add(heading.Mul(cfg.PreJumpDistance))
	s.jumpPoint = cfg.EndPosition.Add(heading.Mul(cfg.JumpDistance))

	delta := env.cfg.Animation.DefaultDelta
	s.jumpIn = Add(s.channels, "jumpIn", Vector, ChannelConfig[Vec3]{
		Start: cfg.StartPosition,
		End:   cfg.EndPosition,
		Delta: delta,
		Ease:  cfg.JumpInEase,
	})
	s.fadeIn = fadeInChannel(s.channels, env)
	s.orientOut = Add(s.channels, "orientOut", Vector, ChannelConfig[Vec3]{
		Start: cfg.StationPosition,
		End:   s.preJump,
		Delta: delta,
		Ease:  cfg.OrientEase,
	})
	s.aperture = Add(s.channels, "openCorridor", Number, ChannelConfig[float64]{
		Start: 0,
		End:   1,
		Delta: delta,
		Ease:  cfg.ApertureEase,
	})
	s.jumpOut = Add(s.channels, "jumpOut", Vector, ChannelConfig[Vec3]{
		Start: cfg.EndPosition,
		End:   s.jumpPoint,
		Delta: delta,
		Ease:  cfg.JumpOutEase,
	})

	s.orbit = NewCurvedMotion(ShipOrbitPath(), cfg.StartPosition, MotionOptions{Speed: cfg.OrbitSpeed})
	s.backdrop = backdrop(cfg.BackdropStars, cfg.BackdropRadius, env.rng)
	return s
}

// battleStar returns the requested star or, when none was supplied, the
// configured preset's star.
func battleStar(env *sceneEnv, spec *StarSpec) StarSpec {
	if spec != nil {
		return *spec
	}
	if preset := env.cfg.BattlePreset.Star; preset != nil {
		env.logf("battle: no star in request, using preset")
		return *preset
	}
	return StarSpec{Color: "#fff", Direction: Vec3{0, 0, -1}, Distance: 1500, Size: 3}
}

func (s *BattleScene) Type() SceneType { return SceneBattle }

func (s *BattleScene) Stage() string { return s.stage.String() }

// BattleStage returns the typed stage.
func (s *BattleScene) BattleStage() BattleStage { return s.stage }

// Channels exposes the scene's channel set.
func (s *BattleScene) Channels() *ChannelSet { return s.channels }

// JumpPoint returns where the ship leaves the scene.
func (s *BattleScene) JumpPoint() Vec3 { return s.jumpPoint }

// PreJumpPoint returns where the ship looks before opening the corridor.
func (s *BattleScene) PreJumpPoint() Vec3 { return s.preJump }

// Enter starts the arrival and binds the damage key.
func (s *BattleScene) Enter(State) {
	s.jumpIn.Start()
	s.fadeIn.Start()
	s.damage = s.env.keys.OnKey(s.env.cfg.Keys.Damage, s.env.store.Damage)
	s.env.logf("battle: stage %s", s.stage)
}

func (s *BattleScene) Tick(dt float64, st State) {
	s.elapsed += dt
	s.starRotation = math.Mod(s.starRotation+dt/10, 2*math.Pi)
	s.stationRotation = math.Mod(s.stationRotation+dt/3, 2*math.Pi)
	s.stationBob = math.Mod(s.stationBob+dt*2, 2*math.Pi)

	s.channels.Tick()
	s.orbit.SetBase(s.shipPosition())
	s.orbit.Tick()

	switch s.stage {
	case BattleArriving:
		if s.jumpIn.Finished() {
			s.setStage(BattleHeld)
		}
	case BattleHeld:
		if st.ChangePending() {
			s.orientOut.Start()
			s.setStage(BattleRotatingOut)
		}
	case BattleRotatingOut:
		if s.orientOut.Finished() {
			s.aperture.Start()
			s.setStage(BattleOpeningCorridor)
		}
	case BattleOpeningCorridor:
		if s.aperture.Finished() {
			s.jumpOut.Start()
			s.setStage(BattleJumpingOut)
		}
	case BattleJumpingOut:
		if s.jumpOut.Finished() {
			s.env.store.ConfirmSceneChange()
			s.setStage(BattleDone)
		}
	}
}

func (s *BattleScene) setStage(stage BattleStage) {
	s.env.logf("battle: stage %s", stage)
	s.stage = stage
}

// rebindKeys moves the damage binding to keys.Damage while mounted.
func (s *BattleScene) rebindKeys(keys KeyConfig) {
	s.env.cfg.Keys = keys
	s.damage.Remove()
	s.damage = s.env.keys.OnKey(keys.Damage, s.env.store.Damage)
}

// Exit unbinds the damage key.
func (s *BattleScene) Exit() {
	s.damage.Remove()
	s.damage = CallbackHandle{}
	s.channels.StopAll()
}

// shipPosition follows the jump-out channel once the aperture is open.
func (s *BattleScene) shipPosition() Vec3 {
	if s.aperture.Finished() {
		return s.jumpOut.Value()
	}
	return s.jumpIn.Value()
}

// lookTarget is the jump point once the aperture is open.
func (s *BattleScene) lookTarget() Vec3 {
	if s.aperture.Finished() {
		return s.jumpPoint
	}
	return s.orientOut.Value()
}

func (s *BattleScene) Output(f *Frame) {
	position := s.shipPosition()
	target := s.lookTarget()
	heading := forward(position, target)

	f.Ship = ShipOutput{
		Position:    position,
		Offset:      s.orbit.Offset(),
		LookTarget:  target,
		Orientation: lookAt(position, target, Up),
		EngineOn:    !s.jumpIn.Finished() || s.jumpOut.Running(),
	}

	offset := Vec3{0, s.cfg.CameraHeight, 0}.Sub(heading.Mul(s.cfg.CameraDistance))
	eye := position.Add(offset)
	f.Camera = Pose{Position: eye, Orientation: lookAt(eye, target, Up)}

	// the aperture is anchored to the arrival path, not the jump-out path
	anchor := s.jumpIn.Value()
	out := s.orientOut.Value()
	open := s.aperture.Value()
	center := anchor.Add(forward(anchor, out).Mul(s.cfg.CorridorDistance))
	f.Corridor = CorridorOutput{
		Visible:     open > 0,
		Position:    center,
		Orientation: lookAt(center, anchor, Up),
		Color:       ColorWhite,
		Distance:    s.cfg.CorridorDistance,
		Aperture:    open,
		ScaleX:      (open*6)/(1+open*2) + math.Sin(s.elapsed*5)/5,
		ScaleY:      open*2 + math.Cos(s.elapsed*2)/5,
	}

	f.Star = StarOutput{
		Visible:   true,
		Position:  s.star.Direction.Mul(s.star.Distance),
		Color:     s.starColor,
		Light:     s.starLight,
		Intensity: s.star.Size / 3,
		Radius:    s.star.Size * 100,
		Rotation:  s.starRotation,
	}
	f.Station = StationOutput{
		Visible:  true,
		Position: s.cfg.StationPosition,
		Rotation: s.stationRotation,
		Bob:      math.Sin(s.stationBob) / 2,
		Shielded: s.station.Shielded,
	}
	f.StarField = StarFieldOutput{Backdrop: s.backdrop}
	f.Ambient = s.starColor
}
