package character

import (
	"github.com/go-gl/mathgl/mgl64"
	"go.uber.org/zap"

	"github.com/milk9111/firstperson/common"
)

type JetpackConfig struct {
	MaxTime          float64
	BoostForce       float64
	ActiveAirControl float64
	IdleAirControl   float64
}

func DefaultJetpackConfig() JetpackConfig {
	return JetpackConfig{
		MaxTime:          2,
		BoostForce:       120,
		ActiveAirControl: 5,
		IdleAirControl:   1,
	}
}

type JetpackState struct {
	Active  bool
	Fuel    float64
	MaxFuel float64
}

// Jetpack burns fuel (seconds of thrust) while active and each tick sets
// the character's vertical velocity from the boost curve.
type Jetpack struct {
	cfg    JetpackConfig
	curve  Curve
	mover  Movement
	logger *zap.Logger

	active bool
	fuel   float64
}

func NewJetpack(cfg JetpackConfig, curve Curve, mover Movement, logger *zap.Logger) *Jetpack {
	if logger == nil {
		logger = zap.NewNop()
	}
	if cfg.MaxTime < 0 {
		cfg.MaxTime = 0
	}
	return &Jetpack{cfg: cfg, curve: curve, mover: mover, logger: logger, fuel: cfg.MaxTime}
}

func (j *Jetpack) State() JetpackState {
	return JetpackState{Active: j.active, Fuel: j.fuel, MaxFuel: j.cfg.MaxTime}
}

func (j *Jetpack) Active() bool  { return j.active }
func (j *Jetpack) Fuel() float64 { return j.fuel }
func (j *Jetpack) Config() JetpackConfig {
	return j.cfg
}
func (j *Jetpack) SetCurve(c Curve) { j.curve = c }
func (j *Jetpack) HasCurve() bool   { return j.curve != nil }

// SetConfig swaps tuning; remaining fuel is clamped to the new tank.
func (j *Jetpack) SetConfig(cfg JetpackConfig) {
	if cfg.MaxTime < 0 {
		cfg.MaxTime = 0
	}
	j.cfg = cfg
	j.fuel = common.Clamp(j.fuel, 0, cfg.MaxTime)
}

// Toggle refills the tank when reset is set, then switches the jetpack on
// or off and updates the air-control multiplier to match.
func (j *Jetpack) Toggle(reset, activate bool) {
	if reset {
		j.fuel = j.cfg.MaxTime
	}
	if j.active != activate {
		j.logger.Debug("jetpack toggled",
			zap.Bool("active", activate),
			zap.Float64("fuel", j.fuel))
	}
	j.active = activate

	if j.mover != nil {
		if j.active {
			j.mover.SetAirControl(j.cfg.ActiveAirControl)
		} else {
			j.mover.SetAirControl(j.cfg.IdleAirControl)
		}
	}
}

// Tick burns dt seconds of fuel and launches the character upward. The
// jetpack switches itself off, without refilling, once the tank is empty.
func (j *Jetpack) Tick(dt float64) {
	if !j.active {
		return
	}
	if dt < 0 {
		dt = 0
	}
	j.fuel = common.Clamp(j.fuel-dt, 0, j.cfg.MaxTime)

	if j.curve != nil {
		progress := common.NormalizeToRange(j.cfg.MaxTime-j.fuel, 0, j.cfg.MaxTime)
		boost := j.curve.Evaluate(progress) * j.cfg.BoostForce
		if j.mover != nil {
			j.mover.Launch(mgl64.Vec3{0, 0, boost}, false, true)
		}
	} else {
		j.logger.Warn("jetpack boost curve not assigned, no boost applied", zap.String("curve", "jetpack_boost"))
	}

	if j.fuel <= 0 {
		j.Toggle(false, false)
	}
}
