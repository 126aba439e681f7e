package character

import (
	"math"

	"github.com/go-gl/mathgl/mgl64"
	"go.uber.org/zap"

	"github.com/milk9111/firstperson/common"
)

// minDashTuning guards the speed/distance ratio against zero.
const minDashTuning = 1.0

type DashConfig struct {
	Speed    float64
	Distance float64
}

func DefaultDashConfig() DashConfig {
	return DashConfig{Speed: 200, Distance: 1000}
}

// DashState is the playback of one dash. Playback is in curve time units and
// advances by dt*PlayRate.
type DashState struct {
	Active   bool
	Start    mgl64.Vec3
	End      mgl64.Vec3
	Playback float64
	PlayRate float64
}

// Dash moves the character from Start to End over time, shaped by a curve
// mapping playback to interpolation alpha.
type Dash struct {
	cfg    DashConfig
	curve  Curve
	mover  Movement
	logger *zap.Logger
	state  DashState

	// OnFinished runs once when a dash completes.
	OnFinished func()
}

func NewDash(cfg DashConfig, curve Curve, mover Movement, logger *zap.Logger) *Dash {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Dash{cfg: cfg, curve: curve, mover: mover, logger: logger}
}

func (d *Dash) State() DashState { return d.state }
func (d *Dash) Active() bool     { return d.state.Active }
func (d *Dash) Config() DashConfig {
	return d.cfg
}

func (d *Dash) SetConfig(cfg DashConfig) { d.cfg = cfg }
func (d *Dash) SetCurve(c Curve)         { d.curve = c }
func (d *Dash) HasCurve() bool           { return d.curve != nil }

// Trigger starts a dash along the horizontal part of velocity. It does
// nothing while a dash is running, when the character is not moving
// horizontally, or without a curve.
func (d *Dash) Trigger(velocity, position mgl64.Vec3) bool {
	if d.state.Active {
		return false
	}
	if velocity.Len() <= common.SmallNumber {
		return false
	}
	if d.curve == nil {
		d.logger.Warn("dash curve not assigned, dash ignored", zap.String("curve", "dash"))
		return false
	}
	dir, ok := common.HorizontalDirection(velocity)
	if !ok {
		return false
	}

	distance := math.Max(d.cfg.Distance, minDashTuning)
	speed := math.Max(d.cfg.Speed, minDashTuning)
	d.state = DashState{
		Active:   true,
		Start:    position,
		End:      position.Add(dir.Mul(distance)),
		Playback: 0,
		PlayRate: speed / distance,
	}
	d.logger.Debug("dash started",
		zap.Float64("distance", distance),
		zap.Float64("play_rate", d.state.PlayRate))
	return true
}

// Tick advances playback and moves the character along the dash.
func (d *Dash) Tick(dt float64) {
	if !d.state.Active {
		return
	}
	if d.curve == nil {
		d.finish()
		return
	}
	if dt < 0 {
		dt = 0
	}

	// the timeline runs from zero to the curve's last key
	hi := d.curveEnd()
	d.state.Playback = common.Clamp(d.state.Playback+dt*d.state.PlayRate, 0, hi)

	alpha := d.curve.Evaluate(d.state.Playback)
	target := common.LerpVec3(d.state.Start, d.state.End, alpha)
	if d.mover != nil {
		d.mover.MoveTo(target, true)
	}

	if d.state.Playback >= hi {
		d.finish()
	}
}

// Duration is the wall-clock length of a dash with the current tuning.
func (d *Dash) Duration() float64 {
	if d.curve == nil {
		return 0
	}
	distance := math.Max(d.cfg.Distance, minDashTuning)
	speed := math.Max(d.cfg.Speed, minDashTuning)
	return d.curveEnd() * distance / speed
}

func (d *Dash) curveEnd() float64 {
	_, hi := d.curve.TimeRange()
	return math.Max(hi, 0)
}

func (d *Dash) finish() {
	d.state.Active = false
	d.logger.Debug("dash finished")
	if d.OnFinished != nil {
		d.OnFinished()
	}
}
