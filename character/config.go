package character

import (
	"errors"
	"fmt"
	"math"
)

type Config struct {
	Dash           DashConfig
	Jetpack        JetpackConfig
	Grab           GrabConfig
	BaseTurnRate   float64
	BaseLookUpRate float64
}

func DefaultConfig() Config {
	return Config{
		Dash:           DefaultDashConfig(),
		Jetpack:        DefaultJetpackConfig(),
		Grab:           DefaultGrabConfig(),
		BaseTurnRate:   45,
		BaseLookUpRate: 45,
	}
}

// Validate reports every field that is out of range.
func (c Config) Validate() error {
	var errs []error
	check := func(name string, v float64, ok bool) {
		if !ok || math.IsNaN(v) {
			errs = append(errs, fmt.Errorf("character: %s out of range: %v", name, v))
		}
	}
	check("dash.speed", c.Dash.Speed, c.Dash.Speed >= minDashTuning)
	check("dash.distance", c.Dash.Distance, c.Dash.Distance >= minDashTuning)
	check("jetpack.max_time", c.Jetpack.MaxTime, c.Jetpack.MaxTime >= 0)
	check("jetpack.boost_force", c.Jetpack.BoostForce, c.Jetpack.BoostForce >= 0)
	check("jetpack.active_air_control", c.Jetpack.ActiveAirControl, c.Jetpack.ActiveAirControl >= 0)
	check("jetpack.idle_air_control", c.Jetpack.IdleAirControl, c.Jetpack.IdleAirControl >= 0)
	check("gravity_gun.trace_range", c.Grab.TraceRange, c.Grab.TraceRange > 0)
	check("gravity_gun.trace_radius", c.Grab.TraceRadius, c.Grab.TraceRadius >= 0)
	check("gravity_gun.firing_force", c.Grab.FiringForce, c.Grab.FiringForce >= 0)
	return errors.Join(errs...)
}

func (c Config) clamped() Config {
	c.Dash.Speed = math.Max(c.Dash.Speed, minDashTuning)
	c.Dash.Distance = math.Max(c.Dash.Distance, minDashTuning)
	c.Jetpack.MaxTime = math.Max(c.Jetpack.MaxTime, 0)
	return c
}
