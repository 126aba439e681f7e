package character

import (
	"testing"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
)

func TestJetpackFuelSequence(t *testing.T) {
	mover := &fakeMovement{}
	j := NewJetpack(JetpackConfig{MaxTime: 2, BoostForce: 120, ActiveAirControl: 5, IdleAirControl: 1}, constCurve(1), mover, nil)

	j.Toggle(false, true)

	want := []struct {
		fuel   float64
		active bool
	}{
		{1, true},
		{0, false},
		{0, false},
	}
	for i, w := range want {
		j.Tick(1)
		st := j.State()
		if st.Fuel != w.fuel || st.Active != w.active {
			t.Fatalf("tick %d: fuel=%v active=%v, want fuel=%v active=%v", i+1, st.Fuel, st.Active, w.fuel, w.active)
		}
	}
	if len(mover.launches) != 2 {
		t.Fatalf("launches = %d, want 2", len(mover.launches))
	}
	if mover.airControl != 1 {
		t.Fatalf("air control = %v, want idle multiplier after burnout", mover.airControl)
	}
}

func TestJetpackLaunchOverridesVertical(t *testing.T) {
	mover := &fakeMovement{}
	// Boost ramps with elapsed fraction of the tank.
	j := NewJetpack(JetpackConfig{MaxTime: 2, BoostForce: 120, ActiveAirControl: 5, IdleAirControl: 1}, linearCurve{hi: 1}, mover, nil)
	j.Toggle(false, true)

	j.Tick(0.5)
	j.Tick(0.5)

	want := []float64{30, 60}
	for i, l := range mover.launches {
		if l.overrideXY || !l.overrideZ {
			t.Fatalf("launch %d override flags = %v/%v, want false/true", i, l.overrideXY, l.overrideZ)
		}
		if l.velocity.X() != 0 || l.velocity.Y() != 0 || l.velocity.Z() != want[i] {
			t.Fatalf("launch %d velocity = %v, want (0,0,%v)", i, l.velocity, want[i])
		}
	}
}

func TestJetpackToggle(t *testing.T) {
	tests := []struct {
		name      string
		reset     bool
		activate  bool
		wantFuel  float64
		wantAir   float64
		wantState bool
	}{
		{"activate keeps fuel", false, true, 0.5, 5, true},
		{"deactivate keeps fuel", false, false, 0.5, 1, false},
		{"reset and deactivate refills", true, false, 2, 1, false},
		{"reset and activate refills", true, true, 2, 5, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mover := &fakeMovement{}
			j := NewJetpack(DefaultJetpackConfig(), constCurve(1), mover, nil)
			j.Toggle(false, true)
			j.Tick(1.5)

			j.Toggle(tt.reset, tt.activate)

			if j.Fuel() != tt.wantFuel {
				t.Fatalf("fuel = %v, want %v", j.Fuel(), tt.wantFuel)
			}
			if j.Active() != tt.wantState {
				t.Fatalf("active = %v, want %v", j.Active(), tt.wantState)
			}
			if mover.airControl != tt.wantAir {
				t.Fatalf("air control = %v, want %v", mover.airControl, tt.wantAir)
			}
		})
	}
}

func TestJetpackInactiveTickNoop(t *testing.T) {
	mover := &fakeMovement{}
	j := NewJetpack(DefaultJetpackConfig(), constCurve(1), mover, nil)
	j.Tick(1)
	if j.Fuel() != 2 || len(mover.launches) != 0 {
		t.Fatalf("inactive tick changed state: fuel=%v launches=%d", j.Fuel(), len(mover.launches))
	}
}

func TestJetpackFuelNeverNegative(t *testing.T) {
	j := NewJetpack(DefaultJetpackConfig(), constCurve(1), &fakeMovement{}, nil)
	j.Toggle(false, true)
	j.Tick(10)
	if j.Fuel() != 0 {
		t.Fatalf("fuel = %v, want 0", j.Fuel())
	}
	if j.Active() {
		t.Fatalf("expected jetpack off once empty")
	}
}

func TestJetpackMissingCurveWarnsEachTick(t *testing.T) {
	core, logs := observer.New(zapcore.WarnLevel)
	mover := &fakeMovement{}
	j := NewJetpack(DefaultJetpackConfig(), nil, mover, zap.New(core))
	j.Toggle(false, true)

	j.Tick(0.1)
	j.Tick(0.1)
	j.Tick(0.1)

	if got := logs.FilterField(zap.String("curve", "jetpack_boost")).Len(); got != 3 {
		t.Fatalf("warnings = %d, want 3", got)
	}
	if len(mover.launches) != 0 {
		t.Fatalf("launched without a curve")
	}
	if j.Fuel() >= 2 {
		t.Fatalf("fuel not burned: %v", j.Fuel())
	}
}

func TestJetpackSetConfigClampsFuel(t *testing.T) {
	j := NewJetpack(DefaultJetpackConfig(), constCurve(1), &fakeMovement{}, nil)
	cfg := DefaultJetpackConfig()
	cfg.MaxTime = 1
	j.SetConfig(cfg)
	if j.Fuel() != 1 {
		t.Fatalf("fuel = %v, want clamped to 1", j.Fuel())
	}
}
