package character

import (
	"math"
	"testing"

	"github.com/go-gl/mathgl/mgl64"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
)

func approxVec(a, b mgl64.Vec3) bool {
	return a.Sub(b).Len() < 1e-9
}

func TestDashTriggerEndPosition(t *testing.T) {
	tests := []struct {
		name     string
		velocity mgl64.Vec3
		start    mgl64.Vec3
		want     mgl64.Vec3
	}{
		{"forward", mgl64.Vec3{10, 0, 0}, mgl64.Vec3{}, mgl64.Vec3{1000, 0, 0}},
		{"vertical dropped", mgl64.Vec3{0, 3, 400}, mgl64.Vec3{0, 0, 50}, mgl64.Vec3{0, 1000, 50}},
		{"diagonal", mgl64.Vec3{-5, -5, 0}, mgl64.Vec3{100, 100, 0}, mgl64.Vec3{100 - 1000/math.Sqrt2, 100 - 1000/math.Sqrt2, 0}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			d := NewDash(DefaultDashConfig(), linearCurve{hi: 1}, &fakeMovement{}, nil)
			if !d.Trigger(tt.velocity, tt.start) {
				t.Fatalf("expected dash to trigger")
			}
			st := d.State()
			if !approxVec(st.End, tt.want) {
				t.Fatalf("end = %v, want %v", st.End, tt.want)
			}
			if got := st.End.Sub(st.Start); math.Abs(got.Len()-1000) > 1e-9 || got.Z() != 0 {
				t.Fatalf("dash offset = %v, want horizontal length 1000", got)
			}
			if math.Abs(st.PlayRate-0.2) > 1e-12 {
				t.Fatalf("play rate = %v, want 0.2", st.PlayRate)
			}
			if math.Abs(d.Duration()-5) > 1e-9 {
				t.Fatalf("duration = %v, want 5", d.Duration())
			}
		})
	}
}

func TestDashTriggerIgnored(t *testing.T) {
	tests := []struct {
		name     string
		curve    Curve
		velocity mgl64.Vec3
		active   bool
	}{
		{"zero velocity", linearCurve{hi: 1}, mgl64.Vec3{}, false},
		{"vertical only", linearCurve{hi: 1}, mgl64.Vec3{0, 0, 300}, false},
		{"no curve", nil, mgl64.Vec3{10, 0, 0}, false},
		{"already active", linearCurve{hi: 1}, mgl64.Vec3{10, 0, 0}, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			d := NewDash(DefaultDashConfig(), tt.curve, &fakeMovement{}, nil)
			if tt.active {
				d.Trigger(mgl64.Vec3{0, 1, 0}, mgl64.Vec3{})
			}
			before := d.State()
			if d.Trigger(tt.velocity, mgl64.Vec3{5, 5, 5}) {
				t.Fatalf("expected trigger to be ignored")
			}
			if d.State() != before {
				t.Fatalf("state changed: %+v -> %+v", before, d.State())
			}
		})
	}
}

func TestDashMissingCurveWarns(t *testing.T) {
	core, logs := observer.New(zapcore.WarnLevel)
	d := NewDash(DefaultDashConfig(), nil, &fakeMovement{}, zap.New(core))

	d.Trigger(mgl64.Vec3{10, 0, 0}, mgl64.Vec3{})
	d.Trigger(mgl64.Vec3{10, 0, 0}, mgl64.Vec3{})

	if got := logs.FilterField(zap.String("curve", "dash")).Len(); got != 2 {
		t.Fatalf("warnings = %d, want 2", got)
	}
}

func TestDashZeroTuningGuarded(t *testing.T) {
	d := NewDash(DashConfig{}, linearCurve{hi: 1}, &fakeMovement{}, nil)
	if !d.Trigger(mgl64.Vec3{1, 0, 0}, mgl64.Vec3{}) {
		t.Fatalf("expected trigger")
	}
	st := d.State()
	if math.IsInf(st.PlayRate, 0) || math.IsNaN(st.PlayRate) || st.PlayRate <= 0 {
		t.Fatalf("play rate = %v", st.PlayRate)
	}
	if !approxVec(st.End, mgl64.Vec3{1, 0, 0}) {
		t.Fatalf("end = %v", st.End)
	}
}

func TestDashTickFinishesOnce(t *testing.T) {
	mover := &fakeMovement{}
	d := NewDash(DefaultDashConfig(), linearCurve{hi: 1}, mover, nil)
	finished := 0
	d.OnFinished = func() { finished++ }

	d.Trigger(mgl64.Vec3{10, 0, 0}, mgl64.Vec3{})

	last := -1.0
	for i := 0; i < 4; i++ {
		d.Tick(2.5)
		p := d.State().Playback
		if p < last {
			t.Fatalf("playback went backwards: %v -> %v", last, p)
		}
		if p > 1 {
			t.Fatalf("playback %v past curve end", p)
		}
		last = p
	}

	if finished != 1 {
		t.Fatalf("finished = %d, want 1", finished)
	}
	if d.Active() {
		t.Fatalf("dash still active")
	}
	// 5s duration at 2.5s per tick.
	if len(mover.moves) != 2 {
		t.Fatalf("moves = %d, want 2", len(mover.moves))
	}
	if !approxVec(mover.moves[0], mgl64.Vec3{500, 0, 0}) {
		t.Fatalf("first move = %v", mover.moves[0])
	}
	if !approxVec(mover.location, mgl64.Vec3{1000, 0, 0}) {
		t.Fatalf("final location = %v", mover.location)
	}
}

func TestDashBlockedStillFinishes(t *testing.T) {
	wall := 300.0
	mover := &fakeMovement{blockX: &wall}
	d := NewDash(DefaultDashConfig(), linearCurve{hi: 1}, mover, nil)

	d.Trigger(mgl64.Vec3{1, 0, 0}, mgl64.Vec3{})
	for i := 0; i < 6; i++ {
		d.Tick(1)
	}

	if d.Active() {
		t.Fatalf("dash still active")
	}
	if mover.location.X() != wall {
		t.Fatalf("location = %v, want stopped at %v", mover.location, wall)
	}
}

func TestDashRetriggerAfterFinish(t *testing.T) {
	d := NewDash(DashConfig{Speed: 100, Distance: 100}, linearCurve{hi: 1}, &fakeMovement{}, nil)
	d.Trigger(mgl64.Vec3{1, 0, 0}, mgl64.Vec3{})
	d.Tick(1)
	if d.Active() {
		t.Fatalf("expected dash to finish after its duration")
	}
	if !d.Trigger(mgl64.Vec3{0, 1, 0}, mgl64.Vec3{}) {
		t.Fatalf("expected a new dash to start")
	}
	if d.State().Playback != 0 {
		t.Fatalf("playback = %v, want reset to 0", d.State().Playback)
	}
}

func TestDashPlaybackStartsAtZero(t *testing.T) {
	mover := &fakeMovement{}
	d := NewDash(DefaultDashConfig(), lateCurve{lo: 0.5, hi: 1}, mover, nil)

	if !d.Trigger(mgl64.Vec3{10, 0, 0}, mgl64.Vec3{}) {
		t.Fatalf("expected dash to trigger")
	}
	if d.State().Playback != 0 {
		t.Fatalf("playback = %v, want 0", d.State().Playback)
	}
	if math.Abs(d.Duration()-5) > 1e-9 {
		t.Fatalf("duration = %v, want 5 (curve end 1 at play rate 0.2)", d.Duration())
	}

	for i := 0; i < 5; i++ {
		d.Tick(1.25)
	}
	if d.Active() {
		t.Fatalf("dash still active")
	}
	if len(mover.moves) < 4 {
		t.Fatalf("moves = %d, want at least 4", len(mover.moves))
	}
	// held at the first key value until playback reaches 0.5
	for i, want := range []float64{0, 0, 500, 1000} {
		if math.Abs(mover.moves[i].X()-want) > 1e-6 {
			t.Fatalf("move %d = %v, want x %v", i, mover.moves[i], want)
		}
	}
}
