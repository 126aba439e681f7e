package character

import (
	"testing"

	"github.com/go-gl/mathgl/mgl64"
)

func TestGrabFire(t *testing.T) {
	tests := []struct {
		name       string
		hit        bool
		simulating bool
		wantHeld   bool
	}{
		{"simulating target", true, true, true},
		{"kinematic target", true, false, false},
		{"miss", false, true, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			body := &fakeBody{simulating: tt.simulating}
			tracer := &fakeTracer{hit: Hit{Component: body}, ok: tt.hit}
			anchor := fakeAnchor{at: mgl64.Vec3{150, 0, 0}}
			g := NewGrab(DefaultGrabConfig(), tracer, anchor, nil)

			got := g.Fire(mgl64.Vec3{0, 0, 64}, mgl64.Vec3{2, 0, 0}, 5000, 20)

			if got != tt.wantHeld || g.Holding() != tt.wantHeld {
				t.Fatalf("fire = %v holding = %v, want %v", got, g.Holding(), tt.wantHeld)
			}
			if len(tracer.queries) != 1 {
				t.Fatalf("queries = %d", len(tracer.queries))
			}
			q := tracer.queries[0]
			if !approxVec(q.End, mgl64.Vec3{5000, 0, 64}) || q.Radius != 20 || !q.IgnoreSelf {
				t.Fatalf("query = %+v", q)
			}
			if !tt.wantHeld {
				if body.simulating != tt.simulating || body.anchor != nil {
					t.Fatalf("body changed on failed grab: %+v", body)
				}
				return
			}
			if body.simulating {
				t.Fatalf("held body still simulating")
			}
			if body.anchor != anchor || body.attachRule != SnapToTargetNotIncludingScale {
				t.Fatalf("body not snapped to anchor: %+v", body)
			}
		})
	}
}

func TestGrabStaticHitIgnored(t *testing.T) {
	tracer := &fakeTracer{hit: Hit{Point: mgl64.Vec3{10, 0, 0}}, ok: true}
	g := NewGrab(DefaultGrabConfig(), tracer, nil, nil)
	if g.Fire(mgl64.Vec3{}, mgl64.Vec3{1, 0, 0}, 100, 1) {
		t.Fatalf("grabbed static geometry")
	}
}

func TestGrabReleaseThrows(t *testing.T) {
	body := &fakeBody{simulating: true}
	g := NewGrab(DefaultGrabConfig(), &fakeTracer{hit: Hit{Component: body}, ok: true}, fakeAnchor{}, nil)
	g.Fire(mgl64.Vec3{}, mgl64.Vec3{1, 0, 0}, 5000, 20)

	if !g.Release(mgl64.Vec3{0, 1, 0}, 5000) {
		t.Fatalf("release reported nothing held")
	}

	if g.Held() != nil {
		t.Fatalf("held not cleared")
	}
	if !body.simulating {
		t.Fatalf("simulation not restored")
	}
	if len(body.detached) != 1 || body.detached[0] != KeepWorldTransform {
		t.Fatalf("detach rules = %v", body.detached)
	}
	if len(body.impulses) != 1 || !approxVec(body.impulses[0], mgl64.Vec3{0, 5000, 0}) {
		t.Fatalf("impulses = %v", body.impulses)
	}
}

func TestGrabReleaseIdempotent(t *testing.T) {
	body := &fakeBody{simulating: true}
	g := NewGrab(DefaultGrabConfig(), &fakeTracer{hit: Hit{Component: body}, ok: true}, fakeAnchor{}, nil)
	g.Fire(mgl64.Vec3{}, mgl64.Vec3{1, 0, 0}, 5000, 20)

	g.Release(mgl64.Vec3{1, 0, 0}, 100)
	if g.Release(mgl64.Vec3{1, 0, 0}, 100) {
		t.Fatalf("second release acted")
	}
	if len(body.impulses) != 1 || len(body.detached) != 1 {
		t.Fatalf("second release changed body: %+v", body)
	}
}

func TestGrabFireWhileHolding(t *testing.T) {
	first := &fakeBody{simulating: true}
	tracer := &fakeTracer{hit: Hit{Component: first}, ok: true}
	g := NewGrab(DefaultGrabConfig(), tracer, fakeAnchor{}, nil)
	g.Fire(mgl64.Vec3{}, mgl64.Vec3{1, 0, 0}, 5000, 20)

	second := &fakeBody{simulating: true}
	tracer.hit = Hit{Component: second}
	if g.Fire(mgl64.Vec3{}, mgl64.Vec3{1, 0, 0}, 5000, 20) {
		t.Fatalf("second grab accepted")
	}
	if g.Held() != first || !second.simulating {
		t.Fatalf("first grab should win")
	}
}

func TestGrabReleaseDestroyedBody(t *testing.T) {
	body := &fakeBody{simulating: true}
	g := NewGrab(DefaultGrabConfig(), &fakeTracer{hit: Hit{Component: body}, ok: true}, fakeAnchor{}, nil)
	g.Fire(mgl64.Vec3{}, mgl64.Vec3{1, 0, 0}, 5000, 20)
	body.destroyed = true

	if g.Release(mgl64.Vec3{1, 0, 0}, 100) {
		t.Fatalf("release acted on destroyed body")
	}
	if g.Holding() || len(body.impulses) != 0 {
		t.Fatalf("destroyed body touched or still held")
	}
}
