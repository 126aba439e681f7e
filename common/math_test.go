package common

import (
	"math"
	"testing"

	"github.com/go-gl/mathgl/mgl64"
)

func TestNormalizeToRange(t *testing.T) {
	cases := []struct {
		name   string
		v      float64
		lo, hi float64
		want   float64
	}{
		{"start", 0, 0, 2, 0},
		{"middle", 1, 0, 2, 0.5},
		{"end", 2, 0, 2, 1},
		{"beyond", 3, 0, 2, 1.5},
		{"degenerate_below", -1, 2, 2, 0},
		{"degenerate_at", 2, 2, 2, 1},
		{"swapped", 1, 2, 0, 0.5},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			if got := NormalizeToRange(c.v, c.lo, c.hi); math.Abs(got-c.want) > 1e-9 {
				t.Fatalf("NormalizeToRange(%v, %v, %v) = %v, want %v", c.v, c.lo, c.hi, got, c.want)
			}
		})
	}
}

func TestHorizontalDirection(t *testing.T) {
	dir, ok := HorizontalDirection(mgl64.Vec3{3, 4, 100})
	if !ok {
		t.Fatal("expected a horizontal direction")
	}
	if !near(dir, mgl64.Vec3{0.6, 0.8, 0}) {
		t.Fatalf("unexpected direction %v", dir)
	}

	if _, ok := HorizontalDirection(mgl64.Vec3{0, 0, -50}); ok {
		t.Fatal("purely vertical vector must not yield a direction")
	}
}

func TestDirectionVectors(t *testing.T) {
	fwd := DirectionVector(90, 0)
	if !near(fwd, mgl64.Vec3{0, 1, 0}) {
		t.Fatalf("yaw 90 forward = %v", fwd)
	}
	up := DirectionVector(0, 90)
	if !near(up, mgl64.Vec3{0, 0, 1}) {
		t.Fatalf("pitch 90 forward = %v", up)
	}
	right := RightVector(0)
	if !near(right, mgl64.Vec3{0, 1, 0}) {
		t.Fatalf("yaw 0 right = %v", right)
	}
	if got := LerpVec3(mgl64.Vec3{}, mgl64.Vec3{10, 0, 0}, 0.25); !near(got, mgl64.Vec3{2.5, 0, 0}) {
		t.Fatalf("LerpVec3 = %v", got)
	}
}

// near compares by absolute distance; mgl64's ApproxEqual is relative and
// rejects tiny residues against an exact zero.
func near(a, b mgl64.Vec3) bool {
	return a.Sub(b).Len() < 1e-9
}
