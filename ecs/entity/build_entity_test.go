package entity

import (
	"testing"

	"github.com/go-gl/mathgl/mgl64"

	"github.com/milk9111/firstperson/ecs"
	"github.com/milk9111/firstperson/ecs/component"
	"github.com/milk9111/firstperson/prefabs"
)

func TestBuildEntityFromPrefab(t *testing.T) {
	w := ecs.NewWorld()
	e, err := BuildEntity(w, "crate.yaml")
	if err != nil {
		t.Fatalf("build crate: %v", err)
	}

	body, ok := ecs.Get(w, e, component.PhysicsBodyComponent)
	if !ok {
		t.Fatalf("crate has no physics body")
	}
	if body.Kind != component.ShapeBox || body.Width != 60 || body.Height != 60 {
		t.Fatalf("unexpected body %+v", body)
	}
	if !body.Simulate || body.Static {
		t.Fatalf("crate should simulate by default")
	}
	if g, ok := ecs.Get(w, e, component.GrabbableComponent); !ok || g.Label != "crate" {
		t.Fatalf("expected grabbable crate, got %+v", g)
	}
	if n, ok := ecs.Get(w, e, component.NameComponent); !ok || n.Value != "crate" {
		t.Fatalf("expected name crate, got %+v", n)
	}
}

func TestBuildEntityFromSpec(t *testing.T) {
	no := false
	cases := []struct {
		name    string
		spec    prefabs.EntityBuildSpec
		wantErr bool
		check   func(t *testing.T, w *ecs.World, e ecs.Entity)
	}{
		{
			name:    "empty",
			spec:    prefabs.EntityBuildSpec{Name: "nothing"},
			wantErr: true,
		},
		{
			name: "unknown_component",
			spec: prefabs.EntityBuildSpec{Components: map[string]any{
				"transform": map[string]any{"x": 1},
				"sprite":    map[string]any{},
			}},
			wantErr: true,
		},
		{
			name: "bad_shape",
			spec: prefabs.EntityBuildSpec{Components: map[string]any{
				"physics_body": map[string]any{"shape": "polygon"},
			}},
			wantErr: true,
		},
		{
			name: "scaled_circle",
			spec: prefabs.EntityBuildSpec{Components: map[string]any{
				"transform":    map[string]any{"x": 10, "z": 20, "scale": 2},
				"physics_body": map[string]any{"radius": 5, "mass": 3},
			}},
			check: func(t *testing.T, w *ecs.World, e ecs.Entity) {
				tr, _ := ecs.Get(w, e, component.TransformComponent)
				if tr.Position != (mgl64.Vec3{10, 0, 20}) {
					t.Fatalf("position = %v", tr.Position)
				}
				body, _ := ecs.Get(w, e, component.PhysicsBodyComponent)
				if body.Kind != component.ShapeCircle || body.Radius != 10 {
					t.Fatalf("expected circle radius 10, got %+v", body)
				}
			},
		},
		{
			name: "static_box",
			spec: prefabs.EntityBuildSpec{Components: map[string]any{
				"transform":    map[string]any{},
				"physics_body": map[string]any{"width": 100, "height": 10, "static": true},
			}},
			check: func(t *testing.T, w *ecs.World, e ecs.Entity) {
				tr, _ := ecs.Get(w, e, component.TransformComponent)
				if tr.Scale != 1 {
					t.Fatalf("scale should default to 1, got %v", tr.Scale)
				}
				body, _ := ecs.Get(w, e, component.PhysicsBodyComponent)
				if !body.Static || body.Simulate || body.Mass != 0 {
					t.Fatalf("unexpected static body %+v", body)
				}
			},
		},
		{
			name: "simulate_off",
			spec: prefabs.EntityBuildSpec{Components: map[string]any{
				"transform":    map[string]any{},
				"physics_body": map[string]any{"width": 10, "height": 10, "simulate": no},
			}},
			check: func(t *testing.T, w *ecs.World, e ecs.Entity) {
				body, _ := ecs.Get(w, e, component.PhysicsBodyComponent)
				if body.Simulate {
					t.Fatalf("simulate: false should be honoured")
				}
				if body.Mass != 1 {
					t.Fatalf("dynamic bodies default to mass 1, got %v", body.Mass)
				}
			},
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			w := ecs.NewWorld()
			e, err := BuildEntityFromSpec(w, tc.spec, tc.name)
			if tc.wantErr {
				if err == nil {
					t.Fatalf("expected error")
				}
				if n := len(w.Entities()); n != 0 {
					t.Fatalf("failed build should not leave entities, got %d", n)
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			tc.check(t, w, e)
		})
	}
}

func TestLoadLevelToWorld(t *testing.T) {
	lvl, err := prefabs.LoadLevelSpec("level.yaml")
	if err != nil {
		t.Fatalf("load level: %v", err)
	}

	w := ecs.NewWorld()
	ents, err := LoadLevelToWorld(w, lvl)
	if err != nil {
		t.Fatalf("load level to world: %v", err)
	}
	// every entry plus the default camera
	if len(ents) != len(lvl.Entities)+1 {
		t.Fatalf("expected %d entities, got %d", len(lvl.Entities)+1, len(ents))
	}

	grabbable := w.Query(component.GrabbableComponent.ID())
	if len(grabbable) < 3 {
		t.Fatalf("expected level props to be grabbable, got %d", len(grabbable))
	}
	if _, ok := w.First(component.CameraComponent.ID()); !ok {
		t.Fatalf("expected a camera")
	}

	var floorFound bool
	ecs.ForEach(w, component.NameComponent, func(e ecs.Entity, n *component.Name) {
		if n.Value != "floor" {
			return
		}
		floorFound = true
		body, _ := ecs.Get(w, e, component.PhysicsBodyComponent)
		if body == nil || !body.Static {
			t.Fatalf("floor should be static")
		}
	})
	if !floorFound {
		t.Fatalf("floor not named")
	}

	for i, ent := range lvl.Entities {
		if ent.Prefab == "" || ent.Position == nil {
			continue
		}
		tr, _ := ecs.Get(w, ents[i], component.TransformComponent)
		want := mgl64.Vec3{ent.Position.X, ent.Position.Y, ent.Position.Z}
		if tr.Position != want {
			t.Fatalf("entity %d at %v, want %v", i, tr.Position, want)
		}
	}
}

func TestLoadLevelToWorldRejectsEmptyEntry(t *testing.T) {
	w := ecs.NewWorld()
	lvl := &prefabs.LevelSpec{Name: "broken", Entities: []prefabs.LevelEntitySpec{
		{Name: "ok", Components: map[string]any{"transform": map[string]any{}}},
		{Name: "empty"},
	}}
	if _, err := LoadLevelToWorld(w, lvl); err == nil {
		t.Fatalf("expected error for an entry without prefab or components")
	}
	if n := len(w.Entities()); n != 0 {
		t.Fatalf("failed load should roll back, %d entities left", n)
	}
}
