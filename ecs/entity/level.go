package entity

import (
	"fmt"

	"github.com/go-gl/mathgl/mgl64"

	"github.com/milk9111/firstperson/ecs"
	"github.com/milk9111/firstperson/ecs/component"
	"github.com/milk9111/firstperson/prefabs"
)

// LoadLevelToWorld creates the level's entities. Prefab entries are placed
// at their position; inline entries are built from their components. A
// camera following the player is added when the level has none.
func LoadLevelToWorld(w *ecs.World, lvl *prefabs.LevelSpec) ([]ecs.Entity, error) {
	if w == nil || lvl == nil {
		return nil, fmt.Errorf("load level: world and level are required")
	}

	out := make([]ecs.Entity, 0, len(lvl.Entities)+1)
	for i, ent := range lvl.Entities {
		e, err := buildLevelEntity(w, ent)
		if err != nil {
			for _, made := range out {
				w.DestroyEntity(made)
			}
			return nil, fmt.Errorf("load level %s: entity %d: %w", lvl.Name, i, err)
		}
		out = append(out, e)
	}

	if _, ok := w.First(component.CameraComponent.ID()); !ok {
		cam := w.CreateEntity()
		if err := ecs.Add(w, cam, component.CameraComponent, &component.Camera{TargetName: "player", Zoom: 0.5, Smoothness: 0.15}); err != nil {
			return nil, err
		}
		_ = ecs.Add(w, cam, component.CameraTagComponent, &component.CameraTag{})
		out = append(out, cam)
	}
	return out, nil
}

func buildLevelEntity(w *ecs.World, ent prefabs.LevelEntitySpec) (ecs.Entity, error) {
	var (
		e   ecs.Entity
		err error
	)
	switch {
	case ent.Prefab != "":
		e, err = BuildEntity(w, ent.Prefab)
	case len(ent.Components) > 0:
		e, err = BuildEntityFromSpec(w, prefabs.EntityBuildSpec{Name: ent.Name, Components: ent.Components}, ent.Name)
	default:
		return 0, fmt.Errorf("entry %q has neither prefab nor components", ent.Name)
	}
	if err != nil {
		return 0, err
	}

	if ent.Position != nil {
		if err := SetEntityPosition(w, e, mgl64.Vec3{ent.Position.X, ent.Position.Y, ent.Position.Z}); err != nil {
			return 0, err
		}
	}
	if ent.Name != "" {
		if err := ecs.Add(w, e, component.NameComponent, &component.Name{Value: ent.Name}); err != nil {
			return 0, err
		}
	}
	return e, nil
}
