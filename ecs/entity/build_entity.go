package entity

import (
	"fmt"
	"sort"

	"github.com/go-gl/mathgl/mgl64"

	"github.com/milk9111/firstperson/ecs"
	"github.com/milk9111/firstperson/ecs/component"
	"github.com/milk9111/firstperson/prefabs"
)

type buildContext struct {
	PrefabPath string
}

type componentBuildFn func(w *ecs.World, e ecs.Entity, raw any, ctx *buildContext) error

var componentRegistry = map[string]componentBuildFn{
	"transform":    addTransform,
	"physics_body": addPhysicsBody,
	"grabbable":    addGrabbable,
	"camera":       addCamera,
	"static_tag":   addStaticTag,
}

// transform must exist before physics_body reads it
var componentBuildOrder = []string{
	"transform",
	"static_tag",
	"physics_body",
	"grabbable",
	"camera",
}

func BuildEntity(w *ecs.World, prefabPath string) (ecs.Entity, error) {
	if w == nil {
		return 0, fmt.Errorf("build entity: world is nil")
	}
	spec, err := prefabs.LoadEntityBuildSpec(prefabPath)
	if err != nil {
		return 0, fmt.Errorf("build entity: load %q: %w", prefabPath, err)
	}
	return BuildEntityFromSpec(w, spec, prefabPath)
}

// BuildEntityFromSpec creates an entity from an already decoded prefab.
// source names the prefab in errors.
func BuildEntityFromSpec(w *ecs.World, spec prefabs.EntityBuildSpec, source string) (ecs.Entity, error) {
	if len(spec.Components) == 0 {
		return 0, fmt.Errorf("build entity: prefab %q does not define components", source)
	}

	e := w.CreateEntity()
	ctx := &buildContext{PrefabPath: source}

	remaining := make(map[string]any, len(spec.Components))
	for k, v := range spec.Components {
		remaining[k] = v
	}

	names := make([]string, 0, len(remaining))
	for _, name := range componentBuildOrder {
		if _, ok := remaining[name]; ok {
			names = append(names, name)
		}
	}
	var extra []string
	for name := range remaining {
		if !contains(componentBuildOrder, name) {
			extra = append(extra, name)
		}
	}
	sort.Strings(extra)
	names = append(names, extra...)

	for _, name := range names {
		builder, ok := componentRegistry[name]
		if !ok {
			w.DestroyEntity(e)
			return 0, fmt.Errorf("build entity: %q: no builder for component %q", source, name)
		}
		if err := builder(w, e, remaining[name], ctx); err != nil {
			w.DestroyEntity(e)
			return 0, fmt.Errorf("build entity: %q: add %q: %w", source, name, err)
		}
	}

	if spec.Name != "" {
		if err := ecs.Add(w, e, component.NameComponent, &component.Name{Value: spec.Name}); err != nil {
			w.DestroyEntity(e)
			return 0, err
		}
	}

	return e, nil
}

func contains(list []string, s string) bool {
	for _, v := range list {
		if v == s {
			return true
		}
	}
	return false
}

// SetEntityPosition moves an entity that has not been simulated yet.
func SetEntityPosition(w *ecs.World, e ecs.Entity, pos mgl64.Vec3) error {
	t, ok := ecs.Get(w, e, component.TransformComponent)
	if !ok {
		t = &component.Transform{Scale: 1}
	}
	t.Position = pos
	return ecs.Add(w, e, component.TransformComponent, t)
}

type transformSpec = prefabs.TransformComponentSpec

func addTransform(w *ecs.World, e ecs.Entity, raw any, _ *buildContext) error {
	spec, err := prefabs.DecodeComponentSpec[transformSpec](raw)
	if err != nil {
		return fmt.Errorf("decode transform spec: %w", err)
	}
	if spec.Scale == 0 {
		spec.Scale = 1
	}
	return ecs.Add(w, e, component.TransformComponent, &component.Transform{
		Position: mgl64.Vec3{spec.X, spec.Y, spec.Z},
		Scale:    spec.Scale,
	})
}

type physicsBodySpec = prefabs.PhysicsBodyComponentSpec

func addPhysicsBody(w *ecs.World, e ecs.Entity, raw any, _ *buildContext) error {
	spec, err := prefabs.DecodeComponentSpec[physicsBodySpec](raw)
	if err != nil {
		return fmt.Errorf("decode physics body spec: %w", err)
	}

	kind := component.ShapeKind(spec.Shape)
	switch kind {
	case "":
		kind = component.ShapeBox
		if spec.Radius > 0 {
			kind = component.ShapeCircle
		}
	case component.ShapeBox, component.ShapeCircle:
	default:
		return fmt.Errorf("unsupported shape %q", spec.Shape)
	}
	if kind == component.ShapeCircle && spec.Radius <= 0 {
		return fmt.Errorf("circle needs a positive radius")
	}

	width, height := spec.Width, spec.Height
	if tr, ok := ecs.Get(w, e, component.TransformComponent); ok && tr.Scale > 0 {
		width *= tr.Scale
		height *= tr.Scale
		spec.Radius *= tr.Scale
	}
	if !spec.Static && spec.Mass == 0 {
		spec.Mass = 1
	}
	simulate := !spec.Static
	if spec.Simulate != nil {
		simulate = *spec.Simulate && !spec.Static
	}

	return ecs.Add(w, e, component.PhysicsBodyComponent, &component.PhysicsBody{
		Kind:       kind,
		Width:      width,
		Height:     height,
		Radius:     spec.Radius,
		Mass:       spec.Mass,
		Friction:   spec.Friction,
		Elasticity: spec.Elasticity,
		Static:     spec.Static,
		Simulate:   simulate,
	})
}

type grabbableSpec = prefabs.GrabbableComponentSpec

func addGrabbable(w *ecs.World, e ecs.Entity, raw any, _ *buildContext) error {
	spec, err := prefabs.DecodeComponentSpec[grabbableSpec](raw)
	if err != nil {
		return fmt.Errorf("decode grabbable spec: %w", err)
	}
	return ecs.Add(w, e, component.GrabbableComponent, &component.Grabbable{Label: spec.Label})
}

type cameraSpec = prefabs.CameraComponentSpec

func addCamera(w *ecs.World, e ecs.Entity, raw any, _ *buildContext) error {
	spec, err := prefabs.DecodeComponentSpec[cameraSpec](raw)
	if err != nil {
		return fmt.Errorf("decode camera spec: %w", err)
	}
	if spec.Zoom <= 0 {
		spec.Zoom = 1
	}
	return ecs.Add(w, e, component.CameraComponent, &component.Camera{
		TargetName: spec.Target,
		Zoom:       spec.Zoom,
		Smoothness: spec.Smoothness,
	})
}

func addStaticTag(w *ecs.World, e ecs.Entity, _ any, _ *buildContext) error {
	return ecs.Add(w, e, component.StaticTagComponent, &component.StaticTag{})
}
