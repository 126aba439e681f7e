package system

import (
	"github.com/milk9111/firstperson/common"
	"github.com/milk9111/firstperson/ecs"
	"github.com/milk9111/firstperson/ecs/component"
)

type CameraSystem struct {
	targetEntity ecs.Entity
}

func NewCameraSystem() *CameraSystem {
	return &CameraSystem{}
}

// Update eases each camera toward its target's X/Z position.
func (cs *CameraSystem) Update(w *ecs.World, dt float64) {
	if w == nil {
		return
	}
	ecs.ForEach(w, component.CameraComponent, func(e ecs.Entity, cam *component.Camera) {
		if !w.IsAlive(cs.targetEntity) {
			cs.targetEntity = findEntityByName(w, cam.TargetName)
		}
		t, ok := ecs.Get(w, cs.targetEntity, component.TransformComponent)
		if !ok {
			return
		}
		alpha := 1.0
		if cam.Smoothness > 0 {
			alpha = common.Clamp(dt/cam.Smoothness, 0, 1)
		}
		cam.X = common.Lerp(cam.X, t.Position.X(), alpha)
		cam.Z = common.Lerp(cam.Z, t.Position.Z(), alpha)
	})
}

func findEntityByName(w *ecs.World, name string) ecs.Entity {
	if name == "" || name == "player" {
		if e, ok := w.First(component.PlayerTagComponent.ID()); ok {
			return e
		}
	}
	for _, e := range w.Query(component.NameComponent.ID()) {
		if n, ok := ecs.Get(w, e, component.NameComponent); ok && n.Value == name {
			return e
		}
	}
	return 0
}
