package component

import (
	"github.com/go-gl/mathgl/mgl64"

	"github.com/milk9111/firstperson/character"
)

// Character holds the gameplay driver for a player body and the state seen
// last frame, used to raise events on changes.
type Character struct {
	Controller *character.Character
	Prefab     string

	WasJetpack bool
	WasHolding bool
}

var CharacterComponent = NewComponent[Character]()

// CarryAnchor is where grabbed objects are held, relative to the eye: X
// along the view direction and Z up.
type CarryAnchor struct {
	Offset mgl64.Vec3
}

var CarryAnchorComponent = NewComponent[CarryAnchor]()
