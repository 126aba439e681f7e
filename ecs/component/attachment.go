package component

import (
	"github.com/go-gl/mathgl/mgl64"

	"github.com/milk9111/firstperson/character"
)

// Attachment pins a body to an anchor every physics step.
type Attachment struct {
	Anchor character.Anchor
	Rule   character.AttachRule
	// Offset from the anchor, kept for KeepRelativeTransform.
	Offset mgl64.Vec3
}

var AttachmentComponent = NewComponent[Attachment]()

// Grabbable marks props the gravity gun may pick up.
type Grabbable struct {
	Label string
}

var GrabbableComponent = NewComponent[Grabbable]()
