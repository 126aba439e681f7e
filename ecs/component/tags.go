package component

type PlayerTag struct{}

var PlayerTagComponent = NewComponent[PlayerTag]()

type CameraTag struct{}

var CameraTagComponent = NewComponent[CameraTag]()

type StaticTag struct{}

var StaticTagComponent = NewComponent[StaticTag]()

// Name is the prefab or level name of an entity.
type Name struct {
	Value string
}

var NameComponent = NewComponent[Name]()
