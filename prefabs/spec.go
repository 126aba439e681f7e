package prefabs

import (
	"fmt"

	"gopkg.in/yaml.v3"
)

func LoadSpec[T any](filename string) (T, error) {
	var zero T
	data, err := Load(filename)
	if err != nil {
		return zero, fmt.Errorf("prefabs: load %s: %w", filename, err)
	}

	var spec T
	if err := yaml.Unmarshal(data, &spec); err != nil {
		return zero, fmt.Errorf("prefabs: unmarshal %s: %w", filename, err)
	}

	return spec, nil
}

type Vec3Spec struct {
	X float64 `yaml:"x"`
	Y float64 `yaml:"y"`
	Z float64 `yaml:"z"`
}

type CharacterSpec struct {
	Name       string         `yaml:"name"`
	Capsule    CapsuleSpec    `yaml:"capsule"`
	Camera     CameraSpec     `yaml:"camera"`
	Movement   MovementSpec   `yaml:"movement"`
	Dash       DashSpec       `yaml:"dash"`
	Jetpack    JetpackSpec    `yaml:"jetpack"`
	GravityGun GravityGunSpec `yaml:"gravity_gun"`
}

type CapsuleSpec struct {
	Radius     float64 `yaml:"radius"`
	HalfHeight float64 `yaml:"half_height"`
}

type CameraSpec struct {
	BaseTurnRate   float64  `yaml:"base_turn_rate"`
	BaseLookUpRate float64  `yaml:"base_look_up_rate"`
	EyeOffset      Vec3Spec `yaml:"eye_offset"`
}

type MovementSpec struct {
	MaxWalkSpeed    float64 `yaml:"max_walk_speed"`
	MaxAcceleration float64 `yaml:"max_acceleration"`
	JumpZVelocity   float64 `yaml:"jump_z_velocity"`
	AirControl      float64 `yaml:"air_control"`
	Mass            float64 `yaml:"mass"`
	Friction        float64 `yaml:"friction"`
}

type DashSpec struct {
	Speed    float64 `yaml:"speed"`
	Distance float64 `yaml:"distance"`
	Curve    string  `yaml:"curve"`
}

type JetpackSpec struct {
	MaxTime          float64 `yaml:"max_time"`
	BoostForce       float64 `yaml:"boost_force"`
	ActiveAirControl float64 `yaml:"active_air_control"`
	IdleAirControl   float64 `yaml:"idle_air_control"`
	Curve            string  `yaml:"curve"`
}

type GravityGunSpec struct {
	TraceRange  float64  `yaml:"trace_range"`
	TraceRadius float64  `yaml:"trace_radius"`
	FiringForce float64  `yaml:"firing_force"`
	CarryOffset Vec3Spec `yaml:"carry_offset"`
}

// DefaultCharacterSpec holds the tuning used when a field is absent from
// character.yaml.
func DefaultCharacterSpec() CharacterSpec {
	return CharacterSpec{
		Name:    "character",
		Capsule: CapsuleSpec{Radius: 55, HalfHeight: 96},
		Camera: CameraSpec{
			BaseTurnRate:   45,
			BaseLookUpRate: 45,
			EyeOffset:      Vec3Spec{X: -39.56, Y: 1.75, Z: 64},
		},
		Movement: MovementSpec{
			MaxWalkSpeed:    600,
			MaxAcceleration: 2048,
			JumpZVelocity:   420,
			AirControl:      1,
			Mass:            100,
			Friction:        0.8,
		},
		Dash: DashSpec{Speed: 200, Distance: 1000},
		Jetpack: JetpackSpec{
			MaxTime:          2,
			BoostForce:       120,
			ActiveAirControl: 5,
			IdleAirControl:   1,
		},
		GravityGun: GravityGunSpec{
			TraceRange:  5000,
			TraceRadius: 20,
			FiringForce: 5000,
			CarryOffset: Vec3Spec{X: 150},
		},
	}
}

// LoadCharacterSpec decodes filename over the defaults, so partial files
// are valid.
func LoadCharacterSpec(filename string) (*CharacterSpec, error) {
	data, err := Load(filename)
	if err != nil {
		return nil, fmt.Errorf("prefabs: load %s: %w", filename, err)
	}
	spec := DefaultCharacterSpec()
	if err := yaml.Unmarshal(data, &spec); err != nil {
		return nil, fmt.Errorf("prefabs: unmarshal %s: %w", filename, err)
	}
	return &spec, nil
}

type CurveKeySpec struct {
	Time  float64 `yaml:"time"`
	Value float64 `yaml:"value"`
}

type RangeSpec struct {
	Min float64 `yaml:"min"`
	Max float64 `yaml:"max"`
}

// CurveSpec is a curve asset: either keyframes or a tengo program that
// assigns `value` from `x`.
type CurveSpec struct {
	Name   string         `yaml:"name"`
	Kind   string         `yaml:"kind"`
	Interp string         `yaml:"interp"`
	Keys   []CurveKeySpec `yaml:"keys"`
	Script string         `yaml:"script"`
	Source string         `yaml:"source"`
	Range  RangeSpec      `yaml:"range"`
}

type LevelSpec struct {
	Name     string            `yaml:"name"`
	Gravity  float64           `yaml:"gravity"`
	Spawn    Vec3Spec          `yaml:"spawn"`
	Entities []LevelEntitySpec `yaml:"entities"`
}

// LevelEntitySpec places a prefab, or inline components, in the level.
type LevelEntitySpec struct {
	Name       string         `yaml:"name"`
	Prefab     string         `yaml:"prefab"`
	Position   *Vec3Spec      `yaml:"position"`
	Components map[string]any `yaml:"components"`
}

func LoadLevelSpec(filename string) (*LevelSpec, error) {
	spec, err := LoadSpec[LevelSpec](filename)
	if err != nil {
		return nil, err
	}
	if spec.Gravity == 0 {
		spec.Gravity = -980
	}
	return &spec, nil
}

// ScenarioSpec scripts input for a headless run.
type ScenarioSpec struct {
	Name      string             `yaml:"name"`
	Level     string             `yaml:"level"`
	Character string             `yaml:"character"`
	Frames    int                `yaml:"frames"`
	DeltaTime float64            `yaml:"delta_time"`
	Steps     []ScenarioStepSpec `yaml:"steps"`
}

// ScenarioStepSpec applies from Frame (inclusive) until the next step.
// Actions fire on Frame only; axes hold until overwritten.
type ScenarioStepSpec struct {
	Frame       int      `yaml:"frame"`
	Actions     []string `yaml:"actions"`
	MoveForward *float64 `yaml:"move_forward"`
	MoveRight   *float64 `yaml:"move_right"`
	Turn        *float64 `yaml:"turn"`
	LookUp      *float64 `yaml:"look_up"`
}

func LoadScenarioSpec(filename string) (*ScenarioSpec, error) {
	spec, err := LoadSpec[ScenarioSpec](filename)
	if err != nil {
		return nil, err
	}
	if spec.DeltaTime <= 0 {
		spec.DeltaTime = 1.0 / 60.0
	}
	if spec.Frames <= 0 {
		spec.Frames = 600
	}
	return &spec, nil
}
