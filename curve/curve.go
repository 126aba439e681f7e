// Package curve implements designer-authored scalar curves: keyframe tables
// and tengo expressions, both evaluated over a bounded time range.
package curve

import (
	"errors"
	"fmt"
	"sort"
	"strings"

	"github.com/milk9111/firstperson/common"
	"github.com/milk9111/firstperson/prefabs"
)

var (
	ErrEmptyCurve    = errors.New("curve: no keys")
	ErrUnknownKind   = errors.New("curve: unknown kind")
	ErrUnknownInterp = errors.New("curve: unknown interpolation")
	ErrBadRange      = errors.New("curve: range max must not be below min")
)

// Float maps a time value to a scalar. Inputs outside TimeRange are clamped.
type Float interface {
	Evaluate(x float64) float64
	TimeRange() (min, max float64)
}

type Interp string

const (
	InterpLinear   Interp = "linear"
	InterpConstant Interp = "constant"
)

type Key struct {
	Time  float64
	Value float64
}

// Keys is a piecewise curve over sorted keyframes.
type Keys struct {
	keys   []Key
	interp Interp
}

func NewKeys(interp Interp, keys ...Key) (*Keys, error) {
	if len(keys) == 0 {
		return nil, ErrEmptyCurve
	}
	switch interp {
	case "":
		interp = InterpLinear
	case InterpLinear, InterpConstant:
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownInterp, interp)
	}
	sorted := append([]Key(nil), keys...)
	sort.SliceStable(sorted, func(i, j int) bool { return sorted[i].Time < sorted[j].Time })
	return &Keys{keys: sorted, interp: interp}, nil
}

func (k *Keys) TimeRange() (float64, float64) {
	return k.keys[0].Time, k.keys[len(k.keys)-1].Time
}

func (k *Keys) Evaluate(x float64) float64 {
	first, last := k.keys[0], k.keys[len(k.keys)-1]
	if x <= first.Time {
		return first.Value
	}
	if x >= last.Time {
		return last.Value
	}
	// index of the first key strictly after x; always in [1, len-1] here
	i := sort.Search(len(k.keys), func(i int) bool { return k.keys[i].Time > x })
	a, b := k.keys[i-1], k.keys[i]
	if k.interp == InterpConstant || b.Time == a.Time {
		return a.Value
	}
	return common.Lerp(a.Value, b.Value, (x-a.Time)/(b.Time-a.Time))
}

// FromSpec builds a curve from a decoded asset.
func FromSpec(spec prefabs.CurveSpec) (Float, error) {
	switch strings.ToLower(strings.TrimSpace(spec.Kind)) {
	case "", "keys":
		keys := make([]Key, 0, len(spec.Keys))
		for _, k := range spec.Keys {
			keys = append(keys, Key{Time: k.Time, Value: k.Value})
		}
		c, err := NewKeys(Interp(spec.Interp), keys...)
		if err != nil {
			return nil, fmt.Errorf("curve %s: %w", spec.Name, err)
		}
		return c, nil
	case "script":
		src := []byte(spec.Source)
		if strings.TrimSpace(spec.Script) != "" {
			data, err := prefabs.LoadScript(spec.Script)
			if err != nil {
				return nil, fmt.Errorf("curve %s: load script %s: %w", spec.Name, spec.Script, err)
			}
			src = data
		}
		c, err := NewScript(spec.Name, src, spec.Range.Min, spec.Range.Max)
		if err != nil {
			return nil, fmt.Errorf("curve %s: %w", spec.Name, err)
		}
		return c, nil
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownKind, spec.Kind)
	}
}

// Load reads a curve asset by prefab path, e.g. "curves/dash.yaml".
func Load(name string) (Float, error) {
	spec, err := prefabs.LoadSpec[prefabs.CurveSpec](name)
	if err != nil {
		return nil, err
	}
	return FromSpec(spec)
}
