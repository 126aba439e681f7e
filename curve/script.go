package curve

import (
	"fmt"

	"github.com/d5/tengo/v2"
	"github.com/d5/tengo/v2/stdlib"
	"github.com/milk9111/firstperson/common"
)

// Script evaluates a tengo program that reads `x` and assigns `value`.
//
//	math := import("math")
//	value := math.sin(x * math.pi / 2)
type Script struct {
	name     string
	compiled *tengo.Compiled
	lo, hi   float64
	err      error
}

func NewScript(name string, src []byte, lo, hi float64) (*Script, error) {
	if hi < lo {
		return nil, ErrBadRange
	}
	script := tengo.NewScript(src)
	if err := script.Add("x", lo); err != nil {
		return nil, err
	}
	script.SetImports(stdlib.GetModuleMap("math"))

	compiled, err := script.Compile()
	if err != nil {
		return nil, fmt.Errorf("compile: %w", err)
	}
	if err := compiled.Run(); err != nil {
		return nil, fmt.Errorf("run: %w", err)
	}
	if !compiled.IsDefined("value") {
		return nil, fmt.Errorf("script %s does not define value", name)
	}
	return &Script{name: name, compiled: compiled, lo: lo, hi: hi}, nil
}

func (s *Script) TimeRange() (float64, float64) {
	return s.lo, s.hi
}

// Evaluate returns 0 when the program fails; the failure is kept in Err.
func (s *Script) Evaluate(x float64) float64 {
	x = common.Clamp(x, s.lo, s.hi)
	if err := s.compiled.Set("x", x); err != nil {
		s.err = err
		return 0
	}
	if err := s.compiled.Run(); err != nil {
		s.err = err
		return 0
	}
	s.err = nil
	return s.compiled.Get("value").Float()
}

// Err reports the error of the most recent evaluation.
func (s *Script) Err() error {
	return s.err
}

func (s *Script) Name() string {
	return s.name
}
