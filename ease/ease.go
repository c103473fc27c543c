// Package ease provides easing curves that reshape an interpolation fraction.
//
// A Curve maps a progress fraction, conceptually in [0,1], to an eased
// fraction. Curves are pure functions; they are chosen by the caller at query
// time and are not tied to any snapshot type.
//
// The Back variants overshoot outside [0,1] on purpose.
package ease

import (
	"fmt"
	"math"
	"sort"
	"strings"
)

// Curve reshapes a raw fraction before blending.
type Curve func(t float32) float32

const (
	backC1 = 1.70158
	backC2 = backC1 * 1.525
	backC3 = backC1 + 1
)

func sin32(x float32) float32  { return float32(math.Sin(float64(x))) }
func cos32(x float32) float32  { return float32(math.Cos(float64(x))) }
func sqrt32(x float32) float32 { return float32(math.Sqrt(float64(x))) }
func pow2(x float32) float32   { return float32(math.Pow(2, float64(x))) }

func Linear(t float32) float32 { return t }

func InSine(t float32) float32    { return 1 - cos32(t*math.Pi/2) }
func OutSine(t float32) float32   { return sin32(t * math.Pi / 2) }
func InOutSine(t float32) float32 { return -(cos32(t*math.Pi) - 1) / 2 }

func InQuad(t float32) float32  { return t * t }
func OutQuad(t float32) float32 { return 1 - (1-t)*(1-t) }
func InOutQuad(t float32) float32 {
	if t < 0.5 {
		return 2 * t * t
	}
	u := -2*t + 2
	return 1 - u*u/2
}

func InCubic(t float32) float32 { return t * t * t }
func OutCubic(t float32) float32 {
	u := 1 - t
	return 1 - u*u*u
}
func InOutCubic(t float32) float32 {
	if t < 0.5 {
		return 4 * t * t * t
	}
	u := -2*t + 2
	return 1 - u*u*u/2
}

func InQuart(t float32) float32 { return t * t * t * t }
func OutQuart(t float32) float32 {
	u := 1 - t
	return 1 - u*u*u*u
}
func InOutQuart(t float32) float32 {
	if t < 0.5 {
		return 8 * t * t * t * t
	}
	u := -2*t + 2
	return 1 - u*u*u*u/2
}

func InQuint(t float32) float32 { return t * t * t * t * t }
func OutQuint(t float32) float32 {
	u := 1 - t
	return 1 - u*u*u*u*u
}
func InOutQuint(t float32) float32 {
	if t < 0.5 {
		return 16 * t * t * t * t * t
	}
	u := -2*t + 2
	return 1 - u*u*u*u*u/2
}

func InExpo(t float32) float32 {
	if t <= 0 {
		return 0
	}
	return pow2(10*t - 10)
}

func OutExpo(t float32) float32 {
	if t >= 1 {
		return 1
	}
	return 1 - pow2(-10*t)
}

func InOutExpo(t float32) float32 {
	switch {
	case t <= 0:
		return 0
	case t >= 1:
		return 1
	case t < 0.5:
		return pow2(20*t-10) / 2
	default:
		return (2 - pow2(-20*t+10)) / 2
	}
}

func InCirc(t float32) float32 { return 1 - sqrt32(1-t*t) }
func OutCirc(t float32) float32 {
	u := t - 1
	return sqrt32(1 - u*u)
}
func InOutCirc(t float32) float32 {
	if t < 0.5 {
		u := 2 * t
		return (1 - sqrt32(1-u*u)) / 2
	}
	u := -2*t + 2
	return (sqrt32(1-u*u) + 1) / 2
}

func InBack(t float32) float32 { return backC3*t*t*t - backC1*t*t }
func OutBack(t float32) float32 {
	u := t - 1
	return 1 + backC3*u*u*u + backC1*u*u
}
func InOutBack(t float32) float32 {
	if t < 0.5 {
		u := 2 * t
		return u * u * ((backC2+1)*u - backC2) / 2
	}
	u := 2*t - 2
	return (u*u*((backC2+1)*u+backC2) + 2) / 2
}

var registry = map[string]Curve{
	"linear":            Linear,
	"ease-in-sine":      InSine,
	"ease-out-sine":     OutSine,
	"ease-in-out-sine":  InOutSine,
	"ease-in-quad":      InQuad,
	"ease-out-quad":     OutQuad,
	"ease-in-out-quad":  InOutQuad,
	"ease-in-cubic":     InCubic,
	"ease-out-cubic":    OutCubic,
	"ease-in-out-cubic": InOutCubic,
	"ease-in-quart":     InQuart,
	"ease-out-quart":    OutQuart,
	"ease-in-out-quart": InOutQuart,
	"ease-in-quint":     InQuint,
	"ease-out-quint":    OutQuint,
	"ease-in-out-quint": InOutQuint,
	"ease-in-expo":      InExpo,
	"ease-out-expo":     OutExpo,
	"ease-in-out-expo":  InOutExpo,
	"ease-in-circ":      InCirc,
	"ease-out-circ":     OutCirc,
	"ease-in-out-circ":  InOutCirc,
	"ease-in-back":      InBack,
	"ease-out-back":     OutBack,
	"ease-in-out-back":  InOutBack,
}

// ErrUnknown is returned by Lookup for names not in the library.
type ErrUnknown struct {
	Name string
}

func (e *ErrUnknown) Error() string {
	return fmt.Sprintf("unknown easing curve %q", e.Name)
}

// Lookup resolves a curve by its kebab-case name, e.g. "ease-in-out-cubic".
// Matching is case-insensitive and an empty name resolves to Linear.
func Lookup(name string) (Curve, error) {
	key := strings.ToLower(strings.TrimSpace(name))
	if key == "" {
		return Linear, nil
	}
	c, ok := registry[key]
	if !ok {
		return nil, &ErrUnknown{Name: name}
	}
	return c, nil
}

// Names lists every registered curve name in sorted order.
func Names() []string {
	names := make([]string, 0, len(registry))
	for n := range registry {
		names = append(names, n)
	}
	sort.Strings(names)
	return names
}

// OrLinear returns c, or Linear when c is nil.
func OrLinear(c Curve) Curve {
	if c == nil {
		return Linear
	}
	return c
}
