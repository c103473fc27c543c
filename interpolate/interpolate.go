// Package interpolate blends two values of the same type by a progress
// fraction reshaped through an easing curve.
//
// Snapshot types implement Interpolatable. Primitive fields are blended with
// the helpers in this package; composite types compose those helpers field by
// field, either through a method generated by cmd/interpgen or through the
// reflection-based Fields fallback.
package interpolate

import (
	"reflect"
	"time"

	"github.com/comalice/tickloop/ease"
)

// Interpolatable is implemented by values that can be blended toward an end
// value of the same type. The receiver is the start value.
type Interpolatable[T any] interface {
	Interpolate(end T, t float32, curve ease.Curve) T
}

// Numeric is the set of types blended with plain linear interpolation.
type Numeric interface {
	~int | ~int8 | ~int16 | ~int32 | ~int64 |
		~uint | ~uint8 | ~uint16 | ~uint32 | ~uint64 | ~uintptr |
		~float32 | ~float64
}

// Lerp is start*(1-t) + end*t.
func Lerp(start, end, t float32) float32 {
	return start*(1-t) + end*t
}

func lerp64(start, end float64, t float32) float64 {
	f := float64(t)
	return start*(1-f) + end*f
}

// Number blends two numeric values. The curve is applied to t once; integer
// results are truncated toward zero and saturate at the type's range when a
// curve overshoots.
func Number[N Numeric](start, end N, t float32, curve ease.Curve) N {
	return fromFloat[N](lerp64(float64(start), float64(end), ease.OrLinear(curve)(t)))
}

func fromFloat[N Numeric](f float64) N {
	typ := reflect.TypeFor[N]()
	switch typ.Kind() {
	case reflect.Float32, reflect.Float64:
		return N(f)
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		v := saturateInt(f, typ.Bits())
		return N(v)
	default:
		v := saturateUint(f, typ.Bits())
		return N(v)
	}
}

// saturateInt converts f to a signed integer of the given width, clamping
// to its range. NaN yields 0.
func saturateInt(f float64, bits int) int64 {
	lo := int64(-1) << (bits - 1)
	hi := ^lo
	switch {
	case f != f:
		return 0
	case f <= float64(lo):
		return lo
	case f >= float64(hi):
		return hi
	default:
		return int64(f)
	}
}

// saturateUint is saturateInt for unsigned integers.
func saturateUint(f float64, bits int) uint64 {
	hi := ^uint64(0) >> (64 - bits)
	switch {
	case f != f, f <= 0:
		return 0
	case f >= float64(hi):
		return hi
	default:
		return uint64(f)
	}
}

// Duration blends two durations.
func Duration(start, end time.Duration, t float32, curve ease.Curve) time.Duration {
	return Number(start, end, t, curve)
}

// Time blends two instants by scaling the elapsed duration between them and
// adding it back onto start. Absolute timestamps are never blended directly,
// so the monotonic clock reading of start is preserved.
func Time(start, end time.Time, t float32, curve ease.Curve) time.Time {
	span := end.Sub(start)
	return start.Add(Duration(0, span, t, curve))
}

// Value blends two Interpolatable values.
func Value[T Interpolatable[T]](start, end T, t float32, curve ease.Curve) T {
	return start.Interpolate(end, t, ease.OrLinear(curve))
}

// Slice blends two slices element-wise. The result is as long as the shorter
// input; unmatched trailing elements are dropped.
func Slice[T Interpolatable[T]](start, end []T, t float32, curve ease.Curve) []T {
	if start == nil && end == nil {
		return nil
	}
	n := min(len(start), len(end))
	out := make([]T, n)
	for i := 0; i < n; i++ {
		out[i] = Value(start[i], end[i], t, curve)
	}
	return out
}

// NumberSlice is Slice for numeric elements.
func NumberSlice[N Numeric](start, end []N, t float32, curve ease.Curve) []N {
	if start == nil && end == nil {
		return nil
	}
	n := min(len(start), len(end))
	out := make([]N, n)
	for i := 0; i < n; i++ {
		out[i] = Number(start[i], end[i], t, curve)
	}
	return out
}

// Map blends the values of keys present in both maps. Keys present in only
// one side take the end value when it exists, so entities that appear during
// a tick pop in rather than vanish.
func Map[K comparable, V Interpolatable[V]](start, end map[K]V, t float32, curve ease.Curve) map[K]V {
	if start == nil && end == nil {
		return nil
	}
	out := make(map[K]V, len(end))
	for k, e := range end {
		if s, ok := start[k]; ok {
			out[k] = Value(s, e, t, curve)
			continue
		}
		out[k] = e
	}
	return out
}

// Nearest returns start while the eased fraction is below one half and end
// after. It is used for values that cannot be blended, such as strings.
func Nearest[T any](start, end T, t float32, curve ease.Curve) T {
	if ease.OrLinear(curve)(t) < 0.5 {
		return start
	}
	return end
}

// Clamp limits t to [0,1].
func Clamp(t float32) float32 {
	switch {
	case t != t: // NaN
		return 0
	case t < 0:
		return 0
	case t > 1:
		return 1
	default:
		return t
	}
}
