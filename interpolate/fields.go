package interpolate

import (
	"reflect"
	"time"

	"github.com/comalice/tickloop/ease"
)

var (
	timeType  = reflect.TypeOf(time.Time{})
	curveType = reflect.TypeOf(ease.Curve(nil))
	f32Type   = reflect.TypeOf(float32(0))
)

// Fields blends two values of a struct type field by field using reflection.
// It is the fallback for types without a generated Interpolate method and is
// considerably slower than generated code.
//
// Numeric fields are blended linearly, time.Time fields by elapsed duration,
// and fields whose type has an Interpolate method delegate to it. Nested
// structs, arrays, slices and pointers recurse. Anything else (strings, bools,
// maps, channels, unexported fields) takes the nearer of the two values:
// start while the eased fraction is below one half, end after.
//
// Fields never calls T's own Interpolate method, so a type may implement
// Interpolate by returning Fields(start, end, t, curve).
func Fields[T any](start, end T, t float32, curve ease.Curve) T {
	curve = ease.OrLinear(curve)
	var out T
	b := blender{t: t, curve: curve, eased: curve(t)}
	b.blend(reflect.ValueOf(&out).Elem(), reflect.ValueOf(&start).Elem(), reflect.ValueOf(&end).Elem(), true)
	return out
}

type blender struct {
	t     float32
	curve ease.Curve
	eased float32
}

func (b blender) nearest(x, y reflect.Value) reflect.Value {
	if b.eased < 0.5 {
		return x
	}
	return y
}

func (b blender) blend(dst, x, y reflect.Value, top bool) {
	typ := x.Type()

	if typ == timeType {
		dst.Set(reflect.ValueOf(Time(x.Interface().(time.Time), y.Interface().(time.Time), b.eased, nil)))
		return
	}

	if !top {
		if m, ok := interpolateMethod(x); ok {
			dst.Set(m.Call([]reflect.Value{y, reflect.ValueOf(b.t), reflect.ValueOf(b.curve)})[0])
			return
		}
	}

	switch typ.Kind() {
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		dst.SetInt(saturateInt(lerp64(float64(x.Int()), float64(y.Int()), b.eased), typ.Bits()))
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64, reflect.Uintptr:
		dst.SetUint(saturateUint(lerp64(float64(x.Uint()), float64(y.Uint()), b.eased), typ.Bits()))
	case reflect.Float32, reflect.Float64:
		dst.SetFloat(lerp64(x.Float(), y.Float(), b.eased))
	case reflect.Struct:
		dst.Set(b.nearest(x, y))
		for i := 0; i < typ.NumField(); i++ {
			if !typ.Field(i).IsExported() {
				continue
			}
			b.blend(dst.Field(i), x.Field(i), y.Field(i), false)
		}
	case reflect.Array:
		for i := 0; i < x.Len(); i++ {
			b.blend(dst.Index(i), x.Index(i), y.Index(i), false)
		}
	case reflect.Slice:
		if x.IsNil() && y.IsNil() {
			dst.Set(reflect.Zero(typ))
			return
		}
		n := min(x.Len(), y.Len())
		s := reflect.MakeSlice(typ, n, n)
		for i := 0; i < n; i++ {
			b.blend(s.Index(i), x.Index(i), y.Index(i), false)
		}
		dst.Set(s)
	case reflect.Pointer:
		if x.IsNil() || y.IsNil() {
			dst.Set(b.nearest(x, y))
			return
		}
		p := reflect.New(typ.Elem())
		b.blend(p.Elem(), x.Elem(), y.Elem(), false)
		dst.Set(p)
	default:
		dst.Set(b.nearest(x, y))
	}
}

// interpolateMethod finds Interpolate(T, float32, ease.Curve) T on v.
func interpolateMethod(v reflect.Value) (reflect.Value, bool) {
	m := v.MethodByName("Interpolate")
	if !m.IsValid() {
		return reflect.Value{}, false
	}
	mt := m.Type()
	if mt.NumIn() != 3 || mt.NumOut() != 1 {
		return reflect.Value{}, false
	}
	if mt.In(0) != v.Type() || mt.In(1) != f32Type || mt.In(2) != curveType || mt.Out(0) != v.Type() {
		return reflect.Value{}, false
	}
	return m, true
}
