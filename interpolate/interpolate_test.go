package interpolate

import (
	"math"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/comalice/tickloop/ease"
)

type vec2 struct {
	X, Y float32
}

func (v vec2) Interpolate(end vec2, t float32, curve ease.Curve) vec2 {
	return vec2{
		X: Number(v.X, end.X, t, curve),
		Y: Number(v.Y, end.Y, t, curve),
	}
}

func TestLerp(t *testing.T) {
	assert.Equal(t, float32(75), Lerp(0, 100, 0.75))
	assert.Equal(t, float32(0), Lerp(0, 100, 0))
	assert.Equal(t, float32(100), Lerp(0, 100, 1))
	assert.InDelta(t, 0.75, Lerp(0.5, 1, 0.5), 1e-6)
}

func TestNumber(t *testing.T) {
	assert.Equal(t, 5, Number(0, 10, 0.5, nil))
	assert.Equal(t, uint8(127), Number[uint8](0, 255, 0.5, ease.Linear))
	assert.Equal(t, int64(-50), Number[int64](0, -100, 0.5, nil))
	assert.InDelta(t, 2.5, Number(0.0, 10.0, 0.5, ease.InQuad), 1e-9)
	assert.InDelta(t, 0.5, Number[float32](1, 0, 0.5, ease.Linear), 1e-6)
}

func TestNumberSaturatesOnOvershoot(t *testing.T) {
	tests := []struct {
		name string
		got  any
		want any
	}{
		{"uint in-back", Number[uint](0, 100, 0.1, ease.InBack), uint(0)},
		{"uint8 in-back", Number[uint8](0, 200, 0.1, ease.InBack), uint8(0)},
		{"uint in-out-back", Number[uint](0, 100, 0.1, ease.InOutBack), uint(0)},
		{"int8 out-back high", Number[int8](0, 127, 0.9, ease.OutBack), int8(127)},
		{"int8 out-back low", Number[int8](0, -128, 0.9, ease.OutBack), int8(-128)},
		{"int8 in-out-back", Number[int8](0, 127, 0.9, ease.InOutBack), int8(127)},
		{"int64 out-back max", Number[int64](0, math.MaxInt64, 0.9, ease.OutBack), int64(math.MaxInt64)},
		{"int64 out-back min", Number[int64](0, math.MinInt64, 0.9, ease.OutBack), int64(math.MinInt64)},
		{"int8 in range", Number[int8](0, 100, 0.5, nil), int8(50)},
		{"uint8 in range", Number[uint8](10, 250, 1, ease.OutBack), uint8(250)},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.got)
		})
	}

	// Floats overshoot freely.
	assert.Greater(t, Number[float64](0, 100, 0.9, ease.OutBack), 100.0)
}

func TestNumberSliceMatchesScalarLerp(t *testing.T) {
	got := NumberSlice([]float32{0, 0.5, 0}, []float32{1, 1, 2}, 0.5, nil)
	assert.Equal(t, []float32{0.5, 0.75, 1}, got)
	assert.Nil(t, NumberSlice[float32](nil, nil, 0.5, nil))
	assert.Len(t, NumberSlice([]int{1, 2, 3}, []int{1}, 0.5, nil), 1)
}

func TestDuration(t *testing.T) {
	assert.Equal(t, 150*time.Millisecond, Duration(100*time.Millisecond, 200*time.Millisecond, 0.5, nil))
}

func TestTime(t *testing.T) {
	start := time.Now()
	end := start.Add(2 * time.Second)

	assert.True(t, Time(start, end, 0, nil).Equal(start))
	assert.True(t, Time(start, end, 1, nil).Equal(end))
	assert.Equal(t, time.Second, Time(start, end, 0.5, nil).Sub(start))
	assert.Equal(t, 500*time.Millisecond, Time(start, end, 0.5, ease.InQuad).Sub(start))

	// Backwards spans blend too.
	assert.Equal(t, -time.Second, Time(end, start, 0.5, nil).Sub(end))
}

func TestValueAndSlice(t *testing.T) {
	a := []vec2{{0, 0}, {10, 10}}
	b := []vec2{{1, 2}, {20, 0}}

	got := Slice(a, b, 0.5, nil)
	require.Len(t, got, 2)
	assert.Equal(t, vec2{0.5, 1}, got[0])
	assert.Equal(t, vec2{15, 5}, got[1])

	assert.Equal(t, vec2{1, 2}, Value(vec2{}, vec2{1, 2}, 1, nil))
}

func TestMapKeepsNewKeys(t *testing.T) {
	start := map[string]vec2{"a": {0, 0}, "gone": {5, 5}}
	end := map[string]vec2{"a": {2, 2}, "new": {7, 7}}

	got := Map(start, end, 0.5, nil)
	assert.Equal(t, map[string]vec2{"a": {1, 1}, "new": {7, 7}}, got)
}

func TestClamp(t *testing.T) {
	assert.Equal(t, float32(0), Clamp(-5))
	assert.Equal(t, float32(1), Clamp(5))
	assert.Equal(t, float32(0.25), Clamp(0.25))

	var zero float32
	assert.Equal(t, float32(0), Clamp(zero/zero))
}

func TestNearest(t *testing.T) {
	assert.Equal(t, "a", Nearest("a", "b", 0.49, nil))
	assert.Equal(t, "b", Nearest("a", "b", 0.5, nil))
	assert.Equal(t, "a", Nearest("a", "b", 0.6, ease.InQuad))
	assert.True(t, Nearest(false, true, 1, nil))
}
