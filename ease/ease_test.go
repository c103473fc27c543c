package ease

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCurveEndpoints(t *testing.T) {
	for _, name := range Names() {
		t.Run(name, func(t *testing.T) {
			c, err := Lookup(name)
			require.NoError(t, err)
			assert.InDelta(t, 0, c(0), 1e-3, "f(0)")
			assert.InDelta(t, 1, c(1), 1e-3, "f(1)")
		})
	}
}

func TestSymmetricCurvesHitMidpoint(t *testing.T) {
	for _, c := range []Curve{Linear, InOutSine, InOutQuad, InOutCubic, InOutQuart, InOutQuint, InOutExpo, InOutCirc, InOutBack} {
		assert.InDelta(t, 0.5, c(0.5), 1e-3)
	}
}

func TestMonotonicCurvesStayInRange(t *testing.T) {
	curves := map[string]Curve{
		"InQuad":    InQuad,
		"OutQuad":   OutQuad,
		"InCubic":   InCubic,
		"OutSine":   OutSine,
		"OutCirc":   OutCirc,
		"InOutExpo": InOutExpo,
	}
	for name, c := range curves {
		prev := c(0)
		for i := 1; i <= 100; i++ {
			v := c(float32(i) / 100)
			assert.GreaterOrEqual(t, v, prev-1e-6, "%s not monotonic at %d", name, i)
			assert.LessOrEqual(t, v, float32(1.0001), name)
			prev = v
		}
	}
}

func TestBackOvershoots(t *testing.T) {
	assert.Less(t, InBack(0.2), float32(0))
	assert.Greater(t, OutBack(0.8), float32(1))
}

func TestLookup(t *testing.T) {
	c, err := Lookup("")
	require.NoError(t, err)
	assert.Equal(t, float32(0.25), c(0.25))

	c, err = Lookup(" Ease-In-Quad ")
	require.NoError(t, err)
	assert.InDelta(t, 0.0625, c(0.25), 1e-6)

	_, err = Lookup("bounce")
	var unknown *ErrUnknown
	require.True(t, errors.As(err, &unknown))
	assert.Equal(t, "bounce", unknown.Name)
}

func TestOrLinear(t *testing.T) {
	assert.Equal(t, float32(0.3), OrLinear(nil)(0.3))
	assert.Equal(t, InQuad(0.3), OrLinear(InQuad)(0.3))
}
