// Package benchmarks provides shared helpers for benchmark tests.
package benchmarks

import (
	"fmt"

	"gopkg.in/yaml.v3"

	"github.com/comalice/tickloop/ease"
	"github.com/comalice/tickloop/interpolate"
	"github.com/comalice/tickloop/realtime"
)

// Particle is a small hand-written Interpolatable.
type Particle struct {
	X, Y, Z float32
	Age     int
}

func (p Particle) Interpolate(end Particle, t float32, curve ease.Curve) Particle {
	return Particle{
		X:   interpolate.Number(p.X, end.X, t, curve),
		Y:   interpolate.Number(p.Y, end.Y, t, curve),
		Z:   interpolate.Number(p.Z, end.Z, t, curve),
		Age: interpolate.Number(p.Age, end.Age, t, curve),
	}
}

// Cloud is a snapshot of n particles.
type Cloud struct {
	Particles []Particle
	Labels    map[string]Particle
}

func (c Cloud) Interpolate(end Cloud, t float32, curve ease.Curve) Cloud {
	return Cloud{
		Particles: interpolate.Slice(c.Particles, end.Particles, t, curve),
		Labels:    interpolate.Map(c.Labels, end.Labels, t, curve),
	}
}

// ReflectCloud has the same shape as Cloud but blends through reflection.
type ReflectCloud Cloud

func (c ReflectCloud) Interpolate(end ReflectCloud, t float32, curve ease.Curve) ReflectCloud {
	return interpolate.Fields(c, end, t, curve)
}

// GenCloud creates a cloud of n particles offset by shift, with one label per
// ten particles.
func GenCloud(n int, shift float32) Cloud {
	if n < 1 {
		n = 1
	}
	c := Cloud{
		Particles: make([]Particle, n),
		Labels:    make(map[string]Particle, n/10+1),
	}
	for i := 0; i < n; i++ {
		f := float32(i)
		c.Particles[i] = Particle{X: f + shift, Y: f * 2, Z: -f, Age: i}
		if i%10 == 0 {
			c.Labels[fmt.Sprintf("p%d", i)] = c.Particles[i]
		}
	}
	return c
}

// GenConfigYAML renders a loop config as YAML.
func GenConfigYAML(tps float64, curve string) []byte {
	data, err := yaml.Marshal(realtime.Config{TPS: tps, Curve: curve})
	if err != nil {
		panic(err)
	}
	return data
}
