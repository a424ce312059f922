package kinematics

import (
	"math"
	"math/rand"

	"github.com/ojrac/opensimplex-go"
)

// Jitter produces a heading perturbation in degrees once per tick.
type Jitter interface {
	Sample() float64
}

// NoJitter never perturbs the heading.
type NoJitter struct{}

// Sample returns 0.
func (NoJitter) Sample() float64 { return 0 }

// UniformJitter adds a whole number of degrees drawn uniformly from
// [-Amplitude, Amplitude] each tick.
type UniformJitter struct {
	amplitude int
	rng       *rand.Rand
}

// NewUniformJitter creates a seeded uniform jitter source.
func NewUniformJitter(amplitude float64, seed int64) *UniformJitter {
	return &UniformJitter{
		amplitude: int(math.Round(math.Abs(amplitude))),
		rng:       rand.New(rand.NewSource(seed)),
	}
}

// Sample draws the next perturbation.
func (j *UniformJitter) Sample() float64 {
	if j.amplitude == 0 {
		return 0
	}
	return float64(j.rng.Intn(2*j.amplitude+1) - j.amplitude)
}

// SimplexJitter wanders smoothly using 2D simplex noise sampled along a
// per-vehicle lane, so consecutive ticks are correlated.
type SimplexJitter struct {
	noise     opensimplex.Noise
	amplitude float64
	frequency float64
	lane      float64
	t         float64
}

// NewSimplexJitter creates a seeded smooth jitter source. frequency is the
// noise advance per tick; lane separates vehicles sharing a seed.
func NewSimplexJitter(amplitude, frequency float64, seed int64, lane int) *SimplexJitter {
	if frequency <= 0 {
		frequency = 0.05
	}
	return &SimplexJitter{
		noise:     opensimplex.New(seed),
		amplitude: amplitude,
		frequency: frequency,
		lane:      float64(lane) * 17.3,
	}
}

// Sample returns the next perturbation in [-Amplitude, Amplitude].
func (j *SimplexJitter) Sample() float64 {
	v := j.noise.Eval2(j.t, j.lane)
	j.t += j.frequency
	if v > 1 {
		v = 1
	} else if v < -1 {
		v = -1
	}
	return v * j.amplitude
}
