// Package dataset provides the labeled 2-D point container consumed by the
// classifiers and the six named pattern generators that produce it.
//
// A SampleSet is immutable once built: classifiers receive it (or its matrix
// view) read-only and never mutate it. Generation is fully deterministic
// given (pattern, n, noise, seed).
package dataset

import (
	"math"
	randv2 "math/rand/v2"

	"gonum.org/v1/gonum/mat"
	"gonum.org/v1/gonum/stat/distuv"

	boundErrors "github.com/dishant2009/Decision-Boundaries-Understanding-How-Different-Classifiers-See-Your-Data/pkg/errors"
)

// Sample is one labeled 2-D point. Label is 0 or 1.
type Sample struct {
	X     float64
	Y     float64
	Label int
}

// SampleSet is an ordered, immutable collection of samples. Order matters
// only for rendering; no algorithm depends on it.
type SampleSet struct {
	samples []Sample
}

// FromSamples builds a SampleSet from a copy of samples.
func FromSamples(samples []Sample) *SampleSet {
	cp := make([]Sample, len(samples))
	copy(cp, samples)
	return &SampleSet{samples: cp}
}

// Len returns the number of samples.
func (s *SampleSet) Len() int { return len(s.samples) }

// At returns the i-th sample.
func (s *SampleSet) At(i int) Sample { return s.samples[i] }

// Samples returns a copy of the underlying samples.
func (s *SampleSet) Samples() []Sample {
	cp := make([]Sample, len(s.samples))
	copy(cp, s.samples)
	return cp
}

// Matrices returns the feature matrix (n x 2) and label vector (n x 1)
// views consumed by classifier Fit methods. Fresh allocations each call, so
// callers cannot alias the set's internal storage.
func (s *SampleSet) Matrices() (*mat.Dense, *mat.VecDense) {
	n := len(s.samples)
	X := mat.NewDense(n, 2, nil)
	y := mat.NewVecDense(n, nil)
	for i, p := range s.samples {
		X.Set(i, 0, p.X)
		X.Set(i, 1, p.Y)
		y.SetVec(i, float64(p.Label))
	}
	return X, y
}

// ClassCounts returns the number of class-0 and class-1 samples.
func (s *SampleSet) ClassCounts() (n0, n1 int) {
	for _, p := range s.samples {
		if p.Label == 1 {
			n1++
		} else {
			n0++
		}
	}
	return n0, n1
}

// NumClasses returns the number of distinct classes present.
func (s *SampleSet) NumClasses() int {
	n0, n1 := s.ClassCounts()
	classes := 0
	if n0 > 0 {
		classes++
	}
	if n1 > 0 {
		classes++
	}
	return classes
}

// Pattern names a dataset generator.
type Pattern string

const (
	PatternLinear  Pattern = "linear"
	PatternMoons   Pattern = "moons"
	PatternCircles Pattern = "circles"
	PatternXOR     Pattern = "xor"
	PatternSpiral  Pattern = "spiral"
	PatternBlobs   Pattern = "blobs"
)

// Patterns returns all generator names in display order.
func Patterns() []Pattern {
	return []Pattern{PatternLinear, PatternMoons, PatternCircles, PatternXOR, PatternSpiral, PatternBlobs}
}

// Generate produces n samples of the named pattern with the given noise
// standard deviation. The same (pattern, n, noise, seed) always yields the
// same SampleSet.
func Generate(pattern Pattern, n int, noise float64, seed uint64) (*SampleSet, error) {
	if n <= 0 {
		return nil, boundErrors.NewValueError("dataset.Generate", "sample count must be positive")
	}
	if noise < 0 {
		return nil, boundErrors.NewValueError("dataset.Generate", "noise must be non-negative")
	}

	src := randv2.NewPCG(seed, seed^0x9e3779b97f4a7c15)
	rng := randv2.New(src)
	normal := distuv.Normal{Mu: 0, Sigma: math.Max(noise, 1e-12), Src: src}

	switch pattern {
	case PatternLinear:
		return genLinear(n, rng, normal), nil
	case PatternMoons:
		return genMoons(n, rng, normal), nil
	case PatternCircles:
		return genCircles(n, rng, normal), nil
	case PatternXOR:
		return genXOR(n, rng, normal), nil
	case PatternSpiral:
		return genSpiral(n, rng, normal), nil
	case PatternBlobs:
		return genBlobs(n, rng, normal), nil
	default:
		return nil, boundErrors.NewValueError("dataset.Generate", "unknown pattern "+string(pattern))
	}
}

// genLinear puts class 0 around (-1.5, -1.5) and class 1 around (1.5, 1.5),
// linearly separable at low noise.
func genLinear(n int, rng *randv2.Rand, normal distuv.Normal) *SampleSet {
	samples := make([]Sample, 0, n)
	for i := 0; i < n; i++ {
		label := i % 2
		center := -1.5
		if label == 1 {
			center = 1.5
		}
		samples = append(samples, Sample{
			X:     center + 0.6*rng.NormFloat64() + normal.Rand(),
			Y:     center + 0.6*rng.NormFloat64() + normal.Rand(),
			Label: label,
		})
	}
	return FromSamples(samples)
}

// genMoons produces two interleaving half-circles.
func genMoons(n int, rng *randv2.Rand, normal distuv.Normal) *SampleSet {
	samples := make([]Sample, 0, n)
	for i := 0; i < n; i++ {
		t := rng.Float64() * math.Pi
		var p Sample
		if i%2 == 0 {
			p = Sample{X: 1.5*math.Cos(t) - 0.75, Y: 1.5 * math.Sin(t), Label: 0}
		} else {
			p = Sample{X: 1.5*math.Cos(t) + 0.75, Y: 0.75 - 1.5*math.Sin(t), Label: 1}
		}
		p.X += normal.Rand()
		p.Y += normal.Rand()
		samples = append(samples, p)
	}
	return FromSamples(samples)
}

// genCircles produces a small inner disc (class 1) inside a ring (class 0).
func genCircles(n int, rng *randv2.Rand, normal distuv.Normal) *SampleSet {
	samples := make([]Sample, 0, n)
	for i := 0; i < n; i++ {
		t := rng.Float64() * 2 * math.Pi
		r := 2.0
		label := 0
		if i%2 == 1 {
			r = 0.8
			label = 1
		}
		samples = append(samples, Sample{
			X:     r*math.Cos(t) + normal.Rand(),
			Y:     r*math.Sin(t) + normal.Rand(),
			Label: label,
		})
	}
	return FromSamples(samples)
}

// genXOR assigns class 1 to quadrants where x and y have opposite signs.
func genXOR(n int, rng *randv2.Rand, normal distuv.Normal) *SampleSet {
	samples := make([]Sample, 0, n)
	for i := 0; i < n; i++ {
		x := rng.Float64()*4 - 2
		y := rng.Float64()*4 - 2
		label := 0
		if (x > 0) != (y > 0) {
			label = 1
		}
		samples = append(samples, Sample{
			X:     x + normal.Rand(),
			Y:     y + normal.Rand(),
			Label: label,
		})
	}
	return FromSamples(samples)
}

// genSpiral produces two interleaved Archimedean spirals.
func genSpiral(n int, rng *randv2.Rand, normal distuv.Normal) *SampleSet {
	samples := make([]Sample, 0, n)
	for i := 0; i < n; i++ {
		label := i % 2
		t := rng.Float64() * 3 * math.Pi
		r := 0.25 * t
		phase := 0.0
		if label == 1 {
			phase = math.Pi
		}
		samples = append(samples, Sample{
			X:     r*math.Cos(t+phase) + normal.Rand(),
			Y:     r*math.Sin(t+phase) + normal.Rand(),
			Label: label,
		})
	}
	return FromSamples(samples)
}

// genBlobs draws both classes from isotropic Gaussians with different
// centers and spreads, giving a softly overlapping boundary.
func genBlobs(n int, rng *randv2.Rand, normal distuv.Normal) *SampleSet {
	centers := [2][2]float64{{-1, 1}, {1, -1}}
	samples := make([]Sample, 0, n)
	for i := 0; i < n; i++ {
		label := i % 2
		c := centers[label]
		samples = append(samples, Sample{
			X:     c[0] + 0.9*rng.NormFloat64() + normal.Rand(),
			Y:     c[1] + 0.9*rng.NormFloat64() + normal.Rand(),
			Label: label,
		})
	}
	return FromSamples(samples)
}
