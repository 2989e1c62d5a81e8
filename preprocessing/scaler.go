// Package preprocessing provides feature scaling for the 2-D sample sets
// consumed by the classifiers. Standardizing features keeps the
// gradient-based variants (logistic regression, MLP) well conditioned when
// datasets are generated with large offsets or noise.
package preprocessing

import (
	"fmt"
	"math"

	"gonum.org/v1/gonum/mat"

	"github.com/dishant2009/Decision-Boundaries-Understanding-How-Different-Classifiers-See-Your-Data/core/model"
	"github.com/dishant2009/Decision-Boundaries-Understanding-How-Different-Classifiers-See-Your-Data/dataset"
	boundErrors "github.com/dishant2009/Decision-Boundaries-Understanding-How-Different-Classifiers-See-Your-Data/pkg/errors"
)

// StandardScaler transforms each feature to zero mean and unit variance.
// Statistics are computed by Fit and reused by Transform, so a mesh range
// can be mapped through the same statistics as the training data.
type StandardScaler struct {
	state model.StateManager

	// Mean and Scale hold per-feature statistics after Fit.
	Mean  []float64
	Scale []float64
}

// NewStandardScaler creates an unfitted StandardScaler.
func NewStandardScaler() *StandardScaler {
	return &StandardScaler{}
}

// Fit computes per-feature mean and standard deviation from X.
func (s *StandardScaler) Fit(X mat.Matrix) (err error) {
	defer boundErrors.Recover(&err, "StandardScaler.Fit")
	r, c := X.Dims()
	if r == 0 || c == 0 {
		return boundErrors.NewModelError("StandardScaler.Fit", "empty data", boundErrors.ErrEmptyData)
	}

	s.Mean = make([]float64, c)
	s.Scale = make([]float64, c)
	for j := 0; j < c; j++ {
		sum := 0.0
		for i := 0; i < r; i++ {
			sum += X.At(i, j)
		}
		s.Mean[j] = sum / float64(r)

		sumSquares := 0.0
		for i := 0; i < r; i++ {
			d := X.At(i, j) - s.Mean[j]
			sumSquares += d * d
		}
		s.Scale[j] = math.Sqrt(sumSquares / float64(r))
		// A constant feature gets scale 1 so Transform is the identity
		// shift rather than a division by zero.
		if s.Scale[j] < 1e-8 {
			s.Scale[j] = 1.0
		}
	}

	s.state.SetDimensions(c, r)
	s.state.SetFitted()
	return nil
}

// Transform standardizes X using the fitted statistics.
func (s *StandardScaler) Transform(X mat.Matrix) (_ *mat.Dense, err error) {
	defer boundErrors.Recover(&err, "StandardScaler.Transform")
	if !s.state.IsFitted() {
		return nil, boundErrors.NewNotFittedError("StandardScaler", "Transform")
	}
	r, c := X.Dims()
	if c != len(s.Mean) {
		return nil, boundErrors.NewDimensionError("StandardScaler.Transform", len(s.Mean), c, 1)
	}

	result := mat.NewDense(r, c, nil)
	for i := 0; i < r; i++ {
		for j := 0; j < c; j++ {
			result.Set(i, j, (X.At(i, j)-s.Mean[j])/s.Scale[j])
		}
	}
	return result, nil
}

// FitTransform fits the scaler on X and returns the standardized X.
func (s *StandardScaler) FitTransform(X mat.Matrix) (*mat.Dense, error) {
	if err := s.Fit(X); err != nil {
		return nil, err
	}
	return s.Transform(X)
}

// InverseTransform maps standardized values back to the original scale.
func (s *StandardScaler) InverseTransform(X mat.Matrix) (_ *mat.Dense, err error) {
	defer boundErrors.Recover(&err, "StandardScaler.InverseTransform")
	if !s.state.IsFitted() {
		return nil, boundErrors.NewNotFittedError("StandardScaler", "InverseTransform")
	}
	r, c := X.Dims()
	if c != len(s.Mean) {
		return nil, boundErrors.NewDimensionError("StandardScaler.InverseTransform", len(s.Mean), c, 1)
	}

	result := mat.NewDense(r, c, nil)
	for i := 0; i < r; i++ {
		for j := 0; j < c; j++ {
			result.Set(i, j, X.At(i, j)*s.Scale[j]+s.Mean[j])
		}
	}
	return result, nil
}

func (s *StandardScaler) String() string {
	if !s.state.IsFitted() {
		return "StandardScaler(unfitted)"
	}
	return fmt.Sprintf("StandardScaler(mean=%v, scale=%v)", s.Mean, s.Scale)
}

// ScaleSamples standardizes a sample set's features and returns the scaled
// set together with the fitted scaler, so callers can map an evaluation
// window through the same statistics. Labels pass through untouched.
func ScaleSamples(set *dataset.SampleSet) (*dataset.SampleSet, *StandardScaler, error) {
	if set == nil || set.Len() == 0 {
		return nil, nil, boundErrors.NewModelError("ScaleSamples", "empty sample set", boundErrors.ErrEmptyData)
	}

	X, _ := set.Matrices()
	scaler := NewStandardScaler()
	scaled, err := scaler.FitTransform(X)
	if err != nil {
		return nil, nil, err
	}

	samples := make([]dataset.Sample, set.Len())
	for i := 0; i < set.Len(); i++ {
		s := set.At(i)
		samples[i] = dataset.Sample{
			X:     scaled.At(i, 0),
			Y:     scaled.At(i, 1),
			Label: s.Label,
		}
	}
	return dataset.FromSamples(samples), scaler, nil
}
