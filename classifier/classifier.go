// Package classifier implements the six from-scratch learning algorithms:
// logistic regression, polynomial- and RBF-kernel SVMs, k-nearest-neighbors,
// a Gini decision tree, and a multilayer perceptron.
//
// Every variant satisfies model.Classifier. Fit validates its input and
// hyperparameters before training, builds a fresh model state, and never
// mutates the training data. PredictProba is a pure function of that state.
package classifier

import (
	"math"

	"gonum.org/v1/gonum/mat"

	"github.com/dishant2009/Decision-Boundaries-Understanding-How-Different-Classifiers-See-Your-Data/core/model"
	boundErrors "github.com/dishant2009/Decision-Boundaries-Understanding-How-Different-Classifiers-See-Your-Data/pkg/errors"
)

// Factory constructs a fresh, unfitted classifier.
type Factory func() model.Classifier

// DefaultFactories returns a factory per variant with default
// hyperparameters, keyed by kind.
func DefaultFactories() map[model.Kind]Factory {
	return map[model.Kind]Factory{
		model.KindLinear:  func() model.Classifier { return NewLinear() },
		model.KindPolySVM: func() model.Classifier { return NewPolySVM() },
		model.KindRBFSVM:  func() model.Classifier { return NewRBFSVM() },
		model.KindKNN:     func() model.Classifier { return NewKNN() },
		model.KindTree:    func() model.Classifier { return NewTree() },
		model.KindMLP:     func() model.Classifier { return NewMLP() },
	}
}

// validateTrainingData checks shapes and class coverage for training input.
// Returns the sample count. requireBothClasses is false only for the lazy
// k-NN learner, which can represent a one-class set as a constant predictor.
func validateTrainingData(op string, X, y mat.Matrix, requireBothClasses bool) (int, error) {
	r, c := X.Dims()
	ry, cy := y.Dims()

	if r == 0 {
		return 0, boundErrors.NewModelError(op, "empty training set", boundErrors.ErrEmptyData)
	}
	if c != model.NumFeatures {
		return 0, boundErrors.NewDimensionError(op, model.NumFeatures, c, 1)
	}
	if ry != r {
		return 0, boundErrors.NewDimensionError(op, r, ry, 0)
	}
	if cy != 1 {
		return 0, boundErrors.NewValueError(op, "y must be a column vector")
	}

	var have0, have1 bool
	for i := 0; i < r; i++ {
		switch y.At(i, 0) {
		case 0:
			have0 = true
		case 1:
			have1 = true
		default:
			return 0, boundErrors.NewValueError(op, "labels must be 0 or 1")
		}
	}
	if requireBothClasses && !(have0 && have1) {
		classes := 0
		if have0 || have1 {
			classes = 1
		}
		return 0, boundErrors.NewDegenerateDatasetError(op, classes)
	}

	return r, nil
}

// validatePredictInput checks shapes for prediction input.
func validatePredictInput(op string, X mat.Matrix) (int, error) {
	r, c := X.Dims()
	if c != model.NumFeatures {
		return 0, boundErrors.NewDimensionError(op, model.NumFeatures, c, 1)
	}
	return r, nil
}

// stableSigmoid computes sigmoid(z) without overflow on large |z|.
func stableSigmoid(z float64) float64 {
	if z >= 0 {
		ez := math.Exp(-z)
		return 1.0 / (1.0 + ez)
	}
	ez := math.Exp(z)
	return ez / (1.0 + ez)
}

// thresholdProbs converts class-1 probabilities into hard labels. Exactly
// 0.5 resolves to class 1.
func thresholdProbs(probs *mat.VecDense) *mat.VecDense {
	n := probs.Len()
	labels := mat.NewVecDense(n, nil)
	for i := 0; i < n; i++ {
		if probs.AtVec(i) >= 0.5 {
			labels.SetVec(i, 1)
		}
	}
	return labels
}

// cloneTraining copies X into rows and y into 0/1 labels so the trained
// model never aliases caller-owned data.
func cloneTraining(X, y mat.Matrix, n int) (points [][2]float64, labels []int) {
	points = make([][2]float64, n)
	labels = make([]int, n)
	for i := 0; i < n; i++ {
		points[i] = [2]float64{X.At(i, 0), X.At(i, 1)}
		labels[i] = int(y.At(i, 0))
	}
	return points, labels
}
