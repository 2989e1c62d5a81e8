// Package metrics provides binary classification metrics used by the demo
// and the package tests: accuracy, log loss, and the confusion matrix.
package metrics

import (
	"math"

	"gonum.org/v1/gonum/mat"

	boundErrors "github.com/dishant2009/Decision-Boundaries-Understanding-How-Different-Classifiers-See-Your-Data/pkg/errors"
)

// Accuracy calculates the fraction of predictions matching the true labels.
//
// Parameters:
//   - yTrue: Ground truth binary labels (0 or 1)
//   - yPred: Predicted binary labels (0 or 1)
//
// Returns:
//   - The accuracy in [0, 1]
//   - An error if inputs are invalid
//
// Example:
//
//	yTrue := mat.NewVecDense(4, []float64{0, 0, 1, 1})
//	yPred := mat.NewVecDense(4, []float64{0, 1, 1, 1})
//	acc, err := metrics.Accuracy(yTrue, yPred) // 0.75
func Accuracy(yTrue, yPred *mat.VecDense) (float64, error) {
	if err := validatePair("Accuracy", yTrue, yPred); err != nil {
		return 0, err
	}

	n := yTrue.Len()
	correct := 0
	for i := 0; i < n; i++ {
		if yTrue.AtVec(i) == yPred.AtVec(i) {
			correct++
		}
	}
	return float64(correct) / float64(n), nil
}

// BinaryLogLoss calculates the mean binary cross-entropy between true
// labels and predicted class-1 probabilities. Probabilities are clamped
// away from 0 and 1 to avoid infinite loss.
func BinaryLogLoss(yTrue, yProb *mat.VecDense) (float64, error) {
	if err := validatePair("BinaryLogLoss", yTrue, yProb); err != nil {
		return 0, err
	}

	const epsilon = 1e-15
	n := yTrue.Len()
	loss := 0.0
	for i := 0; i < n; i++ {
		y := yTrue.AtVec(i)
		if y != 0 && y != 1 {
			return 0, boundErrors.NewValueError("BinaryLogLoss", "labels must be 0 or 1")
		}
		p := math.Min(math.Max(yProb.AtVec(i), epsilon), 1-epsilon)
		loss += -y*math.Log(p) - (1-y)*math.Log(1-p)
	}
	return loss / float64(n), nil
}

// ConfusionMatrix holds binary classification outcome counts.
type ConfusionMatrix struct {
	TruePositives  int
	TrueNegatives  int
	FalsePositives int
	FalseNegatives int
}

// Confusion computes the binary confusion matrix.
func Confusion(yTrue, yPred *mat.VecDense) (ConfusionMatrix, error) {
	var cm ConfusionMatrix
	if err := validatePair("Confusion", yTrue, yPred); err != nil {
		return cm, err
	}

	for i := 0; i < yTrue.Len(); i++ {
		truth := yTrue.AtVec(i) == 1
		pred := yPred.AtVec(i) == 1
		switch {
		case truth && pred:
			cm.TruePositives++
		case truth && !pred:
			cm.FalseNegatives++
		case !truth && pred:
			cm.FalsePositives++
		default:
			cm.TrueNegatives++
		}
	}
	return cm, nil
}

func validatePair(op string, a, b *mat.VecDense) error {
	if a == nil || b == nil {
		return boundErrors.NewValueError(op, "input vectors cannot be nil")
	}
	if a.Len() == 0 {
		return boundErrors.NewValueError(op, "input vectors cannot be empty")
	}
	if a.Len() != b.Len() {
		return boundErrors.NewDimensionError(op, a.Len(), b.Len(), 0)
	}
	return nil
}
