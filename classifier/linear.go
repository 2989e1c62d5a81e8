package classifier

import (
	"math"
	"time"

	"gonum.org/v1/gonum/mat"

	"github.com/dishant2009/Decision-Boundaries-Understanding-How-Different-Classifiers-See-Your-Data/core/model"
	boundErrors "github.com/dishant2009/Decision-Boundaries-Understanding-How-Different-Classifiers-See-Your-Data/pkg/errors"
	"github.com/dishant2009/Decision-Boundaries-Understanding-How-Different-Classifiers-See-Your-Data/pkg/log"
)

// Linear is logistic regression trained by full-batch gradient descent on
// the logistic loss. The decision boundary it induces is always a straight
// line, which is the point of showing it next to the nonlinear variants.
type Linear struct {
	state  *model.StateManager
	logger log.Logger

	// Hyperparameters
	learningRate float64
	iterations   int

	// Model state, produced by Fit and read-only afterwards.
	weights *mat.VecDense // length 2
	bias    float64
}

// LinearOption configures a Linear classifier.
type LinearOption func(*Linear)

// WithLinearLearningRate sets the gradient descent step size.
func WithLinearLearningRate(lr float64) LinearOption {
	return func(l *Linear) { l.learningRate = lr }
}

// WithLinearIterations sets the fixed iteration budget.
func WithLinearIterations(n int) LinearOption {
	return func(l *Linear) { l.iterations = n }
}

// NewLinear creates a logistic regression classifier.
func NewLinear(opts ...LinearOption) *Linear {
	l := &Linear{
		state:        model.NewStateManager(),
		learningRate: 0.1,
		iterations:   1000,
	}
	l.logger = log.GetLoggerWithName("classifier").With(
		log.ModelNameKey, "Linear",
		log.ComponentKey, "classifier",
	)
	for _, opt := range opts {
		opt(l)
	}
	return l
}

// Kind identifies the variant.
func (l *Linear) Kind() model.Kind { return model.KindLinear }

func (l *Linear) validateHyperparameters() error {
	if !(l.learningRate > 0) {
		return boundErrors.NewHyperparameterError("Linear", "learning_rate", "must be positive", l.learningRate)
	}
	if l.iterations < 1 {
		return boundErrors.NewHyperparameterError("Linear", "iterations", "must be at least 1", l.iterations)
	}
	return nil
}

// Fit trains by batch gradient descent: each iteration computes
// sigmoid(X·w + b) over the whole set and applies w += lr·Xᵀ(y−ŷ),
// b += lr·mean(y−ŷ). There is no early-stopping check; the fixed budget
// always runs out unless the weights become non-finite first, in which
// case Fit fails with a ConvergenceError and no model state is kept.
func (l *Linear) Fit(X, y mat.Matrix) (err error) {
	defer boundErrors.Recover(&err, "Linear.Fit")

	if err := l.validateHyperparameters(); err != nil {
		return err
	}
	n, err := validateTrainingData("Linear.Fit", X, y, true)
	if err != nil {
		return err
	}

	start := time.Now()
	l.logger.Info("Training started",
		log.OperationKey, log.OperationFit,
		log.PhaseKey, log.PhaseTraining,
		log.SamplesKey, n,
		log.IterationsKey, l.iterations,
	)

	w := [2]float64{}
	b := 0.0

	for iter := 0; iter < l.iterations; iter++ {
		var gw0, gw1, gb float64
		for i := 0; i < n; i++ {
			z := w[0]*X.At(i, 0) + w[1]*X.At(i, 1) + b
			e := y.At(i, 0) - stableSigmoid(z)
			gw0 += e * X.At(i, 0)
			gw1 += e * X.At(i, 1)
			gb += e
		}
		w[0] += l.learningRate * gw0
		w[1] += l.learningRate * gw1
		b += l.learningRate * gb / float64(n)

		if !finite(w[0]) || !finite(w[1]) || !finite(b) {
			l.state.Reset()
			l.weights = nil
			return boundErrors.NewConvergenceError("Linear.Fit", iter)
		}
	}

	// Fresh state replaces any previous fit wholesale.
	l.weights = mat.NewVecDense(2, []float64{w[0], w[1]})
	l.bias = b
	l.state.SetFitted()
	l.state.SetDimensions(model.NumFeatures, n)

	l.logger.Info("Training completed",
		log.OperationKey, log.OperationFit,
		log.DurationMsKey, time.Since(start).Milliseconds(),
		log.SamplesKey, n,
	)
	return nil
}

// PredictProba returns sigmoid(x·w + b) per row.
func (l *Linear) PredictProba(X mat.Matrix) (_ *mat.VecDense, err error) {
	defer boundErrors.Recover(&err, "Linear.PredictProba")
	if !l.state.IsFitted() {
		return nil, boundErrors.NewNotFittedError("Linear", "PredictProba")
	}
	n, err := validatePredictInput("Linear.PredictProba", X)
	if err != nil {
		return nil, err
	}

	probs := mat.NewVecDense(n, nil)
	for i := 0; i < n; i++ {
		z := l.weights.AtVec(0)*X.At(i, 0) + l.weights.AtVec(1)*X.At(i, 1) + l.bias
		probs.SetVec(i, stableSigmoid(z))
	}
	return probs, nil
}

// Predict thresholds PredictProba at 0.5.
func (l *Linear) Predict(X mat.Matrix) (*mat.VecDense, error) {
	probs, err := l.PredictProba(X)
	if err != nil {
		return nil, err
	}
	return thresholdProbs(probs), nil
}

// Weights returns a copy of the learned weight vector and the bias.
func (l *Linear) Weights() (w []float64, bias float64) {
	if l.weights == nil {
		return nil, 0
	}
	return []float64{l.weights.AtVec(0), l.weights.AtVec(1)}, l.bias
}

func finite(v float64) bool {
	return !math.IsNaN(v) && !math.IsInf(v, 0)
}
