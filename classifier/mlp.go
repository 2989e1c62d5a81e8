package classifier

import (
	randv2 "math/rand/v2"
	"time"

	"gonum.org/v1/gonum/mat"

	"github.com/dishant2009/Decision-Boundaries-Understanding-How-Different-Classifiers-See-Your-Data/core/model"
	boundErrors "github.com/dishant2009/Decision-Boundaries-Understanding-How-Different-Classifiers-See-Your-Data/pkg/errors"
	"github.com/dishant2009/Decision-Boundaries-Understanding-How-Different-Classifiers-See-Your-Data/pkg/log"
)

// MLP is a fully-connected feed-forward network with sigmoid activations at
// every layer including the single output unit, trained by full-batch
// back-propagation. Weight initialization is seeded so training is
// reproducible.
type MLP struct {
	state  *model.StateManager
	logger log.Logger

	// Hyperparameters
	hiddenSizes  []int
	learningRate float64
	iterations   int
	seed         uint64

	// Model state: one weight matrix (out x in) and bias vector per layer.
	weights []*mat.Dense
	biases  []*mat.VecDense
}

// MLPOption configures an MLP.
type MLPOption func(*MLP)

// WithHiddenLayers sets the hidden layer widths.
func WithHiddenLayers(sizes ...int) MLPOption {
	return func(m *MLP) { m.hiddenSizes = sizes }
}

// WithMLPLearningRate sets the gradient descent step size.
func WithMLPLearningRate(lr float64) MLPOption {
	return func(m *MLP) { m.learningRate = lr }
}

// WithMLPIterations sets the fixed iteration budget.
func WithMLPIterations(n int) MLPOption {
	return func(m *MLP) { m.iterations = n }
}

// WithMLPSeed sets the weight initialization seed.
func WithMLPSeed(seed uint64) MLPOption {
	return func(m *MLP) { m.seed = seed }
}

// NewMLP creates a network with one hidden layer of 8 units, learning rate
// 0.5 and 4000 iterations.
func NewMLP(opts ...MLPOption) *MLP {
	m := &MLP{
		state:        model.NewStateManager(),
		hiddenSizes:  []int{8},
		learningRate: 0.5,
		iterations:   4000,
		seed:         1,
	}
	m.logger = log.GetLoggerWithName("classifier").With(
		log.ModelNameKey, "MLP",
		log.ComponentKey, "classifier",
	)
	for _, opt := range opts {
		opt(m)
	}
	return m
}

// Kind identifies the variant.
func (m *MLP) Kind() model.Kind { return model.KindMLP }

func (m *MLP) validateHyperparameters() error {
	if len(m.hiddenSizes) == 0 {
		return boundErrors.NewHyperparameterError("MLP", "hidden_layers", "need at least one hidden layer", len(m.hiddenSizes))
	}
	for _, w := range m.hiddenSizes {
		if w < 1 {
			return boundErrors.NewHyperparameterError("MLP", "hidden_layers", "layer width must be at least 1", w)
		}
	}
	if !(m.learningRate > 0) {
		return boundErrors.NewHyperparameterError("MLP", "learning_rate", "must be positive", m.learningRate)
	}
	if m.iterations < 1 {
		return boundErrors.NewHyperparameterError("MLP", "iterations", "must be at least 1", m.iterations)
	}
	return nil
}

// Fit trains by full-batch gradient descent. The forward pass caches every
// layer's activations; the backward pass starts from the output error
// (yhat - y) and propagates deltas through the sigmoid derivative,
// averaging gradients over the batch. A non-finite weight at any iteration
// aborts the fit with a ConvergenceError.
func (m *MLP) Fit(X, y mat.Matrix) (err error) {
	defer boundErrors.Recover(&err, "MLP.Fit")

	if err := m.validateHyperparameters(); err != nil {
		return err
	}
	n, err := validateTrainingData("MLP.Fit", X, y, true)
	if err != nil {
		return err
	}

	start := time.Now()
	m.logger.Info("Training started",
		log.OperationKey, log.OperationFit,
		log.PhaseKey, log.PhaseTraining,
		log.SamplesKey, n,
		log.IterationsKey, m.iterations,
	)

	// Layer sizes: 2 -> hidden... -> 1.
	sizes := append([]int{model.NumFeatures}, m.hiddenSizes...)
	sizes = append(sizes, 1)
	nLayers := len(sizes) - 1

	// Small bounded random init, seeded for reproducibility.
	rng := randv2.New(randv2.NewPCG(m.seed, m.seed^0xda3e39cb94b95bdb))
	weights := make([]*mat.Dense, nLayers)
	biases := make([]*mat.VecDense, nLayers)
	for l := 0; l < nLayers; l++ {
		out, in := sizes[l+1], sizes[l]
		data := make([]float64, out*in)
		for i := range data {
			data[i] = rng.Float64() - 0.5
		}
		weights[l] = mat.NewDense(out, in, data)
		bdata := make([]float64, out)
		for i := range bdata {
			bdata[i] = rng.Float64() - 0.5
		}
		biases[l] = mat.NewVecDense(out, bdata)
	}

	// Per-sample activation cache, reused across iterations.
	acts := make([][]float64, nLayers+1)
	for l := 0; l <= nLayers; l++ {
		acts[l] = make([]float64, sizes[l])
	}
	deltas := make([][]float64, nLayers)
	for l := 0; l < nLayers; l++ {
		deltas[l] = make([]float64, sizes[l+1])
	}
	gradW := make([]*mat.Dense, nLayers)
	gradB := make([]*mat.VecDense, nLayers)
	for l := 0; l < nLayers; l++ {
		gradW[l] = mat.NewDense(sizes[l+1], sizes[l], nil)
		gradB[l] = mat.NewVecDense(sizes[l+1], nil)
	}

	for iter := 0; iter < m.iterations; iter++ {
		for l := 0; l < nLayers; l++ {
			gradW[l].Zero()
			gradB[l].Zero()
		}

		for s := 0; s < n; s++ {
			acts[0][0] = X.At(s, 0)
			acts[0][1] = X.At(s, 1)

			// Forward pass with cached activations.
			for l := 0; l < nLayers; l++ {
				for j := 0; j < sizes[l+1]; j++ {
					z := biases[l].AtVec(j)
					for i := 0; i < sizes[l]; i++ {
						z += weights[l].At(j, i) * acts[l][i]
					}
					acts[l+1][j] = stableSigmoid(z)
				}
			}

			// Output delta: logistic-loss gradient yhat - y.
			deltas[nLayers-1][0] = acts[nLayers][0] - y.At(s, 0)

			// Backward pass through the sigmoid derivative a(1-a).
			for l := nLayers - 2; l >= 0; l-- {
				for i := 0; i < sizes[l+1]; i++ {
					sum := 0.0
					for j := 0; j < sizes[l+2]; j++ {
						sum += weights[l+1].At(j, i) * deltas[l+1][j]
					}
					a := acts[l+1][i]
					deltas[l][i] = sum * a * (1 - a)
				}
			}

			// Accumulate gradients.
			for l := 0; l < nLayers; l++ {
				for j := 0; j < sizes[l+1]; j++ {
					d := deltas[l][j]
					gradB[l].SetVec(j, gradB[l].AtVec(j)+d)
					for i := 0; i < sizes[l]; i++ {
						gradW[l].Set(j, i, gradW[l].At(j, i)+d*acts[l][i])
					}
				}
			}
		}

		// Apply averaged gradients.
		scale := m.learningRate / float64(n)
		for l := 0; l < nLayers; l++ {
			for j := 0; j < sizes[l+1]; j++ {
				b := biases[l].AtVec(j) - scale*gradB[l].AtVec(j)
				if !finite(b) {
					m.state.Reset()
					m.weights = nil
					m.biases = nil
					return boundErrors.NewConvergenceError("MLP.Fit", iter)
				}
				biases[l].SetVec(j, b)
				for i := 0; i < sizes[l]; i++ {
					w := weights[l].At(j, i) - scale*gradW[l].At(j, i)
					if !finite(w) {
						m.state.Reset()
						m.weights = nil
						m.biases = nil
						return boundErrors.NewConvergenceError("MLP.Fit", iter)
					}
					weights[l].Set(j, i, w)
				}
			}
		}
	}

	m.weights = weights
	m.biases = biases
	m.state.SetFitted()
	m.state.SetDimensions(model.NumFeatures, n)

	m.logger.Info("Training completed",
		log.OperationKey, log.OperationFit,
		log.DurationMsKey, time.Since(start).Milliseconds(),
		log.SamplesKey, n,
	)
	return nil
}

// PredictProba runs the forward pass; the final sigmoid activation is the
// class-1 probability.
func (m *MLP) PredictProba(X mat.Matrix) (_ *mat.VecDense, err error) {
	defer boundErrors.Recover(&err, "MLP.PredictProba")
	if !m.state.IsFitted() {
		return nil, boundErrors.NewNotFittedError("MLP", "PredictProba")
	}
	n, err := validatePredictInput("MLP.PredictProba", X)
	if err != nil {
		return nil, err
	}

	nLayers := len(m.weights)
	probs := mat.NewVecDense(n, nil)
	for s := 0; s < n; s++ {
		act := []float64{X.At(s, 0), X.At(s, 1)}
		for l := 0; l < nLayers; l++ {
			out, in := m.weights[l].Dims()
			next := make([]float64, out)
			for j := 0; j < out; j++ {
				z := m.biases[l].AtVec(j)
				for i := 0; i < in; i++ {
					z += m.weights[l].At(j, i) * act[i]
				}
				next[j] = stableSigmoid(z)
			}
			act = next
		}
		probs.SetVec(s, act[0])
	}
	return probs, nil
}

// Predict thresholds PredictProba at 0.5.
func (m *MLP) Predict(X mat.Matrix) (*mat.VecDense, error) {
	probs, err := m.PredictProba(X)
	if err != nil {
		return nil, err
	}
	return thresholdProbs(probs), nil
}
