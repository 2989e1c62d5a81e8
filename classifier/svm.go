package classifier

import (
	"math"
	"time"

	"gonum.org/v1/gonum/mat"

	"github.com/dishant2009/Decision-Boundaries-Understanding-How-Different-Classifiers-See-Your-Data/core/model"
	"github.com/dishant2009/Decision-Boundaries-Understanding-How-Different-Classifiers-See-Your-Data/dataset"
	boundErrors "github.com/dishant2009/Decision-Boundaries-Understanding-How-Different-Classifiers-See-Your-Data/pkg/errors"
	"github.com/dishant2009/Decision-Boundaries-Understanding-How-Different-Classifiers-See-Your-Data/pkg/log"
)

// supportVectorTol is the dual-coefficient magnitude below which a training
// point is not considered a support vector.
const supportVectorTol = 1e-8

// kernelFunc is a similarity function between two points.
type kernelFunc func(u, v [2]float64) float64

// kernelSVM is the shared soft-margin machinery behind PolySVM and RBFSVM.
// The dual problem is solved by projected-gradient coordinate ascent over
// the dual coefficients with the box constraint [0, C]; this matches the
// observable contract (box-constrained alphas, logistic-squashed margins)
// without claiming parity with a true SMO solver.
type kernelSVM struct {
	state  *model.StateManager
	logger log.Logger
	name   string
	kind   model.Kind

	// Hyperparameters
	c          float64 // box constraint / regularization
	iterations int
	stepSize   float64
	kernel     kernelFunc

	// Model state
	points  [][2]float64 // training points (copied)
	ySigned []float64    // labels mapped to -1/+1
	alphas  []float64    // dual coefficients in [0, C]
	bias    float64
}

func newKernelSVM(name string, kind model.Kind, kernel kernelFunc) kernelSVM {
	k := kernelSVM{
		state:      model.NewStateManager(),
		name:       name,
		kind:       kind,
		c:          1.0,
		iterations: 300,
		stepSize:   0.01,
		kernel:     kernel,
	}
	k.logger = log.GetLoggerWithName("classifier").With(
		log.ModelNameKey, name,
		log.ComponentKey, "classifier",
	)
	return k
}

func (k *kernelSVM) Kind() model.Kind { return k.kind }

func (k *kernelSVM) validateHyperparameters() error {
	if !(k.c > 0) {
		return boundErrors.NewHyperparameterError(k.name, "C", "must be positive", k.c)
	}
	if k.iterations < 1 {
		return boundErrors.NewHyperparameterError(k.name, "iterations", "must be at least 1", k.iterations)
	}
	return nil
}

// Fit solves the soft-margin dual by coordinate ascent. Each sweep updates
// every alpha along its dual gradient 1 - y_i * f(x_i) and projects it back
// into [0, C]. The bias is recovered afterwards from the margin support
// vectors; if every alpha collapsed to zero the decision function is the
// constant zero and probabilities sit at 0.5, which is still a valid model.
func (k *kernelSVM) Fit(X, y mat.Matrix) (err error) {
	defer boundErrors.Recover(&err, k.name+".Fit")

	if err := k.validateHyperparameters(); err != nil {
		return err
	}
	n, err := validateTrainingData(k.name+".Fit", X, y, true)
	if err != nil {
		return err
	}

	start := time.Now()
	k.logger.Info("Training started",
		log.OperationKey, log.OperationFit,
		log.PhaseKey, log.PhaseTraining,
		log.SamplesKey, n,
		log.IterationsKey, k.iterations,
	)

	points, labels := cloneTraining(X, y, n)
	ySigned := make([]float64, n)
	for i, lab := range labels {
		if lab == 1 {
			ySigned[i] = 1
		} else {
			ySigned[i] = -1
		}
	}

	// Precompute the kernel matrix; n is small in this setting.
	gram := mat.NewSymDense(n, nil)
	for i := 0; i < n; i++ {
		for j := i; j < n; j++ {
			gram.SetSym(i, j, k.kernel(points[i], points[j]))
		}
	}

	alphas := make([]float64, n)
	for iter := 0; iter < k.iterations; iter++ {
		for i := 0; i < n; i++ {
			// Dual gradient: 1 - y_i * sum_j alpha_j y_j K(x_j, x_i)
			f := 0.0
			for j := 0; j < n; j++ {
				if alphas[j] != 0 {
					f += alphas[j] * ySigned[j] * gram.At(j, i)
				}
			}
			grad := 1 - ySigned[i]*f
			a := alphas[i] + k.stepSize*grad
			// Box projection. An infinite gradient is clipped to the box
			// boundary here; NaN survives both comparisons and must fail
			// the fit instead of poisoning the model.
			if a < 0 {
				a = 0
			} else if a > k.c {
				a = k.c
			}
			if !finite(a) {
				k.reset()
				return boundErrors.NewConvergenceError(k.name+".Fit", iter)
			}
			alphas[i] = a
		}
	}

	// Bias from margin support vectors (0 < alpha < C); fall back to all
	// support vectors, then to zero for the fully collapsed case.
	bias := 0.0
	count := 0
	for i := 0; i < n; i++ {
		if alphas[i] > supportVectorTol && alphas[i] < k.c-supportVectorTol {
			f := 0.0
			for j := 0; j < n; j++ {
				f += alphas[j] * ySigned[j] * gram.At(j, i)
			}
			bias += ySigned[i] - f
			count++
		}
	}
	if count == 0 {
		for i := 0; i < n; i++ {
			if alphas[i] > supportVectorTol {
				f := 0.0
				for j := 0; j < n; j++ {
					f += alphas[j] * ySigned[j] * gram.At(j, i)
				}
				bias += ySigned[i] - f
				count++
			}
		}
	}
	if count > 0 {
		bias /= float64(count)
	}
	if !finite(bias) {
		k.reset()
		return boundErrors.NewConvergenceError(k.name+".Fit", k.iterations)
	}

	k.points = points
	k.ySigned = ySigned
	k.alphas = alphas
	k.bias = bias
	k.state.SetFitted()
	k.state.SetDimensions(model.NumFeatures, n)

	k.logger.Info("Training completed",
		log.OperationKey, log.OperationFit,
		log.DurationMsKey, time.Since(start).Milliseconds(),
		log.SamplesKey, n,
		"support_vectors", len(k.supportIndices()),
	)
	return nil
}

// reset clears any fitted state after a diverged optimization, so a
// previously trained model cannot survive a failed refit.
func (k *kernelSVM) reset() {
	k.state.Reset()
	k.points = nil
	k.ySigned = nil
	k.alphas = nil
	k.bias = 0
}

// decision computes the signed margin for one point.
func (k *kernelSVM) decision(p [2]float64) float64 {
	f := k.bias
	for i, a := range k.alphas {
		if a > supportVectorTol {
			f += a * k.ySigned[i] * k.kernel(k.points[i], p)
		}
	}
	return f
}

// PredictProba squashes the unbounded margin through the logistic function
// so the output reads as a probability.
func (k *kernelSVM) PredictProba(X mat.Matrix) (_ *mat.VecDense, err error) {
	defer boundErrors.Recover(&err, k.name+".PredictProba")
	if !k.state.IsFitted() {
		return nil, boundErrors.NewNotFittedError(k.name, "PredictProba")
	}
	n, err := validatePredictInput(k.name+".PredictProba", X)
	if err != nil {
		return nil, err
	}

	probs := mat.NewVecDense(n, nil)
	for i := 0; i < n; i++ {
		probs.SetVec(i, stableSigmoid(k.decision([2]float64{X.At(i, 0), X.At(i, 1)})))
	}
	return probs, nil
}

// Predict thresholds PredictProba at 0.5.
func (k *kernelSVM) Predict(X mat.Matrix) (*mat.VecDense, error) {
	probs, err := k.PredictProba(X)
	if err != nil {
		return nil, err
	}
	return thresholdProbs(probs), nil
}

func (k *kernelSVM) supportIndices() []int {
	var idx []int
	for i, a := range k.alphas {
		if a > supportVectorTol {
			idx = append(idx, i)
		}
	}
	return idx
}

// SupportVectors returns the training points with non-zero dual
// coefficients, for display by the renderer.
func (k *kernelSVM) SupportVectors() []dataset.Sample {
	if !k.state.IsFitted() {
		return nil
	}
	var svs []dataset.Sample
	for _, i := range k.supportIndices() {
		label := 0
		if k.ySigned[i] > 0 {
			label = 1
		}
		svs = append(svs, dataset.Sample{X: k.points[i][0], Y: k.points[i][1], Label: label})
	}
	return svs
}

// PolySVM is a soft-margin SVM with the polynomial kernel
// K(u, v) = (u·v + 1)^degree.
type PolySVM struct {
	kernelSVM
	degree int
}

// PolySVMOption configures a PolySVM.
type PolySVMOption func(*PolySVM)

// WithPolyDegree sets the polynomial degree.
func WithPolyDegree(d int) PolySVMOption {
	return func(s *PolySVM) { s.degree = d }
}

// WithPolyC sets the box constraint.
func WithPolyC(c float64) PolySVMOption {
	return func(s *PolySVM) { s.c = c }
}

// WithPolyIterations sets the dual solver sweep budget.
func WithPolyIterations(n int) PolySVMOption {
	return func(s *PolySVM) { s.iterations = n }
}

// NewPolySVM creates a polynomial-kernel SVM with degree 3 and C=1.
func NewPolySVM(opts ...PolySVMOption) *PolySVM {
	s := &PolySVM{degree: 3}
	s.kernelSVM = newKernelSVM("PolySVM", model.KindPolySVM, nil)
	for _, opt := range opts {
		opt(s)
	}
	deg := s.degree
	s.kernel = func(u, v [2]float64) float64 {
		return math.Pow(u[0]*v[0]+u[1]*v[1]+1, float64(deg))
	}
	return s
}

// Fit validates the degree, then trains the shared dual solver.
func (s *PolySVM) Fit(X, y mat.Matrix) error {
	if s.degree < 1 {
		return boundErrors.NewHyperparameterError("PolySVM", "degree", "must be at least 1", s.degree)
	}
	return s.kernelSVM.Fit(X, y)
}

// RBFSVM is a soft-margin SVM with the Gaussian kernel
// K(u, v) = exp(-gamma * ||u - v||^2).
type RBFSVM struct {
	kernelSVM
	gamma float64
}

// RBFSVMOption configures an RBFSVM.
type RBFSVMOption func(*RBFSVM)

// WithRBFGamma sets the kernel width parameter.
func WithRBFGamma(g float64) RBFSVMOption {
	return func(s *RBFSVM) { s.gamma = g }
}

// WithRBFC sets the box constraint.
func WithRBFC(c float64) RBFSVMOption {
	return func(s *RBFSVM) { s.c = c }
}

// WithRBFIterations sets the dual solver sweep budget.
func WithRBFIterations(n int) RBFSVMOption {
	return func(s *RBFSVM) { s.iterations = n }
}

// NewRBFSVM creates an RBF-kernel SVM with gamma=1 and C=1.
func NewRBFSVM(opts ...RBFSVMOption) *RBFSVM {
	s := &RBFSVM{gamma: 1.0}
	s.kernelSVM = newKernelSVM("RBFSVM", model.KindRBFSVM, nil)
	for _, opt := range opts {
		opt(s)
	}
	gamma := s.gamma
	s.kernel = func(u, v [2]float64) float64 {
		dx := u[0] - v[0]
		dy := u[1] - v[1]
		return math.Exp(-gamma * (dx*dx + dy*dy))
	}
	return s
}

// Fit validates gamma, then trains the shared dual solver.
func (s *RBFSVM) Fit(X, y mat.Matrix) error {
	if !(s.gamma > 0) {
		return boundErrors.NewHyperparameterError("RBFSVM", "gamma", "must be positive", s.gamma)
	}
	return s.kernelSVM.Fit(X, y)
}
