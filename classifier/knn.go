package classifier

import (
	"sort"

	"gonum.org/v1/gonum/mat"

	"github.com/dishant2009/Decision-Boundaries-Understanding-How-Different-Classifiers-See-Your-Data/core/model"
	boundErrors "github.com/dishant2009/Decision-Boundaries-Understanding-How-Different-Classifiers-See-Your-Data/pkg/errors"
	"github.com/dishant2009/Decision-Boundaries-Understanding-How-Different-Classifiers-See-Your-Data/pkg/log"
)

// KNN is the lazy k-nearest-neighbors classifier. Fit stores the training
// set and clamps k; all the work happens at prediction time. A one-class
// training set is accepted: the model then reports a constant probability.
type KNN struct {
	state  *model.StateManager
	logger log.Logger

	// Hyperparameters
	k int

	// Model state: the stored training set, no compression.
	points [][2]float64
	labels []int
	kEff   int // k clamped to len(points)
}

// KNNOption configures a KNN classifier.
type KNNOption func(*KNN)

// WithK sets the neighbor count. Values above the training set size are
// clamped at fit time, not rejected.
func WithK(k int) KNNOption {
	return func(c *KNN) { c.k = k }
}

// NewKNN creates a k-nearest-neighbors classifier with k=5.
func NewKNN(opts ...KNNOption) *KNN {
	c := &KNN{
		state: model.NewStateManager(),
		k:     5,
	}
	c.logger = log.GetLoggerWithName("classifier").With(
		log.ModelNameKey, "KNN",
		log.ComponentKey, "classifier",
	)
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Kind identifies the variant.
func (c *KNN) Kind() model.Kind { return model.KindKNN }

// Fit stores the training set. Unlike the other variants a single-class
// set is not an error here; the lazy learner degenerates to a constant
// predictor, which the comparison orchestrator asserts on.
func (c *KNN) Fit(X, y mat.Matrix) (err error) {
	defer boundErrors.Recover(&err, "KNN.Fit")

	if c.k < 1 {
		return boundErrors.NewHyperparameterError("KNN", "k", "must be at least 1", c.k)
	}
	n, err := validateTrainingData("KNN.Fit", X, y, false)
	if err != nil {
		return err
	}

	c.points, c.labels = cloneTraining(X, y, n)
	c.kEff = c.k
	if c.kEff > n {
		c.kEff = n
	}
	c.state.SetFitted()
	c.state.SetDimensions(model.NumFeatures, n)

	c.logger.Debug("Training set stored",
		log.OperationKey, log.OperationFit,
		log.SamplesKey, n,
		"k", c.kEff,
	)
	return nil
}

// PredictProba computes, for each query point, the fraction of its k
// nearest stored samples labeled class 1. Distance ties are broken by
// insertion order (first seen wins) so output is deterministic for
// identical input order.
func (c *KNN) PredictProba(X mat.Matrix) (_ *mat.VecDense, err error) {
	defer boundErrors.Recover(&err, "KNN.PredictProba")
	if !c.state.IsFitted() {
		return nil, boundErrors.NewNotFittedError("KNN", "PredictProba")
	}
	n, err := validatePredictInput("KNN.PredictProba", X)
	if err != nil {
		return nil, err
	}

	stored := len(c.points)
	idx := make([]int, stored)
	dist := make([]float64, stored)

	probs := mat.NewVecDense(n, nil)
	for q := 0; q < n; q++ {
		qx, qy := X.At(q, 0), X.At(q, 1)
		for i, p := range c.points {
			dx := p[0] - qx
			dy := p[1] - qy
			dist[i] = dx*dx + dy*dy // squared distance preserves order
			idx[i] = i
		}
		// Stable sort keeps insertion order among equal distances.
		sort.SliceStable(idx, func(a, b int) bool { return dist[idx[a]] < dist[idx[b]] })

		ones := 0
		for i := 0; i < c.kEff; i++ {
			if c.labels[idx[i]] == 1 {
				ones++
			}
		}
		probs.SetVec(q, float64(ones)/float64(c.kEff))
	}
	return probs, nil
}

// Predict thresholds PredictProba at 0.5.
func (c *KNN) Predict(X mat.Matrix) (*mat.VecDense, error) {
	probs, err := c.PredictProba(X)
	if err != nil {
		return nil, err
	}
	return thresholdProbs(probs), nil
}
