package classifier

import (
	"sort"
	"time"

	"gonum.org/v1/gonum/mat"

	"github.com/dishant2009/Decision-Boundaries-Understanding-How-Different-Classifiers-See-Your-Data/core/model"
	boundErrors "github.com/dishant2009/Decision-Boundaries-Understanding-How-Different-Classifiers-See-Your-Data/pkg/errors"
	"github.com/dishant2009/Decision-Boundaries-Understanding-How-Different-Classifiers-See-Your-Data/pkg/log"
)

// treeNode is one node of the fitted binary tree. Internal nodes carry a
// split; leaves carry the empirical class-1 proportion of their samples.
type treeNode struct {
	isLeaf    bool
	feature   int     // 0 = x, 1 = y
	threshold float64 // midpoint between consecutive distinct values
	left      *treeNode
	right     *treeNode
	proba     float64 // class-1 proportion (leaves)
	depth     int
	nSamples  int
}

// Tree is a binary decision tree over axis-aligned thresholds, grown by
// greedy weighted-Gini minimization.
type Tree struct {
	state  *model.StateManager
	logger log.Logger

	// Hyperparameters
	maxDepth int

	// Model state
	root *treeNode
}

// TreeOption configures a Tree classifier.
type TreeOption func(*Tree)

// WithMaxDepth sets the depth bound. Depth 0 forces a single root leaf.
func WithMaxDepth(d int) TreeOption {
	return func(t *Tree) { t.maxDepth = d }
}

// NewTree creates a decision tree with maxDepth=4.
func NewTree(opts ...TreeOption) *Tree {
	t := &Tree{
		state:    model.NewStateManager(),
		maxDepth: 4,
	}
	t.logger = log.GetLoggerWithName("classifier").With(
		log.ModelNameKey, "Tree",
		log.ComponentKey, "classifier",
	)
	for _, opt := range opts {
		opt(t)
	}
	return t
}

// Kind identifies the variant.
func (t *Tree) Kind() model.Kind { return model.KindTree }

// Fit grows the tree by recursive binary partitioning.
func (t *Tree) Fit(X, y mat.Matrix) (err error) {
	defer boundErrors.Recover(&err, "Tree.Fit")

	if t.maxDepth < 0 {
		return boundErrors.NewHyperparameterError("Tree", "max_depth", "must be non-negative", t.maxDepth)
	}
	n, err := validateTrainingData("Tree.Fit", X, y, true)
	if err != nil {
		return err
	}

	start := time.Now()
	points, labels := cloneTraining(X, y, n)
	indices := make([]int, n)
	for i := range indices {
		indices[i] = i
	}

	t.root = t.build(points, labels, indices, 0)
	t.state.SetFitted()
	t.state.SetDimensions(model.NumFeatures, n)

	t.logger.Info("Training completed",
		log.OperationKey, log.OperationFit,
		log.DurationMsKey, time.Since(start).Milliseconds(),
		log.SamplesKey, n,
		"depth", t.Depth(),
		"leaves", t.NumLeaves(),
	)
	return nil
}

// build grows one subtree over the samples selected by indices.
func (t *Tree) build(points [][2]float64, labels []int, indices []int, depth int) *treeNode {
	n := len(indices)
	ones := 0
	for _, i := range indices {
		ones += labels[i]
	}
	proba := float64(ones) / float64(n)

	node := &treeNode{proba: proba, depth: depth, nSamples: n}

	// Leaf conditions: depth bound reached, pure node, or (below) no split
	// that strictly reduces impurity.
	if depth >= t.maxDepth || ones == 0 || ones == n {
		node.isLeaf = true
		return node
	}

	parentImpurity := gini(ones, n)
	feature, threshold, gain := bestSplit(points, labels, indices, parentImpurity)
	if feature == -1 || gain <= 0 {
		node.isLeaf = true
		return node
	}

	var leftIdx, rightIdx []int
	for _, i := range indices {
		// Equality at the boundary goes right, same as the walker.
		if points[i][feature] < threshold {
			leftIdx = append(leftIdx, i)
		} else {
			rightIdx = append(rightIdx, i)
		}
	}
	if len(leftIdx) == 0 || len(rightIdx) == 0 {
		node.isLeaf = true
		return node
	}

	node.feature = feature
	node.threshold = threshold
	node.left = t.build(points, labels, leftIdx, depth+1)
	node.right = t.build(points, labels, rightIdx, depth+1)
	return node
}

// bestSplit enumerates both features; candidate thresholds are midpoints
// between consecutive distinct sorted values. Returns (-1, 0, 0) when no
// candidate strictly reduces the weighted Gini impurity.
func bestSplit(points [][2]float64, labels []int, indices []int, parentImpurity float64) (int, float64, float64) {
	n := len(indices)
	bestFeature := -1
	bestThreshold := 0.0
	bestGain := 0.0

	sorted := make([]int, n)
	for feature := 0; feature < 2; feature++ {
		copy(sorted, indices)
		sort.Slice(sorted, func(a, b int) bool {
			return points[sorted[a]][feature] < points[sorted[b]][feature]
		})

		// Sweep left to right maintaining left-side counts.
		leftN, leftOnes := 0, 0
		totalOnes := 0
		for _, i := range indices {
			totalOnes += labels[i]
		}

		for s := 0; s < n-1; s++ {
			i := sorted[s]
			leftN++
			leftOnes += labels[i]

			v, next := points[i][feature], points[sorted[s+1]][feature]
			if v == next {
				continue
			}
			threshold := (v + next) / 2

			rightN := n - leftN
			rightOnes := totalOnes - leftOnes
			weighted := (float64(leftN)*gini(leftOnes, leftN) +
				float64(rightN)*gini(rightOnes, rightN)) / float64(n)
			gain := parentImpurity - weighted

			if gain > bestGain {
				bestGain = gain
				bestFeature = feature
				bestThreshold = threshold
			}
		}
	}
	return bestFeature, bestThreshold, bestGain
}

// gini computes 1 - p0^2 - p1^2 for a node with ones positives out of n.
func gini(ones, n int) float64 {
	if n == 0 {
		return 0
	}
	p1 := float64(ones) / float64(n)
	p0 := 1 - p1
	return 1 - p0*p0 - p1*p1
}

// PredictProba walks each query point to a leaf and returns its stored
// class-1 proportion. The split convention is fixed: values strictly below
// the threshold go left, equality and above go right.
func (t *Tree) PredictProba(X mat.Matrix) (_ *mat.VecDense, err error) {
	defer boundErrors.Recover(&err, "Tree.PredictProba")
	if !t.state.IsFitted() {
		return nil, boundErrors.NewNotFittedError("Tree", "PredictProba")
	}
	n, err := validatePredictInput("Tree.PredictProba", X)
	if err != nil {
		return nil, err
	}

	probs := mat.NewVecDense(n, nil)
	for i := 0; i < n; i++ {
		node := t.root
		for !node.isLeaf {
			if X.At(i, node.feature) < node.threshold {
				node = node.left
			} else {
				node = node.right
			}
		}
		probs.SetVec(i, node.proba)
	}
	return probs, nil
}

// Predict thresholds PredictProba at 0.5.
func (t *Tree) Predict(X mat.Matrix) (*mat.VecDense, error) {
	probs, err := t.PredictProba(X)
	if err != nil {
		return nil, err
	}
	return thresholdProbs(probs), nil
}

// Depth returns the maximum leaf depth of the fitted tree.
func (t *Tree) Depth() int {
	return maxLeafDepth(t.root)
}

func maxLeafDepth(node *treeNode) int {
	if node == nil {
		return 0
	}
	if node.isLeaf {
		return node.depth
	}
	l, r := maxLeafDepth(node.left), maxLeafDepth(node.right)
	if l > r {
		return l
	}
	return r
}

// NumLeaves returns the number of leaves in the fitted tree.
func (t *Tree) NumLeaves() int {
	return countLeaves(t.root)
}

func countLeaves(node *treeNode) int {
	if node == nil {
		return 0
	}
	if node.isLeaf {
		return 1
	}
	return countLeaves(node.left) + countLeaves(node.right)
}
