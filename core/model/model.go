// Package model defines the shared classifier contract and fitted-state
// tracking used by every learning algorithm in this module.
//
// All classifiers operate on two real-valued features and two classes
// (labels 0 and 1). They consume gonum matrices and expose the uniform
// capability set {Fit, PredictProba, Predict}:
//
//	clf := classifier.NewRBFSVM()
//	if err := clf.Fit(X, y); err != nil { ... }
//	probs, err := clf.PredictProba(XGrid)
//
// PredictProba returns the probability of class 1 for each input row;
// Predict thresholds it at 0.5 with ties resolved toward class 1.
package model

import (
	"sync"

	"gonum.org/v1/gonum/mat"
)

// NumFeatures is the fixed input dimensionality of every classifier.
const NumFeatures = 2

// Classifier is the uniform train/predict contract shared by all six
// variants. A fresh model state is produced by each Fit call; model state
// is read-only after Fit returns and is replaced wholesale on re-fit.
type Classifier interface {
	// Fit trains the model on X (n x 2) and labels y (n x 1, values 0/1).
	// It never mutates X or y.
	Fit(X, y mat.Matrix) error

	// PredictProba returns the probability of class 1 for each row of X.
	// Every value lies in [0, 1].
	PredictProba(X mat.Matrix) (*mat.VecDense, error)

	// Predict returns hard labels: 1 where PredictProba >= 0.5, else 0.
	Predict(X mat.Matrix) (*mat.VecDense, error)

	// Kind identifies the classifier variant.
	Kind() Kind
}

// Kind enumerates the classifier variants.
type Kind string

const (
	KindLinear  Kind = "linear"
	KindPolySVM Kind = "poly_svm"
	KindRBFSVM  Kind = "rbf_svm"
	KindKNN     Kind = "knn"
	KindTree    Kind = "decision_tree"
	KindMLP     Kind = "mlp"
)

// Kinds returns all classifier kinds in their canonical display order.
func Kinds() []Kind {
	return []Kind{KindLinear, KindPolySVM, KindRBFSVM, KindKNN, KindTree, KindMLP}
}

// String returns the kind identifier.
func (k Kind) String() string { return string(k) }

// StateManager tracks whether a model has been fitted. It is held by
// composition rather than embedding so that model structs stay plain data.
type StateManager struct {
	mu        sync.RWMutex
	fitted    bool
	nFeatures int
	nSamples  int
}

// NewStateManager creates an unfitted state manager.
func NewStateManager() *StateManager {
	return &StateManager{}
}

// IsFitted reports whether the model has been trained.
func (s *StateManager) IsFitted() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.fitted
}

// SetFitted marks the model as trained.
func (s *StateManager) SetFitted() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.fitted = true
}

// Reset returns the model to the untrained state.
func (s *StateManager) Reset() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.fitted = false
	s.nFeatures = 0
	s.nSamples = 0
}

// SetDimensions records the training data shape.
func (s *StateManager) SetDimensions(nFeatures, nSamples int) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.nFeatures = nFeatures
	s.nSamples = nSamples
}

// Dimensions returns the recorded training data shape.
func (s *StateManager) Dimensions() (nFeatures, nSamples int) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.nFeatures, s.nSamples
}
