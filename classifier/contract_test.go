package classifier

import (
	"testing"

	"gonum.org/v1/gonum/mat"

	"github.com/dishant2009/Decision-Boundaries-Understanding-How-Different-Classifiers-See-Your-Data/core/model"
	boundErrors "github.com/dishant2009/Decision-Boundaries-Understanding-How-Different-Classifiers-See-Your-Data/pkg/errors"
)

// xorX / xorY is the canonical linearly inseparable set.
func xorData() (*mat.Dense, *mat.VecDense) {
	X := mat.NewDense(4, 2, []float64{
		0, 0,
		1, 1,
		0, 1,
		1, 0,
	})
	y := mat.NewVecDense(4, []float64{0, 0, 1, 1})
	return X, y
}

// separableData builds two tight clusters around (-2,-2) and (2,2).
func separableData() (*mat.Dense, *mat.VecDense) {
	offsets := []float64{-0.3, -0.15, 0, 0.15, 0.3}
	n := len(offsets) * len(offsets) * 2
	X := mat.NewDense(n, 2, nil)
	y := mat.NewVecDense(n, nil)
	i := 0
	for _, dx := range offsets {
		for _, dy := range offsets {
			X.Set(i, 0, -2+dx)
			X.Set(i, 1, -2+dy)
			y.SetVec(i, 0)
			i++
			X.Set(i, 0, 2+dx)
			X.Set(i, 1, 2+dy)
			y.SetVec(i, 1)
			i++
		}
	}
	return X, y
}

func allVariants() map[model.Kind]model.Classifier {
	return map[model.Kind]model.Classifier{
		model.KindLinear:  NewLinear(),
		model.KindPolySVM: NewPolySVM(),
		model.KindRBFSVM:  NewRBFSVM(),
		model.KindKNN:     NewKNN(),
		model.KindTree:    NewTree(),
		model.KindMLP:     NewMLP(WithMLPIterations(200)),
	}
}

func TestPredictProba_AlwaysInUnitInterval(t *testing.T) {
	X, y := xorData()
	queries := mat.NewDense(5, 2, []float64{
		-3, -3,
		3, 3,
		0.5, 0.5,
		-10, 10,
		0, 0,
	})

	for kind, clf := range allVariants() {
		t.Run(kind.String(), func(t *testing.T) {
			if err := clf.Fit(X, y); err != nil {
				t.Fatalf("Fit() error = %v", err)
			}
			probs, err := clf.PredictProba(queries)
			if err != nil {
				t.Fatalf("PredictProba() error = %v", err)
			}
			if probs.Len() != 5 {
				t.Fatalf("PredictProba() returned %d values, want 5", probs.Len())
			}
			for i := 0; i < probs.Len(); i++ {
				p := probs.AtVec(i)
				if p < 0 || p > 1 {
					t.Errorf("probability %v at %d outside [0,1]", p, i)
				}
			}
		})
	}
}

func TestPredict_IsThresholdedProba(t *testing.T) {
	X, y := xorData()
	queries := mat.NewDense(3, 2, []float64{-1, -1, 0.5, 0.5, 2, 2})

	for kind, clf := range allVariants() {
		t.Run(kind.String(), func(t *testing.T) {
			if err := clf.Fit(X, y); err != nil {
				t.Fatalf("Fit() error = %v", err)
			}
			probs, err := clf.PredictProba(queries)
			if err != nil {
				t.Fatalf("PredictProba() error = %v", err)
			}
			labels, err := clf.Predict(queries)
			if err != nil {
				t.Fatalf("Predict() error = %v", err)
			}
			for i := 0; i < probs.Len(); i++ {
				want := 0.0
				if probs.AtVec(i) >= 0.5 {
					want = 1.0
				}
				if labels.AtVec(i) != want {
					t.Errorf("label[%d] = %v, want %v for p=%v", i, labels.AtVec(i), want, probs.AtVec(i))
				}
			}
		})
	}
}

func TestPredict_BeforeFitIsNotFittedError(t *testing.T) {
	queries := mat.NewDense(1, 2, []float64{0, 0})

	for kind, clf := range allVariants() {
		t.Run(kind.String(), func(t *testing.T) {
			if _, err := clf.PredictProba(queries); err == nil {
				t.Fatal("PredictProba() before Fit should fail")
			} else {
				var nf *boundErrors.NotFittedError
				if !boundErrors.As(err, &nf) {
					t.Errorf("error = %v, want NotFittedError", err)
				}
			}
		})
	}
}

func TestFit_OneClassIsDegenerateForNonLazyVariants(t *testing.T) {
	X := mat.NewDense(4, 2, []float64{0, 0, 1, 0, 0, 1, 1, 1})
	y := mat.NewVecDense(4, nil) // all class 0

	for kind, clf := range allVariants() {
		if kind == model.KindKNN {
			continue // lazy learner accepts one-class sets
		}
		t.Run(kind.String(), func(t *testing.T) {
			err := clf.Fit(X, y)
			if err == nil {
				t.Fatal("Fit() on one-class set should fail")
			}
			var dg *boundErrors.DegenerateDatasetError
			if !boundErrors.As(err, &dg) {
				t.Errorf("error = %v, want DegenerateDatasetError", err)
			}
		})
	}
}

func TestFit_DoesNotMutateTrainingData(t *testing.T) {
	X, y := xorData()
	wantX := mat.DenseCopyOf(X)
	wantY := mat.VecDenseCopyOf(y)

	for kind, clf := range allVariants() {
		t.Run(kind.String(), func(t *testing.T) {
			if err := clf.Fit(X, y); err != nil {
				t.Fatalf("Fit() error = %v", err)
			}
			if !mat.Equal(X, wantX) || !mat.Equal(y, wantY) {
				t.Error("Fit() mutated its training data")
			}
		})
	}
}

func TestFit_ReplacesModelStateWholesale(t *testing.T) {
	X1, y1 := separableData()
	// Second fit on inverted labels: predictions must flip, proving no
	// carry-over from the first model state.
	n, _ := X1.Dims()
	y2 := mat.NewVecDense(n, nil)
	for i := 0; i < n; i++ {
		y2.SetVec(i, 1-y1.AtVec(i))
	}

	clf := NewKNN(WithK(1))
	if err := clf.Fit(X1, y1); err != nil {
		t.Fatalf("first Fit() error = %v", err)
	}
	if err := clf.Fit(X1, y2); err != nil {
		t.Fatalf("second Fit() error = %v", err)
	}
	pred, err := clf.Predict(X1)
	if err != nil {
		t.Fatalf("Predict() error = %v", err)
	}
	for i := 0; i < n; i++ {
		if pred.AtVec(i) != y2.AtVec(i) {
			t.Fatalf("prediction %d = %v, want refit label %v", i, pred.AtVec(i), y2.AtVec(i))
		}
	}
}
