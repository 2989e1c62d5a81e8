package classifier

import (
	"math"
	"testing"

	"gonum.org/v1/gonum/mat"

	boundErrors "github.com/dishant2009/Decision-Boundaries-Understanding-How-Different-Classifiers-See-Your-Data/pkg/errors"
)

func TestRBFSVM_SolvesXOR(t *testing.T) {
	X, y := xorData()
	clf := NewRBFSVM()
	if err := clf.Fit(X, y); err != nil {
		t.Fatalf("Fit() error = %v", err)
	}
	if acc := trainAccuracy(t, clf, X, y); acc < 0.9 {
		t.Errorf("training accuracy = %v, want >= 0.9", acc)
	}
}

func TestPolySVM_SeparableClusters(t *testing.T) {
	X, y := separableData()
	clf := NewPolySVM(WithPolyDegree(2))
	if err := clf.Fit(X, y); err != nil {
		t.Fatalf("Fit() error = %v", err)
	}
	if acc := trainAccuracy(t, clf, X, y); acc < 0.95 {
		t.Errorf("training accuracy = %v, want >= 0.95", acc)
	}
}

func TestKernelSVM_OverflowingKernelIsConvergenceError(t *testing.T) {
	// Coordinates this large overflow the cubic polynomial kernel, and the
	// dual gradient becomes Inf - Inf = NaN. The fit must fail instead of
	// keeping NaN coefficients that would leak into PredictProba.
	X := mat.NewDense(3, 2, []float64{
		1, 0,
		1e199, 0,
		1e200, 0,
	})
	y := mat.NewVecDense(3, []float64{1, 0, 1})

	clf := NewPolySVM(WithPolyIterations(1))
	err := clf.Fit(X, y)
	if err == nil {
		t.Fatal("Fit() with overflowing kernel values should fail")
	}
	var ce *boundErrors.ConvergenceError
	if !boundErrors.As(err, &ce) {
		t.Fatalf("error = %v, want ConvergenceError", err)
	}
	if _, err := clf.PredictProba(X); err == nil {
		t.Error("PredictProba() after diverged fit should fail")
	}
}

func TestKernelSVM_DualCoefficientsStayInBox(t *testing.T) {
	X, y := xorData()
	c := 0.7
	clf := NewRBFSVM(WithRBFC(c))
	if err := clf.Fit(X, y); err != nil {
		t.Fatalf("Fit() error = %v", err)
	}
	for i, a := range clf.alphas {
		if a < 0 || a > c {
			t.Errorf("alpha[%d] = %v outside [0, %v]", i, a, c)
		}
	}
}

func TestKernelSVM_ReportsSupportVectors(t *testing.T) {
	X, y := xorData()
	clf := NewRBFSVM()
	if err := clf.Fit(X, y); err != nil {
		t.Fatalf("Fit() error = %v", err)
	}
	svs := clf.SupportVectors()
	if len(svs) == 0 {
		t.Fatal("expected at least one support vector on XOR")
	}
	for _, sv := range svs {
		if sv.Label != 0 && sv.Label != 1 {
			t.Errorf("support vector label = %d, want 0 or 1", sv.Label)
		}
	}
	// Unfitted models report none.
	if fresh := NewRBFSVM(); fresh.SupportVectors() != nil {
		t.Error("unfitted model should report no support vectors")
	}
}

func TestKernelSVM_CollapsedModelStillYieldsValidProbabilities(t *testing.T) {
	// A tiny box constraint keeps every alpha near zero; the decision
	// function is then close to constant and probabilities sit near 0.5
	// instead of the fit failing.
	X, y := xorData()
	clf := NewRBFSVM(WithRBFC(1e-9), WithRBFIterations(5))
	if err := clf.Fit(X, y); err != nil {
		t.Fatalf("Fit() error = %v", err)
	}
	probs, err := clf.PredictProba(X)
	if err != nil {
		t.Fatalf("PredictProba() error = %v", err)
	}
	for i := 0; i < probs.Len(); i++ {
		if math.Abs(probs.AtVec(i)-0.5) > 0.01 {
			t.Errorf("probability %d = %v, want near 0.5", i, probs.AtVec(i))
		}
	}
}

func TestKernelSVM_HyperparameterValidation(t *testing.T) {
	X, y := xorData()
	tests := []struct {
		name string
		err  error
	}{
		{"poly degree zero", NewPolySVM(WithPolyDegree(0)).Fit(X, y)},
		{"poly C zero", NewPolySVM(WithPolyC(0)).Fit(X, y)},
		{"rbf gamma zero", NewRBFSVM(WithRBFGamma(0)).Fit(X, y)},
		{"rbf negative C", NewRBFSVM(WithRBFC(-1)).Fit(X, y)},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if tt.err == nil {
				t.Fatal("Fit() should reject invalid hyperparameters")
			}
			var hp *boundErrors.HyperparameterError
			if !boundErrors.As(tt.err, &hp) {
				t.Errorf("error = %v, want HyperparameterError", tt.err)
			}
		})
	}
}

func TestPolyKernelValue(t *testing.T) {
	clf := NewPolySVM(WithPolyDegree(2))
	got := clf.kernel([2]float64{1, 2}, [2]float64{3, 0})
	// (1*3 + 2*0 + 1)^2 = 16
	if got != 16 {
		t.Errorf("poly kernel = %v, want 16", got)
	}
}

func TestRBFKernelValue(t *testing.T) {
	clf := NewRBFSVM(WithRBFGamma(0.5))
	got := clf.kernel([2]float64{0, 0}, [2]float64{1, 1})
	want := math.Exp(-0.5 * 2)
	if math.Abs(got-want) > 1e-12 {
		t.Errorf("rbf kernel = %v, want %v", got, want)
	}
}
