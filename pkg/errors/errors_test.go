package errors

import (
	"strings"
	"testing"
)

func TestNotFittedError(t *testing.T) {
	err := NewNotFittedError("RBFSVM", "PredictProba")

	if !Is(err, ErrNotFitted) {
		t.Error("NotFittedError should match ErrNotFitted")
	}
	var nf *NotFittedError
	if !As(err, &nf) {
		t.Fatal("As() should extract *NotFittedError")
	}
	if nf.ModelName != "RBFSVM" || nf.Method != "PredictProba" {
		t.Errorf("unexpected fields: %+v", nf)
	}
	if !strings.Contains(err.Error(), "RBFSVM") {
		t.Errorf("Error() = %q, want model name included", err.Error())
	}
}

func TestDegenerateDatasetError(t *testing.T) {
	err := NewDegenerateDatasetError("Tree.Fit", 1)

	var dg *DegenerateDatasetError
	if !As(err, &dg) {
		t.Fatal("As() should extract *DegenerateDatasetError")
	}
	if dg.Op != "Tree.Fit" || dg.NClasses != 1 {
		t.Errorf("unexpected fields: %+v", dg)
	}
	if Is(err, ErrNotFitted) {
		t.Error("DegenerateDatasetError should not match ErrNotFitted")
	}
}

func TestConvergenceError(t *testing.T) {
	err := NewConvergenceError("MLP.Fit", 42)

	var ce *ConvergenceError
	if !As(err, &ce) {
		t.Fatal("As() should extract *ConvergenceError")
	}
	if ce.Iteration != 42 {
		t.Errorf("Iteration = %d, want 42", ce.Iteration)
	}
	if !strings.Contains(err.Error(), "42") {
		t.Errorf("Error() = %q, want iteration included", err.Error())
	}
}

func TestHyperparameterError(t *testing.T) {
	err := NewHyperparameterError("KNN", "k", "must be at least 1", 0)

	var he *HyperparameterError
	if !As(err, &he) {
		t.Fatal("As() should extract *HyperparameterError")
	}
	msg := err.Error()
	for _, want := range []string{"KNN", "k=0", "must be at least 1"} {
		if !strings.Contains(msg, want) {
			t.Errorf("Error() = %q, want %q included", msg, want)
		}
	}
}

func TestDimensionError_AxisNames(t *testing.T) {
	rows := NewDimensionError("Linear.Predict", 2, 3, 0)
	if !strings.Contains(rows.Error(), "rows") {
		t.Errorf("Error() = %q, want axis 0 rendered as rows", rows.Error())
	}
	cols := NewDimensionError("Linear.Predict", 2, 3, 1)
	if !strings.Contains(cols.Error(), "columns") {
		t.Errorf("Error() = %q, want axis 1 rendered as columns", cols.Error())
	}
}

func TestModelError_WrapsCause(t *testing.T) {
	err := NewModelError("Linear.Fit", "no dataset", ErrEmptyData)

	if !Is(err, ErrEmptyData) {
		t.Error("ModelError should match its wrapped cause")
	}
	if !strings.HasPrefix(err.Error(), "boundaries: ") {
		t.Errorf("Error() = %q, want boundaries prefix", err.Error())
	}

	bare := NewModelError("Linear.Fit", "no dataset", nil)
	if Is(bare, ErrEmptyData) {
		t.Error("ModelError without cause should not match ErrEmptyData")
	}
}

func TestWrapPreservesChain(t *testing.T) {
	err := Wrap(ErrEmptyData, "loading training set")
	if !Is(err, ErrEmptyData) {
		t.Error("Wrap should preserve the chain")
	}
	err = Wrapf(ErrNotFitted, "model %s", "MLP")
	if !Is(err, ErrNotFitted) {
		t.Error("Wrapf should preserve the chain")
	}
}

func TestRecover(t *testing.T) {
	run := func() (err error) {
		defer Recover(&err, "Tree.Fit")
		panic("index out of range")
	}
	err := run()
	if err == nil {
		t.Fatal("Recover should convert the panic into an error")
	}
	if !strings.Contains(err.Error(), "Tree.Fit") {
		t.Errorf("Error() = %q, want operation included", err.Error())
	}

	clean := func() (err error) {
		defer Recover(&err, "Tree.Fit")
		return nil
	}
	if err := clean(); err != nil {
		t.Errorf("Recover without a panic should leave err nil, got %v", err)
	}
}
