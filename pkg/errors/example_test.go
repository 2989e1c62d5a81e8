package errors_test

import (
	"errors"
	"fmt"

	boundErrors "github.com/dishant2009/Decision-Boundaries-Understanding-How-Different-Classifiers-See-Your-Data/pkg/errors"
)

// Example demonstrates Go 1.13+ error wrapping with training errors.
func Example() {
	baseErr := fmt.Errorf("invalid sample labels")
	wrappedErr := fmt.Errorf("dataset validation failed: %w", baseErr)
	opErr := fmt.Errorf("RBFSVM.Fit: %w", wrappedErr)

	if errors.Is(opErr, baseErr) {
		fmt.Println("Found base error in chain")
	}

	unwrapped := errors.Unwrap(opErr)
	fmt.Printf("Unwrapped: %v\n", unwrapped)

	// Output: Found base error in chain
	// Unwrapped: dataset validation failed: invalid sample labels
}

// Example_customErrorTypes demonstrates extracting structured error fields.
func Example_customErrorTypes() {
	dimErr := boundErrors.NewDimensionError("Linear.Predict", 2, 3, 1)
	wrappedErr := fmt.Errorf("grid evaluation failed: %w", dimErr)

	var dimensionErr *boundErrors.DimensionError
	if errors.As(wrappedErr, &dimensionErr) {
		fmt.Printf("Dimension error: expected %d, got %d\n",
			dimensionErr.Expected, dimensionErr.Got)
	}

	// Output: Dimension error: expected 2, got 3
}

// Example_errorComparison demonstrates Is and As across the taxonomy.
func Example_errorComparison() {
	notFittedErr := boundErrors.NewNotFittedError("MLP", "PredictProba")
	degenerateErr := boundErrors.NewDegenerateDatasetError("Tree.Fit", 1)

	if errors.Is(notFittedErr, boundErrors.ErrNotFitted) {
		fmt.Println("Model needs training first")
	}

	var notFitted *boundErrors.NotFittedError
	if errors.As(notFittedErr, &notFitted) {
		fmt.Printf("Model %s is not fitted for %s\n",
			notFitted.ModelName, notFitted.Method)
	}

	var degenerate *boundErrors.DegenerateDatasetError
	if errors.As(degenerateErr, &degenerate) {
		fmt.Printf("Training set had %d class(es)\n", degenerate.NClasses)
	}

	// Output: Model needs training first
	// Model MLP is not fitted for PredictProba
	// Training set had 1 class(es)
}

// Example_errorChaining demonstrates a full fit pipeline error chain.
func Example_errorChaining() {
	simulateFitError := func() error {
		dataErr := fmt.Errorf("labels must be 0 or 1")
		validationErr := fmt.Errorf("training data validation failed: %w", dataErr)
		return fmt.Errorf("comparison variant poly_svm failed: %w", validationErr)
	}

	err := simulateFitError()
	fmt.Printf("Error: %v\n", err)

	current := err
	level := 0
	for current != nil {
		fmt.Printf("Level %d: %v\n", level, current)
		current = errors.Unwrap(current)
		level++
	}

	// Output: Error: comparison variant poly_svm failed: training data validation failed: labels must be 0 or 1
	// Level 0: comparison variant poly_svm failed: training data validation failed: labels must be 0 or 1
	// Level 1: training data validation failed: labels must be 0 or 1
	// Level 2: labels must be 0 or 1
}

// Example_modelError demonstrates wrapping a sentinel with operation context.
func Example_modelError() {
	baseErr := boundErrors.NewModelError("Session.Submit", "no dataset configured",
		boundErrors.ErrEmptyData)
	opErr := fmt.Errorf("fit cycle generation 3: %w", baseErr)

	fmt.Printf("Error occurred in session: %v\n", opErr)

	// Output: Error occurred in session: fit cycle generation 3: boundaries: Session.Submit: no dataset configured: empty data
}
