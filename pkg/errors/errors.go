// Package errors defines the error taxonomy shared by every classifier and
// orchestration component in this module.
//
// Two kinds of failures are distinguished:
//
//   - Data/contract failures surfaced before or during training:
//     DegenerateDatasetError, HyperparameterError, DimensionError, ValueError
//   - Runtime failures of the numeric optimization itself:
//     ConvergenceError (non-finite state), NotFittedError (predict before fit)
//
// All types participate in Go 1.13+ error chains (errors.Is / errors.As) and
// carry enough structure for callers to report failures per classifier without
// string matching. Wrapping and formatting is delegated to cockroachdb/errors
// so that %+v renders stack traces.
package errors

import (
	"fmt"

	"github.com/cockroachdb/errors"
)

// Sentinel errors for common failure conditions.
var (
	// ErrEmptyData indicates an empty sample set was passed to training.
	ErrEmptyData = errors.New("empty data")
	// ErrNotFitted indicates a model was used before training.
	ErrNotFitted = errors.New("model is not fitted")
	// ErrNotImplemented indicates a requested capability is not implemented.
	ErrNotImplemented = errors.New("not implemented")
)

// Re-exports so callers need a single errors import.

// New creates a new error with a stack trace.
func New(msg string) error { return errors.New(msg) }

// Wrap wraps err with a message, preserving the chain.
func Wrap(err error, msg string) error { return errors.Wrap(err, msg) }

// Wrapf wraps err with a formatted message, preserving the chain.
func Wrapf(err error, format string, args ...interface{}) error {
	return errors.Wrapf(err, format, args...)
}

// Is reports whether any error in err's chain matches target.
func Is(err, target error) bool { return errors.Is(err, target) }

// As finds the first error in err's chain that matches target.
func As(err error, target interface{}) bool { return errors.As(err, target) }

// NotFittedError is returned when Predict or PredictProba is called on a
// model whose Fit has not completed successfully.
type NotFittedError struct {
	ModelName string
	Method    string
}

// NewNotFittedError creates a NotFittedError for the given model and method.
func NewNotFittedError(modelName, method string) error {
	return &NotFittedError{ModelName: modelName, Method: method}
}

func (e *NotFittedError) Error() string {
	return fmt.Sprintf("%s: call Fit before %s: %v", e.ModelName, e.Method, ErrNotFitted)
}

// Unwrap returns ErrNotFitted so errors.Is(err, ErrNotFitted) holds.
func (e *NotFittedError) Unwrap() error { return ErrNotFitted }

// DegenerateDatasetError is returned by Fit when the training set does not
// contain both classes. The failure is local to that fit call; the session
// and orchestrator survive it.
type DegenerateDatasetError struct {
	Op       string // operation that rejected the data, e.g. "RBFSVM.Fit"
	NClasses int    // number of distinct classes actually present
}

// NewDegenerateDatasetError creates a DegenerateDatasetError.
func NewDegenerateDatasetError(op string, nClasses int) error {
	return &DegenerateDatasetError{Op: op, NClasses: nClasses}
}

func (e *DegenerateDatasetError) Error() string {
	return fmt.Sprintf("%s: training set must contain both classes, got %d", e.Op, e.NClasses)
}

// ConvergenceError is returned by Fit when iterative optimization produces a
// non-finite numeric state (overflow from a too-large learning rate, for
// example). The partially trained model is discarded.
type ConvergenceError struct {
	Op        string // operation that diverged, e.g. "MLP.Fit"
	Iteration int    // iteration at which the non-finite value was detected
}

// NewConvergenceError creates a ConvergenceError.
func NewConvergenceError(op string, iteration int) error {
	return &ConvergenceError{Op: op, Iteration: iteration}
}

func (e *ConvergenceError) Error() string {
	return fmt.Sprintf("%s: optimization diverged to a non-finite state at iteration %d", e.Op, e.Iteration)
}

// HyperparameterError reports an invalid hyperparameter value, surfaced
// before any training work begins.
type HyperparameterError struct {
	ModelName string
	Param     string
	Message   string
	Value     interface{}
}

// NewHyperparameterError creates a HyperparameterError.
func NewHyperparameterError(modelName, param, message string, value interface{}) error {
	return &HyperparameterError{ModelName: modelName, Param: param, Message: message, Value: value}
}

func (e *HyperparameterError) Error() string {
	return fmt.Sprintf("%s: invalid %s=%v: %s", e.ModelName, e.Param, e.Value, e.Message)
}

// DimensionError reports a shape mismatch between expected and actual data.
type DimensionError struct {
	Op       string
	Expected int
	Got      int
	Axis     int // 0 = rows, 1 = columns
}

// NewDimensionError creates a DimensionError.
func NewDimensionError(op string, expected, got, axis int) error {
	return &DimensionError{Op: op, Expected: expected, Got: got, Axis: axis}
}

func (e *DimensionError) Error() string {
	axis := "rows"
	if e.Axis == 1 {
		axis = "columns"
	}
	return fmt.Sprintf("%s: dimension mismatch on %s: expected %d, got %d", e.Op, axis, e.Expected, e.Got)
}

// ValueError reports semantically invalid input values.
type ValueError struct {
	Op      string
	Message string
}

// NewValueError creates a ValueError.
func NewValueError(op, message string) error {
	return &ValueError{Op: op, Message: message}
}

func (e *ValueError) Error() string {
	return fmt.Sprintf("%s: %s", e.Op, e.Message)
}

// ModelError wraps a lower-level cause with model operation context.
type ModelError struct {
	Op      string
	Message string
	Err     error
}

// NewModelError creates a ModelError wrapping cause.
func NewModelError(op, message string, cause error) error {
	return &ModelError{Op: op, Message: message, Err: cause}
}

func (e *ModelError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("boundaries: %s: %s: %v", e.Op, e.Message, e.Err)
	}
	return fmt.Sprintf("boundaries: %s: %s", e.Op, e.Message)
}

// Unwrap returns the wrapped cause.
func (e *ModelError) Unwrap() error { return e.Err }

// Recover converts a panic inside a model operation into an error on the
// named return. Use as:
//
//	func (m *M) Fit(...) (err error) {
//		defer errors.Recover(&err, "M.Fit")
//		...
//	}
func Recover(err *error, op string) {
	if r := recover(); r != nil {
		if e, ok := r.(error); ok {
			*err = errors.Wrapf(e, "%s: panic recovered", op)
			return
		}
		*err = errors.Newf("%s: panic recovered: %v", op, r)
	}
}
