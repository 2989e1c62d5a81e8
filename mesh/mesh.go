// Package mesh samples a trained classifier's probability output over a
// regular 2-D lattice. The resulting grid is what the rendering layer turns
// into a heatmap and a 0.5 decision-boundary contour.
package mesh

import (
	"math"

	"gonum.org/v1/gonum/mat"

	"github.com/dishant2009/Decision-Boundaries-Understanding-How-Different-Classifiers-See-Your-Data/core/model"
	boundErrors "github.com/dishant2009/Decision-Boundaries-Understanding-How-Different-Classifiers-See-Your-Data/pkg/errors"
)

// Range describes the rectangular evaluation window and lattice step.
type Range struct {
	XMin, XMax float64
	YMin, YMax float64
	Step       float64
}

// DefaultRange is the standard [-3,3] x [-3,3] window at step 0.1,
// producing a 61 x 61 grid.
func DefaultRange() Range {
	return Range{XMin: -3, XMax: 3, YMin: -3, YMax: 3, Step: 0.1}
}

func (r Range) validate() error {
	if !(r.Step > 0) {
		return boundErrors.NewValueError("mesh.Evaluate", "step must be positive")
	}
	if r.XMax < r.XMin || r.YMax < r.YMin {
		return boundErrors.NewValueError("mesh.Evaluate", "range is inverted")
	}
	return nil
}

// axis enumerates min, min+step, ... up to and including max (within half a
// step of rounding slack, so [-3,3]/0.1 yields exactly 61 points).
func axis(min, max, step float64) []float64 {
	n := int(math.Floor((max-min)/step+0.5)) + 1
	vals := make([]float64, n)
	for i := 0; i < n; i++ {
		vals[i] = min + float64(i)*step
	}
	return vals
}

// Grid is a row-major probability lattice: Probs[i][j] is the classifier's
// class-1 probability at (Xs[j], Ys[i]).
type Grid struct {
	Xs    []float64
	Ys    []float64
	Probs [][]float64
}

// Dims returns (rows, cols).
func (g *Grid) Dims() (rows, cols int) {
	return len(g.Ys), len(g.Xs)
}

// At returns the probability at row i, column j.
func (g *Grid) At(i, j int) float64 { return g.Probs[i][j] }

// Evaluate samples clf over the lattice described by r. It is a pure
// mapping from (model, range, step) to grid: no state is retained and
// re-evaluating the same fitted model yields identical output. Rows are
// evaluated as one batched PredictProba call each.
func Evaluate(clf model.Classifier, r Range) (*Grid, error) {
	if err := r.validate(); err != nil {
		return nil, err
	}

	xs := axis(r.XMin, r.XMax, r.Step)
	ys := axis(r.YMin, r.YMax, r.Step)

	row := mat.NewDense(len(xs), model.NumFeatures, nil)
	probs := make([][]float64, len(ys))
	for i, yv := range ys {
		for j, xv := range xs {
			row.Set(j, 0, xv)
			row.Set(j, 1, yv)
		}
		p, err := clf.PredictProba(row)
		if err != nil {
			return nil, boundErrors.Wrapf(err, "mesh.Evaluate: row %d", i)
		}
		probs[i] = make([]float64, len(xs))
		for j := range probs[i] {
			probs[i][j] = p.AtVec(j)
		}
	}

	return &Grid{Xs: xs, Ys: ys, Probs: probs}, nil
}
