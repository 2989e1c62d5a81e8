// Package render turns probability grids into decision-boundary plots: a
// heatmap of the classifier's class-1 probability, the 0.5 contour line,
// and a scatter overlay of the training samples (with support vectors
// ringed for the kernel SVMs).
package render

import (
	"fmt"
	"image/color"
	"os"
	"path/filepath"

	"gonum.org/v1/plot"
	"gonum.org/v1/plot/palette/moreland"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/vg"
	"gonum.org/v1/plot/vg/draw"

	"github.com/dishant2009/Decision-Boundaries-Understanding-How-Different-Classifiers-See-Your-Data/dataset"
	"github.com/dishant2009/Decision-Boundaries-Understanding-How-Different-Classifiers-See-Your-Data/mesh"
	boundErrors "github.com/dishant2009/Decision-Boundaries-Understanding-How-Different-Classifiers-See-Your-Data/pkg/errors"
	"github.com/dishant2009/Decision-Boundaries-Understanding-How-Different-Classifiers-See-Your-Data/session"
)

// probGrid adapts mesh.Grid to plotter.GridXYZ.
type probGrid struct {
	g *mesh.Grid
}

func (p probGrid) Dims() (c, r int) {
	rows, cols := p.g.Dims()
	return cols, rows
}

func (p probGrid) Z(c, r int) float64 { return p.g.At(r, c) }
func (p probGrid) X(c int) float64    { return p.g.Xs[c] }
func (p probGrid) Y(r int) float64    { return p.g.Ys[r] }

var (
	class0Color  = color.RGBA{R: 214, G: 96, B: 77, A: 255}
	class1Color  = color.RGBA{R: 67, G: 147, B: 195, A: 255}
	contourColor = color.RGBA{A: 255}
)

// Plot renders one fit+evaluate result to a PNG at path.
func Plot(res session.Result, set *dataset.SampleSet, title, path string) error {
	if res.Err != nil {
		return boundErrors.Wrapf(res.Err, "render.Plot: %s has no grid", res.Kind)
	}
	if res.Grid == nil {
		return boundErrors.NewValueError("render.Plot", "result carries no grid")
	}

	p := plot.New()
	p.Title.Text = title
	p.X.Label.Text = "x"
	p.Y.Label.Text = "y"

	pal := moreland.SmoothBlueRed().Palette(255)
	heat := plotter.NewHeatMap(probGrid{g: res.Grid}, pal)
	heat.Min, heat.Max = 0, 1
	p.Add(heat)

	// The decision boundary is exactly the 0.5 level set.
	contour := plotter.NewContour(probGrid{g: res.Grid}, []float64{0.5}, pal)
	p.Add(contour)

	if set != nil {
		if err := addSamples(p, set); err != nil {
			return err
		}
	}
	if len(res.SupportVectors) > 0 {
		if err := addSupportVectors(p, res.SupportVectors); err != nil {
			return err
		}
	}

	if err := p.Save(6*vg.Inch, 6*vg.Inch, path); err != nil {
		return boundErrors.Wrap(err, "render.Plot: save failed")
	}
	return nil
}

// PlotComparison renders one PNG per variant into dir, named after the
// classifier kind. Variants that failed carry no grid and are skipped;
// reporting their errors is the caller's job.
func PlotComparison(results map[string]session.Result, set *dataset.SampleSet, dir string) error {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return boundErrors.Wrap(err, "render.PlotComparison: mkdir failed")
	}
	for name, res := range results {
		if res.Err != nil {
			continue
		}
		title := fmt.Sprintf("%s (train acc %.2f)", name, res.TrainAccuracy)
		path := filepath.Join(dir, name+".png")
		if err := Plot(res, set, title, path); err != nil {
			return err
		}
	}
	return nil
}

func addSamples(p *plot.Plot, set *dataset.SampleSet) error {
	var pts0, pts1 plotter.XYs
	for _, s := range set.Samples() {
		if s.Label == 1 {
			pts1 = append(pts1, plotter.XY{X: s.X, Y: s.Y})
		} else {
			pts0 = append(pts0, plotter.XY{X: s.X, Y: s.Y})
		}
	}

	for _, group := range []struct {
		pts plotter.XYs
		col color.Color
	}{{pts0, class0Color}, {pts1, class1Color}} {
		if len(group.pts) == 0 {
			continue
		}
		sc, err := plotter.NewScatter(group.pts)
		if err != nil {
			return boundErrors.Wrap(err, "render: scatter failed")
		}
		sc.GlyphStyle.Color = group.col
		sc.GlyphStyle.Radius = vg.Points(2.5)
		sc.GlyphStyle.Shape = draw.CircleGlyph{}
		p.Add(sc)
	}
	return nil
}

func addSupportVectors(p *plot.Plot, svs []dataset.Sample) error {
	var pts plotter.XYs
	for _, s := range svs {
		pts = append(pts, plotter.XY{X: s.X, Y: s.Y})
	}
	sc, err := plotter.NewScatter(pts)
	if err != nil {
		return boundErrors.Wrap(err, "render: support vector scatter failed")
	}
	sc.GlyphStyle.Color = contourColor
	sc.GlyphStyle.Radius = vg.Points(4)
	sc.GlyphStyle.Shape = draw.RingGlyph{}
	p.Add(sc)
	return nil
}
