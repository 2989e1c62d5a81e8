// Command boundaries trains classifiers on a generated 2-D dataset and
// renders their decision boundaries to PNG files.
//
// Single-classifier mode:
//
//	boundaries -pattern moons -classifier rbf_svm -out out/
//
// Comparison mode (all six variants side by side):
//
//	boundaries -pattern xor -compare -out out/
package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"path/filepath"

	"github.com/dishant2009/Decision-Boundaries-Understanding-How-Different-Classifiers-See-Your-Data/classifier"
	"github.com/dishant2009/Decision-Boundaries-Understanding-How-Different-Classifiers-See-Your-Data/core/model"
	"github.com/dishant2009/Decision-Boundaries-Understanding-How-Different-Classifiers-See-Your-Data/dataset"
	"github.com/dishant2009/Decision-Boundaries-Understanding-How-Different-Classifiers-See-Your-Data/mesh"
	"github.com/dishant2009/Decision-Boundaries-Understanding-How-Different-Classifiers-See-Your-Data/pkg/log"
	"github.com/dishant2009/Decision-Boundaries-Understanding-How-Different-Classifiers-See-Your-Data/preprocessing"
	"github.com/dishant2009/Decision-Boundaries-Understanding-How-Different-Classifiers-See-Your-Data/render"
	"github.com/dishant2009/Decision-Boundaries-Understanding-How-Different-Classifiers-See-Your-Data/session"
)

func main() {
	var (
		pattern  = flag.String("pattern", "moons", "dataset pattern: linear, moons, circles, xor, spiral, blobs")
		kind     = flag.String("classifier", "rbf_svm", "classifier: linear, poly_svm, rbf_svm, knn, decision_tree, mlp")
		compare  = flag.Bool("compare", false, "run all six classifiers")
		n        = flag.Int("n", 200, "sample count")
		noise    = flag.Float64("noise", 0.15, "noise standard deviation")
		seed     = flag.Uint64("seed", 42, "dataset seed")
		step     = flag.Float64("step", 0.1, "grid step")
		scale    = flag.Bool("standardize", false, "standardize features before training")
		saveGrid = flag.Bool("json", false, "also write the probability grid as JSON")
		out      = flag.String("out", "out", "output directory")
		logLevel = flag.String("log", "info", "log level: debug, info, warn, error")
	)
	flag.Parse()
	log.SetupLogger(*logLevel)

	set, err := dataset.Generate(dataset.Pattern(*pattern), *n, *noise, *seed)
	if err != nil {
		log.LogError(err, "Dataset generation failed")
		os.Exit(1)
	}
	if *scale {
		set, _, err = preprocessing.ScaleSamples(set)
		if err != nil {
			log.LogError(err, "Standardization failed")
			os.Exit(1)
		}
	}

	r := mesh.DefaultRange()
	r.Step = *step
	factories := classifier.DefaultFactories()
	ctx := context.Background()

	if err := os.MkdirAll(*out, 0o755); err != nil {
		log.LogError(err, "Cannot create output directory")
		os.Exit(1)
	}

	if *compare {
		results := session.Compare(ctx, set, r, factories)
		named := make(map[string]session.Result, len(results))
		for k, res := range results {
			if res.Err != nil {
				log.LogError(res.Err, fmt.Sprintf("%s failed", k))
				continue
			}
			named[k.String()] = res
		}
		if err := render.PlotComparison(named, set, *out); err != nil {
			log.LogError(err, "Rendering failed")
			os.Exit(1)
		}
		fmt.Printf("wrote %d panels to %s\n", len(named), *out)
		return
	}

	factory, ok := factories[model.Kind(*kind)]
	if !ok {
		fmt.Fprintf(os.Stderr, "unknown classifier %q\n", *kind)
		os.Exit(2)
	}

	res := session.FitEvaluate(ctx, factory, set, r)
	if res.Err != nil {
		log.LogError(res.Err, "Training failed")
		os.Exit(1)
	}

	path := filepath.Join(*out, *kind+".png")
	title := fmt.Sprintf("%s on %s (train acc %.2f)", *kind, *pattern, res.TrainAccuracy)
	if err := render.Plot(res, set, title, path); err != nil {
		log.LogError(err, "Rendering failed")
		os.Exit(1)
	}
	fmt.Printf("wrote %s\n", path)

	if *saveGrid {
		gridPath := filepath.Join(*out, *kind+".json")
		if err := res.Grid.Save(gridPath); err != nil {
			log.LogError(err, "Grid export failed")
			os.Exit(1)
		}
		fmt.Printf("wrote %s\n", gridPath)
	}
}
