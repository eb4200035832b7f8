/*
Package ensemble grows random forests: collections of decision trees
grown on bootstrap resamples of a training dataset, each over its own
random subset of the feature columns, whose predictions are combined by
majority vote (classification) or averaging (regression).

Trees are grown in parallel, one worker per tree with a private result
slot, but the forest is deterministic for a given seed: every tree's
resample and feature subset derive from it, and the merge order never
depends on scheduling.
*/
package ensemble

import (
	"context"
	"fmt"
	"math/rand"
	"sort"
	"sync"

	"github.com/tushushu/smartcore"
	"github.com/tushushu/smartcore/dataset"
	"github.com/tushushu/smartcore/tree"
)

/*
Config holds the configuration for growing a forest: the number of
trees (default 10), the number of feature columns each tree sees
(default all), the seed driving the bootstrap resamples and feature
subsets, and the configuration of the individual trees.
*/
type Config struct {
	Trees       int
	MaxFeatures int
	Seed        int64
	Tree        smartcore.Config
}

/*
Forest is a grown random forest: the trees, the task they predict for
and, for classification, the class dictionary shared by all of them.
Like its trees, a Forest is immutable and safe for concurrent
prediction.
*/
type Forest struct {
	Trees   []*tree.Tree
	Task    dataset.Task
	Classes []string

	features [][]int
	classes  int
}

// view projects a matrix onto a subset of its rows and columns without
// copying them.
type view struct {
	m    dataset.Matrix
	rows []int
	cols []int
}

func (v *view) Rows() int {
	return len(v.rows)
}

func (v *view) Cols() int {
	return len(v.cols)
}

func (v *view) At(row, col int) float64 {
	return v.m.At(v.rows[row], v.cols[col])
}

/*
Fit takes a context, a feature matrix, a target vector and a Config and
grows a random forest predicting the targets, returning it or an error
if the configuration is invalid or any tree fails to grow.
*/
func Fit(ctx context.Context, m dataset.Matrix, y dataset.Vector, config Config) (*Forest, error) {
	if config.Trees < 0 {
		return nil, fmt.Errorf("growing forest: negative tree count %d", config.Trees)
	}
	if config.Trees == 0 {
		config.Trees = 10
	}
	cols := m.Cols()
	if config.MaxFeatures < 0 || config.MaxFeatures > cols {
		return nil, fmt.Errorf("growing forest: %d features per tree out of [0,%d]", config.MaxFeatures, cols)
	}
	if config.MaxFeatures == 0 {
		config.MaxFeatures = cols
	}
	f := &Forest{
		Trees:    make([]*tree.Tree, config.Trees),
		Task:     config.Tree.Task,
		features: make([][]int, config.Trees),
	}
	if f.Task == dataset.Classification {
		for _, v := range y {
			if int(v)+1 > f.classes {
				f.classes = int(v) + 1
			}
		}
	}
	// Per-tree seeds are drawn up front so results do not depend on
	// goroutine scheduling.
	master := rand.New(rand.NewSource(config.Seed))
	seeds := make([]int64, config.Trees)
	for i := range seeds {
		seeds[i] = master.Int63()
	}
	errs := make([]error, config.Trees)
	var wg sync.WaitGroup
	for i := 0; i < config.Trees; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			f.Trees[i], f.features[i], errs[i] = growTree(ctx, m, y, seeds[i], &config)
		}(i)
	}
	wg.Wait()
	for i, err := range errs {
		if err != nil {
			return nil, fmt.Errorf("growing forest tree %d: %v", i, err)
		}
	}
	return f, nil
}

/*
FitDataset takes a context, a dataset and a Config and grows a random
forest from the dataset's matrix and targets with Fit, carrying the
dataset's class dictionary over to the forest.
*/
func FitDataset(ctx context.Context, ds *dataset.Dataset, config Config) (*Forest, error) {
	f, err := Fit(ctx, ds.X, ds.Y, config)
	if err != nil {
		return nil, err
	}
	f.Classes = ds.Classes
	return f, nil
}

func growTree(ctx context.Context, m dataset.Matrix, y dataset.Vector, seed int64, config *Config) (*tree.Tree, []int, error) {
	r := rand.New(rand.NewSource(seed))
	n := m.Rows()
	rows := make([]int, n)
	bootY := make(dataset.Vector, n)
	for i := range rows {
		rows[i] = r.Intn(n)
		bootY[i] = y[rows[i]]
	}
	cols := r.Perm(m.Cols())[:config.MaxFeatures]
	sort.Ints(cols)
	t, err := smartcore.Fit(ctx, &view{m, rows, cols}, bootY, config.Tree)
	if err != nil {
		return nil, nil, err
	}
	return t, cols, nil
}

/*
Predict takes a sample with one value per feature column of the
training matrix and returns the forest's prediction for it: the
majority vote of the trees with the vote shares as probabilities for
classification, or the mean of the tree predictions for regression.
Voting ties resolve to the lowest class index.
*/
func (f *Forest) Predict(sample []float64) (*tree.Prediction, error) {
	if len(f.Trees) == 0 {
		return nil, fmt.Errorf("empty forest cannot predict samples")
	}
	if f.Task == dataset.Classification {
		votes := make([]float64, f.classes)
		for i, t := range f.Trees {
			p, err := t.Predict(f.project(sample, i))
			if err != nil {
				return nil, err
			}
			class := int(p.Value())
			if class >= 0 && class < len(votes) {
				votes[class] += 1.0 / float64(len(f.Trees))
			}
		}
		winner := 0
		for class, share := range votes {
			if share > votes[winner] {
				winner = class
			}
		}
		return tree.NewPrediction(float64(winner), votes, len(f.Trees)), nil
	}
	var sum float64
	for i, t := range f.Trees {
		p, err := t.Predict(f.project(sample, i))
		if err != nil {
			return nil, err
		}
		sum += p.Value()
	}
	return tree.NewPrediction(sum/float64(len(f.Trees)), nil, len(f.Trees)), nil
}

/*
PredictAll takes a context and a feature matrix and returns a slice
with the forest's prediction for every row of the matrix, or an error
if the context expires or a row cannot be predicted.
*/
func (f *Forest) PredictAll(ctx context.Context, m dataset.Matrix) ([]*tree.Prediction, error) {
	predictions := make([]*tree.Prediction, m.Rows())
	sample := make([]float64, m.Cols())
	for i := range predictions {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		for j := range sample {
			sample[j] = m.At(i, j)
		}
		p, err := f.Predict(sample)
		if err != nil {
			return nil, fmt.Errorf("predicting row %d: %v", i, err)
		}
		predictions[i] = p
	}
	return predictions, nil
}

// project maps a full-width sample onto the feature subset tree i was
// grown with.
func (f *Forest) project(sample []float64, i int) []float64 {
	cols := f.features[i]
	if len(cols) == len(sample) {
		return sample
	}
	projected := make([]float64, len(cols))
	for j, col := range cols {
		projected[j] = sample[col]
	}
	return projected
}
