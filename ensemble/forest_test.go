package ensemble

import (
	"context"
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tushushu/smartcore"
	"github.com/tushushu/smartcore/dataset"
)

// separableData builds a dataset whose class (or target) is decided by
// the first column, with the rest of the columns carrying noise.
func separableData(t *testing.T, n, cols int, regression bool, seed int64) (*dataset.Dense, dataset.Vector) {
	t.Helper()
	r := rand.New(rand.NewSource(seed))
	rows := make([][]float64, n)
	y := make(dataset.Vector, n)
	for i := range rows {
		row := make([]float64, cols)
		for j := range row {
			row[j] = r.Float64() * 10
		}
		rows[i] = row
		if regression {
			y[i] = row[0] * 3
		} else if row[0] > 5 {
			y[i] = 1
		}
	}
	m, err := dataset.NewDenseFromRows(rows)
	require.NoError(t, err)
	return m, y
}

func TestFitClassificationVotes(t *testing.T) {
	m, y := separableData(t, 200, 3, false, 5)
	config := Config{Trees: 7, Seed: 1, Tree: smartcore.DefaultConfig(dataset.Classification)}
	f, err := Fit(context.Background(), m, y, config)
	require.NoError(t, err)
	require.Len(t, f.Trees, 7)

	p, err := f.Predict([]float64{1, 5, 5})
	require.NoError(t, err)
	assert.Equal(t, 0.0, p.Value())
	assert.Greater(t, p.ProbabilityOf(0), 0.5)
	assert.Equal(t, 7, p.Weight())

	p, err = f.Predict([]float64{9, 5, 5})
	require.NoError(t, err)
	assert.Equal(t, 1.0, p.Value())
}

func TestFitRegressionAveragesTrees(t *testing.T) {
	m, y := separableData(t, 200, 2, true, 5)
	config := Config{Trees: 5, Seed: 1, Tree: smartcore.DefaultConfig(dataset.Regression)}
	f, err := Fit(context.Background(), m, y, config)
	require.NoError(t, err)
	p, err := f.Predict([]float64{5, 5})
	require.NoError(t, err)
	assert.Nil(t, p.Probabilities())
	assert.InDelta(t, 15.0, p.Value(), 3.0)
}

func TestFitIsDeterministicForASeed(t *testing.T) {
	m, y := separableData(t, 100, 4, false, 9)
	config := Config{Trees: 5, MaxFeatures: 2, Seed: 42, Tree: smartcore.DefaultConfig(dataset.Classification)}
	first, err := Fit(context.Background(), m, y, config)
	require.NoError(t, err)
	second, err := Fit(context.Background(), m, y, config)
	require.NoError(t, err)
	assert.Equal(t, first.Trees, second.Trees)
	assert.Equal(t, first.features, second.features)

	config.Seed = 43
	third, err := Fit(context.Background(), m, y, config)
	require.NoError(t, err)
	assert.NotEqual(t, first.features, third.features)
}

func TestFitDefaults(t *testing.T) {
	m, y := separableData(t, 50, 2, false, 3)
	f, err := Fit(context.Background(), m, y, Config{Tree: smartcore.DefaultConfig(dataset.Classification)})
	require.NoError(t, err)
	assert.Len(t, f.Trees, 10)
	for _, cols := range f.features {
		assert.Equal(t, []int{0, 1}, cols, "zero MaxFeatures keeps every column")
	}
}

func TestFitConfigErrors(t *testing.T) {
	m, y := separableData(t, 20, 2, false, 3)
	ctx := context.Background()
	_, err := Fit(ctx, m, y, Config{Trees: -1, Tree: smartcore.DefaultConfig(dataset.Classification)})
	assert.Error(t, err)
	_, err = Fit(ctx, m, y, Config{MaxFeatures: 3, Tree: smartcore.DefaultConfig(dataset.Classification)})
	assert.Error(t, err)
	_, err = Fit(ctx, m, y, Config{Tree: smartcore.Config{Criterion: 0, Task: dataset.Regression}})
	assert.Error(t, err, "tree config errors surface through the forest")
}

func TestFitMaxFeaturesProjectsSamples(t *testing.T) {
	m, y := separableData(t, 150, 4, false, 7)
	config := Config{Trees: 9, MaxFeatures: 2, Seed: 11, Tree: smartcore.DefaultConfig(dataset.Classification)}
	f, err := Fit(context.Background(), m, y, config)
	require.NoError(t, err)
	for _, cols := range f.features {
		assert.Len(t, cols, 2)
		assert.Less(t, cols[0], cols[1], "feature subsets are kept sorted")
	}
	// full-width samples predict without error even though each tree
	// only saw two columns
	_, err = f.Predict([]float64{9, 1, 2, 3})
	require.NoError(t, err)
}

func TestPredictAll(t *testing.T) {
	m, y := separableData(t, 100, 2, false, 13)
	f, err := Fit(context.Background(), m, y, Config{Trees: 5, Seed: 2, Tree: smartcore.DefaultConfig(dataset.Classification)})
	require.NoError(t, err)
	predictions, err := f.PredictAll(context.Background(), m)
	require.NoError(t, err)
	require.Len(t, predictions, 100)
	var hits float64
	for i, p := range predictions {
		if p.Value() == y[i] {
			hits++
		}
	}
	assert.Greater(t, hits/100, 0.9, "forest should fit its own training data")

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err = f.PredictAll(ctx, m)
	assert.Error(t, err)
}

func TestPredictOnEmptyForest(t *testing.T) {
	f := &Forest{}
	_, err := f.Predict([]float64{1})
	assert.Error(t, err)
}

func TestFitDatasetCarriesClasses(t *testing.T) {
	m, y := separableData(t, 60, 2, false, 17)
	ds, err := dataset.New(m, y, []string{"low", "high"})
	require.NoError(t, err)
	f, err := FitDataset(context.Background(), ds, Config{Trees: 3, Tree: smartcore.DefaultConfig(dataset.Classification)})
	require.NoError(t, err)
	assert.Equal(t, []string{"low", "high"}, f.Classes)
}
