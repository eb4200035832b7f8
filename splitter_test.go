package smartcore

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tushushu/smartcore/criterion"
	"github.com/tushushu/smartcore/dataset"
)

func testSplitter(t *testing.T, config Config, classes int, y dataset.Vector, columns ...[]float64) *splitter {
	t.Helper()
	rows := make([][]float64, len(columns[0]))
	for i := range rows {
		row := make([]float64, len(columns))
		for j, column := range columns {
			row[j] = column[i]
		}
		rows[i] = row
	}
	m, err := dataset.NewDenseFromRows(rows)
	require.NoError(t, err)
	return &splitter{m: m, y: y, classes: classes, config: &config}
}

func allRows(n int) []int {
	rows := make([]int, n)
	for i := range rows {
		rows[i] = i
	}
	return rows
}

func TestBestSplitSeparatesClasses(t *testing.T) {
	sp := testSplitter(t, DefaultConfig(dataset.Classification), 2,
		dataset.Vector{0, 0, 1, 1}, []float64{1, 2, 3, 4})
	best := sp.bestSplit(allRows(4), 0.5)
	require.NotNil(t, best)
	assert.Equal(t, 0, best.feature)
	assert.InDelta(t, 2.5, best.threshold, 1e-9)
	assert.Zero(t, best.impurity)
	assert.Equal(t, 2, best.leftCount)
	assert.Equal(t, 2, best.rightCount)
}

func TestBestSplitPrefersLowestFeatureIndexOnTies(t *testing.T) {
	// both columns induce the same perfect split
	sp := testSplitter(t, DefaultConfig(dataset.Classification), 2,
		dataset.Vector{0, 0, 1, 1}, []float64{1, 2, 3, 4}, []float64{10, 20, 30, 40})
	best := sp.bestSplit(allRows(4), 0.5)
	require.NotNil(t, best)
	assert.Equal(t, 0, best.feature)
}

func TestBestSplitRequiresStrictImprovement(t *testing.T) {
	sp := testSplitter(t, DefaultConfig(dataset.Classification), 2,
		dataset.Vector{0, 1, 0, 1}, []float64{1, 2, 3, 4})
	// the best candidate of this column leaves weighted impurity at
	// the parent's level, so it must be rejected
	best := sp.bestFeatureSplit(0, allRows(4))
	require.NotNil(t, best)
	assert.Nil(t, sp.bestSplit(allRows(4), best.impurity))
}

func TestBestSplitOnConstantFeatures(t *testing.T) {
	sp := testSplitter(t, DefaultConfig(dataset.Classification), 2,
		dataset.Vector{0, 1, 0, 1}, []float64{7, 7, 7, 7}, []float64{3, 3, 3, 3})
	assert.Nil(t, sp.bestSplit(allRows(4), 0.5))
}

func TestBestFeatureSplitHonorsMinSamplesLeaf(t *testing.T) {
	config := DefaultConfig(dataset.Classification)
	config.MinSamplesLeaf = 2
	sp := testSplitter(t, config, 2, dataset.Vector{0, 1, 1, 1}, []float64{1, 2, 3, 4})
	best := sp.bestFeatureSplit(0, allRows(4))
	// the perfect 1/3 split is off limits, only 2/2 thresholds remain
	require.NotNil(t, best)
	assert.Equal(t, 2, best.leftCount)
	assert.Equal(t, 2, best.rightCount)
}

func TestBestFeatureSplitSkipsDuplicateValues(t *testing.T) {
	sp := testSplitter(t, DefaultConfig(dataset.Classification), 2,
		dataset.Vector{0, 0, 1, 1}, []float64{1, 1, 1, 4})
	best := sp.bestFeatureSplit(0, allRows(4))
	require.NotNil(t, best)
	// the only candidate threshold lies between the two distinct values
	assert.InDelta(t, 2.5, best.threshold, 1e-9)
	assert.Equal(t, 3, best.leftCount)
	assert.Equal(t, 1, best.rightCount)
}

func TestBestSplitRegression(t *testing.T) {
	config := DefaultConfig(dataset.Regression)
	sp := testSplitter(t, config, 0, dataset.Vector{1, 1, 5, 5}, []float64{1, 2, 3, 4})
	parent := criterion.Variance(12, 52, 4)
	best := sp.bestSplit(allRows(4), parent)
	require.NotNil(t, best)
	assert.InDelta(t, 2.5, best.threshold, 1e-9)
	assert.Zero(t, best.impurity)
}

func TestBestFeatureSplitSingleSample(t *testing.T) {
	sp := testSplitter(t, DefaultConfig(dataset.Classification), 1,
		dataset.Vector{0}, []float64{1})
	assert.Nil(t, sp.bestFeatureSplit(0, allRows(1)))
}
