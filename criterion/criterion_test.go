package criterion

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestImpurityMixedRegion(t *testing.T) {
	// labels [0,0,0,1,1]
	counts := []int{3, 2}
	assert.InDelta(t, 0.48, Impurity(Gini, counts, 5), 1e-9)
	assert.InDelta(t, 0.9709505944546686, Impurity(Entropy, counts, 5), 1e-9)
	assert.InDelta(t, 0.4, Impurity(ClassificationError, counts, 5), 1e-9)
}

func TestImpurityPureRegion(t *testing.T) {
	counts := []int{5, 0, 0}
	for _, c := range []Criterion{Gini, Entropy, ClassificationError} {
		assert.Zero(t, Impurity(c, counts, 5), "criterion %v", c)
	}
}

func TestImpurityUniformRegionIsMaximal(t *testing.T) {
	// Uniform over k classes reaches each criterion's maximum:
	// 1 - 1/k for Gini and ClassificationError, log2(k) for Entropy.
	for _, k := range []int{2, 3, 4} {
		counts := make([]int, k)
		for i := range counts {
			counts[i] = 7
		}
		n := 7 * k
		max := 1.0 - 1.0/float64(k)
		assert.InDelta(t, max, Impurity(Gini, counts, n), 1e-9)
		assert.InDelta(t, max, Impurity(ClassificationError, counts, n), 1e-9)
		assert.InDelta(t, math.Log2(float64(k)), Impurity(Entropy, counts, n), 1e-9)
	}
}

func TestImpurityEmptyRegion(t *testing.T) {
	for _, c := range []Criterion{Gini, Entropy, ClassificationError} {
		assert.Zero(t, Impurity(c, nil, 0))
	}
}

func TestVariance(t *testing.T) {
	// values [1,2,3,4]: mean 2.5, variance 1.25
	assert.InDelta(t, 1.25, Variance(10, 30, 4), 1e-9)
}

func TestVarianceOfConstantRegionIsZero(t *testing.T) {
	// values [3,3,3]: sum 9, sum of squares 27
	assert.Zero(t, Variance(9, 27, 3))
	assert.Zero(t, Variance(0, 0, 0))
}

func TestVarianceClampsFloatingPointNoise(t *testing.T) {
	// sum/sumSq consistent with a constant value whose square cannot
	// be represented exactly; the raw difference may come out negative
	v := 0.1
	sum := v * 7
	sumSq := v * v * 7
	assert.GreaterOrEqual(t, Variance(sum, sumSq, 7), 0.0)
}

func TestParse(t *testing.T) {
	for _, c := range []Criterion{Gini, Entropy, ClassificationError, MSE} {
		parsed, err := Parse(c.String())
		require.NoError(t, err)
		assert.Equal(t, c, parsed)
	}
	_, err := Parse("id3")
	assert.Error(t, err)
}

func TestRegression(t *testing.T) {
	assert.True(t, MSE.Regression())
	for _, c := range []Criterion{Gini, Entropy, ClassificationError} {
		assert.False(t, c.Regression())
	}
}
