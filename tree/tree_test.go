package tree

import (
	"context"
	"fmt"
	"math"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tushushu/smartcore/dataset"
)

// testClassificationTree builds by hand the tree
//
//	x[0] <= 2.5 ? (x[1] <= 0.5 ? class 0 : class 1) : class 1
func testClassificationTree() *Tree {
	root := &Node{
		Feature:   0,
		Threshold: 2.5,
		Impurity:  0.5,
		Samples:   4,
		Left: &Node{
			Feature:   1,
			Threshold: 0.5,
			Impurity:  0.5,
			Samples:   2,
			Left:      &Node{Samples: 1, Prediction: NewPrediction(0, []float64{1, 0}, 1)},
			Right:     &Node{Samples: 1, Prediction: NewPrediction(1, []float64{0, 1}, 1)},
		},
		Right: &Node{Samples: 2, Prediction: NewPrediction(1, []float64{0, 1}, 2)},
	}
	root.Prediction = NewPrediction(1, []float64{0.25, 0.75}, 4)
	root.Left.Prediction = NewPrediction(0, []float64{0.5, 0.5}, 2)
	return New(root, dataset.Classification, []string{"no", "yes"})
}

func testRegressionTree() *Tree {
	root := &Node{
		Feature:    0,
		Threshold:  1.0,
		Impurity:   4.0,
		Samples:    4,
		Prediction: NewPrediction(3, nil, 4),
		Left:       &Node{Samples: 2, Prediction: NewPrediction(1, nil, 2)},
		Right:      &Node{Samples: 2, Prediction: NewPrediction(5, nil, 2)},
	}
	return New(root, dataset.Regression, nil)
}

func TestPredictRoutesByThreshold(t *testing.T) {
	tr := testClassificationTree()
	for _, tc := range []struct {
		sample []float64
		want   float64
	}{
		{[]float64{1, 0}, 0},
		{[]float64{1, 1}, 1},
		{[]float64{3, 0}, 1},
		// values equal to the threshold go left
		{[]float64{2.5, 0.5}, 0},
	} {
		p, err := tr.Predict(tc.sample)
		require.NoError(t, err, "sample %v", tc.sample)
		assert.Equal(t, tc.want, p.Value(), "sample %v", tc.sample)
	}
}

func TestPredictErrors(t *testing.T) {
	var nilTree *Tree
	_, err := nilTree.Predict([]float64{1})
	assert.Error(t, err)

	tr := testClassificationTree()
	_, err = tr.Predict([]float64{1})
	assert.Error(t, err, "sample shorter than the split features")

	leafless := New(&Node{Samples: 1}, dataset.Classification, nil)
	_, err = leafless.Predict([]float64{1})
	assert.Equal(t, ErrCannotPredict, err)
}

func TestPredictAll(t *testing.T) {
	tr := testClassificationTree()
	m, err := dataset.NewDenseFromRows([][]float64{{1, 0}, {1, 1}, {3, 7}})
	require.NoError(t, err)
	predictions, err := tr.PredictAll(context.Background(), m)
	require.NoError(t, err)
	require.Len(t, predictions, 3)
	values := make([]float64, len(predictions))
	for i, p := range predictions {
		values[i] = p.Value()
	}
	assert.Equal(t, []float64{0, 1, 1}, values)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err = tr.PredictAll(ctx, m)
	assert.Error(t, err)
}

func TestClassOf(t *testing.T) {
	tr := testClassificationTree()
	label, err := tr.ClassOf(NewPrediction(1, nil, 1))
	require.NoError(t, err)
	assert.Equal(t, "yes", label)

	// indices outside the dictionary fall back to the numeric index
	label, err = tr.ClassOf(NewPrediction(5, nil, 1))
	require.NoError(t, err)
	assert.Equal(t, "5", label)

	_, err = testRegressionTree().ClassOf(NewPrediction(1, nil, 1))
	assert.Error(t, err)
}

func TestAccuracy(t *testing.T) {
	tr := testClassificationTree()
	m, err := dataset.NewDenseFromRows([][]float64{{1, 0}, {1, 1}, {3, 0}, {3, 1}})
	require.NoError(t, err)
	accuracy, err := tr.Accuracy(context.Background(), m, dataset.Vector{0, 1, 1, 0})
	require.NoError(t, err)
	assert.InDelta(t, 0.75, accuracy, 1e-9)

	_, err = tr.Accuracy(context.Background(), m, dataset.Vector{0, 1})
	assert.Error(t, err, "length mismatch")

	_, err = testRegressionTree().Accuracy(context.Background(), m, dataset.Vector{0, 1, 1, 0})
	assert.Error(t, err, "regression trees have no accuracy")
}

func TestRMSE(t *testing.T) {
	tr := testRegressionTree()
	m, err := dataset.NewDenseFromRows([][]float64{{0}, {2}})
	require.NoError(t, err)
	// predictions [1, 5] against targets [1, 2]: RMSE sqrt(9/2)
	rmse, err := tr.RMSE(context.Background(), m, dataset.Vector{1, 2})
	require.NoError(t, err)
	assert.InDelta(t, math.Sqrt(4.5), rmse, 1e-9)

	empty, err := dataset.NewDenseFromRows(nil)
	require.NoError(t, err)
	_, err = tr.RMSE(context.Background(), empty, nil)
	assert.Error(t, err)
}

func TestTraverseOrder(t *testing.T) {
	tr := testClassificationTree()
	var order []int
	err := tr.Traverse(false, func(n *Node) error {
		order = append(order, n.Samples)
		return nil
	})
	require.NoError(t, err)
	assert.Equal(t, []int{4, 2, 1, 1, 2}, order, "topdown visits parents first")

	order = nil
	err = tr.Traverse(true, func(n *Node) error {
		order = append(order, n.Samples)
		return nil
	})
	require.NoError(t, err)
	assert.Equal(t, []int{1, 1, 2, 2, 4}, order, "bottomup visits children first")

	wantErr := fmt.Errorf("stop")
	err = tr.Traverse(false, func(n *Node) error {
		return wantErr
	})
	assert.Equal(t, wantErr, err)
}

func TestString(t *testing.T) {
	tr := testClassificationTree()
	tr.Features = []string{"age", "smoker"}
	s := tr.String()
	assert.True(t, strings.HasPrefix(s, "[4 samples] { age <= 2.5 }"))
	assert.Contains(t, s, "smoker <= 0.5")
	assert.Contains(t, s, "[2 samples]")

	var empty *Tree
	assert.Equal(t, "(empty tree)\n", empty.String())
}

func TestFeatureNameFallback(t *testing.T) {
	tr := testRegressionTree()
	assert.Contains(t, tr.String(), "x[0] <= 1")
}
