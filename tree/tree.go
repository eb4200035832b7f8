package tree

import (
	"context"
	"fmt"
	"math"
	"strings"

	"github.com/tushushu/smartcore/dataset"
)

/*
Tree represents a grown classification or regression tree. It owns the
root Node of the tree and knows the task it predicts for; for
classification trees it may also carry the dictionary translating class
indices to their labels, and for any tree the names of the feature
columns it was trained on.

A Tree is immutable once grown and safe for concurrent prediction from
multiple callers.
*/
type Tree struct {
	Root *Node
	Task dataset.Task
	// Classes translates class indices to labels on classification
	// trees. May be nil, in which case predictions are reported as
	// numeric class indices.
	Classes []string
	// Features holds the name of each feature column. May be nil.
	Features []string
}

/*
New takes the root Node of a grown tree, the task it predicts for and
the class dictionary for classification trees (nil for regression ones)
and returns the Tree composed of them.
*/
func New(root *Node, task dataset.Task, classes []string) *Tree {
	return &Tree{Root: root, Task: task, Classes: classes}
}

/*
Predict takes a sample with one value per feature column and returns a
prediction according to the tree, or an error if the prediction could
not be made.

Routing is deterministic: starting at the root, while the current node
is internal the sample goes left when its value for the node's feature
is less than or equal to the node's threshold and right otherwise, the
same convention applied when partitioning samples during growth.
*/
func (t *Tree) Predict(sample []float64) (*Prediction, error) {
	if t == nil || t.Root == nil {
		return nil, fmt.Errorf("nil tree cannot predict samples")
	}
	n := t.Root
	for !n.Leaf() {
		if n.Feature >= len(sample) {
			return nil, fmt.Errorf("predicting sample: sample has %d values, node splits on feature %d", len(sample), n.Feature)
		}
		if sample[n.Feature] <= n.Threshold {
			n = n.Left
		} else {
			n = n.Right
		}
	}
	if n.Prediction == nil {
		return nil, ErrCannotPredict
	}
	return n.Prediction, nil
}

/*
PredictAll takes a context and a feature matrix and returns a slice
with the prediction for every row of the matrix, or an error if the
context expires or a row cannot be predicted.
*/
func (t *Tree) PredictAll(ctx context.Context, m dataset.Matrix) ([]*Prediction, error) {
	predictions := make([]*Prediction, m.Rows())
	sample := make([]float64, m.Cols())
	for i := range predictions {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		for j := range sample {
			sample[j] = m.At(i, j)
		}
		p, err := t.Predict(sample)
		if err != nil {
			return nil, fmt.Errorf("predicting row %d: %v", i, err)
		}
		predictions[i] = p
	}
	return predictions, nil
}

/*
ClassOf takes a prediction made by the tree and returns the label of
its predicted class, falling back to the numeric class index when the
tree carries no class dictionary. It returns an error when called on a
regression tree.
*/
func (t *Tree) ClassOf(p *Prediction) (string, error) {
	if t.Task != dataset.Classification {
		return "", fmt.Errorf("cannot name predicted class of a %v tree", t.Task)
	}
	i := int(p.Value())
	if i < 0 || i >= len(t.Classes) {
		return fmt.Sprintf("%d", i), nil
	}
	return t.Classes[i], nil
}

/*
Accuracy takes a context, a feature matrix and a target vector and
returns the fraction of rows whose predicted class matches the target,
or an error if the tree is not a classification tree, the matrix and
vector lengths differ, or a prediction fails.
*/
func (t *Tree) Accuracy(ctx context.Context, m dataset.Matrix, y dataset.Vector) (float64, error) {
	if t.Task != dataset.Classification {
		return 0.0, fmt.Errorf("cannot measure accuracy of a %v tree", t.Task)
	}
	predictions, err := t.predictionsAgainst(ctx, m, y)
	if err != nil {
		return 0.0, err
	}
	var hits float64
	for i, p := range predictions {
		if p.Value() == y[i] {
			hits += 1.0
		}
	}
	return hits / float64(len(y)), nil
}

/*
RMSE takes a context, a feature matrix and a target vector and returns
the root mean squared error of the tree's predictions over the rows, or
an error if the matrix and vector lengths differ or a prediction fails.
*/
func (t *Tree) RMSE(ctx context.Context, m dataset.Matrix, y dataset.Vector) (float64, error) {
	predictions, err := t.predictionsAgainst(ctx, m, y)
	if err != nil {
		return 0.0, err
	}
	var sum float64
	for i, p := range predictions {
		d := p.Value() - y[i]
		sum += d * d
	}
	return math.Sqrt(sum / float64(len(y))), nil
}

func (t *Tree) predictionsAgainst(ctx context.Context, m dataset.Matrix, y dataset.Vector) ([]*Prediction, error) {
	if m.Rows() != len(y) {
		return nil, fmt.Errorf("testing tree: %d matrix rows for %d target values", m.Rows(), len(y))
	}
	if len(y) == 0 {
		return nil, fmt.Errorf("testing tree: no samples")
	}
	return t.PredictAll(ctx, m)
}

/*
Traverse takes a bottomup boolean and an error-returning function on a
node, and goes through the tree running the function with every
traversed node. Traverse will call the function with a parent node
before its children if bottomup is false, and after its children if
bottomup is true. If a call to the function returns an error, the
traversing is aborted and the error is returned.
*/
func (t *Tree) Traverse(bottomup bool, f func(*Node) error) error {
	if t.Root == nil {
		return nil
	}
	return t.traverse(t.Root, bottomup, f)
}

func (t *Tree) traverse(n *Node, bottomup bool, f func(*Node) error) error {
	if !bottomup {
		if err := f(n); err != nil {
			return err
		}
	}
	if !n.Leaf() {
		if err := t.traverse(n.Left, bottomup, f); err != nil {
			return err
		}
		if err := t.traverse(n.Right, bottomup, f); err != nil {
			return err
		}
	}
	if bottomup {
		return f(n)
	}
	return nil
}

func (t *Tree) String() string {
	if t == nil || t.Root == nil {
		return "(empty tree)\n"
	}
	return t.subtreeString(t.Root)
}

func (t *Tree) subtreeString(n *Node) string {
	var result string
	if n.Leaf() {
		result = fmt.Sprintf("[%d samples] { %v }\n", n.Samples, n.Prediction)
	} else {
		result = fmt.Sprintf("[%d samples] { %s <= %g }\n|\n", n.Samples, t.featureName(n.Feature), n.Threshold)
	}
	for i, subtree := range []*Node{n.Left, n.Right} {
		if subtree == nil {
			continue
		}
		for j, line := range strings.Split(t.subtreeString(subtree), "\n") {
			if len(line) == 0 {
				continue
			}
			if j == 0 {
				result = fmt.Sprintf("%s|__%s\n", result, line)
			} else if i == 1 {
				result = fmt.Sprintf("%s   %s\n", result, line)
			} else {
				result = fmt.Sprintf("%s|  %s\n", result, line)
			}
		}
	}
	return result
}

func (t *Tree) featureName(i int) string {
	if i < len(t.Features) {
		return t.Features[i]
	}
	return fmt.Sprintf("x[%d]", i)
}
