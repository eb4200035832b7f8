/*
Package smartcore grows classification and regression decision trees
with the CART algorithm: recursive binary partitioning of a numeric
feature space into axis-aligned rectangular regions, each holding a
predicted class or mean value.

Fit takes a feature matrix, a target vector and a Config and returns an
immutable tree.Tree; growth selects, at every node, the feature and
threshold minimizing the weighted impurity of the two resulting sides
under the configured criterion, and stops at the configured depth and
node-size limits or when no split improves the region.
*/
package smartcore

import (
	"context"
	"fmt"
	"math"

	"github.com/tushushu/smartcore/dataset"
	"github.com/tushushu/smartcore/tree"
)

/*
Fit takes a context, a feature matrix, a target vector and a Config and
grows a decision tree predicting the targets from the matrix rows,
returning it or an error.

Invalid configurations fail fast with a ConfigError before any growth
starts: an incompatible criterion and task, an empty matrix, a
matrix/target length mismatch, or classification targets that are not
non-negative class indices. Growing is deterministic: the same matrix,
targets and configuration always produce a structurally identical tree.
*/
func Fit(ctx context.Context, m dataset.Matrix, y dataset.Vector, config Config) (*tree.Tree, error) {
	if err := config.Validate(); err != nil {
		return nil, err
	}
	if m.Rows() == 0 {
		return nil, configErrorf("training matrix has no rows")
	}
	if m.Cols() == 0 {
		return nil, configErrorf("training matrix has no feature columns")
	}
	if m.Rows() != len(y) {
		return nil, configErrorf("%d matrix rows for %d target values", m.Rows(), len(y))
	}
	var classes int
	if config.Task == dataset.Classification {
		for i, v := range y {
			if v < 0 || v != math.Trunc(v) {
				return nil, configErrorf("classification target %g at row %d is not a class index", v, i)
			}
			if int(v)+1 > classes {
				classes = int(v) + 1
			}
		}
	}
	g := &grower{splitter{m: m, y: y, classes: classes, config: &config}}
	rows := make([]int, m.Rows())
	for i := range rows {
		rows[i] = i
	}
	root, err := g.grow(ctx, rows, 0)
	if err != nil {
		return nil, fmt.Errorf("growing tree: %v", err)
	}
	return tree.New(root, config.Task, nil), nil
}

/*
FitDataset takes a context, a dataset and a Config and grows a decision
tree from the dataset's matrix and targets with Fit, carrying the
dataset's class dictionary over to the tree.
*/
func FitDataset(ctx context.Context, ds *dataset.Dataset, config Config) (*tree.Tree, error) {
	t, err := Fit(ctx, ds.X, ds.Y, config)
	if err != nil {
		return nil, err
	}
	t.Classes = ds.Classes
	return t, nil
}
