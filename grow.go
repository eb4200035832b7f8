package smartcore

import (
	"context"

	"github.com/tushushu/smartcore/criterion"
	"github.com/tushushu/smartcore/tree"
)

type grower struct {
	splitter
}

/*
grow develops the region given by rows into a node at the given depth,
recursively growing its subtrees, and returns it or an error if the
context expires.

A region becomes a leaf when it is too small to split, the configured
maximum depth is reached, it is already pure, or no candidate split
improves on its impurity. Otherwise the region is partitioned by the
winning feature and threshold with the same inclusive-left convention
prediction routing uses, and both sides are grown in turn.
*/
func (g *grower) grow(ctx context.Context, rows []int, depth int) (*tree.Node, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	n := len(rows)
	impurity := g.regionImpurity(rows)
	node := &tree.Node{
		Impurity:   impurity,
		Samples:    n,
		Prediction: g.prediction(rows),
	}
	if n < g.config.minSamplesSplit() || impurity <= impurityEpsilon {
		return node, nil
	}
	if g.config.MaxDepth > 0 && depth >= g.config.MaxDepth {
		return node, nil
	}
	best := g.bestSplit(rows, impurity)
	if best == nil {
		return node, nil
	}
	left := make([]int, 0, best.leftCount)
	right := make([]int, 0, best.rightCount)
	for _, row := range rows {
		if g.m.At(row, best.feature) <= best.threshold {
			left = append(left, row)
		} else {
			right = append(right, row)
		}
	}
	node.Feature = best.feature
	node.Threshold = best.threshold
	var err error
	node.Left, err = g.grow(ctx, left, depth+1)
	if err != nil {
		return nil, err
	}
	node.Right, err = g.grow(ctx, right, depth+1)
	if err != nil {
		return nil, err
	}
	return node, nil
}

func (g *grower) regionImpurity(rows []int) float64 {
	if g.classes > 0 {
		counts := make([]int, g.classes)
		for _, row := range rows {
			counts[int(g.y[row])]++
		}
		return criterion.Impurity(g.config.Criterion, counts, len(rows))
	}
	var sum, sumSq float64
	for _, row := range rows {
		v := g.y[row]
		sum += v
		sumSq += v * v
	}
	return criterion.Variance(sum, sumSq, len(rows))
}

// prediction builds the prediction for a region: the majority class and
// class distribution for classification, the target mean for regression.
// Ties on the majority class resolve to the lowest class index.
func (g *grower) prediction(rows []int) *tree.Prediction {
	n := len(rows)
	if g.classes > 0 {
		counts := make([]int, g.classes)
		for _, row := range rows {
			counts[int(g.y[row])]++
		}
		majority := 0
		probabilities := make([]float64, g.classes)
		for class, count := range counts {
			probabilities[class] = float64(count) / float64(n)
			if count > counts[majority] {
				majority = class
			}
		}
		return tree.NewPrediction(float64(majority), probabilities, n)
	}
	var sum float64
	for _, row := range rows {
		sum += g.y[row]
	}
	return tree.NewPrediction(sum/float64(n), nil, n)
}
