package smartcore

import (
	"sort"
	"sync"

	"github.com/tushushu/smartcore/criterion"
	"github.com/tushushu/smartcore/dataset"
)

// impurityEpsilon is the numeric tolerance under which impurities are
// considered equal: a split must improve on the parent impurity by more
// than this to be accepted, and regions within it of 0 are pure.
const impurityEpsilon = 1e-10

// cellCountThresholdForParallelSearch is the number of cells read by a
// node's search (samples times features) over which the per-feature
// searches are fanned out to goroutines.
const cellCountThresholdForParallelSearch = 1 << 14

/*
candidateSplit is a candidate partition of a node's region: the feature
column and threshold to split on, the weighted impurity of the two
resulting sides and their sample counts. Candidates only live within
the search for a node's best split.
*/
type candidateSplit struct {
	feature    int
	threshold  float64
	impurity   float64
	leftCount  int
	rightCount int
}

type splitter struct {
	m       dataset.Matrix
	y       dataset.Vector
	classes int // number of classes, 0 for regression targets
	config  *Config
}

/*
bestSplit searches every feature column for the candidate split with
the lowest weighted impurity over the region given by rows, and returns
it or nil when no candidate improves on the parent impurity.

The search is deterministic: features are resolved in ascending index
order and thresholds in ascending value order, with the first
encountered minimum winning ties. The per-feature searches share no
state, so they run on separate goroutines when the region is large
enough to pay for them; each writes to its own slot and the merge below
keeps the tie-break order.
*/
func (sp *splitter) bestSplit(rows []int, parentImpurity float64) *candidateSplit {
	cols := sp.m.Cols()
	candidates := make([]*candidateSplit, cols)
	if len(rows)*cols < cellCountThresholdForParallelSearch {
		for j := 0; j < cols; j++ {
			candidates[j] = sp.bestFeatureSplit(j, rows)
		}
	} else {
		var wg sync.WaitGroup
		for j := 0; j < cols; j++ {
			wg.Add(1)
			go func(j int) {
				defer wg.Done()
				candidates[j] = sp.bestFeatureSplit(j, rows)
			}(j)
		}
		wg.Wait()
	}
	var best *candidateSplit
	for _, c := range candidates {
		if c != nil && (best == nil || c.impurity < best.impurity) {
			best = c
		}
	}
	if best == nil || best.impurity >= parentImpurity-impurityEpsilon {
		return nil
	}
	return best
}

/*
bestFeatureSplit scans the candidate thresholds of one feature column
over the region given by rows and returns the candidate with the lowest
weighted impurity, or nil if the column admits no valid candidate.

Rows are sorted by the column value once and the left/right tallies are
maintained incrementally while the scan advances, so the whole column
costs one sort plus a linear pass. Thresholds are midpoints between
consecutive distinct values; candidates leaving either side empty or
below the configured minimum leaf size are rejected.
*/
func (sp *splitter) bestFeatureSplit(feature int, rows []int) *candidateSplit {
	n := len(rows)
	if n < 2 {
		return nil
	}
	order := make([]int, n)
	copy(order, rows)
	sort.Slice(order, func(a, b int) bool {
		return sp.m.At(order[a], feature) < sp.m.At(order[b], feature)
	})
	minLeaf := sp.config.minSamplesLeaf()
	var best *candidateSplit
	consider := func(i int, leftImpurity, rightImpurity float64) {
		left, right := i+1, n-i-1
		if left < minLeaf || right < minLeaf {
			return
		}
		weighted := (float64(left)*leftImpurity + float64(right)*rightImpurity) / float64(n)
		if best == nil || weighted < best.impurity {
			v := sp.m.At(order[i], feature)
			next := sp.m.At(order[i+1], feature)
			best = &candidateSplit{feature, (v + next) / 2.0, weighted, left, right}
		}
	}
	if sp.classes > 0 {
		leftCounts := make([]int, sp.classes)
		rightCounts := make([]int, sp.classes)
		for _, row := range order {
			rightCounts[int(sp.y[row])]++
		}
		for i := 0; i < n-1; i++ {
			class := int(sp.y[order[i]])
			leftCounts[class]++
			rightCounts[class]--
			if sp.m.At(order[i], feature) == sp.m.At(order[i+1], feature) {
				continue
			}
			consider(i,
				criterion.Impurity(sp.config.Criterion, leftCounts, i+1),
				criterion.Impurity(sp.config.Criterion, rightCounts, n-i-1))
		}
		return best
	}
	var leftSum, leftSumSq, rightSum, rightSumSq float64
	for _, row := range order {
		v := sp.y[row]
		rightSum += v
		rightSumSq += v * v
	}
	for i := 0; i < n-1; i++ {
		v := sp.y[order[i]]
		leftSum += v
		leftSumSq += v * v
		rightSum -= v
		rightSumSq -= v * v
		if sp.m.At(order[i], feature) == sp.m.At(order[i+1], feature) {
			continue
		}
		consider(i,
			criterion.Variance(leftSum, leftSumSq, i+1),
			criterion.Variance(rightSum, rightSumSq, n-i-1))
	}
	return best
}
