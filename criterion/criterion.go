/*
Package criterion provides the functions used to measure the quality of a
split when growing classification and regression trees: scalar impurity
scores for a region of samples that the growing process tries to minimize.
*/
package criterion

import (
	"fmt"
	"math"
)

/*
Criterion identifies the function used to measure the quality of a split.
It is selected once per training run and never changes while a tree grows.
*/
type Criterion int

const (
	// Gini measures impurity as 1 - sum(p_i^2) over the class
	// probabilities p_i of the region.
	Gini Criterion = iota
	// Entropy measures impurity as -sum(p_i * log2(p_i)) over the class
	// probabilities p_i of the region.
	Entropy
	// ClassificationError measures impurity as 1 - max(p_i) over the
	// class probabilities p_i of the region.
	ClassificationError
	// MSE measures the impurity of a regression region as the variance
	// of its target values, E[y^2] - E[y]^2.
	MSE
)

var criterionNames = map[Criterion]string{
	Gini:                "gini",
	Entropy:             "entropy",
	ClassificationError: "classification-error",
	MSE:                 "mse",
}

func (c Criterion) String() string {
	name, ok := criterionNames[c]
	if !ok {
		return fmt.Sprintf("unknown criterion %d", int(c))
	}
	return name
}

/*
Regression returns whether the criterion scores regression regions
instead of classification ones.
*/
func (c Criterion) Regression() bool {
	return c == MSE
}

/*
Parse takes the name of a criterion and returns the Criterion it
identifies, or an error if the name does not identify any criterion.
The recognized names are "gini", "entropy", "classification-error"
and "mse".
*/
func Parse(name string) (Criterion, error) {
	for c, n := range criterionNames {
		if n == name {
			return c, nil
		}
	}
	return Gini, fmt.Errorf("unknown criterion %q", name)
}

/*
Impurity takes a classification Criterion, a slice with the number of
samples of each class in a region and the total number of samples in the
region, and returns the impurity of the region under the criterion: 0 for
a pure region, growing as the class mix becomes more even.

Classes with zero samples contribute nothing, so entropy never evaluates
log2(0). A region with no samples is considered pure by convention.
Regression impurity is computed with Variance instead.
*/
func Impurity(c Criterion, counts []int, n int) float64 {
	if n == 0 {
		return 0.0
	}
	total := float64(n)
	switch c {
	case Entropy:
		var result float64
		for _, count := range counts {
			if count > 0 {
				p := float64(count) / total
				result -= p * math.Log2(p)
			}
		}
		return result
	case ClassificationError:
		var max float64
		for _, count := range counts {
			if p := float64(count) / total; p > max {
				max = p
			}
		}
		return math.Abs(1.0 - max)
	default:
		result := 1.0
		for _, count := range counts {
			if count > 0 {
				p := float64(count) / total
				result -= p * p
			}
		}
		return result
	}
}

/*
Variance takes the sum and the sum of squares of the target values of a
regression region together with the number of samples in it, and returns
the variance of the values: E[y^2] - E[y]^2. The result is clamped at 0
to guard against floating-point noise on nearly constant regions. A
region with no samples has variance 0 by convention.
*/
func Variance(sum, sumSq float64, n int) float64 {
	if n == 0 {
		return 0.0
	}
	total := float64(n)
	mean := sum / total
	result := sumSq/total - mean*mean
	if result < 0 {
		return 0.0
	}
	return result
}
