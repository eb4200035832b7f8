package smartcore

import (
	"fmt"

	"github.com/tushushu/smartcore/criterion"
	"github.com/tushushu/smartcore/dataset"
)

/*
ConfigError represents an invalid training configuration. It is
returned by Fit before any growth starts.
*/
type ConfigError string

func (ce ConfigError) Error() string {
	return string(ce)
}

func configErrorf(format string, a ...interface{}) ConfigError {
	return ConfigError(fmt.Sprintf(format, a...))
}

/*
Config holds the configuration for growing a tree.

The zero values of MaxDepth, MinSamplesSplit and MinSamplesLeaf stand
for their defaults: unbounded depth, 2 and 1 respectively.
*/
type Config struct {
	// Criterion is the function used to measure the quality of a split.
	Criterion criterion.Criterion
	// Task is the kind of target the tree will predict. It must be
	// compatible with the criterion: MSE for regression targets, any
	// other criterion for classification ones.
	Task dataset.Task
	// MaxDepth is the maximum depth of the tree, with 0 meaning
	// unbounded. Nodes at this depth become leaves.
	MaxDepth int
	// MinSamplesSplit is the minimum number of samples a node needs to
	// be considered for splitting.
	MinSamplesSplit int
	// MinSamplesLeaf is the minimum number of samples either side of a
	// split may hold; candidate splits below it are rejected.
	MinSamplesLeaf int
}

/*
DefaultConfig takes a task and returns the default configuration for
it: the Gini criterion for classification or MSE for regression,
unbounded depth, MinSamplesSplit 2 and MinSamplesLeaf 1.
*/
func DefaultConfig(task dataset.Task) Config {
	c := criterion.Gini
	if task == dataset.Regression {
		c = criterion.MSE
	}
	return Config{Criterion: c, Task: task, MinSamplesSplit: 2, MinSamplesLeaf: 1}
}

/*
Validate checks the configuration and returns a ConfigError if the
criterion is incompatible with the task or a limit is negative.
*/
func (c *Config) Validate() error {
	if c.Criterion.Regression() != (c.Task == dataset.Regression) {
		return configErrorf("criterion %v is incompatible with %v targets", c.Criterion, c.Task)
	}
	if c.MaxDepth < 0 {
		return configErrorf("negative maximum depth %d", c.MaxDepth)
	}
	if c.MinSamplesSplit < 0 {
		return configErrorf("negative minimum samples to split %d", c.MinSamplesSplit)
	}
	if c.MinSamplesLeaf < 0 {
		return configErrorf("negative minimum leaf size %d", c.MinSamplesLeaf)
	}
	return nil
}

func (c *Config) minSamplesSplit() int {
	if c.MinSamplesSplit == 0 {
		return 2
	}
	return c.MinSamplesSplit
}

func (c *Config) minSamplesLeaf() int {
	if c.MinSamplesLeaf == 0 {
		return 1
	}
	return c.MinSamplesLeaf
}
