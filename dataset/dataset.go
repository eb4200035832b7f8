/*
Package dataset provides the numeric feature-matrix and target-vector
abstractions consumed by the tree-growing engine, together with a schema
describing how tabular sources map onto them.
*/
package dataset

import (
	"fmt"
	"math/rand"
)

/*
Matrix represents a read-only numeric feature matrix indexable by row
and column.
*/
type Matrix interface {
	Rows() int
	Cols() int
	At(row, col int) float64
}

/*
Vector is a target vector with one value per matrix row: a numeric value
for regression targets or a class index for classification targets.
*/
type Vector []float64

/*
Dense is an in-memory row-major Matrix implementation.
*/
type Dense struct {
	rows, cols int
	data       []float64
}

/*
NewDense takes a number of rows and columns and a row-major slice of
values and returns a Dense matrix backed by the slice, or an error if
the slice length does not match the dimensions.
*/
func NewDense(rows, cols int, data []float64) (*Dense, error) {
	if len(data) != rows*cols {
		return nil, fmt.Errorf("building dense matrix: %d values cannot fill %dx%d", len(data), rows, cols)
	}
	return &Dense{rows, cols, data}, nil
}

/*
NewDenseFromRows takes a slice of equally long rows and returns a Dense
matrix with their values, or an error if the rows have uneven lengths.
*/
func NewDenseFromRows(rows [][]float64) (*Dense, error) {
	if len(rows) == 0 {
		return &Dense{}, nil
	}
	cols := len(rows[0])
	data := make([]float64, 0, len(rows)*cols)
	for i, row := range rows {
		if len(row) != cols {
			return nil, fmt.Errorf("building dense matrix: row %d has %d values, expected %d", i, len(row), cols)
		}
		data = append(data, row...)
	}
	return &Dense{len(rows), cols, data}, nil
}

// Rows returns the number of rows in the matrix.
func (m *Dense) Rows() int {
	return m.rows
}

// Cols returns the number of columns in the matrix.
func (m *Dense) Cols() int {
	return m.cols
}

// At returns the value at the given row and column.
func (m *Dense) At(row, col int) float64 {
	return m.data[row*m.cols+col]
}

/*
Row returns a slice with the values of the given row. The slice shares
the matrix backing array and must not be modified.
*/
func (m *Dense) Row(row int) []float64 {
	return m.data[row*m.cols : (row+1)*m.cols]
}

/*
Dataset bundles a feature matrix with its target vector and, for
classification targets, the dictionary translating class indices back
to their labels.
*/
type Dataset struct {
	X       *Dense
	Y       Vector
	Classes []string

	classIndexes map[string]int
}

/*
New takes a feature matrix, a target vector and a class dictionary
(nil for regression targets) and returns a Dataset bundling them, or an
error if the matrix and vector lengths do not match.
*/
func New(x *Dense, y Vector, classes []string) (*Dataset, error) {
	if x.Rows() != len(y) {
		return nil, fmt.Errorf("building dataset: %d matrix rows for %d target values", x.Rows(), len(y))
	}
	ds := &Dataset{X: x, Y: y, Classes: classes}
	for i, c := range classes {
		ds.indexes()[c] = i
	}
	return ds, nil
}

/*
EncodeClass takes a class label and returns its index in the dataset
class dictionary, adding the label to the dictionary if it was not
known yet.
*/
func (ds *Dataset) EncodeClass(label string) float64 {
	indexes := ds.indexes()
	i, ok := indexes[label]
	if !ok {
		i = len(ds.Classes)
		ds.Classes = append(ds.Classes, label)
		indexes[label] = i
	}
	return float64(i)
}

/*
ClassOf takes a class index as stored in the target vector and returns
its label, or an empty string if the index is not in the dictionary.
*/
func (ds *Dataset) ClassOf(index float64) string {
	i := int(index)
	if i < 0 || i >= len(ds.Classes) {
		return ""
	}
	return ds.Classes[i]
}

func (ds *Dataset) indexes() map[string]int {
	if ds.classIndexes == nil {
		ds.classIndexes = make(map[string]int)
	}
	return ds.classIndexes
}

/*
Split takes a test fraction between 0 and 1 and a seed, shuffles the
dataset rows deterministically with the seed and returns two datasets:
a training one with the first rows and a test one with the given
fraction of rows. It returns an error if the fraction is out of range.
*/
func (ds *Dataset) Split(testFraction float64, seed int64) (*Dataset, *Dataset, error) {
	if testFraction < 0 || testFraction > 1 {
		return nil, nil, fmt.Errorf("splitting dataset: test fraction %f out of [0,1]", testFraction)
	}
	n := ds.X.Rows()
	order := make([]int, n)
	for i := range order {
		order[i] = i
	}
	r := rand.New(rand.NewSource(seed))
	r.Shuffle(n, func(i, j int) {
		order[i], order[j] = order[j], order[i]
	})
	testCount := int(float64(n) * testFraction)
	test, err := ds.subset(order[:testCount])
	if err != nil {
		return nil, nil, err
	}
	train, err := ds.subset(order[testCount:])
	if err != nil {
		return nil, nil, err
	}
	return train, test, nil
}

func (ds *Dataset) subset(rows []int) (*Dataset, error) {
	cols := ds.X.Cols()
	data := make([]float64, 0, len(rows)*cols)
	y := make(Vector, 0, len(rows))
	for _, row := range rows {
		data = append(data, ds.X.Row(row)...)
		y = append(y, ds.Y[row])
	}
	x, err := NewDense(len(rows), cols, data)
	if err != nil {
		return nil, err
	}
	// Each subset gets its own dictionary copy, so encoding a new label
	// on one side cannot leak into the other through a shared backing
	// array.
	var classes []string
	if ds.Classes != nil {
		classes = append([]string{}, ds.Classes...)
	}
	return New(x, y, classes)
}
