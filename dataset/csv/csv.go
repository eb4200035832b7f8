/*
Package csv reads and writes datasets as CSV streams whose columns are
described by a dataset.Schema.
*/
package csv

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"strconv"

	"github.com/tushushu/smartcore/dataset"
)

/*
ReadDataset takes an io.Reader for a CSV stream and a schema and
returns the dataset.Dataset parsed from the stream or an error.

The header or first row of the CSV content is expected to contain every
feature column of the schema and its label column, in any order; extra
columns are ignored. Feature cells must parse as floats. Label cells
are parsed as floats for regression schemas and encoded as class
indices, in order of first appearance, for classification ones.
*/
func ReadDataset(reader io.Reader, s *dataset.Schema) (*dataset.Dataset, error) {
	ds := &dataset.Dataset{}
	columns, r, err := headerColumns(reader, s, true)
	if err != nil {
		return nil, err
	}
	var rows [][]float64
	var y dataset.Vector
	for l := 2; ; l++ {
		record, err := r.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("reading body: %v", err)
		}
		row := make([]float64, len(s.Features))
		for i, column := range columns[:len(s.Features)] {
			row[i], err = strconv.ParseFloat(record[column], 64)
			if err != nil {
				return nil, fmt.Errorf("parsing line %d: converting %q to float64 for feature %s: %v", l, record[column], s.Features[i], err)
			}
		}
		rows = append(rows, row)
		labelCell := record[columns[len(s.Features)]]
		if s.Task == dataset.Regression {
			v, err := strconv.ParseFloat(labelCell, 64)
			if err != nil {
				return nil, fmt.Errorf("parsing line %d: converting label %q to float64: %v", l, labelCell, err)
			}
			y = append(y, v)
		} else {
			y = append(y, ds.EncodeClass(labelCell))
		}
	}
	x, err := dataset.NewDenseFromRows(rows)
	if err != nil {
		return nil, err
	}
	classes := ds.Classes
	ds, err = dataset.New(x, y, classes)
	if err != nil {
		return nil, err
	}
	return ds, nil
}

/*
ReadDatasetFromFile takes a filepath string and a schema, opens the
file to which the filepath points (os.Stdin when the filepath is
empty) and uses ReadDataset to return the dataset.Dataset read from it
or an error.
*/
func ReadDatasetFromFile(filepath string, s *dataset.Schema) (*dataset.Dataset, error) {
	var f *os.File
	var err error
	if filepath == "" {
		f = os.Stdin
	} else {
		f, err = os.Open(filepath)
		if err != nil {
			return nil, fmt.Errorf("reading dataset: %v", err)
		}
		defer f.Close()
	}
	ds, err := ReadDataset(f, s)
	if err != nil {
		err = fmt.Errorf("parsing CSV file %s: %v", filepath, err)
	}
	return ds, err
}

/*
ReadSamples takes an io.Reader for a CSV stream and a schema and
returns the feature rows parsed from the stream, one float64 slice per
sample in schema feature order, or an error. The header must contain
every feature column of the schema; a label column is not required and
is ignored if present.
*/
func ReadSamples(reader io.Reader, s *dataset.Schema) ([][]float64, error) {
	columns, r, err := headerColumns(reader, s, false)
	if err != nil {
		return nil, err
	}
	var samples [][]float64
	for l := 2; ; l++ {
		record, err := r.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("reading body: %v", err)
		}
		sample := make([]float64, len(s.Features))
		for i, column := range columns {
			sample[i], err = strconv.ParseFloat(record[column], 64)
			if err != nil {
				return nil, fmt.Errorf("parsing line %d: converting %q to float64 for feature %s: %v", l, record[column], s.Features[i], err)
			}
		}
		samples = append(samples, sample)
	}
	return samples, nil
}

/*
WriteDataset takes an io.Writer, a dataset and its schema and dumps the
dataset onto the writer in CSV format, with the schema feature columns
followed by the label column. Classification labels are written as
their class dictionary entries. It returns an error if something goes
wrong writing to the writer.
*/
func WriteDataset(writer io.Writer, ds *dataset.Dataset, s *dataset.Schema) error {
	w := csv.NewWriter(writer)
	header := append(append([]string{}, s.Features...), s.Label)
	if err := w.Write(header); err != nil {
		return fmt.Errorf("writing CSV header: %v", err)
	}
	record := make([]string, len(s.Features)+1)
	for i := 0; i < ds.X.Rows(); i++ {
		for j, v := range ds.X.Row(i) {
			record[j] = strconv.FormatFloat(v, 'g', -1, 64)
		}
		if s.Task == dataset.Regression {
			record[len(record)-1] = strconv.FormatFloat(ds.Y[i], 'g', -1, 64)
		} else {
			record[len(record)-1] = ds.ClassOf(ds.Y[i])
		}
		if err := w.Write(record); err != nil {
			return fmt.Errorf("writing CSV row for sample %d: %v", i, err)
		}
	}
	w.Flush()
	return w.Error()
}

// headerColumns reads the CSV header and resolves the position of every
// schema feature and, when withLabel is set, the label column. The
// returned slice holds the feature positions in schema order, followed
// by the label position when requested.
func headerColumns(reader io.Reader, s *dataset.Schema, withLabel bool) ([]int, *csv.Reader, error) {
	r := csv.NewReader(reader)
	header, err := r.Read()
	if err != nil {
		return nil, nil, fmt.Errorf("reading header: %v", err)
	}
	positions := make(map[string]int)
	for i, name := range header {
		positions[name] = i
	}
	columns := make([]int, 0, len(s.Features)+1)
	names := s.Features
	if withLabel {
		names = append(append([]string{}, s.Features...), s.Label)
	}
	for _, name := range names {
		column, ok := positions[name]
		if !ok {
			return nil, nil, fmt.Errorf("parsing header: no column for %q", name)
		}
		columns = append(columns, column)
	}
	return columns, r, nil
}
