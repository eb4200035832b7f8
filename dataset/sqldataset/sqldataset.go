/*
Package sqldataset loads datasets from tables on SQL databases,
accessed through an Adapter that knows the specific database engine.
*/
package sqldataset

import (
	"context"
	"database/sql"
	"fmt"
	"strconv"
	"strings"

	"github.com/tushushu/smartcore/dataset"
)

/*
Adapter gives access to a specific SQL database engine: the open
database handle and the engine's identifier quoting rule.
*/
type Adapter interface {
	DB() *sql.DB
	Quote(identifier string) string
}

/*
ReadDataset takes a context, an adapter, a table name and a schema and
returns a dataset with every row of the table, selecting the schema
feature columns and label column in schema order. It returns an error
if the table cannot be queried or a value cannot be interpreted.
*/
func ReadDataset(ctx context.Context, a Adapter, table string, s *dataset.Schema) (*dataset.Dataset, error) {
	columns := make([]string, 0, len(s.Features)+1)
	for _, name := range s.Features {
		columns = append(columns, a.Quote(name))
	}
	columns = append(columns, a.Quote(s.Label))
	query := fmt.Sprintf("SELECT %s FROM %s", strings.Join(columns, ", "), a.Quote(table))
	result, err := a.DB().QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("querying samples from table %s: %v", table, err)
	}
	defer result.Close()
	ds := &dataset.Dataset{}
	var rows [][]float64
	var y dataset.Vector
	for result.Next() {
		row := make([]float64, len(s.Features))
		dests := make([]interface{}, 0, len(s.Features)+1)
		for j := range row {
			dests = append(dests, &row[j])
		}
		var label interface{}
		dests = append(dests, &label)
		if err = result.Scan(dests...); err != nil {
			return nil, fmt.Errorf("scanning sample %d: %v", len(rows), err)
		}
		rows = append(rows, row)
		if s.Task == dataset.Regression {
			v, err := floatLabel(label)
			if err != nil {
				return nil, fmt.Errorf("scanning sample %d: label %s: %v", len(rows)-1, s.Label, err)
			}
			y = append(y, v)
		} else {
			y = append(y, ds.EncodeClass(stringLabel(label)))
		}
	}
	if err = result.Err(); err != nil {
		return nil, fmt.Errorf("reading samples from table %s: %v", table, err)
	}
	x, err := dataset.NewDenseFromRows(rows)
	if err != nil {
		return nil, err
	}
	return dataset.New(x, y, ds.Classes)
}

func stringLabel(v interface{}) string {
	switch value := v.(type) {
	case string:
		return value
	case []byte:
		return string(value)
	}
	return fmt.Sprintf("%v", v)
}

func floatLabel(v interface{}) (float64, error) {
	switch value := v.(type) {
	case float64:
		return value, nil
	case int64:
		return float64(value), nil
	case []byte:
		return strconv.ParseFloat(string(value), 64)
	case string:
		return strconv.ParseFloat(value, 64)
	}
	return 0, fmt.Errorf("expected numeric value, got %T", v)
}
