package main

import (
	"context"
	"fmt"
	"os"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
	"github.com/tushushu/smartcore/dataset"
	"github.com/tushushu/smartcore/dataset/yaml"
)

type testCmdConfig struct {
	treeInput     string
	metadataInput string
	dataInput     string
	table         string
	maxDBConns    int
}

func testCmd() *cobra.Command {
	config := &testCmdConfig{}
	cmd := &cobra.Command{
		Use:   "test",
		Short: "Test a tree against a dataset",
		Long:  `Measure the prediction quality of a previously grown tree over a labeled dataset: accuracy for classification trees, RMSE for regression ones.`,
		Run: func(cmd *cobra.Command, args []string) {
			if err := config.Validate(); err != nil {
				fmt.Fprintln(os.Stderr, err)
				os.Exit(1)
			}
			ctx := context.Background()
			schema, err := yaml.ReadSchemaFromFile(config.metadataInput)
			if err != nil {
				fmt.Fprintln(os.Stderr, err)
				os.Exit(2)
			}
			t, err := loadTree(ctx, config.treeInput)
			if err != nil {
				fmt.Fprintln(os.Stderr, err)
				os.Exit(3)
			}
			ds, err := readDataset(ctx, config.dataInput, schema, config.table, config.maxDBConns)
			if err != nil {
				fmt.Fprintln(os.Stderr, err)
				os.Exit(4)
			}
			logrus.WithField("samples", ds.X.Rows()).Info("testing tree")
			if t.Task == dataset.Classification {
				// Class indices on the test dataset follow its own
				// encoding order; realign them with the tree's.
				realignClasses(t.Classes, ds)
				accuracy, err := t.Accuracy(ctx, ds.X, ds.Y)
				if err != nil {
					fmt.Fprintln(os.Stderr, err)
					os.Exit(5)
				}
				fmt.Printf("%.6f success rate over %d samples\n", accuracy, ds.X.Rows())
				return
			}
			rmse, err := t.RMSE(ctx, ds.X, ds.Y)
			if err != nil {
				fmt.Fprintln(os.Stderr, err)
				os.Exit(5)
			}
			fmt.Printf("%.6f RMSE over %d samples\n", rmse, ds.X.Rows())
		},
	}
	cmd.PersistentFlags().StringVarP(&(config.treeInput), "tree", "t", "", "path to a JSON tree file or a redis://host:port/[db/]name model URL to load the tree from (required)")
	cmd.PersistentFlags().StringVarP(&(config.metadataInput), "metadata", "m", "", "path to a YML file describing the feature and label columns of the input (required)")
	cmd.PersistentFlags().StringVarP(&(config.dataInput), "input", "i", "", "path to an input CSV (.csv) or SQLite3 (.db) file, or a PostgreSQL or MongoDB connection URL with the labeled samples to test against (defaults to STDIN, interpreted as CSV)")
	cmd.PersistentFlags().StringVar(&(config.table), "table", "samples", "name of the table with the samples on SQL inputs")
	cmd.PersistentFlags().IntVar(&(config.maxDBConns), "max-db-conns", 0, "limit to DB connections opened at a time (defaults to 0: no limit)")
	return cmd
}

func (tcc *testCmdConfig) Validate() error {
	if tcc.metadataInput == "" {
		return fmt.Errorf("required metadata flag was not set")
	}
	if tcc.treeInput == "" {
		return fmt.Errorf("required tree flag was not set")
	}
	return nil
}

// realignClasses rewrites the dataset targets so their class indices
// match the given dictionary, leaving labels unknown to it as -1 so
// they never match a prediction.
func realignClasses(classes []string, ds *dataset.Dataset) {
	indexes := make(map[string]float64)
	for i, c := range classes {
		indexes[c] = float64(i)
	}
	for i, v := range ds.Y {
		label := ds.ClassOf(v)
		if index, ok := indexes[label]; ok {
			ds.Y[i] = index
		} else {
			ds.Y[i] = -1
		}
	}
	ds.Classes = classes
}
