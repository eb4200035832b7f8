package main

import (
	"context"
	"fmt"
	"os"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
	"github.com/tushushu/smartcore/dataset"
	"github.com/tushushu/smartcore/dataset/csv"
	"github.com/tushushu/smartcore/dataset/yaml"
)

type splitCmdConfig struct {
	dataInput     string
	metadataInput string
	trainOutput   string
	testOutput    string
	testFraction  float64
	seed          int64
	table         string
	maxDBConns    int
}

func splitCmd() *cobra.Command {
	config := &splitCmdConfig{}
	cmd := &cobra.Command{
		Use:   "split",
		Short: "Split a dataset into training and test datasets",
		Long:  `Shuffle a dataset deterministically and split it into a training CSV and a test CSV, so a tree can be grown on one and tested against the other.`,
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
			ds, err := readDataset(ctx, config.dataInput, schema, config.table, config.maxDBConns)
			if err != nil {
				fmt.Fprintln(os.Stderr, err)
				os.Exit(3)
			}
			train, test, err := ds.Split(config.testFraction, config.seed)
			if err != nil {
				fmt.Fprintln(os.Stderr, err)
				os.Exit(4)
			}
			logrus.WithFields(logrus.Fields{
				"train": train.X.Rows(),
				"test":  test.X.Rows(),
			}).Info("split dataset")
			if err = writeDatasetFile(config.trainOutput, train, schema); err != nil {
				fmt.Fprintln(os.Stderr, err)
				os.Exit(5)
			}
			if err = writeDatasetFile(config.testOutput, test, schema); err != nil {
				fmt.Fprintln(os.Stderr, err)
				os.Exit(6)
			}
		},
	}
	cmd.PersistentFlags().StringVarP(&(config.dataInput), "input", "i", "", "path to an input CSV (.csv) or SQLite3 (.db) file, or a PostgreSQL or MongoDB connection URL with the dataset to split (defaults to STDIN, interpreted as CSV)")
	cmd.PersistentFlags().StringVarP(&(config.metadataInput), "metadata", "m", "", "path to a YML file describing the feature and label columns of the input (required)")
	cmd.PersistentFlags().StringVar(&(config.trainOutput), "train-output", "", "path to the CSV file to write the training dataset to (required)")
	cmd.PersistentFlags().StringVar(&(config.testOutput), "test-output", "", "path to the CSV file to write the test dataset to (required)")
	cmd.PersistentFlags().Float64Var(&(config.testFraction), "test-fraction", 0.2, "fraction of samples to put in the test dataset")
	cmd.PersistentFlags().Int64Var(&(config.seed), "seed", 1, "seed for the deterministic shuffle")
	cmd.PersistentFlags().StringVar(&(config.table), "table", "samples", "name of the table with the samples on SQL inputs")
	cmd.PersistentFlags().IntVar(&(config.maxDBConns), "max-db-conns", 0, "limit to DB connections opened at a time (defaults to 0: no limit)")
	return cmd
}

func (scc *splitCmdConfig) Validate() error {
	if scc.metadataInput == "" {
		return fmt.Errorf("required metadata flag was not set")
	}
	if scc.trainOutput == "" {
		return fmt.Errorf("required train-output flag was not set")
	}
	if scc.testOutput == "" {
		return fmt.Errorf("required test-output flag was not set")
	}
	return nil
}

func writeDatasetFile(filepath string, ds *dataset.Dataset, s *dataset.Schema) error {
	f, err := os.Create(filepath)
	if err != nil {
		return fmt.Errorf("writing dataset to %s: %v", filepath, err)
	}
	defer f.Close()
	if err = csv.WriteDataset(f, ds, s); err != nil {
		return fmt.Errorf("writing dataset to %s: %v", filepath, err)
	}
	return nil
}
