package main

import (
	"context"
	"fmt"
	"os"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"github.com/tushushu/smartcore"
	"github.com/tushushu/smartcore/criterion"
	"github.com/tushushu/smartcore/dataset"
	"github.com/tushushu/smartcore/dataset/yaml"
)

type growCmdConfig struct {
	dataInput     string
	metadataInput string
	output        string
	table         string
	maxDBConns    int
}

func growCmd() *cobra.Command {
	config := &growCmdConfig{}
	cmd := &cobra.Command{
		Use:   "grow",
		Short: "Grow a tree from a dataset",
		Long:  `Grow a classification or regression tree from a dataset to predict its label column.`,
		Run: func(cmd *cobra.Command, args []string) {
			if config.metadataInput == "" {
				fmt.Fprintln(os.Stderr, "required metadata flag was not set")
				os.Exit(1)
			}
			ctx := context.Background()
			schema, err := yaml.ReadSchemaFromFile(config.metadataInput)
			if err != nil {
				fmt.Fprintln(os.Stderr, err)
				os.Exit(2)
			}
			trainingConfig, err := trainingConfigFor(schema.Task)
			if err != nil {
				fmt.Fprintln(os.Stderr, err)
				os.Exit(3)
			}
			ds, err := readDataset(ctx, config.dataInput, schema, config.table, config.maxDBConns)
			if err != nil {
				fmt.Fprintln(os.Stderr, err)
				os.Exit(4)
			}
			logrus.WithFields(logrus.Fields{
				"samples":   ds.X.Rows(),
				"features":  len(schema.Features),
				"label":     schema.Label,
				"criterion": trainingConfig.Criterion.String(),
			}).Info("growing tree")
			t, err := smartcore.FitDataset(ctx, ds, trainingConfig)
			if err != nil {
				fmt.Fprintf(os.Stderr, "growing the tree: %v\n", err)
				os.Exit(5)
			}
			t.Features = schema.Features
			logrus.Debugf("grown tree:\n%v", t)
			if err = saveTree(ctx, config.output, t); err != nil {
				fmt.Fprintln(os.Stderr, err)
				os.Exit(6)
			}
		},
	}
	cmd.PersistentFlags().StringVarP(&(config.dataInput), "input", "i", "", "path to an input CSV (.csv) or SQLite3 (.db) file, or a PostgreSQL or MongoDB connection URL with data to use to grow the tree (defaults to STDIN, interpreted as CSV)")
	cmd.PersistentFlags().StringVarP(&(config.metadataInput), "metadata", "m", "", "path to a YML file describing the feature and label columns of the input (required)")
	cmd.PersistentFlags().StringVarP(&(config.output), "output", "o", "", "path to a file to which the grown tree will be written in JSON format, or a redis://host:port/[db/]name model URL (defaults to STDOUT)")
	cmd.PersistentFlags().StringVar(&(config.table), "table", "samples", "name of the table with the samples on SQL inputs")
	cmd.PersistentFlags().IntVar(&(config.maxDBConns), "max-db-conns", 0, "limit to DB connections opened at a time (defaults to 0: no limit)")
	cmd.PersistentFlags().StringP("criterion", "c", "", "split-quality criterion: gini, entropy, classification-error or mse (defaults to gini for classification labels, mse for regression ones)")
	cmd.PersistentFlags().Int("max-depth", 0, "maximum tree depth (defaults to 0: unbounded)")
	cmd.PersistentFlags().Int("min-samples-split", 2, "minimum number of samples a node needs to be split")
	cmd.PersistentFlags().Int("min-samples-leaf", 1, "minimum number of samples either side of a split may hold")
	viper.BindPFlag("criterion", cmd.PersistentFlags().Lookup("criterion"))
	viper.BindPFlag("max-depth", cmd.PersistentFlags().Lookup("max-depth"))
	viper.BindPFlag("min-samples-split", cmd.PersistentFlags().Lookup("min-samples-split"))
	viper.BindPFlag("min-samples-leaf", cmd.PersistentFlags().Lookup("min-samples-leaf"))
	return cmd
}

// trainingConfigFor resolves the training flags through viper, so a
// .smartcore.yml file can set defaults for any of them.
func trainingConfigFor(task dataset.Task) (smartcore.Config, error) {
	config := smartcore.DefaultConfig(task)
	if name := viper.GetString("criterion"); name != "" {
		c, err := criterion.Parse(name)
		if err != nil {
			return config, err
		}
		config.Criterion = c
	}
	config.MaxDepth = viper.GetInt("max-depth")
	if v := viper.GetInt("min-samples-split"); v > 0 {
		config.MinSamplesSplit = v
	}
	if v := viper.GetInt("min-samples-leaf"); v > 0 {
		config.MinSamplesLeaf = v
	}
	return config, nil
}
