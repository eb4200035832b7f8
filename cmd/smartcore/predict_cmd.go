package main

import (
	"context"
	"fmt"
	"os"
	"strconv"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
	"github.com/tushushu/smartcore/dataset"
	"github.com/tushushu/smartcore/dataset/csv"
	"github.com/tushushu/smartcore/dataset/yaml"
)

type predictCmdConfig struct {
	treeInput     string
	metadataInput string
	dataInput     string
}

func predictCmd() *cobra.Command {
	config := &predictCmdConfig{}
	cmd := &cobra.Command{
		Use:   "predict",
		Short: "Predict label values for a set of samples",
		Long:  `Use a previously grown tree to predict the label value of every sample in a CSV input, printing one prediction per line to STDOUT.`,
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
			samples, err := readSamples(config.dataInput, schema)
			if err != nil {
				fmt.Fprintln(os.Stderr, err)
				os.Exit(4)
			}
			logrus.WithField("samples", len(samples)).Info("predicting")
			for i, sample := range samples {
				p, err := t.Predict(sample)
				if err != nil {
					fmt.Fprintf(os.Stderr, "predicting sample %d: %v\n", i, err)
					os.Exit(5)
				}
				if t.Task == dataset.Classification {
					class, err := t.ClassOf(p)
					if err != nil {
						fmt.Fprintln(os.Stderr, err)
						os.Exit(5)
					}
					fmt.Printf("%s (%.3f)\n", class, p.ProbabilityOf(int(p.Value())))
				} else {
					fmt.Println(strconv.FormatFloat(p.Value(), 'g', -1, 64))
				}
			}
		},
	}
	cmd.PersistentFlags().StringVarP(&(config.treeInput), "tree", "t", "", "path to a JSON tree file or a redis://host:port/[db/]name model URL to load the tree from (required)")
	cmd.PersistentFlags().StringVarP(&(config.metadataInput), "metadata", "m", "", "path to a YML file describing the feature columns of the input (required)")
	cmd.PersistentFlags().StringVarP(&(config.dataInput), "input", "i", "", "path to a CSV file with the samples to predict (defaults to STDIN)")
	return cmd
}

func (pcc *predictCmdConfig) Validate() error {
	if pcc.metadataInput == "" {
		return fmt.Errorf("required metadata flag was not set")
	}
	if pcc.treeInput == "" {
		return fmt.Errorf("required tree flag was not set")
	}
	return nil
}

func readSamples(filepath string, s *dataset.Schema) ([][]float64, error) {
	f := os.Stdin
	if filepath != "" {
		var err error
		f, err = os.Open(filepath)
		if err != nil {
			return nil, fmt.Errorf("reading samples: %v", err)
		}
		defer f.Close()
	}
	return csv.ReadSamples(f, s)
}
