/*
Package yaml parses dataset schemas, also known as metadata, from YAML
documents.
*/
package yaml

import (
	"fmt"
	"os"

	"github.com/tushushu/smartcore/dataset"
	yaml "gopkg.in/yaml.v2"
)

/*
ReadSchema takes a slice of bytes with a schema specification in YAML
and returns the dataset.Schema parsed from it or an error.

The YAML is expected to be an object with a features property listing
the numeric feature column names in matrix column order, and a label
property with the name of the label column and the task its values
represent:

	features: [sepal_length, sepal_width, petal_length, petal_width]
	label:
	  name: species
	  task: classification
*/
func ReadSchema(md []byte) (*dataset.Schema, error) {
	metadata := struct {
		Features []string
		Label    struct {
			Name string
			Task string
		}
	}{}
	err := yaml.Unmarshal(md, &metadata)
	if err != nil {
		return nil, fmt.Errorf("parsing yml schema: %v", err)
	}
	task, err := dataset.ParseTask(metadata.Label.Task)
	if err != nil {
		return nil, fmt.Errorf("parsing yml schema: %v", err)
	}
	s := &dataset.Schema{
		Features: metadata.Features,
		Label:    metadata.Label.Name,
		Task:     task,
	}
	if err = s.Validate(); err != nil {
		return nil, err
	}
	return s, nil
}

/*
ReadSchemaFromFile takes a filepath string, reads its contents and uses
ReadSchema to parse it and return the dataset.Schema or an error. If
the file indicated by the filepath cannot be opened for reading an
error will be returned.
*/
func ReadSchemaFromFile(filepath string) (*dataset.Schema, error) {
	md, err := os.ReadFile(filepath)
	if err != nil {
		return nil, fmt.Errorf("reading schema yml file %s: %v", filepath, err)
	}
	s, err := ReadSchema(md)
	if err != nil {
		err = fmt.Errorf("parsing schema yml file %s: %v", filepath, err)
	}
	return s, err
}
