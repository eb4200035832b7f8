package dataset

import "fmt"

/*
Task identifies the kind of target a tree predicts: a class label or a
numeric value.
*/
type Task int

const (
	// Classification targets take a finite number of unordered labels.
	Classification Task = iota
	// Regression targets take continuous numeric values.
	Regression
)

func (t Task) String() string {
	if t == Regression {
		return "regression"
	}
	return "classification"
}

/*
ParseTask takes the name of a task, either "classification" or
"regression", and returns the Task it identifies or an error if the
name does not identify any.
*/
func ParseTask(name string) (Task, error) {
	switch name {
	case "classification":
		return Classification, nil
	case "regression":
		return Regression, nil
	}
	return Classification, fmt.Errorf("unknown task %q", name)
}

/*
Schema describes how a tabular data source maps onto a Dataset: the
names of the numeric feature columns in matrix column order, the name
of the label column and the task its values represent.
*/
type Schema struct {
	Features []string
	Label    string
	Task     Task
}

/*
Validate returns an error if the schema declares no features, no label,
or a label that is also declared as a feature.
*/
func (s *Schema) Validate() error {
	if len(s.Features) == 0 {
		return fmt.Errorf("invalid schema: no features declared")
	}
	if s.Label == "" {
		return fmt.Errorf("invalid schema: no label declared")
	}
	seen := make(map[string]bool)
	for _, f := range s.Features {
		if f == s.Label {
			return fmt.Errorf("invalid schema: label %q also declared as feature", s.Label)
		}
		if seen[f] {
			return fmt.Errorf("invalid schema: feature %q declared twice", f)
		}
		seen[f] = true
	}
	return nil
}
