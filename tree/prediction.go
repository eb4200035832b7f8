package tree

import (
	"fmt"
	"strings"
)

/*
Prediction represents a prediction made by a decision tree: the
predicted value together with, for classification trees, the class
distribution of the training samples it was made from.
*/
type Prediction struct {
	value         float64
	probabilities []float64
	weight        int
}

// PredictionError represents an error related with predictions
type PredictionError string

/*
ErrCannotPredict is the error returned by the Predict method of a tree
when the tree itself cannot make a prediction, as opposed to cases
where the sample is malformed.
*/
const ErrCannotPredict = PredictionError("no prediction available for this sample")

func (pe PredictionError) Error() string {
	return string(pe)
}

/*
NewPrediction takes a predicted value (a mean for regression trees, a
class index for classification ones), a slice with the probability of
each class (nil for regression trees) and the number of training
samples the prediction was made from, and returns a prediction
representing those values.
*/
func NewPrediction(value float64, probabilities []float64, weight int) *Prediction {
	return &Prediction{value: value, probabilities: probabilities, weight: weight}
}

/*
Value returns the predicted value: the mean of the region's training
targets for regression trees or the majority class index for
classification ones.
*/
func (p *Prediction) Value() float64 {
	return p.value
}

/*
ProbabilityOf takes a class index and returns the float64 probability
of that class according to the prediction.
*/
func (p *Prediction) ProbabilityOf(class int) float64 {
	if class < 0 || class >= len(p.probabilities) {
		return 0.0
	}
	return p.probabilities[class]
}

/*
Probabilities returns a slice with the probability of each class
according to the prediction, or nil for regression predictions.
*/
func (p *Prediction) Probabilities() []float64 {
	return p.probabilities
}

/*
Weight returns the weight of the prediction: an int equal to the number
of training samples in the region from which the prediction was made.
*/
func (p *Prediction) Weight() int {
	return p.weight
}

func (p *Prediction) String() string {
	if p.probabilities == nil {
		return fmt.Sprintf("%g", p.value)
	}
	probs := make([]string, len(p.probabilities))
	for i, prob := range p.probabilities {
		probs[i] = fmt.Sprintf("%d: %.3f", i, prob)
	}
	return fmt.Sprintf("[%s]", strings.Join(probs, " "))
}
