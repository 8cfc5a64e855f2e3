// Package eval scores binary predictions against ground truth labels.
package eval

import (
	"github.com/pkg/errors"
)

// ErrUndefined is returned by an evaluator whose denominator is zero.
var ErrUndefined = errors.New("metric undefined: division by zero")

// ConfusionMatrix counts binary outcomes, with 1 as the positive class.
type ConfusionMatrix struct {
	TP int `json:"tp"`
	TN int `json:"tn"`
	FP int `json:"fp"`
	FN int `json:"fn"`
}

// NewConfusionMatrix compares predictions with labels. Values other than 1 are treated as the negative class.
func NewConfusionMatrix(yTrue, yPred []float64) (ConfusionMatrix, error) {
	var m ConfusionMatrix
	if len(yTrue) != len(yPred) {
		return m, errors.Errorf("%d labels but %d predictions", len(yTrue), len(yPred))
	}
	for i := range yTrue {
		switch {
		case yPred[i] == 1 && yTrue[i] == 1:
			m.TP++
		case yPred[i] == 1:
			m.FP++
		case yTrue[i] == 1:
			m.FN++
		default:
			m.TN++
		}
	}
	return m, nil
}

// Total is the number of scored samples.
func (m ConfusionMatrix) Total() int {
	return m.TP + m.TN + m.FP + m.FN
}

// Evaluator is an interface for computing a metric from a confusion matrix.
type Evaluator interface {
	Score(m ConfusionMatrix) (float64, error)
	Name() string
}

// Evaluate scores a confusion matrix with each evaluator. Evaluators that fail are reported in the error
// map instead of the score map.
func Evaluate(evaluators []Evaluator, m ConfusionMatrix) (map[string]float64, map[string]error) {
	scores := map[string]float64{}
	errs := map[string]error{}
	for _, evaluator := range evaluators {
		score, err := evaluator.Score(m)
		if err != nil {
			errs[evaluator.Name()] = err
			continue
		}
		scores[evaluator.Name()] = score
	}
	return scores, errs
}
