package eval

import (
	"github.com/pkg/errors"
)

type recallEvaluator struct{}
type precisionEvaluator struct{}
type accuracyEvaluator struct{}
type f1Evaluator struct{}

var (
	// Precision is TP/(TP+FP).
	Precision = precisionEvaluator{}
	// Recall is TP/(TP+FN).
	Recall = recallEvaluator{}
	// Accuracy is (TP+TN)/total.
	Accuracy = accuracyEvaluator{}
	// F1 is the harmonic mean of precision and recall.
	F1 = f1Evaluator{}

	// Default are the metrics reported for a run.
	Default = []Evaluator{Precision, Recall, Accuracy}
)

func (precisionEvaluator) Name() string {
	return "Precision"
}

func (precisionEvaluator) Score(m ConfusionMatrix) (float64, error) {
	if m.TP+m.FP == 0 {
		return 0, errors.Wrap(ErrUndefined, "precision: no positive predictions")
	}
	return float64(m.TP) / float64(m.TP+m.FP), nil
}

func (recallEvaluator) Name() string {
	return "Recall"
}

func (recallEvaluator) Score(m ConfusionMatrix) (float64, error) {
	if m.TP+m.FN == 0 {
		return 0, errors.Wrap(ErrUndefined, "recall: no positive labels")
	}
	return float64(m.TP) / float64(m.TP+m.FN), nil
}

func (accuracyEvaluator) Name() string {
	return "Accuracy"
}

func (accuracyEvaluator) Score(m ConfusionMatrix) (float64, error) {
	if m.Total() == 0 {
		return 0, errors.Wrap(ErrUndefined, "accuracy: no samples")
	}
	return float64(m.TP+m.TN) / float64(m.Total()), nil
}

func (f1Evaluator) Name() string {
	return "F1"
}

func (f1Evaluator) Score(m ConfusionMatrix) (float64, error) {
	precision, err := Precision.Score(m)
	if err != nil {
		return 0, err
	}
	recall, err := Recall.Score(m)
	if err != nil {
		return 0, err
	}
	if precision+recall == 0 {
		return 0, errors.Wrap(ErrUndefined, "f1: precision and recall are zero")
	}
	return 2 * precision * recall / (precision + recall), nil
}
