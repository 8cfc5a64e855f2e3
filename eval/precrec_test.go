package eval_test

import (
	"github.com/final583/branchsvm/eval"
	"github.com/pkg/errors"
	"math"
	"testing"
)

func TestConfusionMatrix(t *testing.T) {
	m, err := eval.NewConfusionMatrix([]float64{1, 0, 0, 1, 1}, []float64{1, 1, 0, 0, 1})
	if err != nil {
		t.Fatal(err)
	}
	expected := eval.ConfusionMatrix{TP: 2, TN: 1, FP: 1, FN: 1}
	if m != expected {
		t.Fatalf("expected %+v, got %+v", expected, m)
	}

	if _, err := eval.NewConfusionMatrix([]float64{1}, nil); err == nil {
		t.Fatal("expected a length error")
	}
}

func TestPrecisionRecallAccuracy(t *testing.T) {
	m := eval.ConfusionMatrix{TP: 2, TN: 1, FP: 1, FN: 1}
	cases := []struct {
		evaluator eval.Evaluator
		expected  float64
	}{
		{eval.Precision, 2.0 / 3.0},
		{eval.Recall, 2.0 / 3.0},
		{eval.Accuracy, 3.0 / 5.0},
		{eval.F1, 2.0 / 3.0},
	}
	for _, c := range cases {
		score, err := c.evaluator.Score(m)
		if err != nil {
			t.Fatal(err)
		}
		if math.Abs(score-c.expected) > 1e-12 {
			t.Errorf("%s: expected %v, got %v", c.evaluator.Name(), c.expected, score)
		}
	}
}

func TestUndefined(t *testing.T) {
	// Nothing predicted positive and nothing labelled positive.
	m := eval.ConfusionMatrix{TN: 3}
	scores, errs := eval.Evaluate([]eval.Evaluator{eval.Precision, eval.Recall, eval.Accuracy}, m)
	for _, name := range []string{"Precision", "Recall"} {
		if errors.Cause(errs[name]) != eval.ErrUndefined {
			t.Errorf("%s: expected ErrUndefined, got %v", name, errs[name])
		}
		if _, ok := scores[name]; ok {
			t.Errorf("%s: undefined metric reported a score", name)
		}
	}
	if scores["Accuracy"] != 1 {
		t.Errorf("expected accuracy 1, got %v", scores["Accuracy"])
	}

	if _, err := eval.Accuracy.Score(eval.ConfusionMatrix{}); errors.Cause(err) != eval.ErrUndefined {
		t.Errorf("expected ErrUndefined for an empty test set, got %v", err)
	}
}
