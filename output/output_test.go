package output_test

import (
	"encoding/json"
	"github.com/final583/branchsvm"
	"github.com/final583/branchsvm/eval"
	"github.com/final583/branchsvm/output"
	"strings"
	"testing"
)

var result = branchsvm.Result{
	RunID:     "test",
	TrainRows: 4,
	TestRows:  3,
	Confusion: eval.ConfusionMatrix{TP: 1, TN: 1, FP: 1},
	Scores:    map[string]float64{"Recall": 1, "Accuracy": 2.0 / 3.0},
	Undefined: map[string]string{"Precision": "metric undefined: division by zero"},
}

func TestTableEvaluationFormatter(t *testing.T) {
	s, err := output.TableEvaluationFormatter(result)
	if err != nil {
		t.Fatal(err)
	}
	for _, expected := range []string{"undefined", "0.6667", "1.0000"} {
		if !strings.Contains(s, expected) {
			t.Errorf("table does not contain %q:\n%s", expected, s)
		}
	}
}

func TestJsonEvaluationFormatter(t *testing.T) {
	s, err := output.JsonEvaluationFormatter(result)
	if err != nil {
		t.Fatal(err)
	}
	var m map[string]interface{}
	if err := json.Unmarshal([]byte(s), &m); err != nil {
		t.Fatal(err)
	}
	if m["run_id"] != "test" {
		t.Fatalf("unexpected run id %v", m["run_id"])
	}
	if _, ok := m["undefined"].(map[string]interface{})["Precision"]; !ok {
		t.Fatal("undefined precision missing from JSON")
	}
}
