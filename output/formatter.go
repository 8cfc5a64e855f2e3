package output

import (
	"fmt"
	"github.com/final583/branchsvm"
	"github.com/final583/branchsvm/eval"
	"github.com/jedib0t/go-pretty/v6/table"
)

// TableEvaluationFormatter outputs the metrics, confusion counts and row counts as text tables.
func TableEvaluationFormatter(r branchsvm.Result) (string, error) {
	t := table.NewWriter()
	t.SetTitle("Metrics")
	t.AppendHeader(table.Row{"Metric", "Value"})
	for _, evaluator := range []eval.Evaluator{eval.Precision, eval.Recall, eval.Accuracy, eval.F1} {
		name := evaluator.Name()
		if s, ok := r.Scores[name]; ok {
			t.AppendRow(table.Row{name, fmt.Sprintf("%0.04f", s)})
		} else if _, ok := r.Undefined[name]; ok {
			t.AppendRow(table.Row{name, "undefined"})
		}
	}
	s := t.Render() + "\n"

	t = table.NewWriter()
	t.SetTitle("Confusion Matrix")
	t.AppendHeader(table.Row{"", "PREDICTED TAKEN", "PREDICTED NOT TAKEN"})
	t.AppendRows([]table.Row{
		{"TAKEN", r.Confusion.TP, r.Confusion.FN},
		{"NOT TAKEN", r.Confusion.FP, r.Confusion.TN},
	})
	s += t.Render() + "\n"

	t = table.NewWriter()
	t.SetTitle("Run " + r.RunID)
	t.AppendRows([]table.Row{
		{"Training rows", r.TrainRows},
		{"Training rows taken", r.TrainPositives},
		{"Sentinel rows removed", r.SentinelRows},
		{"Test rows", r.TestRows},
		{"Support vectors", r.SupportVectors},
		{"Iterations", r.Iterations},
		{"Test positive rate", fmt.Sprintf("%0.04f", r.PositiveRate)},
		{"Mean decision value", fmt.Sprintf("%0.04f", r.MeanDecision)},
	})
	s += t.Render() + "\n"
	return s, nil
}
