// Package output provides different formats of output for experiments.
package output

import (
	"encoding/json"
	"github.com/final583/branchsvm"
)

// EvaluationFormatter renders the result of an experiment.
type EvaluationFormatter func(r branchsvm.Result) (string, error)

// JsonEvaluationFormatter outputs results in a JSON format.
func JsonEvaluationFormatter(r branchsvm.Result) (string, error) {
	v, err := json.MarshalIndent(r, "", "    ")
	if err != nil {
		return "", err
	}
	return string(v), nil
}
