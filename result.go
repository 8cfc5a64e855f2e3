package branchsvm

import (
	"github.com/final583/branchsvm/eval"
	"github.com/pkg/errors"
)

// Result is the outcome of an experiment.
type Result struct {
	RunID          string               `json:"run_id"`
	TrainRows      int                  `json:"train_rows"`
	TrainPositives int                  `json:"train_positives"`
	SentinelRows   int                  `json:"sentinel_rows"`
	TestRows       int                  `json:"test_rows"`
	SupportVectors int                  `json:"support_vectors"`
	Iterations     int                  `json:"iterations"`
	Confusion      eval.ConfusionMatrix `json:"confusion"`
	// PositiveRate is the fraction of test branches labelled taken.
	PositiveRate float64 `json:"positive_rate"`
	// MeanDecision is the mean decision value over the test set.
	MeanDecision float64            `json:"mean_decision"`
	Scores       map[string]float64 `json:"scores"`
	// Undefined maps metrics that could not be computed to the reason.
	Undefined map[string]string `json:"undefined,omitempty"`

	errs map[string]error
}

// Score returns the named metric, or the error that prevented it being computed.
func (r Result) Score(name string) (float64, error) {
	if err, ok := r.errs[name]; ok {
		return 0, err
	}
	s, ok := r.Scores[name]
	if !ok {
		return 0, errors.Errorf("metric %s was not computed", name)
	}
	return s, nil
}
