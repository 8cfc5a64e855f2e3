package svm

import (
	"encoding/json"
	"github.com/pkg/errors"
	"io/ioutil"
)

// Model is a trained classifier. Only support vectors (samples with a non-zero dual variable) are kept.
type Model struct {
	Gamma float64 `json:"gamma"`
	// SV are the support vectors.
	SV [][]float64 `json:"sv"`
	// Coef is alpha_i*y_i for each support vector.
	Coef []float64 `json:"coef"`
	Rho  float64   `json:"rho"`
	// Iter is the number of optimisation steps taken during training.
	Iter int `json:"iter"`
}

// Train fits a classifier to samples x with 0/1 labels y.
func Train(x [][]float64, y []float64, param *Parameter) (*Model, error) {
	if err := param.validate(); err != nil {
		return nil, err
	}
	if len(x) != len(y) {
		return nil, errors.Errorf("svm: %d samples but %d labels", len(x), len(y))
	}
	if len(x) == 0 {
		return nil, ErrEmptyProblem
	}

	signs := make([]float64, len(y))
	var pos, neg int
	for i, label := range y {
		switch label {
		case 1:
			signs[i] = 1
			pos++
		case 0:
			signs[i] = -1
			neg++
		default:
			return nil, errors.Errorf("svm: label %v of sample %d is not 0 or 1", label, i)
		}
	}
	if pos == 0 || neg == 0 {
		return nil, ErrSingleClass
	}

	q, err := newQCache(param.Gamma, x, signs, param.CacheSize)
	if err != nil {
		return nil, err
	}
	alpha, rho, iter := solve(q, signs, param.C, param.Eps, param.MaxIter)

	m := &Model{
		Gamma: param.Gamma,
		Rho:   rho,
		Iter:  iter,
	}
	for i, a := range alpha {
		if a > 0 {
			m.SV = append(m.SV, x[i])
			m.Coef = append(m.Coef, a*signs[i])
		}
	}
	return m, nil
}

// DecisionValue is the signed distance-like score of x; positive values predict class 1.
func (m *Model) DecisionValue(x []float64) float64 {
	sum := 0.0
	for i, sv := range m.SV {
		sum += m.Coef[i] * RBF(m.Gamma, sv, x)
	}
	return sum - m.Rho
}

// Predict returns the 0/1 class of x.
func (m *Model) Predict(x []float64) float64 {
	if m.DecisionValue(x) > 0 {
		return 1
	}
	return 0
}

// PredictAll predicts the class of every row of x.
func (m *Model) PredictAll(x [][]float64) []float64 {
	y := make([]float64, len(x))
	for i, row := range x {
		y[i] = m.Predict(row)
	}
	return y
}

// Dump writes the model to file as JSON.
func (m *Model) Dump(file string) error {
	b, err := json.MarshalIndent(m, "", "  ")
	if err != nil {
		return err
	}
	return ioutil.WriteFile(file, b, 0644)
}

// NewModelFromFile reads a model written by Dump.
func NewModelFromFile(file string) (*Model, error) {
	b, err := ioutil.ReadFile(file)
	if err != nil {
		return nil, err
	}
	var m Model
	if err := json.Unmarshal(b, &m); err != nil {
		return nil, errors.Wrapf(err, "svm: reading model %s", file)
	}
	if len(m.SV) != len(m.Coef) {
		return nil, errors.Errorf("svm: model %s has %d support vectors but %d coefficients", file, len(m.SV), len(m.Coef))
	}
	return &m, nil
}
