// Package svm trains binary C-support vector classifiers with a radial basis function kernel.
//
// Training solves the C-SVC dual with sequential minimal optimisation, choosing the maximal violating
// pair as the working set at every step, in the manner of LIBSVM. Labels are 0 and 1; internally 1 is the
// positive class.
package svm

import (
	"github.com/pkg/errors"
	"gonum.org/v1/gonum/floats"
	"math"
)

var (
	// ErrEmptyProblem is returned when there is nothing to train on.
	ErrEmptyProblem = errors.New("svm: no training samples")
	// ErrSingleClass is returned when every training label is the same.
	ErrSingleClass = errors.New("svm: training samples must contain both classes")
)

// Parameter configures training.
type Parameter struct {
	// C is the regularisation strength (the box constraint on each dual variable).
	C float64
	// Gamma is the RBF kernel bandwidth: K(x,z) = exp(-Gamma*|x-z|^2).
	Gamma float64
	// Eps is the stopping tolerance on the maximal KKT violation.
	Eps float64
	// MaxIter bounds the number of SMO steps.
	MaxIter int
	// CacheSize is the memory, in megabytes, for kernel rows computed during training.
	CacheSize float64
}

// NewParameter returns the fixed hyperparameters used for branch prediction.
func NewParameter() *Parameter {
	return &Parameter{
		C:         100,
		Gamma:     0.001,
		Eps:       1e-3,
		MaxIter:   10000000,
		CacheSize: 100,
	}
}

func (p Parameter) validate() error {
	switch {
	case p.C <= 0:
		return errors.Errorf("svm: C must be positive, got %v", p.C)
	case p.Gamma <= 0:
		return errors.Errorf("svm: gamma must be positive, got %v", p.Gamma)
	case p.Eps <= 0:
		return errors.Errorf("svm: eps must be positive, got %v", p.Eps)
	case p.MaxIter <= 0:
		return errors.Errorf("svm: max iterations must be positive, got %v", p.MaxIter)
	case p.CacheSize <= 0:
		return errors.Errorf("svm: cache size must be positive, got %v", p.CacheSize)
	}
	return nil
}

// RBF computes the radial basis function kernel between two vectors.
func RBF(gamma float64, x, z []float64) float64 {
	d := floats.Distance(x, z, 2)
	return math.Exp(-gamma * d * d)
}
