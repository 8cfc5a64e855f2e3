// Package dataset loads branch heuristic features and true branch probabilities from benchmark folders.
package dataset

import (
	"github.com/pkg/errors"
	"gonum.org/v1/gonum/floats"
	"math"
)

const (
	// NumFeatures is the width of a heuristic feature vector. The columns are the loop, pointer, opcode,
	// guard, loop header, call, store and return heuristics.
	NumFeatures = 8
	// SentinelValue is the value a heuristic takes when it does not apply to a branch.
	SentinelValue = 0.5

	// HeuristicsFile holds one row of NumFeatures heuristic values per branch.
	HeuristicsFile = "heuristics.csv"
	// ProbabilityFile holds the true probability of each branch in its first column.
	ProbabilityFile = "true_probability.csv"
)

var (
	// ErrRowMismatch is returned when the heuristics and probability files of a folder differ in length.
	ErrRowMismatch = errors.New("heuristics and true probability row counts differ")
	// ErrLabelRange is returned when a true probability lies outside [0,1].
	ErrLabelRange = errors.New("true probability outside [0,1]")
)

var sentinel = func() []float64 {
	s := make([]float64, NumFeatures)
	for i := range s {
		s[i] = SentinelValue
	}
	return s
}()

// Dataset is a feature matrix and its label vector. Row i of X is labelled by Y[i].
type Dataset struct {
	X [][]float64
	Y []float64
}

// Len is the number of rows.
func (d Dataset) Len() int {
	return len(d.Y)
}

// Validate checks the shape of the dataset.
func (d Dataset) Validate() error {
	if len(d.X) != len(d.Y) {
		return errors.Wrapf(ErrRowMismatch, "%d feature rows, %d labels", len(d.X), len(d.Y))
	}
	for i, row := range d.X {
		if len(row) != NumFeatures {
			return errors.Errorf("row %d has %d features, expected %d", i, len(row), NumFeatures)
		}
	}
	return nil
}

// Append concatenates other onto the end of d.
func (d Dataset) Append(other Dataset) Dataset {
	d.X = append(d.X, other.X...)
	d.Y = append(d.Y, other.Y...)
	return d
}

// WithoutSentinels returns a copy of the dataset with every sentinel row (and its label) removed.
func (d Dataset) WithoutSentinels() Dataset {
	var out Dataset
	for i, row := range d.X {
		if IsSentinel(row) {
			continue
		}
		out.X = append(out.X, row)
		out.Y = append(out.Y, d.Y[i])
	}
	return out
}

// Positives counts the rows labelled 1.
func (d Dataset) Positives() int {
	n := 0
	for _, y := range d.Y {
		if y == 1 {
			n++
		}
	}
	return n
}

// IsSentinel reports whether every heuristic of a row is "not applicable".
func IsSentinel(row []float64) bool {
	return len(row) == NumFeatures && floats.Equal(row, sentinel)
}

// RoundLabel rounds a true probability to a 0/1 class. Halves round to even, so 0.5 is class 0.
func RoundLabel(p float64) (float64, error) {
	if math.IsNaN(p) || p < 0 || p > 1 {
		return 0, errors.Wrapf(ErrLabelRange, "%v", p)
	}
	return math.RoundToEven(p), nil
}
