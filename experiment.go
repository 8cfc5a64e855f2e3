// Package branchsvm trains a support vector classifier on branch heuristics from a set of benchmark folders
// and evaluates its predictions of whether branches are taken on another set of folders.
package branchsvm

import (
	"github.com/final583/branchsvm/dataset"
	"github.com/final583/branchsvm/eval"
	"github.com/final583/branchsvm/svm"
	"github.com/google/uuid"
	"github.com/pkg/errors"
	"gonum.org/v1/gonum/stat"
	"io/ioutil"
	"log"
	"os"
)

// ErrEmptyTrainingSet is returned when no training rows remain after sentinel rows are removed.
var ErrEmptyTrainingSet = errors.New("training set is empty after removing sentinel rows")

// Experiment is a single fit on the training folders followed by scoring on the test folders.
type Experiment struct {
	Loader     *dataset.Loader
	Train      []string
	Test       []string
	Parameter  *svm.Parameter
	Evaluators []eval.Evaluator

	modelFile  string
	libSVMFile string
	logger     *log.Logger
}

// ExperimentParameter sets the SVM hyperparameters.
func ExperimentParameter(p *svm.Parameter) func(*Experiment) {
	return func(e *Experiment) {
		e.Parameter = p
	}
}

// ExperimentEvaluators replaces the reported metrics.
func ExperimentEvaluators(evaluators ...eval.Evaluator) func(*Experiment) {
	return func(e *Experiment) {
		e.Evaluators = evaluators
	}
}

// ExperimentModelFile dumps the trained model to file.
func ExperimentModelFile(file string) func(*Experiment) {
	return func(e *Experiment) {
		e.modelFile = file
	}
}

// ExperimentLibSVMFile writes the filtered training set to file in LIBSVM format.
func ExperimentLibSVMFile(file string) func(*Experiment) {
	return func(e *Experiment) {
		e.libSVMFile = file
	}
}

// ExperimentLogger reports progress to logger.
func ExperimentLogger(logger *log.Logger) func(*Experiment) {
	return func(e *Experiment) {
		e.logger = logger
	}
}

// NewExperiment creates an experiment with the fixed hyperparameters and precision, recall and accuracy
// as metrics. Additional configuration is provided via the optional functional arguments.
func NewExperiment(loader *dataset.Loader, train, test []string, options ...func(*Experiment)) Experiment {
	e := Experiment{
		Loader:     loader,
		Train:      train,
		Test:       test,
		Parameter:  svm.NewParameter(),
		Evaluators: eval.Default,
		logger:     log.New(ioutil.Discard, "", 0),
	}
	for _, option := range options {
		option(&e)
	}
	return e
}

// Run loads both sets, removes sentinel rows from the training set, fits the classifier and scores the
// test set. Metrics that cannot be computed are recorded as undefined in the result rather than failing
// the run.
func (e Experiment) Run() (Result, error) {
	e.logger.Println("loading training folders...")
	train, err := e.Loader.Load(e.Train)
	if err != nil {
		return Result{}, err
	}
	filtered := train.WithoutSentinels()
	e.logger.Printf("removed %d sentinel rows from %d training rows", train.Len()-filtered.Len(), train.Len())
	if filtered.Len() == 0 {
		return Result{}, errors.Wrapf(ErrEmptyTrainingSet, "folders %v", e.Train)
	}

	e.logger.Println("loading test folders...")
	test, err := e.Loader.Load(e.Test)
	if err != nil {
		return Result{}, err
	}

	if len(e.libSVMFile) > 0 {
		if err := writeLibSVM(e.libSVMFile, filtered); err != nil {
			return Result{}, err
		}
	}

	e.logger.Printf("training on %d rows (C=%v, gamma=%v)...", filtered.Len(), e.Parameter.C, e.Parameter.Gamma)
	model, err := svm.Train(filtered.X, filtered.Y, e.Parameter)
	if err != nil {
		return Result{}, err
	}
	e.logger.Printf("%d support vectors after %d iterations", len(model.SV), model.Iter)

	if len(e.modelFile) > 0 {
		if err := model.Dump(e.modelFile); err != nil {
			return Result{}, err
		}
	}

	predictions := make([]float64, test.Len())
	decisions := make([]float64, test.Len())
	for i, x := range test.X {
		decisions[i] = model.DecisionValue(x)
		predictions[i] = model.Predict(x)
	}

	cm, err := eval.NewConfusionMatrix(test.Y, predictions)
	if err != nil {
		return Result{}, err
	}
	scores, errs := eval.Evaluate(e.Evaluators, cm)

	r := Result{
		RunID:          uuid.New().String(),
		TrainRows:      filtered.Len(),
		TrainPositives: filtered.Positives(),
		SentinelRows:   train.Len() - filtered.Len(),
		TestRows:       test.Len(),
		SupportVectors: len(model.SV),
		Iterations:     model.Iter,
		Confusion:      cm,
		Scores:         scores,
		Undefined:      map[string]string{},
		errs:           errs,
	}
	for name, err := range errs {
		r.Undefined[name] = err.Error()
	}
	if test.Len() > 0 {
		r.PositiveRate = stat.Mean(test.Y, nil)
		r.MeanDecision = stat.Mean(decisions, nil)
	}
	return r, nil
}

func writeLibSVM(file string, d dataset.Dataset) error {
	f, err := os.Create(file)
	if err != nil {
		return err
	}
	_, err = d.WriteLibSVM(f)
	if cerr := f.Close(); err == nil {
		err = cerr
	}
	return err
}
