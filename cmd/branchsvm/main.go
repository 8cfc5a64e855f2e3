// Command branchsvm trains a branch prediction SVM on benchmark heuristics and reports precision, recall and
// accuracy on a set of test benchmarks.
package main

import (
	"fmt"
	"github.com/alexflint/go-arg"
	"github.com/final583/branchsvm"
	"github.com/final583/branchsvm/config"
	"github.com/final583/branchsvm/dataset"
	"github.com/final583/branchsvm/output"
	"github.com/final583/branchsvm/svm"
	"github.com/go-errors/errors"
	"io"
	"io/ioutil"
	"log"
	"os"
)

var (
	name    = "branchsvm"
	version = "17.Oct.2026"
)

type args struct {
	Config  string   `arg:"help:path to a .properties experiment configuration"`
	BaseDir string   `arg:"help:directory containing the benchmark folders"`
	Train   []string `arg:"help:training benchmark folders"`
	Test    []string `arg:"help:test benchmark folders"`
	C       float64  `arg:"help:SVM regularisation strength (default 100)"`
	Gamma   float64  `arg:"help:RBF kernel bandwidth (default 0.001)"`
	Cache   string   `arg:"help:directory for an on-disk cache of parsed folders"`
	Backend string   `arg:"help:on-disk cache implementation: diskv or ghost"`
	Model   string   `arg:"help:file to dump the trained model to"`
	LibSVM  string   `arg:"help:file to export the filtered training set to in LIBSVM format"`
	JSON    string   `arg:"help:file to write the result to as JSON"`
	Verbose bool     `arg:"-v,help:log progress and intermediate label arrays"`
}

func (args) Version() string {
	return version
}

func (args) Description() string {
	return fmt.Sprintf(`%s
train an SVM on branch heuristics and evaluate it on held out benchmarks`, name)
}

// configure merges the configuration file with any command line overrides.
func configure(a args) (config.Config, error) {
	c := config.Default()
	if len(a.Config) > 0 {
		var err error
		c, err = config.Load(a.Config)
		if err != nil {
			return c, err
		}
	}
	if len(a.BaseDir) > 0 {
		c.BaseDir = a.BaseDir
	}
	if len(a.Train) > 0 {
		c.Train = a.Train
	}
	if len(a.Test) > 0 {
		c.Test = a.Test
	}
	if a.C > 0 {
		c.C = a.C
	}
	if a.Gamma > 0 {
		c.Gamma = a.Gamma
	}
	if len(a.Cache) > 0 {
		c.CachePath = a.Cache
	}
	if len(a.Backend) > 0 {
		c.CacheBackend = a.Backend
	}
	return c, nil
}

// openCache creates the folder cache described by c. The returned function releases it.
func openCache(c config.Config) (dataset.FolderCacher, func() error, error) {
	noop := func() error { return nil }
	if len(c.CachePath) == 0 {
		// Folders are parsed once even when they appear in both the training and test sets.
		cache, err := dataset.NewLRUFolderCache(64)
		return cache, noop, err
	}
	switch c.CacheBackend {
	case config.DiskvBackend:
		return dataset.NewFileFolderCache(c.CachePath), noop, nil
	case config.GhostBackend:
		g, err := dataset.NewGhostFolderCache(c.CachePath)
		if err != nil {
			return nil, noop, err
		}
		return g, g.Close, nil
	}
	return nil, noop, errors.Errorf("unknown cache backend %q", c.CacheBackend)
}

// write renders r with f to w.
func write(w io.Writer, r branchsvm.Result, f output.EvaluationFormatter) error {
	s, err := f(r)
	if err != nil {
		return err
	}
	_, err = io.WriteString(w, s)
	return err
}

func fatal(err error, verbose bool) {
	if verbose {
		fmt.Fprintln(os.Stderr, errors.Wrap(err, 1).ErrorStack())
	}
	log.Fatal(err)
}

func main() {
	// Parse the command line arguments.
	var args args
	arg.MustParse(&args)

	c, err := configure(args)
	if err != nil {
		fatal(err, args.Verbose)
	}

	logger := log.New(ioutil.Discard, "", 0)
	if args.Verbose {
		logger = log.New(os.Stderr, "", log.LstdFlags)
	}

	cache, closeCache, err := openCache(c)
	if err != nil {
		fatal(err, args.Verbose)
	}

	loader := dataset.NewLoader(c.BaseDir,
		dataset.LoaderCache(cache),
		dataset.LoaderProgress(args.Verbose),
		dataset.LoaderLogger(logger))

	param := svm.NewParameter()
	param.C = c.C
	param.Gamma = c.Gamma
	param.Eps = c.Eps
	param.CacheSize = c.CacheSize

	options := []func(*branchsvm.Experiment){
		branchsvm.ExperimentParameter(param),
		branchsvm.ExperimentLogger(logger),
	}
	if len(args.Model) > 0 {
		options = append(options, branchsvm.ExperimentModelFile(args.Model))
	}
	if len(args.LibSVM) > 0 {
		options = append(options, branchsvm.ExperimentLibSVMFile(args.LibSVM))
	}

	r, err := branchsvm.NewExperiment(loader, c.Train, c.Test, options...).Run()
	if err != nil {
		fatal(err, args.Verbose)
	}
	if err := closeCache(); err != nil {
		fatal(err, args.Verbose)
	}

	if err := write(os.Stdout, r, output.TableEvaluationFormatter); err != nil {
		fatal(err, args.Verbose)
	}

	if len(args.JSON) > 0 {
		f, err := os.Create(args.JSON)
		if err != nil {
			fatal(err, args.Verbose)
		}
		err = write(f, r, output.JsonEvaluationFormatter)
		if cerr := f.Close(); err == nil {
			err = cerr
		}
		if err != nil {
			fatal(err, args.Verbose)
		}
	}
}
