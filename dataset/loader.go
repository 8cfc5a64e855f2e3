package dataset

import (
	"encoding/csv"
	"fmt"
	"github.com/pkg/errors"
	"gopkg.in/cheggaaa/pb.v1"
	"io"
	"io/ioutil"
	"log"
	"math"
	"os"
	"path/filepath"
	"strconv"
	"strings"
)

// ParseError locates a malformed field in a CSV file.
type ParseError struct {
	File   string
	Line   int
	Column int
	Err    error
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("%s:%d:%d: %v", e.File, e.Line, e.Column, e.Err)
}

func (e *ParseError) Unwrap() error {
	return e.Err
}

// readRecords reads every record of r, requiring each to have exactly n fields, and converts the
// first keep fields to floats.
func readRecords(r io.Reader, n, keep int) ([][]float64, error) {
	reader := csv.NewReader(r)
	reader.FieldsPerRecord = -1
	reader.ReuseRecord = true

	var rows [][]float64
	for {
		rec, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, err
		}
		line, _ := reader.FieldPos(0)
		if len(rec) != n {
			// Column is the first missing or extra field.
			col := len(rec) + 1
			if len(rec) > n {
				col = n + 1
			}
			return nil, &ParseError{Line: line, Column: col, Err: errors.Errorf("expected %d fields, got %d", n, len(rec))}
		}

		row := make([]float64, keep)
		for i := 0; i < keep; i++ {
			v, err := strconv.ParseFloat(strings.TrimSpace(rec[i]), 64)
			if err != nil {
				return nil, &ParseError{Line: line, Column: i + 1, Err: err}
			}
			if math.IsNaN(v) || math.IsInf(v, 0) {
				return nil, &ParseError{Line: line, Column: i + 1, Err: errors.Errorf("non-finite value %q", rec[i])}
			}
			row[i] = v
		}
		rows = append(rows, row)
	}
	return rows, nil
}

// ReadHeuristics reads rows of NumFeatures comma separated heuristic values. There is no header.
func ReadHeuristics(r io.Reader) ([][]float64, error) {
	return readRecords(r, NumFeatures, NumFeatures)
}

// ReadProbabilities reads rows of two comma separated fields and returns the first field of each row.
func ReadProbabilities(r io.Reader) ([]float64, error) {
	rows, err := readRecords(r, 2, 1)
	if err != nil {
		return nil, err
	}
	p := make([]float64, len(rows))
	for i, row := range rows {
		p[i] = row[0]
	}
	return p, nil
}

// Loader reads benchmark folders relative to a base directory.
type Loader struct {
	BaseDir string

	cache    FolderCacher
	progress bool
	logger   *log.Logger
}

// LoaderCache stores parsed folders in c.
func LoaderCache(c FolderCacher) func(*Loader) {
	return func(l *Loader) {
		l.cache = c
	}
}

// LoaderProgress shows a progress bar while loading folders.
func LoaderProgress(progress bool) func(*Loader) {
	return func(l *Loader) {
		l.progress = progress
	}
}

// LoaderLogger logs the raw and rounded labels of every folder to logger.
func LoaderLogger(logger *log.Logger) func(*Loader) {
	return func(l *Loader) {
		l.logger = logger
	}
}

// NewLoader creates a loader for folders under baseDir.
func NewLoader(baseDir string, options ...func(*Loader)) *Loader {
	l := &Loader{
		BaseDir: baseDir,
		logger:  log.New(ioutil.Discard, "", 0),
	}
	for _, option := range options {
		option(l)
	}
	return l
}

func readFile(path string, read func(io.Reader) error) error {
	f, err := os.Open(path)
	if err != nil {
		return err
	}
	defer f.Close()

	err = read(f)
	if pe, ok := err.(*ParseError); ok {
		pe.File = path
	}
	return err
}

// LoadFolder reads the heuristics and true probabilities of a single benchmark folder.
func (l *Loader) LoadFolder(folder string) (Dataset, error) {
	dir := filepath.Join(l.BaseDir, folder)
	heuristicsPath := filepath.Join(dir, HeuristicsFile)
	probabilityPath := filepath.Join(dir, ProbabilityFile)

	var key string
	if l.cache != nil {
		var err error
		key, err = folderKey(heuristicsPath, probabilityPath)
		if err != nil {
			return Dataset{}, err
		}
		d, err := l.cache.Get(key)
		if err == nil {
			return d, nil
		}
		if errors.Cause(err) != ErrCacheMiss {
			return Dataset{}, err
		}
	}

	var (
		x [][]float64
		p []float64
	)
	err := readFile(heuristicsPath, func(r io.Reader) (err error) {
		x, err = ReadHeuristics(r)
		return
	})
	if err != nil {
		return Dataset{}, err
	}
	err = readFile(probabilityPath, func(r io.Reader) (err error) {
		p, err = ReadProbabilities(r)
		return
	})
	if err != nil {
		return Dataset{}, err
	}

	if len(x) != len(p) {
		return Dataset{}, errors.Wrapf(ErrRowMismatch, "%s: %d heuristic rows, %d probability rows", dir, len(x), len(p))
	}

	y := make([]float64, len(p))
	for i, v := range p {
		y[i], err = RoundLabel(v)
		if err != nil {
			return Dataset{}, &ParseError{File: probabilityPath, Line: i + 1, Column: 1, Err: err}
		}
	}
	l.logger.Println(folder, "true probabilities:", p)

	d := Dataset{X: x, Y: y}
	if l.cache != nil {
		if err := l.cache.Set(key, d); err != nil {
			return Dataset{}, err
		}
	}
	return d, nil
}

// Load concatenates the datasets of each folder, in order.
func (l *Loader) Load(folders []string) (Dataset, error) {
	var bar *pb.ProgressBar
	if l.progress {
		bar = pb.StartNew(len(folders))
		defer bar.Finish()
	}

	var d Dataset
	for _, folder := range folders {
		f, err := l.LoadFolder(folder)
		if err != nil {
			return Dataset{}, err
		}
		l.logger.Println(folder, "labels:", f.Y)
		d = d.Append(f)
		if bar != nil {
			bar.Increment()
		}
	}
	return d, d.Validate()
}
