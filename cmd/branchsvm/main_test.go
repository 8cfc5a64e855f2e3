package main

import (
	"bytes"
	"github.com/final583/branchsvm"
	"github.com/final583/branchsvm/config"
	"github.com/final583/branchsvm/output"
	"reflect"
	"strings"
	"testing"
)

func TestConfigureDefaults(t *testing.T) {
	c, err := configure(args{})
	if err != nil {
		t.Fatal(err)
	}
	if !reflect.DeepEqual(c, config.Default()) {
		t.Fatalf("expected the defaults, got %+v", c)
	}
}

func TestConfigureOverrides(t *testing.T) {
	c, err := configure(args{
		Config: "../../config/testdata/experiment.properties",
		Train:  []string{"network/dijkstra/"},
		Gamma:  0.5,
	})
	if err != nil {
		t.Fatal(err)
	}
	if !reflect.DeepEqual(c.Train, []string{"network/dijkstra/"}) {
		t.Errorf("flag did not override training folders: %v", c.Train)
	}
	if !reflect.DeepEqual(c.Test, []string{"automotive/qsort/"}) {
		t.Errorf("test folders not read from the file: %v", c.Test)
	}
	if c.Gamma != 0.5 || c.C != 10 {
		t.Errorf("unexpected hyperparameters C=%v gamma=%v", c.C, c.Gamma)
	}
	if c.BaseDir != "/data/benchmarks" {
		t.Errorf("unexpected base directory %s", c.BaseDir)
	}
}

func TestOpenCache(t *testing.T) {
	for _, backend := range []string{"", config.DiskvBackend, config.GhostBackend} {
		c := config.Default()
		if len(backend) > 0 {
			c.CachePath = t.TempDir()
			c.CacheBackend = backend
		}
		cache, closeCache, err := openCache(c)
		if err != nil {
			t.Fatalf("%q: %v", backend, err)
		}
		if cache == nil {
			t.Fatalf("%q: no cache", backend)
		}
		if err := closeCache(); err != nil {
			t.Fatalf("%q: %v", backend, err)
		}
	}

	c := config.Default()
	c.CachePath = t.TempDir()
	c.CacheBackend = "redis"
	if _, _, err := openCache(c); err == nil {
		t.Fatal("expected an error for an unknown backend")
	}
}

func TestWrite(t *testing.T) {
	r := branchsvm.Result{RunID: "run", Scores: map[string]float64{"Accuracy": 0.5}}
	for _, f := range []output.EvaluationFormatter{output.TableEvaluationFormatter, output.JsonEvaluationFormatter} {
		b := new(bytes.Buffer)
		if err := write(b, r, f); err != nil {
			t.Fatal(err)
		}
		if !strings.Contains(b.String(), "0.5") {
			t.Errorf("accuracy missing from output:\n%s", b.String())
		}
	}
}
