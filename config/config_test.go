package config_test

import (
	"github.com/final583/branchsvm/config"
	"github.com/magiconair/properties"
	"reflect"
	"testing"
)

func TestLoad(t *testing.T) {
	c, err := config.Load("testdata/experiment.properties")
	if err != nil {
		t.Fatal(err)
	}
	expected := config.Config{
		BaseDir: "/data/benchmarks",
		Train:   []string{"automotive/basicmath/", "automotive/bitcount/"},
		Test:    []string{"automotive/qsort/"},
		C:       10,
		Gamma:   0.01,
		Eps:     1e-3,

		CacheSize:    100,
		CacheBackend: config.GhostBackend,
	}
	if !reflect.DeepEqual(c, expected) {
		t.Fatalf("expected %+v, got %+v", expected, c)
	}
}

func TestDefault(t *testing.T) {
	c, err := config.FromProperties(properties.NewProperties())
	if err != nil {
		t.Fatal(err)
	}
	if !reflect.DeepEqual(c, config.Default()) {
		t.Fatalf("empty properties should give the defaults, got %+v", c)
	}
	if c.C != 100 || c.Gamma != 0.001 {
		t.Fatalf("unexpected hyperparameters C=%v gamma=%v", c.C, c.Gamma)
	}
}

func TestBadFloat(t *testing.T) {
	p := properties.MustLoadString("svm.gamma = wide")
	if _, err := config.FromProperties(p); err == nil {
		t.Fatal("expected an error for a non-numeric gamma")
	}
}

func TestBadBackend(t *testing.T) {
	p := properties.MustLoadString("cache.backend = redis")
	if _, err := config.FromProperties(p); err == nil {
		t.Fatal("expected an error for an unknown cache backend")
	}
}

func TestMissingFile(t *testing.T) {
	if _, err := config.Load("testdata/nope.properties"); err == nil {
		t.Fatal("expected an error for a missing file")
	}
}
