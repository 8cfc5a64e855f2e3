// Package config reads experiment settings from a .properties file.
//
// Recognised keys:
//
//	branchsvm.basedir   directory containing the benchmark folders
//	branchsvm.train     comma separated training folders
//	branchsvm.test      comma separated test folders
//	svm.c               regularisation strength
//	svm.gamma           RBF kernel bandwidth
//	svm.eps             solver stopping tolerance
//	svm.cache           kernel row cache size in megabytes
//	cache.path          on-disk cache of parsed folders (empty disables it)
//	cache.backend       on-disk cache implementation, diskv or ghost
package config

import (
	"github.com/magiconair/properties"
	"github.com/pkg/errors"
	"strconv"
	"strings"
)

// Config describes a single train/test run.
type Config struct {
	BaseDir   string
	Train     []string
	Test      []string
	C         float64
	Gamma     float64
	Eps       float64
	CacheSize float64
	CachePath string
	// CacheBackend is the on-disk cache used when CachePath is set.
	CacheBackend string
}

const (
	DiskvBackend = "diskv"
	GhostBackend = "ghost"
)

// Default is the configuration of the original basicmath experiment.
func Default() Config {
	return Config{
		BaseDir: "benchmarks",
		Train:   []string{"automotive/basicmath/"},
		Test:    []string{"automotive/basicmath/"},
		C:       100,
		Gamma:   0.001,
		Eps:     1e-3,

		CacheSize:    100,
		CacheBackend: DiskvBackend,
	}
}

// Load reads a properties file on top of the defaults.
func Load(path string) (Config, error) {
	p, err := properties.LoadFile(path, properties.UTF8)
	if err != nil {
		return Config{}, err
	}
	return FromProperties(p)
}

// FromProperties overrides the defaults with any keys present in p.
func FromProperties(p *properties.Properties) (Config, error) {
	c := Default()
	if v, ok := p.Get("branchsvm.basedir"); ok {
		c.BaseDir = v
	}
	if v, ok := p.Get("branchsvm.train"); ok {
		c.Train = splitList(v)
	}
	if v, ok := p.Get("branchsvm.test"); ok {
		c.Test = splitList(v)
	}
	if v, ok := p.Get("cache.path"); ok {
		c.CachePath = v
	}
	if v, ok := p.Get("cache.backend"); ok {
		switch v = strings.TrimSpace(v); v {
		case DiskvBackend, GhostBackend:
			c.CacheBackend = v
		default:
			return Config{}, errors.Errorf("config: unknown cache.backend %q", v)
		}
	}

	floatKeys := map[string]*float64{
		"svm.c":     &c.C,
		"svm.gamma": &c.Gamma,
		"svm.eps":   &c.Eps,
		"svm.cache": &c.CacheSize,
	}
	for key, dst := range floatKeys {
		v, ok := p.Get(key)
		if !ok {
			continue
		}
		f, err := strconv.ParseFloat(strings.TrimSpace(v), 64)
		if err != nil {
			return Config{}, errors.Wrapf(err, "config: %s", key)
		}
		*dst = f
	}
	return c, nil
}

func splitList(s string) []string {
	var l []string
	for _, v := range strings.Split(s, ",") {
		if v = strings.TrimSpace(v); len(v) > 0 {
			l = append(l, v)
		}
	}
	return l
}
