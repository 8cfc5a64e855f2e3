package dataset_test

import (
	"github.com/final583/branchsvm/dataset"
	"github.com/pkg/errors"
	"reflect"
	"testing"
)

func TestFolderCaches(t *testing.T) {
	mem, err := dataset.NewLRUFolderCache(8)
	if err != nil {
		t.Fatal(err)
	}

	g, err := dataset.NewGhostFolderCache(t.TempDir())
	if err != nil {
		t.Fatal(err)
	}
	defer g.Close()

	caches := map[string]dataset.FolderCacher{
		"lru":   mem,
		"diskv": dataset.NewFileFolderCache(t.TempDir()),
		"ghost": g,
	}

	expected, err := dataset.NewLoader("testdata/bench").Load([]string{"a", "b"})
	if err != nil {
		t.Fatal(err)
	}

	for name, cache := range caches {
		t.Run(name, func(t *testing.T) {
			if _, err := cache.Get("0123456789abcdef"); errors.Cause(err) != dataset.ErrCacheMiss {
				t.Fatalf("expected a cache miss, got %v", err)
			}

			l := dataset.NewLoader("testdata/bench", dataset.LoaderCache(cache))
			for i := 0; i < 2; i++ {
				d, err := l.Load([]string{"a", "b"})
				if err != nil {
					t.Fatal(err)
				}
				if !reflect.DeepEqual(d, expected) {
					t.Fatalf("pass %d: cached dataset differs: %v", i, d)
				}
			}
		})
	}
}

func TestGhostFolderCacheReopen(t *testing.T) {
	dir := t.TempDir()
	d := dataset.Dataset{
		X: [][]float64{{1, 0, 0.5, 1, 0, 0, 1, 0}},
		Y: []float64{1},
	}

	g, err := dataset.NewGhostFolderCache(dir)
	if err != nil {
		t.Fatal(err)
	}
	if err := g.Set("0123456789abcdef", d); err != nil {
		t.Fatal(err)
	}
	if err := g.Close(); err != nil {
		t.Fatal(err)
	}

	g, err = dataset.NewGhostFolderCache(dir)
	if err != nil {
		t.Fatal(err)
	}
	defer g.Close()
	cached, err := g.Get("0123456789abcdef")
	if err != nil {
		t.Fatal(err)
	}
	if !reflect.DeepEqual(cached, d) {
		t.Fatalf("reopened store returned %v", cached)
	}
}

func TestBlockTransform(t *testing.T) {
	p := dataset.BlockTransform(8)("0123456789abcdef")
	if !reflect.DeepEqual(p, []string{"01234567", "89abcdef"}) {
		t.Fatalf("unexpected path %v", p)
	}
}
