package svm

import (
	"testing"
)

func TestCacheRows(t *testing.T) {
	for _, c := range []struct {
		mb      float64
		n, rows int
	}{
		{100, 10, 10},
		{1, 4096, 32},
		{0.001, 3000, 2},
	} {
		if rows := cacheRows(c.mb, c.n); rows != c.rows {
			t.Errorf("%vMB, n=%d: expected %d rows, got %d", c.mb, c.n, c.rows, rows)
		}
	}
}

func TestQCacheEviction(t *testing.T) {
	x := [][]float64{{0, 0}, {1, 0}, {0, 1}, {1, 1}}
	y := []float64{1, -1, 1, -1}
	q, err := newQCache(0.5, x, y, 1e-9)
	if err != nil {
		t.Fatal(err)
	}
	for _, i := range []int{0, 1, 2, 3, 0} {
		r := q.row(i)
		for j := range x {
			if expected := y[i] * y[j] * RBF(0.5, x[i], x[j]); r[j] != expected {
				t.Fatalf("Q[%d][%d]: expected %v, got %v", i, j, expected, r[j])
			}
		}
	}
	if q.rows.Len() != 2 {
		t.Fatalf("expected 2 cached rows, got %d", q.rows.Len())
	}
}
