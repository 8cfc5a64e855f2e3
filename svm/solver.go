package svm

import (
	"github.com/hashicorp/golang-lru"
	"math"
)

const tau = 1e-12

// qCache computes rows of Q, Q_ij = y_i y_j K(x_i, x_j), on demand and keeps the most recently used.
type qCache struct {
	gamma float64
	x     [][]float64
	y     []float64
	rows  *lru.Cache
}

// cacheRows is the number of Q rows of length n that fit in mb megabytes. At least two rows are kept so
// that both rows of a working set are held at once.
func cacheRows(mb float64, n int) int {
	rows := int(mb * (1 << 20) / float64(8*n))
	if rows < 2 {
		rows = 2
	}
	if rows > n {
		rows = n
	}
	return rows
}

func newQCache(gamma float64, x [][]float64, y []float64, mb float64) (*qCache, error) {
	rows, err := lru.New(cacheRows(mb, len(x)))
	if err != nil {
		return nil, err
	}
	return &qCache{gamma: gamma, x: x, y: y, rows: rows}, nil
}

// row returns Q_i. The slice must not be modified.
func (c *qCache) row(i int) []float64 {
	if v, ok := c.rows.Get(i); ok {
		return v.([]float64)
	}
	r := make([]float64, len(c.x))
	for j := range r {
		r[j] = c.y[i] * c.y[j] * RBF(c.gamma, c.x[i], c.x[j])
	}
	c.rows.Add(i, r)
	return r
}

type solver struct {
	q     *qCache
	qd    []float64
	y     []float64
	c     float64
	alpha []float64
	g     []float64
}

func (s *solver) isUpperBound(t int) bool { return s.alpha[t] >= s.c }
func (s *solver) isLowerBound(t int) bool { return s.alpha[t] <= 0 }

// selectWorkingSet returns the maximal violating pair and the size of the violation.
func (s *solver) selectWorkingSet() (int, int, float64) {
	gmax, gmin := math.Inf(-1), math.Inf(1)
	i, j := -1, -1
	for t := range s.y {
		v := -s.y[t] * s.g[t]
		if (s.y[t] > 0 && !s.isUpperBound(t)) || (s.y[t] < 0 && !s.isLowerBound(t)) {
			if v > gmax {
				gmax, i = v, t
			}
		}
		if (s.y[t] > 0 && !s.isLowerBound(t)) || (s.y[t] < 0 && !s.isUpperBound(t)) {
			if v < gmin {
				gmin, j = v, t
			}
		}
	}
	if i < 0 || j < 0 {
		return i, j, 0
	}
	return i, j, gmax - gmin
}

// update analytically optimises alpha[i] and alpha[j], keeping y'alpha constant and both within [0, C].
func (s *solver) update(i, j int) {
	c := s.c
	alpha := s.alpha
	oldI, oldJ := alpha[i], alpha[j]
	qi, qj := s.q.row(i), s.q.row(j)

	if s.y[i] != s.y[j] {
		quad := s.qd[i] + s.qd[j] + 2*qi[j]
		if quad <= 0 {
			quad = tau
		}
		delta := (-s.g[i] - s.g[j]) / quad
		diff := alpha[i] - alpha[j]
		alpha[i] += delta
		alpha[j] += delta
		if diff > 0 {
			if alpha[j] < 0 {
				alpha[j] = 0
				alpha[i] = diff
			}
		} else if alpha[i] < 0 {
			alpha[i] = 0
			alpha[j] = -diff
		}
		if diff > 0 {
			if alpha[i] > c {
				alpha[i] = c
				alpha[j] = c - diff
			}
		} else if alpha[j] > c {
			alpha[j] = c
			alpha[i] = c + diff
		}
	} else {
		quad := s.qd[i] + s.qd[j] - 2*qi[j]
		if quad <= 0 {
			quad = tau
		}
		delta := (s.g[i] - s.g[j]) / quad
		sum := alpha[i] + alpha[j]
		alpha[i] -= delta
		alpha[j] += delta
		if sum > c {
			if alpha[i] > c {
				alpha[i] = c
				alpha[j] = sum - c
			}
		} else if alpha[j] < 0 {
			alpha[j] = 0
			alpha[i] = sum
		}
		if sum > c {
			if alpha[j] > c {
				alpha[j] = c
				alpha[i] = sum - c
			}
		} else if alpha[i] < 0 {
			alpha[i] = 0
			alpha[j] = sum
		}
	}

	di, dj := alpha[i]-oldI, alpha[j]-oldJ
	for t := range s.g {
		s.g[t] += qi[t]*di + qj[t]*dj
	}
}

// rho is the offset of the decision function. Free support vectors determine it exactly; otherwise it
// is the midpoint of the feasible interval.
func (s *solver) rho() float64 {
	ub, lb := math.Inf(1), math.Inf(-1)
	sum := 0.0
	free := 0
	for t := range s.y {
		yg := s.y[t] * s.g[t]
		switch {
		case s.isUpperBound(t):
			if s.y[t] < 0 {
				ub = math.Min(ub, yg)
			} else {
				lb = math.Max(lb, yg)
			}
		case s.isLowerBound(t):
			if s.y[t] > 0 {
				ub = math.Min(ub, yg)
			} else {
				lb = math.Max(lb, yg)
			}
		default:
			free++
			sum += yg
		}
	}
	if free > 0 {
		return sum / float64(free)
	}
	return (ub + lb) / 2
}

// solve minimises 1/2 a'Qa - e'a subject to y'a = 0 and 0 <= a <= C. It returns the dual variables, the
// decision function offset and the number of iterations performed.
func solve(q *qCache, y []float64, c, eps float64, maxIter int) ([]float64, float64, int) {
	s := &solver{
		q:     q,
		qd:    make([]float64, len(y)),
		y:     y,
		c:     c,
		alpha: make([]float64, len(y)),
		g:     make([]float64, len(y)),
	}
	for t := range s.g {
		s.g[t] = -1
		s.qd[t] = RBF(q.gamma, q.x[t], q.x[t])
	}

	iter := 0
	for ; iter < maxIter; iter++ {
		i, j, violation := s.selectWorkingSet()
		if i < 0 || j < 0 || violation < eps {
			break
		}
		s.update(i, j)
	}
	return s.alpha, s.rho(), iter
}
