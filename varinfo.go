package clustering

import (
	"fmt"
	"math"

	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/stat"
)

// VarInfo computes the variation of information (Meilă 2003) between two
// clusterings of the same n points: a1 assigns each point a label in [0, k1),
// a2 a label in [0, k2). The result is VI = H1 + H2 - 2I, where H1 and H2 are
// the entropies of the two label distributions and I is their mutual
// information.
//
// VI is symmetric, non-negative, and zero exactly when the two label vectors
// induce the same partition (up to relabeling). Returns an error if the
// vectors differ in length or contain an out-of-range label.
func VarInfo(k1 int, a1 []int, k2 int, a2 []int) (float64, error) {
	n := len(a1)
	if len(a2) != n {
		return 0, fmt.Errorf("clustering: assignment lengths differ: %d vs %d", n, len(a2))
	}
	if k1 < 1 || k2 < 1 {
		return 0, fmt.Errorf("clustering: cluster counts must be >= 1, got %d and %d", k1, k2)
	}
	if n == 0 {
		return 0, nil
	}

	// Empirical marginals and joint distribution in one pass.
	p1 := make([]float64, k1)
	p2 := make([]float64, k2)
	joint := make([]float64, k1*k2)
	for i := 0; i < n; i++ {
		c1, c2 := a1[i], a2[i]
		if c1 < 0 || c1 >= k1 {
			return 0, fmt.Errorf("clustering: assignment %d for point %d out of range [0, %d)", c1, i, k1)
		}
		if c2 < 0 || c2 >= k2 {
			return 0, fmt.Errorf("clustering: assignment %d for point %d out of range [0, %d)", c2, i, k2)
		}
		p1[c1]++
		p2[c2]++
		joint[c1*k2+c2]++
	}
	inv := 1.0 / float64(n)
	floats.Scale(inv, p1)
	floats.Scale(inv, p2)
	floats.Scale(inv, joint)

	// stat.Entropy skips zero-probability cells, so empty clusters
	// contribute nothing rather than producing log(0).
	h1 := stat.Entropy(p1)
	h2 := stat.Entropy(p2)

	var mi float64
	for i := 0; i < k1; i++ {
		for j := 0; j < k2; j++ {
			if pij := joint[i*k2+j]; pij > 0 {
				mi += pij * math.Log(pij/(p1[i]*p2[j]))
			}
		}
	}

	vi := h1 + h2 - 2*mi
	if vi < 0 {
		// Identical partitions can land a few ulps below zero.
		vi = 0
	}
	return vi, nil
}

// VarInfoResult computes the variation of information between two clustering
// results over the same points.
func VarInfoResult(c1, c2 ClusteringResult) (float64, error) {
	return VarInfo(c1.NClusters(), c1.Assignments(), c2.NClusters(), c2.Assignments())
}
