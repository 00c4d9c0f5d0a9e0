package clustering

import (
	"fmt"
	"math"
)

// Silhouettes computes the per-point silhouette score (Rousseeuw 1987) for a
// clustering. assignments holds a label in [0, len(counts)) for each of the
// n points, counts holds the per-cluster populations, and dists is the flat
// row-major n×n pairwise distance matrix (symmetric; the diagonal is never
// read).
//
// Each score is (b-a)/max(a,b), where a is the point's mean distance to the
// rest of its own cluster and b is its mean distance to the nearest other
// cluster. Scores lie in [-1, 1]; for a point alone in its cluster a is
// defined as 0, and the degenerate case a == b == 0 is defined as 0 rather
// than NaN.
//
// At least two clusters are required. Runs in O(n²) time and O(k·n) space.
func Silhouettes(assignments, counts []int, dists []float64, n int) ([]float64, error) {
	k := len(counts)
	if k < 2 {
		return nil, fmt.Errorf("clustering: silhouettes require at least 2 clusters, got %d", k)
	}
	if len(assignments) != n {
		return nil, fmt.Errorf("clustering: assignments length %d does not match n = %d", len(assignments), n)
	}
	if len(dists) != n*n {
		return nil, fmt.Errorf("clustering: dists length %d does not match n*n = %d (n=%d)", len(dists), n*n, n)
	}
	for i, a := range assignments {
		if a < 0 || a >= k {
			return nil, fmt.Errorf("clustering: assignment %d for point %d out of range [0, %d)", a, i, k)
		}
	}

	// r[c*n+j] accumulates the total distance from point j to every other
	// point in cluster c. Iterating the two ranges below and above j skips
	// the self pair without a branch in the inner loop.
	r := make([]float64, k*n)
	for j := 0; j < n; j++ {
		for p := 0; p < j; p++ {
			r[assignments[p]*n+j] += dists[p*n+j]
		}
		for p := j + 1; p < n; p++ {
			r[assignments[p]*n+j] += dists[p*n+j]
		}
	}

	sil := make([]float64, n)
	for j := 0; j < n; j++ {
		own := assignments[j]

		// Totals become averages. The point itself is excluded from its own
		// cluster's denominator; a zero denominator (singleton cluster)
		// leaves the average at 0.
		for c := 0; c < k; c++ {
			denom := counts[c]
			if c == own {
				denom--
			}
			if denom <= 0 {
				r[c*n+j] = 0
			} else {
				r[c*n+j] /= float64(denom)
			}
		}

		a := r[own*n+j]
		b := math.Inf(1)
		for c := 0; c < k; c++ {
			if c != own && r[c*n+j] < b {
				b = r[c*n+j]
			}
		}

		if a == 0 && b == 0 {
			sil[j] = 0
		} else {
			sil[j] = (b - a) / math.Max(a, b)
		}
	}
	return sil, nil
}

// SilhouettesOf computes per-point silhouette scores for a clustering result
// and its flat n×n pairwise distance matrix.
func SilhouettesOf(c ClusteringResult, dists []float64) ([]float64, error) {
	return Silhouettes(c.Assignments(), c.Counts(), dists, len(c.Assignments()))
}
