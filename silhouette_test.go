package clustering

import (
	"math/rand"
	"testing"
)

func TestSilhouettes_TwoTightBlocks(t *testing.T) {
	// Two clusters of two points: intra-cluster distance 1, inter-cluster
	// distance 10. For every point a = 1, b = 10, sil = 9/10.
	assignments := []int{0, 0, 1, 1}
	counts := []int{2, 2}
	dists := []float64{
		0, 1, 10, 10,
		1, 0, 10, 10,
		10, 10, 0, 1,
		10, 10, 1, 0,
	}
	sil, err := Silhouettes(assignments, counts, dists, 4)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	for j, s := range sil {
		if !almostEqual(s, 0.9, 1e-12) {
			t.Errorf("sil[%d] = %v, expected 0.9", j, s)
		}
	}
}

func TestSilhouettes_HandComputedAsymmetricSizes(t *testing.T) {
	// Cluster 0 = {0, 1, 2}, cluster 1 = {3}. Distances within cluster 0 are
	// 2, distances to point 3 are 6.
	assignments := []int{0, 0, 0, 1}
	counts := []int{3, 1}
	dists := []float64{
		0, 2, 2, 6,
		2, 0, 2, 6,
		2, 2, 0, 6,
		6, 6, 6, 0,
	}
	sil, err := Silhouettes(assignments, counts, dists, 4)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	// Points 0-2: a = (2+2)/2 = 2, b = 6/1 = 6, sil = 4/6.
	for j := 0; j < 3; j++ {
		if !almostEqual(sil[j], 4.0/6.0, 1e-12) {
			t.Errorf("sil[%d] = %v, expected %v", j, sil[j], 4.0/6.0)
		}
	}
	// Point 3 is a singleton: a = 0 by convention, b = (6+6+6)/3 = 6, sil = 1.
	if !almostEqual(sil[3], 1.0, 1e-12) {
		t.Errorf("sil[3] = %v, expected 1", sil[3])
	}
}

func TestSilhouettes_ScoresWithinRange(t *testing.T) {
	rng := rand.New(rand.NewSource(11))
	n, k := 60, 4
	assignments := make([]int, n)
	counts := make([]int, k)
	for i := range assignments {
		assignments[i] = rng.Intn(k)
		counts[assignments[i]]++
	}
	dists := make([]float64, n*n)
	for i := 0; i < n; i++ {
		for j := i + 1; j < n; j++ {
			d := rng.Float64() * 50
			dists[i*n+j] = d
			dists[j*n+i] = d
		}
	}

	sil, err := Silhouettes(assignments, counts, dists, n)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	for j, s := range sil {
		if s < -1 || s > 1 {
			t.Errorf("sil[%d] = %v, outside [-1, 1]", j, s)
		}
	}
}

func TestSilhouettes_CoincidentPointsScoreZero(t *testing.T) {
	// Two coincident points in different clusters: a = 0 (singletons) and
	// b = 0, the 0/0 case, defined as 0.
	assignments := []int{0, 1}
	counts := []int{1, 1}
	dists := []float64{
		0, 0,
		0, 0,
	}
	sil, err := Silhouettes(assignments, counts, dists, 2)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	for j, s := range sil {
		if s != 0 {
			t.Errorf("sil[%d] = %v, expected 0 for 0/0 case", j, s)
		}
	}
}

func TestSilhouettes_DiagonalNeverRead(t *testing.T) {
	// Garbage on the diagonal must not affect any score.
	assignments := []int{0, 0, 1, 1}
	counts := []int{2, 2}
	dists := []float64{
		999, 1, 10, 10,
		1, -7, 10, 10,
		10, 10, 123, 1,
		10, 10, 1, 1e9,
	}
	sil, err := Silhouettes(assignments, counts, dists, 4)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	for j, s := range sil {
		if !almostEqual(s, 0.9, 1e-12) {
			t.Errorf("sil[%d] = %v, expected 0.9", j, s)
		}
	}
}

func TestSilhouettes_SingleClusterRejected(t *testing.T) {
	if _, err := Silhouettes([]int{0, 0}, []int{2}, []float64{0, 1, 1, 0}, 2); err == nil {
		t.Error("expected error for a single cluster")
	}
}

func TestSilhouettes_DimensionMismatch(t *testing.T) {
	if _, err := Silhouettes([]int{0, 1}, []int{1, 1}, []float64{0, 1, 1}, 2); err == nil {
		t.Error("expected error for non-square dists")
	}
	if _, err := Silhouettes([]int{0, 1, 0}, []int{1, 1}, []float64{0, 1, 1, 0}, 2); err == nil {
		t.Error("expected error for assignments length != n")
	}
}

func TestSilhouettes_OutOfRangeLabel(t *testing.T) {
	dists := []float64{0, 1, 1, 0}
	if _, err := Silhouettes([]int{0, 2}, []int{1, 1}, dists, 2); err == nil {
		t.Error("expected error for label 2 with k=2")
	}
}

func TestSilhouettesOf_MatchesSilhouettes(t *testing.T) {
	assignments := []int{0, 0, 1, 1}
	p, err := NewPartition(2, assignments)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	dists := []float64{
		0, 1, 10, 10,
		1, 0, 10, 10,
		10, 10, 0, 1,
		10, 10, 1, 0,
	}
	direct, err := Silhouettes(assignments, p.Counts(), dists, 4)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	viaResult, err := SilhouettesOf(p, dists)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	for j := range direct {
		if direct[j] != viaResult[j] {
			t.Errorf("SilhouettesOf[%d] = %v, expected %v", j, viaResult[j], direct[j])
		}
	}
}
