package clustering

import "fmt"

// ClusteringResult is the minimal capability a clustering output must expose
// for the validation metrics in this package. Any concrete result type
// (KMeansResult, KMedoidsResult, Partition, or a caller's own) satisfies it
// structurally.
type ClusteringResult interface {
	// NClusters returns the number of clusters, >= 1.
	NClusters() int

	// Assignments returns the per-point cluster labels, each in
	// [0, NClusters()). The returned slice must not be mutated.
	Assignments() []int

	// Counts returns the per-cluster population counts, length NClusters().
	// Empty clusters (count 0) are legal.
	Counts() []int
}

// Partition is a plain clustering result: a label vector over k clusters.
// It implements ClusteringResult and is the simplest way to hand externally
// produced labels to VarInfoResult or SilhouettesOf.
type Partition struct {
	k           int
	assignments []int
	counts      []int
}

// NewPartition builds a Partition from k and a label vector. Every label
// must lie in [0, k); counts are derived. Returns an error for k < 1 or an
// out-of-range label.
func NewPartition(k int, assignments []int) (*Partition, error) {
	counts, err := countAssignments(k, assignments)
	if err != nil {
		return nil, err
	}
	return &Partition{k: k, assignments: assignments, counts: counts}, nil
}

func (p *Partition) NClusters() int     { return p.k }
func (p *Partition) Assignments() []int { return p.assignments }
func (p *Partition) Counts() []int      { return p.counts }

// countAssignments tallies per-cluster populations, validating every label
// against [0, k).
func countAssignments(k int, assignments []int) ([]int, error) {
	if k < 1 {
		return nil, fmt.Errorf("clustering: cluster count must be >= 1, got %d", k)
	}
	counts := make([]int, k)
	for i, a := range assignments {
		if a < 0 || a >= k {
			return nil, fmt.Errorf("clustering: assignment %d for point %d out of range [0, %d)", a, i, k)
		}
		counts[a]++
	}
	return counts, nil
}
