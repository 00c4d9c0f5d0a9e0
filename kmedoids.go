package clustering

import (
	"fmt"
	"math"
	"math/rand"

	"gonum.org/v1/gonum/floats"
)

// KMedoidsConfig controls the k-medoids driver.
type KMedoidsConfig struct {
	// K is the number of clusters. Must be >= 1 and <= the number of points.
	K int

	// MaxIterations caps the number of assign/update rounds. Must be >= 1.
	// Default: 100.
	MaxIterations int

	// Seeding names the initialization algorithm: "rand", "kmpp", or
	// "kmcen". Default: "kmcen".
	Seeding string

	// Rand is the random source for stochastic seeding. Unused by the
	// default "kmcen" seeding. Default: time-seeded.
	Rand *rand.Rand
}

// KMedoidsResult contains the output of a k-medoids run.
// It implements ClusteringResult.
type KMedoidsResult struct {
	// K is the number of clusters.
	K int

	// Medoids holds the point index serving as each cluster's medoid.
	Medoids []int

	// Labels assigns each point a cluster ID in [0, K).
	Labels []int

	// ClusterSizes is the number of points per cluster.
	ClusterSizes []int

	// Costs is each point's cost to its assigned medoid.
	Costs []float64

	// TotalCost is the sum of Costs (the k-medoids objective).
	TotalCost float64

	// Iterations is the number of assign/update rounds performed.
	Iterations int

	// Converged reports whether the medoid set stabilized before
	// MaxIterations.
	Converged bool
}

func (r *KMedoidsResult) NClusters() int     { return r.K }
func (r *KMedoidsResult) Assignments() []int { return r.Labels }
func (r *KMedoidsResult) Counts() []int      { return r.ClusterSizes }

// DefaultKMedoidsConfig returns a KMedoidsConfig with reasonable defaults for k clusters.
func DefaultKMedoidsConfig(k int) KMedoidsConfig {
	return KMedoidsConfig{
		K:             k,
		MaxIterations: 100,
		Seeding:       "kmcen",
	}
}

func applyKMedoidsDefaults(cfg *KMedoidsConfig) {
	if cfg.MaxIterations == 0 {
		cfg.MaxIterations = 100
	}
	if cfg.Seeding == "" {
		cfg.Seeding = "kmcen"
	}
	if cfg.Rand == nil {
		cfg.Rand = defaultRand()
	}
}

func validateKMedoidsConfig(cfg *KMedoidsConfig) error {
	if cfg.K < 1 {
		return fmt.Errorf("clustering: K must be >= 1, got %d", cfg.K)
	}
	if cfg.MaxIterations < 1 {
		return fmt.Errorf("clustering: MaxIterations must be >= 1, got %d", cfg.MaxIterations)
	}
	if _, err := SeederByName(cfg.Seeding); err != nil {
		return err
	}
	return nil
}

// KMedoids clusters n points into cfg.K groups given their flat n×n cost
// matrix, alternating assignment to the nearest medoid with replacing each
// medoid by the member minimizing its cluster's total internal cost
// (Park & Jun 2009). The run converges when the medoid set stops changing.
func KMedoids(costs []float64, n int, cfg KMedoidsConfig) (*KMedoidsResult, error) {
	applyKMedoidsDefaults(&cfg)
	if err := validateKMedoidsConfig(&cfg); err != nil {
		return nil, err
	}
	if err := validateCostMatrix(costs, n); err != nil {
		return nil, err
	}
	if err := validateSeedCount(n, cfg.K); err != nil {
		return nil, err
	}
	k := cfg.K

	seeder, err := SeederByName(cfg.Seeding)
	if err != nil {
		return nil, err
	}
	medoids := make([]int, k)
	if err := seeder.SeedFromCosts(costs, n, cfg.Rand, medoids); err != nil {
		return nil, err
	}

	assignments := make([]int, n)
	pointCosts := make([]float64, n)
	members := make([][]int, k)

	converged := false
	iterations := 0

	for iterations = 1; iterations <= cfg.MaxIterations; iterations++ {
		assignToMedoids(costs, n, medoids, assignments, pointCosts)

		for c := range members {
			members[c] = members[c][:0]
		}
		for i, c := range assignments {
			members[c] = append(members[c], i)
		}

		// Each medoid moves to the member minimizing the cluster's total
		// internal cost. An empty cluster keeps its current medoid.
		changed := false
		for c := 0; c < k; c++ {
			best := medoids[c]
			bestSum := math.Inf(1)
			for _, i := range members[c] {
				var sum float64
				for _, j := range members[c] {
					sum += costs[i*n+j]
				}
				if sum < bestSum {
					best = i
					bestSum = sum
				}
			}
			if best != medoids[c] {
				medoids[c] = best
				changed = true
			}
		}
		if !changed {
			converged = true
			break
		}
	}
	if iterations > cfg.MaxIterations {
		iterations = cfg.MaxIterations
	}
	if !converged {
		// Medoids moved after the last assignment pass; refresh once so the
		// returned labels and costs match the returned medoids.
		assignToMedoids(costs, n, medoids, assignments, pointCosts)
	}

	counts, err := countAssignments(k, assignments)
	if err != nil {
		return nil, err
	}

	return &KMedoidsResult{
		K:            k,
		Medoids:      medoids,
		Labels:       assignments,
		ClusterSizes: counts,
		Costs:        pointCosts,
		TotalCost:    floats.Sum(pointCosts),
		Iterations:   iterations,
		Converged:    converged,
	}, nil
}

// assignToMedoids assigns every point to its cheapest medoid, writing labels
// into assignments and the chosen cost into pointCosts.
func assignToMedoids(costs []float64, n int, medoids []int, assignments []int, pointCosts []float64) {
	for i := 0; i < n; i++ {
		best := 0
		bestCost := costs[i*n+medoids[0]]
		for c := 1; c < len(medoids); c++ {
			if d := costs[i*n+medoids[c]]; d < bestCost {
				best = c
				bestCost = d
			}
		}
		assignments[i] = best
		pointCosts[i] = bestCost
	}
}
