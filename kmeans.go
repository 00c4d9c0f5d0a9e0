package clustering

import (
	"fmt"
	"math"
	"math/rand"
	"runtime"
	"slices"

	"gonum.org/v1/gonum/floats"
)

// KMeansConfig controls the k-means driver.
// Start with [DefaultKMeansConfig] and override the fields you need.
type KMeansConfig struct {
	// K is the number of clusters. Must be >= 1 and <= the number of points.
	K int

	// MaxIterations caps the number of Lloyd iterations. Must be >= 1.
	// Default: 100.
	MaxIterations int

	// Tolerance is the relative total-cost improvement below which the run
	// is declared converged. Must be >= 0. Default: 1e-6.
	Tolerance float64

	// Metric is the distance function used for assignment and cost; the
	// reduced form is used throughout (squared Euclidean under the default).
	// Default: EuclideanMetric.
	Metric DistanceMetric

	// Seeding names the initialization algorithm: "rand", "kmpp", or
	// "kmcen". Default: "kmpp".
	Seeding string

	// Workers controls the number of goroutines for the assignment step.
	// 0 means use runtime.NumCPU(). Default: 0 (auto).
	Workers int

	// Rand is the random source for stochastic seeding. Supply a fixed-seed
	// generator for reproducible runs. Default: time-seeded.
	Rand *rand.Rand
}

// KMeansResult contains the output of a k-means run.
// It implements ClusteringResult.
type KMeansResult struct {
	// K is the number of clusters.
	K int

	// Centers holds the cluster centers, flat row-major with K rows.
	Centers []float64

	// Labels assigns each point a cluster ID in [0, K).
	Labels []int

	// ClusterSizes is the number of points per cluster.
	ClusterSizes []int

	// Costs is each point's reduced distance to its assigned center.
	Costs []float64

	// TotalCost is the sum of Costs (the k-means objective).
	TotalCost float64

	// Iterations is the number of Lloyd iterations performed.
	Iterations int

	// Converged reports whether the run stopped before MaxIterations.
	Converged bool
}

func (r *KMeansResult) NClusters() int     { return r.K }
func (r *KMeansResult) Assignments() []int { return r.Labels }
func (r *KMeansResult) Counts() []int      { return r.ClusterSizes }

// DefaultKMeansConfig returns a KMeansConfig with reasonable defaults for k clusters.
func DefaultKMeansConfig(k int) KMeansConfig {
	return KMeansConfig{
		K:             k,
		MaxIterations: 100,
		Tolerance:     1e-6,
		Metric:        EuclideanMetric{},
		Seeding:       "kmpp",
	}
}

func applyKMeansDefaults(cfg *KMeansConfig) {
	if cfg.MaxIterations == 0 {
		cfg.MaxIterations = 100
	}
	if cfg.Tolerance == 0 {
		cfg.Tolerance = 1e-6
	}
	if cfg.Metric == nil {
		cfg.Metric = EuclideanMetric{}
	}
	if cfg.Seeding == "" {
		cfg.Seeding = "kmpp"
	}
	if cfg.Workers == 0 {
		cfg.Workers = runtime.NumCPU()
	}
	if cfg.Rand == nil {
		cfg.Rand = defaultRand()
	}
}

func validateKMeansConfig(cfg *KMeansConfig) error {
	if cfg.K < 1 {
		return fmt.Errorf("clustering: K must be >= 1, got %d", cfg.K)
	}
	if cfg.MaxIterations < 1 {
		return fmt.Errorf("clustering: MaxIterations must be >= 1, got %d", cfg.MaxIterations)
	}
	if cfg.Tolerance < 0 {
		return fmt.Errorf("clustering: Tolerance must be >= 0, got %f", cfg.Tolerance)
	}
	if _, err := SeederByName(cfg.Seeding); err != nil {
		return err
	}
	return nil
}

// KMeans clusters data into cfg.K groups with Lloyd's algorithm, seeded by
// the configured Seeder. Each element of data is a point (float64 slice);
// all points must have the same dimensionality. Empty clusters are
// re-centered on the currently worst-fitted point.
func KMeans(data [][]float64, cfg KMeansConfig) (*KMeansResult, error) {
	applyKMeansDefaults(&cfg)
	if err := validateKMeansConfig(&cfg); err != nil {
		return nil, err
	}

	n := len(data)
	if err := validateSeedCount(n, cfg.K); err != nil {
		return nil, err
	}
	k := cfg.K

	dims := len(data[0])
	flatData := make([]float64, n*dims)
	for i, row := range data {
		copy(flatData[i*dims:], row)
	}

	seeder, err := SeederByName(cfg.Seeding)
	if err != nil {
		return nil, err
	}
	seeds := make([]int, k)
	if err := seeder.SeedFromData(flatData, n, dims, cfg.Metric, cfg.Rand, seeds); err != nil {
		return nil, err
	}
	centers := make([]float64, k*dims)
	if err := SeedCenters(flatData, n, dims, seeds, centers); err != nil {
		return nil, err
	}

	assignments := make([]int, n)
	prev := make([]int, n)
	costs := make([]float64, n)
	counts := make([]int, k)

	prevCost := math.Inf(1)
	converged := false
	iterations := 0

	for iterations = 1; iterations <= cfg.MaxIterations; iterations++ {
		assignToCentersParallel(flatData, n, dims, centers, k, cfg.Metric, cfg.Workers, assignments, costs)
		totalCost := floats.Sum(costs)

		if iterations > 1 {
			if slices.Equal(assignments, prev) {
				converged = true
				break
			}
			if prevCost-totalCost <= cfg.Tolerance*prevCost {
				converged = true
				break
			}
		}
		copy(prev, assignments)
		prevCost = totalCost

		// Recompute centers as cluster means.
		for i := range centers {
			centers[i] = 0
		}
		for i := range counts {
			counts[i] = 0
		}
		for i := 0; i < n; i++ {
			c := assignments[i]
			counts[c]++
			floats.Add(centers[c*dims:(c+1)*dims], flatData[i*dims:(i+1)*dims])
		}
		for c := 0; c < k; c++ {
			if counts[c] == 0 {
				// Re-center an empty cluster on the point farthest from its
				// current center, then discount that point so a second empty
				// cluster picks a different one.
				far := floats.MaxIdx(costs)
				copy(centers[c*dims:(c+1)*dims], flatData[far*dims:(far+1)*dims])
				costs[far] = 0
				continue
			}
			floats.Scale(1/float64(counts[c]), centers[c*dims:(c+1)*dims])
		}
	}
	if iterations > cfg.MaxIterations {
		iterations = cfg.MaxIterations
	}
	if !converged {
		// Centers moved after the last assignment pass; refresh once so the
		// returned labels and costs match the returned centers.
		assignToCentersParallel(flatData, n, dims, centers, k, cfg.Metric, cfg.Workers, assignments, costs)
	}

	finalCounts, err := countAssignments(k, assignments)
	if err != nil {
		return nil, err
	}

	return &KMeansResult{
		K:            k,
		Centers:      centers,
		Labels:       assignments,
		ClusterSizes: finalCounts,
		Costs:        costs,
		TotalCost:    floats.Sum(costs),
		Iterations:   iterations,
		Converged:    converged,
	}, nil
}
