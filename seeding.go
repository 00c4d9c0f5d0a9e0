package clustering

import (
	"fmt"
	"math/rand"
	"runtime"
	"sort"
	"time"

	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/mat"
)

// Seeder selects len(seeds) representative point indices to bootstrap an
// iterative clustering method. Implementations either work from raw feature
// vectors plus a metric (SeedFromData) or from a precomputed flat n×n cost
// matrix (SeedFromCosts). On success the seeds buffer is fully overwritten;
// on error it is untouched.
//
// Built-in variants: RandomSeeder, KMeansPPSeeder, CentralitySeeder. Use
// SeederByName to look one up by its short name.
type Seeder interface {
	SeedFromData(data []float64, n, dims int, metric DistanceMetric, rng *rand.Rand, seeds []int) error
	SeedFromCosts(costs []float64, n int, rng *rand.Rand, seeds []int) error
}

// SeederByName returns the seeding algorithm registered under name:
// "rand" (uniform without replacement), "kmpp" (k-means++), or
// "kmcen" (k-medoids centrality). Unknown names are an error.
func SeederByName(name string) (Seeder, error) {
	switch name {
	case "rand":
		return RandomSeeder{}, nil
	case "kmpp":
		return KMeansPPSeeder{}, nil
	case "kmcen":
		return CentralitySeeder{}, nil
	default:
		return nil, fmt.Errorf("clustering: unknown seeding algorithm %q", name)
	}
}

// InitSeeds selects k seed indices from the given feature data using the
// named algorithm. metric defaults to EuclideanMetric and rng to a
// time-seeded generator when nil. data is flat row-major with n rows and
// dims columns.
func InitSeeds(name string, data []float64, n, dims, k int, metric DistanceMetric, rng *rand.Rand) ([]int, error) {
	seeder, err := SeederByName(name)
	if err != nil {
		return nil, err
	}
	if err := validateSeedCount(n, k); err != nil {
		return nil, err
	}
	if metric == nil {
		metric = EuclideanMetric{}
	}
	if rng == nil {
		rng = defaultRand()
	}
	seeds := make([]int, k)
	if err := seeder.SeedFromData(data, n, dims, metric, rng, seeds); err != nil {
		return nil, err
	}
	return seeds, nil
}

// InitSeedsByCosts selects k seed indices from a precomputed flat n×n cost
// matrix using the named algorithm. rng defaults to a time-seeded generator
// when nil.
func InitSeedsByCosts(name string, costs []float64, n, k int, rng *rand.Rand) ([]int, error) {
	seeder, err := SeederByName(name)
	if err != nil {
		return nil, err
	}
	if err := validateSeedCount(n, k); err != nil {
		return nil, err
	}
	if rng == nil {
		rng = defaultRand()
	}
	seeds := make([]int, k)
	if err := seeder.SeedFromCosts(costs, n, rng, seeds); err != nil {
		return nil, err
	}
	return seeds, nil
}

// SeedCenters copies the feature rows at the given seed indices into
// centers, which must have length exactly len(seeds)*dims. Used to
// materialize initial cluster centers from seed indices.
func SeedCenters(data []float64, n, dims int, seeds []int, centers []float64) error {
	if len(centers) != len(seeds)*dims {
		return fmt.Errorf("clustering: centers length %d does not match %d seeds * %d dims", len(centers), len(seeds), dims)
	}
	for c, s := range seeds {
		if s < 0 || s >= n {
			return fmt.Errorf("clustering: seed index %d out of range [0, %d)", s, n)
		}
		copy(centers[c*dims:(c+1)*dims], data[s*dims:(s+1)*dims])
	}
	return nil
}

// RandomSeeder picks seeds uniformly at random without replacement.
// Output order reflects draw order, not index order.
type RandomSeeder struct{}

func (RandomSeeder) SeedFromData(data []float64, n, dims int, metric DistanceMetric, rng *rand.Rand, seeds []int) error {
	if err := validateSeedCount(n, len(seeds)); err != nil {
		return err
	}
	sampleDistinct(n, rng, seeds)
	return nil
}

func (RandomSeeder) SeedFromCosts(costs []float64, n int, rng *rand.Rand, seeds []int) error {
	if err := validateCostMatrix(costs, n); err != nil {
		return err
	}
	if err := validateSeedCount(n, len(seeds)); err != nil {
		return err
	}
	sampleDistinct(n, rng, seeds)
	return nil
}

// sampleDistinct draws len(seeds) distinct indices from [0, n) by running
// the first len(seeds) steps of a Fisher–Yates shuffle.
func sampleDistinct(n int, rng *rand.Rand, seeds []int) {
	idx := make([]int, n)
	for i := range idx {
		idx[i] = i
	}
	for i := range seeds {
		j := i + rng.Intn(n-i)
		idx[i], idx[j] = idx[j], idx[i]
		seeds[i] = idx[i]
	}
}

// KMeansPPSeeder implements k-means++ seeding (Arthur & Vassilvitskii 2007):
// the first seed is uniform, and each subsequent seed is drawn with
// probability proportional to its reduced distance to the nearest seed
// already chosen. Under the default EuclideanMetric the weights are squared
// Euclidean distances.
type KMeansPPSeeder struct{}

func (KMeansPPSeeder) SeedFromData(data []float64, n, dims int, metric DistanceMetric, rng *rand.Rand, seeds []int) error {
	k := len(seeds)
	if err := validateSeedCount(n, k); err != nil {
		return err
	}

	p := rng.Intn(n)
	seeds[0] = p
	if k == 1 {
		return nil
	}

	// mincosts[i] tracks the reduced distance from point i to its nearest
	// chosen seed; chosen indices are forced to 0 so they carry no weight.
	mincosts := make([]float64, n)
	ColumnDistances(data, n, dims, data[p*dims:(p+1)*dims], metric, mincosts)
	mincosts[p] = 0

	tmp := make([]float64, n)
	for j := 1; j < k; j++ {
		p = sampleByWeight(mincosts, rng)
		seeds[j] = p
		if j == k-1 {
			break
		}
		ColumnDistances(data, n, dims, data[p*dims:(p+1)*dims], metric, tmp)
		for i, d := range tmp {
			if d < mincosts[i] {
				mincosts[i] = d
			}
		}
		mincosts[p] = 0
	}
	return nil
}

func (KMeansPPSeeder) SeedFromCosts(costs []float64, n int, rng *rand.Rand, seeds []int) error {
	if err := validateCostMatrix(costs, n); err != nil {
		return err
	}
	k := len(seeds)
	if err := validateSeedCount(n, k); err != nil {
		return err
	}

	p := rng.Intn(n)
	seeds[0] = p
	if k == 1 {
		return nil
	}

	// Identical recurrence to the data variant, reading matrix columns
	// instead of invoking the metric.
	mincosts := make([]float64, n)
	for i := 0; i < n; i++ {
		mincosts[i] = costs[i*n+p]
	}
	mincosts[p] = 0

	for j := 1; j < k; j++ {
		p = sampleByWeight(mincosts, rng)
		seeds[j] = p
		if j == k-1 {
			break
		}
		for i := 0; i < n; i++ {
			if d := costs[i*n+p]; d < mincosts[i] {
				mincosts[i] = d
			}
		}
		mincosts[p] = 0
	}
	return nil
}

// sampleByWeight draws an index with probability proportional to its weight
// via inverse-transform sampling over the running cumulative sum. If the
// total weight mass is zero (every remaining point coincides with a chosen
// seed), it falls back to a uniform draw.
func sampleByWeight(weights []float64, rng *rand.Rand) int {
	total := floats.Sum(weights)
	if total <= 0 {
		return rng.Intn(len(weights))
	}
	r := rng.Float64() * total
	for i, w := range weights {
		r -= w
		if r < 0 {
			return i
		}
	}
	// Accumulation error can leave r marginally positive; fall back to the
	// last positively weighted index.
	for i := len(weights) - 1; i >= 0; i-- {
		if weights[i] > 0 {
			return i
		}
	}
	return len(weights) - 1
}

// CentralitySeeder implements the k-medoids seeding of Park & Jun (2009):
// each point j is scored by sum_i costs[i][j] / rowsum(i), and the k points
// with the lowest scores are selected. Fully deterministic; the rng
// parameter is unused.
type CentralitySeeder struct{}

func (c CentralitySeeder) SeedFromData(data []float64, n, dims int, metric DistanceMetric, rng *rand.Rand, seeds []int) error {
	if err := validateSeedCount(n, len(seeds)); err != nil {
		return err
	}
	costs := ComputePairwiseDistancesParallel(data, n, dims, metric, runtime.NumCPU())
	return c.SeedFromCosts(costs, n, rng, seeds)
}

func (CentralitySeeder) SeedFromCosts(costs []float64, n int, rng *rand.Rand, seeds []int) error {
	if err := validateCostMatrix(costs, n); err != nil {
		return err
	}
	if err := validateSeedCount(n, len(seeds)); err != nil {
		return err
	}

	// coefs[i] is the inverse of point i's total cost to all others. An
	// all-zero row yields a +Inf coefficient.
	coefs := make([]float64, n)
	for i := 0; i < n; i++ {
		coefs[i] = 1.0 / floats.Sum(costs[i*n:(i+1)*n])
	}

	// scores = costsᵀ · coefs
	scores := mat.NewVecDense(n, nil)
	scores.MulVec(mat.NewDense(n, n, costs).T(), mat.NewVecDense(n, coefs))

	order := make([]int, n)
	for i := range order {
		order[i] = i
	}
	sort.SliceStable(order, func(a, b int) bool {
		return scores.AtVec(order[a]) < scores.AtVec(order[b])
	})
	copy(seeds, order[:len(seeds)])
	return nil
}

func validateSeedCount(n, k int) error {
	if k < 1 {
		return fmt.Errorf("clustering: seed count must be >= 1, got %d", k)
	}
	if k > n {
		return fmt.Errorf("clustering: seed count %d exceeds number of points %d", k, n)
	}
	return nil
}

func validateCostMatrix(costs []float64, n int) error {
	if len(costs) != n*n {
		return fmt.Errorf("clustering: costs length %d does not match n*n = %d (n=%d)", len(costs), n*n, n)
	}
	return nil
}

// defaultRand returns a fresh time-seeded generator. Only the outermost
// entry points fall back to this; the Seeder implementations always receive
// an explicit rng so results are reproducible under a fixed seed.
func defaultRand() *rand.Rand {
	return rand.New(rand.NewSource(time.Now().UnixNano()))
}
