// Package clustering provides partitional clustering primitives: seed
// initialization algorithms (uniform random, k-means++, k-medoids
// centrality), flat k-means and k-medoids drivers built on them, and the
// validation metrics used to compare and score the resulting partitions
// (variation of information and per-point silhouette scores).
//
// Basic usage:
//
//	cfg := clustering.DefaultKMeansConfig(3)
//	result, err := clustering.KMeans(data, cfg)
//	// result.Labels[i] is the cluster ID for point i
//	// result.Centers is the flat row-major K×dims center matrix
//
// For precomputed cost matrices:
//
//	result, err := clustering.KMedoids(costMatrix, n, clustering.DefaultKMedoidsConfig(3))
//
// # Validation
//
// Any clustering output satisfying the ClusteringResult interface can be
// compared against another partition of the same points or scored against a
// pairwise distance matrix:
//
//	vi, err := clustering.VarInfoResult(result, reference)
//	sil, err := clustering.SilhouettesOf(result, distMatrix)
//
// # Seeding
//
// The seeding algorithms are usable on their own to bootstrap external
// iterative methods. Select one by name ("rand", "kmpp", "kmcen") and pass a
// fixed-seed *rand.Rand for reproducible selections:
//
//	seeds, err := clustering.InitSeeds("kmpp", flatData, n, dims, k, nil, rng)
//	seeds, err := clustering.InitSeedsByCosts("kmcen", costMatrix, n, k, nil)
//
// All matrices are flat row-major []float64 slices; all indices and cluster
// labels are 0-based.
package clustering
