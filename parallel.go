package clustering

import "sync"

// ComputePairwiseDistancesParallel computes the full n×n distance matrix using
// multiple goroutines. data is flat row-major with n rows and dims columns.
// numWorkers controls the degree of parallelism; if <= 1, it falls back to
// single-threaded ComputePairwiseDistances.
//
// The result is bitwise identical to ComputePairwiseDistances: a flat []float64
// of length n×n in row-major order.
func ComputePairwiseDistancesParallel(data []float64, n, dims int, metric DistanceMetric, numWorkers int) []float64 {
	if numWorkers <= 1 || n <= 1 {
		return ComputePairwiseDistances(data, n, dims, metric)
	}

	result := make([]float64, n*n)

	// Split rows across workers. Each worker handles a contiguous range of
	// "source" rows and computes dist(i,j) for all j > i in that range.
	// Since row ranges don't overlap, no synchronization is needed for writes.
	var wg sync.WaitGroup

	rowsPerWorker := (n + numWorkers - 1) / numWorkers

	for w := 0; w < numWorkers; w++ {
		startRow := w * rowsPerWorker
		endRow := startRow + rowsPerWorker
		if endRow > n {
			endRow = n
		}
		if startRow >= n {
			break
		}

		wg.Add(1)
		go func(start, end int) {
			defer wg.Done()
			for i := start; i < end; i++ {
				for j := i + 1; j < n; j++ {
					d := metric.Distance(data[i*dims:(i+1)*dims], data[j*dims:(j+1)*dims])
					result[i*n+j] = d
					result[j*n+i] = d
				}
			}
		}(startRow, endRow)
	}

	wg.Wait()
	return result
}

// assignToCentersParallel assigns every point to its nearest center, writing
// labels into assignments and the reduced distance to the chosen center into
// costs. centers is flat row-major with k rows. Each worker handles a
// contiguous range of points independently. Falls back to a sequential pass
// if numWorkers <= 1.
func assignToCentersParallel(data []float64, n, dims int, centers []float64, k int, metric DistanceMetric, numWorkers int, assignments []int, costs []float64) {
	assign := func(start, end int) {
		for i := start; i < end; i++ {
			point := data[i*dims : (i+1)*dims]
			best := 0
			bestCost := metric.ReducedDistance(point, centers[:dims])
			for c := 1; c < k; c++ {
				if d := metric.ReducedDistance(point, centers[c*dims:(c+1)*dims]); d < bestCost {
					best = c
					bestCost = d
				}
			}
			assignments[i] = best
			costs[i] = bestCost
		}
	}

	if numWorkers <= 1 || n <= 1 {
		assign(0, n)
		return
	}

	var wg sync.WaitGroup
	pointsPerWorker := (n + numWorkers - 1) / numWorkers

	for w := 0; w < numWorkers; w++ {
		start := w * pointsPerWorker
		end := start + pointsPerWorker
		if end > n {
			end = n
		}
		if start >= n {
			break
		}

		wg.Add(1)
		go func(start, end int) {
			defer wg.Done()
			assign(start, end)
		}(start, end)
	}

	wg.Wait()
}
