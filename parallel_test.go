package clustering

import "testing"

func TestComputePairwiseDistancesParallel_BitwiseIdentical(t *testing.T) {
	data := []float64{
		0, 0,
		3, 0,
		0, 4,
		1, 1,
		5, 5,
	}
	n, dims := 5, 2
	metric := EuclideanMetric{}

	sequential := ComputePairwiseDistances(data, n, dims, metric)

	for _, workers := range []int{1, 2, 4} {
		parallel := ComputePairwiseDistancesParallel(data, n, dims, metric, workers)

		if len(parallel) != len(sequential) {
			t.Fatalf("workers=%d: length mismatch %d != %d", workers, len(parallel), len(sequential))
		}

		for i := range sequential {
			if parallel[i] != sequential[i] {
				t.Errorf("workers=%d: result[%d] = %v, expected %v (bitwise)",
					workers, i, parallel[i], sequential[i])
			}
		}
	}
}

func TestComputePairwiseDistancesParallel_SinglePoint(t *testing.T) {
	data := []float64{1, 2}
	result := ComputePairwiseDistancesParallel(data, 1, 2, EuclideanMetric{}, 4)
	if len(result) != 1 || result[0] != 0 {
		t.Errorf("expected [0], got %v", result)
	}
}

func TestComputePairwiseDistancesParallel_MoreWorkersThanRows(t *testing.T) {
	data := []float64{
		0, 0,
		1, 0,
		0, 1,
	}
	n, dims := 3, 2
	sequential := ComputePairwiseDistances(data, n, dims, EuclideanMetric{})
	parallel := ComputePairwiseDistancesParallel(data, n, dims, EuclideanMetric{}, 16)
	for i := range sequential {
		if parallel[i] != sequential[i] {
			t.Errorf("result[%d] = %v, expected %v", i, parallel[i], sequential[i])
		}
	}
}

func TestAssignToCentersParallel_MatchesSequential(t *testing.T) {
	data := []float64{
		0, 0,
		0.5, 0,
		10, 10,
		10.5, 10,
		-5, 3,
	}
	n, dims := 5, 2
	centers := []float64{
		0, 0,
		10, 10,
		-5, 3,
	}
	k := 3
	metric := EuclideanMetric{}

	seqAssign := make([]int, n)
	seqCosts := make([]float64, n)
	assignToCentersParallel(data, n, dims, centers, k, metric, 1, seqAssign, seqCosts)

	for _, workers := range []int{2, 4, 8} {
		assign := make([]int, n)
		costs := make([]float64, n)
		assignToCentersParallel(data, n, dims, centers, k, metric, workers, assign, costs)
		for i := 0; i < n; i++ {
			if assign[i] != seqAssign[i] {
				t.Errorf("workers=%d: assign[%d] = %d, expected %d", workers, i, assign[i], seqAssign[i])
			}
			if costs[i] != seqCosts[i] {
				t.Errorf("workers=%d: costs[%d] = %v, expected %v", workers, i, costs[i], seqCosts[i])
			}
		}
	}
}

func TestAssignToCentersParallel_NearestCenterWins(t *testing.T) {
	data := []float64{
		1, 0,
		9, 0,
	}
	centers := []float64{
		0, 0,
		10, 0,
	}
	assign := make([]int, 2)
	costs := make([]float64, 2)
	assignToCentersParallel(data, 2, 2, centers, 2, EuclideanMetric{}, 1, assign, costs)

	if assign[0] != 0 || assign[1] != 1 {
		t.Errorf("expected assignments [0 1], got %v", assign)
	}
	// Reduced (squared) distances to nearest center: 1 and 1.
	if costs[0] != 1 || costs[1] != 1 {
		t.Errorf("expected costs [1 1], got %v", costs)
	}
}
