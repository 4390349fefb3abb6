// Package batch partitions a candidate list into bounded-size batches
// for remote classification. Batch count grows stepwise with candidate
// count, capping prompt size while keeping request volume proportional
// to document size.
package batch

// Plan returns the target batch count for n candidates
func Plan(n int) int {
	switch {
	case n <= 10:
		return 1
	case n < 30:
		return 2
	case n < 50:
		return 3
	case n < 70:
		return 5
	case n < 80:
		return 6
	case n < 90:
		return 7
	case n < 100:
		return 8
	default:
		return 9
	}
}

// Split slices candidates into contiguous batches of ceil(n/Plan(n))
// elements, in original order. Slices beyond the plan count are
// discarded; the plan bounds request volume, not coverage.
func Split(candidates []string) [][]string {
	n := len(candidates)
	if n == 0 {
		return [][]string{}
	}

	numBatches := Plan(n)
	size := (n + numBatches - 1) / numBatches
	if size < 1 {
		size = 1
	}

	batches := make([][]string, 0, numBatches)
	for i := 0; i < n; i += size {
		end := i + size
		if end > n {
			end = n
		}
		batches = append(batches, candidates[i:end])
	}
	if len(batches) > numBatches {
		batches = batches[:numBatches]
	}
	return batches
}
