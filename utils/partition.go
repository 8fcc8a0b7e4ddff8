package utils

// Split1D partitions the index range [0, n) into at most np contiguous
// sub-ranges for parallel workers. The first n%np ranges carry one extra
// element; empty ranges are omitted so callers can range over the result
// directly.
func Split1D(n, np int) (bounds [][2]int) {
	if np < 1 {
		np = 1
	}
	if np > n {
		np = n
	}
	bounds = make([][2]int, 0, np)
	chunk, rem := n/np, n%np
	start := 0
	for p := 0; p < np; p++ {
		end := start + chunk
		if p < rem {
			end++
		}
		if end > start {
			bounds = append(bounds, [2]int{start, end})
		}
		start = end
	}
	return
}
