package engine

import "sort"

// sortFloats orders prices in place by the given comparator. Shared by the
// hash and heap backends for Depth, since neither keeps prices pre-sorted.
func sortFloats(prices []float64, less func(a, b float64) bool) {
	sort.Slice(prices, func(i, j int) bool { return less(prices[i], prices[j]) })
}
