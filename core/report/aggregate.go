package report

import (
	"math"
	"sort"
)

// Round rounds x to the given decimal places, half to even like the store's $round.
func Round(x float64, places int) float64 {
	p := math.Pow10(places)
	return math.RoundToEven(x*p) / p
}

// Rate is part/total as a percentage rounded to one decimal. A zero total yields 0.
func Rate(part, total int) float64 {
	if total == 0 {
		return 0
	}
	return Round(float64(part)/float64(total)*100, 1)
}

// Average returns the arithmetic mean of xs, 0 when xs is empty.
func Average(xs []float64) float64 {
	if len(xs) == 0 {
		return 0
	}
	var sum float64
	for _, x := range xs {
		sum += x
	}
	return sum / float64(len(xs))
}

// Sum adds up xs.
func Sum(xs []float64) float64 {
	var sum float64
	for _, x := range xs {
		sum += x
	}
	return sum
}

// GroupBy partitions items by key. Keys are returned in order of first appearance.
func GroupBy[T any, K comparable](items []T, key func(T) K) ([]K, map[K][]T) {
	var keys []K
	groups := make(map[K][]T)
	for _, item := range items {
		k := key(item)
		if _, ok := groups[k]; !ok {
			keys = append(keys, k)
		}
		groups[k] = append(groups[k], item)
	}
	return keys, groups
}

// SortDesc orders rows by metric, highest first; ties are ordered by key ascending.
func SortDesc[T any](rows []T, metric func(T) float64, key func(T) string) {
	sort.SliceStable(rows, func(i, j int) bool {
		mi, mj := metric(rows[i]), metric(rows[j])
		if mi != mj {
			return mi > mj
		}
		return key(rows[i]) < key(rows[j])
	})
}

// TopK sorts rows like SortDesc and keeps at most k of them.
func TopK[T any](rows []T, k int, metric func(T) float64, key func(T) string) []T {
	SortDesc(rows, metric, key)
	if k >= 0 && len(rows) > k {
		rows = rows[:k]
	}
	return rows
}
