// Package tally builds frequency tables over line-delimited records, with
// optional parallel extraction across a fixed worker pool.
package tally

import (
	"sort"

	"github.com/jdhollis/logtally/models"
)

// FrequencyTable maps extracted keys to occurrence counts. It also remembers
// the absolute input position each key was first seen at, which keeps top-K
// ordering deterministic no matter how the input was partitioned.
//
// A table has a single owner at any point in time; it is not safe for
// concurrent mutation.
type FrequencyTable struct {
	counts    map[string]int
	firstSeen map[string]int
}

func NewFrequencyTable() *FrequencyTable {
	return &FrequencyTable{
		counts:    make(map[string]int),
		firstSeen: make(map[string]int),
	}
}

// Observe records one occurrence of key at the given absolute input position.
func (t *FrequencyTable) Observe(key string, pos int) {
	if _, ok := t.counts[key]; !ok {
		t.firstSeen[key] = pos
	}
	t.counts[key]++
}

// Merge folds another table into t. Counts add up and the earliest first-seen
// position wins, so merging partition tables in any order reproduces the
// sequential result.
func (t *FrequencyTable) Merge(other *FrequencyTable) {
	for key, count := range other.counts {
		if current, ok := t.firstSeen[key]; !ok || other.firstSeen[key] < current {
			t.firstSeen[key] = other.firstSeen[key]
		}
		t.counts[key] += count
	}
}

// Count returns the occurrences of key, zero if it was never seen.
func (t *FrequencyTable) Count(key string) int {
	return t.counts[key]
}

// Len returns the number of distinct keys.
func (t *FrequencyTable) Len() int {
	return len(t.counts)
}

// Total returns the sum of all counts.
func (t *FrequencyTable) Total() int {
	total := 0
	for _, count := range t.counts {
		total += count
	}
	return total
}

// TopK returns the k most frequent keys ordered by descending count, ties
// broken by first-seen input order. k <= 0 returns an empty slice; k larger
// than the number of distinct keys returns all of them.
func (t *FrequencyTable) TopK(k int) []models.KeyCount {
	type kv struct {
		key   string
		count int
		seen  int
	}

	ss := make([]kv, 0, len(t.counts))
	for key, count := range t.counts {
		ss = append(ss, kv{key: key, count: count, seen: t.firstSeen[key]})
	}

	sort.Slice(ss, func(i, j int) bool {
		if ss[i].count != ss[j].count {
			return ss[i].count > ss[j].count
		}
		return ss[i].seen < ss[j].seen
	})

	limit := k
	if limit < 0 {
		limit = 0
	}
	if len(ss) < limit {
		limit = len(ss)
	}

	top := make([]models.KeyCount, limit)
	for i := 0; i < limit; i++ {
		top[i] = models.KeyCount{Key: ss[i].key, Count: ss[i].count}
	}

	return top
}
