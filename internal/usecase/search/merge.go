package search

import (
	"sort"

	"github.com/kailas-cloud/claimdex/internal/domain/search/result"
)

// mergePage interleaves the per-kind candidate pools by last-modified time
// (newest first) and slices out the requested page.
//
// Each pool holds at most one page of its kind, so deep pages are an
// approximation: a record pushed past its kind's first page can be absent
// from a merged page it would belong to under a global sort. The stable
// sort keeps canonical kind order (policy, claim, document) for equal
// timestamps.
func mergePage(pools [][]result.Result, offset, limit int) []result.Result {
	size := 0
	for _, pool := range pools {
		size += len(pool)
	}

	merged := make([]result.Result, 0, size)
	for _, pool := range pools {
		merged = append(merged, pool...)
	}

	sort.SliceStable(merged, func(i, j int) bool {
		return merged[i].LastModified().After(merged[j].LastModified())
	})

	if offset >= len(merged) {
		return []result.Result{}
	}
	end := offset + limit
	if end > len(merged) {
		end = len(merged)
	}
	return merged[offset:end]
}
