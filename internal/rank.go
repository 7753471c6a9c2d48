package internal

import "sort"

// SortCandidates orders candidates by descending confidence, ties broken
// by source priority (EXIF beats filename beats filesystem). Returns a
// sorted copy; the input is never mutated.
func SortCandidates(candidates []DateCandidate) []DateCandidate {
	sorted := make([]DateCandidate, len(candidates))
	copy(sorted, candidates)
	sort.SliceStable(sorted, func(i, j int) bool {
		if sorted[i].Confidence != sorted[j].Confidence {
			return sorted[i].Confidence > sorted[j].Confidence
		}
		return sourcePriority[sorted[i].Source] < sourcePriority[sorted[j].Source]
	})
	return sorted
}

// RankCandidates picks the best candidate: maximum confidence, ties
// broken by source priority. Returns nil for an empty set. Pure and
// deterministic for a given candidate set.
func RankCandidates(candidates []DateCandidate) *DateCandidate {
	if len(candidates) == 0 {
		return nil
	}
	best := SortCandidates(candidates)[0]
	return &best
}
