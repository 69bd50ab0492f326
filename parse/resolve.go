package parse

// Resolver picks the committed cell for a span from the candidate cells
// produced at each split point. Candidates are ordered by increasing
// split position (the length of the left sub-span). A nil result leaves
// the span empty.
type Resolver func(candidates []*Cell) *Cell

// RightmostSplit keeps the candidate from the last split point that
// derived anything. It is the default policy: ambiguous spans resolve to
// the derivation whose left part is longest.
func RightmostSplit(candidates []*Cell) *Cell {
	for i := len(candidates) - 1; i >= 0; i-- {
		if candidates[i] != nil && !candidates[i].IsEmpty() {
			return candidates[i]
		}
	}
	return nil
}

// LeftmostSplit keeps the candidate from the first split point that
// derived anything.
func LeftmostSplit(candidates []*Cell) *Cell {
	for _, c := range candidates {
		if c != nil && !c.IsEmpty() {
			return c
		}
	}
	return nil
}
