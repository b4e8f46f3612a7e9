package devcontainer

// Resolve narrows a candidate list down to exactly one container.
//
// Indices are 1-based, matching the displayed list. A single candidate is
// auto-selected whether or not an index was supplied, except that an explicit
// index outside [1, 1] is still out of range.
func Resolve(candidates []Candidate, requested *int) (*Candidate, error) {
	if len(candidates) == 0 {
		return nil, &NoCandidatesError{}
	}
	if requested == nil {
		if len(candidates) == 1 {
			return &candidates[0], nil
		}
		return nil, &AmbiguousSelectionError{Candidates: candidates}
	}
	idx := *requested
	if idx < 1 || idx > len(candidates) {
		return nil, &IndexOutOfRangeError{Requested: idx, Count: len(candidates)}
	}
	return &candidates[idx-1], nil
}
