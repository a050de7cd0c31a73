package excitement

import "sort"

// Ranked pairs a match with its scoring breakdown. Ranked slices are
// ordered by Normalized descending.
type Ranked struct {
	Match     Match
	Breakdown Breakdown
}

// Skipped records a match that could not be scored. The batch
// continues without it; callers report skipped matches by label.
type Skipped struct {
	Match Match
	Err   error
}

// Rank scores every match independently and returns the results in
// descending excitement order. Ties keep their original input order
// (stable sort). Malformed matches are isolated into the skipped
// list rather than aborting the batch; an invalid Weights value is
// the only fatal error, since it applies to the whole run.
func Rank(matches []Match, w Weights) ([]Ranked, []Skipped, error) {
	if err := w.Validate(); err != nil {
		return nil, nil, err
	}

	ranked := make([]Ranked, 0, len(matches))
	var skipped []Skipped

	for _, m := range matches {
		b, err := Score(m, w)
		if err != nil {
			skipped = append(skipped, Skipped{Match: m, Err: err})
			continue
		}
		ranked = append(ranked, Ranked{Match: m, Breakdown: b})
	}

	sort.SliceStable(ranked, func(i, j int) bool {
		return ranked[i].Breakdown.Normalized > ranked[j].Breakdown.Normalized
	})

	return ranked, skipped, nil
}
