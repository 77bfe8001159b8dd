package catalog

// combinations.go enumerates the variant matrix implied by a set of
// option definitions. Platforms that declare option domains without
// listing each variant (one row per product, values as lists) rely on
// this to synthesize the explicit variants other schemas carry per row.

import "fmt"

// DefaultMaxCombinations caps the variant matrix when the caller does
// not configure a ceiling. 100 matches the variant limit common to
// hosted storefronts and keeps a malformed many-option file from
// generating an unbounded matrix.
const DefaultMaxCombinations = 100

// CombinationLimitError is the batch-fatal error returned when the
// option domains multiply out beyond the configured ceiling.
type CombinationLimitError struct {
	Count int
	Limit int
}

func (e *CombinationLimitError) Error() string {
	return fmt.Sprintf("option matrix yields %d combinations, exceeding the limit of %d", e.Count, e.Limit)
}

// Combinations returns the Cartesian product of the option value
// domains as positional value tuples, one per potential variant.
//
// Ordering is fixed: the first option varies slowest, the last varies
// fastest, so combinations are grouped by the first option's values.
// An empty option list yields exactly one empty combination, never
// zero, so callers can always mint at least one variant.
//
// limit caps the total combination count; 0 means
// DefaultMaxCombinations, negative means unlimited.
func Combinations(options []OptionDefinition, limit int) ([][]string, error) {
	if limit == 0 {
		limit = DefaultMaxCombinations
	}

	total := 1
	for _, opt := range options {
		n := len(opt.Values)
		if n == 0 {
			continue
		}
		total *= n
		if limit > 0 && total > limit {
			return nil, &CombinationLimitError{Count: countCombinations(options), Limit: limit}
		}
	}

	// Iterative fold over the option list: start with one empty
	// combination and extend it one option at a time. Appending the
	// current option's values innermost keeps the first option slowest.
	combos := [][]string{{}}
	for _, opt := range options {
		if len(opt.Values) == 0 {
			continue
		}
		next := make([][]string, 0, len(combos)*len(opt.Values))
		for _, base := range combos {
			for _, val := range opt.Values {
				combo := make([]string, len(base)+1)
				copy(combo, base)
				combo[len(base)] = val
				next = append(next, combo)
			}
		}
		combos = next
	}
	return combos, nil
}

// countCombinations multiplies out the full matrix size without
// allocating it, for error reporting.
func countCombinations(options []OptionDefinition) int {
	total := 1
	for _, opt := range options {
		if len(opt.Values) > 0 {
			total *= len(opt.Values)
		}
	}
	return total
}
