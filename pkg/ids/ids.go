// Package ids provides helpers for building id sets from record collections.
// Order is always preserved so callers stay deterministic.
package ids

// Collect extracts one id per record via f, dropping empties and duplicates.
//
// Example:
//
//	Collect(cards, func(c Card) string { return c.CreatorUserID })
//	// Returns the distinct, non-empty creator ids in first-seen order.
func Collect[T any](records []T, f func(T) string) []string {
	if len(records) == 0 {
		return nil
	}

	seen := make(map[string]struct{}, len(records))
	result := make([]string, 0, len(records))

	for _, r := range records {
		id := f(r)
		if id == "" {
			continue
		}
		if _, ok := seen[id]; !ok {
			seen[id] = struct{}{}
			result = append(result, id)
		}
	}

	return result
}

// Union merges id slices, dropping empties and duplicates, preserving
// first-seen order across all inputs.
func Union(sets ...[]string) []string {
	total := 0
	for _, s := range sets {
		total += len(s)
	}
	if total == 0 {
		return nil
	}

	seen := make(map[string]struct{}, total)
	result := make([]string, 0, total)

	for _, s := range sets {
		for _, id := range s {
			if id == "" {
				continue
			}
			if _, ok := seen[id]; !ok {
				seen[id] = struct{}{}
				result = append(result, id)
			}
		}
	}

	return result
}
