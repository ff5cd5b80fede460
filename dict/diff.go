package dict

import (
	"sort"

	"github.com/ZaguanLabs/domloc"
)

// DiffResult describes how a dictionary lines up with the lookup keys a set
// of pages needs.
type DiffResult struct {
	// Missing contains needed keys that have no dictionary entry. Template
	// shapes are generalized, so one missing entry can cover many texts.
	Missing []string

	// Covered contains the dictionary keys the supplied texts exercise.
	Covered []string

	// Stale contains dictionary keys no supplied text needs. Stale entries
	// are informational; Update never removes them.
	Stale []string
}

// Stats returns summary counts for the diff.
func (d *DiffResult) Stats() DiffStats {
	return DiffStats{
		Missing: len(d.Missing),
		Covered: len(d.Covered),
		Stale:   len(d.Stale),
	}
}

// DiffStats contains summary counts for a diff.
type DiffStats struct {
	Missing int
	Covered int
	Stale   int
}

// InSync reports whether the dictionary already covers every needed key.
func (d *DiffResult) InSync() bool {
	return len(d.Missing) == 0
}

// Diff compares a dictionary against the lookup keys extracted from sample
// pages and reports what a rebuild needs to add. A text counts as covered
// when the dictionary can serve it the way the resolver would: through a
// generalized template key or verbatim. All result slices are sorted.
func Diff(d Dictionary, texts []string) *DiffResult {
	matchers := domloc.DefaultMatchers()

	result := &DiffResult{}
	used := make(map[string]bool, len(d))
	missing := make(map[string]bool)

	for _, text := range texts {
		if text == "" {
			continue
		}

		key, ok := lookupKey(d, matchers, text)
		if ok {
			used[key] = true
		} else {
			missing[key] = true
		}
	}

	for key := range missing {
		result.Missing = append(result.Missing, key)
	}
	for key := range used {
		result.Covered = append(result.Covered, key)
	}
	for key := range d {
		if !used[key] {
			result.Stale = append(result.Stale, key)
		}
	}

	sort.Strings(result.Missing)
	sort.Strings(result.Covered)
	sort.Strings(result.Stale)

	return result
}

// lookupKey resolves text to the dictionary key that serves it, in resolver
// order: each matcher's generalized key, then the verbatim text. When no key
// serves it, the returned key is the one a rebuild should add - the first
// template generalization when a shape matches, otherwise the text itself.
func lookupKey(d Dictionary, matchers []domloc.Matcher, text string) (string, bool) {
	canonical := ""

	for _, m := range matchers {
		match, ok := m.Match(text)
		if !ok {
			continue
		}
		key := m.Key(match)
		if _, ok := d[key]; ok {
			return key, true
		}
		if canonical == "" {
			canonical = key
		}
	}

	if _, ok := d[text]; ok {
		return text, true
	}
	if canonical != "" {
		return canonical, false
	}
	return text, false
}
