package extract

import "sort"

// WordCount is one entry of the ranked frequency view.
type WordCount struct {
	Word  string `json:"word"`
	Count int    `json:"count"`
}

// Counter accumulates lemma frequencies for a single extraction run.
// It only grows; it is owned by exactly one job and never shared while
// the job is running.
type Counter struct {
	counts map[string]int
	order  []string // lemmas in first-fold order, the tie break for Ranked
}

// NewCounter creates an empty counter.
func NewCounter() *Counter {
	return &Counter{counts: make(map[string]int)}
}

// Fold increments the count for a lemma, creating the entry if absent.
func (c *Counter) Fold(lemma string) {
	if _, seen := c.counts[lemma]; !seen {
		c.order = append(c.order, lemma)
	}
	c.counts[lemma]++
}

// Count returns the current count for a lemma (0 if never folded).
func (c *Counter) Count(lemma string) int {
	return c.counts[lemma]
}

// Total returns the sum of all counts.
func (c *Counter) Total() int {
	total := 0
	for _, n := range c.counts {
		total += n
	}
	return total
}

// Unique returns the number of distinct lemmas.
func (c *Counter) Unique() int {
	return len(c.counts)
}

// Ranked returns all entries sorted by count descending. Entries with equal
// counts keep their first-fold order, so repeated runs over the same input
// produce identical output.
func (c *Counter) Ranked() []WordCount {
	ranked := make([]WordCount, 0, len(c.order))
	for _, lemma := range c.order {
		ranked = append(ranked, WordCount{Word: lemma, Count: c.counts[lemma]})
	}
	sort.SliceStable(ranked, func(i, j int) bool {
		return ranked[i].Count > ranked[j].Count
	})
	return ranked
}
