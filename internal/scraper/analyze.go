package scraper

import "sort"

type Count struct {
	Label string
	N     int
}

type Analysis struct {
	TagCounts    []Count
	AuthorCounts []Count
	AvgQuoteLen  float64
}

// Analyze computes tag and author frequencies (descending, ties broken by
// label) and the average quote length in characters.
func Analyze(quotes []Quote) Analysis {
	tags := map[string]int{}
	authors := map[string]int{}
	totalLen := 0

	for _, q := range quotes {
		totalLen += len(q.Text)
		authors[q.Author]++
		for _, t := range q.Tags {
			tags[t]++
		}
	}

	a := Analysis{
		TagCounts:    sortCounts(tags),
		AuthorCounts: sortCounts(authors),
	}
	if len(quotes) > 0 {
		a.AvgQuoteLen = float64(totalLen) / float64(len(quotes))
	}
	return a
}

// Top returns the first n counts, or all of them when fewer exist.
func Top(counts []Count, n int) []Count {
	if n >= len(counts) {
		return counts
	}
	return counts[:n]
}

func sortCounts(m map[string]int) []Count {
	counts := make([]Count, 0, len(m))
	for label, n := range m {
		counts = append(counts, Count{Label: label, N: n})
	}
	sort.Slice(counts, func(i, j int) bool {
		if counts[i].N != counts[j].N {
			return counts[i].N > counts[j].N
		}
		return counts[i].Label < counts[j].Label
	})
	return counts
}
