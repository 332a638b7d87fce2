// Package history derives the list of recent searches from the log of
// request URLs.
package history

// DefaultWindow is the number of distinct terms considered, including the
// one currently displayed.
const DefaultWindow = 6

// LastDistinctTerms maps urls to terms with extract, collapses consecutive
// repeats, keeps the last window terms and drops the final one, which is the
// search currently on screen. The result is in input order, oldest first.
func LastDistinctTerms(urls []string, window int, extract func(string) string) []string {
	terms := make([]string, 0, len(urls))
	for _, u := range urls {
		term := extract(u)
		if len(terms) > 0 && terms[len(terms)-1] == term {
			continue
		}
		terms = append(terms, term)
	}

	if window <= 0 || len(terms) <= 1 {
		return []string{}
	}
	if len(terms) > window {
		terms = terms[len(terms)-window:]
	}

	prior := make([]string, len(terms)-1)
	copy(prior, terms[:len(terms)-1])
	return prior
}
