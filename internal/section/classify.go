package section

import "strings"

// Classify categorizes normalized heading titles by keyword and then fills
// unknown headings from their neighbours.
func Classify(titles []string) []Category {
	return FloodAppendix(PropagateTemplate(FillGaps(Match(titles))))
}

// Match assigns each title the last category whose keywords it contains,
// or Unknown.
func Match(titles []string) []Category {
	cats := make([]Category, len(titles))
	for i, title := range titles {
		cats[i] = Unknown
		title = strings.ToLower(title)
		for _, k := range keywords {
			for _, w := range k.words {
				if strings.Contains(title, w) {
					cats[i] = k.category
					break
				}
			}
		}
	}
	return cats
}

// FillGaps assigns runs of Unknown between two headings of the same
// category to that category.
func FillGaps(cats []Category) []Category {
	out := append([]Category(nil), cats...)
	last := -1
	for i, c := range out {
		if c == Unknown {
			continue
		}
		if last >= 0 && out[last] == c {
			for j := last + 1; j < i; j++ {
				out[j] = c
			}
		}
		last = i
	}
	return out
}

// PropagateTemplate assigns runs of Unknown to the preceding category
// when the following category comes later in the article template.
func PropagateTemplate(cats []Category) []Category {
	out := append([]Category(nil), cats...)
	last := -1
	for i, c := range out {
		if c == Unknown {
			continue
		}
		if last >= 0 && follows(out[last], c) {
			for j := last + 1; j < i; j++ {
				out[j] = out[last]
			}
		}
		last = i
	}
	return out
}

func follows(prev, next Category) bool {
	p, ok := templateRank[prev]
	if !ok {
		return false
	}
	n, ok := templateRank[next]
	return ok && n > p
}

// FloodAppendix assigns every heading after the last categorized one to
// the appendix when that heading is an appendix.
func FloodAppendix(cats []Category) []Category {
	out := append([]Category(nil), cats...)
	for i := len(out) - 1; i >= 0; i-- {
		if out[i] == Unknown {
			continue
		}
		if out[i] == Appendix {
			for j := i + 1; j < len(out); j++ {
				out[j] = Appendix
			}
		}
		break
	}
	return out
}
