package citation

import (
	"fmt"
	"strings"

	"github.com/dlclark/regexp2"
)

// RecoveredTarget marks recovered citations of the review whose
// bibliography id could not be looked up.
const RecoveredTarget = "citectx-recovered"

const bibliographyStart = "<listBibl>"

// Recover tags citations of the review that Grobid left as plain text.
//
// Only the part of the raw document before the bibliography is searched.
// With two or more authors, case-insensitive author-year matches outside
// existing ref elements are wrapped in <ref target="#TARGET">. With
// exactly two authors, initial acronyms such as "D&amp;M" are wrapped as
// well. An empty target is replaced by RecoveredTarget.
func Recover(raw string, surnames []string, year, target string) (string, error) {
	if len(surnames) < 2 {
		return raw, nil
	}
	if target == "" {
		target = RecoveredTarget
	}

	main, rest := raw, ""
	if idx := strings.Index(raw, bibliographyStart); idx >= 0 {
		main, rest = raw[:idx], raw[idx:]
	}

	patterns := []string{BuildPattern(surnames, year)}
	if len(surnames) == 2 {
		patterns = append(patterns, acronym(surnames[0])+"&amp;"+acronym(surnames[1]))
	}

	replacement := `<ref target="#` + strings.ReplaceAll(target, "$", "$$") + `">$1</ref>`
	for _, p := range patterns {
		re, err := regexp2.Compile(`(?!<ref[^>]*?>)(`+p+`)(?![^<]*?</ref>)`, regexp2.IgnoreCase)
		if err != nil {
			return raw, fmt.Errorf("compiling recovery pattern: %w", err)
		}
		main, err = re.Replace(main, replacement, -1, -1)
		if err != nil {
			return raw, fmt.Errorf("recovering citations: %w", err)
		}
	}
	return main + rest, nil
}

// acronym returns the quoted first letter of a surname.
func acronym(surname string) string {
	for _, r := range surname {
		return regexp2.Escape(string(r))
	}
	return ""
}
