package article

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"regexp"
	"strings"

	"github.com/matsen/citectx/internal/reference"
)

// Match entry start: @type{key,
var entryStartRegex = regexp.MustCompile(`@(\w+)\s*[\{(]\s*([^,\s]+)\s*,`)

var whitespace = regexp.MustCompile(`\s+`)

// ReadBibTeX reads articles from a .bib file.
func ReadBibTeX(path string) ([]reference.Article, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("opening BibTeX file: %w", err)
	}
	defer file.Close()
	return ParseBibTeX(file)
}

// ParseBibTeX parses BibTeX entries into articles. It reads the author,
// title, year and journal fields; booktitle stands in for a missing
// journal. Authors written "Forename Surname" are rewritten as
// "Surname, Forename". @comment, @string and @preamble blocks are skipped.
func ParseBibTeX(r io.Reader) ([]reference.Article, error) {
	var sb strings.Builder
	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 64*1024), 1024*1024)
	for scanner.Scan() {
		line := scanner.Text()
		if strings.HasPrefix(strings.TrimSpace(line), "%") {
			continue
		}
		sb.WriteString(line)
		sb.WriteByte('\n')
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("reading BibTeX: %w", err)
	}
	src := sb.String()

	var articles []reference.Article
	for pos := 0; pos < len(src); {
		loc := entryStartRegex.FindStringSubmatchIndex(src[pos:])
		if loc == nil {
			break
		}
		kind := strings.ToLower(src[pos+loc[2] : pos+loc[3]])
		key := src[pos+loc[4] : pos+loc[5]]
		bodyStart := pos + loc[1]

		fields, end, err := parseFields(src, bodyStart)
		if err != nil {
			return nil, fmt.Errorf("entry %q: %w", key, err)
		}
		pos = end

		switch kind {
		case "comment", "string", "preamble":
			continue
		}
		journal := fields["journal"]
		if journal == "" {
			journal = fields["booktitle"]
		}
		articles = append(articles, reference.Article{
			CitationKey: key,
			Author:      normalizeAuthors(fields["author"]),
			Title:       fields["title"],
			Year:        NormalizeYear(fields["year"]),
			Journal:     journal,
		})
	}
	return articles, nil
}

// parseFields reads "name = value" pairs from src[i:] up to the brace or
// parenthesis closing the entry. It returns the fields and the offset
// after the closing delimiter.
func parseFields(src string, i int) (map[string]string, int, error) {
	fields := make(map[string]string)
	for {
		i = skipSpaceAndCommas(src, i)
		if i >= len(src) {
			return nil, i, fmt.Errorf("unterminated entry")
		}
		if src[i] == '}' || src[i] == ')' {
			return fields, i + 1, nil
		}

		start := i
		for i < len(src) && isNameByte(src[i]) {
			i++
		}
		name := strings.ToLower(src[start:i])
		if name == "" {
			return nil, i, fmt.Errorf("expected field name at offset %d", i)
		}
		i = skipSpace(src, i)
		if i >= len(src) || src[i] != '=' {
			return nil, i, fmt.Errorf("expected '=' after %q", name)
		}
		i = skipSpace(src, i+1)

		var parts []string
		for {
			part, next, err := parseValue(src, i)
			if err != nil {
				return nil, next, fmt.Errorf("field %q: %w", name, err)
			}
			parts = append(parts, part)
			i = skipSpace(src, next)
			if i < len(src) && src[i] == '#' {
				i = skipSpace(src, i+1)
				continue
			}
			break
		}
		fields[name] = cleanValue(strings.Join(parts, ""))
	}
}

// parseValue reads a braced, quoted or bare value starting at src[i].
func parseValue(src string, i int) (string, int, error) {
	if i >= len(src) {
		return "", i, fmt.Errorf("missing value")
	}
	switch src[i] {
	case '{':
		depth := 0
		for j := i; j < len(src); j++ {
			switch src[j] {
			case '{':
				depth++
			case '}':
				depth--
				if depth == 0 {
					return src[i+1 : j], j + 1, nil
				}
			}
		}
		return "", len(src), fmt.Errorf("unbalanced braces")
	case '"':
		depth := 0
		for j := i + 1; j < len(src); j++ {
			switch src[j] {
			case '{':
				depth++
			case '}':
				depth--
			case '"':
				if depth == 0 && src[j-1] != '\\' {
					return src[i+1 : j], j + 1, nil
				}
			}
		}
		return "", len(src), fmt.Errorf("unterminated quoted value")
	default:
		j := i
		for j < len(src) && isNameByte(src[j]) {
			j++
		}
		if j == i {
			return "", i, fmt.Errorf("unexpected %q", src[i])
		}
		return src[i:j], j, nil
	}
}

func cleanValue(s string) string {
	s = strings.NewReplacer("{", "", "}", "", `\&`, "&").Replace(s)
	return strings.TrimSpace(whitespace.ReplaceAllString(s, " "))
}

// normalizeAuthors rewrites each "Forename Surname" author as
// "Surname, Forename". Authors that already carry a comma are kept.
func normalizeAuthors(s string) string {
	if s == "" {
		return s
	}
	parts := strings.Split(s, " and ")
	for i, p := range parts {
		p = strings.TrimSpace(p)
		if strings.Contains(p, ",") {
			parts[i] = p
			continue
		}
		if idx := strings.LastIndex(p, " "); idx > 0 {
			p = p[idx+1:] + ", " + p[:idx]
		}
		parts[i] = p
	}
	return strings.Join(parts, " and ")
}

func isNameByte(c byte) bool {
	return c >= 'a' && c <= 'z' || c >= 'A' && c <= 'Z' || c >= '0' && c <= '9' ||
		c == '_' || c == '-' || c == ':' || c == '.' || c == '+' || c == '/'
}

func skipSpace(src string, i int) int {
	for i < len(src) && (src[i] == ' ' || src[i] == '\t' || src[i] == '\n' || src[i] == '\r') {
		i++
	}
	return i
}

func skipSpaceAndCommas(src string, i int) int {
	for {
		j := skipSpace(src, i)
		if j < len(src) && src[j] == ',' {
			i = j + 1
			continue
		}
		return j
	}
}
