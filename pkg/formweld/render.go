package formweld

import (
	"fmt"
	"regexp"
	"sort"
)

// RenderedRow is the substituted body content produced for one data row
type RenderedRow struct {
	RowIndex int
	Fragment *Body
}

// placeholderPattern matches every recognized delimited form of one
// placeholder name within a single text leaf.
type placeholderPattern struct {
	re    *regexp.Regexp
	value string
}

// buildPatterns compiles one pattern per mapped placeholder, in sorted name
// order so substitution is deterministic.
func buildPatterns(substitutions map[string]string) []placeholderPattern {
	names := make([]string, 0, len(substitutions))
	for name := range substitutions {
		names = append(names, name)
	}
	sort.Strings(names)

	patterns := make([]placeholderPattern, 0, len(names))
	for _, name := range names {
		quoted := regexp.QuoteMeta(name)
		expr := fmt.Sprintf(`\{\{\s*%s\s*\}\}|\[%s\]|<%s>`, quoted, quoted, quoted)
		patterns = append(patterns, placeholderPattern{
			re:    regexp.MustCompile(expr),
			value: substitutions[name],
		})
	}
	return patterns
}

// RenderRow renders one data row against a template body: it deep-copies the
// body, then replaces every delimited occurrence of each mapped placeholder,
// and independently each mapped bookmark range, with the row's value for the
// mapped column. The input body is never modified.
//
// Placeholders absent from the mapping stay verbatim. A mapped placeholder
// whose column has no value in the row substitutes the empty string.
// Substitution happens inside existing text leaves only, never across leaf
// boundaries; values are escaped during serialization, so raw markup
// characters in data cannot corrupt the document.
func RenderRow(body *Body, mapping *MappingStore, values map[string]string) (*Body, error) {
	if body == nil {
		return nil, NewMalformedDocumentError("", "cannot render nil body")
	}
	if mapping == nil {
		mapping = NewMappingStore()
	}

	substitutions := make(map[string]string, mapping.MappedCount())
	for placeholder, column := range mapping.Snapshot() {
		substitutions[placeholder] = values[column]
	}

	rendered := cloneBody(body)
	if len(substitutions) == 0 {
		return rendered, nil
	}

	patterns := buildPatterns(substitutions)
	forEachParagraph(rendered, func(p *Paragraph) {
		substituteBookmarkRanges(p, substitutions)
		substituteRunText(p, patterns)
	})

	return rendered, nil
}

// substituteRunText replaces delimited placeholder tokens in every text leaf
// of a paragraph.
func substituteRunText(p *Paragraph, patterns []placeholderPattern) {
	for _, run := range p.RunsInOrder() {
		if run.Text == nil || run.Text.Content == "" {
			continue
		}
		for _, pat := range patterns {
			run.Text.Content = pat.re.ReplaceAllLiteralString(run.Text.Content, pat.value)
		}
	}
}

// bookmarkFill tracks one open mapped bookmark range during substitution
type bookmarkFill struct {
	id      string
	value   string
	written bool
}

// substituteBookmarkRanges rewrites the runs inside each mapped bookmark
// range: the first run receives the value, the remaining runs are blanked so
// the old anchored text disappears. A collapsed range (no runs between start
// and end) gains a fresh run carrying the value.
func substituteBookmarkRanges(p *Paragraph, substitutions map[string]string) {
	var open []*bookmarkFill
	var out []ParagraphContent

	for _, item := range p.Content {
		switch c := item.(type) {
		case *BookmarkStart:
			if value, ok := substitutions[c.Name]; ok {
				open = append(open, &bookmarkFill{id: c.ID, value: value})
			}
			out = append(out, c)

		case *BookmarkEnd:
			for i, fill := range open {
				if fill.id != c.ID {
					continue
				}
				if !fill.written {
					out = append(out, &Run{Text: &Text{Content: fill.value}})
				}
				open = append(open[:i], open[i+1:]...)
				break
			}
			out = append(out, c)

		case *Run:
			if fill := firstUnwritten(open); fill != nil {
				if c.Text == nil {
					c.Text = &Text{}
				}
				c.Text.Content = fill.value
				fill.written = true
			} else if len(open) > 0 && c.Text != nil {
				c.Text.Content = ""
			}
			out = append(out, c)

		default:
			out = append(out, item)
		}
	}

	p.Content = out
}

func firstUnwritten(open []*bookmarkFill) *bookmarkFill {
	for _, fill := range open {
		if !fill.written {
			return fill
		}
	}
	return nil
}
