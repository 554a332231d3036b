package formweld

import (
	"regexp"
	"strings"
)

// PlaceholderKind distinguishes how a placeholder is anchored in the document
type PlaceholderKind int

const (
	// KindBookmark is a named anchor defined by the package's bookmark mechanism
	KindBookmark PlaceholderKind = iota
	// KindBracketedText is an inline delimiter-wrapped token in run text
	KindBracketedText
)

func (k PlaceholderKind) String() string {
	switch k {
	case KindBookmark:
		return "bookmark"
	case KindBracketedText:
		return "bracketed-text"
	default:
		return "unknown"
	}
}

// Placeholder is a named substitution point discovered in a template
type Placeholder struct {
	Name string
	Kind PlaceholderKind
	// SourceDocuments lists the templates the placeholder was found in,
	// by document name, when scanning multiple templates.
	SourceDocuments []string
}

// ScanResult holds the distinct placeholders of one or more templates,
// in first-seen order.
type ScanResult struct {
	Bookmarks    []Placeholder
	Placeholders []Placeholder
}

// All returns bookmarks and bracketed placeholders as one list,
// bookmarks first.
func (sr *ScanResult) All() []Placeholder {
	all := make([]Placeholder, 0, len(sr.Bookmarks)+len(sr.Placeholders))
	all = append(all, sr.Bookmarks...)
	all = append(all, sr.Placeholders...)
	return all
}

// Names returns the distinct placeholder names, bookmarks first,
// in first-seen order.
func (sr *ScanResult) Names() []string {
	all := sr.All()
	names := make([]string, len(all))
	for i, p := range all {
		names[i] = p.Name
	}
	return names
}

// bracketConventions are the recognized inline token syntaxes, tried in
// order. A token text matched by several conventions counts once.
var bracketConventions = []*regexp.Regexp{
	regexp.MustCompile(`\{\{\s*([^{}]+?)\s*\}\}`),
	regexp.MustCompile(`\[([A-Za-z][A-Za-z0-9 _.\-]*)\]`),
	regexp.MustCompile(`<([A-Za-z][A-Za-z0-9_.\-]*)>`),
}

// Scan inspects a loaded template and returns every distinct placeholder,
// classified as bookmark or bracketed text. Scanning is a pure read: the
// document tree is never modified, and scanning twice yields the same set.
func Scan(tmpl *TemplateDocument) (*ScanResult, error) {
	if tmpl == nil || tmpl.Document == nil {
		return nil, NewMalformedDocumentError("", "no document loaded")
	}
	if tmpl.Document.Body == nil {
		return nil, NewMalformedDocumentError(tmpl.Name, "document has no body")
	}

	result := &ScanResult{}
	seen := make(map[string]bool)

	// Bookmark anchors first; editor-internal bookmarks are not
	// substitution targets.
	for _, name := range tmpl.Document.BookmarkNames() {
		if name == "" || strings.HasPrefix(name, "_") {
			continue
		}
		if seen[name] {
			continue
		}
		seen[name] = true
		result.Bookmarks = append(result.Bookmarks, Placeholder{
			Name:            name,
			Kind:            KindBookmark,
			SourceDocuments: []string{tmpl.Name},
		})
	}

	// Inline tokens from run text, all conventions, duplicates collapsed.
	forEachParagraph(tmpl.Document.Body, func(p *Paragraph) {
		text := p.GetText()
		for _, convention := range bracketConventions {
			for _, match := range convention.FindAllStringSubmatch(text, -1) {
				name := strings.TrimSpace(match[1])
				if name == "" || seen[name] {
					continue
				}
				seen[name] = true
				result.Placeholders = append(result.Placeholders, Placeholder{
					Name:            name,
					Kind:            KindBracketedText,
					SourceDocuments: []string{tmpl.Name},
				})
			}
		}
	})

	Debug("scanned %s: %d bookmarks, %d bracketed placeholders",
		tmpl.Name, len(result.Bookmarks), len(result.Placeholders))

	return result, nil
}

// ScanAll scans several templates and merges their placeholder sets. A
// failing template does not abort the others: its error is collected and
// the remaining documents are still scanned. The returned error, if any,
// wraps every per-document failure.
func ScanAll(templates []*TemplateDocument) (*ScanResult, error) {
	index := make(map[string]*Placeholder)
	var bookmarks, placeholders []*Placeholder
	errs := NewMultiError()

	for _, tmpl := range templates {
		result, err := Scan(tmpl)
		if err != nil {
			errs.Add(err)
			continue
		}

		for _, p := range result.Bookmarks {
			if existing, ok := index[p.Name]; ok {
				existing.SourceDocuments = append(existing.SourceDocuments, tmpl.Name)
				continue
			}
			entry := p
			index[p.Name] = &entry
			bookmarks = append(bookmarks, &entry)
		}
		for _, p := range result.Placeholders {
			if existing, ok := index[p.Name]; ok {
				existing.SourceDocuments = append(existing.SourceDocuments, tmpl.Name)
				continue
			}
			entry := p
			index[p.Name] = &entry
			placeholders = append(placeholders, &entry)
		}
	}

	merged := &ScanResult{}
	for _, p := range bookmarks {
		merged.Bookmarks = append(merged.Bookmarks, *p)
	}
	for _, p := range placeholders {
		merged.Placeholders = append(merged.Placeholders, *p)
	}

	return merged, errs.Err()
}
