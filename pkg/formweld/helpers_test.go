package formweld

import (
	"archive/zip"
	"bytes"
	"io"
	"strings"
	"testing"
)

// buildDOCX assembles a minimal valid DOCX package around the given
// word/document.xml content.
func buildDOCX(t *testing.T, documentXML string) []byte {
	t.Helper()

	var buf bytes.Buffer
	w := zip.NewWriter(&buf)

	rels, err := w.Create("_rels/.rels")
	if err != nil {
		t.Fatalf("failed to create _rels/.rels: %v", err)
	}
	io.WriteString(rels, `<?xml version="1.0" encoding="UTF-8" standalone="yes"?>
<Relationships xmlns="http://schemas.openxmlformats.org/package/2006/relationships">
  <Relationship Id="rId1" Type="http://schemas.openxmlformats.org/officeDocument/2006/relationships/officeDocument" Target="word/document.xml"/>
</Relationships>`)

	doc, err := w.Create("word/document.xml")
	if err != nil {
		t.Fatalf("failed to create word/document.xml: %v", err)
	}
	io.WriteString(doc, documentXML)

	ct, err := w.Create("[Content_Types].xml")
	if err != nil {
		t.Fatalf("failed to create [Content_Types].xml: %v", err)
	}
	io.WriteString(ct, `<?xml version="1.0" encoding="UTF-8" standalone="yes"?>
<Types xmlns="http://schemas.openxmlformats.org/package/2006/content-types">
  <Default Extension="rels" ContentType="application/vnd.openxmlformats-package.relationships+xml"/>
  <Default Extension="xml" ContentType="application/xml"/>
  <Override PartName="/word/document.xml" ContentType="application/vnd.openxmlformats-officedocument.wordprocessingml.document.main+xml"/>
</Types>`)

	if err := w.Close(); err != nil {
		t.Fatalf("failed to close zip writer: %v", err)
	}
	return buf.Bytes()
}

// buildDOCXWithBody wraps body markup into a complete document part with a
// trailing sectPr, then packages it.
func buildDOCXWithBody(t *testing.T, bodyXML string) []byte {
	t.Helper()
	documentXML := `<?xml version="1.0" encoding="UTF-8" standalone="yes"?>
<w:document xmlns:w="http://schemas.openxmlformats.org/wordprocessingml/2006/main" xmlns:r="http://schemas.openxmlformats.org/officeDocument/2006/relationships">
  <w:body>
` + bodyXML + `
    <w:sectPr><w:pgSz w:w="11906" w:h="16838"/></w:sectPr>
  </w:body>
</w:document>`
	return buildDOCX(t, documentXML)
}

// paragraphXML builds one plain paragraph holding the given run text
func paragraphXML(text string) string {
	return "    <w:p><w:r><w:t>" + text + "</w:t></w:r></w:p>\n"
}

// bookmarkParagraphXML builds a paragraph with a bookmarked run
func bookmarkParagraphXML(id, name, text string) string {
	return `    <w:p><w:bookmarkStart w:id="` + id + `" w:name="` + name + `"/><w:r><w:t>` + text + `</w:t></w:r><w:bookmarkEnd w:id="` + id + `"/></w:p>` + "\n"
}

// loadTestTemplate builds a package from body markup and loads it
func loadTestTemplate(t *testing.T, bodyXML string) *TemplateDocument {
	t.Helper()
	data := buildDOCXWithBody(t, bodyXML)
	tmpl, err := LoadPackage(data, "test.docx")
	if err != nil {
		t.Fatalf("failed to load test template: %v", err)
	}
	return tmpl
}

// extractDocumentXML pulls word/document.xml out of a packaged output
func extractDocumentXML(t *testing.T, pkgBytes []byte) string {
	t.Helper()

	r, err := zip.NewReader(bytes.NewReader(pkgBytes), int64(len(pkgBytes)))
	if err != nil {
		t.Fatalf("output is not a valid zip: %v", err)
	}

	for _, f := range r.File {
		if f.Name != "word/document.xml" {
			continue
		}
		rc, err := f.Open()
		if err != nil {
			t.Fatalf("failed to open word/document.xml: %v", err)
		}
		defer rc.Close()
		content, err := io.ReadAll(rc)
		if err != nil {
			t.Fatalf("failed to read word/document.xml: %v", err)
		}
		return string(content)
	}

	t.Fatal("output package has no word/document.xml")
	return ""
}

// countPageBreaks counts explicit page-break runs in a document part
func countPageBreaks(documentXML string) int {
	return strings.Count(documentXML, `<w:br w:type="page">`)
}

// parseOutputDocument re-parses a composed package's document part
func parseOutputDocument(t *testing.T, pkgBytes []byte) *Document {
	t.Helper()
	documentXML := extractDocumentXML(t, pkgBytes)
	doc, err := ParseDocument(strings.NewReader(documentXML))
	if err != nil {
		t.Fatalf("failed to parse output document: %v", err)
	}
	return doc
}

// bodyText flattens every paragraph of a body into one string
func bodyText(body *Body) string {
	var b strings.Builder
	forEachParagraph(body, func(p *Paragraph) {
		b.WriteString(p.GetText())
		b.WriteString("\n")
	})
	return b.String()
}
