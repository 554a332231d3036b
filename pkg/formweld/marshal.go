package formweld

import (
	"bytes"
	"encoding/xml"
	"fmt"
	"strings"
)

// wordNamespacePrefixes maps OOXML namespace URIs to their conventional prefixes
var wordNamespacePrefixes = map[string]string{
	"http://schemas.openxmlformats.org/wordprocessingml/2006/main":           "w",
	"http://schemas.openxmlformats.org/officeDocument/2006/relationships":    "r",
	"http://schemas.openxmlformats.org/officeDocument/2006/math":             "m",
	"http://www.w3.org/XML/1998/namespace":                                   "xml",
	"http://schemas.openxmlformats.org/drawingml/2006/wordprocessingDrawing": "wp",
	"http://schemas.openxmlformats.org/drawingml/2006/main":                  "a",
	"http://schemas.openxmlformats.org/drawingml/2006/picture":               "pic",
	"http://schemas.microsoft.com/office/word/2010/wordprocessingDrawing":    "wp14",
	"http://schemas.microsoft.com/office/drawing/2010/main":                  "a14",
	"http://schemas.openxmlformats.org/markup-compatibility/2006":            "mc",
	"http://schemas.microsoft.com/office/word/2010/wordml":                   "w14",
	"http://schemas.microsoft.com/office/word/2012/wordml":                   "w15",
	"http://schemas.microsoft.com/office/word/2010/wordprocessingShape":      "wps",
	"http://schemas.microsoft.com/office/word/2010/wordprocessingCanvas":     "wpc",
	"http://schemas.microsoft.com/office/word/2010/wordprocessingGroup":      "wpg",
	"http://schemas.microsoft.com/office/word/2010/wordprocessingInk":        "wpi",
	"http://schemas.microsoft.com/office/word/2006/wordml":                   "wne",
	"urn:schemas-microsoft-com:vml":                                          "v",
	"urn:schemas-microsoft-com:office:office":                                "o",
	"urn:schemas-microsoft-com:office:word":                                  "w10",
}

// namespaceURIToPrefix converts a full namespace URI to its prefix
func namespaceURIToPrefix(uri string) string {
	if prefix, ok := wordNamespacePrefixes[uri]; ok {
		return prefix
	}
	// Return the URI as-is if no mapping found (xmlns declarations hit this path)
	return uri
}

// prefixNamespaceURIs rewrites full-URI qualified names captured in raw XML
// back to their conventional prefixes, for both element and attribute names.
func prefixNamespaceURIs(content string) string {
	for uri, prefix := range wordNamespacePrefixes {
		content = strings.ReplaceAll(content, uri+":", prefix+":")
	}
	return content
}

var xmlTextEscaper = strings.NewReplacer(
	"&", "&amp;",
	"<", "&lt;",
	">", "&gt;",
)

var xmlAttrEscaper = strings.NewReplacer(
	"&", "&amp;",
	"<", "&lt;",
	">", "&gt;",
	"\"", "&quot;",
	"'", "&apos;",
)

// escapeXMLText escapes character data for insertion into markup
func escapeXMLText(s string) string {
	return xmlTextEscaper.Replace(s)
}

// escapeXMLAttr escapes an attribute value for insertion into markup
func escapeXMLAttr(s string) string {
	return xmlAttrEscaper.Replace(s)
}

// marshalDocument serializes a document tree back to word/document.xml bytes.
// The input tree is not modified; raw passthrough elements (drawings etc.)
// are re-inserted after encoding via text markers, and the body's section
// properties are spliced in before the closing body tag.
func marshalDocument(doc *Document) ([]byte, error) {
	if doc == nil || doc.Body == nil {
		return nil, NewMalformedDocumentError("", "document has no body")
	}

	// Work on a clone: marker insertion mutates runs.
	work := cloneDocument(doc)

	rawXMLMap := make(map[string][]byte)
	markerIndex := 0

	forEachParagraph(work.Body, func(p *Paragraph) {
		for _, run := range p.RunsInOrder() {
			if len(run.RawXML) == 0 {
				continue
			}
			for _, raw := range run.RawXML {
				marker := fmt.Sprintf("__RAW_XML_MARKER_%d__", markerIndex)
				rawXMLMap[marker] = raw.Content
				markerIndex++

				if run.Text == nil {
					run.Text = &Text{Content: marker}
				} else {
					run.Text.Content += marker
				}
			}
			run.RawXML = nil
		}
	})

	var bodyBuf bytes.Buffer
	encoder := xml.NewEncoder(&bodyBuf)
	if err := encoder.Encode(work.Body); err != nil {
		return nil, NewDocumentError("marshal", "document body", err)
	}
	if err := encoder.Flush(); err != nil {
		return nil, NewDocumentError("marshal", "document body", err)
	}

	bodyXML := bodyBuf.String()

	// Replace markers with their original raw XML. The marker's enclosing
	// <w:t> wrapper is removed so drawings stay siblings of text, not children.
	for marker, rawXML := range rawXMLMap {
		cleaned := prefixNamespaceURIs(string(rawXML))

		textWithMarker := fmt.Sprintf("<w:t>%s</w:t>", marker)
		textWithMarkerPreserve := fmt.Sprintf(`<w:t xml:space="preserve">%s</w:t>`, marker)

		switch {
		case strings.Contains(bodyXML, textWithMarker):
			bodyXML = strings.ReplaceAll(bodyXML, textWithMarker, cleaned)
		case strings.Contains(bodyXML, textWithMarkerPreserve):
			bodyXML = strings.ReplaceAll(bodyXML, textWithMarkerPreserve, cleaned)
		default:
			bodyXML = strings.ReplaceAll(bodyXML, marker, cleaned)
		}
	}

	// Splice section properties in before </w:body>
	if work.Body.SectionProperties != nil {
		bodyEndTag := "</w:body>"
		bodyEndIdx := strings.LastIndex(bodyXML, bodyEndTag)
		if bodyEndIdx >= 0 {
			var sectBuf bytes.Buffer
			sectBuf.WriteString("<w:sectPr")
			for _, attr := range work.Body.SectionProperties.Attrs {
				sectBuf.WriteString(" w:")
				sectBuf.WriteString(attr.Name.Local)
				sectBuf.WriteString(`="`)
				sectBuf.WriteString(escapeXMLAttr(attr.Value))
				sectBuf.WriteString(`"`)
			}
			sectBuf.WriteString(">")
			sectBuf.WriteString(prefixNamespaceURIs(string(work.Body.SectionProperties.Content)))
			sectBuf.WriteString("</w:sectPr>")

			bodyXML = bodyXML[:bodyEndIdx] + sectBuf.String() + bodyXML[bodyEndIdx:]
		}
	}

	var buf bytes.Buffer
	buf.WriteString(`<?xml version="1.0" encoding="UTF-8" standalone="yes"?>`)
	buf.WriteString("\n")
	buf.WriteString("<w:document")

	if len(work.Attrs) > 0 {
		for _, attr := range work.Attrs {
			// Skip the default xmlns declaration since we're using w:document
			if attr.Name.Local == "xmlns" && attr.Name.Space == "" {
				continue
			}
			buf.WriteString(" ")
			if attr.Name.Space != "" {
				buf.WriteString(namespaceURIToPrefix(attr.Name.Space))
				buf.WriteString(":")
			}
			buf.WriteString(attr.Name.Local)
			buf.WriteString(`="`)
			buf.WriteString(escapeXMLAttr(attr.Value))
			buf.WriteString(`"`)
		}
	} else {
		// Fallback to minimal namespaces if no attributes were preserved
		buf.WriteString(` xmlns:w="http://schemas.openxmlformats.org/wordprocessingml/2006/main"`)
		buf.WriteString(` xmlns:r="http://schemas.openxmlformats.org/officeDocument/2006/relationships"`)
	}

	buf.WriteString(">")
	buf.WriteString(bodyXML)
	buf.WriteString("</w:document>")

	return buf.Bytes(), nil
}
