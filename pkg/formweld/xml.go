package formweld

import (
	"encoding/xml"
	"fmt"
	"io"
	"strings"
)

// Document represents a Word document structure
type Document struct {
	XMLName xml.Name   `xml:"document"`
	Body    *Body      `xml:"body"`
	Attrs   []xml.Attr `xml:"-"` // Preserve root element attributes (namespaces)
}

// UnmarshalXML implements custom XML unmarshaling to preserve root attributes
func (doc *Document) UnmarshalXML(d *xml.Decoder, start xml.StartElement) error {
	doc.Attrs = start.Attr

	// Use an anonymous struct to avoid recursive UnmarshalXML calls
	var temp struct {
		XMLName xml.Name `xml:"document"`
		Body    *Body    `xml:"body"`
	}

	if err := d.DecodeElement(&temp, &start); err != nil {
		return err
	}

	doc.XMLName = temp.XMLName
	doc.Body = temp.Body

	return nil
}

// BodyElement represents any element that can appear in a document body
type BodyElement interface {
	isBodyElement()
}

// Body represents the document body
type Body struct {
	// Elements maintains the order of all body elements
	Elements []BodyElement `xml:"-"`
	// SectionProperties at the end of the body (critical for Word compatibility)
	SectionProperties *RawXMLElement `xml:"-"`
}

// UnmarshalXML implements custom XML unmarshaling to preserve element order
func (b *Body) UnmarshalXML(d *xml.Decoder, start xml.StartElement) error {
	for {
		token, err := d.Token()
		if err == io.EOF {
			break
		}
		if err != nil {
			return err
		}

		switch t := token.(type) {
		case xml.StartElement:
			switch t.Name.Local {
			case "p":
				var para Paragraph
				if err := d.DecodeElement(&para, &t); err != nil {
					return err
				}
				b.Elements = append(b.Elements, &para)
			case "tbl":
				var table Table
				if err := d.DecodeElement(&table, &t); err != nil {
					return err
				}
				b.Elements = append(b.Elements, &table)
			case "sectPr":
				// Capture section properties as raw XML
				raw, err := captureRawElement(d, t)
				if err != nil {
					return err
				}
				b.SectionProperties = raw
			}
		case xml.EndElement:
			if t.Name.Local == "body" {
				return nil
			}
		}
	}

	return nil
}

// MarshalXML implements custom XML marshaling to preserve element order
func (b Body) MarshalXML(e *xml.Encoder, start xml.StartElement) error {
	start.Name = xml.Name{Local: "w:body"}
	if err := e.EncodeToken(start); err != nil {
		return err
	}

	for _, elem := range b.Elements {
		switch el := elem.(type) {
		case *Paragraph:
			if err := e.EncodeElement(el, xml.StartElement{Name: xml.Name{Local: "w:p"}}); err != nil {
				return err
			}
		case *Table:
			if err := e.EncodeElement(el, xml.StartElement{Name: xml.Name{Local: "w:tbl"}}); err != nil {
				return err
			}
		}
	}

	// Section properties are spliced in by marshalDocument to keep raw
	// namespace prefixes intact.

	return e.EncodeToken(xml.EndElement{Name: start.Name})
}

// captureRawElement reads the remainder of the element started by start and
// returns it as a RawXMLElement, with nested content serialized verbatim.
func captureRawElement(d *xml.Decoder, start xml.StartElement) (*RawXMLElement, error) {
	raw := &RawXMLElement{
		XMLName: start.Name,
		Attrs:   start.Attr,
	}

	depth := 1
	var buf strings.Builder

	for depth > 0 {
		tok, err := d.Token()
		if err != nil {
			return nil, err
		}

		switch tt := tok.(type) {
		case xml.StartElement:
			depth++
			buf.WriteString("<")
			if tt.Name.Space != "" {
				buf.WriteString(tt.Name.Space)
				buf.WriteString(":")
			}
			buf.WriteString(tt.Name.Local)
			for _, attr := range tt.Attr {
				buf.WriteString(" ")
				if attr.Name.Space != "" {
					buf.WriteString(attr.Name.Space)
					buf.WriteString(":")
				}
				buf.WriteString(attr.Name.Local)
				buf.WriteString("=\"")
				buf.WriteString(escapeXMLAttr(attr.Value))
				buf.WriteString("\"")
			}
			buf.WriteString(">")
		case xml.EndElement:
			depth--
			if depth > 0 {
				buf.WriteString("</")
				if tt.Name.Space != "" {
					buf.WriteString(tt.Name.Space)
					buf.WriteString(":")
				}
				buf.WriteString(tt.Name.Local)
				buf.WriteString(">")
			}
		case xml.CharData:
			buf.WriteString(escapeXMLText(string(tt)))
		}
	}

	raw.Content = []byte(buf.String())
	return raw, nil
}

// ParagraphContent represents anything that can appear inside a paragraph
type ParagraphContent interface {
	isParagraphContent()
}

// Paragraph represents a paragraph in the document
type Paragraph struct {
	Properties *ParagraphProperties `xml:"pPr"`
	// Content maintains the order of runs, bookmarks, and hyperlinks
	Content []ParagraphContent `xml:"-"`
}

// isBodyElement implements the BodyElement interface
func (p Paragraph) isBodyElement() {}

// UnmarshalXML implements custom XML unmarshaling to preserve element order
func (p *Paragraph) UnmarshalXML(d *xml.Decoder, start xml.StartElement) error {
	for {
		token, err := d.Token()
		if err == io.EOF {
			break
		}
		if err != nil {
			return err
		}

		switch t := token.(type) {
		case xml.StartElement:
			switch t.Name.Local {
			case "pPr":
				var props ParagraphProperties
				if err := d.DecodeElement(&props, &t); err != nil {
					return err
				}
				p.Properties = &props
			case "r":
				var run Run
				if err := d.DecodeElement(&run, &t); err != nil {
					return err
				}
				p.Content = append(p.Content, &run)
			case "hyperlink":
				var hyperlink Hyperlink
				if err := d.DecodeElement(&hyperlink, &t); err != nil {
					return err
				}
				p.Content = append(p.Content, &hyperlink)
			case "bookmarkStart":
				var bm BookmarkStart
				for _, attr := range t.Attr {
					switch attr.Name.Local {
					case "id":
						bm.ID = attr.Value
					case "name":
						bm.Name = attr.Value
					}
				}
				if err := d.Skip(); err != nil {
					return err
				}
				p.Content = append(p.Content, &bm)
			case "bookmarkEnd":
				var bm BookmarkEnd
				for _, attr := range t.Attr {
					if attr.Name.Local == "id" {
						bm.ID = attr.Value
					}
				}
				if err := d.Skip(); err != nil {
					return err
				}
				p.Content = append(p.Content, &bm)
			}
		case xml.EndElement:
			if t.Name.Local == "p" {
				return nil
			}
		}
	}

	return nil
}

// MarshalXML implements custom XML marshaling for Paragraph to ensure proper namespacing
func (p Paragraph) MarshalXML(e *xml.Encoder, start xml.StartElement) error {
	start.Name = xml.Name{Local: "w:p"}
	start.Attr = nil
	if err := e.EncodeToken(start); err != nil {
		return err
	}

	if p.Properties != nil {
		if err := e.EncodeElement(p.Properties, xml.StartElement{Name: xml.Name{Local: "w:pPr"}}); err != nil {
			return err
		}
	}

	for _, content := range p.Content {
		switch c := content.(type) {
		case *Run:
			if err := e.EncodeElement(c, xml.StartElement{Name: xml.Name{Local: "w:r"}}); err != nil {
				return err
			}
		case *Hyperlink:
			if err := e.EncodeElement(c, xml.StartElement{Name: xml.Name{Local: "w:hyperlink"}}); err != nil {
				return err
			}
		case *BookmarkStart:
			if err := e.EncodeElement(c, xml.StartElement{Name: xml.Name{Local: "w:bookmarkStart"}}); err != nil {
				return err
			}
		case *BookmarkEnd:
			if err := e.EncodeElement(c, xml.StartElement{Name: xml.Name{Local: "w:bookmarkEnd"}}); err != nil {
				return err
			}
		}
	}

	return e.EncodeToken(xml.EndElement{Name: start.Name})
}

// RunsInOrder returns the runs of the paragraph in document order, including
// runs nested inside hyperlinks.
func (p *Paragraph) RunsInOrder() []*Run {
	var runs []*Run
	for _, content := range p.Content {
		switch c := content.(type) {
		case *Run:
			runs = append(runs, c)
		case *Hyperlink:
			for i := range c.Runs {
				runs = append(runs, &c.Runs[i])
			}
		}
	}
	return runs
}

// ParagraphProperties represents paragraph formatting properties
type ParagraphProperties struct {
	Style       *Style       `xml:"pStyle"`
	Alignment   *Alignment   `xml:"jc"`
	Indentation *Indentation `xml:"ind"`
	Spacing     *Spacing     `xml:"spacing"`
}

// MarshalXML emits paragraph properties with w: prefixes
func (pp ParagraphProperties) MarshalXML(e *xml.Encoder, start xml.StartElement) error {
	start.Name = xml.Name{Local: "w:pPr"}
	start.Attr = nil
	if err := e.EncodeToken(start); err != nil {
		return err
	}

	if pp.Style != nil {
		if err := encodeValElement(e, "w:pStyle", pp.Style.Val); err != nil {
			return err
		}
	}
	if pp.Alignment != nil {
		if err := encodeValElement(e, "w:jc", pp.Alignment.Val); err != nil {
			return err
		}
	}
	if pp.Indentation != nil {
		if err := e.EncodeElement(struct{}{}, xml.StartElement{
			Name: xml.Name{Local: "w:ind"},
			Attr: []xml.Attr{
				{Name: xml.Name{Local: "w:left"}, Value: fmt.Sprintf("%d", pp.Indentation.Left)},
				{Name: xml.Name{Local: "w:right"}, Value: fmt.Sprintf("%d", pp.Indentation.Right)},
			},
		}); err != nil {
			return err
		}
	}
	if pp.Spacing != nil {
		if err := e.EncodeElement(struct{}{}, xml.StartElement{
			Name: xml.Name{Local: "w:spacing"},
			Attr: []xml.Attr{
				{Name: xml.Name{Local: "w:before"}, Value: fmt.Sprintf("%d", pp.Spacing.Before)},
				{Name: xml.Name{Local: "w:after"}, Value: fmt.Sprintf("%d", pp.Spacing.After)},
			},
		}); err != nil {
			return err
		}
	}

	return e.EncodeToken(xml.EndElement{Name: start.Name})
}

// encodeValElement writes a self-closing element carrying a single w:val attribute
func encodeValElement(e *xml.Encoder, name, val string) error {
	return e.EncodeElement(struct{}{}, xml.StartElement{
		Name: xml.Name{Local: name},
		Attr: []xml.Attr{{Name: xml.Name{Local: "w:val"}, Value: val}},
	})
}

// Run represents a run of text with common properties
type Run struct {
	Properties *RunProperties `xml:"rPr"`
	Text       *Text          `xml:"t"`
	Break      *Break         `xml:"br"`
	// RawXML stores unparsed XML elements (like drawings) to preserve them
	RawXML []RawXMLElement `xml:"-"`
}

// isParagraphContent implements the ParagraphContent interface
func (r Run) isParagraphContent() {}

// UnmarshalXML implements custom XML unmarshaling to preserve unknown elements
func (r *Run) UnmarshalXML(d *xml.Decoder, start xml.StartElement) error {
	for {
		token, err := d.Token()
		if err == io.EOF {
			break
		}
		if err != nil {
			return err
		}

		switch t := token.(type) {
		case xml.StartElement:
			switch t.Name.Local {
			case "rPr":
				var props RunProperties
				if err := d.DecodeElement(&props, &t); err != nil {
					return err
				}
				r.Properties = &props
			case "t":
				var text Text
				if err := d.DecodeElement(&text, &t); err != nil {
					return err
				}
				r.Text = &text
			case "br":
				var br Break
				if err := d.DecodeElement(&br, &t); err != nil {
					return err
				}
				r.Break = &br
			default:
				// Preserve unknown elements (drawings, tabs, field codes) as raw XML
				raw, err := captureRawElement(d, t)
				if err != nil {
					return err
				}
				r.RawXML = append(r.RawXML, *raw)
			}
		case xml.EndElement:
			if t.Name.Local == "r" {
				return nil
			}
		}
	}

	return nil
}

// MarshalXML implements custom XML marshaling for Run
func (r Run) MarshalXML(e *xml.Encoder, start xml.StartElement) error {
	start.Name = xml.Name{Local: "w:r"}
	start.Attr = nil
	if err := e.EncodeToken(start); err != nil {
		return err
	}

	if r.Properties != nil {
		if err := e.EncodeElement(r.Properties, xml.StartElement{Name: xml.Name{Local: "w:rPr"}}); err != nil {
			return err
		}
	}

	if r.Break != nil {
		if err := e.EncodeElement(r.Break, xml.StartElement{Name: xml.Name{Local: "w:br"}}); err != nil {
			return err
		}
	}

	if r.Text != nil {
		if err := e.EncodeElement(r.Text, xml.StartElement{Name: xml.Name{Local: "w:t"}}); err != nil {
			return err
		}
	}

	// RawXML elements are re-inserted by marshalDocument via markers.

	return e.EncodeToken(xml.EndElement{Name: start.Name})
}

// GetText returns the text content of a run
func (r *Run) GetText() string {
	if r.Text == nil {
		return ""
	}
	return r.Text.Content
}

// RunProperties represents run formatting properties
type RunProperties struct {
	Bold          *Empty          `xml:"b"`
	Italic        *Empty          `xml:"i"`
	Underline     *UnderlineStyle `xml:"u"`
	Strike        *Empty          `xml:"strike"`
	VerticalAlign *VerticalAlign  `xml:"vertAlign"`
	Color         *Color          `xml:"color"`
	Size          *Size           `xml:"sz"`
	Font          *Font           `xml:"rFonts"`
}

// MarshalXML emits run properties with w: prefixes
func (rp RunProperties) MarshalXML(e *xml.Encoder, start xml.StartElement) error {
	start.Name = xml.Name{Local: "w:rPr"}
	start.Attr = nil
	if err := e.EncodeToken(start); err != nil {
		return err
	}

	if rp.Bold != nil {
		if err := e.EncodeElement(struct{}{}, xml.StartElement{Name: xml.Name{Local: "w:b"}}); err != nil {
			return err
		}
	}
	if rp.Italic != nil {
		if err := e.EncodeElement(struct{}{}, xml.StartElement{Name: xml.Name{Local: "w:i"}}); err != nil {
			return err
		}
	}
	if rp.Underline != nil {
		if err := encodeValElement(e, "w:u", rp.Underline.Val); err != nil {
			return err
		}
	}
	if rp.Strike != nil {
		if err := e.EncodeElement(struct{}{}, xml.StartElement{Name: xml.Name{Local: "w:strike"}}); err != nil {
			return err
		}
	}
	if rp.VerticalAlign != nil {
		if err := encodeValElement(e, "w:vertAlign", rp.VerticalAlign.Val); err != nil {
			return err
		}
	}
	if rp.Color != nil {
		if err := encodeValElement(e, "w:color", rp.Color.Val); err != nil {
			return err
		}
	}
	if rp.Size != nil {
		if err := encodeValElement(e, "w:sz", fmt.Sprintf("%d", rp.Size.Val)); err != nil {
			return err
		}
	}
	if rp.Font != nil {
		if err := e.EncodeElement(struct{}{}, xml.StartElement{
			Name: xml.Name{Local: "w:rFonts"},
			Attr: []xml.Attr{{Name: xml.Name{Local: "w:ascii"}, Value: rp.Font.ASCII}},
		}); err != nil {
			return err
		}
	}

	return e.EncodeToken(xml.EndElement{Name: start.Name})
}

// Text represents text content
type Text struct {
	XMLName xml.Name `xml:"t"`
	Space   string   `xml:"space,attr"`
	Content string   `xml:",chardata"`
}

// MarshalXML writes w:t, preserving significant whitespace
func (t Text) MarshalXML(e *xml.Encoder, start xml.StartElement) error {
	start.Name = xml.Name{Local: "w:t"}
	start.Attr = nil
	if t.Space != "" || t.Content != strings.TrimSpace(t.Content) {
		start.Attr = append(start.Attr, xml.Attr{
			Name:  xml.Name{Local: "xml:space"},
			Value: "preserve",
		})
	}
	return e.EncodeElement(t.Content, start)
}

// Break represents a line or page break
type Break struct {
	Type string `xml:"type,attr,omitempty"`
}

// MarshalXML implements xml.Marshaler to ensure Break is self-closing
func (b *Break) MarshalXML(e *xml.Encoder, start xml.StartElement) error {
	start.Name = xml.Name{Local: "w:br"}
	start.Attr = nil
	if b.Type != "" {
		start.Attr = append(start.Attr, xml.Attr{
			Name:  xml.Name{Local: "w:type"},
			Value: b.Type,
		})
	}
	return e.EncodeElement(struct{}{}, start)
}

// BookmarkStart marks the beginning of a named bookmark range
type BookmarkStart struct {
	ID   string
	Name string
}

// isParagraphContent implements the ParagraphContent interface
func (b BookmarkStart) isParagraphContent() {}

// MarshalXML writes a self-closing w:bookmarkStart
func (b *BookmarkStart) MarshalXML(e *xml.Encoder, start xml.StartElement) error {
	start.Name = xml.Name{Local: "w:bookmarkStart"}
	start.Attr = []xml.Attr{
		{Name: xml.Name{Local: "w:id"}, Value: b.ID},
		{Name: xml.Name{Local: "w:name"}, Value: b.Name},
	}
	return e.EncodeElement(struct{}{}, start)
}

// BookmarkEnd marks the end of a bookmark range
type BookmarkEnd struct {
	ID string
}

// isParagraphContent implements the ParagraphContent interface
func (b BookmarkEnd) isParagraphContent() {}

// MarshalXML writes a self-closing w:bookmarkEnd
func (b *BookmarkEnd) MarshalXML(e *xml.Encoder, start xml.StartElement) error {
	start.Name = xml.Name{Local: "w:bookmarkEnd"}
	start.Attr = []xml.Attr{
		{Name: xml.Name{Local: "w:id"}, Value: b.ID},
	}
	return e.EncodeElement(struct{}{}, start)
}

// Hyperlink represents a hyperlink wrapping one or more runs
type Hyperlink struct {
	ID      string `xml:"id,attr"`
	History string `xml:"history,attr,omitempty"`
	Runs    []Run  `xml:"r"`
}

// isParagraphContent implements the ParagraphContent interface
func (h Hyperlink) isParagraphContent() {}

// MarshalXML writes w:hyperlink with its relationship ID
func (h Hyperlink) MarshalXML(e *xml.Encoder, start xml.StartElement) error {
	start.Name = xml.Name{Local: "w:hyperlink"}
	start.Attr = nil
	if h.ID != "" {
		start.Attr = append(start.Attr, xml.Attr{Name: xml.Name{Local: "r:id"}, Value: h.ID})
	}
	if h.History != "" {
		start.Attr = append(start.Attr, xml.Attr{Name: xml.Name{Local: "w:history"}, Value: h.History})
	}
	if err := e.EncodeToken(start); err != nil {
		return err
	}
	for i := range h.Runs {
		if err := e.EncodeElement(&h.Runs[i], xml.StartElement{Name: xml.Name{Local: "w:r"}}); err != nil {
			return err
		}
	}
	return e.EncodeToken(xml.EndElement{Name: start.Name})
}

// RawXMLElement preserves an element this engine does not model
type RawXMLElement struct {
	XMLName xml.Name
	Attrs   []xml.Attr
	Content []byte
}

// Table represents a table in the document
type Table struct {
	Properties *TableProperties `xml:"tblPr"`
	Grid       *TableGrid       `xml:"tblGrid"`
	Rows       []TableRow       `xml:"tr"`
}

// isBodyElement implements the BodyElement interface
func (t Table) isBodyElement() {}

// MarshalXML writes w:tbl with its grid and rows
func (t Table) MarshalXML(e *xml.Encoder, start xml.StartElement) error {
	start.Name = xml.Name{Local: "w:tbl"}
	start.Attr = nil
	if err := e.EncodeToken(start); err != nil {
		return err
	}

	if t.Properties != nil && t.Properties.Style != nil {
		if err := e.EncodeToken(xml.StartElement{Name: xml.Name{Local: "w:tblPr"}}); err != nil {
			return err
		}
		if err := encodeValElement(e, "w:tblStyle", t.Properties.Style.Val); err != nil {
			return err
		}
		if err := e.EncodeToken(xml.EndElement{Name: xml.Name{Local: "w:tblPr"}}); err != nil {
			return err
		}
	}

	if t.Grid != nil {
		if err := e.EncodeToken(xml.StartElement{Name: xml.Name{Local: "w:tblGrid"}}); err != nil {
			return err
		}
		for _, col := range t.Grid.Columns {
			if err := e.EncodeElement(struct{}{}, xml.StartElement{
				Name: xml.Name{Local: "w:gridCol"},
				Attr: []xml.Attr{{Name: xml.Name{Local: "w:w"}, Value: fmt.Sprintf("%d", col.Width)}},
			}); err != nil {
				return err
			}
		}
		if err := e.EncodeToken(xml.EndElement{Name: xml.Name{Local: "w:tblGrid"}}); err != nil {
			return err
		}
	}

	for i := range t.Rows {
		if err := e.EncodeElement(&t.Rows[i], xml.StartElement{Name: xml.Name{Local: "w:tr"}}); err != nil {
			return err
		}
	}

	return e.EncodeToken(xml.EndElement{Name: start.Name})
}

// TableProperties represents table formatting properties
type TableProperties struct {
	Style *Style `xml:"tblStyle"`
}

// TableGrid represents table column definitions
type TableGrid struct {
	Columns []GridColumn `xml:"gridCol"`
}

// GridColumn represents a table column
type GridColumn struct {
	Width int `xml:"w,attr"`
}

// TableRow represents a row in a table
type TableRow struct {
	Cells []TableCell `xml:"tc"`
}

// MarshalXML writes w:tr
func (tr TableRow) MarshalXML(e *xml.Encoder, start xml.StartElement) error {
	start.Name = xml.Name{Local: "w:tr"}
	start.Attr = nil
	if err := e.EncodeToken(start); err != nil {
		return err
	}
	for i := range tr.Cells {
		if err := e.EncodeElement(&tr.Cells[i], xml.StartElement{Name: xml.Name{Local: "w:tc"}}); err != nil {
			return err
		}
	}
	return e.EncodeToken(xml.EndElement{Name: start.Name})
}

// TableCell represents a cell in a table
type TableCell struct {
	Paragraphs []Paragraph `xml:"p"`
}

// MarshalXML writes w:tc
func (tc TableCell) MarshalXML(e *xml.Encoder, start xml.StartElement) error {
	start.Name = xml.Name{Local: "w:tc"}
	start.Attr = nil
	if err := e.EncodeToken(start); err != nil {
		return err
	}
	for i := range tc.Paragraphs {
		if err := e.EncodeElement(&tc.Paragraphs[i], xml.StartElement{Name: xml.Name{Local: "w:p"}}); err != nil {
			return err
		}
	}
	return e.EncodeToken(xml.EndElement{Name: start.Name})
}

// GetText returns the concatenated text of all paragraphs in a cell
func (tc *TableCell) GetText() string {
	var texts []string
	for i := range tc.Paragraphs {
		if text := tc.Paragraphs[i].GetText(); text != "" {
			texts = append(texts, text)
		}
	}
	return strings.Join(texts, "\n")
}

// Empty represents an empty element (used for boolean properties)
type Empty struct{}

// Style represents a style reference
type Style struct {
	Val string `xml:"val,attr"`
}

// Alignment represents text alignment
type Alignment struct {
	Val string `xml:"val,attr"`
}

// Indentation represents paragraph indentation
type Indentation struct {
	Left  int `xml:"left,attr"`
	Right int `xml:"right,attr"`
}

// Spacing represents paragraph spacing
type Spacing struct {
	Before int `xml:"before,attr"`
	After  int `xml:"after,attr"`
}

// Color represents text color
type Color struct {
	Val string `xml:"val,attr"`
}

// Size represents font size
type Size struct {
	Val int `xml:"val,attr"`
}

// Font represents font information
type Font struct {
	ASCII string `xml:"ascii,attr"`
}

// UnderlineStyle represents underline formatting
type UnderlineStyle struct {
	Val string `xml:"val,attr"`
}

// VerticalAlign represents vertical text alignment (superscript/subscript)
type VerticalAlign struct {
	Val string `xml:"val,attr"`
}

// ParseDocument parses a Word document XML
func ParseDocument(r io.Reader) (*Document, error) {
	decoder := xml.NewDecoder(r)

	var doc Document
	if err := decoder.Decode(&doc); err != nil {
		return nil, fmt.Errorf("failed to parse document: %w", err)
	}

	return &doc, nil
}

// GetText returns the concatenated text of all runs in a paragraph
func (p *Paragraph) GetText() string {
	var b strings.Builder
	for _, run := range p.RunsInOrder() {
		b.WriteString(run.GetText())
	}
	return b.String()
}

// BookmarkNames returns the names of all bookmarks defined in the document,
// in document order. Reserved editor bookmarks (e.g. _GoBack) are included;
// filtering is the scanner's concern.
func (doc *Document) BookmarkNames() []string {
	if doc.Body == nil {
		return nil
	}

	var names []string
	forEachParagraph(doc.Body, func(p *Paragraph) {
		for _, content := range p.Content {
			if bm, ok := content.(*BookmarkStart); ok {
				names = append(names, bm.Name)
			}
		}
	})
	return names
}

// forEachParagraph visits every paragraph of a body, including those nested
// in table cells.
func forEachParagraph(body *Body, visit func(*Paragraph)) {
	for _, elem := range body.Elements {
		switch el := elem.(type) {
		case *Paragraph:
			visit(el)
		case *Table:
			for i := range el.Rows {
				for j := range el.Rows[i].Cells {
					for k := range el.Rows[i].Cells[j].Paragraphs {
						visit(&el.Rows[i].Cells[j].Paragraphs[k])
					}
				}
			}
		}
	}
}
