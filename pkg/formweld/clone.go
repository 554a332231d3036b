package formweld

import "encoding/xml"

// cloneDocument creates a deep copy of a Document
func cloneDocument(doc *Document) *Document {
	if doc == nil {
		return nil
	}

	cloned := &Document{
		XMLName: doc.XMLName,
	}

	if doc.Attrs != nil {
		cloned.Attrs = make([]xml.Attr, len(doc.Attrs))
		copy(cloned.Attrs, doc.Attrs)
	}

	if doc.Body != nil {
		cloned.Body = cloneBody(doc.Body)
	}

	return cloned
}

// cloneBody creates a deep copy of a Body
func cloneBody(body *Body) *Body {
	if body == nil {
		return nil
	}

	cloned := &Body{}

	if body.Elements != nil {
		cloned.Elements = make([]BodyElement, len(body.Elements))
		for i, elem := range body.Elements {
			switch e := elem.(type) {
			case *Paragraph:
				cloned.Elements[i] = cloneParagraph(e)
			case *Table:
				cloned.Elements[i] = cloneTable(e)
			default:
				cloned.Elements[i] = elem
			}
		}
	}

	if body.SectionProperties != nil {
		clonedSP := cloneRawXMLElement(body.SectionProperties)
		cloned.SectionProperties = &clonedSP
	}

	return cloned
}

// cloneParagraph creates a deep copy of a Paragraph
func cloneParagraph(para *Paragraph) *Paragraph {
	if para == nil {
		return nil
	}

	cloned := &Paragraph{
		Properties: para.Properties, // Properties can be shallow copied
	}

	if para.Content != nil {
		cloned.Content = make([]ParagraphContent, len(para.Content))
		for i, item := range para.Content {
			switch c := item.(type) {
			case *Run:
				cloned.Content[i] = cloneRun(c)
			case *Hyperlink:
				cloned.Content[i] = cloneHyperlink(c)
			case *BookmarkStart:
				bm := *c
				cloned.Content[i] = &bm
			case *BookmarkEnd:
				bm := *c
				cloned.Content[i] = &bm
			default:
				cloned.Content[i] = item
			}
		}
	}

	return cloned
}

// cloneRun creates a deep copy of a Run. Text is deep-copied because
// substitution rewrites it in place.
func cloneRun(run *Run) *Run {
	if run == nil {
		return nil
	}

	cloned := &Run{
		Properties: run.Properties, // Shallow copy is fine
		Break:      run.Break,      // Shallow copy is fine
	}

	if run.Text != nil {
		text := *run.Text
		cloned.Text = &text
	}

	if run.RawXML != nil {
		cloned.RawXML = make([]RawXMLElement, len(run.RawXML))
		for i, raw := range run.RawXML {
			cloned.RawXML[i] = cloneRawXMLElement(&raw)
		}
	}

	return cloned
}

// cloneRawXMLElement creates a deep copy of a RawXMLElement
func cloneRawXMLElement(raw *RawXMLElement) RawXMLElement {
	if raw == nil {
		return RawXMLElement{}
	}

	cloned := RawXMLElement{
		XMLName: raw.XMLName,
	}

	if raw.Content != nil {
		cloned.Content = make([]byte, len(raw.Content))
		copy(cloned.Content, raw.Content)
	}

	if raw.Attrs != nil {
		cloned.Attrs = make([]xml.Attr, len(raw.Attrs))
		copy(cloned.Attrs, raw.Attrs)
	}

	return cloned
}

// cloneHyperlink creates a deep copy of a Hyperlink
func cloneHyperlink(link *Hyperlink) *Hyperlink {
	if link == nil {
		return nil
	}

	cloned := &Hyperlink{
		ID:      link.ID,
		History: link.History,
	}

	if link.Runs != nil {
		cloned.Runs = make([]Run, len(link.Runs))
		for i := range link.Runs {
			cloned.Runs[i] = *cloneRun(&link.Runs[i])
		}
	}

	return cloned
}

// cloneTable creates a deep copy of a Table
func cloneTable(table *Table) *Table {
	if table == nil {
		return nil
	}

	cloned := &Table{
		Properties: table.Properties, // Shallow copy is fine
		Grid:       table.Grid,       // Shallow copy is fine
	}

	if table.Rows != nil {
		cloned.Rows = make([]TableRow, len(table.Rows))
		for i := range table.Rows {
			cloned.Rows[i] = cloneTableRow(&table.Rows[i])
		}
	}

	return cloned
}

// cloneTableRow creates a deep copy of a TableRow
func cloneTableRow(row *TableRow) TableRow {
	var cloned TableRow

	if row.Cells != nil {
		cloned.Cells = make([]TableCell, len(row.Cells))
		for i := range row.Cells {
			cloned.Cells[i] = cloneTableCell(&row.Cells[i])
		}
	}

	return cloned
}

// cloneTableCell creates a deep copy of a TableCell
func cloneTableCell(cell *TableCell) TableCell {
	var cloned TableCell

	if cell.Paragraphs != nil {
		cloned.Paragraphs = make([]Paragraph, len(cell.Paragraphs))
		for i := range cell.Paragraphs {
			cloned.Paragraphs[i] = *cloneParagraph(&cell.Paragraphs[i])
		}
	}

	return cloned
}
