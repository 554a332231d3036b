package formweld

import "encoding/xml"

// pageBreakParagraph builds the separator inserted between rendered rows
func pageBreakParagraph() *Paragraph {
	return &Paragraph{
		Content: []ParagraphContent{
			&Run{Break: &Break{Type: "page"}},
		},
	}
}

// Compose merges every row of the data set into one composite document: the
// template body is rendered once per row, the rendered fragments are
// concatenated with a page break between consecutive fragments (none after
// the last), and the result is packaged using the template's original parts.
//
// The pipeline is linear: validate, render each row, concatenate, serialize.
// Any single row failing aborts the whole composition; no partial output is
// ever returned. Rows beyond the configured row limit are dropped, not an
// error. The template itself is never modified.
func (e *Engine) Compose(tmpl *TemplateDocument, mapping *MappingStore, data *DataSet) ([]byte, error) {
	rows, err := e.validateCompose(tmpl, data)
	if err != nil {
		return nil, err
	}

	fragments, err := renderEach(tmpl, mapping, rows)
	if err != nil {
		return nil, err
	}

	composite := concatenate(tmpl.Document, fragments)

	documentXML, err := marshalDocument(composite)
	if err != nil {
		return nil, NewDocumentError("serialize", tmpl.Name, err)
	}

	output, err := writePackage(tmpl.Source(), documentXML)
	if err != nil {
		return nil, NewDocumentError("package", tmpl.Name, err)
	}

	Info("composed %s: %d rows merged, %d page breaks", tmpl.Name, len(fragments), len(fragments)-1)

	return output, nil
}

// Fill renders a single row into the template and packages the result. It is
// the one-document-per-row counterpart to Compose.
func (e *Engine) Fill(tmpl *TemplateDocument, mapping *MappingStore, values map[string]string) ([]byte, error) {
	if err := validateTemplate(tmpl); err != nil {
		return nil, err
	}

	fragment, err := RenderRow(tmpl.Document.Body, mapping, values)
	if err != nil {
		return nil, err
	}

	composite := concatenate(tmpl.Document, []RenderedRow{{RowIndex: 0, Fragment: fragment}})

	documentXML, err := marshalDocument(composite)
	if err != nil {
		return nil, NewDocumentError("serialize", tmpl.Name, err)
	}

	return writePackage(tmpl.Source(), documentXML)
}

func validateTemplate(tmpl *TemplateDocument) error {
	if tmpl == nil || tmpl.Document == nil {
		return NewMalformedDocumentError("", "no template loaded")
	}
	if tmpl.Document.Body == nil {
		return NewMalformedDocumentError(tmpl.Name, "document has no body")
	}
	return nil
}

// validateCompose checks the compose inputs and returns the row maps to
// render, truncated to the engine's row limit.
func (e *Engine) validateCompose(tmpl *TemplateDocument, data *DataSet) ([]map[string]string, error) {
	if err := validateTemplate(tmpl); err != nil {
		return nil, err
	}
	if data == nil || len(data.Rows) == 0 {
		return nil, NewEmptyDataSetError("compose")
	}

	limit := e.config.RowLimit
	if limit < 1 {
		limit = DefaultRowLimit
	}

	rows := data.RowMaps()
	if len(rows) > limit {
		Warn("row limit exceeded: %d rows supplied, merging first %d", len(rows), limit)
		rows = rows[:limit]
	}

	return rows, nil
}

// renderEach renders every row in order, aborting on the first failure
func renderEach(tmpl *TemplateDocument, mapping *MappingStore, rows []map[string]string) ([]RenderedRow, error) {
	fragments := make([]RenderedRow, 0, len(rows))
	for i, values := range rows {
		fragment, err := RenderRow(tmpl.Document.Body, mapping, values)
		if err != nil {
			return nil, WithContext(err, "render row", map[string]interface{}{
				"row":      i,
				"document": tmpl.Name,
			})
		}
		fragments = append(fragments, RenderedRow{RowIndex: i, Fragment: fragment})
	}
	return fragments, nil
}

// concatenate assembles the composite document: the template's root
// attributes and section properties form the skeleton, the fragments' body
// elements follow in row order with a page break between consecutive
// fragments. The section properties appear exactly once, never per fragment.
func concatenate(template *Document, fragments []RenderedRow) *Document {
	composite := &Document{
		XMLName: template.XMLName,
		Body:    &Body{},
	}
	if template.Attrs != nil {
		composite.Attrs = append([]xml.Attr(nil), template.Attrs...)
	}

	for i, fragment := range fragments {
		if i > 0 {
			composite.Body.Elements = append(composite.Body.Elements, pageBreakParagraph())
		}
		composite.Body.Elements = append(composite.Body.Elements, fragment.Fragment.Elements...)
	}

	if template.Body != nil && template.Body.SectionProperties != nil {
		sectPr := cloneRawXMLElement(template.Body.SectionProperties)
		composite.Body.SectionProperties = &sectPr
	}

	return composite
}
