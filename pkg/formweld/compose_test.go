package formweld

import (
	"fmt"
	"reflect"
	"strings"
	"testing"
)

func TestComposeEndToEnd(t *testing.T) {
	tmpl := loadTestTemplate(t, paragraphXML("Customer {{Name}} owes {{Amount}}."))

	store := NewMappingStore()
	store.Set("Name", "Name")
	store.Set("Amount", "Amount")

	data := &DataSet{
		Headers: []string{"Name", "Amount"},
		Rows: [][]string{
			{"Alice", "100"},
			{"Bob", "200"},
		},
	}

	output, err := New().Compose(tmpl, store, data)
	if err != nil {
		t.Fatalf("Compose failed: %v", err)
	}

	documentXML := extractDocumentXML(t, output)
	doc := parseOutputDocument(t, output)
	text := bodyText(doc.Body)

	for _, want := range []string{"Alice", "100", "Bob", "200"} {
		if !strings.Contains(text, want) {
			t.Errorf("output missing %q: %q", want, text)
		}
	}

	// First section before the break, second after.
	if strings.Index(text, "Alice") > strings.Index(text, "Bob") {
		t.Errorf("rows out of order: %q", text)
	}
	if got := countPageBreaks(documentXML); got != 1 {
		t.Errorf("expected exactly 1 page break, got %d", got)
	}
}

func TestComposePageBreakLaw(t *testing.T) {
	for _, rows := range []int{1, 2, 3, 7} {
		t.Run(fmt.Sprintf("%d_rows", rows), func(t *testing.T) {
			tmpl := loadTestTemplate(t, paragraphXML("Hello {{Name}}"))

			store := NewMappingStore()
			store.Set("Name", "Name")

			data := &DataSet{Headers: []string{"Name"}}
			for i := 0; i < rows; i++ {
				data.Rows = append(data.Rows, []string{fmt.Sprintf("person-%d", i)})
			}

			output, err := New().Compose(tmpl, store, data)
			if err != nil {
				t.Fatalf("Compose failed: %v", err)
			}

			documentXML := extractDocumentXML(t, output)
			if got := countPageBreaks(documentXML); got != rows-1 {
				t.Errorf("%d rows: expected %d page breaks, got %d", rows, rows-1, got)
			}
		})
	}
}

func TestComposeRowLimitTruncation(t *testing.T) {
	tmpl := loadTestTemplate(t, paragraphXML("Entry {{Name}};"))

	store := NewMappingStore()
	store.Set("Name", "Name")

	data := &DataSet{Headers: []string{"Name"}}
	for i := 0; i < 150; i++ {
		data.Rows = append(data.Rows, []string{fmt.Sprintf("person-%d", i)})
	}

	output, err := New().Compose(tmpl, store, data)
	if err != nil {
		t.Fatalf("Compose failed: %v", err)
	}

	documentXML := extractDocumentXML(t, output)
	doc := parseOutputDocument(t, output)
	text := bodyText(doc.Body)

	if got := strings.Count(text, "person-"); got != 100 {
		t.Errorf("expected 100 rendered sections, got %d", got)
	}
	if got := countPageBreaks(documentXML); got != 99 {
		t.Errorf("expected 99 page breaks, got %d", got)
	}
	if strings.Contains(text, "person-100;") {
		t.Errorf("rows beyond the limit were rendered")
	}
}

func TestComposeConfiguredRowLimit(t *testing.T) {
	tmpl := loadTestTemplate(t, paragraphXML("{{Name}}"))

	store := NewMappingStore()
	store.Set("Name", "Name")

	data := &DataSet{
		Headers: []string{"Name"},
		Rows:    [][]string{{"a"}, {"b"}, {"c"}, {"d"}, {"e"}},
	}

	engine := NewWithConfig(&Config{RowLimit: 2})
	output, err := engine.Compose(tmpl, store, data)
	if err != nil {
		t.Fatalf("Compose failed: %v", err)
	}

	if got := countPageBreaks(extractDocumentXML(t, output)); got != 1 {
		t.Errorf("expected 1 page break with row limit 2, got %d", got)
	}
}

func TestComposeEmptyDataSet(t *testing.T) {
	tmpl := loadTestTemplate(t, paragraphXML("{{Name}}"))
	store := NewMappingStore()

	if _, err := New().Compose(tmpl, store, &DataSet{Headers: []string{"Name"}}); !IsEmptyDataSetError(err) {
		t.Errorf("expected empty data set error, got %v", err)
	}
	if _, err := New().Compose(tmpl, store, nil); !IsEmptyDataSetError(err) {
		t.Errorf("expected empty data set error for nil data, got %v", err)
	}
}

func TestComposeMalformedTemplate(t *testing.T) {
	store := NewMappingStore()
	data := &DataSet{Headers: []string{"Name"}, Rows: [][]string{{"Alice"}}}

	if _, err := New().Compose(nil, store, data); !IsMalformedDocumentError(err) {
		t.Errorf("expected malformed document error for nil template, got %v", err)
	}

	headless := &TemplateDocument{Name: "broken.docx", Document: &Document{}}
	if _, err := New().Compose(headless, store, data); !IsMalformedDocumentError(err) {
		t.Errorf("expected malformed document error for missing body, got %v", err)
	}
}

func TestComposeSectionPropertiesOnce(t *testing.T) {
	tmpl := loadTestTemplate(t, paragraphXML("{{Name}}"))

	store := NewMappingStore()
	store.Set("Name", "Name")

	data := &DataSet{
		Headers: []string{"Name"},
		Rows:    [][]string{{"a"}, {"b"}, {"c"}},
	}

	output, err := New().Compose(tmpl, store, data)
	if err != nil {
		t.Fatalf("Compose failed: %v", err)
	}

	documentXML := extractDocumentXML(t, output)
	if got := strings.Count(documentXML, "<w:sectPr"); got != 1 {
		t.Errorf("expected section properties exactly once, got %d", got)
	}
}

func TestComposeDoesNotMutateTemplate(t *testing.T) {
	tmpl := loadTestTemplate(t, paragraphXML("{{Name}} and {{Amount}}"))

	before, err := Scan(tmpl)
	if err != nil {
		t.Fatalf("Scan failed: %v", err)
	}

	store := NewMappingStore()
	store.Set("Name", "Name")
	store.Set("Amount", "Amount")

	data := &DataSet{
		Headers: []string{"Name", "Amount"},
		Rows:    [][]string{{"Alice", "100"}, {"Bob", "200"}},
	}

	if _, err := New().Compose(tmpl, store, data); err != nil {
		t.Fatalf("Compose failed: %v", err)
	}

	after, err := Scan(tmpl)
	if err != nil {
		t.Fatalf("re-scan failed: %v", err)
	}
	if !reflect.DeepEqual(before, after) {
		t.Errorf("template changed after composing:\nbefore: %+v\nafter:  %+v", before, after)
	}
}

func TestComposeOutputKeepsOtherPackageParts(t *testing.T) {
	tmpl := loadTestTemplate(t, paragraphXML("{{Name}}"))

	store := NewMappingStore()
	store.Set("Name", "Name")

	output, err := New().Compose(tmpl, store, &DataSet{
		Headers: []string{"Name"},
		Rows:    [][]string{{"Alice"}},
	})
	if err != nil {
		t.Fatalf("Compose failed: %v", err)
	}

	result, err := LoadPackage(output, "output.docx")
	if err != nil {
		t.Fatalf("output is not a loadable package: %v", err)
	}

	for _, part := range []string{"[Content_Types].xml", "_rels/.rels", "word/document.xml"} {
		if _, ok := result.pkg.Parts[part]; !ok {
			t.Errorf("output package missing part %s", part)
		}
	}
}

func TestFillSingleRow(t *testing.T) {
	tmpl := loadTestTemplate(t, paragraphXML("Hello {{Name}}"))

	store := NewMappingStore()
	store.Set("Name", "Name")

	output, err := New().Fill(tmpl, store, map[string]string{"Name": "Alice"})
	if err != nil {
		t.Fatalf("Fill failed: %v", err)
	}

	doc := parseOutputDocument(t, output)
	if text := bodyText(doc.Body); !strings.Contains(text, "Hello Alice") {
		t.Errorf("expected substituted text, got %q", text)
	}
	if got := countPageBreaks(extractDocumentXML(t, output)); got != 0 {
		t.Errorf("single fill should have no page breaks, got %d", got)
	}
}
