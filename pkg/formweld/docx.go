package formweld

import (
	"archive/zip"
	"bytes"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/google/uuid"
)

// PackageReader handles reading and parsing DOCX packages
type PackageReader struct {
	reader *zip.Reader
	Parts  map[string]*zip.File
}

// NewPackageReader opens a DOCX package from an io.ReaderAt
func NewPackageReader(r io.ReaderAt, size int64) (*PackageReader, error) {
	zipReader, err := zip.NewReader(r, size)
	if err != nil {
		return nil, NewCorruptPackageError("", err)
	}

	pr := &PackageReader{
		reader: zipReader,
		Parts:  make(map[string]*zip.File),
	}

	// Index all parts by name
	for _, file := range zipReader.File {
		pr.Parts[file.Name] = file
	}

	if _, ok := pr.Parts["word/document.xml"]; !ok {
		return nil, NewCorruptPackageError("", fmt.Errorf("missing word/document.xml"))
	}

	return pr, nil
}

// GetDocumentXML retrieves the content of word/document.xml
func (pr *PackageReader) GetDocumentXML() ([]byte, error) {
	return pr.GetPart("word/document.xml")
}

// GetPart retrieves the content of a specific part
func (pr *PackageReader) GetPart(partName string) ([]byte, error) {
	file, ok := pr.Parts[partName]
	if !ok {
		return nil, fmt.Errorf("part %s not found", partName)
	}

	rc, err := file.Open()
	if err != nil {
		return nil, fmt.Errorf("failed to open part %s: %w", partName, err)
	}
	defer rc.Close()

	content, err := io.ReadAll(rc)
	if err != nil {
		return nil, fmt.Errorf("failed to read part %s: %w", partName, err)
	}

	return content, nil
}

// ListParts returns a list of all part names in the package
func (pr *PackageReader) ListParts() []string {
	parts := make([]string, 0, len(pr.Parts))
	for name := range pr.Parts {
		parts = append(parts, name)
	}
	return parts
}

// TemplateDocument is a loaded template package: its original bytes, the
// parsed document tree, and the identity under which scan results report it.
type TemplateDocument struct {
	ID       string
	Name     string
	Document *Document

	pkg    *PackageReader
	source []byte
}

// LoadPackage loads a DOCX byte buffer into a TemplateDocument. The name is
// used in scan reports and error messages (typically the original filename).
func LoadPackage(data []byte, name string) (*TemplateDocument, error) {
	reader := bytes.NewReader(data)
	pkg, err := NewPackageReader(reader, int64(len(data)))
	if err != nil {
		if cp, ok := err.(*CorruptPackageError); ok {
			cp.Name = name
			return nil, cp
		}
		return nil, err
	}

	docXML, err := pkg.GetDocumentXML()
	if err != nil {
		return nil, NewDocumentError("extract", name, err)
	}

	doc, err := ParseDocument(bytes.NewReader(docXML))
	if err != nil {
		return nil, NewMalformedDocumentError(name, err.Error())
	}

	return &TemplateDocument{
		ID:       uuid.New().String(),
		Name:     name,
		Document: doc,
		pkg:      pkg,
		source:   data,
	}, nil
}

// LoadPackageFile loads a DOCX template from a file path
func LoadPackageFile(path string) (*TemplateDocument, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, NewDocumentError("read", path, err)
	}
	return LoadPackage(data, filepath.Base(path))
}

// Source returns the original package bytes the template was loaded from
func (t *TemplateDocument) Source() []byte {
	return t.source
}

// writePackage produces a new DOCX package from the template's source,
// replacing word/document.xml with the given bytes and copying every other
// part unchanged.
func writePackage(source []byte, documentXML []byte) ([]byte, error) {
	reader := bytes.NewReader(source)
	zipReader, err := zip.NewReader(reader, int64(len(source)))
	if err != nil {
		return nil, NewCorruptPackageError("", err)
	}

	buf := new(bytes.Buffer)
	w := zip.NewWriter(buf)

	for _, file := range zipReader.File {
		fw, err := w.Create(file.Name)
		if err != nil {
			return nil, fmt.Errorf("failed to create %s: %w", file.Name, err)
		}

		if file.Name == "word/document.xml" {
			if _, err := fw.Write(documentXML); err != nil {
				return nil, fmt.Errorf("failed to write %s: %w", file.Name, err)
			}
			continue
		}

		fr, err := file.Open()
		if err != nil {
			return nil, fmt.Errorf("failed to open %s: %w", file.Name, err)
		}

		_, err = io.Copy(fw, fr)
		fr.Close()
		if err != nil {
			return nil, fmt.Errorf("failed to copy %s: %w", file.Name, err)
		}
	}

	if err := w.Close(); err != nil {
		return nil, fmt.Errorf("failed to close zip writer: %w", err)
	}

	return buf.Bytes(), nil
}
