// Package formweld detects placeholder fields in Word documents, maps
// tabular data columns onto them, and merges data rows into filled
// documents.
//
// A template is loaded from DOCX bytes, scanned for placeholders (named
// bookmarks and bracketed text tokens such as {{Name}}), and paired with a
// data set of headers and rows. Columns are bound to placeholders manually
// through a MappingStore or automatically via fuzzy name matching. The
// engine then renders one copy of the template body per data row and
// concatenates the copies, separated by page breaks, into a single output
// package.
//
// Basic usage:
//
//	engine := formweld.New()
//	tmpl, err := engine.LoadTemplate("letter.docx")
//	if err != nil {
//		log.Fatal(err)
//	}
//	scan, err := formweld.Scan(tmpl)
//	if err != nil {
//		log.Fatal(err)
//	}
//	store := formweld.NewMappingStore()
//	engine.AutoMap(store, scan.All(), data.Headers)
//	output, err := engine.Compose(tmpl, store, data)
package formweld

// Engine binds the scanning, matching, and composition operations to one
// configuration. A zero-cost facade: engines are cheap to create and safe to
// discard.
type Engine struct {
	config *Config
}

// New creates an engine with the global configuration
func New() *Engine {
	return &Engine{config: GetGlobalConfig()}
}

// NewWithConfig creates an engine with an explicit configuration. Unset
// fields fall back to defaults; an invalid configuration is replaced by the
// defaults entirely.
func NewWithConfig(config *Config) *Engine {
	merged := NewConfigWithDefaults(config)
	if err := merged.Validate(); err != nil {
		Warn("invalid configuration, using defaults: %v", err)
		merged = DefaultConfig()
	}
	return &Engine{config: merged}
}

// Config returns a copy of the engine's configuration
func (e *Engine) Config() Config {
	return *e.config
}

// LoadTemplate loads a DOCX template from a file path
func (e *Engine) LoadTemplate(path string) (*TemplateDocument, error) {
	return LoadPackageFile(path)
}

// LoadTemplateBytes loads a DOCX template from an in-memory byte buffer,
// reported under the given name in scan results and errors.
func (e *Engine) LoadTemplateBytes(data []byte, name string) (*TemplateDocument, error) {
	return LoadPackage(data, name)
}

// AutoMap matches placeholders against columns using the engine's configured
// confidence thresholds and writes the winning mappings into the store.
func (e *Engine) AutoMap(store *MappingStore, placeholders []Placeholder, columns []string) *AutoMapReport {
	return autoMap(store, placeholders, columns, e.config.MinConfidence, e.config.ReviewConfidence)
}
