package formweld

import (
	"encoding/json"
	"fmt"
	"sort"
)

// mappingConfigVersion is the serialization format version for mapping
// configurations.
const mappingConfigVersion = 1

// MappingStore associates placeholder names with data column names. At most
// one column per placeholder (last write wins); the same column may serve any
// number of placeholders.
//
// The store carries no lock: it is touched only in direct response to a
// single caller action at a time.
type MappingStore struct {
	mappings map[string]string
}

// NewMappingStore creates an empty mapping store
func NewMappingStore() *MappingStore {
	return &MappingStore{
		mappings: make(map[string]string),
	}
}

// Set maps a placeholder name to a column name, replacing any previous
// mapping for that placeholder.
func (s *MappingStore) Set(placeholder, columnName string) {
	s.mappings[placeholder] = columnName
}

// Get returns the column mapped to a placeholder, if any
func (s *MappingStore) Get(placeholder string) (string, bool) {
	column, ok := s.mappings[placeholder]
	return column, ok
}

// Clear removes the mapping for a single placeholder
func (s *MappingStore) Clear(placeholder string) {
	delete(s.mappings, placeholder)
}

// ClearAll empties the store
func (s *MappingStore) ClearAll() {
	s.mappings = make(map[string]string)
}

// MappedCount returns the number of placeholder mappings in the store
func (s *MappingStore) MappedCount() int {
	return len(s.mappings)
}

// UnmappedPlaceholders returns, in input order, the placeholders from the
// given set that have no mapping in the store.
func (s *MappingStore) UnmappedPlaceholders(all []Placeholder) []Placeholder {
	var unmapped []Placeholder
	for _, p := range all {
		if _, ok := s.mappings[p.Name]; !ok {
			unmapped = append(unmapped, p)
		}
	}
	return unmapped
}

// Snapshot returns a copy of the current placeholder-to-column pairs
func (s *MappingStore) Snapshot() map[string]string {
	snapshot := make(map[string]string, len(s.mappings))
	for k, v := range s.mappings {
		snapshot[k] = v
	}
	return snapshot
}

// mappingConfig is the on-disk shape of a saved mapping configuration
type mappingConfig struct {
	Version  int               `json:"version"`
	Mappings map[string]string `json:"mappings"`
}

// Serialize writes the store's mappings as a versioned JSON blob. Keys are
// emitted in sorted order so identical stores serialize identically.
func (s *MappingStore) Serialize() ([]byte, error) {
	cfg := mappingConfig{
		Version:  mappingConfigVersion,
		Mappings: s.mappings,
	}
	if cfg.Mappings == nil {
		cfg.Mappings = map[string]string{}
	}

	data, err := json.MarshalIndent(cfg, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("failed to serialize mappings: %w", err)
	}
	return data, nil
}

// DeserializeMappings loads a serialized mapping configuration into a new
// store. Entries naming placeholders absent from the current template are
// kept as-is; they stay inert until a matching placeholder reappears.
func DeserializeMappings(data []byte) (*MappingStore, error) {
	var cfg mappingConfig
	if err := json.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("failed to parse mapping config: %w", err)
	}

	store := NewMappingStore()
	for placeholder, column := range cfg.Mappings {
		if placeholder == "" || column == "" {
			continue
		}
		store.Set(placeholder, column)
	}
	return store, nil
}

// Load replaces the store's contents with a previously serialized
// configuration.
func (s *MappingStore) Load(data []byte) error {
	loaded, err := DeserializeMappings(data)
	if err != nil {
		return err
	}
	s.mappings = loaded.mappings
	return nil
}

// AutoMapEntry records the outcome of auto-mapping one placeholder
type AutoMapEntry struct {
	Placeholder string
	Column      string
	Result      MatchResult
}

// AutoMapReport summarizes one auto-map pass over a placeholder set
type AutoMapReport struct {
	// Mapped lists every placeholder that received a mapping, in scan order.
	Mapped []AutoMapEntry
	// LowConfidence is the subset of Mapped whose confidence fell below the
	// review threshold. Advisory: these mappings are applied regardless.
	LowConfidence []AutoMapEntry
	// Unmatched lists placeholders for which no column reached the
	// acceptance threshold.
	Unmatched []string
}

// AutoMap matches every placeholder against the available columns and writes
// the winning mappings into the store. Placeholders are processed in the
// order given; a placeholder with no acceptable column is left unmapped.
func AutoMap(store *MappingStore, placeholders []Placeholder, columns []string) *AutoMapReport {
	return autoMap(store, placeholders, columns, minMatchConfidence, reviewConfidence)
}

func autoMap(store *MappingStore, placeholders []Placeholder, columns []string, minConfidence, reviewThreshold float64) *AutoMapReport {
	report := &AutoMapReport{}

	for _, p := range placeholders {
		result := findBestMatch(p.Name, columns, minConfidence)
		if !result.Found() {
			report.Unmatched = append(report.Unmatched, p.Name)
			Debug("auto-map: no column matched placeholder %q", p.Name)
			continue
		}

		column := columns[result.ColumnIndex]
		store.Set(p.Name, column)

		entry := AutoMapEntry{
			Placeholder: p.Name,
			Column:      column,
			Result:      result,
		}
		report.Mapped = append(report.Mapped, entry)
		if result.Confidence < reviewThreshold {
			report.LowConfidence = append(report.LowConfidence, entry)
		}

		Debug("auto-map: %q -> %q (%.2f, %s)", p.Name, column, result.Confidence, result.Strategy)
	}

	Info("auto-map complete: %d mapped, %d low confidence, %d unmatched",
		len(report.Mapped), len(report.LowConfidence), len(report.Unmatched))

	return report
}

// SortedPlaceholders returns the store's placeholder names in sorted order
func (s *MappingStore) SortedPlaceholders() []string {
	names := make([]string, 0, len(s.mappings))
	for name := range s.mappings {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
