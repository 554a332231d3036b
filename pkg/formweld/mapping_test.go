package formweld

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMappingStoreSetGetClear(t *testing.T) {
	store := NewMappingStore()

	store.Set("Name", "customer_name")
	store.Set("Amount", "total")

	column, ok := store.Get("Name")
	require.True(t, ok)
	assert.Equal(t, "customer_name", column)
	assert.Equal(t, 2, store.MappedCount())

	// Last write wins.
	store.Set("Name", "full_name")
	column, _ = store.Get("Name")
	assert.Equal(t, "full_name", column)
	assert.Equal(t, 2, store.MappedCount())

	store.Clear("Name")
	_, ok = store.Get("Name")
	assert.False(t, ok)
	assert.Equal(t, 1, store.MappedCount())

	store.ClearAll()
	assert.Equal(t, 0, store.MappedCount())
}

func TestMappingStoreSharedColumn(t *testing.T) {
	store := NewMappingStore()
	store.Set("BillingName", "name")
	store.Set("ShippingName", "name")
	assert.Equal(t, 2, store.MappedCount())
}

func TestMappingStoreUnmappedPlaceholders(t *testing.T) {
	store := NewMappingStore()
	store.Set("Name", "name")

	all := []Placeholder{
		{Name: "Name", Kind: KindBracketedText},
		{Name: "Amount", Kind: KindBracketedText},
		{Name: "Branch", Kind: KindBookmark},
	}

	unmapped := store.UnmappedPlaceholders(all)
	require.Len(t, unmapped, 2)
	assert.Equal(t, "Amount", unmapped[0].Name)
	assert.Equal(t, "Branch", unmapped[1].Name)
}

func TestMappingStoreRoundTrip(t *testing.T) {
	store := NewMappingStore()
	store.Set("Name", "customer_name")
	store.Set("Amount", "total")

	blob, err := store.Serialize()
	require.NoError(t, err)

	loaded, err := DeserializeMappings(blob)
	require.NoError(t, err)
	assert.Equal(t, store.Snapshot(), loaded.Snapshot())
}

func TestMappingStoreRoundTripEmpty(t *testing.T) {
	store := NewMappingStore()

	blob, err := store.Serialize()
	require.NoError(t, err)

	loaded, err := DeserializeMappings(blob)
	require.NoError(t, err)
	assert.Equal(t, 0, loaded.MappedCount())
}

func TestDeserializeMappingsUnknownPlaceholdersTolerated(t *testing.T) {
	// A config naming placeholders absent from the current template loads
	// cleanly; the extra entries stay inert.
	blob := []byte(`{"version":1,"mappings":{"Ghost":"col_a","Name":"col_b"}}`)

	store, err := DeserializeMappings(blob)
	require.NoError(t, err)
	assert.Equal(t, 2, store.MappedCount())

	column, ok := store.Get("Ghost")
	assert.True(t, ok)
	assert.Equal(t, "col_a", column)
}

func TestDeserializeMappingsInvalidJSON(t *testing.T) {
	_, err := DeserializeMappings([]byte("not json"))
	assert.Error(t, err)
}

func TestMappingStoreLoadReplaces(t *testing.T) {
	store := NewMappingStore()
	store.Set("Old", "old_col")

	require.NoError(t, store.Load([]byte(`{"version":1,"mappings":{"New":"new_col"}}`)))

	_, ok := store.Get("Old")
	assert.False(t, ok)
	column, ok := store.Get("New")
	require.True(t, ok)
	assert.Equal(t, "new_col", column)
}

func TestAutoMap(t *testing.T) {
	store := NewMappingStore()
	placeholders := []Placeholder{
		{Name: "Name", Kind: KindBracketedText},
		{Name: "recieve_date", Kind: KindBracketedText},
		{Name: "XYZ", Kind: KindBracketedText},
	}
	columns := []string{"name", "receive_date", "branch"}

	report := AutoMap(store, placeholders, columns)

	require.Len(t, report.Mapped, 2)
	assert.Equal(t, "Name", report.Mapped[0].Placeholder)
	assert.Equal(t, "name", report.Mapped[0].Column)
	assert.Equal(t, "recieve_date", report.Mapped[1].Placeholder)
	assert.Equal(t, "receive_date", report.Mapped[1].Column)

	assert.Equal(t, []string{"XYZ"}, report.Unmatched)

	// The misspelled date match scores below the review threshold.
	require.Len(t, report.LowConfidence, 1)
	assert.Equal(t, "recieve_date", report.LowConfidence[0].Placeholder)

	column, ok := store.Get("recieve_date")
	require.True(t, ok)
	assert.Equal(t, "receive_date", column)
	_, ok = store.Get("XYZ")
	assert.False(t, ok)
}

func TestAutoMapAppliesLowConfidenceMappings(t *testing.T) {
	store := NewMappingStore()
	report := AutoMap(store, []Placeholder{{Name: "recieve_date"}}, []string{"receive_date"})

	// Low confidence is advisory only; the mapping is still applied.
	require.Len(t, report.LowConfidence, 1)
	assert.Equal(t, 1, store.MappedCount())
}

func TestEngineAutoMapUsesConfiguredThresholds(t *testing.T) {
	engine := NewWithConfig(&Config{MinConfidence: 0.9, ReviewConfidence: 0.95})
	store := NewMappingStore()

	report := engine.AutoMap(store, []Placeholder{{Name: "CustName"}}, []string{"CustomerName"})

	// The acronym score (0.75) falls below the raised acceptance threshold.
	assert.Empty(t, report.Mapped)
	assert.Equal(t, []string{"CustName"}, report.Unmatched)
	assert.Equal(t, 0, store.MappedCount())
}
