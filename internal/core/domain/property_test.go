package domain

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func ptr(f float64) *float64 { return &f }

// TestDraft_SetOverridesExtractedValue tests that edits replace extracted values
func TestDraft_SetOverridesExtractedValue(t *testing.T) {
	d := Draft{Location: "Andheri", RawMessage: "2BHK in Andheri"}

	require.NoError(t, d.Set(FieldLocation, "Kandivali West"))

	assert.Equal(t, "Kandivali West", d.Location)
	assert.Equal(t, "Kandivali West", d.Get(FieldLocation))
}

// TestDraft_SetEveryEditableField tests that the draft reflects the latest edit of each field
func TestDraft_SetEveryEditableField(t *testing.T) {
	values := map[string]string{
		FieldPropertyType:    "Commercial",
		FieldBHK:             "Shop",
		FieldTransactionType: "Sale",
		FieldLocation:        "Borivali",
		FieldPrice:           "1.2 Cr",
		FieldCarpetArea:      "450 sqft",
		FieldArea:            "Borivali East",
		FieldFurnishing:      "Semi-Furnished",
		FieldFloor:           "3rd",
		FieldBuildingName:    "Sai Darshan",
		FieldOwnerName:       "Mehta",
		FieldContactNumber:   "9876543210",
		FieldAvailability:    "Immediate",
		FieldNotes:           "corner unit",
	}

	d := Draft{
		PropertyType:    PropertyTypeResidential,
		BHK:             "2BHK",
		TransactionType: TransactionRent,
		Location:        "Andheri",
		Furnishing:      FurnishingFull,
		Notes:           "extracted",
		RawMessage:      "2BHK Andheri rent",
	}
	for _, field := range EditableFields() {
		require.NoError(t, d.Set(field, values[field]), field)
	}
	for _, field := range EditableFields() {
		assert.Equal(t, values[field], d.Get(field), field)
	}
}

func TestDraft_SetInvalidEnum(t *testing.T) {
	tests := []struct {
		field string
		value string
	}{
		{FieldPropertyType, "Villa"},
		{FieldTransactionType, "Lease"},
		{FieldFurnishing, "Bare"},
	}

	for _, tt := range tests {
		t.Run(tt.field, func(t *testing.T) {
			var d Draft
			err := d.Set(tt.field, tt.value)
			require.Error(t, err)
			assert.ErrorIs(t, err, ErrInvalidField)
			assert.ErrorIs(t, err, ErrInvalidInput)
			assert.Empty(t, d.Get(tt.field))
		})
	}
}

func TestDraft_SetEmptyEnumClears(t *testing.T) {
	d := Draft{PropertyType: PropertyTypeLand}

	require.NoError(t, d.Set(FieldPropertyType, ""))

	assert.Empty(t, d.PropertyType)
}

func TestDraft_SetUnknownAndReadOnly(t *testing.T) {
	var d Draft

	assert.ErrorIs(t, d.Set("parking", "yes"), ErrInvalidField)
	assert.ErrorIs(t, d.Set(FieldConfidence, "99"), ErrInvalidField)
	assert.Nil(t, d.ConfidenceScore)
}

func TestDraft_Get_Confidence(t *testing.T) {
	d := Draft{ConfidenceScore: ptr(72.4)}
	assert.Equal(t, "72", d.Get(FieldConfidence))
	assert.InDelta(t, 72.4, d.Confidence(), 0.001)

	var empty Draft
	assert.Empty(t, empty.Get(FieldConfidence))
	assert.Zero(t, empty.Confidence())
}

func TestDraft_Headline(t *testing.T) {
	assert.Equal(t, "2BHK", (&Draft{BHK: "2BHK", PropertyType: PropertyTypeResidential}).Headline())
	assert.Equal(t, "Land", (&Draft{PropertyType: PropertyTypeLand}).Headline())
}

func TestLevelFor(t *testing.T) {
	tests := []struct {
		score float64
		want  ConfidenceLevel
	}{
		{100, ConfidenceHigh},
		{70, ConfidenceHigh},
		{69.9, ConfidenceMedium},
		{40, ConfidenceMedium},
		{39.9, ConfidenceLow},
		{0, ConfidenceLow},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, LevelFor(tt.score), "score %v", tt.score)
	}
	assert.Equal(t, "high", ConfidenceHigh.String())
	assert.Equal(t, "medium", ConfidenceMedium.String())
	assert.Equal(t, "low", ConfidenceLow.String())
}

func TestDraft_JSON(t *testing.T) {
	d := Draft{
		PropertyType:    PropertyTypeResidential,
		Location:        "Kandivali West",
		RawMessage:      "msg",
		ConfidenceScore: ptr(80),
	}

	data, err := json.Marshal(d)
	require.NoError(t, err)

	var body map[string]any
	require.NoError(t, json.Unmarshal(data, &body))
	assert.Equal(t, "Residential", body["property_type"])
	assert.Equal(t, "Kandivali West", body["location"])
	assert.Equal(t, "msg", body["raw_message"])
	assert.NotContains(t, body, "bhk")
}

func TestProperty_UnmarshalsFlatRecord(t *testing.T) {
	raw := `{"id":"abc","property_type":"Land","location":"Virar","is_favorite":true,
		"tags":["hot","corner"],"created_at":"2024-05-01T10:20:30.123456","raw_message":"m"}`

	var p Property
	require.NoError(t, json.Unmarshal([]byte(raw), &p))

	assert.Equal(t, "abc", p.ID)
	assert.Equal(t, PropertyTypeLand, p.PropertyType)
	assert.Equal(t, "Virar", p.Location)
	assert.True(t, p.IsFavorite)
	assert.Equal(t, []string{"hot", "corner"}, p.Tags)
	assert.Equal(t, 2024, p.Created().Year())
	assert.False(t, p.HasImage())
}

func TestProperty_Created_Unparseable(t *testing.T) {
	p := Property{CreatedAt: "yesterday"}
	assert.True(t, p.Created().IsZero())
}

func TestProperty_NotesPreview(t *testing.T) {
	short := Property{Draft: Draft{Notes: "sea facing"}}
	assert.Equal(t, "sea facing", short.NotesPreview())

	long := make([]rune, 150)
	for i := range long {
		long[i] = 'न'
	}
	p := Property{Draft: Draft{Notes: string(long)}}
	preview := p.NotesPreview()
	assert.Equal(t, string(long[:100])+"...", preview)
}

func TestEnums(t *testing.T) {
	for _, pt := range AllPropertyTypes() {
		assert.True(t, pt.IsValid())
	}
	for _, tt := range AllTransactionTypes() {
		assert.True(t, tt.IsValid())
	}
	for _, f := range AllFurnishings() {
		assert.True(t, f.IsValid())
	}
	assert.False(t, PropertyType("").IsValid())
	assert.False(t, TransactionType("rent").IsValid())
	assert.False(t, Furnishing("furnished").IsValid())
	assert.Len(t, BHKOptions(), 6)
}

func TestFieldLabelsAndOptions(t *testing.T) {
	for _, field := range EditableFields() {
		assert.NotEqual(t, field, FieldLabel(field), "missing label for %s", field)
	}
	assert.Equal(t, "unknown", FieldLabel("unknown"))

	assert.Equal(t, []string{"Rent", "Sale"}, FieldOptions(FieldTransactionType))
	assert.Len(t, FieldOptions(FieldPropertyType), 3)
	assert.Len(t, FieldOptions(FieldFurnishing), 3)
	assert.Nil(t, FieldOptions(FieldLocation))
}
