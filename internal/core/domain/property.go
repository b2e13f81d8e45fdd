package domain

import (
	"fmt"
	"strings"
	"time"
	"unicode/utf8"
)

// PropertyType classifies a listing.
type PropertyType string

// Known property types.
const (
	PropertyTypeResidential PropertyType = "Residential"
	PropertyTypeCommercial  PropertyType = "Commercial"
	PropertyTypeLand        PropertyType = "Land"
)

// AllPropertyTypes returns the property types in display order.
func AllPropertyTypes() []PropertyType {
	return []PropertyType{PropertyTypeResidential, PropertyTypeCommercial, PropertyTypeLand}
}

// IsValid returns true if the property type is recognised.
func (t PropertyType) IsValid() bool {
	switch t {
	case PropertyTypeResidential, PropertyTypeCommercial, PropertyTypeLand:
		return true
	default:
		return false
	}
}

// TransactionType says whether a listing is for rent or for sale.
type TransactionType string

// Known transaction types.
const (
	TransactionRent TransactionType = "Rent"
	TransactionSale TransactionType = "Sale"
)

// AllTransactionTypes returns the transaction types in display order.
func AllTransactionTypes() []TransactionType {
	return []TransactionType{TransactionRent, TransactionSale}
}

// IsValid returns true if the transaction type is recognised.
func (t TransactionType) IsValid() bool {
	return t == TransactionRent || t == TransactionSale
}

// Furnishing describes how a unit is furnished.
type Furnishing string

// Known furnishing states.
const (
	FurnishingFull Furnishing = "Furnished"
	FurnishingSemi Furnishing = "Semi-Furnished"
	FurnishingNone Furnishing = "Unfurnished"
)

// AllFurnishings returns the furnishing states in display order.
func AllFurnishings() []Furnishing {
	return []Furnishing{FurnishingFull, FurnishingSemi, FurnishingNone}
}

// IsValid returns true if the furnishing state is recognised.
func (f Furnishing) IsValid() bool {
	switch f {
	case FurnishingFull, FurnishingSemi, FurnishingNone:
		return true
	default:
		return false
	}
}

// BHKOptions are the configurations offered by the list filters.
func BHKOptions() []string {
	return []string{"1BHK", "2BHK", "3BHK", "4BHK", "Shop", "Office"}
}

// Draft field names, as they appear on the wire.
const (
	FieldPropertyType    = "property_type"
	FieldBHK             = "bhk"
	FieldTransactionType = "transaction_type"
	FieldLocation        = "location"
	FieldArea            = "area"
	FieldPrice           = "price"
	FieldCarpetArea      = "carpet_area"
	FieldFurnishing      = "furnishing"
	FieldFloor           = "floor"
	FieldBuildingName    = "building_name"
	FieldOwnerName       = "owner_name"
	FieldContactNumber   = "contact_number"
	FieldAvailability    = "availability"
	FieldNotes           = "notes"
	FieldRawMessage      = "raw_message"
	FieldConfidence      = "confidence_score"
)

// EditableFields lists the draft fields a broker may change, in form order.
func EditableFields() []string {
	return []string{
		FieldPropertyType,
		FieldBHK,
		FieldTransactionType,
		FieldLocation,
		FieldPrice,
		FieldCarpetArea,
		FieldArea,
		FieldFurnishing,
		FieldFloor,
		FieldBuildingName,
		FieldOwnerName,
		FieldContactNumber,
		FieldAvailability,
		FieldNotes,
	}
}

var fieldLabels = map[string]string{
	FieldPropertyType:    "Property Type",
	FieldBHK:             "BHK",
	FieldTransactionType: "Transaction",
	FieldLocation:        "Location",
	FieldArea:            "Area",
	FieldPrice:           "Price",
	FieldCarpetArea:      "Carpet Area",
	FieldFurnishing:      "Furnishing",
	FieldFloor:           "Floor",
	FieldBuildingName:    "Building",
	FieldOwnerName:       "Owner",
	FieldContactNumber:   "Contact",
	FieldAvailability:    "Availability",
	FieldNotes:           "Notes",
	FieldRawMessage:      "Original Message",
	FieldConfidence:      "Confidence",
}

// FieldLabel returns the display label for a field, or the field name
// itself when it has none.
func FieldLabel(field string) string {
	if label, ok := fieldLabels[field]; ok {
		return label
	}
	return field
}

// FieldOptions returns the allowed values of an enum field, or nil for
// free-text fields.
func FieldOptions(field string) []string {
	switch field {
	case FieldPropertyType:
		return enumStrings(AllPropertyTypes())
	case FieldTransactionType:
		return enumStrings(AllTransactionTypes())
	case FieldFurnishing:
		return enumStrings(AllFurnishings())
	default:
		return nil
	}
}

func enumStrings[T ~string](values []T) []string {
	out := make([]string, len(values))
	for i, v := range values {
		out[i] = string(v)
	}
	return out
}

// Draft is a set of extracted property fields under review.
// It has no id until the property service accepts it.
type Draft struct {
	PropertyType    PropertyType    `json:"property_type,omitempty" validate:"omitempty,oneof=Residential Commercial Land"`
	BHK             string          `json:"bhk,omitempty"`
	TransactionType TransactionType `json:"transaction_type,omitempty" validate:"omitempty,oneof=Rent Sale"`
	Location        string          `json:"location,omitempty"`
	Area            string          `json:"area,omitempty"`
	Price           string          `json:"price,omitempty"`
	CarpetArea      string          `json:"carpet_area,omitempty"`
	Furnishing      Furnishing      `json:"furnishing,omitempty" validate:"omitempty,oneof=Furnished Semi-Furnished Unfurnished"`
	Floor           string          `json:"floor,omitempty"`
	BuildingName    string          `json:"building_name,omitempty"`
	OwnerName       string          `json:"owner_name,omitempty"`
	ContactNumber   string          `json:"contact_number,omitempty"`
	Availability    string          `json:"availability,omitempty"`
	Notes           string          `json:"notes,omitempty"`

	// RawMessage is the text the draft was extracted from.
	RawMessage string `json:"raw_message"`

	// ConfidenceScore is assigned by the extractor, 0-100. Read-only.
	ConfidenceScore *float64 `json:"confidence_score,omitempty" validate:"omitempty,gte=0,lte=100"`
}

// fieldRef returns a pointer to the string backing a field.
func (d *Draft) fieldRef(field string) (*string, bool) {
	switch field {
	case FieldBHK:
		return &d.BHK, true
	case FieldLocation:
		return &d.Location, true
	case FieldArea:
		return &d.Area, true
	case FieldPrice:
		return &d.Price, true
	case FieldCarpetArea:
		return &d.CarpetArea, true
	case FieldFloor:
		return &d.Floor, true
	case FieldBuildingName:
		return &d.BuildingName, true
	case FieldOwnerName:
		return &d.OwnerName, true
	case FieldContactNumber:
		return &d.ContactNumber, true
	case FieldAvailability:
		return &d.Availability, true
	case FieldNotes:
		return &d.Notes, true
	case FieldRawMessage:
		return &d.RawMessage, true
	default:
		return nil, false
	}
}

// Set applies a user edit to one field. The edit always replaces whatever
// the extractor produced. Enum fields accept only their known values or "".
func (d *Draft) Set(field, value string) error {
	value = strings.TrimSpace(value)
	switch field {
	case FieldPropertyType:
		if pt := PropertyType(value); value == "" || pt.IsValid() {
			d.PropertyType = pt
			return nil
		}
	case FieldTransactionType:
		if tt := TransactionType(value); value == "" || tt.IsValid() {
			d.TransactionType = tt
			return nil
		}
	case FieldFurnishing:
		if f := Furnishing(value); value == "" || f.IsValid() {
			d.Furnishing = f
			return nil
		}
	case FieldConfidence:
		return fmt.Errorf("%w: %s is read-only", ErrInvalidField, field)
	default:
		ref, ok := d.fieldRef(field)
		if !ok {
			return fmt.Errorf("%w: unknown field %q", ErrInvalidField, field)
		}
		*ref = value
		return nil
	}
	return fmt.Errorf("%w: %q is not a valid %s", ErrInvalidField, value, field)
}

// Get returns the current value of a field, or "" if it is unknown.
func (d *Draft) Get(field string) string {
	switch field {
	case FieldPropertyType:
		return string(d.PropertyType)
	case FieldTransactionType:
		return string(d.TransactionType)
	case FieldFurnishing:
		return string(d.Furnishing)
	case FieldConfidence:
		if d.ConfidenceScore == nil {
			return ""
		}
		return fmt.Sprintf("%.0f", *d.ConfidenceScore)
	}
	if ref, ok := d.fieldRef(field); ok {
		return *ref
	}
	return ""
}

// Confidence returns the extractor's score, or 0 when none was given.
func (d *Draft) Confidence() float64 {
	if d.ConfidenceScore == nil {
		return 0
	}
	return *d.ConfidenceScore
}

// Headline is the short label for a listing: the BHK, else the type.
func (d *Draft) Headline() string {
	if d.BHK != "" {
		return d.BHK
	}
	return string(d.PropertyType)
}

// ConfidenceLevel buckets an extraction score for display.
// It is visual only and never gates saving.
type ConfidenceLevel int

// Confidence levels.
const (
	ConfidenceLow ConfidenceLevel = iota
	ConfidenceMedium
	ConfidenceHigh
)

// LevelFor maps a 0-100 score to its level.
func LevelFor(score float64) ConfidenceLevel {
	switch {
	case score >= 70:
		return ConfidenceHigh
	case score >= 40:
		return ConfidenceMedium
	default:
		return ConfidenceLow
	}
}

// String returns the level name.
func (l ConfidenceLevel) String() string {
	switch l {
	case ConfidenceHigh:
		return "high"
	case ConfidenceMedium:
		return "medium"
	default:
		return "low"
	}
}

// NotesPreviewLength is how many characters of notes a list card shows.
const NotesPreviewLength = 100

// Property is a draft the property service has persisted.
type Property struct {
	Draft

	ID         string   `json:"id"`
	IsFavorite bool     `json:"is_favorite"`
	Tags       []string `json:"tags"`
	CreatedAt  string   `json:"created_at,omitempty"`
	UpdatedAt  string   `json:"updated_at,omitempty"`
	ImageID    string   `json:"image_id,omitempty"`
}

// Created parses CreatedAt. The service writes ISO-8601 timestamps without
// a zone; the zero time is returned when parsing fails.
func (p *Property) Created() time.Time {
	for _, layout := range []string{time.RFC3339Nano, "2006-01-02T15:04:05.999999", "2006-01-02T15:04:05"} {
		if t, err := time.Parse(layout, p.CreatedAt); err == nil {
			return t
		}
	}
	return time.Time{}
}

// NotesPreview returns the notes cut to NotesPreviewLength characters.
func (p *Property) NotesPreview() string {
	if utf8.RuneCountInString(p.Notes) <= NotesPreviewLength {
		return p.Notes
	}
	runes := []rune(p.Notes)
	return string(runes[:NotesPreviewLength]) + "..."
}

// HasImage reports whether the service has linked an image to the property.
func (p *Property) HasImage() bool {
	return p.ImageID != ""
}

// SaveResult is the service's acknowledgement of a create.
type SaveResult struct {
	ID      string `json:"id"`
	Message string `json:"message"`
}

// FavoriteResult carries the favorite flag after a toggle.
type FavoriteResult struct {
	Message    string `json:"message"`
	IsFavorite bool   `json:"is_favorite"`
}

// TagsResult carries the tag list after replacement.
type TagsResult struct {
	Message string   `json:"message"`
	Tags    []string `json:"tags"`
}

// Ack is a bare acknowledgement.
type Ack struct {
	Message string `json:"message"`
}
