package domain

import (
	"net/url"
	"strings"
)

// Filter keys accepted by the property list endpoint.
const (
	FilterPropertyType    = "property_type"
	FilterTransactionType = "transaction_type"
	FilterBHK             = "bhk"
	FilterLocation        = "location"
	FilterSearch          = "search"
)

// FilterKeys returns the recognised filter keys in display order.
func FilterKeys() []string {
	return []string{FilterPropertyType, FilterTransactionType, FilterBHK, FilterLocation, FilterSearch}
}

// FilterCriteria narrows the property list. Values are compared by value:
// a changed criteria is a new value, never an in-place mutation.
type FilterCriteria struct {
	PropertyType    string
	TransactionType string
	BHK             string
	Location        string
	Search          string
}

// Get returns the value for a filter key.
func (f FilterCriteria) Get(key string) string {
	switch key {
	case FilterPropertyType:
		return f.PropertyType
	case FilterTransactionType:
		return f.TransactionType
	case FilterBHK:
		return f.BHK
	case FilterLocation:
		return f.Location
	case FilterSearch:
		return f.Search
	default:
		return ""
	}
}

// With returns a copy of f with key set to value. Unknown keys are ignored.
func (f FilterCriteria) With(key, value string) FilterCriteria {
	switch key {
	case FilterPropertyType:
		f.PropertyType = value
	case FilterTransactionType:
		f.TransactionType = value
	case FilterBHK:
		f.BHK = value
	case FilterLocation:
		f.Location = value
	case FilterSearch:
		f.Search = value
	}
	return f
}

// Active reports whether any filter is set.
func (f FilterCriteria) Active() bool {
	return f != FilterCriteria{}
}

// Query encodes the non-empty filters. Empty and whitespace-only values
// are omitted entirely, and every present key appears once.
func (f FilterCriteria) Query() url.Values {
	q := url.Values{}
	for _, key := range FilterKeys() {
		if v := strings.TrimSpace(f.Get(key)); v != "" {
			q.Set(key, v)
		}
	}
	return q
}
