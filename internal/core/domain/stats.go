package domain

import (
	"math"
	"sort"
)

// Stats is a point-in-time summary of the property collection.
type Stats struct {
	TotalProperties int            `json:"total_properties"`
	Favorites       int            `json:"favorites"`
	ByTransaction   map[string]int `json:"by_transaction"`
	ByType          map[string]int `json:"by_type"`
	Recent          []Property     `json:"recent"`
}

// Empty reports whether there are no properties at all.
func (s *Stats) Empty() bool {
	return s == nil || s.TotalProperties <= 0
}

// Share returns count as a percentage of the total, in [0, 100].
// A zero total yields 0 rather than a division by zero.
func (s *Stats) Share(count int) float64 {
	if s.Empty() || count <= 0 {
		return 0
	}
	pct := float64(count) / float64(s.TotalProperties) * 100
	if math.IsNaN(pct) || math.IsInf(pct, 0) {
		return 0
	}
	return math.Min(pct, 100)
}

// ForRent returns the number of rental listings.
func (s *Stats) ForRent() int {
	return s.ByTransaction[string(TransactionRent)]
}

// ForSale returns the number of listings for sale.
func (s *Stats) ForSale() int {
	return s.ByTransaction[string(TransactionSale)]
}

// Bucket is one bar of a distribution.
type Bucket struct {
	Name  string
	Count int
}

// TypeBuckets returns the by-type counts, largest first, ties by name.
func (s *Stats) TypeBuckets() []Bucket {
	buckets := make([]Bucket, 0, len(s.ByType))
	for name, count := range s.ByType {
		buckets = append(buckets, Bucket{Name: name, Count: count})
	}
	sort.Slice(buckets, func(i, j int) bool {
		if buckets[i].Count != buckets[j].Count {
			return buckets[i].Count > buckets[j].Count
		}
		return buckets[i].Name < buckets[j].Name
	})
	return buckets
}
