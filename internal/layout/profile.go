// Package layout maps terminal height to the spacing and field set of the
// info panel.
package layout

import "sort"

// MinHeight is the smallest terminal height that gets a full frame.
const MinHeight = 20

// Field is one line of the info panel.
type Field int

const (
	FieldPrice Field = iota
	FieldChange24h
	FieldChange1h
)

// Profile is the spacing and visibility for one height bucket.
type Profile struct {
	LeadingBlankLines  uint
	TrailingBlankLines uint
	ShowChange1h       bool

	// Separators puts a blank line between fields.
	Separators bool

	// TooSmall replaces the whole frame with a notice.
	TooSmall bool
}

// Fields returns the fields shown by p, top to bottom.
func (p Profile) Fields() []Field {
	if p.TooSmall {
		return nil
	}
	fields := []Field{FieldPrice, FieldChange24h}
	if p.ShowChange1h {
		fields = append(fields, FieldChange1h)
	}
	return fields
}

// Bucket is a half-open height range [Min, Max). Max of zero means unbounded.
type Bucket struct {
	Min     uint
	Max     uint
	Profile Profile
}

// Contains reports whether height falls in b.
func (b Bucket) Contains(height uint) bool {
	return height >= b.Min && (b.Max == 0 || height < b.Max)
}

var buckets = []Bucket{
	{Min: 0, Max: MinHeight, Profile: Profile{TooSmall: true}},
	{Min: MinHeight, Max: 24, Profile: Profile{}},
	{Min: 24, Max: 27, Profile: Profile{LeadingBlankLines: 1, TrailingBlankLines: 1, Separators: true}},
	{Min: 27, Max: 34, Profile: Profile{LeadingBlankLines: 2, TrailingBlankLines: 2, Separators: true}},
	{Min: 34, Max: 45, Profile: Profile{LeadingBlankLines: 3, TrailingBlankLines: 3, Separators: true}},
	{Min: 45, Max: 55, Profile: Profile{LeadingBlankLines: 4, TrailingBlankLines: 4, Separators: true, ShowChange1h: true}},
	{Min: 55, Max: 0, Profile: Profile{LeadingBlankLines: 5, TrailingBlankLines: 5, Separators: true, ShowChange1h: true}},
}

// Buckets returns a copy of the bucket table in ascending order.
func Buckets() []Bucket {
	out := make([]Bucket, len(buckets))
	copy(out, buckets)
	return out
}

// Select returns the profile for a terminal of the given height.
func Select(height uint) Profile {
	// First bucket whose lower bound is above height, minus one.
	i := sort.Search(len(buckets), func(i int) bool {
		return buckets[i].Min > height
	})
	return buckets[i-1].Profile
}
