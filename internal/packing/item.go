// Package packing generates categorized packing lists from trip parameters and
// weather, and provides the checklist operations applied to a saved list.
package packing

// Category groups packing items.
type Category string

const (
	CategoryEssentials  Category = "essentials"
	CategoryClothing    Category = "clothing"
	CategoryToiletries  Category = "toiletries"
	CategoryElectronics Category = "electronics"
	CategoryDocuments   Category = "documents"
	CategoryActivities  Category = "activities"
)

// Categories lists every category in display order.
var Categories = []Category{
	CategoryEssentials,
	CategoryClothing,
	CategoryToiletries,
	CategoryElectronics,
	CategoryDocuments,
	CategoryActivities,
}

// ParseCategory returns the category for s and whether it is known.
func ParseCategory(s string) (Category, bool) {
	for _, c := range Categories {
		if string(c) == s {
			return c, true
		}
	}
	return "", false
}

// Item is a single packing list entry.
type Item struct {
	Name     string `json:"name"`
	Quantity int    `json:"quantity"`
	Packed   bool   `json:"packed"`
	Purpose  string `json:"purpose,omitempty"`
	IsLiquid bool   `json:"isLiquid"`
	// VolumeMl is a display string such as "100ml". Set only for liquids.
	VolumeMl string `json:"volumeMl,omitempty"`
}

func item(name string, quantity int, purpose string) Item {
	return Item{Name: name, Quantity: quantity, Purpose: purpose}
}

func liquid(name string, quantity int, purpose, volume string) Item {
	return Item{Name: name, Quantity: quantity, Purpose: purpose, IsLiquid: true, VolumeMl: volume}
}

// List maps each category to its items in insertion order.
type List map[Category][]Item

// NewList returns a list with every category present and empty.
func NewList() List {
	l := make(List, len(Categories))
	for _, c := range Categories {
		l[c] = []Item{}
	}
	return l
}

// Append adds items to a category, preserving order.
func (l List) Append(c Category, items ...Item) {
	l[c] = append(l[c], items...)
}

// Merge appends every category of other onto l, in display order.
func (l List) Merge(other List) {
	for _, c := range Categories {
		if items := other[c]; len(items) > 0 {
			l.Append(c, items...)
		}
	}
}

// Clone returns a deep copy.
func (l List) Clone() List {
	out := make(List, len(l))
	for c, items := range l {
		out[c] = append([]Item{}, items...)
	}
	return out
}

// Find returns the first item in any category with the given name.
func (l List) Find(name string) (Category, Item, bool) {
	for _, c := range Categories {
		for _, it := range l[c] {
			if it.Name == name {
				return c, it, true
			}
		}
	}
	return "", Item{}, false
}

// Count returns the number of items across all categories.
func (l List) Count() int {
	n := 0
	for _, items := range l {
		n += len(items)
	}
	return n
}
