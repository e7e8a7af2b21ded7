package packing

import (
	"errors"
	"strconv"
	"strings"
	"time"
)

// Checklist errors.
var (
	ErrChecklistNotFound = errors.New("packing list not found")
	ErrChecklistExists   = errors.New("packing list already exists for trip")
	ErrItemNotFound      = errors.New("packing item not found")
	ErrEmptyItemName     = errors.New("item name is required")

	// ErrChecklistConflict means the checklist changed since it was read.
	ErrChecklistConflict = errors.New("packing list was modified concurrently")
)

// MaxItemQuantity caps user-adjusted quantities.
const MaxItemQuantity = 999

// maxVolumeMl caps a parsed container volume.
const maxVolumeMl = 100_000

// CarryOnLiquidLimitMl is the per-container limit for cabin baggage.
const CarryOnLiquidLimitMl = 100

// DefaultLiquidVolume is assigned to liquids added or renamed by the user.
const DefaultLiquidVolume = "100ml"

var liquidKeywords = []string{"liquid", "shampoo", "conditioner", "lotion", "sunscreen", "gel"}

// Checklist is a saved, user-editable packing list for one trip.
type Checklist struct {
	ID        string
	TripID    string
	UserID    string
	Items     List
	Notes     string
	CreatedAt time.Time
	UpdatedAt time.Time

	// Version increases with every saved change.
	Version int
}

// LooksLiquid reports whether an item name suggests a liquid.
func LooksLiquid(name string) bool {
	lower := strings.ToLower(name)
	for _, kw := range liquidKeywords {
		if strings.Contains(lower, kw) {
			return true
		}
	}
	return false
}

func (c *Checklist) itemAt(category Category, index int) (*Item, error) {
	items, ok := c.Items[category]
	if !ok || index < 0 || index >= len(items) {
		return nil, ErrItemNotFound
	}
	return &items[index], nil
}

// TogglePacked flips the packed flag of an item.
func (c *Checklist) TogglePacked(category Category, index int) error {
	it, err := c.itemAt(category, index)
	if err != nil {
		return err
	}
	it.Packed = !it.Packed
	return nil
}

// AdjustQuantity adds delta to an item's quantity. A change that would take
// the quantity below 1 is ignored; the result is capped at MaxItemQuantity.
func (c *Checklist) AdjustQuantity(category Category, index, delta int) error {
	it, err := c.itemAt(category, index)
	if err != nil {
		return err
	}
	switch {
	case delta >= MaxItemQuantity-it.Quantity:
		it.Quantity = MaxItemQuantity
	case it.Quantity+delta > 0:
		it.Quantity += delta
	}
	return nil
}

// RemoveItem deletes an item.
func (c *Checklist) RemoveItem(category Category, index int) error {
	if _, err := c.itemAt(category, index); err != nil {
		return err
	}
	items := c.Items[category]
	c.Items[category] = append(items[:index:index], items[index+1:]...)
	return nil
}

// RenameItem changes an item's name and re-infers whether it is a liquid.
// A liquid keeps its existing volume or gets DefaultLiquidVolume.
func (c *Checklist) RenameItem(category Category, index int, name string) error {
	name = strings.TrimSpace(name)
	if name == "" {
		return ErrEmptyItemName
	}

	it, err := c.itemAt(category, index)
	if err != nil {
		return err
	}

	it.Name = name
	it.IsLiquid = LooksLiquid(name)
	switch {
	case !it.IsLiquid:
		it.VolumeMl = ""
	case it.VolumeMl == "":
		it.VolumeMl = DefaultLiquidVolume
	}
	return nil
}

// AddCustomItem appends a user item to essentials and returns it.
func (c *Checklist) AddCustomItem(name string) (Item, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return Item{}, ErrEmptyItemName
	}

	it := Item{Name: name, Quantity: 1, Purpose: "Custom item"}
	if LooksLiquid(name) {
		it.IsLiquid = true
		it.VolumeMl = DefaultLiquidVolume
	}

	if c.Items == nil {
		c.Items = NewList()
	}
	c.Items.Append(CategoryEssentials, it)
	return it, nil
}

// SetNotes replaces the free-text notes.
func (c *Checklist) SetNotes(notes string) {
	c.Notes = notes
}

// Progress summarises how much of a list is packed.
type Progress struct {
	Packed  int
	Total   int
	Percent int
}

// Progress counts packed items across all categories.
func (l List) Progress() Progress {
	var p Progress
	for _, items := range l {
		for _, it := range items {
			p.Total++
			if it.Packed {
				p.Packed++
			}
		}
	}
	if p.Total > 0 {
		p.Percent = p.Packed * 100 / p.Total
	}
	return p
}

// LiquidsSummary describes the liquids in a list.
type LiquidsSummary struct {
	Items   []Item
	TotalMl int
	// OverLimit lists liquids whose container exceeds CarryOnLiquidLimitMl.
	OverLimit []Item
}

// Liquids collects liquid items in display order. TotalMl multiplies each
// volume by the item quantity.
func (l List) Liquids() LiquidsSummary {
	var s LiquidsSummary
	for _, c := range Categories {
		for _, it := range l[c] {
			if !it.IsLiquid {
				continue
			}
			s.Items = append(s.Items, it)
			ml := ParseVolumeMl(it.VolumeMl)
			s.TotalMl += ml * it.Quantity
			if ml > CarryOnLiquidLimitMl {
				s.OverLimit = append(s.OverLimit, it)
			}
		}
	}
	return s
}

// ParseVolumeMl reads a volume such as "100ml" or "75 ml". Unparseable input
// is 0 and very large volumes are capped.
func ParseVolumeMl(volume string) int {
	v := strings.TrimSpace(strings.ToLower(volume))
	v = strings.TrimSpace(strings.TrimSuffix(v, "ml"))
	n, err := strconv.Atoi(v)
	if err != nil || n < 0 {
		return 0
	}
	return min(n, maxVolumeMl)
}
