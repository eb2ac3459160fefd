package domain

import (
	"fmt"

	"github.com/google/uuid"
)

// Item location tokens.
const (
	LocationApartment  = "apartment"
	LocationPublicArea = "public_area"
)

// DefaultItemCap matches the official inspection form, which has room for
// eight reported conditions.
const DefaultItemCap = 8

// Item is one repeatable child record, e.g. a reported housing condition.
// Its ID is generated at creation and stable for the item's lifetime.
type Item struct {
	ID          string `json:"id"`
	Location    string `json:"location"`
	Room        string `json:"room"`
	Description string `json:"description"`
}

// ItemPatch is a partial item update; nil fields are left untouched.
type ItemPatch struct {
	Location    *string `json:"location,omitempty" mapstructure:"location"`
	Room        *string `json:"room,omitempty" mapstructure:"room"`
	Description *string `json:"description,omitempty" mapstructure:"description"`
}

// Collection is an ordered, capped list of Items. Insertion order is
// preserved for display; it carries no other meaning.
type Collection struct {
	limit int
	items []Item
}

// NewCollection creates an empty collection bounded at limit entries.
// A non-positive limit falls back to DefaultItemCap.
func NewCollection(limit int) *Collection {
	if limit <= 0 {
		limit = DefaultItemCap
	}
	return &Collection{limit: limit}
}

// Add appends a fresh item with default field values and a new unique ID.
// Once the collection is full it refuses with ErrCollectionFull and leaves
// existing records untouched.
func (c *Collection) Add() (Item, error) {
	if len(c.items) >= c.limit {
		return Item{}, fmt.Errorf("%w: limit is %d", ErrCollectionFull, c.limit)
	}
	item := Item{
		ID:       uuid.NewString(),
		Location: LocationApartment,
	}
	c.items = append(c.items, item)
	return item, nil
}

// Update merges the patch into the item matching id.
func (c *Collection) Update(id string, patch ItemPatch) error {
	for i := range c.items {
		if c.items[i].ID != id {
			continue
		}
		if patch.Location != nil {
			c.items[i].Location = *patch.Location
		}
		if patch.Room != nil {
			c.items[i].Room = *patch.Room
		}
		if patch.Description != nil {
			c.items[i].Description = *patch.Description
		}
		return nil
	}
	return fmt.Errorf("%w: %s", ErrItemNotFound, id)
}

// Remove deletes the item matching id. It reports whether anything was
// removed; removing an absent id is a no-op.
func (c *Collection) Remove(id string) bool {
	for i := range c.items {
		if c.items[i].ID == id {
			c.items = append(c.items[:i], c.items[i+1:]...)
			return true
		}
	}
	return false
}

// Get returns the item matching id.
func (c *Collection) Get(id string) (Item, bool) {
	for _, item := range c.items {
		if item.ID == id {
			return item, true
		}
	}
	return Item{}, false
}

// Items returns a copy of the records in insertion order.
func (c *Collection) Items() []Item {
	return append([]Item(nil), c.items...)
}

// Len returns the number of records.
func (c *Collection) Len() int { return len(c.items) }

// Limit returns the maximum number of records.
func (c *Collection) Limit() int { return c.limit }

// Replace swaps the contents, used on hydration. Records beyond the limit
// are dropped; records without an ID get a fresh one.
func (c *Collection) Replace(items []Item) {
	if len(items) > c.limit {
		items = items[:c.limit]
	}
	c.items = append([]Item(nil), items...)
	for i := range c.items {
		if c.items[i].ID == "" {
			c.items[i].ID = uuid.NewString()
		}
	}
}

// Clone returns a deep copy.
func (c *Collection) Clone() *Collection {
	clone := NewCollection(c.limit)
	clone.items = append([]Item(nil), c.items...)
	return clone
}
