package domain

import (
	"fmt"
	"strings"

	"github.com/shopspring/decimal"
)

// Item represents one priced entry of the catalog
type Item struct {
	ID       int
	Name     string
	Price    decimal.Decimal
	Quantity int
}

// Subtotal returns price times quantity for the item
func (i Item) Subtotal() decimal.Decimal {
	return i.Price.Mul(decimal.NewFromInt(int64(i.Quantity)))
}

// Label renders the item the way the price table lists it, e.g. "Produto A - R$ 10.00 (x2)"
func (i Item) Label() string {
	return fmt.Sprintf("%s - R$ %s (x%d)", i.Name, i.Price.StringFixed(2), i.Quantity)
}

// Catalog is the ordered collection of items and the single owner of their state.
// It is not safe for concurrent use; callers that share a catalog must serialize access.
type Catalog struct {
	items []Item
}

// NewCatalog creates a catalog holding a copy of the given items
func NewCatalog(items ...Item) *Catalog {
	c := &Catalog{items: make([]Item, 0, len(items))}
	c.items = append(c.items, items...)
	return c
}

// DefaultItems returns the fixed seed every fresh session starts from
func DefaultItems() []Item {
	return []Item{
		{ID: 1, Name: "Produto A", Price: decimal.NewFromInt(10), Quantity: 0},
		{ID: 2, Name: "Produto B", Price: decimal.NewFromInt(20), Quantity: 0},
	}
}

// NewSeededCatalog creates a catalog initialized with DefaultItems
func NewSeededCatalog() *Catalog {
	return NewCatalog(DefaultItems()...)
}

// Items returns a copy of the items in display order
func (c *Catalog) Items() []Item {
	out := make([]Item, len(c.items))
	copy(out, c.items)
	return out
}

// Len returns the number of items in the catalog
func (c *Catalog) Len() int {
	return len(c.items)
}

// Find returns the item with the given id
func (c *Catalog) Find(id int) (Item, bool) {
	if idx := c.indexOf(id); idx >= 0 {
		return c.items[idx], true
	}
	return Item{}, false
}

// Increment adds one to the quantity of the item with the given id.
// An unknown id leaves the catalog untouched; the return value reports whether anything changed.
func (c *Catalog) Increment(id int) bool {
	idx := c.indexOf(id)
	if idx < 0 {
		return false
	}
	c.items[idx].Quantity++
	return true
}

// Decrement removes one from the quantity of the item with the given id.
// Quantities never go below zero: decrementing an empty counter or an unknown id is a no-op.
func (c *Catalog) Decrement(id int) bool {
	idx := c.indexOf(id)
	if idx < 0 || c.items[idx].Quantity == 0 {
		return false
	}
	c.items[idx].Quantity--
	return true
}

// AddItem validates the submitted name and price text and appends a new item with quantity 0
func (c *Catalog) AddItem(name, priceText string) (Item, error) {
	if name == "" || priceText == "" {
		return Item{}, ErrMissingField
	}

	price, err := ParsePrice(priceText)
	if err != nil {
		return Item{}, err
	}

	item := Item{
		ID:       c.nextID(),
		Name:     name,
		Price:    price,
		Quantity: 0,
	}
	c.items = append(c.items, item)
	return item, nil
}

// DeleteItem removes the item with the given id, reporting whether one was removed
func (c *Catalog) DeleteItem(id int) (Item, bool) {
	idx := c.indexOf(id)
	if idx < 0 {
		return Item{}, false
	}
	removed := c.items[idx]
	c.items = append(c.items[:idx], c.items[idx+1:]...)
	return removed, true
}

// Total returns the sum of price times quantity over every item.
// It is always derived from the items, never stored.
func (c *Catalog) Total() decimal.Decimal {
	total := decimal.Zero
	for _, item := range c.items {
		total = total.Add(item.Subtotal())
	}
	return total
}

// FormattedTotal returns Total rounded to two decimal places
func (c *Catalog) FormattedTotal() string {
	return c.Total().StringFixed(2)
}

// TotalLabel renders the total line shown under the table
func (c *Catalog) TotalLabel() string {
	return totalLabel(c.Total())
}

// Snapshot returns a detached copy of the catalog state for rendering
func (c *Catalog) Snapshot() Snapshot {
	return Snapshot{
		Items: c.Items(),
		Total: c.Total(),
	}
}

// Snapshot is a read-only view of the catalog at one point in time
type Snapshot struct {
	Items []Item
	Total decimal.Decimal
}

// FormattedTotal returns the snapshot total rounded to two decimal places
func (s Snapshot) FormattedTotal() string {
	return s.Total.StringFixed(2)
}

// TotalLabel renders the snapshot total line
func (s Snapshot) TotalLabel() string {
	return totalLabel(s.Total)
}

func totalLabel(total decimal.Decimal) string {
	return "Total: R$ " + total.StringFixed(2)
}

// maxPriceTextLen bounds the digits a submitted price may carry
const maxPriceTextLen = 20

// ParsePrice converts user-entered price text into a positive decimal.
// Only plain decimal notation is accepted: exponent forms are rejected, the text is bounded
// by maxPriceTextLen, and a value that shows as R$ 0.00 is not a valid price.
func ParsePrice(text string) (decimal.Decimal, error) {
	text = strings.TrimSpace(text)
	if len(text) > maxPriceTextLen || strings.ContainsAny(text, "eE") {
		return decimal.Decimal{}, ErrInvalidPrice
	}
	price, err := decimal.NewFromString(text)
	if err != nil {
		return decimal.Decimal{}, ErrInvalidPrice
	}
	if !price.Round(2).IsPositive() {
		return decimal.Decimal{}, ErrInvalidPrice
	}
	return price, nil
}

// nextID is max(existing ids)+1, or 1 for an empty catalog. Ids are not gap-filled.
func (c *Catalog) nextID() int {
	maxID := 0
	for _, item := range c.items {
		if item.ID > maxID {
			maxID = item.ID
		}
	}
	return maxID + 1
}

func (c *Catalog) indexOf(id int) int {
	for i := range c.items {
		if c.items[i].ID == id {
			return i
		}
	}
	return -1
}
