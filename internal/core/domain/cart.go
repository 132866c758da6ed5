package domain

import (
	"encoding/json"
	"fmt"
)

// LineItem is one product in the cart. Catalog fields are copied when the
// item is first added and are not refreshed afterwards.
type LineItem struct {
	ID     int64   `json:"id"`
	Title  string  `json:"title"`
	Price  float64 `json:"price"`
	Image  string  `json:"image"`
	Amount int     `json:"amount"`
}

// NewLineItem creates a line with a single unit of product.
func NewLineItem(product Product) LineItem {
	return LineItem{
		ID:     product.ID,
		Title:  product.Title,
		Price:  product.Price,
		Image:  product.Image,
		Amount: 1,
	}
}

func (l LineItem) Subtotal() float64 {
	return l.Price * float64(l.Amount)
}

// Cart is an immutable snapshot of line items in insertion order.
// Every method that changes the cart returns a new snapshot.
type Cart struct {
	items []LineItem
}

func NewCart(items ...LineItem) Cart {
	return Cart{items: append([]LineItem(nil), items...)}
}

// Items returns a copy of the line items.
func (c Cart) Items() []LineItem {
	return append([]LineItem{}, c.items...)
}

func (c Cart) Find(productID int64) (LineItem, bool) {
	for _, item := range c.items {
		if item.ID == productID {
			return item, true
		}
	}
	return LineItem{}, false
}

// Append adds item at the end of the cart.
func (c Cart) Append(item LineItem) Cart {
	items := make([]LineItem, 0, len(c.items)+1)
	items = append(items, c.items...)
	return Cart{items: append(items, item)}
}

// Remove drops the line for productID. A missing id yields an equal cart.
func (c Cart) Remove(productID int64) Cart {
	items := make([]LineItem, 0, len(c.items))
	for _, item := range c.items {
		if item.ID != productID {
			items = append(items, item)
		}
	}
	return Cart{items: items}
}

// WithAmount replaces the amount of the line for productID, keeping its position.
func (c Cart) WithAmount(productID int64, amount int) Cart {
	items := c.Items()
	for i := range items {
		if items[i].ID == productID {
			items[i].Amount = amount
		}
	}
	return Cart{items: items}
}

// Len is the number of distinct products.
func (c Cart) Len() int {
	return len(c.items)
}

// Units is the sum of all amounts.
func (c Cart) Units() int {
	units := 0
	for _, item := range c.items {
		units += item.Amount
	}
	return units
}

func (c Cart) Total() float64 {
	var total float64
	for _, item := range c.items {
		total += item.Subtotal()
	}
	return total
}

// Validate checks that product ids are unique and every amount is at least 1.
func (c Cart) Validate() error {
	seen := make(map[int64]struct{}, len(c.items))
	for _, item := range c.items {
		if _, dup := seen[item.ID]; dup {
			return fmt.Errorf("duplicate line for product %d", item.ID)
		}
		seen[item.ID] = struct{}{}
		if item.Amount < 1 {
			return fmt.Errorf("product %d has amount %d", item.ID, item.Amount)
		}
	}
	return nil
}

// MarshalJSON encodes the cart as a plain array of line items.
func (c Cart) MarshalJSON() ([]byte, error) {
	return json.Marshal(c.Items())
}

func (c *Cart) UnmarshalJSON(data []byte) error {
	var items []LineItem
	if err := json.Unmarshal(data, &items); err != nil {
		return err
	}
	c.items = items
	return nil
}
