package storefront

import (
	"encoding/json"
	"fmt"
	"sync"

	"mithai-mahal/models"
)

const cartKey = "cart"

// CartItem is a snapshot of the sweet taken when it was added. It is not
// refreshed from the server afterwards.
type CartItem struct {
	ID       string  `json:"id"`
	Name     string  `json:"name"`
	Category string  `json:"category"`
	Price    float64 `json:"price"`
	Quantity int     `json:"quantity"`
}

// Cart is the client-local basket. Every mutation is written through to storage.
type Cart struct {
	mu      sync.Mutex
	storage Storage
	items   []CartItem
}

// LoadCart rehydrates the cart saved in storage, or starts empty.
func LoadCart(storage Storage) (*Cart, error) {
	c := &Cart{storage: storage, items: []CartItem{}}

	raw, ok, err := storage.Get(cartKey)
	if err != nil {
		return nil, err
	}
	if ok {
		if err := json.Unmarshal(raw, &c.items); err != nil {
			return nil, fmt.Errorf("decode cart: %w", err)
		}
	}
	return c, nil
}

// AddItem adds quantity units of sweet, merging with an existing line for the same id.
// A quantity below one adds a single unit.
func (c *Cart) AddItem(sweet models.Sweet, quantity int) error {
	if quantity < 1 {
		quantity = 1
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	for i := range c.items {
		if c.items[i].ID == sweet.ID {
			c.items[i].Quantity += quantity
			return c.persist()
		}
	}

	c.items = append(c.items, CartItem{
		ID:       sweet.ID,
		Name:     sweet.Name,
		Category: sweet.Category,
		Price:    sweet.Price,
		Quantity: quantity,
	})
	return c.persist()
}

func (c *Cart) RemoveItem(sweetID string) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	return c.remove(sweetID)
}

// SetQuantity overwrites a line's quantity; zero or less removes the line.
func (c *Cart) SetQuantity(sweetID string, quantity int) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if quantity <= 0 {
		return c.remove(sweetID)
	}

	for i := range c.items {
		if c.items[i].ID == sweetID {
			c.items[i].Quantity = quantity
			return c.persist()
		}
	}
	return nil
}

func (c *Cart) Clear() error {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.items = []CartItem{}
	return c.persist()
}

func (c *Cart) Items() []CartItem {
	c.mu.Lock()
	defer c.mu.Unlock()

	return append([]CartItem(nil), c.items...)
}

func (c *Cart) Total() float64 {
	c.mu.Lock()
	defer c.mu.Unlock()

	var total float64
	for _, item := range c.items {
		total += item.Price * float64(item.Quantity)
	}
	return total
}

func (c *Cart) Count() int {
	c.mu.Lock()
	defer c.mu.Unlock()

	count := 0
	for _, item := range c.items {
		count += item.Quantity
	}
	return count
}

func (c *Cart) remove(sweetID string) error {
	for i := range c.items {
		if c.items[i].ID == sweetID {
			c.items = append(c.items[:i], c.items[i+1:]...)
			return c.persist()
		}
	}
	return nil
}

func (c *Cart) persist() error {
	raw, err := json.Marshal(c.items)
	if err != nil {
		return fmt.Errorf("encode cart: %w", err)
	}
	return c.storage.Set(cartKey, raw)
}
