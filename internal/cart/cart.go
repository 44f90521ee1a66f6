package cart

import (
	"sync"

	"github.com/Ah-ugo/amber-hotels-menu/internal/models"
)

// Line is one menu item selection in a cart. Quantity is always positive; a
// line that would reach zero is removed instead of being stored at zero.
type Line struct {
	Item     models.MenuItem `json:"item"`
	Quantity int             `json:"quantity"`
}

// Snapshot is a point-in-time copy of a cart, used both for order submission
// and for the durability archive. Mutating the cart after taking a snapshot
// does not affect it.
type Snapshot struct {
	Lines []Line `json:"lines"`
	Notes string `json:"notes"`
}

// Cart holds the in-progress selection for a single table session. All
// mutations are serialized internally, so handlers that enter concurrently
// each observe a fully applied previous mutation.
type Cart struct {
	mu    sync.Mutex
	lines []Line
	notes string
}

func New() *Cart {
	return &Cart{}
}

// AddItem increments the existing line for the item, or appends a new line
// with quantity 1. Adding is always valid.
func (c *Cart) AddItem(item models.MenuItem) {
	c.mu.Lock()
	defer c.mu.Unlock()

	for i := range c.lines {
		if c.lines[i].Item.ID == item.ID {
			c.lines[i].Quantity++
			return
		}
	}
	c.lines = append(c.lines, Line{Item: item, Quantity: 1})
}

// UpdateQuantity sets the line's quantity. A quantity of zero or less removes
// the line entirely. An absent itemID is a no-op.
func (c *Cart) UpdateQuantity(itemID uint, quantity int) {
	c.mu.Lock()
	defer c.mu.Unlock()

	for i := range c.lines {
		if c.lines[i].Item.ID != itemID {
			continue
		}
		if quantity <= 0 {
			c.lines = append(c.lines[:i], c.lines[i+1:]...)
		} else {
			c.lines[i].Quantity = quantity
		}
		return
	}
}

// Clear empties the cart and resets the notes. Called after a successful
// submission; a failed submission leaves the cart untouched for retry.
func (c *Cart) Clear() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.lines = nil
	c.notes = ""
}

// Lines returns a copy of the current line sequence.
func (c *Cart) Lines() []Line {
	c.mu.Lock()
	defer c.mu.Unlock()
	return append([]Line(nil), c.lines...)
}

// TotalItems is the sum of all line quantities, recomputed on every call.
func (c *Cart) TotalItems() int {
	c.mu.Lock()
	defer c.mu.Unlock()

	total := 0
	for _, l := range c.lines {
		total += l.Quantity
	}
	return total
}

// TotalPrice is the sum of price times quantity over all lines, recomputed on
// every call so it can never drift from the line sequence.
func (c *Cart) TotalPrice() float64 {
	c.mu.Lock()
	defer c.mu.Unlock()

	total := 0.0
	for _, l := range c.lines {
		total += l.Item.Price * float64(l.Quantity)
	}
	return total
}

func (c *Cart) Notes() string {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.notes
}

func (c *Cart) SetNotes(notes string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.notes = notes
}

// Snapshot copies the lines and notes under a single lock acquisition, so a
// submission built from it is isolated from concurrent cart mutation.
func (c *Cart) Snapshot() Snapshot {
	c.mu.Lock()
	defer c.mu.Unlock()
	return Snapshot{
		Lines: append([]Line(nil), c.lines...),
		Notes: c.notes,
	}
}

// Restore replaces the cart contents with an archived snapshot.
func (c *Cart) Restore(snap Snapshot) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.lines = append([]Line(nil), snap.Lines...)
	c.notes = snap.Notes
}
