// internal/suggest/cursor.go
//
// Keyboard traversal over a suggestion list: wrap-around up/down, commit of
// the highlighted item, dismiss without commit. Kept free of any UI toolkit so
// every mode shares the same navigation behavior.

package suggest

// Cursor tracks the highlighted item in a suggestion list.
// The zero value has no items and nothing highlighted.
type Cursor struct {
	items  []string
	active int // index of highlighted item, -1 when none
}

// NewCursor builds a cursor over items with nothing highlighted yet.
func NewCursor(items []string) *Cursor {
	return &Cursor{items: items, active: -1}
}

// SetItems replaces the list and clears the highlight.
func (c *Cursor) SetItems(items []string) {
	c.items = items
	c.active = -1
}

// Down moves the highlight to the next item, wrapping to the first.
func (c *Cursor) Down() {
	if len(c.items) == 0 {
		return
	}
	if c.active < len(c.items)-1 {
		c.active++
	} else {
		c.active = 0
	}
}

// Up moves the highlight to the previous item, wrapping to the last.
func (c *Cursor) Up() {
	if len(c.items) == 0 {
		return
	}
	if c.active > 0 {
		c.active--
	} else {
		c.active = len(c.items) - 1
	}
}

// Commit returns the highlighted item (Enter). ok is false when nothing is
// highlighted.
func (c *Cursor) Commit() (string, bool) {
	if c.active < 0 || c.active >= len(c.items) {
		return "", false
	}
	return c.items[c.active], true
}

// Dismiss clears the list and highlight (Escape).
func (c *Cursor) Dismiss() {
	c.items = nil
	c.active = -1
}

// Active returns the highlighted index, -1 when none.
func (c *Cursor) Active() int { return c.active }

// Items returns the current list.
func (c *Cursor) Items() []string { return c.items }
