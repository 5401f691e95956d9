package results

// Cursor is the selection over a ResultSet. It is either none or selected(i);
// the zero value is none.
type Cursor struct {
	index    int
	selected bool

	// Offset is the first visible row, maintained by ScrollTo.
	Offset int
}

// Selected returns the selected index, if any.
func (c *Cursor) Selected() (int, bool) {
	return c.index, c.selected
}

// Select moves the cursor to i without bounds checks.
func (c *Cursor) Select(i int) {
	c.index = i
	c.selected = true
}

// Reset clears the selection and scroll offset.
func (c *Cursor) Reset() {
	c.index = 0
	c.selected = false
	c.Offset = 0
}

// Next advances the selection over a list of n items, wrapping to the first
// item after the last. With no selection it selects the first item.
func (c *Cursor) Next(n int) {
	if n == 0 {
		return
	}
	if !c.selected || c.index >= n-1 {
		c.Select(0)
		return
	}
	c.Select(c.index + 1)
}

// Previous moves the selection back over a list of n items, wrapping to the
// last item before the first. With no selection it selects the last item.
func (c *Cursor) Previous(n int) {
	if n == 0 {
		return
	}
	if !c.selected || c.index == 0 || c.index >= n {
		c.Select(n - 1)
		return
	}
	c.Select(c.index - 1)
}

// Resync re-derives the selection after the list changed to n items.
// An empty list clears the selection; a selection past the end wraps to the
// first item; otherwise the same index stays selected.
func (c *Cursor) Resync(n int) {
	if n == 0 {
		c.Reset()
		return
	}
	if c.selected && c.index >= n {
		c.Select(0)
	}
	if c.Offset >= n {
		c.Offset = 0
	}
}

// ScrollTo adjusts Offset so the selection lies within a window of visible
// rows.
func (c *Cursor) ScrollTo(visible int) {
	if visible <= 0 || !c.selected {
		c.Offset = 0
		return
	}
	if c.index < c.Offset {
		c.Offset = c.index
	}
	if c.index >= c.Offset+visible {
		c.Offset = c.index - visible + 1
	}
}
