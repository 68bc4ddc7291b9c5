package logic

// Navigator tracks the cursor and scroll offset over a flat list of rows
type Navigator struct {
	selectedIndex  int
	viewportOffset int
	viewportHeight int
	totalItems     int
}

// NewNavigator creates a new navigator
func NewNavigator() *Navigator {
	return &Navigator{viewportHeight: 10}
}

// SetTotal sets the number of rows and clamps the cursor into range
func (n *Navigator) SetTotal(total int) {
	if total < 0 {
		total = 0
	}
	n.totalItems = total
	n.SetSelectedIndex(n.selectedIndex)
}

// SetViewportHeight sets how many rows fit on screen
func (n *Navigator) SetViewportHeight(height int) {
	if height < 1 {
		height = 1
	}
	n.viewportHeight = height
	n.ensureSelectedVisible()
}

// Reset moves the cursor back to the first row
func (n *Navigator) Reset() {
	n.selectedIndex = 0
	n.viewportOffset = 0
}

// GetSelectedIndex returns the current selected index
func (n *Navigator) GetSelectedIndex() int {
	return n.selectedIndex
}

// GetViewportOffset returns the first visible row
func (n *Navigator) GetViewportOffset() int {
	return n.viewportOffset
}

// GetViewportHeight returns the number of rows on screen
func (n *Navigator) GetViewportHeight() int {
	return n.viewportHeight
}

// SetSelectedIndex sets the selected index and ensures it's visible
func (n *Navigator) SetSelectedIndex(index int) (int, int) {
	if index > n.totalItems-1 {
		index = n.totalItems - 1
	}
	if index < 0 {
		index = 0
	}
	n.selectedIndex = index
	n.ensureSelectedVisible()
	return n.selectedIndex, n.viewportOffset
}

// Move applies a navigation direction: "up", "down", "pageup", "pagedown", "home" or "end"
func (n *Navigator) Move(direction string) {
	switch direction {
	case "up":
		n.SetSelectedIndex(n.selectedIndex - 1)
	case "down":
		n.SetSelectedIndex(n.selectedIndex + 1)
	case "pageup":
		n.SetSelectedIndex(n.selectedIndex - n.pageSize())
	case "pagedown":
		n.SetSelectedIndex(n.selectedIndex + n.pageSize())
	case "home":
		n.SetSelectedIndex(0)
	case "end":
		n.SetSelectedIndex(n.totalItems - 1)
	}
}

// VisibleRange returns the half-open row range [start, end) to render
func (n *Navigator) VisibleRange() (int, int) {
	end := n.viewportOffset + n.effectiveHeight()
	if end > n.totalItems {
		end = n.totalItems
	}
	return n.viewportOffset, end
}

// HasMoreAbove reports whether rows are hidden above the viewport
func (n *Navigator) HasMoreAbove() bool {
	return n.viewportOffset > 0
}

// HasMoreBelow reports whether rows are hidden below the viewport
func (n *Navigator) HasMoreBelow() bool {
	_, end := n.VisibleRange()
	return end < n.totalItems
}

func (n *Navigator) pageSize() int {
	if size := n.effectiveHeight() - 1; size > 1 {
		return size
	}
	return 1
}

// effectiveHeight is the viewport minus lines used by scroll indicators
func (n *Navigator) effectiveHeight() int {
	if n.totalItems <= n.viewportHeight {
		return n.viewportHeight
	}
	h := n.viewportHeight - 2
	if h < 1 {
		h = 1
	}
	return h
}

// ensureSelectedVisible adjusts the viewport to keep the selected item visible
func (n *Navigator) ensureSelectedVisible() {
	height := n.effectiveHeight()

	if n.selectedIndex < n.viewportOffset {
		n.viewportOffset = n.selectedIndex
	}
	if n.selectedIndex >= n.viewportOffset+height {
		n.viewportOffset = n.selectedIndex - height + 1
	}

	maxOffset := n.totalItems - height
	if maxOffset < 0 {
		maxOffset = 0
	}
	if n.viewportOffset > maxOffset {
		n.viewportOffset = maxOffset
	}
	if n.viewportOffset < 0 {
		n.viewportOffset = 0
	}
}
