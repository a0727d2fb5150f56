package logic

// Navigator handles cursor movement and viewport management over a flat list
type Navigator struct {
	selectedIndex  int
	viewportOffset int
	viewportHeight int
	totalItems     int
}

// NewNavigator creates a new navigator
func NewNavigator() *Navigator {
	return &Navigator{viewportHeight: 1}
}

// GetSelectedIndex returns the current selected index
func (n *Navigator) GetSelectedIndex() int {
	return n.selectedIndex
}

// GetViewportOffset returns the index of the first visible item
func (n *Navigator) GetViewportOffset() int {
	return n.viewportOffset
}

// GetViewportHeight returns the number of visible rows
func (n *Navigator) GetViewportHeight() int {
	return n.viewportHeight
}

// SetViewportHeight resizes the viewport
func (n *Navigator) SetViewportHeight(height int) {
	if height < 1 {
		height = 1
	}
	n.viewportHeight = height
	n.ensureSelectedVisible()
}

// SetTotalItems updates the list length, keeping the cursor in range
func (n *Navigator) SetTotalItems(total int) {
	if total < 0 {
		total = 0
	}
	n.totalItems = total
	n.ensureSelectedVisible()
}

// SetSelectedIndex sets the selected index and ensures it's visible
func (n *Navigator) SetSelectedIndex(index int) (int, int) {
	n.selectedIndex = index
	n.ensureSelectedVisible()
	return n.selectedIndex, n.viewportOffset
}

// Move moves the cursor by delta rows
func (n *Navigator) Move(delta int) {
	n.SetSelectedIndex(n.selectedIndex + delta)
}

// PageDown moves the cursor one viewport towards the end
func (n *Navigator) PageDown() {
	n.Move(n.viewportHeight)
}

// PageUp moves the cursor one viewport towards the start
func (n *Navigator) PageUp() {
	n.Move(-n.viewportHeight)
}

// Home moves to the first item
func (n *Navigator) Home() {
	n.SetSelectedIndex(0)
}

// End moves to the last item
func (n *Navigator) End() {
	n.SetSelectedIndex(n.totalItems - 1)
}

// Reset moves back to the start of the list
func (n *Navigator) Reset() {
	n.selectedIndex = 0
	n.viewportOffset = 0
	n.ensureSelectedVisible()
}

// NearEnd reports whether the unseen rows past the viewport are within
// threshold viewports of the end of the list. A list that does not fill the
// viewport is always near its end.
func (n *Navigator) NearEnd(threshold float64) bool {
	remaining := n.totalItems - (n.viewportOffset + n.viewportHeight)
	return float64(remaining) <= threshold*float64(n.viewportHeight)
}

func (n *Navigator) ensureSelectedVisible() {
	if n.selectedIndex >= n.totalItems {
		n.selectedIndex = n.totalItems - 1
	}
	if n.selectedIndex < 0 {
		n.selectedIndex = 0
	}

	if n.selectedIndex < n.viewportOffset {
		n.viewportOffset = n.selectedIndex
	}
	if n.selectedIndex >= n.viewportOffset+n.viewportHeight {
		n.viewportOffset = n.selectedIndex - n.viewportHeight + 1
	}

	// keep the viewport filled when the list shrinks
	maxOffset := n.totalItems - n.viewportHeight
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
