package catalog

// PageSize is how many more results each reveal materializes.
const PageSize = 50

// Window tracks how much of the filtered result is on screen. It only ever
// describes a prefix of the current result; visible never exceeds total.
type Window struct {
	visible int
	total   int
}

// NewWindow starts a window on a result of the given size.
func NewWindow(total int) Window {
	var w Window
	w.Reset(total)
	return w
}

// Reset starts over at one page, as when the search term changes.
func (w *Window) Reset(total int) {
	w.total = max(0, total)
	w.visible = min(PageSize, w.total)
}

// SetTotal follows a result whose size changed without a new search term.
// The revealed count is kept but clamped to the new size.
func (w *Window) SetTotal(total int) {
	w.total = max(0, total)
	w.visible = min(w.visible, w.total)
}

// Reveal advances one page and reports whether anything new became visible.
func (w *Window) Reveal() bool {
	next := min(w.visible+PageSize, w.total)
	if next == w.visible {
		return false
	}
	w.visible = next
	return true
}

// Visible is the number of results on screen.
func (w Window) Visible() int { return w.visible }

// Total is the size of the current result.
func (w Window) Total() int { return w.total }

// HasMore reports whether a reveal would show more results.
func (w Window) HasMore() bool { return w.visible < w.total }

// Slice returns the visible prefix of items.
func Slice[T any](w Window, items []T) []T {
	return items[:min(w.visible, len(items))]
}
