package filter

// List is a filterable, selectable collection used by popups. Items are
// identified by key for re-anchoring, and match decides visibility for a raw
// query string.
type List[T any] struct {
	items    []T
	visible  []int
	selected int
	query    string

	key   func(T) string
	match func(item T, query string) bool
}

// NewList builds an empty list. An empty query always shows every item; match
// is only consulted for non-blank queries.
func NewList[T any](key func(T) string, match func(item T, query string) bool) *List[T] {
	return &List[T]{key: key, match: match}
}

// SetItems replaces the contents and re-applies the current query, anchoring
// on preferred when non-empty and otherwise on the current selection.
func (l *List[T]) SetItems(items []T, preferred string) {
	if preferred == "" {
		preferred = l.selectedKey()
	}
	l.items = items
	l.apply(preferred)
}

// SetQuery updates the query, keeping the selected item if it stays visible.
func (l *List[T]) SetQuery(query string) {
	preferred := l.selectedKey()
	l.query = query
	l.apply(preferred)
}

// Query returns the raw query text.
func (l *List[T]) Query() string {
	return l.query
}

// Selected returns the selected item, if any is visible.
func (l *List[T]) Selected() (T, bool) {
	var zero T
	if l.selected < 0 || l.selected >= len(l.visible) {
		return zero, false
	}
	return l.items[l.visible[l.selected]], true
}

// SelectedIndex is the selection's position within the visible items.
func (l *List[T]) SelectedIndex() int {
	return l.selected
}

// Visible returns the items passing the filter, in order.
func (l *List[T]) Visible() []T {
	out := make([]T, len(l.visible))
	for i, idx := range l.visible {
		out[i] = l.items[idx]
	}
	return out
}

// Len is the number of items, visible or not.
func (l *List[T]) Len() int {
	return len(l.items)
}

// Move shifts the selection by delta, clamped to the visible range.
func (l *List[T]) Move(delta int) {
	if len(l.visible) == 0 {
		l.selected = 0
		return
	}
	next := l.selected + delta
	if next < 0 {
		next = 0
	}
	if next >= len(l.visible) {
		next = len(l.visible) - 1
	}
	l.selected = next
}

func (l *List[T]) selectedKey() string {
	item, ok := l.Selected()
	if !ok {
		return ""
	}
	return l.key(item)
}

func (l *List[T]) apply(preferred string) {
	blank := true
	for _, r := range l.query {
		if r != ' ' && r != '\t' {
			blank = false
			break
		}
	}
	var keep func(int) bool
	if !blank {
		keep = func(i int) bool { return l.match(l.items[i], l.query) }
	}
	l.visible = Indices(len(l.items), keep)
	l.selected = Anchor(l.visible, func(i int) string { return l.key(l.items[i]) }, preferred)
}
