package model

// List is an ordered sequence of Values. VType, when non-empty,
// constrains every element's type; an empty VType means "any".
type List struct {
	VType   string
	Comment string
	items   []Value
}

// NewList creates an empty List with the given optional vtype.
func NewList(vtype string) *List {
	return &List{VType: vtype}
}

// Len returns the number of elements.
func (l *List) Len() int { return len(l.items) }

// At returns the element at index i.
func (l *List) At(i int) Value { return l.items[i] }

// Set replaces the element at index i.
func (l *List) Set(i int, v Value) { l.items[i] = v }

// Append adds v to the end of the list.
func (l *List) Append(v Value) { l.items = append(l.items, v) }

// Items returns the list's elements. The returned slice aliases internal
// storage and must not be mutated by the caller; use Append/Set to mutate.
func (l *List) Items() []Value { return l.items }

// Equal reports whether two lists have the same vtype and elementwise-equal
// contents in the same order.
func (l *List) Equal(o *List) bool {
	if l == nil || o == nil {
		return l == o
	}
	if l.VType != o.VType || len(l.items) != len(o.items) {
		return false
	}
	for i := range l.items {
		if !l.items[i].Equal(o.items[i]) {
			return false
		}
	}
	return true
}
