package value

// List is an ordered, owned sequence of Values (spec §3: "A List owns its
// elements; elements are themselves Values; order is observable.").
type List struct {
	elements []Value
}

// NewList creates an empty list.
func NewList() *List { return &List{} }

// NewListOf creates a list from the given elements, in order.
func NewListOf(elements ...Value) *List {
	return &List{elements: append([]Value(nil), elements...)}
}

// Append adds v to the end of the list.
func (l *List) Append(v Value) { l.elements = append(l.elements, v) }

// Len returns the number of elements.
func (l *List) Len() int { return len(l.elements) }

// Elements returns the list's elements in order. The returned slice must
// not be mutated by callers.
func (l *List) Elements() []Value { return l.elements }

// Get returns the element at index i.
func (l *List) Get(i int) Value { return l.elements[i] }
