package model

// Collection is implemented by List and Map.
type Collection interface {
	Notifier

	// Owner returns the Node the collection is bound to, or nil.
	Owner() *Node

	// Containment reports whether the collection contains its elements.
	Containment() bool

	// Feature returns the feature name used in notifications.
	Feature() string

	// Elements returns the stored values in order.
	Elements() []any
}

var (
	_ Notifier   = (*Node)(nil)
	_ Collection = (*List)(nil)
	_ Collection = (*Map)(nil)
)

// WalkContents calls fn for v, if v is a Node or collection, and for every
// notifier reachable from it along containment edges: the values of a
// Node's containment attributes and the elements of a collection. Each
// notifier is visited once.
func WalkContents(v any, fn func(Notifier)) {
	walk(v, fn, make(map[Notifier]struct{}))
}

func walk(v any, fn func(Notifier), seen map[Notifier]struct{}) {
	if n, ok := AsNode(v); ok {
		if _, done := seen[n]; done {
			return
		}
		seen[n] = struct{}{}
		fn(n)
		for _, name := range n.names {
			if n.typ.IsContainment(name) {
				walk(n.attrs[name], fn, seen)
			}
		}
		return
	}

	c, ok := v.(Collection)
	if !ok {
		return
	}
	if _, done := seen[c]; done {
		return
	}
	seen[c] = struct{}{}
	fn(c)
	for _, e := range c.Elements() {
		walk(e, fn, seen)
	}
}

// Expand returns the candidates carried by a notification value: the
// elements of a []any batch, the values of a []Pair batch, or v itself.
func Expand(v any) []any {
	switch batch := v.(type) {
	case nil:
		return nil
	case []any:
		return batch
	case []Pair:
		values := make([]any, len(batch))
		for i, p := range batch {
			values[i] = p.Value
		}
		return values
	default:
		return []any{v}
	}
}
