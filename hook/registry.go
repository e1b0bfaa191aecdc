package hook

import "github.com/elliotchance/orderedmap/v2"

// Handle identifies a single registration in a Registry. The zero Handle is never issued.
type Handle uint64

// Registry is an ordered list of callbacks. Callbacks run in the order they were registered, and
// a Handle returned by Register is required to remove one again. A Registry is not safe for
// concurrent use.
type Registry[F any] struct {
	next Handle
	fns  *orderedmap.OrderedMap[Handle, F]
}

// NewRegistry returns an empty Registry.
func NewRegistry[F any]() *Registry[F] {
	return &Registry[F]{fns: orderedmap.NewOrderedMap[Handle, F]()}
}

// Register appends f to the registry and returns the handle needed to unregister it.
func (r *Registry[F]) Register(f F) Handle {
	r.next++
	r.fns.Set(r.next, f)
	return r.next
}

// Unregister removes the callback registered under h. It returns false if h was not registered.
func (r *Registry[F]) Unregister(h Handle) bool {
	return r.fns.Delete(h)
}

// Len returns the amount of registered callbacks.
func (r *Registry[F]) Len() int {
	return r.fns.Len()
}

// Each calls fn for every registered callback in registration order. The set of callbacks is
// captured before the first call, so callbacks may register or unregister freely while running.
func (r *Registry[F]) Each(fn func(F)) {
	if r.fns.Len() == 0 {
		return
	}

	snapshot := make([]F, 0, r.fns.Len())
	for el := r.fns.Front(); el != nil; el = el.Next() {
		snapshot = append(snapshot, el.Value)
	}
	for _, f := range snapshot {
		fn(f)
	}
}
