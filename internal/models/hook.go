package models

// Hook is a callback slot holding at most one subscriber. Registering a new
// callback silently replaces the previous one; this is deliberate for
// single-active-view usage, not a general event bus.
//
// The zero value is an empty slot ready for use.
type Hook[T any] struct {
	fn  func(T)
	gen int
}

// Subscribe installs fn as the slot's callback, replacing any previous
// registration. The returned disposer clears the slot, but only while this
// registration is still the active one, so a later subscriber is never
// unhooked by a stale disposer.
func (h *Hook[T]) Subscribe(fn func(T)) func() {
	h.fn = fn
	h.gen++
	gen := h.gen

	return func() {
		if h.gen == gen {
			h.fn = nil
		}
	}
}

// Clear empties the slot and invalidates outstanding disposers.
func (h *Hook[T]) Clear() {
	h.fn = nil
	h.gen++
}

// emit invokes the subscribed callback, if any.
func (h *Hook[T]) emit(v T) {
	if h.fn != nil {
		h.fn(v)
	}
}
