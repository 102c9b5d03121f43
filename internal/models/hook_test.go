package models

import "testing"

func TestHook(t *testing.T) {
	t.Run("Single Subscriber", func(t *testing.T) {
		var h Hook[int]
		var first, second int

		h.Subscribe(func(v int) { first = v })
		h.Subscribe(func(v int) { second = v })

		h.emit(7)

		if first != 0 {
			t.Error("replaced callback should not fire")
		}
		if second != 7 {
			t.Errorf("expected active callback to receive 7, got %d", second)
		}
	})

	t.Run("Empty Slot Emit", func(t *testing.T) {
		var h Hook[string]
		h.emit("no subscriber") // must not panic
	})

	t.Run("Disposer Clears Slot", func(t *testing.T) {
		var h Hook[int]
		fired := false

		dispose := h.Subscribe(func(int) { fired = true })
		dispose()
		h.emit(1)

		if fired {
			t.Error("disposed callback should not fire")
		}
	})

	t.Run("Stale Disposer Keeps New Subscriber", func(t *testing.T) {
		var h Hook[int]
		var got int

		stale := h.Subscribe(func(int) {})
		h.Subscribe(func(v int) { got = v })
		stale()

		h.emit(3)

		if got != 3 {
			t.Errorf("stale disposer should not unhook the new subscriber, got %d", got)
		}
	})

	t.Run("Clear", func(t *testing.T) {
		var h Hook[int]
		fired := false

		h.Subscribe(func(int) { fired = true })
		h.Clear()
		h.emit(1)

		if fired {
			t.Error("cleared slot should not fire")
		}
	})
}
