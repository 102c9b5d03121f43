package history

import (
	"fmt"
	"testing"
)

func TestStack(t *testing.T) {
	t.Run("Log And Undo", func(t *testing.T) {
		s := New(10)
		value := "before"

		s.Log("change value", func() { value = "before" })
		value = "after"

		if !s.Undo() {
			t.Fatal("undo should succeed")
		}

		if value != "before" {
			t.Errorf("expected value restored to before, got %s", value)
		}
	})

	t.Run("Undo Empty Is NoOp", func(t *testing.T) {
		s := New(10)

		if s.Undo() {
			t.Error("undo on empty stack should return false")
		}
	})

	t.Run("LIFO Order", func(t *testing.T) {
		s := New(10)
		var order []int

		for i := 1; i <= 3; i++ {
			s.Log(fmt.Sprintf("edit %d", i), func() { order = append(order, i) })
		}

		for range 3 {
			s.Undo()
		}

		if len(order) != 3 || order[0] != 3 || order[1] != 2 || order[2] != 1 {
			t.Errorf("expected reverts in order [3 2 1], got %v", order)
		}
	})

	t.Run("Depth Tracking", func(t *testing.T) {
		s := New(10)

		s.Log("a", func() {})
		s.Log("b", func() {})

		if s.Len() != 2 {
			t.Errorf("expected depth 2, got %d", s.Len())
		}

		s.Undo()

		if s.Len() != 1 {
			t.Errorf("expected depth 1 after undo, got %d", s.Len())
		}
	})

	t.Run("Suppression During Undo", func(t *testing.T) {
		s := New(10)

		// Revert re-enters Log the way model mutators do.
		s.Log("outer", func() {
			s.Log("inner", func() {})
			s.Log("inner 2", func() {})
		})

		s.Undo()

		if s.Len() != 0 {
			t.Errorf("no records should be appended during undo, got depth %d", s.Len())
		}
	})

	t.Run("Logging Resumes After Undo", func(t *testing.T) {
		s := New(10)

		s.Log("first", func() {})
		s.Undo()
		s.Log("second", func() {})

		if s.Len() != 1 {
			t.Errorf("expected depth 1, got %d", s.Len())
		}
	})

	t.Run("Max Depth Discards Oldest", func(t *testing.T) {
		s := New(3)
		var reverted []string

		for _, label := range []string{"a", "b", "c", "d", "e"} {
			s.Log(label, func() { reverted = append(reverted, label) })
		}

		if s.Len() != 3 {
			t.Fatalf("expected stack capped at 3, got %d", s.Len())
		}

		for s.CanUndo() {
			s.Undo()
		}

		if len(reverted) != 3 || reverted[0] != "e" || reverted[2] != "c" {
			t.Errorf("expected newest three records [e d c], got %v", reverted)
		}
	})

	t.Run("NextDescription", func(t *testing.T) {
		s := New(10)

		if _, ok := s.NextDescription(); ok {
			t.Error("empty stack should have no next description")
		}

		s.Log("rename playlist", func() {})

		desc, ok := s.NextDescription()
		if !ok || desc != "rename playlist" {
			t.Errorf("expected next description 'rename playlist', got %q (ok=%v)", desc, ok)
		}
	})

	t.Run("CanUndo", func(t *testing.T) {
		s := New(10)

		if s.CanUndo() {
			t.Error("new stack should not be undoable")
		}

		s.Log("edit", func() {})

		if !s.CanUndo() {
			t.Error("stack with a record should be undoable")
		}
	})

	t.Run("Zero Depth Uses Default", func(t *testing.T) {
		s := New(0)

		for i := range DefaultMaxDepth + 5 {
			s.Log(fmt.Sprintf("edit %d", i), func() {})
		}

		if s.Len() != DefaultMaxDepth {
			t.Errorf("expected depth capped at %d, got %d", DefaultMaxDepth, s.Len())
		}
	})
}
