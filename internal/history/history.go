// package history implements the single-step undo stack for playlist edits.
//
// Every accepted mutation logs a human-readable description plus a zero-argument
// revert operation that restores the pre-mutation state. Undo pops records in
// strict LIFO order; there is no redo. While a revert runs, logging is
// suppressed so the mutators it re-enters do not push fresh records.
//
// The stack is not safe for concurrent use. Mutations and undos are expected to
// run on a single goroutine, the same contract the models hold.
package history

// DefaultMaxDepth caps the stack when no explicit depth is configured.
const DefaultMaxDepth = 100

// Record pairs a description of an edit with the operation that reverts it.
type Record struct {
	Description string
	Revert      func()
}

// Stack holds undo records for the application, newest on top.
type Stack struct {
	records     []Record
	maxDepth    int
	suppressing bool
}

// New creates a Stack holding at most maxDepth records. The oldest record is
// discarded when the cap is exceeded. Non-positive depths fall back to
// [DefaultMaxDepth].
func New(maxDepth int) *Stack {
	if maxDepth <= 0 {
		maxDepth = DefaultMaxDepth
	}
	return &Stack{maxDepth: maxDepth}
}

// Log pushes a new record on top of the stack. It is a no-op while an undo is
// in progress, so reverts that re-enter model mutators do not corrupt ordering.
func (s *Stack) Log(description string, revert func()) {
	if s.suppressing {
		return
	}

	s.records = append(s.records, Record{Description: description, Revert: revert})

	if len(s.records) > s.maxDepth {
		s.records = s.records[1:]
	}
}

// Undo pops and runs the most recent revert operation. Returns false on an
// empty stack. Logging stays suppressed for the whole revert call, even when
// the revert internally runs several mutators.
func (s *Stack) Undo() bool {
	if len(s.records) == 0 {
		return false
	}

	record := s.records[len(s.records)-1]
	s.records = s.records[:len(s.records)-1]

	s.suppressing = true
	defer func() { s.suppressing = false }()

	record.Revert()
	return true
}

// Len returns the number of undoable records.
func (s *Stack) Len() int {
	return len(s.records)
}

// CanUndo reports whether at least one record is available.
func (s *Stack) CanUndo() bool {
	return len(s.records) > 0
}

// NextDescription returns the description of the edit the next Undo call would
// revert. The second return is false when the stack is empty.
func (s *Stack) NextDescription() (string, bool) {
	if len(s.records) == 0 {
		return "", false
	}
	return s.records[len(s.records)-1].Description, true
}
