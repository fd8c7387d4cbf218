// Package history provides bounded undo/redo stacks of state snapshots.
//
// The manager is storage-only: it never inspects snapshots, so the owning
// controller decides what a snapshot contains and how to restore one.
package history

// DefaultDepth is the default maximum depth of each stack.
const DefaultDepth = 10

// Manager holds bounded undo and redo stacks of snapshots. When a stack is
// full, recording evicts the oldest entry. The zero value is not usable;
// construct with NewManager. Manager is not safe for concurrent use; the
// owning controller serializes access.
type Manager[T any] struct {
	undo  []T
	redo  []T
	depth int
}

// NewManager creates a manager whose stacks hold at most depth entries.
// Non-positive depths fall back to DefaultDepth.
func NewManager[T any](depth int) *Manager[T] {
	if depth <= 0 {
		depth = DefaultDepth
	}
	return &Manager[T]{depth: depth}
}

// Record pushes a snapshot onto the undo stack and clears the redo stack:
// a fresh action invalidates forward history. The oldest snapshot is
// evicted when the stack is full.
func (m *Manager[T]) Record(snapshot T) {
	m.undo = push(m.undo, snapshot, m.depth)
	m.redo = m.redo[:0]
}

// Undo exchanges the current state for the most recent snapshot: current is
// pushed onto the redo stack and the popped snapshot is returned. The
// second result is false when there is nothing to undo; the manager is then
// left unchanged.
func (m *Manager[T]) Undo(current T) (T, bool) {
	var zero T
	if len(m.undo) == 0 {
		return zero, false
	}

	m.redo = push(m.redo, current, m.depth)

	top := m.undo[len(m.undo)-1]
	m.undo = m.undo[:len(m.undo)-1]
	return top, true
}

// Redo is the mirror of Undo.
func (m *Manager[T]) Redo(current T) (T, bool) {
	var zero T
	if len(m.redo) == 0 {
		return zero, false
	}

	m.undo = push(m.undo, current, m.depth)

	top := m.redo[len(m.redo)-1]
	m.redo = m.redo[:len(m.redo)-1]
	return top, true
}

// CanUndo reports whether the undo stack is non-empty.
func (m *Manager[T]) CanUndo() bool { return len(m.undo) > 0 }

// CanRedo reports whether the redo stack is non-empty.
func (m *Manager[T]) CanRedo() bool { return len(m.redo) > 0 }

// UndoDepth returns the number of stored undo snapshots.
func (m *Manager[T]) UndoDepth() int { return len(m.undo) }

// RedoDepth returns the number of stored redo snapshots.
func (m *Manager[T]) RedoDepth() int { return len(m.redo) }

// Reset discards all snapshots.
func (m *Manager[T]) Reset() {
	m.undo = m.undo[:0]
	m.redo = m.redo[:0]
}

// push appends onto a bounded stack, evicting the oldest entry on overflow.
func push[T any](stack []T, v T, depth int) []T {
	if len(stack) >= depth {
		copy(stack, stack[1:])
		stack = stack[:len(stack)-1]
	}
	return append(stack, v)
}
