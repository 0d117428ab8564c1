package history

import (
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/johnquangdev/meeting-voiceid/internal/domain/entities"
)

// Ledger is the append-only decision log with undo and redo stacks.
// Not safe for concurrent use.
type Ledger struct {
	entries []*entities.HistoryEntry
	index   map[uuid.UUID]int
	undo    []*entities.HistoryEntry
	redo    []*entities.HistoryEntry
}

// NewLedger creates a ledger holding the given entries in order
func NewLedger(entries ...*entities.HistoryEntry) *Ledger {
	l := &Ledger{index: make(map[uuid.UUID]int)}
	for _, e := range entries {
		_ = l.Append(e)
	}
	return l
}

// Append adds an entry at the end
func (l *Ledger) Append(e *entities.HistoryEntry) error {
	if _, ok := l.index[e.ID]; ok {
		return fmt.Errorf("%w: duplicate history entry %s", entities.ErrValidation, e.ID)
	}
	l.index[e.ID] = len(l.entries)
	l.entries = append(l.entries, e.Clone())
	return nil
}

// Len returns the number of entries
func (l *Ledger) Len() int {
	return len(l.entries)
}

// Entries returns copies of all entries in append order
func (l *Ledger) Entries() []*entities.HistoryEntry {
	out := make([]*entities.HistoryEntry, len(l.entries))
	for i, e := range l.entries {
		out[i] = e.Clone()
	}
	return out
}

// Get returns a copy of one entry
func (l *Ledger) Get(id uuid.UUID) (*entities.HistoryEntry, bool) {
	i, ok := l.index[id]
	if !ok {
		return nil, false
	}
	return l.entries[i].Clone(), true
}

// Undo marks an undoable entry as undone at now and keeps its prior state
// for Redo. Starting a new undo discards the redo stack.
func (l *Ledger) Undo(id uuid.UUID, now time.Time) (*entities.HistoryEntry, error) {
	i, ok := l.index[id]
	if !ok {
		return nil, fmt.Errorf("%w: %s", entities.ErrUnknownEntry, id)
	}
	current := l.entries[i]
	if !current.Undoable {
		return nil, fmt.Errorf("%w: %s", entities.ErrNotUndoable, id)
	}

	l.undo = append(l.undo, current.Clone())
	l.redo = nil

	undone := current.Clone()
	undone.Action = entities.ActionUndone
	undone.Timestamp = now
	undone.Undoable = false
	l.entries[i] = undone
	return undone.Clone(), nil
}

// PeekUndo returns the entry state Redo would restore
func (l *Ledger) PeekUndo() (*entities.HistoryEntry, bool) {
	if len(l.undo) == 0 {
		return nil, false
	}
	return l.undo[len(l.undo)-1].Clone(), true
}

// Redo restores the most recently undone entry exactly as it was before the
// undo. Reports false when there is nothing to redo.
func (l *Ledger) Redo() (*entities.HistoryEntry, bool) {
	if len(l.undo) == 0 {
		return nil, false
	}
	prior := l.undo[len(l.undo)-1]
	l.undo = l.undo[:len(l.undo)-1]

	if i, ok := l.index[prior.ID]; ok {
		l.entries[i] = prior.Clone()
	}
	l.redo = append(l.redo, prior.Clone())
	return prior.Clone(), true
}

// UndoDepth returns the size of the undo stack
func (l *Ledger) UndoDepth() int {
	return len(l.undo)
}

// RedoDepth returns the size of the redo stack
func (l *Ledger) RedoDepth() int {
	return len(l.redo)
}
