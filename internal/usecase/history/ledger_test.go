package history

import (
	"errors"
	"reflect"
	"testing"
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"

	"github.com/johnquangdev/meeting-voiceid/internal/domain/entities"
)

var t0 = time.Date(2024, 5, 1, 9, 0, 0, 0, time.UTC)

func identified(name string, method entities.Method, confidence float64, at time.Time) *entities.HistoryEntry {
	return entities.NewIdentificationEntry(entities.IdentificationResult{
		RequestID:    uuid.New(),
		VoiceID:      "voice-" + name,
		SpeakerLabel: "Speaker " + name,
		MeetingID:    "m1",
		MeetingTitle: "Weekly sync",
		Action:       entities.ActionIdentified,
		UserID:       entities.StringPtr("u-" + name),
		UserName:     entities.StringPtr(name),
		Confidence:   confidence,
		Method:       method,
		DecidedAt:    at,
	})
}

func TestUndoThenRedoRestoresEntry(t *testing.T) {
	entry := identified("dana", entities.MethodManual, 0.9, t0)
	entry.Details = datatypes.JSONMap{"note": "first"}
	l := NewLedger(entry)
	before, _ := l.Get(entry.ID)

	undone, err := l.Undo(entry.ID, t0.Add(time.Hour))
	if err != nil {
		t.Fatalf("undo: %v", err)
	}
	if undone.Action != entities.ActionUndone || undone.Undoable || !undone.Timestamp.Equal(t0.Add(time.Hour)) {
		t.Fatalf("unexpected undone entry %+v", undone)
	}

	restored, ok := l.Redo()
	if !ok {
		t.Fatalf("redo reported nothing to restore")
	}
	after, _ := l.Get(entry.ID)
	if !reflect.DeepEqual(before, after) || !reflect.DeepEqual(before, restored) {
		t.Fatalf("redo did not restore the entry:\nbefore %+v\nafter  %+v", before, after)
	}
	if l.RedoDepth() != 1 || l.UndoDepth() != 0 {
		t.Fatalf("unexpected stack depths undo=%d redo=%d", l.UndoDepth(), l.RedoDepth())
	}
}

func TestUndoneEntryIsNotUndoableAgain(t *testing.T) {
	entry := identified("dana", entities.MethodManual, 0.9, t0)
	l := NewLedger(entry)
	_, _ = l.Undo(entry.ID, t0)

	if _, err := l.Undo(entry.ID, t0); !errors.Is(err, entities.ErrNotUndoable) {
		t.Fatalf("expected not undoable, got %v", err)
	}
}

func TestUndoUnknownEntry(t *testing.T) {
	l := NewLedger()
	if _, err := l.Undo(uuid.New(), t0); !errors.Is(err, entities.ErrUnknownEntry) {
		t.Fatalf("expected unknown entry, got %v", err)
	}
	if l.UndoDepth() != 0 {
		t.Fatalf("unknown undo must not touch the stack")
	}
}

func TestRedoOnEmptyStackIsNoop(t *testing.T) {
	entry := identified("dana", entities.MethodManual, 0.9, t0)
	l := NewLedger(entry)
	if _, ok := l.Redo(); ok {
		t.Fatalf("redo on empty stack reported a restore")
	}
	if got, _ := l.Get(entry.ID); got.Action != entities.ActionIdentified {
		t.Fatalf("ledger changed by empty redo")
	}
}

func TestNewUndoClearsRedoStack(t *testing.T) {
	a := identified("a", entities.MethodManual, 0.9, t0)
	b := identified("b", entities.MethodManual, 0.9, t0)
	l := NewLedger(a, b)

	_, _ = l.Undo(a.ID, t0)
	_, _ = l.Redo()
	if l.RedoDepth() != 1 {
		t.Fatalf("expected redo stack entry")
	}
	_, _ = l.Undo(b.ID, t0)
	if l.RedoDepth() != 0 {
		t.Fatalf("new undo must clear the redo stack")
	}
}

func TestAppendRejectsDuplicateID(t *testing.T) {
	entry := identified("a", entities.MethodManual, 0.9, t0)
	l := NewLedger(entry)
	if err := l.Append(entry); !errors.Is(err, entities.ErrValidation) {
		t.Fatalf("expected duplicate id rejection, got %v", err)
	}
}

func TestLedgerReturnsCopies(t *testing.T) {
	entry := identified("a", entities.MethodManual, 0.9, t0)
	l := NewLedger(entry)
	got, _ := l.Get(entry.ID)
	*got.UserName = "changed"
	again, _ := l.Get(entry.ID)
	if *again.UserName != "a" {
		t.Fatalf("ledger state leaked through a returned entry")
	}
}
