package history

import (
	"context"
	"errors"
	"testing"

	"github.com/benbjohnson/clock"
	"github.com/google/uuid"

	"github.com/johnquangdev/meeting-voiceid/internal/domain/entities"
	"github.com/johnquangdev/meeting-voiceid/internal/domain/repositories"
	"github.com/johnquangdev/meeting-voiceid/pkg/keylock"
)

type memoryHistory struct {
	rows      map[uuid.UUID]*entities.HistoryEntry
	order     []uuid.UUID
	appendErr error
}

func newMemoryHistory() *memoryHistory {
	return &memoryHistory{rows: map[uuid.UUID]*entities.HistoryEntry{}}
}

func (m *memoryHistory) Append(_ context.Context, e *entities.HistoryEntry) error {
	if m.appendErr != nil {
		return m.appendErr
	}
	m.rows[e.ID] = e.Clone()
	m.order = append(m.order, e.ID)
	return nil
}

func (m *memoryHistory) Update(_ context.Context, e *entities.HistoryEntry) error {
	m.rows[e.ID] = e.Clone()
	return nil
}

func (m *memoryHistory) List(context.Context, repositories.HistoryFilter) ([]*entities.HistoryEntry, error) {
	out := make([]*entities.HistoryEntry, 0, len(m.order))
	for _, id := range m.order {
		out = append(out, m.rows[id].Clone())
	}
	return out, nil
}

type memoryProfiles struct {
	byID map[string]*entities.SpeakerProfile
}

func (m *memoryProfiles) FindByVoiceID(_ context.Context, id string) (*entities.SpeakerProfile, error) {
	if p, ok := m.byID[id]; ok {
		return p.Clone(), nil
	}
	return nil, entities.ErrProfileNotFound
}

func (m *memoryProfiles) FindByVoiceIDs(context.Context, []string) ([]*entities.SpeakerProfile, error) {
	return nil, nil
}

func (m *memoryProfiles) ListActive(context.Context) ([]*entities.SpeakerProfile, error) {
	return nil, nil
}

func (m *memoryProfiles) ListConfirmed(context.Context) ([]*entities.SpeakerProfile, error) {
	return nil, nil
}

func (m *memoryProfiles) Save(_ context.Context, p *entities.SpeakerProfile) error {
	m.byID[p.DeepgramVoiceID] = p.Clone()
	return nil
}

func (m *memoryProfiles) SaveAll(ctx context.Context, ps []*entities.SpeakerProfile) error {
	for _, p := range ps {
		_ = m.Save(ctx, p)
	}
	return nil
}

func newTestService(repo *memoryHistory, profiles repositories.ProfileRepository) *Service {
	mock := clock.NewMock()
	mock.Set(t0)
	return NewService(repo, profiles, keylock.New(), mock, nil)
}

func mergeEntry() *entities.HistoryEntry {
	primaryBefore := entities.NewSpeakerProfile("a", t0)
	primaryBefore.MeetingsCount = 1
	secondaryBefore := entities.NewSpeakerProfile("b", t0)
	secondaryBefore.MeetingsCount = 2

	merged := primaryBefore.Clone()
	merged.MeetingsCount = 3
	secondaryAfter := secondaryBefore.Clone()
	secondaryAfter.MergedInto = entities.StringPtr("a")

	return &entities.HistoryEntry{
		ID:        uuid.New(),
		Kind:      entities.EntryMerge,
		Timestamp: t0,
		VoiceID:   "a",
		Action:    entities.ActionMerged,
		Undoable:  true,
		Snapshot: &entities.MergeSnapshot{
			Before: []*entities.SpeakerProfile{primaryBefore, secondaryBefore},
			After:  []*entities.SpeakerProfile{merged, secondaryAfter},
		},
	}
}

func TestServiceUndoRedoMergeReplaysSnapshot(t *testing.T) {
	profiles := &memoryProfiles{byID: map[string]*entities.SpeakerProfile{}}
	repo := newMemoryHistory()
	svc := newTestService(repo, profiles)
	ctx := context.Background()
	entry := mergeEntry()

	if err := svc.Record(ctx, entry); err != nil {
		t.Fatalf("record: %v", err)
	}
	if _, err := svc.Undo(ctx, entry.ID); err != nil {
		t.Fatalf("undo: %v", err)
	}
	if profiles.byID["a"].MeetingsCount != 1 || profiles.byID["b"].MergedInto != nil {
		t.Fatalf("undo did not restore pre-merge profiles")
	}
	if repo.rows[entry.ID].Action != entities.ActionUndone {
		t.Fatalf("undone state not persisted")
	}

	restored, err := svc.Redo(ctx)
	if err != nil || restored == nil || restored.Action != entities.ActionMerged {
		t.Fatalf("unexpected redo %+v err=%v", restored, err)
	}
	if profiles.byID["a"].MeetingsCount != 3 || profiles.byID["b"].MergedInto == nil {
		t.Fatalf("redo did not re-apply the merge")
	}
}

func TestServiceRedoEmptyIsNoop(t *testing.T) {
	svc := newTestService(newMemoryHistory(), nil)
	entry, err := svc.Redo(context.Background())
	if err != nil || entry != nil {
		t.Fatalf("expected no-op redo, got %+v err=%v", entry, err)
	}
}

func TestServiceRecordFailureKeepsLedger(t *testing.T) {
	repo := newMemoryHistory()
	repo.appendErr = errors.New("db down")
	svc := newTestService(repo, nil)

	err := svc.Record(context.Background(), identified("a", entities.MethodManual, 0.9, t0))
	if !errors.Is(err, entities.ErrPersistenceFailure) {
		t.Fatalf("expected persistence failure, got %v", err)
	}
	if st := svc.Stats(); st.Identified != 1 {
		t.Fatalf("ledger must keep the entry, stats=%+v", st)
	}
}

func TestServiceLoadAndFilter(t *testing.T) {
	repo := newMemoryHistory()
	ctx := context.Background()
	_ = repo.Append(ctx, identified("a", entities.MethodManual, 0.9, t0))
	_ = repo.Append(ctx, mergeEntry())
	_ = repo.Append(ctx, identified("b", entities.MethodManual, 0.9, t0))

	svc := newTestService(repo, nil)
	if err := svc.Load(ctx); err != nil {
		t.Fatalf("load: %v", err)
	}
	kind := entities.EntryIdentification
	got := svc.Entries(&kind, 1)
	if len(got) != 1 || *got[0].UserName != "b" {
		t.Fatalf("expected newest identification entry, got %+v", got)
	}
	if len(svc.Export()) != 3 {
		t.Fatalf("export should cover every entry")
	}
}
