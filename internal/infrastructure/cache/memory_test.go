package cache

import (
	"context"
	"testing"
	"time"

	"github.com/benbjohnson/clock"

	"github.com/johnquangdev/meeting-voiceid/internal/domain/entities"
)

var t0 = time.Date(2024, 5, 1, 9, 0, 0, 0, time.UTC)

func newMockStore() (*MemorySuppressionStore, *clock.Mock) {
	mock := clock.NewMock()
	mock.Set(t0)
	return NewMemorySuppressionStore(NewMemoryStore(mock), 5*time.Minute), mock
}

func TestMemorySuppressionStoreRoundTrip(t *testing.T) {
	store, _ := newMockStore()
	ctx := context.Background()

	_ = store.SetDismissal(ctx, "s1", entities.Dismissal{Until: t0.Add(time.Hour)})
	_ = store.SetDismissal(ctx, "s2", entities.Dismissal{Permanent: true})
	_ = store.SetDeferral(ctx, "s3", t0.Add(10*time.Minute))
	_ = store.SetLastAlert(ctx, "s4", t0)

	got, err := store.Load(ctx, t0)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if !got.Dismissals["s1"].Until.Equal(t0.Add(time.Hour)) || !got.Dismissals["s2"].Permanent {
		t.Fatalf("unexpected dismissals %+v", got.Dismissals)
	}
	if !got.Deferrals["s3"].Equal(t0.Add(10 * time.Minute)) {
		t.Fatalf("unexpected deferrals %+v", got.Deferrals)
	}
	if !got.LastAlert["s4"].Equal(t0) {
		t.Fatalf("unexpected last alerts %+v", got.LastAlert)
	}
}

func TestMemorySuppressionStoreExpiry(t *testing.T) {
	store, mock := newMockStore()
	ctx := context.Background()

	_ = store.SetDismissal(ctx, "s1", entities.Dismissal{Until: t0.Add(time.Minute)})
	_ = store.SetDismissal(ctx, "s2", entities.Dismissal{Permanent: true})
	_ = store.SetDeferral(ctx, "s3", t0.Add(time.Minute))
	_ = store.SetLastAlert(ctx, "s4", t0)

	mock.Add(10 * time.Minute)
	got, _ := store.Load(ctx, mock.Now())
	if _, ok := got.Dismissals["s1"]; ok {
		t.Fatalf("expired dismissal still loaded")
	}
	if !got.Dismissals["s2"].Permanent {
		t.Fatalf("permanent dismissal lost")
	}
	if len(got.Deferrals) != 0 || len(got.LastAlert) != 0 {
		t.Fatalf("expired entries still loaded %+v", got)
	}
}

func TestMemorySuppressionStoreLapsedWriteClears(t *testing.T) {
	store, _ := newMockStore()
	ctx := context.Background()

	_ = store.SetDeferral(ctx, "s1", t0.Add(time.Minute))
	_ = store.SetDeferral(ctx, "s1", t0.Add(-time.Minute))

	got, _ := store.Load(ctx, t0)
	if _, ok := got.Deferrals["s1"]; ok {
		t.Fatalf("lapsed deferral should clear the key")
	}
}

func TestMemoryStoreGetAndDelete(t *testing.T) {
	mock := clock.NewMock()
	ms := NewMemoryStore(mock)

	ms.Set("a", "1", time.Second)
	ms.Set("b", "2", 0)
	if v, ok := ms.Get("a"); !ok || v != "1" {
		t.Fatalf("expected a=1, got %q %v", v, ok)
	}
	mock.Add(time.Second)
	if _, ok := ms.Get("a"); ok {
		t.Fatalf("a should have expired")
	}
	ms.Delete("b")
	if _, ok := ms.Get("b"); ok {
		t.Fatalf("b should be deleted")
	}
}
