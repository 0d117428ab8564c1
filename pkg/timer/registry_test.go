package timer

import (
	"reflect"
	"testing"
	"time"
)

var base = time.Date(2024, 5, 1, 9, 0, 0, 0, time.UTC)

func TestScheduleReplacesPendingTimer(t *testing.T) {
	r := NewRegistry()
	var fired []string

	r.Schedule("a", base.Add(time.Second), func(time.Time) { fired = append(fired, "first") })
	if replaced := r.Schedule("a", base.Add(2*time.Second), func(time.Time) { fired = append(fired, "second") }); !replaced {
		t.Fatalf("expected replace to be reported")
	}
	if r.Len() != 1 {
		t.Fatalf("expected one pending timer, got %d", r.Len())
	}

	r.Fire(base.Add(time.Second))
	if len(fired) != 0 {
		t.Fatalf("replaced timer fired: %v", fired)
	}
	r.Fire(base.Add(2 * time.Second))
	if !reflect.DeepEqual(fired, []string{"second"}) {
		t.Fatalf("fired = %v", fired)
	}
}

func TestCancelPreventsFire(t *testing.T) {
	r := NewRegistry()
	called := false
	r.Schedule("a", base, func(time.Time) { called = true })

	if !r.Cancel("a") {
		t.Fatalf("expected cancel to find the timer")
	}
	if r.Cancel("a") {
		t.Fatalf("second cancel should report nothing removed")
	}
	if n := r.Fire(base.Add(time.Hour)); n != 0 || called {
		t.Fatalf("cancelled timer fired")
	}
}

func TestFireOrdersByDeadlineThenSchedulingOrder(t *testing.T) {
	r := NewRegistry()
	var order []string
	add := func(key string, d time.Duration) {
		r.Schedule(key, base.Add(d), func(time.Time) { order = append(order, key) })
	}
	add("late", 3*time.Second)
	add("tie-1", time.Second)
	add("tie-2", time.Second)
	add("early", 0)
	add("future", time.Minute)

	if n := r.Fire(base.Add(3 * time.Second)); n != 4 {
		t.Fatalf("fired %d timers", n)
	}
	want := []string{"early", "tie-1", "tie-2", "late"}
	if !reflect.DeepEqual(order, want) {
		t.Fatalf("order = %v, want %v", order, want)
	}
	if _, ok := r.Pending("future"); !ok {
		t.Fatalf("future timer should remain pending")
	}
}

func TestCallbackMayRescheduleAndCancel(t *testing.T) {
	r := NewRegistry()
	var order []string
	r.Schedule("b", base.Add(2*time.Second), func(time.Time) { order = append(order, "b") })
	r.Schedule("a", base.Add(time.Second), func(at time.Time) {
		order = append(order, "a")
		r.Cancel("b")
		r.Schedule("c", at, func(time.Time) { order = append(order, "c") })
	})

	r.Fire(base.Add(5 * time.Second))
	if !reflect.DeepEqual(order, []string{"a", "c"}) {
		t.Fatalf("order = %v", order)
	}
	if r.Len() != 0 {
		t.Fatalf("expected empty registry")
	}
}

func TestCallbackReceivesDeadline(t *testing.T) {
	r := NewRegistry()
	var got time.Time
	r.Schedule("a", base.Add(time.Second), func(at time.Time) { got = at })
	r.Fire(base.Add(time.Minute))
	if !got.Equal(base.Add(time.Second)) {
		t.Fatalf("callback got %v", got)
	}
}
