package history

import (
	"math"
	"reflect"
	"testing"
	"time"

	"github.com/johnquangdev/meeting-voiceid/internal/domain/entities"
)

func withAction(e *entities.HistoryEntry, a entities.Action) *entities.HistoryEntry {
	e.Action = a
	return e
}

func TestComputeStats(t *testing.T) {
	day2 := t0.Add(24 * time.Hour)
	entries := []*entities.HistoryEntry{
		identified("a", entities.MethodManual, 0.9, t0),
		identified("b", entities.MethodSuggested, 0.7, t0),
		withAction(identified("c", entities.MethodManual, 0, t0), entities.ActionSkipped),
		withAction(identified("d", entities.MethodManual, 0, day2), entities.ActionDeferred),
		identified("e", entities.MethodMatched, 0.8, day2),
		{Kind: entities.EntryMerge, Action: entities.ActionMerged, Timestamp: day2},
		withAction(identified("f", entities.MethodManual, 0.5, day2), entities.ActionUndone),
	}

	st := ComputeStats(entries)
	if st.Total != 7 || st.Identified != 3 || st.Skipped != 1 || st.Deferred != 1 || st.Merged != 1 || st.Undone != 1 {
		t.Fatalf("unexpected counts %+v", st)
	}
	if math.Abs(st.AverageConfidence-0.8) > 1e-9 {
		t.Fatalf("average confidence = %v", st.AverageConfidence)
	}
	want := map[entities.Method]int{entities.MethodManual: 1, entities.MethodSuggested: 1, entities.MethodMatched: 1}
	if !reflect.DeepEqual(st.MethodBreakdown, want) {
		t.Fatalf("method breakdown = %v", st.MethodBreakdown)
	}

	if len(st.DailyActivity) != 2 || st.DailyActivity[0].Date != "2024-05-01" || st.DailyActivity[1].Date != "2024-05-02" {
		t.Fatalf("unexpected daily activity %+v", st.DailyActivity)
	}
	if math.Abs(st.DailyActivity[0].Accuracy-2.0/3.0) > 1e-9 {
		t.Fatalf("day 1 accuracy = %v", st.DailyActivity[0].Accuracy)
	}
	if st.DailyActivity[1].Accuracy != 0.5 || st.DailyActivity[1].Merged != 1 {
		t.Fatalf("day 2 = %+v", st.DailyActivity[1])
	}
}

func TestComputeStatsEmpty(t *testing.T) {
	st := ComputeStats(nil)
	if st.Total != 0 || st.AverageConfidence != 0 || len(st.DailyActivity) != 0 {
		t.Fatalf("unexpected stats for empty ledger %+v", st)
	}
}

func TestExportRows(t *testing.T) {
	e := identified("dana", entities.MethodSuggested, 0.875, t0)
	rows := ExportRows([]*entities.HistoryEntry{e})

	want := []string{"2024-05-01T09:00:00Z", "Speaker dana", "Weekly sync", "identified", "suggested", "dana", "0.88"}
	if !reflect.DeepEqual(rows[0].Values(), want) {
		t.Fatalf("row = %v, want %v", rows[0].Values(), want)
	}
	if len(ExportHeader) != len(want) || ExportHeader[0] != "timestamp" || ExportHeader[6] != "confidence" {
		t.Fatalf("unexpected header %v", ExportHeader)
	}

	bare := &entities.HistoryEntry{VoiceID: "v9", MeetingID: "m9", Action: entities.ActionSkipped, Timestamp: t0}
	if got := ExportRows([]*entities.HistoryEntry{bare})[0]; got.Speaker != "v9" || got.Meeting != "m9" || got.User != "" {
		t.Fatalf("fallback columns wrong: %+v", got)
	}
}
