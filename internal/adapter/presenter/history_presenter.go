package presenter

import (
	"encoding/csv"
	"fmt"
	"io"

	"github.com/johnquangdev/meeting-voiceid/internal/adapter/dto/history"
	"github.com/johnquangdev/meeting-voiceid/internal/domain/entities"
	historyUsecase "github.com/johnquangdev/meeting-voiceid/internal/usecase/history"
)

// ToEntryResponse converts a ledger entry to its DTO
func ToEntryResponse(e *entities.HistoryEntry) history.EntryResponse {
	resp := history.EntryResponse{
		ID:           e.ID.String(),
		Kind:         string(e.Kind),
		Timestamp:    e.Timestamp,
		VoiceID:      e.VoiceID,
		SpeakerLabel: e.SpeakerLabel,
		MeetingID:    e.MeetingID,
		MeetingTitle: e.MeetingTitle,
		Action:       string(e.Action),
		Method:       string(e.Method),
		UserID:       e.UserID,
		UserName:     e.UserName,
		Confidence:   e.Confidence,
		Undoable:     e.Undoable,
		Details:      e.Details,
		Restorable:   e.Snapshot != nil,
	}
	if e.RequestID != nil {
		id := e.RequestID.String()
		resp.RequestID = &id
	}
	return resp
}

// ToEntryListResponse converts a list of entries
func ToEntryListResponse(entries []*entities.HistoryEntry) history.EntryListResponse {
	out := make([]history.EntryResponse, len(entries))
	for i, e := range entries {
		out[i] = ToEntryResponse(e)
	}
	return history.EntryListResponse{Entries: out, Total: len(out)}
}

// ToStatsResponse converts ledger statistics to their DTO
func ToStatsResponse(st historyUsecase.Stats) history.StatsResponse {
	methods := make(map[string]int, len(st.MethodBreakdown))
	for m, n := range st.MethodBreakdown {
		methods[string(m)] = n
	}
	days := make([]history.DailyActivityResponse, len(st.DailyActivity))
	for i, d := range st.DailyActivity {
		days[i] = history.DailyActivityResponse{
			Date:       d.Date,
			Identified: d.Identified,
			Skipped:    d.Skipped,
			Deferred:   d.Deferred,
			Merged:     d.Merged,
			Undone:     d.Undone,
			Accuracy:   d.Accuracy,
		}
	}
	return history.StatsResponse{
		Total:             st.Total,
		Identified:        st.Identified,
		Skipped:           st.Skipped,
		Deferred:          st.Deferred,
		Merged:            st.Merged,
		Undone:            st.Undone,
		AverageConfidence: st.AverageConfidence,
		MethodBreakdown:   methods,
		DailyActivity:     days,
	}
}

// WriteCSV writes export rows with a header line
func WriteCSV(w io.Writer, rows []historyUsecase.ExportRow) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(historyUsecase.ExportHeader); err != nil {
		return fmt.Errorf("failed to write csv header: %w", err)
	}
	for _, r := range rows {
		if err := cw.Write(r.Values()); err != nil {
			return fmt.Errorf("failed to write csv row: %w", err)
		}
	}
	cw.Flush()
	return cw.Error()
}
