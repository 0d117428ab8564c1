package history

import (
	"sort"
	"strconv"
	"time"

	"github.com/johnquangdev/meeting-voiceid/internal/domain/entities"
)

// Stats are derived from the ledger on every query
type Stats struct {
	Total             int                     `json:"total"`
	Identified        int                     `json:"identified"`
	Skipped           int                     `json:"skipped"`
	Deferred          int                     `json:"deferred"`
	Merged            int                     `json:"merged"`
	Undone            int                     `json:"undone"`
	AverageConfidence float64                 `json:"average_confidence"`
	MethodBreakdown   map[entities.Method]int `json:"method_breakdown"`
	DailyActivity     []DailyActivity         `json:"daily_activity"`
}

// DailyActivity is the per-day trend. Accuracy is identified over decided
// (identified, skipped and deferred) entries of that day.
type DailyActivity struct {
	Date       string  `json:"date"`
	Identified int     `json:"identified"`
	Skipped    int     `json:"skipped"`
	Deferred   int     `json:"deferred"`
	Merged     int     `json:"merged"`
	Undone     int     `json:"undone"`
	Accuracy   float64 `json:"accuracy"`
}

// ComputeStats derives statistics; days are UTC calendar days
func ComputeStats(entries []*entities.HistoryEntry) Stats {
	st := Stats{
		Total:           len(entries),
		MethodBreakdown: make(map[entities.Method]int),
	}
	days := make(map[string]*DailyActivity)
	var confidenceSum float64

	for _, e := range entries {
		date := e.Timestamp.UTC().Format(time.DateOnly)
		day, ok := days[date]
		if !ok {
			day = &DailyActivity{Date: date}
			days[date] = day
		}

		switch e.Action {
		case entities.ActionIdentified:
			st.Identified++
			day.Identified++
			confidenceSum += e.Confidence
			if e.Method != "" {
				st.MethodBreakdown[e.Method]++
			}
		case entities.ActionSkipped:
			st.Skipped++
			day.Skipped++
		case entities.ActionDeferred:
			st.Deferred++
			day.Deferred++
		case entities.ActionMerged:
			st.Merged++
			day.Merged++
		case entities.ActionUndone:
			st.Undone++
			day.Undone++
		}
	}

	if st.Identified > 0 {
		st.AverageConfidence = confidenceSum / float64(st.Identified)
	}

	st.DailyActivity = make([]DailyActivity, 0, len(days))
	for _, d := range days {
		if decided := d.Identified + d.Skipped + d.Deferred; decided > 0 {
			d.Accuracy = float64(d.Identified) / float64(decided)
		}
		st.DailyActivity = append(st.DailyActivity, *d)
	}
	sort.Slice(st.DailyActivity, func(i, j int) bool {
		return st.DailyActivity[i].Date < st.DailyActivity[j].Date
	})
	return st
}

// ExportHeader is the column order of exported rows
var ExportHeader = []string{"timestamp", "speaker", "meeting", "action", "method", "user", "confidence"}

// ExportRow is one flat history record
type ExportRow struct {
	Timestamp  string `json:"timestamp"`
	Speaker    string `json:"speaker"`
	Meeting    string `json:"meeting"`
	Action     string `json:"action"`
	Method     string `json:"method"`
	User       string `json:"user"`
	Confidence string `json:"confidence"`
}

// Values returns the row in ExportHeader order
func (r ExportRow) Values() []string {
	return []string{r.Timestamp, r.Speaker, r.Meeting, r.Action, r.Method, r.User, r.Confidence}
}

// ExportRows flattens entries for reporting
func ExportRows(entries []*entities.HistoryEntry) []ExportRow {
	rows := make([]ExportRow, len(entries))
	for i, e := range entries {
		rows[i] = ExportRow{
			Timestamp:  e.Timestamp.UTC().Format(time.RFC3339),
			Speaker:    firstNonEmpty(e.SpeakerLabel, e.VoiceID),
			Meeting:    firstNonEmpty(e.MeetingTitle, e.MeetingID),
			Action:     string(e.Action),
			Method:     string(e.Method),
			User:       firstNonEmpty(deref(e.UserName), deref(e.UserID)),
			Confidence: strconv.FormatFloat(e.Confidence, 'f', 2, 64),
		}
	}
	return rows
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if v != "" {
			return v
		}
	}
	return ""
}

func deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}
