package presenter

import (
	"bytes"
	"testing"

	historyUsecase "github.com/johnquangdev/meeting-voiceid/internal/usecase/history"
)

func TestWriteCSV(t *testing.T) {
	rows := []historyUsecase.ExportRow{{
		Timestamp:  "2024-05-01T09:00:00Z",
		Speaker:    "Speaker A",
		Meeting:    "Sync, weekly",
		Action:     "identified",
		Method:     "manual",
		User:       "Dana",
		Confidence: "0.90",
	}}

	var buf bytes.Buffer
	if err := WriteCSV(&buf, rows); err != nil {
		t.Fatalf("write: %v", err)
	}
	want := "timestamp,speaker,meeting,action,method,user,confidence\n" +
		"2024-05-01T09:00:00Z,Speaker A,\"Sync, weekly\",identified,manual,Dana,0.90\n"
	if buf.String() != want {
		t.Fatalf("got\n%s\nwant\n%s", buf.String(), want)
	}
}
