package cache

import (
	"testing"
	"time"

	"github.com/johnquangdev/meeting-voiceid/internal/domain/entities"
)

func TestDecodeIntoIgnoresForeignKeys(t *testing.T) {
	k := suppressionKeys{prefix: "voiceid"}
	out := entities.NewSuppressions()

	for _, key := range []string{"other:dismiss:s1", "voiceid:dismiss:", "voiceid:unknown:s1"} {
		if err := k.decodeInto(&out, key, encodeTime(t0), t0); err != nil {
			t.Fatalf("unexpected error for %s: %v", key, err)
		}
	}
	if len(out.Dismissals)+len(out.Deferrals)+len(out.LastAlert) != 0 {
		t.Fatalf("foreign keys decoded: %+v", out)
	}
}

func TestDecodeIntoKeepsSpeakerIDColons(t *testing.T) {
	k := suppressionKeys{prefix: "voiceid"}
	out := entities.NewSuppressions()

	if err := k.decodeInto(&out, k.deferral("tr-1:A"), encodeTime(t0.Add(time.Minute)), t0); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if _, ok := out.Deferrals["tr-1:A"]; !ok {
		t.Fatalf("speaker id with colon lost: %+v", out.Deferrals)
	}
}

func TestDecodeIntoRejectsBadTime(t *testing.T) {
	k := suppressionKeys{prefix: "voiceid"}
	out := entities.NewSuppressions()
	if err := k.decodeInto(&out, k.lastAlert("s1"), "yesterday", t0); err == nil {
		t.Fatalf("expected parse error")
	}
}
