package cache

import (
	"fmt"
	"strings"
	"time"

	"github.com/johnquangdev/meeting-voiceid/internal/domain/entities"
)

const (
	kindDismissal = "dismiss"
	kindDeferral  = "defer"
	kindLastAlert = "last"

	permanentValue = "permanent"
)

// suppressionKeys builds and parses keys of the form <prefix>:<kind>:<speaker>
type suppressionKeys struct {
	prefix string
}

func (k suppressionKeys) root() string {
	return k.prefix + ":"
}

func (k suppressionKeys) dismissal(speakerID string) string {
	return k.root() + kindDismissal + ":" + speakerID
}

func (k suppressionKeys) deferral(speakerID string) string {
	return k.root() + kindDeferral + ":" + speakerID
}

func (k suppressionKeys) lastAlert(speakerID string) string {
	return k.root() + kindLastAlert + ":" + speakerID
}

// decodeInto parses one stored entry into out, skipping entries no longer
// relevant at now
func (k suppressionKeys) decodeInto(out *entities.Suppressions, key, value string, now time.Time) error {
	rest, ok := strings.CutPrefix(key, k.root())
	if !ok {
		return nil
	}
	kind, speakerID, ok := strings.Cut(rest, ":")
	if !ok || speakerID == "" {
		return nil
	}

	switch kind {
	case kindDismissal:
		if value == permanentValue {
			out.Dismissals[speakerID] = entities.Dismissal{Permanent: true}
			return nil
		}
		until, err := decodeTime(value)
		if err != nil {
			return fmt.Errorf("invalid dismissal for %s: %w", speakerID, err)
		}
		if d := (entities.Dismissal{Until: until}); d.Active(now) {
			out.Dismissals[speakerID] = d
		}
	case kindDeferral:
		until, err := decodeTime(value)
		if err != nil {
			return fmt.Errorf("invalid deferral for %s: %w", speakerID, err)
		}
		if now.Before(until) {
			out.Deferrals[speakerID] = until
		}
	case kindLastAlert:
		at, err := decodeTime(value)
		if err != nil {
			return fmt.Errorf("invalid last alert for %s: %w", speakerID, err)
		}
		out.LastAlert[speakerID] = at
	}
	return nil
}

// encodeDismissal returns the stored value and ttl of a dismissal; ok is
// false when the dismissal has already lapsed
func encodeDismissal(d entities.Dismissal, now time.Time) (value string, ttl time.Duration, ok bool) {
	if d.Permanent {
		return permanentValue, 0, true
	}
	ttl = d.Until.Sub(now)
	if ttl <= 0 {
		return "", 0, false
	}
	return encodeTime(d.Until), ttl, true
}

func encodeTime(t time.Time) string {
	return t.UTC().Format(time.RFC3339Nano)
}

func decodeTime(s string) (time.Time, error) {
	return time.Parse(time.RFC3339Nano, s)
}
