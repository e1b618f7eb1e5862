package domain

import (
	"bytes"
	"encoding/json"
	"fmt"
	"time"
)

// FlexTime absorbs the two timestamp encodings the backend emits: an
// ISO-8601 string on most records, and a [year, month, day, hour, minute,
// second] array on chat messages. Both decode to the same instant and
// marshal back as RFC 3339.
type FlexTime struct {
	time.Time
}

func Now() FlexTime {
	return FlexTime{time.Now()}
}

func (t *FlexTime) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if len(data) == 0 || bytes.Equal(data, []byte("null")) {
		return nil
	}

	if data[0] == '[' {
		var parts []int
		if err := json.Unmarshal(data, &parts); err != nil {
			return fmt.Errorf("timestamp array: %w", err)
		}
		if len(parts) < 5 {
			return fmt.Errorf("timestamp array too short: %d elements", len(parts))
		}
		// Trailing zero fields (seconds, nanos) may be omitted.
		for len(parts) < 7 {
			parts = append(parts, 0)
		}
		t.Time = time.Date(parts[0], time.Month(parts[1]), parts[2], parts[3], parts[4], parts[5], parts[6], time.Local)
		return nil
	}

	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return fmt.Errorf("timestamp: %w", err)
	}
	if s == "" {
		return nil
	}
	// Zone-less layouts resolve in local time, matching the array form.
	for _, layout := range []string{time.RFC3339Nano, "2006-01-02T15:04:05.999999999", "2006-01-02T15:04:05"} {
		parsed, err := time.ParseInLocation(layout, s, time.Local)
		if err == nil {
			t.Time = parsed
			return nil
		}
	}
	return fmt.Errorf("unrecognized timestamp %q", s)
}

func (t FlexTime) MarshalJSON() ([]byte, error) {
	if t.IsZero() {
		return []byte("null"), nil
	}
	return json.Marshal(t.Format(time.RFC3339Nano))
}

// Clock renders the wall-clock portion, the way message bubbles and feed
// cards display time.
func (t FlexTime) Clock() string {
	if t.IsZero() {
		return ""
	}
	return t.Format("15:04")
}
