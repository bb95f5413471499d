package model

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strconv"
	"strings"
	"time"
)

// offsetLayouts carry a numeric offset without the colon RFC 3339 requires.
var offsetLayouts = []string{
	"2006-01-02T15:04:05.999999999-0700",
	"2006-01-02T15:04:05-0700",
}

// zonelessLayouts are ISO-8601 forms without an offset, as written by
// Python's datetime.isoformat. They are read in time.Local.
var zonelessLayouts = []string{
	"2006-01-02T15:04:05.999999999",
	"2006-01-02T15:04:05",
	"2006-01-02 15:04:05.999999999",
	"2006-01-02 15:04:05",
	"2006-01-02",
}

// Timestamp is an optional point in time. The zero value means absent.
type Timestamp struct {
	time.Time
}

// At wraps t.
func At(t time.Time) Timestamp { return Timestamp{Time: t} }

// Valid reports whether the timestamp is present.
func (t Timestamp) Valid() bool { return !t.IsZero() }

// ParseTimestamp parses RFC 3339, zone-less ISO-8601 or epoch milliseconds.
// An empty string yields the zero Timestamp.
func ParseTimestamp(s string) (Timestamp, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return Timestamp{}, nil
	}
	if parsed, err := time.Parse(time.RFC3339Nano, s); err == nil {
		return At(parsed), nil
	}
	for _, layout := range offsetLayouts {
		if parsed, err := time.Parse(layout, s); err == nil {
			return At(parsed), nil
		}
	}
	for _, layout := range zonelessLayouts {
		if parsed, err := time.ParseInLocation(layout, s, time.Local); err == nil {
			return At(parsed), nil
		}
	}
	if ms, err := strconv.ParseInt(s, 10, 64); err == nil {
		return At(time.UnixMilli(ms)), nil
	}
	return Timestamp{}, fmt.Errorf("%w %q", ErrTimestamp, s)
}

// UnmarshalJSON accepts a string, a number of epoch milliseconds or null.
// Anything it cannot read decodes as absent so one bad value does not reject
// the whole document.
func (t *Timestamp) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if len(data) == 0 || bytes.Equal(data, []byte("null")) {
		*t = Timestamp{}
		return nil
	}
	if data[0] == '"' {
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			*t = Timestamp{}
			return nil
		}
		parsed, err := ParseTimestamp(s)
		if err != nil {
			*t = Timestamp{}
			return nil
		}
		*t = parsed
		return nil
	}
	var ms float64
	if err := json.Unmarshal(data, &ms); err != nil {
		*t = Timestamp{}
		return nil
	}
	*t = At(time.UnixMilli(int64(ms)))
	return nil
}

// MarshalJSON writes RFC 3339 with nanoseconds, or null when absent.
func (t Timestamp) MarshalJSON() ([]byte, error) {
	if !t.Valid() {
		return []byte("null"), nil
	}
	return json.Marshal(t.Format(time.RFC3339Nano))
}
