package domain

import (
	"bytes"
	"encoding/json"
	"fmt"
	"math"
	"strconv"
	"time"
)

// naiveLayouts are tried for timestamps without a zone offset.
// Python's isoformat() produces the first form.
var naiveLayouts = []string{
	"2006-01-02T15:04:05.999999999",
	"2006-01-02 15:04:05.999999999",
	"2006-01-02T15:04",
	"2006-01-02 15:04",
	"2006-01-02",
}

// Timestamp is a session boundary as written in the source: a string or a number
// of Unix milliseconds.
type Timestamp struct {
	text    string
	numeric bool
}

// TimestampFromString wraps a textual timestamp.
func TimestampFromString(s string) Timestamp {
	return Timestamp{text: s}
}

// TimestampFromMillis wraps a Unix-millisecond timestamp.
func TimestampFromMillis(ms int64) Timestamp {
	return Timestamp{text: strconv.FormatInt(ms, 10), numeric: true}
}

// NewTimestamp rebuilds a timestamp from its stored text and kind.
func NewTimestamp(text string, numeric bool) Timestamp {
	return Timestamp{text: text, numeric: numeric}
}

// TimestampFromTime formats t as RFC 3339 with nanoseconds.
func TimestampFromTime(t time.Time) Timestamp {
	return Timestamp{text: t.Format(time.RFC3339Nano)}
}

// IsZero reports whether no value was supplied.
func (t Timestamp) IsZero() bool {
	return t.text == ""
}

// IsNumeric reports whether the timestamp was given as a number.
func (t Timestamp) IsNumeric() bool {
	return t.numeric
}

func (t Timestamp) String() string {
	return t.text
}

// Epoch milliseconds must fall within years 1 to 9999.
const (
	minEpochMillis = -62135596800000
	maxEpochMillis = 253402300799999
)

// Parse resolves the timestamp to an instant in loc. Zoned strings are converted to
// loc, naive strings are read as wall-clock time in loc.
func (t Timestamp) Parse(loc *time.Location) (time.Time, error) {
	if loc == nil {
		loc = time.Local
	}
	if t.text == "" {
		return time.Time{}, fmt.Errorf("empty timestamp")
	}

	if t.numeric {
		ms, err := strconv.ParseFloat(t.text, 64)
		if err != nil || math.IsNaN(ms) || math.IsInf(ms, 0) {
			return time.Time{}, fmt.Errorf("invalid epoch milliseconds %q", t.text)
		}
		if ms < minEpochMillis || ms > maxEpochMillis {
			return time.Time{}, fmt.Errorf("epoch milliseconds %q out of range", t.text)
		}
		sec := math.Floor(ms / 1000)
		nsec := (ms - sec*1000) * float64(time.Millisecond)
		return time.Unix(int64(sec), int64(nsec)).In(loc), nil
	}

	if parsed, err := time.Parse(time.RFC3339Nano, t.text); err == nil {
		return parsed.In(loc), nil
	}
	for _, layout := range naiveLayouts {
		if parsed, err := time.ParseInLocation(layout, t.text, loc); err == nil {
			return parsed, nil
		}
	}
	return time.Time{}, fmt.Errorf("unrecognized timestamp format %q", t.text)
}

// UnmarshalJSON accepts a JSON string, a JSON number, or null.
func (t *Timestamp) UnmarshalJSON(b []byte) error {
	b = bytes.TrimSpace(b)
	if len(b) == 0 || bytes.Equal(b, []byte("null")) {
		*t = Timestamp{}
		return nil
	}
	if b[0] == '"' {
		var s string
		if err := json.Unmarshal(b, &s); err != nil {
			return err
		}
		*t = Timestamp{text: s}
		return nil
	}
	if _, err := strconv.ParseFloat(string(b), 64); err != nil {
		return fmt.Errorf("timestamp must be a string or number, got %s", b)
	}
	*t = Timestamp{text: string(b), numeric: true}
	return nil
}

// MarshalJSON writes the timestamp back in its original form.
func (t Timestamp) MarshalJSON() ([]byte, error) {
	if t.text == "" {
		return []byte("null"), nil
	}
	if t.numeric {
		return []byte(t.text), nil
	}
	return json.Marshal(t.text)
}
