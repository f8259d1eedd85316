package epic

import (
	"encoding/json"
	"time"
)

// timestampLayout is ISO-8601 with millisecond precision and a literal
// Z suffix, the platform's datetime wire format.
const timestampLayout = "2006-01-02T15:04:05.000Z"

// FormatTimestamp renders t in the platform's datetime wire format.
func FormatTimestamp(t time.Time) string {
	return t.UTC().Format(timestampLayout)
}

// Timestamp is a time.Time that serializes in the platform's datetime
// wire format.
type Timestamp time.Time

func (t Timestamp) MarshalJSON() ([]byte, error) {
	return json.Marshal(FormatTimestamp(time.Time(t)))
}

func (t *Timestamp) UnmarshalJSON(b []byte) error {
	var s string
	if err := json.Unmarshal(b, &s); err != nil {
		return err
	}

	parsed, err := time.Parse(timestampLayout, s)
	if err != nil {
		return err
	}
	*t = Timestamp(parsed)
	return nil
}

// Time returns the underlying time.Time.
func (t Timestamp) Time() time.Time { return time.Time(t) }
