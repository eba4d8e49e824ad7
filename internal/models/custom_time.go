package models

import (
	"encoding/json"
	"strings"
	"time"
)

const dateLayout = "2006-01-02"

// FlexibleDate accepts both RFC3339 timestamps and "YYYY-MM-DD" dates.
// An empty string or null leaves the zero time, meaning "not set".
type FlexibleDate struct {
	time.Time
}

// ParseFlexibleDate parses s the same way UnmarshalJSON does.
func ParseFlexibleDate(s string) (FlexibleDate, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return FlexibleDate{}, nil
	}
	if t, err := time.Parse(time.RFC3339, s); err == nil {
		return FlexibleDate{Time: t}, nil
	}
	t, err := time.Parse(dateLayout, s)
	if err != nil {
		return FlexibleDate{}, err
	}
	return FlexibleDate{Time: t}, nil
}

// UnmarshalJSON implements the json.Unmarshaler interface.
func (f *FlexibleDate) UnmarshalJSON(b []byte) error {
	if string(b) == "null" {
		f.Time = time.Time{}
		return nil
	}
	parsed, err := ParseFlexibleDate(strings.Trim(string(b), `"`))
	if err != nil {
		return err
	}
	*f = parsed
	return nil
}

// MarshalJSON renders the date only, or null when unset.
func (f FlexibleDate) MarshalJSON() ([]byte, error) {
	if f.IsZero() {
		return []byte("null"), nil
	}
	return json.Marshal(f.Format(dateLayout))
}
