package repository

import (
	"fmt"
	"time"
)

// dateLayouts covers the forms a DATE column takes when read back through
// the sqlite driver: the stored text or a timestamp it has normalised.
var dateLayouts = []string{
	"2006-01-02",
	time.RFC3339,
	"2006-01-02 15:04:05",
}

// ParseTime parses a stored date and returns it in UTC.
func ParseTime(str string) (time.Time, error) {
	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, str); err == nil {
			return t.UTC(), nil
		}
	}
	return time.Time{}, fmt.Errorf("failed to parse date %q", str)
}
