package model

import (
	"fmt"
	"strings"
	"time"
)

var dateLayouts = []string{
	"2006-01-02",
	time.RFC3339,
	time.RFC3339Nano,
	"2006-01-02T15:04Z07:00",
	"2006-01-02T15:04-07",
	"2006-01-02T15:04:05-07",
	"2006-01-02T15:04:05",
	"2006-01-02T15:04",
	"2006-01-02 15:04:05",
	"2006-01",
	"2006",
}

// ParseDate accepts the ISO-8601 forms found in OEMetadata documents,
// including the short "+01" offsets of older examples.
func ParseDate(s string) (time.Time, error) {
	s = strings.TrimSpace(s)
	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t, nil
		}
	}
	return time.Time{}, fmt.Errorf("invalid ISO-8601 date %q", s)
}

// ValidDate reports whether s is empty or a parseable date.
func ValidDate(s string) bool {
	if strings.TrimSpace(s) == "" {
		return true
	}
	_, err := ParseDate(s)
	return err == nil
}
