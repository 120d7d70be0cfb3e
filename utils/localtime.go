// utils/localtime.go - single boundary for civil time conversion.
//
// Instants are stored and compared in UTC everywhere. Admin-facing input and
// output use one fixed civil zone, UTC+8, with no daylight-saving rules; the
// conversion happens here and nowhere else.
package utils

import (
	"strings"
	"time"
)

// ReviewZone is the fixed civil timezone used for all admin-entered event
// windows and their display.
var ReviewZone = time.FixedZone("UTC+8", 8*60*60)

const civilLayout = "2006-01-02 15:04"

// ParseCivilTime parses an admin-entered "YYYY-MM-DD HH:MM" value as UTC+8
// civil time and returns the UTC instant. Empty input returns nil.
func ParseCivilTime(s string) (*time.Time, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return nil, nil
	}
	t, err := time.ParseInLocation(civilLayout, s, ReviewZone)
	if err != nil {
		return nil, err
	}
	utc := t.UTC()
	return &utc, nil
}

// FormatCivilTime renders a stored UTC instant in the fixed civil zone.
// Nil renders as the empty string.
func FormatCivilTime(t *time.Time) string {
	if t == nil {
		return ""
	}
	return t.In(ReviewZone).Format(civilLayout)
}
