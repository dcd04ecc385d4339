package conversion

import (
	"regexp"
	"strings"
)

var (
	temporalResolution = regexp.MustCompile(`^(\d+(?:[.,]\d+)?)\s*([A-Za-z]*)`)
	spatialResolution  = regexp.MustCompile(`(\d+(?:[.,]\d+)?)\s*m\b`)
)

// TemporalResolution splits a resolution such as "1 h" or "15min" into
// value and unit. Without a leading number the whole string is the value
// and the unit is empty.
func TemporalResolution(s string) (value, unit string) {
	s = strings.TrimSpace(s)
	m := temporalResolution.FindStringSubmatch(s)
	if m == nil {
		return s, ""
	}
	return m[1], m[2]
}

// SpatialResolution extracts a metre resolution such as "10 m" from
// anywhere in s. Otherwise the whole string is the value and the unit is
// empty.
func SpatialResolution(s string) (value, unit string) {
	s = strings.TrimSpace(s)
	m := spatialResolution.FindStringSubmatch(s)
	if m == nil {
		return s, ""
	}
	return m[1], "m"
}
