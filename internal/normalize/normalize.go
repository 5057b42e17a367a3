package normalize

import (
	"math"
	"regexp"
	"strconv"
	"strings"
	"time"
)

// The normalizers in this package turn free-text source values into typed
// values. Malformed input is never an error: every function returns nil (or
// an empty slice) and the caller decides whether the field is required.

var (
	numberPattern    = regexp.MustCompile(`-?\d+(?:\.\d+)?`)
	percentPattern   = regexp.MustCompile(`(-?\d+(?:\.\d+)?)\s*%`)
	dmsPattern       = regexp.MustCompile(`(?i)(\d+)\s+(\d+)\s*([NS])\s*,?\s*(\d+)\s+(\d+)\s*([EW])`)
	qualifierPattern = regexp.MustCompile(`(?i)\b(approximately|approx\.?|about|around|over|under|nearly|almost|roughly|estimated|est\.?|more than|less than)\b`)
)

var magnitudes = map[string]float64{
	"million":  1e6,
	"billion":  1e9,
	"trillion": 1e12,
}

// Number parses a free-text numeric value. Qualifier words and unit suffixes
// are ignored; "million"/"billion"/"trillion" multipliers are applied.
func Number(s string) *float64 {
	cleaned := qualifierPattern.ReplaceAllString(s, " ")
	cleaned = strings.ReplaceAll(cleaned, ",", "")

	loc := numberPattern.FindStringIndex(cleaned)
	if loc == nil {
		return nil
	}
	value, err := strconv.ParseFloat(cleaned[loc[0]:loc[1]], 64)
	if err != nil {
		return nil
	}

	rest := strings.ToLower(cleaned[loc[1]:])
	for word, factor := range magnitudes {
		if strings.Contains(rest, word) {
			value *= factor
			break
		}
	}
	return &value
}

// Percentage extracts the first N%-shaped token. When the text contains no
// percent sign it falls back to plain numeric parsing.
func Percentage(s string) *float64 {
	if m := percentPattern.FindStringSubmatch(s); m != nil {
		value, err := strconv.ParseFloat(m[1], 64)
		if err != nil {
			return nil
		}
		return &value
	}
	return Number(s)
}

// LatLon is a parsed coordinate pair
type LatLon struct {
	Lat float64
	Lon float64
}

// Coordinates parses either a decimal "lat, lon" pair or degree/minute text
// with hemisphere letters ("41 53 N, 12 29 E"). Southern and western
// hemispheres become negative values.
func Coordinates(s string) *LatLon {
	if m := dmsPattern.FindStringSubmatch(s); m != nil {
		latDeg, _ := strconv.ParseFloat(m[1], 64)
		latMin, _ := strconv.ParseFloat(m[2], 64)
		lonDeg, _ := strconv.ParseFloat(m[4], 64)
		lonMin, _ := strconv.ParseFloat(m[5], 64)

		lat := latDeg + latMin/60
		if strings.EqualFold(m[3], "S") {
			lat = -lat
		}
		lon := lonDeg + lonMin/60
		if strings.EqualFold(m[6], "W") {
			lon = -lon
		}
		return validLatLon(lat, lon)
	}

	parts := strings.Split(s, ",")
	if len(parts) != 2 {
		return nil
	}
	lat, err1 := strconv.ParseFloat(strings.TrimSpace(parts[0]), 64)
	lon, err2 := strconv.ParseFloat(strings.TrimSpace(parts[1]), 64)
	if err1 != nil || err2 != nil {
		return nil
	}
	return validLatLon(lat, lon)
}

func validLatLon(lat, lon float64) *LatLon {
	if math.IsNaN(lat) || math.IsInf(lat, 0) || math.IsNaN(lon) || math.IsInf(lon, 0) {
		return nil
	}
	if lat < -90 || lat > 90 || lon < -180 || lon > 180 {
		return nil
	}
	return &LatLon{Lat: lat, Lon: lon}
}

var dateLayouts = []string{
	"2 January 2006",
	"January 2006",
	"2006",
}

// CalendarDate parses "D Month YYYY", "Month YYYY" or a bare "YYYY". The
// result is always a valid calendar date; prose that merely mentions a year
// alongside other words yields nil rather than a half-parsed date.
func CalendarDate(s string) *time.Time {
	trimmed := strings.TrimSpace(s)
	if trimmed == "" {
		return nil
	}
	for _, layout := range dateLayouts {
		parsed, err := time.Parse(layout, trimmed)
		if err != nil {
			continue
		}
		if parsed.Year() < 1 || parsed.Year() > 9999 {
			return nil
		}
		return &parsed
	}
	return nil
}

// PercentGroup is one (name, percentage) pair parsed out of a compound
// free-text share list.
type PercentGroup struct {
	Name string
	Pct  float64
}

// PercentGroups splits compound strings such as "83% Sunni, 17% Shia" into
// ordered (name, percentage) pairs. A segment without a percentage keeps its
// text and gets percentage 0 rather than being dropped.
func PercentGroups(s string) []PercentGroup {
	var groups []PercentGroup
	for _, segment := range strings.Split(s, ",") {
		segment = strings.TrimSpace(segment)
		if segment == "" {
			continue
		}

		var pct float64
		name := segment
		if m := percentPattern.FindStringSubmatchIndex(segment); m != nil {
			value, err := strconv.ParseFloat(segment[m[2]:m[3]], 64)
			if err == nil {
				pct = value
				name = strings.TrimSpace(segment[:m[0]] + segment[m[1]:])
			}
		}
		name = strings.Trim(name, " ()")
		if name == "" && pct == 0 {
			continue
		}
		groups = append(groups, PercentGroup{Name: name, Pct: pct})
	}
	return groups
}
