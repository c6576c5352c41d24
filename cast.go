package tableschema

import (
	"encoding/base64"
	"net/url"
	"slices"
	"strconv"
	"strings"
	"unicode/utf8"

	"github.com/google/uuid"
)

// ---- forward casting (physical -> logical) ----

func (f *Field) cast(text *string) (any, error) {
	if text == nil {
		return nil, nil
	}
	s := *text
	switch f.Type {
	case TypeString:
		return f.castString(s)
	case TypeInteger:
		return f.castInteger(s)
	case TypeBoolean:
		return f.castBoolean(s)
	case TypeObject:
		return castObject(s)
	case TypeArray:
		return castArray(s)
	case TypeDate:
		return f.castTemporal(s, parseDate)
	case TypeTime:
		return f.castTemporal(s, parseTimeOfDay)
	case TypeDateTime:
		return f.castTemporal(s, parseDateTime)
	case TypeYear:
		return parseYear(s)
	case TypeYearMonth:
		return parseYearMonth(s)
	case TypeDuration:
		return parseDuration(s)
	case TypeGeoPoint:
		return f.castGeoPoint(s)
	case TypeNumber, TypeGeoJSON, TypeAny:
		return nil, errUnavailable
	}
	return nil, errUnavailable
}

func (f *Field) castString(s string) (any, error) {
	switch f.Format.Kind {
	case FormatDefault:
		return s, nil
	case FormatEmail:
		return nil, errUnavailable
	case FormatURI:
		u, err := parseURI(s)
		if err != nil {
			return nil, err
		}
		return u, nil
	case FormatBinary:
		b, err := base64.StdEncoding.DecodeString(s)
		if err != nil || !utf8.Valid(b) {
			return nil, errBadCast
		}
		return string(b), nil
	case FormatUUID:
		u, err := parseUUID(s)
		if err != nil {
			return nil, err
		}
		return canonicalUUID(u), nil
	}
	return nil, errBadCast
}

// parseURI accepts absolute and relative references made only of characters
// permitted by RFC 3986.
func parseURI(s string) (*url.URL, error) {
	if s == "" {
		return nil, errBadCast
	}
	for i := 0; i < len(s); i++ {
		if !isURIChar(s[i]) {
			return nil, errBadCast
		}
	}
	u, err := url.Parse(s)
	if err != nil {
		return nil, errBadCast
	}
	return u, nil
}

func isURIChar(c byte) bool {
	switch {
	case 'a' <= c && c <= 'z', 'A' <= c && c <= 'Z', '0' <= c && c <= '9':
		return true
	}
	return strings.IndexByte("-._~:/?#[]@!$&'()*+,;=%", c) >= 0
}

// parseUUID only accepts the hyphenated 8-4-4-4-12 form.
func parseUUID(s string) (uuid.UUID, error) {
	if len(s) != 36 {
		return uuid.Nil, errBadCast
	}
	u, err := uuid.Parse(s)
	if err != nil {
		return uuid.Nil, errBadCast
	}
	return u, nil
}

func canonicalUUID(u uuid.UUID) string { return strings.ToUpper(u.String()) }

func (f *Field) castInteger(s string) (any, error) {
	if f.BareNumber {
		n, err := strconv.Atoi(s)
		if err != nil {
			return nil, errBadCast
		}
		return n, nil
	}
	// Skip noise up to the first digit or minus, consume any minus signs,
	// then take the following run of digits.
	i := 0
	for i < len(s) && !isDigit(s[i]) && s[i] != '-' {
		i++
	}
	negative := false
	for i < len(s) && s[i] == '-' {
		negative = true
		i++
	}
	start := i
	for i < len(s) && isDigit(s[i]) {
		i++
	}
	if start == i {
		return nil, errBadCast
	}
	digits := s[start:i]
	if negative {
		digits = "-" + digits
	}
	n, err := strconv.Atoi(digits)
	if err != nil {
		return nil, errBadCast
	}
	return n, nil
}

func isDigit(c byte) bool { return '0' <= c && c <= '9' }

func (f *Field) castBoolean(s string) (any, error) {
	if slices.Contains(f.TrueValues, s) {
		return true, nil
	}
	if slices.Contains(f.FalseValues, s) {
		return false, nil
	}
	return nil, errBadCast
}

func castObject(s string) (map[string]any, error) {
	v, err := decodeJSON(s)
	if err != nil {
		return nil, errBadCast
	}
	m, ok := v.(map[string]any)
	if !ok {
		return nil, errBadCast
	}
	return m, nil
}

func castArray(s string) ([]any, error) {
	v, err := decodeJSON(s)
	if err != nil {
		return nil, errBadCast
	}
	a, ok := v.([]any)
	if !ok {
		return nil, errBadCast
	}
	return a, nil
}

func (f *Field) castGeoPoint(s string) (any, error) {
	switch f.Format.Kind {
	case FormatDefault:
		parts := strings.Split(s, ",")
		if len(parts) != 2 {
			return nil, errBadCast
		}
		lon, err := strconv.ParseFloat(strings.TrimSpace(parts[0]), 64)
		if err != nil {
			return nil, errBadCast
		}
		lat, err := strconv.ParseFloat(strings.TrimSpace(parts[1]), 64)
		if err != nil {
			return nil, errBadCast
		}
		return GeoPoint{Lon: lon, Lat: lat}, nil
	case FormatArray:
		a, err := castArray(s)
		if err != nil || len(a) != 2 {
			return nil, errBadCast
		}
		return GeoPoint{Lon: a[0], Lat: a[1]}, nil
	case FormatObject:
		m, err := castObject(s)
		if err != nil {
			return nil, errBadCast
		}
		lon, ok := m["lon"]
		if !ok {
			return nil, errBadCast
		}
		lat, ok := m["lat"]
		if !ok {
			return nil, errBadCast
		}
		return GeoPoint{Lon: lon, Lat: lat}, nil
	}
	return nil, errBadCast
}
