package tableschema

import (
	"encoding/base64"
	"net/url"
	"reflect"
	"strconv"
	"time"

	"github.com/google/uuid"
)

// ---- reverse casting (logical -> physical) ----

func (f *Field) reverseCast(value any) (*string, error) {
	if value == nil {
		return nil, nil
	}
	var (
		s   string
		err error
	)
	switch f.Type {
	case TypeString:
		s, err = f.reverseString(value)
	case TypeInteger:
		s, err = reverseInteger(value)
	case TypeBoolean:
		s, err = f.reverseBoolean(value)
	case TypeArray:
		s, err = reverseArray(value)
	case TypeDateTime:
		s, err = f.reverseDateTime(value)
	default:
		// number, object, date, time, year, yearmonth, duration, geopoint,
		// geojson and any have no physical rendering.
		err = errUnavailable
	}
	if err != nil {
		return nil, err
	}
	return &s, nil
}

func (f *Field) reverseString(value any) (string, error) {
	switch f.Format.Kind {
	case FormatDefault:
		s, ok := value.(string)
		if !ok {
			return "", errBadCast
		}
		return s, nil
	case FormatEmail:
		return "", errUnavailable
	case FormatURI:
		switch u := value.(type) {
		case *url.URL:
			if u == nil {
				return "", errBadCast
			}
			return u.String(), nil
		case url.URL:
			return u.String(), nil
		}
		return "", errBadCast
	case FormatBinary:
		switch b := value.(type) {
		case string:
			return base64.StdEncoding.EncodeToString([]byte(b)), nil
		case []byte:
			return base64.StdEncoding.EncodeToString(b), nil
		}
		return "", errBadCast
	case FormatUUID:
		switch u := value.(type) {
		case uuid.UUID:
			return canonicalUUID(u), nil
		case string:
			parsed, err := parseUUID(u)
			if err != nil {
				return "", err
			}
			return canonicalUUID(parsed), nil
		}
		return "", errBadCast
	}
	return "", errBadCast
}

func reverseInteger(value any) (string, error) {
	switch n := value.(type) {
	case int:
		return strconv.Itoa(n), nil
	case int8:
		return strconv.FormatInt(int64(n), 10), nil
	case int16:
		return strconv.FormatInt(int64(n), 10), nil
	case int32:
		return strconv.FormatInt(int64(n), 10), nil
	case int64:
		return strconv.FormatInt(n, 10), nil
	case uint8:
		return strconv.FormatUint(uint64(n), 10), nil
	case uint16:
		return strconv.FormatUint(uint64(n), 10), nil
	case uint32:
		return strconv.FormatUint(uint64(n), 10), nil
	}
	return "", errBadCast
}

// reverseBoolean emits the first configured literal for the value's truth,
// regardless of which literal was originally parsed.
func (f *Field) reverseBoolean(value any) (string, error) {
	b, ok := value.(bool)
	if !ok {
		return "", errBadCast
	}
	literals := f.FalseValues
	if b {
		literals = f.TrueValues
	}
	if len(literals) == 0 {
		return "", errBadCast
	}
	return literals[0], nil
}

func reverseArray(value any) (string, error) {
	if !isSequence(value) {
		return "", errBadCast
	}
	b, err := CurrentJSONDriver().Marshal(value)
	if err != nil {
		return "", errBadCast
	}
	return string(b), nil
}

// isSequence reports whether v is a slice or array other than raw bytes.
func isSequence(v any) bool {
	rv := reflect.ValueOf(v)
	switch rv.Kind() {
	case reflect.Slice:
		return !rv.IsNil() && rv.Type().Elem().Kind() != reflect.Uint8
	case reflect.Array:
		return rv.Type().Elem().Kind() != reflect.Uint8
	}
	return false
}

func (f *Field) reverseDateTime(value any) (string, error) {
	switch f.Format.Kind {
	case FormatDefault:
		t, ok := value.(time.Time)
		if !ok {
			return "", errBadCast
		}
		return formatDateTime(t), nil
	case FormatAny, FormatPattern:
		return "", errUnavailable
	}
	return "", errBadCast
}
