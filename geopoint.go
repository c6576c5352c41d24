package tableschema

import (
	"encoding/json"
	"strconv"
)

// GeoPoint is the logical value of a geopoint field.
//
// The default format yields float64 coordinates. The array and object formats
// pass the decoded JSON elements through untyped, so Lon/Lat may also hold
// strings.
type GeoPoint struct {
	Lon any `json:"lon"`
	Lat any `json:"lat"`
}

// Float returns both coordinates as float64 when they are numeric or numeric strings.
func (p GeoPoint) Float() (lon, lat float64, ok bool) {
	lon, ok = toFloat(p.Lon)
	if !ok {
		return 0, 0, false
	}
	lat, ok = toFloat(p.Lat)
	if !ok {
		return 0, 0, false
	}
	return lon, lat, true
}

func toFloat(v any) (float64, bool) {
	switch n := v.(type) {
	case float64:
		return n, true
	case float32:
		return float64(n), true
	case int:
		return float64(n), true
	case int64:
		return float64(n), true
	case json.Number:
		f, err := n.Float64()
		return f, err == nil
	case string:
		f, err := strconv.ParseFloat(n, 64)
		return f, err == nil
	}
	return 0, false
}
