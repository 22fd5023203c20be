package domain

import (
	"fmt"
	"strconv"
	"time"
)

// DefaultIdentifierColumn is the reserved CSV column whose value groups
// rows into one output document.
const DefaultIdentifierColumn = "DocumentId"

// GeoPoint is a latitude/longitude pair parsed from "lat,lng" cells.
type GeoPoint struct {
	Latitude  float64
	Longitude float64
}

// Row is one decoded CSV record. Headers preserves source column order;
// Values maps each raw column header (including any type hint suffix)
// to the raw cell string.
type Row struct {
	Headers []string
	Values  map[string]string
}

// Get returns the raw cell for a column header.
func (r Row) Get(header string) (string, bool) {
	v, ok := r.Values[header]
	return v, ok
}

// TypedRow maps field names (headers with hints stripped) to parsed
// values: nil, bool, int64, float64, time.Time, GeoPoint, []byte,
// []any, map[string]any or string.
type TypedRow map[string]any

// KeyString renders a typed value as a document map key.
// The store mandates string map keys, so grouping key values are
// stringified before use.
func KeyString(v any) string {
	switch t := v.(type) {
	case string:
		return t
	case int64:
		return strconv.FormatInt(t, 10)
	case int:
		return strconv.Itoa(t)
	case float64:
		return strconv.FormatFloat(t, 'g', -1, 64)
	case bool:
		return strconv.FormatBool(t)
	case time.Time:
		return t.Format(time.RFC3339)
	case nil:
		return ""
	default:
		return fmt.Sprint(t)
	}
}
