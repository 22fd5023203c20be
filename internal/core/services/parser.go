package services

import (
	"encoding/base64"
	"encoding/json"
	"strconv"
	"strings"
	"time"

	"github.com/custodia-labs/fireload-cli/internal/core/domain"
	"github.com/custodia-labs/fireload-cli/internal/logger"
)

// converter turns cell content into a typed value. Converters never
// fail hard: unconvertible content degrades to the original string
// with a logged warning.
type converter func(content string) any

// typeConverters is the single source of truth for type tokens.
// Both value-level prefixes ("int: 42") and header-level hints
// ("age:int") dispatch through this table, so the two paths always
// apply identical conversions.
var typeConverters = map[string]converter{
	"null": convertNull, "none": convertNull,
	"bool": convertBool, "boolean": convertBool,
	"int": convertInt, "integer": convertInt,
	"float": convertFloat, "double": convertFloat,
	"timestamp": convertDatetime, "datetime": convertDatetime, "date": convertDatetime,
	"geopoint": convertGeoPoint, "geo": convertGeoPoint, "location": convertGeoPoint,
	"array": convertJSON, "list": convertJSON,
	"map": convertJSON, "dict": convertJSON, "object": convertJSON,
	"bytes": convertBytes,
	"ref":   convertReference, "reference": convertReference,
	"str": convertString, "string": convertString, "text": convertString,
}

// knownType reports whether token is a recognised type token.
func knownType(token string) bool {
	_, ok := typeConverters[token]
	return ok
}

// ParseHeader splits a column header into its field name and optional
// type hint. The split happens on the first colon only; an empty or
// unrecognised hint segment is treated as absent.
//
//	"age:int"   -> ("age", "int")
//	"age:"      -> ("age", "")
//	"age:bogus" -> ("age", "") with a warning
//	"age"       -> ("age", "")
func ParseHeader(header string) (field, hint string) {
	name, candidate, found := strings.Cut(header, ":")
	if !found {
		return header, ""
	}

	field = strings.TrimSpace(name)
	candidate = strings.ToLower(strings.TrimSpace(candidate))

	if candidate == "" {
		return field, ""
	}
	if !knownType(candidate) {
		logger.Warn("Unknown type hint %q in header %q, will use auto-detection for field %q",
			candidate, header, field)
		return field, ""
	}

	return field, candidate
}

// ParseValue converts one raw cell into a typed value.
//
// Resolution cascade, each step short-circuiting:
//  1. trim whitespace; empty stays the empty string, not nil
//  2. quoted values force the unquoted content as a string
//  3. a recognised value-level type prefix ("int: 42") converts the remainder
//  4. a header-level hint converts the whole value
//  5. automatic detection: null, bool, int, float, ISO-8601 datetime, string
func ParseValue(raw, hint string) any {
	value := strings.TrimSpace(raw)
	if value == "" {
		return ""
	}

	if len(value) >= 2 && value[0] == '"' && value[len(value)-1] == '"' {
		return value[1 : len(value)-1]
	}

	if prefix, content, ok := extractTypePrefix(value); ok {
		return convertByToken(prefix, content)
	}

	if hint != "" {
		hint = strings.ToLower(strings.TrimSpace(hint))
		if knownType(hint) {
			return convertByToken(hint, value)
		}
		logger.Warn("Unknown type hint %q, using auto-detection", hint)
	}

	return autoDetect(value)
}

// extractTypePrefix splits value on its first colon and reports whether
// the left part is a recognised type token. An unrecognised candidate
// leaves the value untouched: "weird:thing" carries no prefix.
func extractTypePrefix(value string) (prefix, content string, ok bool) {
	left, right, found := strings.Cut(value, ":")
	if !found {
		return "", value, false
	}

	prefix = strings.ToLower(strings.TrimSpace(left))
	if !knownType(prefix) {
		return "", value, false
	}

	return prefix, strings.TrimSpace(right), true
}

// convertByToken applies the table conversion for a validated token.
func convertByToken(token, content string) any {
	conv, ok := typeConverters[token]
	if !ok {
		logger.Warn("Unknown type token %q, returning as string", token)
		return content
	}
	return conv(content)
}

// autoDetect infers a type from the bare value, in this fixed order:
// null, boolean, integer, float, ISO-8601 datetime, string.
func autoDetect(value string) any {
	switch strings.ToLower(value) {
	case "null", "none":
		return nil
	case "true", "yes", "y":
		return true
	case "false", "no", "n":
		return false
	}

	if isDigits(value) {
		if n, err := strconv.ParseInt(value, 10, 64); err == nil {
			return n
		}
		// Out-of-range integers fall through to the remaining rules.
	}

	if strings.ContainsAny(value, ".eE") {
		if f, err := strconv.ParseFloat(value, 64); err == nil {
			return f
		}
	}

	if strings.Contains(value, "T") || strings.Count(value, "-") >= 2 {
		if t, ok := parseISOTimestamp(value); ok {
			return t
		}
	}

	return value
}

// isDigits reports whether s is all decimal digits, optionally signed.
func isDigits(s string) bool {
	if strings.HasPrefix(s, "-") {
		s = s[1:]
	}
	if s == "" {
		return false
	}
	for _, r := range s {
		if r < '0' || r > '9' {
			return false
		}
	}
	return true
}

// isoLayouts covers the ISO-8601 shapes accepted during automatic
// detection, most specific first.
var isoLayouts = []string{
	time.RFC3339Nano,
	"2006-01-02T15:04:05.999999999",
	"2006-01-02 15:04:05.999999999",
	"2006-01-02",
}

// parseISOTimestamp parses an ISO-8601 timestamp, normalising a
// trailing Z to an explicit UTC offset.
func parseISOTimestamp(value string) (time.Time, bool) {
	candidate := value
	if strings.HasSuffix(candidate, "Z") {
		candidate = strings.TrimSuffix(candidate, "Z") + "+00:00"
	}
	for _, layout := range isoLayouts {
		if t, err := time.Parse(layout, candidate); err == nil {
			return t, true
		}
	}
	return time.Time{}, false
}

func convertNull(string) any { return nil }

// convertBool treats true/1/yes/y (case-insensitive) as true and
// everything else as false. It never degrades to a string.
func convertBool(content string) any {
	switch strings.ToLower(content) {
	case "true", "1", "yes", "y":
		return true
	default:
		return false
	}
}

func convertInt(content string) any {
	n, err := strconv.ParseInt(content, 10, 64)
	if err != nil {
		logger.Warn("Cannot convert %q to integer, returning as string", content)
		return content
	}
	return n
}

func convertFloat(content string) any {
	f, err := strconv.ParseFloat(content, 64)
	if err != nil {
		logger.Warn("Cannot convert %q to float, returning as string", content)
		return content
	}
	return f
}

// datetimeLayouts lists the explicit-token formats: ISO-8601 first,
// then dashed and slashed date forms with optional time parts.
var datetimeLayouts = []string{
	time.RFC3339Nano,
	"2006-01-02T15:04:05.999999999",
	"2006-01-02 15:04:05",
	"2006-01-02",
	"2006/01/02 15:04:05",
	"2006/01/02",
}

func convertDatetime(content string) any {
	candidate := content
	if strings.HasSuffix(candidate, "Z") {
		candidate = strings.TrimSuffix(candidate, "Z") + "+00:00"
	}
	for _, layout := range datetimeLayouts {
		if t, err := time.Parse(layout, candidate); err == nil {
			return t
		}
	}
	logger.Warn("Cannot parse datetime %q, returning as string", content)
	return content
}

// convertGeoPoint parses "lat,lng" into a GeoPoint. Anything but
// exactly two float parts degrades to the original string.
func convertGeoPoint(content string) any {
	parts := strings.Split(content, ",")
	if len(parts) != 2 {
		logger.Warn("Invalid geopoint format %q, expected \"lat,lng\"", content)
		return content
	}

	lat, latErr := strconv.ParseFloat(strings.TrimSpace(parts[0]), 64)
	lng, lngErr := strconv.ParseFloat(strings.TrimSpace(parts[1]), 64)
	if latErr != nil || lngErr != nil {
		logger.Warn("Cannot parse geopoint %q, returning as string", content)
		return content
	}

	return domain.GeoPoint{Latitude: lat, Longitude: lng}
}

// convertJSON decodes JSON content for the array/list and
// map/dict/object tokens.
func convertJSON(content string) any {
	decoded, err := decodeJSONValue(content)
	if err != nil {
		logger.Warn("Cannot parse JSON value %q: %v, returning as string", content, err)
		return content
	}
	return decoded
}

// decodeJSONValue unmarshals content, keeping integral numbers as
// int64 rather than float64.
func decodeJSONValue(content string) (any, error) {
	dec := json.NewDecoder(strings.NewReader(content))
	dec.UseNumber()

	var v any
	if err := dec.Decode(&v); err != nil {
		return nil, err
	}
	return normaliseJSON(v), nil
}

func normaliseJSON(v any) any {
	switch t := v.(type) {
	case json.Number:
		if n, err := t.Int64(); err == nil {
			return n
		}
		if f, err := t.Float64(); err == nil {
			return f
		}
		return t.String()
	case []any:
		for i := range t {
			t[i] = normaliseJSON(t[i])
		}
		return t
	case map[string]any:
		for k := range t {
			t[k] = normaliseJSON(t[k])
		}
		return t
	default:
		return v
	}
}

func convertBytes(content string) any {
	b, err := base64.StdEncoding.DecodeString(content)
	if err != nil {
		logger.Warn("Cannot decode base64 bytes %q, returning as string", content)
		return content
	}
	return b
}

// convertReference keeps the document path as a plain string; resolving
// it to a live reference is the store's concern.
func convertReference(content string) any {
	logger.Debug("Reference value %q kept as a path string", content)
	return content
}

func convertString(content string) any { return content }
