package firestore

import (
	"encoding/base64"
	"fmt"
	"time"

	firestorepb "google.golang.org/api/firestore/v1"

	"github.com/custodia-labs/fireload-cli/internal/core/domain"
)

// nullValue is the enum literal the REST API expects for null fields.
const nullValue = "NULL_VALUE"

// encodeFields converts an assembled document into the REST wire
// representation.
func encodeFields(fields map[string]any) (map[string]firestorepb.Value, error) {
	out := make(map[string]firestorepb.Value, len(fields))
	for name, value := range fields {
		encoded, err := encodeValue(value)
		if err != nil {
			return nil, fmt.Errorf("field %q: %w", name, err)
		}
		out[name] = *encoded
	}
	return out, nil
}

// encodeValue maps one typed value onto the Value union. Zero values
// (false, 0, "") must survive the trip, so every branch force-sends
// its field.
func encodeValue(value any) (*firestorepb.Value, error) {
	switch v := value.(type) {
	case nil:
		return &firestorepb.Value{
			NullValue:       nullValue,
			ForceSendFields: []string{"NullValue"},
		}, nil

	case string:
		return &firestorepb.Value{
			StringValue:     v,
			ForceSendFields: []string{"StringValue"},
		}, nil

	case bool:
		return &firestorepb.Value{
			BooleanValue:    v,
			ForceSendFields: []string{"BooleanValue"},
		}, nil

	case int:
		return encodeValue(int64(v))

	case int64:
		return &firestorepb.Value{
			IntegerValue:    v,
			ForceSendFields: []string{"IntegerValue"},
		}, nil

	case float64:
		return &firestorepb.Value{
			DoubleValue:     v,
			ForceSendFields: []string{"DoubleValue"},
		}, nil

	case time.Time:
		return &firestorepb.Value{
			TimestampValue: v.UTC().Format(time.RFC3339Nano),
		}, nil

	case domain.GeoPoint:
		return &firestorepb.Value{
			GeoPointValue: &firestorepb.LatLng{
				Latitude:        v.Latitude,
				Longitude:       v.Longitude,
				ForceSendFields: []string{"Latitude", "Longitude"},
			},
		}, nil

	case []byte:
		return &firestorepb.Value{
			BytesValue: base64.StdEncoding.EncodeToString(v),
		}, nil

	case []any:
		values := make([]*firestorepb.Value, 0, len(v))
		for i, element := range v {
			encoded, err := encodeValue(element)
			if err != nil {
				return nil, fmt.Errorf("element %d: %w", i, err)
			}
			values = append(values, encoded)
		}
		return &firestorepb.Value{
			ArrayValue: &firestorepb.ArrayValue{Values: values},
		}, nil

	case map[string]any:
		fields, err := encodeFields(v)
		if err != nil {
			return nil, err
		}
		return &firestorepb.Value{
			MapValue: &firestorepb.MapValue{Fields: fields},
		}, nil

	default:
		return nil, fmt.Errorf("%w: unsupported value type %T", domain.ErrInvalidInput, value)
	}
}
