package primitive

import (
	"encoding/base64"
	"fmt"
	"strconv"
	"time"

	"github.com/google/uuid"

	"docmap-generator/document"
)

// Runtime representative types per scalar kind, as accepted by Format and
// produced by Parse:
//
//	string-like kinds  -> string
//	bool               -> bool
//	signed integers    -> int64
//	unsigned integers  -> uint64
//	floats             -> float64
//	time               -> time.Time
//	duration           -> time.Duration
//	guid               -> uuid.UUID
//	bytes              -> []byte
//	enum               -> string (string wire) or int64 (number wire)

// Format renders a runtime scalar value as a wire value of kind w.
// The (k, w) pair must be admitted by the capability table.
func Format(k Kind, w document.Kind, v any) (document.Value, error) {
	if !CanRepresent(k, w) {
		return document.Value{}, fmt.Errorf("scalar kind %s cannot be carried by wire kind %s", k, w)
	}

	switch k {
	case KindString, KindGUID:
		return formatStringLike(k, v)
	case KindBool:
		return formatBool(w, v)
	case KindTime:
		return formatTime(w, v)
	case KindDuration:
		return formatDuration(w, v)
	case KindBytes:
		return formatBytes(w, v)
	case KindEnum:
		return formatEnum(w, v)
	default:
		if k.IsNumber() {
			return formatNumber(k, w, v)
		}

		return document.Value{}, fmt.Errorf("no formatter for scalar kind %s", k)
	}
}

// Parse recovers the runtime scalar value from a wire value of kind w.
// Inverse of Format for every (k, w) pair the capability table admits.
func Parse(k Kind, w document.Kind, dv document.Value) (any, error) {
	if dv.Kind() != w {
		return nil, fmt.Errorf("expected wire kind %s, got %s", w, dv.Kind())
	}

	switch k {
	case KindString:
		return dv.StringValue(), nil
	case KindGUID:
		return uuid.Parse(dv.StringValue())
	case KindBool:
		return parseBool(w, dv)
	case KindTime:
		return parseTime(w, dv)
	case KindDuration:
		return parseDuration(w, dv)
	case KindBytes:
		return parseBytes(w, dv)
	case KindEnum:
		return parseEnum(w, dv)
	default:
		if k.IsNumber() {
			return parseNumber(k, w, dv)
		}

		return nil, fmt.Errorf("no parser for scalar kind %s", k)
	}
}

func formatStringLike(k Kind, v any) (document.Value, error) {
	switch t := v.(type) {
	case string:
		return document.String(t), nil
	case uuid.UUID:
		if k != KindGUID {
			break
		}

		return document.String(t.String()), nil
	}

	return document.Value{}, fmt.Errorf("cannot format %T as %s", v, k)
}

func formatBool(w document.Kind, v any) (document.Value, error) {
	b, ok := v.(bool)
	if !ok {
		return document.Value{}, fmt.Errorf("cannot format %T as bool", v)
	}

	switch w {
	case document.KindBool:
		return document.Bool(b), nil
	case document.KindNumber:
		if b {
			return document.Number("1"), nil
		}

		return document.Number("0"), nil
	default:
		return document.String(strconv.FormatBool(b)), nil
	}
}

func parseBool(w document.Kind, dv document.Value) (bool, error) {
	switch w {
	case document.KindBool:
		return dv.BoolValue(), nil
	case document.KindNumber:
		switch dv.NumberValue() {
		case "0":
			return false, nil
		case "1":
			return true, nil
		default:
			return false, fmt.Errorf("number %q is not a boolean", dv.NumberValue())
		}
	default:
		return strconv.ParseBool(dv.StringValue())
	}
}

func formatNumber(k Kind, w document.Kind, v any) (document.Value, error) {
	var repr string

	switch t := v.(type) {
	case int64:
		if !k.IsSigned() {
			return document.Value{}, fmt.Errorf("int64 value for non-signed kind %s", k)
		}

		repr = strconv.FormatInt(t, 10)
	case uint64:
		if !k.IsUnsigned() {
			return document.Value{}, fmt.Errorf("uint64 value for non-unsigned kind %s", k)
		}

		repr = strconv.FormatUint(t, 10)
	case float64:
		if !k.IsFloat() {
			return document.Value{}, fmt.Errorf("float64 value for non-float kind %s", k)
		}

		repr = strconv.FormatFloat(t, 'g', -1, 64)
	default:
		return document.Value{}, fmt.Errorf("cannot format %T as %s", v, k)
	}

	if w == document.KindString {
		return document.String(repr), nil
	}

	return document.Number(repr), nil
}

func parseNumber(k Kind, w document.Kind, dv document.Value) (any, error) {
	repr := dv.NumberValue()
	if w == document.KindString {
		repr = dv.StringValue()
	}

	switch {
	case k.IsSigned():
		return strconv.ParseInt(repr, 10, 64)
	case k.IsUnsigned():
		return strconv.ParseUint(repr, 10, 64)
	default:
		return strconv.ParseFloat(repr, 64)
	}
}

func formatTime(w document.Kind, v any) (document.Value, error) {
	t, ok := v.(time.Time)
	if !ok {
		return document.Value{}, fmt.Errorf("cannot format %T as time", v)
	}

	if w == document.KindNumber {
		return document.Number(strconv.FormatInt(t.Unix(), 10)), nil
	}

	return document.String(t.UTC().Format(time.RFC3339Nano)), nil
}

func parseTime(w document.Kind, dv document.Value) (time.Time, error) {
	if w == document.KindNumber {
		sec, err := strconv.ParseInt(dv.NumberValue(), 10, 64)
		if err != nil {
			return time.Time{}, err
		}

		return time.Unix(sec, 0).UTC(), nil
	}

	return time.Parse(time.RFC3339Nano, dv.StringValue())
}

func formatDuration(w document.Kind, v any) (document.Value, error) {
	d, ok := v.(time.Duration)
	if !ok {
		return document.Value{}, fmt.Errorf("cannot format %T as duration", v)
	}

	if w == document.KindNumber {
		return document.Number(strconv.FormatInt(int64(d), 10)), nil
	}

	return document.String(d.String()), nil
}

func parseDuration(w document.Kind, dv document.Value) (time.Duration, error) {
	if w == document.KindNumber {
		ns, err := strconv.ParseInt(dv.NumberValue(), 10, 64)
		if err != nil {
			return 0, err
		}

		return time.Duration(ns), nil
	}

	return time.ParseDuration(dv.StringValue())
}

func formatBytes(w document.Kind, v any) (document.Value, error) {
	b, ok := v.([]byte)
	if !ok {
		return document.Value{}, fmt.Errorf("cannot format %T as bytes", v)
	}

	if w == document.KindString {
		return document.String(base64.StdEncoding.EncodeToString(b)), nil
	}

	return document.Binary(b), nil
}

func parseBytes(w document.Kind, dv document.Value) ([]byte, error) {
	if w == document.KindString {
		return base64.StdEncoding.DecodeString(dv.StringValue())
	}

	return dv.BinaryValue(), nil
}

func formatEnum(w document.Kind, v any) (document.Value, error) {
	switch t := v.(type) {
	case string:
		if w != document.KindString {
			return document.Value{}, fmt.Errorf("string enum value requires string wire kind, got %s", w)
		}

		return document.String(t), nil
	case int64:
		if w != document.KindNumber {
			return document.Value{}, fmt.Errorf("integer enum value requires number wire kind, got %s", w)
		}

		return document.Number(strconv.FormatInt(t, 10)), nil
	default:
		return document.Value{}, fmt.Errorf("cannot format %T as enum", v)
	}
}

func parseEnum(w document.Kind, dv document.Value) (any, error) {
	if w == document.KindNumber {
		return strconv.ParseInt(dv.NumberValue(), 10, 64)
	}

	return dv.StringValue(), nil
}
