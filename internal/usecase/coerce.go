package usecase

import (
	"bytes"
	"encoding/json"
	"strconv"
	"strings"
)

// Listing clients submit numeric and boolean attributes as JSON numbers,
// booleans or strings interchangeably. The lenient types below absorb all
// of those shapes; anything unparsable collapses to null rather than
// rejecting the whole payload.

// LenientFloat accepts a JSON number or a numeric string.
type LenientFloat struct {
	Value *float64
}

// UnmarshalJSON implements json.Unmarshaler.
func (f *LenientFloat) UnmarshalJSON(data []byte) error {
	raw, ok := normalizeScalar(data)
	if !ok {
		f.Value = nil

		return nil
	}

	parsed, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		f.Value = nil

		return nil
	}
	f.Value = &parsed

	return nil
}

// LenientInt accepts a JSON number or a numeric string, truncating any
// fractional part the way integer parsing of form input does.
type LenientInt struct {
	Value *int64
}

// UnmarshalJSON implements json.Unmarshaler.
func (i *LenientInt) UnmarshalJSON(data []byte) error {
	raw, ok := normalizeScalar(data)
	if !ok {
		i.Value = nil

		return nil
	}

	parsed, err := strconv.ParseInt(raw, 10, 64)
	if err != nil {
		// Accept "3.9" style input by truncating toward zero.
		asFloat, ferr := strconv.ParseFloat(raw, 64)
		if ferr != nil {
			i.Value = nil

			return nil
		}
		parsed = int64(asFloat)
	}
	i.Value = &parsed

	return nil
}

// LenientBool accepts true/false, "true"/"false" and "1"/"0".
type LenientBool struct {
	Value *bool
}

// UnmarshalJSON implements json.Unmarshaler.
func (b *LenientBool) UnmarshalJSON(data []byte) error {
	trimmed := bytes.TrimSpace(data)

	switch string(trimmed) {
	case "null":
		b.Value = nil

		return nil
	case "true":
		value := true
		b.Value = &value

		return nil
	case "false":
		value := false
		b.Value = &value

		return nil
	}

	var str string
	if err := json.Unmarshal(trimmed, &str); err != nil {
		b.Value = nil

		return nil
	}

	switch strings.ToLower(strings.TrimSpace(str)) {
	case "true", "1":
		value := true
		b.Value = &value
	case "false", "0":
		value := false
		b.Value = &value
	default:
		b.Value = nil
	}

	return nil
}

// normalizeScalar unwraps a JSON number or string into its raw text form.
// The second return value is false for null, empty strings and non-scalar
// input.
func normalizeScalar(data []byte) (string, bool) {
	trimmed := bytes.TrimSpace(data)
	if len(trimmed) == 0 || string(trimmed) == "null" {
		return "", false
	}

	if trimmed[0] == '"' {
		var str string
		if err := json.Unmarshal(trimmed, &str); err != nil {
			return "", false
		}
		str = strings.TrimSpace(str)
		if str == "" {
			return "", false
		}

		return str, true
	}

	return string(trimmed), true
}
