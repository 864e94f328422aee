package config

import (
	"bytes"
	"encoding/base64"
	"encoding/json"
	"math"
	"strconv"
	"strings"
)

// Encode serializes settings into a compact text blob suitable for a URL
// fragment: JSON, then unpadded URL-safe base64.
func Encode(s Settings) string {
	data, err := json.Marshal(s)
	if err != nil {
		return ""
	}
	return base64.RawURLEncoding.EncodeToString(data)
}

// Decode parses a blob produced by Encode. It also accepts the padded
// standard alphabet and a full link whose fragment carries the blob.
// Numbers may be quoted, as in links written by form inputs; an empty
// quoted number keeps the default.
// On any failure it returns the defaults and false.
func Decode(blob string) (Settings, bool) {
	blob = strings.TrimSpace(blob)
	if i := strings.LastIndexByte(blob, '#'); i >= 0 {
		blob = blob[i+1:]
	}
	if blob == "" {
		return DefaultSettings(), false
	}

	data, ok := decodeBase64(blob)
	if !ok {
		return DefaultSettings(), false
	}

	data, err := unquoteNumbers(data)
	if err != nil {
		return DefaultSettings(), false
	}

	s := DefaultSettings()
	if err := json.Unmarshal(data, &s); err != nil {
		return DefaultSettings(), false
	}
	return s.Normalize(), true
}

// unquoteNumbers rewrites the settings sections so quoted numbers become
// JSON integers. Empty strings are dropped and fractions are rounded.
func unquoteNumbers(data []byte) ([]byte, error) {
	dec := json.NewDecoder(bytes.NewReader(data))
	dec.UseNumber()

	var sections map[string]map[string]any
	if err := dec.Decode(&sections); err != nil {
		return nil, err
	}
	for _, fields := range sections {
		for k, v := range fields {
			var raw string
			switch v := v.(type) {
			case string:
				raw = strings.TrimSpace(v)
			case json.Number:
				raw = v.String()
			default:
				continue
			}
			if raw == "" {
				delete(fields, k)
				continue
			}
			if n, ok := parseInt(raw); ok {
				fields[k] = json.Number(strconv.FormatInt(n, 10))
			}
		}
	}
	return json.Marshal(sections)
}

func parseInt(s string) (int64, bool) {
	f, err := strconv.ParseFloat(s, 64)
	if err != nil || math.IsNaN(f) || math.IsInf(f, 0) {
		return 0, false
	}
	return int64(math.Round(f)), true
}
