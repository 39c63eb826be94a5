package orderform

import (
	"bytes"
	"fmt"
	"io"
	"path/filepath"
	"strings"

	"github.com/goccy/go-json"
	"gopkg.in/yaml.v3"
)

// Format names an encoding for candidates and recorded payloads.
type Format string

const (
	FormatJSON Format = "json"
	FormatYAML Format = "yaml"
)

// ParseFormat accepts "json", "yaml" and "yml" (case-insensitive).
func ParseFormat(s string) (Format, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "json":
		return FormatJSON, nil
	case "yaml", "yml":
		return FormatYAML, nil
	}
	return "", fmt.Errorf("orderform: unknown format %q", s)
}

// FormatFromPath guesses the format from a file extension, defaulting to JSON.
func FormatFromPath(path string) Format {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		return FormatYAML
	}
	return FormatJSON
}

// Decode reads one candidate object from r in the given format.
func Decode(r io.Reader, f Format) (map[string]any, error) {
	b, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("orderform: read candidate: %w", err)
	}
	switch f {
	case FormatYAML:
		return DecodeYAML(b)
	default:
		return DecodeJSON(b)
	}
}

// DecodeJSON decodes a JSON object into a raw candidate. Numbers are kept as
// json.Number so that digit strings and numbers stay distinguishable.
func DecodeJSON(b []byte) (map[string]any, error) {
	dec := json.NewDecoder(bytes.NewReader(b))
	dec.UseNumber()
	var v any
	if err := dec.Decode(&v); err != nil {
		return nil, FieldErrors{{Path: "/", Code: CodeParseError, Message: err.Error()}}
	}
	return asObject(v)
}

// DecodeYAML decodes a YAML mapping into a raw candidate.
func DecodeYAML(b []byte) (map[string]any, error) {
	var v any
	if err := yaml.Unmarshal(b, &v); err != nil {
		return nil, FieldErrors{{Path: "/", Code: CodeParseError, Message: err.Error()}}
	}
	return asObject(normalizeYAML(v))
}

func asObject(v any) (map[string]any, error) {
	m, ok := v.(map[string]any)
	if !ok {
		return nil, FieldErrors{{Path: "/", Code: CodeInvalidType, Message: Message(CodeInvalidType), Hint: "expected object"}}
	}
	return m, nil
}

// normalizeYAML converts map[any]any produced for non-string keys into
// map[string]any recursively.
func normalizeYAML(v any) any {
	switch t := v.(type) {
	case map[any]any:
		out := make(map[string]any, len(t))
		for k, vv := range t {
			out[fmt.Sprint(k)] = normalizeYAML(vv)
		}
		return out
	case map[string]any:
		for k, vv := range t {
			t[k] = normalizeYAML(vv)
		}
		return t
	case []any:
		for i := range t {
			t[i] = normalizeYAML(t[i])
		}
		return t
	}
	return v
}
