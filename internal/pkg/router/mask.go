package router

import (
	"encoding/json"
	"net/http"
	"net/url"
	"strings"
	"unicode/utf8"

	"github.com/shandysiswandi/authmigrate/internal/pkg/config"
)

const maskedValue = "***"

// masker hides the configured field names in logged headers and bodies.
// Keys are compared lower-cased.
type masker map[string]struct{}

func newMasker(cfg config.Config) masker {
	m := masker{}
	if cfg == nil {
		return m
	}

	for _, field := range cfg.GetArray("instrument.log_mask_fields") {
		m[strings.ToLower(field)] = struct{}{}
	}

	return m
}

func (m masker) hidden(key string) bool {
	_, ok := m[strings.ToLower(key)]
	return ok
}

func (m masker) header(h http.Header) http.Header {
	if len(m) == 0 {
		return h
	}

	out := h.Clone()
	for key := range out {
		if m.hidden(key) {
			out.Set(key, maskedValue)
		}
	}
	return out
}

func (m masker) value(v any) any {
	switch val := v.(type) {
	case map[string]any:
		out := make(map[string]any, len(val))
		for k, item := range val {
			if m.hidden(k) {
				out[k] = maskedValue
				continue
			}
			out[k] = m.value(item)
		}
		return out
	case []any:
		out := make([]any, len(val))
		for i, item := range val {
			out[i] = m.value(item)
		}
		return out
	default:
		return v
	}
}

// body renders a captured body for logging. JSON and form bodies are masked
// per key, other text is kept as is and binary content is omitted.
func (m masker) body(contentType string, body []byte, truncated bool) any {
	if len(body) == 0 {
		return nil
	}

	out := m.decode(contentType, body)
	if truncated {
		return map[string]any{"body": out, "truncated": true}
	}
	return out
}

func (m masker) decode(contentType string, body []byte) any {
	var v any
	if err := json.Unmarshal(body, &v); err == nil {
		return m.value(v)
	}

	if strings.HasPrefix(strings.ToLower(contentType), "application/x-www-form-urlencoded") {
		if values, err := url.ParseQuery(string(body)); err == nil {
			form := make(map[string]any, len(values))
			for k, vs := range values {
				form[k] = vs
			}
			return m.value(form)
		}
	}

	if !utf8.Valid(body) {
		return "<binary body omitted>"
	}
	return string(body)
}
