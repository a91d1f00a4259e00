package instrument

import (
	"context"
	"encoding/json"
	"log/slog"
	"regexp"
	"strings"
)

const maskedValue = "***"

// reMigrationLink matches export links wherever they appear in a string
// value, e.g. inside a wrapped error message.
var reMigrationLink = regexp.MustCompile(`(?i)otpauth-migration://\S+`)

func redactLinks(s string) string {
	if !strings.Contains(strings.ToLower(s), "otpauth-migration:") {
		return s
	}
	return reMigrationLink.ReplaceAllString(s, "otpauth-migration://"+maskedValue)
}

// redactor masks attributes whose key is listed (case-insensitive) and
// strips migration links from every string it walks.
type redactor map[string]struct{}

func newRedactor(fields []string) redactor {
	r := redactor{}
	for _, field := range fields {
		if field = strings.ToLower(strings.TrimSpace(field)); field != "" {
			r[field] = struct{}{}
		}
	}
	return r
}

func (r redactor) hidden(key string) bool {
	_, ok := r[strings.ToLower(key)]
	return ok
}

func (r redactor) attr(a slog.Attr) slog.Attr {
	if r.hidden(a.Key) {
		return slog.String(a.Key, maskedValue)
	}

	switch a.Value.Kind() {
	case slog.KindGroup:
		group := a.Value.Group()
		out := make([]slog.Attr, len(group))
		for i, ga := range group {
			out[i] = r.attr(ga)
		}
		a.Value = slog.GroupValue(out...)
	case slog.KindString:
		a.Value = slog.StringValue(r.text(a.Value.String()))
	case slog.KindAny:
		a.Value = r.any(a.Value.Any())
	}

	return a
}

func (r redactor) any(v any) slog.Value {
	switch val := v.(type) {
	case nil:
		return slog.AnyValue(nil)
	case error:
		return slog.StringValue(redactLinks(val.Error()))
	case []byte:
		if masked, ok := r.json(val); ok {
			return slog.StringValue(masked)
		}
		return slog.AnyValue(val)
	case map[string]string:
		m := make(map[string]any, len(val))
		for k, s := range val {
			m[k] = s
		}
		return slog.AnyValue(r.data(m))
	case map[string]any, []any:
		return slog.AnyValue(r.data(val))
	default:
		return slog.AnyValue(v)
	}
}

// text masks a JSON document by key, or redacts links in plain text.
func (r redactor) text(s string) string {
	if s != "" && (s[0] == '{' || s[0] == '[') {
		if masked, ok := r.json([]byte(s)); ok {
			return masked
		}
	}
	return redactLinks(s)
}

func (r redactor) json(payload []byte) (string, bool) {
	var doc any
	if len(payload) == 0 || json.Unmarshal(payload, &doc) != nil {
		return "", false
	}

	out, err := json.Marshal(r.data(doc))
	if err != nil {
		return "", false
	}
	return string(out), true
}

func (r redactor) data(v any) any {
	switch val := v.(type) {
	case map[string]any:
		out := make(map[string]any, len(val))
		for k, item := range val {
			if r.hidden(k) {
				out[k] = maskedValue
				continue
			}
			out[k] = r.data(item)
		}
		return out
	case []any:
		out := make([]any, len(val))
		for i, item := range val {
			out[i] = r.data(item)
		}
		return out
	case string:
		return redactLinks(val)
	default:
		return v
	}
}

// maskHandler redacts records and logger-bound attributes before passing
// them on.
type maskHandler struct {
	next   slog.Handler
	redact redactor
}

func (h *maskHandler) Enabled(ctx context.Context, level slog.Level) bool {
	return h.next.Enabled(ctx, level)
}

func (h *maskHandler) Handle(ctx context.Context, record slog.Record) error {
	out := slog.NewRecord(record.Time, record.Level, redactLinks(record.Message), record.PC)
	record.Attrs(func(a slog.Attr) bool {
		out.AddAttrs(h.redact.attr(a))
		return true
	})

	return h.next.Handle(ctx, out)
}

func (h *maskHandler) WithAttrs(attrs []slog.Attr) slog.Handler {
	out := make([]slog.Attr, len(attrs))
	for i, a := range attrs {
		out[i] = h.redact.attr(a)
	}
	return &maskHandler{next: h.next.WithAttrs(out), redact: h.redact}
}

func (h *maskHandler) WithGroup(name string) slog.Handler {
	return &maskHandler{next: h.next.WithGroup(name), redact: h.redact}
}
