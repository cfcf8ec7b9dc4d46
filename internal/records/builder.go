// Package records maps loosely-typed parsed documents into validated domain
// records. Every field access assumes the value may be absent or wrongly
// typed; medications default permissively while followups are skipped when
// their date is missing. The two policies are deliberate and distinct.
package records

import (
	"log/slog"
	"strings"

	"github.com/vibhandikyash/MediCare-BE/internal/entity"
)

// Builder turns parsed document trees into domain records. Today anchors the
// reminder window defaulting so building stays deterministic under test.
type Builder struct {
	Logger *slog.Logger
	Today  entity.Date
}

func NewBuilder(logger *slog.Logger, today entity.Date) *Builder {
	if logger == nil {
		logger = slog.Default()
	}
	return &Builder{Logger: logger, Today: today}
}

// asString returns the trimmed string at key, or "" when absent or not a
// string.
func asString(m map[string]any, key string) string {
	if v, ok := m[key].(string); ok {
		return strings.TrimSpace(v)
	}
	return ""
}

func asList(m map[string]any, key string) []any {
	if v, ok := m[key].([]any); ok {
		return v
	}
	return nil
}

func asBool(m map[string]any, key string) bool {
	v, _ := m[key].(bool)
	return v
}

// asDate parses a YYYY-MM-DD string field. Anything unparseable is nil, not
// an error.
func asDate(m map[string]any, key string) *entity.Date {
	s := asString(m, key)
	if s == "" {
		return nil
	}
	d, err := entity.ParseDate(s)
	if err != nil {
		return nil
	}
	return &d
}
