package widgetbus

import (
	"math"
	"regexp"
	"slices"
	"strings"

	"github.com/panelkit/panelkit/business/types/widgetkey"
)

// maxStringLen caps any config string regardless of the field's own limit.
const maxStringLen = 4000

// sqlKeywords matches statement keywords as whole words, case-insensitive.
// Matching whole words keeps values like "selected" or "dropdown" safe.
var sqlKeywords = regexp.MustCompile(`(?i)\b(select|insert|update|delete|drop|alter|create|truncate)\b`)

// metaSequences are character sequences with meaning to SQL comments or
// template engines. Any occurrence marks the value unsafe.
var metaSequences = []string{"--", ";", "/*", "*/", "{{", "}}", "${"}

// SanitizeConfig filters a widget config down to the fields the key's schema
// allows, dropping everything else. The returned slice names the dropped
// fields so the caller can log them. The input map is never mutated.
//
// Sanitizing is idempotent: running the output through again drops nothing.
// A key without a registered schema sanitizes to an empty config.
func SanitizeConfig(key widgetkey.Key, config map[string]any) (map[string]any, []string) {
	clean := make(map[string]any, len(config))
	var dropped []string

	schema := configSchemas[key]

	for field, value := range config {
		spec, allowed := schema[field]
		if !allowed {
			dropped = append(dropped, field)
			continue
		}

		if !valueConforms(spec, value) {
			dropped = append(dropped, field)
			continue
		}

		clean[field] = value
	}

	slices.Sort(dropped)

	return clean, dropped
}

// valueConforms reports whether the value fits the field's spec and carries
// no unsafe content. Nested objects and arrays never conform.
func valueConforms(spec fieldSpec, value any) bool {
	switch spec.kind {
	case kindString:
		s, ok := value.(string)
		if !ok {
			return false
		}
		if spec.maxLen > 0 && len(s) > spec.maxLen {
			return false
		}
		return safeString(s)

	case kindNumber:
		n, ok := numeric(value)
		if !ok {
			return false
		}
		return n >= spec.min && n <= spec.max

	case kindBoolean:
		_, ok := value.(bool)
		return ok

	case kindEnum:
		s, ok := value.(string)
		if !ok {
			return false
		}
		return slices.Contains(spec.values, s)
	}

	return false
}

// numeric accepts the number shapes JSON decoding and direct construction
// produce. NaN and infinities are rejected.
func numeric(value any) (float64, bool) {
	var n float64

	switch v := value.(type) {
	case float64:
		n = v
	case float32:
		n = float64(v)
	case int:
		n = float64(v)
	case int32:
		n = float64(v)
	case int64:
		n = float64(v)
	default:
		return 0, false
	}

	if math.IsNaN(n) || math.IsInf(n, 0) {
		return 0, false
	}

	return n, true
}

// safeString reports whether a string is free of SQL keywords, template
// interpolation markers and comment metacharacters. Only printable ASCII is
// allowed: the keyword and metacharacter patterns are ASCII-based, so any
// rune outside that range could smuggle a homoglyph of a blocked sequence
// past the scan.
func safeString(s string) bool {
	if len(s) > maxStringLen {
		return false
	}

	for _, r := range s {
		if r < 0x20 || r > 0x7e {
			return false
		}
	}

	if sqlKeywords.MatchString(s) {
		return false
	}

	for _, seq := range metaSequences {
		if strings.Contains(s, seq) {
			return false
		}
	}

	return true
}
