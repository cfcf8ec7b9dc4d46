// Package docjson recovers a single JSON object from raw model output.
// Vision models wrap their answers in markdown fences, leading prose,
// trailing commas, comments, or single-quoted strings; this package layers
// cheap textual repairs before the aggressive ones and fails explicitly only
// after every strategy is exhausted.
package docjson

import (
	"encoding/json"
	"errors"
	"fmt"
	"regexp"
	"strings"
)

// ExtractionError is the terminal failure of the repair chain. It carries the
// decode offset and a window of the offending text to make model misbehavior
// diagnosable from logs alone.
type ExtractionError struct {
	Offset int64
	Window string
	Err    error
}

func (e *ExtractionError) Error() string {
	if e.Window != "" {
		return fmt.Sprintf("no valid JSON object recovered: %v (near offset %d: %q)", e.Err, e.Offset, e.Window)
	}
	return fmt.Sprintf("no valid JSON object recovered: %v", e.Err)
}

func (e *ExtractionError) Unwrap() error { return e.Err }

var trailingComma = regexp.MustCompile(`,\s*([}\]])`)

// Extract recovers the JSON object embedded in text. Strategies are applied
// in order of increasing aggressiveness, short-circuiting on first success:
//
//  1. strip markdown code fences
//  2. slice from first '{' to last '}'
//  3. remove trailing commas before '}' / ']'
//  4. strip // and /* */ comments (outside string literals)
//  5. parse cleaned, then raw, then raw with only the comma fix
//  6. re-slice braces on the cleaned text, comma fix, parse
//  7. rewrite single-quoted strings to double quotes, comma fix, parse
//
// Rewriting quotes can corrupt legitimate apostrophes, so it stays last.
// No strategy ever substitutes an empty object for a failure.
func Extract(text string) (map[string]any, error) {
	cleaned := stripComments(fixTrailingCommas(sliceBraces(stripFences(text))))

	candidates := []string{
		cleaned,
		text,
		fixTrailingCommas(text),
		fixTrailingCommas(sliceBraces(cleaned)),
		fixTrailingCommas(rewriteSingleQuotes(cleaned)),
	}

	var lastErr error
	var lastText string
	for _, c := range candidates {
		if strings.TrimSpace(c) == "" {
			continue
		}
		obj, err := parseObject(c)
		if err == nil {
			return obj, nil
		}
		lastErr = err
		lastText = c
	}
	if lastErr == nil {
		lastErr = errors.New("empty input")
	}

	extErr := &ExtractionError{Err: lastErr}
	var syn *json.SyntaxError
	if errors.As(lastErr, &syn) {
		extErr.Offset = syn.Offset
		// the window must be cut from the exact text that failed; later
		// candidates may have been blank-skipped
		extErr.Window = window(lastText, syn.Offset)
	}
	return nil, extErr
}

func parseObject(s string) (map[string]any, error) {
	var obj map[string]any
	if err := json.Unmarshal([]byte(s), &obj); err != nil {
		return nil, err
	}
	if obj == nil {
		return nil, errors.New("decoded JSON is not an object")
	}
	return obj, nil
}

// stripFences removes a leading ``` or ```json marker line and a trailing
// ``` marker, leaving the body untouched.
func stripFences(s string) string {
	out := strings.TrimSpace(s)
	if !strings.HasPrefix(out, "```") {
		return out
	}
	out = strings.TrimPrefix(out, "```")
	out = strings.TrimPrefix(out, "json")
	if i := strings.LastIndex(out, "```"); i >= 0 {
		out = out[:i]
	}
	return strings.TrimSpace(out)
}

// sliceBraces keeps the greedy first-'{' to last-'}' span, discarding any
// surrounding prose. Returns the input unchanged when no span exists.
func sliceBraces(s string) string {
	i := strings.IndexByte(s, '{')
	j := strings.LastIndexByte(s, '}')
	if i < 0 || j <= i {
		return s
	}
	return s[i : j+1]
}

func fixTrailingCommas(s string) string {
	return trailingComma.ReplaceAllString(s, "$1")
}

// stripComments drops //-line and /* */ block comments. String literals are
// respected so URLs like "https://..." survive intact.
func stripComments(s string) string {
	var b strings.Builder
	b.Grow(len(s))

	inString := false
	escaped := false
	for i := 0; i < len(s); i++ {
		c := s[i]
		if inString {
			b.WriteByte(c)
			if escaped {
				escaped = false
			} else if c == '\\' {
				escaped = true
			} else if c == '"' {
				inString = false
			}
			continue
		}
		switch {
		case c == '"':
			inString = true
			b.WriteByte(c)
		case c == '/' && i+1 < len(s) && s[i+1] == '/':
			for i < len(s) && s[i] != '\n' {
				i++
			}
			if i < len(s) {
				b.WriteByte('\n')
			}
		case c == '/' && i+1 < len(s) && s[i+1] == '*':
			i += 2
			for i+1 < len(s) && !(s[i] == '*' && s[i+1] == '/') {
				i++
			}
			i++ // consume the trailing '/'
		default:
			b.WriteByte(c)
		}
	}
	return b.String()
}

// rewriteSingleQuotes converts single-quoted string delimiters to double
// quotes outside existing double-quoted strings. Lossy on apostrophes, which
// is why it is the last strategy attempted.
func rewriteSingleQuotes(s string) string {
	var b strings.Builder
	b.Grow(len(s))

	inDouble := false
	escaped := false
	for i := 0; i < len(s); i++ {
		c := s[i]
		if inDouble {
			b.WriteByte(c)
			if escaped {
				escaped = false
			} else if c == '\\' {
				escaped = true
			} else if c == '"' {
				inDouble = false
			}
			continue
		}
		switch c {
		case '"':
			inDouble = true
			b.WriteByte(c)
		case '\'':
			b.WriteByte('"')
		default:
			b.WriteByte(c)
		}
	}
	return b.String()
}

// window returns up to 40 bytes of context around the decode offset.
func window(s string, offset int64) string {
	if s == "" {
		return ""
	}
	pos := int(offset)
	if pos > len(s) {
		pos = len(s)
	}
	lo := pos - 20
	if lo < 0 {
		lo = 0
	}
	hi := pos + 20
	if hi > len(s) {
		hi = len(s)
	}
	return s[lo:hi]
}
