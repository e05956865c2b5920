package llm

import (
	"encoding/json"
	"fmt"
	"strings"
)

// SchemaValidator validates a parsed struct after JSON extraction.
// Returns nil if valid, or a descriptive error if invalid.
type SchemaValidator[T any] func(T) error

// ExtractJSON pulls the first JSON object out of raw model output and decodes
// it into T. Markdown fences, chatter around the object, comments and bare
// leading-dot decimals (".8") are tolerated. A non-nil validator runs on the
// decoded value.
func ExtractJSON[T any](raw string, validator SchemaValidator[T]) (T, error) {
	var zero T

	block := firstObject(dropFenceLines(raw))
	if block == "" {
		return zero, fmt.Errorf("%w: no JSON object found in response", ErrInvalidOutput)
	}

	var result T
	if err := json.Unmarshal([]byte(sanitizeJSON(block)), &result); err != nil {
		return zero, fmt.Errorf("%w: %v", ErrInvalidOutput, err)
	}

	if validator != nil {
		if err := validator(result); err != nil {
			return zero, fmt.Errorf("%w: validation failed: %v", ErrInvalidOutput, err)
		}
	}

	return result, nil
}

// dropFenceLines removes markdown fence lines (``` or ```json).
func dropFenceLines(s string) string {
	lines := strings.Split(s, "\n")
	kept := lines[:0]
	for _, line := range lines {
		if strings.HasPrefix(strings.TrimSpace(line), "```") {
			continue
		}
		kept = append(kept, line)
	}
	return strings.Join(kept, "\n")
}

// jsonScanner tracks whether a byte offset sits inside a string literal.
type jsonScanner struct {
	inString bool
	escaped  bool
}

// step consumes c and reports whether it belongs to a string literal
// (including its quotes).
func (sc *jsonScanner) step(c byte) bool {
	switch {
	case sc.escaped:
		sc.escaped = false
		return true
	case sc.inString && c == '\\':
		sc.escaped = true
		return true
	case c == '"':
		sc.inString = !sc.inString
		return true
	default:
		return sc.inString
	}
}

// firstObject returns the first balanced {...} block in s.
func firstObject(s string) string {
	start := strings.IndexByte(s, '{')
	if start == -1 {
		return ""
	}

	var sc jsonScanner
	depth := 0
	for i := start; i < len(s); i++ {
		if sc.step(s[i]) {
			continue
		}
		switch s[i] {
		case '{':
			depth++
		case '}':
			depth--
			if depth == 0 {
				return s[start : i+1]
			}
		}
	}
	return ""
}

// sanitizeJSON strips // and /* */ comments and rewrites ".5" as "0.5",
// leaving string contents untouched.
func sanitizeJSON(s string) string {
	var b strings.Builder
	b.Grow(len(s) + 8)

	var sc jsonScanner
	for i := 0; i < len(s); i++ {
		c := s[i]
		if sc.step(c) {
			b.WriteByte(c)
			continue
		}

		if c == '/' && i+1 < len(s) {
			switch s[i+1] {
			case '/':
				for i+1 < len(s) && s[i+1] != '\n' {
					i++
				}
				continue
			case '*':
				end := strings.Index(s[i+2:], "*/")
				if end == -1 {
					i = len(s)
				} else {
					i += 2 + end + 1
				}
				continue
			}
		}

		if c == '.' && i+1 < len(s) && isDigit(s[i+1]) && startsNumber(lastNonSpace(s[:i])) {
			b.WriteByte('0')
		}
		b.WriteByte(c)
	}
	return b.String()
}

func lastNonSpace(s string) byte {
	trimmed := strings.TrimRight(s, " \t\r\n")
	if trimmed == "" {
		return 0
	}
	return trimmed[len(trimmed)-1]
}

func startsNumber(prev byte) bool {
	switch prev {
	case 0, ':', ',', '[', '{', '-':
		return true
	}
	return false
}

func isDigit(c byte) bool {
	return c >= '0' && c <= '9'
}
