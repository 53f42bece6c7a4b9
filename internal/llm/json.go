package llm

import "errors"

// ErrNoJSON indicates a reply with no recoverable JSON payload
var ErrNoJSON = errors.New("no JSON payload in reply")

// ExtractJSON returns the first balanced {...} or [...] substring of s.
// Oracles wrap structured replies in prose, code fences, or both; rather
// than demand a clean document this accepts the first balanced object or
// array and leaves validation to the caller's json.Unmarshal. Brackets
// inside string literals do not count toward balance.
func ExtractJSON(s string) (string, error) {
	start := -1
	var open, close byte
	for i := 0; i < len(s); i++ {
		if s[i] == '{' || s[i] == '[' {
			start = i
			open = s[i]
			if open == '{' {
				close = '}'
			} else {
				close = ']'
			}
			break
		}
	}
	if start < 0 {
		return "", ErrNoJSON
	}

	depth := 0
	inString := false
	escaped := false
	for i := start; i < len(s); i++ {
		c := s[i]
		if inString {
			switch {
			case escaped:
				escaped = false
			case c == '\\':
				escaped = true
			case c == '"':
				inString = false
			}
			continue
		}
		switch c {
		case '"':
			inString = true
		case open:
			depth++
		case close:
			depth--
			if depth == 0 {
				return s[start : i+1], nil
			}
		}
	}

	return "", ErrNoJSON
}
