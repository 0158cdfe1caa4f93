// Package normalize canonicalizes SQL text so that inputs which translate to
// the same explanation share one cache key.
//
// Only differences the lexer already ignores are removed: comments, runs of
// whitespace outside quoted text, spaces after commas, backslash-escaped
// quotes and a trailing semicolon. Anything that can reach the rendered
// explanation (identifier spelling, literal text, operator choice) is kept.
package normalize

import (
	"strings"
)

// ForCacheKey returns the canonical form of sql.
func ForCacheKey(sql string) string {
	s := StripComments(sql)
	s = EscapesInStrings(s)
	s = Whitespace(s)
	s = CommasOutsideStrings(s)
	s = strings.TrimSuffix(s, ";")
	return strings.TrimSpace(s)
}

// quotedEnd returns the index just past the quoted run that starts at s[i].
// Single-quoted strings honour backslash escapes; every quote style treats a
// doubled quote character as part of the literal. An unterminated literal
// runs to the end of s.
func quotedEnd(s string, i int) int {
	q := s[i]
	i++
	for i < len(s) {
		switch {
		case q == '\'' && s[i] == '\\' && i+1 < len(s):
			i += 2
		case s[i] == q && i+1 < len(s) && s[i+1] == q:
			i += 2
		case s[i] == q:
			return i + 1
		default:
			i++
		}
	}
	return i
}

func isQuote(ch byte) bool {
	return ch == '\'' || ch == '"' || ch == '`'
}

func isSpace(ch byte) bool {
	return ch == ' ' || ch == '\t' || ch == '\n' || ch == '\r' || ch == '\f' || ch == '\v'
}

// Whitespace collapses whitespace runs outside quoted text to one space and
// trims both ends. Quoted text is copied unchanged.
func Whitespace(s string) string {
	var result strings.Builder
	result.Grow(len(s))

	pendingSpace := false
	for i := 0; i < len(s); {
		ch := s[i]
		if isSpace(ch) {
			pendingSpace = result.Len() > 0
			i++
			continue
		}
		if pendingSpace {
			result.WriteByte(' ')
			pendingSpace = false
		}
		if isQuote(ch) {
			end := quotedEnd(s, i)
			result.WriteString(s[i:end])
			i = end
			continue
		}
		result.WriteByte(ch)
		i++
	}
	return result.String()
}

// EscapesInStrings rewrites \' inside single-quoted strings to the standard
// '' form. Other backslash escapes are left alone.
func EscapesInStrings(s string) string {
	var result strings.Builder
	result.Grow(len(s))

	for i := 0; i < len(s); {
		if s[i] != '\'' {
			if isQuote(s[i]) {
				end := quotedEnd(s, i)
				result.WriteString(s[i:end])
				i = end
				continue
			}
			result.WriteByte(s[i])
			i++
			continue
		}

		end := quotedEnd(s, i)
		lit := s[i:end]
		for j := 0; j < len(lit); j++ {
			if lit[j] == '\\' && j+1 < len(lit) {
				if lit[j+1] == '\'' && j+1 != len(lit)-1 {
					result.WriteString("''")
				} else {
					result.WriteByte(lit[j])
					result.WriteByte(lit[j+1])
				}
				j++
				continue
			}
			result.WriteByte(lit[j])
		}
		i = end
	}
	return result.String()
}

// CommasOutsideStrings removes spaces after commas that are outside of string literals.
func CommasOutsideStrings(s string) string {
	var result strings.Builder
	result.Grow(len(s))

	for i := 0; i < len(s); {
		ch := s[i]
		switch {
		case isQuote(ch):
			end := quotedEnd(s, i)
			result.WriteString(s[i:end])
			i = end
		case ch == ',':
			result.WriteByte(ch)
			i++
			for i < len(s) && s[i] == ' ' {
				i++
			}
		default:
			result.WriteByte(ch)
			i++
		}
	}
	return result.String()
}

// StripComments removes SQL comments from a query string. Each comment is
// replaced by a single space so neighbouring tokens stay separate.
// It handles:
//   - Line comments: -- to end of line
//   - Block comments: /* ... */ with nesting support
func StripComments(s string) string {
	var result strings.Builder
	result.Grow(len(s))

	i := 0
	for i < len(s) {
		if i+1 < len(s) && s[i] == '-' && s[i+1] == '-' {
			for i < len(s) && s[i] != '\n' {
				i++
			}
			result.WriteByte(' ')
			continue
		}

		if i+1 < len(s) && s[i] == '/' && s[i+1] == '*' {
			depth := 1
			i += 2
			for i < len(s) && depth > 0 {
				if i+1 < len(s) && s[i] == '/' && s[i+1] == '*' {
					depth++
					i += 2
				} else if i+1 < len(s) && s[i] == '*' && s[i+1] == '/' {
					depth--
					i += 2
				} else {
					i++
				}
			}
			result.WriteByte(' ')
			continue
		}

		if isQuote(s[i]) {
			end := quotedEnd(s, i)
			result.WriteString(s[i:end])
			i = end
			continue
		}

		result.WriteByte(s[i])
		i++
	}

	return result.String()
}
