package restguard

import (
	"regexp"
	"strings"
	"unicode"
)

var (
	scriptPattern       = regexp.MustCompile(`(?is)<(script|style)[^>]*>.*?</(script|style)\s*>`)
	percentOctetPattern = regexp.MustCompile(`%[a-fA-F0-9]{2}`)
)

// sanitizeText makes attacker-controlled text safe for a single log line:
// invalid UTF-8, tags, percent-encoded octets and control characters are
// removed, whitespace runs are collapsed. A "<" that does not open a tag is
// kept as "&lt;".
func sanitizeText(s string) string {
	s = strings.ToValidUTF8(s, "")
	s = stripTags(scriptPattern.ReplaceAllString(s, ""))
	s = percentOctetPattern.ReplaceAllString(s, "")
	s = strings.Map(func(r rune) rune {
		if unicode.IsSpace(r) {
			return ' '
		}
		if unicode.IsControl(r) {
			return -1
		}
		return r
	}, s)
	return strings.Join(strings.Fields(s), " ")
}

// stripTags removes complete tags, i.e. "<" followed by a tag name start and
// closed by ">" before any other "<".
func stripTags(s string) string {
	var b strings.Builder
	for {
		i := strings.IndexByte(s, '<')
		if i < 0 {
			b.WriteString(s)
			return b.String()
		}
		b.WriteString(s[:i])
		s = s[i:]
		if end := tagEnd(s); end > 0 {
			s = s[end:]
			continue
		}
		b.WriteString("&lt;")
		s = s[1:]
	}
}

// tagEnd returns the length of the tag at the start of s, or 0 if s does not
// start with one.
func tagEnd(s string) int {
	if len(s) < 3 || !isTagStart(s[1]) {
		return 0
	}
	end := strings.IndexByte(s, '>')
	if end < 0 {
		return 0
	}
	if next := strings.IndexByte(s[1:], '<'); next >= 0 && next+1 < end {
		return 0
	}
	return end + 1
}

func isTagStart(c byte) bool {
	return c == '/' || c == '!' || c == '?' ||
		('a' <= c && c <= 'z') || ('A' <= c && c <= 'Z')
}
