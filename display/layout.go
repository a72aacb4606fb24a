package display

import (
	"fmt"
	"strings"
	"time"
)

// Default patterns for timestamps and dates.
const (
	DefaultDateTimeFormat = "d/m/Y H:i:s"
	DefaultDateFormat     = "d/m/Y"
)

var phpLayoutTokens = map[byte]string{
	'd': "02",
	'D': "Mon",
	'j': "2",
	'l': "Monday",
	'F': "January",
	'm': "01",
	'M': "Jan",
	'n': "1",
	'Y': "2006",
	'y': "06",
	'a': "pm",
	'A': "PM",
	'g': "3",
	'G': "15",
	'h': "03",
	'H': "15",
	'i': "04",
	's': "05",
	'v': "000",
	'u': "000000",
	'e': "MST",
	'T': "MST",
	'P': "-07:00",
	'O': "-0700",
	'c': "2006-01-02T15:04:05-07:00",
	'r': "Mon, 02 Jan 2006 15:04:05 -0700",
}

// Layout converts a date pattern into a Go time layout. Patterns that already
// contain Go reference tokens are returned unchanged; anything else is read as
// a PHP date() pattern such as "d/m/Y H:i:s", where a backslash escapes the
// next character.
//
// Go layouts have no escape syntax, so an escaped literal that spells a
// reference token ("\M\o\n", "\P\M", a digit) is still read as that token
// by time.Parse. Use Format to render such patterns.
func Layout(pattern string) string {
	pattern = strings.TrimSpace(pattern)
	if pattern == "" {
		return ""
	}
	if isGoLayout(pattern) {
		return pattern
	}

	var b strings.Builder
	for i := 0; i < len(pattern); i++ {
		c := pattern[i]
		if c == '\\' && i+1 < len(pattern) {
			i++
			b.WriteByte(pattern[i])
			continue
		}
		if token, ok := phpLayoutTokens[c]; ok {
			b.WriteString(token)
			continue
		}
		b.WriteByte(c)
	}
	return b.String()
}

// Format renders t with a date pattern. PHP patterns are formatted one token
// at a time so escaped and unknown characters are always written verbatim.
func Format(t time.Time, pattern string) string {
	pattern = strings.TrimSpace(pattern)
	if pattern == "" || isGoLayout(pattern) {
		return t.Format(pattern)
	}

	var b strings.Builder
	for i := 0; i < len(pattern); i++ {
		c := pattern[i]
		if c == '\\' && i+1 < len(pattern) {
			i++
			b.WriteByte(pattern[i])
			continue
		}
		switch c {
		case 'v':
			fmt.Fprintf(&b, "%03d", t.Nanosecond()/int(time.Millisecond))
		case 'u':
			fmt.Fprintf(&b, "%06d", t.Nanosecond()/int(time.Microsecond))
		default:
			if token, ok := phpLayoutTokens[c]; ok {
				b.WriteString(t.Format(token))
				continue
			}
			b.WriteByte(c)
		}
	}
	return b.String()
}

func isGoLayout(pattern string) bool {
	for _, token := range []string{"2006", "15:04", "Jan", "Mon", "01/02", "02/01", "-07"} {
		if strings.Contains(pattern, token) {
			return true
		}
	}
	return false
}
