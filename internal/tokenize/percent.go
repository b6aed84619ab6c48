package tokenize

import "strings"

// unreserved characters are never percent-encoded (RFC 3986 §2.3).
func isUnreserved(b byte) bool {
	switch {
	case b >= 'a' && b <= 'z', b >= 'A' && b <= 'Z', b >= '0' && b <= '9':
		return true
	case b == '-' || b == '.' || b == '_' || b == '~':
		return true
	default:
		return false
	}
}

const hexDigits = "0123456789ABCDEF"

func isHexDigit(b byte) bool {
	return (b >= '0' && b <= '9') || (b >= 'a' && b <= 'f') || (b >= 'A' && b <= 'F')
}

// PercentEncode canonicalizes a URL/pattern token using a single table so
// that a stored URL and a pattern written against it normalize identically
// before matching (spec §4.3): unreserved characters stay literal, every
// other byte becomes %XX uppercase. A '%' that already begins a valid
// escape triple is left alone rather than re-escaped, which is what makes
// the transform idempotent: encoding an already-encoded pattern twice
// yields the same canonical form as encoding it once (spec §8).
func PercentEncode(s string) string {
	var b strings.Builder
	b.Grow(len(s))
	for i := 0; i < len(s); i++ {
		c := s[i]
		if c == '%' && i+2 < len(s) && isHexDigit(s[i+1]) && isHexDigit(s[i+2]) {
			b.WriteByte('%')
			b.WriteByte(byte(toUpper(s[i+1])))
			b.WriteByte(byte(toUpper(s[i+2])))
			i += 2
			continue
		}
		if isUnreserved(c) {
			b.WriteByte(c)
			continue
		}
		b.WriteByte('%')
		b.WriteByte(hexDigits[c>>4])
		b.WriteByte(hexDigits[c&0x0f])
	}
	return b.String()
}

func toUpper(b byte) byte {
	if b >= 'a' && b <= 'f' {
		return b - ('a' - 'A')
	}
	return b
}
