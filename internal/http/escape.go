package http

import "strings"

const upperHex = "0123456789ABCDEF"

// escapeTarget percent-encodes every byte of a relative request target that
// may not appear literally in a URI path or query (RFC 3986). Existing %XX
// escapes and the query delimiters & and = are kept, so pre-encoded queries
// reach the server unchanged while spaces, quotes and # do not break the
// request line.
func escapeTarget(target string) string {
	var b strings.Builder

	b.Grow(len(target))

	inQuery := false

	for i := 0; i < len(target); i++ {
		ch := target[i]

		switch {
		case ch == '?' && !inQuery:
			inQuery = true

			b.WriteByte(ch)
		case ch == '%' && i+2 < len(target) && isHex(target[i+1]) && isHex(target[i+2]):
			b.WriteByte(ch)
		case allowedInTarget(ch, inQuery):
			b.WriteByte(ch)
		default:
			b.WriteByte('%')
			b.WriteByte(upperHex[ch>>4])
			b.WriteByte(upperHex[ch&0x0f])
		}
	}

	return b.String()
}

func allowedInTarget(ch byte, inQuery bool) bool {
	switch {
	case 'a' <= ch && ch <= 'z', 'A' <= ch && ch <= 'Z', '0' <= ch && ch <= '9':
		return true
	case strings.IndexByte("-._~!$&'()*+,;=:@/", ch) >= 0:
		return true
	case ch == '?':
		return inQuery
	default:
		return false
	}
}

func isHex(ch byte) bool {
	return '0' <= ch && ch <= '9' || 'a' <= ch && ch <= 'f' || 'A' <= ch && ch <= 'F'
}
