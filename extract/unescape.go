package extract

import (
	"unicode/utf8"

	"github.com/cesanta/mjson/token"
)

// Unescape decodes the body of a JSON string (the bytes between, but
// not including, the surrounding quotes) into its represented UTF-8
// text. \uXXXX sequences are decoded and surrogate pairs are combined
// into a single rune — this goes beyond the original C source, which
// never decodes \u escapes at all (see SPEC_FULL.md's supplemented
// features); everything else follows mjson_unescape's escape table,
// shared with the scanner via token.DecodeEscape.
func Unescape(body []byte) (out []byte, ok bool) {
	out = make([]byte, 0, len(body))
	for i := 0; i < len(body); {
		c := body[i]
		if c != '\\' {
			out = append(out, c)
			i++
			continue
		}
		if i+1 >= len(body) {
			return nil, false
		}
		esc := body[i+1]
		if esc == 'u' {
			r, n, valid := decodeUnicodeEscape(body[i:])
			if !valid {
				return nil, false
			}
			var buf [utf8.UTFMax]byte
			w := utf8.EncodeRune(buf[:], r)
			out = append(out, buf[:w]...)
			i += n
			continue
		}
		raw, found := token.DecodeEscape(esc)
		if !found {
			return nil, false
		}
		out = append(out, raw)
		i += 2
	}
	return out, true
}

// decodeUnicodeEscape decodes one or two \uXXXX sequences starting at
// body[0] (a leading surrogate is paired with an immediately following
// \uXXXX low surrogate), returning the decoded rune and the number of
// input bytes consumed.
func decodeUnicodeEscape(body []byte) (r rune, n int, ok bool) {
	if len(body) < 6 || body[0] != '\\' || body[1] != 'u' {
		return 0, 0, false
	}
	hi, ok := hex4(body[2:6])
	if !ok {
		return 0, 0, false
	}
	if hi < 0xD800 || hi > 0xDBFF {
		return rune(hi), 6, true
	}
	if len(body) < 12 || body[6] != '\\' || body[7] != 'u' {
		return utf8.RuneError, 6, true
	}
	lo, ok := hex4(body[8:12])
	if !ok || lo < 0xDC00 || lo > 0xDFFF {
		return utf8.RuneError, 6, true
	}
	combined := ((rune(hi) - 0xD800) << 10) | (rune(lo) - 0xDC00) + 0x10000
	return combined, 12, true
}

func hex4(b []byte) (uint16, bool) {
	var v uint16
	for _, c := range b {
		v <<= 4
		switch {
		case c >= '0' && c <= '9':
			v |= uint16(c - '0')
		case c >= 'a' && c <= 'f':
			v |= uint16(c-'a') + 10
		case c >= 'A' && c <= 'F':
			v |= uint16(c-'A') + 10
		default:
			return 0, false
		}
	}
	return v, true
}
