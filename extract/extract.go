// Package extract implements the thin typed wrappers over
// selector.Find: number, bool, string (with unescape), base64 and hex.
// Each calls Find exactly once and interprets the returned span.
//
// Grounded on the original C source's mjson_get_number/_bool/_string/
// _base64 (_examples/original_source/mjson.c), which all share this
// same "find once, then decode the span" shape.
package extract

import (
	"encoding/hex"
	"strconv"

	"github.com/cesanta/mjson/selector"
	"github.com/cesanta/mjson/token"
)

// Number looks up path in src and, if it names a JSON number, parses
// it as a float64. It mirrors mjson_get_number: on any miss (path not
// found, or found but not a number) it returns def unchanged.
func Number(src []byte, path string, def float64) float64 {
	m, err := selector.Find(src, path)
	if err != nil || m.Kind != token.Number {
		return def
	}
	v, err := strconv.ParseFloat(string(m.Bytes()), 64)
	if err != nil {
		return def
	}
	return v
}

// Bool looks up path in src and, if it names a JSON boolean, returns
// its value. Mirrors mjson_get_bool.
func Bool(src []byte, path string, def bool) bool {
	m, err := selector.Find(src, path)
	if err != nil {
		return def
	}
	switch m.Kind {
	case token.True:
		return true
	case token.False:
		return false
	default:
		return def
	}
}

// String looks up path in src and, if it names a JSON string,
// unescapes its contents into a new byte slice. It reports ok=false
// if the path doesn't resolve to a string, or if an escape sequence
// inside it is not one this module recognizes (the supported set is
// \b \f \n \r \t \\ \" \/ plus \uXXXX, which is decoded to UTF-8 and
// combined across surrogate pairs — see SPEC_FULL.md's "supplemented
// features": the original C source never decodes \u escapes at all).
func String(src []byte, path string) (s []byte, ok bool) {
	m, err := selector.Find(src, path)
	if err != nil || m.Kind != token.String {
		return nil, false
	}
	raw := m.Bytes()
	if len(raw) < 2 {
		return nil, false
	}
	return Unescape(raw[1 : len(raw)-1])
}

// Base64 looks up path in src and, if it names a JSON string, decodes
// its contents as standard base64 (alphabet A-Za-z0-9+/, '=' padding).
// Decoding stops at the first non-alphabet byte or the end of input,
// mirroring mjson_base64_dec's tolerant, non-erroring behavior.
func Base64(src []byte, path string) (decoded []byte, ok bool) {
	m, err := selector.Find(src, path)
	if err != nil || m.Kind != token.String {
		return nil, false
	}
	raw := m.Bytes()
	if len(raw) < 2 {
		return nil, false
	}
	return decodeBase64(raw[1 : len(raw)-1]), true
}

// Hex looks up path in src and, if it names a JSON string, decodes
// its contents as hex pairs. An odd-length body or a non-hex byte is
// an error.
func Hex(src []byte, path string) (decoded []byte, ok bool) {
	m, err := selector.Find(src, path)
	if err != nil || m.Kind != token.String {
		return nil, false
	}
	raw := m.Bytes()
	if len(raw) < 2 {
		return nil, false
	}
	body := raw[1 : len(raw)-1]
	if len(body)%2 != 0 {
		return nil, false
	}
	out := make([]byte, len(body)/2)
	if _, err := hex.Decode(out, body); err != nil {
		return nil, false
	}
	return out, true
}

func base64rev(c byte) int {
	switch {
	case c >= 'A' && c <= 'Z':
		return int(c - 'A')
	case c >= 'a' && c <= 'z':
		return int(c-'a') + 26
	case c >= '0' && c <= '9':
		return int(c-'0') + 52
	case c == '+':
		return 62
	case c == '/':
		return 63
	default:
		return 64
	}
}

// decodeBase64 mirrors mjson_base64_dec: it consumes the input four
// bytes at a time and stops as soon as it can't form another complete
// quartet or meets a byte outside the alphabet ('=' padding included),
// rather than treating a malformed tail as an error.
func decodeBase64(src []byte) []byte {
	out := make([]byte, 0, len(src)/4*3)
	for len(src) >= 4 {
		a, b, c, d := base64rev(src[0]), base64rev(src[1]), base64rev(src[2]), base64rev(src[3])
		if a > 63 || b > 63 {
			break
		}
		out = append(out, byte(a<<2|b>>4))
		if c > 63 {
			break
		}
		out = append(out, byte(b<<4|c>>2))
		if d > 63 {
			break
		}
		out = append(out, byte(c<<6|d))
		src = src[4:]
	}
	return out
}
