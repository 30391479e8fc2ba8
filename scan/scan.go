// Package scan implements a single-pass, allocation-free JSON scanner.
// It validates a byte span as exactly one JSON value and reports a
// typed event for every token (and every structural byte) it
// recognizes, without ever copying or retaining the input beyond the
// call to Scan.
//
// The scanner is grounded on the recursive-descent shape of
// jsondecoder.go in the teacher repository, re-targeted from
// bufio.Reader reads to direct slice indexing so that every reported
// span points into the caller's original input (spec requirement:
// "the scanner never copies"). Nesting depth is tracked with a plain
// counter threaded through the recursive calls rather than an
// explicit array-based stack; Go's own call stack plays that role,
// and the depth counter still enforces MaxDepth exactly as the
// original C source's array-based nesting stack did.
package scan

import (
	"errors"
	"fmt"
	"strconv"

	"github.com/cesanta/mjson/token"
)

// ErrInvalidInput is returned for any syntactic violation: an
// unexpected character, an unterminated string or container, or a NUL
// byte inside a string. Bytes after a complete value are not examined.
var ErrInvalidInput = errors.New("mjson: invalid input")

// ErrTooDeep is returned when nesting exceeds the configured maximum
// depth (default 20, see WithMaxDepth).
var ErrTooDeep = errors.New("mjson: nesting too deep")

// EventFunc is called for every recognized token, and for the
// structural bytes '{', '}', '[', ']', ',' and ':'. Returning true tells
// Scan to stop invoking the callback for the remainder of the scan
// (used by selector to short-circuit once it has found its match);
// Scan still finishes validating the outer value and returns its
// length normally.
type EventFunc func(ev token.Event) (stop bool)

const defaultMaxDepth = 20

// Options configure a Scan call.
type Options struct {
	MaxDepth int
}

// Option mutates Options; see WithMaxDepth.
type Option func(*Options)

// WithMaxDepth overrides the default nesting limit of 20.
func WithMaxDepth(n int) Option {
	return func(o *Options) { o.MaxDepth = n }
}

func resolveOptions(opts []Option) Options {
	o := Options{MaxDepth: defaultMaxDepth}
	for _, f := range opts {
		f(&o)
	}
	return o
}

// Scan validates src as exactly one JSON value and reports every token
// via cb (which may be nil to just validate). It returns the number of
// bytes consumed, which is the length of the outer value plus any
// whitespace skipped before it; trailing bytes after the value are not
// consumed and do not affect the result.
func Scan(src []byte, cb EventFunc, opts ...Option) (int, error) {
	o := resolveOptions(opts)
	s := &scanner{src: src, cb: cb, maxDepth: o.MaxDepth}
	i, err := s.skipSpace(0)
	if err != nil {
		return 0, err
	}
	end, err := s.scanValue(i, 0)
	if err != nil {
		return 0, err
	}
	return end, nil
}

type scanner struct {
	src      []byte
	cb       EventFunc
	maxDepth int
	stopped  bool
}

func (s *scanner) emit(kind token.Kind, start, end int) {
	if s.cb == nil || s.stopped {
		return
	}
	if s.cb(token.Event{Kind: kind, Src: s.src, Offset: start, Length: end - start}) {
		s.stopped = true
	}
}

func (s *scanner) skipSpace(i int) (int, error) {
	for i < len(s.src) {
		switch s.src[i] {
		case ' ', '\t', '\n', '\r':
			i++
		default:
			return i, nil
		}
	}
	return i, fmt.Errorf("%w: unexpected end of input", ErrInvalidInput)
}

// scanValue scans one JSON value starting at i (which must not be
// whitespace) and returns the offset just past it.
func (s *scanner) scanValue(i int, depth int) (int, error) {
	if i >= len(s.src) {
		return 0, fmt.Errorf("%w: unexpected end of input", ErrInvalidInput)
	}
	switch c := s.src[i]; {
	case c == '{':
		return s.scanObject(i, depth)
	case c == '[':
		return s.scanArray(i, depth)
	case c == '"':
		end, err := s.scanString(i)
		if err != nil {
			return 0, err
		}
		s.emit(token.String, i, end)
		return end, nil
	case c == 't':
		return s.scanLiteral(i, "true", token.True)
	case c == 'f':
		return s.scanLiteral(i, "false", token.False)
	case c == 'n':
		return s.scanLiteral(i, "null", token.Null)
	case c == '-' || (c >= '0' && c <= '9'):
		return s.scanNumber(i)
	default:
		return 0, fmt.Errorf("%w: unexpected byte %q at offset %d", ErrInvalidInput, c, i)
	}
}

func (s *scanner) scanLiteral(i int, lit string, kind token.Kind) (int, error) {
	end := i + len(lit)
	if end > len(s.src) || string(s.src[i:end]) != lit {
		return 0, fmt.Errorf("%w: expected %q at offset %d", ErrInvalidInput, lit, i)
	}
	s.emit(kind, i, end)
	return end, nil
}

func (s *scanner) scanObject(i int, depth int) (int, error) {
	if depth >= s.maxDepth {
		return 0, ErrTooDeep
	}
	s.emit(token.Kind('{'), i, i+1)
	i++
	i, err := s.skipSpace(i)
	if err != nil {
		return 0, err
	}
	if s.src[i] == '}' {
		s.emit(token.Kind('}'), i, i+1)
		return i + 1, nil
	}
	for {
		if s.src[i] != '"' {
			return 0, fmt.Errorf("%w: expected object key at offset %d", ErrInvalidInput, i)
		}
		keyEnd, err := s.scanString(i)
		if err != nil {
			return 0, err
		}
		s.emit(token.Key, i, keyEnd)
		i, err = s.skipSpace(keyEnd)
		if err != nil {
			return 0, err
		}
		if s.src[i] != ':' {
			return 0, fmt.Errorf("%w: expected ':' at offset %d", ErrInvalidInput, i)
		}
		s.emit(token.Kind(':'), i, i+1)
		i, err = s.skipSpace(i + 1)
		if err != nil {
			return 0, err
		}
		i, err = s.scanValue(i, depth+1)
		if err != nil {
			return 0, err
		}
		i, err = s.skipSpace(i)
		if err != nil {
			return 0, err
		}
		switch s.src[i] {
		case '}':
			s.emit(token.Kind('}'), i, i+1)
			return i + 1, nil
		case ',':
			s.emit(token.Kind(','), i, i+1)
			i, err = s.skipSpace(i + 1)
			if err != nil {
				return 0, err
			}
		default:
			return 0, fmt.Errorf("%w: expected ',' or '}' at offset %d", ErrInvalidInput, i)
		}
	}
}

func (s *scanner) scanArray(i int, depth int) (int, error) {
	if depth >= s.maxDepth {
		return 0, ErrTooDeep
	}
	s.emit(token.Kind('['), i, i+1)
	i++
	i, err := s.skipSpace(i)
	if err != nil {
		return 0, err
	}
	if s.src[i] == ']' {
		s.emit(token.Kind(']'), i, i+1)
		return i + 1, nil
	}
	for {
		i, err = s.scanValue(i, depth+1)
		if err != nil {
			return 0, err
		}
		i, err = s.skipSpace(i)
		if err != nil {
			return 0, err
		}
		switch s.src[i] {
		case ']':
			s.emit(token.Kind(']'), i, i+1)
			return i + 1, nil
		case ',':
			s.emit(token.Kind(','), i, i+1)
			i, err = s.skipSpace(i + 1)
			if err != nil {
				return 0, err
			}
		default:
			return 0, fmt.Errorf("%w: expected ',' or ']' at offset %d", ErrInvalidInput, i)
		}
	}
}

// scanString scans a JSON string literal starting at the opening
// quote and returns the offset just past the closing quote. Allowed
// escapes are \b \f \n \r \t \\ \" \/; a NUL byte inside the string is
// invalid, mirroring the original C source's mjson_pass_string. \uXXXX
// sequences are accepted here (consumed as four hex digits) but are
// not decoded on this fast path — see the extract package for that.
func (s *scanner) scanString(i int) (int, error) {
	start := i
	i++ // skip opening quote
	for {
		if i >= len(s.src) {
			return 0, fmt.Errorf("%w: unterminated string starting at offset %d", ErrInvalidInput, start)
		}
		c := s.src[i]
		switch {
		case c == '"':
			return i + 1, nil
		case c == 0:
			return 0, fmt.Errorf("%w: NUL byte inside string at offset %d", ErrInvalidInput, i)
		case c == '\\':
			if i+1 >= len(s.src) {
				return 0, fmt.Errorf("%w: unterminated escape at offset %d", ErrInvalidInput, i)
			}
			esc := s.src[i+1]
			if esc == 'u' {
				if i+6 > len(s.src) || !isHex4(s.src[i+2:i+6]) {
					return 0, fmt.Errorf("%w: invalid \\u escape at offset %d", ErrInvalidInput, i)
				}
				i += 6
				continue
			}
			if _, ok := token.DecodeEscape(esc); !ok {
				return 0, fmt.Errorf("%w: invalid escape \\%q at offset %d", ErrInvalidInput, esc, i)
			}
			i += 2
		default:
			i++
		}
	}
}

func isHex4(b []byte) bool {
	if len(b) != 4 {
		return false
	}
	for _, c := range b {
		if !isHexDigit(c) {
			return false
		}
	}
	return true
}

func isHexDigit(c byte) bool {
	return c >= '0' && c <= '9' || c >= 'a' && c <= 'f' || c >= 'A' && c <= 'F'
}

// scanNumber scans a JSON number, accepting the same decimal grammar
// as the original C source's strtod-backed parser: an optional sign,
// an integer part, an optional fraction, and an optional exponent.
// Per design note §9.3, the final numeric conversion is left to
// strconv (see extract.Number); scanNumber only needs to find where
// the literal ends.
func (s *scanner) scanNumber(i int) (int, error) {
	start := i
	n := len(s.src)
	if s.src[i] == '-' {
		i++
	}
	if i >= n || s.src[i] < '0' || s.src[i] > '9' {
		return 0, fmt.Errorf("%w: invalid number at offset %d", ErrInvalidInput, start)
	}
	if s.src[i] == '0' {
		i++
	} else {
		for i < n && s.src[i] >= '0' && s.src[i] <= '9' {
			i++
		}
	}
	if i < n && s.src[i] == '.' {
		i++
		digits := 0
		for i < n && s.src[i] >= '0' && s.src[i] <= '9' {
			i++
			digits++
		}
		if digits == 0 {
			return 0, fmt.Errorf("%w: invalid number at offset %d", ErrInvalidInput, start)
		}
	}
	if i < n && (s.src[i] == 'e' || s.src[i] == 'E') {
		i++
		if i < n && (s.src[i] == '+' || s.src[i] == '-') {
			i++
		}
		digits := 0
		for i < n && s.src[i] >= '0' && s.src[i] <= '9' {
			i++
			digits++
		}
		if digits == 0 {
			return 0, fmt.Errorf("%w: invalid number at offset %d", ErrInvalidInput, start)
		}
	}
	// Sanity-check with strconv so scan and extract never disagree on
	// what counts as a valid literal.
	if _, err := strconv.ParseFloat(string(s.src[start:i]), 64); err != nil {
		return 0, fmt.Errorf("%w: invalid number at offset %d", ErrInvalidInput, start)
	}
	s.emit(token.Number, start, i)
	return i, nil
}
