// Package selector implements the dotted/bracketed path lookup over a
// JSON document, driving the scan package and returning the first
// matching token's kind and location without building a tree.
//
// Grounded on the original C source's mjson_find/mjson_get_cb state
// machine (_examples/original_source/mjson.c): two depth counters
// (current vs target) and two index counters (seen vs target) are
// enough to track "are we inside the container the path currently
// points at", without an explicit stack of open containers — exactly
// as the C source manages it with four plain ints.
//
// Known limitation, mirrored deliberately from the source (design
// note in SPEC_FULL.md §9.4): a JSON object key is compared against
// the path's (already unescaped) identifier using the key's *raw*
// bytes between the quotes — the key's own backslash escapes are not
// interpreted first. A key whose JSON string form contains an escaped
// `"` can therefore not be addressed by its decoded text: the path
// component foo"bar does not match the key "foo\"bar"; only the raw
// escaped form foo\"bar does.
package selector

import (
	"bytes"
	"errors"

	"github.com/cesanta/mjson/scan"
	"github.com/cesanta/mjson/token"
)

// ErrBadPath is returned when path does not start with '$'.
var ErrBadPath = errors.New("mjson: path must start with '$'")

// Match is the location of a value found by Find: the token kind, the
// original source slice, and the offset/length of the match inside
// it. For Array and Object matches the span covers the full
// bracketed/braced text, inclusive.
type Match struct {
	Kind   token.Kind
	Src    []byte
	Offset int
	Length int
}

// Bytes returns the sub-slice of Src covered by the match.
func (m Match) Bytes() []byte {
	if m.Src == nil {
		return nil
	}
	return m.Src[m.Offset : m.Offset+m.Length]
}

// Found reports whether m represents an actual match.
func (m Match) Found() bool {
	return m.Kind != token.Invalid
}

// Find evaluates path against src and returns the first match in
// document order. A path that does not resolve to any value returns
// a zero Match (Kind == token.Invalid) with a nil error. A non-nil
// error is returned only when path does not start with '$'
// (ErrBadPath) or src is not valid JSON; any other unparsable path
// step simply yields no match.
func Find(src []byte, path string) (Match, error) {
	if len(path) == 0 || path[0] != '$' {
		return Match{}, ErrBadPath
	}
	st := &state{path: path, pos: 1, d2: 0}
	_, err := scan.Scan(src, st.onEvent)
	if err != nil {
		return Match{}, err
	}
	if !st.found {
		return Match{}, nil
	}
	return Match{Kind: st.resultKind, Src: src, Offset: st.resultOffset, Length: st.resultLength}, nil
}

type state struct {
	path string
	pos  int
	d1   int // current scan depth
	d2   int // depth the path has matched up to
	i1   int // index seen so far in the active array
	i2   int // index the path is looking for

	objOffset int
	objSet    bool

	found        bool
	resultKind   token.Kind
	resultOffset int
	resultLength int
}

func (st *state) pathDone() bool { return st.pos >= len(st.path) }

func (st *state) onEvent(ev token.Event) bool {
	if st.found {
		return true
	}
	switch ev.Kind {
	case token.Kind('{'):
		st.openContainer(ev)
	case token.Kind('['):
		st.openArray(ev)
	case token.Kind(','):
		st.comma()
	case token.Key:
		st.key(ev)
	case token.Kind('}'), token.Kind(']'):
		st.closeContainer(ev)
	default:
		if ev.Kind.IsScalar() {
			st.scalar(ev)
		}
	}
	return st.found
}

func (st *state) openContainer(ev token.Event) {
	if st.pathDone() && st.d1 == st.d2 {
		st.objOffset = ev.Offset
		st.objSet = true
	}
	st.d1++
}

func (st *state) openArray(ev token.Event) {
	if st.d1 == st.d2 && !st.pathDone() && st.path[st.pos] == '[' {
		st.i1 = 0
		if idx, ok := parseIndex(st.path, st.pos); ok {
			st.i2 = idx
			if st.i1 == st.i2 {
				st.pos = closeBracketPos(st.path, st.pos) + 1
				st.d2++
			}
		}
	}
	if st.pathDone() && st.d1 == st.d2 {
		st.objOffset = ev.Offset
		st.objSet = true
	}
	st.d1++
}

func (st *state) comma() {
	if st.d1 == st.d2+1 {
		st.i1++
		if st.i1 == st.i2 {
			st.pos = closeBracketPos(st.path, st.pos) + 1
			st.d2++
		}
	}
}

func (st *state) key(ev token.Event) {
	if st.d1 != st.d2+1 || st.pathDone() || st.path[st.pos] != '.' {
		return
	}
	raw := ev.Bytes()
	if len(raw) < 2 || raw[0] != '"' || raw[len(raw)-1] != '"' {
		return
	}
	content := raw[1 : len(raw)-1]
	ident, consumed := parseIdent(st.path, st.pos+1)
	if bytes.Equal(content, ident) {
		st.d2++
		st.pos = st.pos + 1 + consumed
	}
}

func (st *state) closeContainer(ev token.Event) {
	st.d1--
	if st.pathDone() && st.d1 == st.d2 && st.objSet {
		kind := token.Object
		if ev.Kind == token.Kind(']') {
			kind = token.Array
		}
		st.resultKind = kind
		st.resultOffset = st.objOffset
		st.resultLength = ev.Offset + 1 - st.objOffset
		st.found = true
	}
}

func (st *state) scalar(ev token.Event) {
	if st.d1 == st.d2 && st.pathDone() {
		st.resultKind = ev.Kind
		st.resultOffset = ev.Offset
		st.resultLength = ev.Length
		st.found = true
	}
}

// parseIndex parses the decimal index inside a "[N]" step starting at
// pos (which points at the '['), returning the index value.
func parseIndex(path string, pos int) (int, bool) {
	i := pos + 1
	start := i
	for i < len(path) && path[i] >= '0' && path[i] <= '9' {
		i++
	}
	if i == start {
		return 0, false
	}
	n := 0
	for _, c := range path[start:i] {
		n = n*10 + int(c-'0')
	}
	return n, true
}

// closeBracketPos returns the index of the ']' terminating the "[N]"
// step starting at pos (which points at the '['). If the path is
// malformed and no ']' is found, it returns len(path).
//
// Unlike the original C source, which advances the path cursor by a
// hardcoded 3 bytes (valid only for single-digit indices), this scans
// for the actual closing bracket so indices of any width work — the
// source's own comma-handling branch already does this scan, it is
// just applied here uniformly to the immediate-match branch too.
func closeBracketPos(path string, pos int) int {
	i := pos
	for i < len(path) && path[i] != ']' {
		i++
	}
	return i
}

// parseIdent reads a path identifier starting at pos (just after the
// leading '.'), honoring the grammar's escapes (\. \[ \] \\), and
// returns its unescaped literal bytes plus the number of path bytes
// consumed (which may be longer than len(literal) when escapes are
// present).
func parseIdent(path string, pos int) (literal []byte, consumed int) {
	i := pos
	for i < len(path) {
		c := path[i]
		if c == '.' || c == '[' {
			break
		}
		if c == '\\' && i+1 < len(path) {
			switch path[i+1] {
			case '.', '[', ']', '\\':
				literal = append(literal, path[i+1])
				i += 2
				continue
			}
		}
		literal = append(literal, c)
		i++
	}
	return literal, i - pos
}
