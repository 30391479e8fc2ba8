package jsonutil

import (
	"errors"

	"github.com/cesanta/mjson/scan"
	"github.com/cesanta/mjson/token"
)

// ErrNotContainer is returned when src does not open with '{' or '['.
var ErrNotContainer = errors.New("mjson: not a container")

// Child describes one direct member of an object or array: for an
// array element, Key is the zero Event; for an object member, Key is
// the member's raw quoted-string span (including the quotes).
type Child struct {
	Key   token.Event
	Value token.Event
}

// Iterator steps over the direct children of a single JSON object or
// array, grounded on the teacher repo's StreamIterator.Advance/
// CurrentValue shape (streamiterator.go) — narrowed here to a plain
// slice walk, since this module has no lazy channel-backed stream to
// advance through: one scan.Scan pass over src collects every direct
// child's key/value spans up front.
type Iterator struct {
	children []Child
	pos      int
}

// NewIterator scans the container at the start of src (which must
// begin with '{' or '[') and returns an Iterator over its direct
// children, positioned before the first one.
func NewIterator(src []byte) (*Iterator, error) {
	if len(src) == 0 || (src[0] != '{' && src[0] != '[') {
		return nil, ErrNotContainer
	}
	isObject := src[0] == '{'
	var children []Child
	depth := 0
	var pendingKey token.Event
	haveKey := false
	_, err := scan.Scan(src, func(ev token.Event) bool {
		switch ev.Kind {
		case token.Kind('{'), token.Kind('['):
			if depth == 1 {
				children = append(children, Child{Key: pendingKeyOrZero(isObject, pendingKey, haveKey), Value: ev})
				haveKey = false
			}
			depth++
			return false
		case token.Kind('}'), token.Kind(']'):
			depth--
			return false
		case token.Key:
			if depth == 1 {
				pendingKey = ev
				haveKey = true
			}
			return false
		default:
			if ev.Kind.IsScalar() && depth == 1 {
				children = append(children, Child{Key: pendingKeyOrZero(isObject, pendingKey, haveKey), Value: ev})
				haveKey = false
			}
			return false
		}
	})
	if err != nil {
		return nil, err
	}
	if len(children) > 0 {
		fixContainerSpans(src, children)
	}
	return &Iterator{children: children}, nil
}

func pendingKeyOrZero(isObject bool, key token.Event, have bool) token.Event {
	if isObject && have {
		return key
	}
	return token.Event{}
}

// fixContainerSpans extends the Value span of any child that is a
// nested object/array from just its opening bracket to its full
// bracketed text, via one sub-scan per such child.
func fixContainerSpans(src []byte, children []Child) {
	for i, c := range children {
		if c.Value.Kind != token.Kind('{') && c.Value.Kind != token.Kind('[') {
			continue
		}
		start := c.Value.Offset
		end, err := scan.Scan(src[start:], nil)
		if err != nil {
			continue
		}
		children[i].Value = token.Event{Kind: c.Value.Kind, Src: src, Offset: start, Length: end}
	}
}

// Advance moves to the next child, returning false once exhausted.
func (it *Iterator) Advance() bool {
	if it.pos >= len(it.children) {
		return false
	}
	it.pos++
	return true
}

// Current returns the child the most recent successful Advance moved
// to. It panics if called before the first Advance; once Advance has
// returned false it keeps returning the last child.
func (it *Iterator) Current() Child {
	return it.children[it.pos-1]
}

// Len reports the total number of direct children.
func (it *Iterator) Len() int { return len(it.children) }
