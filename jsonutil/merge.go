package jsonutil

import (
	"github.com/cesanta/mjson/scan"
	"github.com/cesanta/mjson/token"
	"github.com/cesanta/mjson/writer"
)

// Merge applies overlay to base as an RFC 7396 JSON Merge Patch and
// streams the result through sink. If overlay is not a JSON object,
// it replaces base outright. Object keys present in both are merged
// recursively; a null value in overlay deletes the corresponding key
// from base; a key present only in overlay is appended.
func Merge(base, overlay []byte, sink writer.Sink) (int, error) {
	if rootKind(overlay) != token.Kind('{') {
		return sink.Write(overlay)
	}
	ov, err := decodeObject(overlay)
	if err != nil {
		return 0, err
	}
	var bs objectNode
	if rootKind(base) == token.Kind('{') {
		bs, err = decodeObject(base)
		if err != nil {
			return 0, err
		}
	}
	return writeMergedObject(sink, bs, ov)
}

// objectNode is a minimal parsed representation of one JSON object's
// direct children: just enough structure for merge patch's one level
// of recursion at a time. Nested objects are re-decoded lazily by
// mergeValue only when both sides actually need merging.
type objectNode struct {
	keys []string
	vals [][]byte
}

// rootKind classifies src's outermost value by its leading byte,
// which is all Merge needs to decide whether to recurse or replace.
func rootKind(src []byte) token.Kind {
	for _, c := range src {
		switch c {
		case ' ', '\t', '\n', '\r':
			continue
		case '{':
			return token.Kind('{')
		case '[':
			return token.Kind('[')
		default:
			return token.Invalid
		}
	}
	return token.Invalid
}

// decodeObject walks the top-level object in src and records, for
// each direct member, its key and the raw span of its value (scalar
// or full container text). A stack of offsets tracks where each open
// container at depth 1 began, so a container value's span can be
// computed once its matching close event arrives.
func decodeObject(src []byte) (objectNode, error) {
	var n objectNode
	depth := 0
	var curKey string
	haveKey := false
	var openAt []int // offsets of '{'/'[' currently open, indexed by depth-1

	emit := func(raw []byte) {
		n.keys = append(n.keys, curKey)
		n.vals = append(n.vals, raw)
		haveKey = false
	}

	_, err := scan.Scan(src, func(ev token.Event) bool {
		switch ev.Kind {
		case token.Kind('{'), token.Kind('['):
			if depth == 1 && haveKey {
				openAt = append(openAt, ev.Offset)
			}
			depth++
		case token.Kind('}'), token.Kind(']'):
			depth--
			if depth == 1 && haveKey {
				start := openAt[len(openAt)-1]
				openAt = openAt[:len(openAt)-1]
				emit(src[start : ev.Offset+1])
			}
		case token.Key:
			if depth == 1 {
				raw := ev.Bytes()
				if len(raw) >= 2 {
					curKey = string(raw[1 : len(raw)-1])
					haveKey = true
				}
			}
		case token.Kind(','):
			// no-op; member boundaries are driven by key/value events.
		default:
			if ev.Kind.IsScalar() && depth == 1 && haveKey {
				emit(append([]byte(nil), ev.Bytes()...))
			}
		}
		return false
	})
	return n, err
}

func writeMergedObject(sink writer.Sink, base, overlay objectNode) (int, error) {
	total := 0
	write := func(p []byte) error {
		n, err := sink.Write(p)
		total += n
		return err
	}
	if err := write([]byte{'{'}); err != nil {
		return total, err
	}
	written := 0
	used := make(map[string]bool, len(overlay.keys))
	for i, k := range base.keys {
		ov, has := lookup(overlay, k)
		if has {
			used[k] = true
			if isNullLiteral(ov) {
				continue
			}
		}
		val := base.vals[i]
		if has {
			merged, err := mergeValue(val, ov)
			if err != nil {
				return total, err
			}
			val = merged
		}
		if written > 0 {
			if err := write([]byte{','}); err != nil {
				return total, err
			}
		}
		if err := writeMember(write, k, val); err != nil {
			return total, err
		}
		written++
	}
	for i, k := range overlay.keys {
		if used[k] || isNullLiteral(overlay.vals[i]) {
			continue
		}
		if written > 0 {
			if err := write([]byte{','}); err != nil {
				return total, err
			}
		}
		if err := writeMember(write, k, overlay.vals[i]); err != nil {
			return total, err
		}
		written++
	}
	return total, write([]byte{'}'})
}

// mergeValue merges a single member's value pair: if overlay isn't an
// object it replaces base outright (RFC 7396 rule); otherwise both
// sides are decoded one level deeper and merged recursively.
func mergeValue(base, overlay []byte) ([]byte, error) {
	if rootKind(overlay) != token.Kind('{') {
		return overlay, nil
	}
	ovNode, err := decodeObject(overlay)
	if err != nil {
		return nil, err
	}
	var baseNode objectNode
	if rootKind(base) == token.Kind('{') {
		baseNode, err = decodeObject(base)
		if err != nil {
			return nil, err
		}
	}
	var g writer.Growing
	if _, err := writeMergedObject(&g, baseNode, ovNode); err != nil {
		return nil, err
	}
	return g.Bytes(), nil
}

func lookup(n objectNode, key string) ([]byte, bool) {
	for i, k := range n.keys {
		if k == key {
			return n.vals[i], true
		}
	}
	return nil, false
}

func isNullLiteral(v []byte) bool {
	return string(v) == "null"
}

func writeMember(write func([]byte) error, key string, val []byte) error {
	if err := write([]byte{'"'}); err != nil {
		return err
	}
	if err := write([]byte(key)); err != nil {
		return err
	}
	if err := write([]byte{'"', ':'}); err != nil {
		return err
	}
	return write(val)
}
