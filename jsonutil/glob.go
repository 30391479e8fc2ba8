// Package jsonutil collects the higher-level JSON utilities built on
// top of scan/selector/format: glob-pattern matching for RPC method
// dispatch, RFC 7396 merge patch, pretty/minify reformatting, and a
// direct-children iterator.
//
// None of these have a third-party counterpart in the example pack
// that fits the streaming, no-tree contract the rest of this module
// follows (see DESIGN.md's stdlib-justification section) — they are
// hand-written here the way the teacher repo hand-writes its own
// tree-walking transforms in transform/jsonpath, just narrowed to the
// simpler grammars this spec calls for.
package jsonutil

// Match reports whether name satisfies pattern, using the small glob
// grammar: '?' matches exactly one byte, '*' matches zero or more
// bytes within a single '/'-delimited segment, '#' matches zero or
// more bytes of anything (including '/'), and any other byte matches
// itself literally.
func Match(pattern, name string) bool {
	return matchFrom(pattern, name)
}

func matchFrom(pattern, name string) bool {
	for len(pattern) > 0 {
		switch pattern[0] {
		case '#':
			// '#' can match any suffix; try every split point.
			rest := pattern[1:]
			if len(rest) == 0 {
				return true
			}
			for i := 0; i <= len(name); i++ {
				if matchFrom(rest, name[i:]) {
					return true
				}
			}
			return false
		case '*':
			rest := pattern[1:]
			for i := 0; i <= len(name); i++ {
				if i > 0 && name[i-1] == '/' {
					break
				}
				if matchFrom(rest, name[i:]) {
					return true
				}
			}
			return false
		case '?':
			if len(name) == 0 {
				return false
			}
			pattern, name = pattern[1:], name[1:]
		default:
			if len(name) == 0 || name[0] != pattern[0] {
				return false
			}
			pattern, name = pattern[1:], name[1:]
		}
	}
	return len(name) == 0
}
