package jsonutil

import "github.com/cesanta/mjson/writer"

// Minify reformats src through sink with no added whitespace beyond
// the single space Pretty always inserts after ':' and ','. It is
// Pretty called with an empty indent unit.
func Minify(src []byte, sink writer.Sink) (int, error) {
	return Pretty(src, "", sink)
}
