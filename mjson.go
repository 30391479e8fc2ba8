// Package mjson implements routines for parsing, querying, formatting
// and patching JSON without ever building a tree in memory.
//
//   - validating and tokenizing a JSON byte span: [Scan]
//   - locating a value by a dotted/bracketed path: [Find]
//   - pulling a typed value out by path: [GetNumber], [GetBool],
//     [GetString], [GetBase64], [GetHex]
//   - writing JSON through a printf-style format string: [Fprintf]
//   - RFC 7396 JSON Merge Patch: [Merge]
//   - reformatting: [Pretty], [Minify]
//   - JSON-RPC 2.0 framing over newline-delimited JSON: see the rpc
//     subpackage
//
// Each of these operates directly on a caller-supplied []byte and
// streams its output through a [Sink] (writer.Sink) rather than
// returning or consuming a parsed document, so none of them allocate
// beyond what their output actually requires.
//
// This package has no facility for marshaling or unmarshaling structs
// as encoding/json does; extracting several fields out of one
// document means calling Find/GetNumber/etc. once per field.
package mjson

import (
	"github.com/cesanta/mjson/extract"
	"github.com/cesanta/mjson/format"
	"github.com/cesanta/mjson/jsonutil"
	"github.com/cesanta/mjson/scan"
	"github.com/cesanta/mjson/selector"
	"github.com/cesanta/mjson/token"
	"github.com/cesanta/mjson/writer"
)

// Re-exported error sentinels, so callers checking with errors.Is
// never need to import the subpackages directly.
var (
	ErrInvalidInput = scan.ErrInvalidInput
	ErrTooDeep      = scan.ErrTooDeep
	ErrBadPath      = selector.ErrBadPath
	ErrArgument     = format.ErrArgument
	ErrVerb         = format.ErrVerb
	ErrNotContainer = jsonutil.ErrNotContainer
)

// Kind identifies the kind of a JSON token.
type Kind = token.Kind

// Kind values, re-exported for callers that inspect a Match's Kind.
const (
	String = token.String
	Number = token.Number
	True   = token.True
	False  = token.False
	Null   = token.Null
	Array  = token.Array
	Object = token.Object
)

// Event is a single token reported by Scan.
type Event = token.Event

// Match is the location of a value found by Find.
type Match = selector.Match

// Sink is anything Fprintf can write bytes to.
type Sink = writer.Sink

// Scan validates src as exactly one JSON value and reports every
// token via cb, which may be nil to just validate. It returns the
// number of bytes consumed.
func Scan(src []byte, cb scan.EventFunc, opts ...scan.Option) (int, error) {
	return scan.Scan(src, cb, opts...)
}

// Find evaluates a dotted/bracketed path (e.g. "$.a.b[2]") against src
// and returns the first match in document order.
func Find(src []byte, path string) (Match, error) {
	return selector.Find(src, path)
}

// GetNumber returns the number at path, or def if path does not
// resolve to a number.
func GetNumber(src []byte, path string, def float64) float64 {
	return extract.Number(src, path, def)
}

// GetBool returns the boolean at path, or def if path does not
// resolve to a boolean.
func GetBool(src []byte, path string, def bool) bool {
	return extract.Bool(src, path, def)
}

// GetString returns the unescaped contents of the string at path.
func GetString(src []byte, path string) ([]byte, bool) {
	return extract.String(src, path)
}

// GetBase64 returns the decoded bytes of the base64 string at path.
func GetBase64(src []byte, path string) ([]byte, bool) {
	return extract.Base64(src, path)
}

// GetHex returns the decoded bytes of the hex string at path.
func GetHex(src []byte, path string) ([]byte, bool) {
	return extract.Hex(src, path)
}

// Fprintf writes fmtStr to sink, substituting each %-verb with its
// corresponding argument from args. See the format package for the
// full verb table.
func Fprintf(sink Sink, fmtStr string, args ...any) (int, error) {
	return format.Fprintf(sink, fmtStr, args...)
}

// Merge applies an RFC 7396 JSON Merge Patch (overlay) to base and
// streams the result through sink.
func Merge(base, overlay []byte, sink Sink) (int, error) {
	return jsonutil.Merge(base, overlay, sink)
}

// Pretty reformats src with the given indent string and streams it
// through sink.
func Pretty(src []byte, indent string, sink Sink) (int, error) {
	return jsonutil.Pretty(src, indent, sink)
}

// Minify reformats src with no newlines or indentation, keeping a
// single space after every ':' and ',', and streams it through sink.
func Minify(src []byte, sink Sink) (int, error) {
	return jsonutil.Minify(src, sink)
}
