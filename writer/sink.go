// Package writer provides the small family of output sinks the format
// package writes through. It plays the role the teacher repo's Printer
// interface plays for indentation-aware printing, narrowed to the flat
// byte-sink contract the original C source's struct mjson_out exposes
// through its print function pointer: a fixed buffer that reports
// overflow instead of growing, a buffer that grows to fit, an open
// file, and a sink that discards everything (useful for measuring
// output length without allocating it).
//
// Grounded on mjson_print_fixed_buf / mjson_print_dynamic_buf /
// mjson_print_file in _examples/original_source/mjson.c, and on the
// Printer/DefaultPrinter shape in the teacher repo's printer.go (here
// narrowed to Write, since format.Fprintf does its own indentation-free
// byte pushing).
package writer

import (
	"errors"
	"io"
)

// Sink is anything format.Fprintf can write bytes to.
type Sink interface {
	Write(p []byte) (n int, err error)
}

// ErrOverflow is returned by Fixed once its capacity is exhausted. The
// sink still reports how many bytes it managed to accept via n.
var ErrOverflow = errors.New("mjson: fixed buffer overflow")

// Fixed is a Sink backed by a caller-supplied, non-growing buffer. It
// mirrors mjson_print_fixed_buf: writes past capacity are truncated
// and recorded as an overflow, but never panic or allocate.
type Fixed struct {
	buf      []byte
	len      int
	Overflow bool
}

// NewFixed wraps buf (not copied) as a Fixed sink of capacity len(buf).
func NewFixed(buf []byte) *Fixed {
	return &Fixed{buf: buf}
}

func (f *Fixed) Write(p []byte) (int, error) {
	left := len(f.buf) - f.len
	n := len(p)
	if left < n {
		n = left
		f.Overflow = true
	}
	copy(f.buf[f.len:f.len+n], p[:n])
	f.len += n
	if f.Overflow {
		return n, ErrOverflow
	}
	return n, nil
}

// Bytes returns the portion of the buffer written so far.
func (f *Fixed) Bytes() []byte { return f.buf[:f.len] }

// Len reports the number of bytes written so far.
func (f *Fixed) Len() int { return f.len }

// Growing is a Sink backed by a buffer that grows as needed, mirroring
// mjson_print_dynamic_buf's realloc-on-demand behavior. The zero value
// is ready to use.
type Growing struct {
	buf []byte
}

func (g *Growing) Write(p []byte) (int, error) {
	g.buf = append(g.buf, p...)
	return len(p), nil
}

// Bytes returns the accumulated output.
func (g *Growing) Bytes() []byte { return g.buf }

// String returns the accumulated output as a string.
func (g *Growing) String() string { return string(g.buf) }

// File wraps any io.Writer (typically an *os.File) as a Sink, mirroring
// mjson_print_file's direct fwrite call.
type File struct {
	W io.Writer
}

// NewFile wraps w as a Sink.
func NewFile(w io.Writer) *File { return &File{W: w} }

func (f *File) Write(p []byte) (int, error) { return f.W.Write(p) }

// Null discards everything written to it while still counting the
// bytes, so callers can measure a formatted length without retaining
// or emitting the output.
type Null struct {
	n int
}

func (n *Null) Write(p []byte) (int, error) {
	n.n += len(p)
	return len(p), nil
}

// Len reports the total number of bytes written so far.
func (n *Null) Len() int { return n.n }
