package jsonutil

import (
	"github.com/cesanta/mjson/scan"
	"github.com/cesanta/mjson/token"
	"github.com/cesanta/mjson/writer"
)

// Pretty reformats src through sink using indent as the indentation
// unit for each nesting level. An empty indent produces minified
// output: no added whitespace at all except the single space this
// function inserts after every ':' and ',' to keep compact output
// readable, matching the spec's "compact mode still gets one space"
// rule.
//
// Grounded on the teacher repo's Printer.Indent/Dedent/NewLine
// bookkeeping (printer.go), adapted from an indentation-level counter
// driving an io.Writer to one driving a writer.Sink directly off scan
// events instead of a token pipeline.
func Pretty(src []byte, indent string, sink writer.Sink) (int, error) {
	p := &prettyPrinter{indent: indent, sink: sink}
	_, err := scan.Scan(src, p.onEvent)
	if err != nil {
		return p.total, err
	}
	return p.total, p.err
}

type prettyPrinter struct {
	indent string
	sink   writer.Sink
	level  int
	// empty[i] is true while the container opened at level i has not
	// yet received a child event, so its matching close can skip the
	// dedent newline and render as "{}"/"[]" on one line.
	empty []bool
	total int
	err   error
}

func (p *prettyPrinter) write(b []byte) {
	if p.err != nil {
		return
	}
	n, err := p.sink.Write(b)
	p.total += n
	if err != nil {
		p.err = err
	}
}

func (p *prettyPrinter) newlineAt(level int) {
	if p.indent == "" {
		return
	}
	p.write([]byte{'\n'})
	for i := 0; i < level; i++ {
		p.write([]byte(p.indent))
	}
}

// markChild records that the container currently open (if any) is
// about to receive its first or next child, emitting the appropriate
// separator/newline before the caller writes the child itself.
func (p *prettyPrinter) markChild() {
	if len(p.empty) == 0 {
		return
	}
	top := len(p.empty) - 1
	if p.empty[top] {
		p.empty[top] = false
		p.newlineAt(p.level)
	}
}

func (p *prettyPrinter) onEvent(ev token.Event) bool {
	switch ev.Kind {
	case token.Kind('{'), token.Kind('['):
		p.markChild()
		p.write(ev.Bytes())
		p.level++
		p.empty = append(p.empty, true)
	case token.Kind('}'), token.Kind(']'):
		wasEmpty := true
		if len(p.empty) > 0 {
			wasEmpty = p.empty[len(p.empty)-1]
			p.empty = p.empty[:len(p.empty)-1]
		}
		if p.level > 0 {
			p.level--
		}
		if !wasEmpty {
			p.newlineAt(p.level)
		}
		p.write(ev.Bytes())
	case token.Kind(','):
		p.write([]byte{','})
		if p.indent == "" {
			p.write([]byte{' '})
		}
		// the newline before the next sibling is emitted by markChild
		// when that sibling's own event arrives, via the empty flag
		// staying false — so re-arm it here instead.
		if len(p.empty) > 0 {
			p.empty[len(p.empty)-1] = true
		}
	case token.Kind(':'):
		p.write([]byte{':', ' '})
	case token.Key:
		p.markChild()
		p.write(ev.Bytes())
	default:
		if ev.Kind.IsScalar() {
			p.markChild()
			p.write(ev.Bytes())
		}
	}
	return p.err != nil
}
