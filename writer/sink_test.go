package writer

import (
	"bytes"
	"errors"
	"testing"
)

func TestFixedWithinCapacity(t *testing.T) {
	f := NewFixed(make([]byte, 8))
	n, err := f.Write([]byte("hello"))
	if err != nil || n != 5 {
		t.Fatalf("Write = %d, %v", n, err)
	}
	if string(f.Bytes()) != "hello" {
		t.Fatalf("Bytes = %q", f.Bytes())
	}
}

func TestFixedOverflow(t *testing.T) {
	f := NewFixed(make([]byte, 3))
	n, err := f.Write([]byte("hello"))
	if !errors.Is(err, ErrOverflow) {
		t.Fatalf("err = %v, want ErrOverflow", err)
	}
	if n != 3 || string(f.Bytes()) != "hel" || !f.Overflow {
		t.Fatalf("n=%d bytes=%q overflow=%v", n, f.Bytes(), f.Overflow)
	}
}

func TestGrowing(t *testing.T) {
	var g Growing
	g.Write([]byte("foo"))
	g.Write([]byte("bar"))
	if g.String() != "foobar" {
		t.Fatalf("String = %q", g.String())
	}
}

func TestFile(t *testing.T) {
	var buf bytes.Buffer
	f := NewFile(&buf)
	f.Write([]byte("x"))
	if buf.String() != "x" {
		t.Fatalf("buf = %q", buf.String())
	}
}

func TestNull(t *testing.T) {
	var n Null
	n.Write([]byte("abcde"))
	n.Write([]byte("fg"))
	if n.Len() != 7 {
		t.Fatalf("Len = %d, want 7", n.Len())
	}
}
