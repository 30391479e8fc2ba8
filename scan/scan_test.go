package scan

import (
	"errors"
	"testing"

	"github.com/cesanta/mjson/token"
)

func TestScanBasicValues(t *testing.T) {
	cases := []struct {
		in   string
		want int
	}{
		{`{"a":[{}]}`, 10},
		{`true`, 4},
		{`false`, 5},
		{`null`, 4},
		{`-0`, 2},
		{`1e300`, 5},
		{`0.0000000001`, 12},
		{`2.2250738585072011e-308`, 23},
		{`""`, 2},
		{`[]`, 2},
		{`{}`, 2},
		{`[1,2,3]`, 7},
	}
	for _, c := range cases {
		got, err := Scan([]byte(c.in), nil)
		if err != nil {
			t.Errorf("Scan(%q) error: %v", c.in, err)
			continue
		}
		if got != c.want {
			t.Errorf("Scan(%q) = %d, want %d", c.in, got, c.want)
		}
	}
}

func TestScanInvalid(t *testing.T) {
	cases := []string{
		`{`,
		`[`,
		`{"a":}`,
		`tru`,
		`"unterminated`,
		"\"a\x00b\"",
		`"bad escape \x"`,
		`[1,]`,
		`{"a":1,}`,
	}
	for _, in := range cases {
		if _, err := Scan([]byte(in), nil); !errors.Is(err, ErrInvalidInput) {
			t.Errorf("Scan(%q) error = %v, want ErrInvalidInput", in, err)
		}
	}
}

func TestScanTooDeep(t *testing.T) {
	// Exactly at the limit succeeds.
	depth := 5
	open := ""
	close := ""
	for i := 0; i < depth; i++ {
		open += "["
		close += "]"
	}
	doc := open + close
	if _, err := Scan([]byte(doc), nil, WithMaxDepth(depth)); err != nil {
		t.Fatalf("Scan at exact depth failed: %v", err)
	}
	// One level deeper fails.
	doc2 := "[" + open + close + "]"
	if _, err := Scan([]byte(doc2), nil, WithMaxDepth(depth)); !errors.Is(err, ErrTooDeep) {
		t.Fatalf("Scan over depth = %v, want ErrTooDeep", err)
	}
}

func TestScanEventsCoverInput(t *testing.T) {
	src := []byte(`{"a":[1,2.5,true,null,"x"]}`)
	var lastEnd int
	n, err := Scan(src, func(ev token.Event) bool {
		if ev.Offset+ev.Length > lastEnd {
			lastEnd = ev.Offset + ev.Length
		}
		return false
	})
	if err != nil {
		t.Fatalf("Scan error: %v", err)
	}
	if n != len(src) {
		t.Fatalf("Scan consumed %d, want %d", n, len(src))
	}
	if lastEnd != n {
		t.Fatalf("last event end %d != consumed %d", lastEnd, n)
	}
}

func TestScanStopEarly(t *testing.T) {
	src := []byte(`[1,2,3,4,5]`)
	var count int
	_, err := Scan(src, func(ev token.Event) bool {
		count++
		return count == 2
	})
	if err != nil {
		t.Fatalf("Scan error: %v", err)
	}
	if count != 2 {
		t.Fatalf("count = %d, want 2 (scan should still finish validating)", count)
	}
}
