package jsonutil

import (
	"testing"

	"github.com/cesanta/mjson/writer"
)

func TestMatch(t *testing.T) {
	cases := []struct {
		pattern, name string
		want          bool
	}{
		{"rpc.list", "rpc.list", true},
		{"rpc.list", "rpc.other", false},
		{"rpc.?ist", "rpc.list", true},
		{"rpc.*", "rpc.list", true},
		{"rpc.*", "rpc.a/b", false},
		{"#", "anything/at/all", true},
		{"rpc.#", "rpc.a.b.c", true},
	}
	for _, c := range cases {
		if got := Match(c.pattern, c.name); got != c.want {
			t.Errorf("Match(%q,%q) = %v, want %v", c.pattern, c.name, got, c.want)
		}
	}
}

func TestMergeDeletesAndAdds(t *testing.T) {
	base := []byte(`{"a":1,"b":{"c":2,"d":3}}`)
	overlay := []byte(`{"b":{"c":null,"e":4},"f":5}`)
	var g writer.Growing
	if _, err := Merge(base, overlay, &g); err != nil {
		t.Fatalf("Merge error: %v", err)
	}
	got := g.String()
	want := `{"a":1,"b":{"d":3,"e":4},"f":5}`
	if got != want {
		t.Fatalf("Merge = %q, want %q", got, want)
	}
}

func TestMergeNonObjectOverlayReplaces(t *testing.T) {
	var g writer.Growing
	if _, err := Merge([]byte(`{"a":1}`), []byte(`[1,2,3]`), &g); err != nil {
		t.Fatalf("Merge error: %v", err)
	}
	if g.String() != `[1,2,3]` {
		t.Fatalf("Merge = %q", g.String())
	}
}

func TestPretty(t *testing.T) {
	var g writer.Growing
	if _, err := Pretty([]byte(`{"a":1,"b":[1,2]}`), "  ", &g); err != nil {
		t.Fatalf("Pretty error: %v", err)
	}
	want := "{\n  \"a\": 1,\n  \"b\": [\n    1,\n    2\n  ]\n}"
	if g.String() != want {
		t.Fatalf("Pretty =\n%q\nwant\n%q", g.String(), want)
	}
}

func TestPrettyEmptyContainers(t *testing.T) {
	var g writer.Growing
	if _, err := Pretty([]byte(`{"a":{},"b":[]}`), "  ", &g); err != nil {
		t.Fatalf("Pretty error: %v", err)
	}
	want := "{\n  \"a\": {},\n  \"b\": []\n}"
	if g.String() != want {
		t.Fatalf("Pretty =\n%q\nwant\n%q", g.String(), want)
	}
}

func TestMinify(t *testing.T) {
	var g writer.Growing
	if _, err := Minify([]byte("{\n  \"a\"  :  1,\n  \"b\": 2\n}"), &g); err != nil {
		t.Fatalf("Minify error: %v", err)
	}
	if g.String() != `{"a": 1, "b": 2}` {
		t.Fatalf("Minify = %q", g.String())
	}
}

func TestIteratorObject(t *testing.T) {
	src := []byte(`{"a":1,"b":[1,2,3],"c":"x"}`)
	it, err := NewIterator(src)
	if err != nil {
		t.Fatalf("NewIterator error: %v", err)
	}
	var keys []string
	for it.Advance() {
		c := it.Current()
		keys = append(keys, string(c.Key.Bytes()))
	}
	if len(keys) != 3 || keys[0] != `"a"` || keys[1] != `"b"` || keys[2] != `"c"` {
		t.Fatalf("keys = %v", keys)
	}
}

func TestIteratorArrayChildSpans(t *testing.T) {
	src := []byte(`[1,{"x":2},3]`)
	it, err := NewIterator(src)
	if err != nil {
		t.Fatalf("NewIterator error: %v", err)
	}
	var spans []string
	for it.Advance() {
		spans = append(spans, string(it.Current().Value.Bytes()))
	}
	want := []string{"1", `{"x":2}`, "3"}
	for i, w := range want {
		if spans[i] != w {
			t.Fatalf("span[%d] = %q, want %q", i, spans[i], w)
		}
	}
}
