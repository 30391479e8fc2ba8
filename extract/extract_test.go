package extract

import (
	"bytes"
	"testing"
)

func TestNumber(t *testing.T) {
	src := []byte(`{"a":1.5,"b":"x"}`)
	if v := Number(src, "$.a", -1); v != 1.5 {
		t.Fatalf("Number(a) = %v, want 1.5", v)
	}
	if v := Number(src, "$.b", -1); v != -1 {
		t.Fatalf("Number(b) = %v, want default -1", v)
	}
	if v := Number(src, "$.missing", 42); v != 42 {
		t.Fatalf("Number(missing) = %v, want default 42", v)
	}
}

func TestBool(t *testing.T) {
	src := []byte(`{"a":true,"b":false,"c":1}`)
	if !Bool(src, "$.a", false) {
		t.Fatal("Bool(a) = false, want true")
	}
	if Bool(src, "$.b", true) {
		t.Fatal("Bool(b) = true, want false")
	}
	if !Bool(src, "$.c", true) {
		t.Fatal("Bool(c) should fall back to default true")
	}
}

func TestString(t *testing.T) {
	src := []byte(`{"a":"hello\nworld","b":"é","c":"😀"}`)
	s, ok := String(src, "$.a")
	if !ok || string(s) != "hello\nworld" {
		t.Fatalf("String(a) = %q, %v", s, ok)
	}
	s, ok = String(src, "$.b")
	if !ok || string(s) != "é" {
		t.Fatalf("String(b) = %q, %v, want é", s, ok)
	}
	s, ok = String(src, "$.c")
	if !ok || string(s) != "😀" {
		t.Fatalf("String(c) = %q, %v, want emoji", s, ok)
	}
}

func TestStringBadEscape(t *testing.T) {
	src := []byte(`{"a":"bad \x escape"}`)
	if _, ok := String(src, "$.a"); ok {
		t.Fatal("String should reject unrecognized escape")
	}
}

func TestBase64(t *testing.T) {
	src := []byte(`{"a":"aGVsbG8="}`)
	got, ok := Base64(src, "$.a")
	if !ok || string(got) != "hello" {
		t.Fatalf("Base64(a) = %q, %v, want hello", got, ok)
	}
}

func TestHex(t *testing.T) {
	src := []byte(`{"a":"68656c6c6f"}`)
	got, ok := Hex(src, "$.a")
	if !ok || !bytes.Equal(got, []byte("hello")) {
		t.Fatalf("Hex(a) = %q, %v, want hello", got, ok)
	}
	src2 := []byte(`{"a":"abc"}`)
	if _, ok := Hex(src2, "$.a"); ok {
		t.Fatal("Hex should reject odd-length body")
	}
}
