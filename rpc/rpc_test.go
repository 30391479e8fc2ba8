package rpc

import (
	"testing"

	"github.com/cesanta/mjson/writer"
)

func feed(t *testing.T, ctx *Context, frame string, sink writer.Sink) {
	t.Helper()
	for i := 0; i < len(frame); i++ {
		if err := ctx.PushByte(frame[i], sink); err != nil {
			t.Fatalf("PushByte error: %v", err)
		}
	}
}

func TestScenarioRequestReply(t *testing.T) {
	ctx := NewContext()
	ctx.Export("foo", func(r *Request) {
		r.ReturnSuccess(`{"x":%s,"ud":%Q}`, "1.23", "hi")
	})
	var g writer.Growing
	feed(t, ctx, "{\"id\":2,\"method\":\"foo\",\"params\":[0,1.23]}\n", &g)
	want := `{"id":2,"result":{"x":1.23,"ud":"hi"}}` + "\n"
	if g.String() != want {
		t.Fatalf("got %q, want %q", g.String(), want)
	}
}

func TestScenarioNotification(t *testing.T) {
	ctx := NewContext()
	called := false
	ctx.Export("ping", func(r *Request) { called = true })
	var g writer.Growing
	feed(t, ctx, "{\"method\":\"ping\"}\n", &g)
	if g.String() != "" {
		t.Fatalf("got %q, want no output", g.String())
	}
	if !called {
		t.Fatal("handler was not invoked")
	}
}

func TestScenarioResponseRouting(t *testing.T) {
	var captured []byte
	ctx := NewContext(WithResponseHandler(func(frame []byte) {
		captured = append([]byte(nil), frame...)
	}))
	var g writer.Growing
	feed(t, ctx, "{\"id\":123,\"result\":777}\n", &g)
	if g.String() != "" {
		t.Fatalf("got %q, want no reply bytes", g.String())
	}
	if string(captured) != `{"id":123,"result":777}` {
		t.Fatalf("captured = %q", captured)
	}
}

func TestScenarioErrorOnlyResponse(t *testing.T) {
	var captured []byte
	ctx := NewContext(WithResponseHandler(func(frame []byte) {
		captured = append([]byte(nil), frame...)
	}))
	var g writer.Growing
	feed(t, ctx, "{\"id\":9,\"error\":{\"code\":-1,\"message\":\"boom\"}}\n", &g)
	if g.String() != "" {
		t.Fatalf("got %q, want no reply bytes", g.String())
	}
	if captured == nil {
		t.Fatal("response handler should fire for an error-only frame")
	}
}

func TestScenarioMethodNotFound(t *testing.T) {
	ctx := NewContext()
	var g writer.Growing
	feed(t, ctx, "{\"id\":1,\"method\":\"nope\"}\n", &g)
	want := `{"id":1,"error":{"code":-32601,"message":"method not found"}}` + "\n"
	if g.String() != want {
		t.Fatalf("got %q, want %q", g.String(), want)
	}
}

func TestScenarioMalformedFrame(t *testing.T) {
	ctx := NewContext()
	var g writer.Growing
	feed(t, ctx, "boo\n", &g)
	want := `{"error":{"code":-32700,"message":"boo"}}` + "\n"
	if g.String() != want {
		t.Fatalf("got %q, want %q", g.String(), want)
	}
}

func TestRPCList(t *testing.T) {
	ctx := NewContext()
	ctx.Export("foo", func(r *Request) {})
	ctx.Export("bar", func(r *Request) {})
	var g writer.Growing
	feed(t, ctx, "{\"id\":1,\"method\":\"rpc.list\"}\n", &g)
	want := `{"id":1,"result":["bar","foo","rpc.list"]}` + "\n"
	if g.String() != want {
		t.Fatalf("got %q, want %q", g.String(), want)
	}
}

func TestCustomListMethodName(t *testing.T) {
	ctx := NewContext(WithListMethodName("RPC.List"))
	var g writer.Growing
	feed(t, ctx, "{\"id\":1,\"method\":\"RPC.List\"}\n", &g)
	want := `{"id":1,"result":["RPC.List"]}` + "\n"
	if g.String() != want {
		t.Fatalf("got %q, want %q", g.String(), want)
	}
}

func TestGlobMethodDispatch(t *testing.T) {
	ctx := NewContext()
	matched := ""
	ctx.Export("user.*", func(r *Request) { matched = "user.*" })
	var g writer.Growing
	feed(t, ctx, "{\"method\":\"user.create\"}\n", &g)
	if matched != "user.*" {
		t.Fatalf("matched = %q, want user.*", matched)
	}
}

func TestBufferOverflowDropsPartial(t *testing.T) {
	ctx := NewContext(WithBufferSize(8))
	var g writer.Growing
	// Overflows before a newline arrives; the partial frame is dropped,
	// so this must not produce a reply nor panic — in particular the
	// leftover fragment must not spuriously satisfy the newline
	// dispatch condition and trigger a parse-error reply.
	feed(t, ctx, "{\"method\":\"this-is-way-too-long-to-fit\"}\n", &g)
	if g.String() != "" {
		t.Fatalf("got %q, want no reply bytes", g.String())
	}
}
