package httpc

import (
	"bufio"
	"fmt"
	"net"
	"net/http"
	"testing"
	"time"

	"github.com/julienschmidt/httprouter"
	"github.com/valyala/fasthttp"

	"github.com/embedio/httpc/transport"
)

func newTCPClient(t *testing.T) *Client {
	t.Helper()
	c := NewClient(transport.NewTCP())
	c.SetTimeout(2 * time.Second)
	t.Cleanup(c.Close)
	return c
}

func TestClientAgainstFasthttpServer(t *testing.T) {
	ln, err := net.Listen("tcp", "127.0.0.1:0")
	if err != nil {
		t.Fatalf("listen failed: %v", err)
	}
	defer ln.Close()
	port := uint16(ln.Addr().(*net.TCPAddr).Port)

	go fasthttp.Serve(ln, func(ctx *fasthttp.RequestCtx) {
		switch string(ctx.Path()) {
		case "/fixed":
			ctx.SetContentType("text/plain")
			ctx.SetBodyString("0123456789")
		case "/stream":
			// Flushing between writes forces chunked framing.
			ctx.SetBodyStreamWriter(func(w *bufio.Writer) {
				w.WriteString("Wiki")
				w.Flush()
				w.WriteString("pedia")
				w.Flush()
			})
		default:
			ctx.SetStatusCode(fasthttp.StatusNotFound)
		}
	})

	t.Run("fixed length", func(t *testing.T) {
		c := newTCPClient(t)
		info, err := c.Get("127.0.0.1", port, "/fixed", nil, nil)
		if err != nil {
			t.Fatalf("request failed: %v", err)
		}
		if info.StatusCode != 200 {
			t.Fatalf("status %v != 200", info.StatusCode)
		}
		if info.Encoding != EncodingNone || info.Remaining != 10 {
			t.Fatalf("framing: encoding=%v remaining=%v", info.Encoding, info.Remaining)
		}
		body, err := c.ReadBodyString(64)
		if err != nil || body != "0123456789" {
			t.Fatalf("body %q err %v", body, err)
		}
	})

	t.Run("chunked stream", func(t *testing.T) {
		c := newTCPClient(t)
		info, err := c.Get("127.0.0.1", port, "/stream", nil, nil)
		if err != nil {
			t.Fatalf("request failed: %v", err)
		}
		if info.Encoding != EncodingChunked {
			t.Fatalf("encoding %v != chunked", info.Encoding)
		}
		body, err := c.ReadBodyString(64)
		if err != nil || body != "Wikipedia" {
			t.Fatalf("body %q err %v", body, err)
		}
	})

	t.Run("not found", func(t *testing.T) {
		c := newTCPClient(t)
		info, err := c.Get("127.0.0.1", port, "/nope", nil, nil)
		if err != nil {
			t.Fatalf("request failed: %v", err)
		}
		if info.StatusCode != 404 {
			t.Fatalf("status %v != 404", info.StatusCode)
		}
	})
}

func TestClientAgainstRoutedServer(t *testing.T) {
	router := httprouter.New()
	router.GET("/api/things/:id", func(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
		w.Header().Set("Content-Type", "application/json")
		fmt.Fprintf(w, `{"id":%q,"ok":true}`, ps.ByName("id"))
	})

	ln, err := net.Listen("tcp", "127.0.0.1:0")
	if err != nil {
		t.Fatalf("listen failed: %v", err)
	}
	defer ln.Close()
	port := uint16(ln.Addr().(*net.TCPAddr).Port)
	go http.Serve(ln, router)

	c := newTCPClient(t)
	info, err := c.Get("127.0.0.1", port, "/api/things/42", nil, nil)
	if err != nil {
		t.Fatalf("request failed: %v", err)
	}
	if info.StatusCode != 200 {
		t.Fatalf("status %v != 200", info.StatusCode)
	}

	var got struct {
		ID string `json:"id"`
		OK bool   `json:"ok"`
	}
	if err := c.DecodeJSON(&got); err != nil {
		t.Fatalf("DecodeJSON failed: %v", err)
	}
	if got.ID != "42" || !got.OK {
		t.Fatalf("decoded %+v", got)
	}
}
