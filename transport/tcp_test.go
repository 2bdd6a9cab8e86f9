package transport

import (
	"io"
	"net"
	"testing"
	"time"
)

// startEcho starts a listener that echoes one connection back to itself.
func startEcho(t *testing.T, network, addr string) net.Addr {
	t.Helper()
	ln, err := net.Listen(network, addr)
	if err != nil {
		t.Fatalf("listen failed: %v", err)
	}
	t.Cleanup(func() { ln.Close() })

	go func() {
		conn, err := ln.Accept()
		if err != nil {
			return
		}
		defer conn.Close()
		io.Copy(conn, conn)
	}()

	return ln.Addr()
}

func TestTCPTransport(t *testing.T) {
	addr := startEcho(t, "tcp", "127.0.0.1:0").(*net.TCPAddr)

	tr := NewTCP()
	tr.SetTimeout(2 * time.Second)

	if tr.Connected() {
		t.Fatal("connected before Connect")
	}
	if _, err := tr.Read(make([]byte, 1)); err != ErrNotConnected {
		t.Fatalf("read before connect: err %v != ErrNotConnected", err)
	}
	if _, err := tr.Write([]byte("x")); err != ErrNotConnected {
		t.Fatalf("write before connect: err %v != ErrNotConnected", err)
	}

	if err := tr.Connect("127.0.0.1", uint16(addr.Port)); err != nil {
		t.Fatalf("connect failed: %v", err)
	}
	if !tr.Connected() {
		t.Fatal("not connected after Connect")
	}

	msg := []byte("ping")
	if n, err := tr.Write(msg); err != nil || n != len(msg) {
		t.Fatalf("write: n=%v err=%v", n, err)
	}

	got := make([]byte, len(msg))
	read := 0
	for read < len(got) {
		n, err := tr.Read(got[read:])
		if err != nil {
			t.Fatalf("read failed: %v", err)
		}
		read += n
	}
	if string(got) != "ping" {
		t.Fatalf("echo %q != %q", got, "ping")
	}

	if err := tr.Close(); err != nil {
		t.Fatalf("close failed: %v", err)
	}
	if tr.Connected() {
		t.Fatal("connected after Close")
	}
	if err := tr.Close(); err != nil {
		t.Fatalf("second close: %v", err)
	}
}

func TestTCPReconnectClosesOldConn(t *testing.T) {
	addr := startEcho(t, "tcp", "127.0.0.1:0").(*net.TCPAddr)
	addr2 := startEcho(t, "tcp", "127.0.0.1:0").(*net.TCPAddr)

	tr := NewTCP()
	tr.SetTimeout(2 * time.Second)
	if err := tr.Connect("127.0.0.1", uint16(addr.Port)); err != nil {
		t.Fatalf("connect failed: %v", err)
	}
	first := tr.conn

	if err := tr.Connect("127.0.0.1", uint16(addr2.Port)); err != nil {
		t.Fatalf("reconnect failed: %v", err)
	}
	defer tr.Close()
	if !tr.Connected() {
		t.Fatal("not connected after reconnect")
	}
	if tr.conn == first {
		t.Fatal("reconnect kept the old conn")
	}
	if _, err := first.Read(make([]byte, 1)); err == nil {
		t.Fatal("old conn left open after reconnect")
	}
}

func TestTCPConnectRefused(t *testing.T) {
	ln, err := net.Listen("tcp", "127.0.0.1:0")
	if err != nil {
		t.Fatalf("listen failed: %v", err)
	}
	port := uint16(ln.Addr().(*net.TCPAddr).Port)
	ln.Close()

	tr := NewTCP()
	tr.SetTimeout(time.Second)
	if err := tr.Connect("127.0.0.1", port); err == nil {
		tr.Close()
		t.Fatal("want connect failure")
	}
	if tr.Connected() {
		t.Fatal("connected after failed Connect")
	}
}

func TestTCPReadTimeout(t *testing.T) {
	// A server that accepts and then stays silent; the read must come
	// back with a timeout error instead of blocking forever.
	ln, err := net.Listen("tcp", "127.0.0.1:0")
	if err != nil {
		t.Fatalf("listen failed: %v", err)
	}
	defer ln.Close()
	go func() {
		conn, err := ln.Accept()
		if err != nil {
			return
		}
		time.Sleep(time.Second)
		conn.Close()
	}()

	tr := NewTCP()
	tr.SetTimeout(50 * time.Millisecond)
	if err := tr.Connect("127.0.0.1", uint16(ln.Addr().(*net.TCPAddr).Port)); err != nil {
		t.Fatalf("connect failed: %v", err)
	}
	defer tr.Close()

	start := time.Now()
	if _, err := tr.Read(make([]byte, 1)); err == nil {
		t.Fatal("want timeout error")
	}
	if elapsed := time.Since(start); elapsed > 500*time.Millisecond {
		t.Fatalf("read blocked for %v", elapsed)
	}
}
