package websocket

import (
	"bufio"
	"bytes"
	"net/http"
	"testing"
)

func TestAcceptKey_CanonicalExample(t *testing.T) {
	got := acceptKey("dGhlIHNhbXBsZSBub25jZQ==")
	want := "s3pPLMBiTxaQ9kYGzzhZRbK+xOo="
	if got != want {
		t.Fatalf("acceptKey() = %q, want %q", got, want)
	}
}

func TestHandshakeRequest_WireFormat(t *testing.T) {
	var buf bytes.Buffer
	w := bufio.NewWriter(&buf)
	addr := parsedAddress{host: "example.com", path: "/chat"}
	headers := http.Header{}
	headers.Set("X-Extra", "yes")

	nonce, err := handshakeRequest(w, addr, []string{"chat.v1", "chat.v2"}, headers)
	if err != nil {
		t.Fatalf("handshakeRequest() error = %v", err)
	}

	req := buf.String()
	wantLines := []string{
		"GET /chat HTTP/1.1\r\n",
		"Host: example.com\r\n",
		"Upgrade: websocket\r\n",
		"Connection: Upgrade\r\n",
		"Sec-WebSocket-Key: " + nonce + "\r\n",
		"Sec-WebSocket-Version: 13\r\n",
		"Sec-WebSocket-Protocol: chat.v1, chat.v2\r\n",
		"X-Extra: yes\r\n",
	}
	for _, line := range wantLines {
		if !bytes.Contains([]byte(req), []byte(line)) {
			t.Fatalf("handshake request missing line %q in:\n%s", line, req)
		}
	}
	if req[len(req)-4:] != "\r\n\r\n" {
		t.Fatalf("handshake request not terminated with blank line: %q", req[len(req)-4:])
	}
}

func mustResponse(t *testing.T, raw string) *bufio.Reader {
	t.Helper()
	return bufio.NewReader(bytes.NewReader([]byte(raw)))
}

func TestHandshakeResponse_Success(t *testing.T) {
	nonce := "dGhlIHNhbXBsZSBub25jZQ=="
	accept := acceptKey(nonce)
	raw := "HTTP/1.1 101 Switching Protocols\r\n" +
		"Upgrade: websocket\r\n" +
		"Connection: Upgrade\r\n" +
		"Sec-WebSocket-Accept: " + accept + "\r\n" +
		"Sec-WebSocket-Protocol: chat.v2\r\n" +
		"\r\n"

	result, err := handshakeResponse(mustResponse(t, raw), nonce, []string{"chat.v1", "chat.v2"})
	if err != nil {
		t.Fatalf("handshakeResponse() error = %v", err)
	}
	if result.subprotocol != "chat.v2" {
		t.Fatalf("subprotocol = %q, want chat.v2", result.subprotocol)
	}
}

func TestHandshakeResponse_ExtensionsRejected(t *testing.T) {
	nonce := "dGhlIHNhbXBsZSBub25jZQ=="
	accept := acceptKey(nonce)
	raw := "HTTP/1.1 101 Switching Protocols\r\n" +
		"Upgrade: websocket\r\n" +
		"Connection: Upgrade\r\n" +
		"Sec-WebSocket-Accept: " + accept + "\r\n" +
		"Sec-WebSocket-Extensions: permessage-deflate\r\n" +
		"\r\n"

	_, err := handshakeResponse(mustResponse(t, raw), nonce, nil)
	if err == nil {
		t.Fatal("expected InvalidHandshake for negotiated extensions, got nil")
	}
}

func TestHandshakeResponse_UnofferedSubprotocolRejected(t *testing.T) {
	nonce := "dGhlIHNhbXBsZSBub25jZQ=="
	accept := acceptKey(nonce)
	raw := "HTTP/1.1 101 Switching Protocols\r\n" +
		"Upgrade: websocket\r\n" +
		"Connection: Upgrade\r\n" +
		"Sec-WebSocket-Accept: " + accept + "\r\n" +
		"Sec-WebSocket-Protocol: mystery\r\n" +
		"\r\n"

	_, err := handshakeResponse(mustResponse(t, raw), nonce, []string{"chat.v1"})
	if err == nil {
		t.Fatal("expected InvalidHandshake for unoffered subprotocol, got nil")
	}
}

func TestHandshakeResponse_BadAcceptKeyRejected(t *testing.T) {
	raw := "HTTP/1.1 101 Switching Protocols\r\n" +
		"Upgrade: websocket\r\n" +
		"Connection: Upgrade\r\n" +
		"Sec-WebSocket-Accept: bm90dGhlcmlnaHR2YWx1ZQ==\r\n" +
		"\r\n"

	_, err := handshakeResponse(mustResponse(t, raw), "dGhlIHNhbXBsZSBub25jZQ==", nil)
	if err == nil {
		t.Fatal("expected InvalidHandshake for wrong accept key, got nil")
	}
}

func TestHandshakeResponse_NonSwitchingProtocolsStatus(t *testing.T) {
	raw := "HTTP/1.1 400 Bad Request\r\n" +
		"Content-Length: 13\r\n" +
		"\r\n" +
		"bad handshake"

	_, err := handshakeResponse(mustResponse(t, raw), "nonce", nil)
	hfe, ok := err.(*HandshakeFailedError)
	if !ok {
		t.Fatalf("handshakeResponse() error = %v (%T), want *HandshakeFailedError", err, err)
	}
	if hfe.StatusCode != 400 {
		t.Fatalf("StatusCode = %d, want 400", hfe.StatusCode)
	}
	if string(hfe.Body) != "bad handshake" {
		t.Fatalf("Body = %q, want %q", hfe.Body, "bad handshake")
	}
}
