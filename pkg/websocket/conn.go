package websocket

import (
	"log/slog"
	"net/http"
)

// Connection is the unsplit façade over a handshaken WebSocket. It owns
// a ReadHalf and a WriteHalf joined by an event channel, plus the
// metadata the handshake produced: the negotiated subprotocol (if any)
// and the full header set the server returned with its 101 response.
//
// Construct one with [Builder.Connect] or [Connect]; never directly.
type Connection struct {
	stream      *transportStream
	read        *ReadHalf
	write       *WriteHalf
	subprotocol string
	headers     http.Header
	logger      *slog.Logger
	id          string
}

// AcceptedSubprotocol returns the subprotocol the server negotiated, or
// "" if none was offered or none was accepted.
func (c *Connection) AcceptedSubprotocol() string {
	return c.subprotocol
}

// HandshakeResponseHeaders returns every header the server's 101
// response carried.
func (c *Connection) HandshakeResponseHeaders() http.Header {
	return c.headers
}

// Receive returns the next frame, honoring any ping/close obligations it
// creates by flushing the write half immediately afterward. A caller
// that only ever calls Receive (never Send directly) still keeps the
// connection's protocol-level promises: pings are answered and an
// in-flight close handshake is advanced.
func (c *Connection) Receive() (Frame, error) {
	f, err := c.read.Receive()
	if flushErr := c.write.Flush(); flushErr != nil && err == nil {
		return f, flushErr
	}
	return f, err
}

// ReceiveWithoutHandling returns the next frame without applying or
// flushing any control-frame reaction. Most callers want [Connection.Receive].
func (c *Connection) ReceiveWithoutHandling() (Frame, error) {
	return c.read.ReceiveWithoutHandling()
}

// Send writes frame to the server, honoring the connection's open/closed
// state machine (see WriteHalf.Send).
func (c *Connection) Send(frame Frame) error {
	return c.write.Send(frame)
}

// SendText is shorthand for Send(TextFrame(s)).
func (c *Connection) SendText(s string) error {
	return c.Send(TextFrame(s))
}

// SendBinary is shorthand for Send(BinaryFrame(b)).
func (c *Connection) SendBinary(b []byte) error {
	return c.Send(BinaryFrame(b))
}

// SendPing is shorthand for Send(PingFrame(payload)).
func (c *Connection) SendPing(payload []byte) error {
	return c.Send(PingFrame(payload))
}

// Close sends a Close frame carrying payload, then awaits one more
// received frame (expected to be the peer's echo) before shutting the
// transport down, and returns that frame. This differs from bare
// WriteHalf.Close, which only sends: the façade's Close additionally
// waits for the peer's side of the closing handshake so that callers get
// a definitive signal the connection has actually finished closing.
func (c *Connection) Close(payload Frame) (Frame, error) {
	if err := c.write.Close(payload); err != nil {
		return Frame{}, err
	}

	f, err := c.Receive()
	if shutdownErr := c.write.Shutdown(); shutdownErr != nil && err == nil {
		return f, shutdownErr
	}
	return f, err
}

// Shutdown half-closes the transport for writes and then closes the
// connection, without performing the Close protocol handshake. It is
// idempotent.
func (c *Connection) Shutdown() error {
	return c.write.Shutdown()
}

// Split moves the read and write halves out of c for independent use,
// e.g. on separate goroutines. The combined façade's handshake metadata
// (subprotocol, headers) is not reachable through the returned halves;
// retain it from c before splitting if needed.
func (c *Connection) Split() (*ReadHalf, *WriteHalf) {
	return c.read, c.write
}

// Join reassembles a Connection from a previously split pair. The
// handshake metadata is reset to unknown, matching Split's note that it
// is not carried by the individual halves.
func Join(read *ReadHalf, write *WriteHalf, logger *slog.Logger) *Connection {
	if logger == nil {
		logger = slog.Default()
	}
	return &Connection{read: read, write: write, logger: logger}
}
