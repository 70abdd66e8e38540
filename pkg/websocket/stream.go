package websocket

import (
	"context"
	"crypto/tls"
	"errors"
	"fmt"
	"net"
)

// transportStream is a uniform byte-stream abstraction over a plain TCP
// connection or one wrapped in TLS. Both halves of a split Connection
// read and write through the same underlying [net.Conn]; transportStream
// exists so the rest of the package never has to type-switch on whether
// TLS is in play.
type transportStream struct {
	conn net.Conn
}

// dialTransport opens a TCP connection to addr and, for a "wss://"
// address, performs a TLS handshake over it using cfg (a nil cfg uses defaults,
// with ServerName set to host).
func dialTransport(ctx context.Context, addr parsedAddress, cfg *tls.Config) (*transportStream, error) {
	var d net.Dialer
	conn, err := d.DialContext(ctx, "tcp", addr.dial)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrTCPConnection, err)
	}

	if addr.scheme != schemeSecure {
		return &transportStream{conn: conn}, nil
	}

	host, _, splitErr := net.SplitHostPort(addr.dial)
	if splitErr != nil {
		host = addr.dial
	}

	tlsCfg := cfg
	if tlsCfg == nil {
		tlsCfg = &tls.Config{} //nolint:gosec // caller may override via WithTLSConfig
	}
	if tlsCfg.ServerName == "" {
		tlsCfg = tlsCfg.Clone()
		tlsCfg.ServerName = host
	}

	tlsConn := tls.Client(conn, tlsCfg)
	if err := tlsConn.HandshakeContext(ctx); err != nil {
		_ = conn.Close()
		return nil, fmt.Errorf("%w: %w", ErrTLSConnection, err)
	}

	return &transportStream{conn: tlsConn}, nil
}

func (s *transportStream) Read(p []byte) (int, error)  { return s.conn.Read(p) }
func (s *transportStream) Write(p []byte) (int, error) { return s.conn.Write(p) }

// shutdown half-closes the connection for writes when the underlying
// conn supports it (TCP and TLS over TCP both do), then closes it
// outright. It is idempotent: closing an already-closed conn is reported
// as success, matching the façade's "shutdown is final and idempotent"
// contract (see Connection.Shutdown).
func (s *transportStream) shutdown() error {
	type closeWriter interface {
		CloseWrite() error
	}
	if cw, ok := s.conn.(closeWriter); ok {
		_ = cw.CloseWrite()
	}
	if err := s.conn.Close(); err != nil && !errors.Is(err, net.ErrClosed) {
		return fmt.Errorf("%w: %w", ErrShutdown, err)
	}
	return nil
}
