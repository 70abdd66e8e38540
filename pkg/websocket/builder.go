package websocket

import (
	"bufio"
	"context"
	"crypto/tls"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/lithammer/shortuuid/v4"
)

// Builder configures and performs a WebSocket handshake. Obtain one with
// [NewBuilder]; each With* method returns the same *Builder so calls can
// be chained.
type Builder struct {
	headers      http.Header
	subprotocols []string
	tlsConfig    *tls.Config
	dialTimeout  time.Duration
	logger       *slog.Logger
}

// NewBuilder returns a Builder with no extra headers, no subprotocols,
// and the default TLS configuration.
func NewBuilder() *Builder {
	return &Builder{headers: http.Header{}, logger: slog.Default()}
}

// WithHeader adds a single extra handshake header. Extra headers are
// written after the standard handshake headers; values added under one
// name keep their insertion order, but the order between different names
// is not defined.
func (b *Builder) WithHeader(key, value string) *Builder {
	b.headers.Add(key, value)
	return b
}

// WithHeaders adds every header in hs as extra handshake headers.
func (b *Builder) WithHeaders(hs http.Header) *Builder {
	for k, vs := range hs {
		for _, v := range vs {
			b.headers.Add(k, v)
		}
	}
	return b
}

// WithSubprotocols sets the list offered via Sec-WebSocket-Protocol.
func (b *Builder) WithSubprotocols(protocols ...string) *Builder {
	b.subprotocols = protocols
	return b
}

// WithTLSConfig sets the TLS configuration used for "wss://" targets,
// generalizing the identity/root-CA/certificate-verification knobs a
// Rust implementation would expose as separate builder methods into a
// single, idiomatic *tls.Config escape hatch.
func (b *Builder) WithTLSConfig(cfg *tls.Config) *Builder {
	b.tlsConfig = cfg
	return b
}

// WithDialTimeout bounds the TCP dial and the handshake request/response
// exchange. Zero (the default) means no timeout beyond the context
// passed to Connect.
func (b *Builder) WithDialTimeout(d time.Duration) *Builder {
	b.dialTimeout = d
	return b
}

// WithLogger overrides the *slog.Logger used for this connection's
// per-frame debug logging. The default is slog.Default().
func (b *Builder) WithLogger(logger *slog.Logger) *Builder {
	b.logger = logger
	return b
}

// WithJWTBearerAuth signs a short-lived RS256 JWT (issuer clientID,
// issued-at and expiry set relative to validAt) and attaches it as an
// "Authorization: Bearer <token>" extra handshake header, for servers
// that gate the Upgrade behind bearer auth.
func (b *Builder) WithJWTBearerAuth(clientID string, privateKeyPEM []byte, validAt time.Time) error {
	key, err := jwt.ParseRSAPrivateKeyFromPEM(privateKeyPEM)
	if err != nil {
		return fmt.Errorf("%w: failed to parse RSA private key: %w", ErrTLSConfiguration, err)
	}

	claims := jwt.MapClaims{
		"iat": validAt.Unix(),
		"exp": validAt.Add(10 * time.Minute).Unix(),
		"iss": clientID,
	}
	token := jwt.NewWithClaims(jwt.SigningMethodRS256, claims)
	signed, err := token.SignedString(key)
	if err != nil {
		return fmt.Errorf("%w: failed to sign JWT: %w", ErrTLSConfiguration, err)
	}

	b.headers.Set("Authorization", "Bearer "+signed)
	return nil
}

// Connect resolves wsURL, opens the transport (TLS-wrapping it for
// "wss://"), runs the opening handshake, and returns a ready-to-use
// Connection. On any failure after the transport is open, the transport
// is shut down before the error is returned.
func (b *Builder) Connect(ctx context.Context, wsURL string) (*Connection, error) {
	addr, err := parseAddress(wsURL)
	if err != nil {
		return nil, err
	}

	if b.dialTimeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, b.dialTimeout)
		defer cancel()
	}

	stream, err := dialTransport(ctx, addr, b.tlsConfig)
	if err != nil {
		return nil, err
	}

	// The handshake exchange is bounded by the same deadline as the dial;
	// the deadline is cleared once the handshake has succeeded.
	if deadline, ok := ctx.Deadline(); ok {
		_ = stream.conn.SetDeadline(deadline)
	}

	br := bufio.NewReader(stream)
	bw := bufio.NewWriter(stream)

	nonce, err := handshakeRequest(bw, addr, b.subprotocols, b.headers)
	if err != nil {
		_ = stream.shutdown()
		return nil, err
	}

	result, err := handshakeResponse(br, nonce, b.subprotocols)
	if err != nil {
		_ = stream.shutdown()
		return nil, err
	}
	_ = stream.conn.SetDeadline(time.Time{})

	logger := b.logger
	if logger == nil {
		logger = slog.Default()
	}
	connID := shortuuid.New()

	events := newEventChannel()
	conn := &Connection{
		stream:      stream,
		read:        newReadHalf(br, events, logger, connID),
		write:       newWriteHalf(bw, stream, events, logger, connID),
		subprotocol: result.subprotocol,
		headers:     result.headers,
		logger:      logger,
		id:          connID,
	}

	logger.Debug("WebSocket handshake complete", slog.String("conn", connID), slog.String("subprotocol", result.subprotocol))
	return conn, nil
}

// Connect is shorthand for NewBuilder().Connect(ctx, wsURL).
func Connect(ctx context.Context, wsURL string) (*Connection, error) {
	return NewBuilder().Connect(ctx, wsURL)
}
