// Package websocket is a client-only implementation of the WebSocket
// protocol (RFC 6455): it performs the opening handshake over a plain or
// TLS-wrapped TCP connection, then exchanges masked frames with the
// server.
//
// A [Connection] is obtained with [Connect] or a configured [Builder]:
//
//	conn, err := websocket.Connect(ctx, "wss://example.com/socket")
//	if err != nil {
//		return err
//	}
//	if err := conn.SendText("hello"); err != nil {
//		return err
//	}
//	frame, err := conn.Receive()
//
// [Connection.Split] hands out an independent [ReadHalf] and [WriteHalf]
// for callers that want to read and write concurrently on separate
// goroutines; the two communicate protocol-level reactions (an
// auto-answered ping, an echoed close) through an internal event
// channel rather than a shared lock.
//
// This package implements the client side only: every frame it sends is
// masked and every frame it accepts from the peer must be unmasked, per
// RFC 6455 section 5.1. It does not negotiate per-message compression
// extensions, and it does not automatically split large messages into
// multiple frames; manual fragmentation is available through each
// [Frame]'s Continuation and Fin fields.
package websocket
