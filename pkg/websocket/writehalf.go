package websocket

import (
	"bufio"
	"log/slog"
)

// WriteHalf is the sending side of a split [Connection]. It owns the
// buffered writer over the transport, the event channel fed by the
// paired ReadHalf, and the two booleans that track how far through the
// close handshake this connection has gotten.
//
// The masking key generator lives inside encodeFrame (crypto/rand is
// safe for concurrent use), so WriteHalf does not need to serialize
// access to an RNG the way the original single-threaded design does;
// what it does still own exclusively is the decision of *when* a frame
// may be sent, via sentClosed/shutdown below.
type WriteHalf struct {
	w          *bufio.Writer
	stream     *transportStream
	events     chan event
	sentClosed bool
	shutdownFl bool
	logger     *slog.Logger
	connID     string
}

func newWriteHalf(w *bufio.Writer, stream *transportStream, events chan event, logger *slog.Logger, connID string) *WriteHalf {
	return &WriteHalf{w: w, stream: stream, events: events, logger: logger, connID: connID}
}

// Flush drains every event currently queued by the ReadHalf, without
// blocking if the channel is empty. A SendPong event is always honored.
// A SendCloseAndShutdown event depends on sentClosed: if it is already
// true (the local side initiated close and this is the peer's echo), the
// transport is shut down and nothing more is sent; otherwise (the peer
// initiated close) the echo is sent and sentClosed is set, but the
// transport stays open so the caller can still Receive.
func (h *WriteHalf) Flush() error {
	for {
		ev, ok := tryReceive(h.events)
		if !ok {
			return nil
		}

		switch ev.kind {
		case eventSendPong:
			if err := h.sendRaw(ev.frame); err != nil {
				return err
			}

		case eventSendCloseAndShutdown:
			if !h.sentClosed {
				// Remote-initiated close: echo it but leave the transport
				// open so the caller can still drain a final Receive.
				if err := h.sendRaw(ev.frame); err != nil {
					return err
				}
				h.sentClosed = true
				continue
			}
			// Local-initiated close: the peer's echo arrived, finish the
			// handshake by shutting the transport down.
			if err := h.Shutdown(); err != nil {
				return err
			}
		}
	}
}

// Send flushes pending events, then encodes and writes frame if the
// connection is still open. Sending a Close frame marks sentClosed.
func (h *WriteHalf) Send(frame Frame) error {
	if err := h.Flush(); err != nil {
		return err
	}
	if h.shutdownFl || h.sentClosed {
		return ErrWebSocketClosed
	}
	return h.sendRaw(frame)
}

// sendRaw writes frame without consulting the open/closed state machine;
// it is used both by Send (after the state check) and internally for
// event-driven reactions (pong echoes, close echoes) that must go out
// regardless of sentClosed.
func (h *WriteHalf) sendRaw(frame Frame) error {
	if err := encodeFrame(h.w, frame); err != nil {
		return err
	}
	if frame.Kind == FrameClose {
		h.sentClosed = true
	}
	h.logger.Debug("sent frame", slog.String("conn", h.connID), slog.String("kind", frame.Kind.String()))
	return nil
}

// Shutdown half-closes the transport for writes, then closes the
// connection, so nothing more can be received on it either; it also marks
// sentClosed. It does not itself send a Close frame; callers that want a
// clean protocol close must Send a Close frame first.
func (h *WriteHalf) Shutdown() error {
	h.sentClosed = true
	if h.shutdownFl {
		return nil
	}
	h.shutdownFl = true
	return h.stream.shutdown()
}

// Close sends a Close frame carrying payload. It does not itself invoke
// Shutdown: per the package's state machine, the transport is only torn
// down once the peer's echo has been observed (see Connection.Close and
// WriteHalf.Flush's handling of SendCloseAndShutdown).
func (h *WriteHalf) Close(payload Frame) error {
	return h.Send(payload)
}
