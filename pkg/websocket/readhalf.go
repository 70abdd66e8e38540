package websocket

import (
	"bufio"
	"log/slog"
)

// ReadHalf is the receiving side of a split [Connection]. It owns the
// buffered reader over the transport and the continuation-context state
// that lets a 0x0 (continuation) opcode be reconstructed as Text or
// Binary. It has no other mutable state, and in particular does not
// touch the masking RNG, which belongs exclusively to [WriteHalf].
type ReadHalf struct {
	r       *bufio.Reader
	events  chan event
	ctx     dataKind
	logger  *slog.Logger
	connID  string
}

func newReadHalf(r *bufio.Reader, events chan event, logger *slog.Logger, connID string) *ReadHalf {
	return &ReadHalf{r: r, events: events, logger: logger, connID: connID}
}

// Receive decodes and returns the next frame, then applies the
// control-frame reactions described in the package's state machine:
// a Ping queues an echoing Pong, a Close queues an echo-and-shutdown.
// The frame is always returned to the caller, regardless of which
// reaction (if any) was queued.
func (h *ReadHalf) Receive() (Frame, error) {
	f, err := h.ReceiveWithoutHandling()
	if err != nil {
		return f, err
	}

	switch f.Kind {
	case FramePing:
		h.logger.Debug("received ping, queuing pong", slog.String("conn", h.connID))
		if err := trySend(h.events, event{kind: eventSendPong, frame: PongFrame(f.Ping)}); err != nil {
			return f, err
		}

	case FrameClose:
		status := uint16(1000)
		if f.HasClosePayload {
			status = f.Close.StatusCode
		}
		h.logger.Debug("received close, queuing echo", slog.String("conn", h.connID), slog.Uint64("status", uint64(status)))
		echo := CloseFrame(status, "")
		if err := trySend(h.events, event{kind: eventSendCloseAndShutdown, frame: echo}); err != nil {
			return f, err
		}
	}

	return f, nil
}

// ReceiveWithoutHandling decodes the next frame without queuing any
// control-frame reaction, updating the continuation context as it goes.
// Text and Binary frames establish the context for any continuation
// frames that follow; Close/Ping/Pong frames leave it untouched, since
// control frames may legally interleave with an in-progress fragmented
// message.
func (h *ReadHalf) ReceiveWithoutHandling() (Frame, error) {
	f, err := decodeFrame(h.r, h.ctx)
	if err != nil {
		return Frame{}, err
	}

	switch f.Kind {
	case FrameText:
		h.ctx = dataKindText
	case FrameBinary:
		h.ctx = dataKindBinary
	}

	h.logger.Debug("decoded frame",
		slog.String("conn", h.connID), slog.String("kind", f.Kind.String()), slog.Bool("fin", f.Fin))

	return f, nil
}
