// Command wsprobe drives this module's client against the Autobahn
// Testsuite fuzzing server, exercising every registered test case and
// letting the server render the conformance report.
package main

import (
	"context"
	"flag"
	"fmt"
	"log/slog"
	"os"

	"github.com/arvalis/wsclient/pkg/websocket"
)

const agent = "wsclient"

var baseURL = flag.String("server", "ws://127.0.0.1:9001", "Autobahn fuzzing server address")

func main() {
	flag.Parse()

	logger := slog.New(slog.NewTextHandler(os.Stderr, nil))

	n, err := getCaseCount(logger)
	if err != nil {
		logger.Error("failed to read case count", "error", err)
		os.Exit(1)
	}

	for i := 1; i <= n; i++ {
		if err := runCase(logger, i); err != nil {
			logger.Warn("case failed", "case", i, "error", err)
		}
	}

	if err := updateReports(logger); err != nil {
		logger.Error("failed to update reports", "error", err)
		os.Exit(1)
	}
}

func getCaseCount(logger *slog.Logger) (int, error) {
	logger.Debug("fetching case count")
	conn, err := websocket.Connect(context.Background(), *baseURL+"/getCaseCount")
	if err != nil {
		return 0, fmt.Errorf("connect: %w", err)
	}
	defer conn.Shutdown()

	frame, err := conn.Receive()
	if err != nil {
		return 0, fmt.Errorf("receive case count: %w", err)
	}

	var n int
	if _, err := fmt.Sscanf(frame.Text, "%d", &n); err != nil {
		return 0, fmt.Errorf("parse case count %q: %w", frame.Text, err)
	}
	return n, nil
}

func updateReports(logger *slog.Logger) error {
	url := fmt.Sprintf("%s/updateReports?agent=%s", *baseURL, agent)
	logger.Debug("requesting report update")
	conn, err := websocket.Connect(context.Background(), url)
	if err != nil {
		return fmt.Errorf("connect: %w", err)
	}
	return conn.Shutdown()
}

// runCase runs a single Autobahn test case as an echo client: every text
// or binary frame received is sent back to the peer unchanged, until the
// peer closes the connection.
func runCase(logger *slog.Logger, i int) error {
	url := fmt.Sprintf("%s/runCase?case=%d&agent=%s", *baseURL, i, agent)
	logger.Debug("running case", "case", i)
	conn, err := websocket.Connect(context.Background(), url)
	if err != nil {
		return fmt.Errorf("connect: %w", err)
	}

	for {
		frame, err := conn.Receive()
		if err != nil {
			return fmt.Errorf("receive: %w", err)
		}

		switch frame.Kind {
		case websocket.FrameText:
			if err := conn.Send(frame); err != nil {
				return fmt.Errorf("send text: %w", err)
			}
		case websocket.FrameBinary:
			if err := conn.Send(frame); err != nil {
				return fmt.Errorf("send binary: %w", err)
			}
		case websocket.FrameClose:
			return nil
		}
	}
}
