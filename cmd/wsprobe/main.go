// Command wsprobe dials a single WebSocket endpoint, optionally sends
// one message, prints every frame it receives, and exits cleanly when
// the peer closes the connection.
package main

import (
	"context"
	"crypto/tls"
	"fmt"
	"log/slog"
	"os"
	"runtime/debug"
	"strings"
	"time"

	"github.com/rs/zerolog"
	altsrc "github.com/urfave/cli-altsrc/v3"
	"github.com/urfave/cli/v3"
	"github.com/tzrikka/xdg"

	"github.com/arvalis/wsclient/internal/logger"
	"github.com/arvalis/wsclient/internal/obslog"
	"github.com/arvalis/wsclient/pkg/websocket"
)

const (
	ConfigDirName  = "wsprobe"
	ConfigFileName = "config.toml"
)

func main() {
	bi, _ := debug.ReadBuildInfo()

	cmd := &cli.Command{
		Name:      "wsprobe",
		Usage:     "connect to a WebSocket server, send an optional message, and print every frame received",
		Version:   bi.Main.Version,
		Flags:     flags(),
		Arguments: []cli.Argument{&cli.StringArg{Name: "url"}},
		Action:    run,
	}

	if err := cmd.Run(context.Background(), os.Args); err != nil {
		fmt.Printf("Error: %v\n", err)
		os.Exit(1)
	}
}

func flags() []cli.Flag {
	fs := []cli.Flag{
		&cli.StringFlag{
			Name:  "log-format",
			Usage: "log output format: console or json",
			Value: "json",
		},
	}
	return append(fs, Flags(configFile())...)
}

// configFile returns the path to wsprobe's configuration file. It also
// creates an empty file if it doesn't already exist.
func configFile() altsrc.StringSourcer {
	path, err := xdg.CreateFile(xdg.ConfigHome, ConfigDirName, ConfigFileName)
	if err != nil {
		logger.FatalError("failed to create config file", err)
	}
	return altsrc.StringSourcer(path)
}

func run(ctx context.Context, cmd *cli.Command) error {
	log := initLog(cmd.String("log-format"))

	url := cmd.StringArg("url")
	if url == "" {
		return fmt.Errorf("missing required argument: url")
	}

	b := websocket.NewBuilder().
		WithLogger(log).
		WithDialTimeout(cmd.Duration("dial-timeout")).
		WithSubprotocols(cmd.StringSlice("subprotocol")...)

	for _, h := range cmd.StringSlice("header") {
		name, value, ok := strings.Cut(h, ":")
		if !ok {
			return fmt.Errorf("malformed --header %q, want \"Name: value\"", h)
		}
		b.WithHeader(strings.TrimSpace(name), strings.TrimSpace(value))
	}

	if cmd.Bool("insecure-skip-verify") {
		b.WithTLSConfig(&tls.Config{InsecureSkipVerify: true}) //nolint:gosec
	}

	if clientID := cmd.String("jwt-client-id"); clientID != "" {
		key, err := os.ReadFile(cmd.String("jwt-private-key"))
		if err != nil {
			return fmt.Errorf("reading JWT private key: %w", err)
		}
		if err := b.WithJWTBearerAuth(clientID, key, time.Now()); err != nil {
			return fmt.Errorf("signing JWT bearer token: %w", err)
		}
	}

	conn, err := b.Connect(ctx, url)
	if err != nil {
		return fmt.Errorf("connect: %w", err)
	}

	log.Info("connected",
		slog.String("url", url),
		slog.String("subprotocol", conn.AcceptedSubprotocol()))

	if text := cmd.String("send-text"); text != "" {
		if err := conn.SendText(text); err != nil {
			return fmt.Errorf("send text: %w", err)
		}
	}

	if path := cmd.String("send-binary-file"); path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return fmt.Errorf("reading %s: %w", path, err)
		}
		if err := conn.SendBinary(data); err != nil {
			return fmt.Errorf("send binary: %w", err)
		}
	}

	for {
		frame, err := conn.Receive()
		if err != nil {
			return fmt.Errorf("receive: %w", err)
		}

		switch frame.Kind {
		case websocket.FrameText:
			fmt.Println(frame.Text)
		case websocket.FrameBinary:
			fmt.Printf("%x\n", frame.Binary)
		case websocket.FrameClose:
			log.Info("peer closed the connection")
			return nil
		}
	}
}

// initLog initializes the logger wsprobe and the core library both log
// through, based on the requested output format.
func initLog(format string) *slog.Logger {
	var zl zerolog.Logger
	if format == "console" {
		zl = zerolog.New(zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.RFC3339}).With().Timestamp().Logger()
	} else {
		zl = zerolog.New(os.Stderr).With().Timestamp().Logger()
	}

	log := obslog.New(zl)
	slog.SetDefault(log)
	return log
}
