package main

import (
	"time"

	altsrc "github.com/urfave/cli-altsrc/v3"
	"github.com/urfave/cli-altsrc/v3/toml"
	"github.com/urfave/cli/v3"
)

const (
	// DefaultDialTimeout bounds how long the opening handshake may take
	// before wsprobe gives up on the connection.
	DefaultDialTimeout = 10 * time.Second
)

// Flags defines CLI flags to configure a single WebSocket session. These
// flags can also be set using environment variables and the
// application's configuration file.
func Flags(configFilePath altsrc.StringSourcer) []cli.Flag {
	return []cli.Flag{
		&cli.StringSliceFlag{
			Name:  "header",
			Usage: "extra HTTP header to send with the handshake, as \"Name: value\" (repeatable)",
			Sources: cli.NewValueSourceChain(
				cli.EnvVar("WSPROBE_HEADERS"),
				toml.TOML("wsprobe.headers", configFilePath),
			),
		},
		&cli.StringSliceFlag{
			Name:  "subprotocol",
			Usage: "Sec-WebSocket-Protocol value to offer (repeatable, in preference order)",
			Sources: cli.NewValueSourceChain(
				cli.EnvVar("WSPROBE_SUBPROTOCOLS"),
				toml.TOML("wsprobe.subprotocols", configFilePath),
			),
		},
		&cli.DurationFlag{
			Name:  "dial-timeout",
			Usage: "timeout for the TCP connect and opening handshake",
			Value: DefaultDialTimeout,
			Sources: cli.NewValueSourceChain(
				cli.EnvVar("WSPROBE_DIAL_TIMEOUT"),
				toml.TOML("wsprobe.dial_timeout", configFilePath),
			),
		},
		&cli.BoolFlag{
			Name:  "insecure-skip-verify",
			Usage: "skip TLS certificate verification for wss:// targets (testing only)",
			Sources: cli.NewValueSourceChain(
				cli.EnvVar("WSPROBE_INSECURE_SKIP_VERIFY"),
				toml.TOML("wsprobe.insecure_skip_verify", configFilePath),
			),
		},
		&cli.StringFlag{
			Name:  "send-text",
			Usage: "a text message to send once the connection is open, before reading any replies",
			Sources: cli.NewValueSourceChain(
				cli.EnvVar("WSPROBE_SEND_TEXT"),
			),
		},
		&cli.StringFlag{
			Name:      "send-binary-file",
			Usage:     "a file whose contents are sent as a single binary message once the connection is open",
			TakesFile: true,
			Sources: cli.NewValueSourceChain(
				cli.EnvVar("WSPROBE_SEND_BINARY_FILE"),
			),
		},
		&cli.StringFlag{
			Name:  "jwt-client-id",
			Usage: "client ID (JWT issuer) for RS256 bearer-token authentication during the handshake",
			Sources: cli.NewValueSourceChain(
				cli.EnvVar("WSPROBE_JWT_CLIENT_ID"),
				toml.TOML("wsprobe.jwt.client_id", configFilePath),
			),
		},
		&cli.StringFlag{
			Name:      "jwt-private-key",
			Usage:     "PEM-encoded RSA private key file used to sign the JWT bearer token",
			TakesFile: true,
			Sources: cli.NewValueSourceChain(
				cli.EnvVar("WSPROBE_JWT_PRIVATE_KEY"),
				toml.TOML("wsprobe.jwt.private_key", configFilePath),
			),
		},
	}
}
