package cli

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/url"
	"strings"
	"time"

	"github.com/gorilla/websocket"
	"github.com/spf13/cobra"
)

func newCallCmd() *cobra.Command {
	var data string

	callCmd := &cobra.Command{
		Use:   "call <action>",
		Short: "Connect over websocket and send one action",
		Long: `call authenticates a websocket session with --token, sends a single
action message, prints the acknowledgment and the response, and disconnects.

Action-specific fields are passed as a JSON object via --data, e.g.:

  gatectl call redeemInvite --data '{"code":"ABC123"}'`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if cfg.Token == "" {
				return errors.New("--token is required for websocket calls")
			}

			request := map[string]any{}
			if data != "" {
				if err := json.Unmarshal([]byte(data), &request); err != nil {
					return fmt.Errorf("invalid --data: %w", err)
				}
			}
			request["action"] = args[0]

			wsURL, err := websocketURL(cfg.ServerURL, cfg.Token)
			if err != nil {
				return err
			}

			dialer := websocket.Dialer{HandshakeTimeout: 10 * time.Second}
			conn, _, err := dialer.Dial(wsURL, nil)
			if err != nil {
				return fmt.Errorf("connect: %w", err)
			}
			defer func() { _ = conn.Close() }()

			// The gateway sends an ack before accepting any action
			var ack map[string]any
			if err := conn.ReadJSON(&ack); err != nil {
				return fmt.Errorf("read ack: %w", err)
			}
			if err := printJSON(ack); err != nil {
				return err
			}

			if err := conn.WriteJSON(request); err != nil {
				return fmt.Errorf("send action: %w", err)
			}

			var response map[string]any
			if err := conn.ReadJSON(&response); err != nil {
				return fmt.Errorf("read response: %w", err)
			}
			return printJSON(response)
		},
	}

	callCmd.Flags().StringVar(&data, "data", "", "Action fields as a JSON object")
	return callCmd
}

// websocketURL converts the configured base URL into the /ws endpoint with
// the token attached as a query parameter
func websocketURL(base, token string) (string, error) {
	parsed, err := url.Parse(base)
	if err != nil {
		return "", fmt.Errorf("invalid server URL: %w", err)
	}

	switch parsed.Scheme {
	case "http", "ws":
		parsed.Scheme = "ws"
	case "https", "wss":
		parsed.Scheme = "wss"
	default:
		return "", fmt.Errorf("unsupported scheme %q", parsed.Scheme)
	}

	parsed.Path = strings.TrimSuffix(parsed.Path, "/") + "/ws"
	query := parsed.Query()
	query.Set("token", token)
	parsed.RawQuery = query.Encode()

	return parsed.String(), nil
}
