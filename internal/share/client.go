package share

import (
	"context"
	"crypto/tls"
	"fmt"
	"net/http"
	"net/url"
	"time"

	"github.com/gorilla/websocket"
	"github.com/muurk/wifipass/internal/acquire"
	"github.com/muurk/wifipass/internal/logging"
	"go.uber.org/zap"
)

// Client fetches outcomes from a share server. Each call dials a fresh
// connection.
type Client struct {
	URL    string // ws://host:port/ws or wss://
	Token  string
	Dialer *websocket.Dialer

	// Insecure skips certificate verification for wss:// endpoints with a
	// self-signed certificate
	Insecure bool
}

// NewClient creates a client for a server address or full ws:// URL
func NewClient(target, token string) (*Client, error) {
	u, err := endpointURL(target)
	if err != nil {
		return nil, err
	}
	return &Client{URL: u, Token: token, Dialer: websocket.DefaultDialer}, nil
}

// endpointURL accepts host:port, ws://host:port or ws://host:port/path
func endpointURL(target string) (string, error) {
	if target == "" {
		return "", fmt.Errorf("empty share address")
	}
	u, err := url.Parse(target)
	if err != nil || u.Host == "" {
		u, err = url.Parse("ws://" + target)
		if err != nil {
			return "", fmt.Errorf("invalid share address %q: %w", target, err)
		}
	}
	switch u.Scheme {
	case "ws", "wss":
	case "http":
		u.Scheme = "ws"
	case "https":
		u.Scheme = "wss"
	default:
		return "", fmt.Errorf("invalid share address %q: unsupported scheme %q", target, u.Scheme)
	}
	if u.Path == "" || u.Path == "/" {
		u.Path = DefaultPath
	}
	return u.String(), nil
}

// Acquire asks the server for an outcome. Transport failures are reported
// as a share source error.
func (c *Client) Acquire(ctx context.Context) (acquire.Outcome, error) {
	resp, err := c.roundTrip(ctx, Request{Type: TypeAcquire})
	if err != nil {
		return acquire.Outcome{}, acquire.NewSourceError("share", err)
	}
	out, err := resp.Outcome()
	if err != nil {
		return acquire.Outcome{}, acquire.NewSourceError("share", err)
	}
	return out, nil
}

// Ping checks that the server answers
func (c *Client) Ping(ctx context.Context) error {
	resp, err := c.roundTrip(ctx, Request{Type: TypePing})
	if err != nil {
		return err
	}
	if resp.Type != TypePong {
		return errUnexpectedType(resp)
	}
	return nil
}

func (c *Client) roundTrip(ctx context.Context, req Request) (Response, error) {
	dialer := c.Dialer
	if dialer == nil {
		dialer = websocket.DefaultDialer
	}
	if c.Insecure {
		d := *dialer
		d.TLSClientConfig = &tls.Config{InsecureSkipVerify: true}
		dialer = &d
	}

	header := http.Header{}
	if c.Token != "" {
		header.Set("Authorization", "Bearer "+c.Token)
	}

	conn, httpResp, err := dialer.DialContext(ctx, c.URL, header)
	if err != nil {
		if httpResp != nil && httpResp.StatusCode == http.StatusUnauthorized {
			return Response{}, fmt.Errorf("server rejected the token")
		}
		return Response{}, fmt.Errorf("failed to connect to %s: %w", c.URL, err)
	}
	defer conn.Close()

	// The connection deadline follows ctx
	stop := context.AfterFunc(ctx, func() {
		_ = conn.SetReadDeadline(time.Now())
	})
	defer stop()
	if deadline, ok := ctx.Deadline(); ok {
		_ = conn.SetWriteDeadline(deadline)
		_ = conn.SetReadDeadline(deadline)
	}

	if err := conn.WriteJSON(req); err != nil {
		return Response{}, fmt.Errorf("failed to send %s request: %w", req.Type, err)
	}

	var resp Response
	if err := conn.ReadJSON(&resp); err != nil {
		if ctx.Err() != nil {
			return Response{}, ctx.Err()
		}
		return Response{}, fmt.Errorf("failed to read response: %w", err)
	}
	logging.Debug("Share response received",
		zap.String("url", c.URL),
		zap.String("type", resp.Type),
		zap.Int("records", len(resp.Records)),
	)

	_ = conn.WriteMessage(websocket.CloseMessage,
		websocket.FormatCloseMessage(websocket.CloseNormalClosure, ""))
	return resp, nil
}

func errUnexpectedType(resp Response) error {
	if resp.Type == TypeError {
		return fmt.Errorf("server error: %s", resp.Message)
	}
	return fmt.Errorf("unexpected response type %q", resp.Type)
}
