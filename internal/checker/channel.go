package checker

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net"
	"net/http"
	"time"
	"unicode/utf8"

	"github.com/gorilla/websocket"
	"github.com/khanhnv2901/laberator-checker/internal/session"
	errs "github.com/khanhnv2901/laberator-checker/internal/shared/errors"
	"github.com/khanhnv2901/laberator-checker/internal/status"
)

const (
	// CommandCreate stores a new label for the session owner.
	CommandCreate = "create"
	// CommandList returns the session owner's labels.
	CommandList = "list"
)

// Envelope is a single command frame. Data holds the JSON encoding of the
// command fields as a string.
type Envelope struct {
	Command string `json:"Command"`
	Data    string `json:"Data"`
}

// CreateRequest is the payload of the create command.
type CreateRequest struct {
	RawCookies string `json:"RawCookies"`
	Text       string `json:"Text"`
	Font       string `json:"Font"`
	Size       int    `json:"Size"`
}

// ListRequest is the payload of the list command.
type ListRequest struct {
	RawCookies string `json:"RawCookies"`
	Offset     int    `json:"Offset"`
}

// Channel is a persistent websocket connection to the command endpoint. It
// is used by a single goroutine and closed by its opener.
type Channel struct {
	conn    *websocket.Conn
	timeout time.Duration
}

// OpenChannel dials the command endpoint. A handshake the server answers with
// anything other than a protocol switch is a ProtocolViolation; failing to
// reach the server at all is Unreachable.
func OpenChannel(ctx context.Context, wsURL string, timeout time.Duration, header http.Header) (*Channel, error) {
	const op = "channel open"

	dialer := websocket.Dialer{
		NetDialContext:   (&net.Dialer{Timeout: timeout}).DialContext,
		HandshakeTimeout: timeout,
	}

	conn, resp, err := dialer.DialContext(ctx, wsURL, header)
	if resp != nil && resp.Body != nil {
		resp.Body.Close()
	}
	if err != nil {
		if errors.Is(err, websocket.ErrBadHandshake) {
			code := 0
			if resp != nil {
				code = resp.StatusCode
			}
			return nil, status.Protocol(op, fmt.Errorf("%w: http status %d", errs.ErrBadHandshake, code))
		}
		return nil, classifyCall(ctx, op, err)
	}

	return &Channel{conn: conn, timeout: timeout}, nil
}

// Send writes one envelope and blocks until exactly one response frame
// arrives or the timeout elapses.
func (c *Channel) Send(ctx context.Context, command string, payload any) (string, error) {
	op := "channel " + command

	data, err := json.Marshal(payload)
	if err != nil {
		return "", status.Internal(op, fmt.Errorf("marshal payload: %w", err))
	}
	frame, err := json.Marshal(Envelope{Command: command, Data: string(data)})
	if err != nil {
		return "", status.Internal(op, fmt.Errorf("marshal envelope: %w", err))
	}

	if err := ctx.Err(); err != nil {
		return "", classifyTransport(op, err)
	}
	// Cancellation unblocks a pending read or write by expiring its deadline.
	stop := context.AfterFunc(ctx, func() {
		_ = c.conn.SetReadDeadline(time.Unix(1, 0))
		_ = c.conn.SetWriteDeadline(time.Unix(1, 0))
	})
	defer stop()

	if err := c.conn.SetWriteDeadline(c.deadline(ctx)); err != nil {
		return "", classifyCall(ctx, op, err)
	}
	if err := c.conn.WriteMessage(websocket.TextMessage, frame); err != nil {
		return "", classifyCall(ctx, op, fmt.Errorf("write: %w", err))
	}

	if err := c.conn.SetReadDeadline(c.deadline(ctx)); err != nil {
		return "", classifyCall(ctx, op, err)
	}
	if err := ctx.Err(); err != nil {
		return "", classifyTransport(op, err)
	}
	msgType, msg, err := c.conn.ReadMessage()
	if err != nil {
		return "", classifyCall(ctx, op, fmt.Errorf("read: %w", err))
	}
	if msgType != websocket.TextMessage {
		return "", status.Protocol(op, fmt.Errorf("%w: %d", errs.ErrUnexpectedMessage, msgType))
	}
	if !utf8.Valid(msg) {
		return "", status.Protocol(op, errs.ErrInvalidEncoding)
	}
	return string(msg), nil
}

// Create asks the service to store a label and returns the raw response.
func (c *Channel) Create(ctx context.Context, sess session.Session, text, font string, size int) (string, error) {
	return c.Send(ctx, CommandCreate, CreateRequest{
		RawCookies: sess.Raw(),
		Text:       text,
		Font:       font,
		Size:       size,
	})
}

// List asks the service for the session owner's labels starting at offset.
func (c *Channel) List(ctx context.Context, sess session.Session, offset int) (string, error) {
	return c.Send(ctx, CommandList, ListRequest{
		RawCookies: sess.Raw(),
		Offset:     offset,
	})
}

// Close sends a close frame and releases the connection. Errors are ignored.
func (c *Channel) Close() {
	if c == nil || c.conn == nil {
		return
	}
	msg := websocket.FormatCloseMessage(websocket.CloseNormalClosure, "")
	_ = c.conn.WriteControl(websocket.CloseMessage, msg, time.Now().Add(time.Second))
	_ = c.conn.Close()
}

func (c *Channel) deadline(ctx context.Context) time.Time {
	d := time.Now().Add(c.timeout)
	if c.timeout <= 0 {
		d = time.Time{}
	}
	if ctxDeadline, ok := ctx.Deadline(); ok && (d.IsZero() || ctxDeadline.Before(d)) {
		return ctxDeadline
	}
	return d
}
