package checker

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net"
	"os"
	"syscall"

	"github.com/gorilla/websocket"
	"github.com/khanhnv2901/laberator-checker/internal/status"
)

// classifyTransport maps an error returned by a network call. A call
// abandoned because the checker itself was cancelled is an internal fault.
// Timeouts, refused or reset connections and peers hanging up are
// Unreachable; any other failure after the remote answered is a
// ProtocolViolation.
func classifyTransport(op string, err error) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, context.Canceled) {
		return status.Internal(op, err)
	}
	if isUnreachable(err) {
		return status.Unreachable(op, err)
	}
	return status.Protocol(op, err)
}

// classifyCall is classifyTransport for a call made under ctx: when ctx was
// cancelled the failure is the checker's, whatever error the I/O surfaced.
func classifyCall(ctx context.Context, op string, err error) error {
	if err != nil && errors.Is(ctx.Err(), context.Canceled) {
		return status.Internal(op, fmt.Errorf("%w: %w", ctx.Err(), err))
	}
	return classifyTransport(op, err)
}

func isUnreachable(err error) bool {
	if errors.Is(err, context.DeadlineExceeded) || errors.Is(err, os.ErrDeadlineExceeded) {
		return true
	}
	if errors.Is(err, io.EOF) || errors.Is(err, io.ErrUnexpectedEOF) || errors.Is(err, net.ErrClosed) {
		return true
	}
	if errors.Is(err, syscall.ECONNREFUSED) || errors.Is(err, syscall.ECONNRESET) ||
		errors.Is(err, syscall.ECONNABORTED) || errors.Is(err, syscall.EPIPE) ||
		errors.Is(err, syscall.EHOSTUNREACH) || errors.Is(err, syscall.ENETUNREACH) {
		return true
	}

	var netErr net.Error
	if errors.As(err, &netErr) && netErr.Timeout() {
		return true
	}
	var opErr *net.OpError
	if errors.As(err, &opErr) {
		return true
	}
	var dnsErr *net.DNSError
	if errors.As(err, &dnsErr) {
		return true
	}
	var closeErr *websocket.CloseError
	return errors.As(err, &closeErr)
}
