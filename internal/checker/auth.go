package checker

import (
	"context"
	"fmt"
	"io"
	"net"
	"net/http"
	"net/url"
	"time"

	"github.com/khanhnv2901/laberator-checker/internal/session"
	consts "github.com/khanhnv2901/laberator-checker/internal/shared/constants"
	errs "github.com/khanhnv2901/laberator-checker/internal/shared/errors"
	"github.com/khanhnv2901/laberator-checker/internal/status"
)

// AuthClient performs registration and login against the service's HTTP API.
type AuthClient struct {
	Client  *http.Client
	Timeout time.Duration
	// Headers returns the headers sent with every request. May be nil.
	Headers func() http.Header
}

// NewAuthClient returns a client whose connections are not reused: each
// invocation makes a single request.
func NewAuthClient(timeout time.Duration, headers func() http.Header) *AuthClient {
	dialer := &net.Dialer{Timeout: timeout}
	return &AuthClient{
		Client: &http.Client{
			Timeout: timeout,
			Transport: &http.Transport{
				DialContext:           dialer.DialContext,
				DisableKeepAlives:     true,
				ResponseHeaderTimeout: timeout,
			},
		},
		Timeout: timeout,
		Headers: headers,
	}
}

// Register creates an account and returns its session.
func (a *AuthClient) Register(ctx context.Context, target Target, login, password string) (session.Session, error) {
	return a.authenticate(ctx, "register", consts.RegisterPath, target, login, password)
}

// Login authenticates an existing account and returns its session.
func (a *AuthClient) Login(ctx context.Context, target Target, login, password string) (session.Session, error) {
	return a.authenticate(ctx, "login", consts.LoginPath, target, login, password)
}

func (a *AuthClient) authenticate(ctx context.Context, op, path string, target Target, login, password string) (session.Session, error) {
	if a.Timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, a.Timeout)
		defer cancel()
	}

	u := target.HTTPURL(path, url.Values{"login": {login}, "password": {password}})
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u, nil)
	if err != nil {
		return session.Session{}, status.Internal(op, fmt.Errorf("create request: %w", err))
	}
	if a.Headers != nil {
		for k, vs := range a.Headers() {
			for _, v := range vs {
				req.Header.Add(k, v)
			}
		}
	}

	resp, err := a.Client.Do(req)
	if err != nil {
		return session.Session{}, classifyCall(ctx, op, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		_, _ = io.Copy(io.Discard, io.LimitReader(resp.Body, consts.ResponseLogLimitBytes))
		return session.Session{}, status.Protocol(op, fmt.Errorf("%w: %s", errs.ErrHTTPStatus, resp.Status))
	}

	// Drain so a hanging body surfaces as a timeout here rather than later.
	if _, err := io.Copy(io.Discard, resp.Body); err != nil {
		return session.Session{}, classifyCall(ctx, op, fmt.Errorf("read body: %w", err))
	}

	return session.FromCookies(resp.Cookies()), nil
}
