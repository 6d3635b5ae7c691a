package checker

import (
	"fmt"
	"net"
	"net/url"
	"strconv"
	"strings"

	errs "github.com/khanhnv2901/laberator-checker/internal/shared/errors"
)

// Target is a resolved service address.
type Target struct {
	Host string
	Port int
}

// ParseTarget resolves the host argument given by the scoring system. It
// accepts a bare host or IP ("10.60.1.2", "::1") or a host with an explicit
// port ("10.60.1.2:9000", "[::1]:9000"); defaultPort is used otherwise.
func ParseTarget(host string, defaultPort int) (Target, error) {
	host = strings.TrimSpace(host)
	if host == "" {
		return Target{}, fmt.Errorf("%w: empty host", errs.ErrInvalidInput)
	}
	if strings.Contains(host, "/") {
		return Target{}, fmt.Errorf("%w: host %q must not contain a scheme or path", errs.ErrInvalidInput, host)
	}

	h, p, err := net.SplitHostPort(host)
	if err != nil {
		// bare IPv6 literal or host without port
		return Target{Host: strings.Trim(host, "[]"), Port: defaultPort}, nil
	}
	port, err := strconv.Atoi(p)
	if err != nil || port <= 0 || port > 65535 {
		return Target{}, fmt.Errorf("%w: invalid port %q", errs.ErrInvalidInput, p)
	}
	return Target{Host: h, Port: port}, nil
}

// Addr returns host:port.
func (t Target) Addr() string {
	return net.JoinHostPort(t.Host, strconv.Itoa(t.Port))
}

// HTTPURL builds an http URL for path with the given query.
func (t Target) HTTPURL(path string, query url.Values) string {
	u := url.URL{Scheme: "http", Host: t.Addr(), Path: path, RawQuery: query.Encode()}
	return u.String()
}

// ChannelURL builds the websocket URL of the command channel.
func (t Target) ChannelURL(path string) string {
	u := url.URL{Scheme: "ws", Host: t.Addr(), Path: path}
	return u.String()
}
