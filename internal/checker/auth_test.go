package checker

import (
	"context"
	"errors"
	"net"
	"net/http"
	"net/http/httptest"
	"strconv"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
	"github.com/khanhnv2901/laberator-checker/internal/session"
	errs "github.com/khanhnv2901/laberator-checker/internal/shared/errors"
	"github.com/khanhnv2901/laberator-checker/internal/status"
)

func targetFor(t *testing.T, srv *httptest.Server) Target {
	t.Helper()
	host, port, err := net.SplitHostPort(srv.Listener.Addr().String())
	if err != nil {
		t.Fatalf("split addr: %v", err)
	}
	p, _ := strconv.Atoi(port)
	return Target{Host: host, Port: p}
}

func TestRegisterReturnsCookiesInOrder(t *testing.T) {
	var gotQuery, gotUA string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/register" {
			t.Errorf("unexpected path %s", r.URL.Path)
		}
		gotQuery = r.URL.RawQuery
		gotUA = r.Header.Get("User-Agent")
		http.SetCookie(w, &http.Cookie{Name: "session", Value: "abc"})
		http.SetCookie(w, &http.Cookie{Name: "login", Value: "alice"})
	}))
	defer srv.Close()

	headers := func() http.Header {
		h := http.Header{}
		h.Set("User-Agent", "checker-test")
		return h
	}
	client := NewAuthClient(time.Second, headers)

	sess, err := client.Register(context.Background(), targetFor(t, srv), "alice", "s3cr3t")
	if err != nil {
		t.Fatalf("Register: %v", err)
	}

	if gotQuery != "login=alice&password=s3cr3t" {
		t.Errorf("unexpected query %q", gotQuery)
	}
	if gotUA != "checker-test" {
		t.Errorf("expected generated user agent, got %q", gotUA)
	}
	want := []session.Pair{{Key: "session", Value: "abc"}, {Key: "login", Value: "alice"}}
	if diff := cmp.Diff(want, sess.Pairs()); diff != "" {
		t.Fatalf("session mismatch (-want +got):\n%s", diff)
	}
}

func TestLoginPath(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/login" {
			w.WriteHeader(http.StatusNotFound)
			return
		}
		http.SetCookie(w, &http.Cookie{Name: "session", Value: "xyz"})
	}))
	defer srv.Close()

	sess, err := NewAuthClient(time.Second, nil).Login(context.Background(), targetFor(t, srv), "alice", "s3cr3t")
	if err != nil {
		t.Fatalf("Login: %v", err)
	}
	if sess.Raw() != "session=xyz" {
		t.Fatalf("unexpected session %q", sess.Raw())
	}
}

func TestAuthStatusCodes(t *testing.T) {
	tests := []struct {
		code int
		want status.Status
	}{
		{http.StatusOK, status.OK},
		{http.StatusNoContent, status.OK},
		{http.StatusBadRequest, status.Mumble},
		{http.StatusForbidden, status.Mumble},
		{http.StatusBadGateway, status.Mumble},
	}

	for _, tt := range tests {
		t.Run(strconv.Itoa(tt.code), func(t *testing.T) {
			srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(tt.code)
			}))
			defer srv.Close()

			_, err := NewAuthClient(time.Second, nil).Register(context.Background(), targetFor(t, srv), "alice", "s3cr3t")
			if got := status.Classify(err); got != tt.want {
				t.Fatalf("expected %s, got %s (%v)", tt.want, got, err)
			}
			if tt.want == status.Mumble && !errors.Is(err, errs.ErrHTTPStatus) {
				t.Fatalf("expected ErrHTTPStatus, got %v", err)
			}
		})
	}
}

func TestAuthTimeoutIsDown(t *testing.T) {
	release := make(chan struct{})
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		select {
		case <-r.Context().Done():
		case <-release:
		}
	}))
	defer srv.Close()
	defer close(release)

	_, err := NewAuthClient(100*time.Millisecond, nil).Register(context.Background(), targetFor(t, srv), "alice", "s3cr3t")
	if got := status.Classify(err); got != status.Down {
		t.Fatalf("expected DOWN, got %s (%v)", got, err)
	}
}

func TestAuthSlowBodyIsDown(t *testing.T) {
	release := make(chan struct{})
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		w.(http.Flusher).Flush()
		select {
		case <-r.Context().Done():
		case <-release:
		}
	}))
	defer srv.Close()
	defer close(release)

	_, err := NewAuthClient(100*time.Millisecond, nil).Login(context.Background(), targetFor(t, srv), "alice", "s3cr3t")
	if got := status.Classify(err); got != status.Down {
		t.Fatalf("expected DOWN, got %s (%v)", got, err)
	}
}
