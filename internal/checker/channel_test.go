package checker

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gorilla/websocket"
	"github.com/khanhnv2901/laberator-checker/internal/session"
	"github.com/khanhnv2901/laberator-checker/internal/status"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/goleak"
)

// echoServer answers every frame with the Data field of its envelope.
func echoServer(t *testing.T) *httptest.Server {
	t.Helper()
	upgrader := websocket.Upgrader{}
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		conn, err := upgrader.Upgrade(w, r, nil)
		if err != nil {
			return
		}
		defer conn.Close()
		for {
			_, msg, err := conn.ReadMessage()
			if err != nil {
				return
			}
			var env Envelope
			if err := json.Unmarshal(msg, &env); err != nil {
				return
			}
			if err := conn.WriteMessage(websocket.TextMessage, []byte(env.Command+"|"+env.Data)); err != nil {
				return
			}
		}
	}))
	return srv
}

func wsURL(srv *httptest.Server) string {
	return "ws" + strings.TrimPrefix(srv.URL, "http") + "/cmdexec"
}

func TestChannelEnvelopes(t *testing.T) {
	srv := echoServer(t)
	defer srv.Close()

	ch, err := OpenChannel(context.Background(), wsURL(srv), time.Second, nil)
	require.NoError(t, err)
	defer ch.Close()

	sess := session.New(session.Pair{Key: "login", Value: "alice"}, session.Pair{Key: "session", Value: "abc"})

	resp, err := ch.Create(context.Background(), sess, "FLAG123", "Arial", 12)
	require.NoError(t, err)
	assert.Equal(t, `create|{"RawCookies":"login=alice; session=abc","Text":"FLAG123","Font":"Arial","Size":12}`, resp)

	resp, err = ch.List(context.Background(), sess, 0)
	require.NoError(t, err)
	assert.Equal(t, `list|{"RawCookies":"login=alice; session=abc","Offset":0}`, resp)
}

func TestChannelCloseLeavesNoGoroutines(t *testing.T) {
	defer goleak.VerifyNone(t, goleak.IgnoreCurrent())

	srv := echoServer(t)
	ch, err := OpenChannel(context.Background(), wsURL(srv), time.Second, nil)
	require.NoError(t, err)

	_, err = ch.List(context.Background(), session.Session{}, 0)
	require.NoError(t, err)

	ch.Close()
	srv.Close()
}

func TestChannelCloseNil(t *testing.T) {
	var ch *Channel
	ch.Close()
}

func TestOpenChannelNotWebsocket(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	}))
	defer srv.Close()

	_, err := OpenChannel(context.Background(), wsURL(srv), time.Second, nil)
	assert.Equal(t, status.Mumble, status.Classify(err), "error: %v", err)
}

func TestSendRespectsContextDeadline(t *testing.T) {
	upgrader := websocket.Upgrader{}
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		conn, err := upgrader.Upgrade(w, r, nil)
		if err != nil {
			return
		}
		defer conn.Close()
		for {
			if _, _, err := conn.ReadMessage(); err != nil {
				return
			}
		}
	}))
	defer srv.Close()

	ch, err := OpenChannel(context.Background(), wsURL(srv), 10*time.Second, nil)
	require.NoError(t, err)
	defer ch.Close()

	ctx, cancel := context.WithTimeout(context.Background(), 100*time.Millisecond)
	defer cancel()

	start := time.Now()
	_, err = ch.List(ctx, session.Session{}, 0)
	assert.Equal(t, status.Down, status.Classify(err), "error: %v", err)
	assert.Less(t, time.Since(start), 5*time.Second)
}

func TestSendCancelledIsCheckerError(t *testing.T) {
	upgrader := websocket.Upgrader{}
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		conn, err := upgrader.Upgrade(w, r, nil)
		if err != nil {
			return
		}
		defer conn.Close()
		for {
			if _, _, err := conn.ReadMessage(); err != nil {
				return
			}
		}
	}))
	defer srv.Close()

	ch, err := OpenChannel(context.Background(), wsURL(srv), 10*time.Second, nil)
	require.NoError(t, err)
	defer ch.Close()

	ctx, cancel := context.WithCancel(context.Background())
	time.AfterFunc(100*time.Millisecond, cancel)

	start := time.Now()
	_, err = ch.List(ctx, session.Session{}, 0)
	assert.Equal(t, status.CheckerError, status.Classify(err), "error: %v", err)
	assert.Less(t, time.Since(start), 5*time.Second)
}
