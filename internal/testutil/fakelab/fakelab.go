// Package fakelab is an in-process stand-in for the laberator service used by
// tests. It serves the registration and login endpoints and the websocket
// command channel, and can be told to misbehave in the ways the checker must
// classify.
package fakelab

import (
	"encoding/json"
	"fmt"
	"net"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"

	"github.com/go-chi/chi/v5"
	chiMiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/google/uuid"
	"github.com/gorilla/websocket"
)

// Label is a stored label as the service returns it.
type Label struct {
	Text  string `json:"Text"`
	Font  string `json:"Font"`
	Size  int    `json:"Size"`
	Owner string `json:"Owner"`
}

// Behavior selects deviations from a faithful service. The zero value is a
// faithful service.
type Behavior struct {
	// AuthStatus, when set, is returned by register and login instead of 200.
	AuthStatus int
	// HangAuth makes register and login block until the client gives up.
	HangAuth bool
	// RejectUpgrade answers the channel handshake with 403.
	RejectUpgrade bool
	// CreateResponse replaces the "true" reply to create.
	CreateResponse string
	// ListResponse, when set, builds the reply to list from the stored labels.
	ListResponse func(stored []Label) string
	// HangCommands reads commands but never answers them.
	HangCommands bool
	// CloseOnCommand drops the connection when a command arrives.
	CloseOnCommand bool
	// BinaryReply answers commands with a binary frame.
	BinaryReply bool
}

// Server is a running fake service.
type Server struct {
	behavior Behavior
	ts       *httptest.Server
	upgrader websocket.Upgrader
	done     chan struct{}
	once     sync.Once

	mu       sync.Mutex
	users    map[string]string
	sessions map[string]string
	labels   map[string][]Label
	commands []string
	conns    map[*websocket.Conn]struct{}
}

// New starts a fake service and stops it when the test finishes.
func New(t testing.TB, b Behavior) *Server {
	t.Helper()
	s := &Server{
		behavior: b,
		done:     make(chan struct{}),
		users:    map[string]string{},
		sessions: map[string]string{},
		labels:   map[string][]Label{},
		conns:    map[*websocket.Conn]struct{}{},
	}

	r := chi.NewRouter()
	r.Use(chiMiddleware.Recoverer)
	r.Get("/register", s.register)
	r.Get("/login", s.login)
	r.Get("/cmdexec", s.cmdexec)

	s.ts = httptest.NewServer(r)
	t.Cleanup(s.Close)
	return s
}

// Addr returns host:port of the service.
func (s *Server) Addr() string {
	return s.ts.Listener.Addr().String()
}

// Port returns the listening port.
func (s *Server) Port() int {
	return s.ts.Listener.Addr().(*net.TCPAddr).Port
}

// Close stops the service. Safe to call more than once.
func (s *Server) Close() {
	s.once.Do(func() {
		close(s.done)
		s.mu.Lock()
		for conn := range s.conns {
			conn.Close()
		}
		s.mu.Unlock()
		s.ts.CloseClientConnections()
		s.ts.Close()
	})
}

// Seed stores a label for login directly, as if an earlier put created it.
func (s *Server) Seed(login, password string, l Label) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.users[login] = password
	l.Owner = login
	s.labels[login] = append(s.labels[login], l)
}

// Labels returns the labels stored for login.
func (s *Server) Labels(login string) []Label {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]Label(nil), s.labels[login]...)
}

// Commands returns the names of the commands received so far.
func (s *Server) Commands() []string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]string(nil), s.commands...)
}

func (s *Server) register(w http.ResponseWriter, r *http.Request) {
	if s.misbehaveAuth(w, r) {
		return
	}
	login, password := r.URL.Query().Get("login"), r.URL.Query().Get("password")
	if login == "" || password == "" {
		http.Error(w, "login and password required", http.StatusBadRequest)
		return
	}

	s.mu.Lock()
	if _, exists := s.users[login]; exists {
		s.mu.Unlock()
		http.Error(w, fmt.Sprintf("User with login '%s' is already exist", login), http.StatusBadRequest)
		return
	}
	s.users[login] = password
	s.mu.Unlock()

	s.startSession(w, login)
}

func (s *Server) login(w http.ResponseWriter, r *http.Request) {
	if s.misbehaveAuth(w, r) {
		return
	}
	login, password := r.URL.Query().Get("login"), r.URL.Query().Get("password")

	s.mu.Lock()
	stored, ok := s.users[login]
	s.mu.Unlock()
	if !ok || stored != password {
		http.Error(w, "invalid credentials", http.StatusForbidden)
		return
	}

	s.startSession(w, login)
}

func (s *Server) misbehaveAuth(w http.ResponseWriter, r *http.Request) bool {
	if s.behavior.HangAuth {
		select {
		case <-r.Context().Done():
		case <-s.done:
		}
		return true
	}
	if s.behavior.AuthStatus != 0 {
		http.Error(w, http.StatusText(s.behavior.AuthStatus), s.behavior.AuthStatus)
		return true
	}
	return false
}

func (s *Server) startSession(w http.ResponseWriter, login string) {
	token := uuid.NewString()
	s.mu.Lock()
	s.sessions[token] = login
	s.mu.Unlock()

	http.SetCookie(w, &http.Cookie{Name: "login", Value: login, Path: "/"})
	http.SetCookie(w, &http.Cookie{Name: "session", Value: token, Path: "/"})
	w.WriteHeader(http.StatusOK)
}

func (s *Server) owner(rawCookies string) (string, bool) {
	req := &http.Request{Header: http.Header{"Cookie": {rawCookies}}}
	c, err := req.Cookie("session")
	if err != nil {
		return "", false
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	login, ok := s.sessions[c.Value]
	return login, ok
}

type envelope struct {
	Command string
	Data    string
}

type createData struct {
	RawCookies string
	Text       string
	Font       string
	Size       int
}

type listData struct {
	RawCookies string
	Offset     int
}

func (s *Server) cmdexec(w http.ResponseWriter, r *http.Request) {
	if s.behavior.RejectUpgrade {
		http.Error(w, "forbidden", http.StatusForbidden)
		return
	}
	conn, err := s.upgrader.Upgrade(w, r, nil)
	if err != nil {
		return
	}
	s.mu.Lock()
	select {
	case <-s.done:
		s.mu.Unlock()
		conn.Close()
		return
	default:
	}
	s.conns[conn] = struct{}{}
	s.mu.Unlock()
	defer func() {
		s.mu.Lock()
		delete(s.conns, conn)
		s.mu.Unlock()
		conn.Close()
	}()

	for {
		_, msg, err := conn.ReadMessage()
		if err != nil {
			return
		}
		var env envelope
		if err := json.Unmarshal(msg, &env); err != nil {
			_ = conn.WriteMessage(websocket.TextMessage, []byte("bad envelope"))
			continue
		}

		s.mu.Lock()
		s.commands = append(s.commands, env.Command)
		s.mu.Unlock()

		if s.behavior.CloseOnCommand {
			return
		}
		if s.behavior.HangCommands {
			continue
		}

		reply := s.handle(env)
		msgType := websocket.TextMessage
		if s.behavior.BinaryReply {
			msgType = websocket.BinaryMessage
		}
		if err := conn.WriteMessage(msgType, []byte(reply)); err != nil {
			return
		}
	}
}

func (s *Server) handle(env envelope) string {
	switch env.Command {
	case "create":
		var d createData
		if err := json.Unmarshal([]byte(env.Data), &d); err != nil {
			return "false"
		}
		login, ok := s.owner(d.RawCookies)
		if !ok {
			return "false"
		}
		if s.behavior.CreateResponse != "" {
			return s.behavior.CreateResponse
		}
		s.mu.Lock()
		s.labels[login] = append(s.labels[login], Label{Text: d.Text, Font: d.Font, Size: d.Size, Owner: login})
		s.mu.Unlock()
		return "true"
	case "list":
		var d listData
		if err := json.Unmarshal([]byte(env.Data), &d); err != nil {
			return "null"
		}
		login, ok := s.owner(d.RawCookies)
		if !ok {
			return "[]"
		}
		stored := s.Labels(login)
		if s.behavior.ListResponse != nil {
			return s.behavior.ListResponse(stored)
		}
		if d.Offset > len(stored) {
			d.Offset = len(stored)
		}
		out, _ := json.Marshal(append([]Label{}, stored[d.Offset:]...))
		return string(out)
	default:
		return "unknown command"
	}
}
