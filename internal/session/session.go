// Package session holds the authentication tokens returned by the service.
package session

import (
	"net/http"
	"strings"
)

// Pair is a single key=value token.
type Pair struct {
	Key   string
	Value string
}

// Session is an ordered set of tokens, kept in the order the service sent them.
type Session struct {
	pairs []Pair
}

// New builds a session from explicit pairs.
func New(pairs ...Pair) Session {
	return Session{pairs: append([]Pair(nil), pairs...)}
}

// FromCookies builds a session from response cookies. A later cookie with the
// same name replaces the earlier value but keeps its position.
func FromCookies(cookies []*http.Cookie) Session {
	var s Session
	for _, c := range cookies {
		if c == nil {
			continue
		}
		s.Set(c.Name, c.Value)
	}
	return s
}

// Set adds or replaces a token.
func (s *Session) Set(key, value string) {
	for i := range s.pairs {
		if s.pairs[i].Key == key {
			s.pairs[i].Value = value
			return
		}
	}
	s.pairs = append(s.pairs, Pair{Key: key, Value: value})
}

// Get returns the value for key.
func (s Session) Get(key string) (string, bool) {
	for _, p := range s.pairs {
		if p.Key == key {
			return p.Value, true
		}
	}
	return "", false
}

// Pairs returns a copy of the tokens in order.
func (s Session) Pairs() []Pair {
	return append([]Pair(nil), s.pairs...)
}

// Len reports the number of tokens.
func (s Session) Len() int {
	return len(s.pairs)
}

// Raw renders the session as a single cookie header value: key=value pairs
// joined by "; ".
func (s Session) Raw() string {
	parts := make([]string, 0, len(s.pairs))
	for _, p := range s.pairs {
		parts = append(parts, p.Key+"="+p.Value)
	}
	return strings.Join(parts, "; ")
}
