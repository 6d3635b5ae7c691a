// Package generator produces the random values planted by put: account
// credentials, label style attributes and request headers.
package generator

import (
	"math/rand/v2"
	"net/http"
	"strings"

	"github.com/google/uuid"
)

const (
	loginLength    = 12
	passwordLength = 16
	minLabelSize   = 8
	maxLabelSize   = 72
)

const passwordAlphabet = "abcdefghijklmnopqrstuvwxyzABCDEFGHIJKLMNOPQRSTUVWXYZ0123456789"

var fonts = []string{
	"Arial",
	"Courier New",
	"Georgia",
	"Helvetica",
	"Impact",
	"Lucida Console",
	"Tahoma",
	"Times New Roman",
	"Trebuchet MS",
	"Verdana",
}

var userAgents = []string{
	"Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/124.0.0.0 Safari/537.36",
	"Mozilla/5.0 (Macintosh; Intel Mac OS X 14_4) AppleWebKit/605.1.15 (KHTML, like Gecko) Version/17.4 Safari/605.1.15",
	"Mozilla/5.0 (X11; Linux x86_64; rv:125.0) Gecko/20100101 Firefox/125.0",
	"Mozilla/5.0 (X11; Linux x86_64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/123.0.0.0 Safari/537.36",
	"Mozilla/5.0 (iPhone; CPU iPhone OS 17_4 like Mac OS X) AppleWebKit/605.1.15 (KHTML, like Gecko) Version/17.4 Mobile/15E148 Safari/604.1",
}

// Generator is the source of random put inputs. Every string it returns must
// be non-empty ASCII without commas.
type Generator interface {
	Login() string
	Password() string
	LabelStyle() (font string, size int)
	Headers() http.Header
}

// Random is the production generator.
type Random struct{}

// Login returns a lowercase alphanumeric account name.
func (Random) Login() string {
	id := strings.ReplaceAll(uuid.NewString(), "-", "")
	return id[:loginLength]
}

// Password returns a random alphanumeric password.
func (Random) Password() string {
	var b strings.Builder
	b.Grow(passwordLength)
	for i := 0; i < passwordLength; i++ {
		b.WriteByte(passwordAlphabet[rand.IntN(len(passwordAlphabet))])
	}
	return b.String()
}

// LabelStyle picks a font and size for the planted label.
func (Random) LabelStyle() (string, int) {
	return fonts[rand.IntN(len(fonts))], minLabelSize + rand.IntN(maxLabelSize-minLabelSize+1)
}

// Headers returns browser-like request headers.
func (Random) Headers() http.Header {
	h := http.Header{}
	h.Set("User-Agent", userAgents[rand.IntN(len(userAgents))])
	h.Set("Accept", "text/html,application/xhtml+xml,application/xml;q=0.9,*/*;q=0.8")
	h.Set("Accept-Language", "en-US,en;q=0.5")
	return h
}

// Fixed is a deterministic Generator for tests. It returns the same values
// on every call.
type Fixed struct {
	LoginValue    string
	PasswordValue string
	Font          string
	Size          int
	UserAgent     string
}

func (f Fixed) Login() string { return f.LoginValue }
func (f Fixed) Password() string { return f.PasswordValue }

func (f Fixed) LabelStyle() (string, int) { return f.Font, f.Size }

func (f Fixed) Headers() http.Header {
	h := http.Header{}
	if f.UserAgent != "" {
		h.Set("User-Agent", f.UserAgent)
	}
	return h
}
