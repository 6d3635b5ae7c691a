package constants

import "time"

const (
	// DefaultPort is the port the laberator service listens on.
	DefaultPort = 8080
	// DefaultTimeout bounds every network call made by the checker.
	DefaultTimeout = 10 * time.Second
	// DefaultChannelPath is the websocket endpoint accepting command envelopes.
	DefaultChannelPath = "/cmdexec"
)

const (
	// RegisterPath creates an account and returns session cookies.
	RegisterPath = "/register"
	// LoginPath authenticates an existing account.
	LoginPath = "/login"
)

const (
	// SupportedVulns is reported by the info command.
	SupportedVulns = 1
	// FlagIDSeparator joins the fields of a flag identifier.
	FlagIDSeparator = ","
)

const (
	// ResponseLogLimitBytes caps how much of a channel response is written to debug logs.
	ResponseLogLimitBytes = 2048
)
