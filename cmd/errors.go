package cmd

import (
	"fmt"

	errs "github.com/khanhnv2901/laberator-checker/internal/shared/errors"
)

// UnknownCommandError indicates the scoring system asked for a command this
// checker does not implement.
type UnknownCommandError struct {
	Name string
}

func (e *UnknownCommandError) Error() string {
	if e.Name == "" {
		return "no command given"
	}
	return fmt.Sprintf("unsupported command %s", e.Name)
}

func (e *UnknownCommandError) Unwrap() error {
	return errs.ErrUnknownCommand
}

// UnsupportedVulnError signals a vuln id outside the supported set.
type UnsupportedVulnError struct {
	Vuln string
}

func (e *UnsupportedVulnError) Error() string {
	return fmt.Sprintf("vuln %q is not supported (supported: 1)", e.Vuln)
}

func (e *UnsupportedVulnError) Unwrap() error {
	return errs.ErrUnsupportedVuln
}
