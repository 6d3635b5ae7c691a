package status

import (
	"errors"
	"fmt"
	"testing"
)

func TestClassify(t *testing.T) {
	cause := errors.New("boom")
	tests := []struct {
		name string
		err  error
		want Status
	}{
		{"nil", nil, OK},
		{"unreachable", Unreachable("register", cause), Down},
		{"protocol", Protocol("register", cause), Mumble},
		{"semantic", Semantic("create", cause), Mumble},
		{"semantic content", SemanticContent("list", cause), Corrupt},
		{"integrity", Integrity("verify", cause), Corrupt},
		{"internal", Internal("decode", cause), CheckerError},
		{"unclassified", cause, CheckerError},
		{"wrapped", fmt.Errorf("get: %w", Unreachable("login", cause)), Down},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Classify(tt.err); got != tt.want {
				t.Fatalf("Classify() = %s, want %s", got, tt.want)
			}
		})
	}
}

func TestExitCodes(t *testing.T) {
	want := map[Status]int{OK: 101, Corrupt: 102, Mumble: 103, Down: 104, CheckerError: 110}
	seen := map[int]bool{}
	for s, code := range want {
		if s.ExitCode() != code {
			t.Errorf("%s exit code = %d, want %d", s, s.ExitCode(), code)
		}
		if seen[code] {
			t.Errorf("exit code %d used twice", code)
		}
		seen[code] = true
	}
}

func TestStatusString(t *testing.T) {
	if Mumble.String() != "MUMBLE" {
		t.Fatalf("unexpected name %q", Mumble.String())
	}
	if CheckerError.String() != "CHECKER_ERROR" {
		t.Fatalf("unexpected name %q", CheckerError.String())
	}
	if Status(7).String() != "Status(7)" {
		t.Fatalf("unexpected name %q", Status(7).String())
	}
}

func TestErrorUnwrap(t *testing.T) {
	cause := errors.New("refused")
	err := Unreachable("channel open", cause)
	if !errors.Is(err, cause) {
		t.Fatalf("expected errors.Is to find cause")
	}
	want := "channel open: unreachable: refused"
	if err.Error() != want {
		t.Fatalf("expected %q, got %q", want, err.Error())
	}
}
