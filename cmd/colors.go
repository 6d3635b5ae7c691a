package cmd

import (
	"github.com/fatih/color"
	"github.com/khanhnv2901/laberator-checker/internal/status"
)

var (
	colorSuccess = color.New(color.FgGreen).SprintFunc()
	colorWarn    = color.New(color.FgYellow).SprintFunc()
	colorError   = color.New(color.FgRed).SprintFunc()
	colorFatal   = color.New(color.FgMagenta, color.Bold).SprintFunc()
)

func formatStatusWithColor(s status.Status) string {
	switch s {
	case status.OK:
		return colorSuccess(s.String())
	case status.Mumble:
		return colorWarn(s.String())
	case status.Corrupt, status.Down:
		return colorError(s.String())
	default:
		return colorFatal(s.String())
	}
}
