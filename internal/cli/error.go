package cli

import (
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/fang"
	"github.com/charmbracelet/lipgloss"

	"github.com/macropower/needs/pkg/profile"
)

// ErrorHandler renders command errors for [fang.WithErrorHandler].
// Usage errors get a hint pointing at --help, unknown profiles one
// pointing at the list command.
func ErrorHandler(w io.Writer, styles fang.Styles, err error) {
	mustN(fmt.Fprintln(w, styles.ErrorHeader.String()))
	mustN(fmt.Fprintln(w, lipgloss.NewStyle().MarginLeft(2).Render(err.Error())))
	mustN(fmt.Fprintln(w))

	switch {
	case isUsageError(err):
		hint(w, styles, "Try", styles.Program.Flag.Render("--help"), "for usage.")
	case errors.Is(err, profile.ErrProfileNotFound):
		hint(w, styles, "Run", styles.Program.Command.Render(cmdName+" list"), "to see the available profiles.")
	}
}

func hint(w io.Writer, styles fang.Styles, verb, subject, rest string) {
	mustN(fmt.Fprintln(w, lipgloss.JoinHorizontal(
		lipgloss.Left,
		styles.ErrorText.UnsetWidth().Render(verb),
		subject,
		styles.ErrorText.UnsetWidth().UnsetMargins().UnsetTransform().PaddingLeft(1).Render(rest),
	)))
	mustN(fmt.Fprintln(w))
}

// Cobra does not export typed usage errors, so they are matched by prefix.
var usageErrorPrefixes = []string{
	"flag needs an argument:",
	"unknown flag:",
	"unknown shorthand flag:",
	"unknown command",
	"invalid argument",
	"accepts ",
	"requires at least ",
}

func isUsageError(err error) bool {
	s := err.Error()
	for _, prefix := range usageErrorPrefixes {
		if strings.HasPrefix(s, prefix) {
			return true
		}
	}

	return false
}

func must(err error) {
	if err != nil {
		panic(err)
	}
}

func mustN(_ int, err error) {
	must(err)
}
