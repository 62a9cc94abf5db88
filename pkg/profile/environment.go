package profile

import (
	"fmt"

	"github.com/caarlos0/env/v11"

	"github.com/macropower/needs/pkg/locale"
)

// Environment is a snapshot of the process environment variables needs
// depends on.
type Environment struct {
	Home          string `env:"HOME"`
	XDGConfigHome string `env:"XDG_CONFIG_HOME"`
	Lang          string `env:"LANG"`
	LCAll         string `env:"LC_ALL"`
	LCMessages    string `env:"LC_MESSAGES"`
}

// ParseEnvironment reads an [Environment] from the process environment.
func ParseEnvironment() (Environment, error) {
	var e Environment

	err := env.Parse(&e)
	if err != nil {
		return Environment{}, fmt.Errorf("parse env: %w", err)
	}

	return e, nil
}

// Locale returns the base language of the user's POSIX locale, following the
// usual LC_ALL, LC_MESSAGES, LANG precedence.
func (e Environment) Locale() string {
	return locale.Detect(e.LCAll, e.LCMessages, e.Lang)
}
