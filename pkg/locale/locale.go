// Package locale orders profile names by locale preference and derives a
// user locale from the environment.
package locale

import (
	"log/slog"
	"strings"

	"golang.org/x/text/language"
)

// Fallback is the language used when no locale can be detected.
const Fallback = "en"

// Order returns names partitioned so that names containing "_" followed by
// the first two characters of locale come first. Both partitions keep their
// input order. A locale shorter than two characters matches nothing.
func Order(names []string, locale string) []string {
	out := make([]string, 0, len(names))
	if len(locale) < 2 {
		return append(out, names...)
	}

	marker := "_" + locale[:2]

	var rest []string

	for _, name := range names {
		if strings.Contains(name, marker) {
			out = append(out, name)
		} else {
			rest = append(rest, name)
		}
	}

	return append(out, rest...)
}

// Detect returns the base language of the first parseable POSIX locale
// value, e.g. "id" for "id_ID.UTF-8". Values are tried in order, so callers
// pass LC_ALL, LC_MESSAGES and LANG in that precedence. Returns [Fallback]
// when nothing matches.
func Detect(values ...string) string {
	for _, v := range values {
		tag, ok := parse(v)
		if !ok {
			continue
		}

		base, _ := tag.Base()

		return base.String()
	}

	return Fallback
}

func parse(v string) (language.Tag, bool) {
	if i := strings.IndexAny(v, ".@"); i >= 0 {
		v = v[:i]
	}

	if v == "" || v == "C" || v == "POSIX" {
		return language.Und, false
	}

	tag, err := language.Parse(strings.ReplaceAll(v, "_", "-"))
	if err != nil {
		slog.Debug("ignore unparseable locale",
			slog.String("locale", v),
			slog.Any("error", err),
		)

		return language.Und, false
	}

	if tag == language.Und {
		return language.Und, false
	}

	return tag, true
}
