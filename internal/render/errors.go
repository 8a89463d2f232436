package render

import (
	"errors"

	"github.com/wordweave/wordweave/internal/parser"
	"github.com/wordweave/wordweave/internal/style"
)

// ErrEmptyMarkdown is returned when the request carries no markdown.
var ErrEmptyMarkdown = errors.New("markdown text is required")

// IsInputError reports whether err is the caller's fault: missing or
// contentless markdown. Mapped to a 400 at the API boundary.
func IsInputError(err error) bool {
	return errors.Is(err, ErrEmptyMarkdown) || errors.Is(err, parser.ErrNoContent)
}

// IsConfigError reports whether err is a theme or override authoring
// problem.
func IsConfigError(err error) bool {
	var cfg *style.ConfigError
	return errors.As(err, &cfg)
}
