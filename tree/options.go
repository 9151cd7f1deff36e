package tree

import (
	"log/slog"
	"regexp"

	"github.com/agentic-research/nest/plugin"
)

// ParseErrorPolicy selects what a Tree does when a parser fails during
// materialization.
type ParseErrorPolicy int

const (
	// ParseErrorsRaise surfaces the failure to the caller immediately.
	ParseErrorsRaise ParseErrorPolicy = iota
	// ParseErrorsIgnore replaces the failed file with an empty mapping.
	ParseErrorsIgnore
	// ParseErrorsCollect replaces the failed file with a *ParseError
	// marker and records it for Errs.
	ParseErrorsCollect
)

type treeConfig struct {
	registry    *plugin.Registry
	ignore      []*regexp.Regexp
	policy      ParseErrorPolicy
	logger      *slog.Logger
	parserOpts  plugin.Options
	skipUnknown bool
}

// Option configures a Tree at construction.
type Option func(*treeConfig)

// WithRegistry uses a specific plugin registry instead of the process
// default.
func WithRegistry(r *plugin.Registry) Option {
	return func(c *treeConfig) { c.registry = r }
}

// WithIgnore hides directory entries whose names match any of the
// regular expressions.
func WithIgnore(patterns ...*regexp.Regexp) Option {
	return func(c *treeConfig) { c.ignore = append(c.ignore, patterns...) }
}

// WithParseErrors sets the parse failure policy; the default is
// ParseErrorsRaise.
func WithParseErrors(p ParseErrorPolicy) Option {
	return func(c *treeConfig) { c.policy = p }
}

// WithLogger routes scan and materialization logging; the default is
// slog.Default.
func WithLogger(l *slog.Logger) Option {
	return func(c *treeConfig) { c.logger = l }
}

// WithParserOptions passes free-form parameters through to every parser
// invocation.
func WithParserOptions(opts plugin.Options) Option {
	return func(c *treeConfig) { c.parserOpts = opts }
}

// SkipUnknown hides files no registered parser matches instead of
// failing on access.
func SkipUnknown() Option {
	return func(c *treeConfig) { c.skipUnknown = true }
}
