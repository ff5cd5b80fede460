package domloc

import "log/slog"

// config collects everything the engine, resolver, and watcher can be tuned
// with. A single option family configures all three because they are built
// together by Start.
type config struct {
	dict      Dictionary
	source    Source
	resolver  TextResolver
	cache     Cache
	matchers  []Matcher
	logger    *slog.Logger
	locale    string
	selectors []string
	excluded  []string
	attrs     []string
	stampLang bool
	enabled   bool
}

func newConfig(opts ...Option) *config {
	cfg := &config{
		matchers:  DefaultMatchers(),
		logger:    slog.New(slog.DiscardHandler),
		excluded:  DefaultExcludedTags,
		attrs:     DefaultAttributes,
		stampLang: true,
		enabled:   true,
	}
	for _, opt := range opts {
		opt(cfg)
	}
	return cfg
}

// Option is a functional option for configuring the engine.
type Option func(*config)

// WithDictionary sets the dictionary directly. A nil or empty dictionary
// leaves the engine in pass-through mode.
func WithDictionary(d Dictionary) Option {
	return func(c *config) {
		c.dict = d
	}
}

// WithSource sets where Start loads the dictionary from when none was given
// directly.
func WithSource(s Source) Option {
	return func(c *config) {
		c.source = s
	}
}

// WithResolver replaces the built-in dictionary resolver.
func WithResolver(r TextResolver) Option {
	return func(c *config) {
		c.resolver = r
	}
}

// WithCache sets the resolution cache.
func WithCache(cache Cache) Option {
	return func(c *config) {
		c.cache = cache
	}
}

// WithMatchers replaces the template matcher set. Order is priority order.
func WithMatchers(matchers ...Matcher) Option {
	return func(c *config) {
		c.matchers = matchers
	}
}

// WithLogger sets the structured logger. The default discards everything.
func WithLogger(logger *slog.Logger) Option {
	return func(c *config) {
		if logger != nil {
			c.logger = logger
		}
	}
}

// WithLocale sets the target locale used for cache keys and the lang/dir
// stamp on the root element.
func WithLocale(code string) Option {
	return func(c *config) {
		c.locale = NormalizeLocale(code)
	}
}

// WithImportantSelectors sets the CSS selectors translated unconditionally
// at the start of every page pass, ahead of the gated tree walk.
func WithImportantSelectors(selectors ...string) Option {
	return func(c *config) {
		c.selectors = selectors
	}
}

// WithExcludedTags replaces the set of tags whose subtrees are skipped.
func WithExcludedTags(tags ...string) Option {
	return func(c *config) {
		c.excluded = tags
	}
}

// WithAttributes replaces the set of attribute names whose values are
// translated.
func WithAttributes(names ...string) Option {
	return func(c *config) {
		c.attrs = names
	}
}

// WithoutLangStamp disables writing lang and dir onto the root element after
// a page pass.
func WithoutLangStamp() Option {
	return func(c *config) {
		c.stampLang = false
	}
}

// WithDisabled starts the engine disabled. A disabled engine ignores page
// passes and mutation batches until SetEnabled(true).
func WithDisabled() Option {
	return func(c *config) {
		c.enabled = false
	}
}
