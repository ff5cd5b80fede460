package domloc

import "log/slog"

// Resolver resolves source strings against a dictionary, trying template
// shapes before the verbatim entry and remembering outcomes in the cache.
// It is the single context object for text lookup: dictionary, cache, and
// matcher set live here. Resolver is safe for concurrent use when its cache
// is.
type Resolver struct {
	dict     Dictionary
	cache    Cache
	matchers []Matcher
	locale   string
	logger   *slog.Logger
}

// NewResolver creates a Resolver for the given dictionary.
func NewResolver(dict Dictionary, opts ...Option) *Resolver {
	cfg := newConfig(opts...)
	return &Resolver{
		dict:     dict,
		cache:    cfg.cache,
		matchers: cfg.matchers,
		locale:   cfg.locale,
		logger:   cfg.logger,
	}
}

// Translate resolves text to its display form. Unknown strings and every
// failure mode pass the input through unchanged; Translate never errors.
// The result for a given input is stable, and translating an output again
// returns it unchanged.
func (r *Resolver) Translate(text string) string {
	if r == nil || len(r.dict) == 0 || text == "" {
		return text
	}

	key := CacheKey(HashText(text), r.locale)
	if r.cache != nil {
		if res, ok := r.cache.Get(key); ok {
			if !res.Found {
				return text
			}
			return res.Text
		}
	}

	out, found := r.resolve(text)
	if r.cache != nil {
		// Negative outcomes are cached too: most page text has no entry and
		// should not hit the matchers on every mutation.
		_ = r.cache.Set(key, Resolution{Text: out, Found: found})
	}
	if found {
		r.logger.Debug("translated", "source", text, "result", out)
	}
	return out
}

// resolve runs the template matchers and then the verbatim lookup.
func (r *Resolver) resolve(text string) (string, bool) {
	for _, m := range r.matchers {
		tm, ok := m.Match(text)
		if !ok {
			continue
		}
		value, ok := r.dict[m.Key(tm)]
		if !ok {
			// Loose shapes match plenty of ordinary text; only a dictionary
			// entry for the generalized key makes the match real.
			continue
		}
		return m.Expand(value, tm), true
	}

	if value, ok := r.dict[text]; ok {
		return value, true
	}
	return text, false
}

// Verify Resolver implements TextResolver
var _ TextResolver = (*Resolver)(nil)
