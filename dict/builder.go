package dict

import (
	"context"
	"log/slog"
	"strings"
	"sync"

	"github.com/ZaguanLabs/domloc"
)

// Builder fills dictionaries by sending source strings to a translation
// provider in parallel batches.
type Builder struct {
	target   string
	provider domloc.Provider

	source    string
	batchSize int
	workers   int
	context   string
	excluded  []string
	logger    *slog.Logger
}

// BuilderOption configures a Builder.
type BuilderOption func(*Builder)

// WithBatchSize sets how many strings are sent per provider call (default 50).
func WithBatchSize(n int) BuilderOption {
	return func(b *Builder) {
		if n > 0 {
			b.batchSize = n
		}
	}
}

// WithWorkers sets how many provider calls run concurrently (default 4).
func WithWorkers(n int) BuilderOption {
	return func(b *Builder) {
		if n > 0 {
			b.workers = n
		}
	}
}

// WithSourceLocale sets the source language (default "en").
func WithSourceLocale(locale string) BuilderOption {
	return func(b *Builder) { b.source = locale }
}

// WithContextHint passes site or page context to the provider for
// disambiguation.
func WithContextHint(hint string) BuilderOption {
	return func(b *Builder) { b.context = hint }
}

// WithExcludedTerms sets terms the provider must keep verbatim, such as
// brand names. The template placeholder is always excluded.
func WithExcludedTerms(terms ...string) BuilderOption {
	return func(b *Builder) { b.excluded = terms }
}

// WithLogger sets the logger for build progress. Silent by default.
func WithLogger(logger *slog.Logger) BuilderOption {
	return func(b *Builder) {
		if logger != nil {
			b.logger = logger
		}
	}
}

// NewBuilder creates a Builder targeting the given locale.
func NewBuilder(target string, provider domloc.Provider, opts ...BuilderOption) *Builder {
	b := &Builder{
		target:    domloc.NormalizeLocale(target),
		provider:  provider,
		source:    "en",
		batchSize: 50,
		workers:   4,
		logger:    slog.New(slog.DiscardHandler),
	}

	for _, opt := range opts {
		opt(b)
	}

	return b
}

// Build translates the given lookup keys and returns them as a new
// dictionary. Keys are deduplicated, chunked, and fanned out over a bounded
// worker pool. Identity and empty translations are dropped: an entry whose
// value equals its key adds nothing and would only grow the file.
func (b *Builder) Build(ctx context.Context, keys []string) (Dictionary, error) {
	unique := dedupe(keys)
	if len(unique) == 0 {
		return Dictionary{}, nil
	}
	if b.provider == nil {
		return nil, &domloc.ProviderError{Message: "no provider configured"}
	}

	batches := chunk(unique, b.batchSize)

	b.logger.Debug("building dictionary",
		"keys", len(unique),
		"batches", len(batches),
		"target", b.target)

	type job struct {
		index int
		texts []string
	}
	type outcome struct {
		index      int
		translated []string
		err        error
	}

	jobs := make(chan job, len(batches))
	results := make(chan outcome, len(batches))

	workers := b.workers
	if workers > len(batches) {
		workers = len(batches)
	}

	var wg sync.WaitGroup
	for w := 0; w < workers; w++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for j := range jobs {
				translated, err := b.translateBatch(ctx, j.texts)
				results <- outcome{index: j.index, translated: translated, err: err}
			}
		}()
	}

	for i, batch := range batches {
		jobs <- job{index: i, texts: batch}
	}
	close(jobs)

	// Close results channel when all workers complete
	go func() {
		wg.Wait()
		close(results)
	}()

	collected := make([]outcome, 0, len(batches))
	for res := range results {
		collected = append(collected, res)
	}

	// Workers finish in any order; report the earliest failing batch so the
	// returned error is deterministic.
	var firstErr error
	firstIdx := len(batches)
	for _, res := range collected {
		if res.err != nil && res.index < firstIdx {
			firstErr, firstIdx = res.err, res.index
		}
	}
	if firstErr != nil {
		return nil, firstErr
	}

	d := make(Dictionary, len(unique))
	for _, res := range collected {
		for i, text := range batches[res.index] {
			if res.translated[i] == "" || res.translated[i] == text {
				continue
			}
			d[text] = res.translated[i]
		}
	}

	b.logger.Debug("dictionary built", "entries", len(d))
	return d, nil
}

// Update diffs existing against the lookup keys a set of pages needs, builds
// the missing entries, and returns the merged dictionary along with the
// number of entries added. Stale entries are kept: another page may still
// need them.
func (b *Builder) Update(ctx context.Context, existing Dictionary, texts []string) (Dictionary, int, error) {
	diff := Diff(existing, texts)

	merged := make(Dictionary, len(existing)+len(diff.Missing))
	for k, v := range existing {
		merged[k] = v
	}

	if diff.InSync() {
		return merged, 0, nil
	}

	built, err := b.Build(ctx, diff.Missing)
	if err != nil {
		return nil, 0, err
	}

	for k, v := range built {
		merged[k] = v
	}

	// A value that is itself another key keeps the engine rewriting its own
	// output; flag such entries for review.
	for _, key := range Conflicts(merged) {
		b.logger.Warn("dictionary value collides with another key", "key", key)
	}

	return merged, len(built), nil
}

func (b *Builder) translateBatch(ctx context.Context, texts []string) ([]string, error) {
	excluded := append([]string{domloc.PlaceholderToken}, b.excluded...)

	results, err := b.provider.Translate(ctx, domloc.TranslateRequest{
		Texts:         texts,
		SourceLocale:  b.source,
		TargetLocale:  b.target,
		Context:       b.context,
		ExcludedTerms: excluded,
	})
	if err != nil {
		return nil, err
	}
	if len(results) != len(texts) {
		return nil, &domloc.CountMismatchError{Expected: len(texts), Got: len(results)}
	}
	return results, nil
}

// dedupe removes duplicates and blank strings, preserving first-seen order.
func dedupe(keys []string) []string {
	seen := make(map[string]bool, len(keys))
	out := make([]string, 0, len(keys))
	for _, k := range keys {
		if strings.TrimSpace(k) == "" || seen[k] {
			continue
		}
		seen[k] = true
		out = append(out, k)
	}
	return out
}

// chunk splits keys into batches of at most size.
func chunk(keys []string, size int) [][]string {
	if size <= 0 {
		size = 1
	}

	var batches [][]string
	for start := 0; start < len(keys); start += size {
		end := start + size
		if end > len(keys) {
			end = len(keys)
		}
		batches = append(batches, keys[start:end])
	}
	return batches
}
