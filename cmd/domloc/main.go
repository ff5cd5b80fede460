// Command domloc translates HTML documents from a static dictionary, and
// builds the dictionaries it consumes.
package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"path/filepath"
	"strings"
	"syscall"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/joho/godotenv"

	"github.com/ZaguanLabs/domloc"
	"github.com/ZaguanLabs/domloc/cache"
	"github.com/ZaguanLabs/domloc/dict"
	"github.com/ZaguanLabs/domloc/dom"
	"github.com/ZaguanLabs/domloc/provider"
)

func main() {
	if err := run(os.Args[1:], os.Stdout, os.Stderr); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}

// settings carries the parsed flag values shared across modes.
type settings struct {
	lang        string
	selectors   []string
	excludeTags []string
	attrs       []string
	cacheTTL    time.Duration
	noStamp     bool
	quiet       bool
	logger      *slog.Logger
}

// engineOptions builds the option list once, so in watch mode the resolution
// cache created here carries across re-runs.
func (s settings) engineOptions(d domloc.Dictionary) []domloc.Option {
	opts := []domloc.Option{
		domloc.WithDictionary(d),
		domloc.WithLogger(s.logger),
	}
	if s.lang != "" {
		opts = append(opts, domloc.WithLocale(s.lang))
	}
	if len(s.selectors) > 0 {
		opts = append(opts, domloc.WithImportantSelectors(s.selectors...))
	}
	if len(s.excludeTags) > 0 {
		opts = append(opts, domloc.WithExcludedTags(s.excludeTags...))
	}
	if len(s.attrs) > 0 {
		opts = append(opts, domloc.WithAttributes(s.attrs...))
	}
	if s.cacheTTL > 0 {
		opts = append(opts, domloc.WithCache(cache.NewMemory[domloc.Resolution](s.cacheTTL)))
	}
	if s.noStamp {
		opts = append(opts, domloc.WithoutLangStamp())
	}
	return opts
}

func run(args []string, stdout, stderr io.Writer) error {
	// .env is optional; variables already in the environment win
	_ = godotenv.Load()

	fs := flag.NewFlagSet("domloc", flag.ContinueOnError)
	fs.SetOutput(stderr)

	// Translation flags
	dictPath := fs.String("dict", "", "Dictionary JSON file")
	dictURL := fs.String("dict-url", "", "Dictionary URL (fetched once)")
	lang := fs.String("lang", "", "Target locale (e.g., uk_UA); stamps lang/dir and keys the cache")
	output := fs.String("output", "", "Output file (default: stdout)")
	outputShort := fs.String("o", "", "Output file (short for --output)")
	selectors := fs.String("selectors", "", "Comma-separated selectors translated unconditionally first")
	excludeTags := fs.String("exclude-tags", "", "Comma-separated tags to skip (replaces the default set)")
	attrs := fs.String("attrs", "", "Comma-separated attributes to translate (replaces the default set)")
	cacheTTL := fs.Duration("cache-ttl", cache.DefaultTTL, "Resolution cache TTL (0 disables the cache)")
	noStamp := fs.Bool("no-lang-stamp", false, "Do not write lang/dir onto the root element")

	// Modes
	extract := fs.Bool("extract", false, "List the dictionary keys the page needs instead of translating")
	watch := fs.Bool("watch", false, "Watch the input file and retranslate to -o on every change")
	buildDict := fs.Bool("build-dict", false, "Build a dictionary for -lang from the input pages")

	// Dictionary build flags
	update := fs.Bool("update", false, "With -build-dict: merge into the existing -dict, translating only missing keys")
	apiKey := fs.String("api-key", "", "OpenAI API key (default: OPENAI_API_KEY env)")
	model := fs.String("model", "gpt-4o-mini", "OpenAI model to use")
	sourceLang := fs.String("source", "en", "Source language code")
	contextHint := fs.String("context", "", "Translation context (e.g., 'E-commerce storefront')")
	excludeTerms := fs.String("exclude-terms", "", "Comma-separated terms the provider keeps verbatim")
	batchSize := fs.Int("batch-size", 50, "Strings per provider call")
	workers := fs.Int("workers", 4, "Concurrent provider calls")
	rpm := fs.Int("rpm", 60, "Provider requests per minute")

	// Output control
	jsonOutput := fs.Bool("json", false, "Output result as JSON")
	quiet := fs.Bool("quiet", false, "Suppress progress output")
	verbose := fs.Bool("verbose", false, "Log engine activity to stderr")
	showVersion := fs.Bool("version", false, "Show version")

	if err := fs.Parse(args); err != nil {
		return err
	}

	if *showVersion {
		fmt.Fprintf(stdout, "%s %s\n", domloc.Name, domloc.FullVersion())
		if domloc.BuildDate != "unknown" && domloc.BuildDate != "" {
			fmt.Fprintf(stdout, "  built: %s\n", domloc.BuildDate)
		}
		return nil
	}

	// Handle -o alias for --output
	if *outputShort != "" && *output == "" {
		*output = *outputShort
	}

	// Flag defaults can come from the environment, .env included
	if *dictPath == "" && *dictURL == "" {
		*dictPath = os.Getenv("DOMLOC_DICT")
	}
	if *lang == "" {
		*lang = os.Getenv("DOMLOC_LANG")
	}

	if *lang != "" && !domloc.ValidLocale(*lang) {
		return fmt.Errorf("invalid locale %q", *lang)
	}

	logger := slog.New(slog.DiscardHandler)
	if *verbose {
		logger = slog.New(slog.NewTextHandler(stderr, &slog.HandlerOptions{Level: slog.LevelDebug}))
	}

	s := settings{
		lang:        *lang,
		selectors:   splitList(*selectors),
		excludeTags: splitList(*excludeTags),
		attrs:       splitList(*attrs),
		cacheTTL:    *cacheTTL,
		noStamp:     *noStamp,
		quiet:       *quiet,
		logger:      logger,
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if *buildDict {
		return runBuildDict(ctx, fs.Args(), buildSettings{
			settings:     s,
			dictPath:     *dictPath,
			output:       *output,
			apiKey:       *apiKey,
			model:        *model,
			source:       *sourceLang,
			contextHint:  *contextHint,
			excludeTerms: splitList(*excludeTerms),
			batchSize:    *batchSize,
			workers:      *workers,
			rpm:          *rpm,
			update:       *update,
		}, stdout, stderr)
	}

	if *extract {
		input, inputName, err := readInput(fs)
		if err != nil {
			return err
		}
		return runExtract(input, inputName, *jsonOutput, s, stdout)
	}

	// Translating needs a dictionary; unlike the embedded engine the CLI
	// refuses to run in pass-through mode.
	d, err := loadDictionary(ctx, *dictPath, *dictURL)
	if err != nil {
		return err
	}

	if *watch {
		if fs.NArg() == 0 {
			return fmt.Errorf("-watch requires an input file")
		}
		if *output == "" {
			return fmt.Errorf("-watch requires -o")
		}
		return runWatch(ctx, fs.Arg(0), *output, d, s, stderr)
	}

	input, inputName, err := readInput(fs)
	if err != nil {
		return err
	}

	if !s.quiet {
		fmt.Fprintf(stderr, "Translating %s with %d dictionary entries...\n", inputName, len(d))
	}

	start := time.Now()
	result, stats, err := translateOnce(input, s.engineOptions(d))
	if err != nil {
		return err
	}
	elapsed := time.Since(start)

	out := stdout
	if *output != "" {
		f, err := os.Create(*output)
		if err != nil {
			return fmt.Errorf("creating output file: %w", err)
		}
		defer f.Close()
		out = f
	}

	if *jsonOutput {
		return outputJSON(out, result, stats, elapsed)
	}

	fmt.Fprint(out, result)

	if !s.quiet {
		fmt.Fprintf(stderr, "\nDone in %v\n", elapsed.Round(time.Millisecond))
		fmt.Fprintf(stderr, "  Important:  %d\n", stats.Important)
		fmt.Fprintf(stderr, "  Visited:    %d\n", stats.Visited)
		fmt.Fprintf(stderr, "  Rewritten:  %d\n", stats.Rewritten)
	}

	return nil
}

// translateOnce runs a single page pass over input and serializes the result.
func translateOnce(input string, opts []domloc.Option) (string, domloc.Stats, error) {
	doc, err := dom.ParseString(input)
	if err != nil {
		return "", domloc.Stats{}, fmt.Errorf("parsing HTML: %w", err)
	}

	engine := domloc.NewEngine(doc, opts...)
	stats := engine.ProcessPage()

	out, err := doc.Html()
	if err != nil {
		return "", stats, fmt.Errorf("serializing HTML: %w", err)
	}
	return out, stats, nil
}

// runExtract lists the dictionary keys a page needs.
func runExtract(input, inputName string, jsonOut bool, s settings, stdout io.Writer) error {
	doc, err := dom.ParseString(input)
	if err != nil {
		return fmt.Errorf("parsing HTML: %w", err)
	}

	keys := domloc.ExtractKeys(doc, s.engineOptions(nil)...)

	if jsonOut {
		type extractOutput struct {
			InputFile string   `json:"input_file"`
			KeyCount  int      `json:"key_count"`
			Keys      []string `json:"keys"`
		}

		enc := json.NewEncoder(stdout)
		enc.SetIndent("", "  ")
		return enc.Encode(extractOutput{
			InputFile: inputName,
			KeyCount:  len(keys),
			Keys:      keys,
		})
	}

	fmt.Fprintf(stdout, "Found %d translatable strings in %s:\n\n", len(keys), inputName)
	for i, key := range keys {
		if len(key) > 60 {
			key = key[:57] + "..."
		}
		fmt.Fprintf(stdout, "%3d. %q\n", i+1, key)
	}

	return nil
}

// buildSettings carries the flags for -build-dict.
type buildSettings struct {
	settings
	dictPath     string
	output       string
	apiKey       string
	model        string
	source       string
	contextHint  string
	excludeTerms []string
	batchSize    int
	workers      int
	rpm          int
	update       bool
}

// runBuildDict extracts the keys the input pages need and fills a dictionary
// through the OpenAI provider.
func runBuildDict(ctx context.Context, paths []string, b buildSettings, stdout, stderr io.Writer) error {
	if b.lang == "" {
		return fmt.Errorf("-build-dict requires -lang")
	}

	key := b.apiKey
	if key == "" {
		key = os.Getenv("OPENAI_API_KEY")
	}
	if key == "" {
		return fmt.Errorf("OpenAI API key required (-api-key or OPENAI_API_KEY env)")
	}

	// Collect the keys every input page needs
	var texts []string
	if len(paths) == 0 {
		data, err := io.ReadAll(os.Stdin)
		if err != nil {
			return fmt.Errorf("reading stdin: %w", err)
		}
		keys, err := extractKeys(string(data), b.settings)
		if err != nil {
			return err
		}
		texts = keys
	} else {
		for _, path := range paths {
			data, err := os.ReadFile(path) // #nosec G304 - CLI tool reads user-specified files
			if err != nil {
				return fmt.Errorf("reading %s: %w", path, err)
			}
			keys, err := extractKeys(string(data), b.settings)
			if err != nil {
				return fmt.Errorf("%s: %w", path, err)
			}
			texts = append(texts, keys...)
		}
	}

	// OpenAI behind retry and a rate limit
	var p provider.Provider = provider.NewOpenAI(provider.OpenAIConfig{
		APIKey: key,
		Model:  b.model,
	})
	p = provider.NewRetryable(p, provider.DefaultRetryConfig())
	p = provider.NewRateLimited(p, provider.RateLimitConfig{RequestsPerMinute: b.rpm})

	builder := dict.NewBuilder(b.lang, p,
		dict.WithSourceLocale(b.source),
		dict.WithContextHint(b.contextHint),
		dict.WithExcludedTerms(b.excludeTerms...),
		dict.WithBatchSize(b.batchSize),
		dict.WithWorkers(b.workers),
		dict.WithLogger(b.logger),
	)

	var (
		result dict.Dictionary
		added  int
	)

	if b.update {
		if b.dictPath == "" {
			return fmt.Errorf("-update requires -dict")
		}
		existing, err := dict.LoadFile(b.dictPath)
		if err != nil {
			return err
		}
		result, added, err = builder.Update(ctx, existing, texts)
		if err != nil {
			return err
		}
	} else {
		built, err := builder.Build(ctx, texts)
		if err != nil {
			return err
		}
		result, added = built, len(built)
	}

	// Write to -o; in update mode default to rewriting -dict in place
	target := b.output
	if target == "" && b.update {
		target = b.dictPath
	}

	if target != "" {
		if err := dict.SaveFile(target, result); err != nil {
			return err
		}
	} else if err := dict.Save(stdout, result); err != nil {
		return err
	}

	if !b.quiet {
		fmt.Fprintf(stderr, "Dictionary: %d entries (%d added)\n", len(result), added)
		for _, k := range dict.Conflicts(result) {
			fmt.Fprintf(stderr, "  warning: value of %q collides with another key\n", k)
		}
	}

	return nil
}

// runWatch retranslates inputPath to outputPath on every write. The parent
// directory is watched because editors replace files by rename, which drops
// a watch held on the file itself.
func runWatch(ctx context.Context, inputPath, outputPath string, d domloc.Dictionary, s settings, stderr io.Writer) error {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("starting watcher: %w", err)
	}
	defer watcher.Close()

	dir := filepath.Dir(inputPath)
	if err := watcher.Add(dir); err != nil {
		return fmt.Errorf("watching %s: %w", dir, err)
	}

	opts := s.engineOptions(d)

	retranslate := func() {
		data, err := os.ReadFile(inputPath) // #nosec G304 - CLI tool reads user-specified files
		if err != nil {
			fmt.Fprintf(stderr, "read failed: %v\n", err)
			return
		}
		result, stats, err := translateOnce(string(data), opts)
		if err != nil {
			fmt.Fprintf(stderr, "translate failed: %v\n", err)
			return
		}
		if err := os.WriteFile(outputPath, []byte(result), 0o644); err != nil { // #nosec G306 - rendered page, world readable
			fmt.Fprintf(stderr, "write failed: %v\n", err)
			return
		}
		if !s.quiet {
			fmt.Fprintf(stderr, "%s -> %s (%d rewrites)\n", inputPath, outputPath, stats.Rewritten)
		}
	}

	// Initial pass, then follow changes
	retranslate()

	base := filepath.Base(inputPath)
	var debounce *time.Timer
	const debounceDelay = 100 * time.Millisecond

	for {
		select {
		case <-ctx.Done():
			return nil
		case event, ok := <-watcher.Events:
			if !ok {
				return nil
			}
			if filepath.Base(event.Name) != base {
				continue
			}
			if event.Op&(fsnotify.Write|fsnotify.Create|fsnotify.Rename) == 0 {
				continue
			}
			if debounce != nil {
				debounce.Stop()
			}
			debounce = time.AfterFunc(debounceDelay, retranslate)
		case werr, ok := <-watcher.Errors:
			if !ok {
				return nil
			}
			fmt.Fprintf(stderr, "watch error: %v\n", werr)
		}
	}
}

// extractKeys parses HTML and returns the lookup keys it needs.
func extractKeys(input string, s settings) ([]string, error) {
	doc, err := dom.ParseString(input)
	if err != nil {
		return nil, fmt.Errorf("parsing HTML: %w", err)
	}
	return domloc.ExtractKeys(doc, s.engineOptions(nil)...), nil
}

// loadDictionary resolves the dictionary flags to a loaded dictionary.
func loadDictionary(ctx context.Context, path, url string) (domloc.Dictionary, error) {
	switch {
	case path != "":
		return dict.LoadFile(path)
	case url != "":
		return dict.HTTPSource{URL: url}.Load(ctx)
	default:
		return nil, fmt.Errorf("a dictionary is required (-dict or -dict-url)")
	}
}

// readInput reads the positional input file, or stdin when none is given.
func readInput(fs *flag.FlagSet) (string, string, error) {
	if fs.NArg() == 0 {
		data, err := io.ReadAll(os.Stdin)
		if err != nil {
			return "", "", fmt.Errorf("reading stdin: %w", err)
		}
		return string(data), "stdin", nil
	}

	inputPath := fs.Arg(0)
	data, err := os.ReadFile(inputPath) // #nosec G304 - CLI tool reads user-specified files
	if err != nil {
		return "", "", fmt.Errorf("reading file: %w", err)
	}
	return string(data), filepath.Base(inputPath), nil
}

// JSONOutput is the -json result shape for translate mode.
type JSONOutput struct {
	Content   string `json:"content"`
	Important int    `json:"important"`
	Visited   int    `json:"visited"`
	Rewritten int    `json:"rewritten"`
	ElapsedMs int64  `json:"elapsed_ms"`
}

// outputJSON writes the translate result as JSON.
func outputJSON(w io.Writer, content string, stats domloc.Stats, elapsed time.Duration) error {
	out := JSONOutput{
		Content:   content,
		Important: stats.Important,
		Visited:   stats.Visited,
		Rewritten: stats.Rewritten,
		ElapsedMs: elapsed.Milliseconds(),
	}

	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(out)
}

// splitList splits a comma-separated flag value, dropping blanks.
func splitList(s string) []string {
	if s == "" {
		return nil
	}

	var out []string
	for _, part := range strings.Split(s, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}
