package domloc

import (
	"context"
	"errors"
	"testing"

	"golang.org/x/net/html"

	"github.com/ZaguanLabs/domloc/dom"
)

func startLocalizer(t *testing.T, markup string, opts ...Option) (*dom.Document, *Engine, *Watcher) {
	t.Helper()
	doc := mustDoc(t, markup)
	opts = append([]Option{WithDictionary(testDict), WithoutLangStamp()}, opts...)
	engine, watcher, err := Start(context.Background(), doc, opts...)
	if err != nil {
		t.Fatalf("Start failed: %v", err)
	}
	return doc, engine, watcher
}

func TestWatcher_TranslatesInsertedSubtree(t *testing.T) {
	doc, _, _ := startLocalizer(t, `<body><div id="root"></div></body>`)

	root := doc.Find("#root")[0]
	if _, err := doc.AppendHTML(root, `<section><ul><li class="greet">Welcome, Olena!</li><li>Sign out</li></ul></section>`); err != nil {
		t.Fatalf("AppendHTML failed: %v", err)
	}
	doc.Flush()

	if got := firstText(t, doc, ".greet"); got != "Вітаємо, Olena!" {
		t.Errorf(".greet = %q, want the nested insert translated", got)
	}
	if got := dom.Text(doc.Find("li")[1]); got != "Вийти" {
		t.Errorf("second li = %q, want 'Вийти'", got)
	}
}

func TestWatcher_IgnoresExcludedInsertions(t *testing.T) {
	doc, _, _ := startLocalizer(t, `<body><div id="root"></div></body>`)

	root := doc.Find("#root")[0]
	if _, err := doc.AppendHTML(root, `<script>var label = "Sign out";</script><p>Sign out</p>`); err != nil {
		t.Fatalf("AppendHTML failed: %v", err)
	}
	doc.Flush()

	if got := firstText(t, doc, "script"); got != `var label = "Sign out";` {
		t.Errorf("script = %q, want untouched", got)
	}
	if got := firstText(t, doc, "#root p"); got != "Вийти" {
		t.Errorf("p = %q, want translated", got)
	}
}

func TestWatcher_RetranslatesEditedText(t *testing.T) {
	doc, _, _ := startLocalizer(t, `<body><p id="status">Sign out</p></body>`)

	if got := firstText(t, doc, "#status"); got != "Вийти" {
		t.Fatalf("Initial pass produced %q", got)
	}

	// The host swaps in a new source string. The parent element is already
	// processed; the character-data path must retranslate it anyway.
	status := doc.Find("#status")[0]
	doc.SetText(status.FirstChild, "Settings")
	doc.Flush()

	if got := firstText(t, doc, "#status"); got != "Налаштування" {
		t.Errorf("#status = %q, want 'Налаштування'", got)
	}
}

func TestWatcher_SettlesAfterOwnRewrites(t *testing.T) {
	doc, _, _ := startLocalizer(t, `<body><p id="status">x</p></body>`)

	status := doc.Find("#status")[0]
	doc.SetText(status.FirstChild, "Sign out")
	rounds := doc.Flush()

	// Batch one carries the host edit, batch two the engine's own rewrite,
	// which resolves to itself and stops the cycle.
	if rounds != 2 {
		t.Errorf("Flush rounds = %d, want 2", rounds)
	}

	before, _ := doc.Html()
	if doc.Flush() != 0 {
		t.Error("Expected a quiescent document")
	}
	after, _ := doc.Html()
	if before != after {
		t.Error("Expected the document to be stable across flushes")
	}
}

func TestWatcher_TemplateInLiveMutation(t *testing.T) {
	doc, _, _ := startLocalizer(t, `<body><div id="root"></div></body>`)

	root := doc.Find("#root")[0]
	if _, err := doc.AppendHTML(root, `<span class="hello">Welcome, Taras!</span>`); err != nil {
		t.Fatalf("AppendHTML failed: %v", err)
	}
	doc.Flush()

	if got := firstText(t, doc, ".hello"); got != "Вітаємо, Taras!" {
		t.Errorf(".hello = %q", got)
	}
}

func TestWatcher_DisabledEngineIgnoresMutations(t *testing.T) {
	doc, engine, _ := startLocalizer(t, `<body><div id="root"></div></body>`)

	engine.SetEnabled(false)
	root := doc.Find("#root")[0]
	doc.AppendHTML(root, `<p id="a">Sign out</p>`)
	doc.Flush()

	if got := firstText(t, doc, "#a"); got != "Sign out" {
		t.Errorf("#a = %q, want untouched while disabled", got)
	}

	// Enabling does not replay missed batches; only new mutations are seen.
	engine.SetEnabled(true)
	doc.AppendHTML(root, `<p id="b">Sign out</p>`)
	doc.Flush()

	if got := firstText(t, doc, "#a"); got != "Sign out" {
		t.Errorf("#a = %q, want still untouched", got)
	}
	if got := firstText(t, doc, "#b"); got != "Вийти" {
		t.Errorf("#b = %q, want translated after enabling", got)
	}
}

func TestWatcher_StopAndRestart(t *testing.T) {
	doc, _, watcher := startLocalizer(t, `<body><div id="root"></div></body>`)

	watcher.Stop()
	if watcher.Running() {
		t.Error("Expected the watcher to be stopped")
	}

	root := doc.Find("#root")[0]
	doc.AppendHTML(root, `<p id="a">Sign out</p>`)
	doc.Flush()
	if got := firstText(t, doc, "#a"); got != "Sign out" {
		t.Errorf("#a = %q, want untouched after Stop", got)
	}

	if err := watcher.Start(); err != nil {
		t.Fatalf("Restart failed: %v", err)
	}
	doc.AppendHTML(root, `<p id="b">Sign out</p>`)
	doc.Flush()
	if got := firstText(t, doc, "#b"); got != "Вийти" {
		t.Errorf("#b = %q, want translated after restart", got)
	}
}

func TestWatcher_TextNodeInsertsHandledViaParent(t *testing.T) {
	doc, _, _ := startLocalizer(t, `<body><p id="p"></p></body>`)

	// Appending a bare text node produces a childList record whose added
	// node is not an element; the engine must not choke on it.
	p := doc.Find("#p")[0]
	doc.AppendChild(p, &html.Node{Type: html.TextNode, Data: "Sign out"})
	doc.Flush()

	if got := firstText(t, doc, "#p"); got != "Sign out" {
		t.Errorf("#p = %q, a bare text insert carries no element to process", got)
	}

	// A later data edit reaches it through the character-data path.
	doc.SetText(p.FirstChild, "Settings")
	doc.Flush()
	if got := firstText(t, doc, "#p"); got != "Налаштування" {
		t.Errorf("#p = %q, want 'Налаштування'", got)
	}
}

func TestStart_ErrorsWithoutDocument(t *testing.T) {
	_, _, err := Start(context.Background(), nil, WithDictionary(testDict))

	var initErr *InitError
	if !errors.As(err, &initErr) {
		t.Fatalf("Expected an InitError, got %v", err)
	}
}

func TestStart_ErrorsWithoutBody(t *testing.T) {
	doc := dom.FromNode(&html.Node{Type: html.DocumentNode})

	_, _, err := Start(context.Background(), doc, WithDictionary(testDict))
	var initErr *InitError
	if !errors.As(err, &initErr) {
		t.Fatalf("Expected an InitError, got %v", err)
	}
}

type failingSource struct{}

func (failingSource) Load(ctx context.Context) (Dictionary, error) {
	return nil, &DictionaryError{Source: "test", Cause: errors.New("boom")}
}

type staticSource Dictionary

func (s staticSource) Load(ctx context.Context) (Dictionary, error) {
	return Dictionary(s), nil
}

func TestStart_LoadFailureMeansPassThrough(t *testing.T) {
	doc := mustDoc(t, `<body><p>Sign out</p></body>`)

	engine, watcher, err := Start(context.Background(), doc, WithSource(failingSource{}), WithoutLangStamp())
	if err != nil {
		t.Fatalf("Start must not fail on a dictionary load error, got %v", err)
	}
	if engine == nil || watcher == nil {
		t.Fatal("Expected the engine and watcher to be attached")
	}

	if got := firstText(t, doc, "p"); got != "Sign out" {
		t.Errorf("p = %q, want pass-through without a dictionary", got)
	}

	// The page keeps reacting to mutations, just without translations.
	doc.AppendHTML(doc.Body(), `<span>Settings</span>`)
	doc.Flush()
	if got := firstText(t, doc, "span"); got != "Settings" {
		t.Errorf("span = %q, want pass-through", got)
	}
}

func TestStart_LoadsDictionaryFromSource(t *testing.T) {
	doc := mustDoc(t, `<body><p>Sign out</p></body>`)

	_, _, err := Start(context.Background(), doc,
		WithSource(staticSource{"Sign out": "Вийти"}),
		WithoutLangStamp())
	if err != nil {
		t.Fatalf("Start failed: %v", err)
	}

	if got := firstText(t, doc, "p"); got != "Вийти" {
		t.Errorf("p = %q, want translated from the loaded dictionary", got)
	}
}

func TestStart_DirectDictionaryBeatsSource(t *testing.T) {
	doc := mustDoc(t, `<body><p>Sign out</p></body>`)

	_, _, err := Start(context.Background(), doc,
		WithDictionary(Dictionary{"Sign out": "Direct"}),
		WithSource(staticSource{"Sign out": "FromSource"}),
		WithoutLangStamp())
	if err != nil {
		t.Fatalf("Start failed: %v", err)
	}

	if got := firstText(t, doc, "p"); got != "Direct" {
		t.Errorf("p = %q, want the direct dictionary to win", got)
	}
}
