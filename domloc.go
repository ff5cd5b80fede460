// Package domloc provides a dictionary-driven localization engine for live
// HTML documents.
//
// Domloc rewrites visible text in place as a document mutates: an initial
// page pass covers everything already present, and a change watcher picks up
// inserted subtrees and edited text afterwards. Lookups run against a static
// dictionary with template support ("Welcome, {displayName}!") and an
// expiring resolution cache in front.
//
// Basic usage:
//
//	import (
//	    "context"
//	    "github.com/ZaguanLabs/domloc"
//	    "github.com/ZaguanLabs/domloc/cache"
//	    "github.com/ZaguanLabs/domloc/dict"
//	    "github.com/ZaguanLabs/domloc/dom"
//	)
//
//	func main() {
//	    doc, _ := dom.ParseString(page)
//
//	    engine, watcher, err := domloc.Start(context.Background(), doc,
//	        domloc.WithSource(dict.FileSource{Path: "uk_UA.json"}),
//	        domloc.WithLocale("uk_UA"),
//	        domloc.WithCache(cache.NewMemory[domloc.Resolution](cache.DefaultTTL)),
//	        domloc.WithImportantSelectors("#nav", ".page-title"),
//	    )
//	    if err != nil {
//	        log.Fatal(err)
//	    }
//	    defer watcher.Stop()
//
//	    // The host keeps mutating the document...
//	    doc.AppendHTML(doc.Body(), `<div class="toast">Saved!</div>`)
//	    doc.Flush() // ...and every flush re-localizes what changed.
//
//	    _ = engine
//	}
package domloc
