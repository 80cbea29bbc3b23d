// Package lexbridge resolves short phrases between languages using layered
// phrase tables, with an optional remote provider as a late fallback.
//
// Resolution runs an ordered chain of strategies (same language, exact
// table hit, longest-phrase override, word-by-word, reverse table, external
// provider) and always produces a result: when nothing matches, the input
// comes back unchanged with a low confidence. Results can be remembered in a
// bounded, persisted cache (see the cache package) so they stay available
// when no provider is reachable.
//
// Basic usage:
//
//	import (
//	    "context"
//	    "github.com/ZaguanLabs/lexbridge"
//	    "github.com/ZaguanLabs/lexbridge/cache"
//	    "github.com/ZaguanLabs/lexbridge/phrasebook"
//	)
//
//	func main() {
//	    tables, err := phrasebook.Default()
//	    if err != nil {
//	        log.Fatal(err)
//	    }
//
//	    // Loading is best-effort; a missing or corrupt file starts empty.
//	    results := cache.Open(ctx, 1000, cache.NewFileStore("cache.json"))
//	    defer results.Close()
//
//	    t := lexbridge.NewTranslator(lexbridge.NewResolver(tables),
//	        lexbridge.WithCache(results),
//	    )
//
//	    r, err := t.Translate(ctx, lexbridge.Request{Text: "hello", From: "english", To: "swahili"})
//	    if err != nil {
//	        log.Fatal(err)
//	    }
//	    fmt.Println(r.TranslatedText) // hujambo
//	}
package lexbridge
