package lexbridge

import "context"

// BatchResult pairs a request with its outcome. Exactly one of Result and
// Err is set.
type BatchResult struct {
	Request Request
	Result  *ResolutionResult
	Err     error
}

// BatchStats summarises a TranslateBatch run.
type BatchStats struct {
	Total      int
	Unique     int
	Invalid    int
	Unresolved int
}

// TranslateBatch resolves requests one after another. Requests sharing a
// cache key are resolved once and the result is reused. Results are
// returned in request order.
func (t *Translator) TranslateBatch(ctx context.Context, reqs []Request) ([]BatchResult, BatchStats) {
	results := make([]BatchResult, len(reqs))
	stats := BatchStats{Total: len(reqs)}
	seen := make(map[string]*ResolutionResult)

	for i, req := range reqs {
		results[i].Request = req

		if err := ctx.Err(); err != nil {
			results[i].Err = err
			continue
		}

		text, from, to, err := t.normalize(req)
		if err != nil {
			results[i].Err = err
			stats.Invalid++
			continue
		}

		key := CacheKey(from, to, text)
		if prev, ok := seen[key]; ok {
			r := *prev
			results[i].Result = &r
			continue
		}

		// Already normalised, so from is never "auto" here.
		res, err := t.Translate(ctx, Request{Text: text, From: from, To: to})
		if err != nil {
			results[i].Err = err
			stats.Invalid++
			continue
		}

		stats.Unique++
		if res.Method == MethodUnresolved {
			stats.Unresolved++
		}
		seen[key] = res
		r := *res
		results[i].Result = &r
	}

	return results, stats
}
