package feed

import (
	"context"
	"strconv"
	"sync"
	"sync/atomic"

	"github.com/pkg/errors"
	"github.com/souhailmerroun/memefeed/api"
	"github.com/souhailmerroun/memefeed/model"
	"golang.org/x/sync/singleflight"
)

// InitialPage is the 1-based index of the first feed page.
const InitialPage = 1

/*

Paginator owns the ordered page sequence of the feed.

It is the only appender of new pages; in-place patches go through Patch. The
sequence is replaced wholesale on every write, so readers holding a snapshot
never observe a partially updated sequence.

Concurrent LoadPage calls for the same index share one in-flight fetch
through singleflight. Completed flights are forgotten, so a failed load never
pins a page in a loading or failed state; callers simply retry.

*/
type Paginator struct {
	api      api.Client
	enricher *Enricher

	flight  singleflight.Group
	loading atomic.Int32

	mu    sync.RWMutex
	pages []*model.Page
}

func NewPaginator(client api.Client, enricher *Enricher) *Paginator {
	return &Paginator{api: client, enricher: enricher}
}

// LoadPage fetches, enriches and appends page n (1-based). A page already
// loaded is returned from the cache without network.
func (p *Paginator) LoadPage(ctx context.Context, token string, n int) (*model.Page, error) {
	if n < InitialPage {
		return nil, errors.Errorf("page index must be >= %d, got %d", InitialPage, n)
	}
	if page, ok := p.cached(n); ok {
		return page, nil
	}

	result, err, _ := p.flight.Do(strconv.Itoa(n), func() (interface{}, error) {
		// re-check: the page may have landed while this call was queued
		if page, ok := p.cached(n); ok {
			return page, nil
		}

		p.loading.Add(1)
		defer p.loading.Add(-1)

		page, err := p.fetchPage(ctx, token, n)
		if err != nil {
			return nil, err
		}
		p.append(n, page)
		return page, nil
	})
	if err != nil {
		return nil, err
	}
	return result.(*model.Page), nil
}

func (p *Paginator) fetchPage(ctx context.Context, token string, n int) (*model.Page, error) {
	listing, err := p.api.GetMemes(ctx, token, n)
	if err != nil {
		return nil, errors.Wrapf(err, "fetch meme page %d", n)
	}

	memes, err := p.enricher.EnrichPage(ctx, token, listing)
	if err != nil {
		return nil, errors.Wrapf(err, "enrich meme page %d", n)
	}

	return &model.Page{
		Results: memes,
		// derived strictly from server totals; the client only ever holds
		// a prefix of the true feed
		HasMore: listing.Total > n*listing.PageSize,
	}, nil
}

// NextPageParam returns the index of the next page to load, or false when
// pagination is exhausted. Exhaustion is terminal, not an error.
func (p *Paginator) NextPageParam() (int, bool) {
	p.mu.RLock()
	defer p.mu.RUnlock()
	if len(p.pages) == 0 {
		return InitialPage, true
	}
	if !p.pages[len(p.pages)-1].HasMore {
		return 0, false
	}
	return len(p.pages) + 1, true
}

// IsLoading reports whether any page fetch is currently in flight.
func (p *Paginator) IsLoading() bool {
	return p.loading.Load() > 0
}

// Pages returns the current page sequence. The sequence is immutable once
// handed out; writers always install a fresh slice.
func (p *Paginator) Pages() []*model.Page {
	p.mu.RLock()
	defer p.mu.RUnlock()
	return p.pages
}

// Flatten returns the logical feed: every loaded meme in fetch order.
func (p *Paginator) Flatten() []*model.Meme {
	pages := p.Pages()

	var memes []*model.Meme
	for _, page := range pages {
		memes = append(memes, page.Results...)
	}
	return memes
}

// Patch atomically replaces the page sequence with fn's result. fn must be
// pure: it receives the current sequence and returns the one to install.
// Patches compose with concurrent appends since both are full replacements
// under the same lock.
func (p *Paginator) Patch(fn func([]*model.Page) []*model.Page) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.pages = fn(p.pages)
}

func (p *Paginator) cached(n int) (*model.Page, bool) {
	p.mu.RLock()
	defer p.mu.RUnlock()
	if n <= len(p.pages) {
		return p.pages[n-1], true
	}
	return nil, false
}

// append installs page n at the tail. Pages arrive in strictly increasing
// order in normal operation; anything out of sequence is dropped rather than
// leaving a hole.
func (p *Paginator) append(n int, page *model.Page) {
	p.mu.Lock()
	defer p.mu.Unlock()
	if n != len(p.pages)+1 {
		return
	}

	next := make([]*model.Page, len(p.pages), len(p.pages)+1)
	copy(next, p.pages)
	p.pages = append(next, page)
}
