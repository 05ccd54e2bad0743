package feed

import (
	"context"

	lru "github.com/hashicorp/golang-lru/v2"
	"github.com/souhailmerroun/memefeed/api"
	"github.com/souhailmerroun/memefeed/model"
	"golang.org/x/sync/errgroup"
)

const (
	// Only the first comment page is eagerly loaded per meme; deeper pages
	// are the rendering layer's concern.
	firstCommentPage = 1

	// Bound on the per-session user memoization cache. Users are immutable
	// once fetched, so there is no staleness concern, only memory.
	userCacheSize = 512
)

/*

Enricher resolves the foreign keys of raw records into embedded objects.

For one meme the author and the first comment page are fetched concurrently,
then every comment's author is fetched concurrently across the whole comment
list. Results are always paired back by slice index, never by completion
order. Any nested failure fails the whole enrichment; no partially filled
meme is ever returned.

Resolved users are memoized in an LRU cache for the session, which
short-circuits duplicate fetches for prolific authors. The cache is an
optimization only; concurrent misses for the same id may both hit the
network.

*/
type Enricher struct {
	api   api.Client
	users *lru.Cache[string, *model.User]
}

func NewEnricher(client api.Client) *Enricher {
	// lru.New only fails on a non-positive size
	users, _ := lru.New[string, *model.User](userCacheSize)
	return &Enricher{api: client, users: users}
}

func (e *Enricher) userByID(ctx context.Context, token, id string) (*model.User, error) {
	if user, ok := e.users.Get(id); ok {
		return user, nil
	}

	user, err := e.api.GetUserByID(ctx, token, id)
	if err != nil {
		return nil, err
	}
	e.users.Add(id, user)
	return user, nil
}

// EnrichMeme resolves one raw meme into a renderable one.
func (e *Enricher) EnrichMeme(ctx context.Context, token string, raw model.RawMeme) (*model.Meme, error) {
	var (
		author  *model.User
		listing *model.CommentListing
	)

	// author and first comment page resolve in parallel; doing this
	// sequentially would double the end-to-end latency per meme
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		u, err := e.userByID(gctx, token, raw.AuthorID)
		if err != nil {
			return err
		}
		author = u
		return nil
	})
	g.Go(func() error {
		l, err := e.api.GetMemeComments(gctx, token, raw.Id, firstCommentPage)
		if err != nil {
			return err
		}
		listing = l
		return nil
	})
	if err := g.Wait(); err != nil {
		return nil, err
	}

	// fan out over all comments of the meme; each goroutine writes its own
	// index so completion order never matters
	comments := make([]model.Comment, len(listing.Results))
	cg, cctx := errgroup.WithContext(ctx)
	for i, comment := range listing.Results {
		i, comment := i, comment
		cg.Go(func() error {
			u, err := e.userByID(cctx, token, comment.AuthorID)
			if err != nil {
				return err
			}
			comment.Author = u
			comments[i] = comment
			return nil
		})
	}
	if err := cg.Wait(); err != nil {
		return nil, err
	}

	// the backend serves commentsCount as a number or a numeric string;
	// an unknown count falls back to the comment listing's reported total
	count := int(raw.CommentsCount)
	if count <= 0 {
		count = listing.Total
	}

	return &model.Meme{
		Id:            raw.Id,
		PictureUrl:    raw.PictureUrl,
		Description:   raw.Description,
		CreatedAt:     raw.CreatedAt,
		AuthorID:      raw.AuthorID,
		CommentsCount: count,
		Captions:      raw.Captions,
		Author:        author,
		Comments:      comments,
	}, nil
}

// EnrichPage resolves every meme of a raw listing concurrently, preserving
// the listing order in the result.
func (e *Enricher) EnrichPage(ctx context.Context, token string, listing *model.MemeListing) ([]*model.Meme, error) {
	memes := make([]*model.Meme, len(listing.Results))

	g, gctx := errgroup.WithContext(ctx)
	for i, raw := range listing.Results {
		i, raw := i, raw
		g.Go(func() error {
			meme, err := e.EnrichMeme(gctx, token, raw)
			if err != nil {
				return err
			}
			memes[i] = meme
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return memes, nil
}
