// Package feed turns the paginated, normalized meme api into a denormalized,
// incrementally loadable feed, and keeps the local page cache consistent
// across comment submissions without refetching.
package feed

import (
	"context"
	"io"
	"sync"

	"github.com/pkg/errors"
	"github.com/souhailmerroun/memefeed/api"
	"github.com/souhailmerroun/memefeed/auth"
	"github.com/souhailmerroun/memefeed/model"
	Logger "github.com/souhailmerroun/memefeed/utils/log"
)

/*

Feed is the session facade handed to the rendering layer.

It wires the authentication context, the resource client, the paginator and
the reconciler together. Every operation requires an authenticated session
and fails fast with auth.ErrNotAuthenticated otherwise.

*/
type Feed struct {
	api       api.Client
	auth      *auth.Authenticator
	paginator *Paginator

	mu   sync.Mutex
	self *model.User // authenticated user, fetched once per session
}

func New(client api.Client, authenticator *auth.Authenticator) *Feed {
	return &Feed{
		api:       client,
		auth:      authenticator,
		paginator: NewPaginator(client, NewEnricher(client)),
	}
}

// Items returns the flattened feed: every loaded meme in fetch order.
func (f *Feed) Items() []*model.Meme {
	return f.paginator.Flatten()
}

// IsLoading reports whether a page load is in flight.
func (f *Feed) IsLoading() bool {
	return f.paginator.IsLoading()
}

// HasMore reports whether more pages exist beyond the loaded prefix.
func (f *Feed) HasMore() bool {
	_, ok := f.paginator.NextPageParam()
	return ok
}

// LoadMore loads the next feed page. Calling it on an exhausted feed is a
// no-op. A failed load is retriable by calling LoadMore again.
func (f *Feed) LoadMore(ctx context.Context) error {
	token, err := f.auth.Token()
	if err != nil {
		return err
	}

	n, ok := f.paginator.NextPageParam()
	if !ok {
		return nil
	}

	if _, err := f.paginator.LoadPage(ctx, token, n); err != nil {
		return err
	}
	Logger.Log.WithField("page", n).Debug("feed page loaded")
	return nil
}

// SubmitComment posts a comment on a meme and reconciles the cached pages
// in place on success. The comment author is the authenticated user, reused
// from the session cache rather than refetched per comment. A target meme
// absent from the loaded pages is not an error; the local view catches up
// when its page loads.
func (f *Feed) SubmitComment(ctx context.Context, memeID, content string) (*model.Comment, error) {
	token, err := f.auth.Token()
	if err != nil {
		return nil, err
	}

	self, err := f.currentUser(ctx, token)
	if err != nil {
		return nil, err
	}

	created, err := f.api.CreateMemeComment(ctx, token, memeID, content)
	if err != nil {
		return nil, errors.Wrap(err, "create comment")
	}
	created.Author = self

	f.paginator.Patch(func(pages []*model.Page) []*model.Page {
		return applyNewComment(pages, memeID, *created)
	})
	return created, nil
}

// CreateMeme uploads a new meme. The page cache is deliberately left
// untouched: the creation flow navigates back to a fresh feed.
func (f *Feed) CreateMeme(ctx context.Context, picture io.Reader, filename, description string, captions []model.Caption) (*model.RawMeme, error) {
	token, err := f.auth.Token()
	if err != nil {
		return nil, err
	}

	meme, err := f.api.CreateMeme(ctx, token, picture, filename, description, captions)
	if err != nil {
		return nil, errors.Wrap(err, "create meme")
	}
	return meme, nil
}

// currentUser resolves the authenticated user's profile, once per session.
// The cached profile is dropped if the session user changed underneath us
// (signout followed by a different login).
func (f *Feed) currentUser(ctx context.Context, token string) (*model.User, error) {
	id, err := f.auth.UserID()
	if err != nil {
		return nil, err
	}

	f.mu.Lock()
	defer f.mu.Unlock()
	if f.self != nil && f.self.Id == id {
		return f.self, nil
	}

	user, err := f.api.GetUserByID(ctx, token, id)
	if err != nil {
		return nil, errors.Wrap(err, "fetch current user")
	}
	f.self = user
	return user, nil
}
