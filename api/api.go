// Package api defines the resource client contract of the meme backend and
// its default HTTP implementation. The feed core only depends on the Client
// interface; tests inject fakes.
package api

import (
	"context"
	"io"

	"github.com/souhailmerroun/memefeed/model"
)

// Client is the set of single-entity operations the backend exposes. All
// calls except Login require a bearer token obtained from the auth package.
// Any failure is surfaced as a plain rejected operation; retries and timeout
// policy live with the implementation, not the callers.
type Client interface {
	// Login exchanges credentials for a session jwt.
	Login(ctx context.Context, username, password string) (string, error)

	// GetMemes fetches one page (1-based) of raw memes, newest first.
	GetMemes(ctx context.Context, token string, page int) (*model.MemeListing, error)

	// GetUserByID fetches a single user profile.
	GetUserByID(ctx context.Context, token, id string) (*model.User, error)

	// GetMemeComments fetches one page (1-based) of a meme's comments,
	// newest first.
	GetMemeComments(ctx context.Context, token, memeID string, page int) (*model.CommentListing, error)

	// CreateMemeComment posts a comment on a meme and returns the created
	// record (author not resolved).
	CreateMemeComment(ctx context.Context, token, memeID, content string) (*model.Comment, error)

	// CreateMeme uploads a new meme with its picture and captions and
	// returns the created record.
	CreateMeme(ctx context.Context, token string, picture io.Reader, filename, description string, captions []model.Caption) (*model.RawMeme, error)
}
