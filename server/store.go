package server

import (
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/souhailmerroun/memefeed/model"
	"github.com/souhailmerroun/memefeed/utils"
)

// PageSize is the fixed page size served by the stub api, for memes and
// comments alike.
const PageSize = 10

/*

Store is the in-memory backing state of the stub meme api.

Memes and comments are kept newest first, matching the ordering contract of
the real backend. Everything is guarded by one RWMutex; the stub trades
throughput for simplicity.

*/
type Store struct {
	mu sync.RWMutex

	users       map[string]*model.User
	usersByName map[string]*model.User
	passwords   map[string]string // username -> password

	memes    []*model.RawMeme            // newest first
	comments map[string][]*model.Comment // meme id -> newest first
	counts   map[string]int              // meme id -> authoritative comment count
}

func NewStore() *Store {
	return &Store{
		users:       map[string]*model.User{},
		usersByName: map[string]*model.User{},
		passwords:   map[string]string{},
		comments:    map[string][]*model.Comment{},
		counts:      map[string]int{},
	}
}

func (s *Store) CreateUser(username, password string) *model.User {
	s.mu.Lock()
	defer s.mu.Unlock()

	user := &model.User{
		Id:         uuid.NewString(),
		Username:   username,
		PictureUrl: "https://i.pravatar.cc/150?u=" + username,
	}
	s.users[user.Id] = user
	s.usersByName[username] = user
	s.passwords[username] = password
	return user
}

// Authenticate checks the credentials and returns the matching user.
func (s *Store) Authenticate(username, password string) (*model.User, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	user, ok := s.usersByName[username]
	if !ok || s.passwords[username] != password {
		return nil, false
	}
	return user, true
}

func (s *Store) GetUser(id string) (*model.User, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	user, ok := s.users[id]
	return user, ok
}

// AddMeme prepends a meme to the feed.
func (s *Store) AddMeme(authorID, pictureUrl, description string, captions []model.Caption, createdAt time.Time) *model.RawMeme {
	s.mu.Lock()
	defer s.mu.Unlock()

	meme := &model.RawMeme{
		Id:          uuid.NewString(),
		PictureUrl:  pictureUrl,
		Description: description,
		CreatedAt:   createdAt,
		AuthorID:    authorID,
		Captions:    captions,
	}
	s.memes = append([]*model.RawMeme{meme}, s.memes...)
	return meme
}

// ListMemes returns one 1-based page of memes plus the total count.
func (s *Store) ListMemes(page int) ([]*model.RawMeme, int) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return paginate(s.memes, page), len(s.memes)
}

// CommentCount returns the authoritative comment count of a meme.
func (s *Store) CommentCount(memeID string) int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.counts[memeID]
}

// AddComment prepends a comment to a meme and bumps its count.
func (s *Store) AddComment(memeID, authorID, content string) (*model.Comment, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.memeExistsLocked(memeID) {
		return nil, false
	}

	comment := &model.Comment{
		Id:        uuid.NewString(),
		MemeID:    memeID,
		Content:   content,
		CreatedAt: time.Now().UTC(),
		AuthorID:  authorID,
	}
	s.comments[memeID] = append([]*model.Comment{comment}, s.comments[memeID]...)
	s.counts[memeID]++
	return comment, true
}

// ListComments returns one 1-based page of a meme's comments plus the total.
func (s *Store) ListComments(memeID string, page int) ([]*model.Comment, int) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	comments := s.comments[memeID]
	return paginate(comments, page), len(comments)
}

func (s *Store) memeExistsLocked(memeID string) bool {
	for _, meme := range s.memes {
		if meme.Id == memeID {
			return true
		}
	}
	return false
}

func paginate[T any](items []T, page int) []T {
	if page < 1 {
		page = 1
	}
	start := (page - 1) * PageSize
	if start >= len(items) {
		return nil
	}
	end := utils.Min(start+PageSize, len(items))
	return items[start:end]
}
