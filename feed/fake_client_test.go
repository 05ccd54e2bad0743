package feed

import (
	"context"
	"io"
	"math/rand"
	"sync"
	"time"

	"github.com/pkg/errors"
	"github.com/souhailmerroun/memefeed/api"
	"github.com/souhailmerroun/memefeed/model"
)

var _ api.Client = (*fakeClient)(nil)

const (
	testWait = 2 * time.Second
	testTick = 5 * time.Millisecond
)

// fakeClient is an in-memory api.Client for tests. A small random delay on
// every call shuffles completion order so tests exercise the pairing logic
// under realistic scheduling.
type fakeClient struct {
	mu sync.Mutex

	users     map[string]*model.User
	memePages map[int]*model.MemeListing
	comments  map[string]*model.CommentListing

	// per-endpoint call counters
	memeCalls    int
	userCalls    map[string]int
	commentCalls int

	// failure injection
	failMemes    bool
	failUserID   string
	failComments bool

	// when set, GetMemes blocks until the gate closes; used to overlap
	// concurrent loads deterministically
	memeGate chan struct{}

	created []*model.Comment
}

func newFakeClient() *fakeClient {
	return &fakeClient{
		users:     map[string]*model.User{},
		memePages: map[int]*model.MemeListing{},
		comments:  map[string]*model.CommentListing{},
		userCalls: map[string]int{},
	}
}

func (f *fakeClient) addUser(id, username string) {
	f.users[id] = &model.User{Id: id, Username: username, PictureUrl: "https://pics.example/" + id}
}

func jitter() {
	time.Sleep(time.Duration(rand.Intn(3)) * time.Millisecond)
}

func (f *fakeClient) Login(ctx context.Context, username, password string) (string, error) {
	return "", errors.New("not supported by fake")
}

func (f *fakeClient) GetMemes(ctx context.Context, token string, page int) (*model.MemeListing, error) {
	f.mu.Lock()
	gate := f.memeGate
	f.memeCalls++
	fail := f.failMemes
	listing := f.memePages[page]
	f.mu.Unlock()

	if gate != nil {
		<-gate
	}
	jitter()

	if fail {
		return nil, errors.New("meme backend unavailable")
	}
	if listing == nil {
		return nil, errors.Errorf("no such page %d", page)
	}
	return listing, nil
}

func (f *fakeClient) GetUserByID(ctx context.Context, token, id string) (*model.User, error) {
	f.mu.Lock()
	f.userCalls[id]++
	fail := f.failUserID == id
	user := f.users[id]
	f.mu.Unlock()

	jitter()

	if fail {
		return nil, errors.Errorf("user service down for %s", id)
	}
	if user == nil {
		return nil, errors.Errorf("no such user %s", id)
	}
	return user, nil
}

func (f *fakeClient) GetMemeComments(ctx context.Context, token, memeID string, page int) (*model.CommentListing, error) {
	f.mu.Lock()
	f.commentCalls++
	fail := f.failComments
	listing := f.comments[memeID]
	f.mu.Unlock()

	jitter()

	if fail {
		return nil, errors.New("comment backend unavailable")
	}
	if listing == nil {
		return &model.CommentListing{Results: []model.Comment{}, PageSize: 10, Total: 0}, nil
	}
	return listing, nil
}

func (f *fakeClient) CreateMemeComment(ctx context.Context, token, memeID, content string) (*model.Comment, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	comment := &model.Comment{
		Id:        "created-" + content,
		MemeID:    memeID,
		Content:   content,
		CreatedAt: time.Now().UTC(),
		AuthorID:  "self",
	}
	f.created = append(f.created, comment)
	return comment, nil
}

func (f *fakeClient) CreateMeme(ctx context.Context, token string, picture io.Reader, filename, description string, captions []model.Caption) (*model.RawMeme, error) {
	return &model.RawMeme{
		Id:          "created-meme",
		PictureUrl:  "https://pics.example/created-meme",
		Description: description,
		CreatedAt:   time.Now().UTC(),
		AuthorID:    "self",
		Captions:    captions,
	}, nil
}

func (f *fakeClient) memeCallCount() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.memeCalls
}

func (f *fakeClient) userCallCount(id string) int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.userCalls[id]
}

func (f *fakeClient) setFailMemes(fail bool) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.failMemes = fail
}
