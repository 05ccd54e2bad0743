package feed

import (
	"context"
	"testing"
	"time"

	"github.com/souhailmerroun/memefeed/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func rawMeme(id, authorID string, count int) model.RawMeme {
	return model.RawMeme{
		Id:            id,
		PictureUrl:    "https://pics.example/" + id,
		Description:   "meme " + id,
		CreatedAt:     time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC),
		AuthorID:      authorID,
		CommentsCount: model.FlexibleCount(count),
	}
}

func commentOn(memeID, commentID, authorID string) model.Comment {
	return model.Comment{
		Id:        commentID,
		MemeID:    memeID,
		Content:   "comment " + commentID,
		CreatedAt: time.Date(2024, 5, 2, 9, 0, 0, 0, time.UTC),
		AuthorID:  authorID,
	}
}

func TestEnrichMemeResolvesAuthorAndComments(t *testing.T) {
	client := newFakeClient()
	client.addUser("alice", "alice")
	for _, id := range []string{"u1", "u2", "u3", "u4", "u5"} {
		client.addUser(id, "user "+id)
	}
	client.comments["m1"] = &model.CommentListing{
		Results: []model.Comment{
			commentOn("m1", "c1", "u1"),
			commentOn("m1", "c2", "u2"),
			commentOn("m1", "c3", "u3"),
			commentOn("m1", "c4", "u4"),
			commentOn("m1", "c5", "u5"),
		},
		PageSize: 10,
		Total:    5,
	}

	enricher := NewEnricher(client)
	meme, err := enricher.EnrichMeme(context.Background(), "token", rawMeme("m1", "alice", 5))
	require.NoError(t, err)

	require.NotNil(t, meme.Author)
	assert.Equal(t, "alice", meme.Author.Id)
	assert.Equal(t, 5, meme.CommentsCount)

	// every comment is paired with its own author, regardless of the order
	// in which the concurrent fetches completed
	require.Len(t, meme.Comments, 5)
	for _, comment := range meme.Comments {
		require.NotNil(t, comment.Author)
		assert.Equal(t, comment.AuthorID, comment.Author.Id)
	}
	// listing order is preserved
	assert.Equal(t, "c1", meme.Comments[0].Id)
	assert.Equal(t, "c5", meme.Comments[4].Id)
}

func TestEnrichMemeCountFallsBackToListingTotal(t *testing.T) {
	client := newFakeClient()
	client.addUser("alice", "alice")
	client.addUser("u1", "u1")
	client.comments["m1"] = &model.CommentListing{
		Results:  []model.Comment{commentOn("m1", "c1", "u1")},
		PageSize: 10,
		Total:    7,
	}

	enricher := NewEnricher(client)

	// unparsable commentsCount decoded to zero -> listing total wins
	meme, err := enricher.EnrichMeme(context.Background(), "token", rawMeme("m1", "alice", 0))
	require.NoError(t, err)
	assert.Equal(t, 7, meme.CommentsCount)

	// a real count wins over the listing total
	meme, err = enricher.EnrichMeme(context.Background(), "token", rawMeme("m1", "alice", 42))
	require.NoError(t, err)
	assert.Equal(t, 42, meme.CommentsCount)
}

func TestEnrichMemeFailsWhollyOnNestedFailure(t *testing.T) {
	client := newFakeClient()
	client.addUser("alice", "alice")
	client.addUser("u1", "u1")
	client.addUser("u2", "u2")
	client.failUserID = "u2"
	client.comments["m1"] = &model.CommentListing{
		Results: []model.Comment{
			commentOn("m1", "c1", "u1"),
			commentOn("m1", "c2", "u2"),
		},
		PageSize: 10,
		Total:    2,
	}

	enricher := NewEnricher(client)
	meme, err := enricher.EnrichMeme(context.Background(), "token", rawMeme("m1", "alice", 2))
	require.Error(t, err)
	assert.Nil(t, meme)
}

func TestEnrichMemeFailsWhollyOnAuthorFailure(t *testing.T) {
	client := newFakeClient()
	client.failUserID = "alice"
	client.comments["m1"] = &model.CommentListing{Results: []model.Comment{}, PageSize: 10, Total: 0}

	enricher := NewEnricher(client)
	meme, err := enricher.EnrichMeme(context.Background(), "token", rawMeme("m1", "alice", 0))
	require.Error(t, err)
	assert.Nil(t, meme)
}

func TestEnrichPagePreservesOrder(t *testing.T) {
	client := newFakeClient()
	client.addUser("alice", "alice")
	client.addUser("bob", "bob")

	listing := &model.MemeListing{
		Results: []model.RawMeme{
			rawMeme("m1", "alice", 0),
			rawMeme("m2", "bob", 0),
			rawMeme("m3", "alice", 0),
			rawMeme("m4", "bob", 0),
		},
		PageSize: 4,
		Total:    4,
	}

	enricher := NewEnricher(client)
	memes, err := enricher.EnrichPage(context.Background(), "token", listing)
	require.NoError(t, err)

	require.Len(t, memes, 4)
	for i, expected := range []string{"m1", "m2", "m3", "m4"} {
		assert.Equal(t, expected, memes[i].Id)
		require.NotNil(t, memes[i].Author)
	}
}

func TestEnricherMemoizesUsers(t *testing.T) {
	client := newFakeClient()
	client.addUser("alice", "alice")

	enricher := NewEnricher(client)

	// two sequential enrichments by the same author share one user fetch
	_, err := enricher.EnrichMeme(context.Background(), "token", rawMeme("m1", "alice", 0))
	require.NoError(t, err)
	_, err = enricher.EnrichMeme(context.Background(), "token", rawMeme("m2", "alice", 0))
	require.NoError(t, err)

	assert.Equal(t, 1, client.userCallCount("alice"))
}
