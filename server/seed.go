package server

import (
	"fmt"
	"time"

	"github.com/souhailmerroun/memefeed/model"
)

// Seed fills the store with a deterministic development dataset: three
// accounts (password "password" for all of them) and a few pages worth of
// memes with comments.
func Seed(store *Store) {
	alice := store.CreateUser("alice", "password")
	bob := store.CreateUser("bob", "password")
	carol := store.CreateUser("carol", "password")
	authors := []*model.User{alice, bob, carol}

	base := time.Date(2024, 4, 1, 8, 0, 0, 0, time.UTC)
	for i := 0; i < 25; i++ {
		author := authors[i%len(authors)]
		meme := store.AddMeme(
			author.Id,
			fmt.Sprintf("https://memes.local/pictures/seed-%02d.jpg", i+1),
			fmt.Sprintf("seed meme #%02d", i+1),
			[]model.Caption{{Content: fmt.Sprintf("caption %02d", i+1), X: 120, Y: 80}},
			base.Add(time.Duration(i)*time.Hour),
		)

		for j := 0; j <= i%4; j++ {
			commenter := authors[(i+j+1)%len(authors)]
			store.AddComment(meme.Id, commenter.Id, fmt.Sprintf("comment %d on meme %02d", j+1, i+1))
		}
	}
}
