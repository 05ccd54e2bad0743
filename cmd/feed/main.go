// Command feed is a terminal consumer of the meme feed: it authenticates
// against the api, loads the feed page by page and optionally posts a
// comment. It is the reference rendering layer for the feed package.
package main

import (
	"context"
	stdflag "flag"
	"fmt"
	"os"

	"github.com/souhailmerroun/memefeed/api"
	"github.com/souhailmerroun/memefeed/auth"
	"github.com/souhailmerroun/memefeed/feed"
	"github.com/souhailmerroun/memefeed/utils/dotenv"
	Flag "github.com/souhailmerroun/memefeed/utils/flag"
	Logger "github.com/souhailmerroun/memefeed/utils/log"
)

var (
	username  = stdflag.String("username", "alice", "account to sign in with when no session is persisted")
	password  = stdflag.String("password", "password", "password for -username")
	pages     = stdflag.Int("pages", 2, "number of feed pages to load")
	commentOn = stdflag.String("comment", "", "meme id to comment on")
	message   = stdflag.String("message", "", "comment content for -comment")
	signout   = stdflag.Bool("signout", false, "drop the persisted session and exit")
)

func main() {
	stdflag.Parse()

	if err := dotenv.LoadDotEnvs(); err != nil {
		panic(err)
	}
	Flag.ServiceName = Flag.FeedClient
	Logger.InitLogger()

	if err := run(context.Background()); err != nil {
		Logger.Log.WithError(err).Fatal("feed client failed")
	}
}

func run(ctx context.Context) error {
	tokenPath, err := auth.DefaultTokenPath()
	if err != nil {
		return err
	}
	authenticator := auth.New(auth.NewFileTokenStore(tokenPath))

	if *signout {
		authenticator.Signout()
		fmt.Println("signed out")
		return nil
	}

	client := api.NewHTTPClient(Flag.APIBaseURL)

	if !authenticator.State().IsAuthenticated {
		token, err := client.Login(ctx, *username, *password)
		if err != nil {
			return err
		}
		if err := authenticator.Authenticate(token); err != nil {
			return err
		}
		Logger.Log.WithField("username", *username).Info("signed in")
	}

	f := feed.New(client, authenticator)

	for i := 0; i < *pages && f.HasMore(); i++ {
		if err := f.LoadMore(ctx); err != nil {
			return err
		}
	}

	if *commentOn != "" && *message != "" {
		if _, err := f.SubmitComment(ctx, *commentOn, *message); err != nil {
			return err
		}
	}

	render(f)
	return nil
}

func render(f *feed.Feed) {
	for _, meme := range f.Items() {
		fmt.Printf("%s  %s (@%s)  %d comments\n", meme.Id, meme.Description, meme.Author.Username, meme.CommentsCount)
		for _, comment := range meme.Comments {
			fmt.Printf("    @%s: %s\n", comment.Author.Username, comment.Content)
		}
	}
	if f.HasMore() {
		fmt.Fprintln(os.Stdout, "... more available, raise -pages to load further")
	}
}
