package model

import "time"

// Caption is a positional text overlay on a meme picture. Opaque to the feed
// core beyond pass-through.
type Caption struct {
	Content string  `json:"content"`
	X       float64 `json:"x"`
	Y       float64 `json:"y"`
}

/*

RawMeme is a meme record as served by the meme api, before enrichment

Id: primary key, use to identify a meme
AuthorID: foreign key of the posting user, resolved during enrichment
CommentsCount: authoritative server-side count; the backend serves it either
as a JSON number or as a numeric string, hence FlexibleCount
Captions: text overlays, served under the json key "texts"

*/
type RawMeme struct {
	Id            string        `json:"id"`
	PictureUrl    string        `json:"pictureUrl"`
	Description   string        `json:"description"`
	CreatedAt     time.Time     `json:"createdAt"`
	AuthorID      string        `json:"authorId"`
	CommentsCount FlexibleCount `json:"commentsCount"`
	Captions      []Caption     `json:"texts"`
}

/*

Meme is a fully enriched meme ready for rendering

Author: always non-nil after successful enrichment
Comments: first page of comments, newest first, each with a resolved Author
CommentsCount: normalized numeric count; may exceed len(Comments) since only
the first comment page is eagerly loaded

*/
type Meme struct {
	Id            string    `json:"id"`
	PictureUrl    string    `json:"pictureUrl"`
	Description   string    `json:"description"`
	CreatedAt     time.Time `json:"createdAt"`
	AuthorID      string    `json:"authorId"`
	CommentsCount int       `json:"commentsCount"`
	Captions      []Caption `json:"texts"`
	Author        *User     `json:"author"`
	Comments      []Comment `json:"comments"`
}

// MemeListing is one server page of raw memes, newest first.
type MemeListing struct {
	Results  []RawMeme `json:"results"`
	PageSize int       `json:"pageSize"`
	Total    int       `json:"total"`
}
