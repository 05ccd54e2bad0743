package model

import "time"

/*

Comment is a single comment on a meme

Id: primary key, use to identify a comment
MemeID: the meme this comment belongs to, "belongs-to" relation
AuthorID: stable foreign key of the comment author
Author: resolved author profile, populated by the enricher; nil on raw
records fresh off the wire

The client never mutates an existing comment's Content.

*/
type Comment struct {
	Id        string    `json:"id"`
	MemeID    string    `json:"memeId"`
	Content   string    `json:"content"`
	CreatedAt time.Time `json:"createdAt"`
	AuthorID  string    `json:"authorId"`
	Author    *User     `json:"author,omitempty"`
}

// CommentListing is one server page of comments for a meme, newest first.
type CommentListing struct {
	Results  []Comment `json:"results"`
	PageSize int       `json:"pageSize"`
	Total    int       `json:"total"`
}
