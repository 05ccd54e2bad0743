package model

/*

User is the public profile of an account as served by the meme api

Id: primary key, use to identify a user
Username: display name
PictureUrl: avatar url

Users are immutable once fetched and safe to cache for the lifetime of a
feed session.

*/
type User struct {
	Id         string `json:"id"`
	Username   string `json:"username"`
	PictureUrl string `json:"pictureUrl"`
}
