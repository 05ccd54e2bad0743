package model

/*

Page is one fetched segment of the feed

Results: enriched memes of this segment, in server order
HasMore: whether more pages exist beyond this one, derived strictly from the
server-reported total (never from client-side counting)

An ordered sequence of Pages forms the feed; its logical content is the
flattened concatenation of Results across pages, in fetch order.

*/
type Page struct {
	Results []*Meme `json:"results"`
	HasMore bool    `json:"hasMore"`
}
