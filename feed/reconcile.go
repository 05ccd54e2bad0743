package feed

import (
	"github.com/jinzhu/copier"
	"github.com/souhailmerroun/memefeed/model"
	Logger "github.com/souhailmerroun/memefeed/utils/log"
)

// applyNewComment reconciles a successfully created comment into the cached
// page sequence without refetching anything.
//
// The target meme is looked up across every loaded page. On a hit the
// returned sequence is new, as are the containing page and the patched meme
// (comment prepended, count incremented by exactly one); every other page
// and meme is the same pointer as before, so a rendering layer can detect
// the change cheaply. A miss means the meme lives on a page not yet loaded;
// the mutation already succeeded server-side, so the sequence is returned
// unchanged and the local view catches up whenever that page loads.
func applyNewComment(pages []*model.Page, memeID string, comment model.Comment) []*model.Page {
	for pi, page := range pages {
		for mi, meme := range page.Results {
			if meme.Id != memeID {
				continue
			}

			patched := &model.Meme{}
			if err := copier.Copy(patched, meme); err != nil {
				Logger.Log.WithError(err).Error("failed to clone meme during reconciliation")
				return pages
			}
			patched.Comments = append([]model.Comment{comment}, meme.Comments...)
			patched.CommentsCount = meme.CommentsCount + 1

			results := make([]*model.Meme, len(page.Results))
			copy(results, page.Results)
			results[mi] = patched

			next := make([]*model.Page, len(pages))
			copy(next, pages)
			next[pi] = &model.Page{Results: results, HasMore: page.HasMore}
			return next
		}
	}
	return pages
}
