package blogservice

import (
	"github.com/hustleworks/hustleblog/internal/common"
)

func validateTitle(v *common.Validator, title string) {
	v.Check(title != "", "title", "must be provided")
}

// validatePublished applies the publish-time checks. Drafts bypass all of
// them; a draft only needs a title.
func validatePublished(v *common.Validator, des, banner string, content Content, tags []string) {
	v.Check(des != "", "des", "must be provided")
	v.Check(len(des) <= 200, "des", "must not be more than 200 characters long")
	v.Check(banner != "", "banner", "must be provided")
	v.Check(len(content.Blocks) > 0, "content", "must not be empty")
	v.Check(len(tags) > 0, "tags", "must be provided")
	v.Check(len(tags) <= 10, "tags", "must not be more than 10 tags")
}

func validatePage(v *common.Validator, page int) {
	v.Check(page > 0, "page", "must be greater than zero")
}
