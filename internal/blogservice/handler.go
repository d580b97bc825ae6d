package blogservice

import (
	"context"
	"strings"

	gonanoid "github.com/matoous/go-nanoid/v2"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/hustleworks/hustleblog/internal/common"
)

func NewBlogService(db *mongo.Database, c *common.Cache) *BlogService {
	return &BlogService{m: newBlogModel(db), c: c}
}

// Setup creates the collection indexes the service relies on.
func (s *BlogService) Setup(ctx context.Context) error {
	return s.m.EnsureIndexes(ctx)
}

type SaveBlogRequest struct {
	ID      string   `json:"id"`
	Title   string   `json:"title"`
	Des     string   `json:"des"`
	Banner  string   `json:"banner"`
	Content Content  `json:"content"`
	Tags    []string `json:"tags"`
	Draft   bool     `json:"draft"`
}

// SaveBlog creates a blog on first save and updates it in place on later
// saves keyed by the slug in req.ID. Returns the slug.
func (s *BlogService) SaveBlog(ctx context.Context, author string, req *SaveBlogRequest) (string, error) {
	v := common.NewValidator()
	validateTitle(v, req.Title)
	if !req.Draft {
		validatePublished(v, req.Des, req.Banner, req.Content, req.Tags)
	}
	if !v.Valid() {
		return "", v.ValidationError()
	}

	authorID, err := primitive.ObjectIDFromHex(author)
	if err != nil {
		v.AddError("author", "must be a valid user id")
		return "", v.ValidationError()
	}

	tags := make([]string, len(req.Tags))
	for i, tag := range req.Tags {
		tags[i] = strings.ToLower(tag)
	}

	sanitizeContent(&req.Content)

	b := Blog{
		Title:   req.Title,
		Des:     req.Des,
		Banner:  req.Banner,
		Content: req.Content,
		Tags:    tags,
		Author:  authorID,
		Draft:   req.Draft,
	}

	if req.ID != "" {
		if err := s.m.updateBySlug(ctx, req.ID, &b); err != nil {
			return "", err
		}
		s.invalidateListings()
		return req.ID, nil
	}

	slug, err := makeSlug(req.Title)
	if err != nil {
		return "", err
	}
	b.BlogID = slug

	if err := s.m.insert(ctx, &b); err != nil {
		return "", err
	}
	s.invalidateListings()

	return b.BlogID, nil
}

// GetBlog fetches a blog by slug. Every fetch outside edit mode counts as a
// read on both the blog and its author. Unpublished blogs are only served
// when the caller asks for a draft.
func (s *BlogService) GetBlog(ctx context.Context, blogID string, draft bool, mode string) (*Blog, error) {
	v := common.NewValidator()
	v.Check(blogID != "", "blog_id", "must be provided")
	if !v.Valid() {
		return nil, v.ValidationError()
	}

	var inc int64 = 1
	if mode == "edit" {
		inc = 0
	}

	b, err := s.m.readBlog(ctx, blogID, inc)
	if err != nil {
		return nil, err
	}

	if b.Draft && !draft {
		return nil, ErrDraftBlog
	}

	return b, nil
}

// LatestBlogs returns one page of published blogs, newest first.
func (s *BlogService) LatestBlogs(ctx context.Context, page int) ([]ListedBlog, error) {
	v := common.NewValidator()
	validatePage(v, page)
	if !v.Valid() {
		return nil, v.ValidationError()
	}

	// only the first page is hot enough to cache
	if page == 1 {
		if cached, ok := s.c.Get(common.CacheKeyLatestBlogs(1)); ok {
			return cached.([]ListedBlog), nil
		}
	}

	filter := bson.M{"draft": false}
	sort := bson.D{{Key: "published_at", Value: -1}}
	skip := int64(page-1) * latestPageSize

	blogs, err := s.m.listBlogs(ctx, filter, sort, skip, latestPageSize)
	if err != nil {
		return nil, err
	}

	if page == 1 {
		s.c.Set(common.CacheKeyLatestBlogs(1), blogs)
	}

	return blogs, nil
}

// PublishedCount returns the total number of published blogs, cached briefly
// so pagination controls do not hammer the collection.
func (s *BlogService) PublishedCount(ctx context.Context) (int64, error) {
	if cached, ok := s.c.Get(common.CacheKeyPublishedCount()); ok {
		return cached.(int64), nil
	}

	count, err := s.m.countBlogs(ctx, bson.M{"draft": false})
	if err != nil {
		return 0, err
	}

	s.c.Set(common.CacheKeyPublishedCount(), count)
	return count, nil
}

// TrendingBlogs returns the top blogs by reads, then likes, then recency.
func (s *BlogService) TrendingBlogs(ctx context.Context) ([]TrendingBlog, error) {
	if cached, ok := s.c.Get(common.CacheKeyTrendingBlogs()); ok {
		return cached.([]TrendingBlog), nil
	}

	blogs, err := s.m.trendingBlogs(ctx)
	if err != nil {
		return nil, err
	}

	s.c.Set(common.CacheKeyTrendingBlogs(), blogs)
	return blogs, nil
}

type SearchQuery struct {
	Tag           string `json:"tag"`
	Query         string `json:"query"`
	Author        string `json:"author"`
	Page          int    `json:"page"`
	Limit         int    `json:"limit"`
	EliminateBlog string `json:"eliminate_blog"`
}

// SearchBlogs pages through published blogs matching exactly one of tag,
// title query or author.
func (s *BlogService) SearchBlogs(ctx context.Context, q *SearchQuery) ([]ListedBlog, error) {
	filter, err := searchFilter(q)
	if err != nil {
		return nil, err
	}

	page := q.Page
	if page < 1 {
		page = 1
	}
	limit := int64(q.Limit)
	if limit < 1 {
		limit = defaultSearchLimit
	}

	sort := bson.D{{Key: "published_at", Value: -1}}
	skip := int64(page-1) * limit

	return s.m.listBlogs(ctx, filter, sort, skip, limit)
}

// SearchCount counts the blogs a search would page through.
func (s *BlogService) SearchCount(ctx context.Context, q *SearchQuery) (int64, error) {
	filter, err := searchFilter(q)
	if err != nil {
		return 0, err
	}

	return s.m.countBlogs(ctx, filter)
}

func searchFilter(q *SearchQuery) (bson.M, error) {
	v := common.NewValidator()

	switch {
	case q.Tag != "":
		filter := bson.M{"tags": strings.ToLower(q.Tag), "draft": false}
		if q.EliminateBlog != "" {
			filter["blog_id"] = bson.M{"$ne": q.EliminateBlog}
		}
		return filter, nil
	case q.Query != "":
		return bson.M{
			"draft": false,
			"title": primitive.Regex{Pattern: common.EscapeRegex(q.Query), Options: "i"},
		}, nil
	case q.Author != "":
		authorID, err := primitive.ObjectIDFromHex(q.Author)
		if err != nil {
			v.AddError("author", "must be a valid user id")
			return nil, v.ValidationError()
		}
		return bson.M{"author": authorID, "draft": false}, nil
	default:
		v.AddError("query", "one of tag, query or author must be provided")
		return nil, v.ValidationError()
	}
}

func (s *BlogService) invalidateListings() {
	s.c.Delete(common.CacheKeyTrendingBlogs())
	s.c.Delete(common.CacheKeyLatestBlogs(1))
	s.c.Delete(common.CacheKeyPublishedCount())
}

// makeSlug turns the title into a URL slug and appends a random id so two
// posts with the same title never collide.
func makeSlug(title string) (string, error) {
	cleaned := strings.Map(func(r rune) rune {
		switch {
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r >= '0' && r <= '9':
			return r
		default:
			return ' '
		}
	}, title)

	suffix, err := gonanoid.New()
	if err != nil {
		return "", err
	}

	parts := append(strings.Fields(cleaned), suffix)
	return strings.Join(parts, "-"), nil
}
