package blogservice

import (
	"context"
	"errors"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/hustleworks/hustleblog/internal/userservice"
)

var (
	ErrRecordNotFound = errors.New("blog not found")
	ErrDraftBlog      = errors.New("draft blogs are not accessible")
)

const (
	blogsCollection = "blogs"
	usersCollection = "users"
)

func newBlogModel(db *mongo.Database) *BlogModel {
	return &BlogModel{db: db}
}

func (m *BlogModel) blogs() *mongo.Collection {
	return m.db.Collection(blogsCollection)
}

func (m *BlogModel) users() *mongo.Collection {
	return m.db.Collection(usersCollection)
}

func (m *BlogModel) EnsureIndexes(ctx context.Context) error {
	_, err := m.blogs().Indexes().CreateMany(ctx, []mongo.IndexModel{
		{
			Keys:    bson.D{{Key: "blog_id", Value: 1}},
			Options: options.Index().SetUnique(true),
		},
		{Keys: bson.D{{Key: "tags", Value: 1}}},
		{Keys: bson.D{{Key: "published_at", Value: -1}}},
	})
	return err
}

// insert stores a new blog and registers it on the author document: the post
// counter moves only for published posts, the blog ref is always pushed.
func (m *BlogModel) insert(ctx context.Context, b *Blog) error {
	now := time.Now()
	b.PublishedAt = now
	b.UpdatedAt = now
	if b.Tags == nil {
		b.Tags = []string{}
	}

	res, err := m.blogs().InsertOne(ctx, b)
	if err != nil {
		return err
	}
	b.ID = res.InsertedID.(primitive.ObjectID)

	var postDelta int64
	if !b.Draft {
		postDelta = 1
	}

	_, err = m.users().UpdateByID(ctx, b.Author, bson.M{
		"$inc":  bson.M{"account_info.total_posts": postDelta},
		"$push": bson.M{"blogs": b.ID},
	})
	return err
}

func (m *BlogModel) updateBySlug(ctx context.Context, blogID string, b *Blog) error {
	set := bson.M{
		"title":      b.Title,
		"des":        b.Des,
		"banner":     b.Banner,
		"content":    b.Content,
		"tags":       b.Tags,
		"draft":      b.Draft,
		"updated_at": time.Now(),
	}

	res, err := m.blogs().UpdateOne(ctx, bson.M{"blog_id": blogID}, bson.M{"$set": set})
	if err != nil {
		return err
	}
	if res.MatchedCount == 0 {
		return ErrRecordNotFound
	}

	return nil
}

// readBlog fetches a blog by slug, bumping its read counter and the author's
// aggregate read counter by inc (0 in edit mode).
func (m *BlogModel) readBlog(ctx context.Context, blogID string, inc int64) (*Blog, error) {
	opts := options.FindOneAndUpdate().SetReturnDocument(options.After)

	var b Blog
	err := m.blogs().FindOneAndUpdate(ctx,
		bson.M{"blog_id": blogID},
		bson.M{"$inc": bson.M{"activity.total_reads": inc}},
		opts,
	).Decode(&b)
	if err != nil {
		switch {
		case errors.Is(err, mongo.ErrNoDocuments):
			return nil, ErrRecordNotFound
		default:
			return nil, err
		}
	}

	author, err := m.getAuthorProfile(ctx, b.Author)
	if err != nil {
		return nil, err
	}
	b.AuthorInfo = author

	if inc != 0 {
		_, err = m.users().UpdateByID(ctx, b.Author, bson.M{
			"$inc": bson.M{"account_info.total_reads": inc},
		})
		if err != nil {
			return nil, err
		}
	}

	return &b, nil
}

func (m *BlogModel) getAuthorProfile(ctx context.Context, id primitive.ObjectID) (*userservice.Profile, error) {
	opts := options.FindOne().SetProjection(bson.M{
		"personal_info.fullname":    1,
		"personal_info.username":    1,
		"personal_info.profile_img": 1,
		"_id":                       0,
	})

	var p userservice.Profile
	err := m.users().FindOne(ctx, bson.M{"_id": id}, opts).Decode(&p)
	if err != nil {
		switch {
		case errors.Is(err, mongo.ErrNoDocuments):
			return nil, ErrRecordNotFound
		default:
			return nil, err
		}
	}

	return &p, nil
}

// listPipeline joins the author profile onto each blog card. The project
// stage keeps the card fields only; content never travels on list queries.
func listPipeline(filter bson.M, sort bson.D, skip, limit int64, project bson.M) mongo.Pipeline {
	return mongo.Pipeline{
		{{Key: "$match", Value: filter}},
		{{Key: "$sort", Value: sort}},
		{{Key: "$skip", Value: skip}},
		{{Key: "$limit", Value: limit}},
		{{Key: "$lookup", Value: bson.M{
			"from":         usersCollection,
			"localField":   "author",
			"foreignField": "_id",
			"as":           "author",
		}}},
		{{Key: "$unwind", Value: "$author"}},
		{{Key: "$project", Value: project}},
	}
}

var cardProjection = bson.M{
	"blog_id":                          1,
	"title":                            1,
	"des":                              1,
	"banner":                           1,
	"activity":                         1,
	"tags":                             1,
	"published_at":                     1,
	"author.personal_info.fullname":    1,
	"author.personal_info.username":    1,
	"author.personal_info.profile_img": 1,
	"_id":                              0,
}

func (m *BlogModel) listBlogs(ctx context.Context, filter bson.M, sort bson.D, skip, limit int64) ([]ListedBlog, error) {
	cursor, err := m.blogs().Aggregate(ctx, listPipeline(filter, sort, skip, limit, cardProjection))
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	blogs := []ListedBlog{}
	if err := cursor.All(ctx, &blogs); err != nil {
		return nil, err
	}

	return blogs, nil
}

func (m *BlogModel) trendingBlogs(ctx context.Context) ([]TrendingBlog, error) {
	sort := bson.D{
		{Key: "activity.total_reads", Value: -1},
		{Key: "activity.total_likes", Value: -1},
		{Key: "published_at", Value: -1},
	}
	project := bson.M{
		"blog_id":                          1,
		"title":                            1,
		"published_at":                     1,
		"author.personal_info.fullname":    1,
		"author.personal_info.username":    1,
		"author.personal_info.profile_img": 1,
		"_id":                              0,
	}

	cursor, err := m.blogs().Aggregate(ctx, listPipeline(bson.M{"draft": false}, sort, 0, trendingLimit, project))
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	blogs := []TrendingBlog{}
	if err := cursor.All(ctx, &blogs); err != nil {
		return nil, err
	}

	return blogs, nil
}

func (m *BlogModel) countBlogs(ctx context.Context, filter bson.M) (int64, error) {
	return m.blogs().CountDocuments(ctx, filter)
}
