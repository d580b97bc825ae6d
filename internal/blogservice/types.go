package blogservice

import (
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/hustleworks/hustleblog/internal/common"
	"github.com/hustleworks/hustleblog/internal/userservice"
)

const (
	latestPageSize = 5
	trendingLimit  = 8

	defaultSearchLimit = 2
)

type BlogService struct {
	m *BlogModel
	c *common.Cache
}

type BlogModel struct {
	db *mongo.Database
}

type Blog struct {
	ID          primitive.ObjectID `bson:"_id,omitempty" json:"_id,omitempty"`
	BlogID      string             `bson:"blog_id" json:"blog_id"`
	Title       string             `bson:"title" json:"title"`
	Des         string             `bson:"des" json:"des"`
	Banner      string             `bson:"banner" json:"banner"`
	Content     Content            `bson:"content" json:"content"`
	Tags        []string           `bson:"tags" json:"tags"`
	Author      primitive.ObjectID `bson:"author" json:"-"`
	Activity    Activity           `bson:"activity" json:"activity"`
	Draft       bool               `bson:"draft" json:"draft"`
	PublishedAt time.Time          `bson:"published_at" json:"publishedAt"`
	UpdatedAt   time.Time          `bson:"updated_at" json:"-"`

	// AuthorInfo is resolved from the users collection when a single blog
	// is fetched; list queries join it in the aggregation instead.
	AuthorInfo *userservice.Profile `bson:"-" json:"author,omitempty"`
}

// Content mirrors the block-editor document shape the frontend produces.
type Content struct {
	Blocks []ContentBlock `bson:"blocks" json:"blocks"`
}

type ContentBlock struct {
	Type string `bson:"type" json:"type"`
	Data bson.M `bson:"data" json:"data"`
}

type Activity struct {
	TotalReads          int64 `bson:"total_reads" json:"total_reads"`
	TotalLikes          int64 `bson:"total_likes" json:"total_likes"`
	TotalComments       int64 `bson:"total_comments" json:"total_comments"`
	TotalParentComments int64 `bson:"total_parent_comments" json:"total_parent_comments"`
}

// ListedBlog is the card shape returned by the listing and search endpoints.
type ListedBlog struct {
	BlogID      string              `bson:"blog_id" json:"blog_id"`
	Title       string              `bson:"title" json:"title"`
	Des         string              `bson:"des" json:"des"`
	Banner      string              `bson:"banner" json:"banner"`
	Activity    Activity            `bson:"activity" json:"activity"`
	Tags        []string            `bson:"tags" json:"tags"`
	PublishedAt time.Time           `bson:"published_at" json:"publishedAt"`
	Author      userservice.Profile `bson:"author" json:"author"`
}

// TrendingBlog carries only what the trending strip renders.
type TrendingBlog struct {
	BlogID      string              `bson:"blog_id" json:"blog_id"`
	Title       string              `bson:"title" json:"title"`
	PublishedAt time.Time           `bson:"published_at" json:"publishedAt"`
	Author      userservice.Profile `bson:"author" json:"author"`
}
