package engagementservice

import (
	"context"
	"errors"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

var (
	ErrBlogNotFound = errors.New("blog not found")
)

const (
	notificationsCollection = "notifications"
	blogsCollection         = "blogs"
)

func (m *NotificationModel) EnsureIndexes(ctx context.Context) error {
	_, err := m.db.Collection(notificationsCollection).Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys:    bson.D{{Key: "user", Value: 1}, {Key: "blog", Value: 1}, {Key: "type", Value: 1}},
		Options: options.Index().SetUnique(true),
	})
	return err
}

func (m *NotificationModel) exists(ctx context.Context, user, blog primitive.ObjectID) (bool, error) {
	filter := bson.M{"user": user, "blog": blog, "type": TypeLike}

	n, err := m.db.Collection(notificationsCollection).CountDocuments(ctx, filter, options.Count().SetLimit(1))
	if err != nil {
		return false, err
	}

	return n > 0, nil
}

func (m *NotificationModel) insertLike(ctx context.Context, n *Notification) error {
	n.CreatedAt = time.Now()

	_, err := m.db.Collection(notificationsCollection).InsertOne(ctx, n)
	return err
}

func (m *NotificationModel) deleteLike(ctx context.Context, user, blog primitive.ObjectID) error {
	filter := bson.M{"user": user, "blog": blog, "type": TypeLike}

	_, err := m.db.Collection(notificationsCollection).DeleteOne(ctx, filter)
	return err
}

// adjustLikes moves the blog's like counter by delta and reports the blog's
// author so the caller can address a notification to them.
func (m *NotificationModel) adjustLikes(ctx context.Context, blog primitive.ObjectID, delta int) (primitive.ObjectID, error) {
	var doc struct {
		Author primitive.ObjectID `bson:"author"`
	}

	err := m.db.Collection(blogsCollection).FindOneAndUpdate(ctx,
		bson.M{"_id": blog},
		bson.M{"$inc": bson.M{"activity.total_likes": delta}},
		options.FindOneAndUpdate().SetProjection(bson.M{"author": 1}),
	).Decode(&doc)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return primitive.NilObjectID, ErrBlogNotFound
		}
		return primitive.NilObjectID, err
	}

	return doc.Author, nil
}
