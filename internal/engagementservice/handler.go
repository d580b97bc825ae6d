package engagementservice

import (
	"context"

	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/hustleworks/hustleblog/internal/common"
)

func NewEngagementService(db *mongo.Database) *EngagementService {
	return &EngagementService{m: &NotificationModel{db: db}}
}

func (s *EngagementService) Setup(ctx context.Context) error {
	return s.m.EnsureIndexes(ctx)
}

// ToggleLike flips the caller's like on a blog and returns the resulting
// state. The current state is read server-side inside the same transaction
// that updates the counter and the notification, so concurrent toggles
// cannot drift the counter away from the notification set.
func (s *EngagementService) ToggleLike(ctx context.Context, userID, blogID string) (bool, error) {
	user, blog, err := parseIDs(userID, blogID)
	if err != nil {
		return false, err
	}

	session, err := s.m.db.Client().StartSession()
	if err != nil {
		return false, err
	}
	defer session.EndSession(ctx)

	liked, err := session.WithTransaction(ctx, func(sc mongo.SessionContext) (any, error) {
		liked, err := s.m.exists(sc, user, blog)
		if err != nil {
			return false, err
		}

		if liked {
			if _, err := s.m.adjustLikes(sc, blog, -1); err != nil {
				return false, err
			}
			if err := s.m.deleteLike(sc, user, blog); err != nil {
				return false, err
			}
			return false, nil
		}

		author, err := s.m.adjustLikes(sc, blog, 1)
		if err != nil {
			return false, err
		}

		n := &Notification{
			Type:            TypeLike,
			Blog:            blog,
			NotificationFor: author,
			User:            user,
		}
		if err := s.m.insertLike(sc, n); err != nil {
			return false, err
		}
		return true, nil
	})
	if err != nil {
		return false, err
	}

	return liked.(bool), nil
}

// IsLiked reports whether the caller currently likes the blog.
func (s *EngagementService) IsLiked(ctx context.Context, userID, blogID string) (bool, error) {
	user, blog, err := parseIDs(userID, blogID)
	if err != nil {
		return false, err
	}

	return s.m.exists(ctx, user, blog)
}

func parseIDs(userID, blogID string) (primitive.ObjectID, primitive.ObjectID, error) {
	v := common.NewValidator()

	user, err := primitive.ObjectIDFromHex(userID)
	v.Check(err == nil, "user", "must be a valid id")

	blog, err := primitive.ObjectIDFromHex(blogID)
	v.Check(err == nil, "blog", "must be a valid id")

	if !v.Valid() {
		return primitive.NilObjectID, primitive.NilObjectID, v.ValidationError()
	}

	return user, blog, nil
}
