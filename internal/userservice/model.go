package userservice

import (
	"context"
	"errors"
	"strings"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/hustleworks/hustleblog/internal/common"
)

var (
	ErrNotFound          = errors.New("user not found")
	ErrDuplicateEmail    = errors.New("duplicate email")
	ErrDuplicateUsername = errors.New("duplicate username")
)

const usersCollection = "users"

func newUserModel(db *mongo.Database) *UserModel {
	return &UserModel{db: db}
}

func (m *UserModel) users() *mongo.Collection {
	return m.db.Collection(usersCollection)
}

// EnsureIndexes creates the unique indexes that back the email and username
// invariants. Uniqueness is enforced here, not by check-then-insert.
func (m *UserModel) EnsureIndexes(ctx context.Context) error {
	_, err := m.users().Indexes().CreateMany(ctx, []mongo.IndexModel{
		{
			Keys:    bson.D{{Key: "personal_info.email", Value: 1}},
			Options: options.Index().SetUnique(true),
		},
		{
			Keys:    bson.D{{Key: "personal_info.username", Value: 1}},
			Options: options.Index().SetUnique(true),
		},
	})
	return err
}

func (m *UserModel) insertUser(ctx context.Context, u *User) error {
	now := time.Now()
	u.JoinedAt = now
	u.UpdatedAt = now
	if u.Blogs == nil {
		u.Blogs = []primitive.ObjectID{}
	}

	res, err := m.users().InsertOne(ctx, u)
	if err != nil {
		switch {
		case isDuplicateKey(err, "personal_info.email"):
			return ErrDuplicateEmail
		case isDuplicateKey(err, "personal_info.username"):
			return ErrDuplicateUsername
		default:
			return err
		}
	}

	u.ID = res.InsertedID.(primitive.ObjectID)
	return nil
}

func (m *UserModel) getUserByEmail(ctx context.Context, email string) (*User, error) {
	var u User

	err := m.users().FindOne(ctx, bson.M{"personal_info.email": email}).Decode(&u)
	if err != nil {
		switch {
		case errors.Is(err, mongo.ErrNoDocuments):
			return nil, ErrNotFound
		default:
			return nil, err
		}
	}

	return &u, nil
}

// getProfileByUsername returns the public view of a user document. The
// projection drops the password digest, the federation flag and the blog refs.
func (m *UserModel) getProfileByUsername(ctx context.Context, username string) (*User, error) {
	opts := options.FindOne().SetProjection(bson.M{
		"personal_info.password": 0,
		"google_auth":            0,
		"updated_at":             0,
		"blogs":                  0,
	})

	var u User

	err := m.users().FindOne(ctx, bson.M{"personal_info.username": username}, opts).Decode(&u)
	if err != nil {
		switch {
		case errors.Is(err, mongo.ErrNoDocuments):
			return nil, ErrNotFound
		default:
			return nil, err
		}
	}

	return &u, nil
}

func (m *UserModel) searchUsers(ctx context.Context, query string, limit int64) ([]Profile, error) {
	filter := bson.M{"personal_info.username": primitive.Regex{Pattern: common.EscapeRegex(query), Options: "i"}}
	opts := options.Find().
		SetLimit(limit).
		SetProjection(bson.M{
			"personal_info.fullname":    1,
			"personal_info.username":    1,
			"personal_info.profile_img": 1,
			"_id":                       0,
		})

	cursor, err := m.users().Find(ctx, filter, opts)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	users := []Profile{}
	if err := cursor.All(ctx, &users); err != nil {
		return nil, err
	}

	return users, nil
}

// isDuplicateKey reports whether err is a unique-index violation on the index
// covering the given field. The driver surfaces the index name only in the
// error message.
func isDuplicateKey(err error, field string) bool {
	return mongo.IsDuplicateKeyError(err) && strings.Contains(err.Error(), field)
}
