package userservice

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/hustleworks/hustleblog/internal/common"
)

const (
	// AccessTokenTime is the lifetime of an issued access token. The
	// wire format carries only the user id and the standard expiry claim.
	AccessTokenTime time.Duration = 7 * 24 * time.Hour

	usernameSuffixLen  = 5
	maxUsernameRetries = 3
)

type UserService struct {
	m      *UserModel
	mb     common.MessageProducer
	tokens *TokenService
	google IdentityVerifier
}

type UserModel struct {
	db *mongo.Database
}

type User struct {
	ID           primitive.ObjectID   `bson:"_id,omitempty" json:"-"`
	PersonalInfo PersonalInfo         `bson:"personal_info" json:"personal_info"`
	AccountInfo  AccountInfo          `bson:"account_info" json:"account_info"`
	GoogleAuth   bool                 `bson:"google_auth" json:"-"`
	Blogs        []primitive.ObjectID `bson:"blogs" json:"-"`
	JoinedAt     time.Time            `bson:"joined_at" json:"joined_at"`
	UpdatedAt    time.Time            `bson:"updated_at" json:"-"`
}

type PersonalInfo struct {
	Fullname   string   `bson:"fullname" json:"fullname"`
	Email      string   `bson:"email,omitempty" json:"email,omitempty"`
	Username   string   `bson:"username" json:"username"`
	Password   Password `bson:"password" json:"-"`
	Bio        string   `bson:"bio" json:"bio"`
	ProfileImg string   `bson:"profile_img" json:"profile_img"`
}

type AccountInfo struct {
	TotalPosts int64 `bson:"total_posts" json:"total_posts"`
	TotalReads int64 `bson:"total_reads" json:"total_reads"`
}

// AuthResult is the public shape returned by every authentication flow.
// The password digest never leaves the service.
type AuthResult struct {
	AccessToken string `json:"access_token"`
	ProfileImg  string `json:"profile_img"`
	Username    string `json:"username"`
	Fullname    string `json:"fullname"`
}

// Profile is the subset of a user document exposed by search results.
type Profile struct {
	PersonalInfo struct {
		Fullname   string `bson:"fullname" json:"fullname"`
		Username   string `bson:"username" json:"username"`
		ProfileImg string `bson:"profile_img" json:"profile_img"`
	} `bson:"personal_info" json:"personal_info"`
}
