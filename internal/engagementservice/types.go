package engagementservice

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
)

// TypeLike is the only notification type the engagement flow produces today.
const TypeLike = "like"

type EngagementService struct {
	m *NotificationModel
}

type NotificationModel struct {
	db *mongo.Database
}

// Notification is a derived record: it exists exactly as long as the like
// relation between its user and blog does.
type Notification struct {
	ID              primitive.ObjectID `bson:"_id,omitempty" json:"_id"`
	Type            string             `bson:"type" json:"type"`
	Blog            primitive.ObjectID `bson:"blog" json:"blog"`
	NotificationFor primitive.ObjectID `bson:"notification_for" json:"notification_for"`
	User            primitive.ObjectID `bson:"user" json:"user"`
	CreatedAt       time.Time          `bson:"created_at" json:"createdAt"`
}
