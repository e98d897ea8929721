package domain

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Admin represents the administrator credential record. It is seeded from
// configuration at startup and used only for login; there is no self-service
// registration for administrators.
type Admin struct {
	ID           primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	Username     string             `bson:"username" json:"username"` // Unique
	PasswordHash string             `bson:"passwordHash" json:"-"`    // Never expose via JSON
	CreatedAt    time.Time          `bson:"createdAt" json:"createdAt"`
}
