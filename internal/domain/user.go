package domain

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Account status values. Anything other than StatusActive blocks login.
const (
	StatusInactive = 0
	StatusActive   = 1
)

// User represents a trainer account. Credentials and profile live in the
// same document: the email is the login identity and passwordHash is never
// exposed over JSON.
type User struct {
	ID           primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	Email        string             `bson:"email" json:"email"` // unique
	PasswordHash string             `bson:"passwordHash" json:"-"`
	Status       int                `bson:"status" json:"status"`
	Admin        int                `bson:"admin" json:"admin"`
	CreatedAt    time.Time          `bson:"createdAt" json:"createdAt"`
	UpdatedAt    time.Time          `bson:"updatedAt" json:"updatedAt"`
}

func (u *User) IsActive() bool {
	return u.Status == StatusActive
}

func (u *User) IsAdmin() bool {
	return u.Admin == 1
}
