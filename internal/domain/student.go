package domain

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Student is a trainer-owned client record. Students are never removed:
// deletion flips Status to StatusInactive and stamps DeletedAt, so the
// record stays in the collection but disappears from listings.
type Student struct {
	ID        primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	Name      string             `bson:"name" json:"name"`
	Email     string             `bson:"email" json:"email"`
	Phone     string             `bson:"phone,omitempty" json:"phone,omitempty"` // formatted (XX) XXXXX-XXXX
	TrainerID primitive.ObjectID `bson:"trainerId" json:"trainerId"`
	Status    int                `bson:"status" json:"status"`
	CreatedAt time.Time          `bson:"createdAt" json:"createdAt"`
	DeletedAt *time.Time         `bson:"deletedAt,omitempty" json:"deletedAt,omitempty"`
}
