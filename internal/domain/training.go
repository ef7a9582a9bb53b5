package domain

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// TrainingStatusActive is the conventional value of Training.Status for an
// active plan. The field itself is free-form text.
const TrainingStatusActive = "ativo"

// Training is a named collection of exercises assigned to one student.
// Trainings are hard-deleted, unlike students.
type Training struct {
	ID        primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	Name      string             `bson:"name" json:"name"`
	StudentID primitive.ObjectID `bson:"studentId" json:"studentId"`
	TrainerID primitive.ObjectID `bson:"trainerId" json:"trainerId"`
	Exercises []Exercise         `bson:"exercises" json:"exercises"`
	StartDate *time.Time         `bson:"startDate,omitempty" json:"startDate,omitempty"`
	Status    string             `bson:"status" json:"status"`
	CreatedAt time.Time          `bson:"createdAt" json:"createdAt"`
	UpdatedAt time.Time          `bson:"updatedAt,omitempty" json:"updatedAt,omitempty"`
}

// Exercise is embedded inside a Training document. It has no identity or
// lifecycle outside its parent. The storage keys are the Portuguese field
// names the mobile client has always written; they are kept verbatim so
// existing documents remain readable.
type Exercise struct {
	ID       string     `bson:"id" json:"id"` // client-generated, timestamp-based
	Name     string     `bson:"nome" json:"nome"`
	Sets     int        `bson:"series" json:"series"`           // default 3
	Reps     int        `bson:"repeticoes" json:"repeticoes"`   // default 12
	Weight   string     `bson:"carga,omitempty" json:"carga,omitempty"`
	Rest     string     `bson:"descanso,omitempty" json:"descanso,omitempty"` // e.g. "60s"
	Notes    string     `bson:"observacoes,omitempty" json:"observacoes,omitempty"`
	Days     []DayToken `bson:"diaDoTreino" json:"diaDoTreino"` // may be empty
	VideoURL string     `bson:"videoUrl,omitempty" json:"videoUrl,omitempty"`
}
