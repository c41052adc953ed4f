package entity

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

type Habit struct {
	ID             primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	Name           string             `bson:"name" json:"name"`
	CompletedDates []time.Time        `bson:"completedDates" json:"completedDates"`
	UserID         string             `bson:"userId" json:"userId"`
	CreatedAt      time.Time          `bson:"createdAt" json:"createdAt"`
	UpdatedAt      time.Time          `bson:"updatedAt" json:"updatedAt"`
}

type FocusTime struct {
	ID        primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	TimeFrom  time.Time          `bson:"timeFrom" json:"timeFrom"`
	TimeTo    time.Time          `bson:"timeTo" json:"timeTo"`
	UserID    string             `bson:"userId" json:"userId"`
	CreatedAt time.Time          `bson:"createdAt" json:"createdAt"`
	UpdatedAt time.Time          `bson:"updatedAt" json:"updatedAt"`
}

// HabitMetrics is the month-filtered projection of a single habit.
type HabitMetrics struct {
	ID             primitive.ObjectID `bson:"_id" json:"id"`
	Name           string             `bson:"name" json:"name"`
	CompletedDates []time.Time        `bson:"completedDates" json:"completedDates"`
}

// FocusTimeDayCount is one histogram bucket: how many focus times
// started on the given calendar date.
type FocusTimeDayCount struct {
	Year  int `bson:"year" json:"year"`
	Month int `bson:"month" json:"month"`
	Day   int `bson:"day" json:"day"`
	Count int `bson:"count" json:"count"`
}
