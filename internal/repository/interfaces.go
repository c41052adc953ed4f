package repository

import (
	"context"
	"time"

	"github.com/lucasfgaldinos/habitus-api/pkg/entity"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

type HabitsRepositoryI interface {
	// Creates new habit document. Returns the stored document
	Create(ctx context.Context, habit *entity.Habit) (*entity.Habit, error)
	// Searches habit with given id owned by userID
	GetByID(ctx context.Context, id primitive.ObjectID, userID string) (*entity.Habit, error)
	// Searches habit with given name. Deliberately not scoped by owner
	FindByName(ctx context.Context, name string) (*entity.Habit, error)
	// Lists habits owned by userID
	GetByUserID(ctx context.Context, userID string) ([]*entity.Habit, error)
	// Deletes habit with id owned by userID
	Delete(ctx context.Context, id primitive.ObjectID, userID string) error
	// Adds day to completedDates if absent, removes it if present.
	// Single document update, returns the post-mutation document
	ToggleCompletedDate(ctx context.Context, id primitive.ObjectID, userID string, day time.Time) (*entity.Habit, error)
	// Projects the habit with completedDates filtered to [from, to]
	MonthMetrics(ctx context.Context, id primitive.ObjectID, userID string, from, to time.Time) (*entity.HabitMetrics, error)
}

type FocusTimesRepositoryI interface {
	// Creates new focus time document. Returns the stored document
	Create(ctx context.Context, focusTime *entity.FocusTime) (*entity.FocusTime, error)
	// Lists focus times of userID whose timeFrom lies in [from, to],
	// ordered ascending by timeFrom
	GetByDay(ctx context.Context, userID string, from, to time.Time) ([]*entity.FocusTime, error)
	// Counts focus times of userID per calendar date of timeFrom over
	// [from, to), ordered ascending by (year, month, day)
	CountByDay(ctx context.Context, userID string, from, to time.Time) ([]entity.FocusTimeDayCount, error)
}
