package service

import (
	"context"

	"github.com/lucasfgaldinos/habitus-api/pkg/entity"
)

type CreateHabitRequest struct {
	Name string `json:"name" validate:"required"`
}

type HabitIDRequest struct {
	ID string `json:"id" validate:"required,len=24,objectid"`
}

type HabitMetricsRequest struct {
	ID   string `json:"id" validate:"required,len=24,objectid"`
	Date string `json:"date" validate:"required"`
}

type CreateFocusTimeRequest struct {
	TimeFrom string `json:"timeFrom" validate:"required"`
	TimeTo   string `json:"timeTo" validate:"required"`
}

type DateRequest struct {
	Date string `json:"date" validate:"required"`
}

// AuthResult is what the callback hands back to the client: the local
// credential plus display fields from the external profile.
type AuthResult struct {
	Token     string `json:"token"`
	ID        string `json:"id"`
	AvatarURL string `json:"avatarUrl"`
	Name      string `json:"name"`
}

type HabitsServiceI interface {
	// Validates the request, rejects names colliding with any existing
	// habit, stores the new habit with an empty completion set
	Create(ctx context.Context, userID string, req *CreateHabitRequest) (*entity.Habit, error)
	// Lists every habit owned by userID
	List(ctx context.Context, userID string) ([]*entity.Habit, error)
	// Deletes the owned habit; a foreign habit reads as not found
	Delete(ctx context.Context, userID string, req *HabitIDRequest) error
	// Flips today's completion on the owned habit and returns the
	// post-mutation document
	Toggle(ctx context.Context, userID string, req *HabitIDRequest) (*entity.Habit, error)
	// Returns the habit's completions inside the month containing the
	// reference date
	MonthMetrics(ctx context.Context, userID string, req *HabitMetricsRequest) (*entity.HabitMetrics, error)
}

type FocusTimesServiceI interface {
	// Validates and stores one interval; timeTo before timeFrom is
	// rejected, equal instants are accepted
	Create(ctx context.Context, userID string, req *CreateFocusTimeRequest) (*entity.FocusTime, error)
	// Lists intervals starting on the reference calendar date, ordered
	// ascending by timeFrom
	DayListing(ctx context.Context, userID string, req *DateRequest) ([]*entity.FocusTime, error)
	// Counts intervals per calendar date over the month containing the
	// reference date
	MonthHistogram(ctx context.Context, userID string, req *DateRequest) ([]entity.FocusTimeDayCount, error)
}

type AuthServiceI interface {
	// Returns the external provider authorize URL
	BeginAuth() string
	// Exchanges the authorization code, fetches the external profile
	// and mints a local credential
	CompleteAuth(ctx context.Context, code string) (*AuthResult, error)
}
