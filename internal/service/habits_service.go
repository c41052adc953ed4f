package service

import (
	"context"
	"errors"
	"log"
	"time"

	errorvalues "github.com/lucasfgaldinos/habitus-api/internal/error_values"
	"github.com/lucasfgaldinos/habitus-api/internal/repository"
	"github.com/lucasfgaldinos/habitus-api/pkg/entity"
	"github.com/lucasfgaldinos/habitus-api/pkg/timeframe"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

type HabitsService struct {
	repo repository.HabitsRepositoryI
}

func NewHabitsService(habitsRepo repository.HabitsRepositoryI) *HabitsService {
	if habitsRepo == nil {
		log.Fatal("provided nil habitsRepo")
	}
	return &HabitsService{
		repo: habitsRepo,
	}
}

func (hs *HabitsService) Create(ctx context.Context, userID string, req *CreateHabitRequest) (*entity.Habit, error) {
	if messages := collectMessages(validate.Struct(*req)); len(messages) > 0 {
		return nil, &ValidationError{Messages: messages}
	}
	// The name lookup is global, not owner-scoped
	_, err := hs.repo.FindByName(ctx, req.Name)
	if err == nil {
		return nil, errorvalues.ErrHabitExists
	}
	if !errors.Is(err, errorvalues.ErrHabitNotFound) {
		return nil, errors.New("habits repository error: " + err.Error())
	}
	habit, err := hs.repo.Create(ctx, &entity.Habit{
		Name:           req.Name,
		CompletedDates: []time.Time{},
		UserID:         userID,
	})
	if err != nil {
		return nil, errors.New("habits repository error: " + err.Error())
	}
	return habit, nil
}

func (hs *HabitsService) List(ctx context.Context, userID string) ([]*entity.Habit, error) {
	habits, err := hs.repo.GetByUserID(ctx, userID)
	if err != nil {
		return nil, errors.New("habits repository error: " + err.Error())
	}
	return habits, nil
}

func (hs *HabitsService) Delete(ctx context.Context, userID string, req *HabitIDRequest) error {
	id, err := hs.validateID(req)
	if err != nil {
		return err
	}
	err = hs.repo.Delete(ctx, id, userID)
	if err != nil {
		if errors.Is(err, errorvalues.ErrHabitNotFound) {
			return err
		}
		return errors.New("habits repository error: " + err.Error())
	}
	return nil
}

func (hs *HabitsService) Toggle(ctx context.Context, userID string, req *HabitIDRequest) (*entity.Habit, error) {
	id, err := hs.validateID(req)
	if err != nil {
		return nil, err
	}
	today := timeframe.StartOfDay(time.Now())
	habit, err := hs.repo.ToggleCompletedDate(ctx, id, userID, today)
	if err != nil {
		if errors.Is(err, errorvalues.ErrHabitNotFound) {
			return nil, err
		}
		return nil, errors.New("habits repository error: " + err.Error())
	}
	return habit, nil
}

func (hs *HabitsService) MonthMetrics(ctx context.Context, userID string, req *HabitMetricsRequest) (*entity.HabitMetrics, error) {
	messages := collectMessages(validate.Struct(*req))
	date, messages := coerceDate("date", req.Date, messages)
	if len(messages) > 0 {
		return nil, &ValidationError{Messages: messages}
	}
	id, err := primitive.ObjectIDFromHex(req.ID)
	if err != nil {
		return nil, &ValidationError{Messages: []string{"id: must be a valid object id"}}
	}
	metrics, err := hs.repo.MonthMetrics(ctx, id, userID, timeframe.StartOfMonth(date), timeframe.EndOfMonth(date))
	if err != nil {
		if errors.Is(err, errorvalues.ErrHabitNotFound) {
			return nil, err
		}
		return nil, errors.New("habits repository error: " + err.Error())
	}
	return metrics, nil
}

func (hs *HabitsService) validateID(req *HabitIDRequest) (primitive.ObjectID, error) {
	if messages := collectMessages(validate.Struct(*req)); len(messages) > 0 {
		return primitive.ObjectID{}, &ValidationError{Messages: messages}
	}
	id, err := primitive.ObjectIDFromHex(req.ID)
	if err != nil {
		return primitive.ObjectID{}, &ValidationError{Messages: []string{"id: must be a valid object id"}}
	}
	return id, nil
}
