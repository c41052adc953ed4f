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
)

type FocusTimesService struct {
	repo repository.FocusTimesRepositoryI
}

func NewFocusTimesService(focusTimesRepo repository.FocusTimesRepositoryI) *FocusTimesService {
	if focusTimesRepo == nil {
		log.Fatal("provided nil focusTimesRepo")
	}
	return &FocusTimesService{
		repo: focusTimesRepo,
	}
}

func (fs *FocusTimesService) Create(ctx context.Context, userID string, req *CreateFocusTimeRequest) (*entity.FocusTime, error) {
	messages := collectMessages(validate.Struct(*req))
	timeFrom, messages := coerceDate("timeFrom", req.TimeFrom, messages)
	timeTo, messages := coerceDate("timeTo", req.TimeTo, messages)
	if len(messages) > 0 {
		return nil, &ValidationError{Messages: messages}
	}
	// Strictly before is rejected, equal instants are allowed
	if timeTo.Before(timeFrom) {
		return nil, errorvalues.ErrInvalidTimeRange
	}
	focusTime, err := fs.repo.Create(ctx, &entity.FocusTime{
		TimeFrom: timeFrom,
		TimeTo:   timeTo,
		UserID:   userID,
	})
	if err != nil {
		return nil, errors.New("focus times repository error: " + err.Error())
	}
	return focusTime, nil
}

func (fs *FocusTimesService) DayListing(ctx context.Context, userID string, req *DateRequest) ([]*entity.FocusTime, error) {
	date, err := fs.validateDate(req)
	if err != nil {
		return nil, err
	}
	focusTimes, err := fs.repo.GetByDay(ctx, userID, timeframe.StartOfDay(date), timeframe.EndOfDay(date))
	if err != nil {
		return nil, errors.New("focus times repository error: " + err.Error())
	}
	return focusTimes, nil
}

func (fs *FocusTimesService) MonthHistogram(ctx context.Context, userID string, req *DateRequest) ([]entity.FocusTimeDayCount, error) {
	date, err := fs.validateDate(req)
	if err != nil {
		return nil, err
	}
	counts, err := fs.repo.CountByDay(ctx, userID, timeframe.StartOfMonth(date), timeframe.EndOfMonth(date))
	if err != nil {
		return nil, errors.New("focus times repository error: " + err.Error())
	}
	return counts, nil
}

func (fs *FocusTimesService) validateDate(req *DateRequest) (date time.Time, err error) {
	messages := collectMessages(validate.Struct(*req))
	date, messages = coerceDate("date", req.Date, messages)
	if len(messages) > 0 {
		return time.Time{}, &ValidationError{Messages: messages}
	}
	return date, nil
}
