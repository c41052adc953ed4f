package api

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/bytedance/sonic"
	"github.com/go-chi/chi/v5"
	errorvalues "github.com/lucasfgaldinos/habitus-api/internal/error_values"
	"github.com/lucasfgaldinos/habitus-api/internal/service"
	"github.com/lucasfgaldinos/habitus-api/pkg/httputil"
)

const (
	serviceName        = "habitus-api"
	serviceDescription = "Personal productivity tracker: habits and focus times"
	serviceVersion     = "1.0.0"
)

type InfoResponse struct {
	Name        string `json:"name"`
	Description string `json:"description"`
	Version     string `json:"version"`
}

type AuthResponse struct {
	RedirectURL string `json:"redirectUrl"`
}

func (s *Server) Info(w http.ResponseWriter, r *http.Request) {
	httputil.WriteJSONResponse(w, http.StatusOK, InfoResponse{
		Name:        serviceName,
		Description: serviceDescription,
		Version:     serviceVersion,
	})
}

func (s *Server) Auth(w http.ResponseWriter, r *http.Request) {
	httputil.WriteJSONResponse(w, http.StatusOK, AuthResponse{
		RedirectURL: s.authService.BeginAuth(),
	})
}

func (s *Server) AuthCallback(w http.ResponseWriter, r *http.Request) {
	logger := GetLoggerFromCtx(r.Context())
	code := r.URL.Query().Get("code")
	ctx, cancel := context.WithTimeout(context.Background(), time.Second*30)
	defer cancel()
	result, err := s.authService.CompleteAuth(ctx, code)
	if err != nil {
		var exchangeErr *service.ExchangeError
		switch {
		case errors.As(err, &exchangeErr) && len(exchangeErr.Payload) > 0:
			logger.Error("auth callback error: provider rejected exchange")
			httputil.WriteRawResponse(w, http.StatusUnauthorized, exchangeErr.Payload)
		case errors.Is(err, errorvalues.ErrExchangeFailed):
			logger.Error("auth callback error: exchange failed")
			httputil.WriteErrorResponse(w, http.StatusUnauthorized, "Something went wrong.", nil)
		default:
			logger.Error("auth callback error: service error", slog.String("error", err.Error()))
			httputil.WriteErrorResponse(w, http.StatusInternalServerError, "internal error during authentication", nil)
		}
		return
	}
	httputil.WriteJSONResponse(w, http.StatusOK, result)
	logger.Info("successful authentication")
}

func (s *Server) GetHabits(w http.ResponseWriter, r *http.Request) {
	logger := GetLoggerFromCtx(r.Context())
	uid, err := GetUserIDFromContext(r)
	if err != nil {
		logger.Error("get habits error: unauthorized")
		httputil.WriteErrorResponse(w, http.StatusUnauthorized, "no authorization", nil)
		return
	}
	ctx, cancel := context.WithTimeout(context.Background(), time.Second*10)
	defer cancel()
	habits, err := s.habitsService.List(ctx, uid)
	if err != nil {
		logger.Error("getting habits list error", slog.String("error", err.Error()))
		httputil.WriteErrorResponse(w, http.StatusInternalServerError, "error while getting habits list", nil)
		return
	}
	httputil.WriteJSONResponse(w, http.StatusOK, habits)
	logger.Info("habits provided")
}

func (s *Server) CreateHabit(w http.ResponseWriter, r *http.Request) {
	logger := GetLoggerFromCtx(r.Context())
	uid, err := GetUserIDFromContext(r)
	if err != nil {
		logger.Error("create habit error: unauthorized")
		httputil.WriteErrorResponse(w, http.StatusUnauthorized, "no authorization", nil)
		return
	}
	var req service.CreateHabitRequest
	defer r.Body.Close()
	if err := sonic.ConfigDefault.NewDecoder(r.Body).Decode(&req); err != nil {
		logger.Error("create habit error: invalid request body")
		httputil.WriteErrorResponse(w, http.StatusBadRequest, "invalid request body", nil)
		return
	}
	ctx, cancel := context.WithTimeout(context.Background(), time.Second*10)
	defer cancel()
	habit, err := s.habitsService.Create(ctx, uid, &req)
	if err != nil {
		var validationErr *service.ValidationError
		switch {
		case errors.As(err, &validationErr):
			logger.Error("create habit error: validation failed")
			httputil.WriteValidationResponse(w, validationErr.Messages)
		case errors.Is(err, errorvalues.ErrHabitExists):
			logger.Error("create habit error: attempt to create existed habit")
			httputil.WriteErrorResponse(w, http.StatusConflict, "This habit already exists.", nil)
		default:
			logger.Error("create habit error: service error", slog.String("error", err.Error()))
			httputil.WriteErrorResponse(w, http.StatusInternalServerError, "internal error while creating habit", nil)
		}
		return
	}
	httputil.WriteJSONResponse(w, http.StatusCreated, habit)
	logger.Info("habit created")
}

func (s *Server) DeleteHabit(w http.ResponseWriter, r *http.Request) {
	logger := GetLoggerFromCtx(r.Context())
	uid, err := GetUserIDFromContext(r)
	if err != nil {
		logger.Error("habit deletion error: unauthorized")
		httputil.WriteErrorResponse(w, http.StatusUnauthorized, "no authorization", nil)
		return
	}
	ctx, cancel := context.WithTimeout(context.Background(), time.Second*10)
	defer cancel()
	err = s.habitsService.Delete(ctx, uid, &service.HabitIDRequest{ID: chi.URLParam(r, "id")})
	if err != nil {
		var validationErr *service.ValidationError
		switch {
		case errors.As(err, &validationErr):
			logger.Error("habit deletion error: validation failed")
			httputil.WriteValidationResponse(w, validationErr.Messages)
		case errors.Is(err, errorvalues.ErrHabitNotFound):
			logger.Error("habit deletion error: unexist habit")
			httputil.WriteErrorResponse(w, http.StatusNotFound, "Habit not found.", nil)
		default:
			logger.Error("habit deletion error: service error", slog.String("error", err.Error()))
			httputil.WriteErrorResponse(w, http.StatusInternalServerError, "internal error while deleting habit", nil)
		}
		return
	}
	httputil.WriteJSONResponse(w, http.StatusOK, map[string]any{"message": "Habit successfully removed."})
	logger.Info("habit deleted")
}

func (s *Server) ToggleHabit(w http.ResponseWriter, r *http.Request) {
	logger := GetLoggerFromCtx(r.Context())
	uid, err := GetUserIDFromContext(r)
	if err != nil {
		logger.Error("habit toggle error: unauthorized")
		httputil.WriteErrorResponse(w, http.StatusUnauthorized, "no authorization", nil)
		return
	}
	ctx, cancel := context.WithTimeout(context.Background(), time.Second*10)
	defer cancel()
	habit, err := s.habitsService.Toggle(ctx, uid, &service.HabitIDRequest{ID: chi.URLParam(r, "id")})
	if err != nil {
		var validationErr *service.ValidationError
		switch {
		case errors.As(err, &validationErr):
			logger.Error("habit toggle error: validation failed")
			httputil.WriteValidationResponse(w, validationErr.Messages)
		case errors.Is(err, errorvalues.ErrHabitNotFound):
			logger.Error("habit toggle error: unexist habit")
			httputil.WriteErrorResponse(w, http.StatusNotFound, "Habit not found.", nil)
		default:
			logger.Error("habit toggle error: service error", slog.String("error", err.Error()))
			httputil.WriteErrorResponse(w, http.StatusInternalServerError, "internal error while toggling habit", nil)
		}
		return
	}
	httputil.WriteJSONResponse(w, http.StatusOK, habit)
	logger.Info("habit toggled")
}

func (s *Server) HabitMetrics(w http.ResponseWriter, r *http.Request) {
	logger := GetLoggerFromCtx(r.Context())
	uid, err := GetUserIDFromContext(r)
	if err != nil {
		logger.Error("habit metrics error: unauthorized")
		httputil.WriteErrorResponse(w, http.StatusUnauthorized, "no authorization", nil)
		return
	}
	ctx, cancel := context.WithTimeout(context.Background(), time.Second*10)
	defer cancel()
	metrics, err := s.habitsService.MonthMetrics(ctx, uid, &service.HabitMetricsRequest{
		ID:   chi.URLParam(r, "id"),
		Date: r.URL.Query().Get("date"),
	})
	if err != nil {
		var validationErr *service.ValidationError
		switch {
		case errors.As(err, &validationErr):
			logger.Error("habit metrics error: validation failed")
			httputil.WriteValidationResponse(w, validationErr.Messages)
		case errors.Is(err, errorvalues.ErrHabitNotFound):
			logger.Error("habit metrics error: unexist habit")
			httputil.WriteErrorResponse(w, http.StatusNotFound, "Habit not found.", nil)
		default:
			logger.Error("habit metrics error: service error", slog.String("error", err.Error()))
			httputil.WriteErrorResponse(w, http.StatusInternalServerError, "internal error while getting habit metrics", nil)
		}
		return
	}
	httputil.WriteJSONResponse(w, http.StatusOK, metrics)
	logger.Info("habit metrics provided")
}

func (s *Server) CreateFocusTime(w http.ResponseWriter, r *http.Request) {
	logger := GetLoggerFromCtx(r.Context())
	uid, err := GetUserIDFromContext(r)
	if err != nil {
		logger.Error("create focus time error: unauthorized")
		httputil.WriteErrorResponse(w, http.StatusUnauthorized, "no authorization", nil)
		return
	}
	var req service.CreateFocusTimeRequest
	defer r.Body.Close()
	if err := sonic.ConfigDefault.NewDecoder(r.Body).Decode(&req); err != nil {
		logger.Error("create focus time error: invalid request body")
		httputil.WriteErrorResponse(w, http.StatusBadRequest, "invalid request body", nil)
		return
	}
	ctx, cancel := context.WithTimeout(context.Background(), time.Second*10)
	defer cancel()
	focusTime, err := s.focusTimesService.Create(ctx, uid, &req)
	if err != nil {
		var validationErr *service.ValidationError
		switch {
		case errors.As(err, &validationErr):
			logger.Error("create focus time error: validation failed")
			httputil.WriteValidationResponse(w, validationErr.Messages)
		case errors.Is(err, errorvalues.ErrInvalidTimeRange):
			logger.Error("create focus time error: timeTo before timeFrom")
			httputil.WriteErrorResponse(w, http.StatusBadRequest, "TimeTo cannot be before timeFrom.", nil)
		default:
			logger.Error("create focus time error: service error", slog.String("error", err.Error()))
			httputil.WriteErrorResponse(w, http.StatusInternalServerError, "internal error while creating focus time", nil)
		}
		return
	}
	httputil.WriteJSONResponse(w, http.StatusCreated, focusTime)
	logger.Info("focus time created")
}

func (s *Server) GetFocusTimes(w http.ResponseWriter, r *http.Request) {
	logger := GetLoggerFromCtx(r.Context())
	uid, err := GetUserIDFromContext(r)
	if err != nil {
		logger.Error("get focus times error: unauthorized")
		httputil.WriteErrorResponse(w, http.StatusUnauthorized, "no authorization", nil)
		return
	}
	ctx, cancel := context.WithTimeout(context.Background(), time.Second*10)
	defer cancel()
	focusTimes, err := s.focusTimesService.DayListing(ctx, uid, &service.DateRequest{Date: r.URL.Query().Get("date")})
	if err != nil {
		var validationErr *service.ValidationError
		switch {
		case errors.As(err, &validationErr):
			logger.Error("get focus times error: validation failed")
			httputil.WriteValidationResponse(w, validationErr.Messages)
		default:
			logger.Error("get focus times error: service error", slog.String("error", err.Error()))
			httputil.WriteErrorResponse(w, http.StatusInternalServerError, "error while getting focus times list", nil)
		}
		return
	}
	httputil.WriteJSONResponse(w, http.StatusOK, focusTimes)
	logger.Info("focus times provided")
}

func (s *Server) FocusTimeMetrics(w http.ResponseWriter, r *http.Request) {
	logger := GetLoggerFromCtx(r.Context())
	uid, err := GetUserIDFromContext(r)
	if err != nil {
		logger.Error("focus time metrics error: unauthorized")
		httputil.WriteErrorResponse(w, http.StatusUnauthorized, "no authorization", nil)
		return
	}
	ctx, cancel := context.WithTimeout(context.Background(), time.Second*10)
	defer cancel()
	counts, err := s.focusTimesService.MonthHistogram(ctx, uid, &service.DateRequest{Date: r.URL.Query().Get("date")})
	if err != nil {
		var validationErr *service.ValidationError
		switch {
		case errors.As(err, &validationErr):
			logger.Error("focus time metrics error: validation failed")
			httputil.WriteValidationResponse(w, validationErr.Messages)
		default:
			logger.Error("focus time metrics error: service error", slog.String("error", err.Error()))
			httputil.WriteErrorResponse(w, http.StatusInternalServerError, "internal error while getting focus time metrics", nil)
		}
		return
	}
	httputil.WriteJSONResponse(w, http.StatusOK, counts)
	logger.Info("focus time metrics provided")
}
