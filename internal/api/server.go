package api

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/lucasfgaldinos/habitus-api/internal/service"
	jwtservice "github.com/lucasfgaldinos/habitus-api/pkg/jwt_service"
)

type Server struct {
	mx                *chi.Mux
	authService       service.AuthServiceI
	habitsService     service.HabitsServiceI
	focusTimesService service.FocusTimesServiceI
	jwtService        *jwtservice.JWTService
}

type ServicesList struct {
	AuthService       service.AuthServiceI
	HabitsService     service.HabitsServiceI
	FocusTimesService service.FocusTimesServiceI
	JwtService        *jwtservice.JWTService
}

func New(servicesOptions *ServicesList) *Server {
	s := &Server{
		mx:                chi.NewMux(),
		authService:       servicesOptions.AuthService,
		habitsService:     servicesOptions.HabitsService,
		focusTimesService: servicesOptions.FocusTimesService,
		jwtService:        servicesOptions.JwtService,
	}
	s.registerRoutes()
	return s
}

func (s *Server) registerRoutes() {
	s.mx.Use(s.RequestIDMiddleware, s.SettingUpLoggerMiddleware)

	s.mx.Get("/", s.Info)
	s.mx.Get("/auth", s.Auth)
	s.mx.Get("/auth/callback", s.AuthCallback)

	s.mx.Group(func(r chi.Router) {
		r.Use(s.AuthMiddleware)

		r.Get("/habit", s.GetHabits)
		r.Post("/habit", s.CreateHabit)
		r.Delete("/habit/{id}", s.DeleteHabit)
		r.Patch("/habit/{id}/toggle", s.ToggleHabit)
		r.Get("/habit/{id}/metrics", s.HabitMetrics)

		r.Post("/focus-time", s.CreateFocusTime)
		r.Get("/focus-time", s.GetFocusTimes)
		r.Get("/focus-time/metrics", s.FocusTimeMetrics)
	})
}

func (s *Server) Run(addr string) error {
	return http.ListenAndServe(addr, s.mx)
}

// Handler exposes the mux for tests.
func (s *Server) Handler() http.Handler {
	return s.mx
}
