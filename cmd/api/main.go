package main

import (
	"context"
	"log"
	"time"

	"github.com/lucasfgaldinos/habitus-api/internal/api"
	"github.com/lucasfgaldinos/habitus-api/internal/repository"
	"github.com/lucasfgaldinos/habitus-api/internal/service"
	"github.com/lucasfgaldinos/habitus-api/pkg/cleanup"
	"github.com/lucasfgaldinos/habitus-api/pkg/config"
	jwtservice "github.com/lucasfgaldinos/habitus-api/pkg/jwt_service"
)

func init() {
	service.InitValidator()
}

func main() {
	defer cleanup.CleanUp()

	cfg := config.Load()

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	db, err := repository.NewMongoDatabase(ctx, cfg.MongoURL)
	cancel()
	if err != nil {
		log.Fatal("database initialization error: " + err.Error())
	}

	jwtService := jwtservice.New(cfg.JWTSecret)
	serv := api.New(&api.ServicesList{
		AuthService:       service.NewGithubAuthService(cfg.GithubClientID, cfg.GithubClientSecret, jwtService),
		HabitsService:     service.NewHabitsService(repository.NewHabitsRepo(db)),
		FocusTimesService: service.NewFocusTimesService(repository.NewFocusTimesRepo(db)),
		JwtService:        jwtService,
	})
	err = serv.Run(":" + cfg.Port)
	if err != nil {
		log.Println("Server error: " + err.Error())
	}
}
