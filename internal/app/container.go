package app

import (
	"context"

	"github.com/sirupsen/logrus"

	adapterrepo "github.com/eslsoft/lingodesk/internal/adapter/repository"
	"github.com/eslsoft/lingodesk/internal/infrastructure/config"
	"github.com/eslsoft/lingodesk/internal/infrastructure/database"
	"github.com/eslsoft/lingodesk/internal/infrastructure/server"
	"github.com/eslsoft/lingodesk/internal/usecase"
)

// Container aggregates the application dependencies.
type Container struct {
	Config *config.Config
	Logger *logrus.Logger
	Review usecase.ReviewUsecase
	Server *server.Server
}

// Initialize builds the application container and returns a cleanup
// function releasing the database connection.
func Initialize() (*Container, func(), error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, nil, err
	}

	logger, err := server.NewLogger(cfg)
	if err != nil {
		return nil, nil, err
	}

	db, closeDB, err := database.NewConnection(cfg)
	if err != nil {
		return nil, nil, err
	}
	if err := database.InitSchema(context.Background(), db); err != nil {
		closeDB()
		return nil, nil, err
	}

	repo := adapterrepo.NewReviewRepository(db)
	review := usecase.NewReviewUsecase(repo, cfg.Review.DueLimit)
	srv := server.NewServer(cfg, logger, review)

	container := &Container{
		Config: cfg,
		Logger: logger,
		Review: review,
		Server: srv,
	}
	return container, closeDB, nil
}
