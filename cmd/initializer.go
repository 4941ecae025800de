package main

import (
	"database/sql"
	"log"

	"github.com/redis/go-redis/v9"

	"avidoBack/internal/config"
	"avidoBack/internal/fixtures"
	"avidoBack/internal/handlers"
	"avidoBack/internal/jobs"
	"avidoBack/internal/mailer"
	"avidoBack/internal/repositories"
	"avidoBack/internal/search"
	"avidoBack/internal/services"
	"avidoBack/utils"
)

type application struct {
	errorLog *log.Logger
	infoLog  *log.Logger

	tokenManager *utils.Manager

	userHandler          *handlers.UserHandler
	advertisementHandler *handlers.AdvertisementHandler
	categoryHandler      *handlers.CategoryHandler
	regionHandler        *handlers.RegionHandler
	cityHandler          *handlers.CityHandler
	moderationHandler    *handlers.ModerationHandler
	jobHandler           *handlers.JobHandler

	fixtureLoader *fixtures.Loader
	jobRunner     *jobs.Runner
}

func initializeApp(cfg config.Config, db *sql.DB, rdb *redis.Client, searchClient *search.Client, errorLog, infoLog *log.Logger) (*application, error) {
	tokenManager, err := utils.NewManager(cfg.Auth.SigningKey)
	if err != nil {
		return nil, err
	}

	storage := utils.NewStorage(
		cfg.Storage.Endpoint,
		cfg.Storage.Region,
		cfg.Storage.Bucket,
		cfg.Storage.AccessKey,
		cfg.Storage.SecretKey,
	)

	// Repositories
	userRepo := repositories.UserRepository{DB: db}
	adRepo := repositories.AdvertisementRepository{DB: db}
	categoryRepo := repositories.CategoryRepository{DB: db}
	regionRepo := repositories.RegionRepository{DB: db}
	cityRepo := repositories.CityRepository{DB: db}
	moderationRepo := repositories.ModerationRepository{DB: db}
	jobRepo := repositories.JobRepository{DB: db}
	viewTracker := repositories.NewViewTracker(rdb)

	// Services
	userService := &services.UserService{
		UserRepo:     &userRepo,
		JobRepo:      &jobRepo,
		TokenManager: tokenManager,
		BaseURL:      cfg.Server.BaseURL,
	}
	adService := &services.AdvertisementService{
		AdRepo:      &adRepo,
		ViewTracker: viewTracker,
		ErrorLog:    errorLog,
	}
	// nil *search.Client в интерфейсном поле не равен nil
	if searchClient != nil {
		adService.Search = searchClient
	}
	categoryService := &services.CategoryService{CategoryRepo: &categoryRepo}
	regionService := &services.RegionService{RegionRepo: &regionRepo}
	cityService := &services.CityService{CityRepo: &cityRepo, RegionRepo: &regionRepo}
	moderationService := &services.ModerationService{ModerationRepo: &moderationRepo, AdRepo: &adRepo}
	jobService := &services.JobService{JobRepo: &jobRepo}

	runner := &jobs.Runner{
		JobRepo:  &jobRepo,
		UserRepo: &userRepo,
		Mailer:   mailer.New(cfg.SMTP.Host, cfg.SMTP.Port, cfg.SMTP.Email, cfg.SMTP.Password),
		Avatars:  jobs.NewPlaceholderAvatars(),
		Storage:  storage,
		ErrorLog: errorLog,
	}

	loader := &fixtures.Loader{
		Dir:          cfg.Fixtures.Dir,
		UserRepo:     &userRepo,
		RegionRepo:   &regionRepo,
		CityRepo:     &cityRepo,
		CategoryRepo: &categoryRepo,
		AdRepo:       &adRepo,
		InfoLog:      infoLog,
	}

	return &application{
		errorLog:             errorLog,
		infoLog:              infoLog,
		tokenManager:         tokenManager,
		userHandler:          &handlers.UserHandler{Service: userService},
		advertisementHandler: &handlers.AdvertisementHandler{Service: adService, Storage: storage},
		categoryHandler:      &handlers.CategoryHandler{Service: categoryService},
		regionHandler:        &handlers.RegionHandler{Service: regionService},
		cityHandler:          &handlers.CityHandler{Service: cityService},
		moderationHandler:    &handlers.ModerationHandler{Service: moderationService},
		jobHandler:           &handlers.JobHandler{Service: jobService},
		fixtureLoader:        loader,
		jobRunner:            runner,
	}, nil
}
