package app

import (
	"jobverse/config"
	"jobverse/internal/services"
	"jobverse/internal/storage"
	"jobverse/internal/storage/postgres"
	"jobverse/internal/uploads"

	"github.com/go-playground/validator/v10"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/redis/go-redis/v9"
)

// Application holds core application dependencies.
type Application struct {
	Config      *config.Config
	DBPool      *pgxpool.Pool
	RedisClient *redis.Client
	Validator   *validator.Validate
	Uploads     *uploads.Store

	UserRepo        storage.UserRepository
	JobRepo         storage.JobRepository
	ApplicationRepo storage.ApplicationRepository
	TxManager       storage.TxManager

	UserService        services.UserService
	JobService         services.JobService
	ApplicationService services.ApplicationService
	AdminService       services.AdminService
}

// New wires the repositories and services on top of the shared
// infrastructure clients.
func New(cfg *config.Config, pool *pgxpool.Pool, redisClient *redis.Client, validate *validator.Validate, store *uploads.Store) *Application {
	userRepo := postgres.NewUserRepo(pool)
	jobRepo := postgres.NewJobRepo(pool)
	applicationRepo := postgres.NewApplicationRepo(pool)
	txManager := postgres.NewTxManager(pool)

	return &Application{
		Config:      cfg,
		DBPool:      pool,
		RedisClient: redisClient,
		Validator:   validate,
		Uploads:     store,

		UserRepo:        userRepo,
		JobRepo:         jobRepo,
		ApplicationRepo: applicationRepo,
		TxManager:       txManager,

		UserService:        services.NewUserService(userRepo, cfg.JWT.Secret, cfg.JWT.Expiration),
		JobService:         services.NewJobService(jobRepo, applicationRepo, userRepo, txManager, redisClient),
		ApplicationService: services.NewApplicationService(applicationRepo, jobRepo, userRepo, txManager),
		AdminService:       services.NewAdminService(userRepo, jobRepo, applicationRepo, txManager, redisClient),
	}
}
