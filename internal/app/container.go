package app

import (
	"context"
	"time"

	"bid-match/internal/config"
	"bid-match/internal/database"
	dbpostgres "bid-match/internal/database/postgres"
	"bid-match/internal/database/schema"
	"bid-match/internal/database/seeder"
	"bid-match/internal/infrastructure/cache"
	"bid-match/internal/repository"
	"bid-match/internal/usecase"
	"bid-match/internal/ws"

	"go.uber.org/zap"
)

// Container wires the whole dependency graph: database, cache, websocket
// hub, repositories and usecases.
type Container struct {
	Config config.Config
	Logger *zap.Logger
	DB     database.DB
	Cache  *cache.Redis
	Hub    *ws.Hub

	JDSpecs     usecase.JDSpecUsecase
	Bids        usecase.BidUsecase
	Correlation usecase.CorrelationUsecase
	Dictionary  usecase.DictionaryUsecase
	Review      usecase.ReviewUsecase
	Statistics  usecase.StatisticsUsecase
	Resumes     usecase.ResumeUsecase
}

func NewContainer(cfg config.Config, logger *zap.Logger) (*Container, error) {
	if logger == nil {
		logger = zap.NewNop()
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	db, err := dbpostgres.Connect(ctx, cfg.Database)
	if err != nil {
		return nil, err
	}
	if err := schema.Ensure(ctx, db); err != nil {
		_ = db.Close()
		return nil, err
	}

	redisCache := cache.NewRedis(logger)

	hub := ws.NewHub(logger)
	ws.SetDefaultHub(hub)
	notifier := usecase.QueueNotifierFunc(ws.NotifyQueueUpdated)

	specRepo := repository.NewPostgresJDSpecRepository(db)
	bidRepo := repository.NewPostgresBidRepository(db)
	resumeRepo := repository.NewPostgresResumeRepository(db)
	dictRepo := repository.NewPostgresDictionaryRepository(db)
	queueRepo := repository.NewPostgresQueueRepository(db)

	if cfg.App.SeedDefaults {
		if err := seeder.Run(ctx, dictRepo, logger); err != nil {
			_ = db.Close()
			return nil, err
		}
	}

	c := &Container{
		Config:      cfg,
		Logger:      logger,
		DB:          db,
		Cache:       redisCache,
		Hub:         hub,
		JDSpecs:     usecase.NewJDSpecUsecase(specRepo, dictRepo, queueRepo, redisCache, notifier),
		Bids:        usecase.NewBidUsecase(bidRepo),
		Correlation: usecase.NewCorrelationUsecase(specRepo, bidRepo),
		Dictionary:  usecase.NewDictionaryUsecase(dictRepo, redisCache),
		Review:      usecase.NewReviewUsecase(queueRepo, dictRepo, redisCache, notifier),
		Statistics:  usecase.NewStatisticsUsecase(specRepo, resumeRepo, dictRepo, redisCache, logger),
		Resumes:     usecase.NewResumeUsecase(resumeRepo, redisCache),
	}
	return c, nil
}

func (c *Container) Close() error {
	if c == nil {
		return nil
	}
	if c.DB == nil {
		return nil
	}
	return c.DB.Close()
}
