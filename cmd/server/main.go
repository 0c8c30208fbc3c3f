package main

import (
	"log"
	"os"

	"microblog/internal/config"
	"microblog/internal/models"
	"microblog/internal/queue"
	"microblog/internal/repository"
	"microblog/internal/router"
	"microblog/internal/search"
	"microblog/internal/service"
	"microblog/internal/utils"

	"github.com/go-redis/redis/v8"
	"github.com/sirupsen/logrus"
)

func main() {
	cfg, err := config.LoadConfig("./config/config.yaml")
	if err != nil {
		log.Fatalf("load config: %v", err)
	}

	logger := logrus.New()
	logger.SetFormatter(&logrus.JSONFormatter{})
	logger.SetOutput(os.Stdout)
	logger.SetLevel(logrus.InfoLevel)

	utils.InitValidator()

	if err := models.InitDB(cfg); err != nil {
		log.Fatalf("init database: %v", err)
	}
	db := models.GetDB()

	redisClient := redis.NewClient(&redis.Options{
		Addr:     cfg.Redis.GetAddress(),
		DB:       cfg.Redis.DB,
		Password: cfg.Redis.Password,
	})

	indexer := search.NewRedisIndexer(redisClient)
	hook := search.NewHook(indexer, logger)
	if err := hook.Register(db); err != nil {
		log.Fatalf("register search hook: %v", err)
	}

	q := queue.NewRedisQueue(redisClient, cfg.Redis.QueueName, cfg.Redis.GetTaskTTL())

	jwtManager := utils.NewJWTManager(
		cfg.JWT.SecretKey,
		cfg.JWT.Algorithm,
		cfg.JWT.GetExpireDuration(),
		cfg.JWT.GetResetExpireDuration(),
	)

	userRepo := repository.NewUserRepository(db)
	authService := service.NewAuthService(userRepo, jwtManager, cfg)
	if err := authService.InitAdmin(); err != nil {
		logger.Warnf("init admin account: %v", err)
	}

	r := router.SetupRouter(cfg, jwtManager, logger, db, q, hook, indexer)

	addr := cfg.Server.GetAddress()
	logger.Infof("server listening on %s", addr)

	if err := r.Run(addr); err != nil {
		log.Fatalf("start server: %v", err)
	}
}
