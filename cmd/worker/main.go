package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"

	"microblog/internal/config"
	"microblog/internal/models"
	"microblog/internal/queue"
	"microblog/internal/repository"
	"microblog/internal/service"
	"microblog/internal/storage"
	"microblog/internal/tasks"

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

	if err := models.InitDB(cfg); err != nil {
		log.Fatalf("init database: %v", err)
	}
	db := models.GetDB()

	redisClient := redis.NewClient(&redis.Options{
		Addr:     cfg.Redis.GetAddress(),
		DB:       cfg.Redis.DB,
		Password: cfg.Redis.Password,
	})

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	store, err := storage.NewExportStore(&cfg.Storage)
	if err != nil {
		log.Fatalf("init export store: %v", err)
	}
	if err := store.EnsureBucket(ctx); err != nil {
		log.Fatalf("ensure export bucket: %v", err)
	}

	q := queue.NewRedisQueue(redisClient, cfg.Redis.QueueName, cfg.Redis.GetTaskTTL())

	userRepo := repository.NewUserRepository(db)
	postRepo := repository.NewPostRepository(db)
	notificationRepo := repository.NewNotificationRepository(db)
	jobRepo := repository.NewJobRepository(db)

	jobService := service.NewJobService(db, jobRepo, notificationRepo, q, logger)

	worker := queue.NewWorker(q, logger, cfg.Worker.Count)
	worker.Register(tasks.ExportPostsTask, tasks.NewExportPostsTask(
		jobService, postRepo, userRepo, notificationRepo, store, logger,
	))

	worker.Start(ctx)
	logger.Infof("worker started with %d goroutines on queue %s", cfg.Worker.Count, cfg.Redis.QueueName)

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Info("worker shutting down")
	worker.Stop()
}
