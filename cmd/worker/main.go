package main

import (
	"github.com/hibiken/asynq"
	"go.uber.org/zap"

	"github.com/recipevault/engine/internal/queue/tasks"
	"github.com/recipevault/engine/internal/storage"
	"github.com/recipevault/engine/pkg/config"
	"github.com/recipevault/engine/pkg/logger"
)

func main() {
	cfg := config.MustLoad()

	log, err := logger.Init(cfg.LogLevel, cfg.LogFormat)
	if err != nil {
		panic(err)
	}
	defer logger.Sync()

	images, err := storage.NewImageStore(cfg.UploadDir)
	if err != nil {
		log.Fatal("failed to prepare image store", zap.Error(err))
	}

	srv := asynq.NewServer(
		asynq.RedisClientOpt{Addr: cfg.RedisAddr, Password: cfg.RedisPassword},
		asynq.Config{Concurrency: cfg.AsynqConcurrency},
	)

	mux := asynq.NewServeMux()
	mux.HandleFunc(tasks.TypeImageCleanup, tasks.NewImageCleanupHandler(images).HandleImageCleanup)

	log.Info("worker starting", zap.String("redis", cfg.RedisAddr), zap.Int("concurrency", cfg.AsynqConcurrency))
	if err := srv.Run(mux); err != nil {
		log.Fatal("worker stopped", zap.Error(err))
	}
}
