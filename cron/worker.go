package cron

import (
	"context"
	"encoding/json"

	"github.com/hibiken/asynq"
	"go.uber.org/zap"

	"mistriconnect/config"
	"mistriconnect/services/notification"
	"mistriconnect/services/tasks"
	"mistriconnect/utils"
)

// InitNotificationWorker runs the async notification worker in background.
func InitNotificationWorker() {
	redisOpts := asynq.RedisClientOpt{
		Addr:     config.AppConfig.RedisAddr,
		Password: config.AppConfig.RedisPassword,
		DB:       config.AppConfig.RedisQueueDB,
	}

	srv := asynq.NewServer(
		redisOpts,
		asynq.Config{
			Concurrency: config.AppConfig.QueueConcurrency,
			Queues: map[string]int{
				"default": 1,
			},
		},
	)

	mux := asynq.NewServeMux()
	mux.HandleFunc(tasks.TypeBookingStatus, handleBookingStatusTask)

	go func() {
		utils.GetLogger().Info("starting notification worker")
		if err := srv.Run(mux); err != nil {
			utils.GetLogger().Error("notification worker stopped", zap.Error(err))
		}
	}()
}

func handleBookingStatusTask(ctx context.Context, task *asynq.Task) error {
	var payload tasks.BookingStatusPayload
	if err := json.Unmarshal(task.Payload(), &payload); err != nil {
		utils.GetLogger().Error("invalid booking status payload", zap.Error(err))
		return err
	}
	return notification.Deliver(ctx, payload)
}
