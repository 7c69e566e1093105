package cron

import (
	"context"
	"encoding/json"
	"log"
	"time"

	"adamosign/config"
	docRepo "adamosign/database/repository/document"
	"adamosign/models"
	"adamosign/services/notifier"
	"adamosign/services/tasks"

	"github.com/go-redis/redis/v8"
	"github.com/hibiken/asynq"
)

// InitReminderWorker runs the async worker in background. It re-notifies
// pending signers of documents whose sender enabled periodic reminders, and
// re-enqueues itself while signatures remain outstanding.
func InitReminderWorker(repo docRepo.DocumentRepository, notifSvc notifier.Notifier, scheduler *tasks.AsynqReminderScheduler) {
	redisOpts := asynq.RedisClientOpt{
		Addr:     config.AppConfig.RedisAddr,
		Password: config.AppConfig.RedisPassword,
		DB:       config.AppConfig.RedisReminderQueueDB,
	}

	srv := asynq.NewServer(
		redisOpts,
		asynq.Config{
			Concurrency: 10,
			Queues: map[string]int{
				"default": 1,
			},
		},
	)

	mux := asynq.NewServeMux()
	mux.HandleFunc(tasks.TypeSendReminder, handleReminderTask(repo, notifSvc, scheduler))

	// Start Redis health monitor
	go monitorRedisConnection()

	// Start async worker with retry logic
	go func() {
		log.Println("[ReminderWorker] starting async worker...")
		const maxAttempts = 5

		for attempts := 1; attempts <= maxAttempts; attempts++ {
			if err := srv.Run(mux); err != nil {
				log.Printf("[ReminderWorker] attempt %d/%d failed to start worker: %v", attempts, maxAttempts, err)

				if attempts == maxAttempts {
					log.Fatal("[ReminderWorker] max retry attempts reached. Exiting.")
				}
				time.Sleep(time.Duration(attempts*2) * time.Second) // Exponential backoff
			} else {
				break
			}
		}
	}()
}

func handleReminderTask(repo docRepo.DocumentRepository, notifSvc notifier.Notifier, scheduler *tasks.AsynqReminderScheduler) asynq.HandlerFunc {
	return func(ctx context.Context, task *asynq.Task) error {
		var p models.ReminderPayload
		if err := json.Unmarshal(task.Payload(), &p); err != nil {
			log.Printf("[ReminderHandler] invalid payload: %v", err)
			return err
		}

		doc, err := repo.GetByID(p.DocumentID)
		if err != nil {
			log.Printf("[ReminderHandler] failed to load document %s: %v", p.DocumentID, err)
			return err
		}
		if doc == nil {
			// Document was deleted; drop the reminder chain.
			return nil
		}

		if doc.Status != models.DocumentStatusSent && doc.Status != models.DocumentStatusPartial {
			log.Printf("[ReminderHandler] document %s is %s, stopping reminders", doc.ID, doc.Status)
			return nil
		}

		for _, signer := range doc.PendingSigners() {
			if err := notifSvc.NotifyInvitation(ctx, doc, signer); err != nil {
				log.Printf("[ReminderHandler] failed to re-notify signer %s: %v", signer.SignerID, err)
			}
		}

		if err := scheduler.ScheduleReminder(doc); err != nil {
			log.Printf("[ReminderHandler] failed to re-enqueue reminder for %s: %v", doc.ID, err)
		}
		return nil
	}
}

// monitorRedisConnection pings Redis periodically to detect failures at runtime.
func monitorRedisConnection() {
	client := redis.NewClient(&redis.Options{
		Addr:     config.AppConfig.RedisAddr,
		Password: config.AppConfig.RedisPassword,
		DB:       config.AppConfig.RedisReminderQueueDB,
	})

	ctx := context.Background()

	for {
		if err := client.Ping(ctx).Err(); err != nil {
			log.Printf("[ReminderWorker] redis connection lost: %v", err)
		}
		time.Sleep(10 * time.Second)
	}
}
