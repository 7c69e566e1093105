package tasks

import (
	"encoding/json"
	"fmt"
	"time"

	"adamosign/config"
	"adamosign/models"

	"github.com/hibiken/asynq"
)

const TypeSendReminder = "reminder:send"

// ReminderInterval is how often pending signers are re-notified when the
// sender enabled the remind-every-3-days option.
const ReminderInterval = 72 * time.Hour

// NewReminderTask builds the asynq task for a pending-signature reminder.
func NewReminderTask(payload models.ReminderPayload, fireAt time.Time) (*asynq.Task, []asynq.Option, error) {
	b, err := json.Marshal(payload)
	if err != nil {
		return nil, nil, err
	}
	task := asynq.NewTask(TypeSendReminder, b)
	opts := []asynq.Option{asynq.ProcessAt(fireAt)}

	return task, opts, nil
}

// AsynqReminderScheduler enqueues reminder tasks on the Redis-backed queue.
type AsynqReminderScheduler struct {
	client *asynq.Client
}

// NewAsynqReminderScheduler creates a scheduler on the reminder queue DB.
func NewAsynqReminderScheduler() *AsynqReminderScheduler {
	return &AsynqReminderScheduler{
		client: asynq.NewClient(asynq.RedisClientOpt{
			Addr:     config.AppConfig.RedisAddr,
			Password: config.AppConfig.RedisPassword,
			DB:       config.AppConfig.RedisReminderQueueDB,
		}),
	}
}

// ScheduleReminder enqueues the first reminder for a sent document. The
// worker re-enqueues follow-ups while signatures remain pending.
func (s *AsynqReminderScheduler) ScheduleReminder(doc *models.Document) error {
	payload := models.ReminderPayload{
		DocumentID: doc.ID,
		OwnerID:    doc.OwnerID,
		Filename:   doc.Filename,
	}
	task, opts, err := NewReminderTask(payload, time.Now().Add(ReminderInterval))
	if err != nil {
		return fmt.Errorf("failed to build reminder task: %w", err)
	}
	if _, err := s.client.Enqueue(task, opts...); err != nil {
		return fmt.Errorf("failed to enqueue reminder task: %w", err)
	}
	return nil
}
