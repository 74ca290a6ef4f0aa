package tasks

import (
	"encoding/json"
	"time"

	"github.com/hibiken/asynq"

	"voyago/models"
)

const TypeTripReminder = "reminder:trip"

// NewTripReminderTask builds the asynq task carrying a trip reminder,
// scheduled to fire at the given time.
func NewTripReminderTask(payload models.TripReminderPayload, fireAt time.Time) (*asynq.Task, []asynq.Option, error) {
	b, err := json.Marshal(payload)
	if err != nil {
		return nil, nil, err
	}
	task := asynq.NewTask(TypeTripReminder, b)
	opts := []asynq.Option{asynq.ProcessAt(fireAt)}

	return task, opts, nil
}
