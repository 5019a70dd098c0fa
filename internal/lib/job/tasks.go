package job

import (
	"encoding/json"
	"time"

	"github.com/hibiken/asynq"
)

// Queue names, weighted by the worker server in NewJobService.
const (
	QueueCritical = "critical"
	QueueDefault  = "default"
	QueueLow      = "low"
)

// TaskWelcome is the type of the task sent once per created customer.
const TaskWelcome = "customer:welcome_email"

const (
	welcomeMaxRetry = 3
	welcomeTimeout  = 30 * time.Second
)

// WelcomeEmailPayload is what a welcome task carries in Redis.
type WelcomeEmailPayload struct {
	To        string `json:"to"`
	FirstName string `json:"first_name"`
}

// NewWelcomeEmailTask encodes the payload into a task on the default queue.
func NewWelcomeEmailTask(to, firstName string) (*asynq.Task, error) {
	payload, err := json.Marshal(WelcomeEmailPayload{To: to, FirstName: firstName})
	if err != nil {
		return nil, err
	}

	return asynq.NewTask(TaskWelcome, payload,
		asynq.Queue(QueueDefault),
		asynq.MaxRetry(welcomeMaxRetry),
		asynq.Timeout(welcomeTimeout),
	), nil
}
