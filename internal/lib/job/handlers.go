package job

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/hibiken/asynq"

	"github.com/elien2016/customers/internal/lib/email"
)

// WelcomeSender delivers the welcome email. *email.Client implements it.
type WelcomeSender interface {
	SendWelcomeEmail(to, firstName string) error
}

// handleWelcomeEmailTask sends the email described by the task payload.
//
// An undecodable payload or an unconfigured mailer is wrapped with
// asynq.SkipRetry. Any other send failure is returned as is and retried.
func (j *JobService) handleWelcomeEmailTask(ctx context.Context, t *asynq.Task) error {
	var p WelcomeEmailPayload
	if err := json.Unmarshal(t.Payload(), &p); err != nil {
		return fmt.Errorf("decoding %s payload: %v: %w", t.Type(), err, asynq.SkipRetry)
	}

	log := j.logger.With().
		Str("task", t.Type()).
		Str("to", p.To).
		Logger()

	log.Debug().Msg("sending welcome email")

	if err := j.mailer.SendWelcomeEmail(p.To, p.FirstName); err != nil {
		log.Error().Err(err).Msg("welcome email failed")
		if errors.Is(err, email.ErrNotConfigured) {
			return fmt.Errorf("%w: %w", err, asynq.SkipRetry)
		}
		return err
	}

	log.Info().Msg("welcome email sent")
	return nil
}
