package job

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/deppfellow/go-users/internal/config"
	"github.com/deppfellow/go-users/internal/lib/email"
	"github.com/hibiken/asynq"
)

// InitHandlers builds the dependencies the task handlers need.
// It must be called before Start.
func (j *JobService) InitHandlers(cfg *config.Config) {
	j.mailer = email.NewClient(cfg, j.logger)
}

func (j *JobService) handleWelcomeEmailTask(ctx context.Context, t *asynq.Task) error {
	var p WelcomeEmailPayload
	if err := json.Unmarshal(t.Payload(), &p); err != nil {
		return fmt.Errorf("failed to unmarshal welcome email payload: %v: %w", err, asynq.SkipRetry)
	}

	log := j.logger.With().Str("type", TaskWelcome).Str("to", p.To).Logger()
	log.Info().Msg("processing welcome email task")

	if err := j.mailer.SendWelcomeEmail(p.To, p.Name); err != nil {
		log.Error().Err(err).Msg("failed to send welcome email")
		return err
	}

	log.Info().Msg("sent welcome email")
	return nil
}
