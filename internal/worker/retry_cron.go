package worker

// retry_cron.go
// Background goroutine that periodically redrives dead-lettered email jobs
// back onto their queue once the SMTP circuit breaker has recovered. Jobs
// that keep failing are parked for manual inspection instead of cycling
// through the DLQ forever.

import (
	"context"
	"encoding/json"
	"time"

	"github.com/Praborkar/Inventory-Management-billing-System/internal/infra"

	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog/log"
)

const (
	redriveTickInterval = 30 * time.Second
	redriveBatchSize    = 10
	// MaxJobRedrives caps how often a failed job is put back on its queue
	// before it is parked.
	MaxJobRedrives = 3

	ParkedPrefix = "dlq:parked:"
)

// DLQRedriveConfig holds all dependencies for the redrive goroutine.
type DLQRedriveConfig struct {
	RDB         *redis.Client
	SMTPBreaker *infra.CircuitBreaker
}

// StartDLQRedrive launches a background goroutine that ticks every 30s and
// requeues dead-lettered email jobs while the SMTP circuit is not open.
// It respects the context for graceful shutdown.
func StartDLQRedrive(ctx context.Context, cfg DLQRedriveConfig) {
	go func() {
		ticker := time.NewTicker(redriveTickInterval)
		defer ticker.Stop()

		log.Info().Msg("dlq_redrive: started")

		for {
			select {
			case <-ctx.Done():
				log.Info().Msg("dlq_redrive: shutting down")
				return
			case <-ticker.C:
				processRedrives(ctx, cfg)
			}
		}
	}()
}

func processRedrives(ctx context.Context, cfg DLQRedriveConfig) {
	// If the circuit is open the relay is still down; requeued jobs would
	// only bounce straight back into the DLQ.
	if cfg.SMTPBreaker.State() == infra.CBOpen {
		log.Debug().Msg("dlq_redrive: circuit breaker is open, skipping tick")
		return
	}

	dlqKey := DLQPrefix + QueueEmail
	for i := 0; i < redriveBatchSize; i++ {
		raw, err := cfg.RDB.RPop(ctx, dlqKey).Result()
		if err != nil {
			// redis.Nil means the DLQ is drained.
			return
		}

		var entry DLQEntry
		if err := json.Unmarshal([]byte(raw), &entry); err != nil {
			log.Error().Err(err).Msg("dlq_redrive: malformed DLQ entry, dropping")
			continue
		}

		if entry.Attempts >= MaxJobRedrives {
			if err := cfg.RDB.LPush(ctx, ParkedPrefix+QueueEmail, raw).Err(); err != nil {
				log.Error().Err(err).Msg("dlq_redrive: failed to park entry")
			}
			log.Error().
				Str("job_type", entry.JobType).
				Int("attempts", entry.Attempts).
				Msg("dlq_redrive: max redrives exceeded, parking job")
			continue
		}

		queue := entry.OriginalQueue
		if queue == "" {
			queue = QueueEmail
		}
		job := Job{Type: entry.JobType, Payload: entry.Payload, Attempts: entry.Attempts}
		encoded, err := json.Marshal(job)
		if err != nil {
			log.Error().Err(err).Msg("dlq_redrive: failed to marshal job")
			continue
		}
		if err := cfg.RDB.LPush(ctx, queue, encoded).Err(); err != nil {
			log.Error().Err(err).Str("queue", queue).Msg("dlq_redrive: failed to requeue job")
			return
		}

		log.Info().
			Str("queue", queue).
			Str("job_type", entry.JobType).
			Int("attempt", entry.Attempts+1).
			Msg("dlq_redrive: job requeued")
	}
}
