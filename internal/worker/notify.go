// Package worker runs the best-effort WhatsApp notification pipeline.
// Jobs are queued in a redis list and consumed by a goroutine pool; when
// redis is unavailable the dispatcher degrades to a direct async send.
// Notification failures are logged and never surface to the request that
// triggered them.
package worker

import (
	"context"
	"encoding/json"
	"time"

	"github.com/FMG-lab/surya-painting/internal/infra"

	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog/log"
)

const QueueNotify = "jobs:notify"

// NotifyJob is the envelope pushed onto the notify queue.
type NotifyJob struct {
	Message string `json:"message"`
}

// Dispatcher enqueues notification jobs into redis. The worker pool
// dequeues them via BRPOP.
type Dispatcher struct {
	rdb    *redis.Client // nil → direct send fallback
	fonnte *infra.FonnteClient
}

func NewDispatcher(rdb *redis.Client, fonnte *infra.FonnteClient) *Dispatcher {
	return &Dispatcher{rdb: rdb, fonnte: fonnte}
}

// Notify queues a WhatsApp message for the admin recipients. Always
// best-effort: enqueue/delivery failures are logged, never returned.
func (d *Dispatcher) Notify(ctx context.Context, message string) {
	if d.rdb == nil {
		// No queue available — fire and forget in the background so the
		// request is not held hostage by the gateway.
		go func() {
			sendCtx, cancel := context.WithTimeout(context.Background(), 20*time.Second)
			defer cancel()
			if err := d.fonnte.Send(sendCtx, message); err != nil {
				log.Error().Err(err).Msg("direct notification send failed")
			}
		}()
		return
	}

	encoded, err := json.Marshal(NotifyJob{Message: message})
	if err != nil {
		log.Error().Err(err).Msg("failed to marshal notify job")
		return
	}
	if err := d.rdb.LPush(ctx, QueueNotify, encoded).Err(); err != nil {
		log.Error().Err(err).Msg("failed to enqueue notify job")
	}
}

// StartPool launches numWorkers goroutines consuming the notify queue.
// Each goroutine blocks on BRPOP — zero CPU when idle.
func StartPool(ctx context.Context, rdb *redis.Client, fonnte *infra.FonnteClient, numWorkers int) {
	for i := 0; i < numWorkers; i++ {
		go runWorker(ctx, rdb, fonnte, i)
	}
	log.Info().Msgf("notify worker pool started with %d workers", numWorkers)
}

func runWorker(ctx context.Context, rdb *redis.Client, fonnte *infra.FonnteClient, id int) {
	for {
		select {
		case <-ctx.Done():
			log.Info().Msgf("notify worker %d shutting down", id)
			return
		default:
			// Blocking pop — waits up to 5s then loops to check ctx
			result, err := rdb.BRPop(ctx, 5*time.Second, QueueNotify).Result()
			if err != nil {
				continue // timeout or context cancelled
			}
			if len(result) < 2 {
				continue
			}
			processJob(ctx, fonnte, result[1])
		}
	}
}

func processJob(ctx context.Context, fonnte *infra.FonnteClient, raw string) {
	var job NotifyJob
	if err := json.Unmarshal([]byte(raw), &job); err != nil {
		log.Error().Err(err).Msg("failed to unmarshal notify job")
		return
	}
	if err := fonnte.Send(ctx, job.Message); err != nil {
		// Best-effort: log and drop, no retry.
		log.Error().Err(err).Msg("notification delivery failed")
	}
}
