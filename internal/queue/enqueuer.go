// Package queue hands finished submissions off to the out-of-process AI
// worker. The handoff is fire-and-forget: the orchestrator persists the
// queue descriptor, pushes one job and returns without waiting.
package queue

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"

	"github.com/varta-media/newsdesk/internal/models"
)

const connectionTimeout = 2 * time.Second

// RewriteJob is the contract with the AI worker. The worker owns the
// article's aiStatus from the moment this job is visible.
type RewriteJob struct {
	BaseArticleID uuid.UUID              `json:"base_article_id"`
	TenantID      *uuid.UUID             `json:"tenant_id,omitempty"`
	Mode          models.AIMode          `json:"mode"`
	PromptsToRun  []string               `json:"prompts_to_run"`
	Targets       models.QueueDescriptor `json:"targets"`
	CallbackURL   string                 `json:"callback_url,omitempty"`
	EnqueuedAt    time.Time              `json:"enqueued_at"`
}

// NewClient creates a Redis client and verifies connectivity.
func NewClient(addr, password string, db int) (*redis.Client, error) {
	client := redis.NewClient(&redis.Options{
		Addr:     addr,
		Password: password,
		DB:       db,
	})

	pingCtx, cancel := context.WithTimeout(context.Background(), connectionTimeout)
	defer cancel()

	if err := client.Ping(pingCtx).Err(); err != nil {
		return nil, fmt.Errorf("connect to redis: %w", err)
	}

	return client, nil
}

// RedisEnqueuer pushes rewrite jobs onto the worker's list.
type RedisEnqueuer struct {
	client *redis.Client
	key    string
}

// NewRedisEnqueuer creates an enqueuer writing to the given list key.
func NewRedisEnqueuer(client *redis.Client, key string) *RedisEnqueuer {
	return &RedisEnqueuer{client: client, key: key}
}

// EnqueueRewrite serializes the job and LPUSHes it. No acknowledgement is
// awaited; the worker consumes with BRPOP.
func (e *RedisEnqueuer) EnqueueRewrite(ctx context.Context, job *RewriteJob) error {
	if job.EnqueuedAt.IsZero() {
		job.EnqueuedAt = time.Now().UTC()
	}

	payload, err := json.Marshal(job)
	if err != nil {
		return fmt.Errorf("marshal rewrite job: %w", err)
	}

	if err := e.client.LPush(ctx, e.key, payload).Err(); err != nil {
		return fmt.Errorf("enqueue rewrite job: %w", err)
	}

	return nil
}
