package repository

import (
	"context"
	"encoding/json"
	"errors"

	"golang-ticker-relay/internal/entity"
	"golang-ticker-relay/pkg/common"
	"golang-ticker-relay/pkg/logger"

	"github.com/redis/go-redis/v9"
)

// TaskConfigRepository supplies the scheduled task definitions for one tick.
// Definitions are read fresh on every tick; there is no local caching.
type TaskConfigRepository interface {
	GetScheduledTasks(ctx context.Context) ([]entity.ScheduledTask, error)
}

// NewTaskConfigRepository creates a redis-backed TaskConfigRepository.
func NewTaskConfigRepository(client *redis.Client, log *logger.Logger) TaskConfigRepository {
	return &taskConfigRepository{
		client: client,
		logger: log,
	}
}

type taskConfigRepository struct {
	client *redis.Client
	logger *logger.Logger
}

// GetScheduledTasks reads the task list from its config key. A missing key
// yields an empty list. Tasks that fail validation are skipped with a
// warning; surviving tasks are normalized (lookback and mention defaults).
func (r *taskConfigRepository) GetScheduledTasks(ctx context.Context) ([]entity.ScheduledTask, error) {
	raw, err := r.client.Get(ctx, common.RedisKeyScheduledTasks).Result()
	if errors.Is(err, redis.Nil) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}

	var tasks []entity.ScheduledTask
	if err := json.Unmarshal([]byte(raw), &tasks); err != nil {
		return nil, err
	}

	valid := tasks[:0]
	for _, task := range tasks {
		if err := task.Validate(); err != nil {
			r.logger.Warn("Skipping invalid scheduled task", logger.ErrorField(err))
			continue
		}
		task.Normalize()
		valid = append(valid, task)
	}
	return valid, nil
}
