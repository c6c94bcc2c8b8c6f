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

// NewRuleConfigRepository creates a redis-backed RuleConfigRepository.
func NewRuleConfigRepository(client *redis.Client, log *logger.Logger) RuleConfigRepository {
	return &ruleConfigRepository{
		client: client,
		logger: log,
	}
}

type ruleConfigRepository struct {
	client *redis.Client
	logger *logger.Logger
}

// GetRoutingRules reads the routing rule list from its config key. A missing
// key yields an empty list. Rules that fail validation are skipped with a
// warning rather than failing the whole read.
func (r *ruleConfigRepository) GetRoutingRules(ctx context.Context) ([]entity.RoutingRule, error) {
	raw, err := r.client.Get(ctx, common.RedisKeyRoutingRules).Result()
	if errors.Is(err, redis.Nil) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}

	var rules []entity.RoutingRule
	if err := json.Unmarshal([]byte(raw), &rules); err != nil {
		return nil, err
	}

	valid := rules[:0]
	for _, rule := range rules {
		if err := rule.Validate(); err != nil {
			r.logger.Warn("Skipping invalid routing rule", logger.ErrorField(err))
			continue
		}
		valid = append(valid, rule)
	}
	return valid, nil
}
