package entity

import "fmt"

// RuleType categorizes what a matched routing rule does with a message.
type RuleType string

const (
	RuleTypeSignal   RuleType = "SIGNAL"
	RuleTypeAnalysis RuleType = "ANALYSIS"
	RuleTypeFeed     RuleType = "FEED"
)

// TaskType categorizes a scheduled report task.
type TaskType string

const (
	TaskTypeTrendingFeed    TaskType = "TRENDING_FEED"
	TaskTypeAnalysisSummary TaskType = "ANALYSIS_SUMMARY"
)

// NotifyTargetKind selects the notification channel implementation.
type NotifyTargetKind string

const (
	NotifyTargetDiscord  NotifyTargetKind = "discord"
	NotifyTargetTelegram NotifyTargetKind = "telegram"
)

// NotifyTarget is one notification destination configured on a rule or a
// scheduled task.
type NotifyTarget struct {
	Kind       NotifyTargetKind `json:"kind"`
	WebhookURL string           `json:"webhook_url,omitempty"`
	ChatID     int64            `json:"chat_id,omitempty"`
}

// Validate checks that the target names a usable destination.
func (t *NotifyTarget) Validate() error {
	switch t.Kind {
	case NotifyTargetDiscord:
		if t.WebhookURL == "" {
			return fmt.Errorf("discord target requires webhook_url")
		}
	case NotifyTargetTelegram:
		if t.ChatID == 0 {
			return fmt.Errorf("telegram target requires chat_id")
		}
	default:
		return fmt.Errorf("unknown notify target kind %q", t.Kind)
	}
	return nil
}

// RoutingRule decides whether a message is routed and to where. Rules are
// supplied wholesale from the config store on every invocation; they are
// never persisted or mutated here.
type RoutingRule struct {
	Name       string         `json:"name"`
	Enabled    bool           `json:"enabled"`
	Type       RuleType       `json:"type"`
	ChannelIDs []string       `json:"channel_ids,omitempty"`
	UserIDs    []string       `json:"user_ids,omitempty"`
	Routes     []NotifyTarget `json:"routes,omitempty"`
}

// Validate reports whether the rule is well formed enough to evaluate.
func (r *RoutingRule) Validate() error {
	if r.Name == "" {
		return fmt.Errorf("rule requires a name")
	}
	switch r.Type {
	case RuleTypeSignal, RuleTypeAnalysis, RuleTypeFeed:
	default:
		return fmt.Errorf("rule %q has unknown type %q", r.Name, r.Type)
	}
	for i := range r.Routes {
		if err := r.Routes[i].Validate(); err != nil {
			return fmt.Errorf("rule %q route %d: %w", r.Name, i, err)
		}
	}
	return nil
}

// ScheduledTask is one periodic report definition, pulled fresh from the
// config store on each tick.
type ScheduledTask struct {
	Name            string         `json:"name"`
	Enabled         bool           `json:"enabled"`
	Type            TaskType       `json:"type"`
	IntervalMinutes int            `json:"interval_minutes"`
	LookbackMinutes int            `json:"lookback_minutes,omitempty"`
	MinMentions     int            `json:"min_mentions,omitempty"`
	Targets         []NotifyTarget `json:"targets,omitempty"`
}

// Normalize applies defaults: lookback falls back to the interval and the
// trending mention threshold falls back to 1.
func (t *ScheduledTask) Normalize() {
	if t.LookbackMinutes <= 0 {
		t.LookbackMinutes = t.IntervalMinutes
	}
	if t.MinMentions <= 0 {
		t.MinMentions = 1
	}
}

// Validate reports whether the task is well formed enough to schedule.
func (t *ScheduledTask) Validate() error {
	if t.Name == "" {
		return fmt.Errorf("scheduled task requires a name")
	}
	switch t.Type {
	case TaskTypeTrendingFeed, TaskTypeAnalysisSummary:
	default:
		return fmt.Errorf("task %q has unknown type %q", t.Name, t.Type)
	}
	if t.IntervalMinutes <= 0 {
		return fmt.Errorf("task %q has non-positive interval", t.Name)
	}
	for i := range t.Targets {
		if err := t.Targets[i].Validate(); err != nil {
			return fmt.Errorf("task %q target %d: %w", t.Name, i, err)
		}
	}
	return nil
}

// DueAt reports whether the task fires on the given epoch minute.
func (t *ScheduledTask) DueAt(epochMinute int64) bool {
	if !t.Enabled || t.IntervalMinutes <= 0 {
		return false
	}
	return epochMinute%int64(t.IntervalMinutes) == 0
}
