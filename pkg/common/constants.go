package common

const (
	// RedisKeyRoutingRules holds the JSON list of routing rules consumed by
	// the ingest service. The list is read fresh on every inbound message.
	RedisKeyRoutingRules = "relay.routing.rules"

	// RedisKeyScheduledTasks holds the JSON list of scheduled report tasks
	// consumed by the report service. Read fresh on every tick.
	RedisKeyScheduledTasks = "relay.scheduled.tasks"
)

const (
	// AppLogRetentionDays is how long audit log rows are kept before the
	// daily maintenance purge removes them.
	AppLogRetentionDays = 7
)
