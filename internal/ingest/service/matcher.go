package service

import (
	"strings"

	"golang-ticker-relay/internal/entity"
)

// RuleMatch pairs a satisfied rule with its action category.
type RuleMatch struct {
	Rule     entity.RoutingRule
	Category entity.RuleType
}

// MatchRules returns every enabled rule whose predicate is satisfied by the
// message. All rules are evaluated independently; this is not a
// first-match-wins dispatch, and every match contributes its own tasks.
func MatchRules(msg *entity.Message, rules []entity.RoutingRule) []RuleMatch {
	var matches []RuleMatch
	for _, rule := range rules {
		if !rule.Enabled {
			continue
		}
		if !ruleMatches(msg, &rule) {
			continue
		}
		matches = append(matches, RuleMatch{Rule: rule, Category: rule.Type})
	}
	return matches
}

// MatchedRuleNames returns the matched rule names in evaluation order, for
// audit logging.
func MatchedRuleNames(matches []RuleMatch) []string {
	names := make([]string, 0, len(matches))
	for _, m := range matches {
		names = append(names, m.Rule.Name)
	}
	return names
}

func ruleMatches(msg *entity.Message, rule *entity.RoutingRule) bool {
	// Test-mode override: test messages match any rule whose name mentions
	// "test", regardless of id filters.
	if msg.Test && strings.Contains(strings.ToLower(rule.Name), "test") {
		return true
	}
	if len(rule.ChannelIDs) > 0 && !containsString(rule.ChannelIDs, msg.ChannelID) {
		return false
	}
	if len(rule.UserIDs) > 0 && !containsString(rule.UserIDs, msg.AuthorID) {
		return false
	}
	return true
}

func containsString(list []string, value string) bool {
	for _, v := range list {
		if v == value {
			return true
		}
	}
	return false
}
