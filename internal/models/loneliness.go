package model

import "time"

// TriggerLevel gradation des interruptions de solitude
type TriggerLevel string

const (
	TriggerInfo         TriggerLevel = "info"
	TriggerWarning      TriggerLevel = "warning"
	TriggerIntervention TriggerLevel = "intervention"
)

type LonelinessDetection struct {
	ID                    string       `json:"id,omitempty"`
	UserID                string       `json:"userId"`
	IsolationScore        int          `json:"isolationScore"`
	LastSocialInteraction *time.Time   `json:"lastSocialInteraction,omitempty"`
	ConsecutiveDays       int          `json:"consecutiveDaysIsolated"`
	SuggestedActivities   []string     `json:"suggestedActivities"`
	TriggerLevel          TriggerLevel `json:"triggerLevel"`
	CreatedAt             time.Time    `json:"createdAt,omitempty"`
}
