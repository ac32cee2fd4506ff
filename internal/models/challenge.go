package model

import "time"

// ChallengeType catégorise les challenges de ville
type ChallengeType string

const (
	ChallengeParticipation ChallengeType = "participation"
	ChallengeLocation      ChallengeType = "location"
	ChallengeSocial        ChallengeType = "social"
	ChallengeAchievement   ChallengeType = "achievement"
	ChallengeCompetition   ChallengeType = "competition"
)

// ValidChallengeType vérifie qu'un type de challenge fait partie de l'énumération
func ValidChallengeType(t ChallengeType) bool {
	switch t {
	case ChallengeParticipation, ChallengeLocation, ChallengeSocial, ChallengeAchievement, ChallengeCompetition:
		return true
	}
	return false
}

type CityChallenge struct {
	ID           string        `json:"id"`
	Name         string        `json:"name"`
	Description  *string       `json:"description,omitempty"`
	Type         ChallengeType `json:"challengeType"`
	City         string        `json:"city"`
	StartTime    time.Time     `json:"startTime"`
	EndTime      time.Time     `json:"endTime"`
	TargetCount  int           `json:"targetCount"`
	CurrentCount int           `json:"currentCount"`
	Participants []string      `json:"participants"`
	RewardsXP    int           `json:"rewardsXp"`
	RewardsBadge *string       `json:"rewardsBadge,omitempty"`
	RewardsTitle *string       `json:"rewardsTitle,omitempty"`
	IsActive     bool          `json:"isActive"`
	IsGlobal     bool          `json:"isGlobal"`
	UserJoined   bool          `json:"userJoined"`
	CreatedAt    time.Time     `json:"createdAt"`
	UpdatedAt    time.Time     `json:"updatedAt"`
}

// IsLive indique si le challenge accepte des participations à l'instant donné
func (c *CityChallenge) IsLive(now time.Time) bool {
	return c.IsActive && !now.Before(c.StartTime) && now.Before(c.EndTime)
}

type ChallengeLeaderboardEntry struct {
	UserID   string `json:"userId"`
	UserName string `json:"userName"`
	Score    int    `json:"score"`
	Rank     int    `json:"rank"`
}
