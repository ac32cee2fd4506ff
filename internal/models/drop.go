package model

import "time"

// DropType catégorise les moment drops éphémères
type DropType string

const (
	DropFlashDrinks    DropType = "flash_drinks"
	DropHiddenDJ       DropType = "hidden_dj"
	DropMysteryGroup   DropType = "mystery_group"
	DropRareAsset      DropType = "rare_asset"
	DropConfessionZone DropType = "confession_zone"
	DropDatingBoost    DropType = "dating_boost"
	DropAnonymous      DropType = "anonymous_confession"
)

func ValidDropType(t DropType) bool {
	switch t {
	case DropFlashDrinks, DropHiddenDJ, DropMysteryGroup, DropRareAsset,
		DropConfessionZone, DropDatingBoost, DropAnonymous:
		return true
	}
	return false
}

type MomentDrop struct {
	ID                  string    `json:"id"`
	CreatorID           string    `json:"creatorId"`
	Type                DropType  `json:"dropType"`
	Title               string    `json:"title"`
	Description         *string   `json:"description,omitempty"`
	LocationName        *string   `json:"locationName,omitempty"`
	Latitude            *float64  `json:"latitude,omitempty"`
	Longitude           *float64  `json:"longitude,omitempty"`
	RadiusMeters        int       `json:"radiusMeters"`
	StartTime           time.Time `json:"startTime"`
	EndTime             time.Time `json:"endTime"`
	MaxParticipants     *int      `json:"maxParticipants,omitempty"`
	CurrentParticipants int       `json:"currentParticipants"`
	RewardXP            *int      `json:"rewardXp,omitempty"`
	RewardItems         []string  `json:"rewardItems"`
	IsAnonymous         bool      `json:"isAnonymous"`
	IsViral             bool      `json:"isViral"`
	ViralCount          int       `json:"viralCount"`
	UserJoined          bool      `json:"userJoined"`
	CreatedAt           time.Time `json:"createdAt"`
}

// IsLive indique si le drop accepte des participations à l'instant donné
func (d *MomentDrop) IsLive(now time.Time) bool {
	return !now.Before(d.StartTime) && now.Before(d.EndTime)
}

// IsFull indique si le drop a atteint sa capacité maximale
func (d *MomentDrop) IsFull() bool {
	return d.MaxParticipants != nil && d.CurrentParticipants >= *d.MaxParticipants
}
