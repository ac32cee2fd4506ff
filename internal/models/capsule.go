package model

import "time"

// CapsuleType catégorise les capsules mémoire
type CapsuleType string

const (
	CapsulePlace  CapsuleType = "place"
	CapsulePerson CapsuleType = "person"
	CapsuleGroup  CapsuleType = "group"
	CapsuleMoment CapsuleType = "moment"
)

func ValidCapsuleType(t CapsuleType) bool {
	switch t {
	case CapsulePlace, CapsulePerson, CapsuleGroup, CapsuleMoment:
		return true
	}
	return false
}

type MemoryCapsule struct {
	ID           string      `json:"id"`
	UserID       string      `json:"userId"`
	Type         CapsuleType `json:"capsuleType"`
	Title        string      `json:"title"`
	Description  *string     `json:"description,omitempty"`
	LocationName *string     `json:"locationName,omitempty"`
	PersonName   *string     `json:"personName,omitempty"`
	GroupName    *string     `json:"groupName,omitempty"`
	MediaURLs    []string    `json:"mediaUrls"`
	Tags         []string    `json:"tags"`
	VisitedAt    *time.Time  `json:"visitedAt,omitempty"`
	CreatedAt    time.Time   `json:"createdAt"`
	UpdatedAt    time.Time   `json:"updatedAt"`
}
