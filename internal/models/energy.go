package model

import "time"

// EnergyType décrit l'ambiance dominante d'un quartier ou d'une ville
type EnergyType string

const (
	EnergyParty       EnergyType = "party"
	EnergyCalm        EnergyType = "calm"
	EnergyCreative    EnergyType = "creative"
	EnergyDead        EnergyType = "dead"
	EnergyChaos       EnergyType = "chaos"
	EnergyRomantic    EnergyType = "romantic"
	EnergyCompetitive EnergyType = "competitive"
)

type CityEnergyState struct {
	ID           string     `json:"id"`
	City         string     `json:"city"`
	Neighborhood *string    `json:"neighborhood,omitempty"`
	EnergyType   EnergyType `json:"energyType"`
	Intensity    int        `json:"intensity"` // 0..100
	ActiveUsers  int        `json:"activeUsers"`
	EventsCount  int        `json:"eventsCount"`
	UpdatedAt    time.Time  `json:"updatedAt"`
}
