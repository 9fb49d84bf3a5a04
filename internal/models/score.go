package models

// SunPosition is the sun's position in the sky as seen from the observer.
type SunPosition struct {
	Elevation float64 `json:"elevation"` // Degrees above the horizon, [-90, 90].
	Azimuth   float64 `json:"azimuth"`   // Degrees clockwise from north, [0, 360).
}

// ScoreDetails is the attribution breakdown of a light score.
type ScoreDetails struct {
	BaseScore         float64     `json:"base_score"`
	FloorBonus        float64     `json:"floor_bonus"`
	Direction         Direction   `json:"direction"`
	SunBlockage       SunBlockage `json:"sun_blockage"`
	ObstructionFactor float64     `json:"obstruction_factor"`
}

// LightScoreResult is the complete answer to a light score request.
type LightScoreResult struct {
	Coordinates  Coordinates  `json:"coordinates"`
	LightScore   float64      `json:"light_score"`
	Details      ScoreDetails `json:"details"`
	SunPosition  SunPosition  `json:"sun_position"`
	BuildingData []Building   `json:"building_data"`
}
