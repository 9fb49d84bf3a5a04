package models

// Building is a nearby building footprint as returned by the building dataset.
// Distance is measured from the observer, in meters.
type Building struct {
	Distance  float64 `json:"distance"`   // Distance from the observer, meters.
	HeightMax float64 `json:"height_max"` // Roof height above grade, meters.
	Height    float64 `json:"height"`     // Roof height above sea level, meters.
	Area      float64 `json:"area"`       // Footprint area, square meters.
	Lat       float64 `json:"lat"`
	Lng       float64 `json:"lng"`
}

// BlockingBuilding is the view of a Building that was found to obstruct the sun.
type BlockingBuilding struct {
	Distance    float64 `json:"distance"`
	Height      float64 `json:"height"`
	Angle       float64 `json:"angle"`        // Angular height seen from the observer, degrees.
	AzimuthDiff float64 `json:"azimuth_diff"` // Smallest difference to the sun azimuth, [0, 180].
	Impact      float64 `json:"impact"`       // Contribution on a 0-100 scale.
}

// SunBlockage aggregates all blocking buildings into a single percentage.
type SunBlockage struct {
	IsBlocked          bool               `json:"is_blocked"`
	BlockagePercentage float64            `json:"blockage_percentage"`
	BlockingBuildings  []BlockingBuilding `json:"blocking_buildings"`
}
