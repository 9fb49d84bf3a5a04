package models

// Direction is the compass direction a unit's windows face.
type Direction string

const (
	North     Direction = "N"
	NorthEast Direction = "NE"
	East      Direction = "E"
	SouthEast Direction = "SE"
	South     Direction = "S"
	SouthWest Direction = "SW"
	West      Direction = "W"
	NorthWest Direction = "NW"
)

// directionBearings maps every supported direction to its compass bearing in degrees.
var directionBearings = map[Direction]float64{
	North:     0,
	NorthEast: 45,
	East:      90,
	SouthEast: 135,
	South:     180,
	SouthWest: 225,
	West:      270,
	NorthWest: 315,
}

// ParseDirection reports whether s is exactly one of the eight compass
// abbreviations (N, NE, E, SE, S, SW, W, NW). Case and whitespace are significant.
func ParseDirection(s string) (Direction, bool) {
	d := Direction(s)
	if _, ok := directionBearings[d]; !ok {
		return "", false
	}
	return d, true
}

// Valid reports whether d is one of the eight supported directions.
func (d Direction) Valid() bool {
	_, ok := directionBearings[d]
	return ok
}

// Bearing returns the compass bearing of d, clockwise from north.
func (d Direction) Bearing() float64 {
	return directionBearings[d]
}
