// Package scoring turns floor, window direction and sun blockage into the final light score.
package scoring

import (
	"math"

	"github.com/UnknownOlympus/helios/internal/models"
)

// BaseScore is the score of an unobstructed, south-facing ground floor before the floor bonus.
const BaseScore = 85.0

// floorIncrements holds the bonus gained by moving up one more floor, starting
// with the step from floor 1 to floor 2. Floors past the end of the table add nothing.
var floorIncrements = [...]float64{4, 3.5, 3, 2.5, 2, 1.5, 1, 1, 0.5, 0.5, 0.5}

// directionWeights holds the typical solar exposure of each window orientation
// in the northern hemisphere.
var directionWeights = map[models.Direction]float64{
	models.South:     1.0,
	models.SouthEast: 0.9,
	models.SouthWest: 0.9,
	models.East:      0.8,
	models.West:      0.8,
	models.NorthEast: 0.7,
	models.NorthWest: 0.7,
	models.North:     0.6,
}

// MaxFloorBonus is the bonus reached once the increments table is exhausted.
var MaxFloorBonus = FloorBonus(len(floorIncrements) + 1)

// FloorBonus returns the cumulative bonus for a floor. Floors below 1 get no bonus.
func FloorBonus(floor int) float64 {
	bonus := 0.0
	for i := 0; i < floor-1 && i < len(floorIncrements); i++ {
		bonus += floorIncrements[i]
	}
	return bonus
}

// DirectionWeight returns the exposure weight for d and whether d is known.
func DirectionWeight(d models.Direction) (float64, bool) {
	w, ok := directionWeights[d]
	return w, ok
}

// Aggregate computes the light score and its attribution. The direction must
// already be validated; an unknown direction yields a zero weight.
func Aggregate(floor int, direction models.Direction, blockage models.SunBlockage) (float64, models.ScoreDetails) {
	floorBonus := FloorBonus(floor)
	weight, _ := DirectionWeight(direction)
	obstruction := clamp(blockage.BlockagePercentage/100, 0, 1)

	score := clamp((BaseScore+floorBonus)*weight*(1-obstruction), 0, 100)

	return round1(score), models.ScoreDetails{
		BaseScore:         BaseScore,
		FloorBonus:        floorBonus,
		Direction:         direction,
		SunBlockage:       blockage,
		ObstructionFactor: obstruction,
	}
}

func clamp(v, lo, hi float64) float64 {
	if math.IsNaN(v) {
		return lo
	}
	return math.Max(lo, math.Min(hi, v))
}

func round1(v float64) float64 {
	return math.Round(v*10) / 10
}
