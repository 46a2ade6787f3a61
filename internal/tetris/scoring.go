package tetris

import (
	"time"

	"github.com/vovakirdan/tui-tetris/internal/core"
)

// Progression constants.
const (
	LevelStart    = 1
	LinesPerLevel = 10

	MinSpeed     = 1
	MaxSpeed     = 5
	DefaultSpeed = 3

	DefaultFallMillis     = 300
	DefaultFastFallMillis = 50

	levelStepMillis = 15
)

var linePoints = [...]int{0, 100, 300, 700, 1500}

// speedMultipliers scale solo points by manual speed tier.
var speedMultipliers = map[int]float64{
	1: 1.0,
	2: 1.25,
	3: 1.5,
	4: 2.0,
	5: 3.0,
}

// speedFactors scale the base fall interval by manual speed tier.
var speedFactors = map[int]float64{
	1: 1.6,
	2: 1.3,
	3: 1.0,
	4: 0.75,
	5: 0.5,
}

var clearNames = [...]string{"", "SINGLE", "DOUBLE", "TRIPLE", "TETRIS"}

// ClampSpeed restricts a manual speed tier to 1..5.
func ClampSpeed(speed int) int {
	return core.Clamp(speed, MinSpeed, MaxSpeed)
}

// LinePoints returns the base points for clearing n rows in one lock.
func LinePoints(n int) int {
	if n < 0 || n >= len(linePoints) {
		return 0
	}
	return linePoints[n]
}

// SpeedMultiplier returns the solo score multiplier for a speed tier.
func SpeedMultiplier(speed int) float64 {
	return speedMultipliers[ClampSpeed(speed)]
}

// Points returns int(base × multiplier) for n cleared rows.
func Points(n int, multiplier float64) int {
	return int(float64(LinePoints(n)) * multiplier)
}

// LevelFor returns the level reached after the given number of cleared lines.
func LevelFor(lines int) int {
	return LevelStart + lines/LinesPerLevel
}

// ClearName returns the banner for a clear of n rows, or "" for none.
func ClearName(n int) string {
	if n < 0 || n >= len(clearNames) {
		return ""
	}
	return clearNames[n]
}

// FallInterval combines the base interval, speed tier and level into the
// normal cadence. It never drops below fastMillis+10.
func FallInterval(fallMillis, fastMillis, speed, level int) time.Duration {
	ms := int(float64(fallMillis)*speedFactors[ClampSpeed(speed)]) - (level-LevelStart)*levelStepMillis
	floor := fastMillis + 10
	if ms < floor {
		ms = floor
	}
	return time.Duration(ms) * time.Millisecond
}
