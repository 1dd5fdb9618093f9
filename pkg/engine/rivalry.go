package engine

import (
	"math"
	"time"

	"github.com/futgraph/futgraph/pkg/types"
)

// Rivalry intensity labels and the fixed thresholds that select them.
// score < 4 is moderate, 4 <= score <= 7 is strong, score > 7 is intense.
const (
	RivalryModerate = "moderate"
	RivalryStrong   = "strong"
	RivalryIntense  = "intense"

	rivalryStrongThreshold  = 4.0
	rivalryIntenseThreshold = 7.0
)

// Rivalry score weights. The score is the sum of three bounded factors,
// capped at 10:
//
//	match factor:      min(5, totalMatches / 10)
//	recency factor:    3 * (matches in the last 5 years / totalMatches)
//	attendance factor: min(2, averageAttendance / 40000)
const (
	rivalryMatchFactorCap      = 5.0
	rivalryMatchesPerPoint     = 10.0
	rivalryRecencyWeight       = 3.0
	rivalryRecencyWindowYears  = 5
	rivalryAttendanceFactorCap = 2.0
	rivalryAttendancePerPoint  = 40000.0
	rivalryScoreCap            = 10.0
)

// RivalryScore is a normalized intensity score in [0, 10] with its
// categorical label.
type RivalryScore struct {
	Score float64 `json:"score"`
	Label string  `json:"label"`
}

// ComputeRivalryScore scores the intensity of a fixture from its completed
// match history. Zero matches is ErrInsufficientData, not a score of 0.
// Matches without recorded attendance simply contribute nothing to the
// attendance factor.
func ComputeRivalryScore(matches []types.Match, asOf time.Time) (RivalryScore, error) {
	var total, recent, attendanceSum, withAttendance int
	cutoff := asOf.AddDate(-rivalryRecencyWindowYears, 0, 0)

	for _, m := range matches {
		if !m.Completed() {
			continue
		}
		total++
		if m.Date.After(cutoff) {
			recent++
		}
		if m.Attendance > 0 {
			attendanceSum += m.Attendance
			withAttendance++
		}
	}

	if total == 0 {
		return RivalryScore{}, ErrInsufficientData
	}

	matchFactor := math.Min(rivalryMatchFactorCap, float64(total)/rivalryMatchesPerPoint)
	recencyFactor := rivalryRecencyWeight * float64(recent) / float64(total)

	var attendanceFactor float64
	if withAttendance > 0 {
		avg := float64(attendanceSum) / float64(withAttendance)
		attendanceFactor = math.Min(rivalryAttendanceFactorCap, avg/rivalryAttendancePerPoint)
	}

	score := math.Min(rivalryScoreCap, matchFactor+recencyFactor+attendanceFactor)
	score = math.Round(score*10) / 10

	label := RivalryModerate
	switch {
	case score > rivalryIntenseThreshold:
		label = RivalryIntense
	case score >= rivalryStrongThreshold:
		label = RivalryStrong
	}

	return RivalryScore{Score: score, Label: label}, nil
}
