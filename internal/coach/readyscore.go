// Package coach derives study guidance from exam performance: the ReadySCORE
// confidence band, adaptive daily missions and weak-area study plans.
package coach

import (
	"math"

	"ea-coach-service/internal/exam"
)

const (
	minSample = 50
	maxSample = 500
	maxMargin = 18
	minMargin = 3
)

// Readiness is a ReadySCORE with its confidence interval.
type Readiness struct {
	Score     int    `json:"score"`
	Answered  int    `json:"questionsAnswered"`
	Margin    int    `json:"margin"`
	Lower     int    `json:"lower"`
	Upper     int    `json:"upper"`
	Normal    int    `json:"normalized"`
	Label     string `json:"label"`
	ExamReady bool   `json:"examReady"`
}

// Margin narrows linearly from 18 points at 50 answered questions to 3 at 500.
func Margin(answered int) int {
	switch {
	case answered < minSample:
		return maxMargin
	case answered > maxSample:
		return minMargin
	}
	ratio := float64(answered-minSample) / float64(maxSample-minSample)
	return int(math.Round(maxMargin - ratio*(maxMargin-minMargin)))
}

// Assess bands a ReadySCORE and computes its interval, clamped to the scale.
func Assess(score, answered int) Readiness {
	m := Margin(answered)
	r := Readiness{
		Score:     score,
		Answered:  answered,
		Margin:    m,
		Lower:     max(exam.ScaledMin, score-m),
		Upper:     min(exam.ScaledMax, score+m),
		ExamReady: score >= exam.PassingScore,
	}
	norm := float64(score-exam.ScaledMin) / float64(exam.ScaledMax-exam.ScaledMin) * 100
	r.Normal = int(math.Round(math.Max(0, math.Min(100, norm))))

	switch {
	case score >= 100:
		r.Label = "Exam Ready"
	case score >= 75:
		r.Label = "Almost There"
	case score >= 50:
		r.Label = "Keep Studying"
	default:
		r.Label = "Building Foundations"
	}
	return r
}
