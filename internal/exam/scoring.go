package exam

import (
	"math"

	"ea-coach-service/internal/domain"
)

const (
	// ScaledMin and ScaledMax bound the ReadySCORE-style scaled score.
	ScaledMin = 40
	ScaledMax = 130
	// PassingScore is the scaled score needed to pass a part.
	PassingScore = 105

	aboveThreshold = 75
	nearThreshold  = 55
)

// Score grades the selections against the answer keys. Experimental
// questions and questions without a key do not count toward the score.
func Score(formID string, part int, questions []domain.Question, answers []*int, elapsedSeconds int) domain.ExamResults {
	results := domain.ExamResults{
		FormID:         formID,
		Part:           part,
		TotalQuestions: len(questions),
	}
	if elapsedSeconds > 0 {
		results.TimeSpentSeconds = elapsedSeconds
	}

	byTopic := make(map[string]*domain.DomainScore)
	order := make([]string, 0)

	for i, q := range questions {
		var selected *int
		if i < len(answers) {
			selected = answers[i]
		}
		if selected != nil {
			results.Answered++
		}
		if q.Experimental {
			results.ExperimentalQuestions++
			continue
		}
		if !q.HasAnswerKey() {
			continue
		}
		results.ScoredQuestions++
		correct := selected != nil && *selected == *q.CorrectIndex
		if correct {
			results.RawScore++
		}

		key := q.Domain + "\x00" + q.Topic
		t, ok := byTopic[key]
		if !ok {
			t = &domain.DomainScore{
				Domain:       q.Domain,
				Topic:        q.Topic,
				Publications: append([]string(nil), q.Publications...),
			}
			byTopic[key] = t
			order = append(order, key)
		}
		t.TotalQuestions++
		if correct {
			t.RawScore++
		}
	}

	results.Domains = make([]domain.DomainScore, 0, len(order))
	for _, key := range order {
		ds := *byTopic[key]
		ds.Proficiency, ds.Level = Proficiency(ds.RawScore, ds.TotalQuestions)
		results.Domains = append(results.Domains, ds)
	}

	results.ScaledScore = ScaledScore(results.RawScore, results.ScoredQuestions)
	results.Passed = results.ScaledScore >= PassingScore
	if results.ScoredQuestions > 0 {
		results.Accuracy = percent(results.RawScore, results.ScoredQuestions)
	}
	return results
}

// ScaledScore maps raw/total onto [ScaledMin, ScaledMax].
func ScaledScore(raw, total int) int {
	if total <= 0 {
		return ScaledMin
	}
	if raw < 0 {
		raw = 0
	}
	if raw > total {
		raw = total
	}
	span := float64(ScaledMax - ScaledMin)
	return ScaledMin + int(math.Round(span*float64(raw)/float64(total)))
}

// Proficiency bands a topic score and returns its IRS level (3 high, 1 low).
func Proficiency(raw, total int) (domain.Proficiency, int) {
	if total <= 0 {
		return domain.ProficiencyBelow, 1
	}
	pct := percent(raw, total)
	switch {
	case pct >= aboveThreshold:
		return domain.ProficiencyAbove, 3
	case pct >= nearThreshold:
		return domain.ProficiencyNear, 2
	default:
		return domain.ProficiencyBelow, 1
	}
}

func percent(part, total int) int {
	return int(math.Round(float64(part) * 100 / float64(total)))
}
