package coach

import (
	"fmt"

	"ea-coach-service/internal/domain"
)

// MissionInput is the learner state missions are generated from.
type MissionInput struct {
	ReadyScore  int      `json:"readyScore"`
	WeakAreas   []string `json:"weakAreas"`
	StudyStreak int      `json:"studyStreak"`
}

// MissionSet is a day's missions and their combined XP.
type MissionSet struct {
	Missions []domain.Mission `json:"missions"`
	TotalXP  int              `json:"totalXp"`
}

// Missions builds the adaptive daily missions: the weakest area first (when
// known), one mission sized to the readiness band and one for the streak.
func Missions(in MissionInput) MissionSet {
	var missions []domain.Mission

	if len(in.WeakAreas) > 0 {
		area := in.WeakAreas[0]
		missions = append(missions, domain.Mission{
			ID:          1,
			Title:       "Master " + area,
			Description: "Complete 15 targeted practice questions in your weakest area.",
			Icon:        "target",
			XPReward:    300,
			Adaptive:    true,
			Rationale:   fmt.Sprintf("%s is your lowest-scoring area. Focused practice on weak areas moves the ReadySCORE fastest.", area),
		})
	}

	switch {
	case in.ReadyScore < 90:
		missions = append(missions, domain.Mission{
			ID:          2,
			Title:       "Foundational Concepts Review",
			Description: "Strengthen the basics with beginner-level content.",
			Icon:        "book",
			XPReward:    200,
			Adaptive:    true,
			Rationale:   "A ReadySCORE under 90 points to gaps in fundamentals.",
		})
	case in.ReadyScore < 105:
		missions = append(missions, domain.Mission{
			ID:          2,
			Title:       "Intermediate Problem Solving",
			Description: "Work multi-step problems that combine two or three concepts.",
			Icon:        "calculator",
			XPReward:    250,
			Adaptive:    true,
			Rationale:   fmt.Sprintf("A ReadySCORE of %d is ready for intermediate challenges.", in.ReadyScore),
		})
	default:
		missions = append(missions, domain.Mission{
			ID:          2,
			Title:       "Exam-Level Simulations",
			Description: "Practice with Prometric-style questions at exam difficulty.",
			Icon:        "target",
			XPReward:    350,
			Adaptive:    true,
			Rationale:   fmt.Sprintf("A ReadySCORE of %d is exam-ready; full simulations keep it there.", in.ReadyScore),
		})
	}

	if in.StudyStreak >= 7 {
		missions = append(missions, domain.Mission{
			ID:          3,
			Title:       "Momentum Builder",
			Description: fmt.Sprintf("%d-day streak. A quick 5-minute review keeps it alive.", in.StudyStreak),
			Icon:        "trending",
			XPReward:    150,
			Adaptive:    true,
			Rationale:   "A short mission protects the streak without burning you out.",
		})
	} else {
		missions = append(missions, domain.Mission{
			ID:          3,
			Title:       "Consistency Challenge",
			Description: "Study for 30 minutes today to build the habit.",
			Icon:        "trending",
			XPReward:    200,
			Adaptive:    true,
			Rationale:   "Daily practice builds the consistency the exam rewards.",
		})
	}

	set := MissionSet{Missions: missions}
	for _, m := range missions {
		set.TotalXP += m.XPReward
	}
	return set
}
