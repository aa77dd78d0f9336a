package coach

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"ea-coach-service/internal/domain"
)

func TestMargin(t *testing.T) {
	assert.Equal(t, 18, Margin(0))
	assert.Equal(t, 18, Margin(49))
	assert.Equal(t, 18, Margin(50))
	assert.Equal(t, 3, Margin(500))
	assert.Equal(t, 3, Margin(501))
	assert.Equal(t, 11, Margin(275))
}

func TestAssessClampsInterval(t *testing.T) {
	r := Assess(45, 10)
	assert.Equal(t, 40, r.Lower)
	assert.Equal(t, 63, r.Upper)
	assert.Equal(t, "Building Foundations", r.Label)

	r = Assess(128, 600)
	assert.Equal(t, 125, r.Lower)
	assert.Equal(t, 130, r.Upper)
	assert.True(t, r.ExamReady)
	assert.Equal(t, "Exam Ready", r.Label)

	r = Assess(85, 100)
	assert.Equal(t, 50, r.Normal)
	assert.Equal(t, "Almost There", r.Label)
}

func TestMissionsByBand(t *testing.T) {
	set := Missions(MissionInput{ReadyScore: 80, WeakAreas: []string{"MACRS Depreciation"}, StudyStreak: 3})
	require.Len(t, set.Missions, 3)
	assert.Equal(t, "Master MACRS Depreciation", set.Missions[0].Title)
	assert.Equal(t, "Foundational Concepts Review", set.Missions[1].Title)
	assert.Equal(t, "Consistency Challenge", set.Missions[2].Title)
	assert.Equal(t, 700, set.TotalXP)

	set = Missions(MissionInput{ReadyScore: 95, StudyStreak: 7})
	require.Len(t, set.Missions, 2)
	assert.Equal(t, "Intermediate Problem Solving", set.Missions[0].Title)
	assert.Equal(t, "Momentum Builder", set.Missions[1].Title)
	assert.Equal(t, 400, set.TotalXP)

	set = Missions(MissionInput{ReadyScore: 105})
	assert.Equal(t, "Exam-Level Simulations", set.Missions[0].Title)
	assert.Equal(t, 350, set.Missions[0].XPReward)
}

func TestBuildStudyPlan(t *testing.T) {
	plan := BuildStudyPlan([]domain.DomainScore{
		{Topic: "Self-Employment Tax", RawScore: 4, TotalQuestions: 10, Level: 1, Publications: []string{"Pub 334", "Pub 535"}},
		{Topic: "Rental Income and Expenses", RawScore: 5, TotalQuestions: 11, Level: 2},
	})

	require.Len(t, plan.Modules, 2)
	first := plan.Modules[0]
	assert.Equal(t, 40, first.CurrentScore)
	assert.Equal(t, 80, first.TargetScore)
	assert.Equal(t, "High", first.Priority)
	assert.Equal(t, 8, first.EstimatedHours)
	require.Len(t, first.Tasks, 4)
	assert.Equal(t, "Read Pub 334 (Self-Employment Tax)", first.Tasks[0].Title)

	second := plan.Modules[1]
	assert.Equal(t, 45, second.CurrentScore)
	assert.Equal(t, "Medium", second.Priority)
	assert.Equal(t, "Pub 17", second.Tasks[0].Resource)

	assert.Equal(t, 13, plan.TotalHours)
	assert.Equal(t, 2, plan.EstimatedDays)
	assert.Equal(t, 1, plan.HighPriority)
}

func TestBuildStudyPlanEmpty(t *testing.T) {
	plan := BuildStudyPlan(nil)
	assert.Empty(t, plan.Modules)
	assert.Equal(t, 0, plan.EstimatedDays)
}

func TestParts(t *testing.T) {
	require.Len(t, Parts(), 3)
	p, ok := Part(3)
	require.True(t, ok)
	assert.Equal(t, "Representation, Practices, and Procedures", p.Name)
	_, ok = Part(4)
	assert.False(t, ok)
}

func TestBuildHeatmapIsStablePerSeed(t *testing.T) {
	h := BuildHeatmap(DefaultHeatmapSeed)
	require.Len(t, h.Tiles, HeatmapSize)
	assert.Equal(t, h, BuildHeatmap(DefaultHeatmapSeed))

	total := 0
	for _, n := range h.Counts {
		total += n
	}
	assert.Equal(t, HeatmapSize, total)
	assert.Equal(t, "Topic 1", h.Tiles[0].Topic)
	assert.Equal(t, 99, h.Tiles[99].ID)
	for _, tile := range h.Tiles {
		assert.Contains(t, []domain.Mastery{domain.MasteryHigh, domain.MasteryMedium, domain.MasteryLow, domain.MasteryNone}, tile.Mastery)
	}
}

func TestMasteryBands(t *testing.T) {
	assert.Equal(t, domain.MasteryHigh, masteryFor(0))
	assert.Equal(t, domain.MasteryMedium, masteryFor(0.25))
	assert.Equal(t, domain.MasteryLow, masteryFor(0.6))
	assert.Equal(t, domain.MasteryNone, masteryFor(0.85))
	assert.Equal(t, domain.MasteryNone, masteryFor(0.999))
}
