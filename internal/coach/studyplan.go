package coach

import (
	"fmt"
	"math"

	"ea-coach-service/internal/domain"
)

const targetScore = 80

// TaskType is the kind of study activity.
type TaskType string

const (
	TaskRead     TaskType = "read"
	TaskVideo    TaskType = "video"
	TaskPractice TaskType = "practice"
	TaskQuiz     TaskType = "quiz"
)

// StudyTask is one activity of a study module.
type StudyTask struct {
	Type     TaskType `json:"type"`
	Title    string   `json:"title"`
	Duration string   `json:"duration"`
	Resource string   `json:"resource"`
}

// StudyModule targets one weak topic.
type StudyModule struct {
	Topic          string      `json:"topic"`
	CurrentScore   int         `json:"currentScore"`
	TargetScore    int         `json:"targetScore"`
	Priority       string      `json:"priority"`
	EstimatedHours int         `json:"estimatedHours"`
	Publications   []string    `json:"irsPublications"`
	Tasks          []StudyTask `json:"tasks"`
}

// StudyPlan is the remediation plan for an exam result.
type StudyPlan struct {
	Modules       []StudyModule `json:"modules"`
	TotalHours    int           `json:"totalHours"`
	EstimatedDays int           `json:"estimatedDays"`
	HighPriority  int           `json:"highPriority"`
}

// BuildStudyPlan creates one module per weak domain. Level 1 topics are high
// priority.
func BuildStudyPlan(weak []domain.DomainScore) StudyPlan {
	plan := StudyPlan{Modules: make([]StudyModule, 0, len(weak))}
	for _, d := range weak {
		current := 0
		if d.TotalQuestions > 0 {
			current = int(math.Round(float64(d.RawScore) / float64(d.TotalQuestions) * 100))
		}
		m := StudyModule{
			Topic:          d.Topic,
			CurrentScore:   current,
			TargetScore:    targetScore,
			Priority:       "Medium",
			EstimatedHours: 5,
			Publications:   append([]string(nil), d.Publications...),
		}
		if d.Level == 1 {
			m.Priority = "High"
			m.EstimatedHours = 8
			plan.HighPriority++
		}
		pub := "Pub 17"
		if len(d.Publications) > 0 {
			pub = d.Publications[0]
		}
		m.Tasks = []StudyTask{
			{Type: TaskRead, Title: fmt.Sprintf("Read %s (%s)", pub, d.Topic), Duration: "2 hours", Resource: pub},
			{Type: TaskVideo, Title: fmt.Sprintf("Watch: %s Explained", d.Topic), Duration: "45 min", Resource: "Video Tutorial"},
			{Type: TaskPractice, Title: fmt.Sprintf("Practice: 20 %s Questions", d.Topic), Duration: "1 hour", Resource: "Question Bank"},
			{Type: TaskQuiz, Title: fmt.Sprintf("Quiz: %s Assessment", d.Topic), Duration: "30 min", Resource: "Practice Quiz"},
		}
		plan.TotalHours += m.EstimatedHours
		plan.Modules = append(plan.Modules, m)
	}
	plan.EstimatedDays = (plan.TotalHours + 6) / 7
	return plan
}
