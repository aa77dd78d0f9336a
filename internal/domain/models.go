package domain

import "time"

// Question is one multiple-choice item of an exam form.
type Question struct {
	ID           string   `json:"id"`
	Prompt       string   `json:"prompt"`
	Options      []string `json:"options"`
	CorrectIndex *int     `json:"correctIndex,omitempty"`
	Experimental bool     `json:"experimental"`
	Domain       string   `json:"domain"`
	Topic        string   `json:"topic"`
	Publications []string `json:"publications,omitempty"`
	Explanation  string   `json:"explanation,omitempty"`
}

// HasAnswerKey reports whether the question can be scored.
func (q Question) HasAnswerKey() bool {
	return q.CorrectIndex != nil && *q.CorrectIndex >= 0 && *q.CorrectIndex < len(q.Options)
}

// ExamForm is a fixed, ordered list of questions for one sitting.
type ExamForm struct {
	ID              string     `json:"id"`
	Part            int        `json:"part"`
	Title           string     `json:"title"`
	DurationSeconds int        `json:"durationSeconds"`
	Questions       []Question `json:"questions"`
}

// FormSummary lists a form without its question content.
type FormSummary struct {
	ID              string `json:"id"`
	Part            int    `json:"part"`
	Title           string `json:"title"`
	DurationSeconds int    `json:"durationSeconds"`
	QuestionCount   int    `json:"questionCount"`
}

// Summary returns the listing view of the form.
func (f ExamForm) Summary() FormSummary {
	return FormSummary{
		ID:              f.ID,
		Part:            f.Part,
		Title:           f.Title,
		DurationSeconds: f.DurationSeconds,
		QuestionCount:   len(f.Questions),
	}
}

// Proficiency is the IRS-style diagnostic band for a topic.
type Proficiency string

const (
	ProficiencyAbove Proficiency = "Above"
	ProficiencyNear  Proficiency = "Near"
	ProficiencyBelow Proficiency = "Below"
)

// DomainScore is the per-topic breakdown of an exam result.
type DomainScore struct {
	Domain         string      `json:"domain"`
	Topic          string      `json:"topic"`
	RawScore       int         `json:"rawScore"`
	TotalQuestions int         `json:"totalQuestions"`
	Proficiency    Proficiency `json:"proficiencyLevel"`
	Level          int         `json:"level"`
	Publications   []string    `json:"irsPublications"`
}

// EndReason explains how an exam session ended.
type EndReason string

const (
	EndReasonConfirmed   EndReason = "confirmed"
	EndReasonTimeExpired EndReason = "time-expired"
)

// ExamResults is the scored outcome of an ended session.
type ExamResults struct {
	FormID                string        `json:"formId"`
	Part                  int           `json:"part"`
	ScaledScore           int           `json:"scaledScore"`
	RawScore              int           `json:"rawScore"`
	TotalQuestions        int           `json:"totalQuestions"`
	ScoredQuestions       int           `json:"scoredQuestions"`
	ExperimentalQuestions int           `json:"experimentalQuestions"`
	Answered              int           `json:"answered"`
	Accuracy              int           `json:"accuracy"`
	Passed                bool          `json:"passed"`
	TimeSpentSeconds      int           `json:"timeSpentSeconds"`
	EndReason             EndReason     `json:"endReason"`
	Domains               []DomainScore `json:"domains"`
}

// WeakDomains returns the topics scored below proficiency.
func (r ExamResults) WeakDomains() []DomainScore {
	weak := make([]DomainScore, 0, len(r.Domains))
	for _, d := range r.Domains {
		if d.Proficiency == ProficiencyBelow {
			weak = append(weak, d)
		}
	}
	return weak
}

// ExamRecord is what gets persisted when a session ends.
type ExamRecord struct {
	SessionID string      `json:"sessionId"`
	Results   ExamResults `json:"results"`
	EndedAt   time.Time   `json:"endedAt"`
}

// Role identifies the author of a chat message.
type Role string

const (
	RoleUser      Role = "user"
	RoleAssistant Role = "assistant"
	RoleSystem    Role = "system"
)

// ChatMessage is one entry of a mentor transcript.
type ChatMessage struct {
	ID          string    `json:"id"`
	Role        Role      `json:"role"`
	Text        string    `json:"text"`
	Timestamp   time.Time `json:"timestamp"`
	Suggestions []string  `json:"suggestions,omitempty"`
	Agent       string    `json:"agent,omitempty"`
}

// LearnerContext is the progress snapshot the mentor personalizes replies with.
type LearnerContext struct {
	UserID         string   `json:"userId"`
	ReadyScore     int      `json:"readyScore"`
	WeakAreas      []string `json:"weakAreas"`
	RecentActivity string   `json:"recentActivity"`
}

// WeakestArea returns the first weak area or a generic fallback.
func (c LearnerContext) WeakestArea() string {
	if len(c.WeakAreas) == 0 {
		return "your weakest topic"
	}
	return c.WeakAreas[0]
}

// ScenarioChoice is one response option of an ethics scenario.
type ScenarioChoice struct {
	Text      string `json:"text"`
	Ethical   bool   `json:"ethical"`
	Outcome   string `json:"outcome"`
	Reference string `json:"reference,omitempty"`
	Delta     int    `json:"delta"`
}

// Scenario is a single client situation in an ethics deck.
type Scenario struct {
	ID        string           `json:"id"`
	Client    string           `json:"client"`
	Situation string           `json:"situation"`
	Request   string           `json:"request"`
	Choices   []ScenarioChoice `json:"choices"`
}

// StandingBand maps a minimum meter value to a label.
type StandingBand struct {
	Min   int    `json:"min"`
	Label string `json:"label"`
}

// EthicsDeck is an ordered scenario list with its meter rules.
type EthicsDeck struct {
	ID           string         `json:"id"`
	Title        string         `json:"title"`
	MeterName    string         `json:"meterName"`
	InitialMeter int            `json:"initialMeter"`
	Bands        []StandingBand `json:"bands"`
	Scenarios    []Scenario     `json:"scenarios"`
}

// Mission is a daily study task.
type Mission struct {
	ID          int    `json:"id"`
	Title       string `json:"title"`
	Description string `json:"description"`
	Progress    int    `json:"progress"`
	Icon        string `json:"icon"`
	XPReward    int    `json:"xpReward"`
	Adaptive    bool   `json:"aiGenerated"`
	Rationale   string `json:"rationale,omitempty"`
}

// Badge is a static achievement fixture.
type Badge struct {
	ID          string `json:"id"`
	Title       string `json:"title"`
	Description string `json:"description"`
	Category    string `json:"category"`
	Unlocked    bool   `json:"unlocked"`
}

// Level is a static career step fixture.
type Level struct {
	Number      int    `json:"number"`
	Title       string `json:"title"`
	Description string `json:"description"`
	Requirement string `json:"requirement"`
	Unlocked    bool   `json:"unlocked"`
	Current     bool   `json:"current"`
}

// BridgeConcept contrasts how one topic is treated for individuals (Part 1)
// and for businesses (Part 2).
type BridgeConcept struct {
	Topic         string `json:"topic"`
	Individual    string `json:"part1Individual"`
	Business      string `json:"part2Business"`
	KeyDifference string `json:"keyDifference"`
	Example       string `json:"example"`
}

// Mastery is the heatmap band of a sub-topic.
type Mastery string

const (
	MasteryHigh   Mastery = "high"
	MasteryMedium Mastery = "medium"
	MasteryLow    Mastery = "low"
	MasteryNone   Mastery = "none"
)

// HeatmapTile is one sub-topic of the knowledge heatmap.
type HeatmapTile struct {
	ID      int     `json:"id"`
	Topic   string  `json:"topic"`
	Mastery Mastery `json:"mastery"`
}

// FocusArea is a dashboard card with a progress percentage.
type FocusArea struct {
	ID          int    `json:"id"`
	Title       string `json:"title"`
	Description string `json:"description"`
	Progress    int    `json:"progress"`
	Icon        string `json:"icon"`
}

// StatCard is a headline dashboard number.
type StatCard struct {
	Label    string `json:"label"`
	Value    string `json:"value"`
	Subtitle string `json:"subtitle,omitempty"`
}
