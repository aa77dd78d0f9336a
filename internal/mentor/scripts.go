package mentor

import (
	"fmt"
	"math/rand"
	"strings"

	"ea-coach-service/internal/domain"
)

var chatSuggestions = []string{
	"Explain Circular 230 ethics",
	"Create practice questions for weak areas",
	"Why is my ReadySCORE stuck?",
	"Best strategy for Part 3?",
}

var sidebarTopics = []string{"Circular 230", "Tax Credits", "Deductions"}

var sidebarLines = []string{
	"Great question! Let me break that down for you...",
	"That's an important concept for the EA exam. Here's what you need to know:",
	"I can help with that! Let's review the key points:",
	"Excellent topic to focus on. The IRS emphasizes this in Publication 17...",
}

const bubbleReply = "I'm here to help! Let me guide you through this topic."

// Greeting returns the opening message for a placement.
func Greeting(p Placement, learner domain.LearnerContext) (domain.Role, string, []string) {
	switch p {
	case PlacementChat:
		weak := "none yet"
		if len(learner.WeakAreas) > 0 {
			weak = strings.Join(learner.WeakAreas, ", ")
		}
		recent := learner.RecentActivity
		if recent == "" {
			recent = "no recent activity"
		}
		text := fmt.Sprintf("Hi! I'm your EA Mentor. Here is where you stand:\n\n"+
			"ReadySCORE: %d/130\nWeak areas: %s\nRecent: %s\n\n"+
			"I can explain tax law, suggest study strategies or quiz you. What would you like to work on?",
			learner.ReadyScore, weak, recent)
		return domain.RoleSystem, text, append([]string(nil), chatSuggestions...)
	case PlacementSidebar:
		return domain.RoleAssistant,
			"Hi! I'm your EA Mentor. I'm here to help you master tax concepts and prepare for the Enrolled Agent exam. What would you like to study today?",
			append([]string(nil), sidebarTopics...)
	default:
		return domain.RoleAssistant, "Hi! I'm your EA Mentor. Ready to ace your exam? Ask me anything!", nil
	}
}

// NewKeywordScript returns the scripted responder used by the full chat.
func NewKeywordScript() KeywordResponder {
	return KeywordResponder{
		Rules: []KeywordRule{
			{Keywords: []string{"circular 230", "ethics"}, Reply: circular230Reply},
			{Keywords: []string{"readyscore", "stuck", "improve"}, Reply: readyScoreReply},
			{Keywords: []string{"practice", "question"}, Reply: practiceReply},
			{Keywords: []string{"strategy", "part 3"}, Reply: strategyReply},
		},
		Default: defaultReply,
	}
}

// NewFixedScript returns the bubble responder.
func NewFixedScript() FixedResponder {
	return FixedResponder{Text: bubbleReply}
}

// NewRotatingScript returns the sidebar responder.
func NewRotatingScript(r *rand.Rand) *RotatingResponder {
	return NewRotatingResponder(sidebarLines, r)
}

func circular230Reply(_ Request) string {
	return `Circular 230: Practice Before the IRS

Treasury Department Circular 230 governs who may practice before the IRS and the conduct expected of them.

Who can practice: Enrolled Agents, CPAs and attorneys have unlimited rights; enrolled actuaries and AFSP participants are limited.

Core duties:
- Due diligence: make reasonable inquiries when client information looks wrong (§10.22)
- Client records: return them on request, even if fees are unpaid (§10.28)
- Contingent fees: generally prohibited, with exceptions for IRS examinations, amended returns and refund claims (§10.27)
- Conflicts of interest: identify them and get informed written consent (§10.29)

Practice question: an EA charges 20% of the refund for preparing an original Form 1040. Is that allowed?
Answer: No. Contingent fees are not allowed for original returns.

Want five more questions on this topic?`
}

func readyScoreReply(req Request) string {
	var b strings.Builder
	fmt.Fprintf(&b, "Why your ReadySCORE is at %d\n\n", req.Learner.ReadyScore)
	b.WriteString("Here is what is holding it back:\n\n")
	fmt.Fprintf(&b, "1. %s: you are missing the underlying rules, not the arithmetic. Study the code sections, not just worked examples (6-8 hours).\n", req.Learner.WeakestArea())
	if len(req.Learner.WeakAreas) > 1 {
		fmt.Fprintf(&b, "2. %s: you know the rules but miss the exceptions. Drill the \"except when\" cases (about 4 hours).\n", req.Learner.WeakAreas[1])
	}
	b.WriteString("\nTo reach 105 (exam ready):\n- 200 more practice questions in weak areas\n- 3 full-length mock exams\n- a 14-day study streak\n\nWant a 21-day sprint plan built around this?")
	return b.String()
}

func practiceReply(req Request) string {
	return fmt.Sprintf(`Practice question (focus: %s)

A married couple files jointly. One spouse is a self-employed consultant with $85,000 of Schedule C net profit and no access to an employer plan; the other earns $60,000 in wages. They paid $18,000 of health insurance premiums for the family.

How much can be deducted for AGI as self-employed health insurance?

A) $0
B) $9,000
C) $18,000
D) $13,500

Think about the net profit limit and whether either spouse was eligible for employer-subsidized coverage. Reply with A, B, C or D.`, req.Learner.WeakestArea())
}

func strategyReply(_ Request) string {
	return `Part 3 (Representation) strategy: about 40 hours over 6 weeks

Weeks 1-2, Circular 230 (15h): read §10.20-10.38, drill the ethics scenarios, memorize sanctions.
Weeks 3-4, IRS procedures (15h): collections (Pub 594), appeals and Tax Court, Form 2848, penalty relief.
Weeks 5-6, review (10h): three full practice exams and every missed question.

Focus on the Circular 230 exceptions, statute of limitations deadlines and which court hears what.

Want this laid out as a calendar?`
}

func defaultReply(req Request) string {
	return fmt.Sprintf(`You asked about "%s".

I can help with:
1. Tax concept explanations
2. Practice questions matched to your ReadySCORE
3. Study plans for your weak areas
4. Exam strategy

Try "Explain [topic]", "Create practice questions for [topic]", "How do I improve my ReadySCORE?" or "What's the best strategy for Part 3?"

You are struggling most with %s. Want to start there?`, req.Text, req.Learner.WeakestArea())
}
