package mentor

import (
	"context"
	"math"
	"regexp"
	"strings"
)

// Agent is a specialist persona a message can be routed to.
type Agent string

const (
	AgentTaxSpecialist Agent = "TAX_SPECIALIST"
	AgentSocraticCoach Agent = "SOCRATIC_COACH"
	AgentDataAnalyst   Agent = "DATA_ANALYST"
)

// agentOrder breaks ties between equal scores.
var agentOrder = []Agent{AgentTaxSpecialist, AgentSocraticCoach, AgentDataAnalyst}

var agentPatterns = map[Agent][]*regexp.Regexp{
	AgentTaxSpecialist: compile(
		`\b(explain|what is|define|how to calculate)\b`,
		`\b(irc|regulation|publication|pub \d+)\b`,
		`\b(deduction|credit|income|basis|depreciation)\b`,
		`\b(partnership|corporation|s-corp|c-corp)\b`,
		`\b(form \d+|schedule [a-z])\b`,
	),
	AgentSocraticCoach: compile(
		`\b(study|learn|weak|improve|help me)\b`,
		`\b(mission|practice|quiz|test me)\b`,
		`\b(struggling|confused|don't understand)\b`,
		`\b(strategy|approach|method)\b`,
		`\b(motivate|encourage|confidence)\b`,
	),
	AgentDataAnalyst: compile(
		`\b(score|progress|performance|analytics)\b`,
		`\b(when will i|how long|predict|estimate)\b`,
		`\b(weak area|topic|proficiency)\b`,
		`\b(trend|improvement|accuracy)\b`,
		`\b(statistics|data|analysis)\b`,
	),
}

var multiIntentPatterns = compile(
	`(explain|teach).+(study plan|practice|quiz)`,
	`(score|performance).+(weak|improve|help)`,
	`(learn|understand).+(when will i|how long)`,
)

// FollowUps are offered after every routed reply.
var FollowUps = []string{
	"Can you explain this with an example?",
	"What are common exam traps for this topic?",
	"Generate a practice question on this",
}

func compile(patterns ...string) []*regexp.Regexp {
	out := make([]*regexp.Regexp, len(patterns))
	for i, p := range patterns {
		out[i] = regexp.MustCompile(p)
	}
	return out
}

// Route is the routing decision for one message.
type Route struct {
	Agent       Agent         `json:"agent"`
	Confidence  float64       `json:"confidence"`
	Scores      map[Agent]int `json:"scores"`
	Method      string        `json:"routingMethod"`
	UseSources  bool          `json:"shouldUseRag"`
	MultiIntent bool          `json:"multiIntent"`
}

// Classify scores each agent by the number of its pattern groups that match.
// Confidence is the winner's share of all matches; with no match the tax
// specialist is chosen at 0.5.
func Classify(text string) Route {
	lower := strings.ToLower(text)
	scores := make(map[Agent]int, len(agentOrder))
	total := 0
	for _, agent := range agentOrder {
		for _, re := range agentPatterns[agent] {
			if re.MatchString(lower) {
				scores[agent]++
				total++
			}
		}
	}
	route := Route{Scores: scores, MultiIntent: isMultiIntent(lower)}
	if total == 0 {
		route.Agent = AgentTaxSpecialist
		route.Confidence = 0.5
		route.Method = "keyword_default"
		route.UseSources = true
		return route
	}
	best := agentOrder[0]
	for _, agent := range agentOrder[1:] {
		if scores[agent] > scores[best] {
			best = agent
		}
	}
	route.Agent = best
	route.Confidence = math.Round(float64(scores[best])/float64(total)*100) / 100
	route.Method = "keyword"
	route.UseSources = best == AgentTaxSpecialist
	return route
}

func isMultiIntent(lower string) bool {
	for _, re := range multiIntentPatterns {
		if re.MatchString(lower) {
			return true
		}
	}
	return false
}

// RoutingResponder tags replies with the routed agent and appends the
// follow-up suggestions.
type RoutingResponder struct {
	Next Responder
}

func (r RoutingResponder) Respond(ctx context.Context, req Request) (Reply, error) {
	route := Classify(req.Text)
	reply, err := r.Next.Respond(ctx, req)
	if err != nil {
		return Reply{}, err
	}
	reply.Agent = string(route.Agent)
	reply.Suggestions = append(reply.Suggestions, FollowUps...)
	return reply, nil
}
