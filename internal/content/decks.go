package content

import "ea-coach-service/internal/domain"

const (
	PracticeRightsDeckID = "practice-rights"
	ReputationDeckID     = "reputation"
)

// Decks returns fresh copies of the ethics decks.
func Decks() []domain.EthicsDeck {
	return []domain.EthicsDeck{practiceRightsDeck(), reputationDeck()}
}

// Deck returns the deck with the given id.
func Deck(id string) (domain.EthicsDeck, bool) {
	for _, d := range Decks() {
		if d.ID == id {
			return d, true
		}
	}
	return domain.EthicsDeck{}, false
}

func practiceRightsDeck() domain.EthicsDeck {
	return domain.EthicsDeck{
		ID:           PracticeRightsDeckID,
		Title:        "Circular 230 Practice Rights",
		MeterName:    "Practice Rights",
		InitialMeter: 100,
		Bands: []domain.StandingBand{
			{Min: 80, Label: "Good Standing"},
			{Min: 50, Label: "Probation"},
			{Min: 20, Label: "Suspended"},
			{Min: 0, Label: "Disbarred"},
		},
		Scenarios: []domain.Scenario{
			{
				ID:        "two-sets-of-books",
				Client:    "Marcus Chen",
				Situation: "A restaurant owner tells you he keeps one set of books for his bank and another for what really happened.",
				Request:   "Just use the bank version for the return. The real numbers would cost me too much and nobody will check.",
				Choices: []domain.ScenarioChoice{
					{
						Text:      "Prepare the return from the bank version. It is his business.",
						Outcome:   "Censured. You relied on information you knew was incorrect and are suspended from practice.",
						Reference: "§10.22 Diligence as to accuracy",
						Delta:     -30,
					},
					{
						Text:      "Refuse to prepare a return you know is false. Ask for the accurate books or decline the engagement.",
						Ethical:   true,
						Outcome:   "Your practice rights are intact. The client is unhappy, but you met your duty to make reasonable inquiries.",
						Reference: "§10.22 Diligence as to accuracy",
						Delta:     10,
					},
					{
						Text:      "Prepare it with a note that it is based on client-provided information.",
						Outcome:   "Reprimanded. A disclaimer does not cure actual knowledge that the figures are wrong.",
						Reference: "§10.22 Diligence as to accuracy",
						Delta:     -15,
					},
				},
			},
			{
				ID:        "audit-contingent-fee",
				Client:    "Sarah Mitchell",
				Situation: "A long-time client under audit wants an amended return prepared before the examiner finds problems.",
				Request:   "I will pay you 25% of whatever tax you save me.",
				Choices: []domain.ScenarioChoice{
					{
						Text:      "Accept the 25% contingency fee for the whole engagement.",
						Outcome:   "Disbarred. The fee arrangement falls outside the contingent fee exceptions.",
						Reference: "§10.27 Fees",
						Delta:     -30,
					},
					{
						Text:      "Offer audit representation on a contingent fee and bill the amended return hourly.",
						Ethical:   true,
						Outcome:   "Correct. Contingent fees are allowed for representation in an examination; the return work is billed separately.",
						Reference: "§10.27(b)(2) Fees exception",
						Delta:     10,
					},
					{
						Text:      "Decline the engagement to avoid any appearance of impropriety.",
						Ethical:   true,
						Outcome:   "Acceptable but overly cautious. You could have helped the client within the rules.",
						Reference: "§10.27 Fees",
						Delta:     5,
					},
				},
			},
			{
				ID:        "tax-court-without-poa",
				Client:    "David Rodriguez",
				Situation: "A prospective client needs Tax Court representation. His previous preparer vanished with his records.",
				Request:   "Can you represent me without a power of attorney? Just tell them you are my EA.",
				Choices: []domain.ScenarioChoice{
					{
						Text:      "Represent him without any authorization. You are an EA after all.",
						Outcome:   "Censured. Formal representation requires written authorization and Tax Court has its own admission rules.",
						Reference: "§10.3 Who may practice",
						Delta:     -20,
					},
					{
						Text:      "Explain the authorization requirement and help him complete it and request transcripts.",
						Ethical:   true,
						Outcome:   "Excellent. You identified the requirement and offered a practical path to rebuild his records.",
						Reference: "§10.3 and Tax Court Rule 60",
						Delta:     10,
					},
					{
						Text:      "Offer informal advice only until the paperwork is in place.",
						Ethical:   true,
						Outcome:   "Acceptable. You avoided unauthorized practice but could have done more to help.",
						Reference: "§10.7 Representing oneself; participating in rulemaking",
						Delta:     5,
					},
				},
			},
		},
	}
}

func reputationDeck() domain.EthicsDeck {
	const right, wrong = 10, -15
	return domain.EthicsDeck{
		ID:           ReputationDeckID,
		Title:        "Client Conversations",
		MeterName:    "Reputation",
		InitialMeter: 50,
		Bands: []domain.StandingBand{
			{Min: 70, Label: "Excellent Standing"},
			{Min: 40, Label: "Good Standing"},
			{Min: 0, Label: "At Risk"},
		},
		Scenarios: []domain.Scenario{
			{
				ID:        "unreported-cash-tips",
				Client:    "Mr. Johnson",
				Situation: "A new client with a cash-heavy business seems uneasy during the intake interview.",
				Request:   "I made about $50K in cash tips I never reported. Can we leave that off?",
				Choices: []domain.ScenarioChoice{
					{
						Text:      "Leave the cash income off to keep the client.",
						Outcome:   "You cannot knowingly prepare a false return.",
						Reference: "Circular 230 §10.22",
						Delta:     wrong,
					},
					{
						Text:      "Explain that all income must be reported and offer to help correct prior returns.",
						Ethical:   true,
						Outcome:   "Correct. Advise the client of the obligation and the options for coming into compliance.",
						Reference: "Circular 230 §10.21",
						Delta:     right,
					},
					{
						Text:      "Report the client to the IRS right away.",
						Outcome:   "There is no duty to report the client. Your duty is to advise and to refuse an inaccurate return.",
						Reference: "Circular 230 §10.21",
						Delta:     wrong,
					},
					{
						Text:      "Tell him to find a preparer who will do it.",
						Outcome:   "Passing the client along does not meet your obligation to advise on compliance.",
						Reference: "Circular 230 §10.33",
						Delta:     wrong,
					},
				},
			},
			{
				ID:        "clothing-donation",
				Client:    "Ms. Martinez",
				Situation: "A long-time client wants to deduct a large donation of used clothing.",
				Request:   "I gave about $5,000 of clothes to charity. No receipts, but just put down $5,000.",
				Choices: []domain.ScenarioChoice{
					{
						Text:      "Enter $5,000 as she asked.",
						Outcome:   "The amount needs a reasonable basis for its valuation and substantiation.",
						Reference: "Circular 230 §10.34",
						Delta:     wrong,
					},
					{
						Text:      "Explain the substantiation rules and help her estimate fair market value.",
						Ethical:   true,
						Outcome:   "Correct. Educate the client on documentation and valuation of donated items.",
						Reference: "Circular 230 §10.22",
						Delta:     right,
					},
					{
						Text:      "Refuse to prepare the return until she has receipts.",
						Outcome:   "Receipts are not the only way to substantiate. Help her document the deduction properly.",
						Reference: "Circular 230 §10.33",
						Delta:     wrong,
					},
					{
						Text:      "Cut the amount to $1,000 to be safe.",
						Outcome:   "An arbitrary figure has no basis either. Determine the actual fair market value.",
						Reference: "Circular 230 §10.22",
						Delta:     wrong,
					},
				},
			},
		},
	}
}
