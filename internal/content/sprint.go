package content

import "ea-coach-service/internal/domain"

// SprintQuestions returns the five high-difficulty sprint questions.
func SprintQuestions() []domain.Question {
	return []domain.Question{
		{
			ID:     "sprint-passive-losses",
			Prompt: "A taxpayer has a $30,000 loss from a rental property in which they actively participate and $25,000 of passive income from a limited partnership. AGI is $90,000. How much of the rental loss is deductible this year?",
			Options: []string{
				"$5,000",
				"$25,000",
				"$30,000",
				"$0",
			},
			CorrectIndex: key(2),
			Domain:       incomeAndAssets,
			Topic:        "Passive Activity Losses",
			Publications: []string{"Pub 925"},
			Explanation:  "$25,000 offsets the passive income. The remaining $5,000 is allowed under the $25,000 special allowance because AGI is below $100,000.",
		},
		{
			ID:     "sprint-section-179",
			Prompt: "A business places $2,800,000 of qualifying equipment in service in 2024. The maximum Section 179 deduction is $1,220,000 and the phase-out begins at $3,050,000. What is the maximum deduction?",
			Options: []string{
				"$1,220,000",
				"$970,000",
				"$750,000",
				"$0",
			},
			CorrectIndex: key(0),
			Domain:       business,
			Topic:        "Section 179 Deduction",
			Publications: []string{"Pub 946"},
			Explanation:  "Purchases are below the $3,050,000 threshold, so no dollar-for-dollar reduction applies.",
		},
		{
			ID:     "sprint-niit",
			Prompt: "A single taxpayer has MAGI of $250,000 and net investment income of $60,000. What is the net investment income tax?",
			Options: []string{
				"$1,900",
				"$2,280",
				"$9,500",
				"$0",
			},
			CorrectIndex: key(0),
			Domain:       incomeAndAssets,
			Topic:        "Net Investment Income Tax",
			Publications: []string{"Form 8960 Instructions"},
			Explanation:  "3.8% applies to the lesser of NII ($60,000) or MAGI over $200,000 ($50,000): 3.8% x $50,000 = $1,900.",
		},
		{
			ID:     "sprint-like-kind",
			Prompt: "After the Tax Cuts and Jobs Act, which property still qualifies for Section 1031 like-kind exchange treatment?",
			Options: []string{
				"All tangible property held for business or investment",
				"Only real property held for business or investment",
				"Real and personal property, excluding inventory",
				"Only personal property used in a trade or business",
			},
			CorrectIndex: key(1),
			Domain:       business,
			Topic:        "Like-Kind Exchanges",
			Publications: []string{"Pub 544"},
			Explanation:  "Exchanges after 2017 are limited to real property.",
		},
		{
			ID:     "sprint-amt",
			Prompt: "Which of the following is an adjustment that increases alternative minimum taxable income?",
			Options: []string{
				"Charitable contributions",
				"State and local tax refunds",
				"Depreciation on property placed in service after 1986",
				"Medical expenses above 7.5% of AGI",
			},
			CorrectIndex: key(2),
			Domain:       incomeAndAssets,
			Topic:        "AMT Adjustments",
			Publications: []string{"Form 6251 Instructions"},
			Explanation:  "The difference between regular and AMT depreciation is an AMT adjustment.",
		},
	}
}
