// Package content holds the built-in exam forms, sprint questions, ethics
// decks and career fixtures served when no database is configured.
package content

import "ea-coach-service/internal/domain"

// ExamDuration is the length of a full SEE sitting (3.5 hours).
const ExamDuration = 12600

const (
	Part1FormID = "see-part1-practice"
	Part2FormID = "see-part2-practice"
	Part3FormID = "see-part3-practice"
)

func key(i int) *int { return &i }

// Forms returns fresh copies of the built-in exam forms.
func Forms() []domain.ExamForm {
	return []domain.ExamForm{part1Form(), part2Form(), part3Form()}
}

// Form returns the built-in form with the given id.
func Form(id string) (domain.ExamForm, bool) {
	for _, f := range Forms() {
		if f.ID == id {
			return f, true
		}
	}
	return domain.ExamForm{}, false
}

const (
	incomeAndAssets = "Income and Assets"
	deductions      = "Deductions and Credits"
	business        = "Business Taxpayers"
	specialReturns  = "Specialized Returns"
	practice        = "Practices and Procedures"
	ethics          = "Representation and Ethics"
)

func part1Form() domain.ExamForm {
	return domain.ExamForm{
		ID:              Part1FormID,
		Part:            1,
		Title:           "SEE Part 1: Individuals (practice form)",
		DurationSeconds: ExamDuration,
		Questions: []domain.Question{
			{
				ID:     "p1-hoh-requirement",
				Prompt: "Which of the following is NOT a requirement for a taxpayer to claim Head of Household filing status?",
				Options: []string{
					"The taxpayer must be unmarried or considered unmarried on the last day of the year",
					"The taxpayer must pay more than half the cost of keeping up a home for the year",
					"A qualifying person must live with the taxpayer for more than half the year",
					"The taxpayer must have earned income from wages or self-employment",
				},
				CorrectIndex: key(3),
				Domain:       incomeAndAssets,
				Topic:        "Gross Income and Filing Requirements",
				Publications: []string{"Pub 17", "Pub 501"},
				Explanation:  "Head of Household status depends on marital status, a qualifying person and the cost of keeping up a home. Earned income is not a condition.",
			},
			{
				ID:     "p1-circular230-penalty",
				Prompt: "Under Circular 230, what is the maximum penalty that can be imposed for each violation of the regulations?",
				Options: []string{
					"$1,000 per violation",
					"$5,000 per violation",
					"$10,000 per violation",
					"No monetary penalty, only suspension",
				},
				Experimental: true,
				Domain:       ethics,
				Topic:        "Circular 230 Ethics",
			},
			{
				ID:     "p1-child-support",
				Prompt: "Which of the following amounts received during the year is excluded from gross income?",
				Options: []string{
					"Gambling winnings from a state lottery",
					"Child support payments",
					"Jury duty pay",
					"Interest on a federal tax refund",
				},
				CorrectIndex: key(1),
				Domain:       incomeAndAssets,
				Topic:        "Gross Income and Filing Requirements",
				Publications: []string{"Pub 17", "Pub 501"},
				Explanation:  "Child support is neither deductible by the payer nor taxable to the recipient.",
			},
			{
				ID:     "p1-qualified-dividends",
				Prompt: "A taxpayer's Form 1099-DIV shows $2,500 of ordinary dividends, of which $800 are qualified dividends. The holding period requirement was met. How much of the dividend income is taxed at the preferential capital gains rates?",
				Options: []string{
					"$0",
					"$800",
					"$1,700",
					"$2,500",
				},
				CorrectIndex: key(1),
				Domain:       incomeAndAssets,
				Topic:        "Capital Gains and Losses",
				Publications: []string{"Pub 550"},
				Explanation:  "Only the qualified portion reported in box 1b gets capital gains rates.",
			},
			{
				ID:     "p1-long-term-holding",
				Prompt: "To be treated as long-term, a capital asset must be held for:",
				Options: []string{
					"At least six months",
					"Exactly one year",
					"More than one year",
					"More than two years",
				},
				CorrectIndex: key(2),
				Domain:       incomeAndAssets,
				Topic:        "Capital Gains and Losses",
				Publications: []string{"Pub 550", "Pub 544"},
				Explanation:  "The holding period must exceed one year. The day of acquisition is excluded and the day of disposition is included.",
			},
			{
				ID:     "p1-salt-cap",
				Prompt: "For 2024, what is the maximum itemized deduction for state and local taxes for a single filer?",
				Options: []string{
					"$5,000",
					"$10,000",
					"$20,000",
					"There is no limit",
				},
				CorrectIndex: key(1),
				Domain:       deductions,
				Topic:        "Itemized Deductions",
				Publications: []string{"Schedule A Instructions"},
				Explanation:  "The SALT deduction is capped at $10,000 ($5,000 if married filing separately).",
			},
			{
				ID:     "p1-medical-floor",
				Prompt: "Unreimbursed medical expenses are deductible on Schedule A to the extent they exceed what percentage of AGI?",
				Options: []string{
					"2%",
					"7.5%",
					"10%",
					"15%",
				},
				CorrectIndex: key(1),
				Domain:       deductions,
				Topic:        "Itemized Deductions",
				Publications: []string{"Schedule A Instructions", "Pub 502"},
				Explanation:  "Only medical and dental expenses above 7.5% of AGI are deductible.",
			},
			{
				ID:     "p1-child-tax-credit",
				Prompt: "For 2024, what is the maximum child tax credit per qualifying child under age 17?",
				Options: []string{
					"$1,000",
					"$1,400",
					"$2,000",
					"$3,600",
				},
				CorrectIndex: key(2),
				Domain:       deductions,
				Topic:        "Tax Credits",
				Publications: []string{"Schedule 8812 Instructions"},
				Explanation:  "The credit is $2,000 per qualifying child, part of which may be refundable as the additional child tax credit.",
			},
			{
				ID:     "p1-aotc",
				Prompt: "What is the maximum American opportunity tax credit per eligible student?",
				Options: []string{
					"$1,500",
					"$2,000",
					"$2,500",
					"$4,000",
				},
				CorrectIndex: key(2),
				Domain:       deductions,
				Topic:        "Tax Credits",
				Publications: []string{"Pub 970"},
				Explanation:  "100% of the first $2,000 plus 25% of the next $2,000 of qualified expenses gives $2,500.",
			},
			{
				ID:     "p1-se-rate",
				Prompt: "What is the combined self-employment tax rate on net earnings up to the Social Security wage base?",
				Options: []string{
					"2.9%",
					"7.65%",
					"12.4%",
					"15.3%",
				},
				CorrectIndex: key(3),
				Domain:       incomeAndAssets,
				Topic:        "Self-Employment Tax",
				Publications: []string{"Pub 334", "Pub 535", "Schedule C Instructions"},
				Explanation:  "12.4% Social Security plus 2.9% Medicare.",
			},
			{
				ID:     "p1-se-threshold",
				Prompt: "Self-employment tax is generally owed when net earnings from self-employment are at least:",
				Options: []string{
					"$400",
					"$600",
					"$1,000",
					"$12,950",
				},
				CorrectIndex: key(0),
				Domain:       incomeAndAssets,
				Topic:        "Self-Employment Tax",
				Publications: []string{"Pub 334", "Pub 535", "Schedule C Instructions"},
				Explanation:  "Schedule SE is required once net earnings reach $400.",
			},
			{
				ID:     "p1-security-deposit",
				Prompt: "A landlord receives a security deposit that will be returned to the tenant at the end of the lease. How is it treated when received?",
				Options: []string{
					"Rental income in the year received",
					"Not income when received",
					"A reduction of the property's basis",
					"Income spread evenly over the lease term",
				},
				CorrectIndex: key(1),
				Domain:       incomeAndAssets,
				Topic:        "Rental Income and Expenses",
				Publications: []string{"Pub 527", "Pub 925"},
				Explanation:  "A refundable deposit is not income unless the landlord keeps it.",
			},
			{
				ID:     "p1-rental-personal-use",
				Prompt: "A dwelling unit rented part of the year is treated as a residence when personal use exceeds the greater of 14 days or what share of the days rented at fair rental?",
				Options: []string{
					"5%",
					"10%",
					"15%",
					"50%",
				},
				CorrectIndex: key(1),
				Domain:       incomeAndAssets,
				Topic:        "Rental Income and Expenses",
				Publications: []string{"Pub 527", "Pub 925"},
				Explanation:  "The test is the greater of 14 days or 10% of the fair rental days.",
			},
			{
				ID:     "p1-ira-limit",
				Prompt: "For 2024, what is the maximum IRA contribution for a taxpayer under age 50 with sufficient compensation?",
				Options: []string{
					"$6,500",
					"$7,000",
					"$7,500",
					"$8,000",
				},
				CorrectIndex: key(1),
				Domain:       incomeAndAssets,
				Topic:        "IRA Contributions and Distributions",
				Publications: []string{"Pub 590-A", "Pub 590-B"},
				Explanation:  "The 2024 limit is $7,000, plus a $1,000 catch-up from age 50.",
			},
			{
				ID:     "p1-early-distribution",
				Prompt: "Absent an exception, a distribution from a traditional IRA before age 59½ is subject to an additional tax of:",
				Options: []string{
					"6%",
					"10%",
					"20%",
					"25%",
				},
				CorrectIndex: key(1),
				Domain:       incomeAndAssets,
				Topic:        "IRA Contributions and Distributions",
				Publications: []string{"Pub 590-A", "Pub 590-B"},
				Explanation:  "The additional tax on early distributions is 10% of the taxable amount.",
			},
			{
				ID:     "p1-gift-basis",
				Prompt: "A taxpayer receives stock as a gift when its fair market value exceeds the donor's adjusted basis. What is the taxpayer's basis for figuring gain?",
				Options: []string{
					"Fair market value on the date of the gift",
					"The donor's adjusted basis",
					"Fair market value on the date of sale",
					"Zero",
				},
				CorrectIndex: key(1),
				Domain:       incomeAndAssets,
				Topic:        "Cost Basis Calculations",
				Publications: []string{"Pub 551"},
				Explanation:  "Carryover basis applies to gifted property for gain.",
			},
			{
				ID:     "p1-inherited-basis",
				Prompt: "The basis of property inherited from a decedent is generally:",
				Options: []string{
					"The decedent's adjusted basis",
					"Fair market value at the date of death",
					"The amount of estate tax paid on it",
					"Zero until sold",
				},
				CorrectIndex: key(1),
				Domain:       incomeAndAssets,
				Topic:        "Cost Basis Calculations",
				Publications: []string{"Pub 551"},
				Explanation:  "Inherited property takes a basis equal to its fair market value at the date of death (or alternate valuation date).",
			},
			{
				ID:     "p1-residential-recovery",
				Prompt: "Under MACRS, what is the recovery period for residential rental property?",
				Options: []string{
					"15 years",
					"20 years",
					"27.5 years",
					"39 years",
				},
				CorrectIndex: key(2),
				Domain:       incomeAndAssets,
				Topic:        "MACRS Depreciation",
				Publications: []string{"Pub 946", "Form 4562 Instructions"},
				Explanation:  "Residential rental property is depreciated straight-line over 27.5 years.",
			},
			{
				ID:     "p1-land-depreciation",
				Prompt: "Which of the following assets used in a rental activity cannot be depreciated?",
				Options: []string{
					"Appliances",
					"The building",
					"Land",
					"A new roof",
				},
				CorrectIndex: key(2),
				Domain:       incomeAndAssets,
				Topic:        "MACRS Depreciation",
				Publications: []string{"Pub 946", "Form 4562 Instructions"},
				Explanation:  "Land does not wear out and is never depreciable.",
			},
			{
				ID:     "p1-dependent-standard",
				Prompt: "Which statement about the 2024 standard deduction is correct?",
				Options: []string{
					"Married filing separately spouses may each choose independently",
					"An additional amount is allowed for a taxpayer who is 65 or older",
					"Dependents always receive the full standard deduction",
					"It cannot be claimed in the year of marriage",
				},
				CorrectIndex: key(1),
				Experimental: true,
				Domain:       deductions,
				Topic:        "Itemized Deductions",
				Publications: []string{"Pub 501"},
			},
		},
	}
}

func part2Form() domain.ExamForm {
	return domain.ExamForm{
		ID:              Part2FormID,
		Part:            2,
		Title:           "SEE Part 2: Businesses (practice form)",
		DurationSeconds: ExamDuration,
		Questions: []domain.Question{
			{
				ID:     "p2-section-1031",
				Prompt: "After 2017, which property can qualify for a Section 1031 like-kind exchange?",
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
				Explanation:  "Personal property exchanges no longer qualify.",
			},
			{
				ID:     "p2-partnership-return",
				Prompt: "Which return does a domestic partnership file to report its income?",
				Options: []string{
					"Form 1120",
					"Form 1120-S",
					"Form 1065",
					"Form 1041",
				},
				CorrectIndex: key(2),
				Domain:       business,
				Topic:        "Partnerships",
				Publications: []string{"Pub 541"},
				Explanation:  "Partnerships file Form 1065 and issue Schedules K-1.",
			},
			{
				ID:     "p2-scorp-shareholders",
				Prompt: "What is the maximum number of shareholders an S corporation may have?",
				Options: []string{
					"35",
					"75",
					"100",
					"There is no limit",
				},
				CorrectIndex: key(2),
				Domain:       business,
				Topic:        "S-Corporations",
				Publications: []string{"Form 1120-S Instructions"},
				Explanation:  "Family members can elect to be treated as one shareholder.",
			},
			{
				ID:     "p2-c-corp-rate",
				Prompt: "What is the federal income tax rate for a C corporation after 2017?",
				Options: []string{
					"15%",
					"21%",
					"28%",
					"Graduated rates up to 35%",
				},
				CorrectIndex: key(1),
				Domain:       business,
				Topic:        "Corporations",
				Publications: []string{"Pub 542"},
				Explanation:  "The TCJA replaced the graduated rates with a flat 21%.",
			},
			{
				ID:     "p2-trust-return",
				Prompt: "Which form is filed for a domestic trust with taxable income?",
				Options: []string{
					"Form 706",
					"Form 709",
					"Form 1041",
					"Form 1065",
				},
				CorrectIndex: key(2),
				Domain:       specialReturns,
				Topic:        "Trusts & Estates",
				Publications: []string{"Form 1041 Instructions"},
				Explanation:  "Form 1041 reports income of estates and trusts.",
			},
		},
	}
}

func part3Form() domain.ExamForm {
	return domain.ExamForm{
		ID:              Part3FormID,
		Part:            3,
		Title:           "SEE Part 3: Representation, Practices, and Procedures (practice form)",
		DurationSeconds: ExamDuration,
		Questions: []domain.Question{
			{
				ID:     "p3-contingent-fee",
				Prompt: "Under Circular 230, an Enrolled Agent may charge a contingent fee for which of the following services?",
				Options: []string{
					"Preparing an original tax return",
					"Preparing an amended return claiming a refund",
					"Filing a request for a private letter ruling",
					"Providing tax planning advice",
				},
				CorrectIndex: key(1),
				Domain:       ethics,
				Topic:        "Circular 230 Ethics",
				Publications: []string{"Circular 230"},
				Explanation:  "§10.27 allows contingent fees for amended returns or refund claims filed within 120 days of an IRS notice, among other exceptions.",
			},
			{
				ID:     "p3-diligence",
				Prompt: "Which section of Circular 230 requires a practitioner to exercise due diligence in preparing returns?",
				Options: []string{
					"§10.3",
					"§10.22",
					"§10.27",
					"§10.51",
				},
				CorrectIndex: key(1),
				Domain:       ethics,
				Topic:        "Circular 230 Ethics",
				Publications: []string{"Circular 230"},
				Explanation:  "§10.22 covers diligence as to accuracy.",
			},
			{
				ID:     "p3-poa-form",
				Prompt: "Which form authorizes an Enrolled Agent to represent a taxpayer before the IRS?",
				Options: []string{
					"Form 8821",
					"Form 2848",
					"Form 4506-T",
					"Form 9465",
				},
				CorrectIndex: key(1),
				Domain:       practice,
				Topic:        "Power of Attorney",
				Publications: []string{"Pub 947", "Form 2848 Instructions"},
				Explanation:  "Form 8821 only allows disclosure of information; Form 2848 grants representation.",
			},
			{
				ID:     "p3-installment-agreement",
				Prompt: "Which form does a taxpayer use to request a monthly installment agreement?",
				Options: []string{
					"Form 656",
					"Form 843",
					"Form 9465",
					"Form 12153",
				},
				CorrectIndex: key(2),
				Domain:       practice,
				Topic:        "Collection Process",
				Publications: []string{"Pub 594"},
				Explanation:  "Form 9465 is the installment agreement request.",
			},
			{
				ID:     "p3-failure-to-file",
				Prompt: "The failure-to-file penalty is generally what percentage of the unpaid tax for each month the return is late?",
				Options: []string{
					"0.5%",
					"1%",
					"5%",
					"25%",
				},
				CorrectIndex: key(2),
				Domain:       practice,
				Topic:        "Penalties",
				Publications: []string{"Pub 17"},
				Explanation:  "5% per month or part of a month, up to 25%.",
			},
			{
				ID:     "p3-cdp-hearing",
				Prompt: "Which form does a taxpayer file to request a Collection Due Process hearing?",
				Options: []string{
					"Form 12153",
					"Form 911",
					"Form 8857",
					"Form 2848",
				},
				CorrectIndex: key(0),
				Domain:       practice,
				Topic:        "Appeals",
				Publications: []string{"Pub 1660"},
				Explanation:  "Form 12153 requests a CDP or equivalent hearing.",
			},
			{
				ID:     "p3-taxpayer-advocate",
				Prompt: "Which form requests assistance from the Taxpayer Advocate Service?",
				Options: []string{
					"Form 911",
					"Form 843",
					"Form 1040-X",
					"Form 8379",
				},
				CorrectIndex: key(0),
				Experimental: true,
				Domain:       practice,
				Topic:        "Taxpayer Rights",
				Publications: []string{"Pub 1"},
			},
		},
	}
}
