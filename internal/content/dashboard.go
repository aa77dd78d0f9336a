package content

import "ea-coach-service/internal/domain"

// BridgeConcepts returns the Part 1 to Part 2 comparisons.
func BridgeConcepts() []domain.BridgeConcept {
	return []domain.BridgeConcept{
		{
			Topic:         "Cost Basis",
			Individual:    "Individual purchases stock for $10,000. Basis = purchase price.",
			Business:      "Partner contributes property to partnership. Basis = adjusted basis of contributed property + gain recognized.",
			KeyDifference: "Individual basis is straightforward. Entity basis adjusts for liabilities, contributions and distributions.",
			Example:       "Stock purchase vs. Partnership capital account",
		},
		{
			Topic:         "Home Office Deduction",
			Individual:    "Employee: exclusive and regular use test, claimed on Schedule A. Suspended for employees after TCJA.",
			Business:      "Self-employed on Schedule C: same tests, deducted FOR AGI with no floor.",
			KeyDifference: "Employees lost this deduction after 2017. Self-employed individuals still take it in full.",
			Example:       "W-2 employee (no deduction) vs. 1099 contractor (full deduction)",
		},
		{
			Topic:         "Depreciation",
			Individual:    "Rental property: MACRS over 27.5 years (residential) or 39 years (commercial). No Section 179.",
			Business:      "Business property: MACRS by asset class, plus Section 179 expensing and bonus depreciation.",
			KeyDifference: "Businesses get accelerated options individual rental owners do not.",
			Example:       "Residential rental (27.5 yrs) vs. Business equipment (5-7 yrs + Section 179)",
		},
		{
			Topic:         "Passive Activity Losses",
			Individual:    "Rental loss: $25,000 special allowance with active participation and AGI under $100,000; otherwise suspended.",
			Business:      "Partnership/S-Corp: material participation rules, with at-risk and passive limits stacked.",
			KeyDifference: "Individual rentals have a special allowance. Entity owners face several limitation layers.",
			Example:       "Individual rental loss vs. S-Corp shareholder losses",
		},
		{
			Topic:         "Health Insurance Premiums",
			Individual:    "Medical expenses are an itemized deduction above a 7.5% AGI floor.",
			Business:      "Self-employed: 100% deduction FOR AGI. More-than-2% S-Corp shareholders are treated as self-employed.",
			KeyDifference: "Self-employed get an above-the-line deduction. Employees keep the limited itemized one.",
			Example:       "W-2 employee (7.5% floor) vs. Schedule C (100% FOR AGI)",
		},
		{
			Topic:         "Retirement Contributions",
			Individual:    "IRA limit $6,500 ($7,500 if 50+). Traditional IRA may be nondeductible with an employer plan.",
			Business:      "Business owner: SEP-IRA or Solo 401(k) up to $66,000, plus catch-up for the 401(k).",
			KeyDifference: "Business owners reach plans with about ten times the contribution limit.",
			Example:       "IRA $6,500 vs. SEP-IRA $66,000",
		},
	}
}

// FocusAreas returns the dashboard focus cards.
func FocusAreas() []domain.FocusArea {
	return []domain.FocusArea{
		{ID: 1, Title: "Circular 230 Ethics", Description: "Professional conduct and responsibilities", Progress: 65, Icon: "scale"},
		{ID: 2, Title: "Tax Return Procedures", Description: "Filing requirements and deadlines", Progress: 82, Icon: "book"},
		{ID: 3, Title: "Business Calculations", Description: "Depreciation, amortization, and credits", Progress: 43, Icon: "calculator"},
	}
}

// Stats returns the headline dashboard numbers.
func Stats() []domain.StatCard {
	return []domain.StatCard{
		{Label: "Study Streak", Value: "12 days", Subtitle: "Keep it going!"},
		{Label: "Questions Answered", Value: "1,247", Subtitle: "+89 this week"},
		{Label: "Accuracy Rate", Value: "78%", Subtitle: "up 5% from last week"},
		{Label: "Study Hours", Value: "24.5h", Subtitle: "This month"},
	}
}
