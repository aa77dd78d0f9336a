package coach

// ExamPart describes one part of the Special Enrollment Examination.
type ExamPart struct {
	Number       int      `json:"part"`
	Name         string   `json:"name"`
	Questions    int      `json:"questions"`
	Minutes      int      `json:"durationMinutes"`
	PassingScore int      `json:"passingScore"`
	Topics       []string `json:"topics"`
}

// Parts returns the three SEE parts.
func Parts() []ExamPart {
	return []ExamPart{
		{
			Number: 1, Name: "Individuals", Questions: 100, Minutes: 210, PassingScore: 105,
			Topics: []string{"Gross Income", "Adjustments", "Deductions", "Credits", "Basis", "Capital Gains", "Retirement Plans"},
		},
		{
			Number: 2, Name: "Businesses", Questions: 100, Minutes: 210, PassingScore: 105,
			Topics: []string{"Business Income", "Depreciation", "Partnerships", "Corporations", "S-Corporations", "Trusts & Estates"},
		},
		{
			Number: 3, Name: "Representation, Practices, and Procedures", Questions: 100, Minutes: 210, PassingScore: 105,
			Topics: []string{"Circular 230 Ethics", "Power of Attorney", "Collection Process", "Penalties", "Appeals", "Taxpayer Rights"},
		},
	}
}

// Part returns the part with the given number.
func Part(n int) (ExamPart, bool) {
	for _, p := range Parts() {
		if p.Number == n {
			return p, true
		}
	}
	return ExamPart{}, false
}
