package content

import "ea-coach-service/internal/domain"

// Levels returns the career path fixture.
func Levels() []domain.Level {
	return []domain.Level{
		{Number: 1, Title: "PTIN Holder", Description: "Starting out as a tax professional", Requirement: "Obtain a PTIN", Unlocked: true},
		{Number: 2, Title: "Tax Preparer", Description: "Building foundational knowledge", Requirement: "Complete 50 practice questions", Unlocked: true},
		{Number: 3, Title: "IRS Representative", Description: "Ready to represent clients", Requirement: "Score 105+ on a practice exam", Current: true},
		{Number: 4, Title: "Enrolled Agent", Description: "Full practice rights before the IRS", Requirement: "Pass all three SEE parts"},
	}
}

// Badges returns the achievement fixture. Nothing unlocks badges at runtime.
func Badges() []domain.Badge {
	return []domain.Badge{
		{ID: "basis-master", Title: "Basis Master", Description: "Mastered cost basis calculations", Category: "Part 2", Unlocked: true},
		{ID: "1040-wizard", Title: "1040 Wizard", Description: "Expert in individual returns", Category: "Part 1", Unlocked: true},
		{ID: "ethics-champion", Title: "Ethics Champion", Description: "Perfect run through the Circular 230 scenarios", Category: "Part 3"},
		{ID: "speed-demon", Title: "Speed Demon", Description: "Completed 10 sprints", Category: "General", Unlocked: true},
		{ID: "streak-master", Title: "Streak Master", Description: "Kept a 30-day study streak", Category: "General"},
		{ID: "depreciation-pro", Title: "Depreciation Pro", Description: "Mastered MACRS and bonus depreciation", Category: "Part 2", Unlocked: true},
		{ID: "collections-expert", Title: "Collections Expert", Description: "Knows the IRS collection process", Category: "Part 3"},
		{ID: "perfect-sim", Title: "Perfect Simulation", Description: "Scored 105+ on a practice exam", Category: "General"},
	}
}
