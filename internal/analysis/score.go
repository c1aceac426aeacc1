package analysis

const (
	skillWeight           = 5
	titleWeight           = 3
	personalityAdjustment = 5

	excellentScore = 30
	goodScore      = 20
	averageScore   = 10
)

const (
	FeedbackExcellent = "Excellent Resume!"
	FeedbackGood      = "Good Resume, but could use more specific skills."
	FeedbackAverage   = "Average Resume, add more relevant projects and skills."
	FeedbackPoor      = "Needs improvement, add relevant skills and experience."
)

// Score combines matches and tone into the candidate score. It can go negative.
func Score(skills, titles []string, p Personality) int {
	score := len(skills)*skillWeight + len(titles)*titleWeight

	switch p {
	case Positive:
		score += personalityAdjustment
	case Negative:
		score -= personalityAdjustment
	}

	return score
}

// Feedback returns the canned advice for the band the score falls into.
// Lower bounds are inclusive.
func Feedback(score int) string {
	switch {
	case score >= excellentScore:
		return FeedbackExcellent
	case score >= goodScore:
		return FeedbackGood
	case score >= averageScore:
		return FeedbackAverage
	default:
		return FeedbackPoor
	}
}
