package resolve

import (
	"github.com/sells-group/prospect-cli/internal/model"
)

// ClassifyThrottle aggregates the resolution risk signals for the
// selected candidate into a single ordinal severity. Severity counts the
// true flags among zero_reviews, collision_risk, and category_mismatch;
// an unknown review count contributes nothing.
func ClassifyThrottle(selected model.Candidate, mismatch model.MismatchReport, collision model.CollisionReport) model.ThrottleAssessment {
	assessment := model.ThrottleAssessment{
		CollisionRisk:          collision.CollisionRisk,
		CategoryMismatch:       mismatch.Mismatch,
		ServiceAreaOnlyUnknown: true,
	}

	if selected.UserRatingCount != nil {
		zero := *selected.UserRatingCount == 0
		assessment.ZeroReviews = &zero
	}

	flags := 0
	if assessment.ZeroReviews != nil && *assessment.ZeroReviews {
		flags++
	}
	if assessment.CollisionRisk {
		flags++
	}
	if assessment.CategoryMismatch {
		flags++
	}

	switch {
	case flags >= 2:
		assessment.Severity = model.SeverityHigh
	case flags == 1:
		assessment.Severity = model.SeverityMedium
	default:
		assessment.Severity = model.SeverityLow
	}

	return assessment
}
