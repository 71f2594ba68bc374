package resolve

import (
	"context"

	"go.uber.org/zap"

	"github.com/sells-group/prospect-cli/internal/model"
)

// Assessment is the full outcome of resolving one business profile.
type Assessment struct {
	Query          Query                    `json:"query"`
	Source         string                   `json:"source"`
	CandidateCount int                      `json:"candidate_count"`
	Selected       *model.Candidate         `json:"selected,omitempty"`
	Match          model.MatchScore         `json:"match"`
	Collision      model.CollisionReport    `json:"collision"`
	Mismatch       model.MismatchReport     `json:"mismatch"`
	Throttle       model.ThrottleAssessment `json:"throttle"`
}

// Resolve runs the full resolution pipeline: fetch candidates from the
// source, select the best match, then derive collision, category, and
// throttle reports for the selection. An empty candidate list is not an
// error; the assessment simply carries no selected entity.
func Resolve(ctx context.Context, src Source, q Query, expectedCategories []string, suspectedWrongCategory bool) (*Assessment, error) {
	log := zap.L().With(
		zap.String("source", src.Name()),
		zap.String("business", q.Name),
	)

	candidates, err := src.Candidates(ctx, q)
	if err != nil {
		return nil, err
	}

	assessment := &Assessment{
		Query:          q,
		Source:         src.Name(),
		CandidateCount: len(candidates),
	}

	if len(candidates) == 0 {
		log.Info("resolve: no candidates found")
		return assessment, nil
	}

	idx, match := SelectBest(candidates, q.Name, q.LocationHint, q.Phone, q.Website)
	selected := candidates[idx]
	assessment.Selected = &selected
	assessment.Match = match

	assessment.Collision = DetectCollisions(candidates, idx, q.Name, q.Website)
	assessment.Mismatch = AnalyzeCategories(selected.Types, expectedCategories, suspectedWrongCategory)
	assessment.Throttle = ClassifyThrottle(selected, assessment.Mismatch, assessment.Collision)

	log.Info("resolve: assessment complete",
		zap.Int("candidates", len(candidates)),
		zap.String("place_id", selected.PlaceID),
		zap.Float64("composite", match.Composite),
		zap.Bool("collision_risk", assessment.Collision.CollisionRisk),
		zap.Bool("category_mismatch", assessment.Mismatch.Mismatch),
		zap.String("severity", string(assessment.Throttle.Severity)),
	)

	return assessment, nil
}
