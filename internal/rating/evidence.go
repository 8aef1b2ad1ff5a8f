package rating

// The evidence domains are structurally different records unified only by
// "produces a normalizable value", so each gets its own shape and the
// normalization rules live in one exhaustive switch over SourceType.

type AppraisalEvidence struct {
	OverallScore float64
}

type GoalEvidence struct {
	ProgressPercentage float64
}

type SignalEvidence struct {
	Name            string
	Category        string
	NormalizedScore float64
}

type PotentialEvidence struct {
	CalculatedRating float64
}

// Bundle carries the raw evidence fetched for one employee. Nil pointers and
// empty slices mean "no data", which is the normal skip path, not an error.
type Bundle struct {
	Appraisal *AppraisalEvidence
	Goals     []GoalEvidence
	Signals   []SignalEvidence
	Potential *PotentialEvidence
}

// Signal category groupings per derived source.
var (
	competencyCategories = map[string]bool{
		"technical":      true,
		"customer_focus": true,
	}
	leadershipCategories = map[string]bool{
		"leadership":         true,
		"people_leadership":  true,
		"strategic_thinking": true,
		"influence":          true,
	}
	valuesCategories = map[string]bool{
		"values":       true,
		"adaptability": true,
	}
)

const (
	appraisalScaleMax     = 5.0
	potentialScaleMax     = 3.0
	goalProgressScaleMax  = 100.0
)

// normalize rescales one source's raw evidence into [0,1]. The second return
// reports the raw measurement behind the normalized value, the third whether
// the source produced any data at all.
func normalize(source SourceType, b Bundle) (normalized float64, raw float64, ok bool) {
	switch source {
	case SourceAppraisalOverall:
		if b.Appraisal == nil {
			return 0, 0, false
		}
		return b.Appraisal.OverallScore / appraisalScaleMax, b.Appraisal.OverallScore, true
	case SourceGoalAchievement:
		if len(b.Goals) == 0 {
			return 0, 0, false
		}
		var total float64
		for _, g := range b.Goals {
			total += g.ProgressPercentage
		}
		avg := total / float64(len(b.Goals))
		return avg / goalProgressScaleMax, avg, true
	case SourceCompetencyAverage:
		return averageSignals(b.Signals, competencyCategories)
	case SourcePotentialAssessment:
		if b.Potential == nil {
			return 0, 0, false
		}
		return b.Potential.CalculatedRating / potentialScaleMax, b.Potential.CalculatedRating, true
	case SourceLeadershipSignals:
		return averageSignals(b.Signals, leadershipCategories)
	case SourceValuesSignals:
		return averageSignals(b.Signals, valuesCategories)
	}
	return 0, 0, false
}

func averageSignals(signals []SignalEvidence, categories map[string]bool) (float64, float64, bool) {
	var total float64
	var count int
	for _, s := range signals {
		if !categories[s.Category] {
			continue
		}
		total += s.NormalizedScore
		count++
	}
	if count == 0 {
		return 0, 0, false
	}
	avg := total / float64(count)
	return avg, avg, true
}
