// Package rating derives an employee's Performance and Potential ratings (the
// two axes of the 9-box grid) from heterogeneous evidence sources. The
// package is pure: it knows nothing about persistence or transport, it only
// normalizes, weighs and bands the evidence it is handed.
package rating

// Axis is one of the two independent rating dimensions.
type Axis string

const (
	AxisPerformance Axis = "performance"
	AxisPotential   Axis = "potential"
)

func (a Axis) Valid() bool {
	return a == AxisPerformance || a == AxisPotential
}

// SourceType identifies an evidence source that can contribute a normalized
// value to an axis.
type SourceType string

const (
	SourceAppraisalOverall    SourceType = "appraisal_overall_score"
	SourceGoalAchievement     SourceType = "goal_achievement"
	SourceCompetencyAverage   SourceType = "competency_average"
	SourcePotentialAssessment SourceType = "potential_assessment"
	SourceLeadershipSignals   SourceType = "leadership_signals"
	SourceValuesSignals       SourceType = "values_signals"
)

// Label returns the human-readable name used in contribution summaries.
func (s SourceType) Label() string {
	switch s {
	case SourceAppraisalOverall:
		return "appraisal overall score"
	case SourceGoalAchievement:
		return "goal achievement"
	case SourceCompetencyAverage:
		return "competency signals"
	case SourcePotentialAssessment:
		return "potential assessment"
	case SourceLeadershipSignals:
		return "leadership signals"
	case SourceValuesSignals:
		return "values signals"
	}
	return string(s)
}

// AxisSources returns the evidence sources that can contribute to an axis, in
// the order they appear in the evidence breakdown.
func AxisSources(a Axis) []SourceType {
	switch a {
	case AxisPerformance:
		return []SourceType{SourceAppraisalOverall, SourceGoalAchievement, SourceCompetencyAverage}
	case AxisPotential:
		return []SourceType{SourcePotentialAssessment, SourceLeadershipSignals, SourceValuesSignals}
	}
	return nil
}

// Item is one source's contribution to a calculated axis rating.
type Item struct {
	SourceType      SourceType `json:"source_type"`
	Label           string     `json:"label"`
	NormalizedValue float64    `json:"normalized_value"`
	Weight          float64    `json:"weight"`
	RawValue        float64    `json:"raw_value"`
}

// AxisRating is the outcome of one axis calculation. A nil *AxisRating means
// the axis had no evidence at all, which callers must treat distinctly from a
// low score.
type AxisRating struct {
	Axis       Axis    `json:"axis"`
	Band       int     `json:"band"`
	Score      float64 `json:"score"`
	Confidence float64 `json:"confidence"`
	Sources    []Item  `json:"sources"`
}

// Banding thresholds, inclusive on the lower bound.
const (
	bandTwoFloor   = 0.33
	bandThreeFloor = 0.67
)

func bandFor(score float64) int {
	switch {
	case score < bandTwoFloor:
		return 1
	case score < bandThreeFloor:
		return 2
	default:
		return 3
	}
}
