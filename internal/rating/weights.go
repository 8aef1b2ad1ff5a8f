package rating

// Weights maps each participating source to its configured weight for one
// axis. The map is resolved from the tenant's source registry; DefaultWeights
// is the documented fallback for tenants with no explicit configuration.
type Weights map[SourceType]float64

// DefaultWeights returns the built-in evidence mix for an axis.
func DefaultWeights(a Axis) Weights {
	switch a {
	case AxisPerformance:
		return Weights{
			SourceAppraisalOverall:  0.5,
			SourceGoalAchievement:   0.3,
			SourceCompetencyAverage: 0.2,
		}
	case AxisPotential:
		return Weights{
			SourcePotentialAssessment: 0.4,
			SourceLeadershipSignals:   0.4,
			SourceValuesSignals:       0.2,
		}
	}
	return Weights{}
}
