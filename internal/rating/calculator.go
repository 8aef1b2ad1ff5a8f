package rating

import "math"

// CalculateAxis aggregates an axis from the evidence bundle. A source
// contributes only when its underlying data exists and it has a weight in the
// resolved map; missing data is skipped, never treated as zero. Returns nil
// when no source contributed, meaning the axis has no rating at all.
func CalculateAxis(axis Axis, b Bundle, weights Weights) *AxisRating {
	if len(weights) == 0 {
		weights = DefaultWeights(axis)
	}

	var (
		weightedScore  float64
		weightCoverage float64
		items          []Item
	)
	for _, source := range AxisSources(axis) {
		weight, configured := weights[source]
		if !configured || weight <= 0 {
			continue
		}
		value, raw, ok := normalize(source, b)
		if !ok {
			continue
		}
		weightedScore += value * weight
		weightCoverage += weight
		items = append(items, Item{
			SourceType:      source,
			Label:           source.Label(),
			NormalizedValue: value,
			Weight:          weight,
			RawValue:        raw,
		})
	}

	if weightCoverage == 0 {
		return nil
	}

	score := weightedScore / weightCoverage
	return &AxisRating{
		Axis:       axis,
		Band:       bandFor(score),
		Score:      score,
		Confidence: math.Min(weightCoverage, 1),
		Sources:    items,
	}
}
