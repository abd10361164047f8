package scoring

// Confidence buckets a research score or recommendation strength
type Confidence string

const (
	ConfidenceHigh   Confidence = "high"
	ConfidenceMedium Confidence = "medium"
	ConfidenceLow    Confidence = "low"
)

const (
	highConfidenceThreshold   = 15
	mediumConfidenceThreshold = 10
)

// Classify maps a total research score to a confidence bucket. Defined for
// all integers; negative scores are low confidence.
func Classify(score int) Confidence {
	switch {
	case score >= highConfidenceThreshold:
		return ConfidenceHigh
	case score >= mediumConfidenceThreshold:
		return ConfidenceMedium
	default:
		return ConfidenceLow
	}
}
