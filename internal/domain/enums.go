package domain

// Algorithm selects which review update function drives scheduling.
type Algorithm string

const (
	AlgorithmSM2  Algorithm = "SM2"
	AlgorithmFSRS Algorithm = "FSRS"
)

func (a Algorithm) String() string { return string(a) }

func (a Algorithm) IsValid() bool {
	switch a {
	case AlgorithmSM2, AlgorithmFSRS:
		return true
	}
	return false
}

// SessionMode selects which cards a quiz session draws from.
type SessionMode string

const (
	// SessionModeReviewDue selects only cards whose next review is due.
	SessionModeReviewDue SessionMode = "REVIEW_DUE"
	// SessionModeAll selects every card in scope regardless of due state.
	SessionModeAll SessionMode = "ALL"
	// SessionModeNew selects cards that have never been reviewed.
	SessionModeNew SessionMode = "NEW"
)

func (m SessionMode) String() string { return string(m) }

func (m SessionMode) IsValid() bool {
	switch m {
	case SessionModeReviewDue, SessionModeAll, SessionModeNew:
		return true
	}
	return false
}

// Quality bounds for a review grade on the 0–5 SuperMemo scale.
const (
	QualityMin = 0
	QualityMax = 5
	// QualityPassing is the lowest quality that counts as a successful
	// recall; anything below it is a lapse.
	QualityPassing = 3
)

// ClampQuality constrains a raw quality score to [QualityMin, QualityMax].
// Out-of-range scores are clamped, not rejected.
func ClampQuality(q int) int {
	if q < QualityMin {
		return QualityMin
	}
	if q > QualityMax {
		return QualityMax
	}
	return q
}
