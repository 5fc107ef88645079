package domain

// IsExpired reports whether the proposal is stale at the given block height.
// Expiry is computed on read; a proposal keeps its stored status forever.
func (p Proposal) IsExpired(height int64, validityPeriod int64) bool {
	return height-p.SubmissionTime > validityPeriod
}

// Average is the truncating integer mean over the running aggregates.
// Truncation is part of the protocol: scores {70,70,69} sum to 209 and
// average to 69, which rejects at a threshold of 70.
func Average(totalScore int64, scoreCount int64) int64 {
	if scoreCount <= 0 {
		return 0
	}
	return totalScore / scoreCount
}

// Decide maps an average score to the binding verdict status.
func Decide(average int64, threshold int64) ProposalStatus {
	if average >= threshold {
		return StatusApproved
	}
	return StatusRejected
}

// ValidScore reports whether a score value is inside the accepted range.
func ValidScore(value int64) bool {
	return value >= ScoreMin && value <= ScoreMax
}
