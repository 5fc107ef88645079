package domain

// ProposalStatus is the stored verdict state of a proposal.
type ProposalStatus string

const (
	StatusPending  ProposalStatus = "pending"
	StatusApproved ProposalStatus = "approved"
	StatusRejected ProposalStatus = "rejected"
)

// Proposal represents one governance proposal under moderation.
// TotalScore and ScoreCount are running aggregates over the score ledger;
// they only ever grow.
type Proposal struct {
	ID             uint64         `json:"id"`
	Submitter      string         `json:"submitter"`
	ContentHash    string         `json:"contentHash"`
	SubmissionTime int64          `json:"submissionTime"`
	TotalScore     int64          `json:"totalScore"`
	ScoreCount     int64          `json:"scoreCount"`
	Status         ProposalStatus `json:"status"`
	FinalAverage   int64          `json:"finalAverage"`
}

// Moderator represents a registered, staked evaluator.
type Moderator struct {
	ID                   uint64 `json:"id"`
	Identity             string `json:"identity"`
	StakeAmount          uint64 `json:"stakeAmount"`
	TotalScoresSubmitted int64  `json:"totalScoresSubmitted"`
	ReputationScore      int64  `json:"reputationScore"`
	IsActive             bool   `json:"isActive"`
}

// ScoreRecord is one moderator's score for one proposal.
// At most one record ever exists per (proposal, moderator) pair.
type ScoreRecord struct {
	ProposalID    uint64 `json:"proposalID"`
	Moderator     string `json:"moderator"`
	Score         int64  `json:"score"`
	ScoredAt      int64  `json:"scoredAt"`
	ReasoningHash string `json:"reasoningHash"`
}

// ModeratorPerformance holds per-moderator counters reserved for future
// slashing logic. Populated at registration, never mutated by the gate.
type ModeratorPerformance struct {
	Identity         string `json:"identity"`
	AccurateScores   int64  `json:"accurateScores"`
	ChallengedScores int64  `json:"challengedScores"`
	Penalties        int64  `json:"penalties"`
}

// Verdict is the outcome of a finalization.
type Verdict struct {
	Status  ProposalStatus `json:"status"`
	Average int64          `json:"average"`
}
